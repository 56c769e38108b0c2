package dto

import (
	"time"

	"github.com/aegeantours/tour_backoffice_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CreateAccountRequest defines the structure for creating a ledger account.
type CreateAccountRequest struct {
	Kind        domain.AccountKind `json:"kind" binding:"required,oneof=CORPORATE INDIVIDUAL"`
	DisplayName string             `json:"displayName" binding:"required,min=1,max=120"`
}

// AccountResponse defines the API response for a ledger account.
type AccountResponse struct {
	AccountID   string                              `json:"accountID"`
	Kind        domain.AccountKind                  `json:"kind"`
	DisplayName string                              `json:"displayName"`
	Balances    map[domain.Currency]decimal.Decimal `json:"balances"`
	Munferit    bool                                `json:"munferit"`
	Archived    bool                                `json:"archived"`
	CreatedAt   time.Time                           `json:"createdAt"`
}

// ToAccountResponse converts a domain LedgerAccount to an AccountResponse DTO
func ToAccountResponse(account *domain.LedgerAccount) AccountResponse {
	return AccountResponse{
		AccountID:   account.AccountID,
		Kind:        account.Kind,
		DisplayName: account.DisplayName,
		Balances:    account.Balances,
		Munferit:    account.Munferit,
		Archived:    account.Archived,
		CreatedAt:   account.CreatedAt,
	}
}

// ToListAccountResponse converts a slice of domain LedgerAccounts to DTOs.
func ToListAccountResponse(accounts []domain.LedgerAccount) []AccountResponse {
	responses := make([]AccountResponse, len(accounts))
	for i := range accounts {
		responses[i] = ToAccountResponse(&accounts[i])
	}
	return responses
}
