package dto

import (
	"time"

	"github.com/aegeantours/tour_backoffice_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// DateLayout is the wire format for calendar dates.
const DateLayout = "2006-01-02"

// PostTransactionRequest defines the structure for posting a transaction.
// Exactly one of AccountID and CustomerName must be set: AccountID targets an
// existing account, CustomerName takes the individual quick-payment path
// (posted to the münferit account with the name in the description).
type PostTransactionRequest struct {
	AccountID     string                 `json:"accountID"`
	CustomerName  string                 `json:"customerName"`
	Type          domain.TransactionType `json:"type" binding:"required,oneof=DEBIT CREDIT PAYMENT REFUND"`
	Amount        decimal.Decimal        `json:"amount" binding:"required"`
	Currency      domain.Currency        `json:"currency" binding:"required,currency"`
	Date          string                 `json:"date" binding:"required"` // 2006-01-02
	Time          string                 `json:"time"`                    // HH:MM, defaults to now
	Description   string                 `json:"description"`
	ReferenceType domain.ReferenceType   `json:"referenceType"`
	ReferenceID   string                 `json:"referenceID"`
	PaymentTypeID string                 `json:"paymentTypeID"`
}

// TransactionResponse defines the API response for a posted transaction.
type TransactionResponse struct {
	TransactionID   string                 `json:"transactionID"`
	AccountID       string                 `json:"accountID"`
	TransactionType domain.TransactionType `json:"transactionType"`
	Amount          decimal.Decimal        `json:"amount"`
	Currency        domain.Currency        `json:"currency"`
	ExchangeRate    decimal.Decimal        `json:"exchangeRate"`
	Date            string                 `json:"date"`
	Time            string                 `json:"time"`
	Description     string                 `json:"description"`
	ReferenceType   domain.ReferenceType   `json:"referenceType,omitempty"`
	ReferenceID     string                 `json:"referenceID,omitempty"`
	PaymentTypeID   string                 `json:"paymentTypeID,omitempty"`
	CreatedAt       time.Time              `json:"createdAt"`
	CreatedBy       string                 `json:"createdBy"`
}

// ToTransactionResponse converts a domain Transaction to a TransactionResponse DTO
func ToTransactionResponse(txn *domain.Transaction) TransactionResponse {
	return TransactionResponse{
		TransactionID:   txn.TransactionID,
		AccountID:       txn.AccountID,
		TransactionType: txn.TransactionType,
		Amount:          txn.Amount,
		Currency:        txn.Currency,
		ExchangeRate:    txn.ExchangeRate,
		Date:            txn.Date.Format(DateLayout),
		Time:            txn.Time,
		Description:     txn.Description,
		ReferenceType:   txn.ReferenceType,
		ReferenceID:     txn.ReferenceID,
		PaymentTypeID:   txn.PaymentTypeID,
		CreatedAt:       txn.CreatedAt,
		CreatedBy:       txn.CreatedBy,
	}
}

// ToListTransactionResponse converts a slice of domain Transactions to DTOs.
func ToListTransactionResponse(txns []domain.Transaction) []TransactionResponse {
	responses := make([]TransactionResponse, len(txns))
	for i := range txns {
		responses[i] = ToTransactionResponse(&txns[i])
	}
	return responses
}

// BalanceResponse defines the API response for an account balance read.
// Balances stay separate per currency, never combined into one number.
type BalanceResponse struct {
	AccountID string                              `json:"accountID"`
	Balances  map[domain.Currency]decimal.Decimal `json:"balances"`
}

// StatementResponse defines the API response for an account statement.
type StatementResponse struct {
	AccountID    string                `json:"accountID"`
	From         string                `json:"from"`
	To           string                `json:"to"`
	Transactions []TransactionResponse `json:"transactions"`
}
