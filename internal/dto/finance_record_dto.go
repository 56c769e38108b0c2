package dto

import (
	"github.com/aegeantours/tour_backoffice_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// SaveFinanceRecordRequest defines the structure for creating or updating an
// income/expense record. An empty CariID posts against the münferit bucket.
type SaveFinanceRecordRequest struct {
	CategoryID    string          `json:"categoryID" binding:"required"`
	CariID        string          `json:"cariID"`
	Amount        decimal.Decimal `json:"amount" binding:"required"`
	Currency      domain.Currency `json:"currency" binding:"required,currency"`
	Date          string          `json:"date" binding:"required"` // 2006-01-02
	Description   string          `json:"description"`
	PaymentTypeID string          `json:"paymentTypeID"`
}

// FinanceRecordResponse defines the API response for an income/expense record.
type FinanceRecordResponse struct {
	RecordID      string            `json:"recordID"`
	Kind          domain.RecordKind `json:"kind"`
	CategoryID    string            `json:"categoryID"`
	CariID        string            `json:"cariID,omitempty"`
	Amount        decimal.Decimal   `json:"amount"`
	Currency      domain.Currency   `json:"currency"`
	ExchangeRate  decimal.Decimal   `json:"exchangeRate"`
	Date          string            `json:"date"`
	Description   string            `json:"description"`
	TransactionID string            `json:"transactionID"`
}

// ToFinanceRecordResponse converts a domain FinanceRecord to a FinanceRecordResponse DTO
func ToFinanceRecordResponse(record *domain.FinanceRecord) FinanceRecordResponse {
	return FinanceRecordResponse{
		RecordID:      record.RecordID,
		Kind:          record.Kind,
		CategoryID:    record.CategoryID,
		CariID:        record.CariID,
		Amount:        record.Amount,
		Currency:      record.Currency,
		ExchangeRate:  record.ExchangeRate,
		Date:          record.Date.Format(DateLayout),
		Description:   record.Description,
		TransactionID: record.TransactionID,
	}
}
