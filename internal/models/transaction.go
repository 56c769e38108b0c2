package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Transaction is the persisted form of a ledger transaction. Rows are
// insert-only; corrections are new offsetting rows.
type Transaction struct {
	TransactionID   string          `db:"transaction_id"`
	TenantID        string          `db:"tenant_id"`
	AccountID       string          `db:"account_id"`
	TransactionType string          `db:"type"`
	Amount          decimal.Decimal `db:"amount"`
	Currency        string          `db:"currency"`
	ExchangeRate    decimal.Decimal `db:"exchange_rate"`
	Date            time.Time       `db:"date"`
	Time            string          `db:"time"`
	Description     string          `db:"description"`
	ReferenceType   string          `db:"reference_type"` // Nullable
	ReferenceID     string          `db:"reference_id"`   // Nullable
	PaymentTypeID   string          `db:"payment_type_id"`
	AuditFields
}
