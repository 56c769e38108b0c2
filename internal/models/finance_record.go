package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// FinanceRecord is the persisted form of an income or expense record.
type FinanceRecord struct {
	RecordID      string          `db:"record_id"`
	TenantID      string          `db:"tenant_id"`
	Kind          string          `db:"kind"`
	CategoryID    string          `db:"category_id"`
	CariID        string          `db:"cari_id"` // Empty -> münferit bucket
	Amount        decimal.Decimal `db:"amount"`
	Currency      string          `db:"currency"`
	ExchangeRate  decimal.Decimal `db:"exchange_rate"`
	Date          time.Time       `db:"date"`
	Description   string          `db:"description"`
	TransactionID string          `db:"transaction_id"`
	AuditFields
}
