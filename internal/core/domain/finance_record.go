package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// RecordKind distinguishes income records from expense records.
type RecordKind string

const (
	RecordIncome  RecordKind = "INCOME"
	RecordExpense RecordKind = "EXPENSE"
)

// FinanceRecord is an income or expense entry tied to a category and
// optionally to a specific cari account. When no cari is chosen the record
// posts against the tenant's münferit bucket. It carries its own exchange
// rate snapshot which must agree with the linked transaction's snapshot at
// write time; VerifyRateConsistency flags any later divergence.
type FinanceRecord struct {
	RecordID     string          `json:"recordID"`
	TenantID     string          `json:"tenantID"`
	Kind         RecordKind      `json:"kind"`
	CategoryID   string          `json:"categoryID"`
	CariID       string          `json:"cariID,omitempty"` // Empty -> münferit bucket
	Amount       decimal.Decimal `json:"amount"`
	Currency     Currency        `json:"currency"`
	ExchangeRate decimal.Decimal `json:"exchangeRate"`
	Date         time.Time       `json:"date"`
	Description  string          `json:"description"`
	// TransactionID links the ledger transaction posted alongside this record.
	TransactionID string `json:"transactionID"`
	AuditFields
}

// RateDiscrepancy is the result of a rate reconciliation check between a
// finance record and its linked transaction. Discrepancies are reported,
// never silently corrected.
type RateDiscrepancy struct {
	ReferenceType   ReferenceType   `json:"referenceType"`
	ReferenceID     string          `json:"referenceID"`
	RecordRate      decimal.Decimal `json:"recordRate"`
	TransactionRate decimal.Decimal `json:"transactionRate"`
	Consistent      bool            `json:"consistent"`
}
