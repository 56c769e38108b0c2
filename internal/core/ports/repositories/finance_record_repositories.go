package repositories

import (
	"context"

	"github.com/aegeantours/tour_backoffice_app/internal/core/domain"
)

// FinanceRecordReader defines read operations for income/expense records
type FinanceRecordReader interface {
	// FindFinanceRecordByID retrieves a record by ID within a tenant.
	FindFinanceRecordByID(ctx context.Context, tenantID, recordID string) (*domain.FinanceRecord, error)
}

// FinanceRecordWriter defines write operations for income/expense records
type FinanceRecordWriter interface {
	// SaveRecordWithTransactions upserts the record and applies the given
	// ledger transactions atomically, so the record's rate snapshot and the
	// transaction's snapshot are written co-temporally.
	SaveRecordWithTransactions(ctx context.Context, record domain.FinanceRecord, txns []domain.Transaction) error
}

// FinanceRecordRepositoryFacade combines all finance record repository interfaces
type FinanceRecordRepositoryFacade interface {
	FinanceRecordReader
	FinanceRecordWriter
}
