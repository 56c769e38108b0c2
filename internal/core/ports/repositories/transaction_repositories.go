package repositories

import (
	"context"
	"time"

	"github.com/aegeantours/tour_backoffice_app/internal/core/domain"
)

// TransactionReader defines read operations for ledger transactions
type TransactionReader interface {
	// FindTransactionByID retrieves a transaction by ID within a tenant.
	FindTransactionByID(ctx context.Context, tenantID, transactionID string) (*domain.Transaction, error)

	// FindTransactionsByAccount retrieves an account's transactions within
	// [from, to], ordered by (date, time, created_at) ascending.
	FindTransactionsByAccount(ctx context.Context, tenantID, accountID string, from, to time.Time) ([]domain.Transaction, error)

	// FindTransactionByReference retrieves the transaction linked to an
	// external record.
	FindTransactionByReference(ctx context.Context, tenantID string, refType domain.ReferenceType, refID string) (*domain.Transaction, error)
}

// TransactionWriter defines write operations for ledger transactions
type TransactionWriter interface {
	// ApplyTransaction inserts the transaction row and updates the owning
	// account's balance for the transaction currency in one database
	// transaction, locking the account row so concurrent posts against the
	// same account serialize instead of losing updates.
	ApplyTransaction(ctx context.Context, txn domain.Transaction) error
}

// TransactionRepositoryFacade combines all transaction repository interfaces
type TransactionRepositoryFacade interface {
	TransactionReader
	TransactionWriter
}
