package services

import (
	"context"
	"time"

	"github.com/aegeantours/tour_backoffice_app/internal/core/domain"
	"github.com/aegeantours/tour_backoffice_app/internal/dto"
	"github.com/shopspring/decimal"
)

// LedgerSvcFacade applies transactions to ledger accounts and serves the
// balance and statement views.
type LedgerSvcFacade interface {
	// PostTransaction validates and posts one transaction, snapshotting the
	// system exchange rate for its currency. Posts against the same account
	// are serialized; a failed validation writes nothing.
	PostTransaction(ctx context.Context, tenantID string, req dto.PostTransactionRequest, creatorUserID string) (*domain.Transaction, error)

	// GetBalance returns the account's signed balance per currency.
	GetBalance(ctx context.Context, tenantID, accountID string) (map[domain.Currency]decimal.Decimal, error)

	// GetStatement returns the account's transactions within [from, to],
	// ordered by (date, time, insertion order) ascending.
	GetStatement(ctx context.Context, tenantID, accountID string, from, to time.Time) ([]domain.Transaction, error)

	// VerifyRateConsistency compares a finance record's exchange rate with
	// the snapshot on its linked transaction. Flags, never fixes.
	VerifyRateConsistency(ctx context.Context, tenantID string, refType domain.ReferenceType, refID string) (*domain.RateDiscrepancy, error)
}

// AccountSvcFacade manages the cari/individual account book.
type AccountSvcFacade interface {
	CreateAccount(ctx context.Context, tenantID string, req dto.CreateAccountRequest, creatorUserID string) (*domain.LedgerAccount, error)
	GetAccount(ctx context.Context, tenantID, accountID string) (*domain.LedgerAccount, error)
	ListAccounts(ctx context.Context, tenantID string, includeArchived bool) ([]domain.LedgerAccount, error)

	// ArchiveAccount flags the account; history stays queryable.
	ArchiveAccount(ctx context.Context, tenantID, accountID, updaterUserID string) error
}

// FinanceRecordSvcFacade manages income/expense records and their linked
// ledger transactions.
type FinanceRecordSvcFacade interface {
	// CreateFinanceRecord writes the record and posts its linked
	// transaction atomically, both carrying the same rate snapshot.
	CreateFinanceRecord(ctx context.Context, tenantID string, kind domain.RecordKind, req dto.SaveFinanceRecordRequest, creatorUserID string) (*domain.FinanceRecord, error)

	// UpdateFinanceRecord posts an offsetting transaction for the old
	// amount plus a fresh one at the current snapshot; the original
	// transaction rows stay immutable.
	UpdateFinanceRecord(ctx context.Context, tenantID string, kind domain.RecordKind, recordID string, req dto.SaveFinanceRecordRequest, updaterUserID string) (*domain.FinanceRecord, error)
}
