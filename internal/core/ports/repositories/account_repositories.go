package repositories

import (
	"context"

	"github.com/aegeantours/tour_backoffice_app/internal/core/domain"
)

// AccountReader defines read operations for ledger accounts
type AccountReader interface {
	// FindAccountByID retrieves an account by ID within a tenant.
	FindAccountByID(ctx context.Context, tenantID, accountID string) (*domain.LedgerAccount, error)

	// FindAccountByName retrieves an account by display name within a tenant.
	FindAccountByName(ctx context.Context, tenantID, displayName string) (*domain.LedgerAccount, error)

	// FindMunferitAccount retrieves the tenant's distinguished münferit account.
	FindMunferitAccount(ctx context.Context, tenantID string) (*domain.LedgerAccount, error)

	// ListAccounts retrieves all accounts of a tenant, optionally including
	// archived ones.
	ListAccounts(ctx context.Context, tenantID string, includeArchived bool) ([]domain.LedgerAccount, error)
}

// AccountWriter defines write operations for ledger accounts
type AccountWriter interface {
	// SaveAccount inserts a new account.
	SaveAccount(ctx context.Context, account domain.LedgerAccount) error

	// ArchiveAccount flags an account as archived. Accounts are never
	// hard-deleted while transactions reference them.
	ArchiveAccount(ctx context.Context, tenantID, accountID, updaterUserID string) error
}

// AccountRepositoryFacade combines all account repository interfaces
type AccountRepositoryFacade interface {
	AccountReader
	AccountWriter
}
