package pgsql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/aegeantours/tour_backoffice_app/internal/apperrors"
	"github.com/aegeantours/tour_backoffice_app/internal/core/domain"
	"github.com/aegeantours/tour_backoffice_app/internal/models"
	"github.com/aegeantours/tour_backoffice_app/internal/utils/mapping"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const accountColumns = `account_id, tenant_id, kind, display_name, balances_json, munferit, archived,
	created_at, created_by, last_updated_at, last_updated_by`

// PgxAccountRepository implements the ports.AccountRepositoryFacade interface using pgxpool.
type PgxAccountRepository struct {
	BaseRepository
}

// NewPgxAccountRepository creates a new PgxAccountRepository.
func NewPgxAccountRepository(db *pgxpool.Pool) *PgxAccountRepository {
	return &PgxAccountRepository{
		BaseRepository: BaseRepository{Pool: db},
	}
}

func scanAccount(row pgx.Row) (models.Account, error) {
	var m models.Account
	err := row.Scan(
		&m.AccountID, &m.TenantID, &m.Kind, &m.DisplayName, &m.Balances, &m.Munferit, &m.Archived,
		&m.CreatedAt, &m.CreatedBy, &m.LastUpdatedAt, &m.LastUpdatedBy,
	)
	return m, err
}

func (r *PgxAccountRepository) findOne(ctx context.Context, query string, args ...any) (*domain.LedgerAccount, error) {
	m, err := scanAccount(r.Pool.QueryRow(ctx, query, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewAppError(500, "failed to find account", err)
	}
	account, err := mapping.ToDomainAccount(m)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to map account", err)
	}
	return &account, nil
}

// FindAccountByID retrieves an account by ID within a tenant.
func (r *PgxAccountRepository) FindAccountByID(ctx context.Context, tenantID, accountID string) (*domain.LedgerAccount, error) {
	account, err := r.findOne(ctx,
		`SELECT `+accountColumns+` FROM ledger_accounts WHERE tenant_id = $1 AND account_id = $2`,
		tenantID, accountID,
	)
	if errors.Is(err, apperrors.ErrNotFound) {
		return nil, fmt.Errorf("account %s: %w", accountID, apperrors.ErrNotFound)
	}
	return account, err
}

// FindAccountByName retrieves an account by display name within a tenant.
func (r *PgxAccountRepository) FindAccountByName(ctx context.Context, tenantID, displayName string) (*domain.LedgerAccount, error) {
	account, err := r.findOne(ctx,
		`SELECT `+accountColumns+` FROM ledger_accounts WHERE tenant_id = $1 AND display_name = $2`,
		tenantID, displayName,
	)
	if errors.Is(err, apperrors.ErrNotFound) {
		return nil, fmt.Errorf("account %q: %w", displayName, apperrors.ErrNotFound)
	}
	return account, err
}

// FindMunferitAccount retrieves the tenant's distinguished münferit account.
func (r *PgxAccountRepository) FindMunferitAccount(ctx context.Context, tenantID string) (*domain.LedgerAccount, error) {
	account, err := r.findOne(ctx,
		`SELECT `+accountColumns+` FROM ledger_accounts WHERE tenant_id = $1 AND munferit = TRUE`,
		tenantID,
	)
	if errors.Is(err, apperrors.ErrNotFound) {
		return nil, fmt.Errorf("münferit account for tenant %s: %w", tenantID, apperrors.ErrNotFound)
	}
	return account, err
}

// ListAccounts retrieves all accounts of a tenant.
func (r *PgxAccountRepository) ListAccounts(ctx context.Context, tenantID string, includeArchived bool) ([]domain.LedgerAccount, error) {
	query := `SELECT ` + accountColumns + ` FROM ledger_accounts WHERE tenant_id = $1`
	if !includeArchived {
		query += ` AND archived = FALSE`
	}
	query += ` ORDER BY display_name ASC`

	rows, err := r.Pool.Query(ctx, query, tenantID)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to list accounts", err)
	}
	defer rows.Close()

	var accounts []domain.LedgerAccount
	for rows.Next() {
		m, err := scanAccount(rows)
		if err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan account", err)
		}
		account, err := mapping.ToDomainAccount(m)
		if err != nil {
			return nil, apperrors.NewAppError(500, "failed to map account", err)
		}
		accounts = append(accounts, account)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "failed to iterate accounts", err)
	}
	return accounts, nil
}

// SaveAccount inserts a new account.
func (r *PgxAccountRepository) SaveAccount(ctx context.Context, account domain.LedgerAccount) error {
	m := mapping.ToModelAccount(account)
	_, err := r.Pool.Exec(ctx, `
		INSERT INTO ledger_accounts (
			account_id, tenant_id, kind, display_name, balances_json, munferit, archived,
			created_at, created_by, last_updated_at, last_updated_by
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`,
		m.AccountID, m.TenantID, m.Kind, m.DisplayName, m.Balances, m.Munferit, m.Archived,
		m.CreatedAt, m.CreatedBy, m.LastUpdatedAt, m.LastUpdatedBy,
	)
	if err != nil {
		return apperrors.NewAppError(500, "failed to save account", err)
	}
	return nil
}

// ArchiveAccount flags an account as archived.
func (r *PgxAccountRepository) ArchiveAccount(ctx context.Context, tenantID, accountID, updaterUserID string) error {
	tag, err := r.Pool.Exec(ctx, `
		UPDATE ledger_accounts
		SET archived = TRUE, last_updated_at = $1, last_updated_by = $2
		WHERE tenant_id = $3 AND account_id = $4`,
		time.Now().UTC(), updaterUserID, tenantID, accountID,
	)
	if err != nil {
		return apperrors.NewAppError(500, "failed to archive account", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("account %s: %w", accountID, apperrors.ErrNotFound)
	}
	return nil
}
