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

const transactionColumns = `transaction_id, tenant_id, account_id, type, amount, currency, exchange_rate,
	date, time, description, reference_type, reference_id, payment_type_id,
	created_at, created_by, last_updated_at, last_updated_by`

// PgxTransactionRepository implements the ports.TransactionRepositoryFacade interface using pgxpool.
type PgxTransactionRepository struct {
	BaseRepository
}

// NewPgxTransactionRepository creates a new PgxTransactionRepository.
func NewPgxTransactionRepository(db *pgxpool.Pool) *PgxTransactionRepository {
	return &PgxTransactionRepository{
		BaseRepository: BaseRepository{Pool: db},
	}
}

func scanTransaction(row pgx.Row) (models.Transaction, error) {
	var m models.Transaction
	err := row.Scan(
		&m.TransactionID, &m.TenantID, &m.AccountID, &m.TransactionType, &m.Amount, &m.Currency, &m.ExchangeRate,
		&m.Date, &m.Time, &m.Description, &m.ReferenceType, &m.ReferenceID, &m.PaymentTypeID,
		&m.CreatedAt, &m.CreatedBy, &m.LastUpdatedAt, &m.LastUpdatedBy,
	)
	return m, err
}

// FindTransactionByID retrieves a transaction by ID within a tenant.
func (r *PgxTransactionRepository) FindTransactionByID(ctx context.Context, tenantID, transactionID string) (*domain.Transaction, error) {
	m, err := scanTransaction(r.Pool.QueryRow(ctx,
		`SELECT `+transactionColumns+` FROM transactions WHERE tenant_id = $1 AND transaction_id = $2`,
		tenantID, transactionID,
	))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("transaction %s: %w", transactionID, apperrors.ErrNotFound)
		}
		return nil, apperrors.NewAppError(500, "failed to find transaction", err)
	}
	txn := mapping.ToDomainTransaction(m)
	return &txn, nil
}

// FindTransactionsByAccount retrieves an account's transactions within
// [from, to] ordered by (date, time, created_at) ascending, so same-day rows
// keep their wall-clock and insertion order.
func (r *PgxTransactionRepository) FindTransactionsByAccount(ctx context.Context, tenantID, accountID string, from, to time.Time) ([]domain.Transaction, error) {
	rows, err := r.Pool.Query(ctx, `
		SELECT `+transactionColumns+`
		FROM transactions
		WHERE tenant_id = $1 AND account_id = $2 AND date >= $3 AND date <= $4
		ORDER BY date ASC, time ASC, created_at ASC`,
		tenantID, accountID, from, to,
	)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query transactions", err)
	}
	defer rows.Close()

	return collectTransactions(rows)
}

// FindTransactionByReference retrieves the most recent transaction linked to
// an external record.
func (r *PgxTransactionRepository) FindTransactionByReference(ctx context.Context, tenantID string, refType domain.ReferenceType, refID string) (*domain.Transaction, error) {
	m, err := scanTransaction(r.Pool.QueryRow(ctx, `
		SELECT `+transactionColumns+`
		FROM transactions
		WHERE tenant_id = $1 AND reference_type = $2 AND reference_id = $3
		ORDER BY created_at DESC
		LIMIT 1`,
		tenantID, string(refType), refID,
	))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("transaction for %s %s: %w", refType, refID, apperrors.ErrNotFound)
		}
		return nil, apperrors.NewAppError(500, "failed to find transaction by reference", err)
	}
	txn := mapping.ToDomainTransaction(m)
	return &txn, nil
}

func collectTransactions(rows pgx.Rows) ([]domain.Transaction, error) {
	var txns []domain.Transaction
	for rows.Next() {
		m, err := scanTransaction(rows)
		if err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan transaction", err)
		}
		txns = append(txns, mapping.ToDomainTransaction(m))
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "failed to iterate transactions", err)
	}
	return txns, nil
}

// ApplyTransaction inserts the transaction row and updates the owning
// account's balance in one database transaction. The account row is locked
// first so concurrent posts serialize at the database as well.
func (r *PgxTransactionRepository) ApplyTransaction(ctx context.Context, txn domain.Transaction) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = r.Rollback(ctx, tx) }()

	if err := applyTransactionTx(ctx, tx, txn); err != nil {
		return err
	}
	return r.Commit(ctx, tx)
}

// applyTransactionTx runs the insert-and-rebalance inside an existing
// database transaction. Shared with the finance record repository so a
// record and its linked transactions commit atomically.
func applyTransactionTx(ctx context.Context, tx pgx.Tx, txn domain.Transaction) error {
	var balances map[string]string
	err := tx.QueryRow(ctx, `
		SELECT balances_json FROM ledger_accounts
		WHERE tenant_id = $1 AND account_id = $2
		FOR UPDATE`,
		txn.TenantID, txn.AccountID,
	).Scan(&balances)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return fmt.Errorf("account %s: %w", txn.AccountID, apperrors.ErrNotFound)
		}
		return apperrors.NewAppError(500, "failed to lock account row", err)
	}

	decimals, err := mapping.ToDecimalAmountMap(balances)
	if err != nil {
		return apperrors.NewAppError(500, "failed to parse account balances", err)
	}
	decimals[txn.Currency] = decimals[txn.Currency].Add(txn.SignedAmount())

	m := mapping.ToModelTransaction(txn)
	_, err = tx.Exec(ctx, `
		INSERT INTO transactions (
			transaction_id, tenant_id, account_id, type, amount, currency, exchange_rate,
			date, time, description, reference_type, reference_id, payment_type_id,
			created_at, created_by, last_updated_at, last_updated_by
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17)`,
		m.TransactionID, m.TenantID, m.AccountID, m.TransactionType, m.Amount, m.Currency, m.ExchangeRate,
		m.Date, m.Time, m.Description, m.ReferenceType, m.ReferenceID, m.PaymentTypeID,
		m.CreatedAt, m.CreatedBy, m.LastUpdatedAt, m.LastUpdatedBy,
	)
	if err != nil {
		return apperrors.NewAppError(500, "failed to insert transaction", err)
	}

	_, err = tx.Exec(ctx, `
		UPDATE ledger_accounts
		SET balances_json = $1, last_updated_at = $2, last_updated_by = $3
		WHERE tenant_id = $4 AND account_id = $5`,
		mapping.ToStringAmountMap(decimals), txn.LastUpdatedAt, txn.LastUpdatedBy,
		txn.TenantID, txn.AccountID,
	)
	if err != nil {
		return apperrors.NewAppError(500, "failed to update account balance", err)
	}
	return nil
}
