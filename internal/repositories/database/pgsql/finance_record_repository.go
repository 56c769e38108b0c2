package pgsql

import (
	"context"
	"errors"
	"fmt"

	"github.com/aegeantours/tour_backoffice_app/internal/apperrors"
	"github.com/aegeantours/tour_backoffice_app/internal/core/domain"
	"github.com/aegeantours/tour_backoffice_app/internal/models"
	"github.com/aegeantours/tour_backoffice_app/internal/utils/mapping"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const financeRecordColumns = `record_id, tenant_id, kind, category_id, cari_id, amount, currency,
	exchange_rate, date, description, transaction_id,
	created_at, created_by, last_updated_at, last_updated_by`

// PgxFinanceRecordRepository implements the ports.FinanceRecordRepositoryFacade interface using pgxpool.
type PgxFinanceRecordRepository struct {
	BaseRepository
}

// NewPgxFinanceRecordRepository creates a new PgxFinanceRecordRepository.
func NewPgxFinanceRecordRepository(db *pgxpool.Pool) *PgxFinanceRecordRepository {
	return &PgxFinanceRecordRepository{
		BaseRepository: BaseRepository{Pool: db},
	}
}

// FindFinanceRecordByID retrieves a record by ID within a tenant.
func (r *PgxFinanceRecordRepository) FindFinanceRecordByID(ctx context.Context, tenantID, recordID string) (*domain.FinanceRecord, error) {
	var m models.FinanceRecord
	err := r.Pool.QueryRow(ctx,
		`SELECT `+financeRecordColumns+` FROM finance_records WHERE tenant_id = $1 AND record_id = $2`,
		tenantID, recordID,
	).Scan(
		&m.RecordID, &m.TenantID, &m.Kind, &m.CategoryID, &m.CariID, &m.Amount, &m.Currency,
		&m.ExchangeRate, &m.Date, &m.Description, &m.TransactionID,
		&m.CreatedAt, &m.CreatedBy, &m.LastUpdatedAt, &m.LastUpdatedBy,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("finance record %s: %w", recordID, apperrors.ErrNotFound)
		}
		return nil, apperrors.NewAppError(500, "failed to find finance record", err)
	}
	record := mapping.ToDomainFinanceRecord(m)
	return &record, nil
}

// SaveRecordWithTransactions upserts the record and applies its ledger
// transactions in one database transaction. Either everything lands or
// nothing does, so the record's rate snapshot can never exist without its
// matching transaction snapshot.
func (r *PgxFinanceRecordRepository) SaveRecordWithTransactions(ctx context.Context, record domain.FinanceRecord, txns []domain.Transaction) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = r.Rollback(ctx, tx) }()

	m := mapping.ToModelFinanceRecord(record)
	_, err = tx.Exec(ctx, `
		INSERT INTO finance_records (
			record_id, tenant_id, kind, category_id, cari_id, amount, currency,
			exchange_rate, date, description, transaction_id,
			created_at, created_by, last_updated_at, last_updated_by
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)
		ON CONFLICT (record_id) DO UPDATE SET
			category_id = EXCLUDED.category_id,
			cari_id = EXCLUDED.cari_id,
			amount = EXCLUDED.amount,
			currency = EXCLUDED.currency,
			exchange_rate = EXCLUDED.exchange_rate,
			date = EXCLUDED.date,
			description = EXCLUDED.description,
			transaction_id = EXCLUDED.transaction_id,
			last_updated_at = EXCLUDED.last_updated_at,
			last_updated_by = EXCLUDED.last_updated_by`,
		m.RecordID, m.TenantID, m.Kind, m.CategoryID, m.CariID, m.Amount, m.Currency,
		m.ExchangeRate, m.Date, m.Description, m.TransactionID,
		m.CreatedAt, m.CreatedBy, m.LastUpdatedAt, m.LastUpdatedBy,
	)
	if err != nil {
		return apperrors.NewAppError(500, "failed to save finance record", err)
	}

	for _, txn := range txns {
		if err := applyTransactionTx(ctx, tx, txn); err != nil {
			return err
		}
	}
	return r.Commit(ctx, tx)
}
