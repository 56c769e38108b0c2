package pgsql

import (
	"context"
	"time"

	"github.com/aegeantours/tour_backoffice_app/internal/apperrors"
	"github.com/aegeantours/tour_backoffice_app/internal/core/domain"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
)

// PgxReportingRepository implements the ports.ReportingRepository interface using pgxpool.
type PgxReportingRepository struct {
	BaseRepository
}

// NewPgxReportingRepository creates a new PgxReportingRepository.
func NewPgxReportingRepository(db *pgxpool.Pool) *PgxReportingRepository {
	return &PgxReportingRepository{
		BaseRepository: BaseRepository{Pool: db},
	}
}

// FindTransactionsInRange retrieves all tenant transactions with date in
// [from, to], ordered by (date, time, created_at) ascending.
func (r *PgxReportingRepository) FindTransactionsInRange(ctx context.Context, tenantID string, from, to time.Time) ([]domain.Transaction, error) {
	rows, err := r.Pool.Query(ctx, `
		SELECT `+transactionColumns+`
		FROM transactions
		WHERE tenant_id = $1 AND date >= $2 AND date <= $3
		ORDER BY date ASC, time ASC, created_at ASC`,
		tenantID, from, to,
	)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query transactions in range", err)
	}
	defer rows.Close()

	return collectTransactions(rows)
}

// NetFlowBefore sums inflow-positive signed amounts per currency for dates
// strictly before the given date. Payment and credit count positive, debit
// and refund negative, matching the cash flow report's sign convention.
func (r *PgxReportingRepository) NetFlowBefore(ctx context.Context, tenantID string, before time.Time) (domain.CurrencyAmounts, error) {
	rows, err := r.Pool.Query(ctx, `
		SELECT currency,
			COALESCE(SUM(CASE WHEN type IN ('PAYMENT', 'CREDIT') THEN amount ELSE -amount END), 0)
		FROM transactions
		WHERE tenant_id = $1 AND date < $2
		GROUP BY currency`,
		tenantID, before,
	)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to compute net flow", err)
	}
	defer rows.Close()

	amounts := domain.NewCurrencyAmounts()
	for rows.Next() {
		var currency string
		var net decimal.Decimal
		if err := rows.Scan(&currency, &net); err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan net flow row", err)
		}
		amounts[domain.Currency(currency)] = net
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "failed to iterate net flow rows", err)
	}
	return amounts, nil
}

// CountSalesBefore counts debit transactions per account for dates strictly
// before the given date.
func (r *PgxReportingRepository) CountSalesBefore(ctx context.Context, tenantID string, before time.Time) (map[string]int, error) {
	rows, err := r.Pool.Query(ctx, `
		SELECT account_id, COUNT(*)
		FROM transactions
		WHERE tenant_id = $1 AND type = 'DEBIT' AND date < $2
		GROUP BY account_id`,
		tenantID, before,
	)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to count prior sales", err)
	}
	defer rows.Close()

	counts := make(map[string]int)
	for rows.Next() {
		var accountID string
		var count int
		if err := rows.Scan(&accountID, &count); err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan sales count row", err)
		}
		counts[accountID] = count
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "failed to iterate sales count rows", err)
	}
	return counts, nil
}
