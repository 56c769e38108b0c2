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

// PgxRateSetRepository implements the ports.RateSetRepositoryFacade interface using pgxpool.
type PgxRateSetRepository struct {
	BaseRepository
}

// NewPgxRateSetRepository creates a new PgxRateSetRepository.
func NewPgxRateSetRepository(db *pgxpool.Pool) *PgxRateSetRepository {
	return &PgxRateSetRepository{
		BaseRepository: BaseRepository{Pool: db},
	}
}

// FindRateSet retrieves the rate set for a tenant and scope.
func (r *PgxRateSetRepository) FindRateSet(ctx context.Context, tenantID string, scope domain.RateScope) (*domain.CurrencyRateSet, error) {
	var m models.RateSet
	err := r.Pool.QueryRow(ctx, `
		SELECT tenant_id, scope, rates_json, locked, source, last_updated
		FROM currency_rate_sets
		WHERE tenant_id = $1 AND scope = $2`,
		tenantID, string(scope),
	).Scan(&m.TenantID, &m.Scope, &m.Rates, &m.Locked, &m.Source, &m.LastUpdated)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("rate set %s/%s: %w", tenantID, scope, apperrors.ErrNotFound)
		}
		return nil, apperrors.NewAppError(500, "failed to find rate set", err)
	}

	set, err := mapping.ToDomainRateSet(m)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to map rate set", err)
	}
	return &set, nil
}

// SaveRateSet upserts the full rate set row.
func (r *PgxRateSetRepository) SaveRateSet(ctx context.Context, set domain.CurrencyRateSet) error {
	m := mapping.ToModelRateSet(set)
	_, err := r.Pool.Exec(ctx, `
		INSERT INTO currency_rate_sets (tenant_id, scope, rates_json, locked, source, last_updated)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (tenant_id, scope) DO UPDATE SET
			rates_json = EXCLUDED.rates_json,
			locked = EXCLUDED.locked,
			source = EXCLUDED.source,
			last_updated = EXCLUDED.last_updated`,
		m.TenantID, m.Scope, m.Rates, m.Locked, m.Source, m.LastUpdated,
	)
	if err != nil {
		return apperrors.NewAppError(500, "failed to save rate set", err)
	}
	return nil
}
