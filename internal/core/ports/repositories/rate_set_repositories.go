package repositories

import (
	"context"

	"github.com/aegeantours/tour_backoffice_app/internal/core/domain"
)

// RateSetReader defines read operations for currency rate sets
type RateSetReader interface {
	// FindRateSet retrieves the rate set for a tenant and scope.
	// Returns apperrors.ErrNotFound when the set was never initialized.
	FindRateSet(ctx context.Context, tenantID string, scope domain.RateScope) (*domain.CurrencyRateSet, error)
}

// RateSetWriter defines write operations for currency rate sets
type RateSetWriter interface {
	// SaveRateSet upserts the full rate set row. All fields (rates, lock,
	// source, last_updated) change together in one write.
	SaveRateSet(ctx context.Context, set domain.CurrencyRateSet) error
}

// RateSetRepositoryFacade combines all rate set repository interfaces
type RateSetRepositoryFacade interface {
	RateSetReader
	RateSetWriter
}
