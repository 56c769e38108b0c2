package services

import (
	"context"
	"fmt"

	"github.com/aegeantours/tour_backoffice_app/internal/apperrors"
	"github.com/aegeantours/tour_backoffice_app/internal/core/domain"
	portssvc "github.com/aegeantours/tour_backoffice_app/internal/core/ports/services"
	"github.com/shopspring/decimal"
)

// converterService is the informational currency converter behind the
// header widget. It reads header-scope rates only and never touches the
// ledger; system rates price postings, header rates price nothing.
type converterService struct {
	BaseService
	rateStore portssvc.RateStoreReaderSvc
}

// NewConverterService creates a new converter service.
func NewConverterService(rateStore portssvc.RateStoreReaderSvc) portssvc.ConverterSvcFacade {
	return &converterService{rateStore: rateStore}
}

// Ensure converterService implements the ConverterSvcFacade interface
var _ portssvc.ConverterSvcFacade = (*converterService)(nil)

// Convert implements portssvc.ConverterSvcFacade. Conversion goes through
// TRY: amount * rate[from] / rate[to], rounded to 4 fraction digits.
func (s *converterService) Convert(ctx context.Context, tenantID string, amount decimal.Decimal, from, to domain.Currency) (decimal.Decimal, error) {
	if !from.IsSupported() || !to.IsSupported() {
		return decimal.Zero, fmt.Errorf("%w: %s -> %s", apperrors.ErrInvalidCurrency, from, to)
	}
	if from == to {
		return amount, nil
	}

	set, err := s.rateStore.GetRates(ctx, tenantID, domain.RateScopeHeader)
	if err != nil {
		return decimal.Zero, err
	}
	if !set.IsConfigured(from) || !set.IsConfigured(to) {
		return decimal.Zero, fmt.Errorf("%w: header rates for %s/%s", apperrors.ErrRateNotConfigured, from, to)
	}

	tryValue := amount.Mul(set.RateFor(from))
	return tryValue.DivRound(set.RateFor(to), 4), nil
}
