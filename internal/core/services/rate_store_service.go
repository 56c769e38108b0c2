package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/aegeantours/tour_backoffice_app/internal/apperrors"
	"github.com/aegeantours/tour_backoffice_app/internal/core/domain"
	portsrepo "github.com/aegeantours/tour_backoffice_app/internal/core/ports/repositories"
	portssvc "github.com/aegeantours/tour_backoffice_app/internal/core/ports/services"
	"github.com/aegeantours/tour_backoffice_app/internal/dto"
	"github.com/aegeantours/tour_backoffice_app/internal/utils"
)

// rateStoreService maintains the two named rate sets per tenant.
type rateStoreService struct {
	BaseService
	rateRepo portsrepo.RateSetRepositoryFacade
	notifier *RateChangeNotifier
	locks    utils.KeyedMutex
}

// NewRateStoreService creates a new rate store service.
func NewRateStoreService(rateRepo portsrepo.RateSetRepositoryFacade, notifier *RateChangeNotifier) portssvc.RateStoreSvcFacade {
	return &rateStoreService{
		rateRepo: rateRepo,
		notifier: notifier,
	}
}

// Ensure rateStoreService implements the RateStoreSvcFacade interface
var _ portssvc.RateStoreSvcFacade = (*rateStoreService)(nil)

func rateLockKey(tenantID string, scope domain.RateScope) string {
	return tenantID + "|" + string(scope)
}

// currentSet loads the stored set, falling back to the zero sentinel when
// the tenant/scope pair was never configured.
func (s *rateStoreService) currentSet(ctx context.Context, tenantID string, scope domain.RateScope) (domain.CurrencyRateSet, error) {
	set, err := s.rateRepo.FindRateSet(ctx, tenantID, scope)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return domain.NewSentinelRateSet(tenantID, scope), nil
		}
		return domain.CurrencyRateSet{}, fmt.Errorf("failed to load rate set: %w", err)
	}
	return *set, nil
}

// GetRates implements portssvc.RateStoreReaderSvc. It never fails with
// not-found; callers must treat a zero EUR/USD rate as "unset".
func (s *rateStoreService) GetRates(ctx context.Context, tenantID string, scope domain.RateScope) (*domain.CurrencyRateSet, error) {
	if !scope.IsValid() {
		return nil, fmt.Errorf("%w: unknown rate scope %q", apperrors.ErrValidation, scope)
	}
	set, err := s.currentSet(ctx, tenantID, scope)
	if err != nil {
		return nil, err
	}
	return &set, nil
}

// SetManualRates implements portssvc.RateStoreMutatorSvc.
func (s *rateStoreService) SetManualRates(ctx context.Context, tenantID string, scope domain.RateScope, req dto.SetRatesRequest, updaterUserID string) (*domain.CurrencyRateSet, error) {
	if !scope.IsValid() {
		return nil, fmt.Errorf("%w: unknown rate scope %q", apperrors.ErrValidation, scope)
	}
	if !req.EUR.IsPositive() || !req.USD.IsPositive() {
		return nil, fmt.Errorf("%w: EUR and USD rates must be positive", apperrors.ErrValidation)
	}

	unlock := s.locks.Lock(rateLockKey(tenantID, scope))
	defer unlock()

	set, err := s.currentSet(ctx, tenantID, scope)
	if err != nil {
		return nil, err
	}
	if set.Locked {
		return nil, fmt.Errorf("%w: %s scope for tenant %s", apperrors.ErrRatesLocked, scope, tenantID)
	}

	set.Rates[domain.EUR] = req.EUR
	set.Rates[domain.USD] = req.USD
	set.Normalize()
	set.Source = domain.RateSourceManual
	set.LastUpdated = time.Now().UTC()

	if err := s.rateRepo.SaveRateSet(ctx, set); err != nil {
		return nil, fmt.Errorf("failed to save manual rates: %w", err)
	}

	s.LogInfo(ctx, "Manual rates set",
		slog.String("tenant_id", tenantID),
		slog.String("scope", string(scope)),
		slog.String("updated_by", updaterUserID))
	s.notifyIfSystem(set)
	return &set, nil
}

// SetRateLock implements portssvc.RateStoreMutatorSvc. Toggling the lock
// never alters rates, source or last_updated; it only gates mutation.
func (s *rateStoreService) SetRateLock(ctx context.Context, tenantID string, scope domain.RateScope, locked bool, updaterUserID string) (*domain.CurrencyRateSet, error) {
	if !scope.IsValid() {
		return nil, fmt.Errorf("%w: unknown rate scope %q", apperrors.ErrValidation, scope)
	}

	unlock := s.locks.Lock(rateLockKey(tenantID, scope))
	defer unlock()

	set, err := s.currentSet(ctx, tenantID, scope)
	if err != nil {
		return nil, err
	}
	set.Locked = locked

	if err := s.rateRepo.SaveRateSet(ctx, set); err != nil {
		return nil, fmt.Errorf("failed to save rate lock: %w", err)
	}

	s.LogInfo(ctx, "Rate lock toggled",
		slog.String("tenant_id", tenantID),
		slog.String("scope", string(scope)),
		slog.Bool("locked", locked),
		slog.String("updated_by", updaterUserID))
	s.notifyIfSystem(set)
	return &set, nil
}

// RefreshFromQuote implements portssvc.RateStoreMutatorSvc. Refresh is
// all-or-nothing: an incomplete quote leaves the stored set untouched.
func (s *rateStoreService) RefreshFromQuote(ctx context.Context, tenantID string, scope domain.RateScope, quote domain.CentralBankQuote, updaterUserID string) (*domain.CurrencyRateSet, error) {
	if !scope.IsValid() {
		return nil, fmt.Errorf("%w: unknown rate scope %q", apperrors.ErrValidation, scope)
	}
	if !quote.IsComplete() {
		return nil, fmt.Errorf("%w: EUR=%s USD=%s", apperrors.ErrStaleQuote, quote.EUR.String(), quote.USD.String())
	}

	unlock := s.locks.Lock(rateLockKey(tenantID, scope))
	defer unlock()

	set, err := s.currentSet(ctx, tenantID, scope)
	if err != nil {
		return nil, err
	}
	if set.Locked {
		return nil, fmt.Errorf("%w: %s scope for tenant %s", apperrors.ErrRatesLocked, scope, tenantID)
	}

	set.Rates[domain.EUR] = quote.EUR
	set.Rates[domain.USD] = quote.USD
	set.Normalize()
	set.Source = domain.RateSourceCentralBank
	set.LastUpdated = time.Now().UTC()

	if err := s.rateRepo.SaveRateSet(ctx, set); err != nil {
		return nil, fmt.Errorf("failed to save refreshed rates: %w", err)
	}

	s.LogInfo(ctx, "Rates refreshed from central bank quote",
		slog.String("tenant_id", tenantID),
		slog.String("scope", string(scope)),
		slog.String("updated_by", updaterUserID))
	s.notifyIfSystem(set)
	return &set, nil
}

// notifyIfSystem emits the rate-changed event for system-scope mutations.
// Header rates feed only the display converter, so no event is needed.
func (s *rateStoreService) notifyIfSystem(set domain.CurrencyRateSet) {
	if s.notifier != nil && set.Scope == domain.RateScopeSystem {
		s.notifier.Notify(set.Scope, set)
	}
}
