package services

import (
	"context"

	"github.com/aegeantours/tour_backoffice_app/internal/core/domain"
	"github.com/aegeantours/tour_backoffice_app/internal/dto"
	"github.com/shopspring/decimal"
)

// RateStoreReaderSvc defines read operations on the currency rate store.
type RateStoreReaderSvc interface {
	// GetRates never fails with not-found: an uninitialized tenant/scope
	// yields the zero sentinel set (EUR/USD zero, TRY pinned to 1).
	GetRates(ctx context.Context, tenantID string, scope domain.RateScope) (*domain.CurrencyRateSet, error)
}

// RateStoreMutatorSvc defines the mutations on the currency rate store.
// Every successful mutation on the system scope emits exactly one
// rate-changed notification.
type RateStoreMutatorSvc interface {
	// SetManualRates replaces EUR/USD rates. Rejects locked sets and
	// non-positive rates. TRY is forced to 1 regardless of input.
	SetManualRates(ctx context.Context, tenantID string, scope domain.RateScope, req dto.SetRatesRequest, updaterUserID string) (*domain.CurrencyRateSet, error)

	// SetRateLock toggles the lock flag without touching rates or source.
	SetRateLock(ctx context.Context, tenantID string, scope domain.RateScope, locked bool, updaterUserID string) (*domain.CurrencyRateSet, error)

	// RefreshFromQuote propagates a central bank quote into the set.
	// Rejects locked sets and incomplete quotes; all-or-nothing.
	RefreshFromQuote(ctx context.Context, tenantID string, scope domain.RateScope, quote domain.CentralBankQuote, updaterUserID string) (*domain.CurrencyRateSet, error)
}

// RateStoreSvcFacade combines all rate store service interfaces
type RateStoreSvcFacade interface {
	RateStoreReaderSvc
	RateStoreMutatorSvc
}

// RateChangeSubscriber receives rate-changed notifications so callers
// holding cached conversions can invalidate them.
type RateChangeSubscriber interface {
	OnRateChanged(scope domain.RateScope, set domain.CurrencyRateSet)
}

// RateQuoteSvcFacade previews the external central bank quotation. A fetch
// never mutates stored rates; propagation requires an explicit refresh call.
type RateQuoteSvcFacade interface {
	FetchCentralBankQuote(ctx context.Context) (*domain.CentralBankQuote, error)
}

// ConverterSvcFacade is the display-only converter fed by header rates.
// It never touches ledger balances.
type ConverterSvcFacade interface {
	Convert(ctx context.Context, tenantID string, amount decimal.Decimal, from, to domain.Currency) (decimal.Decimal, error)
}
