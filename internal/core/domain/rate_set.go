package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// RateScope names one of the two independently managed rate sets per tenant.
// System rates price every transactional posting; header rates feed only the
// display converter and never touch balances.
type RateScope string

const (
	RateScopeSystem RateScope = "system"
	RateScopeHeader RateScope = "header"
)

// IsValid reports whether the scope is one of the two known scopes.
func (s RateScope) IsValid() bool {
	return s == RateScopeSystem || s == RateScopeHeader
}

// RateSource records where the current rates of a set came from.
type RateSource string

const (
	RateSourceManual      RateSource = "manual"
	RateSourceCentralBank RateSource = "central_bank"
)

// CurrencyRateSet holds the TRY-denominated rates of one scope for one tenant.
// Invariant: Rates[TRY] == 1 at all times. A zero EUR/USD rate is the
// "not yet configured" sentinel, never a valid trading rate.
type CurrencyRateSet struct {
	TenantID    string                       `json:"tenantID"`
	Scope       RateScope                    `json:"scope"`
	Rates       map[Currency]decimal.Decimal `json:"rates"`
	Locked      bool                         `json:"locked"`
	Source      RateSource                   `json:"source"`
	LastUpdated time.Time                    `json:"lastUpdated"`
}

// NewSentinelRateSet returns the all-unset rate set served for a tenant/scope
// that was never configured. TRY stays pinned to 1.
func NewSentinelRateSet(tenantID string, scope RateScope) CurrencyRateSet {
	return CurrencyRateSet{
		TenantID: tenantID,
		Scope:    scope,
		Rates: map[Currency]decimal.Decimal{
			EUR: decimal.Zero,
			USD: decimal.Zero,
			TRY: decimal.NewFromInt(1),
		},
	}
}

// RateFor returns the stored rate for a currency, zero when absent.
func (s CurrencyRateSet) RateFor(c Currency) decimal.Decimal {
	if s.Rates == nil {
		return decimal.Zero
	}
	return s.Rates[c]
}

// IsConfigured reports whether the set carries a usable rate for the currency.
func (s CurrencyRateSet) IsConfigured(c Currency) bool {
	return s.RateFor(c).IsPositive()
}

// Normalize pins TRY back to 1 regardless of what a caller supplied.
func (s *CurrencyRateSet) Normalize() {
	if s.Rates == nil {
		s.Rates = make(map[Currency]decimal.Decimal, len(SupportedCurrencies))
	}
	s.Rates[TRY] = decimal.NewFromInt(1)
}
