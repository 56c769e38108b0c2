package dto

import (
	"time"

	"github.com/aegeantours/tour_backoffice_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// SetRatesRequest defines the structure for manually setting EUR/USD rates.
// TRY is pinned to 1 server-side regardless of input.
type SetRatesRequest struct {
	EUR decimal.Decimal `json:"eur" binding:"required"`
	USD decimal.Decimal `json:"usd" binding:"required"`
}

// SetRateLockRequest toggles the lock flag of a rate set.
type SetRateLockRequest struct {
	Locked *bool `json:"locked" binding:"required"`
}

// RateSetResponse defines the API response for a currency rate set.
type RateSetResponse struct {
	Scope       domain.RateScope                    `json:"scope"`
	Rates       map[domain.Currency]decimal.Decimal `json:"rates"`
	Locked      bool                                `json:"locked"`
	Source      domain.RateSource                   `json:"source"`
	LastUpdated time.Time                           `json:"lastUpdated"`
}

// ToRateSetResponse converts a domain CurrencyRateSet to a RateSetResponse DTO
func ToRateSetResponse(set *domain.CurrencyRateSet) RateSetResponse {
	return RateSetResponse{
		Scope:       set.Scope,
		Rates:       set.Rates,
		Locked:      set.Locked,
		Source:      set.Source,
		LastUpdated: set.LastUpdated,
	}
}

// QuoteResponse defines the API response for a central bank quote preview.
type QuoteResponse struct {
	EUR      decimal.Decimal `json:"eur"`
	USD      decimal.Decimal `json:"usd"`
	QuotedAt time.Time       `json:"quotedAt"`
}

// ToQuoteResponse converts a domain CentralBankQuote to a QuoteResponse DTO
func ToQuoteResponse(q *domain.CentralBankQuote) QuoteResponse {
	return QuoteResponse{EUR: q.EUR, USD: q.USD, QuotedAt: q.QuotedAt}
}

// ConvertResponse defines the API response of the header-rate converter.
type ConvertResponse struct {
	Amount    decimal.Decimal `json:"amount"`
	From      domain.Currency `json:"from"`
	To        domain.Currency `json:"to"`
	Converted decimal.Decimal `json:"converted"`
}
