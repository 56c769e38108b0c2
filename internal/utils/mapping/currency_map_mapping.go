package mapping

import (
	"fmt"

	"github.com/aegeantours/tour_backoffice_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// ToStringAmountMap converts a per-currency decimal map to the JSON form
// persisted in rates_json/balances_json columns: fixed-point decimal strings
// keyed by currency code.
func ToStringAmountMap(d map[domain.Currency]decimal.Decimal) map[string]string {
	m := make(map[string]string, len(d))
	for c, amt := range d {
		m[string(c)] = amt.String()
	}
	return m
}

// ToDecimalAmountMap parses a persisted decimal-string map back into a
// per-currency decimal map. Unknown currency keys are rejected.
func ToDecimalAmountMap(m map[string]string) (map[domain.Currency]decimal.Decimal, error) {
	d := make(map[domain.Currency]decimal.Decimal, len(m))
	for code, raw := range m {
		c := domain.Currency(code)
		if !c.IsSupported() {
			return nil, fmt.Errorf("unsupported currency %q in stored map", code)
		}
		amt, err := decimal.NewFromString(raw)
		if err != nil {
			return nil, fmt.Errorf("invalid decimal %q for currency %s: %w", raw, code, err)
		}
		d[c] = amt
	}
	return d, nil
}
