package domain

// Currency identifies one of the three currencies the ledger operates in.
type Currency string

const (
	EUR Currency = "EUR"
	USD Currency = "USD"
	TRY Currency = "TRY"
)

// SupportedCurrencies lists every currency a transaction may be denominated in.
var SupportedCurrencies = []Currency{EUR, USD, TRY}

// IsSupported reports whether the currency is one the ledger accepts.
func (c Currency) IsSupported() bool {
	switch c {
	case EUR, USD, TRY:
		return true
	}
	return false
}
