package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// CentralBankQuote is a read-only preview of the TCMB daily quotation.
// It is never written to the rate store without an explicit operator confirm.
type CentralBankQuote struct {
	EUR      decimal.Decimal `json:"eur"` // TRY per EUR
	USD      decimal.Decimal `json:"usd"` // TRY per USD
	QuotedAt time.Time       `json:"quotedAt"`
}

// IsComplete reports whether both legs carry a usable positive rate.
// A refresh from an incomplete quote is rejected wholesale.
func (q CentralBankQuote) IsComplete() bool {
	return q.EUR.IsPositive() && q.USD.IsPositive()
}
