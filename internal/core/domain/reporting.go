package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// BucketSize is the time partition used when grouping transactions for
// trend reports.
type BucketSize string

const (
	BucketDaily   BucketSize = "daily"
	BucketWeekly  BucketSize = "weekly"
	BucketMonthly BucketSize = "monthly"
)

// IsValid reports whether the bucket size is a known granularity.
func (b BucketSize) IsValid() bool {
	switch b {
	case BucketDaily, BucketWeekly, BucketMonthly:
		return true
	}
	return false
}

// CurrencyAmounts keeps one decimal per currency. Report totals are only
// combined for display, never summed across currencies.
type CurrencyAmounts map[Currency]decimal.Decimal

// NewCurrencyAmounts returns a zero-filled amounts map for every supported
// currency. Empty result sets return these, never nil.
func NewCurrencyAmounts() CurrencyAmounts {
	amounts := make(CurrencyAmounts, len(SupportedCurrencies))
	for _, c := range SupportedCurrencies {
		amounts[c] = decimal.Zero
	}
	return amounts
}

// Add accumulates amt into the bucket for currency c.
func (m CurrencyAmounts) Add(c Currency, amt decimal.Decimal) {
	m[c] = m[c].Add(amt)
}

// Clone returns an independent copy.
func (m CurrencyAmounts) Clone() CurrencyAmounts {
	cloned := make(CurrencyAmounts, len(m))
	for c, amt := range m {
		cloned[c] = amt
	}
	return cloned
}

// CashFlowBucket is one time bucket of the cash flow report. Balance is the
// running cumulative net flow across buckets, seeded from the balance
// immediately before the report range.
type CashFlowBucket struct {
	BucketStart time.Time       `json:"bucketStart"`
	Inflow      CurrencyAmounts `json:"inflow"`
	Outflow     CurrencyAmounts `json:"outflow"`
	NetFlow     CurrencyAmounts `json:"netFlow"`
	Balance     CurrencyAmounts `json:"balance"`
}

// ProfitReport holds per-currency income, expense and profit totals.
// ProfitPercentage is profit/income*100, zero when income is zero.
type ProfitReport struct {
	TotalIncome      CurrencyAmounts `json:"totalIncome"`
	TotalExpenses    CurrencyAmounts `json:"totalExpenses"`
	Profit           CurrencyAmounts `json:"profit"`
	ProfitPercentage CurrencyAmounts `json:"profitPercentage"`
}

// CollectionGroupBy selects how collection totals are grouped.
type CollectionGroupBy string

const (
	GroupByPaymentType CollectionGroupBy = "payment_type"
	GroupByCari        CollectionGroupBy = "cari"
	GroupByNone        CollectionGroupBy = "none"
)

// IsValid reports whether the grouping is a known one.
func (g CollectionGroupBy) IsValid() bool {
	switch g {
	case GroupByPaymentType, GroupByCari, GroupByNone:
		return true
	}
	return false
}

// CollectionGroup is one grouped total of the collections report,
// restricted to payment and credit transactions.
type CollectionGroup struct {
	Key              string          `json:"key"`
	Totals           CurrencyAmounts `json:"totals"`
	TransactionCount int             `json:"transactionCount"`
}

// CollectionsReport is the grouped collections summary for a date range.
type CollectionsReport struct {
	GroupBy          CollectionGroupBy `json:"groupBy"`
	Groups           []CollectionGroup `json:"groups"`
	TransactionCount int               `json:"transactionCount"`
}

// CustomerSales is one row of the customer analysis report. IsReturning is
// computed from the full history up to the range end, so a customer with one
// sale before the range and one inside it counts as returning.
type CustomerSales struct {
	CustomerID    string          `json:"customerID"`
	CustomerName  string          `json:"customerName"`
	TotalSales    int             `json:"totalSales"`
	TotalRevenue  CurrencyAmounts `json:"totalRevenue"`
	FirstSaleDate time.Time       `json:"firstSaleDate"`
	LastSaleDate  time.Time       `json:"lastSaleDate"`
	IsReturning   bool            `json:"isReturning"`
}
