package repositories

import (
	"context"
	"time"

	"github.com/aegeantours/tour_backoffice_app/internal/core/domain"
)

// ReportingRepository defines the read-side queries the report aggregator
// builds its buckets from. Aggregation itself happens in the service so the
// per-currency isolation rules live in one place.
type ReportingRepository interface {
	// FindTransactionsInRange retrieves all tenant transactions with
	// date in [from, to], ordered by (date, time, created_at) ascending.
	FindTransactionsInRange(ctx context.Context, tenantID string, from, to time.Time) ([]domain.Transaction, error)

	// NetFlowBefore sums signed transaction amounts per currency for dates
	// strictly before the given date. Seeds the cash flow running balance.
	NetFlowBefore(ctx context.Context, tenantID string, before time.Time) (domain.CurrencyAmounts, error)

	// CountSalesBefore counts sale (debit) transactions per account for
	// dates strictly before the given date. Feeds the is_returning flag.
	CountSalesBefore(ctx context.Context, tenantID string, before time.Time) (map[string]int, error)
}
