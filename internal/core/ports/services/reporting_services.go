package services

import (
	"context"
	"time"

	"github.com/aegeantours/tour_backoffice_app/internal/core/domain"
)

// ReportingSvcFacade aggregates transaction history into time-bucketed
// reports. Totals stay separate per currency; empty ranges return
// zero-filled structures, never nil.
type ReportingSvcFacade interface {
	// CashFlow buckets inflow/outflow/net per currency with a running
	// balance seeded from the pre-range balance. currency narrows the
	// report to one currency when non-nil.
	CashFlow(ctx context.Context, tenantID string, from, to time.Time, bucket domain.BucketSize, currency *domain.Currency) ([]domain.CashFlowBucket, error)

	// Profit sums income vs expenses per currency for the range.
	Profit(ctx context.Context, tenantID string, from, to time.Time, currency *domain.Currency) (*domain.ProfitReport, error)

	// Collections groups payment/credit totals by payment type, cari or
	// nothing.
	Collections(ctx context.Context, tenantID string, from, to time.Time, groupBy domain.CollectionGroupBy) (*domain.CollectionsReport, error)

	// CustomerAnalysis summarizes per-customer sales in the range; minSales
	// filters out customers below the threshold.
	CustomerAnalysis(ctx context.Context, tenantID string, from, to time.Time, minSales int) ([]domain.CustomerSales, error)
}
