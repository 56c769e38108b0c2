package services

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/aegeantours/tour_backoffice_app/internal/apperrors"
	"github.com/aegeantours/tour_backoffice_app/internal/core/domain"
	portsrepo "github.com/aegeantours/tour_backoffice_app/internal/core/ports/repositories"
	portssvc "github.com/aegeantours/tour_backoffice_app/internal/core/ports/services"
	"github.com/aegeantours/tour_backoffice_app/internal/dto"
	"github.com/shopspring/decimal"
)

// reportingService aggregates transaction history into time-bucketed reports.
// All aggregation happens here, in fixed-point decimals, over rows the
// repository streams in posting order. Totals are kept per currency end to
// end; nothing is ever summed across currencies.
type reportingService struct {
	BaseService
	reportRepo  portsrepo.ReportingRepository
	accountRepo portsrepo.AccountReader
}

// NewReportingService creates a new reporting service.
func NewReportingService(reportRepo portsrepo.ReportingRepository, accountRepo portsrepo.AccountReader) portssvc.ReportingSvcFacade {
	return &reportingService{
		reportRepo:  reportRepo,
		accountRepo: accountRepo,
	}
}

// Ensure reportingService implements the ReportingSvcFacade interface
var _ portssvc.ReportingSvcFacade = (*reportingService)(nil)

func validateRange(from, to time.Time) error {
	if to.Before(from) {
		return fmt.Errorf("%w: %s is before %s", apperrors.ErrInvalidRange, to.Format(dto.DateLayout), from.Format(dto.DateLayout))
	}
	return nil
}

// dateOnly strips the clock so bucket arithmetic works on calendar days.
func dateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// bucketStartFor maps a transaction date to its bucket start. Weekly buckets
// start on Monday (ISO weeks) and monthly buckets on the 1st; the first
// bucket of a range is clamped to the range start so a report never shows
// activity from before the requested window.
func bucketStartFor(date time.Time, size domain.BucketSize, rangeFrom time.Time) time.Time {
	date = dateOnly(date)
	var start time.Time
	switch size {
	case domain.BucketWeekly:
		start = mondayOf(date)
	case domain.BucketMonthly:
		start = time.Date(date.Year(), date.Month(), 1, 0, 0, 0, 0, time.UTC)
	default:
		start = date
	}
	if start.Before(rangeFrom) {
		return rangeFrom
	}
	return start
}

func mondayOf(date time.Time) time.Time {
	offset := (int(date.Weekday()) + 6) % 7
	return date.AddDate(0, 0, -offset)
}

// nextBucketStart advances to the following bucket boundary.
func nextBucketStart(cur time.Time, size domain.BucketSize) time.Time {
	switch size {
	case domain.BucketWeekly:
		return mondayOf(cur).AddDate(0, 0, 7)
	case domain.BucketMonthly:
		return time.Date(cur.Year(), cur.Month(), 1, 0, 0, 0, 0, time.UTC).AddDate(0, 1, 0)
	default:
		return cur.AddDate(0, 0, 1)
	}
}

func newAmounts(currency *domain.Currency) domain.CurrencyAmounts {
	if currency == nil {
		return domain.NewCurrencyAmounts()
	}
	return domain.CurrencyAmounts{*currency: decimal.Zero}
}

// CashFlow implements portssvc.ReportingSvcFacade.
func (s *reportingService) CashFlow(ctx context.Context, tenantID string, from, to time.Time, bucket domain.BucketSize, currency *domain.Currency) ([]domain.CashFlowBucket, error) {
	if err := validateRange(from, to); err != nil {
		return nil, err
	}
	if !bucket.IsValid() {
		return nil, fmt.Errorf("%w: unknown bucket size %q", apperrors.ErrValidation, bucket)
	}
	if currency != nil && !currency.IsSupported() {
		return nil, fmt.Errorf("%w: %s", apperrors.ErrInvalidCurrency, *currency)
	}
	from, to = dateOnly(from), dateOnly(to)

	txns, err := s.reportRepo.FindTransactionsInRange(ctx, tenantID, from, to)
	if err != nil {
		return nil, fmt.Errorf("failed to load transactions for cash flow: %w", err)
	}

	opening, err := s.reportRepo.NetFlowBefore(ctx, tenantID, from)
	if err != nil {
		return nil, fmt.Errorf("failed to compute opening balance: %w", err)
	}

	// Zero-fill every bucket in the range so gaps show up as flat periods
	// instead of disappearing.
	var buckets []domain.CashFlowBucket
	index := make(map[time.Time]int)
	for start := from; !start.After(to); start = nextBucketStart(start, bucket) {
		index[start] = len(buckets)
		buckets = append(buckets, domain.CashFlowBucket{
			BucketStart: start,
			Inflow:      newAmounts(currency),
			Outflow:     newAmounts(currency),
			NetFlow:     newAmounts(currency),
			Balance:     newAmounts(currency),
		})
	}

	for _, txn := range txns {
		if currency != nil && txn.Currency != *currency {
			continue
		}
		i, ok := index[bucketStartFor(txn.Date, bucket, from)]
		if !ok {
			continue
		}
		if txn.TransactionType.IsInflow() {
			buckets[i].Inflow.Add(txn.Currency, txn.Amount)
		} else {
			buckets[i].Outflow.Add(txn.Currency, txn.Amount)
		}
	}

	// Running balance telescopes: each bucket's closing balance is the
	// previous one plus this bucket's net flow, seeded from history before
	// the range.
	running := opening.Clone()
	if currency != nil {
		running = domain.CurrencyAmounts{*currency: opening[*currency]}
	}
	for i := range buckets {
		for c, inflow := range buckets[i].Inflow {
			net := inflow.Sub(buckets[i].Outflow[c])
			buckets[i].NetFlow[c] = net
			running[c] = running[c].Add(net)
			buckets[i].Balance[c] = running[c]
		}
	}
	return buckets, nil
}

// Profit implements portssvc.ReportingSvcFacade. Income and expense totals
// come from the transactions referencing finance records, so record edits
// (which post offsets) net out correctly.
func (s *reportingService) Profit(ctx context.Context, tenantID string, from, to time.Time, currency *domain.Currency) (*domain.ProfitReport, error) {
	if err := validateRange(from, to); err != nil {
		return nil, err
	}
	if currency != nil && !currency.IsSupported() {
		return nil, fmt.Errorf("%w: %s", apperrors.ErrInvalidCurrency, *currency)
	}

	txns, err := s.reportRepo.FindTransactionsInRange(ctx, tenantID, dateOnly(from), dateOnly(to))
	if err != nil {
		return nil, fmt.Errorf("failed to load transactions for profit report: %w", err)
	}

	report := &domain.ProfitReport{
		TotalIncome:      newAmounts(currency),
		TotalExpenses:    newAmounts(currency),
		Profit:           newAmounts(currency),
		ProfitPercentage: newAmounts(currency),
	}

	for _, txn := range txns {
		if currency != nil && txn.Currency != *currency {
			continue
		}
		switch txn.ReferenceType {
		case domain.ReferenceIncome:
			// The posted income transaction is a credit; a debit with the
			// same reference is a reversal and subtracts.
			if txn.TransactionType.IsInflow() {
				report.TotalIncome.Add(txn.Currency, txn.Amount)
			} else {
				report.TotalIncome.Add(txn.Currency, txn.Amount.Neg())
			}
		case domain.ReferenceExpense:
			if txn.TransactionType.IsInflow() {
				report.TotalExpenses.Add(txn.Currency, txn.Amount.Neg())
			} else {
				report.TotalExpenses.Add(txn.Currency, txn.Amount)
			}
		}
	}

	for c, income := range report.TotalIncome {
		profit := income.Sub(report.TotalExpenses[c])
		report.Profit[c] = profit
		if !income.IsZero() {
			report.ProfitPercentage[c] = profit.Div(income).Mul(decimal.NewFromInt(100)).Round(2)
		}
	}
	return report, nil
}

// Collections implements portssvc.ReportingSvcFacade. Only payment and
// credit transactions count as collections.
func (s *reportingService) Collections(ctx context.Context, tenantID string, from, to time.Time, groupBy domain.CollectionGroupBy) (*domain.CollectionsReport, error) {
	if err := validateRange(from, to); err != nil {
		return nil, err
	}
	if !groupBy.IsValid() {
		return nil, fmt.Errorf("%w: unknown grouping %q", apperrors.ErrValidation, groupBy)
	}

	txns, err := s.reportRepo.FindTransactionsInRange(ctx, tenantID, dateOnly(from), dateOnly(to))
	if err != nil {
		return nil, fmt.Errorf("failed to load transactions for collections report: %w", err)
	}

	report := &domain.CollectionsReport{GroupBy: groupBy, Groups: []domain.CollectionGroup{}}
	index := make(map[string]int)
	for _, txn := range txns {
		if txn.TransactionType != domain.Payment && txn.TransactionType != domain.Credit {
			continue
		}
		var key string
		switch groupBy {
		case domain.GroupByPaymentType:
			key = txn.PaymentTypeID
		case domain.GroupByCari:
			key = txn.AccountID
		}

		i, ok := index[key]
		if !ok {
			i = len(report.Groups)
			index[key] = i
			report.Groups = append(report.Groups, domain.CollectionGroup{
				Key:    key,
				Totals: domain.NewCurrencyAmounts(),
			})
		}
		report.Groups[i].Totals.Add(txn.Currency, txn.Amount)
		report.Groups[i].TransactionCount++
		report.TransactionCount++
	}

	sort.Slice(report.Groups, func(i, j int) bool {
		return report.Groups[i].Key < report.Groups[j].Key
	})
	return report, nil
}

// CustomerAnalysis implements portssvc.ReportingSvcFacade. A sale is a debit
// transaction; IsReturning considers the customer's full sale history up to
// the range end, not just the reported window.
func (s *reportingService) CustomerAnalysis(ctx context.Context, tenantID string, from, to time.Time, minSales int) ([]domain.CustomerSales, error) {
	if err := validateRange(from, to); err != nil {
		return nil, err
	}

	txns, err := s.reportRepo.FindTransactionsInRange(ctx, tenantID, dateOnly(from), dateOnly(to))
	if err != nil {
		return nil, fmt.Errorf("failed to load transactions for customer analysis: %w", err)
	}
	priorSales, err := s.reportRepo.CountSalesBefore(ctx, tenantID, dateOnly(from))
	if err != nil {
		return nil, fmt.Errorf("failed to count prior sales: %w", err)
	}
	accounts, err := s.accountRepo.ListAccounts(ctx, tenantID, true)
	if err != nil {
		return nil, fmt.Errorf("failed to list accounts for customer analysis: %w", err)
	}
	names := make(map[string]string, len(accounts))
	for _, account := range accounts {
		names[account.AccountID] = account.DisplayName
	}

	byCustomer := make(map[string]*domain.CustomerSales)
	var order []string
	for _, txn := range txns {
		if txn.TransactionType != domain.Debit {
			continue
		}
		row, ok := byCustomer[txn.AccountID]
		if !ok {
			row = &domain.CustomerSales{
				CustomerID:    txn.AccountID,
				CustomerName:  names[txn.AccountID],
				TotalRevenue:  domain.NewCurrencyAmounts(),
				FirstSaleDate: txn.Date,
				LastSaleDate:  txn.Date,
			}
			byCustomer[txn.AccountID] = row
			order = append(order, txn.AccountID)
		}
		row.TotalSales++
		row.TotalRevenue.Add(txn.Currency, txn.Amount)
		if txn.Date.Before(row.FirstSaleDate) {
			row.FirstSaleDate = txn.Date
		}
		if txn.Date.After(row.LastSaleDate) {
			row.LastSaleDate = txn.Date
		}
	}

	results := make([]domain.CustomerSales, 0, len(order))
	for _, id := range order {
		row := byCustomer[id]
		row.IsReturning = row.TotalSales+priorSales[id] > 1
		if row.TotalSales < minSales {
			continue
		}
		results = append(results, *row)
	}
	sort.Slice(results, func(i, j int) bool {
		return results[i].CustomerID < results[j].CustomerID
	})
	return results, nil
}
