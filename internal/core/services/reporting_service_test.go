package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/aegeantours/tour_backoffice_app/internal/apperrors"
	"github.com/aegeantours/tour_backoffice_app/internal/core/domain"
	portssvc "github.com/aegeantours/tour_backoffice_app/internal/core/ports/services"
	"github.com/aegeantours/tour_backoffice_app/internal/core/services"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"
)

type ReportingServiceTestSuite struct {
	suite.Suite
	mockReportRepo  *MockReportingRepository
	mockAccountRepo *MockAccountRepository
	service         portssvc.ReportingSvcFacade
}

func (suite *ReportingServiceTestSuite) SetupTest() {
	suite.mockReportRepo = new(MockReportingRepository)
	suite.mockAccountRepo = new(MockAccountRepository)
	suite.service = services.NewReportingService(suite.mockReportRepo, suite.mockAccountRepo)
}

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func (suite *ReportingServiceTestSuite) TestCashFlow_DailyBucketsWithRunningBalance() {
	ctx := context.Background()
	from, to := day(2026, 8, 10), day(2026, 8, 12)
	txns := []domain.Transaction{
		{AccountID: "a1", TransactionType: domain.Debit, Amount: decimal.NewFromInt(300), Currency: domain.TRY, Date: day(2026, 8, 10)},
		{AccountID: "a1", TransactionType: domain.Payment, Amount: decimal.NewFromInt(100), Currency: domain.TRY, Date: day(2026, 8, 10)},
		// Nothing on the 11th; the bucket must still appear.
		{AccountID: "a1", TransactionType: domain.Credit, Amount: decimal.NewFromInt(50), Currency: domain.TRY, Date: day(2026, 8, 12)},
	}
	opening := domain.NewCurrencyAmounts()
	opening[domain.TRY] = decimal.NewFromInt(1000)
	suite.mockReportRepo.On("FindTransactionsInRange", ctx, "t1", from, to).Return(txns, nil).Once()
	suite.mockReportRepo.On("NetFlowBefore", ctx, "t1", from).Return(opening, nil).Once()

	buckets, err := suite.service.CashFlow(ctx, "t1", from, to, domain.BucketDaily, nil)

	suite.Require().NoError(err)
	suite.Require().Len(buckets, 3)

	suite.Equal(day(2026, 8, 10), buckets[0].BucketStart)
	suite.True(buckets[0].Inflow[domain.TRY].Equal(decimal.NewFromInt(100)))
	suite.True(buckets[0].Outflow[domain.TRY].Equal(decimal.NewFromInt(300)))
	suite.True(buckets[0].NetFlow[domain.TRY].Equal(decimal.NewFromInt(-200)))
	suite.True(buckets[0].Balance[domain.TRY].Equal(decimal.NewFromInt(800)))

	// Empty middle bucket carries the balance flat.
	suite.True(buckets[1].NetFlow[domain.TRY].IsZero())
	suite.True(buckets[1].Balance[domain.TRY].Equal(decimal.NewFromInt(800)))

	suite.True(buckets[2].NetFlow[domain.TRY].Equal(decimal.NewFromInt(50)))
	suite.True(buckets[2].Balance[domain.TRY].Equal(decimal.NewFromInt(850)))
}

func (suite *ReportingServiceTestSuite) TestCashFlow_WeeklyFirstBucketClampedToRangeStart() {
	ctx := context.Background()
	// Wednesday; its ISO week starts Monday the 10th, before the range.
	from, to := day(2026, 8, 12), day(2026, 8, 23)
	txns := []domain.Transaction{
		{AccountID: "a1", TransactionType: domain.Payment, Amount: decimal.NewFromInt(100), Currency: domain.EUR, Date: day(2026, 8, 13)},
		{AccountID: "a1", TransactionType: domain.Payment, Amount: decimal.NewFromInt(40), Currency: domain.EUR, Date: day(2026, 8, 18)},
	}
	suite.mockReportRepo.On("FindTransactionsInRange", ctx, "t1", from, to).Return(txns, nil).Once()
	suite.mockReportRepo.On("NetFlowBefore", ctx, "t1", from).Return(domain.NewCurrencyAmounts(), nil).Once()

	buckets, err := suite.service.CashFlow(ctx, "t1", from, to, domain.BucketWeekly, nil)

	suite.Require().NoError(err)
	suite.Require().Len(buckets, 2)
	suite.Equal(day(2026, 8, 12), buckets[0].BucketStart)
	suite.Equal(day(2026, 8, 17), buckets[1].BucketStart)
	suite.True(buckets[0].Inflow[domain.EUR].Equal(decimal.NewFromInt(100)))
	suite.True(buckets[1].Inflow[domain.EUR].Equal(decimal.NewFromInt(40)))
}

func (suite *ReportingServiceTestSuite) TestCashFlow_CurrencyFilterSkipsOtherCurrencies() {
	ctx := context.Background()
	from, to := day(2026, 8, 10), day(2026, 8, 10)
	txns := []domain.Transaction{
		{AccountID: "a1", TransactionType: domain.Payment, Amount: decimal.NewFromInt(100), Currency: domain.EUR, Date: from},
		{AccountID: "a1", TransactionType: domain.Payment, Amount: decimal.NewFromInt(999), Currency: domain.TRY, Date: from},
	}
	opening := domain.NewCurrencyAmounts()
	opening[domain.EUR] = decimal.NewFromInt(10)
	opening[domain.TRY] = decimal.NewFromInt(5000)
	suite.mockReportRepo.On("FindTransactionsInRange", ctx, "t1", from, to).Return(txns, nil).Once()
	suite.mockReportRepo.On("NetFlowBefore", ctx, "t1", from).Return(opening, nil).Once()

	eur := domain.EUR
	buckets, err := suite.service.CashFlow(ctx, "t1", from, to, domain.BucketDaily, &eur)

	suite.Require().NoError(err)
	suite.Require().Len(buckets, 1)
	suite.Len(buckets[0].Inflow, 1)
	suite.True(buckets[0].Inflow[domain.EUR].Equal(decimal.NewFromInt(100)))
	suite.True(buckets[0].Balance[domain.EUR].Equal(decimal.NewFromInt(110)))
}

func (suite *ReportingServiceTestSuite) TestCashFlow_RejectsInvertedRange() {
	_, err := suite.service.CashFlow(context.Background(), "t1", day(2026, 8, 12), day(2026, 8, 10), domain.BucketDaily, nil)
	suite.Require().ErrorIs(err, apperrors.ErrInvalidRange)
}

func (suite *ReportingServiceTestSuite) TestProfit_NetsReversalsAndComputesPercentage() {
	ctx := context.Background()
	from, to := day(2026, 8, 1), day(2026, 8, 31)
	txns := []domain.Transaction{
		// Income posted, then its reversal, then the repost.
		{TransactionType: domain.Credit, ReferenceType: domain.ReferenceIncome, Amount: decimal.NewFromInt(800), Currency: domain.EUR, Date: day(2026, 8, 5)},
		{TransactionType: domain.Debit, ReferenceType: domain.ReferenceIncome, Amount: decimal.NewFromInt(800), Currency: domain.EUR, Date: day(2026, 8, 6)},
		{TransactionType: domain.Credit, ReferenceType: domain.ReferenceIncome, Amount: decimal.NewFromInt(1000), Currency: domain.EUR, Date: day(2026, 8, 6)},
		{TransactionType: domain.Debit, ReferenceType: domain.ReferenceExpense, Amount: decimal.NewFromInt(400), Currency: domain.EUR, Date: day(2026, 8, 7)},
		// A plain ledger debit without a record reference stays out of profit.
		{TransactionType: domain.Debit, ReferenceType: "", Amount: decimal.NewFromInt(9999), Currency: domain.EUR, Date: day(2026, 8, 8)},
	}
	suite.mockReportRepo.On("FindTransactionsInRange", ctx, "t1", from, to).Return(txns, nil).Once()

	report, err := suite.service.Profit(ctx, "t1", from, to, nil)

	suite.Require().NoError(err)
	suite.True(report.TotalIncome[domain.EUR].Equal(decimal.NewFromInt(1000)))
	suite.True(report.TotalExpenses[domain.EUR].Equal(decimal.NewFromInt(400)))
	suite.True(report.Profit[domain.EUR].Equal(decimal.NewFromInt(600)))
	suite.True(report.ProfitPercentage[domain.EUR].Equal(decimal.NewFromInt(60)))
}

func (suite *ReportingServiceTestSuite) TestProfit_ZeroIncomeLeavesPercentageZero() {
	ctx := context.Background()
	from, to := day(2026, 8, 1), day(2026, 8, 31)
	txns := []domain.Transaction{
		{TransactionType: domain.Debit, ReferenceType: domain.ReferenceExpense, Amount: decimal.NewFromInt(400), Currency: domain.TRY, Date: day(2026, 8, 7)},
	}
	suite.mockReportRepo.On("FindTransactionsInRange", ctx, "t1", from, to).Return(txns, nil).Once()

	report, err := suite.service.Profit(ctx, "t1", from, to, nil)

	suite.Require().NoError(err)
	suite.True(report.TotalExpenses[domain.TRY].Equal(decimal.NewFromInt(400)))
	suite.True(report.Profit[domain.TRY].Equal(decimal.NewFromInt(-400)))
	suite.True(report.ProfitPercentage[domain.TRY].IsZero())
}

func (suite *ReportingServiceTestSuite) TestCollections_GroupsByPaymentType() {
	ctx := context.Background()
	from, to := day(2026, 8, 1), day(2026, 8, 31)
	txns := []domain.Transaction{
		{TransactionType: domain.Payment, PaymentTypeID: "pt-cash", Amount: decimal.NewFromInt(100), Currency: domain.TRY, Date: day(2026, 8, 5)},
		{TransactionType: domain.Credit, PaymentTypeID: "pt-card", Amount: decimal.NewFromInt(250), Currency: domain.TRY, Date: day(2026, 8, 6)},
		{TransactionType: domain.Payment, PaymentTypeID: "pt-cash", Amount: decimal.NewFromInt(50), Currency: domain.EUR, Date: day(2026, 8, 7)},
		// Debits are not collections.
		{TransactionType: domain.Debit, PaymentTypeID: "pt-cash", Amount: decimal.NewFromInt(999), Currency: domain.TRY, Date: day(2026, 8, 8)},
	}
	suite.mockReportRepo.On("FindTransactionsInRange", ctx, "t1", from, to).Return(txns, nil).Once()

	report, err := suite.service.Collections(ctx, "t1", from, to, domain.GroupByPaymentType)

	suite.Require().NoError(err)
	suite.Equal(3, report.TransactionCount)
	suite.Require().Len(report.Groups, 2)
	// Groups come back sorted by key.
	suite.Equal("pt-card", report.Groups[0].Key)
	suite.Equal("pt-cash", report.Groups[1].Key)
	suite.True(report.Groups[1].Totals[domain.TRY].Equal(decimal.NewFromInt(100)))
	suite.True(report.Groups[1].Totals[domain.EUR].Equal(decimal.NewFromInt(50)))
	suite.Equal(2, report.Groups[1].TransactionCount)
}

func (suite *ReportingServiceTestSuite) TestCollections_NoGroupingYieldsSingleGroup() {
	ctx := context.Background()
	from, to := day(2026, 8, 1), day(2026, 8, 31)
	txns := []domain.Transaction{
		{TransactionType: domain.Payment, PaymentTypeID: "pt-cash", Amount: decimal.NewFromInt(100), Currency: domain.TRY, Date: day(2026, 8, 5)},
		{TransactionType: domain.Credit, PaymentTypeID: "pt-card", Amount: decimal.NewFromInt(250), Currency: domain.TRY, Date: day(2026, 8, 6)},
	}
	suite.mockReportRepo.On("FindTransactionsInRange", ctx, "t1", from, to).Return(txns, nil).Once()

	report, err := suite.service.Collections(ctx, "t1", from, to, domain.GroupByNone)

	suite.Require().NoError(err)
	suite.Require().Len(report.Groups, 1)
	suite.True(report.Groups[0].Totals[domain.TRY].Equal(decimal.NewFromInt(350)))
}

func (suite *ReportingServiceTestSuite) TestCustomerAnalysis_ReturningFlagUsesPriorHistory() {
	ctx := context.Background()
	from, to := day(2026, 8, 1), day(2026, 8, 31)
	txns := []domain.Transaction{
		{AccountID: "c1", TransactionType: domain.Debit, Amount: decimal.NewFromInt(300), Currency: domain.TRY, Date: day(2026, 8, 5)},
		{AccountID: "c2", TransactionType: domain.Debit, Amount: decimal.NewFromInt(120), Currency: domain.EUR, Date: day(2026, 8, 6)},
		{AccountID: "c2", TransactionType: domain.Debit, Amount: decimal.NewFromInt(80), Currency: domain.EUR, Date: day(2026, 8, 20)},
		{AccountID: "c1", TransactionType: domain.Payment, Amount: decimal.NewFromInt(300), Currency: domain.TRY, Date: day(2026, 8, 7)},
	}
	accounts := []domain.LedgerAccount{
		{AccountID: "c1", DisplayName: "Pamukkale Travel"},
		{AccountID: "c2", DisplayName: "Bodrum Tours"},
	}
	// c1 has one prior sale, so a single in-range sale still makes it returning.
	suite.mockReportRepo.On("FindTransactionsInRange", ctx, "t1", from, to).Return(txns, nil).Once()
	suite.mockReportRepo.On("CountSalesBefore", ctx, "t1", from).Return(map[string]int{"c1": 1}, nil).Once()
	suite.mockAccountRepo.On("ListAccounts", ctx, "t1", true).Return(accounts, nil).Once()

	results, err := suite.service.CustomerAnalysis(ctx, "t1", from, to, 0)

	suite.Require().NoError(err)
	suite.Require().Len(results, 2)

	suite.Equal("c1", results[0].CustomerID)
	suite.Equal("Pamukkale Travel", results[0].CustomerName)
	suite.Equal(1, results[0].TotalSales)
	suite.True(results[0].IsReturning)

	suite.Equal("c2", results[1].CustomerID)
	suite.Equal(2, results[1].TotalSales)
	suite.True(results[1].IsReturning)
	suite.True(results[1].TotalRevenue[domain.EUR].Equal(decimal.NewFromInt(200)))
	suite.Equal(day(2026, 8, 6), results[1].FirstSaleDate)
	suite.Equal(day(2026, 8, 20), results[1].LastSaleDate)
}

func (suite *ReportingServiceTestSuite) TestCustomerAnalysis_MinSalesFilters() {
	ctx := context.Background()
	from, to := day(2026, 8, 1), day(2026, 8, 31)
	txns := []domain.Transaction{
		{AccountID: "c1", TransactionType: domain.Debit, Amount: decimal.NewFromInt(300), Currency: domain.TRY, Date: day(2026, 8, 5)},
		{AccountID: "c2", TransactionType: domain.Debit, Amount: decimal.NewFromInt(120), Currency: domain.EUR, Date: day(2026, 8, 6)},
		{AccountID: "c2", TransactionType: domain.Debit, Amount: decimal.NewFromInt(80), Currency: domain.EUR, Date: day(2026, 8, 20)},
	}
	suite.mockReportRepo.On("FindTransactionsInRange", ctx, "t1", from, to).Return(txns, nil).Once()
	suite.mockReportRepo.On("CountSalesBefore", ctx, "t1", from).Return(map[string]int{}, nil).Once()
	suite.mockAccountRepo.On("ListAccounts", ctx, "t1", true).Return([]domain.LedgerAccount{}, nil).Once()

	results, err := suite.service.CustomerAnalysis(ctx, "t1", from, to, 2)

	suite.Require().NoError(err)
	suite.Require().Len(results, 1)
	suite.Equal("c2", results[0].CustomerID)
}

func TestReportingServiceTestSuite(t *testing.T) {
	suite.Run(t, new(ReportingServiceTestSuite))
}
