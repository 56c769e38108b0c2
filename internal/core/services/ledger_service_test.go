package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/aegeantours/tour_backoffice_app/internal/apperrors"
	"github.com/aegeantours/tour_backoffice_app/internal/core/domain"
	portssvc "github.com/aegeantours/tour_backoffice_app/internal/core/ports/services"
	"github.com/aegeantours/tour_backoffice_app/internal/core/services"
	"github.com/aegeantours/tour_backoffice_app/internal/dto"
	"github.com/aegeantours/tour_backoffice_app/internal/utils"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

type LedgerServiceTestSuite struct {
	suite.Suite
	mockAccountRepo *MockAccountRepository
	mockTxnRepo     *MockTransactionRepository
	mockRecordRepo  *MockFinanceRecordRepository
	mockRateRepo    *MockRateSetRepository
	service         portssvc.LedgerSvcFacade
}

func (suite *LedgerServiceTestSuite) SetupTest() {
	suite.mockAccountRepo = new(MockAccountRepository)
	suite.mockTxnRepo = new(MockTransactionRepository)
	suite.mockRecordRepo = new(MockFinanceRecordRepository)
	suite.mockRateRepo = new(MockRateSetRepository)

	rateStore := services.NewRateStoreService(suite.mockRateRepo, nil)
	suite.service = services.NewLedgerService(
		suite.mockAccountRepo,
		suite.mockTxnRepo,
		suite.mockRecordRepo,
		rateStore,
		&utils.KeyedMutex{},
	)
}

func (suite *LedgerServiceTestSuite) configuredRates() *domain.CurrencyRateSet {
	return &domain.CurrencyRateSet{
		TenantID: "t1",
		Scope:    domain.RateScopeSystem,
		Rates: map[domain.Currency]decimal.Decimal{
			domain.EUR: decimal.RequireFromString("48.20"),
			domain.USD: decimal.RequireFromString("41.15"),
			domain.TRY: decimal.NewFromInt(1),
		},
		Source: domain.RateSourceManual,
	}
}

func corporateAccount(id string) *domain.LedgerAccount {
	return &domain.LedgerAccount{
		AccountID:   id,
		TenantID:    "t1",
		Kind:        domain.Corporate,
		DisplayName: "Aegean Hotels Ltd",
		Balances:    domain.ZeroBalances(),
	}
}

func munferitAccount() *domain.LedgerAccount {
	return &domain.LedgerAccount{
		AccountID:   "munferit-1",
		TenantID:    "t1",
		Kind:        domain.Corporate,
		DisplayName: "Münferit",
		Balances:    domain.ZeroBalances(),
		Munferit:    true,
	}
}

func (suite *LedgerServiceTestSuite) TestPostTransaction_CorporateDebit() {
	ctx := context.Background()
	account := corporateAccount("acc-1")
	suite.mockAccountRepo.On("FindAccountByID", ctx, "t1", "acc-1").Return(account, nil).Once()
	suite.mockRateRepo.On("FindRateSet", ctx, "t1", domain.RateScopeSystem).Return(suite.configuredRates(), nil).Once()
	suite.mockTxnRepo.On("ApplyTransaction", ctx, mock.AnythingOfType("domain.Transaction")).Return(nil).Once()

	req := dto.PostTransactionRequest{
		AccountID:   "acc-1",
		Type:        domain.Debit,
		Amount:      decimal.RequireFromString("250.00"),
		Currency:    domain.EUR,
		Date:        "2026-08-10",
		Time:        "14:30",
		Description: "Cappadocia tour booking",
	}
	txn, err := suite.service.PostTransaction(ctx, "t1", req, "u1")

	suite.Require().NoError(err)
	suite.Equal("acc-1", txn.AccountID)
	suite.Equal(domain.Debit, txn.TransactionType)
	// The system EUR rate is snapshotted on the row.
	suite.True(txn.ExchangeRate.Equal(decimal.RequireFromString("48.20")))
	suite.True(txn.SignedAmount().Equal(decimal.RequireFromString("250.00")))
	suite.Equal("u1", txn.CreatedBy)
	suite.mockTxnRepo.AssertExpectations(suite.T())
}

func (suite *LedgerServiceTestSuite) TestPostTransaction_PaymentSignIsNegative() {
	ctx := context.Background()
	suite.mockAccountRepo.On("FindAccountByID", ctx, "t1", "acc-1").Return(corporateAccount("acc-1"), nil).Once()
	suite.mockRateRepo.On("FindRateSet", ctx, "t1", domain.RateScopeSystem).Return(suite.configuredRates(), nil).Once()
	suite.mockTxnRepo.On("ApplyTransaction", ctx, mock.AnythingOfType("domain.Transaction")).Return(nil).Once()

	req := dto.PostTransactionRequest{
		AccountID: "acc-1",
		Type:      domain.Payment,
		Amount:    decimal.RequireFromString("100.00"),
		Currency:  domain.TRY,
		Date:      "2026-08-10",
	}
	txn, err := suite.service.PostTransaction(ctx, "t1", req, "u1")

	suite.Require().NoError(err)
	suite.True(txn.SignedAmount().Equal(decimal.RequireFromString("-100.00")))
	suite.True(txn.ExchangeRate.Equal(decimal.NewFromInt(1)))
}

func (suite *LedgerServiceTestSuite) TestPostTransaction_RejectsNonPositiveAmount() {
	req := dto.PostTransactionRequest{
		AccountID: "acc-1",
		Type:      domain.Debit,
		Amount:    decimal.Zero,
		Currency:  domain.EUR,
		Date:      "2026-08-10",
	}
	_, err := suite.service.PostTransaction(context.Background(), "t1", req, "u1")

	suite.Require().ErrorIs(err, apperrors.ErrInvalidAmount)
	suite.mockTxnRepo.AssertNotCalled(suite.T(), "ApplyTransaction", mock.Anything, mock.Anything)
}

func (suite *LedgerServiceTestSuite) TestPostTransaction_RejectsUnsupportedCurrency() {
	req := dto.PostTransactionRequest{
		AccountID: "acc-1",
		Type:      domain.Debit,
		Amount:    decimal.NewFromInt(10),
		Currency:  "GBP",
		Date:      "2026-08-10",
	}
	_, err := suite.service.PostTransaction(context.Background(), "t1", req, "u1")

	suite.Require().ErrorIs(err, apperrors.ErrInvalidCurrency)
}

func (suite *LedgerServiceTestSuite) TestPostTransaction_RejectsUnknownAccount() {
	ctx := context.Background()
	suite.mockAccountRepo.On("FindAccountByID", ctx, "t1", "nope").Return(nil, apperrors.ErrNotFound).Once()

	req := dto.PostTransactionRequest{
		AccountID: "nope",
		Type:      domain.Debit,
		Amount:    decimal.NewFromInt(10),
		Currency:  domain.EUR,
		Date:      "2026-08-10",
	}
	_, err := suite.service.PostTransaction(ctx, "t1", req, "u1")

	suite.Require().ErrorIs(err, apperrors.ErrUnknownAccount)
}

func (suite *LedgerServiceTestSuite) TestPostTransaction_RejectsUnconfiguredRate() {
	ctx := context.Background()
	suite.mockAccountRepo.On("FindAccountByID", ctx, "t1", "acc-1").Return(corporateAccount("acc-1"), nil).Once()
	// Rate store was never configured: EUR reads as the zero sentinel.
	suite.mockRateRepo.On("FindRateSet", ctx, "t1", domain.RateScopeSystem).Return(nil, apperrors.ErrNotFound).Once()

	req := dto.PostTransactionRequest{
		AccountID: "acc-1",
		Type:      domain.Debit,
		Amount:    decimal.NewFromInt(10),
		Currency:  domain.EUR,
		Date:      "2026-08-10",
	}
	_, err := suite.service.PostTransaction(ctx, "t1", req, "u1")

	suite.Require().ErrorIs(err, apperrors.ErrRateNotConfigured)
	suite.mockTxnRepo.AssertNotCalled(suite.T(), "ApplyTransaction", mock.Anything, mock.Anything)
}

func (suite *LedgerServiceTestSuite) TestPostTransaction_IndividualAliasesToMunferit() {
	ctx := context.Background()
	individual := &domain.LedgerAccount{
		AccountID:   "ind-1",
		TenantID:    "t1",
		Kind:        domain.Individual,
		DisplayName: "Ayşe Yılmaz",
		Balances:    domain.ZeroBalances(),
	}
	suite.mockAccountRepo.On("FindAccountByID", ctx, "t1", "ind-1").Return(individual, nil).Once()
	suite.mockAccountRepo.On("FindMunferitAccount", ctx, "t1").Return(munferitAccount(), nil).Once()
	suite.mockRateRepo.On("FindRateSet", ctx, "t1", domain.RateScopeSystem).Return(suite.configuredRates(), nil).Once()
	suite.mockTxnRepo.On("ApplyTransaction", ctx, mock.AnythingOfType("domain.Transaction")).Return(nil).Once()

	req := dto.PostTransactionRequest{
		AccountID:   "ind-1",
		Type:        domain.Payment,
		Amount:      decimal.NewFromInt(500),
		Currency:    domain.TRY,
		Date:        "2026-08-10",
		Description: "Balloon tour",
	}
	txn, err := suite.service.PostTransaction(ctx, "t1", req, "u1")

	suite.Require().NoError(err)
	// The post lands on the münferit account, never on the individual.
	suite.Equal("munferit-1", txn.AccountID)
	suite.Equal("Ayşe Yılmaz - Balloon tour", txn.Description)
}

func (suite *LedgerServiceTestSuite) TestPostTransaction_CustomerNameAutoCreatesIndividual() {
	ctx := context.Background()
	suite.mockAccountRepo.On("FindAccountByName", ctx, "t1", "John Carter").Return(nil, apperrors.ErrNotFound).Once()
	suite.mockAccountRepo.On("SaveAccount", ctx, mock.MatchedBy(func(a domain.LedgerAccount) bool {
		return a.Kind == domain.Individual && a.DisplayName == "John Carter"
	})).Return(nil).Once()
	suite.mockAccountRepo.On("FindMunferitAccount", ctx, "t1").Return(munferitAccount(), nil).Once()
	suite.mockRateRepo.On("FindRateSet", ctx, "t1", domain.RateScopeSystem).Return(suite.configuredRates(), nil).Once()
	suite.mockTxnRepo.On("ApplyTransaction", ctx, mock.AnythingOfType("domain.Transaction")).Return(nil).Once()

	req := dto.PostTransactionRequest{
		CustomerName: "John Carter",
		Type:         domain.Payment,
		Amount:       decimal.NewFromInt(120),
		Currency:     domain.USD,
		Date:         "2026-08-10",
	}
	txn, err := suite.service.PostTransaction(ctx, "t1", req, "u1")

	suite.Require().NoError(err)
	suite.Equal("munferit-1", txn.AccountID)
	suite.Equal("John Carter", txn.Description)
	suite.mockAccountRepo.AssertExpectations(suite.T())
}

func (suite *LedgerServiceTestSuite) TestGetStatement_RejectsInvertedRange() {
	from := time.Date(2026, 8, 10, 0, 0, 0, 0, time.UTC)
	to := time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC)
	_, err := suite.service.GetStatement(context.Background(), "t1", "acc-1", from, to)

	suite.Require().ErrorIs(err, apperrors.ErrInvalidRange)
}

func (suite *LedgerServiceTestSuite) TestGetStatement_ReturnsOrderedTransactions() {
	ctx := context.Background()
	from := time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(2026, 8, 31, 0, 0, 0, 0, time.UTC)
	txns := []domain.Transaction{
		{TransactionID: uuid.NewString(), AccountID: "acc-1", Date: from, Time: "09:00"},
		{TransactionID: uuid.NewString(), AccountID: "acc-1", Date: from, Time: "15:00"},
	}
	suite.mockAccountRepo.On("FindAccountByID", ctx, "t1", "acc-1").Return(corporateAccount("acc-1"), nil).Once()
	suite.mockTxnRepo.On("FindTransactionsByAccount", ctx, "t1", "acc-1", from, to).Return(txns, nil).Once()

	got, err := suite.service.GetStatement(ctx, "t1", "acc-1", from, to)

	suite.Require().NoError(err)
	suite.Len(got, 2)
}

func (suite *LedgerServiceTestSuite) TestVerifyRateConsistency_FlagsMismatch() {
	ctx := context.Background()
	record := &domain.FinanceRecord{
		RecordID:      "rec-1",
		TenantID:      "t1",
		Kind:          domain.RecordIncome,
		ExchangeRate:  decimal.RequireFromString("48.20"),
		TransactionID: "txn-1",
	}
	txn := &domain.Transaction{
		TransactionID: "txn-1",
		ExchangeRate:  decimal.RequireFromString("47.90"),
	}
	suite.mockRecordRepo.On("FindFinanceRecordByID", ctx, "t1", "rec-1").Return(record, nil).Once()
	suite.mockTxnRepo.On("FindTransactionByID", ctx, "t1", "txn-1").Return(txn, nil).Once()

	discrepancy, err := suite.service.VerifyRateConsistency(ctx, "t1", domain.ReferenceIncome, "rec-1")

	suite.Require().NoError(err)
	suite.False(discrepancy.Consistent)
	suite.True(discrepancy.RecordRate.Equal(record.ExchangeRate))
	suite.True(discrepancy.TransactionRate.Equal(txn.ExchangeRate))
}

func (suite *LedgerServiceTestSuite) TestVerifyRateConsistency_ConsistentPair() {
	ctx := context.Background()
	rate := decimal.RequireFromString("41.15")
	record := &domain.FinanceRecord{RecordID: "rec-2", Kind: domain.RecordExpense, ExchangeRate: rate, TransactionID: "txn-2"}
	txn := &domain.Transaction{TransactionID: "txn-2", ExchangeRate: rate}
	suite.mockRecordRepo.On("FindFinanceRecordByID", ctx, "t1", "rec-2").Return(record, nil).Once()
	suite.mockTxnRepo.On("FindTransactionByID", ctx, "t1", "txn-2").Return(txn, nil).Once()

	discrepancy, err := suite.service.VerifyRateConsistency(ctx, "t1", domain.ReferenceExpense, "rec-2")

	suite.Require().NoError(err)
	suite.True(discrepancy.Consistent)
}

func TestLedgerServiceTestSuite(t *testing.T) {
	suite.Run(t, new(LedgerServiceTestSuite))
}
