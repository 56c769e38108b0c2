package services_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/aegeantours/tour_backoffice_app/internal/apperrors"
	"github.com/aegeantours/tour_backoffice_app/internal/core/domain"
	portssvc "github.com/aegeantours/tour_backoffice_app/internal/core/ports/services"
	"github.com/aegeantours/tour_backoffice_app/internal/core/services"
	"github.com/aegeantours/tour_backoffice_app/internal/dto"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

// recordingSubscriber captures rate-changed events for assertions.
type recordingSubscriber struct {
	mu     sync.Mutex
	events []domain.CurrencyRateSet
}

func (s *recordingSubscriber) OnRateChanged(_ domain.RateScope, set domain.CurrencyRateSet) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.events = append(s.events, set)
}

func (s *recordingSubscriber) count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.events)
}

type RateStoreServiceTestSuite struct {
	suite.Suite
	mockRateRepo *MockRateSetRepository
	subscriber   *recordingSubscriber
	service      portssvc.RateStoreSvcFacade
}

func (suite *RateStoreServiceTestSuite) SetupTest() {
	suite.mockRateRepo = new(MockRateSetRepository)
	suite.subscriber = new(recordingSubscriber)
	notifier := services.NewRateChangeNotifier()
	notifier.Subscribe(suite.subscriber)
	suite.service = services.NewRateStoreService(suite.mockRateRepo, notifier)
}

func (suite *RateStoreServiceTestSuite) TestGetRates_UninitializedYieldsSentinel() {
	ctx := context.Background()
	suite.mockRateRepo.On("FindRateSet", ctx, "t1", domain.RateScopeSystem).Return(nil, apperrors.ErrNotFound).Once()

	set, err := suite.service.GetRates(ctx, "t1", domain.RateScopeSystem)

	suite.Require().NoError(err)
	suite.Require().NotNil(set)
	suite.True(set.Rates[domain.EUR].IsZero())
	suite.True(set.Rates[domain.USD].IsZero())
	suite.True(set.Rates[domain.TRY].Equal(decimal.NewFromInt(1)))
	suite.False(set.IsConfigured(domain.EUR))
	suite.True(set.IsConfigured(domain.TRY))
	suite.mockRateRepo.AssertExpectations(suite.T())
}

func (suite *RateStoreServiceTestSuite) TestGetRates_UnknownScope() {
	_, err := suite.service.GetRates(context.Background(), "t1", "weekly")
	suite.Require().ErrorIs(err, apperrors.ErrValidation)
}

func (suite *RateStoreServiceTestSuite) TestSetManualRates_Success() {
	ctx := context.Background()
	suite.mockRateRepo.On("FindRateSet", ctx, "t1", domain.RateScopeSystem).Return(nil, apperrors.ErrNotFound).Once()
	suite.mockRateRepo.On("SaveRateSet", ctx, mock.AnythingOfType("domain.CurrencyRateSet")).Return(nil).Once()

	req := dto.SetRatesRequest{EUR: decimal.RequireFromString("48.20"), USD: decimal.RequireFromString("41.15")}
	set, err := suite.service.SetManualRates(ctx, "t1", domain.RateScopeSystem, req, "u1")

	suite.Require().NoError(err)
	suite.True(set.Rates[domain.EUR].Equal(req.EUR))
	suite.True(set.Rates[domain.USD].Equal(req.USD))
	suite.True(set.Rates[domain.TRY].Equal(decimal.NewFromInt(1)))
	suite.Equal(domain.RateSourceManual, set.Source)
	suite.False(set.LastUpdated.IsZero())
	suite.Equal(1, suite.subscriber.count())
	suite.mockRateRepo.AssertExpectations(suite.T())
}

func (suite *RateStoreServiceTestSuite) TestSetManualRates_HeaderScopeDoesNotNotify() {
	ctx := context.Background()
	suite.mockRateRepo.On("FindRateSet", ctx, "t1", domain.RateScopeHeader).Return(nil, apperrors.ErrNotFound).Once()
	suite.mockRateRepo.On("SaveRateSet", ctx, mock.AnythingOfType("domain.CurrencyRateSet")).Return(nil).Once()

	req := dto.SetRatesRequest{EUR: decimal.RequireFromString("48.20"), USD: decimal.RequireFromString("41.15")}
	_, err := suite.service.SetManualRates(ctx, "t1", domain.RateScopeHeader, req, "u1")

	suite.Require().NoError(err)
	suite.Equal(0, suite.subscriber.count())
}

func (suite *RateStoreServiceTestSuite) TestSetManualRates_RejectsNonPositive() {
	req := dto.SetRatesRequest{EUR: decimal.Zero, USD: decimal.RequireFromString("41.15")}
	_, err := suite.service.SetManualRates(context.Background(), "t1", domain.RateScopeSystem, req, "u1")

	suite.Require().ErrorIs(err, apperrors.ErrValidation)
	suite.mockRateRepo.AssertNotCalled(suite.T(), "SaveRateSet", mock.Anything, mock.Anything)
	suite.Equal(0, suite.subscriber.count())
}

func (suite *RateStoreServiceTestSuite) TestSetManualRates_RejectsLocked() {
	ctx := context.Background()
	locked := domain.NewSentinelRateSet("t1", domain.RateScopeSystem)
	locked.Locked = true
	suite.mockRateRepo.On("FindRateSet", ctx, "t1", domain.RateScopeSystem).Return(&locked, nil).Once()

	req := dto.SetRatesRequest{EUR: decimal.RequireFromString("48.20"), USD: decimal.RequireFromString("41.15")}
	_, err := suite.service.SetManualRates(ctx, "t1", domain.RateScopeSystem, req, "u1")

	suite.Require().ErrorIs(err, apperrors.ErrRatesLocked)
	suite.mockRateRepo.AssertNotCalled(suite.T(), "SaveRateSet", mock.Anything, mock.Anything)
	suite.Equal(0, suite.subscriber.count())
}

func (suite *RateStoreServiceTestSuite) TestSetRateLock_PreservesRatesSourceAndTimestamp() {
	ctx := context.Background()
	lastUpdated := time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)
	stored := domain.CurrencyRateSet{
		TenantID: "t1",
		Scope:    domain.RateScopeSystem,
		Rates: map[domain.Currency]decimal.Decimal{
			domain.EUR: decimal.RequireFromString("48.20"),
			domain.USD: decimal.RequireFromString("41.15"),
			domain.TRY: decimal.NewFromInt(1),
		},
		Source:      domain.RateSourceCentralBank,
		LastUpdated: lastUpdated,
	}
	suite.mockRateRepo.On("FindRateSet", ctx, "t1", domain.RateScopeSystem).Return(&stored, nil).Once()
	suite.mockRateRepo.On("SaveRateSet", ctx, mock.AnythingOfType("domain.CurrencyRateSet")).Return(nil).Once()

	set, err := suite.service.SetRateLock(ctx, "t1", domain.RateScopeSystem, true, "u1")

	suite.Require().NoError(err)
	suite.True(set.Locked)
	suite.True(set.Rates[domain.EUR].Equal(stored.Rates[domain.EUR]))
	suite.Equal(domain.RateSourceCentralBank, set.Source)
	suite.Equal(lastUpdated, set.LastUpdated)
	suite.mockRateRepo.AssertExpectations(suite.T())
}

func (suite *RateStoreServiceTestSuite) TestSetRateLock_AllowedWhileLocked() {
	// Unlocking a locked set must always be possible.
	ctx := context.Background()
	locked := domain.NewSentinelRateSet("t1", domain.RateScopeSystem)
	locked.Locked = true
	suite.mockRateRepo.On("FindRateSet", ctx, "t1", domain.RateScopeSystem).Return(&locked, nil).Once()
	suite.mockRateRepo.On("SaveRateSet", ctx, mock.AnythingOfType("domain.CurrencyRateSet")).Return(nil).Once()

	set, err := suite.service.SetRateLock(ctx, "t1", domain.RateScopeSystem, false, "u1")

	suite.Require().NoError(err)
	suite.False(set.Locked)
}

func (suite *RateStoreServiceTestSuite) TestRefreshFromQuote_Success() {
	ctx := context.Background()
	suite.mockRateRepo.On("FindRateSet", ctx, "t1", domain.RateScopeSystem).Return(nil, apperrors.ErrNotFound).Once()
	suite.mockRateRepo.On("SaveRateSet", ctx, mock.AnythingOfType("domain.CurrencyRateSet")).Return(nil).Once()

	quote := domain.CentralBankQuote{
		EUR:      decimal.RequireFromString("48.5210"),
		USD:      decimal.RequireFromString("41.3345"),
		QuotedAt: time.Now().UTC(),
	}
	set, err := suite.service.RefreshFromQuote(ctx, "t1", domain.RateScopeSystem, quote, "u1")

	suite.Require().NoError(err)
	suite.True(set.Rates[domain.EUR].Equal(quote.EUR))
	suite.True(set.Rates[domain.USD].Equal(quote.USD))
	suite.Equal(domain.RateSourceCentralBank, set.Source)
	suite.Equal(1, suite.subscriber.count())
	suite.mockRateRepo.AssertExpectations(suite.T())
}

func (suite *RateStoreServiceTestSuite) TestRefreshFromQuote_RejectsIncompleteQuote() {
	quote := domain.CentralBankQuote{EUR: decimal.RequireFromString("48.52"), QuotedAt: time.Now().UTC()}
	_, err := suite.service.RefreshFromQuote(context.Background(), "t1", domain.RateScopeSystem, quote, "u1")

	suite.Require().ErrorIs(err, apperrors.ErrStaleQuote)
	suite.mockRateRepo.AssertNotCalled(suite.T(), "SaveRateSet", mock.Anything, mock.Anything)
	suite.Equal(0, suite.subscriber.count())
}

func (suite *RateStoreServiceTestSuite) TestRefreshFromQuote_RejectsLocked() {
	ctx := context.Background()
	locked := domain.NewSentinelRateSet("t1", domain.RateScopeSystem)
	locked.Locked = true
	suite.mockRateRepo.On("FindRateSet", ctx, "t1", domain.RateScopeSystem).Return(&locked, nil).Once()

	quote := domain.CentralBankQuote{
		EUR:      decimal.RequireFromString("48.52"),
		USD:      decimal.RequireFromString("41.33"),
		QuotedAt: time.Now().UTC(),
	}
	_, err := suite.service.RefreshFromQuote(ctx, "t1", domain.RateScopeSystem, quote, "u1")

	suite.Require().ErrorIs(err, apperrors.ErrRatesLocked)
	suite.Equal(0, suite.subscriber.count())
}

func TestRateStoreServiceTestSuite(t *testing.T) {
	suite.Run(t, new(RateStoreServiceTestSuite))
}
