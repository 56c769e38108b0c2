package services_test

import (
	"context"
	"testing"

	"github.com/aegeantours/tour_backoffice_app/internal/apperrors"
	"github.com/aegeantours/tour_backoffice_app/internal/core/domain"
	portssvc "github.com/aegeantours/tour_backoffice_app/internal/core/ports/services"
	"github.com/aegeantours/tour_backoffice_app/internal/core/services"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"
)

type ConverterServiceTestSuite struct {
	suite.Suite
	mockRateRepo *MockRateSetRepository
	service      portssvc.ConverterSvcFacade
}

func (suite *ConverterServiceTestSuite) SetupTest() {
	suite.mockRateRepo = new(MockRateSetRepository)
	rateStore := services.NewRateStoreService(suite.mockRateRepo, nil)
	suite.service = services.NewConverterService(rateStore)
}

func (suite *ConverterServiceTestSuite) stubHeaderRates() {
	set := &domain.CurrencyRateSet{
		TenantID: "t1",
		Scope:    domain.RateScopeHeader,
		Rates: map[domain.Currency]decimal.Decimal{
			domain.EUR: decimal.RequireFromString("48.00"),
			domain.USD: decimal.RequireFromString("40.00"),
			domain.TRY: decimal.NewFromInt(1),
		},
		Source: domain.RateSourceManual,
	}
	suite.mockRateRepo.On("FindRateSet", context.Background(), "t1", domain.RateScopeHeader).Return(set, nil).Once()
}

func (suite *ConverterServiceTestSuite) TestConvert_ThroughTRY() {
	suite.stubHeaderRates()

	// 100 EUR = 4800 TRY = 120 USD at 48/40.
	got, err := suite.service.Convert(context.Background(), "t1", decimal.NewFromInt(100), domain.EUR, domain.USD)

	suite.Require().NoError(err)
	suite.True(got.Equal(decimal.NewFromInt(120)))
}

func (suite *ConverterServiceTestSuite) TestConvert_ToTRY() {
	suite.stubHeaderRates()

	got, err := suite.service.Convert(context.Background(), "t1", decimal.RequireFromString("2.5"), domain.USD, domain.TRY)

	suite.Require().NoError(err)
	suite.True(got.Equal(decimal.NewFromInt(100)))
}

func (suite *ConverterServiceTestSuite) TestConvert_RoundsToFourDigits() {
	suite.stubHeaderRates()

	// 10 TRY -> USD = 10/40 exactly, but a non-terminating case must round.
	got, err := suite.service.Convert(context.Background(), "t1", decimal.NewFromInt(10), domain.TRY, domain.EUR)

	suite.Require().NoError(err)
	suite.True(got.Equal(decimal.RequireFromString("0.2083")))
}

func (suite *ConverterServiceTestSuite) TestConvert_SameCurrencyShortCircuits() {
	got, err := suite.service.Convert(context.Background(), "t1", decimal.NewFromInt(55), domain.EUR, domain.EUR)

	suite.Require().NoError(err)
	suite.True(got.Equal(decimal.NewFromInt(55)))
	suite.mockRateRepo.AssertNotCalled(suite.T(), "FindRateSet", context.Background(), "t1", domain.RateScopeHeader)
}

func (suite *ConverterServiceTestSuite) TestConvert_RejectsUnsupportedCurrency() {
	_, err := suite.service.Convert(context.Background(), "t1", decimal.NewFromInt(10), "GBP", domain.TRY)

	suite.Require().ErrorIs(err, apperrors.ErrInvalidCurrency)
}

func (suite *ConverterServiceTestSuite) TestConvert_RejectsUnconfiguredHeaderRates() {
	suite.mockRateRepo.On("FindRateSet", context.Background(), "t1", domain.RateScopeHeader).Return(nil, apperrors.ErrNotFound).Once()

	_, err := suite.service.Convert(context.Background(), "t1", decimal.NewFromInt(10), domain.EUR, domain.USD)

	suite.Require().ErrorIs(err, apperrors.ErrRateNotConfigured)
}

func TestConverterServiceTestSuite(t *testing.T) {
	suite.Run(t, new(ConverterServiceTestSuite))
}
