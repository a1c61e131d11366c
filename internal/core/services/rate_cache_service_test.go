package services_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/SscSPs/remit_backend/internal/adapters/database/memory"
	"github.com/SscSPs/remit_backend/internal/apperrors"
	"github.com/SscSPs/remit_backend/internal/core/domain"
	portssvc "github.com/SscSPs/remit_backend/internal/core/ports/services"
	"github.com/SscSPs/remit_backend/internal/core/services"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

type RateCacheServiceTestSuite struct {
	suite.Suite
	mockRateRepo *MockExchangeRateRepository
	mockSource   *MockRateSource
	fixedNow     time.Time
	service      portssvc.RateCacheSvcFacade
}

func (suite *RateCacheServiceTestSuite) SetupTest() {
	suite.mockRateRepo = new(MockExchangeRateRepository)
	suite.mockSource = new(MockRateSource)
	suite.fixedNow = time.Date(2025, 8, 9, 12, 0, 0, 0, time.UTC)
	suite.service = services.NewRateCacheService(
		suite.mockRateRepo,
		suite.mockSource,
		domain.DefaultCurrencyConfig(),
		services.WithRateCacheClock(func() time.Time { return suite.fixedNow }),
	)
}

func (suite *RateCacheServiceTestSuite) TearDownTest() {
	suite.mockRateRepo.AssertExpectations(suite.T())
	suite.mockSource.AssertExpectations(suite.T())
}

func (suite *RateCacheServiceTestSuite) rateMatcher(code, value string) interface{} {
	return mock.MatchedBy(func(r domain.ExchangeRate) bool {
		return r.CurrencyCode == code && r.RateToUSD.Equal(dec(value)) && r.LastUpdated.Equal(suite.fixedNow)
	})
}

func (suite *RateCacheServiceTestSuite) TestRefresh_StoresOnlyAllowedCodes() {
	ctx := context.Background()
	suite.mockSource.On("FetchRates", mock.Anything).Return(map[string]decimal.Decimal{
		"USD": dec("1"),
		"gbp": dec("0.75"),
		"ZAR": dec("17.5"),
		"EUR": dec("0.91"),
	}, nil).Once()
	suite.mockRateRepo.On("UpsertExchangeRate", mock.Anything, suite.rateMatcher("GBP", "0.75")).Return(nil).Once()
	suite.mockRateRepo.On("UpsertExchangeRate", mock.Anything, suite.rateMatcher("USD", "1")).Return(nil).Once()
	suite.mockRateRepo.On("UpsertExchangeRate", mock.Anything, suite.rateMatcher("ZAR", "17.5")).Return(nil).Once()

	result := suite.service.Refresh(ctx)

	suite.True(result.Success)
	suite.NoError(result.Err)
	suite.Equal([]string{"GBP", "USD", "ZAR"}, result.Updated)
}

func (suite *RateCacheServiceTestSuite) TestRefresh_PartialTableLeavesOthersUntouched() {
	ctx := context.Background()
	suite.mockSource.On("FetchRates", mock.Anything).Return(map[string]decimal.Decimal{
		"USD": dec("1"),
		"GBP": dec("0.8"),
	}, nil).Once()
	suite.mockRateRepo.On("UpsertExchangeRate", mock.Anything, suite.rateMatcher("GBP", "0.8")).Return(nil).Once()
	suite.mockRateRepo.On("UpsertExchangeRate", mock.Anything, suite.rateMatcher("USD", "1")).Return(nil).Once()

	result := suite.service.Refresh(ctx)

	suite.True(result.Success)
	suite.Equal([]string{"GBP", "USD"}, result.Updated)
	suite.mockRateRepo.AssertNumberOfCalls(suite.T(), "UpsertExchangeRate", 2)
}

func (suite *RateCacheServiceTestSuite) TestRefresh_RoundsRatesToFourPlaces() {
	ctx := context.Background()
	suite.mockSource.On("FetchRates", mock.Anything).Return(map[string]decimal.Decimal{
		"ZAR": dec("17.123456"),
	}, nil).Once()
	suite.mockRateRepo.On("UpsertExchangeRate", mock.Anything, suite.rateMatcher("ZAR", "17.1235")).Return(nil).Once()

	result := suite.service.Refresh(ctx)

	suite.True(result.Success)
}

func (suite *RateCacheServiceTestSuite) TestRefresh_SourceFailureLeavesCacheUntouched() {
	ctx := context.Background()
	fetchErr := errors.New("connection refused")
	suite.mockSource.On("FetchRates", mock.Anything).Return(nil, fetchErr).Once()

	result := suite.service.Refresh(ctx)

	suite.False(result.Success)
	suite.ErrorIs(result.Err, fetchErr)
	suite.Empty(result.Updated)
	suite.mockRateRepo.AssertNotCalled(suite.T(), "UpsertExchangeRate", mock.Anything, mock.Anything)
}

func (suite *RateCacheServiceTestSuite) TestRefresh_NegativeRateRejectsWholeTable() {
	ctx := context.Background()
	suite.mockSource.On("FetchRates", mock.Anything).Return(map[string]decimal.Decimal{
		"GBP": dec("0.75"),
		"ZAR": dec("-1"),
	}, nil).Once()

	result := suite.service.Refresh(ctx)

	suite.False(result.Success)
	suite.ErrorIs(result.Err, apperrors.ErrValidation)
	suite.mockRateRepo.AssertNotCalled(suite.T(), "UpsertExchangeRate", mock.Anything, mock.Anything)
}

func (suite *RateCacheServiceTestSuite) TestRefresh_StoreFailureReported() {
	ctx := context.Background()
	storeErr := errors.New("disk full")
	suite.mockSource.On("FetchRates", mock.Anything).Return(map[string]decimal.Decimal{
		"GBP": dec("0.75"),
	}, nil).Once()
	suite.mockRateRepo.On("UpsertExchangeRate", mock.Anything, mock.Anything).Return(storeErr).Once()

	result := suite.service.Refresh(ctx)

	suite.False(result.Success)
	suite.ErrorIs(result.Err, storeErr)
	suite.Empty(result.Updated)
}

func (suite *RateCacheServiceTestSuite) TestRefresh_StoreFailureKeepsEarlierWrites() {
	ctx := context.Background()
	storeErr := errors.New("disk full")
	suite.mockSource.On("FetchRates", mock.Anything).Return(map[string]decimal.Decimal{
		"GBP": dec("0.75"),
		"USD": dec("1"),
		"ZAR": dec("17.5"),
	}, nil).Once()
	suite.mockRateRepo.On("UpsertExchangeRate", mock.Anything, suite.rateMatcher("GBP", "0.75")).Return(nil).Once()
	suite.mockRateRepo.On("UpsertExchangeRate", mock.Anything, suite.rateMatcher("USD", "1")).Return(storeErr).Once()

	result := suite.service.Refresh(ctx)

	suite.False(result.Success)
	suite.ErrorIs(result.Err, storeErr)
	suite.Equal([]string{"GBP"}, result.Updated)
	suite.mockRateRepo.AssertNotCalled(suite.T(), "UpsertExchangeRate", mock.Anything, suite.rateMatcher("ZAR", "17.5"))
}

func (suite *RateCacheServiceTestSuite) TestLookup_NeverRefreshes() {
	ctx := context.Background()
	suite.mockRateRepo.On("FindExchangeRate", ctx, "ZAR").Return(nil, apperrors.ErrNotFound).Once()

	rate, err := suite.service.Lookup(ctx, "zar")

	suite.Nil(rate)
	suite.ErrorIs(err, apperrors.ErrNotFound)
	suite.mockSource.AssertNotCalled(suite.T(), "FetchRates", mock.Anything)
}

func (suite *RateCacheServiceTestSuite) TestGetRate_HitDoesNotRefresh() {
	ctx := context.Background()
	cached := &domain.ExchangeRate{CurrencyCode: "GBP", RateToUSD: dec("0.75"), LastUpdated: suite.fixedNow}
	suite.mockRateRepo.On("FindExchangeRate", ctx, "GBP").Return(cached, nil).Once()

	rate, err := suite.service.GetRate(ctx, "GBP")

	suite.Require().NoError(err)
	suite.Equal(cached, rate)
	suite.mockSource.AssertNotCalled(suite.T(), "FetchRates", mock.Anything)
}

func (suite *RateCacheServiceTestSuite) TestGetRate_MissRefreshesExactlyOnce() {
	ctx := context.Background()
	stored := &domain.ExchangeRate{CurrencyCode: "ZAR", RateToUSD: dec("17.5"), LastUpdated: suite.fixedNow}
	suite.mockRateRepo.On("FindExchangeRate", ctx, "ZAR").Return(nil, apperrors.ErrNotFound).Twice()
	suite.mockSource.On("FetchRates", mock.Anything).Return(map[string]decimal.Decimal{"ZAR": dec("17.5")}, nil).Once()
	suite.mockRateRepo.On("UpsertExchangeRate", mock.Anything, suite.rateMatcher("ZAR", "17.5")).Return(nil).Once()
	suite.mockRateRepo.On("FindExchangeRate", ctx, "ZAR").Return(stored, nil).Once()

	rate, err := suite.service.GetRate(ctx, "ZAR")

	suite.Require().NoError(err)
	suite.True(rate.RateToUSD.Equal(dec("17.5")))
	suite.mockSource.AssertNumberOfCalls(suite.T(), "FetchRates", 1)
}

func (suite *RateCacheServiceTestSuite) TestGetRate_EmptyCacheAndFailedRefresh() {
	ctx := context.Background()
	suite.mockRateRepo.On("FindExchangeRate", ctx, "ZAR").Return(nil, apperrors.ErrNotFound).Times(3)
	suite.mockSource.On("FetchRates", mock.Anything).Return(nil, errors.New("timeout")).Once()

	rate, err := suite.service.GetRate(ctx, "ZAR")

	suite.Nil(rate)
	suite.ErrorIs(err, apperrors.ErrRateUnavailable)
	suite.ErrorIs(err, apperrors.ErrNotFound)
}

func (suite *RateCacheServiceTestSuite) TestGetRate_CancelledCallerDoesNotFailJoinedCaller() {
	started := make(chan struct{})
	release := make(chan struct{})
	var fetchCtx context.Context
	suite.mockSource.On("FetchRates", mock.Anything).Run(func(args mock.Arguments) {
		fetchCtx = args.Get(0).(context.Context)
		close(started)
		<-release
	}).Return(map[string]decimal.Decimal{"ZAR": dec("17.5")}, nil).Once()

	rateRepo := memory.NewExchangeRateRepository()
	service := services.NewRateCacheService(
		rateRepo,
		suite.mockSource,
		domain.DefaultCurrencyConfig(),
		services.WithRateCacheClock(func() time.Time { return suite.fixedNow }),
	)

	ctxA, cancelA := context.WithCancel(context.Background())
	defer cancelA()
	errA := make(chan error, 1)
	go func() {
		_, err := service.GetRate(ctxA, "ZAR")
		errA <- err
	}()
	<-started

	type outcome struct {
		rate *domain.ExchangeRate
		err  error
	}
	resB := make(chan outcome, 1)
	go func() {
		rate, err := service.GetRate(context.Background(), "ZAR")
		resB <- outcome{rate, err}
	}()
	// Let B join the in-flight fetch.
	time.Sleep(50 * time.Millisecond)

	cancelA()
	select {
	case err := <-errA:
		suite.ErrorIs(err, apperrors.ErrRateUnavailable)
	case <-time.After(2 * time.Second):
		suite.FailNow("cancelled caller still waiting on the shared fetch")
	}
	suite.NoError(fetchCtx.Err(), "shared fetch must not inherit a caller's cancellation")

	close(release)
	select {
	case got := <-resB:
		suite.Require().NoError(got.err)
		suite.True(got.rate.RateToUSD.Equal(dec("17.5")))
	case <-time.After(2 * time.Second):
		suite.FailNow("joined caller never received the refreshed rate")
	}
	suite.mockSource.AssertNumberOfCalls(suite.T(), "FetchRates", 1)
}

func (suite *RateCacheServiceTestSuite) TestGetRate_StoreErrorIsRateUnavailable() {
	ctx := context.Background()
	suite.mockRateRepo.On("FindExchangeRate", ctx, "GBP").Return(nil, errors.New("db down")).Once()

	_, err := suite.service.GetRate(ctx, "GBP")

	suite.ErrorIs(err, apperrors.ErrRateUnavailable)
	suite.mockSource.AssertNotCalled(suite.T(), "FetchRates", mock.Anything)
}

func (suite *RateCacheServiceTestSuite) TestEnsureFresh_SkipsRefreshWhenCached() {
	ctx := context.Background()
	suite.mockRateRepo.On("FindExchangeRate", ctx, "GBP").
		Return(&domain.ExchangeRate{CurrencyCode: "GBP", RateToUSD: dec("0.75")}, nil).Once()

	result := suite.service.EnsureFresh(ctx, "GBP")

	suite.True(result.Success)
	suite.Empty(result.Updated)
	suite.mockSource.AssertNotCalled(suite.T(), "FetchRates", mock.Anything)
}

func (suite *RateCacheServiceTestSuite) TestListRates_UsesTargetCurrencies() {
	ctx := context.Background()
	rates := []domain.ExchangeRate{
		{CurrencyCode: "GBP", RateToUSD: dec("0.75")},
		{CurrencyCode: "ZAR", RateToUSD: dec("17.5")},
	}
	suite.mockRateRepo.On("ListExchangeRates", ctx, []string{"GBP", "ZAR"}).Return(rates, nil).Once()

	got, err := suite.service.ListRates(ctx)

	suite.Require().NoError(err)
	suite.Len(got, 2)
}

func TestRateCacheServiceTestSuite(t *testing.T) {
	suite.Run(t, new(RateCacheServiceTestSuite))
}
