package services_test

import (
	"context"
	"fmt"
	"testing"

	"github.com/SscSPs/remit_backend/internal/apperrors"
	"github.com/SscSPs/remit_backend/internal/core/domain"
	portssvc "github.com/SscSPs/remit_backend/internal/core/ports/services"
	"github.com/SscSPs/remit_backend/internal/core/services"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

type QuoteServiceTestSuite struct {
	suite.Suite
	mockRates *MockRateCache
	service   portssvc.QuoteSvc
}

func (suite *QuoteServiceTestSuite) SetupTest() {
	suite.mockRates = new(MockRateCache)
	suite.service = services.NewQuoteService(suite.mockRates, domain.DefaultCurrencyConfig(), services.DefaultQuoteLimits())
}

func (suite *QuoteServiceTestSuite) TearDownTest() {
	suite.mockRates.AssertExpectations(suite.T())
}

func (suite *QuoteServiceTestSuite) withRate(code, value string) {
	suite.mockRates.On("GetRate", mock.Anything, code).
		Return(&domain.ExchangeRate{CurrencyCode: code, RateToUSD: dec(value)}, nil)
}

func (suite *QuoteServiceTestSuite) assertMoney(expected string, actual interface{ StringFixed(int32) string }) {
	suite.Equal(expected, actual.StringFixed(2))
}

func (suite *QuoteServiceTestSuite) TestCalculate_GBP() {
	suite.withRate("GBP", "0.75")

	b, err := suite.service.Calculate(context.Background(), dec("100.00"), "GBP")

	suite.Require().NoError(err)
	suite.Equal("GBP", b.TargetCurrency)
	suite.assertMoney("100.00", b.AmountUSD)
	suite.assertMoney("10.00", b.FeePercentage)
	suite.assertMoney("10.00", b.FeeAmount)
	suite.assertMoney("90.00", b.AmountAfterFee)
	suite.assertMoney("67.50", b.FinalAmount)
	suite.True(b.ExchangeRate.Equal(dec("0.75")))
}

func (suite *QuoteServiceTestSuite) TestCalculate_ZAR() {
	suite.withRate("ZAR", "17.50")

	b, err := suite.service.Calculate(context.Background(), dec("100.00"), "zar")

	suite.Require().NoError(err)
	suite.Equal("ZAR", b.TargetCurrency)
	suite.assertMoney("20.00", b.FeePercentage)
	suite.assertMoney("20.00", b.FeeAmount)
	suite.assertMoney("80.00", b.AmountAfterFee)
	suite.assertMoney("1400.00", b.FinalAmount)
}

func (suite *QuoteServiceTestSuite) TestCalculate_RoundsUpToNextCent() {
	suite.withRate("ZAR", "17.1235")

	b, err := suite.service.Calculate(context.Background(), dec("33.33"), "ZAR")

	// fee 6.666, after fee 26.664, converted 456.581004
	suite.Require().NoError(err)
	suite.assertMoney("6.67", b.FeeAmount)
	suite.assertMoney("26.67", b.AmountAfterFee)
	suite.assertMoney("456.59", b.FinalAmount)
}

func (suite *QuoteServiceTestSuite) TestCalculate_SubtractsUnroundedFee() {
	suite.withRate("GBP", "1")

	b, err := suite.service.Calculate(context.Background(), dec("10.05"), "GBP")

	// fee 1.005 shows as 1.01, but 10.05 - 1.005 = 9.045 converts to 9.05, not 9.04.
	suite.Require().NoError(err)
	suite.assertMoney("1.01", b.FeeAmount)
	suite.assertMoney("9.05", b.FinalAmount)
}

func (suite *QuoteServiceTestSuite) TestCalculate_IsIdempotent() {
	suite.withRate("GBP", "0.7523")
	ctx := context.Background()

	first, err := suite.service.Calculate(ctx, dec("1234.56"), "GBP")
	suite.Require().NoError(err)
	second, err := suite.service.Calculate(ctx, dec("1234.56"), "GBP")
	suite.Require().NoError(err)

	suite.Equal(first.FinalAmount.String(), second.FinalAmount.String())
	suite.Equal(first.FeeAmount.String(), second.FeeAmount.String())
	suite.Equal(first.AmountAfterFee.String(), second.AmountAfterFee.String())
}

func (suite *QuoteServiceTestSuite) TestCalculate_AcceptsBounds() {
	suite.withRate("GBP", "0.75")

	for _, amount := range []string{"10.00", "10000.00"} {
		b, err := suite.service.Calculate(context.Background(), dec(amount), "GBP")
		suite.Require().NoError(err, amount)
		suite.False(b.FinalAmount.IsNegative())
	}
}

func (suite *QuoteServiceTestSuite) TestCalculate_RejectsInvalidAmounts() {
	for _, amount := range []string{"9.99", "10000.01", "0", "-50.00", "10.001"} {
		suite.Run(amount, func() {
			b, err := suite.service.Calculate(context.Background(), dec(amount), "GBP")
			suite.Nil(b)
			suite.ErrorIs(err, apperrors.ErrValidation)
		})
	}
	suite.mockRates.AssertNotCalled(suite.T(), "GetRate", mock.Anything, mock.Anything)
}

func (suite *QuoteServiceTestSuite) TestCalculate_RejectsUnsupportedCurrency() {
	for _, code := range []string{"EUR", "USD", ""} {
		b, err := suite.service.Calculate(context.Background(), dec("100.00"), code)
		suite.Nil(b)
		suite.ErrorIs(err, apperrors.ErrUnsupportedCurrency, code)
		suite.ErrorIs(err, apperrors.ErrValidation, code)
	}
	suite.mockRates.AssertNotCalled(suite.T(), "GetRate", mock.Anything, mock.Anything)
}

func (suite *QuoteServiceTestSuite) TestCalculate_RateUnavailable() {
	suite.mockRates.On("GetRate", mock.Anything, "ZAR").
		Return(nil, fmt.Errorf("%w: no rate for ZAR: %w", apperrors.ErrRateUnavailable, apperrors.ErrNotFound)).Once()

	b, err := suite.service.Calculate(context.Background(), dec("100.00"), "ZAR")

	suite.Nil(b)
	suite.ErrorIs(err, apperrors.ErrRateUnavailable)
}

func TestQuoteServiceTestSuite(t *testing.T) {
	suite.Run(t, new(QuoteServiceTestSuite))
}
