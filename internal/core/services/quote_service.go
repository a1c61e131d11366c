package services

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/SscSPs/remit_backend/internal/apperrors"
	"github.com/SscSPs/remit_backend/internal/core/domain"
	portssvc "github.com/SscSPs/remit_backend/internal/core/ports/services"
	"github.com/SscSPs/remit_backend/internal/platform/metrics"
	"github.com/SscSPs/remit_backend/internal/utils/accounting"
	"github.com/shopspring/decimal"
)

// QuoteLimits bounds the USD amount of a single transfer, inclusive.
type QuoteLimits struct {
	MinAmountUSD decimal.Decimal
	MaxAmountUSD decimal.Decimal
}

// DefaultQuoteLimits returns the 10.00 to 10000.00 USD window.
func DefaultQuoteLimits() QuoteLimits {
	return QuoteLimits{
		MinAmountUSD: decimal.RequireFromString("10.00"),
		MaxAmountUSD: decimal.RequireFromString("10000.00"),
	}
}

// quoteService implements the QuoteSvc interface
type quoteService struct {
	BaseService
	rates      portssvc.RateCacheReaderSvc
	currencies domain.CurrencyConfig
	limits     QuoteLimits
}

// NewQuoteService creates the quote engine.
func NewQuoteService(rates portssvc.RateCacheReaderSvc, currencies domain.CurrencyConfig, limits QuoteLimits) portssvc.QuoteSvc {
	return &quoteService{
		rates:      rates,
		currencies: currencies,
		limits:     limits,
	}
}

var _ portssvc.QuoteSvc = (*quoteService)(nil)

func (s *quoteService) Calculate(ctx context.Context, amountUSD decimal.Decimal, targetCurrency string) (*domain.Breakdown, error) {
	code := strings.ToUpper(strings.TrimSpace(targetCurrency))

	breakdown, err := s.calculate(ctx, amountUSD, code)
	label := code
	if !s.currencies.IsTargetSupported(code) {
		label = "unsupported"
	}
	if err != nil {
		metrics.QuotesTotal.WithLabelValues(label, metrics.ResultFailure).Inc()
		return nil, err
	}
	metrics.QuotesTotal.WithLabelValues(label, metrics.ResultSuccess).Inc()
	return breakdown, nil
}

func (s *quoteService) calculate(ctx context.Context, amountUSD decimal.Decimal, code string) (*domain.Breakdown, error) {
	if err := s.validateAmount(amountUSD); err != nil {
		return nil, err
	}
	if !s.currencies.IsTargetSupported(code) {
		return nil, fmt.Errorf("%w: %q (supported: %s)", apperrors.ErrUnsupportedCurrency, code,
			strings.Join(s.currencies.TargetCurrencies(), ", "))
	}

	rate, err := s.rates.GetRate(ctx, code)
	if err != nil {
		s.LogWarn(ctx, err, "No exchange rate for quote", slog.String("currency_code", code))
		return nil, fmt.Errorf("failed to price transfer to %s: %w", code, err)
	}

	// Unlisted codes were rejected above, so the default fee is never used here.
	fraction, _ := s.currencies.FeeFraction(code)
	split, err := accounting.ApplyFee(amountUSD, fraction)
	if err != nil {
		return nil, fmt.Errorf("invalid fee configuration for %s: %w", code, err)
	}

	converted := split.AmountAfterFee.Mul(rate.RateToUSD)

	return &domain.Breakdown{
		AmountUSD:      amountUSD,
		TargetCurrency: code,
		ExchangeRate:   rate.RateToUSD,
		FeePercentage:  accounting.FractionToPercentage(fraction),
		FeeAmount:      accounting.RoundMoney(split.Fee),
		AmountAfterFee: accounting.RoundMoney(split.AmountAfterFee),
		FinalAmount:    accounting.RoundMoney(converted),
	}, nil
}

func (s *quoteService) validateAmount(amountUSD decimal.Decimal) error {
	if !amountUSD.IsPositive() {
		return fmt.Errorf("%w: amount must be positive", apperrors.ErrValidation)
	}
	if !accounting.HasAtMostPlaces(amountUSD, accounting.MoneyPlaces) {
		return fmt.Errorf("%w: amount must have at most %d decimal places", apperrors.ErrValidation, accounting.MoneyPlaces)
	}
	if amountUSD.LessThan(s.limits.MinAmountUSD) || amountUSD.GreaterThan(s.limits.MaxAmountUSD) {
		return fmt.Errorf("%w: amount must be between %s and %s USD", apperrors.ErrValidation,
			s.limits.MinAmountUSD.StringFixed(2), s.limits.MaxAmountUSD.StringFixed(2))
	}
	return nil
}
