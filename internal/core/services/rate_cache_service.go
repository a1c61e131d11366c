package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"strings"
	"time"

	"github.com/SscSPs/remit_backend/internal/apperrors"
	"github.com/SscSPs/remit_backend/internal/core/domain"
	portsrepo "github.com/SscSPs/remit_backend/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/remit_backend/internal/core/ports/services"
	"github.com/SscSPs/remit_backend/internal/platform/metrics"
	"github.com/SscSPs/remit_backend/internal/utils/accounting"
	"golang.org/x/sync/singleflight"
)

const refreshFlightKey = "refresh"

// rateCacheService implements the RateCacheSvcFacade interface
type rateCacheService struct {
	BaseService
	rateRepo   portsrepo.ExchangeRateRepositoryFacade
	source     portssvc.RateSource
	currencies domain.CurrencyConfig
	flight     singleflight.Group
	now        func() time.Time
}

// RateCacheOption is a functional option for configuring the rate cache
type RateCacheOption func(*rateCacheService)

// WithRateCacheClock overrides the clock used to stamp refreshed rates.
func WithRateCacheClock(now func() time.Time) RateCacheOption {
	return func(s *rateCacheService) {
		s.now = now
	}
}

// NewRateCacheService creates a rate cache backed by repo and fed by source.
// Only the codes in currencies.RefreshAllowList are ever stored.
func NewRateCacheService(repo portsrepo.ExchangeRateRepositoryFacade, source portssvc.RateSource, currencies domain.CurrencyConfig, options ...RateCacheOption) portssvc.RateCacheSvcFacade {
	svc := &rateCacheService{
		rateRepo:   repo,
		source:     source,
		currencies: currencies,
		now:        time.Now,
	}
	for _, option := range options {
		option(svc)
	}
	return svc
}

var _ portssvc.RateCacheSvcFacade = (*rateCacheService)(nil)

func (s *rateCacheService) Lookup(ctx context.Context, currencyCode string) (*domain.ExchangeRate, error) {
	code := strings.ToUpper(currencyCode)
	rate, err := s.rateRepo.FindExchangeRate(ctx, code)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			metrics.RateCacheLookupsTotal.WithLabelValues(metrics.ResultMiss).Inc()
		}
		return nil, fmt.Errorf("rate cache lookup for %s: %w", code, err)
	}
	metrics.RateCacheLookupsTotal.WithLabelValues(metrics.ResultHit).Inc()
	return rate, nil
}

func (s *rateCacheService) GetRate(ctx context.Context, currencyCode string) (*domain.ExchangeRate, error) {
	code := strings.ToUpper(currencyCode)

	rate, err := s.Lookup(ctx, code)
	if err == nil {
		return rate, nil
	}
	if !errors.Is(err, apperrors.ErrNotFound) {
		s.LogError(ctx, err, "Rate cache read failed", slog.String("currency_code", code))
		return nil, fmt.Errorf("%w: %w", apperrors.ErrRateUnavailable, err)
	}

	// At most one synchronous refresh on a miss.
	if result := s.EnsureFresh(ctx, code); !result.Success {
		s.LogDebug(ctx, "Refresh on cache miss failed", slog.String("currency_code", code))
	}

	rate, err = s.Lookup(ctx, code)
	if err != nil {
		return nil, fmt.Errorf("%w: no rate for %s: %w", apperrors.ErrRateUnavailable, code, err)
	}
	return rate, nil
}

func (s *rateCacheService) ListRates(ctx context.Context) ([]domain.ExchangeRate, error) {
	rates, err := s.rateRepo.ListExchangeRates(ctx, s.currencies.TargetCurrencies())
	if err != nil {
		s.LogError(ctx, err, "Failed to list cached rates")
		return nil, fmt.Errorf("failed to list exchange rates: %w", err)
	}
	return rates, nil
}

func (s *rateCacheService) EnsureFresh(ctx context.Context, currencyCode string) portssvc.RefreshResult {
	_, err := s.Lookup(ctx, currencyCode)
	switch {
	case err == nil:
		return portssvc.RefreshResult{Success: true}
	case errors.Is(err, apperrors.ErrNotFound):
		return s.Refresh(ctx)
	default:
		return portssvc.RefreshResult{Err: err}
	}
}

// Refresh collapses concurrent callers onto a single outbound fetch. The
// shared fetch is detached from any one caller's cancellation and is bounded
// by the rate source's own timeout; each caller stops waiting when its ctx is done.
func (s *rateCacheService) Refresh(ctx context.Context) portssvc.RefreshResult {
	ch := s.flight.DoChan(refreshFlightKey, func() (any, error) {
		return s.refresh(context.WithoutCancel(ctx)), nil
	})
	select {
	case res := <-ch:
		return res.Val.(portssvc.RefreshResult)
	case <-ctx.Done():
		s.LogDebug(ctx, "Stopped waiting for rate refresh", slog.String("error", ctx.Err().Error()))
		return portssvc.RefreshResult{Err: ctx.Err()}
	}
}

func (s *rateCacheService) refresh(ctx context.Context) portssvc.RefreshResult {
	fetched, err := s.source.FetchRates(ctx)
	if err != nil {
		metrics.RateRefreshTotal.WithLabelValues(metrics.ResultFailure).Inc()
		s.LogWarn(ctx, err, "Exchange rate refresh failed")
		return portssvc.RefreshResult{Err: err}
	}

	allowed := s.currencies.RefreshAllowList()
	now := s.now().UTC()

	// Validate the whole table before writing anything.
	pending := make([]domain.ExchangeRate, 0, len(allowed))
	for code, value := range fetched {
		code = strings.ToUpper(strings.TrimSpace(code))
		if _, ok := allowed[code]; !ok {
			continue
		}
		if value.IsNegative() {
			err := fmt.Errorf("%w: negative rate %s for %s", apperrors.ErrValidation, value.String(), code)
			metrics.RateRefreshTotal.WithLabelValues(metrics.ResultFailure).Inc()
			s.LogWarn(ctx, err, "Rejected rate table")
			return portssvc.RefreshResult{Err: err}
		}
		pending = append(pending, domain.ExchangeRate{
			CurrencyCode: code,
			RateToUSD:    accounting.RoundHalfUp(value, accounting.RatePlaces),
			LastUpdated:  now,
		})
	}
	sort.Slice(pending, func(i, j int) bool { return pending[i].CurrencyCode < pending[j].CurrencyCode })

	updated := make([]string, 0, len(pending))
	for _, rate := range pending {
		if err := s.rateRepo.UpsertExchangeRate(ctx, rate); err != nil {
			metrics.RateRefreshTotal.WithLabelValues(metrics.ResultFailure).Inc()
			s.LogError(ctx, err, "Failed to store refreshed rate",
				slog.String("currency_code", rate.CurrencyCode),
				slog.Any("updated", updated))
			return portssvc.RefreshResult{Updated: updated, Err: err}
		}
		updated = append(updated, rate.CurrencyCode)
	}

	metrics.RateRefreshTotal.WithLabelValues(metrics.ResultSuccess).Inc()
	s.LogInfo(ctx, "Exchange rates refreshed", slog.Any("updated", updated))
	return portssvc.RefreshResult{Success: true, Updated: updated}
}
