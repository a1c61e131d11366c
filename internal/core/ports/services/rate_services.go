package services

import (
	"context"

	"github.com/SscSPs/remit_backend/internal/core/domain"
	"github.com/shopspring/decimal"
)

// RateSource is the external system of record for exchange rates.
type RateSource interface {
	// FetchRates returns the full current rate table as currency code -> rate
	// (1 USD = rate units). It must honour ctx cancellation.
	FetchRates(ctx context.Context) (map[string]decimal.Decimal, error)
}

// RefreshResult reports the outcome of one refresh attempt against the rate source.
type RefreshResult struct {
	Success bool
	// Updated lists the currency codes written to the cache, sorted. It may be
	// non-empty when Success is false.
	Updated []string
	// Err carries the underlying fetch or store error when Success is false.
	Err error
}

// RateCacheReaderSvc defines read operations on the rate cache
type RateCacheReaderSvc interface {
	// Lookup reads the cache only. Returns apperrors.ErrNotFound on a miss.
	Lookup(ctx context.Context, currencyCode string) (*domain.ExchangeRate, error)

	// GetRate returns the cached rate; on a miss it performs one refresh and
	// looks again. Returns apperrors.ErrRateUnavailable if still missing.
	GetRate(ctx context.Context, currencyCode string) (*domain.ExchangeRate, error)

	// ListRates returns the cached rates of the sendable currencies.
	ListRates(ctx context.Context) ([]domain.ExchangeRate, error)
}

// RateCacheRefresherSvc defines operations that talk to the rate source
type RateCacheRefresherSvc interface {
	// Refresh fetches the rate table and upserts every allowed code. It never
	// returns an error; failures are reported in the result. Fetch and
	// validation failures leave the cache untouched. Writes are not atomic: a
	// store failure keeps the codes already written, listed in Updated.
	Refresh(ctx context.Context) RefreshResult

	// EnsureFresh refreshes only if currencyCode is not cached yet.
	EnsureFresh(ctx context.Context, currencyCode string) RefreshResult
}

// RateCacheSvcFacade combines all rate cache service interfaces
type RateCacheSvcFacade interface {
	RateCacheReaderSvc
	RateCacheRefresherSvc
}
