package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// ExchangeRate is the cached USD rate of one currency: 1 USD = RateToUSD units.
// There is at most one record per CurrencyCode.
type ExchangeRate struct {
	CurrencyCode string          `json:"currencyCode"`
	RateToUSD    decimal.Decimal `json:"rateToUsd"` // 4 fractional digits
	LastUpdated  time.Time       `json:"lastUpdated"`
}
