package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// ExchangeRate is a row of the exchange_rates table. currency_code is unique.
type ExchangeRate struct {
	ExchangeRateID string          `db:"exchange_rate_id"`
	CurrencyCode   string          `db:"currency_code"`
	RateToUSD      decimal.Decimal `db:"rate_to_usd"` // NUMERIC(10,4)
	LastUpdated    time.Time       `db:"last_updated"`
}
