package domain

import "github.com/shopspring/decimal"

// Breakdown is the result of pricing a prospective transfer. It is a snapshot:
// committing it persists these values verbatim.
type Breakdown struct {
	AmountUSD      decimal.Decimal `json:"amountUsd"`
	TargetCurrency string          `json:"targetCurrency"`
	ExchangeRate   decimal.Decimal `json:"exchangeRate"`
	FeePercentage  decimal.Decimal `json:"feePercentage"`
	FeeAmount      decimal.Decimal `json:"feeAmount"`      // rounded up, 2dp
	AmountAfterFee decimal.Decimal `json:"amountAfterFee"` // rounded up, display only
	FinalAmount    decimal.Decimal `json:"finalAmount"`    // rounded up, 2dp
}
