package domain

import (
	"sort"
	"strings"

	"github.com/shopspring/decimal"
)

// CurrencyConfig is the single source of truth for which currencies can be sent
// and what they cost. The rate refresh allow-list is derived from it so the fee
// table and the cached currencies cannot drift apart.
type CurrencyConfig struct {
	// BaseCurrency is the currency amounts are quoted in (USD).
	BaseCurrency string
	// Fees maps a target currency code to its fee fraction (0.10 == 10%).
	Fees map[string]decimal.Decimal
	// DefaultFee applies to codes missing from Fees. Quotes for such codes are
	// rejected before it is used; see FeeFraction.
	DefaultFee decimal.Decimal
}

// DefaultCurrencyConfig returns the stock configuration: GBP at 10%, ZAR at 20%.
func DefaultCurrencyConfig() CurrencyConfig {
	return CurrencyConfig{
		BaseCurrency: "USD",
		Fees: map[string]decimal.Decimal{
			"GBP": decimal.RequireFromString("0.10"),
			"ZAR": decimal.RequireFromString("0.20"),
		},
		DefaultFee: decimal.RequireFromString("0.15"),
	}
}

// IsTargetSupported reports whether code is a currency that can be sent.
func (c CurrencyConfig) IsTargetSupported(code string) bool {
	_, ok := c.Fees[strings.ToUpper(code)]
	return ok
}

// FeeFraction returns the fee fraction for code and whether it came from the
// fee table. Unlisted codes get DefaultFee with ok=false.
func (c CurrencyConfig) FeeFraction(code string) (decimal.Decimal, bool) {
	fee, ok := c.Fees[strings.ToUpper(code)]
	if !ok {
		return c.DefaultFee, false
	}
	return fee, true
}

// TargetCurrencies returns the sendable currency codes in sorted order.
func (c CurrencyConfig) TargetCurrencies() []string {
	codes := make([]string, 0, len(c.Fees))
	for code := range c.Fees {
		codes = append(codes, code)
	}
	sort.Strings(codes)
	return codes
}

// RefreshAllowList returns every code the rate cache stores: the base currency
// plus all target currencies.
func (c CurrencyConfig) RefreshAllowList() map[string]struct{} {
	allowed := make(map[string]struct{}, len(c.Fees)+1)
	if c.BaseCurrency != "" {
		allowed[strings.ToUpper(c.BaseCurrency)] = struct{}{}
	}
	for code := range c.Fees {
		allowed[strings.ToUpper(code)] = struct{}{}
	}
	return allowed
}
