package models

import "github.com/shopspring/decimal"

// Transaction is a row of the transactions table.
type Transaction struct {
	TransactionID  string          `db:"transaction_id"`
	UserID         string          `db:"user_id"`
	AmountUSD      decimal.Decimal `db:"amount_usd"`
	TargetCurrency string          `db:"target_currency"`
	ExchangeRate   decimal.Decimal `db:"exchange_rate"`
	FeePercentage  decimal.Decimal `db:"fee_percentage"`
	FeeAmount      decimal.Decimal `db:"fee_amount"`
	FinalAmount    decimal.Decimal `db:"final_amount"`
	RecipientName  string          `db:"recipient_name"`
	Status         string          `db:"status"`
	AuditFields
}
