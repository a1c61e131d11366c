package domain

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// TransactionStatus is the settlement state of a remittance.
type TransactionStatus string

const (
	StatusPending   TransactionStatus = "PENDING"
	StatusCompleted TransactionStatus = "COMPLETED"
	StatusFailed    TransactionStatus = "FAILED"
)

// MaxRecipientNameLength bounds Transaction.RecipientName.
const MaxRecipientNameLength = 100

// Transaction is the audit record of a committed quote. Monetary fields are
// copied from the Breakdown at commit time and never recomputed.
type Transaction struct {
	TransactionID  string            `json:"transactionID"`
	UserID         string            `json:"userID"`
	AmountUSD      decimal.Decimal   `json:"amountUsd"`
	TargetCurrency string            `json:"targetCurrency"`
	ExchangeRate   decimal.Decimal   `json:"exchangeRate"`
	FeePercentage  decimal.Decimal   `json:"feePercentage"`
	FeeAmount      decimal.Decimal   `json:"feeAmount"`
	FinalAmount    decimal.Decimal   `json:"finalAmount"`
	RecipientName  string            `json:"recipientName"`
	Status         TransactionStatus `json:"status"`
	AuditFields
}

// TransitionTo moves the transaction to next. Only PENDING records may change
// state, and only to COMPLETED or FAILED.
func (t *Transaction) TransitionTo(next TransactionStatus) error {
	if t.Status != StatusPending {
		return fmt.Errorf("transaction %s is %s and cannot move to %s", t.TransactionID, t.Status, next)
	}
	switch next {
	case StatusCompleted, StatusFailed:
		t.Status = next
		return nil
	default:
		return fmt.Errorf("invalid target status %q for transaction %s", next, t.TransactionID)
	}
}

// Validate checks the record is internally consistent before it is stored.
func (t *Transaction) Validate() error {
	if t.TransactionID == "" {
		return fmt.Errorf("transaction ID is required")
	}
	if t.UserID == "" {
		return fmt.Errorf("user ID is required")
	}
	if !t.AmountUSD.IsPositive() {
		return fmt.Errorf("amount must be positive")
	}
	if t.FinalAmount.IsNegative() {
		return fmt.Errorf("final amount cannot be negative")
	}
	if t.RecipientName == "" {
		return fmt.Errorf("recipient name is required")
	}
	if len([]rune(t.RecipientName)) > MaxRecipientNameLength {
		return fmt.Errorf("recipient name must be at most %d characters", MaxRecipientNameLength)
	}
	return nil
}
