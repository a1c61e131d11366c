package dto

import (
	"time"

	"github.com/SscSPs/remit_backend/internal/core/domain"
	"github.com/shopspring/decimal"
)

// TransferRequest is the body of both the calculate and the send endpoints.
// recipient_name is required on both so a quote can be sent unchanged.
type TransferRequest struct {
	AmountUSD      decimal.Decimal `json:"amount_usd" binding:"money"`
	TargetCurrency string          `json:"target_currency" binding:"required,len=3,alpha"`
	RecipientName  string          `json:"recipient_name" binding:"required,min=1,max=100"`
}

// BreakdownResponse is the priced quote returned to clients. Money fields are
// rendered with exactly two decimals.
type BreakdownResponse struct {
	AmountUSD      string `json:"amount_usd"`
	TargetCurrency string `json:"target_currency"`
	ExchangeRate   string `json:"exchange_rate"`
	FeePercentage  string `json:"fee_percentage"`
	FeeAmount      string `json:"fee_amount"`
	AmountAfterFee string `json:"amount_after_fee"`
	FinalAmount    string `json:"final_amount"`
}

// SendTransactionResponse merges the stored record's identity with the breakdown.
type SendTransactionResponse struct {
	TransactionID string `json:"transaction_id"`
	Status        string `json:"status"`
	BreakdownResponse
}

// TransactionResponse renders a stored transaction.
type TransactionResponse struct {
	TransactionID  string    `json:"transaction_id"`
	UserID         string    `json:"user_id"`
	AmountUSD      string    `json:"amount_usd"`
	TargetCurrency string    `json:"target_currency"`
	ExchangeRate   string    `json:"exchange_rate"`
	FeePercentage  string    `json:"fee_percentage"`
	FeeAmount      string    `json:"fee_amount"`
	FinalAmount    string    `json:"final_amount"`
	RecipientName  string    `json:"recipient_name"`
	Status         string    `json:"status"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

// TransactionHistoryParams are the query parameters of the history endpoint.
type TransactionHistoryParams struct {
	Page int `form:"page,default=1" binding:"min=0"`
}

// TransactionHistoryResponse is one page of a user's transactions.
type TransactionHistoryResponse struct {
	Transactions []TransactionResponse `json:"transactions"`
	TotalPages   int                   `json:"total_pages"`
	CurrentPage  int                   `json:"current_page"`
	HasNext      bool                  `json:"has_next"`
	HasPrevious  bool                  `json:"has_previous"`
}

func money(d decimal.Decimal) string {
	return d.StringFixed(2)
}

func rate(d decimal.Decimal) string {
	return d.StringFixed(4)
}

// ToBreakdownResponse converts a domain.Breakdown to its response DTO.
func ToBreakdownResponse(b *domain.Breakdown) BreakdownResponse {
	return BreakdownResponse{
		AmountUSD:      money(b.AmountUSD),
		TargetCurrency: b.TargetCurrency,
		ExchangeRate:   rate(b.ExchangeRate),
		FeePercentage:  money(b.FeePercentage),
		FeeAmount:      money(b.FeeAmount),
		AmountAfterFee: money(b.AmountAfterFee),
		FinalAmount:    money(b.FinalAmount),
	}
}

// ToSendTransactionResponse merges a committed transaction with its breakdown.
func ToSendTransactionResponse(txn *domain.Transaction, b *domain.Breakdown) SendTransactionResponse {
	return SendTransactionResponse{
		TransactionID:     txn.TransactionID,
		Status:            string(txn.Status),
		BreakdownResponse: ToBreakdownResponse(b),
	}
}

// ToTransactionResponse converts a domain.Transaction to its response DTO.
func ToTransactionResponse(txn *domain.Transaction) TransactionResponse {
	return TransactionResponse{
		TransactionID:  txn.TransactionID,
		UserID:         txn.UserID,
		AmountUSD:      money(txn.AmountUSD),
		TargetCurrency: txn.TargetCurrency,
		ExchangeRate:   rate(txn.ExchangeRate),
		FeePercentage:  money(txn.FeePercentage),
		FeeAmount:      money(txn.FeeAmount),
		FinalAmount:    money(txn.FinalAmount),
		RecipientName:  txn.RecipientName,
		Status:         string(txn.Status),
		CreatedAt:      txn.CreatedAt,
		UpdatedAt:      txn.UpdatedAt,
	}
}

// ToTransactionResponses converts a slice of domain transactions.
func ToTransactionResponses(txns []domain.Transaction) []TransactionResponse {
	out := make([]TransactionResponse, len(txns))
	for i := range txns {
		out[i] = ToTransactionResponse(&txns[i])
	}
	return out
}
