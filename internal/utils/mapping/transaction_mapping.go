package mapping

import (
	"github.com/SscSPs/remit_backend/internal/core/domain"
	"github.com/SscSPs/remit_backend/internal/models"
)

// ToModelTransaction converts a domain Transaction to a model Transaction
func ToModelTransaction(d domain.Transaction) models.Transaction {
	return models.Transaction{
		TransactionID:  d.TransactionID,
		UserID:         d.UserID,
		AmountUSD:      d.AmountUSD,
		TargetCurrency: d.TargetCurrency,
		ExchangeRate:   d.ExchangeRate,
		FeePercentage:  d.FeePercentage,
		FeeAmount:      d.FeeAmount,
		FinalAmount:    d.FinalAmount,
		RecipientName:  d.RecipientName,
		Status:         string(d.Status),
		AuditFields:    ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainTransaction converts a model Transaction to a domain Transaction
func ToDomainTransaction(m models.Transaction) domain.Transaction {
	return domain.Transaction{
		TransactionID:  m.TransactionID,
		UserID:         m.UserID,
		AmountUSD:      m.AmountUSD,
		TargetCurrency: m.TargetCurrency,
		ExchangeRate:   m.ExchangeRate,
		FeePercentage:  m.FeePercentage,
		FeeAmount:      m.FeeAmount,
		FinalAmount:    m.FinalAmount,
		RecipientName:  m.RecipientName,
		Status:         domain.TransactionStatus(m.Status),
		AuditFields:    ToDomainAuditFields(m.AuditFields),
	}
}

// ToDomainTransactionSlice converts a slice of model Transactions
func ToDomainTransactionSlice(ms []models.Transaction) []domain.Transaction {
	ds := make([]domain.Transaction, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainTransaction(m)
	}
	return ds
}
