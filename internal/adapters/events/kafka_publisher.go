// Package events publishes transaction lifecycle events to Kafka.
package events

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/SscSPs/remit_backend/internal/core/domain"
	portssvc "github.com/SscSPs/remit_backend/internal/core/ports/services"
	"github.com/segmentio/kafka-go"
)

const (
	publishTimeout = 2 * time.Second
	// A commit publishes one message; flush it without waiting for a batch.
	publishBatchTimeout = 5 * time.Millisecond
)

// TransactionCommittedEvent is the message body written for every committed transaction.
type TransactionCommittedEvent struct {
	TransactionID  string    `json:"transaction_id"`
	UserID         string    `json:"user_id"`
	AmountUSD      string    `json:"amount_usd"`
	TargetCurrency string    `json:"target_currency"`
	ExchangeRate   string    `json:"exchange_rate"`
	FeeAmount      string    `json:"fee_amount"`
	FinalAmount    string    `json:"final_amount"`
	Status         string    `json:"status"`
	CreatedAt      time.Time `json:"created_at"`
}

// NewTransactionCommittedEvent builds the event for txn.
func NewTransactionCommittedEvent(txn domain.Transaction) TransactionCommittedEvent {
	return TransactionCommittedEvent{
		TransactionID:  txn.TransactionID,
		UserID:         txn.UserID,
		AmountUSD:      txn.AmountUSD.StringFixed(2),
		TargetCurrency: txn.TargetCurrency,
		ExchangeRate:   txn.ExchangeRate.StringFixed(4),
		FeeAmount:      txn.FeeAmount.StringFixed(2),
		FinalAmount:    txn.FinalAmount.StringFixed(2),
		Status:         string(txn.Status),
		CreatedAt:      txn.CreatedAt,
	}
}

// messageWriter is the subset of *kafka.Writer used here.
type messageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// KafkaPublisher writes events keyed by user ID so one user's events stay ordered.
type KafkaPublisher struct {
	writer messageWriter
}

func NewKafkaPublisher(brokers []string, topic string) *KafkaPublisher {
	return &KafkaPublisher{
		writer: &kafka.Writer{
			Addr:                   kafka.TCP(brokers...),
			Topic:                  topic,
			Balancer:               &kafka.Hash{},
			BatchSize:              1,
			BatchTimeout:           publishBatchTimeout,
			WriteTimeout:           publishTimeout,
			MaxAttempts:            2,
			AllowAutoTopicCreation: true,
		},
	}
}

var _ portssvc.TransactionEventPublisher = (*KafkaPublisher)(nil)

func (k *KafkaPublisher) PublishTransactionCommitted(ctx context.Context, txn domain.Transaction) error {
	msg, err := json.Marshal(NewTransactionCommittedEvent(txn))
	if err != nil {
		return fmt.Errorf("failed to encode transaction event: %w", err)
	}

	ctx, cancel := context.WithTimeout(ctx, publishTimeout)
	defer cancel()

	err = k.writer.WriteMessages(ctx, kafka.Message{
		Key:   []byte(txn.UserID),
		Value: msg,
		Time:  time.Now(),
	})
	if err != nil {
		return fmt.Errorf("failed to publish transaction %s: %w", txn.TransactionID, err)
	}
	return nil
}

// Close flushes pending writes and releases the connection.
func (k *KafkaPublisher) Close() error {
	return k.writer.Close()
}

// NoopPublisher drops every event. Used when no brokers are configured.
type NoopPublisher struct{}

var _ portssvc.TransactionEventPublisher = NoopPublisher{}

func (NoopPublisher) PublishTransactionCommitted(context.Context, domain.Transaction) error {
	return nil
}
