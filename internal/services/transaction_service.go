package services

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"kwanzaflow/internal/amqp"
	"kwanzaflow/internal/core"
	"kwanzaflow/internal/storage"
)

// SyncPublisher enqueues a transaction for background spreadsheet sync.
type SyncPublisher interface {
	PublishTransactionSync(ctx context.Context, id, op string) error
}

// TransactionService orchestrates transaction writes across the local
// database and the sync queue. Writes are local-first: a queue failure never
// fails the request.
type TransactionService struct {
	storage   *storage.SQLiteRepository
	publisher SyncPublisher
}

func NewTransactionService(storage *storage.SQLiteRepository, publisher SyncPublisher) *TransactionService {
	return &TransactionService{
		storage:   storage,
		publisher: publisher,
	}
}

// CreateTransaction saves the transaction locally and enqueues a sync message.
func (s *TransactionService) CreateTransaction(ctx context.Context, t core.Transaction) (core.Transaction, error) {
	saved, err := s.storage.AddTransaction(ctx, t)
	if err != nil {
		return core.Transaction{}, fmt.Errorf("save transaction: %w", err)
	}

	if err := s.publish(ctx, saved.ID, amqp.OpUpsert); err != nil {
		slog.ErrorContext(ctx, "Failed to publish sync message",
			"id", saved.ID, "error", err)
		// Transaction is saved locally; the catch-up scan will retry.
	}

	return saved, nil
}

// DeleteTransaction removes the transaction locally and enqueues a delete
// message so the spreadsheet row gets cleared too.
func (s *TransactionService) DeleteTransaction(ctx context.Context, id string) error {
	if err := s.storage.DeleteTransaction(ctx, id); err != nil {
		return fmt.Errorf("delete transaction: %w", err)
	}

	if err := s.publish(ctx, id, amqp.OpDelete); err != nil {
		slog.ErrorContext(ctx, "Failed to publish delete message",
			"id", id, "error", err)
	}

	return nil
}

func (s *TransactionService) publish(ctx context.Context, id, op string) error {
	if s.publisher == nil {
		slog.WarnContext(ctx, "Sync publisher not available, skipping sync message")
		return nil
	}
	return s.publisher.PublishTransactionSync(ctx, id, op)
}

// Close closes the storage and, when it owns one, the publisher connection.
func (s *TransactionService) Close() error {
	var errs []error

	if s.storage != nil {
		if err := s.storage.Close(); err != nil {
			errs = append(errs, fmt.Errorf("storage: %w", err))
		}
	}

	if closer, ok := s.publisher.(io.Closer); ok {
		if err := closer.Close(); err != nil {
			errs = append(errs, fmt.Errorf("publisher: %w", err))
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf("close transaction service: %v", errs)
	}

	return nil
}
