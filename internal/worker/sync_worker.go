package worker

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"golang.org/x/sync/errgroup"

	"kwanzaflow/internal/amqp"
	"kwanzaflow/internal/core"
	"kwanzaflow/internal/storage"
)

// SheetWriter is the spreadsheet side of the sync pipeline.
type SheetWriter interface {
	Append(ctx context.Context, t core.Transaction) (rowRef string, err error)
	Remove(ctx context.Context, id string) error
}

// Storage is the slice of the local repository the worker needs.
type Storage interface {
	GetTransaction(ctx context.Context, id string) (core.Transaction, error)
	GetPendingSyncTransactions(ctx context.Context, limit int) ([]storage.PendingSyncTransaction, error)
	MarkSynced(ctx context.Context, id, sheetRef string) error
	MarkSyncError(ctx context.Context, id string) error
}

// Consumer delivers queued sync messages to a handler until ctx ends.
type Consumer interface {
	ConsumeTransactionSync(ctx context.Context, handler func(*amqp.TransactionSyncMessage) error) error
}

// SyncWorker pushes local transactions to the spreadsheet mirror. AMQP
// messages drive the normal path; a periodic catch-up scan recovers from
// lost messages and worker downtime.
type SyncWorker struct {
	storage   Storage
	sheet     SheetWriter
	batchSize int
	interval  time.Duration
}

func NewSyncWorker(st Storage, sheet SheetWriter, batchSize int, interval time.Duration) *SyncWorker {
	if batchSize <= 0 {
		batchSize = 50
	}
	if interval <= 0 {
		interval = 5 * time.Minute
	}
	return &SyncWorker{
		storage:   st,
		sheet:     sheet,
		batchSize: batchSize,
		interval:  interval,
	}
}

// HandleSyncMessage processes a single queued message.
func (w *SyncWorker) HandleSyncMessage(ctx context.Context, msg *amqp.TransactionSyncMessage) error {
	slog.InfoContext(ctx, "Processing sync message", "id", msg.ID, "op", msg.Op)

	if msg.Op == amqp.OpDelete {
		if err := w.sheet.Remove(ctx, msg.ID); err != nil {
			return fmt.Errorf("remove transaction from spreadsheet: %w", err)
		}
		return nil
	}

	t, err := w.storage.GetTransaction(ctx, msg.ID)
	if err != nil {
		// Deleted before the upsert was processed. Nothing to push.
		slog.WarnContext(ctx, "Transaction not found for sync, skipping",
			"id", msg.ID, "error", err)
		return nil
	}

	return w.pushTransaction(ctx, t)
}

func (w *SyncWorker) pushTransaction(ctx context.Context, t core.Transaction) error {
	rowRef, err := w.sheet.Append(ctx, t)
	if err != nil {
		if markErr := w.storage.MarkSyncError(ctx, t.ID); markErr != nil {
			slog.ErrorContext(ctx, "Failed to mark sync error", "id", t.ID, "error", markErr)
		}
		return fmt.Errorf("append transaction to spreadsheet: %w", err)
	}
	if err := w.storage.MarkSynced(ctx, t.ID, rowRef); err != nil {
		return fmt.Errorf("mark transaction synced: %w", err)
	}
	return nil
}

// ProcessPendingTransactions pushes transactions the queue never delivered.
func (w *SyncWorker) ProcessPendingTransactions(ctx context.Context) error {
	pending, err := w.storage.GetPendingSyncTransactions(ctx, w.batchSize)
	if err != nil {
		return fmt.Errorf("get pending transactions: %w", err)
	}
	if len(pending) == 0 {
		return nil
	}

	slog.InfoContext(ctx, "Processing pending transactions", "count", len(pending))

	synced, failed := 0, 0
	for _, p := range pending {
		t, err := w.storage.GetTransaction(ctx, p.ID)
		if err != nil {
			slog.ErrorContext(ctx, "Failed to load pending transaction", "id", p.ID, "error", err)
			if markErr := w.storage.MarkSyncError(ctx, p.ID); markErr != nil {
				slog.ErrorContext(ctx, "Failed to mark sync error", "id", p.ID, "error", markErr)
			}
			failed++
			continue
		}
		if err := w.pushTransaction(ctx, t); err != nil {
			slog.ErrorContext(ctx, "Failed to sync pending transaction", "id", p.ID, "error", err)
			failed++
			continue
		}
		synced++
	}

	slog.InfoContext(ctx, "Catch-up sync completed",
		"total", len(pending),
		"synced", synced,
		"errors", failed)
	return nil
}

// Run consumes queued messages and runs the periodic catch-up scan until ctx
// is cancelled.
func (w *SyncWorker) Run(ctx context.Context, consumer Consumer) error {
	// Recover anything missed while the worker was down.
	if err := w.ProcessPendingTransactions(ctx); err != nil {
		slog.ErrorContext(ctx, "Startup catch-up scan failed", "error", err)
	}

	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		return consumer.ConsumeTransactionSync(ctx, func(msg *amqp.TransactionSyncMessage) error {
			return w.HandleSyncMessage(ctx, msg)
		})
	})

	g.Go(func() error {
		ticker := time.NewTicker(w.interval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-ticker.C:
				if err := w.ProcessPendingTransactions(ctx); err != nil {
					slog.ErrorContext(ctx, "Periodic catch-up scan failed", "error", err)
				}
			}
		}
	})

	return g.Wait()
}
