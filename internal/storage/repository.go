package storage

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"

	"kwanzaflow/internal/core"

	_ "modernc.org/sqlite"
)

type SQLiteRepository struct {
	db *sql.DB
}

func NewSQLiteRepository(dbPath string) (*SQLiteRepository, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
		return nil, fmt.Errorf("create db directory: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	if err := RunMigrations(dbPath); err != nil {
		db.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}

	return &SQLiteRepository{db: db}, nil
}

func (r *SQLiteRepository) Close() error {
	if r.db != nil {
		return r.db.Close()
	}
	return nil
}

// AddTransaction implements ledger.TransactionWriter.
func (r *SQLiteRepository) AddTransaction(ctx context.Context, t core.Transaction) (core.Transaction, error) {
	if err := t.Validate(); err != nil {
		return core.Transaction{}, err
	}
	if t.ID == "" {
		t.ID = uuid.NewString()
	}

	_, err := r.db.ExecContext(ctx, `
		INSERT INTO transactions (id, description, amount_cents, tx_date, tx_type, category, fixed)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
		t.ID, t.Description, t.Amount.Cents, t.Date.Key(), string(t.Type), t.Category, boolToInt(t.Fixed))
	if err != nil {
		return core.Transaction{}, fmt.Errorf("insert transaction: %w", err)
	}

	slog.InfoContext(ctx, "Transaction saved to SQLite",
		"id", t.ID,
		"description", t.Description,
		"amount_cents", t.Amount.Cents,
		"type", t.Type,
		"category", t.Category)

	return t, nil
}

// DeleteTransaction implements ledger.TransactionDeleter. Unknown IDs are a no-op.
func (r *SQLiteRepository) DeleteTransaction(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM transactions WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete transaction: %w", err)
	}
	if n, _ := res.RowsAffected(); n > 0 {
		slog.InfoContext(ctx, "Transaction deleted", "id", id)
	}
	return nil
}

// ListTransactions implements ledger.TransactionLister, newest insert first.
func (r *SQLiteRepository) ListTransactions(ctx context.Context) ([]core.Transaction, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, description, amount_cents, tx_date, tx_type, category, fixed
		FROM transactions
		ORDER BY rowid DESC`)
	if err != nil {
		return nil, fmt.Errorf("list transactions: %w", err)
	}
	defer rows.Close()

	var out []core.Transaction
	for rows.Next() {
		t, err := scanTransaction(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, t)
	}
	return out, rows.Err()
}

func (r *SQLiteRepository) ListGoals(ctx context.Context) ([]core.Goal, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, title, target_cents, current_cents, deadline, goal_type
		FROM goals
		ORDER BY rowid`)
	if err != nil {
		return nil, fmt.Errorf("list goals: %w", err)
	}
	defer rows.Close()

	var out []core.Goal
	for rows.Next() {
		var g core.Goal
		var deadline string
		if err := rows.Scan(&g.ID, &g.Title, &g.TargetAmount.Cents, &g.CurrentAmount.Cents, &deadline, &g.Type); err != nil {
			return nil, fmt.Errorf("scan goal: %w", err)
		}
		if g.Deadline, err = core.ParseDate(deadline); err != nil {
			return nil, fmt.Errorf("goal %s: %w", g.ID, err)
		}
		out = append(out, g)
	}
	return out, rows.Err()
}

func (r *SQLiteRepository) ListInvestments(ctx context.Context) ([]core.Investment, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, name, inv_type, amount_cents, current_value_cents, return_rate
		FROM investments
		ORDER BY rowid`)
	if err != nil {
		return nil, fmt.Errorf("list investments: %w", err)
	}
	defer rows.Close()

	var out []core.Investment
	for rows.Next() {
		var inv core.Investment
		if err := rows.Scan(&inv.ID, &inv.Name, &inv.Type, &inv.Amount.Cents, &inv.CurrentValue.Cents, &inv.ReturnRate); err != nil {
			return nil, fmt.Errorf("scan investment: %w", err)
		}
		out = append(out, inv)
	}
	return out, rows.Err()
}

// GetTransaction retrieves a single transaction by ID for sync processing.
func (r *SQLiteRepository) GetTransaction(ctx context.Context, id string) (core.Transaction, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT id, description, amount_cents, tx_date, tx_type, category, fixed
		FROM transactions
		WHERE id = ?`, id)
	return scanTransaction(row)
}

// PendingSyncTransaction is the minimal row needed to enqueue catch-up syncs.
type PendingSyncTransaction struct {
	ID        string
	CreatedAt time.Time
}

// GetPendingSyncTransactions returns transactions not yet pushed to the
// spreadsheet, oldest first.
func (r *SQLiteRepository) GetPendingSyncTransactions(ctx context.Context, limit int) ([]PendingSyncTransaction, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, created_at
		FROM transactions
		WHERE synced = 0
		ORDER BY created_at
		LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("get pending sync transactions: %w", err)
	}
	defer rows.Close()

	var out []PendingSyncTransaction
	for rows.Next() {
		var p PendingSyncTransaction
		var created string
		if err := rows.Scan(&p.ID, &created); err != nil {
			return nil, fmt.Errorf("scan pending sync transaction: %w", err)
		}
		if ts, err := time.Parse(time.RFC3339, created); err == nil {
			p.CreatedAt = ts
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

// MarkSynced records the spreadsheet row reference for a pushed transaction.
func (r *SQLiteRepository) MarkSynced(ctx context.Context, id, sheetRef string) error {
	_, err := r.db.ExecContext(ctx,
		`UPDATE transactions SET synced = 1, sheet_ref = ? WHERE id = ?`, sheetRef, id)
	if err != nil {
		return fmt.Errorf("mark transaction synced: %w", err)
	}
	slog.InfoContext(ctx, "Transaction marked as synced", "id", id, "sheet_ref", sheetRef)
	return nil
}

// MarkSyncError flags a transaction whose spreadsheet push failed.
func (r *SQLiteRepository) MarkSyncError(ctx context.Context, id string) error {
	_, err := r.db.ExecContext(ctx,
		`UPDATE transactions SET sync_errors = sync_errors + 1 WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("mark transaction sync error: %w", err)
	}
	slog.WarnContext(ctx, "Transaction marked with sync error", "id", id)
	return nil
}

// SheetRef returns the stored spreadsheet row reference, empty if never synced.
func (r *SQLiteRepository) SheetRef(ctx context.Context, id string) (string, error) {
	var ref sql.NullString
	err := r.db.QueryRowContext(ctx,
		`SELECT sheet_ref FROM transactions WHERE id = ?`, id).Scan(&ref)
	if err == sql.ErrNoRows {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("get sheet ref: %w", err)
	}
	return ref.String, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanTransaction(row rowScanner) (core.Transaction, error) {
	var t core.Transaction
	var date string
	var fixed int
	if err := row.Scan(&t.ID, &t.Description, &t.Amount.Cents, &date, &t.Type, &t.Category, &fixed); err != nil {
		return core.Transaction{}, fmt.Errorf("scan transaction: %w", err)
	}
	d, err := core.ParseDate(date)
	if err != nil {
		return core.Transaction{}, fmt.Errorf("transaction %s: %w", t.ID, err)
	}
	t.Date = d
	t.Fixed = fixed != 0
	return t, nil
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
