// Package postgres is the shared-deployment ledger backend. Unlike the SQLite
// backend it has no migration tooling; the small fixed schema is bootstrapped
// on connect.
package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"kwanzaflow/internal/core"
)

const schema = `
CREATE TABLE IF NOT EXISTS transactions (
    id TEXT PRIMARY KEY,
    seq BIGINT GENERATED ALWAYS AS IDENTITY,
    description TEXT NOT NULL,
    amount_cents BIGINT NOT NULL CHECK (amount_cents > 0),
    tx_date DATE NOT NULL,
    tx_type TEXT NOT NULL CHECK (tx_type IN ('income', 'expense', 'investment')),
    category TEXT NOT NULL,
    fixed BOOLEAN NOT NULL DEFAULT FALSE,
    created_at TIMESTAMPTZ NOT NULL DEFAULT now()
);

CREATE TABLE IF NOT EXISTS goals (
    id TEXT PRIMARY KEY,
    title TEXT NOT NULL,
    target_cents BIGINT NOT NULL,
    current_cents BIGINT NOT NULL DEFAULT 0,
    deadline DATE NOT NULL,
    goal_type TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS investments (
    id TEXT PRIMARY KEY,
    name TEXT NOT NULL,
    inv_type TEXT NOT NULL,
    amount_cents BIGINT NOT NULL,
    current_value_cents BIGINT NOT NULL,
    return_rate DOUBLE PRECISION NOT NULL DEFAULT 0
);
`

type Repository struct {
	pool *pgxpool.Pool
}

// Connect opens a pool, verifies the connection and bootstraps the schema.
func Connect(ctx context.Context, url string) (*Repository, error) {
	pool, err := pgxpool.New(ctx, url)
	if err != nil {
		return nil, fmt.Errorf("create pool: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}
	if _, err := pool.Exec(ctx, schema); err != nil {
		pool.Close()
		return nil, fmt.Errorf("bootstrap schema: %w", err)
	}
	return &Repository{pool: pool}, nil
}

func (r *Repository) Close() error {
	r.pool.Close()
	return nil
}

func (r *Repository) AddTransaction(ctx context.Context, t core.Transaction) (core.Transaction, error) {
	if err := t.Validate(); err != nil {
		return core.Transaction{}, err
	}
	if t.ID == "" {
		t.ID = uuid.NewString()
	}
	query := `
		INSERT INTO transactions (id, description, amount_cents, tx_date, tx_type, category, fixed)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`
	_, err := r.pool.Exec(ctx, query,
		t.ID, t.Description, t.Amount.Cents, t.Date.Time, string(t.Type), t.Category, t.Fixed)
	if err != nil {
		return core.Transaction{}, fmt.Errorf("insert transaction: %w", err)
	}
	return t, nil
}

func (r *Repository) DeleteTransaction(ctx context.Context, id string) error {
	if _, err := r.pool.Exec(ctx, `DELETE FROM transactions WHERE id = $1`, id); err != nil {
		return fmt.Errorf("delete transaction: %w", err)
	}
	return nil
}

// ListTransactions returns the ledger most recent insert first. Ordering
// follows the identity column: created_at can collide within a timestamp.
func (r *Repository) ListTransactions(ctx context.Context) ([]core.Transaction, error) {
	query := `
		SELECT id, description, amount_cents, tx_date, tx_type, category, fixed
		FROM transactions
		ORDER BY seq DESC
	`
	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list transactions: %w", err)
	}
	defer rows.Close()

	var out []core.Transaction
	for rows.Next() {
		var t core.Transaction
		var date time.Time
		if err := rows.Scan(&t.ID, &t.Description, &t.Amount.Cents, &date, &t.Type, &t.Category, &t.Fixed); err != nil {
			return nil, fmt.Errorf("scan transaction: %w", err)
		}
		t.Date = core.DateOf(date)
		out = append(out, t)
	}
	return out, rows.Err()
}

func (r *Repository) GetTransaction(ctx context.Context, id string) (core.Transaction, error) {
	query := `
		SELECT id, description, amount_cents, tx_date, tx_type, category, fixed
		FROM transactions WHERE id = $1
	`
	var t core.Transaction
	var date time.Time
	err := r.pool.QueryRow(ctx, query, id).
		Scan(&t.ID, &t.Description, &t.Amount.Cents, &date, &t.Type, &t.Category, &t.Fixed)
	if errors.Is(err, pgx.ErrNoRows) {
		return core.Transaction{}, fmt.Errorf("transaction %s: not found", id)
	}
	if err != nil {
		return core.Transaction{}, fmt.Errorf("get transaction: %w", err)
	}
	t.Date = core.DateOf(date)
	return t, nil
}

func (r *Repository) ListGoals(ctx context.Context) ([]core.Goal, error) {
	query := `
		SELECT id, title, target_cents, current_cents, deadline, goal_type
		FROM goals ORDER BY id
	`
	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list goals: %w", err)
	}
	defer rows.Close()

	var out []core.Goal
	for rows.Next() {
		var g core.Goal
		var deadline time.Time
		if err := rows.Scan(&g.ID, &g.Title, &g.TargetAmount.Cents, &g.CurrentAmount.Cents, &deadline, &g.Type); err != nil {
			return nil, fmt.Errorf("scan goal: %w", err)
		}
		g.Deadline = core.DateOf(deadline)
		out = append(out, g)
	}
	return out, rows.Err()
}

func (r *Repository) ListInvestments(ctx context.Context) ([]core.Investment, error) {
	query := `
		SELECT id, name, inv_type, amount_cents, current_value_cents, return_rate
		FROM investments ORDER BY id
	`
	rows, err := r.pool.Query(ctx, query)
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
