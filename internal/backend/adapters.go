package backend

import (
	"context"

	"github.com/google/uuid"

	"kwanzaflow/internal/core"
	"kwanzaflow/internal/services"
	gsheet "kwanzaflow/internal/sheets/google"
	"kwanzaflow/internal/storage"
)

// sqliteAdapter routes writes through the transaction service (local-first
// save plus async sync) and reads straight from the repository.
type sqliteAdapter struct {
	service *services.TransactionService
	repo    *storage.SQLiteRepository
}

func (a *sqliteAdapter) AddTransaction(ctx context.Context, t core.Transaction) (core.Transaction, error) {
	return a.service.CreateTransaction(ctx, t)
}

func (a *sqliteAdapter) DeleteTransaction(ctx context.Context, id string) error {
	return a.service.DeleteTransaction(ctx, id)
}

func (a *sqliteAdapter) ListTransactions(ctx context.Context) ([]core.Transaction, error) {
	return a.repo.ListTransactions(ctx)
}

func (a *sqliteAdapter) ListGoals(ctx context.Context) ([]core.Goal, error) {
	return a.repo.ListGoals(ctx)
}

func (a *sqliteAdapter) ListInvestments(ctx context.Context) ([]core.Investment, error) {
	return a.repo.ListInvestments(ctx)
}

// sheetsAdapter serves transactions straight from the spreadsheet. Goals and
// investments have no sheet representation, so the demo dataset backs them.
type sheetsAdapter struct {
	cli *gsheet.Client
}

func newSheetsAdapter(cli *gsheet.Client) *sheetsAdapter {
	return &sheetsAdapter{cli: cli}
}

func (a *sheetsAdapter) AddTransaction(ctx context.Context, t core.Transaction) (core.Transaction, error) {
	if err := t.Validate(); err != nil {
		return core.Transaction{}, err
	}
	if t.ID == "" {
		t.ID = uuid.NewString()
	}
	if _, err := a.cli.Append(ctx, t); err != nil {
		return core.Transaction{}, err
	}
	return t, nil
}

func (a *sheetsAdapter) DeleteTransaction(ctx context.Context, id string) error {
	return a.cli.Remove(ctx, id)
}

func (a *sheetsAdapter) ListTransactions(ctx context.Context) ([]core.Transaction, error) {
	return a.cli.ListTransactions(ctx)
}

func (a *sheetsAdapter) ListGoals(_ context.Context) ([]core.Goal, error) {
	return core.SeedGoals(), nil
}

func (a *sheetsAdapter) ListInvestments(_ context.Context) ([]core.Investment, error) {
	return core.SeedInvestments(), nil
}
