package ledger

import (
	"context"

	"kwanzaflow/internal/core"
)

// Ports for outbound adapters.
type (
	TransactionWriter interface {
		// AddTransaction persists t and returns it with its assigned ID.
		AddTransaction(ctx context.Context, t core.Transaction) (core.Transaction, error)
	}

	// TransactionDeleter removes a transaction by ID. Deleting an unknown ID
	// is not an error.
	TransactionDeleter interface {
		DeleteTransaction(ctx context.Context, id string) error
	}

	// TransactionLister returns every transaction, most recent insert first.
	TransactionLister interface {
		ListTransactions(ctx context.Context) ([]core.Transaction, error)
	}

	GoalReader interface {
		ListGoals(ctx context.Context) ([]core.Goal, error)
	}

	InvestmentReader interface {
		ListInvestments(ctx context.Context) ([]core.Investment, error)
	}
)
