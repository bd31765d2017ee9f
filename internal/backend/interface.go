package backend

import (
	"context"

	"kwanzaflow/internal/ledger"
)

// Backend is the unified surface the HTTP layer works against.
type Backend interface {
	ledger.TransactionWriter
	ledger.TransactionDeleter
	ledger.TransactionLister
	ledger.GoalReader
	ledger.InvestmentReader
}

// CleanupFunc releases backend resources on shutdown.
type CleanupFunc func() error

// BackendResult contains the backend instance and optional cleanup function
type BackendResult struct {
	Backend Backend
	Cleanup CleanupFunc
}

// Factory creates backends based on configuration
type Factory interface {
	CreateBackend(ctx context.Context, config Config) (*BackendResult, error)
}

// Config holds configuration for backend creation
type Config struct {
	Type BackendType

	// SQLite specific
	SQLiteDBPath string
	AMQPURL      string
	AMQPExchange string
	AMQPQueue    string

	// Postgres specific
	PostgresURL string

	// Google Sheets specific
	GoogleSpreadsheetID string
	GoogleSheetName     string

	// Memory backend specific
	DataDirectory string
}

// BackendType represents the type of backend
type BackendType string

const (
	MemoryBackend   BackendType = "memory"
	SQLiteBackend   BackendType = "sqlite"
	PostgresBackend BackendType = "postgres"
	SheetsBackend   BackendType = "sheets"
)

// String implements fmt.Stringer
func (bt BackendType) String() string {
	return string(bt)
}

// IsValid returns true if the backend type is valid
func (bt BackendType) IsValid() bool {
	switch bt {
	case MemoryBackend, SQLiteBackend, PostgresBackend, SheetsBackend:
		return true
	default:
		return false
	}
}
