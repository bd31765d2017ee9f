// Package memory is a file-backed in-memory ledger. The whole dataset is a
// single JSON snapshot reloaded on start and rewritten on every mutation,
// which keeps the development backend dependency-free while still surviving
// restarts.
package memory

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/google/uuid"

	"kwanzaflow/internal/core"
)

const snapshotFile = "ledger.json"

type snapshot struct {
	Transactions []core.Transaction `json:"transactions"`
	Goals        []core.Goal        `json:"goals"`
	Investments  []core.Investment  `json:"investments"`
}

type Store struct {
	mu   sync.Mutex
	path string // empty means no persistence
	data snapshot
}

// New creates a store seeded with the demo dataset.
func New() *Store {
	return &Store{data: seeded(time.Now())}
}

// NewFromFiles loads the snapshot under base. A missing or unreadable
// snapshot falls back to the seed dataset; the file is created on the first
// mutation.
func NewFromFiles(base string) *Store {
	s := &Store{path: filepath.Join(base, snapshotFile)}
	raw, err := os.ReadFile(s.path)
	if err == nil {
		var snap snapshot
		if json.Unmarshal(raw, &snap) == nil && len(snap.Transactions)+len(snap.Goals)+len(snap.Investments) > 0 {
			s.data = snap
			return s
		}
	}
	s.data = seeded(time.Now())
	return s
}

func seeded(now time.Time) snapshot {
	return snapshot{
		Transactions: core.SeedTransactions(now),
		Goals:        core.SeedGoals(),
		Investments:  core.SeedInvestments(),
	}
}

// AddTransaction validates and stores t, newest first. A missing ID gets a
// fresh UUID.
func (s *Store) AddTransaction(_ context.Context, t core.Transaction) (core.Transaction, error) {
	if err := t.Validate(); err != nil {
		return core.Transaction{}, err
	}
	if t.ID == "" {
		t.ID = uuid.NewString()
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data.Transactions = append([]core.Transaction{t}, s.data.Transactions...)
	s.persistLocked()
	return t, nil
}

// DeleteTransaction removes the transaction with the given ID. Unknown IDs
// are ignored.
func (s *Store) DeleteTransaction(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	kept := s.data.Transactions[:0]
	removed := false
	for _, t := range s.data.Transactions {
		if t.ID == id {
			removed = true
			continue
		}
		kept = append(kept, t)
	}
	s.data.Transactions = kept
	if removed {
		s.persistLocked()
	}
	return nil
}

// ListTransactions returns a copy of all transactions, most recent insert
// first.
func (s *Store) ListTransactions(_ context.Context) ([]core.Transaction, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]core.Transaction(nil), s.data.Transactions...), nil
}

func (s *Store) ListGoals(_ context.Context) ([]core.Goal, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]core.Goal(nil), s.data.Goals...), nil
}

func (s *Store) ListInvestments(_ context.Context) ([]core.Investment, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]core.Investment(nil), s.data.Investments...), nil
}

// persistLocked rewrites the snapshot file. Persistence is best effort; a
// write failure never fails the mutation that triggered it.
func (s *Store) persistLocked() {
	if s.path == "" {
		return
	}
	raw, err := json.MarshalIndent(s.data, "", "  ")
	if err != nil {
		return
	}
	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return
	}
	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, raw, 0o644); err != nil {
		return
	}
	_ = os.Rename(tmp, s.path)
}
