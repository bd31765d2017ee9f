package google

import (
	"testing"

	"kwanzaflow/internal/core"
)

func TestTransactionRowRoundTrip(t *testing.T) {
	in := core.Transaction{
		ID:          "abc-123",
		Description: "Supermercado Kero",
		Amount:      core.Money{Cents: 4500050},
		Date:        core.NewDate(2025, 8, 20),
		Type:        core.TypeExpense,
		Category:    "Alimentação",
		Fixed:       true,
	}
	out, ok := parseTransactionRow(transactionRow(in))
	if !ok {
		t.Fatal("row did not parse back")
	}
	if out.ID != in.ID || out.Description != in.Description || out.Amount != in.Amount ||
		out.Date.Key() != in.Date.Key() || out.Type != in.Type || out.Category != in.Category || !out.Fixed {
		t.Fatalf("round trip mismatch: %+v", out)
	}
}

func TestParseTransactionRowRejects(t *testing.T) {
	cases := [][]any{
		nil,
		{"id"},
		{"ID", "Date", "Description", "Amount", "Type", "Category", "Fixed"}, // header row
		{"id", "2025-08-20", "x", "not-a-number", "expense", "Lazer", "false"},
		{"id", "2025-08-20", "x", "100", "transfer", "Lazer", "false"},
		{"id", "20/08/2025", "x", "100", "expense", "Lazer", "false"},
	}
	for i, row := range cases {
		if _, ok := parseTransactionRow(row); ok {
			t.Fatalf("case %d should not parse: %v", i, row)
		}
	}
}

func TestParseKwanzaToCents(t *testing.T) {
	tests := []struct {
		in   string
		want int64
		ok   bool
	}{
		{"450000", 45000000, true},
		{"12.34", 1234, true},
		{"12,34", 1234, true},
		{"", 0, false},
		{"abc", 0, false},
	}
	for _, tt := range tests {
		got, ok := parseKwanzaToCents(tt.in)
		if ok != tt.ok || got != tt.want {
			t.Errorf("parseKwanzaToCents(%q) = %d,%v want %d,%v", tt.in, got, ok, tt.want, tt.ok)
		}
	}
}
