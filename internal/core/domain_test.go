package core

import (
	"encoding/json"
	"errors"
	"strings"
	"testing"
)

func validTransaction() Transaction {
	return Transaction{
		ID:          "tx-1",
		Description: "Salário mensal",
		Amount:      kz(45000000),
		Date:        NewDate(2025, 8, 1),
		Type:        TypeIncome,
		Category:    "Salário",
		Fixed:       true,
	}
}

func TestTransactionValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Transaction)
		wantErr error
	}{
		{"valid", func(tx *Transaction) {}, nil},
		{"zero date", func(tx *Transaction) { tx.Date = Date{} }, ErrInvalidDate},
		{"empty description", func(tx *Transaction) { tx.Description = "   " }, ErrEmptyDescription},
		{"zero amount", func(tx *Transaction) { tx.Amount = Money{} }, ErrInvalidAmount},
		{"negative amount", func(tx *Transaction) { tx.Amount = Money{Cents: -100} }, ErrInvalidAmount},
		{"bad type", func(tx *Transaction) { tx.Type = "transfer" }, ErrInvalidType},
		{"empty category", func(tx *Transaction) { tx.Category = "" }, ErrEmptyCategory},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tx := validTransaction()
			tt.mutate(&tx)
			err := tx.Validate()
			if tt.wantErr == nil {
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				return
			}
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("got %v, want %v", err, tt.wantErr)
			}
		})
	}

	t.Run("description too long", func(t *testing.T) {
		tx := validTransaction()
		tx.Description = strings.Repeat("a", 201)
		if tx.Validate() == nil {
			t.Fatal("expected error for 201-char description")
		}
	})
}

func TestDateRoundTrip(t *testing.T) {
	d, err := ParseDate("2025-08-15")
	if err != nil {
		t.Fatal(err)
	}
	if d.Key() != "2025-08-15" || d.MonthKey() != "2025-08" {
		t.Fatalf("keys: %s / %s", d.Key(), d.MonthKey())
	}

	raw, err := json.Marshal(d)
	if err != nil {
		t.Fatal(err)
	}
	if string(raw) != `"2025-08-15"` {
		t.Fatalf("marshal: %s", raw)
	}

	var back Date
	if err := json.Unmarshal(raw, &back); err != nil {
		t.Fatal(err)
	}
	if !back.Equal(d.Time) {
		t.Fatalf("round trip mismatch: %v vs %v", back, d)
	}
}

func TestDateParseRejectsGarbage(t *testing.T) {
	for _, s := range []string{"", "15/08/2025", "2025-13-01", "yesterday"} {
		if _, err := ParseDate(s); !errors.Is(err, ErrInvalidDate) {
			t.Fatalf("ParseDate(%q): expected ErrInvalidDate, got %v", s, err)
		}
	}

	var d Date
	if err := json.Unmarshal([]byte("null"), &d); err == nil {
		t.Fatal("null date must not unmarshal")
	}
}

func TestDateOrdering(t *testing.T) {
	a, b := NewDate(2025, 8, 1), NewDate(2025, 8, 2)
	if !a.Before(b) || b.Before(a) || a.Before(a) {
		t.Fatal("Before is not a strict order")
	}
	if !b.After(a) || a.After(b) {
		t.Fatal("After is not a strict order")
	}
}

func TestTransactionTypeIsValid(t *testing.T) {
	for _, tt := range []TransactionType{TypeIncome, TypeExpense, TypeInvestment} {
		if !tt.IsValid() {
			t.Fatalf("%s should be valid", tt)
		}
	}
	if TransactionType("despesa").IsValid() {
		t.Fatal("unknown type accepted")
	}
}
