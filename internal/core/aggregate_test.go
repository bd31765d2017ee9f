package core

import (
	"testing"
	"time"
)

func kz(v int64) Money { return Money{Cents: v * 100} }

func sampleTransactions() []Transaction {
	return []Transaction{
		{ID: "1", Description: "Salário Mensal", Amount: kz(450000), Date: NewDate(2025, 8, 28), Type: TypeIncome, Category: "Salário", Fixed: true},
		{ID: "2", Description: "Renda da Casa", Amount: kz(150000), Date: NewDate(2025, 8, 5), Type: TypeExpense, Category: "Habitação", Fixed: true},
		{ID: "3", Description: "Supermercado Kero", Amount: kz(45000), Date: NewDate(2025, 8, 30), Type: TypeExpense, Category: "Alimentação"},
	}
}

func TestTotalByType(t *testing.T) {
	list := sampleTransactions()
	if got := TotalByType(list, TypeIncome); got != kz(450000) {
		t.Fatalf("income total = %v, want %v", got, kz(450000))
	}
	if got := TotalByType(list, TypeExpense); got != kz(195000) {
		t.Fatalf("expense total = %v, want %v", got, kz(195000))
	}
	if got := TotalByType(nil, TypeIncome); got.Cents != 0 {
		t.Fatalf("empty list total = %v, want 0", got)
	}

	// Order independence
	reversed := []Transaction{list[2], list[1], list[0]}
	if TotalByType(reversed, TypeExpense) != TotalByType(list, TypeExpense) {
		t.Fatal("TotalByType must be order-independent")
	}
}

func TestCategoryTotalsPartitionInput(t *testing.T) {
	list := sampleTransactions()
	totals := CategoryTotals(list, TypeExpense, nil)
	if len(totals) != 2 {
		t.Fatalf("expected 2 categories, got %d", len(totals))
	}
	var sum int64
	for _, m := range totals {
		sum += m.Cents
	}
	if sum != TotalByType(list, TypeExpense).Cents {
		t.Fatalf("category totals sum %d != type total %d", sum, TotalByType(list, TypeExpense).Cents)
	}
}

func TestCategoryTotalsWindow(t *testing.T) {
	list := sampleTransactions()
	window := DateRange{From: NewDate(2025, 8, 20), To: NewDate(2025, 8, 31)}
	totals := CategoryTotals(list, TypeExpense, &window)
	if len(totals) != 1 {
		t.Fatalf("expected 1 category inside window, got %d", len(totals))
	}
	if totals["Alimentação"] != kz(45000) {
		t.Fatalf("Alimentação = %v, want %v", totals["Alimentação"], kz(45000))
	}

	// Empty window yields an empty mapping, not a fault.
	empty := DateRange{From: NewDate(2020, 1, 1), To: NewDate(2020, 1, 31)}
	if got := CategoryTotals(list, TypeExpense, &empty); len(got) != 0 {
		t.Fatalf("expected empty mapping, got %v", got)
	}
	if ranked := RankCategories(CategoryTotals(list, TypeExpense, &empty)); len(ranked) != 0 {
		t.Fatalf("expected empty ranking, got %v", ranked)
	}
}

func TestTrailingDaysBoundsInclusive(t *testing.T) {
	now := time.Date(2025, 8, 31, 15, 30, 0, 0, time.UTC)
	w := TrailingDays(now, 30)
	if !w.Contains(NewDate(2025, 8, 1)) {
		t.Fatal("window start must be inclusive")
	}
	if !w.Contains(NewDate(2025, 8, 31)) {
		t.Fatal("window end must be inclusive")
	}
	if w.Contains(NewDate(2025, 7, 31)) {
		t.Fatal("day before window start must be excluded")
	}
}

func TestRankCategoriesPercents(t *testing.T) {
	ranked := RankCategories(map[string]Money{
		"Habitação":   kz(150000),
		"Alimentação": kz(45000),
		"Lazer":       kz(5000),
	})
	if ranked[0].Name != "Habitação" {
		t.Fatalf("largest category first, got %q", ranked[0].Name)
	}
	var pct float64
	for _, c := range ranked {
		pct += c.Percent
	}
	if pct < 99.999 || pct > 100.001 {
		t.Fatalf("percents sum to %f, want 100", pct)
	}
}

func TestSourceConcentration(t *testing.T) {
	list := []Transaction{
		{ID: "1", Amount: kz(450000), Date: NewDate(2025, 8, 1), Type: TypeIncome, Category: "Salário"},
		{ID: "2", Amount: kz(50000), Date: NewDate(2025, 8, 2), Type: TypeIncome, Category: "Extra"},
	}
	c := SourceConcentration(list)
	if c.Category != "Salário" {
		t.Fatalf("dominant category = %q, want Salário", c.Category)
	}
	if c.Ratio != 0.9 {
		t.Fatalf("ratio = %f, want 0.9", c.Ratio)
	}
	if !c.Dependent {
		t.Fatal("90%% share must flag dependency")
	}

	// Exactly at the threshold does not flag.
	at := []Transaction{
		{ID: "1", Amount: kz(80000), Date: NewDate(2025, 8, 1), Type: TypeIncome, Category: "Salário"},
		{ID: "2", Amount: kz(20000), Date: NewDate(2025, 8, 2), Type: TypeIncome, Category: "Extra"},
	}
	if SourceConcentration(at).Dependent {
		t.Fatal("an 80%% share must not flag dependency")
	}
}

func TestSourceConcentrationZeroIncome(t *testing.T) {
	c := SourceConcentration([]Transaction{
		{ID: "1", Amount: kz(1000), Date: NewDate(2025, 8, 1), Type: TypeExpense, Category: "Lazer"},
	})
	if c.Ratio != 0 || c.Dependent {
		t.Fatalf("zero income must yield ratio 0, got %+v", c)
	}
}

func TestMonthlySeries(t *testing.T) {
	now := time.Date(2025, 8, 20, 0, 0, 0, 0, time.UTC)
	list := []Transaction{
		{ID: "1", Amount: kz(100000), Date: NewDate(2025, 8, 3), Type: TypeIncome, Category: "Salário"},
		{ID: "2", Amount: kz(50000), Date: NewDate(2025, 6, 15), Type: TypeIncome, Category: "Salário"},
		{ID: "3", Amount: kz(999), Date: NewDate(2024, 8, 1), Type: TypeIncome, Category: "Salário"}, // outside window
		{ID: "4", Amount: kz(777), Date: NewDate(2025, 7, 1), Type: TypeExpense, Category: "Lazer"},  // wrong type
	}
	series := MonthlySeries(list, 6, TypeIncome, now)
	if len(series) != 6 {
		t.Fatalf("expected 6 entries, got %d", len(series))
	}
	if series[0].Key != "2025-03" || series[5].Key != "2025-08" {
		t.Fatalf("unexpected bounds %s..%s", series[0].Key, series[5].Key)
	}
	for i := 1; i < len(series); i++ {
		if series[i-1].Key >= series[i].Key {
			t.Fatal("series must be oldest-to-newest")
		}
	}
	if series[5].Total != kz(100000) {
		t.Fatalf("2025-08 total = %v", series[5].Total)
	}
	if series[3].Total != kz(50000) {
		t.Fatalf("2025-06 total = %v", series[3].Total)
	}
	// Months with no matching transactions are zero-filled, not omitted.
	if series[4].Total.Cents != 0 {
		t.Fatalf("2025-07 total = %v, want 0", series[4].Total)
	}
	if series[5].Label != "Ago" {
		t.Fatalf("label = %q, want Ago", series[5].Label)
	}
}

func TestFilterTransactions(t *testing.T) {
	list := sampleTransactions()
	got := FilterTransactions(list, TypeExpense, "", Date{}, Date{})
	if len(got) != 2 {
		t.Fatalf("type filter: got %d", len(got))
	}
	got = FilterTransactions(list, "", "Salário", Date{}, Date{})
	if len(got) != 1 || got[0].ID != "1" {
		t.Fatalf("category filter: got %v", got)
	}
	got = FilterTransactions(list, "", "", NewDate(2025, 8, 10), NewDate(2025, 8, 29))
	if len(got) != 1 || got[0].ID != "1" {
		t.Fatalf("date filter: got %v", got)
	}
}
