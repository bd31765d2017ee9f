package charts

import (
	"bytes"
	"testing"
	"time"

	"kwanzaflow/internal/core"
)

func chartTestData(now time.Time) []core.Transaction {
	daysAgo := func(d int) core.Date { return core.DateOf(now.AddDate(0, 0, -d)) }
	return []core.Transaction{
		{ID: "1", Description: "Salário", Amount: core.Money{Cents: 45000000}, Date: daysAgo(5), Type: core.TypeIncome, Category: "Salário"},
		{ID: "2", Description: "Renda", Amount: core.Money{Cents: 15000000}, Date: daysAgo(3), Type: core.TypeExpense, Category: "Habitação"},
		{ID: "3", Description: "Kero", Amount: core.Money{Cents: 4500000}, Date: daysAgo(40), Type: core.TypeExpense, Category: "Alimentação"},
	}
}

func assertPNG(t *testing.T, buf *bytes.Buffer) {
	t.Helper()
	if buf.Len() == 0 {
		t.Fatal("no output written")
	}
	sig := []byte{0x89, 'P', 'N', 'G'}
	if !bytes.HasPrefix(buf.Bytes(), sig) {
		t.Fatalf("output is not a PNG, first bytes %v", buf.Bytes()[:4])
	}
}

func TestRenderMonthlySeries(t *testing.T) {
	now := time.Date(2025, 8, 26, 12, 0, 0, 0, time.UTC)
	var buf bytes.Buffer
	if err := RenderMonthlySeries(&buf, chartTestData(now), core.TypeExpense, 6, now); err != nil {
		t.Fatal(err)
	}
	assertPNG(t, &buf)
}

func TestRenderMonthlySeriesEmptyLedger(t *testing.T) {
	now := time.Date(2025, 8, 26, 12, 0, 0, 0, time.UTC)
	var buf bytes.Buffer
	if err := RenderMonthlySeries(&buf, nil, core.TypeIncome, 6, now); err != nil {
		t.Fatalf("flat series must still render: %v", err)
	}
	assertPNG(t, &buf)
}

func TestRenderCategoryBreakdown(t *testing.T) {
	now := time.Date(2025, 8, 26, 12, 0, 0, 0, time.UTC)
	var buf bytes.Buffer
	if err := RenderCategoryBreakdown(&buf, chartTestData(now), now); err != nil {
		t.Fatal(err)
	}
	assertPNG(t, &buf)
}

func TestRenderCategoryBreakdownSingleCategory(t *testing.T) {
	// One in-window category means every bar shares one value, which must
	// still render rather than trip go-chart's zero-width range check.
	now := time.Date(2025, 8, 26, 12, 0, 0, 0, time.UTC)
	list := []core.Transaction{
		{ID: "1", Description: "Renda", Amount: core.Money{Cents: 15000000}, Date: core.DateOf(now.AddDate(0, 0, -3)), Type: core.TypeExpense, Category: "Habitação"},
	}
	var buf bytes.Buffer
	if err := RenderCategoryBreakdown(&buf, list, now); err != nil {
		t.Fatalf("single-category breakdown must still render: %v", err)
	}
	assertPNG(t, &buf)
}

func TestRenderCategoryBreakdownEmptyLedger(t *testing.T) {
	now := time.Date(2025, 8, 26, 12, 0, 0, 0, time.UTC)
	var buf bytes.Buffer
	if err := RenderCategoryBreakdown(&buf, nil, now); err != nil {
		t.Fatalf("empty breakdown must still render: %v", err)
	}
	assertPNG(t, &buf)
}

func TestRenderSimulation(t *testing.T) {
	points := core.Simulate(core.Money{Cents: 10000000}, core.Money{Cents: 1000000}, 12, 5)
	var buf bytes.Buffer
	if err := RenderSimulation(&buf, points); err != nil {
		t.Fatal(err)
	}
	assertPNG(t, &buf)
}
