package core

import "testing"

func TestSplitBudgetScenario(t *testing.T) {
	list := []Transaction{
		{ID: "1", Amount: kz(450000), Date: NewDate(2025, 8, 1), Type: TypeIncome, Category: "Salário", Fixed: true},
		{ID: "2", Amount: kz(150000), Date: NewDate(2025, 8, 5), Type: TypeExpense, Category: "Habitação", Fixed: true},
		{ID: "3", Amount: kz(45000), Date: NewDate(2025, 8, 10), Type: TypeExpense, Category: "Alimentação"},
	}
	split := SplitBudget(list)
	if split.TotalIncome != kz(450000) {
		t.Fatalf("income = %v", split.TotalIncome)
	}
	if split.Needs != kz(150000) {
		t.Fatalf("needs = %v", split.Needs)
	}
	if split.Wants != kz(45000) {
		t.Fatalf("wants = %v", split.Wants)
	}
	if split.Savings != kz(255000) {
		t.Fatalf("savings residual = %v", split.Savings)
	}
	if split.NeedsTarget != kz(225000) {
		t.Fatalf("needs target = %v", split.NeedsTarget)
	}
	if got := StatusFor(split.Needs, split.NeedsTarget); got != StatusOK {
		t.Fatalf("needs status = %v, want ok (150000 < 0.9*225000)", got)
	}
}

func TestBudgetTargetsSumToIncome(t *testing.T) {
	for _, income := range []int64{0, 1, 99, 100, 101, 45000001, 999999999} {
		list := []Transaction{
			{ID: "1", Amount: Money{Cents: income}, Date: NewDate(2025, 8, 1), Type: TypeIncome, Category: "Salário"},
		}
		s := SplitBudget(list)
		sum := s.NeedsTarget.Cents + s.WantsTarget.Cents + s.SavingsTarget.Cents
		if sum != income {
			t.Fatalf("income %d: targets sum to %d", income, sum)
		}
	}
}

func TestSplitBudgetNegativeSavings(t *testing.T) {
	list := []Transaction{
		{ID: "1", Amount: kz(100), Date: NewDate(2025, 8, 1), Type: TypeIncome, Category: "Salário"},
		{ID: "2", Amount: kz(300), Date: NewDate(2025, 8, 2), Type: TypeExpense, Category: "Lazer"},
	}
	s := SplitBudget(list)
	if s.Savings.Cents >= 0 {
		t.Fatalf("savings residual should be negative, got %v", s.Savings)
	}
	if s.Savings.ClampZero().Cents != 0 {
		t.Fatal("display clamp should floor at zero")
	}
}

func TestStatusFor(t *testing.T) {
	cases := []struct {
		current, target int64
		want            BudgetStatus
	}{
		{0, 0, StatusOK},
		{50, 100, StatusOK},
		{90, 100, StatusOK}, // exactly 90% is not a warning
		{91, 100, StatusWarn},
		{100, 100, StatusWarn},
		{101, 100, StatusAlert},
		{1, 0, StatusAlert},
	}
	for i, tc := range cases {
		got := StatusFor(Money{Cents: tc.current}, Money{Cents: tc.target})
		if got != tc.want {
			t.Fatalf("case %d (%d/%d): got %v, want %v", i, tc.current, tc.target, got, tc.want)
		}
	}
}

func TestSavingsRateZeroIncome(t *testing.T) {
	if got := SavingsRate(nil); got != 0 {
		t.Fatalf("zero income rate = %f, want 0", got)
	}
	list := []Transaction{
		{ID: "1", Amount: kz(1000), Date: NewDate(2025, 8, 1), Type: TypeExpense, Category: "Lazer"},
	}
	if got := SavingsRate(list); got != 0 {
		t.Fatalf("expense-only rate = %f, want 0", got)
	}
}
