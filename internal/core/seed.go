package core

import "time"

// Bundled demo dataset, used whenever a backend has no persisted state or the
// persisted blob is unreadable. Transaction dates are anchored relative to
// now so the trailing-window views always have data to show.

func SeedTransactions(now time.Time) []Transaction {
	daysAgo := func(d int) Date { return DateOf(now.AddDate(0, 0, -d)) }
	kz := func(v int64) Money { return Money{Cents: v * 100} }
	return []Transaction{
		{ID: "seed-1", Description: "Salário Mensal", Amount: kz(450000), Date: daysAgo(5), Type: TypeIncome, Category: "Salário", Fixed: true},
		{ID: "seed-2", Description: "Freelance Design", Amount: kz(80000), Date: daysAgo(12), Type: TypeIncome, Category: "Extra"},
		{ID: "seed-3", Description: "Supermercado Kero", Amount: kz(45000), Date: daysAgo(2), Type: TypeExpense, Category: "Alimentação"},
		{ID: "seed-4", Description: "Renda da Casa", Amount: kz(150000), Date: daysAgo(25), Type: TypeExpense, Category: "Habitação", Fixed: true},
		{ID: "seed-5", Description: "Unitel Recarga", Amount: kz(2000), Date: daysAgo(1), Type: TypeExpense, Category: "Comunicação"},
		{ID: "seed-6", Description: "Jantar Fora", Amount: kz(15000), Date: daysAgo(8), Type: TypeExpense, Category: "Lazer"},
		{ID: "seed-7", Description: "Combustível", Amount: kz(12000), Date: daysAgo(15), Type: TypeExpense, Category: "Transporte"},
	}
}

func SeedGoals() []Goal {
	kz := func(v int64) Money { return Money{Cents: v * 100} }
	return []Goal{
		{ID: "goal-1", Title: "Reserva de Emergência", TargetAmount: kz(1500000), CurrentAmount: kz(450000), Deadline: NewDate(2024, 6, 1), Type: GoalReserve},
		{ID: "goal-2", Title: "Casa Própria", TargetAmount: kz(25000000), CurrentAmount: kz(2000000), Deadline: NewDate(2030, 1, 1), Type: GoalHouse},
	}
}

func SeedInvestments() []Investment {
	kz := func(v int64) Money { return Money{Cents: v * 100} }
	return []Investment{
		{ID: "inv-1", Name: "Título do Tesouro", Type: InvestFixedIncome, Amount: kz(500000), CurrentValue: kz(525000), ReturnRate: 12},
		{ID: "inv-2", Name: "BAI Ações", Type: InvestStocks, Amount: kz(200000), CurrentValue: kz(215000), ReturnRate: 8},
	}
}

// ExpenseCategories is the fixed expense taxonomy offered by the budget form.
var ExpenseCategories = []string{
	"Alimentação", "Habitação", "Transporte", "Saúde", "Educação", "Lazer", "Comunicação", "Outros",
}

// IncomeCategories is the fixed income taxonomy offered by the income form.
var IncomeCategories = []string{
	"Salário", "Negócio", "Extra", "Passiva",
}
