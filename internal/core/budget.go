package core

// 50/30/20 allocation percentages over total income.
const (
	needsShare   = 50
	wantsShare   = 30
	savingsShare = 20
)

const (
	StatusOK    BudgetStatus = "ok"
	StatusWarn  BudgetStatus = "warn"
	StatusAlert BudgetStatus = "alert"
)

type (
	// BudgetStatus is the three-tier progress coloring: alert when spending
	// exceeds the target, warn above 90% of it, ok otherwise.
	BudgetStatus string

	// BudgetSplit is the 50/30/20 view of a transaction snapshot. Savings is
	// the residual income - (needs + wants) and may be negative; clamp for
	// display only.
	BudgetSplit struct {
		TotalIncome Money
		Needs       Money // fixed expenses
		Wants       Money // non-fixed expenses
		Savings     Money // residual

		NeedsTarget   Money
		WantsTarget   Money
		SavingsTarget Money
	}
)

// SplitBudget computes the 50/30/20 breakdown. Targets always sum exactly to
// total income: the savings target absorbs integer-division remainders.
func SplitBudget(list []Transaction) BudgetSplit {
	var split BudgetSplit
	split.TotalIncome = TotalByType(list, TypeIncome)
	for _, tx := range list {
		if tx.Type != TypeExpense {
			continue
		}
		if tx.Fixed {
			split.Needs = split.Needs.Add(tx.Amount)
		} else {
			split.Wants = split.Wants.Add(tx.Amount)
		}
	}
	split.Savings = split.TotalIncome.Sub(split.Needs.Add(split.Wants))

	income := split.TotalIncome.Cents
	split.NeedsTarget = Money{Cents: income * needsShare / 100}
	split.WantsTarget = Money{Cents: income * wantsShare / 100}
	split.SavingsTarget = Money{Cents: income - split.NeedsTarget.Cents - split.WantsTarget.Cents}
	return split
}

// StatusFor grades spending against its target.
func StatusFor(current, target Money) BudgetStatus {
	if current.Cents > target.Cents {
		return StatusAlert
	}
	// current > 0.9 * target, in integer arithmetic
	if current.Cents*10 > target.Cents*9 {
		return StatusWarn
	}
	return StatusOK
}

// SavingsRate returns the balance share of income as a percentage, 0 when
// income is zero.
func SavingsRate(list []Transaction) float64 {
	income := TotalByType(list, TypeIncome)
	if income.Cents <= 0 {
		return 0
	}
	balance := income.Sub(TotalByType(list, TypeExpense))
	return float64(balance.Cents) / float64(income.Cents) * 100
}
