package http

import (
	"net/http"
	"time"

	"kwanzaflow/internal/core"
	applog "kwanzaflow/internal/log"
)

type categoryJSON struct {
	Name    string    `json:"name"`
	Amount  moneyJSON `json:"amount"`
	Percent float64   `json:"percent"`
}

func categoryViews(ranked []core.CategoryAmount) []categoryJSON {
	out := make([]categoryJSON, 0, len(ranked))
	for _, c := range ranked {
		out = append(out, categoryJSON{Name: c.Name, Amount: money(c.Amount), Percent: c.Percent})
	}
	return out
}

type cashflowPointJSON struct {
	Month   string    `json:"month"`
	Label   string    `json:"label"`
	Income  moneyJSON `json:"income"`
	Expense moneyJSON `json:"expense"`
}

type goalProgressJSON struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	Current   moneyJSON `json:"current"`
	Target    moneyJSON `json:"target"`
	Remaining moneyJSON `json:"remaining"`
	Progress  float64   `json:"progress"`
	Deadline  string    `json:"deadline"`
	Type      string    `json:"type"`
}

func goalView(g core.Goal) goalProgressJSON {
	return goalProgressJSON{
		ID:        g.ID,
		Title:     g.Title,
		Current:   money(g.CurrentAmount),
		Target:    money(g.TargetAmount),
		Remaining: money(core.Remaining(g.TargetAmount, g.CurrentAmount)),
		Progress:  core.ProgressRatio(g.CurrentAmount, g.TargetAmount),
		Deadline:  g.Deadline.Key(),
		Type:      string(g.Type),
	}
}

// handleDashboard serves the landing view: totals, savings rate, the
// trailing-30-day expense breakdown, a 5-month cash-flow series, the
// emergency-fund progress and the quote of the day.
func (s *Server) handleDashboard(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		methodNotAllowed(w, "GET")
		return
	}

	list, err := s.listTransactions(r.Context())
	if err != nil {
		s.logger.ErrorContext(r.Context(), "dashboard load failed", applog.FieldError, err)
		writeError(w, http.StatusInternalServerError, "could not load dashboard")
		return
	}

	now := time.Now()
	income := core.TotalByType(list, core.TypeIncome)
	expense := core.TotalByType(list, core.TypeExpense)

	window := core.TrailingDays(now, 30)
	ranked := core.RankCategories(core.CategoryTotals(list, core.TypeExpense, &window))

	incomeSeries := core.MonthlySeries(list, 5, core.TypeIncome, now)
	expenseSeries := core.MonthlySeries(list, 5, core.TypeExpense, now)
	cashflow := make([]cashflowPointJSON, 0, len(incomeSeries))
	for i := range incomeSeries {
		cashflow = append(cashflow, cashflowPointJSON{
			Month:   incomeSeries[i].Key,
			Label:   incomeSeries[i].Label,
			Income:  money(incomeSeries[i].Total),
			Expense: money(expenseSeries[i].Total),
		})
	}

	resp := map[string]any{
		"income":       money(income),
		"expense":      money(expense),
		"balance":      money(income.Sub(expense)),
		"savings_rate": core.SavingsRate(list),
		"categories":   categoryViews(ranked),
		"cashflow":     cashflow,
		"quote":        core.QuoteOfDay(now),
	}

	if goals, err := s.backend.ListGoals(r.Context()); err != nil {
		s.logger.WarnContext(r.Context(), "goals unavailable for dashboard", applog.FieldError, err)
	} else if reserve, ok := core.EmergencyFund(goals); ok {
		resp["emergency_fund"] = goalView(reserve)
	}

	writeJSON(w, http.StatusOK, resp)
}

type budgetBucketJSON struct {
	Current moneyJSON `json:"current"`
	Target  moneyJSON `json:"target"`
	Status  string    `json:"status"`
}

// handleBudget serves the 50/30/20 split with per-bucket status tiers.
func (s *Server) handleBudget(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		methodNotAllowed(w, "GET")
		return
	}

	list, err := s.listTransactions(r.Context())
	if err != nil {
		s.logger.ErrorContext(r.Context(), "budget load failed", applog.FieldError, err)
		writeError(w, http.StatusInternalServerError, "could not load budget")
		return
	}

	split := core.SplitBudget(list)

	// Savings grades the other way around: falling short of the target is
	// the warning, a negative residual the alert.
	savingsStatus := core.StatusOK
	switch {
	case split.Savings.Cents < 0:
		savingsStatus = core.StatusAlert
	case split.Savings.Cents < split.SavingsTarget.Cents:
		savingsStatus = core.StatusWarn
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"total_income": money(split.TotalIncome),
		"needs": budgetBucketJSON{
			Current: money(split.Needs),
			Target:  money(split.NeedsTarget),
			Status:  string(core.StatusFor(split.Needs, split.NeedsTarget)),
		},
		"wants": budgetBucketJSON{
			Current: money(split.Wants),
			Target:  money(split.WantsTarget),
			Status:  string(core.StatusFor(split.Wants, split.WantsTarget)),
		},
		"savings": budgetBucketJSON{
			Current: money(split.Savings),
			Target:  money(split.SavingsTarget),
			Status:  string(savingsStatus),
		},
	})
}

// handleIncome serves income analytics: totals by source, the concentration
// alert and a trailing-6-month series.
func (s *Server) handleIncome(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		methodNotAllowed(w, "GET")
		return
	}

	list, err := s.listTransactions(r.Context())
	if err != nil {
		s.logger.ErrorContext(r.Context(), "income load failed", applog.FieldError, err)
		writeError(w, http.StatusInternalServerError, "could not load income")
		return
	}

	ranked := core.RankCategories(core.CategoryTotals(list, core.TypeIncome, nil))
	conc := core.SourceConcentration(list)
	series := core.MonthlySeries(list, 6, core.TypeIncome, time.Now())

	months := make([]map[string]any, 0, len(series))
	for _, m := range series {
		months = append(months, map[string]any{
			"month": m.Key,
			"label": m.Label,
			"total": money(m.Total),
		})
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"total":      money(core.TotalByType(list, core.TypeIncome)),
		"categories": categoryViews(ranked),
		"concentration": map[string]any{
			"category":  conc.Category,
			"total":     money(conc.Total),
			"ratio":     conc.Ratio,
			"dependent": conc.Dependent,
		},
		"series": months,
	})
}
