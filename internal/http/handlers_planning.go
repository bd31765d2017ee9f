package http

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"kwanzaflow/internal/core"
	applog "kwanzaflow/internal/log"
)

// handleGoals serves every savings goal with progress figures, the emergency
// fund singled out first.
func (s *Server) handleGoals(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		methodNotAllowed(w, "GET")
		return
	}

	goals, err := s.backend.ListGoals(r.Context())
	if err != nil {
		s.logger.ErrorContext(r.Context(), "list goals failed", applog.FieldError, err)
		writeError(w, http.StatusInternalServerError, "could not load goals")
		return
	}

	resp := map[string]any{}
	if reserve, ok := core.EmergencyFund(goals); ok {
		resp["emergency_fund"] = goalView(reserve)
	}
	others := core.OtherGoals(goals)
	views := make([]goalProgressJSON, 0, len(others))
	for _, g := range others {
		views = append(views, goalView(g))
	}
	resp["goals"] = views
	writeJSON(w, http.StatusOK, resp)
}

type investmentJSON struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	Type         string    `json:"type"`
	Amount       moneyJSON `json:"amount"`
	CurrentValue moneyJSON `json:"current_value"`
	// Return is omitted when the cost basis is zero and the figure would
	// be undefined.
	Return *float64 `json:"return_percent,omitempty"`
}

// handleInvestments serves the portfolio with derived returns.
func (s *Server) handleInvestments(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		methodNotAllowed(w, "GET")
		return
	}

	invs, err := s.backend.ListInvestments(r.Context())
	if err != nil {
		s.logger.ErrorContext(r.Context(), "list investments failed", applog.FieldError, err)
		writeError(w, http.StatusInternalServerError, "could not load investments")
		return
	}

	var totalBasis, totalValue core.Money
	views := make([]investmentJSON, 0, len(invs))
	for _, inv := range invs {
		v := investmentJSON{
			ID:           inv.ID,
			Name:         inv.Name,
			Type:         string(inv.Type),
			Amount:       money(inv.Amount),
			CurrentValue: money(inv.CurrentValue),
		}
		if pct, ok := core.ReturnPercent(inv); ok {
			v.Return = &pct
		}
		totalBasis = totalBasis.Add(inv.Amount)
		totalValue = totalValue.Add(inv.CurrentValue)
		views = append(views, v)
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"investments":    views,
		"total_invested": money(totalBasis),
		"total_value":    money(totalValue),
	})
}

// handleSimulate runs the compound-interest projection from query params.
func (s *Server) handleSimulate(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		methodNotAllowed(w, "GET")
		return
	}

	q := r.URL.Query()
	initial, err := core.ParseDecimalToCents(q.Get("initial"))
	if err != nil {
		writeError(w, http.StatusUnprocessableEntity, "invalid initial amount")
		return
	}
	monthly, err := core.ParseDecimalToCents(q.Get("monthly"))
	if err != nil {
		writeError(w, http.StatusUnprocessableEntity, "invalid monthly amount")
		return
	}
	rate, err := strconv.ParseFloat(strings.TrimSpace(q.Get("rate")), 64)
	if err != nil || rate < 0 {
		writeError(w, http.StatusUnprocessableEntity, "invalid annual rate")
		return
	}
	years, err := strconv.Atoi(strings.TrimSpace(q.Get("years")))
	if err != nil || years < core.SimMinYears || years > core.SimMaxYears {
		writeError(w, http.StatusUnprocessableEntity, "years must be between 1 and 30")
		return
	}

	points := core.Simulate(core.Money{Cents: initial}, core.Money{Cents: monthly}, rate, years)
	out := make([]map[string]any, 0, len(points))
	for _, p := range points {
		out = append(out, map[string]any{
			"year":   p.Year,
			"amount": money(p.Amount),
		})
	}

	final := points[len(points)-1].Amount
	contributed := core.Money{Cents: initial + monthly*int64(years)*12}
	writeJSON(w, http.StatusOK, map[string]any{
		"points":      out,
		"final":       money(final),
		"contributed": money(contributed),
		"earned":      money(final.Sub(contributed)),
	})
}

// handlePlanning serves the long-term milestone timeline.
func (s *Server) handlePlanning(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		methodNotAllowed(w, "GET")
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"milestones": core.Timeline(time.Now()),
	})
}
