package http

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"kwanzaflow/internal/charts"
	"kwanzaflow/internal/core"
	"kwanzaflow/internal/export"
	applog "kwanzaflow/internal/log"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// handleExportExpenses serves the trailing-30-day expense breakdown as a
// downloadable XLSX workbook.
func (s *Server) handleExportExpenses(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		methodNotAllowed(w, "GET")
		return
	}

	list, err := s.listTransactions(r.Context())
	if err != nil {
		s.logger.ErrorContext(r.Context(), "export load failed", applog.FieldError, err)
		writeError(w, http.StatusInternalServerError, "could not load transactions")
		return
	}

	now := time.Now()
	data, err := export.ExpenseCategoriesXLSX(list, now)
	if err != nil {
		s.logger.ErrorContext(r.Context(), "export build failed", applog.FieldError, err)
		writeError(w, http.StatusInternalServerError, "could not build export")
		return
	}

	w.Header().Set("Content-Type", xlsxContentType)
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", export.Filename(now)))
	w.Header().Set("Content-Length", strconv.Itoa(len(data)))
	_, _ = w.Write(data)
}

// handleCashflowChart renders the trailing expense series as a PNG bar chart.
// An optional type query switches the series (expense by default).
func (s *Server) handleCashflowChart(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		methodNotAllowed(w, "GET")
		return
	}

	txType := core.TypeExpense
	if v := strings.TrimSpace(r.URL.Query().Get("type")); v != "" {
		txType = core.TransactionType(v)
		if !txType.IsValid() {
			writeError(w, http.StatusBadRequest, "unknown transaction type")
			return
		}
	}

	list, err := s.listTransactions(r.Context())
	if err != nil {
		s.logger.ErrorContext(r.Context(), "chart load failed", applog.FieldError, err)
		writeError(w, http.StatusInternalServerError, "could not load transactions")
		return
	}

	w.Header().Set("Content-Type", "image/png")
	if err := charts.RenderMonthlySeries(w, list, txType, 5, time.Now()); err != nil {
		s.logger.ErrorContext(r.Context(), "cashflow chart render failed", applog.FieldError, err)
	}
}

// handleIncomeChart renders the trailing-30-day expense breakdown by
// category as a PNG bar chart.
func (s *Server) handleIncomeChart(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		methodNotAllowed(w, "GET")
		return
	}

	list, err := s.listTransactions(r.Context())
	if err != nil {
		s.logger.ErrorContext(r.Context(), "chart load failed", applog.FieldError, err)
		writeError(w, http.StatusInternalServerError, "could not load transactions")
		return
	}

	w.Header().Set("Content-Type", "image/png")
	if err := charts.RenderCategoryBreakdown(w, list, time.Now()); err != nil {
		s.logger.ErrorContext(r.Context(), "income chart render failed", applog.FieldError, err)
	}
}

// handleSimulationChart renders the compound-interest projection as a PNG
// line chart, using the same query params as /api/simulate.
func (s *Server) handleSimulationChart(w http.ResponseWriter, r *http.Request) {
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

	w.Header().Set("Content-Type", "image/png")
	if err := charts.RenderSimulation(w, points); err != nil {
		s.logger.ErrorContext(r.Context(), "simulation chart render failed", applog.FieldError, err)
	}
}
