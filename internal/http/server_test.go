package http

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	applog "kwanzaflow/internal/log"
	"kwanzaflow/internal/ledger/memory"
)

func newTestServer(t *testing.T) *Server {
	t.Helper()
	logger := applog.New(applog.Config{
		Handler: slog.NewTextHandler(io.Discard, nil),
	})
	srv := NewServer(":0", memory.New(), logger)
	t.Cleanup(func() { _ = srv.Shutdown(context.Background()) })
	return srv
}

func doRequest(srv *Server, method, target, body string) *httptest.ResponseRecorder {
	rr := httptest.NewRecorder()
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, target, nil)
	}
	srv.Handler.ServeHTTP(rr, req)
	return rr
}

func decodeBody(t *testing.T, rr *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var out map[string]any
	if err := json.Unmarshal(rr.Body.Bytes(), &out); err != nil {
		t.Fatalf("decode response: %v\nbody: %s", err, rr.Body.String())
	}
	return out
}

func TestHealthEndpoints(t *testing.T) {
	srv := newTestServer(t)
	for _, path := range []string{"/healthz", "/readyz"} {
		rr := doRequest(srv, http.MethodGet, path, "")
		if rr.Code != http.StatusOK {
			t.Fatalf("%s status=%d", path, rr.Code)
		}
	}
}

func TestMetrics(t *testing.T) {
	srv := newTestServer(t)

	rr := doRequest(srv, http.MethodGet, "/metrics", "")
	if rr.Code != http.StatusOK {
		t.Fatalf("metrics status=%d", rr.Code)
	}
	body := decodeBody(t, rr)
	for _, key := range []string{"rate_limit_hits", "suspicious_requests", "cache_entries"} {
		if _, ok := body[key]; !ok {
			t.Fatalf("missing metric %q", key)
		}
	}
}

func TestListTransactionsSeededAndFiltered(t *testing.T) {
	srv := newTestServer(t)

	rr := doRequest(srv, http.MethodGet, "/api/transactions", "")
	if rr.Code != http.StatusOK {
		t.Fatalf("list status=%d", rr.Code)
	}
	body := decodeBody(t, rr)
	if got := body["count"].(float64); got != 7 {
		t.Fatalf("expected 7 seed transactions, got %v", got)
	}

	rr = doRequest(srv, http.MethodGet, "/api/transactions?type=income", "")
	body = decodeBody(t, rr)
	if got := body["count"].(float64); got != 2 {
		t.Fatalf("expected 2 income transactions, got %v", got)
	}

	rr = doRequest(srv, http.MethodGet, "/api/transactions?category=Habita%C3%A7%C3%A3o", "")
	body = decodeBody(t, rr)
	if got := body["count"].(float64); got != 1 {
		t.Fatalf("expected 1 housing transaction, got %v", got)
	}

	rr = doRequest(srv, http.MethodGet, "/api/transactions?type=transfer", "")
	if rr.Code != http.StatusBadRequest {
		t.Fatalf("unknown type: expected 400, got %d", rr.Code)
	}

	rr = doRequest(srv, http.MethodGet, "/api/transactions?from=15/08/2025", "")
	if rr.Code != http.StatusBadRequest {
		t.Fatalf("bad date: expected 400, got %d", rr.Code)
	}
}

func TestCreateTransaction(t *testing.T) {
	srv := newTestServer(t)

	// Wrong method on the collection
	rr := doRequest(srv, http.MethodPut, "/api/transactions", "")
	if rr.Code != http.StatusMethodNotAllowed {
		t.Fatalf("expected 405, got %d", rr.Code)
	}

	// Broken JSON
	rr = doRequest(srv, http.MethodPost, "/api/transactions", "{not json")
	if rr.Code != http.StatusBadRequest {
		t.Fatalf("broken JSON: expected 400, got %d", rr.Code)
	}

	// Invalid amount
	rr = doRequest(srv, http.MethodPost, "/api/transactions",
		`{"description":"x","amount":"abc","type":"expense","category":"Lazer"}`)
	if rr.Code != http.StatusUnprocessableEntity {
		t.Fatalf("bad amount: expected 422, got %d", rr.Code)
	}

	// Missing description
	rr = doRequest(srv, http.MethodPost, "/api/transactions",
		`{"description":"","amount":"5000","type":"expense","category":"Lazer"}`)
	if rr.Code != http.StatusUnprocessableEntity {
		t.Fatalf("missing description: expected 422, got %d", rr.Code)
	}

	// Valid, date omitted defaults to today
	rr = doRequest(srv, http.MethodPost, "/api/transactions",
		`{"description":"Cinema","amount":"5000","type":"expense","category":"Lazer"}`)
	if rr.Code != http.StatusCreated {
		t.Fatalf("create: expected 201, got %d\nbody: %s", rr.Code, rr.Body.String())
	}
	created := decodeBody(t, rr)
	if created["id"] == "" {
		t.Fatal("created transaction has no id")
	}
	amount := created["amount"].(map[string]any)
	if amount["formatted"] != "Kz 5.000" {
		t.Fatalf("formatted amount = %v", amount["formatted"])
	}

	// The list view reflects the mutation immediately, cache included.
	rr = doRequest(srv, http.MethodGet, "/api/transactions", "")
	body := decodeBody(t, rr)
	if got := body["count"].(float64); got != 8 {
		t.Fatalf("expected 8 transactions after create, got %v", got)
	}
	first := body["transactions"].([]any)[0].(map[string]any)
	if first["description"] != "Cinema" {
		t.Fatalf("newest-first order broken, first=%v", first["description"])
	}
}

func TestCreateTransactionNumericAmount(t *testing.T) {
	srv := newTestServer(t)

	// The amount may arrive as a bare JSON number instead of a string.
	rr := doRequest(srv, http.MethodPost, "/api/transactions",
		`{"description":"Recarga","amount":2000,"type":"expense","category":"Comunicação"}`)
	if rr.Code != http.StatusCreated {
		t.Fatalf("numeric amount: expected 201, got %d\nbody: %s", rr.Code, rr.Body.String())
	}
	created := decodeBody(t, rr)
	amount := created["amount"].(map[string]any)
	if amount["cents"].(float64) != 200000 {
		t.Fatalf("amount cents = %v", amount["cents"])
	}

	// Absent amount is an amount error, not a body error
	rr = doRequest(srv, http.MethodPost, "/api/transactions",
		`{"description":"Recarga","type":"expense","category":"Comunicação"}`)
	if rr.Code != http.StatusUnprocessableEntity {
		t.Fatalf("missing amount: expected 422, got %d", rr.Code)
	}
}

func TestDeleteTransaction(t *testing.T) {
	srv := newTestServer(t)

	rr := doRequest(srv, http.MethodDelete, "/api/transactions/seed-5", "")
	if rr.Code != http.StatusNoContent {
		t.Fatalf("delete: expected 204, got %d", rr.Code)
	}

	rr = doRequest(srv, http.MethodGet, "/api/transactions", "")
	body := decodeBody(t, rr)
	if got := body["count"].(float64); got != 6 {
		t.Fatalf("expected 6 transactions after delete, got %v", got)
	}

	// Unknown ID is a no-op, not an error
	rr = doRequest(srv, http.MethodDelete, "/api/transactions/nope", "")
	if rr.Code != http.StatusNoContent {
		t.Fatalf("unknown delete: expected 204, got %d", rr.Code)
	}

	rr = doRequest(srv, http.MethodGet, "/api/transactions/seed-1", "")
	if rr.Code != http.StatusMethodNotAllowed {
		t.Fatalf("GET by id: expected 405, got %d", rr.Code)
	}
}

func TestLedgerCacheServesAndInvalidates(t *testing.T) {
	srv := newTestServer(t)

	doRequest(srv, http.MethodGet, "/api/transactions", "")
	if srv.ledgerCache.Size() != 1 {
		t.Fatalf("expected primed cache, size=%d", srv.ledgerCache.Size())
	}

	doRequest(srv, http.MethodPost, "/api/transactions",
		`{"description":"Taxi","amount":"3000","type":"expense","category":"Transporte"}`)
	if srv.ledgerCache.Size() != 0 {
		t.Fatalf("expected purged cache after mutation, size=%d", srv.ledgerCache.Size())
	}
}

func TestDashboard(t *testing.T) {
	srv := newTestServer(t)

	rr := doRequest(srv, http.MethodGet, "/api/dashboard", "")
	if rr.Code != http.StatusOK {
		t.Fatalf("dashboard status=%d", rr.Code)
	}
	body := decodeBody(t, rr)

	// Seed data: 530.000 Kz income, 224.000 Kz expenses.
	income := body["income"].(map[string]any)
	if income["cents"].(float64) != 53000000 {
		t.Fatalf("income cents = %v", income["cents"])
	}
	balance := body["balance"].(map[string]any)
	if balance["cents"].(float64) != 30600000 {
		t.Fatalf("balance cents = %v", balance["cents"])
	}
	if body["quote"] == "" {
		t.Fatal("missing quote")
	}
	if _, ok := body["emergency_fund"]; !ok {
		t.Fatal("missing emergency fund")
	}
	cats := body["categories"].([]any)
	if len(cats) == 0 {
		t.Fatal("expected 30-day expense categories")
	}
	top := cats[0].(map[string]any)
	if top["name"] != "Habitação" {
		t.Fatalf("top category = %v", top["name"])
	}
	if got := len(body["cashflow"].([]any)); got != 5 {
		t.Fatalf("cashflow series length = %d", got)
	}
}

func TestBudget(t *testing.T) {
	srv := newTestServer(t)

	rr := doRequest(srv, http.MethodGet, "/api/budget", "")
	if rr.Code != http.StatusOK {
		t.Fatalf("budget status=%d", rr.Code)
	}
	body := decodeBody(t, rr)

	totalIncome := body["total_income"].(map[string]any)["cents"].(float64)
	var targetSum float64
	for _, bucket := range []string{"needs", "wants", "savings"} {
		b := body[bucket].(map[string]any)
		status := b["status"].(string)
		if status != "ok" && status != "warn" && status != "alert" {
			t.Fatalf("%s status = %q", bucket, status)
		}
		targetSum += b["target"].(map[string]any)["cents"].(float64)
	}
	if targetSum != totalIncome {
		t.Fatalf("targets sum to %v, income is %v", targetSum, totalIncome)
	}
}

func TestIncome(t *testing.T) {
	srv := newTestServer(t)

	rr := doRequest(srv, http.MethodGet, "/api/income", "")
	if rr.Code != http.StatusOK {
		t.Fatalf("income status=%d", rr.Code)
	}
	body := decodeBody(t, rr)

	conc := body["concentration"].(map[string]any)
	if conc["category"] != "Salário" {
		t.Fatalf("dominant source = %v", conc["category"])
	}
	// 450.000 of 530.000 is just under 85%, over the 80% threshold.
	if conc["dependent"] != true {
		t.Fatal("expected dependency flag on the seed data")
	}
	if got := len(body["series"].([]any)); got != 6 {
		t.Fatalf("income series length = %d", got)
	}
}

func TestGoalsAndInvestments(t *testing.T) {
	srv := newTestServer(t)

	rr := doRequest(srv, http.MethodGet, "/api/goals", "")
	body := decodeBody(t, rr)
	ef := body["emergency_fund"].(map[string]any)
	if ef["progress"].(float64) != 0.3 {
		t.Fatalf("emergency fund progress = %v", ef["progress"])
	}
	if got := len(body["goals"].([]any)); got != 1 {
		t.Fatalf("expected 1 non-reserve goal, got %d", got)
	}

	rr = doRequest(srv, http.MethodGet, "/api/investments", "")
	body = decodeBody(t, rr)
	invs := body["investments"].([]any)
	if len(invs) != 2 {
		t.Fatalf("expected 2 investments, got %d", len(invs))
	}
	first := invs[0].(map[string]any)
	if first["return_percent"].(float64) != 5 {
		t.Fatalf("derived return = %v", first["return_percent"])
	}
}

func TestSimulate(t *testing.T) {
	srv := newTestServer(t)

	rr := doRequest(srv, http.MethodGet, "/api/simulate?initial=1000&monthly=100&rate=10&years=5", "")
	if rr.Code != http.StatusOK {
		t.Fatalf("simulate status=%d", rr.Code)
	}
	body := decodeBody(t, rr)
	if got := len(body["points"].([]any)); got != 6 {
		t.Fatalf("expected 6 points, got %d", got)
	}
	final := body["final"].(map[string]any)["cents"].(float64)
	contributed := body["contributed"].(map[string]any)["cents"].(float64)
	if final <= contributed {
		t.Fatalf("final %v should exceed contributions %v at a positive rate", final, contributed)
	}

	for _, target := range []string{
		"/api/simulate?initial=1000&monthly=100&rate=10&years=0",
		"/api/simulate?initial=1000&monthly=100&rate=10&years=31",
		"/api/simulate?initial=abc&monthly=100&rate=10&years=5",
		"/api/simulate?initial=1000&monthly=100&rate=-1&years=5",
	} {
		rr := doRequest(srv, http.MethodGet, target, "")
		if rr.Code != http.StatusUnprocessableEntity {
			t.Fatalf("%s: expected 422, got %d", target, rr.Code)
		}
	}
}

func TestPlanning(t *testing.T) {
	srv := newTestServer(t)

	rr := doRequest(srv, http.MethodGet, "/api/planning", "")
	body := decodeBody(t, rr)
	milestones := body["milestones"].([]any)
	if len(milestones) != 5 {
		t.Fatalf("expected 5 milestones, got %d", len(milestones))
	}
	first := milestones[0].(map[string]any)
	if first["status"] != "completed" {
		t.Fatalf("2023 milestone status = %v", first["status"])
	}
}

func TestExportXLSX(t *testing.T) {
	srv := newTestServer(t)

	rr := doRequest(srv, http.MethodGet, "/api/export/expenses.xlsx", "")
	if rr.Code != http.StatusOK {
		t.Fatalf("export status=%d", rr.Code)
	}
	if ct := rr.Header().Get("Content-Type"); ct != xlsxContentType {
		t.Fatalf("content type = %q", ct)
	}
	if cd := rr.Header().Get("Content-Disposition"); !strings.Contains(cd, "despesas-por-categoria-") {
		t.Fatalf("content disposition = %q", cd)
	}
	if body := rr.Body.Bytes(); len(body) < 4 || body[0] != 'P' || body[1] != 'K' {
		t.Fatal("body is not a zip container")
	}
}

func TestCharts(t *testing.T) {
	srv := newTestServer(t)

	for _, target := range []string{
		"/charts/cashflow.png",
		"/charts/cashflow.png?type=income",
		"/charts/income.png",
		"/charts/simulation.png?initial=1000&monthly=100&rate=10&years=5",
	} {
		rr := doRequest(srv, http.MethodGet, target, "")
		if rr.Code != http.StatusOK {
			t.Fatalf("%s status=%d", target, rr.Code)
		}
		body := rr.Body.Bytes()
		if len(body) < 8 || body[0] != 0x89 || body[1] != 'P' || body[2] != 'N' || body[3] != 'G' {
			t.Fatalf("%s did not return a PNG", target)
		}
	}

	rr := doRequest(srv, http.MethodGet, "/charts/simulation.png?initial=abc", "")
	if rr.Code != http.StatusUnprocessableEntity {
		t.Fatalf("bad simulation params: expected 422, got %d", rr.Code)
	}
}

func TestRateLimitOnMutations(t *testing.T) {
	srv := newTestServer(t)

	var limited bool
	for i := 0; i < 70; i++ {
		rr := doRequest(srv, http.MethodDelete, "/api/transactions/nope", "")
		if rr.Code == http.StatusTooManyRequests {
			limited = true
			if ra := rr.Header().Get("Retry-After"); ra != "60" {
				t.Fatalf("Retry-After = %q", ra)
			}
			break
		}
	}
	if !limited {
		t.Fatal("mutations were never rate limited")
	}

	// Reads stay unthrottled
	rr := doRequest(srv, http.MethodGet, "/api/transactions", "")
	if rr.Code != http.StatusOK {
		t.Fatalf("read after limit: status=%d", rr.Code)
	}
}
