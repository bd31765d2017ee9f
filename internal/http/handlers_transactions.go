package http

import (
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"kwanzaflow/internal/core"
	applog "kwanzaflow/internal/log"
)

type transactionJSON struct {
	ID          string    `json:"id"`
	Description string    `json:"description"`
	Amount      moneyJSON `json:"amount"`
	Date        string    `json:"date"`
	Type        string    `json:"type"`
	Category    string    `json:"category"`
	Fixed       bool      `json:"fixed"`
}

func transactionView(t core.Transaction) transactionJSON {
	return transactionJSON{
		ID:          t.ID,
		Description: t.Description,
		Amount:      money(t.Amount),
		Date:        t.Date.Key(),
		Type:        string(t.Type),
		Category:    t.Category,
		Fixed:       t.Fixed,
	}
}

// createTransactionRequest is the POST body. Amount is a decimal Kwanza
// string ("45000" or "1500.50"); a bare JSON number works too. It is kept
// raw here so a non-numeric value fails amount validation, not body decode.
type createTransactionRequest struct {
	Description string          `json:"description"`
	Amount      json.RawMessage `json:"amount"`
	Date        string          `json:"date"`
	Type        string          `json:"type"`
	Category    string          `json:"category"`
	Fixed       bool            `json:"fixed"`
}

// amountText unwraps the raw amount field: quoted strings are unquoted,
// everything else passes through as written.
func (r createTransactionRequest) amountText() string {
	var s string
	if json.Unmarshal(r.Amount, &s) == nil {
		return s
	}
	return strings.TrimSpace(string(r.Amount))
}

func (s *Server) handleTransactions(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		s.handleListTransactions(w, r)
	case http.MethodPost:
		s.handleCreateTransaction(w, r)
	default:
		methodNotAllowed(w, "GET, POST")
	}
}

func (s *Server) handleListTransactions(w http.ResponseWriter, r *http.Request) {
	list, err := s.listTransactions(r.Context())
	if err != nil {
		s.logger.ErrorContext(r.Context(), "list transactions failed", applog.FieldError, err)
		writeError(w, http.StatusInternalServerError, "could not load transactions")
		return
	}

	q := r.URL.Query()
	txType := core.TransactionType(strings.TrimSpace(q.Get("type")))
	if txType != "" && !txType.IsValid() {
		writeError(w, http.StatusBadRequest, "unknown transaction type")
		return
	}
	from, err := parseQueryDate(q.Get("from"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid from date, want YYYY-MM-DD")
		return
	}
	to, err := parseQueryDate(q.Get("to"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid to date, want YYYY-MM-DD")
		return
	}

	list = core.FilterTransactions(list, txType, sanitizeInput(q.Get("category")), from, to)

	out := make([]transactionJSON, 0, len(list))
	for _, t := range list {
		out = append(out, transactionView(t))
	}
	writeJSON(w, http.StatusOK, map[string]any{"transactions": out, "count": len(out)})
}

func (s *Server) handleCreateTransaction(w http.ResponseWriter, r *http.Request) {
	var req createTransactionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	cents, err := core.ParseDecimalToCents(req.amountText())
	if err != nil {
		writeError(w, http.StatusUnprocessableEntity, "invalid amount")
		return
	}

	// Date defaults to today when omitted.
	date := core.DateOf(time.Now())
	if strings.TrimSpace(req.Date) != "" {
		date, err = core.ParseDate(req.Date)
		if err != nil {
			writeError(w, http.StatusUnprocessableEntity, "invalid date, want YYYY-MM-DD")
			return
		}
	}

	tx := core.Transaction{
		Description: sanitizeInput(req.Description),
		Amount:      core.Money{Cents: cents},
		Date:        date,
		Type:        core.TransactionType(strings.TrimSpace(req.Type)),
		Category:    sanitizeInput(req.Category),
		Fixed:       req.Fixed,
	}
	if err := tx.Validate(); err != nil {
		writeError(w, http.StatusUnprocessableEntity, err.Error())
		return
	}

	saved, err := s.backend.AddTransaction(r.Context(), tx)
	if err != nil {
		s.logger.ErrorContext(r.Context(), "add transaction failed",
			applog.FieldError, err,
			applog.FieldDescription, tx.Description,
			applog.FieldAmountCents, tx.Amount.Cents)
		writeError(w, http.StatusInternalServerError, "could not save transaction")
		return
	}

	s.invalidateLedger()
	s.logger.InfoContext(r.Context(), "transaction created",
		applog.FieldTransactionID, saved.ID,
		applog.FieldTxType, string(saved.Type),
		applog.FieldCategory, saved.Category,
		applog.FieldAmountCents, saved.Amount.Cents)
	writeJSON(w, http.StatusCreated, transactionView(saved))
}

func (s *Server) handleTransactionByID(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodDelete {
		methodNotAllowed(w, "DELETE")
		return
	}

	id := strings.TrimPrefix(r.URL.Path, "/api/transactions/")
	if id == "" || strings.Contains(id, "/") {
		writeError(w, http.StatusBadRequest, "missing transaction id")
		return
	}

	// Deleting an unknown ID is not an error.
	if err := s.backend.DeleteTransaction(r.Context(), id); err != nil {
		s.logger.ErrorContext(r.Context(), "delete transaction failed",
			applog.FieldError, err,
			applog.FieldTransactionID, id)
		writeError(w, http.StatusInternalServerError, "could not delete transaction")
		return
	}

	s.invalidateLedger()
	s.logger.InfoContext(r.Context(), "transaction deleted", applog.FieldTransactionID, id)
	w.WriteHeader(http.StatusNoContent)
}
