package http

import (
	"encoding/json"
	"net/http"
	"strings"

	"kwanzaflow/internal/core"
)

// moneyJSON is how every amount leaves the API: raw centimos plus the
// pt-AO display string.
type moneyJSON struct {
	Cents     int64  `json:"cents"`
	Formatted string `json:"formatted"`
}

func money(m core.Money) moneyJSON {
	return moneyJSON{Cents: m.Cents, Formatted: m.FormatKz()}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}

func methodNotAllowed(w http.ResponseWriter, allowed string) {
	w.Header().Set("Allow", allowed)
	writeError(w, http.StatusMethodNotAllowed, "method not allowed")
}

// sanitizeInput removes control characters and trims whitespace.
func sanitizeInput(s string) string {
	s = strings.TrimSpace(s)
	return strings.Map(func(r rune) rune {
		if r < 32 && r != 9 && r != 10 && r != 13 {
			return -1
		}
		return r
	}, s)
}

// parseQueryDate parses an optional YYYY-MM-DD query value. An absent value
// yields the zero Date.
func parseQueryDate(raw string) (core.Date, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return core.Date{}, nil
	}
	return core.ParseDate(raw)
}
