package google

import (
	"fmt"
	"strconv"
	"strings"

	"kwanzaflow/internal/core"
)

// transactionRow renders a transaction as a spreadsheet row A:G.
// The amount is written in Kwanza, not centimos, so the sheet stays readable.
func transactionRow(t core.Transaction) []any {
	return []any{
		t.ID,
		t.Date.Key(),
		t.Description,
		t.Amount.Kwanzas(),
		string(t.Type),
		t.Category,
		strconv.FormatBool(t.Fixed),
	}
}

// parseTransactionRow is the inverse of transactionRow. Header rows, blank
// rows and rows with broken values report ok=false.
func parseTransactionRow(row []any) (core.Transaction, bool) {
	if len(row) < 6 {
		return core.Transaction{}, false
	}
	t := core.Transaction{
		ID:          strings.TrimSpace(toString(row[0])),
		Description: strings.TrimSpace(toString(row[2])),
		Category:    strings.TrimSpace(toString(row[5])),
	}

	date, err := core.ParseDate(toString(row[1]))
	if err != nil {
		return core.Transaction{}, false
	}
	t.Date = date

	cents, ok := parseKwanzaToCents(toString(row[3]))
	if !ok {
		return core.Transaction{}, false
	}
	t.Amount = core.Money{Cents: cents}

	t.Type = core.TransactionType(strings.TrimSpace(toString(row[4])))
	if !t.Type.IsValid() {
		return core.Transaction{}, false
	}

	if len(row) > 6 {
		t.Fixed = strings.EqualFold(strings.TrimSpace(toString(row[6])), "true")
	}

	return t, t.Validate() == nil
}

// parseKwanzaToCents converts a sheet cell value to centimos. Accepts both
// decimal comma and dot.
func parseKwanzaToCents(s string) (int64, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, false
	}
	s = strings.ReplaceAll(s, ",", ".")
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, false
	}
	cents := int64((f * 100.0) + 0.5)
	return cents, true
}

func toString(v any) string {
	switch s := v.(type) {
	case string:
		return s
	case float64:
		return strconv.FormatFloat(s, 'f', -1, 64)
	default:
		return fmt.Sprint(v)
	}
}
