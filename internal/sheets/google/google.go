package google

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"

	goption "google.golang.org/api/option"
	gsheet "google.golang.org/api/sheets/v4"

	"kwanzaflow/internal/core"
	ports "kwanzaflow/internal/ledger"
)

// Client mirrors the ledger onto a Google Spreadsheet. One row per
// transaction, columns A:G = ID, Date, Description, Amount, Type, Category,
// Fixed.
type Client struct {
	svc           *gsheet.Service
	spreadsheetID string
	ledgerSheet   string
}

// Ensure interface conformance
var (
	_ ports.TransactionLister = (*Client)(nil)
)

// NewFromEnv creates a Sheets client using environment variables.
// Required: GOOGLE_SPREADSHEET_ID
// Optional: GOOGLE_SHEET_NAME (default "Ledger")
// Credentials: GOOGLE_SERVICE_ACCOUNT_JSON, GOOGLE_SERVICE_ACCOUNT_FILE, or
// GOOGLE_APPLICATION_CREDENTIALS.
func NewFromEnv(ctx context.Context) (*Client, error) {
	spreadsheetID := strings.TrimSpace(os.Getenv("GOOGLE_SPREADSHEET_ID"))
	if spreadsheetID == "" {
		return nil, errors.New("missing GOOGLE_SPREADSHEET_ID")
	}

	sheet := strings.TrimSpace(os.Getenv("GOOGLE_SHEET_NAME"))
	if sheet == "" {
		sheet = "Ledger"
	}

	svc, err := newSheetsService(ctx)
	if err != nil {
		return nil, fmt.Errorf("sheets service: %w", err)
	}

	return &Client{
		svc:           svc,
		spreadsheetID: spreadsheetID,
		ledgerSheet:   sheet,
	}, nil
}

// newSheetsService initializes a Sheets Service using Service Account credentials.
func newSheetsService(ctx context.Context) (*gsheet.Service, error) {
	serviceAccountJSON := strings.TrimSpace(os.Getenv("GOOGLE_SERVICE_ACCOUNT_JSON"))
	serviceAccountFile := strings.TrimSpace(os.Getenv("GOOGLE_SERVICE_ACCOUNT_FILE"))
	if serviceAccountJSON == "" && serviceAccountFile == "" {
		serviceAccountFile = strings.TrimSpace(os.Getenv("GOOGLE_APPLICATION_CREDENTIALS"))
	}

	var credentialsJSON []byte
	var err error
	switch {
	case serviceAccountJSON != "":
		credentialsJSON = []byte(serviceAccountJSON)
	case serviceAccountFile != "":
		credentialsJSON, err = os.ReadFile(serviceAccountFile)
		if err != nil {
			return nil, fmt.Errorf("read service account file: %w", err)
		}
	default:
		return nil, errors.New("missing service account credentials (set GOOGLE_SERVICE_ACCOUNT_JSON, GOOGLE_SERVICE_ACCOUNT_FILE, or GOOGLE_APPLICATION_CREDENTIALS)")
	}

	service, err := gsheet.NewService(ctx,
		goption.WithCredentialsJSON(credentialsJSON),
		goption.WithScopes(gsheet.SpreadsheetsScope))
	if err != nil {
		return nil, fmt.Errorf("create sheets service: %w", err)
	}
	return service, nil
}

// Append writes the transaction as a new row and returns its row reference,
// e.g. "Ledger!A42".
func (c *Client) Append(ctx context.Context, t core.Transaction) (string, error) {
	if err := t.Validate(); err != nil {
		return "", fmt.Errorf("validation failed: %w", err)
	}
	if c.svc == nil {
		return "", errors.New("sheets service not initialized")
	}

	// Find the next empty row from the ID column.
	rng := fmt.Sprintf("%s!A:A", c.ledgerSheet)
	resp, err := c.svc.Spreadsheets.Values.Get(c.spreadsheetID, rng).Context(ctx).Do()
	if err != nil {
		return "", fmt.Errorf("failed to get sheet dimensions for %s: %w", c.ledgerSheet, err)
	}
	nextRow := len(resp.Values) + 1

	dataRange := fmt.Sprintf("%s!A%d:G%d", c.ledgerSheet, nextRow, nextRow)
	vr := &gsheet.ValueRange{Values: [][]any{transactionRow(t)}}

	_, err = c.svc.Spreadsheets.Values.Update(c.spreadsheetID, dataRange, vr).
		ValueInputOption("USER_ENTERED").Context(ctx).Do()
	if err != nil {
		return "", fmt.Errorf("failed to write row in sheet %s: %w", c.ledgerSheet, err)
	}

	rowRef := fmt.Sprintf("%s!A%d", c.ledgerSheet, nextRow)
	slog.InfoContext(ctx, "Transaction appended to spreadsheet",
		"id", t.ID,
		"row_ref", rowRef)
	return rowRef, nil
}

// Remove clears the row holding the transaction with the given ID. Unknown
// IDs are a no-op.
func (c *Client) Remove(ctx context.Context, id string) error {
	if c.svc == nil {
		return errors.New("sheets service not initialized")
	}

	rng := fmt.Sprintf("%s!A:A", c.ledgerSheet)
	resp, err := c.svc.Spreadsheets.Values.Get(c.spreadsheetID, rng).Context(ctx).Do()
	if err != nil {
		return fmt.Errorf("failed to scan ID column of %s: %w", c.ledgerSheet, err)
	}

	for i, row := range resp.Values {
		if len(row) == 0 || toString(row[0]) != id {
			continue
		}
		clearRange := fmt.Sprintf("%s!A%d:G%d", c.ledgerSheet, i+1, i+1)
		if _, err := c.svc.Spreadsheets.Values.Clear(c.spreadsheetID, clearRange, &gsheet.ClearValuesRequest{}).
			Context(ctx).Do(); err != nil {
			return fmt.Errorf("failed to clear row %d in sheet %s: %w", i+1, c.ledgerSheet, err)
		}
		slog.InfoContext(ctx, "Transaction row cleared in spreadsheet", "id", id, "row", i+1)
		return nil
	}
	return nil
}

// ListTransactions reads the full ledger sheet back, newest row first.
// Unparseable rows are skipped.
func (c *Client) ListTransactions(ctx context.Context) ([]core.Transaction, error) {
	if c.svc == nil {
		return nil, errors.New("sheets service not initialized")
	}

	rng := fmt.Sprintf("%s!A:G", c.ledgerSheet)
	resp, err := c.svc.Spreadsheets.Values.Get(c.spreadsheetID, rng).Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("failed to read sheet %s: %w", c.ledgerSheet, err)
	}

	var out []core.Transaction
	for _, row := range resp.Values {
		t, ok := parseTransactionRow(row)
		if !ok {
			continue
		}
		out = append(out, t)
	}
	// Rows are in append order; present newest first like the other backends.
	for i, j := 0, len(out)-1; i < j; i, j = i+1, j-1 {
		out[i], out[j] = out[j], out[i]
	}
	return out, nil
}
