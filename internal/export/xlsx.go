// Package export produces XLSX workbooks from the ledger, matching the
// trailing-30-day expense breakdown shown on the dashboard.
package export

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/xuri/excelize/v2"

	"kwanzaflow/internal/core"
)

// Filename returns the date-stamped download name for an export generated now.
func Filename(now time.Time) string {
	return fmt.Sprintf("despesas-por-categoria-%s.xlsx", now.Format("2006-01-02"))
}

// ExpenseCategoriesXLSX renders the trailing-30-day expense categories as an
// XLSX workbook: one row per category with amount and share, plus a total row.
func ExpenseCategoriesXLSX(list []core.Transaction, now time.Time) ([]byte, error) {
	start := time.Now()

	window := core.TrailingDays(now, 30)
	totals := core.CategoryTotals(list, core.TypeExpense, &window)
	ranked := core.RankCategories(totals)

	f := excelize.NewFile()
	const sheet = "Despesas"
	if index, _ := f.GetSheetIndex(sheet); index == -1 {
		if _, err := f.NewSheet(sheet); err != nil {
			return nil, err
		}
	}
	activeIndex, _ := f.GetSheetIndex(sheet)
	f.SetActiveSheet(activeIndex)
	// Drop the default sheet excelize creates.
	if index, _ := f.GetSheetIndex("Sheet1"); index != -1 {
		_ = f.DeleteSheet("Sheet1")
	}

	write := func(col, row int, v any) {
		cell, _ := excelize.CoordinatesToCellName(col, row)
		_ = f.SetCellValue(sheet, cell, v)
	}

	headers := []string{"Categoria", "Valor", "Percentagem"}
	for i, h := range headers {
		write(i+1, 1, h)
	}

	row := 2
	var total core.Money
	for _, c := range ranked {
		write(1, row, c.Name)
		write(2, row, c.Amount.FormatKz())
		write(3, row, fmt.Sprintf("%.1f%%", c.Percent))
		total = total.Add(c.Amount)
		row++
	}

	write(1, row, "Total")
	write(2, row, total.FormatKz())
	if total.Cents > 0 {
		write(3, row, "100.0%")
	} else {
		write(3, row, "0.0%")
	}

	_ = f.SetColWidth(sheet, "A", "A", 22)
	_ = f.SetColWidth(sheet, "B", "B", 16)
	_ = f.SetColWidth(sheet, "C", "C", 14)

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("xlsx write: %w", err)
	}

	slog.Info("export.xlsx.ok",
		"rows", len(ranked),
		"elapsed_ms", time.Since(start).Milliseconds(),
	)
	return buf.Bytes(), nil
}
