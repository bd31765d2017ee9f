// kwanzaflow-report prints a terminal snapshot of the ledger and optionally
// writes the XLSX export and chart PNGs to disk.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/olekukonko/tablewriter"

	"kwanzaflow/internal/backend"
	"kwanzaflow/internal/charts"
	"kwanzaflow/internal/cli"
	"kwanzaflow/internal/core"
	"kwanzaflow/internal/export"
)

func main() {
	xlsxDir := flag.String("xlsx", "", "directory to write the expense export workbook into")
	chartDir := flag.String("charts", "", "directory to write chart PNGs into")
	flag.Parse()

	cli.LoadEnvFile()
	logger := cli.SetupLogger()
	cfg := cli.LoadAndValidateConfig(logger)

	backendCfg, err := backend.FromAppConfig(cfg)
	if err != nil {
		logger.Error("Invalid backend configuration", "error", err)
		os.Exit(1)
	}

	ctx := context.Background()
	result, err := backend.NewFactory(logger).CreateBackend(ctx, backendCfg)
	if err != nil {
		logger.Error("Failed to create backend", "error", err, "backend", backendCfg.Type.String())
		os.Exit(1)
	}
	defer func() {
		if result.Cleanup != nil {
			_ = result.Cleanup()
		}
	}()

	list, err := result.Backend.ListTransactions(ctx)
	if err != nil {
		logger.Error("Failed to load transactions", "error", err)
		os.Exit(1)
	}
	goals, err := result.Backend.ListGoals(ctx)
	if err != nil {
		logger.Error("Failed to load goals", "error", err)
		os.Exit(1)
	}

	now := time.Now()
	printSummary(list, now)
	printCategories(list, now)
	printBudget(list)
	printGoals(goals)

	if *xlsxDir != "" {
		if err := writeExport(list, now, *xlsxDir); err != nil {
			logger.Error("Failed to write XLSX export", "error", err)
			os.Exit(1)
		}
	}
	if *chartDir != "" {
		if err := writeCharts(list, now, *chartDir); err != nil {
			logger.Error("Failed to write charts", "error", err)
			os.Exit(1)
		}
	}
}

func printSummary(list []core.Transaction, now time.Time) {
	income := core.TotalByType(list, core.TypeIncome)
	expense := core.TotalByType(list, core.TypeExpense)

	table := tablewriter.NewWriter(os.Stdout)
	table.SetHeader([]string{"Receitas", "Despesas", "Saldo", "Taxa de Poupança"})
	table.Append([]string{
		income.FormatKz(),
		expense.FormatKz(),
		income.Sub(expense).FormatKz(),
		fmt.Sprintf("%.1f%%", core.SavingsRate(list)),
	})
	table.Render()
	fmt.Printf("\n%q\n\n", core.QuoteOfDay(now))
}

func printCategories(list []core.Transaction, now time.Time) {
	window := core.TrailingDays(now, 30)
	ranked := core.RankCategories(core.CategoryTotals(list, core.TypeExpense, &window))
	if len(ranked) == 0 {
		fmt.Println("Sem despesas nos últimos 30 dias.")
		return
	}

	table := tablewriter.NewWriter(os.Stdout)
	table.SetHeader([]string{"Categoria", "Valor", "Percentagem"})
	var total core.Money
	for _, c := range ranked {
		table.Append([]string{c.Name, c.Amount.FormatKz(), fmt.Sprintf("%.1f%%", c.Percent)})
		total = total.Add(c.Amount)
	}
	table.SetFooter([]string{"Total", total.FormatKz(), "100.0%"})
	table.Render()
	fmt.Println()
}

func printBudget(list []core.Transaction) {
	split := core.SplitBudget(list)

	table := tablewriter.NewWriter(os.Stdout)
	table.SetHeader([]string{"Orçamento 50/30/20", "Atual", "Meta", "Estado"})
	rows := []struct {
		name            string
		current, target core.Money
	}{
		{"Necessidades", split.Needs, split.NeedsTarget},
		{"Desejos", split.Wants, split.WantsTarget},
		{"Poupança", split.Savings, split.SavingsTarget},
	}
	for _, r := range rows {
		table.Append([]string{
			r.name,
			r.current.FormatKz(),
			r.target.FormatKz(),
			string(core.StatusFor(r.current, r.target)),
		})
	}
	table.Render()
	fmt.Println()
}

func printGoals(goals []core.Goal) {
	if len(goals) == 0 {
		return
	}
	table := tablewriter.NewWriter(os.Stdout)
	table.SetHeader([]string{"Meta", "Atual", "Objetivo", "Progresso", "Falta"})
	for _, g := range goals {
		table.Append([]string{
			g.Title,
			g.CurrentAmount.FormatKz(),
			g.TargetAmount.FormatKz(),
			fmt.Sprintf("%.0f%%", core.ProgressRatio(g.CurrentAmount, g.TargetAmount)*100),
			core.Remaining(g.TargetAmount, g.CurrentAmount).FormatKz(),
		})
	}
	table.Render()
	fmt.Println()
}

func writeExport(list []core.Transaction, now time.Time, dir string) error {
	data, err := export.ExpenseCategoriesXLSX(list, now)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}
	path := filepath.Join(dir, export.Filename(now))
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return err
	}
	fmt.Println("Exportado:", path)
	return nil
}

func writeCharts(list []core.Transaction, now time.Time, dir string) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}
	renders := []struct {
		name   string
		render func(f *os.File) error
	}{
		{"despesas-mensais.png", func(f *os.File) error {
			return charts.RenderMonthlySeries(f, list, core.TypeExpense, 5, now)
		}},
		{"receitas-mensais.png", func(f *os.File) error {
			return charts.RenderMonthlySeries(f, list, core.TypeIncome, 5, now)
		}},
		{"despesas-por-categoria.png", func(f *os.File) error {
			return charts.RenderCategoryBreakdown(f, list, now)
		}},
	}
	for _, r := range renders {
		f, err := os.Create(filepath.Join(dir, r.name))
		if err != nil {
			return err
		}
		if err := r.render(f); err != nil {
			f.Close()
			return err
		}
		if err := f.Close(); err != nil {
			return err
		}
		fmt.Println("Gráfico:", filepath.Join(dir, r.name))
	}
	return nil
}
