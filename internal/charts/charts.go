// Package charts renders ledger aggregates as PNG images, served by the API
// and embedded in the CLI report.
package charts

import (
	"fmt"
	"io"
	"time"

	chart "github.com/wcharczuk/go-chart/v2"

	"kwanzaflow/internal/core"
)

// RenderMonthlySeries draws a bar chart of monthly totals for one transaction
// type over the trailing months.
func RenderMonthlySeries(w io.Writer, list []core.Transaction, txType core.TransactionType, months int, now time.Time) error {
	series := core.MonthlySeries(list, months, txType, now)

	bars := make([]chart.Value, 0, len(series))
	for _, p := range series {
		bars = append(bars, chart.Value{
			Label: p.Label,
			Value: p.Total.Kwanzas(),
		})
	}

	title := "Despesas por Mês"
	if txType == core.TypeIncome {
		title = "Receitas por Mês"
	}

	barChart := chart.BarChart{
		Title: title,
		Background: chart.Style{
			Padding: chart.Box{
				Top:    40,
				Left:   20,
				Right:  20,
				Bottom: 20,
			},
		},
		Width:  800,
		Height: 400,
		Bars:   bars,
	}
	barChart.YAxis.ValueFormatter = func(v interface{}) string {
		if vf, isFloat := v.(float64); isFloat {
			return core.Money{Cents: int64(vf * 100)}.FormatKz()
		}
		return ""
	}
	pinAxisWhenFlat(&barChart)

	return barChart.Render(chart.PNG, w)
}

// RenderCategoryBreakdown draws a bar chart of the trailing-30-day expense
// totals per category, largest first.
func RenderCategoryBreakdown(w io.Writer, list []core.Transaction, now time.Time) error {
	window := core.TrailingDays(now, 30)
	ranked := core.RankCategories(core.CategoryTotals(list, core.TypeExpense, &window))

	bars := make([]chart.Value, 0, len(ranked))
	for _, c := range ranked {
		bars = append(bars, chart.Value{
			Label: c.Name,
			Value: c.Amount.Kwanzas(),
		})
	}
	if len(bars) == 0 {
		// go-chart faults on an empty bar set.
		bars = append(bars, chart.Value{Label: "Sem despesas", Value: 0})
	}

	barChart := chart.BarChart{
		Title: fmt.Sprintf("Despesas por Categoria (últimos 30 dias até %s)", core.DateOf(now).Key()),
		Background: chart.Style{
			Padding: chart.Box{
				Top:    40,
				Left:   20,
				Right:  20,
				Bottom: 20,
			},
		},
		Width:  800,
		Height: 400,
		Bars:   bars,
	}
	barChart.YAxis.ValueFormatter = func(v interface{}) string {
		if vf, isFloat := v.(float64); isFloat {
			return core.Money{Cents: int64(vf * 100)}.FormatKz()
		}
		return ""
	}
	pinAxisWhenFlat(&barChart)

	return barChart.Render(chart.PNG, w)
}

// pinAxisWhenFlat fixes the y-axis range when every bar shares one value.
// go-chart rejects a zero-width data range, which happens for an empty
// ledger and just as well for a single in-window category.
func pinAxisWhenFlat(c *chart.BarChart) {
	if len(c.Bars) == 0 {
		return
	}
	low, high := c.Bars[0].Value, c.Bars[0].Value
	for _, b := range c.Bars[1:] {
		if b.Value < low {
			low = b.Value
		}
		if b.Value > high {
			high = b.Value
		}
	}
	if low != high {
		return
	}
	if high <= 0 {
		high = 1
	}
	c.YAxis.Range = &chart.ContinuousRange{Min: 0, Max: high}
}

// RenderSimulation draws the compound growth curve of an investment
// simulation.
func RenderSimulation(w io.Writer, points []core.SimPoint) error {
	xs := make([]float64, 0, len(points))
	ys := make([]float64, 0, len(points))
	for _, p := range points {
		xs = append(xs, float64(p.Year))
		ys = append(ys, p.Amount.Kwanzas())
	}

	graph := chart.Chart{
		Title: "Simulação de Investimento",
		Background: chart.Style{
			Padding: chart.Box{
				Top:    40,
				Left:   20,
				Right:  20,
				Bottom: 20,
			},
		},
		Width:  800,
		Height: 400,
		Series: []chart.Series{
			chart.ContinuousSeries{
				Name:    "Saldo projetado",
				XValues: xs,
				YValues: ys,
			},
		},
	}
	graph.YAxis.ValueFormatter = func(v interface{}) string {
		if vf, isFloat := v.(float64); isFloat {
			return core.Money{Cents: int64(vf * 100)}.FormatKz()
		}
		return ""
	}
	graph.XAxis.ValueFormatter = func(v interface{}) string {
		if vf, isFloat := v.(float64); isFloat {
			return fmt.Sprintf("Ano %.0f", vf)
		}
		return ""
	}

	return graph.Render(chart.PNG, w)
}
