package core

import (
	"sort"
	"time"
)

// DependencyThreshold is the income share above which a single source is
// flagged as a diversification risk. Fixed business rule, not configurable.
const DependencyThreshold = 0.8

type (
	// DateRange is an inclusive calendar window.
	DateRange struct {
		From Date
		To   Date
	}

	// CategoryAmount is an amount aggregated by category name.
	CategoryAmount struct {
		Name    string
		Amount  Money
		Percent float64 // share of the aggregated total, 0 when total is zero
	}

	// Concentration describes how much of total income comes from the
	// dominant category.
	Concentration struct {
		Category  string
		Total     Money
		Ratio     float64
		Dependent bool
	}

	// MonthTotal is one point of a trailing monthly series.
	MonthTotal struct {
		Key   string // YYYY-MM
		Label string // pt-AO month abbreviation
		Total Money
	}
)

// Contains reports whether d falls inside the window, bounds included.
func (r DateRange) Contains(d Date) bool {
	return !d.Before(r.From) && !d.After(r.To)
}

// TrailingDays returns the inclusive window [now - days, now].
func TrailingDays(now time.Time, days int) DateRange {
	return DateRange{
		From: DateOf(now.AddDate(0, 0, -days)),
		To:   DateOf(now),
	}
}

// TotalByType sums amounts of every transaction of the given type.
// Order-independent and additive over the input.
func TotalByType(list []Transaction, t TransactionType) Money {
	var total Money
	for _, tx := range list {
		if tx.Type == t {
			total = total.Add(tx.Amount)
		}
	}
	return total
}

// CategoryTotals sums amounts grouped by category for the given type.
// A non-nil window restricts the aggregation to transactions whose date falls
// inside it. An empty result is an empty map, never nil arithmetic downstream.
func CategoryTotals(list []Transaction, t TransactionType, window *DateRange) map[string]Money {
	totals := make(map[string]Money)
	for _, tx := range list {
		if tx.Type != t {
			continue
		}
		if window != nil && !window.Contains(tx.Date) {
			continue
		}
		totals[tx.Category] = totals[tx.Category].Add(tx.Amount)
	}
	return totals
}

// RankCategories orders category totals largest-first and computes each
// category's share of the summed total. With a zero total every percent is 0.
func RankCategories(totals map[string]Money) []CategoryAmount {
	var sum int64
	out := make([]CategoryAmount, 0, len(totals))
	for name, amount := range totals {
		out = append(out, CategoryAmount{Name: name, Amount: amount})
		sum += amount.Cents
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Amount.Cents != out[j].Amount.Cents {
			return out[i].Amount.Cents > out[j].Amount.Cents
		}
		return out[i].Name < out[j].Name
	})
	if sum > 0 {
		for i := range out {
			out[i].Percent = float64(out[i].Amount.Cents) / float64(sum) * 100
		}
	}
	return out
}

// SourceConcentration finds the income category with the largest total and
// its share of all income. With zero total income the ratio is 0 and no
// dependency is flagged, regardless of category totals.
func SourceConcentration(list []Transaction) Concentration {
	totals := CategoryTotals(list, TypeIncome, nil)
	ranked := RankCategories(totals)
	if len(ranked) == 0 {
		return Concentration{}
	}
	income := TotalByType(list, TypeIncome)
	c := Concentration{Category: ranked[0].Name, Total: ranked[0].Amount}
	if income.Cents > 0 {
		c.Ratio = float64(ranked[0].Amount.Cents) / float64(income.Cents)
		c.Dependent = c.Ratio > DependencyThreshold
	}
	return c
}

var monthAbbr = [12]string{"Jan", "Fev", "Mar", "Abr", "Mai", "Jun", "Jul", "Ago", "Set", "Out", "Nov", "Dez"}

// MonthlySeries buckets transactions of the given type into the trailing
// months calendar months ending at now. Exactly months entries are returned,
// oldest to newest, zero-filled for months without matching transactions.
func MonthlySeries(list []Transaction, months int, t TransactionType, now time.Time) []MonthTotal {
	if months <= 0 {
		return nil
	}
	series := make([]MonthTotal, 0, months)
	for i := months - 1; i >= 0; i-- {
		m := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC).AddDate(0, -i, 0)
		series = append(series, MonthTotal{
			Key:   m.Format("2006-01"),
			Label: monthAbbr[int(m.Month())-1],
		})
	}
	index := make(map[string]int, months)
	for i, mt := range series {
		index[mt.Key] = i
	}
	for _, tx := range list {
		if tx.Type != t {
			continue
		}
		if i, ok := index[tx.Date.MonthKey()]; ok {
			series[i].Total = series[i].Total.Add(tx.Amount)
		}
	}
	return series
}

// FilterTransactions applies the income-history filter surface: optional
// type, category and inclusive date bounds. Zero-value fields are ignored.
func FilterTransactions(list []Transaction, t TransactionType, category string, from, to Date) []Transaction {
	out := make([]Transaction, 0, len(list))
	for _, tx := range list {
		if t != "" && tx.Type != t {
			continue
		}
		if category != "" && tx.Category != category {
			continue
		}
		if !from.IsZero() && tx.Date.Before(DateOf(from.Time)) {
			continue
		}
		if !to.IsZero() && tx.Date.After(DateOf(to.Time)) {
			continue
		}
		out = append(out, tx)
	}
	return out
}
