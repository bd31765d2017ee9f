package core

import "math"

// Simulator parameter bounds exposed to the API surface.
const (
	SimMinYears = 1
	SimMaxYears = 30
)

// SimPoint is one year of the compound-interest projection.
type SimPoint struct {
	Year   int   `json:"year"`
	Amount Money `json:"amount_cents"`
}

// Simulate projects an investment with monthly contributions and monthly
// compounding. It returns years+1 points: year 0 is the initial amount, each
// later point the balance after that many full years.
//
// The compounding convention is deliberate and must not change: every month
// the contribution is added first, then interest of balance * (rate/100) / 12
// is applied to the balance including that contribution. The annual rate is
// divided linearly by 12, not converted to a true monthly-equivalent rate.
// The running balance stays unrounded; only recorded points are rounded.
func Simulate(initial, monthly Money, annualRatePercent float64, years int) []SimPoint {
	if years < 0 {
		years = 0
	}
	monthlyRate := annualRatePercent / 100 / 12

	series := make([]SimPoint, 0, years+1)
	balance := float64(initial.Cents)
	series = append(series, SimPoint{Year: 0, Amount: roundCents(balance)})
	for year := 1; year <= years; year++ {
		for m := 0; m < 12; m++ {
			balance += float64(monthly.Cents)
			balance += balance * monthlyRate
		}
		series = append(series, SimPoint{Year: year, Amount: roundCents(balance)})
	}
	return series
}

func roundCents(v float64) Money {
	return Money{Cents: int64(math.Round(v))}
}
