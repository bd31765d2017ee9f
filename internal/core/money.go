// Package core holds the KwanzaFlow domain model and the pure aggregation
// and projection functions every view is derived from.
//
// This file contains functions for parsing monetary amounts from strings
// and formatting centimo values as Kwanza for display.
package core

import (
	"strconv"
	"strings"
	"unicode"
)

// ParseDecimalToCents converts a decimal string to centimos with proper rounding.
//
// It accepts both dot (12.34) and comma (12,34) decimal separators and performs
// half-up rounding on the third decimal place. The result is always positive.
// Returns an error for invalid formats, negative values, or zero amounts.
//
// Examples:
//
//	ParseDecimalToCents("450000") -> 45000000, nil
//	ParseDecimalToCents("12,34")  -> 1234, nil
//	ParseDecimalToCents("12.346") -> 1235, nil (rounds up)
func ParseDecimalToCents(s string) (int64, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, ErrInvalidAmount
	}
	s = strings.ReplaceAll(s, ",", ".")
	if strings.HasPrefix(s, "+") || strings.HasPrefix(s, "-") {
		// Only positive values allowed
		return 0, ErrInvalidAmount
	}
	parts := strings.Split(s, ".")
	if len(parts) > 2 {
		return 0, ErrInvalidAmount
	}
	intPart := parts[0]
	fracPart := ""
	if len(parts) == 2 {
		fracPart = parts[1]
	}
	if intPart == "" {
		intPart = "0"
	}
	for _, r := range intPart {
		if !unicode.IsDigit(r) {
			return 0, ErrInvalidAmount
		}
	}
	for _, r := range fracPart {
		if !unicode.IsDigit(r) {
			return 0, ErrInvalidAmount
		}
	}
	iv, err := strconv.ParseInt(intPart, 10, 64)
	if err != nil {
		return 0, ErrInvalidAmount
	}
	const maxSafeInt64 = (1<<63 - 1) / 100
	if iv > maxSafeInt64 {
		return 0, ErrInvalidAmount
	}
	// Take first two fractional digits; half-up rounding on the third.
	var fracCents int64
	if len(fracPart) > 0 {
		d1 := int64(fracPart[0] - '0')
		fracCents = d1 * 10
		if len(fracPart) > 1 {
			d2 := int64(fracPart[1] - '0')
			fracCents += d2
			if len(fracPart) > 2 && fracPart[2] >= '5' {
				fracCents++
			}
		}
	}
	cents := iv*100 + fracCents
	if cents <= 0 {
		return 0, ErrInvalidAmount
	}
	return cents, nil
}

// Kwanzas returns the Kwanza value as a float64 for display purposes.
// Use cents for calculations to avoid floating-point precision issues.
func (m Money) Kwanzas() float64 {
	return float64(m.Cents) / 100.0
}

// FormatKz renders the amount as a Kwanza string with pt-AO thousand
// grouping and no fraction digits, e.g. "Kz 450.000". Centimos are dropped,
// matching how the application presents all figures.
func (m Money) FormatKz() string {
	cents := m.Cents
	neg := cents < 0
	if neg {
		cents = -cents
	}
	whole := strconv.FormatInt(cents/100, 10)

	var b strings.Builder
	lead := len(whole) % 3
	if lead > 0 {
		b.WriteString(whole[:lead])
	}
	for i := lead; i < len(whole); i += 3 {
		if b.Len() > 0 {
			b.WriteByte('.')
		}
		b.WriteString(whole[i : i+3])
	}
	if neg {
		return "-Kz " + b.String()
	}
	return "Kz " + b.String()
}

// MarshalJSON encodes the amount as a bare integer of centimos.
func (m Money) MarshalJSON() ([]byte, error) {
	return []byte(strconv.FormatInt(m.Cents, 10)), nil
}

func (m *Money) UnmarshalJSON(b []byte) error {
	cents, err := strconv.ParseInt(string(b), 10, 64)
	if err != nil {
		return ErrInvalidAmount
	}
	m.Cents = cents
	return nil
}

// Add returns the sum of two amounts.
func (m Money) Add(other Money) Money {
	return Money{Cents: m.Cents + other.Cents}
}

// Sub returns m minus other. The result may be negative.
func (m Money) Sub(other Money) Money {
	return Money{Cents: m.Cents - other.Cents}
}

// ClampZero returns m, floored at zero. Display-only helper; underlying
// figures keep their sign.
func (m Money) ClampZero() Money {
	if m.Cents < 0 {
		return Money{}
	}
	return m
}
