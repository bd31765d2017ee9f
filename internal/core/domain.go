package core

import (
	"errors"
	"strings"
	"time"
)

const (
	TypeIncome     TransactionType = "income"
	TypeExpense    TransactionType = "expense"
	TypeInvestment TransactionType = "investment" // reserved, not aggregated yet
)

const (
	GoalReserve GoalType = "Reserva"
	GoalHouse   GoalType = "Casa"
	GoalStudies GoalType = "Estudos"
	GoalFreedom GoalType = "Liberdade Financeira"
	GoalOther   GoalType = "Outro"
)

const (
	InvestFixedIncome InvestmentType = "Renda Fixa"
	InvestStocks      InvestmentType = "Ações"
	InvestFunds       InvestmentType = "Fundos"
	InvestOwnBusiness InvestmentType = "Negócio Próprio"
)

type (
	TransactionType string
	GoalType        string
	InvestmentType  string

	Date struct {
		time.Time
	}

	Money struct {
		Cents int64
	}

	// Transaction is a single money movement. Direction is carried by Type,
	// never by the sign of Amount.
	Transaction struct {
		ID          string          `json:"id"`
		Description string          `json:"description"`
		Amount      Money           `json:"amount_cents"`
		Date        Date            `json:"date"`
		Type        TransactionType `json:"type"`
		Category    string          `json:"category"`
		Fixed       bool            `json:"fixed"` // necessity vs want, fixed salary vs variable income
	}

	// Goal is a savings target. CurrentAmount may exceed TargetAmount.
	Goal struct {
		ID            string   `json:"id"`
		Title         string   `json:"title"`
		TargetAmount  Money    `json:"target_amount_cents"`
		CurrentAmount Money    `json:"current_amount_cents"`
		Deadline      Date     `json:"deadline"`
		Type          GoalType `json:"type"`
	}

	// Investment is a held asset. ReturnRate is informational only; derived
	// return always comes from Amount vs CurrentValue.
	Investment struct {
		ID           string         `json:"id"`
		Name         string         `json:"name"`
		Type         InvestmentType `json:"type"`
		Amount       Money          `json:"amount_cents"` // original cost basis
		CurrentValue Money          `json:"current_value_cents"`
		ReturnRate   float64        `json:"return_rate"` // annual %
	}
)

var (
	ErrInvalidAmount    = errors.New("invalid amount")
	ErrInvalidDate      = errors.New("invalid date")
	ErrInvalidType      = errors.New("invalid transaction type")
	ErrEmptyDescription = errors.New("empty description")
	ErrEmptyCategory    = errors.New("empty category")
)

func (t TransactionType) IsValid() bool {
	switch t {
	case TypeIncome, TypeExpense, TypeInvestment:
		return true
	default:
		return false
	}
}

// NewDate creates a calendar date (no time-of-day, UTC).
func NewDate(year, month, day int) Date {
	return Date{Time: time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)}
}

// DateOf truncates t to its calendar date in UTC.
func DateOf(t time.Time) Date {
	return NewDate(t.Year(), int(t.Month()), t.Day())
}

// ParseDate parses a date in YYYY-MM-DD format.
func ParseDate(s string) (Date, error) {
	t, err := time.Parse("2006-01-02", strings.TrimSpace(s))
	if err != nil {
		return Date{}, ErrInvalidDate
	}
	return Date{Time: t}, nil
}

func (d Date) Validate() error {
	if d.IsZero() {
		return ErrInvalidDate
	}
	return nil
}

// Key returns the date in YYYY-MM-DD form, the wire and storage format.
func (d Date) Key() string {
	return d.Format("2006-01-02")
}

// MonthKey returns the YYYY-MM prefix used for monthly bucketing.
func (d Date) MonthKey() string {
	return d.Format("2006-01")
}

// Before reports whether d is strictly before other, comparing dates only.
func (d Date) Before(other Date) bool {
	return d.Key() < other.Key()
}

// After reports whether d is strictly after other, comparing dates only.
func (d Date) After(other Date) bool {
	return d.Key() > other.Key()
}

func (d Date) MarshalJSON() ([]byte, error) {
	return []byte(`"` + d.Key() + `"`), nil
}

func (d *Date) UnmarshalJSON(b []byte) error {
	s := strings.Trim(string(b), `"`)
	if s == "" || s == "null" {
		return ErrInvalidDate
	}
	parsed, err := ParseDate(s)
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

func (m Money) Validate() error {
	if m.Cents <= 0 {
		return ErrInvalidAmount
	}
	return nil
}

func (t Transaction) Validate() error {
	if err := t.Date.Validate(); err != nil {
		return err
	}
	if len(strings.TrimSpace(t.Description)) == 0 {
		return ErrEmptyDescription
	}
	if len(t.Description) > 200 {
		return errors.New("description too long (max 200 characters)")
	}
	if err := t.Amount.Validate(); err != nil {
		return err
	}
	if !t.Type.IsValid() {
		return ErrInvalidType
	}
	if strings.TrimSpace(t.Category) == "" {
		return ErrEmptyCategory
	}
	return nil
}
