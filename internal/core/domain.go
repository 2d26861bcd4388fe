package core

import (
	"errors"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

const (
	Weekly  Period = "weekly"
	Monthly Period = "monthly"
)

// DateLayout is the canonical text form of every persisted date.
const DateLayout = "2006-01-02"

type (
	// Period is a named, derivable date range used for summaries.
	Period string

	// Date is a calendar day without a time component.
	Date struct {
		time.Time
	}

	// Expense is a single persisted ledger entry. Records are immutable
	// once created; the only mutation the store supports is deletion.
	Expense struct {
		ID       int64
		Category string
		Amount   decimal.Decimal
		Date     Date
		Note     string
	}

	// DateRange is an inclusive [Start, End] span of calendar days.
	DateRange struct {
		Start Date
		End   Date
	}

	// CategoryTotal is an amount aggregated by category name.
	CategoryTotal struct {
		Category string
		Total    decimal.Decimal
	}
)

var (
	ErrInvalidDate       = errors.New("date must be in YYYY-MM-DD format")
	ErrInvalidAmount     = errors.New("amount must be a number")
	ErrEmptyCategory     = errors.New("category cannot be empty")
	ErrUnsupportedPeriod = errors.New(`period must be "weekly" or "monthly"`)
)

// ParseDate parses a canonical YYYY-MM-DD string.
func ParseDate(s string) (Date, error) {
	t, err := time.Parse(DateLayout, strings.TrimSpace(s))
	if err != nil {
		return Date{}, ErrInvalidDate
	}
	return Date{Time: t}, nil
}

// NewDate creates a Date from year, month, day.
func NewDate(year, month, day int) Date {
	return Date{Time: time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)}
}

// DateOf truncates an instant to its calendar day.
func DateOf(t time.Time) Date {
	return NewDate(t.Year(), int(t.Month()), t.Day())
}

// Today returns the current calendar day.
func Today() Date {
	return DateOf(time.Now())
}

func (d Date) String() string {
	return d.Format(DateLayout)
}

// AddDays returns the date shifted by the given number of days.
func (d Date) AddDays(days int) Date {
	return Date{Time: d.AddDate(0, 0, days)}
}

// FirstOfMonth returns the first day of the date's calendar month.
func (d Date) FirstOfMonth() Date {
	return NewDate(d.Year(), int(d.Month()), 1)
}

func (d Date) Validate() error {
	if d.IsZero() {
		return ErrInvalidDate
	}
	return nil
}

// Contains reports whether the day falls inside the inclusive range.
func (r DateRange) Contains(d Date) bool {
	return !d.Time.Before(r.Start.Time) && !d.Time.After(r.End.Time)
}

func (r DateRange) String() string {
	return r.Start.String() + " .. " + r.End.String()
}

// ParsePeriod validates a period token.
func ParsePeriod(s string) (Period, error) {
	switch Period(strings.ToLower(strings.TrimSpace(s))) {
	case Weekly:
		return Weekly, nil
	case Monthly:
		return Monthly, nil
	default:
		return "", ErrUnsupportedPeriod
	}
}

func (e Expense) Validate() error {
	if strings.TrimSpace(e.Category) == "" {
		return ErrEmptyCategory
	}
	if err := e.Date.Validate(); err != nil {
		return err
	}
	return nil
}
