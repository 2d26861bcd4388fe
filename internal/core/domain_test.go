package core

import (
	"errors"
	"testing"
	"time"
)

func TestParseDate(t *testing.T) {
	cases := []struct {
		in  string
		out string
		ok  bool
	}{
		{"2024-03-01", "2024-03-01", true},
		{" 2024-12-31 ", "2024-12-31", true},
		{"03/01/2024", "", false},
		{"2024-3-1", "", false},
		{"yesterday", "", false},
		{"", "", false},
	}
	for _, tc := range cases {
		got, err := ParseDate(tc.in)
		if tc.ok {
			if err != nil || got.String() != tc.out {
				t.Fatalf("ParseDate(%q) = %v, %v; want %s", tc.in, got, err, tc.out)
			}
		} else {
			if !errors.Is(err, ErrInvalidDate) {
				t.Fatalf("ParseDate(%q) expected ErrInvalidDate, got %v", tc.in, err)
			}
		}
	}
}

func TestDateHelpers(t *testing.T) {
	d := NewDate(2024, 3, 15)
	if got := d.FirstOfMonth().String(); got != "2024-03-01" {
		t.Fatalf("FirstOfMonth = %s, want 2024-03-01", got)
	}
	if got := d.AddDays(-6).String(); got != "2024-03-09" {
		t.Fatalf("AddDays(-6) = %s, want 2024-03-09", got)
	}
	// Crossing a month boundary backwards
	if got := NewDate(2024, 3, 2).AddDays(-6).String(); got != "2024-02-25" {
		t.Fatalf("AddDays across month = %s, want 2024-02-25", got)
	}
	if got := DateOf(time.Date(2024, 3, 15, 23, 59, 1, 0, time.UTC)).String(); got != "2024-03-15" {
		t.Fatalf("DateOf = %s, want 2024-03-15", got)
	}
}

func TestDateRangeContains(t *testing.T) {
	rng := DateRange{Start: NewDate(2024, 3, 1), End: NewDate(2024, 3, 31)}
	cases := []struct {
		d  Date
		in bool
	}{
		{NewDate(2024, 3, 1), true},
		{NewDate(2024, 3, 31), true},
		{NewDate(2024, 3, 15), true},
		{NewDate(2024, 2, 29), false},
		{NewDate(2024, 4, 1), false},
	}
	for _, tc := range cases {
		if got := rng.Contains(tc.d); got != tc.in {
			t.Fatalf("Contains(%s) = %v, want %v", tc.d, got, tc.in)
		}
	}
}

func TestParsePeriod(t *testing.T) {
	if p, err := ParsePeriod("weekly"); err != nil || p != Weekly {
		t.Fatalf("ParsePeriod(weekly) = %v, %v", p, err)
	}
	if p, err := ParsePeriod(" Monthly "); err != nil || p != Monthly {
		t.Fatalf("ParsePeriod(Monthly) = %v, %v", p, err)
	}
	for _, bad := range []string{"daily", "yearly", "", "month"} {
		if _, err := ParsePeriod(bad); !errors.Is(err, ErrUnsupportedPeriod) {
			t.Fatalf("ParsePeriod(%q) expected ErrUnsupportedPeriod, got %v", bad, err)
		}
	}
}

func TestExpenseValidate(t *testing.T) {
	good := Expense{Category: "Food", Date: NewDate(2024, 3, 1)}
	if err := good.Validate(); err != nil {
		t.Fatalf("expected ok, got %v", err)
	}

	if err := (Expense{Category: "  ", Date: NewDate(2024, 3, 1)}).Validate(); !errors.Is(err, ErrEmptyCategory) {
		t.Fatalf("expected ErrEmptyCategory, got %v", err)
	}
	if err := (Expense{Category: "Food"}).Validate(); !errors.Is(err, ErrInvalidDate) {
		t.Fatalf("expected ErrInvalidDate for zero date, got %v", err)
	}
}
