package report

import (
	"testing"

	"github.com/shopspring/decimal"

	"spendlog/internal/core"
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func TestCheckBudget(t *testing.T) {
	cases := []struct {
		name       string
		total      string
		limit      string
		configured bool
		exceeded   string // "" means no warning
	}{
		{"over budget", "1200", "1000", true, "200"},
		{"exactly at budget", "1000", "1000", true, ""},
		{"under budget", "400", "1000", true, ""},
		{"no budget configured", "1200", "0", false, ""},
		{"fractional excess", "960", "500", true, "460"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			w := CheckBudget(dec(tc.total), dec(tc.limit), tc.configured)
			if tc.exceeded == "" {
				if w != nil {
					t.Fatalf("expected no warning, got %+v", w)
				}
				return
			}
			if w == nil {
				t.Fatal("expected warning, got nil")
			}
			if !w.Exceeded.Equal(dec(tc.exceeded)) {
				t.Fatalf("Exceeded = %s, want %s", w.Exceeded, tc.exceeded)
			}
			if !w.Total.Equal(dec(tc.total)) || !w.Limit.Equal(dec(tc.limit)) {
				t.Fatalf("warning carries %s/%s, want %s/%s", w.Total, w.Limit, tc.total, tc.limit)
			}
		})
	}
}

func TestBudgetWarningString(t *testing.T) {
	w := CheckBudget(dec("960"), dec("500"), true)
	if got := w.String(); got != "expenses 960.00 exceeded budget 500.00 by 460.00" {
		t.Fatalf("String() = %q", got)
	}
}

func TestGrandTotal(t *testing.T) {
	rows := []core.CategoryTotal{
		{Category: "Rent", Total: dec("900")},
		{Category: "Food", Total: dec("60")},
	}
	if got := GrandTotal(rows); !got.Equal(dec("960")) {
		t.Fatalf("GrandTotal = %s, want 960", got)
	}
	if got := GrandTotal(nil); !got.Equal(decimal.Zero) {
		t.Fatalf("GrandTotal(nil) = %s, want 0", got)
	}
}
