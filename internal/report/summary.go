package report

import (
	"github.com/shopspring/decimal"

	"spendlog/internal/core"
)

// Summary is the result of a period report: per-category totals sorted by
// total descending, the grand total, and an optional budget warning.
type Summary struct {
	Period  core.Period
	Range   core.DateRange
	Rows    []core.CategoryTotal
	Total   decimal.Decimal
	Warning *BudgetWarning
}

// BudgetWarning reports a total that strictly exceeded the configured
// monthly budget.
type BudgetWarning struct {
	Total    decimal.Decimal
	Limit    decimal.Decimal
	Exceeded decimal.Decimal
}

func (w *BudgetWarning) String() string {
	return "expenses " + core.FormatAmount(w.Total) +
		" exceeded budget " + core.FormatAmount(w.Limit) +
		" by " + core.FormatAmount(w.Exceeded)
}

// CheckBudget compares a computed total against the budget limit.
// It returns nil when no budget is configured or the total does not
// strictly exceed it.
func CheckBudget(total, limit decimal.Decimal, configured bool) *BudgetWarning {
	if !configured || total.Cmp(limit) <= 0 {
		return nil
	}
	return &BudgetWarning{
		Total:    total,
		Limit:    limit,
		Exceeded: total.Sub(limit),
	}
}

// GrandTotal sums per-category totals.
func GrandTotal(rows []core.CategoryTotal) decimal.Decimal {
	total := decimal.Zero
	for _, r := range rows {
		total = total.Add(r.Total)
	}
	return total
}
