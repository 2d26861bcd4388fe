// Package service wires the ledger store and the reporting engine into the
// operation contract consumed by the front ends.
package service

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"spendlog/internal/core"
	"spendlog/internal/export"
	"spendlog/internal/report"
)

// Repository is the persistence contract the ledger operates on.
// SQLiteRepository and MemoryRepository both satisfy it.
type Repository interface {
	AddExpense(ctx context.Context, e core.Expense) (int64, error)
	DeleteExpense(ctx context.Context, id int64) error
	ListExpenses(ctx context.Context, rng *core.DateRange) ([]core.Expense, error)
	SumRange(ctx context.Context, rng core.DateRange) (decimal.Decimal, error)
	MonthlyTotal(ctx context.Context, now time.Time) (decimal.Decimal, error)
	CategoryTotals(ctx context.Context, rng core.DateRange) ([]core.CategoryTotal, error)
	SetBudget(ctx context.Context, amount decimal.Decimal) error
	GetBudget(ctx context.Context) (decimal.Decimal, bool, error)
	Close() error
}

// AddInput carries the raw field values of an "add expense" request.
// Date may be empty, in which case today's date is used.
type AddInput struct {
	Category string
	Amount   string
	Date     string
	Note     string
}

// AddResult is the outcome of a successful add: the fresh record id and,
// when the month-to-date total exceeds the configured budget, a warning.
type AddResult struct {
	ID      int64
	Warning *report.BudgetWarning
}

// Ledger exposes the core operations behind both front ends.
type Ledger struct {
	repo Repository
	now  func() time.Time
}

func New(repo Repository) *Ledger {
	return &Ledger{repo: repo, now: time.Now}
}

// Add validates and persists an expense, then checks the month-to-date
// total against the budget. The check always runs against the current
// month, even for backdated entries.
func (l *Ledger) Add(ctx context.Context, in AddInput) (AddResult, error) {
	category := strings.TrimSpace(in.Category)
	amount, err := core.ParseAmount(in.Amount)
	if err != nil {
		return AddResult{}, err
	}

	date := core.DateOf(l.now())
	if strings.TrimSpace(in.Date) != "" {
		date, err = core.ParseDate(in.Date)
		if err != nil {
			return AddResult{}, err
		}
	}

	e := core.Expense{
		Category: category,
		Amount:   amount,
		Date:     date,
		Note:     strings.TrimSpace(in.Note),
	}
	if err := e.Validate(); err != nil {
		return AddResult{}, err
	}

	id, err := l.repo.AddExpense(ctx, e)
	if err != nil {
		return AddResult{}, fmt.Errorf("add expense: %w", err)
	}

	warning, err := l.monthBudgetWarning(ctx)
	if err != nil {
		return AddResult{}, err
	}
	if warning != nil {
		slog.WarnContext(ctx, "Monthly budget exceeded",
			"total", warning.Total.String(),
			"budget", warning.Limit.String(),
			"exceeded", warning.Exceeded.String())
	}

	return AddResult{ID: id, Warning: warning}, nil
}

// Entries lists records newest first, optionally limited to a date range.
func (l *Ledger) Entries(ctx context.Context, rng *core.DateRange) ([]core.Expense, error) {
	return l.repo.ListExpenses(ctx, rng)
}

// Delete removes an entry. Deleting an unknown id is not an error.
func (l *Ledger) Delete(ctx context.Context, id int64) error {
	return l.repo.DeleteExpense(ctx, id)
}

// Summary computes per-category totals for a period, the grand total, and
// a budget warning when the period total exceeds the configured budget.
func (l *Ledger) Summary(ctx context.Context, period core.Period) (report.Summary, error) {
	rng, err := report.ResolvePeriod(period, l.now())
	if err != nil {
		return report.Summary{}, err
	}

	rows, err := l.repo.CategoryTotals(ctx, rng)
	if err != nil {
		return report.Summary{}, fmt.Errorf("summarize %s: %w", period, err)
	}

	total := report.GrandTotal(rows)
	budget, ok, err := l.repo.GetBudget(ctx)
	if err != nil {
		return report.Summary{}, err
	}

	return report.Summary{
		Period:  period,
		Range:   rng,
		Rows:    rows,
		Total:   total,
		Warning: report.CheckBudget(total, budget, ok),
	}, nil
}

// MonthToDateTotal sums the current calendar month through today.
func (l *Ledger) MonthToDateTotal(ctx context.Context) (decimal.Decimal, error) {
	return l.repo.MonthlyTotal(ctx, l.now())
}

// SetBudget overwrites the monthly budget limit.
func (l *Ledger) SetBudget(ctx context.Context, amount string) error {
	budget, err := core.ParseAmount(amount)
	if err != nil {
		return err
	}
	return l.repo.SetBudget(ctx, budget)
}

// Budget returns the configured budget, or ok=false when unset.
func (l *Ledger) Budget(ctx context.Context) (decimal.Decimal, bool, error) {
	return l.repo.GetBudget(ctx)
}

// ExportCSV writes entries (optionally range-filtered) to a CSV file.
func (l *Ledger) ExportCSV(ctx context.Context, path string, rng *core.DateRange) error {
	entries, err := l.repo.ListExpenses(ctx, rng)
	if err != nil {
		return fmt.Errorf("export: %w", err)
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create export file: %w", err)
	}

	if err := export.Write(f, entries); err != nil {
		f.Close()
		return fmt.Errorf("export to %s: %w", path, err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("close export file: %w", err)
	}

	slog.InfoContext(ctx, "Entries exported", "path", path, "count", len(entries))
	return nil
}

// Close releases the underlying store.
func (l *Ledger) Close() error {
	return l.repo.Close()
}

func (l *Ledger) monthBudgetWarning(ctx context.Context) (*report.BudgetWarning, error) {
	budget, ok, err := l.repo.GetBudget(ctx)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, nil
	}

	total, err := l.repo.MonthlyTotal(ctx, l.now())
	if err != nil {
		return nil, err
	}
	return report.CheckBudget(total, budget, true), nil
}
