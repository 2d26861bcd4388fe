package storage

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"spendlog/internal/core"
)

// repository is the behavior shared by both backends; the same test suite
// runs against each.
type repository interface {
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

func newSQLite(t *testing.T) repository {
	t.Helper()
	repo, err := NewSQLiteRepository(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("open sqlite repository: %v", err)
	}
	t.Cleanup(func() { repo.Close() })
	return repo
}

func backends(t *testing.T) map[string]repository {
	return map[string]repository{
		"sqlite": newSQLite(t),
		"memory": NewMemoryRepository(),
	}
}

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func mustAdd(t *testing.T, repo repository, category, amount, date, note string) int64 {
	t.Helper()
	id, err := repo.AddExpense(context.Background(), core.Expense{
		Category: category,
		Amount:   dec(amount),
		Date:     mustDate(t, date),
		Note:     note,
	})
	if err != nil {
		t.Fatalf("add %s/%s: %v", category, amount, err)
	}
	return id
}

func mustDate(t *testing.T, s string) core.Date {
	t.Helper()
	d, err := core.ParseDate(s)
	if err != nil {
		t.Fatalf("parse date %q: %v", s, err)
	}
	return d
}

func TestAddAndList(t *testing.T) {
	for name, repo := range backends(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()

			id1 := mustAdd(t, repo, "Food", "50", "2024-03-01", "groceries")
			id2 := mustAdd(t, repo, "Rent", "900", "2024-03-02", "")
			id3 := mustAdd(t, repo, "Food", "10", "2024-03-02", "coffee")
			if id1 == id2 || id2 == id3 || id1 == id3 {
				t.Fatalf("ids not unique: %d %d %d", id1, id2, id3)
			}
			if !(id1 < id2 && id2 < id3) {
				t.Fatalf("ids not increasing: %d %d %d", id1, id2, id3)
			}

			entries, err := repo.ListExpenses(ctx, nil)
			if err != nil {
				t.Fatal(err)
			}
			if len(entries) != 3 {
				t.Fatalf("got %d entries, want 3", len(entries))
			}
			// Newest first: date desc, then id desc on ties.
			if entries[0].ID != id3 || entries[1].ID != id2 || entries[2].ID != id1 {
				t.Fatalf("order = %d %d %d, want %d %d %d",
					entries[0].ID, entries[1].ID, entries[2].ID, id3, id2, id1)
			}

			got := entries[2]
			if got.Category != "Food" || !got.Amount.Equal(dec("50")) ||
				got.Date.String() != "2024-03-01" || got.Note != "groceries" {
				t.Fatalf("round trip mismatch: %+v", got)
			}
		})
	}
}

func TestListRangeFilter(t *testing.T) {
	for name, repo := range backends(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			mustAdd(t, repo, "Food", "1", "2024-02-29", "")
			inRange := mustAdd(t, repo, "Food", "2", "2024-03-01", "")
			mustAdd(t, repo, "Food", "4", "2024-04-01", "")

			rng := core.DateRange{Start: mustDate(t, "2024-03-01"), End: mustDate(t, "2024-03-31")}
			entries, err := repo.ListExpenses(ctx, &rng)
			if err != nil {
				t.Fatal(err)
			}
			if len(entries) != 1 || entries[0].ID != inRange {
				t.Fatalf("range filter returned %+v", entries)
			}
		})
	}
}

func TestDeleteIsIdempotent(t *testing.T) {
	for name, repo := range backends(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			id := mustAdd(t, repo, "Food", "50", "2024-03-01", "")

			if err := repo.DeleteExpense(ctx, id); err != nil {
				t.Fatalf("delete: %v", err)
			}
			entries, err := repo.ListExpenses(ctx, nil)
			if err != nil {
				t.Fatal(err)
			}
			for _, e := range entries {
				if e.ID == id {
					t.Fatalf("entry %d still present after delete", id)
				}
			}

			// Second delete of the same id, and a never-issued id: no error.
			if err := repo.DeleteExpense(ctx, id); err != nil {
				t.Fatalf("second delete: %v", err)
			}
			if err := repo.DeleteExpense(ctx, 99999); err != nil {
				t.Fatalf("delete missing id: %v", err)
			}
		})
	}
}

func TestSumRangeAndMonthlyTotal(t *testing.T) {
	for name, repo := range backends(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()

			empty, err := repo.SumRange(ctx, core.DateRange{
				Start: mustDate(t, "2024-03-01"), End: mustDate(t, "2024-03-31")})
			if err != nil {
				t.Fatal(err)
			}
			if !empty.Equal(decimal.Zero) {
				t.Fatalf("empty sum = %s, want 0", empty)
			}

			mustAdd(t, repo, "Food", "50", "2024-03-01", "")
			mustAdd(t, repo, "Rent", "900", "2024-03-02", "")
			mustAdd(t, repo, "Food", "10", "2024-03-03", "")
			mustAdd(t, repo, "Food", "999", "2024-02-28", "") // outside month

			now := time.Date(2024, 3, 15, 12, 0, 0, 0, time.UTC)
			total, err := repo.MonthlyTotal(ctx, now)
			if err != nil {
				t.Fatal(err)
			}
			if !total.Equal(dec("960")) {
				t.Fatalf("monthly total = %s, want 960", total)
			}
		})
	}
}

func TestCategoryTotals(t *testing.T) {
	for name, repo := range backends(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			mustAdd(t, repo, "Food", "50", "2024-03-01", "")
			mustAdd(t, repo, "Rent", "900", "2024-03-02", "")
			mustAdd(t, repo, "Food", "10", "2024-03-03", "")
			mustAdd(t, repo, "Travel", "999", "2024-04-20", "") // outside range

			rng := core.DateRange{Start: mustDate(t, "2024-03-01"), End: mustDate(t, "2024-03-31")}
			rows, err := repo.CategoryTotals(ctx, rng)
			if err != nil {
				t.Fatal(err)
			}
			if len(rows) != 2 {
				t.Fatalf("got %d rows, want 2: %+v", len(rows), rows)
			}
			if rows[0].Category != "Rent" || !rows[0].Total.Equal(dec("900")) {
				t.Fatalf("rows[0] = %+v, want Rent 900", rows[0])
			}
			if rows[1].Category != "Food" || !rows[1].Total.Equal(dec("60")) {
				t.Fatalf("rows[1] = %+v, want Food 60", rows[1])
			}
		})
	}
}

func TestBudgetSettings(t *testing.T) {
	for name, repo := range backends(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()

			if _, ok, err := repo.GetBudget(ctx); err != nil || ok {
				t.Fatalf("fresh store: budget ok=%v err=%v, want unset", ok, err)
			}

			if err := repo.SetBudget(ctx, dec("500.50")); err != nil {
				t.Fatal(err)
			}
			budget, ok, err := repo.GetBudget(ctx)
			if err != nil || !ok || !budget.Equal(dec("500.50")) {
				t.Fatalf("budget = %s ok=%v err=%v, want 500.50", budget, ok, err)
			}

			// Setting again replaces the prior value.
			if err := repo.SetBudget(ctx, dec("1000")); err != nil {
				t.Fatal(err)
			}
			budget, ok, err = repo.GetBudget(ctx)
			if err != nil || !ok || !budget.Equal(dec("1000")) {
				t.Fatalf("budget after replace = %s ok=%v err=%v, want 1000", budget, ok, err)
			}
		})
	}
}

func TestMigrationsAreIdempotent(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "test.db")
	repo, err := NewSQLiteRepository(dbPath)
	if err != nil {
		t.Fatal(err)
	}
	mustAdd(t, repo, "Food", "50", "2024-03-01", "")
	if err := repo.Close(); err != nil {
		t.Fatal(err)
	}

	// Reopening runs migrations again and keeps existing data.
	repo2, err := NewSQLiteRepository(dbPath)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	defer repo2.Close()

	entries, err := repo2.ListExpenses(context.Background(), nil)
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 1 {
		t.Fatalf("got %d entries after reopen, want 1", len(entries))
	}
}
