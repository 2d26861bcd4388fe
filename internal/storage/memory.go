package storage

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/shopspring/decimal"

	"spendlog/internal/core"
)

// MemoryRepository keeps records in memory. It backs the "memory" data
// backend and the front-end tests; semantics match SQLiteRepository.
type MemoryRepository struct {
	mu     sync.Mutex
	nextID int64
	items  []core.Expense
	budget *decimal.Decimal
}

func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{nextID: 1}
}

func (s *MemoryRepository) Close() error { return nil }

func (s *MemoryRepository) AddExpense(_ context.Context, e core.Expense) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	e.ID = s.nextID
	s.nextID++
	s.items = append(s.items, e)
	return e.ID, nil
}

func (s *MemoryRepository) DeleteExpense(_ context.Context, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, e := range s.items {
		if e.ID == id {
			s.items = append(s.items[:i], s.items[i+1:]...)
			return nil
		}
	}
	// Absent ids are a no-op, same as the SQLite store.
	return nil
}

func (s *MemoryRepository) ListExpenses(_ context.Context, rng *core.DateRange) ([]core.Expense, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []core.Expense
	for _, e := range s.items {
		if rng == nil || rng.Contains(e.Date) {
			out = append(out, e)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].Date.Equal(out[j].Date.Time) {
			return out[i].Date.After(out[j].Date.Time)
		}
		return out[i].ID > out[j].ID
	})
	return out, nil
}

func (s *MemoryRepository) SumRange(_ context.Context, rng core.DateRange) (decimal.Decimal, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	total := decimal.Zero
	for _, e := range s.items {
		if rng.Contains(e.Date) {
			total = total.Add(e.Amount)
		}
	}
	return total, nil
}

func (s *MemoryRepository) MonthlyTotal(ctx context.Context, now time.Time) (decimal.Decimal, error) {
	today := core.DateOf(now)
	return s.SumRange(ctx, core.DateRange{Start: today.FirstOfMonth(), End: today})
}

func (s *MemoryRepository) CategoryTotals(_ context.Context, rng core.DateRange) ([]core.CategoryTotal, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	sums := map[string]decimal.Decimal{}
	for _, e := range s.items {
		if rng.Contains(e.Date) {
			sums[e.Category] = sums[e.Category].Add(e.Amount)
		}
	}
	out := make([]core.CategoryTotal, 0, len(sums))
	for name, total := range sums {
		out = append(out, core.CategoryTotal{Category: name, Total: total})
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].Total.Equal(out[j].Total) {
			return out[i].Total.GreaterThan(out[j].Total)
		}
		return out[i].Category < out[j].Category
	})
	return out, nil
}

func (s *MemoryRepository) SetBudget(_ context.Context, amount decimal.Decimal) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.budget = &amount
	return nil
}

func (s *MemoryRepository) GetBudget(_ context.Context) (decimal.Decimal, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.budget == nil {
		return decimal.Zero, false, nil
	}
	return *s.budget, true, nil
}
