package storage

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/shopspring/decimal"
	_ "modernc.org/sqlite"

	"spendlog/internal/core"
)

const budgetKey = "budget"

// SQLiteRepository owns the durable expense and settings tables.
// Every mutating call commits before returning.
type SQLiteRepository struct {
	db *sql.DB
}

func NewSQLiteRepository(dbPath string) (*SQLiteRepository, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
		return nil, fmt.Errorf("create db directory: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	if err := RunMigrations(dbPath); err != nil {
		db.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}

	return &SQLiteRepository{db: db}, nil
}

func (r *SQLiteRepository) Close() error {
	if r.db != nil {
		return r.db.Close()
	}
	return nil
}

// AddExpense appends a validated record and returns its fresh id.
func (r *SQLiteRepository) AddExpense(ctx context.Context, e core.Expense) (int64, error) {
	res, err := r.db.ExecContext(ctx,
		`INSERT INTO expenses (category, amount, date, note) VALUES (?, ?, ?, ?)`,
		e.Category, e.Amount.InexactFloat64(), e.Date.String(), e.Note)
	if err != nil {
		return 0, fmt.Errorf("insert expense: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("last insert id: %w", err)
	}

	slog.InfoContext(ctx, "Expense saved",
		"id", id,
		"category", e.Category,
		"amount", e.Amount.String(),
		"date", e.Date.String())

	return id, nil
}

// DeleteExpense removes the record with the given id. Deleting an id that
// does not exist is a no-op.
func (r *SQLiteRepository) DeleteExpense(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM expenses WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete expense: %w", err)
	}

	if n, err := res.RowsAffected(); err == nil && n > 0 {
		slog.InfoContext(ctx, "Expense deleted", "id", id)
	}
	return nil
}

// ListExpenses returns records newest first (date desc, id desc),
// optionally filtered to an inclusive date range.
func (r *SQLiteRepository) ListExpenses(ctx context.Context, rng *core.DateRange) ([]core.Expense, error) {
	query := `SELECT id, category, amount, date, note FROM expenses`
	args := []any{}
	if rng != nil {
		query += ` WHERE date >= ? AND date <= ?`
		args = append(args, rng.Start.String(), rng.End.String())
	}
	query += ` ORDER BY date DESC, id DESC`

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query expenses: %w", err)
	}
	defer rows.Close()

	var out []core.Expense
	for rows.Next() {
		e, err := scanExpense(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	return out, rows.Err()
}

func scanExpense(rows *sql.Rows) (core.Expense, error) {
	var (
		e       core.Expense
		amount  float64
		dateStr string
		note    sql.NullString
	)
	if err := rows.Scan(&e.ID, &e.Category, &amount, &dateStr, &note); err != nil {
		return core.Expense{}, fmt.Errorf("scan expense: %w", err)
	}
	date, err := core.ParseDate(dateStr)
	if err != nil {
		return core.Expense{}, fmt.Errorf("stored date %q: %w", dateStr, err)
	}
	e.Amount = decimal.NewFromFloat(amount)
	e.Date = date
	e.Note = note.String
	return e, nil
}

// SumRange totals amounts over an inclusive date range. Zero when empty.
func (r *SQLiteRepository) SumRange(ctx context.Context, rng core.DateRange) (decimal.Decimal, error) {
	var total sql.NullFloat64
	err := r.db.QueryRowContext(ctx,
		`SELECT SUM(amount) FROM expenses WHERE date >= ? AND date <= ?`,
		rng.Start.String(), rng.End.String()).Scan(&total)
	if err != nil {
		return decimal.Zero, fmt.Errorf("sum range: %w", err)
	}
	if !total.Valid {
		return decimal.Zero, nil
	}
	return decimal.NewFromFloat(total.Float64), nil
}

// MonthlyTotal sums amounts from the 1st of now's month through today.
func (r *SQLiteRepository) MonthlyTotal(ctx context.Context, now time.Time) (decimal.Decimal, error) {
	today := core.DateOf(now)
	return r.SumRange(ctx, core.DateRange{Start: today.FirstOfMonth(), End: today})
}

// CategoryTotals groups amounts by category over an inclusive date range,
// sorted by total descending with category name as a deterministic
// tie-break.
func (r *SQLiteRepository) CategoryTotals(ctx context.Context, rng core.DateRange) ([]core.CategoryTotal, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT category, SUM(amount) AS total
		 FROM expenses
		 WHERE date >= ? AND date <= ?
		 GROUP BY category
		 ORDER BY total DESC, category ASC`,
		rng.Start.String(), rng.End.String())
	if err != nil {
		return nil, fmt.Errorf("query category totals: %w", err)
	}
	defer rows.Close()

	var out []core.CategoryTotal
	for rows.Next() {
		var (
			name  string
			total float64
		)
		if err := rows.Scan(&name, &total); err != nil {
			return nil, fmt.Errorf("scan category total: %w", err)
		}
		out = append(out, core.CategoryTotal{
			Category: name,
			Total:    decimal.NewFromFloat(total),
		})
	}
	return out, rows.Err()
}

// SetBudget overwrites the single monthly budget value.
func (r *SQLiteRepository) SetBudget(ctx context.Context, amount decimal.Decimal) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT OR REPLACE INTO settings (key, value) VALUES (?, ?)`,
		budgetKey, amount.String())
	if err != nil {
		return fmt.Errorf("set budget: %w", err)
	}

	slog.InfoContext(ctx, "Budget updated", "budget", amount.String())
	return nil
}

// GetBudget returns the configured budget, or ok=false when none is set.
func (r *SQLiteRepository) GetBudget(ctx context.Context) (decimal.Decimal, bool, error) {
	var value string
	err := r.db.QueryRowContext(ctx,
		`SELECT value FROM settings WHERE key = ?`, budgetKey).Scan(&value)
	if err == sql.ErrNoRows {
		return decimal.Zero, false, nil
	}
	if err != nil {
		return decimal.Zero, false, fmt.Errorf("get budget: %w", err)
	}

	budget, err := decimal.NewFromString(value)
	if err != nil {
		return decimal.Zero, false, fmt.Errorf("stored budget %q: %w", value, err)
	}
	return budget, true, nil
}
