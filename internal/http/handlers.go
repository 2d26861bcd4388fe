package http

import (
	"errors"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"spendlog/internal/core"
	"spendlog/internal/export"
	"spendlog/internal/service"
)

type entryRow struct {
	ID       int64
	Date     string
	Category string
	Amount   string
	Note     string
}

type indexData struct {
	Today     string
	Entries   []entryRow
	Budget    string
	HasBudget bool
	Message   string
	Warning   string
	Error     string
}

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}
	if s.templates == nil {
		http.Error(w, "templates not loaded", http.StatusInternalServerError)
		return
	}

	entries, err := s.ledger.Entries(r.Context(), nil)
	if err != nil {
		slog.ErrorContext(r.Context(), "List entries error", "error", err)
		http.Error(w, "failed to load entries", http.StatusInternalServerError)
		return
	}

	data := indexData{
		Today:   core.Today().String(),
		Message: r.URL.Query().Get("msg"),
		Warning: r.URL.Query().Get("warning"),
		Error:   r.URL.Query().Get("error"),
	}
	for _, e := range entries {
		data.Entries = append(data.Entries, toRow(e))
	}

	if budget, ok, err := s.ledger.Budget(r.Context()); err != nil {
		slog.ErrorContext(r.Context(), "Read budget error", "error", err)
	} else if ok {
		data.Budget = core.FormatAmount(budget)
		data.HasBudget = true
	}

	if err := s.templates.ExecuteTemplate(w, "index.html", data); err != nil {
		slog.ErrorContext(r.Context(), "Index template execution failed", "error", err)
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

func (s *Server) handleAddExpense(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.Header().Set("Allow", "POST")
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	if err := r.ParseForm(); err != nil {
		redirectWith(w, r, url.Values{"error": {"invalid form data"}})
		return
	}

	res, err := s.ledger.Add(r.Context(), service.AddInput{
		Category: r.Form.Get("category"),
		Amount:   r.Form.Get("amount"),
		Date:     r.Form.Get("date"),
		Note:     r.Form.Get("note"),
	})
	if err != nil {
		slog.WarnContext(r.Context(), "Add expense rejected", "error", err)
		redirectWith(w, r, url.Values{"error": {err.Error()}})
		return
	}

	params := url.Values{"msg": {"expense #" + strconv.FormatInt(res.ID, 10) + " added"}}
	if res.Warning != nil {
		params.Set("warning", res.Warning.String())
	}
	redirectWith(w, r, params)
}

func (s *Server) handleDeleteExpense(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.Header().Set("Allow", "POST")
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	if err := r.ParseForm(); err != nil {
		redirectWith(w, r, url.Values{"error": {"invalid form data"}})
		return
	}

	id, err := strconv.ParseInt(strings.TrimSpace(r.Form.Get("id")), 10, 64)
	if err != nil {
		redirectWith(w, r, url.Values{"error": {"invalid entry id"}})
		return
	}

	if err := s.ledger.Delete(r.Context(), id); err != nil {
		slog.ErrorContext(r.Context(), "Delete entry error", "error", err, "expense_id", id)
		redirectWith(w, r, url.Values{"error": {"failed to delete entry"}})
		return
	}
	redirectWith(w, r, url.Values{"msg": {"entry deleted"}})
}

func (s *Server) handleSetBudget(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.Header().Set("Allow", "POST")
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	if err := r.ParseForm(); err != nil {
		redirectWith(w, r, url.Values{"error": {"invalid form data"}})
		return
	}

	if err := s.ledger.SetBudget(r.Context(), r.Form.Get("amount")); err != nil {
		redirectWith(w, r, url.Values{"error": {err.Error()}})
		return
	}
	redirectWith(w, r, url.Values{"msg": {"budget updated"}})
}

type summaryData struct {
	Period    string
	Range     string
	Rows      []entryRow
	Total     string
	Budget    string
	HasBudget bool
	Warning   string
}

func (s *Server) handleSummary(w http.ResponseWriter, r *http.Request) {
	period, err := core.ParsePeriod(r.URL.Query().Get("period"))
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	sum, err := s.ledger.Summary(r.Context(), period)
	if err != nil {
		slog.ErrorContext(r.Context(), "Summary error", "error", err, "period", string(period))
		http.Error(w, "failed to compute summary", http.StatusInternalServerError)
		return
	}

	data := summaryData{
		Period: string(sum.Period),
		Range:  sum.Range.String(),
		Total:  core.FormatAmount(sum.Total),
	}
	for _, row := range sum.Rows {
		data.Rows = append(data.Rows, entryRow{
			Category: row.Category,
			Amount:   core.FormatAmount(row.Total),
		})
	}
	if budget, ok, err := s.ledger.Budget(r.Context()); err == nil && ok {
		data.Budget = core.FormatAmount(budget)
		data.HasBudget = true
	}
	if sum.Warning != nil {
		data.Warning = sum.Warning.String()
	}

	if s.templates == nil {
		http.Error(w, "templates not loaded", http.StatusInternalServerError)
		return
	}
	if err := s.templates.ExecuteTemplate(w, "summary.html", data); err != nil {
		slog.ErrorContext(r.Context(), "Summary template execution failed", "error", err)
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

func (s *Server) handleExport(w http.ResponseWriter, r *http.Request) {
	rng, err := parseRangeParams(r.URL.Query())
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	entries, err := s.ledger.Entries(r.Context(), rng)
	if err != nil {
		slog.ErrorContext(r.Context(), "Export list error", "error", err)
		http.Error(w, "failed to load entries", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", `attachment; filename="spendlog.csv"`)
	if err := export.Write(w, entries); err != nil {
		slog.ErrorContext(r.Context(), "Export write error", "error", err)
	}
}

// parseRangeParams reads optional start/end query parameters.
// Both must be present for a range filter; neither means "all records".
func parseRangeParams(query url.Values) (*core.DateRange, error) {
	startStr := strings.TrimSpace(query.Get("start"))
	endStr := strings.TrimSpace(query.Get("end"))
	if startStr == "" && endStr == "" {
		return nil, nil
	}
	if startStr == "" || endStr == "" {
		return nil, errors.New("start and end must be provided together")
	}

	start, err := core.ParseDate(startStr)
	if err != nil {
		return nil, err
	}
	end, err := core.ParseDate(endStr)
	if err != nil {
		return nil, err
	}
	return &core.DateRange{Start: start, End: end}, nil
}

func toRow(e core.Expense) entryRow {
	return entryRow{
		ID:       e.ID,
		Date:     e.Date.String(),
		Category: e.Category,
		Amount:   core.FormatAmount(e.Amount),
		Note:     e.Note,
	}
}

func redirectWith(w http.ResponseWriter, r *http.Request, params url.Values) {
	http.Redirect(w, r, "/?"+params.Encode(), http.StatusSeeOther)
}
