// Package tui implements the interactive terminal front end. It is a thin
// prompt loop over the service layer; every action is a one-shot
// synchronous call.
package tui

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"spendlog/internal/core"
	"spendlog/internal/report"
	"spendlog/internal/service"
)

type mode int

const (
	modeMenu mode = iota
	modeAdd
	modeEntries
	modeSummary
	modeBudget
	modeDelete
	modeExport
)

var menuItems = []string{
	"Add expense",
	"Show entries",
	"Weekly summary",
	"Monthly summary",
	"Set budget",
	"Delete entry",
	"Export CSV",
	"Quit",
}

var (
	titleStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("6"))
	cursorStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("5"))
	successStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("2"))
	warnStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("3"))
	errStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("1"))
	helpStyle    = lipgloss.NewStyle().Faint(true)
	totalStyle   = lipgloss.NewStyle().Bold(true)
)

// Model is the Bubble Tea model for the whole prompt loop.
type Model struct {
	ledger *service.Ledger

	mode    mode
	cursor  int
	inputs  []textinput.Model
	focus   int
	entries []core.Expense
	summary *report.Summary

	status  string
	warning string
	err     error
}

func NewModel(ledger *service.Ledger) Model {
	return Model{ledger: ledger}
}

func (m Model) Init() tea.Cmd {
	return textinput.Blink
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return m.updateInputs(msg)
	}

	switch m.mode {
	case modeMenu:
		return m.updateMenu(key)
	case modeEntries, modeSummary:
		// Any key returns to the menu.
		m.mode = modeMenu
		return m, nil
	default:
		return m.updateForm(key)
	}
}

func (m Model) updateMenu(key tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch key.String() {
	case "ctrl+c", "q":
		return m, tea.Quit
	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}
	case "down", "j":
		if m.cursor < len(menuItems)-1 {
			m.cursor++
		}
	case "enter":
		return m.selectMenuItem()
	}
	return m, nil
}

func (m Model) selectMenuItem() (tea.Model, tea.Cmd) {
	m.status, m.warning, m.err = "", "", nil
	ctx := context.Background()

	switch m.cursor {
	case 0: // add
		m.startForm(modeAdd,
			field("Category", "Food"),
			field("Amount", "12.50"),
			field("Date (blank for today)", core.Today().String()),
			field("Note", ""))
	case 1: // entries
		entries, err := m.ledger.Entries(ctx, nil)
		m.entries, m.err = entries, err
		m.mode = modeEntries
	case 2, 3: // summaries
		period := core.Weekly
		if m.cursor == 3 {
			period = core.Monthly
		}
		sum, err := m.ledger.Summary(ctx, period)
		if err != nil {
			m.err = err
		} else {
			m.summary = &sum
		}
		m.mode = modeSummary
	case 4: // budget
		m.startForm(modeBudget, field("Monthly budget", "1000"))
	case 5: // delete
		m.startForm(modeDelete, field("Entry id", "1"))
	case 6: // export
		m.startForm(modeExport,
			field("File path", "spendlog.csv"),
			field("Start date (optional)", ""),
			field("End date (optional)", ""))
	case 7:
		return m, tea.Quit
	}
	return m, nil
}

func field(prompt, placeholder string) textinput.Model {
	ti := textinput.New()
	ti.Prompt = prompt + ": "
	ti.Placeholder = placeholder
	ti.CharLimit = 200
	return ti
}

func (m *Model) startForm(target mode, fields ...textinput.Model) {
	m.mode = target
	m.inputs = fields
	m.focus = 0
	m.inputs[0].Focus()
}

func (m Model) updateForm(key tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch key.String() {
	case "ctrl+c":
		return m, tea.Quit
	case "esc":
		m.mode = modeMenu
		m.inputs = nil
		return m, nil
	case "enter":
		if m.focus == len(m.inputs)-1 {
			return m.submitForm()
		}
		return m.cycleFocus(1)
	case "tab", "down":
		return m.cycleFocus(1)
	case "shift+tab", "up":
		return m.cycleFocus(-1)
	}
	return m.updateInputs(key)
}

func (m Model) cycleFocus(delta int) (tea.Model, tea.Cmd) {
	m.inputs[m.focus].Blur()
	m.focus = (m.focus + delta + len(m.inputs)) % len(m.inputs)
	return m, m.inputs[m.focus].Focus()
}

func (m Model) updateInputs(msg tea.Msg) (tea.Model, tea.Cmd) {
	if len(m.inputs) == 0 {
		return m, nil
	}
	cmds := make([]tea.Cmd, len(m.inputs))
	for i := range m.inputs {
		m.inputs[i], cmds[i] = m.inputs[i].Update(msg)
	}
	return m, tea.Batch(cmds...)
}

func (m Model) submitForm() (tea.Model, tea.Cmd) {
	ctx := context.Background()
	submitted := m.mode
	m.mode = modeMenu
	m.status, m.warning, m.err = "", "", nil

	switch submitted {
	case modeAdd:
		res, err := m.ledger.Add(ctx, service.AddInput{
			Category: m.inputs[0].Value(),
			Amount:   m.inputs[1].Value(),
			Date:     m.inputs[2].Value(),
			Note:     m.inputs[3].Value(),
		})
		if err != nil {
			m.err = err
			break
		}
		m.status = fmt.Sprintf("Expense #%d added.", res.ID)
		if res.Warning != nil {
			m.warning = "Warning: " + res.Warning.String()
		}
	case modeBudget:
		if err := m.ledger.SetBudget(ctx, m.inputs[0].Value()); err != nil {
			m.err = err
			break
		}
		m.status = "Budget set to " + strings.TrimSpace(m.inputs[0].Value())
	case modeDelete:
		id, err := strconv.ParseInt(strings.TrimSpace(m.inputs[0].Value()), 10, 64)
		if err != nil {
			m.err = fmt.Errorf("entry id must be a number")
			break
		}
		if err := m.ledger.Delete(ctx, id); err != nil {
			m.err = err
			break
		}
		m.status = fmt.Sprintf("Entry %d deleted.", id)
	case modeExport:
		rng, err := optionalRange(m.inputs[1].Value(), m.inputs[2].Value())
		if err != nil {
			m.err = err
			break
		}
		path := strings.TrimSpace(m.inputs[0].Value())
		if path == "" {
			m.err = fmt.Errorf("file path cannot be empty")
			break
		}
		if err := m.ledger.ExportCSV(ctx, path, rng); err != nil {
			m.err = err
			break
		}
		m.status = "Exported to " + path
	}

	m.inputs = nil
	return m, nil
}

func optionalRange(startStr, endStr string) (*core.DateRange, error) {
	startStr = strings.TrimSpace(startStr)
	endStr = strings.TrimSpace(endStr)
	if startStr == "" && endStr == "" {
		return nil, nil
	}
	if startStr == "" || endStr == "" {
		return nil, fmt.Errorf("start and end dates must be provided together")
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

func (m Model) View() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("spendlog") + "\n\n")

	switch m.mode {
	case modeMenu:
		m.viewStatus(&b)
		for i, item := range menuItems {
			cursor := "  "
			if i == m.cursor {
				cursor = cursorStyle.Render("> ")
			}
			b.WriteString(cursor + item + "\n")
		}
		b.WriteString(helpStyle.Render("\nup/down: move · enter: select · q: quit\n"))
	case modeEntries:
		m.viewEntries(&b)
	case modeSummary:
		m.viewSummary(&b)
	default:
		for i := range m.inputs {
			b.WriteString(m.inputs[i].View() + "\n")
		}
		b.WriteString(helpStyle.Render("\nenter: next/submit · esc: back\n"))
	}
	return b.String()
}

func (m Model) viewStatus(b *strings.Builder) {
	if m.status != "" {
		b.WriteString(successStyle.Render(m.status) + "\n")
	}
	if m.warning != "" {
		b.WriteString(warnStyle.Render(m.warning) + "\n")
	}
	if m.err != nil {
		b.WriteString(errStyle.Render("Error: "+m.err.Error()) + "\n")
	}
	if m.status != "" || m.warning != "" || m.err != nil {
		b.WriteString("\n")
	}
}

func (m Model) viewEntries(b *strings.Builder) {
	if m.err != nil {
		b.WriteString(errStyle.Render("Error: "+m.err.Error()) + "\n")
	} else if len(m.entries) == 0 {
		b.WriteString("No entries yet.\n")
	} else {
		fmt.Fprintf(b, "%-5s %-12s %-16s %12s  %s\n", "ID", "DATE", "CATEGORY", "AMOUNT", "NOTE")
		for _, e := range m.entries {
			fmt.Fprintf(b, "%-5d %-12s %-16s %12s  %s\n",
				e.ID, e.Date.String(), e.Category, core.FormatAmount(e.Amount), e.Note)
		}
	}
	b.WriteString(helpStyle.Render("\npress any key to go back\n"))
}

func (m Model) viewSummary(b *strings.Builder) {
	if m.err != nil {
		b.WriteString(errStyle.Render("Error: "+m.err.Error()) + "\n")
	} else if m.summary != nil {
		s := m.summary
		fmt.Fprintf(b, "%s summary (%s)\n\n", s.Period, s.Range)
		if len(s.Rows) == 0 {
			b.WriteString("No expenses found for this period.\n")
		}
		for _, row := range s.Rows {
			fmt.Fprintf(b, "  %-16s %12s\n", row.Category, core.FormatAmount(row.Total))
		}
		b.WriteString(totalStyle.Render(fmt.Sprintf("  %-16s %12s", "TOTAL", core.FormatAmount(s.Total))) + "\n")
		if s.Warning != nil {
			b.WriteString(warnStyle.Render("Warning: "+s.Warning.String()) + "\n")
		}
	}
	b.WriteString(helpStyle.Render("\npress any key to go back\n"))
}
