// Package tui provides the interactive preview table for computed aggregates.
package tui

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"txrollup/internal/cli"
	"txrollup/internal/model"
)

var (
	frameStyle = lipgloss.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(cli.ColorBorder)

	footerStyle = lipgloss.NewStyle().
			Foreground(cli.ColorTextMuted)
)

// App is the root Bubble Tea model for the aggregate preview.
type App struct {
	table    table.Model
	rows     int
	warnings []string
	quitting bool
}

// NewApp builds the preview table from the computed aggregates. Nothing is
// written to disk; the preview is inspection only.
func NewApp(stats []model.MonthlyStat, warnings []string) App {
	columns := []table.Column{
		{Title: "Customer", Width: 10},
		{Title: "Name", Width: 22},
		{Title: "Month", Width: 8},
		{Title: "Count", Width: 6},
		{Title: "Total", Width: 12},
		{Title: "Average", Width: 12},
	}

	rows := make([]table.Row, 0, len(stats))
	for _, s := range stats {
		rows = append(rows, table.Row{
			strconv.FormatInt(s.CustomerID, 10),
			s.CustomerName,
			s.YearMonth,
			strconv.Itoa(s.TransactionCount),
			cli.FormatAmount(s.TotalAmount),
			cli.FormatAmount(s.AverageAmount),
		})
	}

	t := table.New(
		table.WithColumns(columns),
		table.WithRows(rows),
		table.WithFocused(true),
		table.WithHeight(15),
	)

	styles := table.DefaultStyles()
	styles.Header = styles.Header.
		Bold(true).
		Foreground(cli.ColorAccent).
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(cli.ColorBorder).
		BorderBottom(true)
	styles.Selected = styles.Selected.
		Foreground(cli.ColorText).
		Background(cli.ColorBorder)
	t.SetStyles(styles)

	return App{table: t, rows: len(rows), warnings: warnings}
}

// Init implements tea.Model.
func (a App) Init() tea.Cmd { return nil }

// Update implements tea.Model.
func (a App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "esc", "ctrl+c":
			a.quitting = true
			return a, tea.Quit
		}
	case tea.WindowSizeMsg:
		h := msg.Height - 8
		if h < 3 {
			h = 3
		}
		a.table.SetHeight(h)
	}

	var cmd tea.Cmd
	a.table, cmd = a.table.Update(msg)
	return a, cmd
}

// View implements tea.Model.
func (a App) View() string {
	if a.quitting {
		return ""
	}

	var b strings.Builder
	b.WriteString("\n")
	b.WriteString(cli.RenderTitle(fmt.Sprintf("MONTHLY SUMMARY  %s rows", cli.FormatNumber(int64(a.rows)))))
	b.WriteString("\n")
	b.WriteString(frameStyle.Render(a.table.View()))
	b.WriteString("\n")
	for _, w := range a.warnings {
		b.WriteString(cli.RenderWarning(w))
		b.WriteString("\n")
	}
	b.WriteString(footerStyle.Render("  ↑/↓ scroll · q quit"))
	b.WriteString("\n")
	return b.String()
}
