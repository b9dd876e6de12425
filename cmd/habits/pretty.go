package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/hpungsan/habits/internal/ops"
	"github.com/hpungsan/habits/internal/stats"
	"github.com/hpungsan/habits/internal/tui"
)

var (
	colorBorder = lipgloss.Color("#575653")
	colorText   = lipgloss.Color("#FFFCF0")
	colorMuted  = lipgloss.Color("#878580")
	colorAccent = lipgloss.Color("#6366F1")
	colorDone   = lipgloss.Color("#22C55E")

	headerStyle = lipgloss.NewStyle().Bold(true).Foreground(colorAccent).Padding(0, 1)
	cellStyle   = lipgloss.NewStyle().Foreground(colorText).Padding(0, 1)
	mutedStyle  = lipgloss.NewStyle().Foreground(colorMuted)
	doneStyle   = lipgloss.NewStyle().Foreground(colorDone).Bold(true)
)

// newTable returns a rounded table with the shared header and cell styles.
func newTable(headers ...string) *table.Table {
	return table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorBorder)).
		Headers(headers...).
		StyleFunc(func(row, _ int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle
			}
			return cellStyle
		})
}

// printHabits renders one row per habit.
func printHabits(w io.Writer, items []ops.HabitView) error {
	t := newTable("ID", "Name", "Category", "Today", "Streak", "Rate")
	for _, h := range items {
		check := "[ ]"
		if h.CompletedToday {
			check = doneStyle.Render("[✓]")
		}
		t.Row(
			h.ID,
			h.Name,
			lipgloss.NewStyle().Foreground(tui.CategoryColor(h.Category)).Render(string(h.Category)),
			check,
			pluralDays(h.Streak),
			fmt.Sprintf("%d%%", h.CompletionRate),
		)
	}
	_, err := fmt.Fprintln(w, t.Render())
	return err
}

// printSummary renders the three aggregate figures.
func printSummary(w io.Writer, s stats.Summary, today string) error {
	t := newTable("Total habits", "Completed today", "Best streak").
		Row(fmt.Sprintf("%d", s.Total), fmt.Sprintf("%d", s.CompletedToday), pluralDays(s.BestStreak))
	_, err := fmt.Fprintf(w, "%s\n%s\n", mutedStyle.Render("As of "+today), t.Render())
	return err
}

// printDetail renders one habit's fields and its history grid.
func printDetail(w io.Writer, h *ops.FetchOutput) error {
	t := newTable("Field", "Value").
		Row("ID", h.ID).
		Row("Name", h.Name).
		Row("Category", string(h.Category)).
		Row("Created", h.CreatedAt.Local().Format("2006-01-02 15:04")).
		Row("Streak", pluralDays(h.Streak)).
		Row("Completion", fmt.Sprintf("%d%%", h.CompletionRate)).
		Row("Done today", yesNo(h.CompletedToday))

	var b strings.Builder
	b.WriteString(t.Render())
	b.WriteString("\n")

	if n := len(h.History); n > 0 {
		start := h.Today.AddDays(-(n - 1))
		b.WriteString(mutedStyle.Render(fmt.Sprintf("%s to %s", start, h.Today)))
		b.WriteString("\n")
		for _, done := range h.History {
			if done {
				b.WriteString(doneStyle.Render("✓"))
			} else {
				b.WriteString(mutedStyle.Render("·"))
			}
		}
		b.WriteString("\n")
	}

	_, err := io.WriteString(w, b.String())
	return err
}

func yesNo(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}

func pluralDays(n int) string {
	if n == 1 {
		return "1 day"
	}
	return fmt.Sprintf("%d days", n)
}
