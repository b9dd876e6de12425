package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/hpungsan/habits/internal/ops"
)

const (
	defaultWidth = 80
	cardWidth    = 24
	nameWidth    = 28
)

// View implements tea.Model.
func (a App) View() string {
	if a.quitting {
		return ""
	}

	var b strings.Builder
	b.WriteString(a.viewHeader())
	b.WriteString("\n\n")

	if a.form != nil {
		b.WriteString(a.form.View())
		b.WriteString("\n")
		b.WriteString(lipgloss.NewStyle().Foreground(theme.TextDim).Render("esc to cancel"))
		return b.String()
	}

	if !a.loaded && a.err == nil {
		b.WriteString(lipgloss.NewStyle().Foreground(theme.TextMuted).Render("Loading habits..."))
		return b.String()
	}

	b.WriteString(a.viewCards())
	b.WriteString("\n\n")

	if len(a.items) == 0 {
		b.WriteString(a.viewEmpty())
	} else {
		for i, h := range a.items {
			b.WriteString(a.viewRow(h, i == a.cursor))
			b.WriteString("\n")
		}
	}

	b.WriteString("\n")
	b.WriteString(a.viewStatus())
	b.WriteString("\n")
	b.WriteString(a.help.View(a.keys))
	return b.String()
}

func (a App) viewHeader() string {
	title := lipgloss.NewStyle().Foreground(theme.Accent).Bold(true).Render("Habit Tracker")
	if a.today == "" {
		return title
	}
	date := lipgloss.NewStyle().Foreground(theme.TextMuted).Render(a.today)
	return title + "  " + date
}

// viewCards renders the three summary cards side by side.
func (a App) viewCards() string {
	cards := []string{
		metricCard("Total habits", fmt.Sprintf("%d", a.summary.Total)),
		metricCard("Completed today", fmt.Sprintf("%d", a.summary.CompletedToday)),
		metricCard("Best streak", pluralDays(a.summary.BestStreak)),
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, cards...)
}

func metricCard(label, value string) string {
	body := lipgloss.NewStyle().Foreground(theme.TextMuted).Render(label) + "\n" +
		lipgloss.NewStyle().Foreground(theme.TextPrimary).Bold(true).Render(value)
	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(theme.Border).
		Padding(0, 1).
		Width(cardWidth).
		Render(body)
}

func (a App) viewEmpty() string {
	style := lipgloss.NewStyle().
		Foreground(theme.TextMuted).
		Width(a.contentWidth()).
		Align(lipgloss.Center).
		Padding(1, 0)
	return style.Render("No habits yet. Create your first one!\nPress a to add a habit.")
}

func (a App) viewRow(h ops.HabitView, selected bool) string {
	cursor := "  "
	if selected {
		cursor = lipgloss.NewStyle().Foreground(theme.Accent).Bold(true).Render("› ")
	}

	check := lipgloss.NewStyle().Foreground(theme.TextDim).Render("[ ]")
	if h.CompletedToday {
		check = lipgloss.NewStyle().Foreground(theme.Done).Bold(true).Render("[✓]")
	}

	nameStyle := lipgloss.NewStyle().Foreground(theme.TextPrimary).Width(nameWidth)
	if selected {
		nameStyle = nameStyle.Bold(true)
	}

	streak := lipgloss.NewStyle().Foreground(theme.Streak).Render(fmt.Sprintf("🔥 %-8s", pluralDays(h.Streak)))
	rate := lipgloss.NewStyle().Foreground(theme.TextMuted).Render(fmt.Sprintf("%3d%%", h.CompletionRate))

	return cursor + check + " " + nameStyle.Render(truncate(h.Name, nameWidth-1)) + " " +
		categoryBadge(h.Category) + "  " + streak + " " + rate
}

func (a App) viewStatus() string {
	if a.err != nil {
		return lipgloss.NewStyle().Foreground(theme.Error).Render("Error: " + errorText(a.err))
	}
	if a.status != "" {
		return lipgloss.NewStyle().Foreground(theme.Done).Render(a.status)
	}
	return ""
}

func (a App) contentWidth() int {
	if a.width <= 0 {
		return defaultWidth
	}
	return a.width
}

func pluralDays(n int) string {
	if n == 1 {
		return "1 day"
	}
	return fmt.Sprintf("%d days", n)
}

// truncate shortens s to at most n runes, marking the cut with an ellipsis.
func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	if n <= 1 {
		return string(r[:n])
	}
	return string(r[:n-1]) + "…"
}
