package tui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/hpungsan/habits/internal/habit"
)

// Theme defines the color roles used throughout the TUI.
type Theme struct {
	Border      lipgloss.Color // Subtle borders
	TextDim     lipgloss.Color // Hints, disabled
	TextMuted   lipgloss.Color // Labels, metadata
	TextPrimary lipgloss.Color // Primary content text
	Accent      lipgloss.Color // Cursor, titles
	Done        lipgloss.Color // Completed-today check
	Error       lipgloss.Color
	Streak      lipgloss.Color
}

// theme is the palette in use.
var theme = Theme{
	Border:      lipgloss.Color("#403E3C"),
	TextDim:     lipgloss.Color("#575653"),
	TextMuted:   lipgloss.Color("#878580"),
	TextPrimary: lipgloss.Color("#FFFCF0"),
	Accent:      lipgloss.Color("#6366F1"),
	Done:        lipgloss.Color("#22C55E"),
	Error:       lipgloss.Color("#D14D41"),
	Streak:      lipgloss.Color("#F97316"),
}

// categoryColors gives each category its badge color.
var categoryColors = map[habit.Category]lipgloss.Color{
	habit.Health:       lipgloss.Color("#22C55E"),
	habit.Productivity: lipgloss.Color("#3B82F6"),
	habit.Learning:     lipgloss.Color("#A855F7"),
	habit.Fitness:      lipgloss.Color("#F97316"),
	habit.Mindfulness:  lipgloss.Color("#EC4899"),
}

// CategoryColor returns the badge color for c, falling back to muted text.
func CategoryColor(c habit.Category) lipgloss.Color {
	if col, ok := categoryColors[c]; ok {
		return col
	}
	return theme.TextMuted
}

// categoryBadge renders c as a colored pill.
func categoryBadge(c habit.Category) string {
	return lipgloss.NewStyle().
		Foreground(lipgloss.Color("#FFFFFF")).
		Background(CategoryColor(c)).
		Padding(0, 1).
		Render(string(c))
}
