package ops

import (
	"context"
	"fmt"
	"strings"

	"github.com/hpungsan/habits/internal/errors"
	"github.com/hpungsan/habits/internal/habit"
	"github.com/hpungsan/habits/internal/stats"
)

// Report window limits
const (
	DefaultReportDays = 7
	MaxReportDays     = 90
)

// ReportInput contains parameters for the Report operation.
type ReportInput struct {
	Days int // default: 7, max: 90
}

// ReportOutput contains the rendered Markdown report.
type ReportOutput struct {
	Markdown string `json:"markdown"`
	Days     int    `json:"days"`
	Today    string `json:"today"`
}

// Report renders a Markdown summary: the aggregate cards followed by one
// table row per habit with a completion grid for the last Days days.
func (t *Tracker) Report(_ context.Context, input ReportInput) (*ReportOutput, error) {
	days := input.Days
	if days == 0 {
		days = DefaultReportDays
	}
	if days < 0 || days > MaxReportDays {
		return nil, errors.NewInvalidField("days", fmt.Sprintf("must be between 1 and %d", MaxReportDays))
	}

	t.mu.Lock()
	habits := t.snapshot()
	t.mu.Unlock()

	now := t.clock()
	today := habit.DayOf(now, t.loc)
	summary := stats.Summarize(habits, now, t.loc)

	var b strings.Builder
	fmt.Fprintf(&b, "# Habit report, %s\n\n", today)
	fmt.Fprintf(&b, "- Total habits: **%d**\n", summary.Total)
	fmt.Fprintf(&b, "- Completed today: **%d**\n", summary.CompletedToday)
	fmt.Fprintf(&b, "- Best streak: **%s**\n\n", pluralDays(summary.BestStreak))

	if len(habits) == 0 {
		b.WriteString("_No habits yet. Create your first one!_\n")
		return &ReportOutput{Markdown: b.String(), Days: days, Today: today.String()}, nil
	}

	fmt.Fprintf(&b, "| Habit | Category | Streak | Completion | %s to %s |\n", today.AddDays(1-days), today)
	b.WriteString("|---|---|---:|---:|---|\n")
	for _, h := range habits {
		s := stats.Describe(h, now, t.loc)
		fmt.Fprintf(&b, "| %s | %s | %s | %d%% | `%s` |\n",
			escapeCell(h.Name), h.Category, pluralDays(s.Streak), s.CompletionRate,
			grid(stats.History(h.CompletedDates, days, now, t.loc)))
	}

	return &ReportOutput{Markdown: b.String(), Days: days, Today: today.String()}, nil
}

// grid renders completion history as ✓ for done and · for missed.
func grid(history []bool) string {
	var b strings.Builder
	for _, done := range history {
		if done {
			b.WriteString("✓")
		} else {
			b.WriteString("·")
		}
	}
	return b.String()
}

func pluralDays(n int) string {
	if n == 1 {
		return "1 day"
	}
	return fmt.Sprintf("%d days", n)
}

// markdownPunct is the ASCII punctuation CommonMark lets a backslash escape.
const markdownPunct = "!\"#$%&'()*+,-./:;<=>?@[\\]^_`{|}~"

// escapeCell backslash-escapes every Markdown punctuation character so a
// habit name renders as literal text inside a table cell.
func escapeCell(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		if strings.ContainsRune(markdownPunct, r) {
			b.WriteByte('\\')
		}
		b.WriteRune(r)
	}
	return b.String()
}
