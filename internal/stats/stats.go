// Package stats derives read-only statistics from habit completion history.
//
// Every function is pure: it takes the habit data plus the caller's notion
// of "now" and never mutates its input. Calendar days are computed in the
// given location; a nil location means time.Local.
package stats

import (
	"math"
	"time"

	"github.com/hpungsan/habits/internal/habit"
)

// day is the length of the unit used for the completion-rate denominator.
const day = 24 * time.Hour

// Streak counts consecutive completed days walking backward from today.
// The walk starts at today itself, so a habit not yet completed today has
// a streak of 0 no matter how long the run before it was.
func Streak(completed []habit.Day, now time.Time, loc *time.Location) int {
	if len(completed) == 0 {
		return 0
	}
	set := daySet(completed)
	today := habit.DayOf(now, loc)

	streak := 0
	for set[today.AddDays(-streak)] {
		streak++
	}
	return streak
}

// CompletedToday reports whether today's calendar day is in completed.
func CompletedToday(completed []habit.Day, now time.Time, loc *time.Location) bool {
	today := habit.DayOf(now, loc)
	for _, d := range completed {
		if d == today {
			return true
		}
	}
	return false
}

// CompletionRate is the percentage of elapsed days that were completed:
// round(distinct days / ceil(days since createdAt) × 100). The denominator
// is at least 1. The result is not clamped to 100.
func CompletionRate(completed []habit.Day, createdAt, now time.Time) int {
	if len(completed) == 0 {
		return 0
	}
	elapsed := math.Ceil(float64(now.Sub(createdAt)) / float64(day))
	if elapsed < 1 {
		elapsed = 1
	}
	numerator := float64(len(daySet(completed)))
	return int(math.Round(numerator / elapsed * 100))
}

// ToggleDay returns a new slice with d removed if present, or appended if
// absent. completed itself is never modified.
func ToggleDay(completed []habit.Day, d habit.Day) []habit.Day {
	out := make([]habit.Day, 0, len(completed)+1)
	found := false
	for _, c := range completed {
		if c == d {
			found = true
			continue
		}
		out = append(out, c)
	}
	if !found {
		out = append(out, d)
	}
	return out
}

// daySet builds a membership set; duplicates collapse.
func daySet(days []habit.Day) map[habit.Day]bool {
	set := make(map[habit.Day]bool, len(days))
	for _, d := range days {
		set[d] = true
	}
	return set
}
