package stats

import (
	"time"

	"github.com/hpungsan/habits/internal/habit"
)

// HabitStats is the derived view state of one habit.
type HabitStats struct {
	Streak         int  `json:"streak"`
	CompletedToday bool `json:"completed_today"`
	CompletionRate int  `json:"completion_rate"`
}

// Summary is the dashboard view state across all habits.
type Summary struct {
	Total          int `json:"total"`
	CompletedToday int `json:"completed_today"`
	BestStreak     int `json:"best_streak"`
}

// Describe computes all per-habit statistics as of now.
func Describe(h habit.Habit, now time.Time, loc *time.Location) HabitStats {
	return HabitStats{
		Streak:         Streak(h.CompletedDates, now, loc),
		CompletedToday: CompletedToday(h.CompletedDates, now, loc),
		CompletionRate: CompletionRate(h.CompletedDates, h.CreatedAt, now),
	}
}

// BestStreak returns the longest current streak, or 0 for no habits.
func BestStreak(habits []habit.Habit, now time.Time, loc *time.Location) int {
	best := 0
	for _, h := range habits {
		best = max(best, Streak(h.CompletedDates, now, loc))
	}
	return best
}

// CompletedTodayCount returns how many habits are completed today.
func CompletedTodayCount(habits []habit.Habit, now time.Time, loc *time.Location) int {
	n := 0
	for _, h := range habits {
		if CompletedToday(h.CompletedDates, now, loc) {
			n++
		}
	}
	return n
}

// Summarize computes the dashboard summary.
func Summarize(habits []habit.Habit, now time.Time, loc *time.Location) Summary {
	return Summary{
		Total:          len(habits),
		CompletedToday: CompletedTodayCount(habits, now, loc),
		BestStreak:     BestStreak(habits, now, loc),
	}
}

// History reports completion for each of the n days ending today, oldest
// first. n <= 0 yields an empty slice.
func History(completed []habit.Day, n int, now time.Time, loc *time.Location) []bool {
	if n <= 0 {
		return []bool{}
	}
	set := daySet(completed)
	today := habit.DayOf(now, loc)
	out := make([]bool, n)
	for i := range n {
		out[i] = set[today.AddDays(i-n+1)]
	}
	return out
}
