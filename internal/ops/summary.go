package ops

import (
	"context"

	"github.com/hpungsan/habits/internal/habit"
	"github.com/hpungsan/habits/internal/stats"
)

// SummaryOutput contains the dashboard aggregates.
type SummaryOutput struct {
	stats.Summary
	Today string `json:"today"`
}

// Summary returns total habits, habits completed today and the best streak.
func (t *Tracker) Summary(_ context.Context) (*SummaryOutput, error) {
	t.mu.Lock()
	habits := t.snapshot()
	t.mu.Unlock()

	now := t.clock()
	return &SummaryOutput{
		Summary: stats.Summarize(habits, now, t.loc),
		Today:   habit.DayOf(now, t.loc).String(),
	}, nil
}
