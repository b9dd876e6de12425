package ops

import (
	"context"
	"strings"

	"github.com/hpungsan/habits/internal/errors"
	"github.com/hpungsan/habits/internal/habit"
	"github.com/hpungsan/habits/internal/stats"
)

// FetchInput contains parameters for the Fetch operation.
type FetchInput struct {
	ID          string
	HistoryDays int // default: 0 (no history grid)
}

// FetchOutput contains the result of the Fetch operation.
type FetchOutput struct {
	HabitView
	History []bool    `json:"history,omitempty"` // oldest first, ending Today
	Today   habit.Day `json:"today"`             // the day the stats and history were computed for
}

// Fetch retrieves one habit by ID.
func (t *Tracker) Fetch(_ context.Context, input FetchInput) (*FetchOutput, error) {
	id := strings.TrimSpace(input.ID)
	if id == "" {
		return nil, errors.NewInvalidField("id", "is required")
	}
	if input.HistoryDays < 0 || input.HistoryDays > MaxReportDays {
		return nil, errors.NewInvalidField("history_days", "must be between 0 and 90")
	}

	t.mu.Lock()
	idx := t.indexOf(id)
	if idx < 0 {
		t.mu.Unlock()
		return nil, errors.NewNotFound(id)
	}
	h := t.habits[idx].Clone()
	t.mu.Unlock()

	now := t.clock()
	out := &FetchOutput{HabitView: newView(h, now, t.loc), Today: habit.DayOf(now, t.loc)}
	if input.HistoryDays > 0 {
		out.History = stats.History(h.CompletedDates, input.HistoryDays, now, t.loc)
	}
	return out, nil
}
