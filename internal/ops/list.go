package ops

import (
	"context"

	"github.com/hpungsan/habits/internal/habit"
	"github.com/hpungsan/habits/internal/stats"
)

// ListInput contains parameters for the List operation.
type ListInput struct {
	Category string // optional filter
}

// ListOutput contains the result of the List operation.
type ListOutput struct {
	Items   []HabitView   `json:"items"`
	Summary stats.Summary `json:"summary"`
}

// List returns every habit in creation order with its statistics. The
// summary always covers all habits, not just the filtered ones.
func (t *Tracker) List(_ context.Context, input ListInput) (*ListOutput, error) {
	var filter habit.Category
	if input.Category != "" {
		c, err := habit.ParseCategory(input.Category)
		if err != nil {
			return nil, err
		}
		filter = c
	}

	t.mu.Lock()
	habits := t.snapshot()
	t.mu.Unlock()

	now := t.clock()
	items := make([]HabitView, 0, len(habits))
	for _, h := range habits {
		if filter != "" && h.Category != filter {
			continue
		}
		items = append(items, newView(h, now, t.loc))
	}

	return &ListOutput{
		Items:   items,
		Summary: stats.Summarize(habits, now, t.loc),
	}, nil
}
