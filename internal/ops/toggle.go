package ops

import (
	"context"
	"fmt"
	"slices"
	"strings"

	"go.uber.org/zap"

	"github.com/hpungsan/habits/internal/errors"
	"github.com/hpungsan/habits/internal/habit"
	"github.com/hpungsan/habits/internal/stats"
)

// ToggleInput contains parameters for the Toggle operation.
type ToggleInput struct {
	ID  string
	Day *habit.Day // default: today
}

// ToggleOutput contains the result of the Toggle operation.
type ToggleOutput struct {
	ID        string    `json:"id"`
	Day       habit.Day `json:"day"`
	Completed bool      `json:"completed"` // membership after the toggle
	Habit     HabitView `json:"habit"`
}

// Toggle flips one day's completion for a habit and saves the list.
// Days after today are rejected.
func (t *Tracker) Toggle(ctx context.Context, input ToggleInput) (*ToggleOutput, error) {
	id := strings.TrimSpace(input.ID)
	if id == "" {
		return nil, errors.NewInvalidField("id", "is required")
	}

	t.mu.Lock()
	defer t.mu.Unlock()

	now := t.clock()
	today := habit.DayOf(now, t.loc)
	day := today
	if input.Day != nil {
		day = *input.Day
	}
	if today.Before(day) {
		return nil, errors.NewInvalidField("day", fmt.Sprintf("%s is in the future (today is %s)", day, today))
	}

	idx := t.indexOf(id)
	if idx < 0 {
		return nil, errors.NewNotFound(id)
	}

	next := t.snapshot()
	h := &next[idx]
	h.CompletedDates = stats.ToggleDay(h.CompletedDates, day)

	if err := t.commit(ctx, next); err != nil {
		return nil, err
	}

	completed := slices.Contains(h.CompletedDates, day)
	t.log.Debug("habit toggled",
		zap.String("id", id),
		zap.Stringer("day", day),
		zap.Bool("completed", completed),
	)
	return &ToggleOutput{
		ID:        id,
		Day:       day,
		Completed: completed,
		Habit:     newView(*h, now, t.loc),
	}, nil
}
