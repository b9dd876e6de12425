package ops

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/hpungsan/habits/internal/errors"
	"github.com/hpungsan/habits/internal/habit"
)

// CreateInput contains parameters for the Create operation.
type CreateInput struct {
	Name     string // required, trimmed
	Category string // default: Health
}

// Create adds a new habit and saves the list.
func (t *Tracker) Create(ctx context.Context, input CreateInput) (*HabitView, error) {
	name := habit.NormalizeName(input.Name)
	if name == "" {
		return nil, errors.NewInvalidField("name", "must not be empty")
	}
	if n := habit.CountChars(name); n > habit.MaxNameChars {
		return nil, errors.NewInvalidField("name", fmt.Sprintf("too long: %d chars (max %d)", n, habit.MaxNameChars))
	}

	category := habit.DefaultCategory
	if input.Category != "" {
		c, err := habit.ParseCategory(input.Category)
		if err != nil {
			return nil, err
		}
		category = c
	}

	t.mu.Lock()
	defer t.mu.Unlock()

	now := t.clock()
	id, err := t.generateULID(now)
	if err != nil {
		return nil, errors.NewInternal(err)
	}

	h := habit.Habit{
		ID:             id,
		Name:           name,
		Category:       category,
		CompletedDates: []habit.Day{},
		CreatedAt:      now.UTC().Truncate(time.Millisecond),
	}

	next := append(t.snapshot(), h)
	if err := t.commit(ctx, next); err != nil {
		return nil, err
	}

	t.log.Debug("habit created",
		zap.String("id", h.ID),
		zap.String("name", h.Name),
		zap.String("category", string(h.Category)),
	)
	view := newView(h, now, t.loc)
	return &view, nil
}
