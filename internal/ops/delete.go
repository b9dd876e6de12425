package ops

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"github.com/hpungsan/habits/internal/errors"
)

// DeleteInput contains parameters for the Delete operation.
type DeleteInput struct {
	ID string
}

// DeleteOutput contains the result of the Delete operation.
type DeleteOutput struct {
	Deleted bool   `json:"deleted"`
	ID      string `json:"id"`
}

// Delete removes a habit and its history permanently.
func (t *Tracker) Delete(ctx context.Context, input DeleteInput) (*DeleteOutput, error) {
	id := strings.TrimSpace(input.ID)
	if id == "" {
		return nil, errors.NewInvalidField("id", "is required")
	}

	t.mu.Lock()
	defer t.mu.Unlock()

	idx := t.indexOf(id)
	if idx < 0 {
		return nil, errors.NewNotFound(id)
	}

	cur := t.snapshot()
	next := append(cur[:idx:idx], cur[idx+1:]...)
	if err := t.commit(ctx, next); err != nil {
		return nil, err
	}

	t.log.Debug("habit deleted", zap.String("id", id))
	return &DeleteOutput{
		Deleted: true,
		ID:      id,
	}, nil
}
