package ops

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hpungsan/habits/internal/errors"
	"github.com/hpungsan/habits/internal/habit"
)

func seedTracker(t *testing.T) (*Tracker, []*HabitView) {
	t.Helper()
	tr, _ := newTestTracker(t, &memStore{})
	ctx := context.Background()

	var out []*HabitView
	for _, in := range []CreateInput{
		{Name: "Meditate", Category: "Mindfulness"},
		{Name: "Run", Category: "Fitness"},
		{Name: "Stretch", Category: "Fitness"},
	} {
		h, err := tr.Create(ctx, in)
		require.NoError(t, err)
		out = append(out, h)
	}
	return tr, out
}

func TestList_CreationOrder(t *testing.T) {
	tr, seeded := seedTracker(t)

	_, err := tr.Toggle(context.Background(), ToggleInput{ID: seeded[1].ID})
	require.NoError(t, err)

	out, err := tr.List(context.Background(), ListInput{})
	require.NoError(t, err)
	require.Len(t, out.Items, 3)
	for i, item := range out.Items {
		assert.Equal(t, seeded[i].ID, item.ID)
	}
	assert.True(t, out.Items[1].CompletedToday)
	assert.Equal(t, 1, out.Items[1].Streak)

	assert.Equal(t, 3, out.Summary.Total)
	assert.Equal(t, 1, out.Summary.CompletedToday)
	assert.Equal(t, 1, out.Summary.BestStreak)
}

func TestList_CategoryFilter(t *testing.T) {
	tr, _ := seedTracker(t)

	out, err := tr.List(context.Background(), ListInput{Category: "fitness"})
	require.NoError(t, err)
	require.Len(t, out.Items, 2)
	for _, item := range out.Items {
		assert.Equal(t, habit.Fitness, item.Category)
	}
	assert.Equal(t, 3, out.Summary.Total, "summary ignores the filter")
}

func TestList_UnknownCategory(t *testing.T) {
	tr, _ := seedTracker(t)

	_, err := tr.List(context.Background(), ListInput{Category: "Chores"})
	assert.True(t, errors.Is(err, errors.ErrInvalidRequest))
}

func TestList_Empty(t *testing.T) {
	tr, _ := newTestTracker(t, &memStore{})

	out, err := tr.List(context.Background(), ListInput{})
	require.NoError(t, err)
	assert.NotNil(t, out.Items)
	assert.Empty(t, out.Items)
	assert.Zero(t, out.Summary)
}

func TestSummary(t *testing.T) {
	tr, seeded := seedTracker(t)
	ctx := context.Background()

	for _, h := range seeded[:2] {
		_, err := tr.Toggle(ctx, ToggleInput{ID: h.ID})
		require.NoError(t, err)
	}

	out, err := tr.Summary(ctx)
	require.NoError(t, err)
	assert.Equal(t, 3, out.Total)
	assert.Equal(t, 2, out.CompletedToday)
	assert.Equal(t, 1, out.BestStreak)
	assert.Equal(t, "2026-10-17", out.Today)
}
