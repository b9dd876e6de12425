package ops

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hpungsan/habits/internal/errors"
	"github.com/hpungsan/habits/internal/habit"
)

func TestFetch(t *testing.T) {
	tr, seeded := seedTracker(t)

	out, err := tr.Fetch(context.Background(), FetchInput{ID: seeded[0].ID})
	require.NoError(t, err)
	assert.Equal(t, "Meditate", out.Name)
	assert.Nil(t, out.History, "no history unless asked")
}

func TestFetch_History(t *testing.T) {
	tr, clock := newTestTracker(t, &memStore{})
	ctx := context.Background()

	h, err := tr.Create(ctx, CreateInput{Name: "Read"})
	require.NoError(t, err)

	clock.Advance(4 * 24 * time.Hour)
	today := tr.Today()
	for _, d := range []int{0, -1, -3} {
		_, err := tr.Toggle(ctx, ToggleInput{ID: h.ID, Day: dayPtr(today.AddDays(d))})
		require.NoError(t, err)
	}

	out, err := tr.Fetch(ctx, FetchInput{ID: h.ID, HistoryDays: 5})
	require.NoError(t, err)
	assert.Equal(t, today, out.Today)
	assert.Equal(t, []bool{false, true, false, true, true}, out.History)
	assert.Equal(t, 2, out.Streak)
	assert.Equal(t, 75, out.CompletionRate)
}

func TestFetch_TodayMatchesHistoryAcrossMidnight(t *testing.T) {
	day := habit.NewDay(2026, time.October, 17)
	store := &memStore{habits: []habit.Habit{{
		ID:             "a",
		Name:           "Read",
		Category:       habit.Learning,
		CompletedDates: []habit.Day{day},
		CreatedAt:      startOfTest,
	}}}

	// Every read of the clock moves it a second past the last one.
	clock := newFakeClock(time.Date(2026, time.October, 17, 23, 59, 59, 0, time.UTC))
	tick := func() time.Time {
		now := clock.Now()
		clock.Advance(time.Second)
		return now
	}
	tr, err := Open(context.Background(), store, WithClock(tick), WithLocation(testLoc))
	require.NoError(t, err)

	out, err := tr.Fetch(context.Background(), FetchInput{ID: "a", HistoryDays: 2})
	require.NoError(t, err)
	assert.Equal(t, day, out.Today)
	assert.Equal(t, []bool{false, true}, out.History)
	assert.True(t, out.CompletedToday)
	assert.Equal(t, day.AddDays(1), tr.Today(), "clock has crossed midnight since Fetch")
}

func TestFetch_Errors(t *testing.T) {
	tr, seeded := seedTracker(t)
	ctx := context.Background()

	_, err := tr.Fetch(ctx, FetchInput{})
	assert.True(t, errors.Is(err, errors.ErrInvalidRequest))

	_, err = tr.Fetch(ctx, FetchInput{ID: "missing"})
	assert.True(t, errors.Is(err, errors.ErrNotFound))

	_, err = tr.Fetch(ctx, FetchInput{ID: seeded[0].ID, HistoryDays: MaxReportDays + 1})
	assert.True(t, errors.Is(err, errors.ErrInvalidRequest))
}

func TestFetch_ReturnsCopy(t *testing.T) {
	tr, seeded := seedTracker(t)
	ctx := context.Background()

	_, err := tr.Toggle(ctx, ToggleInput{ID: seeded[0].ID})
	require.NoError(t, err)

	out, err := tr.Fetch(ctx, FetchInput{ID: seeded[0].ID})
	require.NoError(t, err)
	out.CompletedDates[0] = out.CompletedDates[0].AddDays(-10)

	again, err := tr.Fetch(ctx, FetchInput{ID: seeded[0].ID})
	require.NoError(t, err)
	assert.Equal(t, tr.Today(), again.CompletedDates[0])
}
