package ops

import (
	"context"
	"crypto/rand"
	"fmt"
	"sync"
	"time"

	"github.com/oklog/ulid/v2"
	"go.uber.org/zap"

	"github.com/hpungsan/habits/internal/errors"
	"github.com/hpungsan/habits/internal/habit"
	"github.com/hpungsan/habits/internal/stats"
)

// Store loads and saves the whole habit list.
type Store interface {
	LoadHabits(ctx context.Context) ([]habit.Habit, error)
	SaveHabits(ctx context.Context, habits []habit.Habit) error
}

// Clock returns the current instant.
type Clock func() time.Time

// Tracker owns the habit list. It loads the list once in Open, mutates it
// only through Create, Delete and Toggle, and saves after every mutation.
// A failed save rolls the in-memory list back so memory never runs ahead
// of storage.
type Tracker struct {
	mu     sync.Mutex
	store  Store
	habits []habit.Habit
	clock  Clock
	loc    *time.Location
	log    *zap.Logger

	entropy *ulid.MonotonicEntropy
}

// Option configures a Tracker.
type Option func(*Tracker)

// WithClock sets the now() source. Default time.Now.
func WithClock(c Clock) Option {
	return func(t *Tracker) {
		if c != nil {
			t.clock = c
		}
	}
}

// WithLocation sets the zone that decides calendar days. Default time.Local.
func WithLocation(loc *time.Location) Option {
	return func(t *Tracker) {
		if loc != nil {
			t.loc = loc
		}
	}
}

// WithLogger sets the logger. Default discards.
func WithLogger(l *zap.Logger) Option {
	return func(t *Tracker) {
		if l != nil {
			t.log = l
		}
	}
}

// Open loads the habit list from store and returns a Tracker owning it.
func Open(ctx context.Context, store Store, opts ...Option) (*Tracker, error) {
	t := &Tracker{
		store:   store,
		clock:   time.Now,
		loc:     time.Local,
		log:     zap.NewNop(),
		entropy: ulid.Monotonic(rand.Reader, 0),
	}
	for _, opt := range opts {
		opt(t)
	}

	habits, err := store.LoadHabits(ctx)
	if err != nil {
		t.log.Error("load habits failed", zap.Error(err))
		return nil, errors.NewInternal(err)
	}
	if habits == nil {
		habits = []habit.Habit{}
	}
	if err := repairLoaded(habits); err != nil {
		t.log.Error("stored habits are invalid", zap.Error(err))
		return nil, errors.NewInternal(err)
	}
	t.habits = habits
	t.log.Debug("habits loaded", zap.Int("count", len(habits)))
	return t, nil
}

// repairLoaded canonicalizes each stored habit in place and rejects the
// list if a habit still breaks an invariant or two habits share an id.
func repairLoaded(habits []habit.Habit) error {
	ids := make(map[string]bool, len(habits))
	for i := range habits {
		h := &habits[i]
		h.Repair()
		if err := h.Validate(); err != nil {
			return fmt.Errorf("stored habit %d (id %q, name %q): %w", i, h.ID, h.Name, err)
		}
		if ids[h.ID] {
			return fmt.Errorf("stored habit %d (name %q): duplicate id %q", i, h.Name, h.ID)
		}
		ids[h.ID] = true
	}
	return nil
}

// Today returns the current calendar day.
func (t *Tracker) Today() habit.Day {
	return habit.DayOf(t.clock(), t.loc)
}

// commit saves next and, on success, makes it the current list.
// Callers must hold t.mu.
func (t *Tracker) commit(ctx context.Context, next []habit.Habit) error {
	if err := t.store.SaveHabits(ctx, next); err != nil {
		t.log.Error("save habits failed; mutation rolled back", zap.Error(err))
		return errors.NewInternal(err)
	}
	t.habits = next
	return nil
}

// snapshot returns a deep copy of the current list. Callers must hold t.mu.
func (t *Tracker) snapshot() []habit.Habit {
	out := make([]habit.Habit, len(t.habits))
	for i, h := range t.habits {
		out[i] = h.Clone()
	}
	return out
}

// indexOf returns the position of id, or -1. Callers must hold t.mu.
func (t *Tracker) indexOf(id string) int {
	for i := range t.habits {
		if t.habits[i].ID == id {
			return i
		}
	}
	return -1
}

// Habits returns a copy of the current list in creation order.
func (t *Tracker) Habits() []habit.Habit {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.snapshot()
}

// HabitView is a habit together with its derived statistics.
type HabitView struct {
	ID             string         `json:"id"`
	Name           string         `json:"name"`
	Category       habit.Category `json:"category"`
	CompletedDates []habit.Day    `json:"completed_dates"`
	CreatedAt      time.Time      `json:"created_at"`
	Streak         int            `json:"streak"`
	CompletedToday bool           `json:"completed_today"`
	CompletionRate int            `json:"completion_rate"`
}

// newView builds the view of h as of now.
func newView(h habit.Habit, now time.Time, loc *time.Location) HabitView {
	s := stats.Describe(h, now, loc)
	dates := h.CompletedDates
	if dates == nil {
		dates = []habit.Day{}
	}
	return HabitView{
		ID:             h.ID,
		Name:           h.Name,
		Category:       h.Category,
		CompletedDates: dates,
		CreatedAt:      h.CreatedAt,
		Streak:         s.Streak,
		CompletedToday: s.CompletedToday,
		CompletionRate: s.CompletionRate,
	}
}

// generateULID generates a new ULID. Callers must hold t.mu.
func (t *Tracker) generateULID(now time.Time) (string, error) {
	id, err := ulid.New(ulid.Timestamp(now), t.entropy)
	if err != nil {
		return "", err
	}
	return id.String(), nil
}
