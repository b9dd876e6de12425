package habit

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hpungsan/habits/internal/errors"
)

func TestNormalizeName(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"trim whitespace", "  Read  ", "Read"},
		{"collapse internal whitespace", "Morning    Exercise", "Morning Exercise"},
		{"case preserved", "  Drink WATER ", "Drink WATER"},
		{"tabs and newlines", "Walk\t\n  dog", "Walk dog"},
		{"empty string", "", ""},
		{"only whitespace", "   \t\n   ", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := NormalizeName(tt.input); got != tt.want {
				t.Errorf("NormalizeName(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestParseCategory(t *testing.T) {
	tests := []struct {
		input   string
		want    Category
		wantErr bool
	}{
		{"Health", Health, false},
		{"productivity", Productivity, false},
		{"  LEARNING ", Learning, false},
		{"fitness", Fitness, false},
		{"Mindfulness", Mindfulness, false},
		{"Chores", "", true},
		{"", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseCategory(tt.input)
			if tt.wantErr {
				require.Error(t, err)
				assert.True(t, errors.Is(err, errors.ErrInvalidRequest))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestCategory_Valid(t *testing.T) {
	for _, c := range Categories {
		assert.True(t, c.Valid(), "category %q", c)
	}
	assert.False(t, Category("health").Valid(), "lowercase spelling is not canonical")
	assert.False(t, Category("").Valid())
}

func TestHabit_Validate(t *testing.T) {
	d := NewDay(2026, time.October, 17)
	tests := []struct {
		name    string
		habit   Habit
		wantErr string
	}{
		{
			name:  "valid",
			habit: Habit{ID: "a", Name: "Read", Category: Learning, CompletedDates: []Day{d, d.AddDays(-1)}},
		},
		{
			name:    "missing id",
			habit:   Habit{Name: "Read", Category: Learning},
			wantErr: "id",
		},
		{
			name:    "blank name",
			habit:   Habit{ID: "a", Name: "   ", Category: Learning},
			wantErr: "name",
		},
		{
			name:    "unknown category",
			habit:   Habit{ID: "a", Name: "Read", Category: "Chores"},
			wantErr: "category",
		},
		{
			name:    "duplicate day",
			habit:   Habit{ID: "a", Name: "Read", Category: Learning, CompletedDates: []Day{d, d}},
			wantErr: "completedDates",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.habit.Validate()
			if tt.wantErr == "" {
				require.NoError(t, err)
				return
			}
			require.Error(t, err)
			var hErr *errors.HabitError
			require.ErrorAs(t, err, &hErr)
			assert.Equal(t, tt.wantErr, hErr.Details["field"])
		})
	}
}

func TestHabit_Repair(t *testing.T) {
	d := NewDay(2026, time.October, 17)
	h := Habit{
		ID:             "a",
		Name:           "  Morning \t run ",
		Category:       "fitness",
		CompletedDates: []Day{d, d.AddDays(-1), d},
	}
	orig := h.CompletedDates

	h.Repair()

	assert.Equal(t, "Morning run", h.Name)
	assert.Equal(t, Fitness, h.Category)
	assert.Equal(t, []Day{d, d.AddDays(-1)}, h.CompletedDates)
	assert.Equal(t, []Day{d, d.AddDays(-1), d}, orig, "repair must not rewrite the caller's slice")
	require.NoError(t, h.Validate())
}

func TestHabit_RepairLeavesUnfixableFields(t *testing.T) {
	h := Habit{ID: "a", Name: "   ", Category: "Sports"}

	h.Repair()

	assert.Equal(t, Category("Sports"), h.Category)
	assert.NotNil(t, h.CompletedDates)
	require.Error(t, h.Validate())
}

func TestHabit_Clone(t *testing.T) {
	d := NewDay(2026, time.October, 17)
	orig := Habit{ID: "a", Name: "Read", Category: Learning, CompletedDates: []Day{d}}

	c := orig.Clone()
	c.CompletedDates[0] = d.AddDays(1)

	assert.Equal(t, d, orig.CompletedDates[0], "clone must not share the backing array")

	empty := Habit{CompletedDates: []Day{}}
	assert.NotNil(t, empty.Clone().CompletedDates, "empty slice stays non-nil")
}

func TestHabit_JSONShape(t *testing.T) {
	h := Habit{
		ID:             "01J0000000000000000000000A",
		Name:           "Morning Exercise",
		Category:       Fitness,
		CompletedDates: []Day{NewDay(2026, time.October, 16), NewDay(2026, time.October, 17)},
		CreatedAt:      time.Date(2026, time.October, 1, 8, 30, 0, 0, time.UTC),
	}

	data, err := json.Marshal(h)
	require.NoError(t, err)
	assert.JSONEq(t, `{
		"id": "01J0000000000000000000000A",
		"name": "Morning Exercise",
		"category": "Fitness",
		"completedDates": ["2026-10-16", "2026-10-17"],
		"createdAt": "2026-10-01T08:30:00Z"
	}`, string(data))

	var back Habit
	require.NoError(t, json.Unmarshal(data, &back))
	assert.Equal(t, h, back)
}

func TestHabit_UnmarshalLegacyBlob(t *testing.T) {
	blob := `{
		"id": 1760688000000,
		"name": "Meditate",
		"category": "Mindfulness",
		"completedDates": ["Fri Oct 16 2026", "Sat Oct 17 2026"],
		"createdAt": "2026-10-15T09:12:45.123Z"
	}`

	var h Habit
	require.NoError(t, json.Unmarshal([]byte(blob), &h))

	assert.Equal(t, "1760688000000", h.ID)
	assert.Equal(t, Mindfulness, h.Category)
	assert.Equal(t, []Day{NewDay(2026, time.October, 16), NewDay(2026, time.October, 17)}, h.CompletedDates)
	assert.Equal(t, 123*time.Millisecond, time.Duration(h.CreatedAt.Nanosecond()))
}

func TestHabit_UnmarshalRejectsBadDay(t *testing.T) {
	var h Habit
	err := json.Unmarshal([]byte(`{"id":"x","name":"n","category":"Health","completedDates":["yesterday"]}`), &h)
	require.Error(t, err)
}
