package habit

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDayOf_IgnoresTimeOfDay(t *testing.T) {
	loc := time.FixedZone("UTC+2", 2*60*60)
	morning := time.Date(2026, time.October, 17, 8, 0, 0, 0, loc)
	night := time.Date(2026, time.October, 17, 23, 0, 0, 0, loc)

	assert.Equal(t, DayOf(morning, loc), DayOf(night, loc))
	assert.Equal(t, NewDay(2026, time.October, 17), DayOf(night, loc))
}

func TestDayOf_UsesLocation(t *testing.T) {
	// 23:30 UTC on the 17th is already the 18th two hours east.
	instant := time.Date(2026, time.October, 17, 23, 30, 0, 0, time.UTC)
	east := time.FixedZone("UTC+2", 2*60*60)

	assert.Equal(t, NewDay(2026, time.October, 17), DayOf(instant, time.UTC))
	assert.Equal(t, NewDay(2026, time.October, 18), DayOf(instant, east))
}

func TestDay_AddDays(t *testing.T) {
	tests := []struct {
		name string
		from Day
		n    int
		want Day
	}{
		{"next day", NewDay(2026, time.October, 17), 1, NewDay(2026, time.October, 18)},
		{"previous day", NewDay(2026, time.October, 17), -1, NewDay(2026, time.October, 16)},
		{"month boundary", NewDay(2026, time.October, 31), 1, NewDay(2026, time.November, 1)},
		{"year boundary", NewDay(2026, time.January, 1), -1, NewDay(2025, time.December, 31)},
		{"leap day", NewDay(2028, time.February, 28), 1, NewDay(2028, time.February, 29)},
		{"zero", NewDay(2026, time.October, 17), 0, NewDay(2026, time.October, 17)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.from.AddDays(tt.n))
		})
	}
}

func TestDay_AddDaysAcrossDST(t *testing.T) {
	ny, err := time.LoadLocation("America/New_York")
	if err != nil {
		t.Skipf("tzdata unavailable: %v", err)
	}
	// DST ends 2026-11-01 in New York; the 25-hour day must count once.
	nov2 := DayOf(time.Date(2026, time.November, 2, 0, 30, 0, 0, ny), ny)
	assert.Equal(t, NewDay(2026, time.November, 1), nov2.AddDays(-1))
	assert.Equal(t, NewDay(2026, time.October, 31), nov2.AddDays(-2))
}

func TestNewDay_Normalizes(t *testing.T) {
	assert.Equal(t, NewDay(2026, time.November, 1), NewDay(2026, time.October, 32))
}

func TestParseDay(t *testing.T) {
	tests := []struct {
		input   string
		want    Day
		wantErr bool
	}{
		{"2026-10-17", NewDay(2026, time.October, 17), false},
		{" 2026-01-05 ", NewDay(2026, time.January, 5), false},
		{"Sat Oct 17 2026", NewDay(2026, time.October, 17), false},
		{"2026-13-01", Day{}, true},
		{"17/10/2026", Day{}, true},
		{"", Day{}, true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseDay(tt.input)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestDay_StringAndText(t *testing.T) {
	d := NewDay(2026, time.March, 4)
	assert.Equal(t, "2026-03-04", d.String())

	text, err := d.MarshalText()
	require.NoError(t, err)

	var back Day
	require.NoError(t, back.UnmarshalText(text))
	assert.Equal(t, d, back)
}

func TestDay_Before(t *testing.T) {
	a := NewDay(2026, time.October, 17)
	assert.True(t, a.AddDays(-1).Before(a))
	assert.False(t, a.Before(a))
	assert.False(t, a.AddDays(40).Before(a))
	assert.True(t, NewDay(2025, time.December, 31).Before(NewDay(2026, time.January, 1)))
}

func TestDay_Weekday(t *testing.T) {
	d := NewDay(2026, time.October, 17)
	assert.Equal(t, time.Saturday, d.Weekday())
	assert.Equal(t, time.Sunday, d.AddDays(1).Weekday())
	assert.Equal(t, 17, d.Day())
}
