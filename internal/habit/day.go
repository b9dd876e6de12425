package habit

import (
	"fmt"
	"strings"
	"time"
)

// DayLayout is the text form of a Day.
const DayLayout = "2006-01-02"

// legacyDayLayout is the form produced by JavaScript's Date.toDateString,
// which the browser version of the tracker stored in its blobs.
const legacyDayLayout = "Mon Jan 02 2006"

// Day is a calendar-day marker: a date with no time-of-day and no zone.
// Day values are comparable and can be used as map keys.
type Day struct {
	year  int
	month time.Month
	day   int
}

// NewDay returns the Day for the given date. Out-of-range values are
// normalized the way time.Date normalizes them (e.g. Oct 32 → Nov 1).
func NewDay(year int, month time.Month, day int) Day {
	return dayOfUTC(time.Date(year, month, day, 12, 0, 0, 0, time.UTC))
}

// DayOf returns the calendar day of t in loc. A nil loc means time.Local.
func DayOf(t time.Time, loc *time.Location) Day {
	if loc == nil {
		loc = time.Local
	}
	y, m, d := t.In(loc).Date()
	return Day{year: y, month: m, day: d}
}

func dayOfUTC(t time.Time) Day {
	y, m, d := t.Date()
	return Day{year: y, month: m, day: d}
}

// ParseDay parses "YYYY-MM-DD", falling back to the legacy
// "Mon Jan 02 2006" form.
func ParseDay(s string) (Day, error) {
	s = strings.TrimSpace(s)
	if t, err := time.Parse(DayLayout, s); err == nil {
		return dayOfUTC(t), nil
	}
	if t, err := time.Parse(legacyDayLayout, s); err == nil {
		return dayOfUTC(t), nil
	}
	return Day{}, fmt.Errorf("invalid day %q: want YYYY-MM-DD", s)
}

// Day returns the day of the month of d.
func (d Day) Day() int { return d.day }

// AddDays returns the day n calendar days after d (n may be negative).
// Arithmetic is done at noon UTC so DST transitions never skip or repeat a day.
func (d Day) AddDays(n int) Day {
	return dayOfUTC(time.Date(d.year, d.month, d.day+n, 12, 0, 0, 0, time.UTC))
}

// Before reports whether d is strictly earlier than other.
func (d Day) Before(other Day) bool {
	if d.year != other.year {
		return d.year < other.year
	}
	if d.month != other.month {
		return d.month < other.month
	}
	return d.day < other.day
}

// Weekday returns the day of the week of d.
func (d Day) Weekday() time.Weekday {
	return time.Date(d.year, d.month, d.day, 12, 0, 0, 0, time.UTC).Weekday()
}

// String returns d as "YYYY-MM-DD".
func (d Day) String() string {
	return fmt.Sprintf("%04d-%02d-%02d", d.year, int(d.month), d.day)
}

// MarshalText implements encoding.TextMarshaler.
func (d Day) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (d *Day) UnmarshalText(text []byte) error {
	parsed, err := ParseDay(string(text))
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}
