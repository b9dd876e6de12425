package habit

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/hpungsan/habits/internal/errors"
)

// Category is one of a fixed set of habit categories.
type Category string

const (
	Health       Category = "Health"
	Productivity Category = "Productivity"
	Learning     Category = "Learning"
	Fitness      Category = "Fitness"
	Mindfulness  Category = "Mindfulness"
)

// Categories lists every valid category in display order.
var Categories = []Category{Health, Productivity, Learning, Fitness, Mindfulness}

// DefaultCategory is preselected when creating a habit.
const DefaultCategory = Health

// ParseCategory matches s against the category set, ignoring case and
// surrounding whitespace, and returns the canonical spelling.
func ParseCategory(s string) (Category, error) {
	s = strings.TrimSpace(s)
	for _, c := range Categories {
		if strings.EqualFold(s, string(c)) {
			return c, nil
		}
	}
	return "", errors.NewInvalidField("category", fmt.Sprintf("unknown category %q (want one of %s)", s, CategoryNames()))
}

// Valid reports whether c is in the category set.
func (c Category) Valid() bool {
	for _, known := range Categories {
		if c == known {
			return true
		}
	}
	return false
}

// CategoryNames returns the categories as a comma-separated list.
func CategoryNames() string {
	names := make([]string, len(Categories))
	for i, c := range Categories {
		names[i] = string(c)
	}
	return strings.Join(names, ", ")
}

// Habit is a user-defined recurring activity tracked by daily completion.
// Field names of the JSON form match the persisted blob.
type Habit struct {
	// ID is a ULID assigned at creation
	ID string `json:"id"`

	// Name is the display name, trimmed with whitespace collapsed
	Name string `json:"name"`

	// Category is fixed at creation
	Category Category `json:"category"`

	// CompletedDates holds each completed calendar day once, in toggle order
	CompletedDates []Day `json:"completedDates"`

	// CreatedAt is the instant of creation (UTC, millisecond precision)
	CreatedAt time.Time `json:"createdAt"`
}

// Repair canonicalizes what stored blobs may carry: loose name spacing,
// category spelling in another case, and one day saved twice in different
// text forms. It never drops a habit; Validate decides what is still wrong.
func (h *Habit) Repair() {
	h.Name = NormalizeName(h.Name)
	if c, err := ParseCategory(string(h.Category)); err == nil {
		h.Category = c
	}

	days := make([]Day, 0, len(h.CompletedDates))
	seen := make(map[Day]bool, len(h.CompletedDates))
	for _, d := range h.CompletedDates {
		if !seen[d] {
			seen[d] = true
			days = append(days, d)
		}
	}
	h.CompletedDates = days
}

// Validate checks the habit invariants.
func (h *Habit) Validate() error {
	if strings.TrimSpace(h.ID) == "" {
		return errors.NewInvalidField("id", "is required")
	}
	if NormalizeName(h.Name) == "" {
		return errors.NewInvalidField("name", "must not be empty")
	}
	if !h.Category.Valid() {
		return errors.NewInvalidField("category", fmt.Sprintf("unknown category %q", h.Category))
	}
	seen := make(map[Day]bool, len(h.CompletedDates))
	for _, d := range h.CompletedDates {
		if seen[d] {
			return errors.NewInvalidField("completedDates", fmt.Sprintf("duplicate day %s", d))
		}
		seen[d] = true
	}
	return nil
}

// Clone returns a deep copy of h.
func (h Habit) Clone() Habit {
	if h.CompletedDates != nil {
		days := make([]Day, len(h.CompletedDates))
		copy(days, h.CompletedDates)
		h.CompletedDates = days
	}
	return h
}

// UnmarshalJSON accepts numeric ids, as written by the browser version,
// in addition to strings.
func (h *Habit) UnmarshalJSON(data []byte) error {
	type alias Habit
	var raw struct {
		alias
		ID json.RawMessage `json:"id"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	*h = Habit(raw.alias)

	id := bytes.TrimSpace(raw.ID)
	switch {
	case len(id) == 0 || string(id) == "null":
		h.ID = ""
	case id[0] == '"':
		if err := json.Unmarshal(id, &h.ID); err != nil {
			return fmt.Errorf("habit id: %w", err)
		}
	default:
		var n json.Number
		if err := json.Unmarshal(id, &n); err != nil {
			return fmt.Errorf("habit id: %w", err)
		}
		h.ID = n.String()
	}
	return nil
}
