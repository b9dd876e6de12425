package tui

import (
	"fmt"

	"github.com/charmbracelet/huh"

	"github.com/hpungsan/habits/internal/habit"
)

// formValues receives the add-habit form's answers.
type formValues struct {
	name     string
	category string
}

// newCreateForm builds the add-habit form. Answers are written into vals.
func newCreateForm(vals *formValues) *huh.Form {
	options := make([]huh.Option[string], len(habit.Categories))
	for i, c := range habit.Categories {
		options[i] = huh.NewOption(string(c), string(c))
	}
	if vals.category == "" {
		vals.category = string(habit.DefaultCategory)
	}

	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("New habit").
				Placeholder("e.g. Morning run").
				CharLimit(habit.MaxNameChars).
				Value(&vals.name).
				Validate(validateName),
			huh.NewSelect[string]().
				Title("Category").
				Options(options...).
				Value(&vals.category),
		),
	).WithShowHelp(true)
}

func validateName(s string) error {
	name := habit.NormalizeName(s)
	if name == "" {
		return fmt.Errorf("name is required")
	}
	if n := habit.CountChars(name); n > habit.MaxNameChars {
		return fmt.Errorf("name is too long (%d/%d)", n, habit.MaxNameChars)
	}
	return nil
}
