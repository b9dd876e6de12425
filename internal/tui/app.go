// Package tui provides the interactive Bubble Tea habit tracker.
package tui

import (
	"context"
	"fmt"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"

	"github.com/hpungsan/habits/internal/errors"
	"github.com/hpungsan/habits/internal/ops"
	"github.com/hpungsan/habits/internal/stats"
)

// listMsg carries a fresh snapshot of the habit list.
type listMsg struct {
	list *ops.ListOutput
	err  error
}

// mutationMsg reports the outcome of a create, toggle or delete.
type mutationMsg struct {
	status string
	err    error
}

// App is the root Bubble Tea model.
type App struct {
	ctx     context.Context
	tracker *ops.Tracker

	// Data
	items   []ops.HabitView
	summary stats.Summary
	today   string
	loaded  bool

	// UI state
	width    int
	height   int
	cursor   int
	keys     keyMap
	help     help.Model
	status   string
	err      error
	quitting bool

	// Add-habit form (huh); nil when the list has focus
	form     *huh.Form
	formVals *formValues
}

// NewApp creates a new TUI app model over tracker.
func NewApp(ctx context.Context, tracker *ops.Tracker) App {
	return App{
		ctx:     ctx,
		tracker: tracker,
		keys:    defaultKeyMap(),
		help:    help.New(),
	}
}

// Run starts the program in the alternate screen and blocks until it exits.
func Run(ctx context.Context, tracker *ops.Tracker) error {
	p := tea.NewProgram(NewApp(ctx, tracker), tea.WithAltScreen(), tea.WithContext(ctx))
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("TUI error: %w", err)
	}
	return nil
}

// Init implements tea.Model.
func (a App) Init() tea.Cmd {
	return a.refreshCmd()
}

// Update implements tea.Model.
func (a App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {

	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		a.help.Width = msg.Width
		if a.form != nil {
			a.form = a.form.WithWidth(msg.Width)
		}
		return a, nil

	case listMsg:
		if msg.err != nil {
			a.err = msg.err
			return a, nil
		}
		a.loaded = true
		a.items = msg.list.Items
		a.summary = msg.list.Summary
		a.today = a.tracker.Today().String()
		a.clampCursor()
		return a, nil

	case mutationMsg:
		a.err = msg.err
		if msg.err == nil {
			a.status = msg.status
		}
		return a, a.refreshCmd()

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			a.quitting = true
			return a, tea.Quit
		}

		// The add-habit form intercepts all keys
		if a.form != nil {
			return a.updateForm(msg)
		}

		return a.updateList(msg)
	}

	// Forward unhandled messages to the form (cursor blinks, etc.)
	if a.form != nil {
		return a.updateForm(msg)
	}

	return a, nil
}

func (a App) updateList(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	a.status = ""

	switch {
	case key.Matches(msg, a.keys.Quit):
		a.quitting = true
		return a, tea.Quit

	case key.Matches(msg, a.keys.Up):
		if a.cursor > 0 {
			a.cursor--
		}

	case key.Matches(msg, a.keys.Down):
		if a.cursor < len(a.items)-1 {
			a.cursor++
		}

	case key.Matches(msg, a.keys.Toggle):
		if h, ok := a.selected(); ok {
			return a, a.toggleCmd(h.ID)
		}

	case key.Matches(msg, a.keys.Delete):
		if h, ok := a.selected(); ok {
			return a, a.deleteCmd(h.ID, h.Name)
		}

	case key.Matches(msg, a.keys.Add):
		a.formVals = &formValues{}
		a.form = newCreateForm(a.formVals)
		if a.width > 0 {
			a.form = a.form.WithWidth(a.width)
		}
		a.err = nil
		return a, a.form.Init()

	case key.Matches(msg, a.keys.Help):
		a.help.ShowAll = !a.help.ShowAll
	}

	return a, nil
}

func (a App) updateForm(msg tea.Msg) (tea.Model, tea.Cmd) {
	if k, ok := msg.(tea.KeyMsg); ok && k.String() == "esc" {
		a.form = nil
		a.status = "Cancelled"
		return a, nil
	}

	form, cmd := a.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		a.form = f
	}

	switch a.form.State {
	case huh.StateCompleted:
		vals := *a.formVals
		a.form = nil
		return a, a.createCmd(vals)
	case huh.StateAborted:
		a.form = nil
		a.status = "Cancelled"
		return a, nil
	}

	return a, cmd
}

func (a App) selected() (ops.HabitView, bool) {
	if a.cursor < 0 || a.cursor >= len(a.items) {
		return ops.HabitView{}, false
	}
	return a.items[a.cursor], true
}

func (a *App) clampCursor() {
	if a.cursor >= len(a.items) {
		a.cursor = len(a.items) - 1
	}
	if a.cursor < 0 {
		a.cursor = 0
	}
}

// Commands

func (a App) refreshCmd() tea.Cmd {
	ctx, tracker := a.ctx, a.tracker
	return func() tea.Msg {
		out, err := tracker.List(ctx, ops.ListInput{})
		return listMsg{list: out, err: err}
	}
}

func (a App) toggleCmd(id string) tea.Cmd {
	ctx, tracker := a.ctx, a.tracker
	return func() tea.Msg {
		out, err := tracker.Toggle(ctx, ops.ToggleInput{ID: id})
		if err != nil {
			return mutationMsg{err: err}
		}
		verb := "Cleared"
		if out.Completed {
			verb = "Completed"
		}
		return mutationMsg{status: fmt.Sprintf("%s %q for today", verb, out.Habit.Name)}
	}
}

func (a App) deleteCmd(id, name string) tea.Cmd {
	ctx, tracker := a.ctx, a.tracker
	return func() tea.Msg {
		if _, err := tracker.Delete(ctx, ops.DeleteInput{ID: id}); err != nil {
			return mutationMsg{err: err}
		}
		return mutationMsg{status: fmt.Sprintf("Deleted %q", name)}
	}
}

func (a App) createCmd(vals formValues) tea.Cmd {
	ctx, tracker := a.ctx, a.tracker
	return func() tea.Msg {
		out, err := tracker.Create(ctx, ops.CreateInput{Name: vals.name, Category: vals.category})
		if err != nil {
			return mutationMsg{err: err}
		}
		return mutationMsg{status: fmt.Sprintf("Added %q", out.Name)}
	}
}

// errorText renders err for the status line.
func errorText(err error) string {
	return errors.As(err).Message
}
