package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/urfave/cli/v2"
	"go.uber.org/zap"

	"github.com/hpungsan/habits/internal/config"
	"github.com/hpungsan/habits/internal/errors"
	"github.com/hpungsan/habits/internal/habit"
	"github.com/hpungsan/habits/internal/ops"
	"github.com/hpungsan/habits/internal/tui"
	"github.com/hpungsan/habits/internal/web"
)

// newCLIApp creates the CLI application with all commands.
// tracker may be nil when only --help or --version will run.
func newCLIApp(tracker *ops.Tracker, cfg *config.Config, logger *zap.Logger) *cli.App {
	if cfg == nil {
		cfg = config.DefaultConfig()
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	app := &cli.App{
		Name:    "habits",
		Usage:   "Local habit tracker",
		Version: Version,
		Flags: []cli.Flag{
			&cli.BoolFlag{Name: "pretty", Aliases: []string{"p"}, Usage: "Render tables instead of JSON"},
		},
		Commands: []*cli.Command{
			addCmd(tracker),
			listCmd(tracker),
			showCmd(tracker, cfg),
			doneCmd(tracker),
			deleteCmd(tracker),
			summaryCmd(tracker),
			reportCmd(tracker, cfg),
			serveCmd(tracker, cfg, logger),
			tuiCmd(tracker),
		},
	}
	// Disable default exit error handler to allow proper error return in tests
	app.ExitErrHandler = func(_ *cli.Context, _ error) {}
	return app
}

// addCmd creates the add command.
func addCmd(tracker *ops.Tracker) *cli.Command {
	return &cli.Command{
		Name:  "add",
		Usage: "Create a habit",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "name", Aliases: []string{"n"}, Usage: "Habit name (required)"},
			&cli.StringFlag{Name: "category", Aliases: []string{"c"}, Value: string(habit.DefaultCategory), Usage: "One of " + habit.CategoryNames()},
		},
		Action: func(c *cli.Context) error {
			output, err := tracker.Create(c.Context, ops.CreateInput{
				Name:     c.String("name"),
				Category: c.String("category"),
			})
			if err != nil {
				return outputError(err)
			}

			if pretty(c) {
				return printHabits(c.App.Writer, []ops.HabitView{*output})
			}
			return outputJSON(c.App.Writer, output)
		},
	}
}

// listCmd creates the list command.
func listCmd(tracker *ops.Tracker) *cli.Command {
	return &cli.Command{
		Name:  "list",
		Usage: "List habits in creation order",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "category", Aliases: []string{"c"}, Usage: "Only show this category"},
		},
		Action: func(c *cli.Context) error {
			output, err := tracker.List(c.Context, ops.ListInput{Category: c.String("category")})
			if err != nil {
				return outputError(err)
			}

			if pretty(c) {
				if len(output.Items) == 0 {
					_, err := fmt.Fprintln(c.App.Writer, "No habits yet. Create your first one with: habits add --name <name>")
					return err
				}
				if err := printHabits(c.App.Writer, output.Items); err != nil {
					return err
				}
				return printSummary(c.App.Writer, output.Summary, tracker.Today().String())
			}
			return outputJSON(c.App.Writer, output)
		},
	}
}

// showCmd creates the show command.
func showCmd(tracker *ops.Tracker, cfg *config.Config) *cli.Command {
	return &cli.Command{
		Name:      "show",
		Usage:     "Show one habit with its recent history",
		ArgsUsage: "<id>",
		Flags: []cli.Flag{
			&cli.IntFlag{Name: "history", Value: cfg.ReportDays, Usage: "Days of history to include (0-90)"},
		},
		Action: func(c *cli.Context) error {
			id, err := requireID(c)
			if err != nil {
				return outputError(err)
			}

			output, err := tracker.Fetch(c.Context, ops.FetchInput{ID: id, HistoryDays: c.Int("history")})
			if err != nil {
				return outputError(err)
			}

			if pretty(c) {
				return printDetail(c.App.Writer, output)
			}
			return outputJSON(c.App.Writer, output)
		},
	}
}

// doneCmd creates the done command.
func doneCmd(tracker *ops.Tracker) *cli.Command {
	return &cli.Command{
		Name:      "done",
		Usage:     "Toggle a habit's completion for today or --date",
		ArgsUsage: "<id>",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "date", Aliases: []string{"d"}, Usage: "Day to toggle (YYYY-MM-DD, default today)"},
		},
		Action: func(c *cli.Context) error {
			id, err := requireID(c)
			if err != nil {
				return outputError(err)
			}

			input := ops.ToggleInput{ID: id}
			if s := c.String("date"); s != "" {
				day, err := habit.ParseDay(s)
				if err != nil {
					return outputError(errors.NewInvalidField("date", err.Error()))
				}
				input.Day = &day
			}

			output, err := tracker.Toggle(c.Context, input)
			if err != nil {
				return outputError(err)
			}

			if pretty(c) {
				verb := "Cleared"
				if output.Completed {
					verb = "Completed"
				}
				_, err := fmt.Fprintf(c.App.Writer, "%s %q on %s (streak %s, %d%%)\n",
					verb, output.Habit.Name, output.Day, pluralDays(output.Habit.Streak), output.Habit.CompletionRate)
				return err
			}
			return outputJSON(c.App.Writer, output)
		},
	}
}

// deleteCmd creates the delete command.
func deleteCmd(tracker *ops.Tracker) *cli.Command {
	return &cli.Command{
		Name:      "delete",
		Usage:     "Delete a habit and its history",
		ArgsUsage: "<id>",
		Action: func(c *cli.Context) error {
			id, err := requireID(c)
			if err != nil {
				return outputError(err)
			}

			output, err := tracker.Delete(c.Context, ops.DeleteInput{ID: id})
			if err != nil {
				return outputError(err)
			}

			if pretty(c) {
				_, err := fmt.Fprintf(c.App.Writer, "Deleted %s\n", output.ID)
				return err
			}
			return outputJSON(c.App.Writer, output)
		},
	}
}

// summaryCmd creates the summary command.
func summaryCmd(tracker *ops.Tracker) *cli.Command {
	return &cli.Command{
		Name:  "summary",
		Usage: "Show totals across all habits",
		Action: func(c *cli.Context) error {
			output, err := tracker.Summary(c.Context)
			if err != nil {
				return outputError(err)
			}

			if pretty(c) {
				return printSummary(c.App.Writer, output.Summary, output.Today)
			}
			return outputJSON(c.App.Writer, output)
		},
	}
}

// reportCmd creates the report command.
func reportCmd(tracker *ops.Tracker, cfg *config.Config) *cli.Command {
	return &cli.Command{
		Name:  "report",
		Usage: "Render a Markdown report of recent progress",
		Flags: []cli.Flag{
			&cli.IntFlag{Name: "days", Value: cfg.ReportDays, Usage: "Days covered by the grid (1-90)"},
		},
		Action: func(c *cli.Context) error {
			output, err := tracker.Report(c.Context, ops.ReportInput{Days: c.Int("days")})
			if err != nil {
				return outputError(err)
			}

			if pretty(c) {
				_, err := io.WriteString(c.App.Writer, output.Markdown)
				return err
			}
			return outputJSON(c.App.Writer, output)
		},
	}
}

// serveCmd creates the serve command.
func serveCmd(tracker *ops.Tracker, cfg *config.Config, logger *zap.Logger) *cli.Command {
	return &cli.Command{
		Name:  "serve",
		Usage: "Start the web dashboard",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "bind", Value: cfg.WebBind, Usage: "Interface to listen on"},
			&cli.IntFlag{Name: "port", Value: cfg.WebPort, Usage: "Port to listen on"},
		},
		Action: func(c *cli.Context) error {
			srv, err := web.NewServer(tracker, cfg, logger, Version, c.String("bind"), c.Int("port"))
			if err != nil {
				return outputError(err)
			}
			return web.Run(srv, logger)
		},
	}
}

// tuiCmd creates the tui command.
func tuiCmd(tracker *ops.Tracker) *cli.Command {
	return &cli.Command{
		Name:  "tui",
		Usage: "Open the interactive tracker",
		Action: func(c *cli.Context) error {
			return tui.Run(c.Context, tracker)
		},
	}
}

// Helper functions

// pretty reports whether the global --pretty flag is set.
func pretty(c *cli.Context) bool {
	return c.Bool("pretty")
}

// requireID returns the first positional argument.
func requireID(c *cli.Context) (string, error) {
	id := strings.TrimSpace(c.Args().First())
	if id == "" {
		return "", errors.NewInvalidField("id", "is required")
	}
	return id, nil
}

// outputJSON marshals result to w as JSON.
func outputJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// outputError formats error for CLI.
func outputError(err error) error {
	e := errors.As(err)
	return cli.Exit(fmt.Sprintf("[%s] %s", e.Code, e.Message), 1)
}
