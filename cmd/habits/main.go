package main

import (
	"context"
	"database/sql"
	"fmt"
	"os"

	"go.uber.org/zap"

	"github.com/hpungsan/habits/internal/config"
	"github.com/hpungsan/habits/internal/db"
	"github.com/hpungsan/habits/internal/logging"
	"github.com/hpungsan/habits/internal/mcp"
	"github.com/hpungsan/habits/internal/ops"
)

// Version is set via -ldflags at build time.
var Version = "dev"

// cliCommands contains known CLI subcommands.
var cliCommands = map[string]bool{
	"add": true, "list": true, "show": true, "done": true,
	"delete": true, "summary": true, "report": true,
	"serve": true, "tui": true,
	"help": true,
}

// isCLIMode determines if we should run CLI vs MCP server.
func isCLIMode(args []string) bool {
	if len(args) < 2 {
		return false // No args → MCP server
	}
	arg := args[1]
	if cliCommands[arg] {
		return true
	}
	// Global flags come before the subcommand
	if arg == "--pretty" || arg == "-p" {
		return true
	}
	return isHelpOrVersion(args)
}

// isHelpOrVersion returns true if the user is requesting help or version info.
func isHelpOrVersion(args []string) bool {
	if len(args) < 2 {
		return false
	}
	arg := args[1]
	return arg == "--help" || arg == "-h" || arg == "--version" || arg == "-v" || arg == "help"
}

// isTerminal returns true if stdin is a terminal (not piped).
func isTerminal() bool {
	stat, err := os.Stdin.Stat()
	if err != nil {
		return false
	}
	return (stat.Mode() & os.ModeCharDevice) != 0
}

// printBanner displays a friendly banner when run interactively without args.
func printBanner() {
	fmt.Println(`
   _           _     _ _
  | |__   __ _| |__ (_) |_ ___
  | '_ \ / _' | '_ \| | __/ __|
  | | | | (_| | |_) | | |_\__ \
  |_| |_|\__,_|_.__/|_|\__|___/

  Local habit tracker

  Usage: habits <command> [options]
         habits tui      interactive tracker
         habits serve    web dashboard
         habits --help

  MCP server mode requires piped input.`)
}

// openTracker loads the habit list from the database under baseDir.
// The caller owns the returned *sql.DB.
func openTracker(ctx context.Context, baseDir string, cfg *config.Config, logger *zap.Logger) (*ops.Tracker, *sql.DB, error) {
	database, err := db.Init(baseDir)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to initialize database: %w", err)
	}
	db.ConfigurePool(database, cfg)

	loc, err := cfg.Location()
	if err != nil {
		database.Close()
		return nil, nil, err
	}

	tracker, err := ops.Open(ctx, db.NewKVStore(database),
		ops.WithLocation(loc),
		ops.WithLogger(logger),
	)
	if err != nil {
		database.Close()
		return nil, nil, fmt.Errorf("failed to load habits: %w", err)
	}
	return tracker, database, nil
}

func fatal(format string, args ...any) {
	fmt.Fprintf(os.Stderr, "error: "+format+"\n", args...)
	os.Exit(1)
}

func main() {
	// No args + interactive terminal → show banner and exit
	if len(os.Args) < 2 && isTerminal() {
		printBanner()
		return
	}

	// Handle --help/--version before DB init (no DB needed)
	if isHelpOrVersion(os.Args) {
		app := newCLIApp(nil, nil, nil)
		if err := app.Run(os.Args); err != nil {
			fatal("%v", err)
		}
		return
	}

	// Unknown argument + terminal → show error (don't start MCP server)
	cliMode := isCLIMode(os.Args)
	if !cliMode && len(os.Args) >= 2 && isTerminal() {
		fmt.Fprintf(os.Stderr, "error: unknown command %q\n", os.Args[1])
		fmt.Fprintf(os.Stderr, "Run 'habits --help' for usage.\n")
		os.Exit(1)
	}

	baseDir, err := config.BaseDir()
	if err != nil {
		fatal("%v", err)
	}

	cfg, err := config.Load(baseDir)
	if err != nil {
		fatal("failed to load config: %v", err)
	}

	logger, err := logging.New(cfg)
	if err != nil {
		fatal("%v", err)
	}
	defer func() { _ = logger.Sync() }()

	ctx := context.Background()
	tracker, database, err := openTracker(ctx, baseDir, cfg, logger)
	if err != nil {
		fatal("%v", err)
	}
	defer database.Close()

	if cliMode {
		app := newCLIApp(tracker, cfg, logger)
		if err := app.RunContext(ctx, os.Args); err != nil {
			database.Close()
			fatal("%v", err)
		}
		return
	}

	// MCP server mode (default)
	if err := mcp.Run(tracker, cfg, logger, Version); err != nil {
		database.Close()
		fatal("%v", err)
	}
}
