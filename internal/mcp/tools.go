package mcp

import (
	"github.com/mark3labs/mcp-go/mcp"

	"github.com/hpungsan/habits/internal/habit"
)

func categoryEnum() []string {
	out := make([]string, len(habit.Categories))
	for i, c := range habit.Categories {
		out[i] = string(c)
	}
	return out
}

var createToolDef = mcp.NewTool("habit_create",
	mcp.WithDescription("Create a habit to track daily. Returns the new habit with its statistics."),
	mcp.WithString("name",
		mcp.Required(),
		mcp.Description("Display name, at most 100 characters"),
	),
	mcp.WithString("category",
		mcp.Description("Habit category (default Health)"),
		mcp.Enum(categoryEnum()...),
	),
)

var listToolDef = mcp.NewTool("habit_list",
	mcp.WithDescription("List habits in creation order with streak, completed_today and completion_rate, plus a summary across all habits."),
	mcp.WithString("category",
		mcp.Description("Only return habits in this category"),
		mcp.Enum(categoryEnum()...),
	),
)

var getToolDef = mcp.NewTool("habit_get",
	mcp.WithDescription("Fetch one habit by ID with its statistics and optional completion history."),
	mcp.WithString("id",
		mcp.Required(),
		mcp.Description("Habit ID"),
	),
	mcp.WithNumber("history_days",
		mcp.Description("Return completion for this many days ending today, oldest first (0-90, default 0)"),
	),
)

var toggleToolDef = mcp.NewTool("habit_toggle",
	mcp.WithDescription("Mark a habit done for a day, or clear it if already done. Defaults to today. Future days are rejected."),
	mcp.WithString("id",
		mcp.Required(),
		mcp.Description("Habit ID"),
	),
	mcp.WithString("day",
		mcp.Description("Calendar day as YYYY-MM-DD (default today)"),
	),
)

var deleteToolDef = mcp.NewTool("habit_delete",
	mcp.WithDescription("Permanently delete a habit and its history."),
	mcp.WithString("id",
		mcp.Required(),
		mcp.Description("Habit ID"),
	),
)

var summaryToolDef = mcp.NewTool("habit_summary",
	mcp.WithDescription("Total habits, habits completed today and the best current streak."),
)

var reportToolDef = mcp.NewTool("habit_report",
	mcp.WithDescription("Markdown report with summary figures and a per-habit completion grid."),
	mcp.WithNumber("days",
		mcp.Description("Days covered by the grid (1-90, default from config)"),
	),
)
