package mcp

import (
	"context"
	"encoding/json"

	"github.com/mark3labs/mcp-go/mcp"
	"go.uber.org/zap"

	"github.com/hpungsan/habits/internal/config"
	"github.com/hpungsan/habits/internal/errors"
	"github.com/hpungsan/habits/internal/habit"
	"github.com/hpungsan/habits/internal/ops"
)

// Handlers holds dependencies for MCP tool handlers.
type Handlers struct {
	tracker *ops.Tracker
	cfg     *config.Config
	log     *zap.Logger
}

// NewHandlers creates a new Handlers instance.
func NewHandlers(tracker *ops.Tracker, cfg *config.Config, logger *zap.Logger) *Handlers {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Handlers{tracker: tracker, cfg: cfg, log: logger}
}

// Request types for each tool

// CreateRequest represents the arguments for habit_create.
type CreateRequest struct {
	Name     string `json:"name"`
	Category string `json:"category,omitempty"`
}

// ListRequest represents the arguments for habit_list.
type ListRequest struct {
	Category string `json:"category,omitempty"`
}

// GetRequest represents the arguments for habit_get.
type GetRequest struct {
	ID          string `json:"id"`
	HistoryDays int    `json:"history_days,omitempty"`
}

// ToggleRequest represents the arguments for habit_toggle.
type ToggleRequest struct {
	ID  string     `json:"id"`
	Day *habit.Day `json:"day,omitempty"`
}

// DeleteRequest represents the arguments for habit_delete.
type DeleteRequest struct {
	ID string `json:"id"`
}

// ReportRequest represents the arguments for habit_report.
type ReportRequest struct {
	Days int `json:"days,omitempty"`
}

// Handler implementations

// HandleCreate handles the habit_create tool call.
func (h *Handlers) HandleCreate(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	input, err := decode[CreateRequest](req)
	if err != nil {
		return errorResult(err), nil
	}

	result, err := h.tracker.Create(ctx, ops.CreateInput{
		Name:     input.Name,
		Category: input.Category,
	})
	if err != nil {
		return h.fail("habit_create", err), nil
	}
	return successResult(result)
}

// HandleList handles the habit_list tool call.
func (h *Handlers) HandleList(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	input, err := decode[ListRequest](req)
	if err != nil {
		return errorResult(err), nil
	}

	result, err := h.tracker.List(ctx, ops.ListInput{Category: input.Category})
	if err != nil {
		return h.fail("habit_list", err), nil
	}
	return successResult(result)
}

// HandleGet handles the habit_get tool call.
func (h *Handlers) HandleGet(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	input, err := decode[GetRequest](req)
	if err != nil {
		return errorResult(err), nil
	}

	result, err := h.tracker.Fetch(ctx, ops.FetchInput{
		ID:          input.ID,
		HistoryDays: input.HistoryDays,
	})
	if err != nil {
		return h.fail("habit_get", err), nil
	}
	return successResult(result)
}

// HandleToggle handles the habit_toggle tool call.
func (h *Handlers) HandleToggle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	input, err := decode[ToggleRequest](req)
	if err != nil {
		return errorResult(err), nil
	}

	result, err := h.tracker.Toggle(ctx, ops.ToggleInput{
		ID:  input.ID,
		Day: input.Day,
	})
	if err != nil {
		return h.fail("habit_toggle", err), nil
	}
	return successResult(result)
}

// HandleDelete handles the habit_delete tool call.
func (h *Handlers) HandleDelete(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	input, err := decode[DeleteRequest](req)
	if err != nil {
		return errorResult(err), nil
	}

	result, err := h.tracker.Delete(ctx, ops.DeleteInput{ID: input.ID})
	if err != nil {
		return h.fail("habit_delete", err), nil
	}
	return successResult(result)
}

// HandleSummary handles the habit_summary tool call.
func (h *Handlers) HandleSummary(ctx context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	result, err := h.tracker.Summary(ctx)
	if err != nil {
		return h.fail("habit_summary", err), nil
	}
	return successResult(result)
}

// HandleReport handles the habit_report tool call.
func (h *Handlers) HandleReport(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	input, err := decode[ReportRequest](req)
	if err != nil {
		return errorResult(err), nil
	}

	days := input.Days
	if days == 0 && h.cfg != nil {
		days = h.cfg.ReportDays
	}

	result, err := h.tracker.Report(ctx, ops.ReportInput{Days: days})
	if err != nil {
		return h.fail("habit_report", err), nil
	}
	return successResult(result)
}

// fail logs internal failures before converting them to a tool result.
func (h *Handlers) fail(tool string, err error) *mcp.CallToolResult {
	if errors.As(err).Code == errors.ErrInternal {
		h.log.Error("tool failed", zap.String("tool", tool), zap.Error(err))
	}
	return errorResult(err)
}

// Result helpers

// errorResult creates an MCP error result from any error.
// Uses IsError: true so MCP clients recognize failures properly.
// Internal error details are not exposed.
func errorResult(err error) *mcp.CallToolResult {
	hErr := errors.As(err)

	errorObj := map[string]any{
		"code":    hErr.Code,
		"message": hErr.Message,
		"status":  hErr.Status,
	}
	if hErr.Code == errors.ErrInternal {
		errorObj["message"] = "an internal error occurred"
	} else if hErr.Details != nil {
		errorObj["details"] = hErr.Details
	}

	content, _ := json.Marshal(map[string]any{"error": errorObj})
	return &mcp.CallToolResult{
		Content: []mcp.Content{mcp.TextContent{Type: "text", Text: string(content)}},
		IsError: true,
	}
}

// successResult creates an MCP success result from any data.
func successResult(data any) (*mcp.CallToolResult, error) {
	return mcp.NewToolResultJSON(data)
}
