package tools

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/verte-zerg/cognicare/internal/model"
)

// RecordTool handles the screening_record MCP tool.
type RecordTool struct {
	svc Screener
}

// NewRecordTool creates a RecordTool.
func NewRecordTool(svc Screener) *RecordTool {
	return &RecordTool{svc: svc}
}

// Definition returns the MCP tool definition for screening_record.
func (t *RecordTool) Definition() mcp.Tool {
	types := make([]string, 0, len(model.AssessmentTypes()))
	for _, typ := range model.AssessmentTypes() {
		types = append(types, string(typ))
	}
	return mcp.NewTool("screening_record",
		mcp.WithDescription("Record a completed assessment for an existing profile."),
		mcp.WithString("user_id",
			mcp.Required(),
			mcp.Description("Profile id of the user"),
		),
		mcp.WithString("type",
			mcp.Required(),
			mcp.Description("Assessment domain"),
			mcp.Enum(types...),
		),
		mcp.WithNumber("score",
			mcp.Required(),
			mcp.Description("Raw score achieved"),
		),
		mcp.WithNumber("max_score",
			mcp.Required(),
			mcp.Description("Maximum achievable score; must be positive to count toward metrics"),
		),
		mcp.WithNumber("duration_ms",
			mcp.Description("Time taken in milliseconds (default: 0)"),
		),
		mcp.WithString("details",
			mcp.Description("Type-specific details as a JSON object (optional)"),
		),
		mcp.WithString("completed_at",
			mcp.Description("RFC3339 completion time (default: now)"),
		),
	)
}

// Handle processes the screening_record tool call.
func (t *RecordTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	userID, errResult := requiredUser(req)
	if errResult != nil {
		return errResult, nil
	}
	typ, err := model.ParseAssessmentType(req.GetString("type", ""))
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	score, ok := floatArg(req, "score")
	if !ok {
		return mcp.NewToolResultError("'score' is required"), nil
	}
	maxScore, ok := floatArg(req, "max_score")
	if !ok {
		return mcp.NewToolResultError("'max_score' is required"), nil
	}
	durationMs, _ := floatArg(req, "duration_ms")

	a := model.AssessmentResult{
		UserID:     userID,
		Type:       typ,
		Score:      score,
		MaxScore:   maxScore,
		DurationMs: int64(durationMs),
	}
	if raw := strings.TrimSpace(req.GetString("details", "")); raw != "" {
		details, err := model.DecodeDetails(typ, []byte(raw))
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("invalid details: %v", err)), nil
		}
		a.Details = details
	}
	if at := strings.TrimSpace(req.GetString("completed_at", "")); at != "" {
		parsed, err := time.Parse(time.RFC3339, at)
		if err != nil {
			return mcp.NewToolResultError("invalid 'completed_at' (expected RFC3339)"), nil
		}
		a.CompletedAt = parsed
	}

	saved, err := t.svc.Record(ctx, a)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to record assessment: %v", err)), nil
	}
	return mcp.NewToolResultText(fmt.Sprintf("Recorded %s assessment `%s` for %s: %g/%g.",
		saved.Type, saved.ID, saved.UserID, saved.Score, saved.MaxScore)), nil
}
