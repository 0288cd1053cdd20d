package tools

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/verte-zerg/cognicare/internal/screening"
	"github.com/verte-zerg/cognicare/internal/store"
)

// EvaluateTool handles the screening_evaluate MCP tool.
type EvaluateTool struct {
	svc Screener
}

// NewEvaluateTool creates an EvaluateTool.
func NewEvaluateTool(svc Screener) *EvaluateTool {
	return &EvaluateTool{svc: svc}
}

// Definition returns the MCP tool definition for screening_evaluate.
func (t *EvaluateTool) Definition() mcp.Tool {
	return mcp.NewTool("screening_evaluate",
		mcp.WithDescription(
			"Compute or fetch the current cognitive risk score for a user. "+
				"A new score is computed only when assessments were recorded after the latest one, unless force is set.",
		),
		mcp.WithString("user_id",
			mcp.Required(),
			mcp.Description("Profile id of the user to score"),
		),
		mcp.WithBoolean("force",
			mcp.Description("Recompute even if the latest score is current (default: false)"),
		),
	)
}

// Handle processes the screening_evaluate tool call.
func (t *EvaluateTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	userID, errResult := requiredUser(req)
	if errResult != nil {
		return errResult, nil
	}
	ev, err := t.svc.Evaluate(ctx, userID, boolArg(req, "force", false))
	switch {
	case errors.Is(err, screening.ErrNoAssessments):
		return mcp.NewToolResultError(fmt.Sprintf("no assessments recorded for %q", userID)), nil
	case errors.Is(err, store.ErrNotFound):
		return mcp.NewToolResultError(fmt.Sprintf("no profile for %q", userID)), nil
	case err != nil:
		return mcp.NewToolResultError(fmt.Sprintf("failed to evaluate: %v", err)), nil
	}

	s := ev.Score
	var sb strings.Builder
	sb.WriteString("## Risk Score\n\n")
	sb.WriteString(fmt.Sprintf("- **Score**: %d (%s)\n", s.Score, ev.Level.Label))
	sb.WriteString(fmt.Sprintf("- **Assessment**: %s\n", ev.Level.Description))
	sb.WriteString(fmt.Sprintf("- **Confidence**: %d%%\n", s.Confidence))
	sb.WriteString(fmt.Sprintf("- **Factors**: cognitive %d, speech %d, behavioral %d\n",
		s.Factors.Cognitive, s.Factors.Speech, s.Factors.Behavioral))
	sb.WriteString(fmt.Sprintf("- **Generated**: %s", s.GeneratedAt.Format("2006-01-02 15:04")))
	if !ev.Recomputed {
		sb.WriteString(" (cached)")
	}
	sb.WriteString("\n\n### Recommendations\n\n")
	for _, rec := range s.Recommendations {
		sb.WriteString("- " + rec + "\n")
	}
	return mcp.NewToolResultText(sb.String()), nil
}
