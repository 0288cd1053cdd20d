package tools

import (
	"context"
	"fmt"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"
)

// TrendsTool handles the screening_trends MCP tool.
type TrendsTool struct {
	svc Screener
}

// NewTrendsTool creates a TrendsTool.
func NewTrendsTool(svc Screener) *TrendsTool {
	return &TrendsTool{svc: svc}
}

// Definition returns the MCP tool definition for screening_trends.
func (t *TrendsTool) Definition() mcp.Tool {
	return mcp.NewTool("screening_trends",
		mcp.WithDescription(
			"Fit a linear trend to each assessment domain with at least two scores. "+
				"Requires three recorded assessments in total.",
		),
		mcp.WithString("user_id",
			mcp.Required(),
			mcp.Description("Profile id of the user"),
		),
	)
}

// Handle processes the screening_trends tool call.
func (t *TrendsTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	userID, errResult := requiredUser(req)
	if errResult != nil {
		return errResult, nil
	}
	report, err := t.svc.Monitor(ctx, userID)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to analyse trends: %v", err)), nil
	}
	if len(report.Trends) == 0 {
		return mcp.NewToolResultText("Not enough assessments for trend analysis."), nil
	}

	var sb strings.Builder
	sb.WriteString("## Trends\n\n")
	sb.WriteString("| Domain | Trend | Change/Month | Significance | Points |\n")
	sb.WriteString("|---|---|---|---|---|\n")
	for _, tr := range report.Trends {
		sb.WriteString(fmt.Sprintf("| %s | %s | %+.2f | %.2f | %d |\n",
			tr.Domain, tr.Trend, tr.ChangeRate, tr.Significance, len(tr.DataPoints)))
	}
	return mcp.NewToolResultText(sb.String()), nil
}

// AlertsTool handles the screening_alerts MCP tool.
type AlertsTool struct {
	svc Screener
}

// NewAlertsTool creates an AlertsTool.
func NewAlertsTool(svc Screener) *AlertsTool {
	return &AlertsTool{svc: svc}
}

// Definition returns the MCP tool definition for screening_alerts.
func (t *AlertsTool) Definition() mcp.Tool {
	return mcp.NewTool("screening_alerts",
		mcp.WithDescription(
			"Check a user's history for significant decline, a new high risk score, "+
				"deviation from baseline and overdue assessments.",
		),
		mcp.WithString("user_id",
			mcp.Required(),
			mcp.Description("Profile id of the user"),
		),
	)
}

// Handle processes the screening_alerts tool call.
func (t *AlertsTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	userID, errResult := requiredUser(req)
	if errResult != nil {
		return errResult, nil
	}
	report, err := t.svc.Monitor(ctx, userID)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to check alerts: %v", err)), nil
	}
	if len(report.Alerts) == 0 {
		return mcp.NewToolResultText("No alerts."), nil
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("## Alerts (%d)\n", len(report.Alerts)))
	for _, a := range report.Alerts {
		sb.WriteString(fmt.Sprintf("\n### [%s] %s\n\n%s\n\n", strings.ToUpper(string(a.Severity)), a.Type, a.Message))
		for _, rec := range a.Recommendations {
			sb.WriteString("- " + rec + "\n")
		}
	}
	return mcp.NewToolResultText(sb.String()), nil
}
