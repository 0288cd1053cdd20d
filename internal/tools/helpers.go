// Package tools provides the MCP tool handlers for screening.
//
// Each handler is a struct holding its dependencies, with Definition()
// returning the mcp.Tool schema and Handle() processing a call. Failures are
// reported as tool-result errors, never as transport errors.
package tools

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/verte-zerg/cognicare/internal/model"
	"github.com/verte-zerg/cognicare/internal/screening"
)

// Screener is the part of screening.Service the tools call.
type Screener interface {
	Record(ctx context.Context, a model.AssessmentResult) (model.AssessmentResult, error)
	Evaluate(ctx context.Context, userID string, force bool) (screening.Evaluation, error)
	Monitor(ctx context.Context, userID string) (screening.Report, error)
}

// floatArg extracts a number argument (JSON numbers are float64).
func floatArg(req mcp.CallToolRequest, key string) (float64, bool) {
	v, ok := req.GetArguments()[key].(float64)
	return v, ok
}

// boolArg extracts a boolean argument from a tool request.
func boolArg(req mcp.CallToolRequest, key string, defaultVal bool) bool {
	v, ok := req.GetArguments()[key].(bool)
	if !ok {
		return defaultVal
	}
	return v
}

// requiredUser returns the user_id argument or a ready-made error result.
func requiredUser(req mcp.CallToolRequest) (string, *mcp.CallToolResult) {
	userID := strings.TrimSpace(req.GetString("user_id", ""))
	if userID == "" {
		return "", mcp.NewToolResultError("'user_id' is required")
	}
	return userID, nil
}

// ParsePauses reads a comma-separated list of pause lengths in seconds.
func ParsePauses(input string) ([]float64, error) {
	input = strings.TrimSpace(input)
	if input == "" {
		return nil, nil
	}
	parts := strings.Split(input, ",")
	out := make([]float64, 0, len(parts))
	for _, part := range parts {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		v, err := strconv.ParseFloat(part, 64)
		if err != nil || v < 0 {
			return nil, fmt.Errorf("invalid pause %q (use non-negative seconds)", part)
		}
		out = append(out, v)
	}
	return out, nil
}
