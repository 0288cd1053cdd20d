package tools

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/verte-zerg/cognicare/internal/speech"
)

// SpeechTool handles the speech_analyze MCP tool.
type SpeechTool struct {
	analyzer *speech.Analyzer
	svc      Screener
	now      func() time.Time
}

// NewSpeechTool creates a SpeechTool. When svc is nil, results cannot be saved.
func NewSpeechTool(analyzer *speech.Analyzer, svc Screener) *SpeechTool {
	return &SpeechTool{analyzer: analyzer, svc: svc, now: time.Now}
}

// Definition returns the MCP tool definition for speech_analyze.
func (t *SpeechTool) Definition() mcp.Tool {
	return mcp.NewTool("speech_analyze",
		mcp.WithDescription(
			"Score a speech transcript for fluency, coherence, vocabulary diversity, pause frequency and articulation. "+
				"Pass user_id to record the result as a speech assessment.",
		),
		mcp.WithString("transcript",
			mcp.Required(),
			mcp.Description("Speech-to-text transcript"),
		),
		mcp.WithNumber("duration_seconds",
			mcp.Required(),
			mcp.Description("Length of the recording in seconds"),
		),
		mcp.WithString("pauses",
			mcp.Description("Comma-separated pause lengths in seconds, e.g. '0.8,1.5'"),
		),
		mcp.WithString("user_id",
			mcp.Description("Record the analysis for this profile (optional)"),
		),
	)
}

// Handle processes the speech_analyze tool call.
func (t *SpeechTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	transcript := req.GetString("transcript", "")
	if strings.TrimSpace(transcript) == "" {
		return mcp.NewToolResultError("'transcript' is required"), nil
	}
	duration, ok := floatArg(req, "duration_seconds")
	if !ok {
		return mcp.NewToolResultError("'duration_seconds' is required"), nil
	}
	pauses, err := ParsePauses(req.GetString("pauses", ""))
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	res := t.analyzer.Analyze(transcript, duration, pauses)
	m := res.Metrics

	var sb strings.Builder
	sb.WriteString("## Speech Analysis\n\n")
	sb.WriteString(fmt.Sprintf("- **Words**: %d (%d unique, %d fillers)\n", res.WordCount, res.UniqueWords, res.FillerWords))
	sb.WriteString(fmt.Sprintf("- **Speaking rate**: %.1f words/min\n", res.SpeakingRate))
	sb.WriteString(fmt.Sprintf("- **Pauses**: %d (avg %.2fs)\n\n", res.PauseCount, res.AveragePauseLength))
	sb.WriteString("| Fluency | Coherence | Vocabulary | Pauses | Articulation |\n")
	sb.WriteString("|---|---|---|---|---|\n")
	sb.WriteString(fmt.Sprintf("| %.0f | %.0f | %.0f | %.0f | %.0f |\n",
		m.Fluency, m.Coherence, m.VocabularyDiversity, m.PauseFrequency, m.Articulation))

	userID := strings.TrimSpace(req.GetString("user_id", ""))
	if userID == "" {
		return mcp.NewToolResultText(sb.String()), nil
	}
	if t.svc == nil {
		return mcp.NewToolResultError("recording is not available"), nil
	}
	saved, err := t.svc.Record(ctx, res.Assessment(userID, t.now()))
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to record speech assessment: %v", err)), nil
	}
	sb.WriteString(fmt.Sprintf("\nRecorded as assessment `%s` (score %.0f/%.0f).\n", saved.ID, saved.Score, saved.MaxScore))
	return mcp.NewToolResultText(sb.String()), nil
}
