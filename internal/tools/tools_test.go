package tools

import (
	"context"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/verte-zerg/cognicare/internal/model"
	"github.com/verte-zerg/cognicare/internal/screening"
	"github.com/verte-zerg/cognicare/internal/speech"
	"github.com/verte-zerg/cognicare/internal/store"
)

// ─── Test helpers ────────────────────────────────────────────────────────────

var now = time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)

// newTestService creates a screening service over a temp store with one profile.
func newTestService(t *testing.T) (*screening.Service, *store.Store) {
	t.Helper()
	st, err := store.Open(filepath.Join(t.TempDir(), "tools.db"))
	if err != nil {
		t.Fatalf("failed to open test store: %v", err)
	}
	t.Cleanup(func() { _ = st.Close() })
	if _, err := st.SaveProfile(context.Background(), model.UserProfile{ID: "u1", Name: "Ada"}); err != nil {
		t.Fatalf("failed to save profile: %v", err)
	}
	return screening.NewService(st, nil, screening.WithClock(func() time.Time { return now })), st
}

// makeReq builds a mcp.CallToolRequest with the given arguments.
func makeReq(args map[string]interface{}) mcp.CallToolRequest {
	req := mcp.CallToolRequest{}
	req.Params.Arguments = args
	return req
}

// resultText extracts the text content from a tool result.
func resultText(r *mcp.CallToolResult) string {
	if r == nil || len(r.Content) == 0 {
		return ""
	}
	for _, c := range r.Content {
		if tc, ok := c.(mcp.TextContent); ok {
			return tc.Text
		}
	}
	return ""
}

func seed(t *testing.T, svc *screening.Service, typ model.AssessmentType, score float64, ago time.Duration) {
	t.Helper()
	if _, err := svc.Record(context.Background(), model.AssessmentResult{
		UserID: "u1", Type: typ, Score: score, MaxScore: 100, CompletedAt: now.Add(-ago),
	}); err != nil {
		t.Fatalf("failed to record: %v", err)
	}
}

const day = 24 * time.Hour

// ─── Definitions ─────────────────────────────────────────────────────────────

func TestDefinitionsRequireUser(t *testing.T) {
	svc, _ := newTestService(t)
	defs := []mcp.Tool{
		NewEvaluateTool(svc).Definition(),
		NewTrendsTool(svc).Definition(),
		NewAlertsTool(svc).Definition(),
		NewRecordTool(svc).Definition(),
	}
	want := []string{"screening_evaluate", "screening_trends", "screening_alerts", "screening_record"}
	for i, def := range defs {
		if def.Name != want[i] {
			t.Errorf("tool name = %q, want %q", def.Name, want[i])
		}
		found := false
		for _, r := range def.InputSchema.Required {
			if r == "user_id" {
				found = true
			}
		}
		if !found {
			t.Errorf("%s: 'user_id' should be required", def.Name)
		}
	}
}

func TestSpeechTool_Definition(t *testing.T) {
	def := NewSpeechTool(speech.NewAnalyzer(nil), nil).Definition()
	if def.Name != "speech_analyze" {
		t.Errorf("tool name = %q", def.Name)
	}
	for _, p := range []string{"transcript", "duration_seconds", "pauses", "user_id"} {
		if _, ok := def.InputSchema.Properties[p]; !ok {
			t.Errorf("missing %q parameter", p)
		}
	}
}

// ─── EvaluateTool ────────────────────────────────────────────────────────────

func TestEvaluateTool_Handle(t *testing.T) {
	svc, _ := newTestService(t)
	tool := NewEvaluateTool(svc)
	ctx := context.Background()

	res, err := tool.Handle(ctx, makeReq(map[string]interface{}{"user_id": "u1"}))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !res.IsError || !strings.Contains(resultText(res), "no assessments") {
		t.Fatalf("expected no-assessments error, got %q", resultText(res))
	}

	seed(t, svc, model.Memory, 80, time.Hour)
	seed(t, svc, model.Attention, 60, 30*time.Minute)
	res, err = tool.Handle(ctx, makeReq(map[string]interface{}{"user_id": "u1"}))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	text := resultText(res)
	if res.IsError || !strings.Contains(text, "**Score**: 17 (Very Low Risk)") || !strings.Contains(text, "**Confidence**: 70%") {
		t.Fatalf("unexpected result: %s", text)
	}

	res, _ = tool.Handle(ctx, makeReq(map[string]interface{}{"user_id": "u1"}))
	if !strings.Contains(resultText(res), "(cached)") {
		t.Fatalf("second call should reuse the score: %s", resultText(res))
	}
	res, _ = tool.Handle(ctx, makeReq(map[string]interface{}{"user_id": "u1", "force": true}))
	if strings.Contains(resultText(res), "(cached)") {
		t.Fatalf("force should recompute: %s", resultText(res))
	}
}

func TestEvaluateTool_Errors(t *testing.T) {
	svc, _ := newTestService(t)
	tool := NewEvaluateTool(svc)
	res, _ := tool.Handle(context.Background(), makeReq(map[string]interface{}{}))
	if !res.IsError {
		t.Fatalf("missing user_id should fail")
	}
	res, _ = tool.Handle(context.Background(), makeReq(map[string]interface{}{"user_id": "ghost"}))
	if !res.IsError || !strings.Contains(resultText(res), "no profile") {
		t.Fatalf("unknown user = %q", resultText(res))
	}
}

// ─── Trends and alerts ───────────────────────────────────────────────────────

func TestTrendsAndAlerts(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()
	req := makeReq(map[string]interface{}{"user_id": "u1"})

	res, _ := NewTrendsTool(svc).Handle(ctx, req)
	if resultText(res) != "Not enough assessments for trend analysis." {
		t.Fatalf("empty trends = %q", resultText(res))
	}
	res, _ = NewAlertsTool(svc).Handle(ctx, req)
	if resultText(res) != "No alerts." {
		t.Fatalf("empty alerts = %q", resultText(res))
	}

	seed(t, svc, model.Memory, 90, 60*day)
	seed(t, svc, model.Memory, 90, 45*day)
	seed(t, svc, model.Memory, 50, 3*day)
	seed(t, svc, model.Memory, 50, day)

	res, _ = NewTrendsTool(svc).Handle(ctx, req)
	if !strings.Contains(resultText(res), "| memory | declining |") {
		t.Fatalf("trends = %s", resultText(res))
	}
	res, _ = NewAlertsTool(svc).Handle(ctx, req)
	text := resultText(res)
	if !strings.Contains(text, "## Alerts (1)") || !strings.Contains(text, "[HIGH] significant_decline") {
		t.Fatalf("alerts = %s", text)
	}
}

// ─── SpeechTool ──────────────────────────────────────────────────────────────

func TestSpeechTool_AnalyzeOnly(t *testing.T) {
	tool := NewSpeechTool(speech.NewAnalyzer(nil), nil)
	res, err := tool.Handle(context.Background(), makeReq(map[string]interface{}{
		"transcript":       "The cat sat on the mat. It was a sunny day.",
		"duration_seconds": float64(6),
		"pauses":           "1.0",
	}))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	text := resultText(res)
	if res.IsError || !strings.Contains(text, "| 73 | 37 | 100 | 96 | 91 |") {
		t.Fatalf("unexpected analysis: %s", text)
	}
	if strings.Contains(text, "Recorded") {
		t.Fatalf("analysis without user_id should not record")
	}
}

func TestSpeechTool_Records(t *testing.T) {
	svc, st := newTestService(t)
	tool := NewSpeechTool(speech.NewAnalyzer(nil), svc)
	tool.now = func() time.Time { return now }
	res, _ := tool.Handle(context.Background(), makeReq(map[string]interface{}{
		"transcript":       "I went to the market and bought apples",
		"duration_seconds": float64(5),
		"user_id":          "u1",
	}))
	if res.IsError || !strings.Contains(resultText(res), "(score 20/100)") {
		t.Fatalf("unexpected result: %s", resultText(res))
	}
	as, err := st.ListAssessments(context.Background(), "u1")
	if err != nil || len(as) != 1 || as[0].Type != model.Speech {
		t.Fatalf("assessments = %+v, %v", as, err)
	}
	d, ok := as[0].Details.(model.SpeechDetails)
	if !ok || d.Metrics == nil {
		t.Fatalf("details = %#v", as[0].Details)
	}
}

func TestSpeechTool_Validation(t *testing.T) {
	tool := NewSpeechTool(speech.NewAnalyzer(nil), nil)
	cases := []map[string]interface{}{
		{"duration_seconds": float64(5)},
		{"transcript": "hello"},
		{"transcript": "hello", "duration_seconds": float64(5), "pauses": "1,abc"},
		{"transcript": "hello", "duration_seconds": float64(5), "user_id": "u1"},
	}
	for i, args := range cases {
		res, _ := tool.Handle(context.Background(), makeReq(args))
		if !res.IsError {
			t.Errorf("case %d: expected error, got %q", i, resultText(res))
		}
	}
}

// ─── RecordTool ──────────────────────────────────────────────────────────────

func TestRecordTool_Handle(t *testing.T) {
	svc, st := newTestService(t)
	tool := NewRecordTool(svc)
	res, _ := tool.Handle(context.Background(), makeReq(map[string]interface{}{
		"user_id":      "u1",
		"type":         "memory",
		"score":        float64(8),
		"max_score":    float64(10),
		"duration_ms":  float64(90000),
		"details":      `{"shoppingScore": 4, "pairsScore": 4}`,
		"completed_at": "2024-05-20T10:00:00Z",
	}))
	if res.IsError {
		t.Fatalf("unexpected error: %s", resultText(res))
	}
	as, err := st.ListAssessments(context.Background(), "u1")
	if err != nil || len(as) != 1 {
		t.Fatalf("assessments = %+v, %v", as, err)
	}
	if as[0].DurationMs != 90000 || as[0].CompletedAt.Day() != 20 {
		t.Fatalf("unexpected assessment: %+v", as[0])
	}
	if d, ok := as[0].Details.(model.MemoryDetails); !ok || d.PairsScore != 4 {
		t.Fatalf("details = %#v", as[0].Details)
	}
}

func TestRecordTool_Errors(t *testing.T) {
	svc, _ := newTestService(t)
	tool := NewRecordTool(svc)
	base := map[string]interface{}{"user_id": "u1", "type": "memory", "score": float64(1), "max_score": float64(2)}
	mutate := []func(map[string]interface{}){
		func(m map[string]interface{}) { m["type"] = "reading" },
		func(m map[string]interface{}) { delete(m, "score") },
		func(m map[string]interface{}) { delete(m, "max_score") },
		func(m map[string]interface{}) { m["details"] = "{not json" },
		func(m map[string]interface{}) { m["completed_at"] = "yesterday" },
		func(m map[string]interface{}) { m["user_id"] = "ghost" },
	}
	for i, fn := range mutate {
		args := map[string]interface{}{}
		for k, v := range base {
			args[k] = v
		}
		fn(args)
		res, _ := tool.Handle(context.Background(), makeReq(args))
		if !res.IsError {
			t.Errorf("case %d: expected error, got %q", i, resultText(res))
		}
	}
}

func TestParsePauses(t *testing.T) {
	got, err := ParsePauses(" 0.5, 1.25 ,,2 ")
	if err != nil || len(got) != 3 || got[1] != 1.25 {
		t.Fatalf("ParsePauses = %v, %v", got, err)
	}
	if got, err := ParsePauses(""); err != nil || got != nil {
		t.Fatalf("empty = %v, %v", got, err)
	}
	if _, err := ParsePauses("-1"); err == nil {
		t.Fatalf("negative pause should fail")
	}
}
