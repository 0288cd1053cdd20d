package stats

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/verte-zerg/cognicare/internal/model"
)

func TestMovingAverage(t *testing.T) {
	got := MovingAverage([]float64{10, 20, 30, 40}, 2)
	want := []float64{10, 15, 25, 35}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("MovingAverage = %v, want %v", got, want)
		}
	}
}

func TestSparkline(t *testing.T) {
	if got := Sparkline([]float64{0, 50, 100, 140}); got != " +@@" {
		t.Fatalf("Sparkline = %q", got)
	}
}

func TestRenderRiskSummary(t *testing.T) {
	var buf bytes.Buffer
	scores := []model.RiskScore{
		{Score: 20, Confidence: 70, GeneratedAt: time.Unix(0, 0)},
		{Score: 72, Confidence: 90, Factors: model.RiskFactors{Cognitive: 80, Speech: 60}, Recommendations: []string{"See a doctor"}, GeneratedAt: time.Unix(60, 0)},
	}
	if err := RenderRiskSummary(&buf, scores); err != nil {
		t.Fatalf("render: %v", err)
	}
	out := buf.String()
	for _, want := range []string{"Score: 72 (High Risk)", "Confidence: 90%", "cognitive 80, speech 60, behavioral 0", "  - See a doctor"} {
		if !strings.Contains(out, want) {
			t.Fatalf("summary missing %q:\n%s", want, out)
		}
	}
}

func TestRenderEmptySections(t *testing.T) {
	var buf bytes.Buffer
	if err := RenderRiskSummary(&buf, nil); err != nil {
		t.Fatalf("summary: %v", err)
	}
	if err := RenderTrendTable(&buf, nil); err != nil {
		t.Fatalf("trends: %v", err)
	}
	if err := RenderAlerts(&buf, nil); err != nil {
		t.Fatalf("alerts: %v", err)
	}
	if err := RenderAssessmentTable(&buf, nil); err != nil {
		t.Fatalf("assessments: %v", err)
	}
	want := "No risk scores found.\nNot enough assessments for trend analysis.\nNo alerts.\nNo assessments found.\n"
	if buf.String() != want {
		t.Fatalf("output = %q", buf.String())
	}
}

func TestRenderAlerts(t *testing.T) {
	var buf bytes.Buffer
	alerts := []model.RiskAlert{{
		Type:            model.AlertAssessmentNeeded,
		Severity:        model.SeverityLow,
		Message:         "Assessment overdue: 95 days since last assessment",
		Recommendations: []string{"Schedule an assessment"},
	}}
	if err := RenderAlerts(&buf, alerts); err != nil {
		t.Fatalf("render: %v", err)
	}
	if !strings.Contains(buf.String(), "[LOW] assessment_needed: Assessment overdue: 95 days") {
		t.Fatalf("unexpected output:\n%s", buf.String())
	}
}

func TestAssessmentRowsInvalidMax(t *testing.T) {
	_, rows := AssessmentRows([]model.AssessmentResult{
		{Type: model.Memory, Score: 8, MaxScore: 10, DurationMs: 1500},
		{Type: model.Attention, Score: 3, MaxScore: 0},
	})
	if rows[0][3] != "80.0%" || rows[0][4] != "1.5s" {
		t.Fatalf("row 0 = %v", rows[0])
	}
	if rows[1][3] != "n/a" {
		t.Fatalf("row 1 = %v", rows[1])
	}
}

func TestRenderTrendPlots(t *testing.T) {
	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	trends := []model.TrendAnalysis{{
		Domain:     model.Memory,
		Trend:      model.TrendDeclining,
		ChangeRate: -10,
		DataPoints: []model.DataPoint{
			{Date: base, Score: 90},
			{Date: base.AddDate(0, 1, 0), Score: 80},
			{Date: base.AddDate(0, 2, 0), Score: 70},
		},
	}}
	var buf bytes.Buffer
	if err := RenderTrendPlotsWithSize(&buf, trends, 40, 4, false); err != nil {
		t.Fatalf("render: %v", err)
	}
	if !strings.Contains(buf.String(), "Memory (declining, -10.00/month)") {
		t.Fatalf("unexpected title:\n%s", buf.String())
	}
}
