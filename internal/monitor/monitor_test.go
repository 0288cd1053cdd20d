package monitor

import (
	"strings"
	"testing"
	"time"

	"github.com/verte-zerg/cognicare/internal/model"
)

var now = time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)

func fixedMonitor() *Monitor {
	return New(WithClock(func() time.Time { return now }))
}

func at(typ model.AssessmentType, pct float64, ago time.Duration) model.AssessmentResult {
	return model.AssessmentResult{Type: typ, Score: pct, MaxScore: 100, CompletedAt: now.Add(-ago)}
}

func findAlert(alerts []model.RiskAlert, typ model.AlertType) *model.RiskAlert {
	for i := range alerts {
		if alerts[i].Type == typ {
			return &alerts[i]
		}
	}
	return nil
}

func TestTrendsRequireThreeAssessments(t *testing.T) {
	m := fixedMonitor()
	as := []model.AssessmentResult{at(model.Memory, 80, 2*day), at(model.Memory, 70, day)}
	if got := m.Trends("u", as); len(got) != 0 {
		t.Fatalf("expected no trends, got %d", len(got))
	}
}

func TestTrendsPerDomain(t *testing.T) {
	m := fixedMonitor()
	as := []model.AssessmentResult{
		at(model.Memory, 70, 10*day),
		at(model.Memory, 80, 90*day),
		at(model.Memory, 60, 0),
		at(model.Attention, 50, day),
	}
	got := m.Trends("u", as)
	if len(got) != 1 {
		t.Fatalf("expected memory trend only, got %d", len(got))
	}
	tr := got[0]
	if tr.Domain != model.Memory || tr.UserID != "u" || len(tr.DataPoints) != 3 {
		t.Fatalf("unexpected trend: %+v", tr)
	}
	if !tr.DataPoints[0].Date.Before(tr.DataPoints[2].Date) {
		t.Fatalf("points not ascending: %+v", tr.DataPoints)
	}
	if tr.Trend != model.TrendDeclining {
		t.Fatalf("trend = %s, want declining", tr.Trend)
	}
}

func TestAlertsGate(t *testing.T) {
	m := fixedMonitor()
	profile := &model.UserProfile{ID: "u"}
	old := []model.AssessmentResult{at(model.Memory, 10, 200*day)}
	if got := m.Alerts(profile, old, nil); len(got) != 0 {
		t.Fatalf("expected no alerts with one assessment, got %v", got)
	}
	two := append(old, at(model.Memory, 10, 150*day))
	if got := m.Alerts(nil, two, nil); len(got) != 0 {
		t.Fatalf("expected no alerts without profile, got %v", got)
	}
}

func TestDeclineBoundaryIsMedium(t *testing.T) {
	m := fixedMonitor()
	profile := &model.UserProfile{ID: "u"}
	as := []model.AssessmentResult{
		at(model.Memory, 80, 60*day),
		at(model.Attention, 80, 45*day),
		at(model.Memory, 60, 5*day),
		at(model.Attention, 60, 2*day),
	}
	alert := findAlert(m.Alerts(profile, as, nil), model.AlertSignificantDecline)
	if alert == nil {
		t.Fatalf("expected decline alert")
	}
	if alert.Severity != model.SeverityMedium {
		t.Fatalf("severity = %s, want medium at exactly 25%%", alert.Severity)
	}
	if !strings.Contains(alert.Message, "(25.0% decrease)") {
		t.Fatalf("message = %q", alert.Message)
	}
	if alert.ID != "decline_1717243200000" {
		t.Fatalf("id = %q", alert.ID)
	}
	if len(alert.Recommendations) != 4 || alert.Acknowledged {
		t.Fatalf("unexpected alert: %+v", alert)
	}
}

func TestDeclineHighSeverity(t *testing.T) {
	m := fixedMonitor()
	profile := &model.UserProfile{ID: "u"}
	as := []model.AssessmentResult{
		at(model.Memory, 90, 60*day),
		at(model.Memory, 90, 40*day),
		at(model.Memory, 50, 3*day),
		at(model.Memory, 50, day),
	}
	alert := findAlert(m.Alerts(profile, as, nil), model.AlertSignificantDecline)
	if alert == nil || alert.Severity != model.SeverityHigh {
		t.Fatalf("expected high decline alert, got %+v", alert)
	}
}

func TestDeclineUsesNewestThreePerSide(t *testing.T) {
	m := fixedMonitor()
	profile := &model.UserProfile{ID: "u"}
	as := []model.AssessmentResult{
		at(model.Memory, 100, 100*day),
		at(model.Memory, 80, 50*day),
		at(model.Memory, 80, 40*day),
		at(model.Memory, 80, 35*day),
		at(model.Memory, 60, 3*day),
		at(model.Memory, 60, day),
	}
	alert := findAlert(m.Alerts(profile, as, nil), model.AlertSignificantDecline)
	if alert == nil || alert.Severity != model.SeverityMedium {
		t.Fatalf("oldest record should fall outside the sample: %+v", alert)
	}
}

func TestDeclineNeedsTwoPerSide(t *testing.T) {
	m := fixedMonitor()
	profile := &model.UserProfile{ID: "u"}
	as := []model.AssessmentResult{
		at(model.Memory, 90, 60*day),
		at(model.Memory, 10, 3*day),
		at(model.Memory, 10, day),
	}
	if alert := findAlert(m.Alerts(profile, as, nil), model.AlertSignificantDecline); alert != nil {
		t.Fatalf("unexpected decline alert: %+v", alert)
	}
}

func TestNewHighRisk(t *testing.T) {
	m := fixedMonitor()
	profile := &model.UserProfile{ID: "u"}
	as := []model.AssessmentResult{at(model.Memory, 80, 2*day), at(model.Memory, 80, day)}
	scores := []model.RiskScore{{Score: 69}, {Score: 70}}
	alert := findAlert(m.Alerts(profile, as, scores), model.AlertNewHighRisk)
	if alert == nil || alert.Severity != model.SeverityHigh {
		t.Fatalf("expected new high risk alert, got %+v", alert)
	}
	if !strings.HasPrefix(alert.ID, "high_risk_") {
		t.Fatalf("id = %q", alert.ID)
	}
	stillHigh := []model.RiskScore{{Score: 75}, {Score: 80}}
	if alert := findAlert(m.Alerts(profile, as, stillHigh), model.AlertNewHighRisk); alert != nil {
		t.Fatalf("no transition, got %+v", alert)
	}
}

func TestBaselineDeviation(t *testing.T) {
	m := fixedMonitor()
	profile := &model.UserProfile{ID: "u", Baseline: &model.Baseline{MemoryScore: 80, AttentionScore: 80}}
	as := []model.AssessmentResult{
		at(model.Memory, 60, 3*day),
		at(model.Attention, 70, 2*day),
		at(model.Attention, 10, 20*day),
	}
	alert := findAlert(m.Alerts(profile, as, nil), model.AlertBaselineDeviation)
	if alert == nil || alert.Severity != model.SeverityMedium {
		t.Fatalf("expected baseline alert, got %+v", alert)
	}
	want := "Performance significantly below established baseline: Memory: 25.0% below baseline"
	if alert.Message != want {
		t.Fatalf("message = %q, want %q", alert.Message, want)
	}
}

func TestBaselineZeroValueSkipped(t *testing.T) {
	m := fixedMonitor()
	profile := &model.UserProfile{ID: "u", Baseline: &model.Baseline{}}
	as := []model.AssessmentResult{at(model.Memory, 0, 3*day), at(model.Attention, 0, 2*day)}
	if alert := findAlert(m.Alerts(profile, as, nil), model.AlertBaselineDeviation); alert != nil {
		t.Fatalf("zero baseline should be skipped: %+v", alert)
	}
}

func TestOverdue(t *testing.T) {
	m := fixedMonitor()
	profile := &model.UserProfile{ID: "u"}
	as := []model.AssessmentResult{at(model.Memory, 80, 120*day), at(model.Memory, 80, 95*day+6*time.Hour)}
	alert := findAlert(m.Alerts(profile, as, nil), model.AlertAssessmentNeeded)
	if alert == nil || alert.Severity != model.SeverityLow {
		t.Fatalf("expected overdue alert, got %+v", alert)
	}
	if alert.Message != "Assessment overdue: 95 days since last assessment" {
		t.Fatalf("message = %q", alert.Message)
	}
	recent := []model.AssessmentResult{at(model.Memory, 80, 120*day), at(model.Memory, 80, 90*day)}
	if alert := findAlert(m.Alerts(profile, recent, nil), model.AlertAssessmentNeeded); alert != nil {
		t.Fatalf("exactly 90 days is not overdue: %+v", alert)
	}
}

func TestChecksCombineInOrder(t *testing.T) {
	m := fixedMonitor()
	profile := &model.UserProfile{ID: "u", Baseline: &model.Baseline{MemoryScore: 90, AttentionScore: 90}}
	as := []model.AssessmentResult{
		at(model.Memory, 90, 60*day),
		at(model.Attention, 90, 50*day),
		at(model.Memory, 40, 2*day),
		at(model.Attention, 40, day),
	}
	scores := []model.RiskScore{{Score: 30}, {Score: 72}}
	got := m.Alerts(profile, as, scores)
	if len(got) != 3 {
		t.Fatalf("expected decline, high risk and baseline alerts, got %d: %+v", len(got), got)
	}
	order := []model.AlertType{model.AlertSignificantDecline, model.AlertNewHighRisk, model.AlertBaselineDeviation}
	for i, typ := range order {
		if got[i].Type != typ {
			t.Fatalf("alert %d type = %s, want %s", i, got[i].Type, typ)
		}
	}
}
