package monitor

import (
	"fmt"
	"math"
	"sort"
	"strings"
	"time"

	"github.com/verte-zerg/cognicare/internal/metrics"
	"github.com/verte-zerg/cognicare/internal/model"
	"github.com/verte-zerg/cognicare/internal/risk"
)

const (
	day = 24 * time.Hour

	declineWindow       = 30 * day
	declineSample       = 3
	declineMinPerSide   = 2
	declineThreshold    = 15.0
	declineHighSeverity = 25.0

	baselineWindow    = 14 * day
	baselineThreshold = 20.0

	overdueAfter = 90 * day
)

// Monitor derives trends and alerts. Its clock is injectable for tests.
type Monitor struct {
	now func() time.Time
}

// Option configures a Monitor.
type Option func(*Monitor)

// WithClock overrides the wall clock.
func WithClock(now func() time.Time) Option {
	return func(m *Monitor) {
		m.now = now
	}
}

// New builds a Monitor.
func New(opts ...Option) *Monitor {
	m := &Monitor{now: time.Now}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Trends fits one analysis per domain with at least three valid records.
// Nothing is returned when the user has fewer than three assessments overall.
func (m *Monitor) Trends(userID string, assessments []model.AssessmentResult) []model.TrendAnalysis {
	if len(assessments) < minTrendRecords {
		return nil
	}
	var out []model.TrendAnalysis
	for _, domain := range TrendDomains {
		points := Series(assessments, domain)
		if len(points) < minTrendRecords {
			continue
		}
		fit := FitTrend(points)
		out = append(out, model.TrendAnalysis{
			UserID:       userID,
			Domain:       domain,
			Trend:        fit.Trend,
			ChangeRate:   fit.ChangeRate,
			Significance: fit.Significance,
			DataPoints:   points,
		})
	}
	return out
}

// Alerts runs the decline, high-risk, baseline and overdue checks. Each check
// contributes at most one alert. A nil profile or fewer than two assessments
// yields none.
func (m *Monitor) Alerts(profile *model.UserProfile, assessments []model.AssessmentResult, scores []model.RiskScore) []model.RiskAlert {
	if profile == nil || len(assessments) < 2 {
		return nil
	}
	now := m.now()
	sorted := newestFirst(assessments)

	var alerts []model.RiskAlert
	checks := []func() *model.RiskAlert{
		func() *model.RiskAlert { return m.checkDecline(profile.ID, sorted, now) },
		func() *model.RiskAlert { return m.checkNewHighRisk(profile.ID, scores, now) },
		func() *model.RiskAlert { return m.checkBaseline(profile.ID, profile.Baseline, sorted, now) },
		func() *model.RiskAlert { return m.checkOverdue(profile.ID, sorted, now) },
	}
	for _, check := range checks {
		if alert := check(); alert != nil {
			alerts = append(alerts, *alert)
		}
	}
	return alerts
}

func (m *Monitor) checkDecline(userID string, sorted []model.AssessmentResult, now time.Time) *model.RiskAlert {
	cutoff := now.Add(-declineWindow)
	var recent, older []float64
	for _, a := range sorted {
		pct, ok := metrics.Percentage(a)
		if !ok {
			continue
		}
		if a.CompletedAt.After(cutoff) {
			recent = append(recent, pct)
		} else {
			older = append(older, pct)
		}
	}
	if len(recent) < declineMinPerSide || len(older) < declineMinPerSide {
		return nil
	}
	recentAvg := mean(recent[:min(declineSample, len(recent))])
	olderAvg := mean(older[:min(declineSample, len(older))])
	if olderAvg == 0 {
		return nil
	}
	decline := (olderAvg - recentAvg) / olderAvg * 100
	if decline <= declineThreshold {
		return nil
	}
	severity := model.SeverityMedium
	if decline > declineHighSeverity {
		severity = model.SeverityHigh
	}
	return m.alert(userID, "decline", model.AlertSignificantDecline, severity, now,
		fmt.Sprintf("Significant decline detected in cognitive performance (%.1f%% decrease)", decline),
		"Schedule follow-up assessment within 2 weeks",
		"Consider consultation with healthcare provider",
		"Review recent lifestyle changes or stressors",
		"Ensure adequate sleep and nutrition",
	)
}

func (m *Monitor) checkNewHighRisk(userID string, scores []model.RiskScore, now time.Time) *model.RiskAlert {
	if len(scores) < 2 {
		return nil
	}
	latest := scores[len(scores)-1]
	previous := scores[len(scores)-2]
	if !risk.IsHigh(latest.Score) || risk.IsHigh(previous.Score) {
		return nil
	}
	return m.alert(userID, "high_risk", model.AlertNewHighRisk, model.SeverityHigh, now,
		"Risk classification has changed to High Risk",
		"Immediate consultation with neurologist or geriatrician recommended",
		"Consider comprehensive neuropsychological testing",
		"Discuss results with primary care physician",
		"Schedule follow-up assessment in 3 months",
	)
}

func (m *Monitor) checkBaseline(userID string, baseline *model.Baseline, sorted []model.AssessmentResult, now time.Time) *model.RiskAlert {
	if baseline == nil {
		return nil
	}
	cutoff := now.Add(-baselineWindow)
	var recent []model.AssessmentResult
	for _, a := range sorted {
		if a.CompletedAt.After(cutoff) {
			recent = append(recent, a)
		}
	}
	if len(recent) == 0 {
		return nil
	}

	var deviations []string
	domains := []struct {
		label string
		typ   model.AssessmentType
		ref   float64
	}{
		{"Memory", model.Memory, baseline.MemoryScore},
		{"Attention", model.Attention, baseline.AttentionScore},
	}
	for _, d := range domains {
		if d.ref <= 0 {
			continue
		}
		avg, ok := metrics.DomainAverage(recent, d.typ)
		if !ok {
			continue
		}
		deviation := (d.ref - avg) / d.ref * 100
		if deviation > baselineThreshold {
			deviations = append(deviations, fmt.Sprintf("%s: %.1f%% below baseline", d.label, deviation))
		}
	}
	if len(deviations) == 0 {
		return nil
	}
	return m.alert(userID, "baseline", model.AlertBaselineDeviation, model.SeverityMedium, now,
		"Performance significantly below established baseline: "+strings.Join(deviations, ", "),
		"Schedule comprehensive re-assessment",
		"Review recent health changes or medications",
		"Consider stress management techniques",
		"Discuss with healthcare provider",
	)
}

func (m *Monitor) checkOverdue(userID string, sorted []model.AssessmentResult, now time.Time) *model.RiskAlert {
	if len(sorted) == 0 {
		return nil
	}
	since := now.Sub(sorted[0].CompletedAt)
	if since <= overdueAfter {
		return nil
	}
	days := int(math.Floor(since.Hours() / 24))
	return m.alert(userID, "overdue", model.AlertAssessmentNeeded, model.SeverityLow, now,
		fmt.Sprintf("Assessment overdue: %d days since last assessment", days),
		"Schedule regular cognitive assessment",
		"Maintain consistent monitoring schedule",
		"Consider setting assessment reminders",
	)
}

func (m *Monitor) alert(userID, prefix string, typ model.AlertType, severity model.Severity, now time.Time, message string, recs ...string) *model.RiskAlert {
	return &model.RiskAlert{
		ID:              fmt.Sprintf("%s_%d", prefix, now.UnixMilli()),
		UserID:          userID,
		Type:            typ,
		Severity:        severity,
		Message:         message,
		Recommendations: recs,
		CreatedAt:       now,
	}
}

func newestFirst(assessments []model.AssessmentResult) []model.AssessmentResult {
	out := make([]model.AssessmentResult, len(assessments))
	copy(out, assessments)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].CompletedAt.After(out[j].CompletedAt)
	})
	return out
}

func mean(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	var sum float64
	for _, v := range values {
		sum += v
	}
	return sum / float64(len(values))
}
