// Package stats renders screening history as text tables and braille plots.
package stats

import (
	"fmt"
	"io"
	"math"
	"strings"

	"github.com/verte-zerg/cognicare/internal/metrics"
	"github.com/verte-zerg/cognicare/internal/model"
	"github.com/verte-zerg/cognicare/internal/monitor"
	"github.com/verte-zerg/cognicare/internal/risk"
)

const sparkChars = " .:-=+*#%@"

// MovingAverage computes a rolling mean over the provided window size.
func MovingAverage(values []float64, window int) []float64 {
	out := make([]float64, len(values))
	if window <= 1 {
		copy(out, values)
		return out
	}
	var sum float64
	for i, v := range values {
		sum += v
		if i >= window {
			sum -= values[i-window]
		}
		out[i] = sum / float64(min(i+1, window))
	}
	return out
}

// Sparkline renders a single-line ASCII sparkline on the 0-100 scale.
func Sparkline(values []float64) string {
	var b strings.Builder
	for _, v := range values {
		pos := math.Max(0, math.Min(1, v/100))
		b.WriteByte(sparkChars[int(math.Round(pos*float64(len(sparkChars)-1)))])
	}
	return b.String()
}

// RenderRiskSummary prints the newest score, its band and the score history.
func RenderRiskSummary(w io.Writer, scores []model.RiskScore) error {
	if len(scores) == 0 {
		_, err := fmt.Fprintln(w, "No risk scores found.")
		return err
	}
	latest := scores[len(scores)-1]
	level := risk.Level(latest.Score)
	history := make([]float64, len(scores))
	for i, s := range scores {
		history[i] = float64(s.Score)
	}

	lines := []string{
		"Risk Summary",
		fmt.Sprintf("Score: %d (%s)", latest.Score, level.Label),
		level.Description,
		fmt.Sprintf("Confidence: %d%%", latest.Confidence),
		fmt.Sprintf("Factors: cognitive %d, speech %d, behavioral %d",
			latest.Factors.Cognitive, latest.Factors.Speech, latest.Factors.Behavioral),
		fmt.Sprintf("Generated: %s", latest.GeneratedAt.Local().Format("2006-01-02 15:04")),
		fmt.Sprintf("History: [%s]", Sparkline(history)),
	}
	if len(latest.Recommendations) > 0 {
		lines = append(lines, "Recommendations:")
		for _, rec := range latest.Recommendations {
			lines = append(lines, "  - "+rec)
		}
	}
	return writeLines(w, lines)
}

// RenderTrendTable prints one row per analysed domain.
func RenderTrendTable(w io.Writer, trends []model.TrendAnalysis) error {
	if len(trends) == 0 {
		_, err := fmt.Fprintln(w, "Not enough assessments for trend analysis.")
		return err
	}
	headers := []string{"Domain", "Trend", "Change/Month", "Significance", "Points"}
	rows := make([][]string, 0, len(trends))
	for _, t := range trends {
		rows = append(rows, []string{
			string(t.Domain),
			string(t.Trend),
			fmt.Sprintf("%+.2f", t.ChangeRate),
			fmt.Sprintf("%.2f", t.Significance),
			fmt.Sprintf("%d", len(t.DataPoints)),
		})
	}
	lines := append([]string{"Trends"}, formatTable(headers, rows, map[int]bool{2: true, 3: true, 4: true})...)
	return writeLines(w, lines)
}

// RenderAlerts prints every alert with its recommendations.
func RenderAlerts(w io.Writer, alerts []model.RiskAlert) error {
	if len(alerts) == 0 {
		_, err := fmt.Fprintln(w, "No alerts.")
		return err
	}
	lines := []string{"Alerts"}
	for _, a := range alerts {
		lines = append(lines, fmt.Sprintf("[%s] %s: %s", strings.ToUpper(string(a.Severity)), a.Type, a.Message))
		for _, rec := range a.Recommendations {
			lines = append(lines, "  - "+rec)
		}
	}
	return writeLines(w, lines)
}

// RenderAssessmentTable prints recorded assessments, oldest first.
func RenderAssessmentTable(w io.Writer, assessments []model.AssessmentResult) error {
	if len(assessments) == 0 {
		_, err := fmt.Fprintln(w, "No assessments found.")
		return err
	}
	headers, rows := AssessmentRows(assessments)
	lines := append([]string{"Assessments"}, formatTable(headers, rows, map[int]bool{2: true, 3: true, 4: true})...)
	return writeLines(w, lines)
}

// AssessmentRows returns the table headers and rows shared by the CLI and TUI.
func AssessmentRows(assessments []model.AssessmentResult) ([]string, [][]string) {
	headers := []string{"Completed", "Type", "Score", "Percent", "Duration"}
	rows := make([][]string, 0, len(assessments))
	for _, a := range assessments {
		pct := "n/a"
		if v, ok := metrics.Percentage(a); ok {
			pct = fmt.Sprintf("%.1f%%", v)
		}
		rows = append(rows, []string{
			a.CompletedAt.Local().Format("2006-01-02 15:04"),
			string(a.Type),
			fmt.Sprintf("%g/%g", a.Score, a.MaxScore),
			pct,
			fmt.Sprintf("%.1fs", float64(a.DurationMs)/1000),
		})
	}
	return headers, rows
}

// RenderTrendPlots plots each domain series with its fitted line.
func RenderTrendPlots(w io.Writer, trends []model.TrendAnalysis) error {
	return RenderTrendPlotsWithSize(w, trends, 0, defaultPlotHeight, false)
}

// RenderTrendPlotsWithSize plots each domain sized to a given total width.
func RenderTrendPlotsWithSize(w io.Writer, trends []model.TrendAnalysis, totalWidth, height int, useColor bool) error {
	width := 0
	if totalWidth > 0 {
		width = PlotWidthFor(totalWidth)
	}
	for _, t := range trends {
		values := make([]float64, len(t.DataPoints))
		for i, p := range t.DataPoints {
			values[i] = p.Score
		}
		title := fmt.Sprintf("%s (%s, %+.2f/month)", titleCase(string(t.Domain)), t.Trend, t.ChangeRate)
		if err := PlotSeriesWithColor(w, title, []Series{
			{Name: "Score", Values: values},
			{Name: "Fit", Values: monitor.Fitted(t.DataPoints)},
		}, width, height, useColor); err != nil {
			return err
		}
	}
	return nil
}

// RenderRiskHistoryWithSize plots overall risk with its moving average.
func RenderRiskHistoryWithSize(w io.Writer, scores []model.RiskScore, window, totalWidth, height int, useColor bool) error {
	if len(scores) == 0 {
		return nil
	}
	values := make([]float64, len(scores))
	for i, s := range scores {
		values[i] = float64(s.Score)
	}
	width := 0
	if totalWidth > 0 {
		width = PlotWidthFor(totalWidth)
	}
	return PlotSeriesWithColor(w, "Risk History", []Series{
		{Name: "Risk", Values: values},
		{Name: fmt.Sprintf("Avg(%d)", window), Values: MovingAverage(values, window)},
	}, width, height, useColor)
}

func titleCase(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}

func writeLines(w io.Writer, lines []string) error {
	for _, line := range lines {
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	_, err := fmt.Fprintln(w, "")
	return err
}
