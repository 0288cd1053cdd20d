// Package monitor fits domain trends and raises threshold alerts.
package monitor

import (
	"math"
	"sort"
	"time"

	"gonum.org/v1/gonum/stat"

	"github.com/verte-zerg/cognicare/internal/metrics"
	"github.com/verte-zerg/cognicare/internal/model"
)

const (
	msPerMonth      = float64(30 * 24 * time.Hour / time.Millisecond)
	stableThreshold = 1.0
	minTrendRecords = 3
	minTrendPoints  = 2
)

// TrendDomains are the domains that receive a trend analysis.
var TrendDomains = []model.AssessmentType{model.Memory, model.Attention, model.Visuospatial, model.Speech}

// Fit is the trend classification of one series.
type Fit struct {
	Trend        model.Trend
	ChangeRate   float64
	Significance float64
}

// FitTrend regresses score on epoch milliseconds. changeRate is the slope per
// 30 days and significance is the absolute Pearson correlation.
func FitTrend(points []model.DataPoint) Fit {
	if len(points) < minTrendPoints {
		return Fit{Trend: model.TrendStable}
	}
	xs, ys := regressionInputs(points)
	_, slope := stat.LinearRegression(xs, ys, nil, false)
	changeRate := finite(slope * msPerMonth)
	significance := math.Abs(finite(stat.Correlation(xs, ys, nil)))

	return Fit{
		Trend:        classify(changeRate),
		ChangeRate:   changeRate,
		Significance: significance,
	}
}

// Fitted evaluates the regression line at every point, for overlaying the fit
// on a plot. Fewer than two points are returned unchanged.
func Fitted(points []model.DataPoint) []float64 {
	out := make([]float64, len(points))
	if len(points) < minTrendPoints {
		for i, p := range points {
			out[i] = p.Score
		}
		return out
	}
	xs, ys := regressionInputs(points)
	alpha, beta := stat.LinearRegression(xs, ys, nil, false)
	alpha, beta = finite(alpha), finite(beta)
	for i, x := range xs {
		out[i] = alpha + beta*x
	}
	return out
}

func regressionInputs(points []model.DataPoint) ([]float64, []float64) {
	// Offsets from the first point keep the regression well conditioned;
	// slope and correlation are shift invariant.
	origin := points[0].Date.UnixMilli()
	xs := make([]float64, len(points))
	ys := make([]float64, len(points))
	for i, p := range points {
		xs[i] = float64(p.Date.UnixMilli() - origin)
		ys[i] = p.Score
	}
	return xs, ys
}

func classify(changeRate float64) model.Trend {
	switch {
	case math.Abs(changeRate) < stableThreshold:
		return model.TrendStable
	case changeRate > 0:
		return model.TrendImproving
	default:
		return model.TrendDeclining
	}
}

// Series returns the valid percentage points of one domain, oldest first.
func Series(assessments []model.AssessmentResult, domain model.AssessmentType) []model.DataPoint {
	var points []model.DataPoint
	for _, a := range assessments {
		if a.Type != domain {
			continue
		}
		pct, ok := metrics.Percentage(a)
		if !ok {
			continue
		}
		points = append(points, model.DataPoint{Date: a.CompletedAt, Score: pct})
	}
	sort.SliceStable(points, func(i, j int) bool {
		return points[i].Date.Before(points[j].Date)
	})
	return points
}

func finite(v float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}
	return v
}
