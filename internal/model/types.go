// Package model defines shared data structures.
package model

import "time"

// CognitiveMetrics holds per-domain performance on a 0-100 scale.
// Values are not clamped at extraction time.
type CognitiveMetrics struct {
	MemoryScore       float64 `json:"memoryScore"`
	AttentionScore    float64 `json:"attentionScore"`
	VisuospatialScore float64 `json:"visuospatialScore"`
	ProcessingSpeed   float64 `json:"processingSpeed"`
	ExecutiveFunction float64 `json:"executiveFunction"`
}

// SpeechMetrics holds heuristic speech scores derived from one transcript.
type SpeechMetrics struct {
	Fluency             float64 `json:"fluency" yaml:"fluency"`
	Coherence           float64 `json:"coherence" yaml:"coherence"`
	VocabularyDiversity float64 `json:"vocabularyDiversity" yaml:"vocabularyDiversity"`
	PauseFrequency      float64 `json:"pauseFrequency" yaml:"pauseFrequency"`
	Articulation        float64 `json:"articulation" yaml:"articulation"`
}

// BehavioralMetrics holds daily-life pattern scores.
type BehavioralMetrics struct {
	ActivityLevel     float64 `json:"activityLevel" yaml:"activityLevel"`
	SleepPattern      float64 `json:"sleepPattern" yaml:"sleepPattern"`
	SocialInteraction float64 `json:"socialInteraction" yaml:"socialInteraction"`
	RoutineAdherence  float64 `json:"routineAdherence" yaml:"routineAdherence"`
}

// RiskFactors are the per-domain risk scores, rounded to integers.
type RiskFactors struct {
	Cognitive  int `json:"cognitive" yaml:"cognitive"`
	Speech     int `json:"speech" yaml:"speech"`
	Behavioral int `json:"behavioral" yaml:"behavioral"`
}

// RiskScore is one persisted scoring event.
type RiskScore struct {
	ID              string      `json:"id" yaml:"id"`
	UserID          string      `json:"userId" yaml:"userId"`
	Score           int         `json:"score" yaml:"score"`
	Confidence      int         `json:"confidence" yaml:"confidence"`
	Factors         RiskFactors `json:"factors" yaml:"factors"`
	Recommendations []string    `json:"recommendations" yaml:"recommendations"`
	GeneratedAt     time.Time   `json:"generatedAt" yaml:"generatedAt"`
}

// AlertType classifies a risk alert.
type AlertType string

const (
	AlertSignificantDecline AlertType = "significant_decline"
	AlertNewHighRisk        AlertType = "new_high_risk"
	AlertBaselineDeviation  AlertType = "baseline_deviation"
	AlertAssessmentNeeded   AlertType = "assessment_needed"
)

// Severity of a risk alert.
type Severity string

const (
	SeverityLow    Severity = "low"
	SeverityMedium Severity = "medium"
	SeverityHigh   Severity = "high"
)

// RiskAlert is a derived, unpersisted threshold-crossing notice.
type RiskAlert struct {
	ID              string    `json:"id"`
	UserID          string    `json:"userId"`
	Type            AlertType `json:"type"`
	Severity        Severity  `json:"severity"`
	Message         string    `json:"message"`
	Recommendations []string  `json:"recommendations"`
	CreatedAt       time.Time `json:"createdAt"`
	Acknowledged    bool      `json:"acknowledged"`
}

// Trend direction of a fitted series.
type Trend string

const (
	TrendImproving Trend = "improving"
	TrendStable    Trend = "stable"
	TrendDeclining Trend = "declining"
)

// DataPoint is one percentage score at a point in time.
type DataPoint struct {
	Date  time.Time `json:"date"`
	Score float64   `json:"score"`
}

// TrendAnalysis describes the linear trend of one domain.
type TrendAnalysis struct {
	UserID       string         `json:"userId"`
	Domain       AssessmentType `json:"domain"`
	Trend        Trend          `json:"trend"`
	ChangeRate   float64        `json:"changeRate"`
	Significance float64        `json:"significance"`
	DataPoints   []DataPoint    `json:"dataPoints"`
}

// DashboardConfig defines filters for the stats dashboard.
type DashboardConfig struct {
	UserID string
	Since  *time.Time
	Last   int
}
