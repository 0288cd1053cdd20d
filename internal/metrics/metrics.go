// Package metrics reduces assessment records into the metric vectors used for scoring.
package metrics

import "github.com/verte-zerg/cognicare/internal/model"

// DefaultDomainScore substitutes for a cognitive domain with no valid records.
const DefaultDomainScore = 50.0

// Percentage returns score/maxScore*100. ok is false when maxScore is not positive.
func Percentage(a model.AssessmentResult) (pct float64, ok bool) {
	if a.MaxScore <= 0 {
		return 0, false
	}
	return a.Score / a.MaxScore * 100, true
}

// DomainAverage averages the percentage of every valid record of type t.
func DomainAverage(assessments []model.AssessmentResult, t model.AssessmentType) (avg float64, ok bool) {
	var sum float64
	var n int
	for _, a := range assessments {
		if a.Type != t {
			continue
		}
		pct, valid := Percentage(a)
		if !valid {
			continue
		}
		sum += pct
		n++
	}
	if n == 0 {
		return 0, false
	}
	return sum / float64(n), true
}

// Cognitive builds the cognitive vector. Processing speed mirrors attention and
// executive function is the mean of memory and attention.
func Cognitive(assessments []model.AssessmentResult) model.CognitiveMetrics {
	memory := averageOrDefault(assessments, model.Memory)
	attention := averageOrDefault(assessments, model.Attention)
	visuospatial := averageOrDefault(assessments, model.Visuospatial)
	return model.CognitiveMetrics{
		MemoryScore:       memory,
		AttentionScore:    attention,
		VisuospatialScore: visuospatial,
		ProcessingSpeed:   attention,
		ExecutiveFunction: (memory + attention) / 2,
	}
}

// Speech returns the metrics stored on the most recent speech record, or nil.
func Speech(assessments []model.AssessmentResult) *model.SpeechMetrics {
	for i := len(assessments) - 1; i >= 0; i-- {
		if assessments[i].Type != model.Speech {
			continue
		}
		d, ok := assessments[i].Details.(model.SpeechDetails)
		if !ok || d.Metrics == nil {
			return nil
		}
		m := *d.Metrics
		return &m
	}
	return nil
}

// Behavioral returns the metrics stored on the most recent behavioral record, or nil.
func Behavioral(assessments []model.AssessmentResult) *model.BehavioralMetrics {
	for i := len(assessments) - 1; i >= 0; i-- {
		if assessments[i].Type != model.Behavioral {
			continue
		}
		d, ok := assessments[i].Details.(model.BehavioralDetails)
		if !ok || d.Metrics == nil {
			return nil
		}
		m := *d.Metrics
		return &m
	}
	return nil
}

func averageOrDefault(assessments []model.AssessmentResult, t model.AssessmentType) float64 {
	if avg, ok := DomainAverage(assessments, t); ok {
		return avg
	}
	return DefaultDomainScore
}
