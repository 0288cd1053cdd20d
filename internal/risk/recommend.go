package risk

import "github.com/verte-zerg/cognicare/internal/model"

const factorThreshold = 50

// Recommendations returns the tier advice for score followed by one entry per
// domain factor above 50, in cognitive, speech, behavioral order.
func Recommendations(score int, factors model.RiskFactors) []string {
	var recs []string
	switch {
	case score >= 70:
		recs = append(recs,
			"Immediate consultation with a neurologist or geriatrician is recommended",
			"Consider comprehensive neuropsychological testing",
		)
	case score >= 40:
		recs = append(recs,
			"Schedule follow-up assessment in 3-6 months",
			"Discuss results with primary care physician",
		)
	case score >= 20:
		recs = append(recs,
			"Continue regular monitoring with annual assessments",
			"Maintain cognitive stimulation activities",
		)
	default:
		recs = append(recs, "Continue current lifestyle and reassess annually")
	}

	if factors.Cognitive > factorThreshold {
		recs = append(recs, "Engage in memory training exercises and cognitive stimulation")
	}
	if factors.Speech > factorThreshold {
		recs = append(recs, "Consider speech therapy evaluation")
	}
	if factors.Behavioral > factorThreshold {
		recs = append(recs, "Focus on maintaining regular sleep schedule and social activities")
	}
	return recs
}
