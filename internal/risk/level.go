package risk

// RiskLevel is the display band for an overall score.
type RiskLevel struct {
	Label       string
	Description string
}

// Level maps a score onto its display band.
func Level(score int) RiskLevel {
	switch {
	case score >= 70:
		return RiskLevel{Label: "High Risk", Description: "Significant cognitive concerns detected"}
	case score >= 40:
		return RiskLevel{Label: "Moderate Risk", Description: "Some cognitive changes observed"}
	case score >= 20:
		return RiskLevel{Label: "Low Risk", Description: "Minimal cognitive concerns"}
	default:
		return RiskLevel{Label: "Very Low Risk", Description: "Cognitive function appears normal"}
	}
}

// IsHigh reports whether score falls in the high band.
func IsHigh(score int) bool {
	return score >= 70
}
