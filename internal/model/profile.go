package model

import "time"

// Baseline is the first-established reference for a user's cognitive scores.
type Baseline struct {
	MemoryScore       float64   `json:"memoryScore" yaml:"memoryScore"`
	AttentionScore    float64   `json:"attentionScore" yaml:"attentionScore"`
	VisuospatialScore float64   `json:"visuospatialScore" yaml:"visuospatialScore"`
	EstablishedAt     time.Time `json:"establishedAt" yaml:"establishedAt"`
}

// EmergencyContact is the person to reach on the user's behalf.
type EmergencyContact struct {
	Name         string `json:"name" yaml:"name"`
	Phone        string `json:"phone" yaml:"phone"`
	Relationship string `json:"relationship" yaml:"relationship"`
}

// UserProfile describes a screened user.
type UserProfile struct {
	ID               string           `json:"id" yaml:"id"`
	Name             string           `json:"name" yaml:"name"`
	Age              int              `json:"age" yaml:"age"`
	Email            string           `json:"email,omitempty" yaml:"email,omitempty"`
	Phone            string           `json:"phone,omitempty" yaml:"phone,omitempty"`
	EmergencyContact EmergencyContact `json:"emergencyContact" yaml:"emergencyContact"`
	MedicalHistory   []string         `json:"medicalHistory" yaml:"medicalHistory"`
	Baseline         *Baseline        `json:"cognitiveBaseline,omitempty" yaml:"cognitiveBaseline,omitempty"`
	CreatedAt        time.Time        `json:"createdAt" yaml:"createdAt"`
	UpdatedAt        time.Time        `json:"updatedAt" yaml:"updatedAt"`
}

// UserExport is a full snapshot of one user's data.
type UserExport struct {
	Profile     *UserProfile       `json:"profile" yaml:"profile"`
	Assessments []AssessmentResult `json:"assessments" yaml:"assessments"`
	RiskScores  []RiskScore        `json:"riskScores" yaml:"riskScores"`
	ExportedAt  time.Time          `json:"exportedAt" yaml:"exportedAt"`
}
