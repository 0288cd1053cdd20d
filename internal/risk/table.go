// Package risk converts metric vectors into risk scores and recommendations.
package risk

// CognitiveWeights weights the five cognitive sub-risks.
type CognitiveWeights struct {
	Memory       float64
	Attention    float64
	Visuospatial float64
	Processing   float64
	Executive    float64
}

// SpeechWeights weights the five speech sub-risks.
type SpeechWeights struct {
	Fluency      float64
	Coherence    float64
	Vocabulary   float64
	Pauses       float64
	Articulation float64
}

// BehavioralWeights weights the four behavioral sub-risks.
type BehavioralWeights struct {
	Activity float64
	Sleep    float64
	Social   float64
	Routine  float64
}

// CognitiveNorms are the population reference values for cognitive metrics.
type CognitiveNorms struct {
	Memory       float64
	Attention    float64
	Visuospatial float64
	Processing   float64
	Executive    float64
}

// SpeechNorms are the reference values for speech metrics. PauseDivisor
// scales pause frequency directly rather than as a deviation.
type SpeechNorms struct {
	Fluency      float64
	Coherence    float64
	Vocabulary   float64
	PauseDivisor float64
	Articulation float64
}

// BehavioralNorms are the reference values for behavioral metrics.
type BehavioralNorms struct {
	Activity float64
	Sleep    float64
	Social   float64
	Routine  float64
}

// BlendWeights weight the domain risks in the overall score.
type BlendWeights struct {
	Cognitive  float64
	Speech     float64
	Behavioral float64
}

// ConfidenceSteps are in percent.
type ConfidenceSteps struct {
	Base       int
	Speech     int
	Behavioral int
}

// Table holds every tuning constant used by the calculator.
type Table struct {
	CognitiveNorms    CognitiveNorms
	CognitiveWeights  CognitiveWeights
	SpeechNorms       SpeechNorms
	SpeechWeights     SpeechWeights
	BehavioralNorms   BehavioralNorms
	BehavioralWeights BehavioralWeights
	Blend             BlendWeights
	Confidence        ConfidenceSteps
}

// DefaultTable returns the stock reference values and weights.
func DefaultTable() Table {
	return Table{
		CognitiveNorms: CognitiveNorms{
			Memory:       85,
			Attention:    80,
			Visuospatial: 75,
			Processing:   70,
			Executive:    75,
		},
		CognitiveWeights: CognitiveWeights{
			Memory:       0.35,
			Attention:    0.25,
			Visuospatial: 0.20,
			Processing:   0.10,
			Executive:    0.10,
		},
		SpeechNorms: SpeechNorms{
			Fluency:      80,
			Coherence:    85,
			Vocabulary:   75,
			PauseDivisor: 20,
			Articulation: 90,
		},
		SpeechWeights: SpeechWeights{
			Fluency:      0.30,
			Coherence:    0.25,
			Vocabulary:   0.20,
			Pauses:       0.15,
			Articulation: 0.10,
		},
		BehavioralNorms: BehavioralNorms{
			Activity: 70,
			Sleep:    75,
			Social:   80,
			Routine:  85,
		},
		BehavioralWeights: BehavioralWeights{
			Activity: 0.25,
			Sleep:    0.25,
			Social:   0.30,
			Routine:  0.20,
		},
		Blend: BlendWeights{
			Cognitive:  0.60,
			Speech:     0.25,
			Behavioral: 0.15,
		},
		Confidence: ConfidenceSteps{
			Base:       70,
			Speech:     20,
			Behavioral: 10,
		},
	}
}
