package risk

import (
	"math"

	"github.com/verte-zerg/cognicare/internal/model"
)

const maxRisk = 100.0

// Assessment is the outcome of one overall risk calculation.
type Assessment struct {
	Score      int
	Confidence int
	Factors    model.RiskFactors
}

// Calculator scores metric vectors against a Table. The zero value is not
// usable; build one with NewCalculator.
type Calculator struct {
	table Table
}

// NewCalculator returns a calculator using the given constants.
func NewCalculator(table Table) *Calculator {
	return &Calculator{table: table}
}

// Table returns the constants in use.
func (c *Calculator) Table() Table {
	return c.table
}

// CognitiveRisk returns the 0-100 cognitive risk. When baseline is non-nil its
// positive values replace the normative references.
func (c *Calculator) CognitiveRisk(m model.CognitiveMetrics, baseline *model.CognitiveMetrics) float64 {
	n := c.table.CognitiveNorms
	w := c.table.CognitiveWeights
	ref := n
	if baseline != nil {
		ref = CognitiveNorms{
			Memory:       reference(baseline.MemoryScore, n.Memory),
			Attention:    reference(baseline.AttentionScore, n.Attention),
			Visuospatial: reference(baseline.VisuospatialScore, n.Visuospatial),
			Processing:   reference(baseline.ProcessingSpeed, n.Processing),
			Executive:    reference(baseline.ExecutiveFunction, n.Executive),
		}
	}
	sum := shortfall(ref.Memory, m.MemoryScore)*w.Memory +
		shortfall(ref.Attention, m.AttentionScore)*w.Attention +
		shortfall(ref.Visuospatial, m.VisuospatialScore)*w.Visuospatial +
		shortfall(ref.Processing, m.ProcessingSpeed)*w.Processing +
		shortfall(ref.Executive, m.ExecutiveFunction)*w.Executive
	return math.Min(maxRisk, sum*100)
}

// SpeechRisk returns the 0-100 speech risk.
func (c *Calculator) SpeechRisk(m model.SpeechMetrics) float64 {
	n := c.table.SpeechNorms
	w := c.table.SpeechWeights
	pause := 0.0
	if n.PauseDivisor > 0 {
		pause = math.Min(1, m.PauseFrequency/n.PauseDivisor)
	}
	sum := shortfall(n.Fluency, m.Fluency)*w.Fluency +
		shortfall(n.Coherence, m.Coherence)*w.Coherence +
		shortfall(n.Vocabulary, m.VocabularyDiversity)*w.Vocabulary +
		pause*w.Pauses +
		shortfall(n.Articulation, m.Articulation)*w.Articulation
	return math.Min(maxRisk, sum*100)
}

// BehavioralRisk returns the 0-100 behavioral risk. Sleep counts deviation in
// both directions.
func (c *Calculator) BehavioralRisk(m model.BehavioralMetrics) float64 {
	n := c.table.BehavioralNorms
	w := c.table.BehavioralWeights
	sleep := 0.0
	if n.Sleep > 0 {
		sleep = math.Abs(m.SleepPattern-n.Sleep) / n.Sleep
	}
	sum := shortfall(n.Activity, m.ActivityLevel)*w.Activity +
		sleep*w.Sleep +
		shortfall(n.Social, m.SocialInteraction)*w.Social +
		shortfall(n.Routine, m.RoutineAdherence)*w.Routine
	return math.Min(maxRisk, sum*100)
}

// Overall blends the domain risks. Speech and behavioral take part only when
// supplied, and the blend is renormalised over the included weights. An
// absent domain reports factor 0.
func (c *Calculator) Overall(cog model.CognitiveMetrics, speech *model.SpeechMetrics, behavioral *model.BehavioralMetrics, baseline *model.CognitiveMetrics) Assessment {
	blend := c.table.Blend
	conf := c.table.Confidence

	cognitiveRisk := c.CognitiveRisk(cog, baseline)
	weighted := cognitiveRisk * blend.Cognitive
	total := blend.Cognitive
	confidence := conf.Base

	var speechRisk, behavioralRisk float64
	if speech != nil {
		speechRisk = c.SpeechRisk(*speech)
		weighted += speechRisk * blend.Speech
		total += blend.Speech
		confidence += conf.Speech
	}
	if behavioral != nil {
		behavioralRisk = c.BehavioralRisk(*behavioral)
		weighted += behavioralRisk * blend.Behavioral
		total += blend.Behavioral
		confidence += conf.Behavioral
	}

	overall := 0.0
	if total > 0 {
		overall = weighted / total
	}
	return Assessment{
		Score:      Round(overall),
		Confidence: confidence,
		Factors: model.RiskFactors{
			Cognitive:  Round(cognitiveRisk),
			Speech:     Round(speechRisk),
			Behavioral: Round(behavioralRisk),
		},
	}
}

// FromBaseline expands a stored baseline into a full reference vector using
// the same proxies as metric extraction.
func FromBaseline(b *model.Baseline) *model.CognitiveMetrics {
	if b == nil {
		return nil
	}
	return &model.CognitiveMetrics{
		MemoryScore:       b.MemoryScore,
		AttentionScore:    b.AttentionScore,
		VisuospatialScore: b.VisuospatialScore,
		ProcessingSpeed:   b.AttentionScore,
		ExecutiveFunction: (b.MemoryScore + b.AttentionScore) / 2,
	}
}

// Round rounds half up to an integer.
func Round(v float64) int {
	return int(math.Floor(v + 0.5))
}

// shortfall is the one-sided relative deviation below ref.
func shortfall(ref, observed float64) float64 {
	if ref <= 0 {
		return 0
	}
	return math.Max(0, (ref-observed)/ref)
}

func reference(value, norm float64) float64 {
	if value <= 0 {
		return norm
	}
	return value
}
