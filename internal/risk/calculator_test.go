package risk

import (
	"math"
	"testing"

	"github.com/verte-zerg/cognicare/internal/model"
)

func normative() model.CognitiveMetrics {
	return model.CognitiveMetrics{
		MemoryScore:       85,
		AttentionScore:    80,
		VisuospatialScore: 75,
		ProcessingSpeed:   70,
		ExecutiveFunction: 75,
	}
}

func TestCognitiveRiskAtNormsIsZero(t *testing.T) {
	c := NewCalculator(DefaultTable())
	if got := c.CognitiveRisk(normative(), nil); got != 0 {
		t.Fatalf("risk = %v, want 0", got)
	}
}

func TestCognitiveRiskAllZeroSaturates(t *testing.T) {
	c := NewCalculator(DefaultTable())
	got := c.CognitiveRisk(model.CognitiveMetrics{}, nil)
	if math.Abs(got-100) > 1e-9 {
		t.Fatalf("risk = %v, want 100", got)
	}
}

func TestCognitiveRiskWorkedExample(t *testing.T) {
	c := NewCalculator(DefaultTable())
	m := model.CognitiveMetrics{
		MemoryScore:       80,
		AttentionScore:    60,
		VisuospatialScore: 50,
		ProcessingSpeed:   60,
		ExecutiveFunction: 70,
	}
	want := (5.0/85*0.35 + 20.0/80*0.25 + 25.0/75*0.20 + 10.0/70*0.10 + 5.0/75*0.10) * 100
	got := c.CognitiveRisk(m, nil)
	if math.Abs(got-want) > 1e-9 {
		t.Fatalf("risk = %v, want %v", got, want)
	}
}

func TestCognitiveRiskAboveNormNotNegative(t *testing.T) {
	c := NewCalculator(DefaultTable())
	m := model.CognitiveMetrics{MemoryScore: 120, AttentionScore: 120, VisuospatialScore: 120, ProcessingSpeed: 120, ExecutiveFunction: 120}
	if got := c.CognitiveRisk(m, nil); got != 0 {
		t.Fatalf("risk = %v, want 0", got)
	}
}

func TestCognitiveRiskUsesBaseline(t *testing.T) {
	c := NewCalculator(DefaultTable())
	baseline := &model.CognitiveMetrics{MemoryScore: 60, AttentionScore: 60, VisuospatialScore: 60, ProcessingSpeed: 60, ExecutiveFunction: 60}
	m := model.CognitiveMetrics{MemoryScore: 60, AttentionScore: 60, VisuospatialScore: 60, ProcessingSpeed: 60, ExecutiveFunction: 60}
	if got := c.CognitiveRisk(m, baseline); got != 0 {
		t.Fatalf("risk against own baseline = %v, want 0", got)
	}
}

func TestCognitiveRiskZeroBaselineFallsBackToNorm(t *testing.T) {
	c := NewCalculator(DefaultTable())
	baseline := &model.CognitiveMetrics{}
	got := c.CognitiveRisk(normative(), baseline)
	if math.IsNaN(got) || got != 0 {
		t.Fatalf("risk = %v, want 0 with zero baseline", got)
	}
}

func TestSpeechRisk(t *testing.T) {
	c := NewCalculator(DefaultTable())
	ideal := model.SpeechMetrics{Fluency: 80, Coherence: 85, VocabularyDiversity: 75, PauseFrequency: 0, Articulation: 90}
	if got := c.SpeechRisk(ideal); got != 0 {
		t.Fatalf("ideal speech risk = %v", got)
	}
	pauses := model.SpeechMetrics{Fluency: 80, Coherence: 85, VocabularyDiversity: 75, PauseFrequency: 40, Articulation: 90}
	if got := c.SpeechRisk(pauses); math.Abs(got-15) > 1e-9 {
		t.Fatalf("pause-saturated risk = %v, want 15", got)
	}
}

func TestBehavioralSleepIsTwoSided(t *testing.T) {
	c := NewCalculator(DefaultTable())
	base := model.BehavioralMetrics{ActivityLevel: 70, SleepPattern: 75, SocialInteraction: 80, RoutineAdherence: 85}
	if got := c.BehavioralRisk(base); got != 0 {
		t.Fatalf("risk at norms = %v", got)
	}
	over := base
	over.SleepPattern = 90
	under := base
	under.SleepPattern = 60
	a, b := c.BehavioralRisk(over), c.BehavioralRisk(under)
	if a <= 0 || math.Abs(a-b) > 1e-9 {
		t.Fatalf("sleep deviation not symmetric: over=%v under=%v", a, b)
	}
	over.ActivityLevel = 100
	if got := c.BehavioralRisk(over); math.Abs(got-a) > 1e-9 {
		t.Fatalf("activity above norm should not add risk: %v vs %v", got, a)
	}
}

func TestOverallConfidence(t *testing.T) {
	c := NewCalculator(DefaultTable())
	s := &model.SpeechMetrics{}
	b := &model.BehavioralMetrics{}
	cases := []struct {
		name   string
		speech *model.SpeechMetrics
		behav  *model.BehavioralMetrics
		want   int
	}{
		{"cognitive only", nil, nil, 70},
		{"with speech", s, nil, 90},
		{"with behavioral", nil, b, 80},
		{"all", s, b, 100},
	}
	for _, tc := range cases {
		got := c.Overall(normative(), tc.speech, tc.behav, nil)
		if got.Confidence != tc.want {
			t.Errorf("%s: confidence = %d, want %d", tc.name, got.Confidence, tc.want)
		}
	}
}

func TestOverallAbsentDomainsReportZero(t *testing.T) {
	c := NewCalculator(DefaultTable())
	got := c.Overall(model.CognitiveMetrics{}, nil, nil, nil)
	if got.Factors.Speech != 0 || got.Factors.Behavioral != 0 {
		t.Fatalf("absent factors = %+v", got.Factors)
	}
	if got.Score != 100 || got.Factors.Cognitive != 100 {
		t.Fatalf("cognitive-only score not renormalised: %+v", got)
	}
}

func TestOverallRenormalisedBlend(t *testing.T) {
	c := NewCalculator(DefaultTable())
	speech := &model.SpeechMetrics{Fluency: 80, Coherence: 85, VocabularyDiversity: 75, Articulation: 90}
	got := c.Overall(model.CognitiveMetrics{}, speech, nil, nil)
	want := Round(100 * 0.6 / 0.85)
	if got.Score != want {
		t.Fatalf("score = %d, want %d", got.Score, want)
	}
}

func TestFromBaseline(t *testing.T) {
	if FromBaseline(nil) != nil {
		t.Fatalf("expected nil")
	}
	got := FromBaseline(&model.Baseline{MemoryScore: 80, AttentionScore: 60, VisuospatialScore: 70})
	if got.ProcessingSpeed != 60 || got.ExecutiveFunction != 70 || got.VisuospatialScore != 70 {
		t.Fatalf("unexpected vector: %+v", got)
	}
}

func TestRound(t *testing.T) {
	cases := map[float64]int{0: 0, 0.49: 0, 0.5: 1, 14.5: 15, 99.99: 100}
	for in, want := range cases {
		if got := Round(in); got != want {
			t.Errorf("Round(%v) = %d, want %d", in, got, want)
		}
	}
}
