// Package speech scores transcripts with word-count heuristics.
package speech

import (
	"math"
	"regexp"
	"strings"
	"time"

	"github.com/verte-zerg/cognicare/internal/lexicon"
	"github.com/verte-zerg/cognicare/internal/model"
)

const (
	normalSpeakingRate   = 150.0
	optimalSentenceWords = 15.0
	minCoherence         = 20.0
	diversityScale       = 200.0
	secondsPerPause      = 10.0
	pausePenalty         = 10.0
	minArticulatedLen    = 2
	taskScoreMin         = 20.0
	taskScoreMax         = 100.0
)

var (
	nonWord       = regexp.MustCompile(`[^\w\s]`)
	sentenceBreak = regexp.MustCompile(`[.!?]+`)
)

// DefaultFillerWords is the stock filler vocabulary. Multi-word entries never
// match a single token.
var DefaultFillerWords = []string{
	"um", "uh", "er", "ah", "like", "you know", "so", "well",
	"actually", "basically", "literally", "right", "okay", "yeah", "hmm",
}

// Analyzer scores transcripts against a filler vocabulary.
type Analyzer struct {
	fillers lexicon.Set
}

// NewAnalyzer returns an analyzer. An empty list selects DefaultFillerWords.
func NewAnalyzer(fillerWords []string) *Analyzer {
	if len(fillerWords) == 0 {
		fillerWords = DefaultFillerWords
	}
	return &Analyzer{fillers: lexicon.NewSet(fillerWords)}
}

// Analysis is the result of scoring one transcript.
type Analysis struct {
	Transcript         string
	DurationSeconds    float64
	WordCount          int
	UniqueWords        int
	PauseCount         int
	AveragePauseLength float64
	SpeakingRate       float64
	FillerWords        int
	Metrics            model.SpeechMetrics
}

// Details converts the analysis into a storable assessment payload.
func (a Analysis) Details() model.SpeechDetails {
	m := a.Metrics
	return model.SpeechDetails{
		Transcript:         a.Transcript,
		WordCount:          a.WordCount,
		UniqueWords:        a.UniqueWords,
		PauseCount:         a.PauseCount,
		AveragePauseLength: a.AveragePauseLength,
		SpeakingRate:       a.SpeakingRate,
		FillerWords:        a.FillerWords,
		Metrics:            &m,
	}
}

// TaskScore is the 20-100 task score the speech exercise records: two
// points per word, floored at 20.
func (a Analysis) TaskScore() float64 {
	return math.Min(taskScoreMax, math.Max(taskScoreMin, float64(a.WordCount)*2))
}

// Assessment packages the analysis as a speech assessment record.
func (a Analysis) Assessment(userID string, completedAt time.Time) model.AssessmentResult {
	return model.AssessmentResult{
		UserID:      userID,
		Type:        model.Speech,
		Score:       a.TaskScore(),
		MaxScore:    taskScoreMax,
		DurationMs:  int64(a.DurationSeconds * 1000),
		Details:     a.Details(),
		CompletedAt: completedAt,
	}
}

// Analyze scores a transcript spoken over durationSeconds with the given pause
// lengths. Empty transcripts and non-positive durations produce zero ratios
// rather than NaN.
func (an *Analyzer) Analyze(transcript string, durationSeconds float64, pauses []float64) Analysis {
	words := Tokenize(transcript)
	unique := map[string]struct{}{}
	fillers := 0
	short := 0
	for _, w := range words {
		unique[w] = struct{}{}
		if an.fillers.Contains(w) {
			fillers++
		}
		if len(w) < minArticulatedLen {
			short++
		}
	}

	var pauseSum float64
	for _, p := range pauses {
		pauseSum += p
	}
	avgPause := pauseSum / float64(max(len(pauses), 1))

	rate := 0.0
	if durationSeconds > 0 {
		rate = float64(len(words)) / durationSeconds * 60
	}

	res := Analysis{
		Transcript:         transcript,
		DurationSeconds:    durationSeconds,
		WordCount:          len(words),
		UniqueWords:        len(unique),
		PauseCount:         len(pauses),
		AveragePauseLength: avgPause,
		SpeakingRate:       rate,
		FillerWords:        fillers,
	}
	res.Metrics = score(res, countSentences(transcript), short)
	return res
}

func score(a Analysis, sentences, short int) model.SpeechMetrics {
	n := float64(a.WordCount)

	duration := math.Max(0, a.DurationSeconds)
	expected := duration / secondsPerPause
	pause := math.Min(100, math.Max(0, 100-math.Abs(float64(a.PauseCount)-expected)*pausePenalty))

	if a.WordCount == 0 {
		return model.SpeechMetrics{
			Coherence:      minCoherence,
			PauseFrequency: round(pause),
		}
	}

	rateScore := math.Min(100, a.SpeakingRate/normalSpeakingRate*100)
	fluency := math.Max(0, rateScore-float64(a.FillerWords)/n*100)

	avgSentence := n / float64(max(sentences, 1))
	coherence := math.Max(minCoherence, math.Min(100, avgSentence/optimalSentenceWords*100))

	diversity := math.Min(100, float64(a.UniqueWords)/n*diversityScale)
	articulation := math.Max(0, 100-float64(short)/n*100)

	return model.SpeechMetrics{
		Fluency:             round(fluency),
		Coherence:           round(coherence),
		VocabularyDiversity: round(diversity),
		PauseFrequency:      round(pause),
		Articulation:        round(articulation),
	}
}

// Tokenize lowercases text, blanks out punctuation and splits on whitespace.
func Tokenize(text string) []string {
	cleaned := nonWord.ReplaceAllString(strings.ToLower(text), " ")
	return strings.Fields(cleaned)
}

func countSentences(text string) int {
	n := 0
	for _, s := range sentenceBreak.Split(text, -1) {
		if strings.TrimSpace(s) != "" {
			n++
		}
	}
	return n
}

func round(v float64) float64 {
	return math.Floor(v + 0.5)
}
