package model

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"
)

// AssessmentType names the test that produced a result.
type AssessmentType string

const (
	Memory       AssessmentType = "memory"
	Attention    AssessmentType = "attention"
	Visuospatial AssessmentType = "visuospatial"
	Speech       AssessmentType = "speech"
	Behavioral   AssessmentType = "behavioral"
)

// ErrUnknownType reports an assessment type outside the known set.
var ErrUnknownType = errors.New("unknown assessment type")

// AssessmentTypes lists every known type in display order.
func AssessmentTypes() []AssessmentType {
	return []AssessmentType{Memory, Attention, Visuospatial, Speech, Behavioral}
}

// ParseAssessmentType validates a type name.
func ParseAssessmentType(s string) (AssessmentType, error) {
	for _, t := range AssessmentTypes() {
		if string(t) == s {
			return t, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownType, s)
}

// Details is the per-type diagnostic payload of an assessment.
type Details interface {
	AssessmentType() AssessmentType
}

// MemoryDetails come from the shopping-list and paired-associates tasks.
type MemoryDetails struct {
	ShoppingScore float64  `json:"shoppingScore" yaml:"shoppingScore"`
	PairsScore    float64  `json:"pairsScore" yaml:"pairsScore"`
	ShoppingItems []string `json:"shoppingItems,omitempty" yaml:"shoppingItems,omitempty"`
	PairsItems    []string `json:"pairsItems,omitempty" yaml:"pairsItems,omitempty"`
}

// AttentionDetails come from the trail-making and Stroop tasks.
type AttentionDetails struct {
	TrailScore          float64 `json:"trailScore" yaml:"trailScore"`
	StroopScore         float64 `json:"stroopScore" yaml:"stroopScore"`
	TrailErrors         int     `json:"trailErrors" yaml:"trailErrors"`
	AvgReactionTime     float64 `json:"avgReactionTime" yaml:"avgReactionTime"`
	TrailCompletionTime float64 `json:"trailCompletionTime" yaml:"trailCompletionTime"`
}

// VisuospatialDetails come from the puzzle, pattern and rotation tasks.
type VisuospatialDetails struct {
	PuzzleScore          float64 `json:"puzzleScore" yaml:"puzzleScore"`
	PatternScore         float64 `json:"patternScore" yaml:"patternScore"`
	RotationScore        float64 `json:"rotationScore" yaml:"rotationScore"`
	PuzzleCompletionTime float64 `json:"puzzleCompletionTime" yaml:"puzzleCompletionTime"`
	TotalTests           int     `json:"totalTests" yaml:"totalTests"`
}

// SpeechDetails carry transcript statistics and the derived metrics.
type SpeechDetails struct {
	Transcript         string         `json:"transcript" yaml:"transcript"`
	WordCount          int            `json:"wordCount" yaml:"wordCount"`
	UniqueWords        int            `json:"uniqueWords" yaml:"uniqueWords"`
	PauseCount         int            `json:"pauseCount" yaml:"pauseCount"`
	AveragePauseLength float64        `json:"averagePauseLength" yaml:"averagePauseLength"`
	SpeakingRate       float64        `json:"speakingRate" yaml:"speakingRate"`
	FillerWords        int            `json:"fillerWords" yaml:"fillerWords"`
	Metrics            *SpeechMetrics `json:"metrics,omitempty" yaml:"metrics,omitempty"`
}

// BehavioralDetails carry daily-life pattern metrics.
type BehavioralDetails struct {
	Metrics *BehavioralMetrics `json:"metrics,omitempty" yaml:"metrics,omitempty"`
}

func (MemoryDetails) AssessmentType() AssessmentType       { return Memory }
func (AttentionDetails) AssessmentType() AssessmentType    { return Attention }
func (VisuospatialDetails) AssessmentType() AssessmentType { return Visuospatial }
func (SpeechDetails) AssessmentType() AssessmentType       { return Speech }
func (BehavioralDetails) AssessmentType() AssessmentType   { return Behavioral }

// AssessmentResult is one completed test instance. It is immutable once stored.
type AssessmentResult struct {
	ID          string
	UserID      string
	Type        AssessmentType
	Score       float64
	MaxScore    float64
	DurationMs  int64
	Details     Details
	CompletedAt time.Time
}

type assessmentJSON struct {
	ID          string          `json:"id"`
	UserID      string          `json:"userId"`
	Type        AssessmentType  `json:"type"`
	Score       float64         `json:"score"`
	MaxScore    float64         `json:"maxScore"`
	DurationMs  int64           `json:"duration"`
	Details     json.RawMessage `json:"details,omitempty"`
	CompletedAt time.Time       `json:"completedAt"`
}

// MarshalJSON encodes details as a plain object next to the type tag.
func (a AssessmentResult) MarshalJSON() ([]byte, error) {
	out := assessmentJSON{
		ID:          a.ID,
		UserID:      a.UserID,
		Type:        a.Type,
		Score:       a.Score,
		MaxScore:    a.MaxScore,
		DurationMs:  a.DurationMs,
		CompletedAt: a.CompletedAt,
	}
	if a.Details != nil {
		raw, err := json.Marshal(a.Details)
		if err != nil {
			return nil, fmt.Errorf("failed to encode details: %w", err)
		}
		out.Details = raw
	}
	return json.Marshal(out)
}

type assessmentYAML struct {
	ID          string         `yaml:"id"`
	UserID      string         `yaml:"userId"`
	Type        AssessmentType `yaml:"type"`
	Score       float64        `yaml:"score"`
	MaxScore    float64        `yaml:"maxScore"`
	DurationMs  int64          `yaml:"duration"`
	Details     Details        `yaml:"details,omitempty"`
	CompletedAt time.Time      `yaml:"completedAt"`
}

// MarshalYAML mirrors the JSON field names.
func (a AssessmentResult) MarshalYAML() (any, error) {
	return assessmentYAML{
		ID:          a.ID,
		UserID:      a.UserID,
		Type:        a.Type,
		Score:       a.Score,
		MaxScore:    a.MaxScore,
		DurationMs:  a.DurationMs,
		Details:     a.Details,
		CompletedAt: a.CompletedAt,
	}, nil
}

// UnmarshalJSON decodes details into the payload matching the type tag.
func (a *AssessmentResult) UnmarshalJSON(data []byte) error {
	var in assessmentJSON
	if err := json.Unmarshal(data, &in); err != nil {
		return err
	}
	details, err := DecodeDetails(in.Type, in.Details)
	if err != nil {
		return err
	}
	*a = AssessmentResult{
		ID:          in.ID,
		UserID:      in.UserID,
		Type:        in.Type,
		Score:       in.Score,
		MaxScore:    in.MaxScore,
		DurationMs:  in.DurationMs,
		Details:     details,
		CompletedAt: in.CompletedAt,
	}
	return nil
}

// DecodeDetails parses a raw payload for the given type. An empty payload
// yields nil details.
func DecodeDetails(t AssessmentType, raw []byte) (Details, error) {
	var target Details
	switch t {
	case Memory:
		target = &MemoryDetails{}
	case Attention:
		target = &AttentionDetails{}
	case Visuospatial:
		target = &VisuospatialDetails{}
	case Speech:
		target = &SpeechDetails{}
	case Behavioral:
		target = &BehavioralDetails{}
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownType, t)
	}
	if len(raw) == 0 || string(raw) == "null" {
		return nil, nil
	}
	if err := json.Unmarshal(raw, target); err != nil {
		return nil, fmt.Errorf("failed to decode %s details: %w", t, err)
	}
	return deref(target), nil
}

func deref(d Details) Details {
	switch v := d.(type) {
	case *MemoryDetails:
		return *v
	case *AttentionDetails:
		return *v
	case *VisuospatialDetails:
		return *v
	case *SpeechDetails:
		return *v
	case *BehavioralDetails:
		return *v
	}
	return d
}
