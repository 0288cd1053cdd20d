// Package screening orchestrates scoring, monitoring and export for a user.
package screening

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/verte-zerg/cognicare/internal/metrics"
	"github.com/verte-zerg/cognicare/internal/model"
	"github.com/verte-zerg/cognicare/internal/monitor"
	"github.com/verte-zerg/cognicare/internal/risk"
	"github.com/verte-zerg/cognicare/internal/store"
)

// baselineMinAssessments is the count at which a baseline is first captured.
const baselineMinAssessments = 3

// Repository is the persistence the service depends on.
type Repository interface {
	GetProfile(ctx context.Context, userID string) (*model.UserProfile, error)
	SaveProfile(ctx context.Context, p model.UserProfile) (model.UserProfile, error)
	InsertAssessment(ctx context.Context, a model.AssessmentResult) (model.AssessmentResult, error)
	ListAssessments(ctx context.Context, userID string) ([]model.AssessmentResult, error)
	InsertRiskScore(ctx context.Context, r model.RiskScore) (model.RiskScore, error)
	ListRiskScores(ctx context.Context, userID string) ([]model.RiskScore, error)
	LatestRiskScore(ctx context.Context, userID string) (*model.RiskScore, error)
}

// Service ties the calculator and monitor to a repository.
type Service struct {
	repo    Repository
	calc    *risk.Calculator
	monitor *monitor.Monitor
	logger  *zap.Logger
	now     func() time.Time
}

// Option configures a Service.
type Option func(*Service)

// WithClock overrides the wall clock used for timestamps and alert windows.
func WithClock(now func() time.Time) Option {
	return func(s *Service) {
		s.now = now
	}
}

// WithTable overrides the risk constants.
func WithTable(table risk.Table) Option {
	return func(s *Service) {
		s.calc = risk.NewCalculator(table)
	}
}

// NewService builds a Service. A nil logger is replaced with a no-op logger.
func NewService(repo Repository, logger *zap.Logger, opts ...Option) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	s := &Service{
		repo:   repo,
		calc:   risk.NewCalculator(risk.DefaultTable()),
		logger: logger,
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	s.monitor = monitor.New(monitor.WithClock(s.now))
	return s
}

// Evaluation is the current score and whether this call produced it.
type Evaluation struct {
	Score      model.RiskScore
	Level      risk.RiskLevel
	Recomputed bool
}

// Report bundles trends and alerts for a user.
type Report struct {
	Trends []model.TrendAnalysis
	Alerts []model.RiskAlert
}

// ShouldUpdate reports whether a new score is warranted: there is no score
// yet, or the newest assessment postdates it.
func ShouldUpdate(latest *model.RiskScore, assessments []model.AssessmentResult) bool {
	if latest == nil {
		return true
	}
	for _, a := range assessments {
		if a.CompletedAt.After(latest.GeneratedAt) {
			return true
		}
	}
	return false
}

// Record appends an assessment for an existing profile.
func (s *Service) Record(ctx context.Context, a model.AssessmentResult) (model.AssessmentResult, error) {
	if _, err := s.repo.GetProfile(ctx, a.UserID); err != nil {
		return model.AssessmentResult{}, fmt.Errorf("failed to load profile %q: %w", a.UserID, err)
	}
	if a.CompletedAt.IsZero() {
		a.CompletedAt = s.now()
	}
	if a.ID == "" {
		a.ID = uuid.NewString()
	}
	saved, err := s.repo.InsertAssessment(ctx, a)
	if err != nil {
		return model.AssessmentResult{}, fmt.Errorf("failed to save assessment: %w", err)
	}
	s.logger.Info("assessment recorded",
		zap.String("user", saved.UserID),
		zap.String("type", string(saved.Type)),
		zap.Float64("score", saved.Score),
		zap.Float64("max_score", saved.MaxScore),
	)
	return saved, nil
}

// Evaluate returns the current risk score, computing and persisting a new one
// when force is set or ShouldUpdate says so. It also captures the baseline
// the first time a user reaches three assessments.
func (s *Service) Evaluate(ctx context.Context, userID string, force bool) (Evaluation, error) {
	profile, err := s.repo.GetProfile(ctx, userID)
	if err != nil {
		return Evaluation{}, fmt.Errorf("failed to load profile %q: %w", userID, err)
	}
	assessments, err := s.repo.ListAssessments(ctx, userID)
	if err != nil {
		return Evaluation{}, fmt.Errorf("failed to load assessments: %w", err)
	}
	if len(assessments) == 0 {
		return Evaluation{}, ErrNoAssessments
	}

	latest, err := s.repo.LatestRiskScore(ctx, userID)
	if err != nil && !errors.Is(err, store.ErrNotFound) {
		return Evaluation{}, fmt.Errorf("failed to load latest risk score: %w", err)
	}

	if !force && !ShouldUpdate(latest, assessments) {
		return Evaluation{Score: *latest, Level: risk.Level(latest.Score)}, nil
	}

	cog := metrics.Cognitive(assessments)
	result := s.calc.Overall(cog, metrics.Speech(assessments), metrics.Behavioral(assessments), risk.FromBaseline(profile.Baseline))
	score := model.RiskScore{
		ID:              uuid.NewString(),
		UserID:          userID,
		Score:           result.Score,
		Confidence:      result.Confidence,
		Factors:         result.Factors,
		Recommendations: risk.Recommendations(result.Score, result.Factors),
		GeneratedAt:     s.now(),
	}
	saved, err := s.repo.InsertRiskScore(ctx, score)
	if err != nil {
		return Evaluation{}, fmt.Errorf("failed to save risk score: %w", err)
	}
	s.logger.Info("risk score computed",
		zap.String("user", userID),
		zap.Int("score", saved.Score),
		zap.Int("confidence", saved.Confidence),
		zap.Int("assessments", len(assessments)),
	)

	if profile.Baseline == nil && len(assessments) >= baselineMinAssessments {
		profile.Baseline = &model.Baseline{
			MemoryScore:       cog.MemoryScore,
			AttentionScore:    cog.AttentionScore,
			VisuospatialScore: cog.VisuospatialScore,
			EstablishedAt:     s.now(),
		}
		if _, err := s.repo.SaveProfile(ctx, *profile); err != nil {
			return Evaluation{}, fmt.Errorf("failed to save baseline: %w", err)
		}
		s.logger.Info("baseline established", zap.String("user", userID))
	}

	return Evaluation{Score: saved, Level: risk.Level(saved.Score), Recomputed: true}, nil
}

// Monitor returns the trends and alerts for a user.
func (s *Service) Monitor(ctx context.Context, userID string) (Report, error) {
	profile, err := s.repo.GetProfile(ctx, userID)
	if err != nil && !errors.Is(err, store.ErrNotFound) {
		return Report{}, fmt.Errorf("failed to load profile %q: %w", userID, err)
	}
	assessments, err := s.repo.ListAssessments(ctx, userID)
	if err != nil {
		return Report{}, fmt.Errorf("failed to load assessments: %w", err)
	}
	scores, err := s.repo.ListRiskScores(ctx, userID)
	if err != nil {
		return Report{}, fmt.Errorf("failed to load risk scores: %w", err)
	}
	report := Report{
		Trends: s.monitor.Trends(userID, assessments),
		Alerts: s.monitor.Alerts(profile, assessments, scores),
	}
	for _, a := range report.Alerts {
		s.logger.Info("risk alert",
			zap.String("user", userID),
			zap.String("type", string(a.Type)),
			zap.String("severity", string(a.Severity)),
		)
	}
	return report, nil
}

// Export returns a full snapshot of a user's data. A missing profile leaves
// Profile nil.
func (s *Service) Export(ctx context.Context, userID string) (model.UserExport, error) {
	profile, err := s.repo.GetProfile(ctx, userID)
	if err != nil && !errors.Is(err, store.ErrNotFound) {
		return model.UserExport{}, fmt.Errorf("failed to load profile %q: %w", userID, err)
	}
	assessments, err := s.repo.ListAssessments(ctx, userID)
	if err != nil {
		return model.UserExport{}, fmt.Errorf("failed to load assessments: %w", err)
	}
	scores, err := s.repo.ListRiskScores(ctx, userID)
	if err != nil {
		return model.UserExport{}, fmt.Errorf("failed to load risk scores: %w", err)
	}
	if assessments == nil {
		assessments = []model.AssessmentResult{}
	}
	if scores == nil {
		scores = []model.RiskScore{}
	}
	return model.UserExport{
		Profile:     profile,
		Assessments: assessments,
		RiskScores:  scores,
		ExportedAt:  s.now(),
	}, nil
}
