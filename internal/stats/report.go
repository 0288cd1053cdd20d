package stats

import (
	"context"
	"errors"

	"github.com/verte-zerg/cognicare/internal/model"
	"github.com/verte-zerg/cognicare/internal/monitor"
	"github.com/verte-zerg/cognicare/internal/store"
)

// Source is the read side of the store the dashboard needs.
type Source interface {
	GetProfile(ctx context.Context, userID string) (*model.UserProfile, error)
	QueryAssessments(ctx context.Context, cfg model.DashboardConfig) ([]model.AssessmentResult, error)
	ListRiskScores(ctx context.Context, userID string) ([]model.RiskScore, error)
}

// Report contains precomputed data for dashboard rendering.
type Report struct {
	Profile     *model.UserProfile
	Assessments []model.AssessmentResult
	RiskScores  []model.RiskScore
	Trends      []model.TrendAnalysis
	Alerts      []model.RiskAlert
}

// Latest returns the newest risk score in the window, or nil.
func (r Report) Latest() *model.RiskScore {
	if len(r.RiskScores) == 0 {
		return nil
	}
	return &r.RiskScores[len(r.RiskScores)-1]
}

// BuildReport loads the filtered window for cfg.UserID and derives trends and
// alerts from it. A missing profile is not an error.
func BuildReport(ctx context.Context, src Source, mon *monitor.Monitor, cfg model.DashboardConfig) (Report, error) {
	if mon == nil {
		mon = monitor.New()
	}
	profile, err := src.GetProfile(ctx, cfg.UserID)
	if err != nil && !errors.Is(err, store.ErrNotFound) {
		return Report{}, err
	}
	assessments, err := src.QueryAssessments(ctx, cfg)
	if err != nil {
		return Report{}, err
	}
	scores, err := src.ListRiskScores(ctx, cfg.UserID)
	if err != nil {
		return Report{}, err
	}
	scores = windowScores(scores, cfg)

	return Report{
		Profile:     profile,
		Assessments: assessments,
		RiskScores:  scores,
		Trends:      mon.Trends(cfg.UserID, assessments),
		Alerts:      mon.Alerts(profile, assessments, scores),
	}, nil
}

func windowScores(scores []model.RiskScore, cfg model.DashboardConfig) []model.RiskScore {
	if cfg.Since != nil {
		kept := scores[:0:0]
		for _, s := range scores {
			if !s.GeneratedAt.Before(*cfg.Since) {
				kept = append(kept, s)
			}
		}
		scores = kept
	}
	if cfg.Last > 0 && len(scores) > cfg.Last {
		scores = scores[len(scores)-cfg.Last:]
	}
	return scores
}
