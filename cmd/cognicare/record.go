package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/verte-zerg/cognicare/internal/model"
)

var (
	recordType     string
	recordScore    float64
	recordMax      float64
	recordDuration time.Duration
	recordDetails  string
	recordAt       string
)

func newRecordCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "record",
		Short: "Record a completed assessment",
		Args:  cobra.NoArgs,
		RunE:  runRecordCmd,
	}
	cmd.Flags().StringVar(&recordType, "type", "", "assessment type (memory, attention, visuospatial, speech, behavioral)")
	cmd.Flags().Float64Var(&recordScore, "score", 0, "raw score")
	cmd.Flags().Float64Var(&recordMax, "max", 0, "maximum achievable score")
	cmd.Flags().DurationVar(&recordDuration, "duration", 0, "time taken (e.g. 4m30s)")
	cmd.Flags().StringVar(&recordDetails, "details", "", "JSON file with type-specific details")
	cmd.Flags().StringVar(&recordAt, "at", "", "completion time (RFC3339, default: now)")
	_ = cmd.MarkFlagRequired("type")
	_ = cmd.MarkFlagRequired("score")
	_ = cmd.MarkFlagRequired("max")
	return cmd
}

func runRecordCmd(cmd *cobra.Command, _ []string) error {
	a, err := buildAssessment()
	if err != nil {
		return err
	}
	ap, closeApp, err := openApp(cmd)
	if err != nil {
		return err
	}
	defer closeApp()

	a.UserID = ap.user
	saved, err := ap.svc.Record(cmd.Context(), a)
	if err != nil {
		return err
	}
	if recordMax <= 0 {
		logErrln("warning: --max is not positive; this assessment will not count toward metrics")
	}
	_, err = fmt.Fprintf(cmd.OutOrStdout(), "Recorded %s assessment %s: %g/%g\n", saved.Type, saved.ID, saved.Score, saved.MaxScore)
	return err
}

func buildAssessment() (model.AssessmentResult, error) {
	typ, err := model.ParseAssessmentType(recordType)
	if err != nil {
		return model.AssessmentResult{}, fmt.Errorf("invalid --type: %w", err)
	}
	if recordDuration < 0 {
		return model.AssessmentResult{}, fmt.Errorf("--duration must be >= 0")
	}
	a := model.AssessmentResult{
		Type:       typ,
		Score:      recordScore,
		MaxScore:   recordMax,
		DurationMs: recordDuration.Milliseconds(),
	}
	if recordDetails != "" {
		raw, err := os.ReadFile(recordDetails)
		if err != nil {
			return model.AssessmentResult{}, fmt.Errorf("failed to read details: %w", err)
		}
		if a.Details, err = model.DecodeDetails(typ, raw); err != nil {
			return model.AssessmentResult{}, err
		}
	}
	if recordAt != "" {
		parsed, err := time.Parse(time.RFC3339, recordAt)
		if err != nil {
			return model.AssessmentResult{}, fmt.Errorf("invalid --at value: %w", err)
		}
		a.CompletedAt = parsed
	}
	return a, nil
}
