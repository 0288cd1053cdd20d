package main

import (
	"errors"
	"fmt"
	"os"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/verte-zerg/cognicare/internal/model"
	"github.com/verte-zerg/cognicare/internal/monitor"
	"github.com/verte-zerg/cognicare/internal/screening"
	"github.com/verte-zerg/cognicare/internal/server"
	"github.com/verte-zerg/cognicare/internal/stats"
	"github.com/verte-zerg/cognicare/internal/statsui"
)

const plotHeight = 8

var (
	riskForce    bool
	exportFormat string
	exportOutput string
	clearYes     bool
	statsSince   string
	statsLast    int
)

func newRiskCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "risk",
		Short: "Compute and show the current risk score",
		Args:  cobra.NoArgs,
		RunE:  runRiskCmd,
	}
	cmd.Flags().BoolVar(&riskForce, "force", false, "recompute even if the latest score is current")
	return cmd
}

func runRiskCmd(cmd *cobra.Command, _ []string) error {
	a, closeApp, err := openApp(cmd)
	if err != nil {
		return err
	}
	defer closeApp()

	ctx := cmd.Context()
	ev, err := a.svc.Evaluate(ctx, a.user, riskForce)
	if errors.Is(err, screening.ErrNoAssessments) {
		logErrf("No assessments for %s yet. Record one with: cognicare record --type memory --score 8 --max 10\n", a.user)
		return err
	}
	if err != nil {
		return err
	}
	scores, err := a.store.ListRiskScores(ctx, a.user)
	if err != nil {
		return fmt.Errorf("failed to load risk history: %w", err)
	}
	if !ev.Recomputed {
		logErrln("No new assessments since the last score; showing the cached result.")
	}
	return stats.RenderRiskSummary(cmd.OutOrStdout(), scores)
}

func newTrendsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "trends",
		Short: "Show per-domain trends",
		Args:  cobra.NoArgs,
		RunE:  runTrendsCmd,
	}
}

func runTrendsCmd(cmd *cobra.Command, _ []string) error {
	a, closeApp, err := openApp(cmd)
	if err != nil {
		return err
	}
	defer closeApp()

	report, err := a.svc.Monitor(cmd.Context(), a.user)
	if err != nil {
		return err
	}
	out := cmd.OutOrStdout()
	if err := stats.RenderTrendTable(out, report.Trends); err != nil {
		return err
	}
	return stats.RenderTrendPlotsWithSize(out, report.Trends, stdoutWidth(), plotHeight, false)
}

func newAlertsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "alerts",
		Short: "Check for risk alerts",
		Args:  cobra.NoArgs,
		RunE:  runAlertsCmd,
	}
}

func runAlertsCmd(cmd *cobra.Command, _ []string) error {
	a, closeApp, err := openApp(cmd)
	if err != nil {
		return err
	}
	defer closeApp()

	report, err := a.svc.Monitor(cmd.Context(), a.user)
	if err != nil {
		return err
	}
	return stats.RenderAlerts(cmd.OutOrStdout(), report.Alerts)
}

func newExportCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export all data for --user",
		Args:  cobra.NoArgs,
		RunE:  runExportCmd,
	}
	cmd.Flags().StringVar(&exportFormat, "format", screening.FormatJSON, "output format (json or yaml)")
	cmd.Flags().StringVar(&exportOutput, "output", "", "write to file instead of stdout")
	return cmd
}

func runExportCmd(cmd *cobra.Command, _ []string) (err error) {
	a, closeApp, err := openApp(cmd)
	if err != nil {
		return err
	}
	defer closeApp()

	export, err := a.svc.Export(cmd.Context(), a.user)
	if err != nil {
		return err
	}
	if exportOutput == "" {
		return screening.WriteExport(cmd.OutOrStdout(), export, exportFormat)
	}
	f, err := os.Create(exportOutput)
	if err != nil {
		return fmt.Errorf("failed to create export file: %w", err)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("failed to close export file: %w", cerr)
		}
	}()
	if err := screening.WriteExport(f, export, exportFormat); err != nil {
		return err
	}
	logErrf("Wrote %s\n", exportOutput)
	return nil
}

func newClearCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "clear",
		Short: "Delete the profile, assessments and scores of --user",
		Args:  cobra.NoArgs,
		RunE:  runClearCmd,
	}
	cmd.Flags().BoolVar(&clearYes, "yes", false, "confirm deletion")
	return cmd
}

func runClearCmd(cmd *cobra.Command, _ []string) error {
	if !clearYes {
		return fmt.Errorf("refusing to delete data without --yes")
	}
	a, closeApp, err := openApp(cmd)
	if err != nil {
		return err
	}
	defer closeApp()

	if err := a.store.ClearUser(cmd.Context(), a.user); err != nil {
		return err
	}
	logErrf("Cleared all data for %s\n", a.user)
	return nil
}

func newStatsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Open the screening dashboard",
		Args:  cobra.NoArgs,
		RunE:  runStatsCmd,
	}
	cmd.Flags().StringVar(&statsSince, "since", "", "start date (YYYY-MM-DD)")
	cmd.Flags().IntVar(&statsLast, "last", 0, "limit to last N assessments")
	return cmd
}

func runStatsCmd(cmd *cobra.Command, _ []string) error {
	var sinceTime *time.Time
	if statsSince != "" {
		parsed, err := time.ParseInLocation("2006-01-02", statsSince, time.Local)
		if err != nil {
			return fmt.Errorf("invalid --since value: %w", err)
		}
		sinceTime = &parsed
	}
	if statsLast < 0 {
		return fmt.Errorf("--last must be >= 0")
	}

	a, closeApp, err := openApp(cmd)
	if err != nil {
		return err
	}
	defer closeApp()

	cfg := model.DashboardConfig{UserID: a.user, Since: sinceTime, Last: statsLast}
	ui := statsui.NewModel(a.store, monitor.New(), cfg)
	program := tea.NewProgram(ui, tea.WithAltScreen())
	if _, err := program.Run(); err != nil {
		return fmt.Errorf("failed to run stats TUI: %w", err)
	}
	return nil
}

func newServeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the MCP server on stdio",
		Args:  cobra.NoArgs,
		RunE:  runServeCmd,
	}
}

func runServeCmd(cmd *cobra.Command, _ []string) error {
	a, closeApp, err := openApp(cmd)
	if err != nil {
		return err
	}
	defer closeApp()

	s := server.New(a.svc, a.analyzer, a.logger)
	if err := server.Serve(s); err != nil {
		return fmt.Errorf("mcp server stopped: %w", err)
	}
	return nil
}

func stdoutWidth() int {
	width, _, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil || width <= 0 {
		return 0
	}
	return width
}
