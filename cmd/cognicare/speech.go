package main

import (
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/verte-zerg/cognicare/internal/speech"
	"github.com/verte-zerg/cognicare/internal/tools"
)

var (
	speechFile     string
	speechDuration float64
	speechPauses   string
	speechSave     bool
)

func newSpeechCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "speech",
		Short: "Speech transcript analysis",
	}

	analyzeCmd := &cobra.Command{
		Use:   "analyze",
		Short: "Score a transcript",
		Args:  cobra.NoArgs,
		RunE:  runSpeechAnalyzeCmd,
	}
	analyzeCmd.Flags().StringVar(&speechFile, "file", "-", "transcript file ('-' reads stdin)")
	analyzeCmd.Flags().Float64Var(&speechDuration, "duration", 0, "recording length in seconds")
	analyzeCmd.Flags().StringVar(&speechPauses, "pause", "", "comma-separated pause lengths in seconds")
	analyzeCmd.Flags().BoolVar(&speechSave, "save", false, "record the result as a speech assessment for --user")
	_ = analyzeCmd.MarkFlagRequired("duration")

	cmd.AddCommand(analyzeCmd)
	cmd.AddCommand(&cobra.Command{
		Use:   "prompts",
		Short: "List the speech elicitation prompts",
		Args:  cobra.NoArgs,
		RunE:  runSpeechPromptsCmd,
	})
	return cmd
}

func runSpeechAnalyzeCmd(cmd *cobra.Command, _ []string) error {
	if speechDuration < 0 {
		return fmt.Errorf("--duration must be >= 0")
	}
	pauses, err := tools.ParsePauses(speechPauses)
	if err != nil {
		return fmt.Errorf("invalid --pause: %w", err)
	}
	transcript, err := readTranscript(cmd.InOrStdin(), speechFile)
	if err != nil {
		return err
	}

	a, closeApp, err := openApp(cmd)
	if err != nil {
		return err
	}
	defer closeApp()

	res := a.analyzer.Analyze(transcript, speechDuration, pauses)
	if err := writeAnalysis(cmd.OutOrStdout(), res); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	if !speechSave {
		return nil
	}
	saved, err := a.svc.Record(cmd.Context(), res.Assessment(a.user, time.Now()))
	if err != nil {
		return err
	}
	_, err = fmt.Fprintf(cmd.OutOrStdout(), "Recorded speech assessment %s (score %.0f/%.0f)\n", saved.ID, saved.Score, saved.MaxScore)
	return err
}

func readTranscript(stdin io.Reader, path string) (string, error) {
	var (
		raw []byte
		err error
	)
	if path == "-" {
		raw, err = io.ReadAll(stdin)
	} else {
		raw, err = os.ReadFile(path)
	}
	if err != nil {
		return "", fmt.Errorf("failed to read transcript: %w", err)
	}
	transcript := strings.TrimSpace(string(raw))
	if transcript == "" {
		return "", fmt.Errorf("transcript is empty")
	}
	return transcript, nil
}

func writeAnalysis(w io.Writer, res speech.Analysis) error {
	m := res.Metrics
	_, err := fmt.Fprintf(w, `Speech Analysis
Words: %d (%d unique, %d fillers)
Speaking rate: %.1f words/min
Pauses: %d (avg %.2fs)
Fluency: %.0f
Coherence: %.0f
Vocabulary diversity: %.0f
Pause frequency: %.0f
Articulation: %.0f
`,
		res.WordCount, res.UniqueWords, res.FillerWords,
		res.SpeakingRate,
		res.PauseCount, res.AveragePauseLength,
		m.Fluency, m.Coherence, m.VocabularyDiversity, m.PauseFrequency, m.Articulation,
	)
	return err
}

func runSpeechPromptsCmd(cmd *cobra.Command, _ []string) error {
	for i, p := range speech.Prompts() {
		if _, err := fmt.Fprintf(cmd.OutOrStdout(), "%d. %s\n", i+1, p); err != nil {
			return fmt.Errorf("failed to write output: %w", err)
		}
	}
	return nil
}
