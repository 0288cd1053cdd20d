// Package main provides the CLI entrypoint for cognicare.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/verte-zerg/cognicare/internal/config"
	"github.com/verte-zerg/cognicare/internal/lexicon"
	"github.com/verte-zerg/cognicare/internal/logging"
	"github.com/verte-zerg/cognicare/internal/screening"
	"github.com/verte-zerg/cognicare/internal/speech"
	"github.com/verte-zerg/cognicare/internal/store"
)

const (
	defaultUser     = "guest"
	defaultLogLevel = "info"
)

var (
	rootUser     string
	rootDBPath   string
	rootLogLevel string
)

func main() {
	rootCmd := newRootCmd()
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "cognicare",
		Short:         "Cognitive screening risk scores, trends and alerts",
		SilenceUsage:  true,
		SilenceErrors: false,
	}

	rootCmd.PersistentFlags().StringVar(&rootUser, "user", defaultUser, "profile id to act on")
	rootCmd.PersistentFlags().StringVar(&rootDBPath, "db", config.DefaultDBPath(), "path to the SQLite database")
	rootCmd.PersistentFlags().StringVar(&rootLogLevel, "log-level", defaultLogLevel, "file log level (debug, info, warn, error)")

	rootCmd.AddCommand(newConfigCmd())
	rootCmd.AddCommand(newProfileCmd())
	rootCmd.AddCommand(newRecordCmd())
	rootCmd.AddCommand(newSpeechCmd())
	rootCmd.AddCommand(newRiskCmd())
	rootCmd.AddCommand(newTrendsCmd())
	rootCmd.AddCommand(newAlertsCmd())
	rootCmd.AddCommand(newExportCmd())
	rootCmd.AddCommand(newClearCmd())
	rootCmd.AddCommand(newStatsCmd())
	rootCmd.AddCommand(newServeCmd())

	return rootCmd
}

// app holds the dependencies a command needs once flags and config are merged.
type app struct {
	user     string
	cfg      config.FileConfig
	logger   *zap.Logger
	store    *store.Store
	svc      *screening.Service
	analyzer *speech.Analyzer
}

// openApp loads the config file, applies it under the flags, and opens the
// logger and database. The returned close func is always safe to call.
func openApp(cmd *cobra.Command) (*app, func(), error) {
	fileCfg, err := config.LoadConfig(config.DefaultConfigPath())
	if err != nil {
		return nil, noop, fmt.Errorf("failed to load config: %w", err)
	}
	applyStringConfig(cmd, "user", &rootUser, fileCfg.App.User)
	applyStringConfig(cmd, "db", &rootDBPath, fileCfg.App.DBPath)
	applyStringConfig(cmd, "log-level", &rootLogLevel, fileCfg.Log.Level)

	if rootUser == "" {
		return nil, noop, fmt.Errorf("--user must not be empty")
	}

	logDir := config.DefaultLogDir()
	if fileCfg.Log.Dir != nil {
		logDir = *fileCfg.Log.Dir
	}
	logger, closeLog, err := logging.Init(logging.Options{Dir: logDir, Level: rootLogLevel})
	if err != nil {
		return nil, noop, fmt.Errorf("failed to init logger: %w", err)
	}

	analyzer, err := newAnalyzer(fileCfg.Speech.FillerWords)
	if err != nil {
		_ = closeLog()
		return nil, noop, err
	}

	st, err := store.Open(rootDBPath)
	if err != nil {
		_ = closeLog()
		return nil, noop, fmt.Errorf("failed to open db: %w", err)
	}
	logger.Debug("database opened", zap.String("path", rootDBPath))

	a := &app{
		user:     rootUser,
		cfg:      fileCfg,
		logger:   logger,
		store:    st,
		svc:      screening.NewService(st, logger),
		analyzer: analyzer,
	}
	closeFn := func() {
		if cerr := st.Close(); cerr != nil {
			logErrf("failed to close db: %v\n", cerr)
		}
		if cerr := closeLog(); cerr != nil {
			logErrf("failed to close log: %v\n", cerr)
		}
	}
	return a, closeFn, nil
}

// newAnalyzer loads a custom filler-word list when one is configured.
func newAnalyzer(path *string) (*speech.Analyzer, error) {
	if path == nil || *path == "" {
		return speech.NewAnalyzer(nil), nil
	}
	words, err := lexicon.LoadWords(*path)
	if err != nil {
		return nil, fmt.Errorf("failed to load filler words: %w", err)
	}
	return speech.NewAnalyzer(words), nil
}

func noop() {}

func applyStringConfig(cmd *cobra.Command, name string, target, value *string) {
	if value == nil {
		return
	}
	if cmd.Flags().Changed(name) {
		return
	}
	*target = *value
}

func logErrf(format string, args ...any) {
	if _, err := fmt.Fprintf(os.Stderr, format, args...); err != nil {
		// Best-effort logging to stderr.
		_ = err
	}
}

func logErrln(args ...any) {
	if _, err := fmt.Fprintln(os.Stderr, args...); err != nil {
		// Best-effort logging to stderr.
		_ = err
	}
}
