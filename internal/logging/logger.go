// Package logging builds the application zap logger.
package logging

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"
)

const logFileName = "cognicare.log"

// Options configure Init.
type Options struct {
	// Dir holds the rotating JSON log file. Empty disables file logging.
	Dir string
	// Level is the minimum level written to the file.
	Level string
	// Console receives human-readable warnings and errors. Nil means stderr.
	Console io.Writer
}

// Init returns a logger that tees a rotating JSON file core with a console
// core that only shows warnings and above. The close func flushes the logger
// and releases the log file; it is safe to call more than once.
func Init(opts Options) (*zap.Logger, func() error, error) {
	level, err := zapcore.ParseLevel(defaultString(opts.Level, "info"))
	if err != nil {
		return nil, nil, fmt.Errorf("invalid log level %q: %w", opts.Level, err)
	}

	console := opts.Console
	if console == nil {
		console = os.Stderr
	}
	cores := []zapcore.Core{newConsoleCore(console)}

	var file *lumberjack.Logger
	if opts.Dir != "" {
		fileCore, rotator, err := newFileCore(opts.Dir, level)
		if err != nil {
			return nil, nil, err
		}
		cores = append(cores, fileCore)
		file = rotator
	}

	logger := zap.New(zapcore.NewTee(cores...), zap.AddCaller())
	closeFn := func() error {
		// Sync errors on terminal stderr are ignored.
		_ = logger.Sync()
		if file == nil {
			return nil
		}
		return file.Close()
	}
	return logger, closeFn, nil
}

func newFileCore(logDir string, level zapcore.Level) (zapcore.Core, *lumberjack.Logger, error) {
	if err := os.MkdirAll(logDir, 0o755); err != nil {
		return nil, nil, fmt.Errorf("could not create log directory: %w", err)
	}

	encoderConfig := zapcore.EncoderConfig{
		MessageKey:   "message",
		LevelKey:     "level",
		TimeKey:      "time",
		CallerKey:    "caller",
		EncodeLevel:  zapcore.CapitalLevelEncoder,
		EncodeTime:   zapcore.ISO8601TimeEncoder,
		EncodeCaller: zapcore.ShortCallerEncoder,
	}
	rotator := &lumberjack.Logger{
		Filename:   filepath.Join(logDir, logFileName),
		MaxSize:    10, // megabytes
		MaxBackups: 3,
		MaxAge:     28, // days
		Compress:   true,
	}
	core := zapcore.NewCore(zapcore.NewJSONEncoder(encoderConfig), zapcore.AddSync(rotator), level)
	return core, rotator, nil
}

func newConsoleCore(w io.Writer) zapcore.Core {
	encoderConfig := zap.NewDevelopmentEncoderConfig()
	encoderConfig.TimeKey = ""
	encoderConfig.CallerKey = ""
	enabler := zap.LevelEnablerFunc(func(l zapcore.Level) bool {
		return l >= zapcore.WarnLevel
	})
	return zapcore.NewCore(zapcore.NewConsoleEncoder(encoderConfig), zapcore.AddSync(w), enabler)
}

func defaultString(v, fallback string) string {
	if v == "" {
		return fallback
	}
	return v
}
