package logging

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestInitWritesFileAndConsole(t *testing.T) {
	dir := t.TempDir()
	var console bytes.Buffer
	logger, closeLog, err := Init(Options{Dir: dir, Level: "debug", Console: &console})
	if err != nil {
		t.Fatalf("Init: %v", err)
	}
	logger.Info("recorded assessment")
	logger.Warn("database slow")
	if err := closeLog(); err != nil {
		t.Fatalf("close: %v", err)
	}

	if strings.Contains(console.String(), "recorded assessment") {
		t.Fatalf("info leaked to console: %q", console.String())
	}
	if !strings.Contains(console.String(), "database slow") {
		t.Fatalf("warning missing from console: %q", console.String())
	}

	raw, err := os.ReadFile(filepath.Join(dir, logFileName))
	if err != nil {
		t.Fatalf("read log file: %v", err)
	}
	if !strings.Contains(string(raw), `"message":"recorded assessment"`) {
		t.Fatalf("file log missing entry: %s", raw)
	}
}

func TestInitRejectsBadLevel(t *testing.T) {
	if _, _, err := Init(Options{Level: "loud"}); err == nil {
		t.Fatalf("expected error for invalid level")
	}
}

func TestInitWithoutDir(t *testing.T) {
	var console bytes.Buffer
	logger, closeLog, err := Init(Options{Console: &console})
	if err != nil {
		t.Fatalf("Init: %v", err)
	}
	logger.Error("boom")
	if !strings.Contains(console.String(), "boom") {
		t.Fatalf("console = %q", console.String())
	}
	if err := closeLog(); err != nil {
		t.Fatalf("close without file: %v", err)
	}
}

func TestCloseReleasesLogFile(t *testing.T) {
	dir := t.TempDir()
	logger, closeLog, err := Init(Options{Dir: dir, Console: &bytes.Buffer{}})
	if err != nil {
		t.Fatalf("Init: %v", err)
	}
	logger.Info("first")
	if err := closeLog(); err != nil {
		t.Fatalf("close: %v", err)
	}
	if err := closeLog(); err != nil {
		t.Fatalf("second close: %v", err)
	}
	raw, err := os.ReadFile(filepath.Join(dir, logFileName))
	if err != nil || !strings.Contains(string(raw), `"message":"first"`) {
		t.Fatalf("log file = %q, %v", raw, err)
	}
}
