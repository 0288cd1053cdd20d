package main

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/verte-zerg/cognicare/internal/config"
)

func newConfigCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "config",
		Short: "Create the config file if missing and open it in $EDITOR",
		Args:  cobra.NoArgs,
		RunE: func(_ *cobra.Command, _ []string) error {
			path := config.DefaultConfigPath()
			if err := ensureConfigFile(path); err != nil {
				return err
			}
			return openEditor(path)
		},
	}
}

// ensureConfigFile writes the commented template unless path already exists.
func ensureConfigFile(path string) error {
	_, err := os.Stat(path)
	if err == nil {
		return nil
	}
	if !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("failed to stat config: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	if err := os.WriteFile(path, []byte(defaultConfigTemplate()), 0o644); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}
	return nil
}

func openEditor(path string) error {
	editor := strings.Fields(os.Getenv("EDITOR"))
	if len(editor) == 0 {
		editor = []string{"vi"}
	}
	cmd := exec.Command(editor[0], append(editor[1:], path)...)
	cmd.Stdin, cmd.Stdout, cmd.Stderr = os.Stdin, os.Stdout, os.Stderr
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("failed to open editor: %w", err)
	}
	return nil
}

func defaultConfigTemplate() string {
	var b strings.Builder
	b.WriteString("# cognicare configuration\n")
	b.WriteString("# Every value is optional. Command-line flags win over this file.\n\n")
	fmt.Fprintf(&b, "[app]\n# user = %q\n# db-path = %q\n\n", defaultUser, config.DefaultDBPath())
	fmt.Fprintf(&b, "[log]\n# level = %q    # debug, info, warn, error\n# dir = %q\n\n", defaultLogLevel, config.DefaultLogDir())
	b.WriteString("[speech]\n# filler-words = \"/path/to/fillers.txt\"    # one word per line\n")
	return b.String()
}
