// Package config locates and loads cognicare's files.
package config

import (
	"os"
	"path/filepath"
)

const appName = "cognicare"

// baseDir resolves an XDG base directory from env, falling back to a path
// under the user's home (or the working directory when there is none).
func baseDir(env string, homeRel ...string) string {
	if v := os.Getenv(env); v != "" {
		return v
	}
	home, err := os.UserHomeDir()
	if err != nil || home == "" {
		return "."
	}
	return filepath.Join(append([]string{home}, homeRel...)...)
}

// DefaultConfigPath is $XDG_CONFIG_HOME/cognicare/config.toml.
func DefaultConfigPath() string {
	return filepath.Join(baseDir("XDG_CONFIG_HOME", ".config"), appName, "config.toml")
}

// DefaultDBPath is the SQLite database under $XDG_DATA_HOME.
func DefaultDBPath() string {
	return filepath.Join(baseDir("XDG_DATA_HOME", ".local", "share"), appName, appName+".db")
}

// DefaultLogDir holds rotated log files under $XDG_STATE_HOME.
func DefaultLogDir() string {
	return filepath.Join(baseDir("XDG_STATE_HOME", ".local", "state"), appName, "logs")
}
