package config

import (
	"errors"
	"fmt"
	"io/fs"

	"github.com/BurntSushi/toml"
)

// FileConfig mirrors config.toml. Nil fields were not set in the file.
type FileConfig struct {
	App    AppConfig    `toml:"app"`
	Log    LogConfig    `toml:"log"`
	Speech SpeechConfig `toml:"speech"`
}

// AppConfig maps general settings.
type AppConfig struct {
	User   *string `toml:"user"`
	DBPath *string `toml:"db-path"`
}

// LogConfig maps logging settings.
type LogConfig struct {
	Level *string `toml:"level"`
	Dir   *string `toml:"dir"`
}

// SpeechConfig maps speech analysis settings.
type SpeechConfig struct {
	FillerWords *string `toml:"filler-words"`
}

// LoadConfig decodes the TOML file at path. A missing file yields an empty
// config; keys the struct does not know are rejected.
func LoadConfig(path string) (FileConfig, error) {
	if path == "" {
		return FileConfig{}, errors.New("config path is empty")
	}
	var cfg FileConfig
	meta, err := toml.DecodeFile(path, &cfg)
	switch {
	case errors.Is(err, fs.ErrNotExist):
		return FileConfig{}, nil
	case err != nil:
		return FileConfig{}, fmt.Errorf("failed to decode config %s: %w", path, err)
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		return FileConfig{}, fmt.Errorf("unknown config key %q in %s", undecoded[0].String(), path)
	}
	return cfg, nil
}
