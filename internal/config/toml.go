// Package config provides configuration helpers and TOML parsing.
package config

import (
	"fmt"
	"os"

	"github.com/BurntSushi/toml"
)

// FileConfig represents the TOML configuration file.
type FileConfig struct {
	Compare CompareConfig `toml:"compare"`
	Model   ModelConfig   `toml:"model"`
	Log     LogConfig     `toml:"log"`
}

// CompareConfig maps comparison settings.
type CompareConfig struct {
	Threshold *int    `toml:"threshold"`
	Limit     *int    `toml:"limit"`
	Cache     *bool   `toml:"cache"`
	Language  *string `toml:"language"`
	Format    *string `toml:"format"`
	Quotient  *string `toml:"quotient"`
	Ignore    *string `toml:"ignore"`
}

// ModelConfig maps tokenizer model settings.
type ModelConfig struct {
	URL *string `toml:"url"`
}

// LogConfig maps logger settings.
type LogConfig struct {
	Level  *string `toml:"level"`
	Format *string `toml:"format"`
}

// LoadConfig reads a TOML config from the given path. Missing file is not an error.
func LoadConfig(path string) (FileConfig, error) {
	if path == "" {
		return FileConfig{}, fmt.Errorf("config path is empty")
	}
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return FileConfig{}, nil
		}
		return FileConfig{}, fmt.Errorf("failed to stat config: %w", err)
	}
	var cfg FileConfig
	meta, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return FileConfig{}, fmt.Errorf("failed to decode config: %w", err)
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		return FileConfig{}, fmt.Errorf("unknown config key %q in %s", undecoded[0].String(), path)
	}
	return cfg, nil
}
