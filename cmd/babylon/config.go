package main

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"

	"github.com/signadot/babylon/format"
	"github.com/signadot/babylon/parse"

	"github.com/BurntSushi/toml"
)

const (
	configEnv     = "BABYLON_CONFIG"
	defaultConfig = "babylon.toml"
)

// FileConfig holds defaults read from a toml file. Command line options
// take precedence.
type FileConfig struct {
	Macros      string               `toml:"macros"`
	IncludeDirs []string             `toml:"include_dirs"`
	Format      *format.Format       `toml:"format"`
	MaxDepth    int                  `toml:"max_depth"`
	MaxNodes    int                  `toml:"max_nodes"`
	Unknown     *parse.UnknownPolicy `toml:"unknown_directives"`
	Color       *bool                `toml:"color"`
	LogLevel    *slog.Level          `toml:"log_level"`
}

// loadFileConfig reads path, or if path is empty the file named by
// $BABYLON_CONFIG, or ./babylon.toml if it exists. No file at all gives
// an empty configuration.
func loadFileConfig(path string) (*FileConfig, error) {
	cfg := &FileConfig{}
	if path == "" {
		path = os.Getenv(configEnv)
	}
	if path == "" {
		if _, err := os.Stat(defaultConfig); errors.Is(err, fs.ErrNotExist) {
			return cfg, nil
		}
		path = defaultConfig
	}
	md, err := toml.DecodeFile(os.ExpandEnv(path), cfg)
	if err != nil {
		return nil, fmt.Errorf("could not load config %s: %w", path, err)
	}
	if und := md.Undecoded(); len(und) != 0 {
		theLog.Warn("unknown config keys", "file", path, "keys", fmt.Sprint(und))
	}
	return cfg, nil
}
