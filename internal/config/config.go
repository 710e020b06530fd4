package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/goccy/go-yaml"
	"go.uber.org/zap"
)

// Config holds the player preferences read from the optional
// configuration file. Flags and environment variables take precedence
// over everything in here
type Config struct {
	// Players to control when none are named on the command line
	Players []string `yaml:"players"`
	// Ignore lists players that are never selected
	Ignore []string `yaml:"ignore"`
	// Formats maps a command name to its default format string
	Formats map[string]string `yaml:"formats"`
}

// Load reads the configuration file. The path comes from
// MPRISCTL_CONFIG when set, otherwise the user config directory. A
// missing file is not an error; a malformed one is
func Load(logger *zap.Logger) (*Config, error) {
	path := os.Getenv("MPRISCTL_CONFIG")
	if path == "" {
		base, err := os.UserConfigDir()
		if err != nil {
			logger.Debug("No user config directory", zap.Error(err))
			return &Config{}, nil
		}
		path = filepath.Join(base, "mprisctl", "config.yaml")
	}

	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		logger.Debug("No configuration file found", zap.String("path", path))
		return &Config{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	cfg := &Config{}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
	}

	logger.Debug("Configuration loaded",
		zap.String("path", path),
		zap.Int("players", len(cfg.Players)),
		zap.Int("ignored", len(cfg.Ignore)),
		zap.Int("formats", len(cfg.Formats)))
	return cfg, nil
}
