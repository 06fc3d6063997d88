package config

import (
	"os"
	"path/filepath"

	"github.com/rileyhilliard/beacon/internal/errors"
	"gopkg.in/yaml.v3"
)

// fileConfig is the on-disk shape of Config. Durations are written as
// strings like "30s".
type fileConfig struct {
	Version    int              `yaml:"version"`
	Server     fileServer       `yaml:"server"`
	Display    DisplayConfig    `yaml:"display"`
	Thresholds ThresholdsConfig `yaml:"thresholds"`
	Refresh    fileRefresh      `yaml:"refresh"`
	Output     OutputConfig     `yaml:"output"`
}

type fileServer struct {
	URL     string `yaml:"url"`
	Timeout string `yaml:"timeout"`
}

type fileRefresh struct {
	Interval    string `yaml:"interval"`
	StatusHours int    `yaml:"status_hours"`
}

// Marshal renders cfg as YAML.
func Marshal(cfg *Config) ([]byte, error) {
	fc := fileConfig{
		Version:    cfg.Version,
		Server:     fileServer{URL: cfg.Server.URL, Timeout: cfg.Server.Timeout.String()},
		Display:    cfg.Display,
		Thresholds: cfg.Thresholds,
		Refresh:    fileRefresh{Interval: cfg.Refresh.Interval.String(), StatusHours: cfg.Refresh.StatusHours},
		Output:     cfg.Output,
	}
	data, err := yaml.Marshal(fc)
	if err != nil {
		return nil, errors.WrapWithCode(err, errors.ErrConfig, "Failed to encode config", "")
	}
	return data, nil
}

// Write saves cfg to path, creating parent directories.
func Write(path string, cfg *Config) error {
	data, err := Marshal(cfg)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return errors.WrapWithCode(err, errors.ErrConfig,
			"Couldn't create "+filepath.Dir(path),
			"Check directory permissions")
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return errors.WrapWithCode(err, errors.ErrConfig,
			"Couldn't write "+path,
			"Check file permissions")
	}
	return nil
}
