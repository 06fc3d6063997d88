package config

import (
	"fmt"
	"net/url"
	"time"

	"github.com/rileyhilliard/beacon/internal/errors"
	"github.com/rileyhilliard/beacon/internal/locale"
	"github.com/rileyhilliard/beacon/internal/status"
)

// MinRefreshInterval is the fastest allowed polling cadence.
const MinRefreshInterval = time.Second

// ValidColorModes are the accepted output.color values.
var ValidColorModes = []string{"auto", "always", "never"}

// Validate checks the config for errors and returns structured error messages.
func Validate(cfg *Config) error {
	if cfg.Version > CurrentConfigVersion {
		return errors.New(errors.ErrConfig,
			fmt.Sprintf("This config is from the future (version %d, but beacon only knows up to %d)", cfg.Version, CurrentConfigVersion),
			"Grab the latest beacon release")
	}

	if err := validateServer(cfg.Server); err != nil {
		return errors.WrapWithCode(err, errors.ErrConfig, err.Error(), "Check the 'server' section in your .beacon.yaml.")
	}
	if err := validateDisplay(cfg.Display); err != nil {
		return errors.WrapWithCode(err, errors.ErrConfig, err.Error(), "Check the 'display' section in your .beacon.yaml.")
	}
	if err := validateThresholds(cfg.Thresholds); err != nil {
		return errors.WrapWithCode(err, errors.ErrConfig, err.Error(), "Check the 'thresholds' section in your .beacon.yaml.")
	}
	if err := validateRefresh(cfg.Refresh); err != nil {
		return errors.WrapWithCode(err, errors.ErrConfig, err.Error(), "Check the 'refresh' section in your .beacon.yaml.")
	}
	if err := validateOutput(cfg.Output); err != nil {
		return errors.WrapWithCode(err, errors.ErrConfig, err.Error(), "Check the 'output' section in your .beacon.yaml.")
	}
	return nil
}

func validateServer(s ServerConfig) error {
	if s.URL == "" {
		return fmt.Errorf("server.url is empty")
	}
	u, err := url.Parse(s.URL)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return fmt.Errorf("server.url %q should be an http(s) address like http://localhost:8080", s.URL)
	}
	if s.Timeout <= 0 {
		return fmt.Errorf("server.timeout must be positive, got %s", s.Timeout)
	}
	return nil
}

func validateDisplay(d DisplayConfig) error {
	if _, err := status.ParseInterval(d.Interval); err != nil {
		return fmt.Errorf("display.interval: %w", err)
	}
	if _, err := locale.LoadLocation(d.Timezone); err != nil {
		return fmt.Errorf("display.timezone %q is not a known zone", d.Timezone)
	}
	if d.CellPixels < 1 || d.CellPixels > 64 {
		return fmt.Errorf("display.cell_pixels must be between 1 and 64, got %d", d.CellPixels)
	}
	return nil
}

func validateThresholds(t ThresholdsConfig) error {
	if t.DegradedMs < 0 {
		return fmt.Errorf("thresholds.degraded_ms can't be negative")
	}
	if t.DegradedPercentage < 0 || t.DegradedPercentage > 100 {
		return fmt.Errorf("thresholds.degraded_percentage must be between 0 and 100, got %g", t.DegradedPercentage)
	}
	return nil
}

func validateRefresh(r RefreshConfig) error {
	if r.Interval < MinRefreshInterval {
		return fmt.Errorf("refresh.interval must be at least %s, got %s", MinRefreshInterval, r.Interval)
	}
	if r.StatusHours <= 0 {
		return fmt.Errorf("refresh.status_hours must be positive, got %d", r.StatusHours)
	}
	return nil
}

func validateOutput(out OutputConfig) error {
	for _, mode := range ValidColorModes {
		if out.Color == mode {
			return nil
		}
	}
	return fmt.Errorf("output.color %q isn't valid, use auto, always or never", out.Color)
}
