package config

import (
	"time"

	"github.com/rileyhilliard/beacon/internal/locale"
	"github.com/rileyhilliard/beacon/internal/status"
)

// CurrentConfigVersion is the schema version for the config file.
// Increment when making breaking changes to the config structure.
const CurrentConfigVersion = 1

// Config represents the complete .beacon.yaml configuration file.
type Config struct {
	Version    int              `yaml:"version" mapstructure:"version"`
	Server     ServerConfig     `yaml:"server" mapstructure:"server"`
	Display    DisplayConfig    `yaml:"display" mapstructure:"display"`
	Thresholds ThresholdsConfig `yaml:"thresholds" mapstructure:"thresholds"`
	Refresh    RefreshConfig    `yaml:"refresh" mapstructure:"refresh"`
	Output     OutputConfig     `yaml:"output" mapstructure:"output"`
}

// ServerConfig locates the dashboard API.
type ServerConfig struct {
	// URL is the base address, e.g. http://status.internal:8080.
	URL string `yaml:"url" mapstructure:"url"`

	// Timeout bounds a single request.
	Timeout time.Duration `yaml:"timeout" mapstructure:"timeout"`
}

// DisplayConfig controls how strips and labels are rendered.
type DisplayConfig struct {
	// Locale is a BCP 47 tag such as "en" or "de-AT".
	Locale string `yaml:"locale" mapstructure:"locale"`

	// Interval is the starting resolution: all, hour, day or week.
	Interval string `yaml:"interval" mapstructure:"interval"`

	// Timezone is an IANA zone name, "local" or "UTC".
	Timezone string `yaml:"timezone" mapstructure:"timezone"`

	// CellPixels is the pixel width assumed for one terminal column when
	// sizing the strip.
	CellPixels int `yaml:"cell_pixels" mapstructure:"cell_pixels"`

	// Monitors limits the dashboard to these names. Empty shows all.
	Monitors []string `yaml:"monitors" mapstructure:"monitors"`
}

// ThresholdsConfig holds the classification thresholds used until the
// server's /api/config answers.
type ThresholdsConfig struct {
	DegradedMs         float64 `yaml:"degraded_ms" mapstructure:"degraded_ms"`
	DegradedPercentage float64 `yaml:"degraded_percentage" mapstructure:"degraded_percentage"`
}

// RefreshConfig controls polling.
type RefreshConfig struct {
	Interval    time.Duration `yaml:"interval" mapstructure:"interval"`
	StatusHours int           `yaml:"status_hours" mapstructure:"status_hours"`
}

// OutputConfig controls terminal output formatting.
type OutputConfig struct {
	// Color mode: "auto", "always", or "never".
	// "auto" disables color when output is piped.
	Color string `yaml:"color" mapstructure:"color"`

	// LogFile receives logs while the dashboard owns the terminal.
	// Empty disables dashboard logging.
	LogFile string `yaml:"log_file" mapstructure:"log_file"`
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() *Config {
	th := status.DefaultThresholds()
	return &Config{
		Version: CurrentConfigVersion,
		Server: ServerConfig{
			URL:     "http://localhost:8080",
			Timeout: 10 * time.Second,
		},
		Display: DisplayConfig{
			Locale:     "en",
			Interval:   string(status.IntervalAll),
			Timezone:   "local",
			CellPixels: 8,
			Monitors:   []string{},
		},
		Thresholds: ThresholdsConfig{
			DegradedMs:         th.DegradedMs,
			DegradedPercentage: th.DegradedPercentage,
		},
		Refresh: RefreshConfig{
			Interval:    30 * time.Second,
			StatusHours: 720,
		},
		Output: OutputConfig{
			Color: "auto",
		},
	}
}

// StatusThresholds converts the configured thresholds.
func (c *Config) StatusThresholds() status.Thresholds {
	return status.Thresholds{
		DegradedMs:         c.Thresholds.DegradedMs,
		DegradedPercentage: c.Thresholds.DegradedPercentage,
	}
}

// StartInterval returns the configured starting interval, or all when the
// value is invalid.
func (c *Config) StartInterval() status.Interval {
	interval, err := status.ParseInterval(c.Display.Interval)
	if err != nil {
		return status.IntervalAll
	}
	return interval
}

// Formatter builds the locale formatter for the display settings.
func (c *Config) Formatter() (*locale.Formatter, error) {
	loc, err := locale.LoadLocation(c.Display.Timezone)
	if err != nil {
		return nil, err
	}
	return locale.New(c.Display.Locale, loc), nil
}

// ShowsMonitor reports whether name passes the display.monitors filter.
func (c *Config) ShowsMonitor(name string) bool {
	if len(c.Display.Monitors) == 0 {
		return true
	}
	for _, m := range c.Display.Monitors {
		if m == name {
			return true
		}
	}
	return false
}
