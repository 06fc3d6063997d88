package cli

import (
	"fmt"
	"strings"
	"time"

	"github.com/rileyhilliard/beacon/internal/config"
	"github.com/rileyhilliard/beacon/internal/status"
	"github.com/spf13/cobra"
)

// DisplayFlags holds the flags shared by dashboard, snapshot and watch.
// Empty values leave the config untouched.
type DisplayFlags struct {
	Server   string
	Interval string
	Locale   string
	Timezone string
	Monitors string
	Refresh  string
}

// AddDisplayFlags registers --server, --interval, --locale, --timezone,
// --monitors and --refresh on a command.
func AddDisplayFlags(cmd *cobra.Command, flags *DisplayFlags) {
	cmd.Flags().StringVar(&flags.Server, "server", "", "dashboard API base URL")
	cmd.Flags().StringVar(&flags.Interval, "interval", "", "starting interval: all, hour, day or week")
	cmd.Flags().StringVar(&flags.Locale, "locale", "", "label language, e.g. en, de, fr, es")
	cmd.Flags().StringVar(&flags.Timezone, "timezone", "", "time zone for labels, e.g. UTC or Europe/Berlin")
	cmd.Flags().StringVar(&flags.Monitors, "monitors", "", "only show these monitors (comma-separated)")
	cmd.Flags().StringVar(&flags.Refresh, "refresh", "", "poll interval (e.g., 10s, 1m)")
}

// ApplyDisplayFlags overrides cfg with the non-empty flags.
func ApplyDisplayFlags(cfg *config.Config, flags DisplayFlags) error {
	if flags.Server != "" {
		cfg.Server.URL = flags.Server
	}
	if flags.Interval != "" {
		interval, err := status.ParseInterval(flags.Interval)
		if err != nil {
			return configError(err,
				fmt.Sprintf("'%s' isn't an interval", flags.Interval),
				"Use one of: all, hour, day, week.")
		}
		cfg.Display.Interval = string(interval)
	}
	if flags.Locale != "" {
		cfg.Display.Locale = flags.Locale
	}
	if flags.Timezone != "" {
		cfg.Display.Timezone = flags.Timezone
	}
	if flags.Monitors != "" {
		cfg.Display.Monitors = ParseMonitorList(flags.Monitors)
	}
	if flags.Refresh != "" {
		d, err := ParseRefresh(flags.Refresh)
		if err != nil {
			return err
		}
		cfg.Refresh.Interval = d
	}
	return nil
}

// ParseRefresh parses a poll interval and enforces the minimum.
func ParseRefresh(flag string) (time.Duration, error) {
	d, err := time.ParseDuration(flag)
	if err != nil {
		return 0, configError(err,
			fmt.Sprintf("'%s' doesn't look like a valid interval", flag),
			"Try something like 10s, 1m, or 2m30s.")
	}
	if d < config.MinRefreshInterval {
		return 0, configError(fmt.Errorf("%s is below %s", d, config.MinRefreshInterval),
			"Refresh interval too short",
			fmt.Sprintf("Minimum refresh interval is %s to avoid hammering the server.", config.MinRefreshInterval))
	}
	return d, nil
}

// ParseMonitorList splits a comma-separated monitor list, dropping blanks.
func ParseMonitorList(s string) []string {
	var names []string
	for _, part := range strings.Split(s, ",") {
		if name := strings.TrimSpace(part); name != "" {
			names = append(names, name)
		}
	}
	return names
}

// loadDisplayConfig loads the config, applies flags and validates the result.
func loadDisplayConfig(flags DisplayFlags) (*config.Config, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, err
	}
	if err := ApplyDisplayFlags(cfg, flags); err != nil {
		return nil, err
	}
	if err := config.Validate(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}
