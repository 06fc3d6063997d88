package cli

import (
	"context"
	"fmt"
	"io"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/charmbracelet/huh"
	"github.com/rileyhilliard/beacon/internal/api"
	"github.com/rileyhilliard/beacon/internal/config"
	"github.com/rileyhilliard/beacon/internal/errors"
	"github.com/rileyhilliard/beacon/internal/locale"
	"github.com/rileyhilliard/beacon/internal/status"
	"github.com/rileyhilliard/beacon/internal/ui"
)

// initProbeTimeout bounds the connection test before saving.
const initProbeTimeout = 5 * time.Second

// InitOptions holds options for the init command.
type InitOptions struct {
	Server         string // Pre-specified API base URL
	Locale         string
	Interval       string
	Dir            string // Where to write the config; defaults to cwd
	Overwrite      bool   // Overwrite existing config without asking
	NonInteractive bool   // Skip prompts, use defaults
	SkipProbe      bool   // Don't test the connection before saving
	Out            io.Writer
}

// initDefaults fills unset options from the environment.
// BEACON_SERVER_URL pre-fills the server, and CI or
// BEACON_NON_INTERACTIVE disables prompts.
func initDefaults(opts InitOptions) InitOptions {
	if opts.Server == "" {
		opts.Server = os.Getenv("BEACON_SERVER_URL")
	}
	if os.Getenv("CI") != "" || os.Getenv("BEACON_NON_INTERACTIVE") != "" {
		opts.NonInteractive = true
	}
	if opts.Out == nil {
		opts.Out = os.Stdout
	}
	return opts
}

// validateServerURL checks the input is an absolute http(s) URL.
func validateServerURL(s string) error {
	s = strings.TrimSpace(s)
	if s == "" {
		return fmt.Errorf("server URL is required")
	}
	u, err := url.Parse(s)
	if err != nil || u.Host == "" || (u.Scheme != "http" && u.Scheme != "https") {
		return fmt.Errorf("use a full URL like http://status.internal:8080")
	}
	return nil
}

// Init creates a new .beacon.yaml configuration file.
func Init(opts InitOptions) error {
	opts = initDefaults(opts)
	configPath := filepath.Join(opts.Dir, config.ConfigFileName)

	// Check for existing config
	if _, err := os.Stat(configPath); err == nil && !opts.Overwrite {
		if opts.NonInteractive {
			return errors.New(errors.ErrConfig,
				fmt.Sprintf("Config file already exists: %s", configPath),
				"Use --force to overwrite")
		}

		var overwrite bool
		form := huh.NewForm(
			huh.NewGroup(
				huh.NewConfirm().
					Title(fmt.Sprintf("Config file '%s' already exists. Overwrite?", config.ConfigFileName)).
					Value(&overwrite),
			),
		)
		if err := form.Run(); err != nil {
			return errors.WrapWithCode(err, errors.ErrConfig,
				"Failed to get user input",
				"Try running with --force to overwrite")
		}
		if !overwrite {
			fmt.Fprintln(opts.Out, "Cancelled.")
			return nil
		}
	}

	cfg := config.DefaultConfig()
	server := opts.Server
	localeTag := opts.Locale
	if localeTag == "" {
		localeTag = cfg.Display.Locale
	}
	interval := opts.Interval
	if interval == "" {
		interval = cfg.Display.Interval
	}
	timezone := cfg.Display.Timezone

	if opts.NonInteractive {
		if server == "" {
			server = cfg.Server.URL
		}
	} else {
		localeOptions := make([]huh.Option[string], 0, len(locale.Supported()))
		for _, tag := range locale.Supported() {
			localeOptions = append(localeOptions, huh.NewOption(tag, tag))
		}
		intervalOptions := make([]huh.Option[string], 0, len(status.Intervals))
		for _, i := range status.Intervals {
			intervalOptions = append(intervalOptions, huh.NewOption(string(i), string(i)))
		}
		if server == "" {
			server = cfg.Server.URL
		}

		form := huh.NewForm(
			huh.NewGroup(
				huh.NewInput().
					Title("Dashboard API URL").
					Description("Base address serving /api/status").
					Placeholder("http://status.internal:8080").
					Value(&server).
					Validate(validateServerURL),
			),
			huh.NewGroup(
				huh.NewSelect[string]().
					Title("Label language").
					Options(localeOptions...).
					Value(&localeTag),
				huh.NewSelect[string]().
					Title("Starting interval").
					Description("Raw history, or hourly, daily or weekly buckets").
					Options(intervalOptions...).
					Value(&interval),
				huh.NewInput().
					Title("Time zone").
					Description("IANA name, 'local' or 'UTC'").
					Value(&timezone).
					Validate(func(s string) error {
						_, err := locale.LoadLocation(s)
						return err
					}),
			),
		)
		if err := form.Run(); err != nil {
			return errors.WrapWithCode(err, errors.ErrConfig,
				"Failed to get user input",
				"Check terminal compatibility or use --non-interactive flag")
		}
	}

	if err := validateServerURL(server); err != nil {
		return errors.WrapWithCode(err, errors.ErrConfig, "Invalid server URL: "+server, err.Error())
	}

	cfg.Server.URL = strings.TrimSpace(server)
	cfg.Display.Locale = localeTag
	cfg.Display.Interval = interval
	cfg.Display.Timezone = timezone
	if err := config.Validate(cfg); err != nil {
		return err
	}

	if !opts.SkipProbe {
		if err := probeServer(cfg, opts); err != nil {
			return err
		}
	}

	if err := config.Write(configPath, cfg); err != nil {
		return err
	}

	fmt.Fprintf(opts.Out, "%s Created %s\n\n", ui.SymbolSuccess, configPath)
	fmt.Fprintln(opts.Out, "Next steps:")
	fmt.Fprintln(opts.Out, "  beacon            - Open the dashboard")
	fmt.Fprintln(opts.Out, "  beacon snapshot   - Print current status once")
	fmt.Fprintln(opts.Out, "  beacon watch      - Log status changes")
	return nil
}

// probeServer fetches /api/config to test the connection. On failure the
// user may save anyway; non-interactive runs fail.
func probeServer(cfg *config.Config, opts InitOptions) error {
	fmt.Fprintf(opts.Out, "%s Testing connection to %s\n", ui.SymbolPending, cfg.Server.URL)

	ctx, cancel := context.WithTimeout(context.Background(), initProbeTimeout)
	defer cancel()

	client := api.NewClient(cfg.Server.URL, initProbeTimeout)
	_, err := client.FetchConfig(ctx)
	if err == nil {
		fmt.Fprintf(opts.Out, "%s Server reachable\n\n", ui.SymbolSuccess)
		return nil
	}

	fail := errors.WrapWithCode(err, errors.ErrFetch,
		fmt.Sprintf("Couldn't reach %s", cfg.Server.URL),
		"Check the URL, or run 'beacon mock-server' to try beacon locally.")
	if opts.NonInteractive {
		return fail
	}

	fmt.Fprintf(opts.Out, "\n%s Connection to '%s' failed: %s\n\n", ui.SymbolFail, cfg.Server.URL, errors.ShortMessage(err))
	var saveAnyway bool
	form := huh.NewForm(
		huh.NewGroup(
			huh.NewConfirm().
				Title("Save config anyway? (You can fix the URL later)").
				Value(&saveAnyway),
		),
	)
	if formErr := form.Run(); formErr != nil || !saveAnyway {
		return fail
	}
	return nil
}

// initCommand is the implementation called by the cobra command.
func initCommand(opts InitOptions) error {
	return Init(opts)
}
