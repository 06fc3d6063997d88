package cli

import (
	"context"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/rileyhilliard/beacon/internal/api"
	"github.com/rileyhilliard/beacon/internal/dashboard"
	"github.com/rileyhilliard/beacon/internal/errors"
	"github.com/rileyhilliard/beacon/internal/logger"
)

// dashFlags backs the display flags of the root and dashboard commands.
var dashFlags DisplayFlags

// dashboardCommand starts the TUI dashboard.
func dashboardCommand(flags DisplayFlags) error {
	cfg, err := loadDisplayConfig(flags)
	if err != nil {
		return err
	}
	formatter, err := cfg.Formatter()
	if err != nil {
		return configError(err,
			"Unknown time zone: "+cfg.Display.Timezone,
			"Use an IANA name like Europe/Berlin, or 'local' or 'UTC'.")
	}

	// Logs would corrupt the alternate screen, so they go to a file or nowhere.
	if cfg.Output.LogFile != "" {
		closer, err := logger.ToFile(cfg.Output.LogFile)
		if err != nil {
			return errors.WrapWithCode(err, errors.ErrConfig,
				"Can't open log file "+cfg.Output.LogFile,
				"Check output.log_file points somewhere writable.")
		}
		defer closer.Close()
	} else {
		logger.SetOutput(io.Discard)
	}

	client := api.NewClient(cfg.Server.URL, cfg.Server.Timeout,
		api.WithLogger(logger.NewEnvLogger("[api]")))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	return dashboard.Run(ctx, dashboard.Options{
		Fetcher:     client,
		Formatter:   formatter,
		Thresholds:  cfg.StatusThresholds(),
		Interval:    cfg.StartInterval(),
		Refresh:     cfg.Refresh.Interval,
		StatusHours: cfg.Refresh.StatusHours,
		CellPixels:  cfg.Display.CellPixels,
		Filter:      cfg.ShowsMonitor,
		Log:         logger.NewEnvLogger("[dashboard]"),
	})
}
