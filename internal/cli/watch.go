package cli

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-co-op/gocron/v2"
	"github.com/labstack/echo/v4"
	"github.com/rileyhilliard/beacon/internal/api"
	"github.com/rileyhilliard/beacon/internal/errors"
	"github.com/rileyhilliard/beacon/internal/logger"
	"github.com/rileyhilliard/beacon/internal/metrics"
	"github.com/rileyhilliard/beacon/internal/status"
	"github.com/rileyhilliard/beacon/internal/util"
)

// watchFlags holds watch-specific flags.
type watchFlags struct {
	MetricsAddr string
	Once        bool
}

var (
	watchDisplayFlags DisplayFlags
	watchOpts         watchFlags
)

// Transition is an observed change of a monitor's current status.
type Transition struct {
	Monitor string
	From    status.Status
	To      status.Status
}

// statusTracker remembers the last status of each monitor between polls.
type statusTracker struct {
	last       map[string]status.Status
	thresholds status.Thresholds
	log        logger.Logger
}

func newStatusTracker(th status.Thresholds, log logger.Logger) *statusTracker {
	if log == nil {
		log = logger.Noop()
	}
	return &statusTracker{
		last:       make(map[string]status.Status),
		thresholds: th,
		log:        log,
	}
}

// Observe records the current status of every monitor and returns the
// changes since the previous call. The first sighting of a monitor is logged
// but is not a transition.
func (t *statusTracker) Observe(monitors []status.Monitor) []Transition {
	var changes []Transition
	seen := make(map[string]bool, len(monitors))

	for i := range monitors {
		m := &monitors[i]
		seen[m.Name] = true

		current := status.StatusNone
		if s := status.Latest(m); s != nil {
			current = status.ClassifySample(s, t.thresholds.DegradedMs)
		}
		metrics.MonitorUptime.WithLabelValues(m.Name).Set(status.UptimePercentage(m))

		prev, known := t.last[m.Name]
		t.last[m.Name] = current
		if !known {
			t.log.Info("%s is %s", m.Name, current)
			continue
		}
		if prev == current {
			continue
		}

		changes = append(changes, Transition{Monitor: m.Name, From: prev, To: current})
		metrics.StatusChanges.WithLabelValues(m.Name, string(current)).Inc()
		switch current {
		case status.StatusDown, status.StatusDegraded:
			t.log.Warn("%s changed %s -> %s", m.Name, prev, current)
		default:
			t.log.Info("%s changed %s -> %s", m.Name, prev, current)
		}
	}

	for name := range t.last {
		if !seen[name] {
			t.log.Info("%s is no longer reported", name)
			delete(t.last, name)
			metrics.MonitorUptime.DeleteLabelValues(name)
		}
	}
	return changes
}

// poller runs one status fetch per call.
type poller struct {
	fetcher api.Fetcher
	tracker *statusTracker
	hours   int
	filter  func(string) bool
	timeout time.Duration
	log     logger.Logger
}

// Poll fetches status once and feeds the tracker.
func (p *poller) Poll(ctx context.Context) ([]Transition, error) {
	ctx, cancel := context.WithTimeout(ctx, p.timeout)
	defer cancel()

	resp, err := p.fetcher.FetchStatus(ctx, p.hours)
	if err != nil {
		p.log.Warn("status: %s", errors.ShortMessage(err))
		return nil, err
	}

	var monitors []status.Monitor
	for _, m := range resp.ToMonitors() {
		if p.filter == nil || p.filter(m.Name) {
			monitors = append(monitors, m)
		}
	}
	return p.tracker.Observe(monitors), nil
}

// watchCommand polls the API on a schedule and logs status changes.
func watchCommand(flags DisplayFlags, opts watchFlags) error {
	cfg, err := loadDisplayConfig(flags)
	if err != nil {
		return err
	}

	log := logger.NewEnvLogger("[watch]")
	client := api.NewClient(cfg.Server.URL, cfg.Server.Timeout,
		api.WithLogger(logger.NewEnvLogger("[api]")))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	thresholds := cfg.StatusThresholds()
	if resp, err := client.FetchConfig(ctx); err == nil {
		thresholds = resp.Thresholds(thresholds)
	} else {
		log.Warn("config: %s", errors.ShortMessage(err))
	}

	p := &poller{
		fetcher: client,
		tracker: newStatusTracker(thresholds, log),
		hours:   cfg.Refresh.StatusHours,
		filter:  cfg.ShowsMonitor,
		timeout: cfg.Server.Timeout,
		log:     log,
	}

	if opts.Once {
		_, err := p.Poll(ctx)
		return err
	}

	if opts.MetricsAddr != "" {
		srv := newMetricsServer()
		go func() {
			log.Info("serving metrics on %s/metrics", opts.MetricsAddr)
			if err := srv.Start(opts.MetricsAddr); err != nil && err != http.ErrServerClosed {
				log.Error("metrics server: %v", err)
			}
		}()
		defer func() {
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			_ = srv.Shutdown(shutdownCtx)
		}()
	}

	sched, err := gocron.NewScheduler()
	if err != nil {
		return errors.WrapWithCode(err, errors.ErrExec, "Failed to create scheduler", "")
	}
	_, err = sched.NewJob(
		gocron.DurationJob(cfg.Refresh.Interval),
		gocron.NewTask(func() {
			_, _ = p.Poll(ctx)
		}),
		gocron.WithSingletonMode(gocron.LimitModeReschedule),
		gocron.WithStartAt(gocron.WithStartImmediately()),
	)
	if err != nil {
		return errors.WrapWithCode(err, errors.ErrExec, "Failed to schedule status polling", "")
	}

	log.Info("watching %s every %s (monitors: %s)", cfg.Server.URL, cfg.Refresh.Interval, util.JoinOrDefault(cfg.Display.Monitors, "all"))
	sched.Start()
	<-ctx.Done()
	return sched.Shutdown()
}

// newMetricsServer returns an echo server exposing /metrics.
func newMetricsServer() *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.GET("/metrics", echo.WrapHandler(metrics.Handler()))
	return e
}
