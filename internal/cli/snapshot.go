package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/rileyhilliard/beacon/internal/api"
	"github.com/rileyhilliard/beacon/internal/config"
	"github.com/rileyhilliard/beacon/internal/errors"
	"github.com/rileyhilliard/beacon/internal/locale"
	"github.com/rileyhilliard/beacon/internal/logger"
	"github.com/rileyhilliard/beacon/internal/status"
	"github.com/rileyhilliard/beacon/internal/strip"
	"github.com/rileyhilliard/beacon/internal/tooltip"
	"github.com/rileyhilliard/beacon/internal/ui"
	"golang.org/x/term"
)

// defaultSnapshotWidth is used when stdout is not a terminal.
const defaultSnapshotWidth = 100

// snapshotNameWidth is the monitor name column width in text output.
const snapshotNameWidth = 18

// SnapshotItem is one strip item in snapshot output.
type SnapshotItem struct {
	Status    status.Status `json:"status"`
	Timestamp time.Time     `json:"timestamp"`
	Label     string        `json:"label,omitempty"`
	Tooltip   []string      `json:"tooltip"`
}

// SnapshotMonitor is one monitor row in snapshot output.
type SnapshotMonitor struct {
	Name     string          `json:"name"`
	URL      string          `json:"url,omitempty"`
	Status   status.Status   `json:"status"`
	Uptime   float64         `json:"uptime"`
	Interval status.Interval `json:"interval"`
	Items    []SnapshotItem  `json:"items"`

	items []status.Item
}

// SnapshotData is the result of a one-shot fetch.
type SnapshotData struct {
	Server     string            `json:"server"`
	FetchedAt  time.Time         `json:"fetched_at"`
	Thresholds status.Thresholds `json:"thresholds"`
	Monitors   []SnapshotMonitor `json:"monitors"`
	Warnings   []string          `json:"warnings,omitempty"`
}

// snapshotOptions controls buildSnapshot.
type snapshotOptions struct {
	Server      string
	Interval    status.Interval
	Thresholds  status.Thresholds
	StatusHours int
	Width       int
	CellPixels  int
	Filter      func(string) bool
	Formatter   *locale.Formatter
	Log         logger.Logger
}

// snapshotCommand fetches once and prints a static strip per monitor.
func snapshotCommand(flags DisplayFlags) error {
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

	log := logger.NewEnvLogger("[snapshot]")
	client := api.NewClient(cfg.Server.URL, cfg.Server.Timeout,
		api.WithLogger(logger.NewEnvLogger("[api]")))

	ctx, cancel := context.WithTimeout(context.Background(), 4*cfg.Server.Timeout)
	defer cancel()

	data, err := buildSnapshot(ctx, client, snapshotOptionsFrom(cfg, formatter, log))
	if err != nil {
		return err
	}

	if machineMode {
		return WriteJSONSuccess(os.Stdout, data)
	}
	renderSnapshot(os.Stdout, data, formatter)
	return nil
}

func snapshotOptionsFrom(cfg *config.Config, formatter *locale.Formatter, log logger.Logger) snapshotOptions {
	return snapshotOptions{
		Server:      cfg.Server.URL,
		Interval:    cfg.StartInterval(),
		Thresholds:  cfg.StatusThresholds(),
		StatusHours: cfg.Refresh.StatusHours,
		Width:       terminalWidth(),
		CellPixels:  cfg.Display.CellPixels,
		Filter:      cfg.ShowsMonitor,
		Formatter:   formatter,
		Log:         log,
	}
}

// terminalWidth returns the stdout width, or a default when it is not a
// terminal.
func terminalWidth() int {
	fd := int(os.Stdout.Fd())
	if !term.IsTerminal(fd) {
		return defaultSnapshotWidth
	}
	w, _, err := term.GetSize(fd)
	if err != nil || w <= 0 {
		return defaultSnapshotWidth
	}
	return w
}

// buildSnapshot fetches config, status and heartbeats and derives each
// monitor's window the same way the dashboard does.
func buildSnapshot(ctx context.Context, f api.Fetcher, opts snapshotOptions) (*SnapshotData, error) {
	if opts.Log == nil {
		opts.Log = logger.Noop()
	}
	data := &SnapshotData{
		Server:     opts.Server,
		FetchedAt:  time.Now(),
		Thresholds: opts.Thresholds,
		Monitors:   []SnapshotMonitor{},
	}

	if cfgResp, err := f.FetchConfig(ctx); err != nil {
		opts.Log.Warn("config: %v", err)
		data.Warnings = append(data.Warnings, errors.ShortMessage(err))
	} else {
		data.Thresholds = cfgResp.Thresholds(opts.Thresholds)
	}

	resp, err := f.FetchStatus(ctx, opts.StatusHours)
	if err != nil {
		return nil, err
	}

	var monitors []status.Monitor
	for _, m := range resp.ToMonitors() {
		if opts.Filter == nil || opts.Filter(m.Name) {
			monitors = append(monitors, m)
		}
	}

	cache := status.NewCache()
	for _, err := range api.Preload(ctx, f, cache, status.Names(monitors), []status.Interval{opts.Interval}) {
		opts.Log.Warn("heartbeat: %v", err)
		data.Warnings = append(data.Warnings, errors.ShortMessage(err))
	}

	cols := opts.Width - snapshotNameWidth - 12
	if cols < 0 {
		cols = 0
	}
	animator := strip.NewAnimator(strip.NewManualScheduler(data.FetchedAt), float64(cols*opts.CellPixels))
	capacity := animator.Capacity(opts.Interval)

	for i := range monitors {
		m := &monitors[i]
		series := cache.DisplaySeries(m, opts.Interval, status.SeriesOptions{
			Thresholds: data.Thresholds,
			Capacity:   capacity,
			Labels:     opts.Formatter,
		})
		animator.Sync(m.Name, opts.Interval, series.Items(), capacity)
		frame, _ := animator.Window(m.Name, opts.Interval)

		current := status.StatusNone
		if s := status.Latest(m); s != nil {
			current = status.ClassifySample(s, data.Thresholds.DegradedMs)
		}
		row := SnapshotMonitor{
			Name:     m.Name,
			URL:      m.URL,
			Status:   current,
			Uptime:   status.UptimePercentage(m),
			Interval: opts.Interval,
			Items:    make([]SnapshotItem, 0, len(frame.Items)),
			items:    frame.Items,
		}
		for j := range frame.Items {
			it := &frame.Items[j]
			row.Items = append(row.Items, SnapshotItem{
				Status:    it.Status,
				Timestamp: it.Timestamp,
				Label:     it.TypeLabel,
				Tooltip:   tooltip.Compose(it, opts.Interval, opts.Formatter).Lines(),
			})
		}
		data.Monitors = append(data.Monitors, row)
	}
	return data, nil
}

// renderSnapshot prints one strip per monitor followed by its newest item.
func renderSnapshot(w io.Writer, data *SnapshotData, formatter *locale.Formatter) {
	nameStyle := lipgloss.NewStyle().Width(snapshotNameWidth).Bold(true)
	muted := lipgloss.NewStyle().Foreground(ui.ColorMuted)

	if len(data.Monitors) == 0 {
		fmt.Fprintln(w, muted.Render("No monitors"))
	}
	for _, m := range data.Monitors {
		fmt.Fprintf(w, "%s %s %6.1f%%  %s  %s\n",
			ui.StatusStyle(m.Status).Render(ui.StatusSymbol(m.Status)),
			nameStyle.Render(m.Name),
			m.Uptime,
			ui.RenderStrip(m.items, ui.StripOptions{Hovered: -1}),
			muted.Render(string(m.Interval)))
		if n := len(m.Items); n > 0 {
			fmt.Fprintf(w, "  %s\n", muted.Render(strings.Join(m.Items[n-1].Tooltip, " · ")))
		}
	}
	for _, warning := range data.Warnings {
		fmt.Fprintf(w, "%s %s\n", ui.StatusStyle(status.StatusDegraded).Render(ui.SymbolWarning), warning)
	}
	fmt.Fprintln(w, muted.Render("fetched "+formatter.FormatTimestamp(data.FetchedAt)))
}
