package dashboard

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/rileyhilliard/beacon/internal/api"
	"github.com/rileyhilliard/beacon/internal/status"
)

// tickCmd returns a command that sends a tick after the refresh interval.
func (m Model) tickCmd() tea.Cmd {
	return tea.Tick(m.refresh, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

// frameCmd returns a command that sends the next animation frame.
func (m Model) frameCmd() tea.Cmd {
	return tea.Tick(frameInterval, func(t time.Time) tea.Msg {
		return frameMsg(t)
	})
}

// fetchStatusCmd fetches the monitor list with raw history.
func (m Model) fetchStatusCmd() tea.Cmd {
	if m.fetcher == nil {
		return nil
	}
	ctx, fetcher, hours := m.ctx, m.fetcher, m.statusHours
	return func() tea.Msg {
		resp, err := fetcher.FetchStatus(ctx, hours)
		return statusMsg{resp: resp, err: err, time: time.Now()}
	}
}

// fetchHeartbeatCmd fetches the buckets for one monitor and interval.
func (m Model) fetchHeartbeatCmd(monitor string, interval status.Interval) tea.Cmd {
	if m.fetcher == nil {
		return nil
	}
	ctx, fetcher := m.ctx, m.fetcher
	return func() tea.Msg {
		resp, err := fetcher.FetchHeartbeat(ctx, monitor, interval, api.HeartbeatHours(interval))
		return heartbeatMsg{monitor: monitor, interval: interval, resp: resp, err: err}
	}
}

// fetchConfigCmd fetches the server thresholds and footer.
func (m Model) fetchConfigCmd() tea.Cmd {
	if m.fetcher == nil {
		return nil
	}
	ctx, fetcher := m.ctx, m.fetcher
	return func() tea.Msg {
		resp, err := fetcher.FetchConfig(ctx)
		return configMsg{resp: resp, err: err}
	}
}

// preloadCmd fetches every interval for every monitor into the cache.
func (m Model) preloadCmd(monitors []string) tea.Cmd {
	if m.fetcher == nil {
		return nil
	}
	ctx, fetcher, cache := m.ctx, m.fetcher, m.cache
	return func() tea.Msg {
		errs := api.Preload(ctx, fetcher, cache, monitors, status.Intervals)
		return preloadMsg{errs: errs}
	}
}
