package dashboard

import (
	"context"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/rileyhilliard/beacon/internal/api"
	"github.com/rileyhilliard/beacon/internal/errors"
	"github.com/rileyhilliard/beacon/internal/locale"
	"github.com/rileyhilliard/beacon/internal/status"
	"github.com/rileyhilliard/beacon/internal/strip"
	"github.com/rileyhilliard/beacon/internal/ui"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var start = time.Date(2024, 3, 10, 14, 0, 0, 0, time.UTC)

type fakeFetcher struct{}

func (fakeFetcher) FetchStatus(context.Context, int) (*api.StatusResponse, error) {
	return &api.StatusResponse{}, nil
}

func (fakeFetcher) FetchHeartbeat(_ context.Context, monitor string, interval status.Interval, _ int) (*api.HeartbeatResponse, error) {
	return &api.HeartbeatResponse{MonitorName: monitor, Interval: string(interval)}, nil
}

func (fakeFetcher) FetchConfig(context.Context) (*api.ConfigResponse, error) {
	return &api.ConfigResponse{}, nil
}

func newTestModel(t *testing.T, opts Options) (Model, *strip.ManualScheduler) {
	t.Helper()
	sched := strip.NewManualScheduler(start)
	opts.Scheduler = sched
	if opts.Fetcher == nil {
		opts.Fetcher = fakeFetcher{}
	}
	if opts.Formatter == nil {
		opts.Formatter = locale.New("en", time.UTC)
	}
	if opts.Thresholds == (status.Thresholds{}) {
		opts.Thresholds = status.DefaultThresholds()
	}
	return New(opts), sched
}

func monitorJSON(name string, n int) api.MonitorJSON {
	up := true
	rt := 0.1
	m := api.MonitorJSON{Name: name, URL: "https://" + name + ".example.com"}
	for i := 0; i < n; i++ {
		m.History = append(m.History, api.SampleJSON{
			Timestamp:    start.Add(time.Duration(i) * time.Minute).Format(time.RFC3339),
			IsUp:         &up,
			ResponseTime: &rt,
		})
	}
	return m
}

func statusOf(monitors ...api.MonitorJSON) statusMsg {
	return statusMsg{resp: &api.StatusResponse{Monitors: monitors}, time: start}
}

func update(t *testing.T, m Model, msg tea.Msg) (Model, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(msg)
	model, ok := next.(Model)
	require.True(t, ok)
	return model, cmd
}

func keyRunes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestNew_Defaults(t *testing.T) {
	m := New(Options{})

	assert.Equal(t, DefaultRefresh, m.refresh)
	assert.Equal(t, api.DefaultStatusHours, m.statusHours)
	assert.Equal(t, DefaultCellPixels, m.cellPixels)
	assert.Equal(t, status.IntervalAll, m.defaultInterval)
	assert.Equal(t, -1, m.hovered)
	assert.True(t, m.loading)
	assert.NotNil(t, m.cache)
	assert.Equal(t, strip.MinBaseCapacity, m.animator.BaseCapacity())
}

func TestInit_WithoutFetcher(t *testing.T) {
	m := New(Options{})
	assert.NotNil(t, m.Init())
	assert.Nil(t, m.fetchStatusCmd())
	assert.Nil(t, m.preloadCmd([]string{"api"}))
}

func TestUpdate_FirstStatusPreloads(t *testing.T) {
	m, _ := newTestModel(t, Options{})

	m, cmd := update(t, m, statusOf(monitorJSON("api", 4), monitorJSON("web", 2)))

	assert.NotNil(t, cmd)
	assert.False(t, m.loading)
	assert.False(t, m.preloaded)
	require.Len(t, m.monitors, 2)
	assert.Equal(t, start, m.lastUpdate)

	frame, ok := m.animator.Window("api", status.IntervalAll)
	require.True(t, ok)
	assert.Len(t, frame.Items, 4)

	m, _ = update(t, m, preloadMsg{})
	assert.True(t, m.preloaded)
	assert.Nil(t, m.lastErr)
}

func TestUpdate_PreloadErrorsMarkStale(t *testing.T) {
	m, _ := newTestModel(t, Options{})
	m, _ = update(t, m, statusOf(monitorJSON("api", 2)))

	failure := errors.New(errors.ErrFetch, "Heartbeat request failed", "")
	m, _ = update(t, m, preloadMsg{errs: []error{failure}})

	assert.True(t, m.preloaded)
	assert.Equal(t, failure, m.lastErr)
	assert.Contains(t, m.View(), "stale")
}

func TestUpdate_StatusErrorKeepsMonitors(t *testing.T) {
	m, _ := newTestModel(t, Options{})
	m, _ = update(t, m, statusOf(monitorJSON("api", 3)))

	failure := errors.New(errors.ErrFetch, "Status request failed", "")
	m, cmd := update(t, m, statusMsg{err: failure, time: start.Add(time.Minute)})

	assert.Nil(t, cmd)
	assert.Len(t, m.monitors, 1)
	assert.Equal(t, failure, m.lastErr)
	assert.Equal(t, start, m.lastUpdate)

	frame, ok := m.animator.Window("api", status.IntervalAll)
	require.True(t, ok)
	assert.Len(t, frame.Items, 3)
}

func TestUpdate_FilterHidesMonitors(t *testing.T) {
	m, _ := newTestModel(t, Options{Filter: func(name string) bool { return name == "web" }})

	m, _ = update(t, m, statusOf(monitorJSON("api", 2), monitorJSON("web", 2)))

	require.Len(t, m.monitors, 1)
	assert.Equal(t, "web", m.monitors[0].Name)
	assert.Equal(t, 1, m.animator.Len())
}

func TestUpdate_RemovedMonitorDropsWindow(t *testing.T) {
	m, _ := newTestModel(t, Options{})
	m, _ = update(t, m, statusOf(monitorJSON("api", 2), monitorJSON("web", 2)))
	m.selected = 1
	m.intervals["web"] = status.IntervalDay

	m, _ = update(t, m, statusOf(monitorJSON("api", 2)))

	assert.Equal(t, 1, m.animator.Len())
	assert.Equal(t, 0, m.selected)
	assert.NotContains(t, m.intervals, "web")
}

func hourBuckets(n int) *api.HeartbeatResponse {
	rt := 0.12
	resp := &api.HeartbeatResponse{MonitorName: "api", Interval: "hour"}
	for i := 0; i < n; i++ {
		resp.Heartbeat = append(resp.Heartbeat, api.BucketJSON{
			Timestamp:       start.Add(time.Duration(i) * time.Hour).Format(time.RFC3339),
			Count:           60,
			AvgResponseTime: &rt,
		})
	}
	return resp
}

func TestUpdate_GrowthSlidesThenTrims(t *testing.T) {
	m, sched := newTestModel(t, Options{Interval: status.IntervalHour})
	capacity := m.animator.Capacity(status.IntervalHour)

	m, _ = update(t, m, statusOf(monitorJSON("api", 2)))
	m, _ = update(t, m, preloadMsg{})
	m, _ = update(t, m, heartbeatMsg{monitor: "api", interval: status.IntervalHour, resp: hourBuckets(capacity)})
	assert.False(t, m.animating)

	m, cmd := update(t, m, heartbeatMsg{monitor: "api", interval: status.IntervalHour, resp: hourBuckets(capacity + 1)})
	assert.NotNil(t, cmd)
	assert.True(t, m.animating)

	frame, ok := m.animator.Window("api", status.IntervalHour)
	require.True(t, ok)
	assert.True(t, frame.Sliding)
	assert.Len(t, frame.Items, capacity+1)

	m, cmd = update(t, m, frameMsg(start.Add(strip.SlideDuration/2)))
	assert.NotNil(t, cmd)
	frame, _ = m.animator.Window("api", status.IntervalHour)
	assert.InDelta(t, -float64(ui.ItemWidth())/2, frame.Offset, 0.001)

	sched.Advance(strip.SlideDuration)

	frame, _ = m.animator.Window("api", status.IntervalHour)
	assert.False(t, frame.Sliding)
	assert.Len(t, frame.Items, capacity)
	assert.Zero(t, frame.Offset)
	assert.Equal(t, start.Add(time.Hour), frame.Items[0].Timestamp)

	m, cmd = update(t, m, frameMsg(start.Add(strip.SlideDuration)))
	assert.Nil(t, cmd)
	assert.False(t, m.animating)
}

func TestUpdate_FullHistoryRefreshesInPlace(t *testing.T) {
	m, _ := newTestModel(t, Options{})
	capacity := m.animator.Capacity(status.IntervalAll)

	m, _ = update(t, m, statusOf(monitorJSON("api", capacity)))
	m, _ = update(t, m, preloadMsg{})

	m, cmd := update(t, m, statusOf(monitorJSON("api", capacity+1)))
	assert.False(t, m.animating)
	assert.NotNil(t, cmd)

	frame, _ := m.animator.Window("api", status.IntervalAll)
	assert.False(t, frame.Sliding)
	require.Len(t, frame.Items, capacity)
	assert.Equal(t, start.Add(time.Duration(capacity)*time.Minute), frame.Items[capacity-1].Timestamp)
}

func TestUpdate_CallbackRunsOnLoop(t *testing.T) {
	m, _ := newTestModel(t, Options{})
	ran := false

	m, cmd := update(t, m, callbackMsg{fn: func() { ran = true }})

	assert.Nil(t, cmd)
	assert.True(t, ran)
	assert.Equal(t, -1, m.hovered)
}

func TestUpdate_HeartbeatSwitchesToBuckets(t *testing.T) {
	m, _ := newTestModel(t, Options{Interval: status.IntervalDay})
	m, _ = update(t, m, statusOf(monitorJSON("api", 5)))

	frame, ok := m.animator.Window("api", status.IntervalDay)
	require.True(t, ok)
	assert.Len(t, frame.Items, 5)

	resp := &api.HeartbeatResponse{
		MonitorName: "api",
		Interval:    "day",
		Heartbeat: []api.BucketJSON{
			{Timestamp: "2024-03-09T00:00:00Z", Count: 100},
			{Timestamp: "2024-03-10T00:00:00Z", Count: 100, DownCount: 1},
		},
	}
	m, _ = update(t, m, heartbeatMsg{monitor: "api", interval: status.IntervalDay, resp: resp})

	frame, ok = m.animator.Window("api", status.IntervalDay)
	require.True(t, ok)
	require.Len(t, frame.Items, 2)
	assert.Equal(t, status.StatusDown, frame.Items[1].Status)
	assert.Equal(t, "Mar 10, 2024 UTC", frame.Items[1].TypeLabel)
}

func TestUpdate_HeartbeatErrorLeavesCache(t *testing.T) {
	m, _ := newTestModel(t, Options{})
	failure := errors.New(errors.ErrDecode, "bad body", "")

	m, cmd := update(t, m, heartbeatMsg{monitor: "api", interval: status.IntervalDay, err: failure})

	assert.Nil(t, cmd)
	assert.Equal(t, 0, m.cache.Len())
	assert.Equal(t, failure, m.lastErr)
}

func TestUpdate_ConfigOverridesThresholds(t *testing.T) {
	m, _ := newTestModel(t, Options{})
	ms := 200.0

	m, _ = update(t, m, configMsg{resp: &api.ConfigResponse{DegradedThresholdMs: &ms, FooterText: "Status by beacon"}})

	assert.Equal(t, 200.0, m.thresholds.DegradedMs)
	assert.Equal(t, status.DefaultThresholds().DegradedPercentage, m.thresholds.DegradedPercentage)
	assert.Contains(t, m.View(), "Status by beacon")

	// Samples at 100ms stay up, a 250ms sample is now degraded.
	slow := monitorJSON("api", 2)
	rt := 0.25
	slow.History[1].ResponseTime = &rt
	m, _ = update(t, m, statusOf(slow))
	frame, _ := m.animator.Window("api", status.IntervalAll)
	require.Len(t, frame.Items, 2)
	assert.Equal(t, status.StatusUp, frame.Items[0].Status)
	assert.Equal(t, status.StatusDegraded, frame.Items[1].Status)
}

func TestUpdate_WindowResizeReplaces(t *testing.T) {
	m, _ := newTestModel(t, Options{})
	m, _ = update(t, m, statusOf(monitorJSON("api", 100)))

	frame, _ := m.animator.Window("api", status.IntervalAll)
	assert.Len(t, frame.Items, strip.MinBaseCapacity)

	m, _ = update(t, m, tea.WindowSizeMsg{Width: 200, Height: 40})

	// 200 columns leave 163 for the strip.
	assert.Equal(t, 57, m.animator.BaseCapacity())
	frame, _ = m.animator.Window("api", status.IntervalAll)
	assert.Len(t, frame.Items, 57)
	assert.Equal(t, 57, frame.Capacity)
}

// rowFor returns the rendered row of the named monitor.
func rowFor(t *testing.T, view, name string) string {
	t.Helper()
	for _, line := range strings.Split(view, "\n") {
		if strings.Contains(line, name) && strings.Contains(line, "%") {
			return line
		}
	}
	require.Failf(t, "row not found", "no row for %s", name)
	return ""
}

func TestView_NewestItemVisible(t *testing.T) {
	tests := []struct {
		name      string
		width     int
		capacity  int
		upVisible int
	}{
		{name: "normal terminal", width: 100, capacity: 22, upVisible: 21},
		{name: "narrow terminal clips oldest", width: 45, capacity: strip.MinBaseCapacity, upVisible: 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m, _ := newTestModel(t, Options{})
			m, _ = update(t, m, tea.WindowSizeMsg{Width: tt.width, Height: 30})

			mon := monitorJSON("api", 60)
			down := false
			mon.History[59].IsUp = &down
			m, _ = update(t, m, statusOf(mon))

			assert.Equal(t, tt.capacity, m.animator.Capacity(status.IntervalAll))
			row := rowFor(t, m.View(), "api")

			assert.Equal(t, 1, strings.Count(row, ui.GlyphDown))
			assert.Equal(t, tt.upVisible, strings.Count(row, ui.GlyphUp))
			assert.Greater(t, strings.LastIndex(row, ui.GlyphDown), strings.LastIndex(row, ui.GlyphUp))
			assert.LessOrEqual(t, lipgloss.Width(row), tt.width)
		})
	}
}

func TestHandleKeyMsg_Selection(t *testing.T) {
	m, _ := newTestModel(t, Options{})
	m, _ = update(t, m, statusOf(monitorJSON("api", 3), monitorJSON("web", 3)))

	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyDown})
	assert.Equal(t, 1, m.selected)

	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyDown})
	assert.Equal(t, 1, m.selected)

	m, _ = update(t, m, keyRunes("k"))
	assert.Equal(t, 0, m.selected)

	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyUp})
	assert.Equal(t, 0, m.selected)
}

func TestHandleKeyMsg_Hover(t *testing.T) {
	m, _ := newTestModel(t, Options{})
	m, _ = update(t, m, statusOf(monitorJSON("api", 3)))

	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyLeft})
	assert.Equal(t, 2, m.hovered)

	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyLeft})
	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyLeft})
	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyLeft})
	assert.Equal(t, 0, m.hovered)

	m, _ = update(t, m, keyRunes("l"))
	assert.Equal(t, 1, m.hovered)

	view := m.View()
	assert.Contains(t, view, "ping: 100ms")
	assert.Contains(t, view, "Up")

	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyEscape})
	assert.Equal(t, -1, m.hovered)
	assert.NotContains(t, m.View(), "ping: 100ms")
}

func TestHandleKeyMsg_HoverWithoutMonitors(t *testing.T) {
	m, _ := newTestModel(t, Options{})

	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyRight})

	assert.Equal(t, -1, m.hovered)
}

func TestHandleKeyMsg_CycleInterval(t *testing.T) {
	m, _ := newTestModel(t, Options{})
	m, _ = update(t, m, statusOf(monitorJSON("api", 3), monitorJSON("web", 3)))

	m, cmd := update(t, m, keyRunes("i"))

	assert.NotNil(t, cmd)
	assert.Equal(t, status.IntervalHour, m.intervalFor("api"))
	assert.Equal(t, status.IntervalAll, m.intervalFor("web"))

	_, ok := m.animator.Window("api", status.IntervalHour)
	assert.True(t, ok)
	_, ok = m.animator.Window("api", status.IntervalAll)
	assert.False(t, ok)
}

func TestHandleKeyMsg_IntervalForAll(t *testing.T) {
	m, _ := newTestModel(t, Options{Interval: status.IntervalDay})
	m, _ = update(t, m, statusOf(monitorJSON("api", 3), monitorJSON("web", 3)))

	m, _ = update(t, m, keyRunes("I"))

	assert.Equal(t, status.IntervalWeek, m.defaultInterval)
	for _, name := range []string{"api", "web"} {
		assert.Equal(t, status.IntervalWeek, m.intervalFor(name))
		frame, ok := m.animator.Window(name, status.IntervalWeek)
		require.True(t, ok)
		assert.Equal(t, m.animator.Capacity(status.IntervalWeek), frame.Capacity)
	}
}

func TestHandleKeyMsg_HelpAndQuit(t *testing.T) {
	m, _ := newTestModel(t, Options{})

	m, _ = update(t, m, keyRunes("?"))
	assert.True(t, m.showHelp)
	assert.Contains(t, m.View(), "Keyboard Shortcuts")

	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyEscape})
	assert.False(t, m.showHelp)

	m, cmd := update(t, m, keyRunes("q"))
	assert.True(t, m.quitting)
	require.NotNil(t, cmd)
	assert.Equal(t, tea.Quit(), cmd())
	assert.Error(t, m.ctx.Err())
	assert.Empty(t, m.View())
}

func TestHandleKeyMsg_Refresh(t *testing.T) {
	m, _ := newTestModel(t, Options{})
	m.loading = false

	m, cmd := update(t, m, keyRunes("r"))

	assert.True(t, m.loading)
	assert.NotNil(t, cmd)

	msg, ok := m.fetchStatusCmd()().(statusMsg)
	require.True(t, ok)
	assert.NoError(t, msg.err)
	assert.NotNil(t, msg.resp)
}

func TestView_Rows(t *testing.T) {
	m, _ := newTestModel(t, Options{})
	assert.Contains(t, m.View(), "Loading monitors")

	empty := api.MonitorJSON{Name: "web"}
	m, _ = update(t, m, statusOf(monitorJSON("api", 4), empty))
	view := m.View()

	assert.Contains(t, view, "api")
	assert.Contains(t, view, "web")
	assert.Contains(t, view, "100.0%")
	assert.Contains(t, view, "2 monitors")
	assert.Contains(t, view, "1 up")
	assert.Contains(t, view, ui.StatusSymbol(status.StatusNone))
	assert.Equal(t, 4, strings.Count(view, ui.GlyphUp))
}

func TestStripWidth(t *testing.T) {
	m, _ := newTestModel(t, Options{})
	assert.Equal(t, 20, m.stripWidth(10))

	m.width = 40
	assert.Equal(t, 40-stripPrefixWidth-intervalWidth-1, m.stripWidth(10))

	m.width = 10
	assert.Equal(t, ui.ItemWidth(), m.stripWidth(10))
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "api", truncate("api", 5))
	assert.Equal(t, "very…", truncate("very-long-name", 5))
}
