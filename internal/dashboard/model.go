package dashboard

import (
	"context"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/rileyhilliard/beacon/internal/api"
	"github.com/rileyhilliard/beacon/internal/locale"
	"github.com/rileyhilliard/beacon/internal/logger"
	"github.com/rileyhilliard/beacon/internal/metrics"
	"github.com/rileyhilliard/beacon/internal/status"
	"github.com/rileyhilliard/beacon/internal/strip"
	"github.com/rileyhilliard/beacon/internal/ui"
)

// frameInterval paces animation frames while a strip is sliding.
const frameInterval = time.Second / 30

// Defaults applied by New for zero-valued Options.
const (
	DefaultRefresh    = 30 * time.Second
	DefaultCellPixels = 8
)

// Options configures a dashboard Model.
type Options struct {
	Fetcher    api.Fetcher
	Formatter  *locale.Formatter
	Thresholds status.Thresholds
	// Interval is the starting interval for every monitor.
	Interval    status.Interval
	Refresh     time.Duration
	StatusHours int
	// CellPixels converts terminal columns to the pixel width used for
	// capacity.
	CellPixels int
	// Filter hides monitors it returns false for. Nil shows all.
	Filter    func(name string) bool
	Scheduler strip.Scheduler
	Log       logger.Logger
	// Context bounds every fetch. Quitting cancels it.
	Context context.Context
}

// Model is the Bubble Tea model for the status dashboard.
type Model struct {
	fetcher     api.Fetcher
	fmt         *locale.Formatter
	thresholds  status.Thresholds
	refresh     time.Duration
	statusHours int
	cellPixels  int
	filter      func(name string) bool
	log         logger.Logger
	ctx         context.Context
	cancel      context.CancelFunc

	cache    *status.Cache
	animator *strip.Animator

	monitors        []status.Monitor
	intervals       map[string]status.Interval
	defaultInterval status.Interval
	footerText      string

	selected   int
	hovered    int // index into the selected window, -1 for none
	width      int
	height     int
	lastUpdate time.Time
	lastErr    error
	loading    bool
	preloaded  bool
	animating  bool
	showHelp   bool
	quitting   bool

	spinner spinner.Model
	help    help.Model
	keys    keyMap
}

// tickMsg signals a periodic refresh.
type tickMsg time.Time

// frameMsg advances sliding strips.
type frameMsg time.Time

// callbackMsg carries a slide timer callback onto the event loop.
type callbackMsg struct {
	fn func()
}

// statusMsg carries the result of a status fetch.
type statusMsg struct {
	resp *api.StatusResponse
	err  error
	time time.Time
}

// heartbeatMsg carries the buckets for one monitor and interval.
type heartbeatMsg struct {
	monitor  string
	interval status.Interval
	resp     *api.HeartbeatResponse
	err      error
}

// configMsg carries the server display configuration.
type configMsg struct {
	resp *api.ConfigResponse
	err  error
}

// preloadMsg reports that every interval has been fetched once.
type preloadMsg struct {
	errs []error
}

// New creates a dashboard model.
func New(opts Options) Model {
	if opts.Refresh <= 0 {
		opts.Refresh = DefaultRefresh
	}
	if opts.StatusHours <= 0 {
		opts.StatusHours = api.DefaultStatusHours
	}
	if opts.CellPixels <= 0 {
		opts.CellPixels = DefaultCellPixels
	}
	if opts.Interval == "" {
		opts.Interval = status.IntervalAll
	}
	if opts.Formatter == nil {
		opts.Formatter = locale.New("en", nil)
	}
	if opts.Log == nil {
		opts.Log = logger.Noop()
	}
	if opts.Scheduler == nil {
		opts.Scheduler = strip.NewLoopScheduler(nil)
	}
	if opts.Context == nil {
		opts.Context = context.Background()
	}
	ctx, cancel := context.WithCancel(opts.Context)

	sp := spinner.New()
	sp.Spinner = ui.SpinnerFrames
	sp.Style = LabelStyle

	return Model{
		fetcher:         opts.Fetcher,
		fmt:             opts.Formatter,
		thresholds:      opts.Thresholds,
		refresh:         opts.Refresh,
		statusHours:     opts.StatusHours,
		cellPixels:      opts.CellPixels,
		filter:          opts.Filter,
		log:             opts.Log,
		ctx:             ctx,
		cancel:          cancel,
		cache:           status.NewCache(),
		animator:        strip.NewAnimator(opts.Scheduler, 0, strip.WithLogger(opts.Log)),
		intervals:       make(map[string]status.Interval),
		defaultInterval: opts.Interval,
		hovered:         -1,
		loading:         true,
		spinner:         sp,
		help:            help.New(),
		keys:            defaultKeyMap(),
	}
}

// Init starts the tick timer and triggers the first fetches.
func (m Model) Init() tea.Cmd {
	return tea.Batch(
		m.tickCmd(),
		m.fetchStatusCmd(),
		m.fetchConfigCmd(),
		m.spinner.Tick,
	)
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		handled, cmd := m.HandleKeyMsg(msg)
		if handled {
			return m, cmd
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		if m.animator.Resize(float64(stripColumns(msg.Width) * m.cellPixels)) {
			return m, m.syncAll()
		}

	case tickMsg:
		return m, tea.Batch(m.tickCmd(), m.fetchStatusCmd())

	case frameMsg:
		if m.animator.Advance(time.Time(msg)) {
			return m, m.frameCmd()
		}
		m.animating = false

	case callbackMsg:
		msg.fn()
		m.clampHover()

	case spinner.TickMsg:
		if !m.loading {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case statusMsg:
		return m, m.handleStatus(msg)

	case heartbeatMsg:
		if msg.err != nil {
			m.log.Warn("heartbeat %s/%s: %v", msg.monitor, msg.interval, msg.err)
			m.lastErr = msg.err
			return m, nil
		}
		api.StoreHeartbeat(m.cache, msg.monitor, msg.interval, msg.resp)
		return m, m.syncMonitor(msg.monitor)

	case preloadMsg:
		m.preloaded = true
		for _, err := range msg.errs {
			m.log.Warn("preload: %v", err)
		}
		if len(msg.errs) > 0 {
			m.lastErr = msg.errs[0]
		}
		return m, m.syncAll()

	case configMsg:
		if msg.err != nil {
			m.log.Warn("config: %v", msg.err)
			return m, nil
		}
		m.thresholds = msg.resp.Thresholds(m.thresholds)
		m.footerText = msg.resp.FooterText
		return m, m.syncAll()
	}

	return m, nil
}

// View renders the dashboard.
func (m Model) View() string {
	if m.quitting {
		return ""
	}
	return m.renderDashboard()
}

func (m *Model) handleStatus(msg statusMsg) tea.Cmd {
	m.loading = false
	if msg.err != nil {
		m.log.Warn("status: %v", msg.err)
		m.lastErr = msg.err
		return nil
	}

	m.lastErr = nil
	m.lastUpdate = msg.time
	m.monitors = m.visible(msg.resp.ToMonitors())
	names := status.Names(m.monitors)
	m.animator.Retain(names)
	for name := range m.intervals {
		if !contains(names, name) {
			delete(m.intervals, name)
		}
	}
	if m.selected >= len(m.monitors) {
		m.selected = len(m.monitors) - 1
	}
	if m.selected < 0 {
		m.selected = 0
	}
	for i := range m.monitors {
		metrics.MonitorUptime.WithLabelValues(m.monitors[i].Name).Set(status.UptimePercentage(&m.monitors[i]))
	}

	cmds := []tea.Cmd{m.syncAll()}
	if !m.preloaded {
		cmds = append(cmds, m.preloadCmd(names))
	} else {
		for _, name := range names {
			cmds = append(cmds, m.fetchHeartbeatCmd(name, m.intervalFor(name)))
		}
	}
	return tea.Batch(cmds...)
}

func (m *Model) visible(monitors []status.Monitor) []status.Monitor {
	if m.filter == nil {
		return monitors
	}
	out := monitors[:0]
	for _, mon := range monitors {
		if m.filter(mon.Name) {
			out = append(out, mon)
		}
	}
	return out
}

// intervalFor returns the monitor's active interval.
func (m *Model) intervalFor(name string) status.Interval {
	if interval, ok := m.intervals[name]; ok {
		return interval
	}
	return m.defaultInterval
}

func (m *Model) monitorIndex(name string) int {
	for i := range m.monitors {
		if m.monitors[i].Name == name {
			return i
		}
	}
	return -1
}

func (m *Model) selectedName() (string, bool) {
	if m.selected < 0 || m.selected >= len(m.monitors) {
		return "", false
	}
	return m.monitors[m.selected].Name, true
}

func (m *Model) selectedFrame() (strip.Frame, bool) {
	name, ok := m.selectedName()
	if !ok {
		return strip.Frame{}, false
	}
	return m.animator.Window(name, m.intervalFor(name))
}

// syncMonitor feeds the monitor's display series to the animator and
// returns the frame command when a slide starts.
func (m *Model) syncMonitor(name string) tea.Cmd {
	i := m.monitorIndex(name)
	if i < 0 {
		return nil
	}
	interval := m.intervalFor(name)
	capacity := m.animator.Capacity(interval)
	series := m.cache.DisplaySeries(&m.monitors[i], interval, status.SeriesOptions{
		Thresholds: m.thresholds,
		Capacity:   capacity,
		Labels:     m.fmt,
	})
	tr := m.animator.Sync(name, interval, series.Items(), capacity)
	m.animator.Measure(name, float64(ui.ItemWidth()))
	metrics.StripTransitions.WithLabelValues(tr.String()).Inc()
	m.clampHover()

	if tr == strip.TransitionSlide && !m.animating {
		m.animating = true
		return m.frameCmd()
	}
	return nil
}

// syncAll syncs every visible monitor.
func (m *Model) syncAll() tea.Cmd {
	var cmds []tea.Cmd
	for i := range m.monitors {
		if cmd := m.syncMonitor(m.monitors[i].Name); cmd != nil {
			cmds = append(cmds, cmd)
		}
	}
	return tea.Batch(cmds...)
}

func (m *Model) clampHover() {
	if m.hovered < 0 {
		return
	}
	frame, ok := m.selectedFrame()
	if !ok || len(frame.Items) == 0 {
		m.hovered = -1
		return
	}
	if m.hovered >= len(frame.Items) {
		m.hovered = len(frame.Items) - 1
	}
}

func contains(names []string, name string) bool {
	for _, n := range names {
		if n == name {
			return true
		}
	}
	return false
}
