package dashboard

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
)

// keyMap lists the dashboard bindings. It implements help.KeyMap.
type keyMap struct {
	Up          key.Binding
	Down        key.Binding
	Left        key.Binding
	Right       key.Binding
	ClearHover  key.Binding
	Interval    key.Binding
	IntervalAll key.Binding
	Refresh     key.Binding
	Help        key.Binding
	Quit        key.Binding
}

func defaultKeyMap() keyMap {
	return keyMap{
		Up:          key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "previous monitor")),
		Down:        key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "next monitor")),
		Left:        key.NewBinding(key.WithKeys("left", "h"), key.WithHelp("←/h", "hover older")),
		Right:       key.NewBinding(key.WithKeys("right", "l"), key.WithHelp("→/l", "hover newer")),
		ClearHover:  key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "clear hover")),
		Interval:    key.NewBinding(key.WithKeys("i"), key.WithHelp("i", "cycle interval")),
		IntervalAll: key.NewBinding(key.WithKeys("I"), key.WithHelp("I", "interval for all")),
		Refresh:     key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "refresh")),
		Help:        key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "help")),
		Quit:        key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

// ShortHelp returns the bindings shown in the footer.
func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Left, k.Right, k.Interval, k.Refresh, k.Help, k.Quit}
}

// FullHelp returns the bindings shown in the help overlay.
func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.Left, k.Right, k.ClearHover},
		{k.Interval, k.IntervalAll, k.Refresh, k.Help, k.Quit},
	}
}

// HandleKeyMsg processes keyboard input and returns updated model state and command.
// Returns true if the key was handled, false otherwise.
func (m *Model) HandleKeyMsg(msg tea.KeyMsg) (bool, tea.Cmd) {
	// Help toggle takes priority
	if key.Matches(msg, m.keys.Help) {
		m.showHelp = !m.showHelp
		return true, nil
	}

	// If help is showing, Esc closes it
	if m.showHelp && key.Matches(msg, m.keys.ClearHover) {
		m.showHelp = false
		return true, nil
	}

	switch {
	case key.Matches(msg, m.keys.Quit):
		m.quitting = true
		m.cancel()
		return true, tea.Quit

	case key.Matches(msg, m.keys.Refresh):
		m.loading = true
		return true, tea.Batch(m.fetchStatusCmd(), m.spinner.Tick)

	case key.Matches(msg, m.keys.Up):
		if m.selected > 0 {
			m.selected--
			m.hovered = -1
		}
		return true, nil

	case key.Matches(msg, m.keys.Down):
		if m.selected < len(m.monitors)-1 {
			m.selected++
			m.hovered = -1
		}
		return true, nil

	case key.Matches(msg, m.keys.Left):
		m.moveHover(-1)
		return true, nil

	case key.Matches(msg, m.keys.Right):
		m.moveHover(1)
		return true, nil

	case key.Matches(msg, m.keys.ClearHover):
		m.hovered = -1
		return true, nil

	case key.Matches(msg, m.keys.Interval):
		name, ok := m.selectedName()
		if !ok {
			return true, nil
		}
		next := m.intervalFor(name).Next()
		m.intervals[name] = next
		m.hovered = -1
		return true, tea.Batch(m.syncMonitor(name), m.fetchHeartbeatCmd(name, next))

	case key.Matches(msg, m.keys.IntervalAll):
		name, ok := m.selectedName()
		if !ok {
			return true, nil
		}
		next := m.intervalFor(name).Next()
		m.defaultInterval = next
		cmds := make([]tea.Cmd, 0, len(m.monitors)+1)
		for i := range m.monitors {
			m.intervals[m.monitors[i].Name] = next
			cmds = append(cmds, m.fetchHeartbeatCmd(m.monitors[i].Name, next))
		}
		m.hovered = -1
		cmds = append(cmds, m.syncAll())
		return true, tea.Batch(cmds...)
	}

	return false, nil
}

// moveHover moves the hover cursor by delta within the selected strip.
// The first move starts at the newest item.
func (m *Model) moveHover(delta int) {
	frame, ok := m.selectedFrame()
	if !ok || len(frame.Items) == 0 {
		m.hovered = -1
		return
	}
	last := len(frame.Items) - 1
	if m.hovered < 0 {
		m.hovered = last
		return
	}
	m.hovered += delta
	if m.hovered < 0 {
		m.hovered = 0
	}
	if m.hovered > last {
		m.hovered = last
	}
}
