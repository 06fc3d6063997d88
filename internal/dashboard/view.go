package dashboard

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/rileyhilliard/beacon/internal/errors"
	"github.com/rileyhilliard/beacon/internal/status"
	"github.com/rileyhilliard/beacon/internal/tooltip"
	"github.com/rileyhilliard/beacon/internal/ui"
	"github.com/rileyhilliard/beacon/internal/util"
)

// sparklineWidth is the number of points in the tooltip latency sparkline.
const sparklineWidth = 24

// renderDashboard renders the complete dashboard view.
func (m Model) renderDashboard() string {
	if m.showHelp {
		return m.renderHelpOverlay()
	}

	var b strings.Builder
	b.WriteString(m.renderHeader())
	b.WriteString("\n\n")
	b.WriteString(m.renderRows())
	b.WriteString("\n")
	b.WriteString(m.renderFooter())
	return b.String()
}

// renderHeader renders the title, summary stats and the stale indicator.
func (m Model) renderHeader() string {
	title := lipgloss.NewStyle().
		Foreground(ColorAccent).
		Bold(true).
		Render("beacon")

	up := 0
	for i := range m.monitors {
		if s := status.Latest(&m.monitors[i]); s != nil && s.IsUp {
			up++
		}
	}

	updateText := "never"
	if !m.lastUpdate.IsZero() {
		updateText = m.fmt.FormatTimestamp(m.lastUpdate)
	}

	stats := lipgloss.NewStyle().
		Foreground(ColorTextSecondary).
		Render(fmt.Sprintf(" | %d %s | %d up | updated %s", len(m.monitors), util.Pluralize(len(m.monitors), "monitor", "monitors"), up, updateText))

	line := title + stats
	if m.loading {
		line += " " + m.spinner.View()
	}
	if m.lastErr != nil {
		line += StaleStyle.Render(fmt.Sprintf("  %s stale: %s", ui.SymbolWarning, errors.ShortMessage(m.lastErr)))
	}
	return HeaderStyle.Render(line)
}

// renderRows renders one line per monitor and the tooltip under the
// selected row.
func (m Model) renderRows() string {
	if len(m.monitors) == 0 {
		if m.loading {
			return LabelStyle.Render(m.spinner.View() + " Loading monitors...")
		}
		return LabelStyle.Render("No monitors")
	}

	var lines []string
	for i := range m.monitors {
		selected := i == m.selected
		lines = append(lines, m.renderRow(i, selected))
		if selected {
			if box := m.renderTooltip(); box != "" {
				lines = append(lines, box)
			}
		}
	}
	return strings.Join(lines, "\n")
}

// renderRow renders the cursor, name, uptime, current status and strip.
func (m Model) renderRow(i int, selected bool) string {
	mon := &m.monitors[i]
	interval := m.intervalFor(mon.Name)

	cursor := strings.Repeat(" ", cursorWidth)
	nameStyle := MonitorNameStyle
	if selected {
		cursor = lipgloss.NewStyle().Foreground(ColorAccent).Render("▸ ")
		nameStyle = SelectedNameStyle
	}
	name := nameStyle.Width(nameWidth).MaxWidth(nameWidth).Render(truncate(mon.Name, nameWidth-1))

	uptime := LabelStyle.Width(uptimeWidth).Render(fmt.Sprintf("%.1f%%", status.UptimePercentage(mon)))

	current := status.StatusNone
	if s := status.Latest(mon); s != nil {
		current = status.ClassifySample(s, m.thresholds.DegradedMs)
	}
	symbol := ui.StatusStyle(current).Width(symbolWidth).Render(ui.StatusSymbol(current))

	stripText := ""
	if frame, ok := m.animator.Window(mon.Name, interval); ok {
		hovered := -1
		if selected {
			hovered = m.hovered
		}
		stripText = ui.RenderStrip(frame.Items, ui.StripOptions{
			Hovered: hovered,
			Offset:  frame.Offset,
			Sliding: frame.Sliding,
			Width:   m.stripWidth(frame.Capacity),
		})
	}

	label := MutedStyle.Width(intervalWidth).Align(lipgloss.Right).Render(string(interval))
	return cursor + name + uptime + symbol + stripText + " " + label
}

// stripWidth returns the cell width available to a strip of capacity items.
func (m Model) stripWidth(capacity int) int {
	w := capacity * ui.ItemWidth()
	if m.width <= 0 {
		return w
	}
	avail := stripColumns(m.width)
	if avail < ui.ItemWidth() {
		avail = ui.ItemWidth()
	}
	if w > avail {
		return avail
	}
	return w
}

// stripColumns returns the columns left for the strip in a terminal of the
// given width.
func stripColumns(width int) int {
	return max(0, width-stripPrefixWidth-intervalWidth-1)
}

// renderTooltip renders the hovered item of the selected monitor.
func (m Model) renderTooltip() string {
	if m.hovered < 0 {
		return ""
	}
	name, ok := m.selectedName()
	if !ok {
		return ""
	}
	interval := m.intervalFor(name)
	frame, ok := m.animator.Window(name, interval)
	if !ok || m.hovered >= len(frame.Items) {
		return ""
	}

	data := tooltip.Compose(&frame.Items[m.hovered], interval, m.fmt)
	lines := []string{TooltipTitleStyle.Render(data.TimeDisplay)}
	lines = append(lines, ui.StatusStyle(data.Status).Render(data.StatusLabel))
	for _, l := range data.Lines()[2:] {
		lines = append(lines, LabelStyle.Render(l))
	}
	if spark := ui.RenderLatencySparkline(latencies(frame.Items), sparklineWidth, m.thresholds.DegradedMs); spark != "" {
		lines = append(lines, spark)
	}

	return lipgloss.NewStyle().MarginLeft(stripPrefixWidth).Render(
		TooltipStyle.Render(strings.Join(lines, "\n")),
	)
}

// renderFooter renders the short help and the server footer text.
func (m Model) renderFooter() string {
	footer := m.help.ShortHelpView(m.keys.ShortHelp())
	if m.footerText != "" {
		footer = MutedStyle.Render(m.footerText) + "\n" + footer
	}
	return FooterStyle.Render(footer)
}

// latencies returns the response times of items in milliseconds, skipping
// items without one.
func latencies(items []status.Item) []float64 {
	out := make([]float64, 0, len(items))
	for i := range items {
		rt := items[i].AvgResponseTime
		if rt == nil {
			rt = items[i].ResponseTime
		}
		if rt != nil {
			out = append(out, *rt*1000)
		}
	}
	return out
}

// SecondsSinceUpdate returns seconds since the last successful status fetch.
func (m Model) SecondsSinceUpdate() int {
	if m.lastUpdate.IsZero() {
		return 0
	}
	return int(time.Since(m.lastUpdate).Seconds())
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	if n <= 1 {
		return string(r[:n])
	}
	return string(r[:n-1]) + "…"
}
