// Package tooltip builds the detail shown when a status item is hovered.
package tooltip

import (
	"fmt"
	"strings"

	"github.com/rileyhilliard/beacon/internal/locale"
	"github.com/rileyhilliard/beacon/internal/status"
)

// Data is the content of a tooltip. Rendering is left to the caller.
type Data struct {
	TimeDisplay     string
	Status          status.Status
	StatusLabel     string
	ShowIssues      bool
	DegradedCount   int
	DownCount       int
	IssuesText      string
	PingText        string
	ShowSampleCount bool
	SampleCount     int
	SampleCountText string
}

// Compose derives tooltip data for item shown at interval. It returns nil
// for a nil item. A nil formatter uses English in the local zone.
func Compose(item *status.Item, interval status.Interval, f *locale.Formatter) *Data {
	if item == nil {
		return nil
	}
	if f == nil {
		f = locale.New("en", nil)
	}

	d := &Data{
		Status:      item.Status,
		StatusLabel: f.StatusLabel(item.Status),
		PingText:    pingText(item, f),
		SampleCount: item.Count,
	}

	if item.TypeLabel != "" {
		d.TimeDisplay = item.TypeLabel
	} else {
		d.TimeDisplay = f.FormatTimestamp(item.Timestamp)
	}

	if item.DegradedCount != nil {
		d.DegradedCount = *item.DegradedCount
	}
	if item.DownCount != nil {
		d.DownCount = *item.DownCount
	}
	if interval != status.IntervalAll && (d.DegradedCount > 0 || d.DownCount > 0) {
		d.ShowIssues = true
		d.IssuesText = issuesText(d.DegradedCount, d.DownCount, f)
	}

	if item.Count > 1 {
		d.ShowSampleCount = true
		d.SampleCountText = fmt.Sprintf("%d %s", item.Count, f.Label(locale.LabelSamples))
	}
	return d
}

func pingText(item *status.Item, f *locale.Formatter) string {
	switch {
	case item.AvgResponseTime != nil:
		return fmt.Sprintf("%s: %s", f.Label(locale.LabelAvgPing), locale.Milliseconds(*item.AvgResponseTime))
	case item.ResponseTime != nil:
		return fmt.Sprintf("%s: %s", f.Label(locale.LabelPing), locale.Milliseconds(*item.ResponseTime))
	default:
		return fmt.Sprintf("%s: %s", f.Label(locale.LabelPing), f.Label(locale.LabelNA))
	}
}

func issuesText(degraded, down int, f *locale.Formatter) string {
	var parts []string
	if degraded > 0 {
		parts = append(parts, fmt.Sprintf("%d %s", degraded, f.Label(locale.LabelDegraded)))
	}
	if down > 0 {
		parts = append(parts, fmt.Sprintf("%d %s", down, f.Label(locale.LabelDown)))
	}
	return strings.Join(parts, ", ")
}

// Lines returns the tooltip as display lines in order.
func (d *Data) Lines() []string {
	if d == nil {
		return nil
	}
	lines := []string{d.TimeDisplay, d.StatusLabel}
	if d.ShowIssues {
		lines = append(lines, d.IssuesText)
	}
	lines = append(lines, d.PingText)
	if d.ShowSampleCount {
		lines = append(lines, d.SampleCountText)
	}
	return lines
}
