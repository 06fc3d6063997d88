package status

import "math"

// UptimePercentage returns the share of up samples in m's history, rounded to
// one decimal place. An empty history counts as fully up.
func UptimePercentage(m *Monitor) float64 {
	if m == nil || len(m.History) == 0 {
		return 100
	}
	up := 0
	for _, s := range m.History {
		if s.IsUp {
			up++
		}
	}
	return math.Round(float64(up)/float64(len(m.History))*1000) / 10
}

// Latest returns the most recent sample for m: the reported current status
// when present, else the last history entry, else nil.
func Latest(m *Monitor) *Sample {
	if m == nil {
		return nil
	}
	if m.Current != nil {
		return m.Current
	}
	if n := len(m.History); n > 0 {
		return &m.History[n-1]
	}
	return nil
}

// Names returns the monitor names in order.
func Names(monitors []Monitor) []string {
	names := make([]string, len(monitors))
	for i := range monitors {
		names[i] = monitors[i].Name
	}
	return names
}
