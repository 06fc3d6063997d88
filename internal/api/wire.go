package api

import (
	"time"

	"github.com/rileyhilliard/beacon/internal/status"
)

// SampleJSON is one raw check result as sent by the server.
type SampleJSON struct {
	Timestamp    string   `json:"timestamp" yaml:"timestamp"`
	IsUp         *bool    `json:"is_up" yaml:"is_up"`
	StatusCode   *int     `json:"status_code" yaml:"status_code"`
	ResponseTime *float64 `json:"response_time" yaml:"response_time"`
}

// MonitorJSON is a monitor entry in the status response.
type MonitorJSON struct {
	Name          string       `json:"name" yaml:"name"`
	URL           string       `json:"url" yaml:"url"`
	CurrentStatus *SampleJSON  `json:"current_status" yaml:"current_status"`
	History       []SampleJSON `json:"history" yaml:"history"`
}

// StatusResponse is the body of GET /api/status.
type StatusResponse struct {
	Timestamp string        `json:"timestamp"`
	Monitors  []MonitorJSON `json:"monitors"`
}

// BucketJSON is one pre-aggregated bucket.
type BucketJSON struct {
	Timestamp       string   `json:"timestamp" yaml:"timestamp"`
	Count           int      `json:"count" yaml:"count"`
	AvgResponseTime *float64 `json:"avg_response_time" yaml:"avg_response_time"`
	DegradedCount   int      `json:"degraded_count" yaml:"degraded_count"`
	DownCount       int      `json:"down_count" yaml:"down_count"`
	IssuePercentage float64  `json:"issue_percentage" yaml:"issue_percentage"`
}

// HeartbeatResponse is the body of GET /api/heartbeat.
type HeartbeatResponse struct {
	MonitorName string       `json:"monitor_name"`
	Interval    string       `json:"interval"`
	Heartbeat   []BucketJSON `json:"heartbeat"`
}

// ConfigResponse is the body of GET /api/config.
type ConfigResponse struct {
	DegradedThresholdMs         *float64 `json:"degraded_threshold_ms" yaml:"degraded_threshold_ms"`
	DegradedPercentageThreshold *float64 `json:"degraded_percentage_threshold" yaml:"degraded_percentage_threshold"`
	FooterText                  string   `json:"footer_text" yaml:"footer_text"`
}

var timeLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999999",
	"2006-01-02 15:04:05.999999999",
	"2006-01-02 15:04:05",
}

// ParseTimestamp parses a server timestamp. Values without a zone are UTC.
func ParseTimestamp(s string) (time.Time, bool) {
	for _, layout := range timeLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// Sample converts s. It returns nil when s carries no data.
func (s *SampleJSON) Sample() *status.Sample {
	if s == nil || (s.Timestamp == "" && s.IsUp == nil) {
		return nil
	}
	ts, _ := ParseTimestamp(s.Timestamp)
	return &status.Sample{
		Timestamp:    ts,
		IsUp:         s.IsUp != nil && *s.IsUp,
		StatusCode:   s.StatusCode,
		ResponseTime: s.ResponseTime,
	}
}

// Monitor converts m. History entries without a parseable timestamp are
// dropped.
func (m *MonitorJSON) Monitor() status.Monitor {
	out := status.Monitor{
		Name:    m.Name,
		URL:     m.URL,
		Current: m.CurrentStatus.Sample(),
		History: make([]status.Sample, 0, len(m.History)),
	}
	for i := range m.History {
		if _, ok := ParseTimestamp(m.History[i].Timestamp); !ok {
			continue
		}
		if s := m.History[i].Sample(); s != nil {
			out.History = append(out.History, *s)
		}
	}
	return out
}

// ToMonitors converts every monitor in the response.
func (r *StatusResponse) ToMonitors() []status.Monitor {
	if r == nil {
		return nil
	}
	out := make([]status.Monitor, len(r.Monitors))
	for i := range r.Monitors {
		out[i] = r.Monitors[i].Monitor()
	}
	return out
}

// Bucket converts b.
func (b *BucketJSON) Bucket() status.Bucket {
	ts, _ := ParseTimestamp(b.Timestamp)
	return status.Bucket{
		Timestamp:       ts,
		Count:           b.Count,
		AvgResponseTime: b.AvgResponseTime,
		DegradedCount:   b.DegradedCount,
		DownCount:       b.DownCount,
		IssuePercentage: b.IssuePercentage,
	}
}

// ToBuckets converts the heartbeat buckets in server order. Buckets without
// a parseable timestamp are dropped.
func (r *HeartbeatResponse) ToBuckets() []status.Bucket {
	if r == nil {
		return nil
	}
	out := make([]status.Bucket, 0, len(r.Heartbeat))
	for i := range r.Heartbeat {
		if _, ok := ParseTimestamp(r.Heartbeat[i].Timestamp); !ok {
			continue
		}
		out = append(out, r.Heartbeat[i].Bucket())
	}
	return out
}

// Thresholds overlays the server thresholds on fallback.
func (r *ConfigResponse) Thresholds(fallback status.Thresholds) status.Thresholds {
	th := fallback
	if r == nil {
		return th
	}
	if r.DegradedThresholdMs != nil {
		th.DegradedMs = *r.DegradedThresholdMs
	}
	if r.DegradedPercentageThreshold != nil {
		th.DegradedPercentage = *r.DegradedPercentageThreshold
	}
	return th
}
