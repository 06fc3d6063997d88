package status

import (
	"fmt"
	"strings"
	"time"
)

// Status is the display classification of a sample or bucket.
type Status string

const (
	StatusUp       Status = "up"
	StatusDegraded Status = "degraded"
	StatusDown     Status = "down"
	StatusNone     Status = "none"
)

// Interval is the aggregation granularity a bucket sequence was fetched at.
type Interval string

const (
	IntervalAll  Interval = "all"
	IntervalHour Interval = "hour"
	IntervalDay  Interval = "day"
	IntervalWeek Interval = "week"
)

// Intervals lists every interval in cycle order.
var Intervals = []Interval{IntervalAll, IntervalHour, IntervalDay, IntervalWeek}

// ParseInterval converts a user-supplied string into an Interval.
func ParseInterval(s string) (Interval, error) {
	switch Interval(strings.ToLower(strings.TrimSpace(s))) {
	case IntervalAll, "":
		return IntervalAll, nil
	case IntervalHour:
		return IntervalHour, nil
	case IntervalDay:
		return IntervalDay, nil
	case IntervalWeek:
		return IntervalWeek, nil
	}
	return "", fmt.Errorf("unknown interval %q (want all, hour, day or week)", s)
}

// Next returns the interval after i in cycle order, wrapping around.
func (i Interval) Next() Interval {
	for idx, candidate := range Intervals {
		if candidate == i {
			return Intervals[(idx+1)%len(Intervals)]
		}
	}
	return IntervalAll
}

// Sample is one raw observation of a monitor.
type Sample struct {
	Timestamp    time.Time
	IsUp         bool
	StatusCode   *int
	ResponseTime *float64 // seconds
}

// Monitor is a monitored endpoint with its most recent history.
// Name is the key into every per-monitor cache.
type Monitor struct {
	Name    string
	URL     string
	Current *Sample // nil when the API reports an all-null current status
	History []Sample
}

// Bucket is one pre-aggregated time slice of samples.
type Bucket struct {
	Timestamp       time.Time
	Count           int
	AvgResponseTime *float64 // seconds
	DegradedCount   int
	DownCount       int
	IssuePercentage float64 // 0..100
}

// Thresholds configure the degraded test.
type Thresholds struct {
	// DegradedMs marks a sample degraded when its response time exceeds it.
	DegradedMs float64 `json:"degraded_ms"`
	// DegradedPercentage marks hour/day/week buckets degraded when their
	// issue percentage exceeds it.
	DegradedPercentage float64 `json:"degraded_percentage"`
}

// DefaultThresholds are used until the server configuration is known.
func DefaultThresholds() Thresholds {
	return Thresholds{DegradedMs: 1000, DegradedPercentage: 10}
}

// Item is a sample or bucket reduced to what the status strip renders.
type Item struct {
	Status          Status
	Timestamp       time.Time
	ResponseTime    *float64
	Count           int
	AvgResponseTime *float64
	TypeLabel       string
	DegradedCount   *int
	DownCount       *int
}

// Aggregated reports whether the item stands for a bucket rather than a
// single sample. Only bucket items carry issue counts.
func (it *Item) Aggregated() bool {
	return it != nil && it.DegradedCount != nil
}
