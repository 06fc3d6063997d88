package status

import (
	"sort"
	"sync"
	"time"
)

// Key returns the resolution key used to look up a bucket sequence.
func Key(monitor string, interval Interval) string {
	return monitor + ":" + string(interval)
}

// LabelFormatter produces the per-item type labels. It is implemented by
// locale.Formatter so bucket labels and tooltips format dates the same way.
type LabelFormatter interface {
	BucketLabel(t time.Time, interval Interval) string
	AllTimeLabel() string
}

// Cache holds the most recently fetched bucket sequence per resolution key.
// A store always replaces the previous entry for the same key; entries for
// other keys are never touched.
type Cache struct {
	mu      sync.RWMutex
	entries map[string][]Bucket
}

// NewCache creates an empty resolution cache.
func NewCache() *Cache {
	return &Cache{
		entries: make(map[string][]Bucket),
	}
}

// Store replaces the bucket sequence cached for (monitor, interval).
// The slice is copied so later mutation by the caller does not leak in.
func (c *Cache) Store(monitor string, interval Interval, buckets []Bucket) {
	stored := make([]Bucket, len(buckets))
	copy(stored, buckets)

	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[Key(monitor, interval)] = stored
}

// Buckets returns the cached sequence for (monitor, interval).
func (c *Cache) Buckets(monitor string, interval Interval) ([]Bucket, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	buckets, ok := c.entries[Key(monitor, interval)]
	return buckets, ok
}

// Len returns the number of cached resolution keys.
func (c *Cache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}

// Keys returns the cached resolution keys in sorted order.
func (c *Cache) Keys() []string {
	c.mu.RLock()
	defer c.mu.RUnlock()

	keys := make([]string, 0, len(c.entries))
	for k := range c.entries {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Metadata carries the per-item display fields next to the status arrays.
type Metadata struct {
	Count           int
	AvgResponseTime *float64
	TypeLabel       string
	DegradedCount   *int
	DownCount       *int
}

// Series is the display series for one monitor at one interval. All four
// slices are index-aligned and always the same length.
type Series struct {
	Statuses      []Status
	Timestamps    []time.Time
	ResponseTimes []*float64
	Metadata      []Metadata
}

// Len returns the number of items in the series.
func (s Series) Len() int {
	return len(s.Statuses)
}

// Items zips the aligned slices into classified items.
func (s Series) Items() []Item {
	items := make([]Item, s.Len())
	for i := range items {
		md := s.Metadata[i]
		items[i] = Item{
			Status:          s.Statuses[i],
			Timestamp:       s.Timestamps[i],
			ResponseTime:    s.ResponseTimes[i],
			Count:           md.Count,
			AvgResponseTime: md.AvgResponseTime,
			TypeLabel:       md.TypeLabel,
			DegradedCount:   md.DegradedCount,
			DownCount:       md.DownCount,
		}
	}
	return items
}

func (s *Series) append(st Status, ts time.Time, rt *float64, md Metadata) {
	s.Statuses = append(s.Statuses, st)
	s.Timestamps = append(s.Timestamps, ts)
	s.ResponseTimes = append(s.ResponseTimes, rt)
	s.Metadata = append(s.Metadata, md)
}

// SeriesOptions control how a display series is derived.
type SeriesOptions struct {
	Thresholds Thresholds
	// Capacity trims the raw-history fallback to its last Capacity samples.
	// Zero or negative disables trimming.
	Capacity int
	Labels   LabelFormatter
}

// DisplaySeries derives the display series for m at interval. A cached,
// non-empty bucket sequence wins; otherwise the monitor's raw history is
// classified sample by sample.
func (c *Cache) DisplaySeries(m *Monitor, interval Interval, opts SeriesOptions) Series {
	var series Series
	if m == nil {
		return series
	}

	if buckets, ok := c.Buckets(m.Name, interval); ok && len(buckets) > 0 {
		series = newSeries(len(buckets))
		for i := range buckets {
			b := &buckets[i]
			label := ""
			if opts.Labels != nil {
				label = opts.Labels.BucketLabel(b.Timestamp, interval)
			}
			degraded, down := b.DegradedCount, b.DownCount
			series.append(ClassifyBucket(b, interval, opts.Thresholds), b.Timestamp, b.AvgResponseTime, Metadata{
				Count:           b.Count,
				AvgResponseTime: b.AvgResponseTime,
				TypeLabel:       label,
				DegradedCount:   &degraded,
				DownCount:       &down,
			})
		}
		return series
	}

	history := lastSamples(m.History, opts.Capacity)
	series = newSeries(len(history))
	label := ""
	if opts.Labels != nil {
		label = opts.Labels.AllTimeLabel()
	}
	for i := range history {
		s := &history[i]
		series.append(ClassifySample(s, opts.Thresholds.DegradedMs), s.Timestamp, s.ResponseTime, Metadata{
			Count:     1,
			TypeLabel: label,
		})
	}
	return series
}

func newSeries(n int) Series {
	return Series{
		Statuses:      make([]Status, 0, n),
		Timestamps:    make([]time.Time, 0, n),
		ResponseTimes: make([]*float64, 0, n),
		Metadata:      make([]Metadata, 0, n),
	}
}

// lastSamples returns the last n samples, or all of them when n <= 0.
func lastSamples(history []Sample, n int) []Sample {
	if n <= 0 || len(history) <= n {
		return history
	}
	return history[len(history)-n:]
}
