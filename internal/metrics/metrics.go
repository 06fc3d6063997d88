// Package metrics exposes Prometheus collectors for the fetch layer and the
// headless watcher.
package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	// FetchTotal counts API requests by endpoint and result.
	FetchTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "beacon_fetch_total",
			Help: "Total number of API fetches",
		},
		[]string{"endpoint", "result"},
	)

	// FetchDuration tracks API request latency.
	FetchDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "beacon_fetch_duration_seconds",
			Help:    "API fetch duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"endpoint"},
	)

	// CacheStores counts bucket sequences written to the resolution cache.
	CacheStores = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "beacon_cache_stores_total",
			Help: "Total number of bucket sequences stored",
		},
		[]string{"interval"},
	)

	// StripTransitions counts window transitions by kind.
	StripTransitions = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "beacon_strip_transitions_total",
			Help: "Total number of status strip transitions",
		},
		[]string{"transition"},
	)

	// MonitorUptime is the uptime percentage of each monitor's history.
	MonitorUptime = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "beacon_monitor_uptime_percent",
			Help: "Uptime percentage over the fetched history",
		},
		[]string{"monitor"},
	)

	// StatusChanges counts observed status changes per monitor.
	StatusChanges = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "beacon_status_changes_total",
			Help: "Total number of observed monitor status changes",
		},
		[]string{"monitor", "status"},
	)
)

// ObserveFetch records one fetch of endpoint that started at start.
func ObserveFetch(endpoint string, start time.Time, err error) {
	result := "ok"
	if err != nil {
		result = "error"
	}
	FetchTotal.WithLabelValues(endpoint, result).Inc()
	FetchDuration.WithLabelValues(endpoint).Observe(time.Since(start).Seconds())
}

// Handler serves the default registry.
func Handler() http.Handler {
	return promhttp.Handler()
}
