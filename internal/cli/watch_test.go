package cli

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/rileyhilliard/beacon/internal/api"
	"github.com/rileyhilliard/beacon/internal/logger"
	"github.com/rileyhilliard/beacon/internal/metrics"
	"github.com/rileyhilliard/beacon/internal/status"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleMonitor(name string, up bool, seconds float64) status.Monitor {
	rt := seconds
	return status.Monitor{
		Name: name,
		History: []status.Sample{
			{Timestamp: time.Date(2024, 3, 10, 12, 0, 0, 0, time.UTC), IsUp: up, ResponseTime: &rt},
		},
	}
}

func TestStatusTracker_Observe(t *testing.T) {
	log := logger.NewBufferLogger()
	tracker := newStatusTracker(status.Thresholds{DegradedMs: 500, DegradedPercentage: 10}, log)
	name := "tracker-flip"

	changes := tracker.Observe([]status.Monitor{sampleMonitor(name, true, 0.1)})
	assert.Empty(t, changes, "first sighting is not a transition")
	assert.True(t, log.HasLevel("info"))
	assert.Equal(t, 100.0, testutil.ToFloat64(metrics.MonitorUptime.WithLabelValues(name)))

	changes = tracker.Observe([]status.Monitor{sampleMonitor(name, true, 0.2)})
	assert.Empty(t, changes, "same status")

	before := testutil.ToFloat64(metrics.StatusChanges.WithLabelValues(name, string(status.StatusDown)))
	log.Clear()
	changes = tracker.Observe([]status.Monitor{sampleMonitor(name, false, 0.2)})
	require.Len(t, changes, 1)
	assert.Equal(t, Transition{Monitor: name, From: status.StatusUp, To: status.StatusDown}, changes[0])
	assert.True(t, log.HasLevel("warn"))
	assert.Equal(t, before+1, testutil.ToFloat64(metrics.StatusChanges.WithLabelValues(name, string(status.StatusDown))))

	log.Clear()
	changes = tracker.Observe([]status.Monitor{sampleMonitor(name, true, 0.9)})
	require.Len(t, changes, 1)
	assert.Equal(t, status.StatusDegraded, changes[0].To)
	assert.True(t, log.HasLevel("warn"))

	log.Clear()
	changes = tracker.Observe([]status.Monitor{sampleMonitor(name, true, 0.1)})
	require.Len(t, changes, 1)
	assert.Equal(t, status.StatusUp, changes[0].To)
	assert.False(t, log.HasLevel("warn"))
}

func TestStatusTracker_RemovedMonitor(t *testing.T) {
	log := logger.NewBufferLogger()
	tracker := newStatusTracker(status.DefaultThresholds(), log)

	tracker.Observe([]status.Monitor{sampleMonitor("tracker-a", true, 0.1), sampleMonitor("tracker-b", true, 0.1)})
	log.Clear()

	changes := tracker.Observe([]status.Monitor{sampleMonitor("tracker-a", true, 0.1)})
	assert.Empty(t, changes)
	assert.NotContains(t, tracker.last, "tracker-b")
	require.Len(t, log.Messages, 1)
	assert.Equal(t, "tracker-b is no longer reported", log.Messages[0].Message)

	changes = tracker.Observe([]status.Monitor{sampleMonitor("tracker-b", false, 0)})
	assert.Empty(t, changes, "a returning monitor is a new sighting")
}

func TestStatusTracker_NoData(t *testing.T) {
	tracker := newStatusTracker(status.DefaultThresholds(), nil)

	tracker.Observe([]status.Monitor{{Name: "tracker-empty"}})
	assert.Equal(t, status.StatusNone, tracker.last["tracker-empty"])
}

func TestPoller_Poll(t *testing.T) {
	ts := newFixtureServer(t)
	log := logger.NewBufferLogger()
	p := &poller{
		fetcher: api.NewClient(ts.URL, time.Second),
		tracker: newStatusTracker(status.Thresholds{DegradedMs: 800, DegradedPercentage: 5}, log),
		hours:   24,
		filter:  func(name string) bool { return name == "api" },
		timeout: time.Second,
		log:     log,
	}

	changes, err := p.Poll(context.Background())
	require.NoError(t, err)
	assert.Empty(t, changes)
	assert.Equal(t, status.StatusUp, p.tracker.last["api"])
	assert.NotContains(t, p.tracker.last, "web")

	changes, err = p.Poll(context.Background())
	require.NoError(t, err)
	assert.Empty(t, changes)
}

func TestPoller_FetchError(t *testing.T) {
	ts := newFixtureServer(t)
	url := ts.URL
	ts.Close()

	log := logger.NewBufferLogger()
	p := &poller{
		fetcher: api.NewClient(url, time.Second),
		tracker: newStatusTracker(status.DefaultThresholds(), log),
		hours:   24,
		timeout: time.Second,
		log:     log,
	}

	_, err := p.Poll(context.Background())
	require.Error(t, err)
	assert.True(t, log.HasLevel("warn"))
}

func TestMetricsServer(t *testing.T) {
	e := newMetricsServer()

	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	body, err := io.ReadAll(rec.Body)
	require.NoError(t, err)
	assert.Contains(t, string(body), "go_goroutines")

	rec = httptest.NewRecorder()
	e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/other", nil))
	assert.Equal(t, http.StatusNotFound, rec.Code)
}
