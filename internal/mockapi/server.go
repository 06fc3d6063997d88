// Package mockapi serves the dashboard API from fixture data for local
// development and tests. Buckets are served as stored; nothing is aggregated.
package mockapi

import (
	"context"
	"math/rand"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/rileyhilliard/beacon/internal/api"
	"github.com/rileyhilliard/beacon/internal/logger"
	"github.com/rileyhilliard/beacon/internal/status"
)

// Server is an echo-backed mock of the dashboard API.
type Server struct {
	mu      sync.RWMutex
	fixture *Fixture
	now     func() time.Time
	log     logger.Logger
	echo    *echo.Echo
}

// New creates a server for f. A nil log discards request logs.
func New(f *Fixture, log logger.Logger) *Server {
	if log == nil {
		log = logger.Noop()
	}
	if f == nil {
		f = &Fixture{}
	}
	if f.Heartbeats == nil {
		f.Heartbeats = make(map[string]map[string][]api.BucketJSON)
	}

	s := &Server{
		fixture: f,
		now:     time.Now,
		log:     log,
	}

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Use(requestLogger(log))

	e.GET(api.StatusPath, s.getStatus)
	e.GET(api.HeartbeatPath, s.getHeartbeat)
	e.GET(api.ConfigPath, s.getConfig)
	e.GET("/health", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
	})
	s.echo = e
	return s
}

// Handler returns the HTTP handler, for use with httptest.
func (s *Server) Handler() http.Handler {
	return s.echo
}

// Start listens on addr until Shutdown is called.
func (s *Server) Start(addr string) error {
	s.log.Info("listening on %s", addr)
	if err := s.echo.Start(addr); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

// Shutdown stops the server gracefully.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.echo.Shutdown(ctx)
}

// Grow appends one synthetic sample at now to every monitor's history and
// makes it the current status. Each non-empty bucket sequence also gains one
// bucket one step after its last, so strips showing buckets slide.
func (s *Server) Grow(now time.Time, rng *rand.Rand) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.fixture.Monitors {
		m := &s.fixture.Monitors[i]
		sample := randomSample(now, 0.05, 0.1, rng)
		m.History = append(m.History, sample)
		current := sample
		m.CurrentStatus = &current

		byInterval := s.fixture.Heartbeats[m.Name]
		for _, interval := range status.Intervals {
			buckets := byInterval[string(interval)]
			if len(buckets) == 0 {
				continue
			}
			last, ok := api.ParseTimestamp(buckets[len(buckets)-1].Timestamp)
			if !ok {
				continue
			}
			step := growStep(interval)
			byInterval[string(interval)] = append(buckets, randomBucket(last.Add(step), step, 0.05, 0.1, rng))
		}
	}
	s.log.Debug("grew %d monitors", len(s.fixture.Monitors))
}

// growStep is the spacing of buckets appended by Grow.
func growStep(interval status.Interval) time.Duration {
	if plan, ok := bucketPlan[interval]; ok {
		return plan.step
	}
	return time.Minute
}

// SetClock replaces the clock used for response timestamps.
func (s *Server) SetClock(now func() time.Time) {
	s.now = now
}

func parseHours(c echo.Context, fallback int) (int, error) {
	raw := c.QueryParam("hours")
	if raw == "" {
		return fallback, nil
	}
	h, err := strconv.Atoi(raw)
	if err != nil || h <= 0 {
		return 0, echo.NewHTTPError(http.StatusBadRequest, "hours must be a positive integer")
	}
	return h, nil
}

func (s *Server) getStatus(c echo.Context) error {
	if _, err := parseHours(c, api.DefaultStatusHours); err != nil {
		return err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	monitors := s.fixture.Monitors
	if monitors == nil {
		monitors = []api.MonitorJSON{}
	}
	return c.JSON(http.StatusOK, api.StatusResponse{
		Timestamp: s.now().UTC().Format(time.RFC3339),
		Monitors:  monitors,
	})
}

func (s *Server) getHeartbeat(c echo.Context) error {
	name := c.QueryParam("monitor")
	if name == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "monitor is required")
	}
	interval, err := status.ParseInterval(c.QueryParam("interval"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if _, err := parseHours(c, api.HeartbeatHours(interval)); err != nil {
		return err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.fixture.monitor(name) == nil {
		return c.JSON(http.StatusNotFound, map[string]string{"error": "unknown monitor " + name})
	}
	buckets := s.fixture.Heartbeats[name][string(interval)]
	if buckets == nil {
		buckets = []api.BucketJSON{}
	}
	return c.JSON(http.StatusOK, api.HeartbeatResponse{
		MonitorName: name,
		Interval:    string(interval),
		Heartbeat:   buckets,
	})
}

func (s *Server) getConfig(c echo.Context) error {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return c.JSON(http.StatusOK, s.fixture.Config)
}

// requestLogger logs one line per request with status and latency.
func requestLogger(log logger.Logger) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()

			err := next(c)
			if err != nil {
				c.Error(err)
			}

			req := c.Request()
			res := c.Response()
			path := req.URL.Path
			if req.URL.RawQuery != "" {
				path += "?" + req.URL.RawQuery
			}
			log.Info("%s %s -> %d %s (%dms)",
				req.Method, path, res.Status, http.StatusText(res.Status), time.Since(start).Milliseconds())
			return nil
		}
	}
}
