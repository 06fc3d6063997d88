// Package api fetches monitor status, heartbeat buckets and display
// configuration from the dashboard server.
package api

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/mailru/easyjson"
	"github.com/rileyhilliard/beacon/internal/errors"
	"github.com/rileyhilliard/beacon/internal/logger"
	"github.com/rileyhilliard/beacon/internal/metrics"
	"github.com/rileyhilliard/beacon/internal/status"
)

// Endpoint paths served by the dashboard API.
const (
	StatusPath    = "/api/status"
	HeartbeatPath = "/api/heartbeat"
	ConfigPath    = "/api/config"
)

// DefaultStatusHours is the history window requested by FetchStatus callers
// that have no configured value.
const DefaultStatusHours = 720

// DefaultTimeout bounds a single request.
const DefaultTimeout = 10 * time.Second

// HeartbeatHours returns how far back heartbeat buckets are requested for
// interval.
func HeartbeatHours(interval status.Interval) int {
	switch interval {
	case status.IntervalHour:
		return 96
	case status.IntervalDay:
		return 2880
	case status.IntervalWeek:
		return 17472
	default:
		return 720
	}
}

// Fetcher is the read side of the dashboard API.
type Fetcher interface {
	FetchStatus(ctx context.Context, hours int) (*StatusResponse, error)
	FetchHeartbeat(ctx context.Context, monitor string, interval status.Interval, hours int) (*HeartbeatResponse, error)
	FetchConfig(ctx context.Context) (*ConfigResponse, error)
}

// Client talks to one dashboard server.
type Client struct {
	baseURL string
	http    *http.Client
	log     logger.Logger
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the underlying HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.http = hc
	}
}

// WithLogger sets the client logger.
func WithLogger(l logger.Logger) Option {
	return func(c *Client) {
		c.log = l
	}
}

// NewClient creates a client for baseURL. A non-positive timeout uses
// DefaultTimeout.
func NewClient(baseURL string, timeout time.Duration, opts ...Option) *Client {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: timeout},
		log:     logger.Noop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// BaseURL returns the server address.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// FetchStatus returns every monitor with its last hours of raw history.
func (c *Client) FetchStatus(ctx context.Context, hours int) (*StatusResponse, error) {
	q := url.Values{}
	if hours > 0 {
		q.Set("hours", strconv.Itoa(hours))
	}
	var resp StatusResponse
	if err := c.get(ctx, "status", StatusPath, q, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// FetchHeartbeat returns the buckets for one monitor at interval.
func (c *Client) FetchHeartbeat(ctx context.Context, monitor string, interval status.Interval, hours int) (*HeartbeatResponse, error) {
	q := url.Values{}
	q.Set("monitor", monitor)
	q.Set("interval", string(interval))
	if hours > 0 {
		q.Set("hours", strconv.Itoa(hours))
	}
	var resp HeartbeatResponse
	if err := c.get(ctx, "heartbeat", HeartbeatPath, q, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// FetchConfig returns the server's display configuration.
func (c *Client) FetchConfig(ctx context.Context) (*ConfigResponse, error) {
	var resp ConfigResponse
	if err := c.get(ctx, "config", ConfigPath, nil, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (c *Client) get(ctx context.Context, endpoint, path string, query url.Values, v easyjson.Unmarshaler) (err error) {
	start := time.Now()
	defer func() {
		metrics.ObserveFetch(endpoint, start, err)
	}()

	target := c.baseURL + path
	if len(query) > 0 {
		target += "?" + query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return errors.WrapWithCode(err, errors.ErrConfig,
			fmt.Sprintf("Invalid server URL %q", c.baseURL),
			"Check server.url in .beacon.yaml")
	}
	req.Header.Set("Accept", "application/json")

	c.log.Debug("GET %s", target)
	res, err := c.http.Do(req)
	if err != nil {
		return errors.WrapWithCode(err, errors.ErrFetch,
			fmt.Sprintf("Couldn't reach %s", c.baseURL),
			"Check that the server is running and server.url is correct")
	}
	defer res.Body.Close()

	if res.StatusCode < 200 || res.StatusCode > 299 {
		body, _ := io.ReadAll(io.LimitReader(res.Body, 512))
		return errors.New(errors.ErrFetch,
			fmt.Sprintf("GET %s returned %d: %s", path, res.StatusCode, strings.TrimSpace(string(body))),
			"The server answered but rejected the request")
	}

	if err := easyjson.UnmarshalFromReader(res.Body, v); err != nil {
		return errors.WrapWithCode(err, errors.ErrDecode,
			fmt.Sprintf("Couldn't decode response from %s", path),
			"The server may be running an incompatible version")
	}
	c.log.Debug("GET %s ok in %s", path, time.Since(start).Round(time.Millisecond))
	return nil
}
