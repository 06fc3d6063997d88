package api

import (
	"context"
	"sync"

	"github.com/rileyhilliard/beacon/internal/metrics"
	"github.com/rileyhilliard/beacon/internal/status"
	"golang.org/x/sync/errgroup"
)

// preloadConcurrency caps in-flight heartbeat requests during Preload.
const preloadConcurrency = 8

// HeartbeatFetcher fetches bucket sequences.
type HeartbeatFetcher interface {
	FetchHeartbeat(ctx context.Context, monitor string, interval status.Interval, hours int) (*HeartbeatResponse, error)
}

// StoreHeartbeat writes resp into cache under (monitor, interval).
func StoreHeartbeat(cache *status.Cache, monitor string, interval status.Interval, resp *HeartbeatResponse) {
	cache.Store(monitor, interval, resp.ToBuckets())
	metrics.CacheStores.WithLabelValues(string(interval)).Inc()
}

// Preload fetches every (monitor, interval) pair concurrently and stores each
// result as soon as it arrives. Failed fetches leave their key untouched and
// are returned; they never cancel the other fetches.
func Preload(ctx context.Context, f HeartbeatFetcher, cache *status.Cache, monitors []string, intervals []status.Interval) []error {
	var (
		mu   sync.Mutex
		errs []error
	)

	g := new(errgroup.Group)
	g.SetLimit(preloadConcurrency)
	for _, monitor := range monitors {
		for _, interval := range intervals {
			g.Go(func() error {
				resp, err := f.FetchHeartbeat(ctx, monitor, interval, HeartbeatHours(interval))
				if err != nil {
					mu.Lock()
					errs = append(errs, err)
					mu.Unlock()
					return nil
				}
				StoreHeartbeat(cache, monitor, interval, resp)
				return nil
			})
		}
	}
	_ = g.Wait()
	return errs
}
