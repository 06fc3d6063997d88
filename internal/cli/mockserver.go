package cli

import (
	"context"
	"math/rand"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-co-op/gocron/v2"
	"github.com/rileyhilliard/beacon/internal/errors"
	"github.com/rileyhilliard/beacon/internal/logger"
	"github.com/rileyhilliard/beacon/internal/mockapi"
)

// mockServerFlags holds mock-server flags.
type mockServerFlags struct {
	Addr    string
	Fixture string
	Grow    time.Duration
	Seed    int64
}

var mockOpts mockServerFlags

// mockServerCommand serves a fixture, or generated demo data, until
// interrupted.
func mockServerCommand(opts mockServerFlags) error {
	log := logger.NewEnvLogger("[mock]")

	seed := opts.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	rng := rand.New(rand.NewSource(seed))

	var fixture *mockapi.Fixture
	if opts.Fixture != "" {
		f, err := mockapi.LoadFixture(opts.Fixture)
		if err != nil {
			return err
		}
		fixture = f
	} else {
		fixture = mockapi.DemoFixture(time.Now(), rng)
		log.Info("serving demo data (seed %d)", seed)
	}

	srv := mockapi.New(fixture, log)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if opts.Grow > 0 {
		sched, err := gocron.NewScheduler()
		if err != nil {
			return errors.WrapWithCode(err, errors.ErrExec, "Failed to create scheduler", "")
		}
		_, err = sched.NewJob(
			gocron.DurationJob(opts.Grow),
			gocron.NewTask(func() {
				srv.Grow(time.Now(), rng)
			}),
			gocron.WithSingletonMode(gocron.LimitModeReschedule),
		)
		if err != nil {
			return errors.WrapWithCode(err, errors.ErrExec, "Failed to schedule growth", "")
		}
		sched.Start()
		defer func() { _ = sched.Shutdown() }()
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.Start(opts.Addr)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return errors.WrapWithCode(err, errors.ErrExec,
				"Mock server failed on "+opts.Addr,
				"Is something else listening on that port? Try --addr :8081.")
		}
		return nil
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}
