package dashboard

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/rileyhilliard/beacon/internal/strip"
)

// Run starts the dashboard TUI and blocks until the user quits.
// Slide timer callbacks are forwarded into the program so the animator is
// only touched on the event loop.
func Run(ctx context.Context, opts Options) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	sched := strip.NewLoopScheduler(nil)
	opts.Scheduler = sched
	opts.Context = ctx

	program := tea.NewProgram(New(opts), tea.WithAltScreen(), tea.WithContext(ctx))
	sched.Bind(func(fn func()) {
		program.Send(callbackMsg{fn: fn})
	})
	defer sched.Bind(nil)

	_, err := program.Run()
	if err != nil && ctx.Err() != nil {
		// Cancelled from outside, e.g. by a signal.
		return nil
	}
	return err
}
