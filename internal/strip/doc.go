// Package strip keeps the visible window of status items for each monitor and
// animates it when new data arrives.
//
// A window holds at most capacity items. When a monitor gains exactly one new
// item and the window is full, the new item is appended, the strip slides left
// by one item width over SlideDuration, and the oldest item is trimmed when the
// slide timer fires. Any other change replaces the window outright.
//
// Animator is not safe for concurrent use. Timer callbacks must be delivered on
// the same goroutine that calls Sync and Advance; LoopScheduler does this by
// posting callbacks to an event loop.
package strip
