// Package dashboard implements the full-screen status dashboard using
// Bubble Tea.
//
// # Architecture
//
// The dashboard follows the Elm architecture:
//
//	Model  - monitors, the resolution cache, the strip animator, cursor state
//	Update - handles key presses, poll ticks, fetch results, animation frames
//	View   - renders header, one row per monitor, tooltip and footer
//
// # Data Flow
//
// Every refresh tick fetches /api/status. Each status result triggers a
// heartbeat fetch for every monitor's active interval; the first result
// preloads all intervals instead. Fetches run as commands and report back as
// messages, so the cache, the animator and the view are only touched on the
// event loop.
//
// # Animation
//
// When a monitor gains one item, its strip slides left for 400ms and the
// oldest item is trimmed when the slide timer fires. Timer callbacks are sent
// into the program as messages. Frame ticks run at 30fps only while some strip
// is sliding.
//
// # Key Bindings
//
//	up/k, down/j   Select monitor
//	left/h, right/l Move the hover cursor along the strip
//	esc            Clear the hover cursor
//	i              Cycle the selected monitor's interval
//	I              Apply the next interval to every monitor
//	r              Refresh now
//	?              Toggle help
//	q, Ctrl+C      Quit
package dashboard
