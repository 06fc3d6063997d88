package ui

import (
	"time"

	"github.com/charmbracelet/bubbles/spinner"
)

// SpinnerFrames defines the custom animation frames (◐ ◓ ◑ ◒) for use in Bubble Tea programs.
var SpinnerFrames = spinner.Spinner{
	Frames: []string{"◐", "◓", "◑", "◒"},
	FPS:    time.Second / 10, // 100ms per frame
}
