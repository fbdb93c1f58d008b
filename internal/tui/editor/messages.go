package editor

import "time"

// runFinishedMsg is sent when a background run completes
type runFinishedMsg struct {
	output   string
	err      error
	duration time.Duration
}

// savedMsg is sent after the buffer was written to disk
type savedMsg struct {
	path string
	err  error
}
