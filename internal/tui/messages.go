// Package tui provides the Bubble Tea model of the dashboard: it maps keys to
// dashboard commands, runs loads as commands and renders the store each frame.
package tui

import "github.com/h0rv/taskdeck/internal/dashboard"

// startMsg kicks off the startup load chain.
type startMsg struct{}

// loadDoneMsg carries the outcome of a gateway call back to the event loop.
type loadDoneMsg struct {
	result dashboard.Result
}

// copiedMsg reports the outcome of a clipboard write.
type copiedMsg struct {
	text string
	err  error
}
