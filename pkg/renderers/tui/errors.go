package tui

import "errors"

var (
	// ErrAborted signals the user aborted input (e.g., Ctrl+C).
	ErrAborted = errors.New("tui: aborted")
	// ErrDiscarded is returned by Editor.Edit when the user declines to keep
	// the edited values.
	ErrDiscarded = errors.New("tui: changes discarded")
)
