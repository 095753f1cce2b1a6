package tui

import "errors"

var (
	// ErrAborted signals the user aborted input (e.g., Ctrl+C).
	ErrAborted = errors.New("tui: aborted")
	// ErrNoSession is returned when Run is called without a session.
	ErrNoSession = errors.New("tui: session is required")
	// ErrStepBlocked reports a step whose failing fields are all disabled,
	// so no answer can unblock navigation.
	ErrStepBlocked = errors.New("tui: step blocked by fields that cannot be edited")
)
