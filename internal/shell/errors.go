package shell

import "errors"

var (
	// ErrSessionClosed is returned by WriteInput once the session has been
	// closed or its writer has stopped after end-of-transmission.
	ErrSessionClosed = errors.New("shell: session closed")
	// ErrInputBacklog is returned when the input queue is full because the
	// child is not reading its stdin.
	ErrInputBacklog = errors.New("shell: input queue full")
)
