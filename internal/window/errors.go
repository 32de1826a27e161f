package window

import (
	"errors"
	"fmt"
)

var (
	// ErrManagerFreed is returned when a freed Manager is asked to create a window.
	ErrManagerFreed = errors.New("window manager has been freed")
	// ErrWindowFreed is returned when Realize is called on a freed window.
	ErrWindowFreed = errors.New("window has been freed")
	// ErrWindowRealized is returned when Realize is called twice.
	ErrWindowRealized = errors.New("window is already realized")
)

// BackendInitError reports that the native backend could not be started.
type BackendInitError struct {
	Reason string
	Err    error
}

func (e *BackendInitError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("backend init: %s: %v", e.Reason, e.Err)
	}
	return "backend init: " + e.Reason
}

func (e *BackendInitError) Unwrap() error { return e.Err }

// WindowCreationError reports that the backend refused to create a window.
// Detail carries the backend's last error string.
type WindowCreationError struct {
	Title  string
	Detail string
	Err    error
}

func (e *WindowCreationError) Error() string {
	msg := fmt.Sprintf("failed to create window %q", e.Title)
	if e.Detail != "" {
		msg += ": " + e.Detail
	} else if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *WindowCreationError) Unwrap() error { return e.Err }

// FullscreenTransitionError describes a failed fullscreen change. It is
// logged, never returned: the window keeps its previous state.
type FullscreenTransitionError struct {
	Enter bool
	Err   error
}

func (e *FullscreenTransitionError) Error() string {
	verb := "exit"
	if e.Enter {
		verb = "enter"
	}
	return fmt.Sprintf("failed to %s fullscreen: %v", verb, e.Err)
}

func (e *FullscreenTransitionError) Unwrap() error { return e.Err }
