package domain

import (
	"errors"
	"fmt"
)

// ErrBadResponse is returned when an answer is rejected and the transport
// cannot be asked again (it is not interactive).
var ErrBadResponse = errors.New("bad response")

// ErrCannotReplay is returned when a replay is started while the answer log is not recording.
var ErrCannotReplay = errors.New("cannot replay: log is not recording")

// ErrScopeMismatch is returned when an explicit scope is closed while an implicit one is open.
var ErrScopeMismatch = errors.New("scope mismatch")

// ErrSessionNotFound is returned when a session ID cannot be found in the store.
var ErrSessionNotFound = errors.New("session not found")

// ValidationError reports a value that was well formed but rejected by its type.
// The session driver treats it like an undo of the last answer.
type ValidationError struct {
	Path   string // Type or field path
	Reason string // Human-readable reason for failure
	Value  any    // The value that failed validation
}

func (e *ValidationError) Error() string {
	switch {
	case e.Path == "":
		return e.Reason
	case e.Value == nil:
		return fmt.Sprintf("%s: %s", e.Path, e.Reason)
	default:
		return fmt.Sprintf("%s: %s (got %T)", e.Path, e.Reason, e.Value)
	}
}

// TransportError wraps an I/O failure of the transcript medium. It is never retried.
type TransportError struct {
	Op  string
	Err error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("transport %s: %v", e.Op, e.Err)
}

func (e *TransportError) Unwrap() error { return e.Err }
