package desim

import (
	"errors"
	"fmt"
)

// ValueError is the Go rendering of spec's ValueError-kind: an argument was
// syntactically acceptable but semantically out of range (a negative
// timeout delay, a non-routine passed to NewProcess, an until <= now).
type ValueError struct {
	Message string
	Cause   error
}

// Error implements the error interface.
func (e *ValueError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("desim: value error: %s: %v", e.Message, e.Cause)
	}
	return fmt.Sprintf("desim: value error: %s", e.Message)
}

// Unwrap returns the underlying cause for use with errors.Is and errors.As.
func (e *ValueError) Unwrap() error {
	return e.Cause
}

// RuntimeError is the Go rendering of spec's RuntimeError-kind: a kernel
// invariant was violated by the caller (double succeed/fail, a Condition
// admitting a mismatched or already-processed child, self-interruption,
// interrupting a dead process, an invalid yield from a routine).
type RuntimeError struct {
	Message string
	Cause   error
}

// Error implements the error interface.
func (e *RuntimeError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("desim: runtime error: %s: %v", e.Message, e.Cause)
	}
	return fmt.Sprintf("desim: runtime error: %s", e.Message)
}

// Unwrap returns the underlying cause for use with errors.Is and errors.As.
func (e *RuntimeError) Unwrap() error {
	return e.Cause
}

// ErrEmptySchedule is the sentinel consumed internally by Environment.Run
// when the event queue drains with no stop condition pending. It should
// not normally be observed outside of this package.
var ErrEmptySchedule = errors.New("desim: empty schedule")

// ErrValueNotReady is returned by Event.Value when the event has not yet
// been triggered.
var ErrValueNotReady = errors.New("desim: value not yet available")

// Interrupt is the payload delivered into a Process's routine when another
// process calls Process.Interrupt. It is not an error in the sense of
// indicating a kernel defect — it is always delivered as a defused
// failure — but it implements error so it can flow through the ordinary
// Event.fail/value machinery like any other failure payload.
type Interrupt struct {
	// Cause is the optional value passed to Process.Interrupt. May be nil.
	Cause any
}

// Error implements the error interface.
func (e *Interrupt) Error() string {
	return fmt.Sprintf("desim: interrupt(%v)", e.Cause)
}

// WrapError wraps an error with a message and preserves it as the Unwrap
// cause, so that errors.Is(result, cause) holds.
func WrapError(message string, cause error) error {
	return fmt.Errorf("%s: %w", message, cause)
}
