package reactive

import (
	"errors"
	"fmt"
)

var (
	// ErrCircularDependency is returned when a computed reads itself while it
	// is being evaluated.
	ErrCircularDependency = errors.New("circular dependency")
	ErrSubscriberPanic    = errors.New("subscriber panicked")
	ErrDisposed           = errors.New("reactive node disposed")
)

// ComputationError wraps an error returned by a computed function. The
// computed stays invalid, so the next read runs the function again.
type ComputationError struct {
	Label string
	Err   error
}

func (e *ComputationError) Error() string {
	if e.Label == "" {
		return fmt.Sprintf("computation failed: %v", e.Err)
	}
	return fmt.Sprintf("computation %q failed: %v", e.Label, e.Err)
}

func (e *ComputationError) Unwrap() error {
	return e.Err
}
