package device

import (
	"errors"
	"fmt"
)

// ErrObjectCreation is returned when a live context fails to allocate a shader or program object.
var ErrObjectCreation = errors.New("device: could not create object")

// ContextCreationError reports that the host could not provide a graphics context.
// Nothing can be rendered after this error; it is surfaced to the host before the first frame.
type ContextCreationError struct {
	// Reason describes which step of context creation failed.
	Reason string

	// Err is the underlying host error, if any.
	Err error
}

func (e *ContextCreationError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("graphics context: %s", e.Reason)
	}
	return fmt.Sprintf("graphics context: %s: %v", e.Reason, e.Err)
}

func (e *ContextCreationError) Unwrap() error {
	return e.Err
}
