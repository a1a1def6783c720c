package chat

import (
	"errors"
	"fmt"
)

// ErrMaxIterations is returned when a single user exchange exceeds the
// configured model-call budget without producing a final answer.
var ErrMaxIterations = errors.New("maximum model iterations exceeded")

// ModelEndpointError wraps a failure to reach or use the model endpoint.
// It is fatal for the current exchange; the conversation up to the
// failure is preserved.
type ModelEndpointError struct {
	Err error
}

// Error implements the error interface.
func (e *ModelEndpointError) Error() string {
	return fmt.Sprintf("model endpoint: %v", e.Err)
}

// Unwrap returns the underlying error.
func (e *ModelEndpointError) Unwrap() error {
	return e.Err
}
