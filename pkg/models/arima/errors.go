package arima

import (
	"errors"
	"fmt"
)

var (
	ErrModelNotEstimated = errors.New("model not estimated")
	ErrInvalidHorizon    = errors.New("forecast horizon must be positive")
)

// NoConvergentModelError reports that every order in a selector grid
// failed to estimate. LastErr carries the failure of the final attempt.
type NoConvergentModelError struct {
	Attempts int
	LastErr  error
}

func (e *NoConvergentModelError) Error() string {
	return fmt.Sprintf("no arima order converged after %d attempts: %v", e.Attempts, e.LastErr)
}

func (e *NoConvergentModelError) Unwrap() error {
	return e.LastErr
}
