package egarch

import (
	"fmt"

	"gonum.org/v1/gonum/optimize"
)

// ConvergenceError reports that maximum likelihood estimation stopped
// without reaching an optimum, either because the optimizer failed or
// because the iteration budget ran out first.
type ConvergenceError struct {
	Iterations int
	Status     optimize.Status
}

func (e *ConvergenceError) Error() string {
	return fmt.Sprintf("egarch estimation did not converge after %d iterations: %s", e.Iterations, e.Status)
}
