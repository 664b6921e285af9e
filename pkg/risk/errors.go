package risk

import "fmt"

// InvalidInputError reports a conditional volatility observation that is
// negative or NaN.
type InvalidInputError struct {
	Index int
	Value float64
}

func (e *InvalidInputError) Error() string {
	return fmt.Sprintf("invalid conditional volatility at index %d: %g", e.Index, e.Value)
}
