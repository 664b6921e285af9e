package egarch

import "github.com/peter-kozarec/aphelion/pkg/dist"

type ModelOption func(*Model)

// WithInnovation selects the conditional distribution family used for
// maximum likelihood. The default is the Student-t family.
func WithInnovation(family dist.Family) ModelOption {
	return func(m *Model) {
		m.family = family
	}
}

// WithMaxIterations caps the Nelder-Mead iteration budget.
func WithMaxIterations(iterations int) ModelOption {
	return func(m *Model) {
		if iterations > 0 {
			m.maxIterations = iterations
		}
	}
}

// WithMinObservations overrides the minimum sample length accepted by Fit.
func WithMinObservations(observations int) ModelOption {
	return func(m *Model) {
		if observations > 0 {
			m.minObservations = observations
		}
	}
}
