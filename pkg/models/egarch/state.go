package egarch

import (
	"math"

	"github.com/peter-kozarec/aphelion/pkg/dist"
)

// State carries the conditional volatility recursion between observations so
// a fitted model can run one return at a time. It seeds the way VolatilityPath
// seeds a batch replay, so advancing through the same series reproduces the
// batch path exactly.
type State struct {
	params  Params
	meanAbs float64
	logh    float64
}

// NewState seeds the recursion from the calibration sample, usually the
// series the parameters were fitted on.
func (p Params) NewState(innov dist.Innovation, calibration []float64) *State {
	return &State{
		params:  p,
		meanAbs: innov.MeanAbs(),
		logh:    math.Log(seedVariance(calibration, p.Mu)),
	}
}

// NewStationaryState seeds the recursion at the unconditional log variance
// Omega/(1-Beta). Useful when there is no calibration sample, as when
// generating returns from the model itself. Requires Beta < 1.
func (p Params) NewStationaryState(innov dist.Innovation) *State {
	s := p.NewState(innov, nil)
	if p.Beta < 1 {
		logh := p.Omega / (1 - p.Beta)
		if logh > logVarianceBound {
			logh = logVarianceBound
		} else if logh < -logVarianceBound {
			logh = -logVarianceBound
		}
		s.logh = logh
	}
	return s
}

// Sigma is the conditional volatility of the upcoming observation.
func (s *State) Sigma() float64 {
	return math.Exp(0.5 * s.logh)
}

// Advance consumes one observed return, steps the recursion and returns the
// conditional volatility of the next observation.
func (s *State) Advance(value float64) float64 {
	z := (value - s.params.Mu) / s.Sigma()
	logh := s.params.Omega + s.params.Alpha*(math.Abs(z)-s.meanAbs) + s.params.Gamma*z + s.params.Beta*s.logh
	if logh > logVarianceBound {
		logh = logVarianceBound
	} else if logh < -logVarianceBound {
		logh = -logVarianceBound
	}
	s.logh = logh
	return s.Sigma()
}
