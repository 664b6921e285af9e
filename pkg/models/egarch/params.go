package egarch

import (
	"math"

	"github.com/peter-kozarec/aphelion/pkg/dist"
)

// Params is the constant-mean EGARCH(1,1) parameter vector. The log
// variance recursion is
//
//	ln h_t = Omega + Alpha*(|z_{t-1}| - E|z|) + Gamma*z_{t-1} + Beta*ln h_{t-1}
//
// with z the standardized innovation. Gamma < 0 produces the leverage
// effect where negative shocks raise volatility more than positive ones.
type Params struct {
	Mu    float64
	Omega float64
	Alpha float64
	Gamma float64
	Beta  float64
}

const (
	// minVariance floors the recursion seed for degenerate constant series.
	minVariance = 1e-12

	// logVarianceBound keeps exp finite for wild optimizer trials.
	logVarianceBound = 50.0
)

// VolatilityPath replays the conditional volatility recursion over values.
// The recursion seeds from the sample variance of the demeaned series and
// is pure, so identical inputs reproduce identical paths. One sigma per
// input observation.
func (p Params) VolatilityPath(values []float64, innov dist.Innovation) []float64 {
	return volatilityPath(values, p, innov.MeanAbs())
}

func volatilityPath(values []float64, p Params, meanAbs float64) []float64 {
	n := len(values)
	if n == 0 {
		return nil
	}

	eps := make([]float64, n)
	for i, val := range values {
		eps[i] = val - p.Mu
	}

	sigma := make([]float64, n)
	logh := math.Log(seedVariance(values, p.Mu))
	sigma[0] = math.Exp(0.5 * logh)
	for t := 1; t < n; t++ {
		z := eps[t-1] / sigma[t-1]
		logh = p.Omega + p.Alpha*(math.Abs(z)-meanAbs) + p.Gamma*z + p.Beta*logh
		if logh > logVarianceBound {
			logh = logVarianceBound
		} else if logh < -logVarianceBound {
			logh = -logVarianceBound
		}
		sigma[t] = math.Exp(0.5 * logh)
	}
	return sigma
}

// seedVariance is the recursion seed, the floored sample variance of the
// demeaned series.
func seedVariance(values []float64, mu float64) float64 {
	v := 0.0
	for _, val := range values {
		eps := val - mu
		v += eps * eps
	}
	if len(values) > 0 {
		v /= float64(len(values))
	}
	if v < minVariance {
		v = minVariance
	}
	return v
}
