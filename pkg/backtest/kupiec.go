package backtest

import (
	"math"

	"gonum.org/v1/gonum/stat/distuv"

	"github.com/peter-kozarec/aphelion/pkg/dist"
	"github.com/peter-kozarec/aphelion/pkg/timeseries"
)

// KupiecResult holds the unconditional coverage test output. LRStat and
// PValue are NaN in the degenerate cases (zero violations or nothing but
// violations), where the likelihood ratio is undefined; the counts and
// the violation ratio are always populated.
type KupiecResult struct {
	LRStat         float64
	PValue         float64
	Violations     int
	Observations   int
	ViolationRatio float64
}

// Kupiec runs the proportion-of-failures test of the exceedance sequence
// against the nominal coverage alpha,
//
//	LR_uc = -2*((n-x)*log(1-alpha) + x*log(alpha) - (n-x)*log(1-x/n) - x*log(x/n))
//
// with p-value from the chi-squared survival function at one degree of
// freedom. A violation ratio near 1 indicates correct calibration.
func Kupiec(seq *Sequence, alpha float64) (KupiecResult, error) {
	if math.IsNaN(alpha) || alpha <= 0 || alpha >= 1 {
		return KupiecResult{}, &dist.InvalidParameterError{Name: "alpha", Value: alpha, Reason: "must be in (0, 1)"}
	}
	n := seq.Len()
	if n == 0 {
		return KupiecResult{}, &timeseries.InsufficientDataError{Op: "kupiec test", Need: 1, Got: 0}
	}

	x := seq.Violations()
	rate := float64(x) / float64(n)
	result := KupiecResult{
		LRStat:         math.NaN(),
		PValue:         math.NaN(),
		Violations:     x,
		Observations:   n,
		ViolationRatio: rate / alpha,
	}
	if x == 0 || x == n {
		return result, nil
	}

	lr := -2 * (float64(n-x)*math.Log(1-alpha) + float64(x)*math.Log(alpha) -
		float64(n-x)*math.Log(1-rate) - float64(x)*math.Log(rate))
	if lr < 0 {
		lr = 0
	}
	result.LRStat = lr
	result.PValue = distuv.ChiSquared{K: 1}.Survival(lr)
	return result, nil
}
