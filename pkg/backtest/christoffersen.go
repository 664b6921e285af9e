package backtest

import (
	"math"

	"gonum.org/v1/gonum/stat/distuv"

	"github.com/peter-kozarec/aphelion/pkg/timeseries"
)

// ChristoffersenResult holds the independence test output. The transition
// counts are always populated; LRStat and PValue are NaN when any of the
// marginal sums n00+n01, n10+n11 or n01+n11 is zero, leaving a transition
// probability undefined.
type ChristoffersenResult struct {
	LRStat float64
	PValue float64
	N00    int
	N01    int
	N10    int
	N11    int
}

// Christoffersen tests the exceedance sequence for first-order dependence.
// Consecutive pairs form two-state Markov transition counts; the
// likelihood under a single transition probability is compared against the
// state-conditional alternative, with the p-value from the chi-squared
// survival function at one degree of freedom. Clustered exceedances
// produce a large statistic. Requires at least two observations.
func Christoffersen(seq *Sequence) (ChristoffersenResult, error) {
	n := seq.Len()
	if n < 2 {
		return ChristoffersenResult{}, &timeseries.InsufficientDataError{Op: "christoffersen test", Need: 2, Got: n}
	}

	result := ChristoffersenResult{LRStat: math.NaN(), PValue: math.NaN()}
	for i := 1; i < n; i++ {
		switch {
		case seq.Indicator(i-1) == 0 && seq.Indicator(i) == 0:
			result.N00++
		case seq.Indicator(i-1) == 0:
			result.N01++
		case seq.Indicator(i) == 0:
			result.N10++
		default:
			result.N11++
		}
	}
	if result.N00+result.N01 == 0 || result.N10+result.N11 == 0 || result.N01+result.N11 == 0 {
		return result, nil
	}

	total := result.N00 + result.N01 + result.N10 + result.N11
	pi := float64(result.N01+result.N11) / float64(total)
	pi01 := float64(result.N01) / float64(result.N00+result.N01)
	pi11 := float64(result.N11) / float64(result.N10+result.N11)

	logl0 := xlogy(float64(result.N00+result.N10), 1-pi) + xlogy(float64(result.N01+result.N11), pi)
	logl1 := xlogy(float64(result.N00), 1-pi01) + xlogy(float64(result.N01), pi01) +
		xlogy(float64(result.N10), 1-pi11) + xlogy(float64(result.N11), pi11)

	lr := -2 * (logl0 - logl1)
	if lr < 0 {
		lr = 0
	}
	result.LRStat = lr
	result.PValue = distuv.ChiSquared{K: 1}.Survival(lr)
	return result, nil
}

// xlogy is x*log(y) with the convention that a zero count contributes
// nothing, even when its probability is zero.
func xlogy(x, y float64) float64 {
	if x == 0 {
		return 0
	}
	return x * math.Log(y)
}
