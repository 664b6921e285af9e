package diagnostics

import (
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat/distuv"

	"github.com/peter-kozarec/aphelion/pkg/timeseries"
)

type ArchLMResult struct {
	LM   Result
	F    Result
	Lags int
}

// ArchLM runs Engle's LM test for conditional heteroskedasticity by
// regressing squared values on their own lags. A non-positive lags falls
// back to DefaultArchLMLags. Both the chi-squared LM form and the F form
// of the test are returned.
func ArchLM(values []float64, lags int) (ArchLMResult, error) {
	if lags <= 0 {
		lags = DefaultArchLMLags
	}
	n := len(values)
	if n < 2*lags+2 {
		return ArchLMResult{}, &timeseries.InsufficientDataError{Op: "arch-lm test", Need: 2*lags + 2, Got: n}
	}

	sq := make([]float64, n)
	for i, v := range values {
		sq[i] = v * v
	}

	rows := n - lags
	x := mat.NewDense(rows, lags+1, nil)
	y := make([]float64, rows)
	for r := 0; r < rows; r++ {
		t := lags + r
		x.Set(r, 0, 1)
		for j := 1; j <= lags; j++ {
			x.Set(r, j, sq[t-j])
		}
		y[r] = sq[t]
	}

	fit, err := fitOLS(x, y)
	if err != nil {
		return ArchLMResult{}, err
	}

	r2 := fit.rsquared()
	lm := float64(rows) * r2
	chi2 := distuv.ChiSquared{K: float64(lags)}

	df2 := rows - lags - 1
	f := (r2 / float64(lags)) / ((1 - r2) / float64(df2))
	fdist := distuv.F{D1: float64(lags), D2: float64(df2)}

	return ArchLMResult{
		LM:   Result{Statistic: lm, PValue: chi2.Survival(lm)},
		F:    Result{Statistic: f, PValue: fdist.Survival(f)},
		Lags: lags,
	}, nil
}
