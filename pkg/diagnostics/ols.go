package diagnostics

import (
	"errors"
	"math"

	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat"
)

type olsFit struct {
	beta  []float64
	se    []float64
	resid []float64
	ssr   float64
	sst   float64
	nobs  int
	nvars int
}

// fitOLS regresses y on the columns of x by QR least squares. Standard
// errors are left nil when the regression has no residual degrees of
// freedom. Near-singular designs are accepted, everything else fails.
func fitOLS(x *mat.Dense, y []float64) (*olsFit, error) {
	rows, cols := x.Dims()
	if rows < cols {
		return nil, errors.New("ols: fewer observations than regressors")
	}

	var qr mat.QR
	qr.Factorize(x)

	var beta mat.VecDense
	if err := qr.SolveVecTo(&beta, false, mat.NewVecDense(rows, y)); err != nil {
		var cond mat.Condition
		if !errors.As(err, &cond) {
			return nil, err
		}
	}

	fit := &olsFit{
		beta:  make([]float64, cols),
		resid: make([]float64, rows),
		nobs:  rows,
		nvars: cols,
	}
	for j := range fit.beta {
		fit.beta[j] = beta.AtVec(j)
	}

	var fitted mat.VecDense
	fitted.MulVec(x, &beta)

	ybar := stat.Mean(y, nil)
	for i := range fit.resid {
		r := y[i] - fitted.AtVec(i)
		fit.resid[i] = r
		fit.ssr += r * r
		fit.sst += (y[i] - ybar) * (y[i] - ybar)
	}

	if rows > cols {
		sigma2 := fit.ssr / float64(rows-cols)

		var xtx mat.Dense
		xtx.Mul(x.T(), x)

		var inv mat.Dense
		if err := inv.Inverse(&xtx); err != nil {
			var cond mat.Condition
			if !errors.As(err, &cond) {
				return nil, err
			}
		}

		fit.se = make([]float64, cols)
		for j := range fit.se {
			fit.se[j] = math.Sqrt(sigma2 * inv.At(j, j))
		}
	}

	return fit, nil
}

func (f *olsFit) rsquared() float64 {
	return 1 - f.ssr/f.sst
}
