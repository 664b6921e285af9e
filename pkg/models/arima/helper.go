package arima

import (
	"errors"
	"math"
	"math/cmplx"

	"gonum.org/v1/gonum/mat"
)

// leastSquares regresses y on the columns of x by QR. Near-singular
// designs are accepted, everything else fails.
func leastSquares(x *mat.Dense, y []float64) ([]float64, error) {
	rows, cols := x.Dims()
	if rows < cols {
		return nil, errors.New("arima: fewer observations than regressors")
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

	out := make([]float64, cols)
	for j := range out {
		out[j] = beta.AtVec(j)
	}
	return out, nil
}

// stationary reports whether the lag polynomial 1 - c1*z - ... - cp*z^p
// has all roots outside the unit circle, checked through the companion
// matrix eigenvalues. The same condition on the MA coefficients is
// invertibility.
func stationary(coeffs []float64) bool {
	p := len(coeffs)
	if p == 0 {
		return true
	}
	if p == 1 {
		return math.Abs(coeffs[0]) < 1
	}

	companion := mat.NewDense(p, p, nil)
	for j, c := range coeffs {
		companion.Set(0, j, c)
	}
	for i := 1; i < p; i++ {
		companion.Set(i, i-1, 1)
	}

	var eig mat.Eigen
	if !eig.Factorize(companion, mat.EigenNone) {
		return false
	}
	for _, v := range eig.Values(nil) {
		if cmplx.Abs(v) >= 1 {
			return false
		}
	}
	return true
}

// shrinkToStable rescales a coefficient vector whose absolute sum reaches
// one, pulling a Hannan-Rissanen start back into the stable region before
// optimization.
func shrinkToStable(coeffs []float64) {
	sum := 0.0
	for _, c := range coeffs {
		sum += math.Abs(c)
	}
	if sum < 1 {
		return
	}
	for i := range coeffs {
		coeffs[i] *= 0.95 / sum
	}
}

// hannanRissanen produces starting AR and MA coefficients on a centered
// series. Pure AR orders reduce to one regression on the lagged series;
// mixed orders first fit a long autoregression, recover its residuals as
// innovation proxies and then regress jointly on lags of both. Callers
// guarantee p+q > 0.
func hannanRissanen(x []float64, p, q int) ([]float64, []float64, error) {
	n := len(x)
	if q == 0 {
		design := mat.NewDense(n-p, p, nil)
		y := make([]float64, n-p)
		for t := p; t < n; t++ {
			for i := 1; i <= p; i++ {
				design.Set(t-p, i-1, x[t-i])
			}
			y[t-p] = x[t]
		}
		beta, err := leastSquares(design, y)
		if err != nil {
			return nil, nil, err
		}
		return beta, nil, nil
	}

	l := 2 * (p + q)
	if l < 8 {
		l = 8
	}
	if limit := (n - 4) / 2; l > limit {
		l = limit
	}

	design := mat.NewDense(n-l, l, nil)
	y := make([]float64, n-l)
	for t := l; t < n; t++ {
		for i := 1; i <= l; i++ {
			design.Set(t-l, i-1, x[t-i])
		}
		y[t-l] = x[t]
	}
	a, err := leastSquares(design, y)
	if err != nil {
		return nil, nil, err
	}

	e := make([]float64, n)
	for t := l; t < n; t++ {
		v := x[t]
		for i := 1; i <= l; i++ {
			v -= a[i-1] * x[t-i]
		}
		e[t] = v
	}

	start := l + q
	if p > start {
		start = p
	}
	design = mat.NewDense(n-start, p+q, nil)
	y = make([]float64, n-start)
	for t := start; t < n; t++ {
		for i := 1; i <= p; i++ {
			design.Set(t-start, i-1, x[t-i])
		}
		for j := 1; j <= q; j++ {
			design.Set(t-start, p+j-1, e[t-j])
		}
		y[t-start] = x[t]
	}
	beta, err := leastSquares(design, y)
	if err != nil {
		return nil, nil, err
	}
	return beta[:p], beta[p:], nil
}

// conditionalSSR runs the conditional sum of squares recursion on a centered
// series. One step errors before the p-th observation are fixed at zero and
// excluded from the sum.
func conditionalSSR(x []float64, ar, ma []float64) (float64, []float64) {
	p, q := len(ar), len(ma)
	e := make([]float64, len(x))
	ssr := 0.0
	for t := p; t < len(x); t++ {
		v := x[t]
		for i := 1; i <= p; i++ {
			v -= ar[i-1] * x[t-i]
		}
		for j := 1; j <= q; j++ {
			if t-j >= 0 {
				v -= ma[j-1] * e[t-j]
			}
		}
		e[t] = v
		ssr += v * v
	}
	return ssr, e
}

func binomial(n, k int) float64 {
	if k < 0 || k > n {
		return 0
	}
	if k == 0 || k == n {
		return 1
	}
	result := 1.0
	for i := 0; i < k; i++ {
		result = result * float64(n-i) / float64(i+1)
	}
	return result
}

func sliceMean(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	sum := 0.0
	for _, v := range values {
		sum += v
	}
	return sum / float64(len(values))
}
