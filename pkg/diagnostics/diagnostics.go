package diagnostics

import (
	"math"

	"gonum.org/v1/gonum/stat"
	"gonum.org/v1/gonum/stat/distuv"

	"github.com/peter-kozarec/aphelion/pkg/timeseries"
)

const (
	DefaultLjungBoxLags = 10
	DefaultArchLMLags   = 12
)

type Result struct {
	Statistic float64
	PValue    float64
}

// LjungBox tests the first lags autocorrelations of values for joint
// significance. A non-positive lags falls back to DefaultLjungBoxLags.
// Degenerate inputs (zero variance) surface as NaN fields, not errors.
func LjungBox(values []float64, lags int) (Result, error) {
	if lags <= 0 {
		lags = DefaultLjungBoxLags
	}
	n := len(values)
	if n <= lags {
		return Result{}, &timeseries.InsufficientDataError{Op: "ljung-box test", Need: lags + 1, Got: n}
	}

	mu := stat.Mean(values, nil)
	centered := make([]float64, n)
	den := 0.0
	for i, v := range values {
		centered[i] = v - mu
		den += centered[i] * centered[i]
	}

	q := 0.0
	for k := 1; k <= lags; k++ {
		num := 0.0
		for t := k; t < n; t++ {
			num += centered[t] * centered[t-k]
		}
		rho := num / den
		q += rho * rho / float64(n-k)
	}
	q *= float64(n) * float64(n+2)

	chi2 := distuv.ChiSquared{K: float64(lags)}
	return Result{Statistic: q, PValue: chi2.Survival(q)}, nil
}

// JarqueBera tests values for normality using population skewness and
// kurtosis. The statistic is chi-squared with 2 degrees of freedom.
func JarqueBera(values []float64) (Result, error) {
	n := len(values)
	if n < 7 {
		return Result{}, &timeseries.InsufficientDataError{Op: "jarque-bera test", Need: 7, Got: n}
	}

	mu := stat.Mean(values, nil)
	var m2, m3, m4 float64
	for _, v := range values {
		d := v - mu
		d2 := d * d
		m2 += d2
		m3 += d2 * d
		m4 += d2 * d2
	}
	fn := float64(n)
	m2 /= fn
	m3 /= fn
	m4 /= fn

	skew := m3 / (m2 * math.Sqrt(m2))
	kurt := m4 / (m2 * m2)
	jb := fn / 6 * (skew*skew + (kurt-3)*(kurt-3)/4)

	chi2 := distuv.ChiSquared{K: 2}
	return Result{Statistic: jb, PValue: chi2.Survival(jb)}, nil
}
