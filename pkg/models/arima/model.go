package arima

import (
	"errors"
	"fmt"
	"math"

	"gonum.org/v1/gonum/optimize"

	"github.com/peter-kozarec/aphelion/pkg/timeseries"
	"github.com/peter-kozarec/aphelion/pkg/utility/circular"
)

// EstimationMethod selects how the coefficients of the differenced series
// are fitted.
type EstimationMethod int

const (
	// ConditionalLeastSquares minimizes the conditional sum of squared one
	// step errors with the mean fixed at the sample mean.
	ConditionalLeastSquares EstimationMethod = iota
	// MaximumLikelihood profiles the mean alongside the coefficients. Under
	// Gaussian innovations the conditional likelihood is monotone in the sum
	// of squares, so the same objective drives both methods.
	MaximumLikelihood
)

const (
	DefaultMaxIterations = 1000

	// minObservationMargin is the number of differenced observations
	// required beyond p+q before an estimation is attempted.
	minObservationMargin = 20

	convergenceTolerance = 1e-8
	convergencePatience  = 50

	residualAutocorrPValue = 0.01
)

// Model is a rolling ARIMA(p,d,q) estimator. Observations stream in through
// AddPoint, the window differences them d times and estimation fits the ARMA
// coefficients on the stationary remainder.
type Model struct {
	p, d, q int
	winSize int

	method          EstimationMethod
	includeConstant bool
	maxIterations   int

	ptCounter int
	estimated bool

	arParams []float64
	maParams []float64
	mean     float64
	variance float64
	resid    []float64

	rawData  *circular.Buffer[float64]
	diffData *circular.Buffer[float64]

	diagnostics ModelDiagnostics
}

func NewModel(p, d, q, winSize int, options ...ModelOption) (*Model, error) {
	if p < 0 || d < 0 || q < 0 {
		return nil, fmt.Errorf("arima order (%d,%d,%d) must be non-negative", p, d, q)
	}
	if minWin := p + d + q + minObservationMargin; winSize < minWin {
		return nil, fmt.Errorf("window size %d too small for arima(%d,%d,%d), need at least %d", winSize, p, d, q, minWin)
	}

	m := &Model{
		p:               p,
		d:               d,
		q:               q,
		winSize:         winSize,
		method:          ConditionalLeastSquares,
		includeConstant: true,
		maxIterations:   DefaultMaxIterations,
		rawData:         circular.NewBuffer[float64](uint(winSize)),
		diffData:        circular.NewBuffer[float64](uint(winSize - d)),
	}
	for _, option := range options {
		option(m)
	}
	return m, nil
}

// Order returns the configured (p, d, q).
func (m *Model) Order() (int, int, int) {
	return m.p, m.d, m.q
}

// AddPoint appends an observation to the raw window and, once d+1 raw points
// exist, pushes the d times differenced value into the stationary window.
func (m *Model) AddPoint(value float64) {
	m.rawData.Push(value)
	m.ptCounter++

	if int(m.rawData.Size()) > m.d {
		diff := 0.0
		sign := 1.0
		for i := 0; i <= m.d; i++ {
			diff += sign * binomial(m.d, i) * m.rawData.Get(uint(i))
			sign = -sign
		}
		m.diffData.Push(diff)
	}
}

// ShouldReestimate reports whether a full window of new observations arrived
// since the last estimation, or whether the window just filled for the first
// time.
func (m *Model) ShouldReestimate() bool {
	if m.ptCounter >= m.winSize {
		return true
	}
	return !m.estimated && m.diffData.IsFull()
}

func (m *Model) IsEstimated() bool {
	return m.estimated
}

// Estimate fits the configured order on the differenced window. Starting
// coefficients come from the Hannan-Rissanen regressions, refined by
// Nelder-Mead on the conditional sum of squares. Candidates outside the
// stationarity or invertibility region are rejected during the search.
func (m *Model) Estimate() error {
	data := m.diffData.Data()
	n := len(data)
	if need := m.p + m.q + minObservationMargin; n < need {
		return &timeseries.InsufficientDataError{Op: "arima estimate", Need: need, Got: n}
	}

	mean := 0.0
	if m.includeConstant {
		mean = sliceMean(data)
	}
	centered := func(mu float64) []float64 {
		x := make([]float64, n)
		for i, v := range data {
			x[i] = v - mu
		}
		return x
	}
	x := centered(mean)

	var phi0, theta0 []float64
	if m.p+m.q > 0 {
		var err error
		phi0, theta0, err = hannanRissanen(x, m.p, m.q)
		if err != nil {
			return fmt.Errorf("arima initial estimate: %w", err)
		}
		shrinkToStable(phi0)
		shrinkToStable(theta0)
	}

	profiled := m.method == MaximumLikelihood && m.includeConstant
	x0 := make([]float64, 0, m.p+m.q+1)
	x0 = append(x0, phi0...)
	x0 = append(x0, theta0...)
	if profiled {
		x0 = append(x0, mean)
	}

	ar, ma := phi0, theta0
	iterations, code := 0, 0
	if len(x0) > 0 {
		problem := optimize.Problem{
			Func: func(v []float64) float64 {
				phi, theta := v[:m.p], v[m.p:m.p+m.q]
				if !stationary(phi) || !stationary(theta) {
					return math.Inf(1)
				}
				sample := x
				if profiled {
					sample = centered(v[m.p+m.q])
				}
				ssr, _ := conditionalSSR(sample, phi, theta)
				if math.IsNaN(ssr) || math.IsInf(ssr, 0) {
					return math.Inf(1)
				}
				return ssr
			},
		}
		settings := &optimize.Settings{
			MajorIterations: m.maxIterations,
			Converger: &optimize.FunctionConverge{
				Absolute:   convergenceTolerance,
				Iterations: convergencePatience,
			},
		}

		result, err := optimize.Minimize(problem, x0, settings, &optimize.NelderMead{})
		if err != nil {
			return fmt.Errorf("arima estimation: %w", err)
		}
		if err = result.Status.Err(); err != nil {
			return fmt.Errorf("arima estimation: %w", err)
		}

		ar = append([]float64(nil), result.X[:m.p]...)
		ma = append([]float64(nil), result.X[m.p:m.p+m.q]...)
		if profiled {
			mean = result.X[m.p+m.q]
			x = centered(mean)
		}
		iterations = result.MajorIterations
		code = int(result.Status)
	}

	ssr, residuals := conditionalSSR(x, ar, ma)

	m.arParams = ar
	m.maParams = ma
	m.mean = mean
	m.variance = ssr / float64(n-m.p)
	m.resid = residuals[m.p:]
	m.estimated = true
	m.ptCounter = 0

	m.diagnostics.Iterations = iterations
	m.diagnostics.ConvergenceCode = code
	m.calculateDiagnostics()
	return nil
}

// ValidateModel checks that the last estimation produced a usable model:
// stationary AR polynomial, invertible MA polynomial and no residual
// autocorrelation at the Ljung-Box threshold.
func (m *Model) ValidateModel() error {
	if !m.estimated {
		return ErrModelNotEstimated
	}
	if !stationary(m.arParams) {
		return errors.New("ar polynomial is not stationary")
	}
	if !stationary(m.maParams) {
		return errors.New("ma polynomial is not invertible")
	}
	if p := m.diagnostics.LjungBoxPValue; !math.IsNaN(p) && p < residualAutocorrPValue {
		return fmt.Errorf("residual autocorrelation, ljung-box p-value %.4f", p)
	}
	return nil
}

// ARParams returns a copy of the autoregressive coefficients.
func (m *Model) ARParams() []float64 {
	return append([]float64(nil), m.arParams...)
}

// MAParams returns a copy of the moving average coefficients.
func (m *Model) MAParams() []float64 {
	return append([]float64(nil), m.maParams...)
}

// Mean is the estimated mean of the differenced series, zero when the
// constant is excluded.
func (m *Model) Mean() float64 {
	return m.mean
}

// Variance is the innovation variance estimate of the last estimation.
func (m *Model) Variance() float64 {
	return m.variance
}

// Residuals returns a copy of the one step errors of the last estimation.
func (m *Model) Residuals() []float64 {
	return append([]float64(nil), m.resid...)
}

func (m *Model) Diagnostics() ModelDiagnostics {
	return m.diagnostics
}
