package arima

import (
	"math"

	"github.com/peter-kozarec/aphelion/pkg/diagnostics"
)

type ModelDiagnostics struct {
	LogLikelihood    float64
	AIC              float64
	BIC              float64
	AICC             float64
	RMSE             float64
	MAE              float64
	MAPE             float64
	LjungBoxPValue   float64
	JarqueBeraPValue float64
	IsStationary     bool
	ConvergenceCode  int
	Iterations       int
}

// calculateDiagnostics derives the Gaussian conditional log likelihood,
// the information criteria and the residual test battery from the current
// parameters and residuals. Called at the end of every estimation.
func (m *Model) calculateDiagnostics() {
	n := len(m.resid)
	if n == 0 || m.variance <= 0 {
		m.diagnostics = ModelDiagnostics{
			LogLikelihood:    math.Inf(-1),
			AIC:              math.Inf(1),
			BIC:              math.Inf(1),
			AICC:             math.Inf(1),
			LjungBoxPValue:   math.NaN(),
			JarqueBeraPValue: math.NaN(),
			IsStationary:     stationary(m.arParams),
		}
		return
	}

	nf := float64(n)
	ll := -nf / 2 * (math.Log(2*math.Pi) + math.Log(m.variance) + 1)

	k := float64(m.p + m.q + 1)
	if m.includeConstant {
		k++
	}

	d := ModelDiagnostics{
		LogLikelihood:   ll,
		AIC:             -2*ll + 2*k,
		BIC:             -2*ll + k*math.Log(nf),
		AICC:            math.Inf(1),
		ConvergenceCode: m.diagnostics.ConvergenceCode,
		Iterations:      m.diagnostics.Iterations,
		IsStationary:    stationary(m.arParams) && stationary(m.maParams),
	}
	if nf-k-1 > 0 {
		d.AICC = d.AIC + 2*k*(k+1)/(nf-k-1)
	}

	sumSq, sumAbs := 0.0, 0.0
	for _, r := range m.resid {
		sumSq += r * r
		sumAbs += math.Abs(r)
	}
	d.RMSE = math.Sqrt(sumSq / nf)
	d.MAE = sumAbs / nf

	// MAPE over the differenced actuals, skipping zeros.
	actuals := m.diffData.Data()
	offset := len(actuals) - n
	valid := 0
	for i, r := range m.resid {
		actual := actuals[offset+i]
		if actual != 0 {
			d.MAPE += math.Abs(r/actual) * 100
			valid++
		}
	}
	if valid > 0 {
		d.MAPE /= float64(valid)
	} else {
		d.MAPE = 0
	}

	d.LjungBoxPValue = math.NaN()
	if lb, err := diagnostics.LjungBox(m.resid, ljungBoxLags(n)); err == nil {
		d.LjungBoxPValue = lb.PValue
	}
	d.JarqueBeraPValue = math.NaN()
	if jb, err := diagnostics.JarqueBera(m.resid); err == nil {
		d.JarqueBeraPValue = jb.PValue
	}

	m.diagnostics = d
}

// ljungBoxLags shrinks the default lag count for short residual samples.
func ljungBoxLags(n int) int {
	lags := diagnostics.DefaultLjungBoxLags
	if n/5 < lags {
		lags = n / 5
	}
	if lags < 1 {
		lags = 1
	}
	return lags
}
