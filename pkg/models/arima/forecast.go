package arima

import "math"

const (
	z80 = 1.2815515655446004
	z95 = 1.959963984540054
)

// Interval bounds a forecast at the two standard confidence levels.
type Interval struct {
	Lower95 float64
	Upper95 float64
	Lower80 float64
	Upper80 float64
}

// ForecastResult is one forecast step on the original, undifferenced scale.
// The confidence interval covers the conditional mean, the prediction
// interval widens it for the innovation of a single future observation.
type ForecastResult struct {
	PointForecast      float64
	StandardError      float64
	ConfidenceInterval Interval
	PredictionInterval Interval
}

// forecastState carries the extending histories of a multi step forecast.
// Each step appends its own output so later steps condition on earlier ones.
type forecastState struct {
	diffs []float64
	raw   []float64
	resid []float64
}

// Forecast produces point forecasts with confidence and prediction intervals
// for the next horizon observations. Future innovations enter as zeros, the
// forecast error variance accumulates through the psi weights of the fitted
// polynomial after undoing the differencing.
func (m *Model) Forecast(horizon int) ([]ForecastResult, error) {
	if horizon <= 0 {
		return nil, ErrInvalidHorizon
	}
	if !m.estimated {
		return nil, ErrModelNotEstimated
	}

	state := &forecastState{
		diffs: m.diffData.Data(),
		raw:   m.rawData.Data(),
		resid: append([]float64(nil), m.resid...),
	}

	psi := m.psiWeights(horizon)
	widen := math.Sqrt(1 + 1/float64(len(m.resid)))

	out := make([]ForecastResult, horizon)
	cum := 0.0
	for h := 1; h <= horizon; h++ {
		f := m.nextDiff(state)
		state.diffs = append(state.diffs, f)
		state.resid = append(state.resid, 0)

		point := m.undifference(state, f)
		state.raw = append(state.raw, point)

		cum += psi[h-1] * psi[h-1]
		se := math.Sqrt(m.variance * cum)

		out[h-1] = ForecastResult{
			PointForecast:      point,
			StandardError:      se,
			ConfidenceInterval: interval(point, se),
			PredictionInterval: interval(point, se*widen),
		}
	}
	return out, nil
}

// ForecastTable evaluates selected horizons in one pass. The largest horizon
// drives a single Forecast call.
func (m *Model) ForecastTable(horizons []int) (map[int]ForecastResult, error) {
	if len(horizons) == 0 {
		return nil, ErrInvalidHorizon
	}
	longest := 0
	for _, h := range horizons {
		if h <= 0 {
			return nil, ErrInvalidHorizon
		}
		if h > longest {
			longest = h
		}
	}

	all, err := m.Forecast(longest)
	if err != nil {
		return nil, err
	}
	out := make(map[int]ForecastResult, len(horizons))
	for _, h := range horizons {
		out[h] = all[h-1]
	}
	return out, nil
}

// nextDiff is the one step conditional mean on the differenced scale.
func (m *Model) nextDiff(state *forecastState) float64 {
	f := m.mean
	nd := len(state.diffs)
	for i := 1; i <= m.p; i++ {
		f += m.arParams[i-1] * (state.diffs[nd-i] - m.mean)
	}
	nr := len(state.resid)
	for j := 1; j <= m.q; j++ {
		f += m.maParams[j-1] * state.resid[nr-j]
	}
	return f
}

// undifference maps a differenced forecast back to the original scale using
// the binomial expansion over the trailing raw values.
func (m *Model) undifference(state *forecastState, diff float64) float64 {
	v := diff
	sign := 1.0
	nr := len(state.raw)
	for i := 1; i <= m.d; i++ {
		v += sign * binomial(m.d, i) * state.raw[nr-i]
		sign = -sign
	}
	return v
}

// psiWeights expands the fitted polynomial into the moving average weights
// that drive forecast error variance. For d > 0 the weights accumulate, one
// cumulative pass per difference.
func (m *Model) psiWeights(horizon int) []float64 {
	psi := make([]float64, horizon)
	psi[0] = 1
	for j := 1; j < horizon; j++ {
		v := 0.0
		if j <= m.q {
			v = m.maParams[j-1]
		}
		for i := 1; i <= m.p && i <= j; i++ {
			v += m.arParams[i-1] * psi[j-i]
		}
		psi[j] = v
	}
	for k := 0; k < m.d; k++ {
		for j := 1; j < horizon; j++ {
			psi[j] += psi[j-1]
		}
	}
	return psi
}

func interval(point, se float64) Interval {
	return Interval{
		Lower95: point - z95*se,
		Upper95: point + z95*se,
		Lower80: point - z80*se,
		Upper80: point + z80*se,
	}
}
