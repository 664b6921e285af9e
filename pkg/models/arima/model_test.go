package arima

import (
	"errors"
	"math"
	"testing"

	"github.com/peter-kozarec/aphelion/pkg/timeseries"
)

func lcgUniforms(seed int64, n int) []float64 {
	a, c, m := int64(1664525), int64(1013904223), int64(1)<<32
	x := seed
	out := make([]float64, n)
	for i := range out {
		x = (a*x + c) % m
		out[i] = float64(x) / float64(m)
	}
	return out
}

func lcgNormals(seed int64, n int) []float64 {
	u := lcgUniforms(seed, 12*n)
	out := make([]float64, n)
	for i := range out {
		sum := 0.0
		for j := 0; j < 12; j++ {
			sum += u[12*i+j]
		}
		out[i] = sum - 6
	}
	return out
}

func genAR1(seed int64, n int, phi, constant, variance float64) []float64 {
	u := lcgUniforms(seed, n-1)
	out := make([]float64, n)
	out[0] = constant
	for i := 1; i < n; i++ {
		noise := (u[i-1] - 0.5) * 2 * math.Sqrt(variance)
		out[i] = constant + phi*(out[i-1]-constant) + noise
	}
	return out
}

func genARMA11(seed int64, n int, phi, theta float64) []float64 {
	z := lcgNormals(seed, n)
	out := make([]float64, n)
	prev := 0.0
	for i := 0; i < n; i++ {
		v := z[i] + theta*prev
		if i > 0 {
			v += phi * out[i-1]
		}
		out[i] = v
		prev = z[i]
	}
	return out
}

func genAR2(seed int64, n int, a1, a2 float64) []float64 {
	z := lcgNormals(seed, n)
	out := make([]float64, n)
	out[0], out[1] = z[0], z[1]
	for i := 2; i < n; i++ {
		out[i] = a1*out[i-1] + a2*out[i-2] + z[i]
	}
	return out
}

// presetModel builds a model with hand picked parameters so forecasts can be
// checked against closed form arithmetic.
func presetModel(t *testing.T, p, d, q int, ar, ma []float64, mean, variance float64, data, resid []float64) *Model {
	t.Helper()
	m, err := NewModel(p, d, q, 64)
	if err != nil {
		t.Fatalf("model: %v", err)
	}
	for _, v := range data {
		m.AddPoint(v)
	}
	m.arParams = ar
	m.maParams = ma
	m.mean = mean
	m.variance = variance
	m.resid = resid
	m.estimated = true
	return m
}

func TestArima_NewModelValidation(t *testing.T) {
	tests := []struct {
		name    string
		p, d, q int
		winSize int
		wantErr bool
	}{
		{"negative p", -1, 0, 0, 100, true},
		{"negative d", 0, -1, 0, 100, true},
		{"negative q", 0, 0, -1, 100, true},
		{"window below margin", 0, 0, 0, 19, true},
		{"window at margin", 0, 0, 0, 20, false},
		{"arma window too small", 1, 0, 1, 21, true},
		{"arma window at margin", 1, 0, 1, 22, false},
		{"integrated order", 2, 1, 1, 100, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m, err := NewModel(tt.p, tt.d, tt.q, tt.winSize)
			if tt.wantErr {
				if err == nil {
					t.Fatal("expected construction to fail")
				}
				return
			}
			if err != nil {
				t.Fatalf("construction failed: %v", err)
			}
			p, d, q := m.Order()
			if p != tt.p || d != tt.d || q != tt.q {
				t.Errorf("order = (%d,%d,%d), want (%d,%d,%d)", p, d, q, tt.p, tt.d, tt.q)
			}
			if m.IsEstimated() {
				t.Error("fresh model should not be estimated")
			}
		})
	}
}

func TestArima_Differencing(t *testing.T) {
	tests := []struct {
		name  string
		d     int
		input []float64
		want  []float64
	}{
		{"level passthrough", 0, []float64{1.5, 2.5, 2}, []float64{1.5, 2.5, 2}},
		{"first difference", 1, []float64{100, 101, 103, 102}, []float64{1, 2, -1}},
		{"second difference flattens a quadratic", 2, []float64{1, 4, 9, 16, 25}, []float64{2, 2, 2}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m, err := NewModel(0, tt.d, 0, 64)
			if err != nil {
				t.Fatalf("model: %v", err)
			}
			for _, v := range tt.input {
				m.AddPoint(v)
			}
			got := m.diffData.Data()
			if len(got) != len(tt.want) {
				t.Fatalf("len = %d, want %d", len(got), len(tt.want))
			}
			for i := range got {
				if math.Abs(got[i]-tt.want[i]) > 1e-12 {
					t.Errorf("diff[%d] = %v, want %v", i, got[i], tt.want[i])
				}
			}
		})
	}
}

func TestArima_ShouldReestimate(t *testing.T) {
	m, err := NewModel(0, 0, 0, 20)
	if err != nil {
		t.Fatalf("model: %v", err)
	}

	values := lcgUniforms(3, 40)
	for i := 0; i < 19; i++ {
		m.AddPoint(values[i])
		if m.ShouldReestimate() {
			t.Fatalf("requested estimation after %d points", i+1)
		}
	}
	m.AddPoint(values[19])
	if !m.ShouldReestimate() {
		t.Fatal("full window should request the first estimation")
	}

	if err := m.Estimate(); err != nil {
		t.Fatalf("estimate: %v", err)
	}
	if m.ShouldReestimate() {
		t.Fatal("estimation should clear the counter")
	}

	for i := 20; i < 39; i++ {
		m.AddPoint(values[i])
		if m.ShouldReestimate() {
			t.Fatalf("requested estimation after %d new points", i-19)
		}
	}
	m.AddPoint(values[39])
	if !m.ShouldReestimate() {
		t.Fatal("a full window of new points should request re-estimation")
	}
}

func TestArima_EstimateAR1(t *testing.T) {
	data := genAR1(42, 300, 0.6, 5.0, 1.0)
	for i, want := range map[int]float64{0: 5.0, 1: 4.504690349568, 299: 5.023213864934} {
		if math.Abs(data[i]-want) > 1e-9 {
			t.Fatalf("generator drifted at %d: got %v, want %v", i, data[i], want)
		}
	}

	m, err := NewModel(1, 0, 0, len(data))
	if err != nil {
		t.Fatalf("model: %v", err)
	}
	for _, v := range data {
		m.AddPoint(v)
	}
	if !m.ShouldReestimate() {
		t.Fatal("full window should request estimation")
	}
	if err := m.Estimate(); err != nil {
		t.Fatalf("estimate: %v", err)
	}

	ar := m.ARParams()
	if len(ar) != 1 || math.Abs(ar[0]-0.619083013980) > 1e-3 {
		t.Errorf("phi = %v, want 0.619083", ar)
	}
	if got := m.Mean(); math.Abs(got-5.083635255783) > 1e-9 {
		t.Errorf("mean = %v, want 5.083635255783", got)
	}
	if got := m.Variance(); math.Abs(got-0.335877712119) > 1e-4 {
		t.Errorf("variance = %v, want 0.335878", got)
	}
	if got := len(m.Residuals()); got != 299 {
		t.Errorf("residuals = %d, want 299", got)
	}
	if err := m.ValidateModel(); err != nil {
		t.Errorf("validate: %v", err)
	}

	diag := m.Diagnostics()
	if !diag.IsStationary {
		t.Error("fitted model should be stationary")
	}
	if diag.Iterations <= 0 {
		t.Errorf("iterations = %d, want > 0", diag.Iterations)
	}
	if diag.BIC <= diag.AIC {
		t.Errorf("bic %v should exceed aic %v", diag.BIC, diag.AIC)
	}
	if diag.LjungBoxPValue <= 0.01 {
		t.Errorf("ljung-box p = %v, want > 0.01", diag.LjungBoxPValue)
	}
	if diag.JarqueBeraPValue >= 0.01 {
		t.Errorf("jarque-bera p = %v, want < 0.01 for uniform innovations", diag.JarqueBeraPValue)
	}
	t.Logf("ar(1): phi=%.6f mean=%.6f variance=%.6f aic=%.2f", ar[0], m.Mean(), m.Variance(), diag.AIC)
}

func TestArima_EstimateARMA11(t *testing.T) {
	data := genARMA11(21, 500, 0.5, 0.3)
	for i, want := range map[int]float64{0: -1.527876407374, 1: -1.013465736900, 499: -1.145170045201} {
		if math.Abs(data[i]-want) > 1e-9 {
			t.Fatalf("generator drifted at %d: got %v, want %v", i, data[i], want)
		}
	}

	m, err := NewModel(1, 0, 1, len(data))
	if err != nil {
		t.Fatalf("model: %v", err)
	}
	for _, v := range data {
		m.AddPoint(v)
	}
	if err := m.Estimate(); err != nil {
		t.Fatalf("estimate: %v", err)
	}

	phi := m.ARParams()[0]
	theta := m.MAParams()[0]
	if math.Abs(phi-0.540388241) > 0.02 {
		t.Errorf("phi = %v, want about 0.540", phi)
	}
	if math.Abs(theta-0.220134530) > 0.02 {
		t.Errorf("theta = %v, want about 0.220", theta)
	}
	if got := m.Mean(); math.Abs(got-0.165991079449) > 1e-9 {
		t.Errorf("mean = %v, want 0.165991079449", got)
	}
	if got := m.Variance(); math.Abs(got-1.033068818) > 0.01 {
		t.Errorf("variance = %v, want about 1.033", got)
	}

	diag := m.Diagnostics()
	if math.Abs(diag.LogLikelihood-(-716.167513)) > 0.5 {
		t.Errorf("log likelihood = %v, want about -716.17", diag.LogLikelihood)
	}
	if math.Abs(diag.AIC-1440.335026) > 1.0 {
		t.Errorf("aic = %v, want about 1440.34", diag.AIC)
	}
	n, k := 499.0, 4.0
	if gap := diag.BIC - diag.AIC; math.Abs(gap-k*(math.Log(n)-2)) > 1e-9 {
		t.Errorf("bic-aic gap = %v, want %v", gap, k*(math.Log(n)-2))
	}
	if gap := diag.AICC - diag.AIC; math.Abs(gap-2*k*(k+1)/(n-k-1)) > 1e-9 {
		t.Errorf("aicc-aic gap = %v, want %v", gap, 2*k*(k+1)/(n-k-1))
	}
	if math.Abs(diag.RMSE-1.016399930) > 0.01 {
		t.Errorf("rmse = %v, want about 1.016", diag.RMSE)
	}
	if math.Abs(diag.MAE-0.821376347) > 0.01 {
		t.Errorf("mae = %v, want about 0.821", diag.MAE)
	}
	if math.IsNaN(diag.MAPE) || diag.MAPE <= 0 {
		t.Errorf("mape = %v, want finite positive", diag.MAPE)
	}
	if err := m.ValidateModel(); err != nil {
		t.Errorf("validate: %v", err)
	}
	t.Logf("arma(1,1): phi=%.6f theta=%.6f variance=%.6f ll=%.4f", phi, theta, m.Variance(), diag.LogLikelihood)
}

func TestArima_EstimateMaximumLikelihood(t *testing.T) {
	data := genARMA11(21, 500, 0.5, 0.3)

	fit := func() *Model {
		m, err := NewModel(1, 0, 1, len(data), WithEstimationMethod(MaximumLikelihood))
		if err != nil {
			t.Fatalf("model: %v", err)
		}
		for _, v := range data {
			m.AddPoint(v)
		}
		if err := m.Estimate(); err != nil {
			t.Fatalf("estimate: %v", err)
		}
		return m
	}

	m := fit()
	if got := m.Mean(); math.Abs(got-0.165991079449) > 0.05 {
		t.Errorf("profiled mean = %v, want near 0.166", got)
	}
	if phi := m.ARParams()[0]; math.Abs(phi-0.540388) > 0.05 {
		t.Errorf("phi = %v, want near 0.540", phi)
	}
	if theta := m.MAParams()[0]; math.Abs(theta-0.220135) > 0.06 {
		t.Errorf("theta = %v, want near 0.220", theta)
	}

	again := fit()
	if m.ARParams()[0] != again.ARParams()[0] || m.Mean() != again.Mean() {
		t.Error("repeated maximum likelihood estimation diverged")
	}
}

func TestArima_EstimateWithoutConstant(t *testing.T) {
	data := genARMA11(21, 500, 0.5, 0.3)

	m, err := NewModel(1, 0, 1, len(data), WithConstant(false))
	if err != nil {
		t.Fatalf("model: %v", err)
	}
	for _, v := range data {
		m.AddPoint(v)
	}
	if err := m.Estimate(); err != nil {
		t.Fatalf("estimate: %v", err)
	}

	if got := m.Mean(); got != 0 {
		t.Errorf("mean = %v, want exactly 0", got)
	}
	if phi := m.ARParams()[0]; math.Abs(phi-0.549494441) > 0.03 {
		t.Errorf("phi = %v, want about 0.549", phi)
	}
	if theta := m.MAParams()[0]; math.Abs(theta-0.215035888) > 0.03 {
		t.Errorf("theta = %v, want about 0.215", theta)
	}
	if got := m.Variance(); math.Abs(got-1.037071276) > 0.01 {
		t.Errorf("variance = %v, want about 1.037", got)
	}
}

func TestArima_EstimateDeterminism(t *testing.T) {
	data := genARMA11(21, 500, 0.5, 0.3)

	fit := func() *Model {
		m, err := NewModel(1, 0, 1, len(data))
		if err != nil {
			t.Fatalf("model: %v", err)
		}
		for _, v := range data {
			m.AddPoint(v)
		}
		if err := m.Estimate(); err != nil {
			t.Fatalf("estimate: %v", err)
		}
		return m
	}

	a, b := fit(), fit()
	if a.ARParams()[0] != b.ARParams()[0] || a.MAParams()[0] != b.MAParams()[0] {
		t.Error("coefficients differ between runs")
	}
	if a.Mean() != b.Mean() || a.Variance() != b.Variance() {
		t.Error("mean or variance differs between runs")
	}
	if a.Diagnostics().AIC != b.Diagnostics().AIC {
		t.Error("criteria differ between runs")
	}
}

func TestArima_RollingReestimate(t *testing.T) {
	data := genAR1(42, 300, 0.6, 5.0, 1.0)

	m, err := NewModel(1, 0, 0, 100)
	if err != nil {
		t.Fatalf("model: %v", err)
	}
	for _, v := range data[:100] {
		m.AddPoint(v)
	}
	if !m.ShouldReestimate() {
		t.Fatal("first full window should request estimation")
	}
	if err := m.Estimate(); err != nil {
		t.Fatalf("first estimate: %v", err)
	}
	if got := m.ARParams()[0]; math.Abs(got-0.628123359) > 0.01 {
		t.Errorf("first window phi = %v, want 0.628", got)
	}
	if got := m.Mean(); math.Abs(got-5.037817038) > 1e-9 {
		t.Errorf("first window mean = %v, want 5.037817038", got)
	}

	for _, v := range data[100:200] {
		m.AddPoint(v)
	}
	if !m.ShouldReestimate() {
		t.Fatal("second full window should request re-estimation")
	}
	if err := m.Estimate(); err != nil {
		t.Fatalf("second estimate: %v", err)
	}
	if got := m.ARParams()[0]; math.Abs(got-0.695871184) > 0.01 {
		t.Errorf("second window phi = %v, want 0.696", got)
	}
	if got := m.Mean(); math.Abs(got-5.089205083) > 1e-9 {
		t.Errorf("second window mean = %v, want 5.089205083", got)
	}
}

func TestArima_EstimateInsufficientData(t *testing.T) {
	tests := []struct {
		name string
		p, q int
		feed int
		need int
	}{
		{"mean only", 0, 0, 10, 20},
		{"arma", 2, 1, 15, 23},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m, err := NewModel(tt.p, 0, tt.q, 64)
			if err != nil {
				t.Fatalf("model: %v", err)
			}
			for _, v := range lcgUniforms(7, tt.feed) {
				m.AddPoint(v)
			}

			err = m.Estimate()
			var insufficient *timeseries.InsufficientDataError
			if !errors.As(err, &insufficient) {
				t.Fatalf("got %v, want *timeseries.InsufficientDataError", err)
			}
			if insufficient.Need != tt.need || insufficient.Got != tt.feed {
				t.Errorf("need %d got %d, want need %d got %d",
					insufficient.Need, insufficient.Got, tt.need, tt.feed)
			}
			if m.IsEstimated() {
				t.Error("failed estimation should not mark the model estimated")
			}
		})
	}
}

func TestArima_ValidateModel(t *testing.T) {
	data := lcgNormals(5, 40)

	m, err := NewModel(1, 0, 0, 64)
	if err != nil {
		t.Fatalf("model: %v", err)
	}
	if err := m.ValidateModel(); !errors.Is(err, ErrModelNotEstimated) {
		t.Errorf("unestimated: got %v, want ErrModelNotEstimated", err)
	}

	explosive := presetModel(t, 1, 0, 0, []float64{1.2}, nil, 0, 1, data, []float64{0.1})
	if explosive.ValidateModel() == nil {
		t.Error("explosive ar polynomial should fail validation")
	}

	noninvertible := presetModel(t, 0, 0, 1, nil, []float64{1.5}, 0, 1, data, []float64{0.1})
	if noninvertible.ValidateModel() == nil {
		t.Error("non-invertible ma polynomial should fail validation")
	}

	autocorrelated := presetModel(t, 1, 0, 0, []float64{0.5}, nil, 0, 1, data, []float64{0.1})
	autocorrelated.diagnostics.LjungBoxPValue = 0.001
	if autocorrelated.ValidateModel() == nil {
		t.Error("autocorrelated residuals should fail validation")
	}

	clean := presetModel(t, 1, 0, 0, []float64{0.5}, nil, 0, 1, data, []float64{0.1})
	clean.diagnostics.LjungBoxPValue = math.NaN()
	if err := clean.ValidateModel(); err != nil {
		t.Errorf("nan ljung-box p-value should be skipped: %v", err)
	}
}

func TestArima_Forecast(t *testing.T) {
	t.Run("ar(1) reverts to the mean", func(t *testing.T) {
		m := presetModel(t, 1, 0, 0, []float64{0.5}, nil, 11, 1,
			[]float64{10, 12, 11}, []float64{0.5, -0.5})

		out, err := m.Forecast(2)
		if err != nil {
			t.Fatalf("forecast: %v", err)
		}
		if len(out) != 2 {
			t.Fatalf("len = %d, want 2", len(out))
		}

		h1 := out[0]
		if math.Abs(h1.PointForecast-11) > 1e-12 {
			t.Errorf("h1 point = %v, want 11", h1.PointForecast)
		}
		if math.Abs(h1.StandardError-1) > 1e-12 {
			t.Errorf("h1 se = %v, want 1", h1.StandardError)
		}
		ci := h1.ConfidenceInterval
		if math.Abs(ci.Lower95-9.040036015460) > 1e-9 || math.Abs(ci.Upper95-12.959963984540) > 1e-9 {
			t.Errorf("h1 ci95 = [%v, %v], want [9.040036, 12.959964]", ci.Lower95, ci.Upper95)
		}
		pi := h1.PredictionInterval
		if math.Abs(pi.Lower95-8.599544161822) > 1e-9 || math.Abs(pi.Upper95-13.400455838178) > 1e-9 {
			t.Errorf("h1 pi95 = [%v, %v], want [8.599544, 13.400456]", pi.Lower95, pi.Upper95)
		}

		h2 := out[1]
		if math.Abs(h2.PointForecast-11) > 1e-12 {
			t.Errorf("h2 point = %v, want 11", h2.PointForecast)
		}
		if math.Abs(h2.StandardError-1.118033988750) > 1e-9 {
			t.Errorf("h2 se = %v, want 1.118034", h2.StandardError)
		}
		if math.Abs(h2.ConfidenceInterval.Lower80-9.567181791385) > 1e-9 {
			t.Errorf("h2 ci80 lower = %v, want 9.567182", h2.ConfidenceInterval.Lower80)
		}
	})

	t.Run("ma(1) carries the last shock one step", func(t *testing.T) {
		m := presetModel(t, 0, 0, 1, nil, []float64{0.3}, 11, 1,
			[]float64{10, 12, 11}, []float64{0.1, -0.4, 0.2})

		out, err := m.Forecast(2)
		if err != nil {
			t.Fatalf("forecast: %v", err)
		}
		if math.Abs(out[0].PointForecast-11.06) > 1e-12 {
			t.Errorf("h1 point = %v, want 11.06", out[0].PointForecast)
		}
		if math.Abs(out[0].StandardError-1) > 1e-12 {
			t.Errorf("h1 se = %v, want 1", out[0].StandardError)
		}
		if math.Abs(out[1].PointForecast-11) > 1e-12 {
			t.Errorf("h2 point = %v, want 11", out[1].PointForecast)
		}
		if math.Abs(out[1].StandardError-1.044030650891) > 1e-9 {
			t.Errorf("h2 se = %v, want 1.044031", out[1].StandardError)
		}
		if math.Abs(out[1].PredictionInterval.Upper80-12.544965204576) > 1e-9 {
			t.Errorf("h2 pi80 upper = %v, want 12.544965", out[1].PredictionInterval.Upper80)
		}
	})

	t.Run("first difference integrates the path", func(t *testing.T) {
		m := presetModel(t, 1, 1, 0, []float64{0.5}, nil, 1.5, 1,
			[]float64{100, 101, 103}, []float64{0.5})

		out, err := m.Forecast(2)
		if err != nil {
			t.Fatalf("forecast: %v", err)
		}
		if math.Abs(out[0].PointForecast-104.75) > 1e-12 {
			t.Errorf("h1 point = %v, want 104.75", out[0].PointForecast)
		}
		if math.Abs(out[0].StandardError-1) > 1e-12 {
			t.Errorf("h1 se = %v, want 1", out[0].StandardError)
		}
		if math.Abs(out[1].PointForecast-106.375) > 1e-12 {
			t.Errorf("h2 point = %v, want 106.375", out[1].PointForecast)
		}
		if math.Abs(out[1].StandardError-1.802775637732) > 1e-9 {
			t.Errorf("h2 se = %v, want 1.802776", out[1].StandardError)
		}
		if math.Abs(out[1].ConfidenceInterval.Upper95-109.908375322161) > 1e-9 {
			t.Errorf("h2 ci95 upper = %v, want 109.908375", out[1].ConfidenceInterval.Upper95)
		}
	})
}

func TestArima_ForecastProperties(t *testing.T) {
	data := genAR1(42, 300, 0.6, 5.0, 1.0)

	m, err := NewModel(1, 0, 0, len(data))
	if err != nil {
		t.Fatalf("model: %v", err)
	}
	for _, v := range data {
		m.AddPoint(v)
	}
	if err := m.Estimate(); err != nil {
		t.Fatalf("estimate: %v", err)
	}

	out, err := m.Forecast(10)
	if err != nil {
		t.Fatalf("forecast: %v", err)
	}

	for i := 1; i < len(out); i++ {
		if out[i].StandardError < out[i-1].StandardError-1e-12 {
			t.Errorf("standard error shrank from step %d to %d", i, i+1)
		}
	}
	mean := m.Mean()
	if math.Abs(out[9].PointForecast-mean) >= math.Abs(out[0].PointForecast-mean) {
		t.Error("long horizon forecast should drift toward the mean")
	}
	for i, f := range out {
		ci, pi := f.ConfidenceInterval, f.PredictionInterval
		if !(ci.Lower95 < ci.Lower80 && ci.Lower80 < f.PointForecast &&
			f.PointForecast < ci.Upper80 && ci.Upper80 < ci.Upper95) {
			t.Errorf("interval nesting broken at step %d", i+1)
		}
		if !(pi.Lower95 < ci.Lower95 && pi.Upper95 > ci.Upper95) {
			t.Errorf("prediction interval should contain the confidence interval at step %d", i+1)
		}
	}
}

func TestArima_ForecastErrors(t *testing.T) {
	m, err := NewModel(1, 0, 0, 64)
	if err != nil {
		t.Fatalf("model: %v", err)
	}

	if _, err := m.Forecast(0); !errors.Is(err, ErrInvalidHorizon) {
		t.Errorf("zero horizon: got %v, want ErrInvalidHorizon", err)
	}
	if _, err := m.Forecast(-3); !errors.Is(err, ErrInvalidHorizon) {
		t.Errorf("negative horizon: got %v, want ErrInvalidHorizon", err)
	}
	if _, err := m.Forecast(5); !errors.Is(err, ErrModelNotEstimated) {
		t.Errorf("unestimated: got %v, want ErrModelNotEstimated", err)
	}
}

func TestArima_ForecastTable(t *testing.T) {
	m := presetModel(t, 1, 0, 0, []float64{0.5}, nil, 11, 1,
		[]float64{10, 12, 11}, []float64{0.5, -0.5})

	table, err := m.ForecastTable([]int{3, 1})
	if err != nil {
		t.Fatalf("forecast table: %v", err)
	}
	if len(table) != 2 {
		t.Fatalf("len = %d, want 2", len(table))
	}

	full, err := m.Forecast(3)
	if err != nil {
		t.Fatalf("forecast: %v", err)
	}
	if table[1] != full[0] || table[3] != full[2] {
		t.Error("table entries should match the corresponding forecast steps")
	}

	if _, err := m.ForecastTable(nil); !errors.Is(err, ErrInvalidHorizon) {
		t.Errorf("empty horizons: got %v, want ErrInvalidHorizon", err)
	}
	if _, err := m.ForecastTable([]int{2, 0}); !errors.Is(err, ErrInvalidHorizon) {
		t.Errorf("zero horizon: got %v, want ErrInvalidHorizon", err)
	}
}

func TestArima_PsiWeights(t *testing.T) {
	tests := []struct {
		name    string
		p, d, q int
		ar, ma  []float64
		want    []float64
	}{
		{"pure ar decays geometrically", 1, 0, 0, []float64{0.6}, nil, []float64{1, 0.6, 0.36}},
		{"arma mixes both polynomials", 1, 0, 1, []float64{0.5}, []float64{0.3}, []float64{1, 0.8, 0.4}},
		{"integration accumulates", 1, 1, 0, []float64{0.5}, nil, []float64{1, 1.5, 1.75}},
		{"white noise", 0, 0, 0, nil, nil, []float64{1, 0, 0}},
		{"random walk", 0, 1, 0, nil, nil, []float64{1, 1, 1}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := &Model{p: tt.p, d: tt.d, q: tt.q, arParams: tt.ar, maParams: tt.ma}
			got := m.psiWeights(len(tt.want))
			for i := range got {
				if math.Abs(got[i]-tt.want[i]) > 1e-12 {
					t.Errorf("psi[%d] = %v, want %v", i, got[i], tt.want[i])
				}
			}
		})
	}
}
