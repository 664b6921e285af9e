package risk

import (
	"fmt"
	"math"

	"github.com/peter-kozarec/aphelion/pkg/dist"
	"github.com/peter-kozarec/aphelion/pkg/timeseries"
)

// ValueAtRisk scales the left-tail alpha quantile of the innovation
// distribution by the conditional volatility path. The result keeps the
// timestamp index of sigma, and VaR(t) is derived from sigma(t) only; any
// one-step-ahead shifting is the caller's concern. Values are signed
// returns, negative for alpha < 0.5.
func ValueAtRisk(sigma *timeseries.Series, innov dist.Innovation, alpha float64) (*timeseries.Series, error) {
	if err := validate(sigma, alpha); err != nil {
		return nil, err
	}
	q := innov.Quantile(alpha)
	values := make([]float64, sigma.Len())
	for i := range values {
		values[i] = q * sigma.Value(i)
	}
	return sigma.WithValues(seriesName("VaR", alpha), values)
}

// ExpectedShortfall scales the tail expectation E[X | X < q_alpha] by the
// conditional volatility path. Propagates *dist.InvalidParameterError when
// the tail expectation is undefined for the innovation (Student-t dof <= 1).
func ExpectedShortfall(sigma *timeseries.Series, innov dist.Innovation, alpha float64) (*timeseries.Series, error) {
	if err := validate(sigma, alpha); err != nil {
		return nil, err
	}
	tail, err := innov.TailExpectation(alpha)
	if err != nil {
		return nil, err
	}
	values := make([]float64, sigma.Len())
	for i := range values {
		values[i] = tail * sigma.Value(i)
	}
	return sigma.WithValues(seriesName("ES", alpha), values)
}

// Forecast pairs the aligned VaR and ES series computed from one
// conditional volatility path at one confidence level.
type Forecast struct {
	Alpha float64
	VaR   *timeseries.Series
	ES    *timeseries.Series
}

func NewForecast(sigma *timeseries.Series, innov dist.Innovation, alpha float64) (*Forecast, error) {
	varSeries, err := ValueAtRisk(sigma, innov, alpha)
	if err != nil {
		return nil, err
	}
	esSeries, err := ExpectedShortfall(sigma, innov, alpha)
	if err != nil {
		return nil, err
	}
	return &Forecast{Alpha: alpha, VaR: varSeries, ES: esSeries}, nil
}

func validate(sigma *timeseries.Series, alpha float64) error {
	if math.IsNaN(alpha) || alpha <= 0 || alpha >= 1 {
		return &dist.InvalidParameterError{Name: "alpha", Value: alpha, Reason: "must be in (0, 1)"}
	}
	for i := 0; i < sigma.Len(); i++ {
		if v := sigma.Value(i); v < 0 || math.IsNaN(v) {
			return &InvalidInputError{Index: i, Value: v}
		}
	}
	return nil
}

// seriesName renders the confidence level, so alpha 0.05 yields "VaR95".
func seriesName(prefix string, alpha float64) string {
	return fmt.Sprintf("%s%d", prefix, int(math.Round((1-alpha)*100)))
}
