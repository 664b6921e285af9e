package egarch

import (
	"math"

	"gonum.org/v1/gonum/optimize"

	"github.com/peter-kozarec/aphelion/pkg/dist"
	"github.com/peter-kozarec/aphelion/pkg/timeseries"
)

const (
	DefaultMaxIterations   = 2000
	DefaultMinObservations = 30

	// RecommendedObservations is the sample length below which the tail
	// parameters of the Student-t family are weakly identified. Fit accepts
	// shorter samples down to the configured minimum.
	RecommendedObservations = 250

	convergenceTolerance = 1e-8
	convergencePatience  = 50
)

// Model estimates a constant-mean EGARCH(1,1) process by maximum
// likelihood. The default innovation family is Student-t.
type Model struct {
	family          dist.Family
	maxIterations   int
	minObservations int
}

func NewModel(options ...ModelOption) *Model {
	m := &Model{
		family:          dist.FamilyStudentT,
		maxIterations:   DefaultMaxIterations,
		minObservations: DefaultMinObservations,
	}
	for _, option := range options {
		option(m)
	}
	return m
}

// Fitted is the result of a maximum likelihood estimation. Volatility and
// Residuals share the timestamp index of the fitted return series, one
// conditional sigma and one standardized residual per observation.
type Fitted struct {
	Params     Params
	Innovation dist.Innovation

	Volatility *timeseries.Series
	Residuals  *timeseries.Series

	LogLikelihood float64
	AIC           float64
	BIC           float64

	Iterations      int
	FuncEvaluations int
}

// Fit estimates the model on a log return series. Estimation starts from a
// deterministic initial point, so repeated fits of the same series yield
// identical results. Returns *timeseries.InsufficientDataError when the
// sample is shorter than the configured minimum and *ConvergenceError when
// the optimizer stops without converging.
func (m *Model) Fit(returns *timeseries.Series) (*Fitted, error) {
	if returns.Len() < m.minObservations {
		return nil, &timeseries.InsufficientDataError{Op: "egarch fit", Need: m.minObservations, Got: returns.Len()}
	}

	values := returns.Values()
	problem := optimize.Problem{
		Func: func(x []float64) float64 {
			return negLogLikelihood(values, x, m.family)
		},
	}
	settings := &optimize.Settings{
		MajorIterations: m.maxIterations,
		Converger: &optimize.FunctionConverge{
			Absolute:   convergenceTolerance,
			Iterations: convergencePatience,
		},
	}

	result, err := optimize.Minimize(problem, initialGuess(values, m.family), settings, &optimize.NelderMead{})
	if err != nil {
		return nil, &ConvergenceError{Iterations: result.MajorIterations, Status: result.Status}
	}
	if err = result.Status.Err(); err != nil {
		return nil, &ConvergenceError{Iterations: result.MajorIterations, Status: result.Status}
	}

	params, dof := decode(result.X, m.family)
	var innov dist.Innovation
	if m.family == dist.FamilyStudentT {
		st, err := dist.NewStudentT(dof)
		if err != nil {
			return nil, err
		}
		innov = st
	} else {
		innov = dist.NewNormal()
	}

	sigma := params.VolatilityPath(values, innov)
	resid := make([]float64, len(values))
	for t := range values {
		resid[t] = (values[t] - params.Mu) / sigma[t]
	}

	volatility, err := returns.WithValues(returns.Name()+" sigma", sigma)
	if err != nil {
		return nil, err
	}
	residuals, err := returns.WithValues(returns.Name()+" residuals", resid)
	if err != nil {
		return nil, err
	}

	ll := -result.F
	k := float64(paramCount(m.family))
	n := float64(returns.Len())

	return &Fitted{
		Params:          params,
		Innovation:      innov,
		Volatility:      volatility,
		Residuals:       residuals,
		LogLikelihood:   ll,
		AIC:             2*k - 2*ll,
		BIC:             k*math.Log(n) - 2*ll,
		Iterations:      result.MajorIterations,
		FuncEvaluations: result.FuncEvaluations,
	}, nil
}
