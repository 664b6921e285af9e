package risk

import (
	"context"
	"math"

	"go.uber.org/zap"

	"github.com/peter-kozarec/aphelion/pkg/bus"
	"github.com/peter-kozarec/aphelion/pkg/common"
	"github.com/peter-kozarec/aphelion/pkg/dist"
	"github.com/peter-kozarec/aphelion/pkg/models/egarch"
	"github.com/peter-kozarec/aphelion/pkg/utility"
)

const (
	monitorComponentName = "risk.monitor"
)

// Monitor runs a fitted volatility model over a stream of return events. For
// every return it posts the conditional volatility of that observation and a
// one-step-ahead forecast carrying VaR and ES at the configured level. The
// quantile and tail factor are fixed at construction, so each forecast is one
// multiplication per measure.
type Monitor struct {
	logger *zap.Logger
	router *bus.Router

	state    *egarch.State
	alpha    float64
	quantile float64
	tail     float64
}

// NewMonitor seeds the recursion from the calibration sample the parameters
// were fitted on. Streaming that same sample reproduces the fitted volatility
// path event by event.
func NewMonitor(logger *zap.Logger, router *bus.Router, params egarch.Params, innov dist.Innovation, alpha float64, calibration []float64) (*Monitor, error) {
	if math.IsNaN(alpha) || alpha <= 0 || alpha >= 1 {
		return nil, &dist.InvalidParameterError{Name: "alpha", Value: alpha, Reason: "must be in (0, 1)"}
	}
	tail, err := innov.TailExpectation(alpha)
	if err != nil {
		return nil, err
	}
	return &Monitor{
		logger:   logger,
		router:   router,
		state:    params.NewState(innov, calibration),
		alpha:    alpha,
		quantile: innov.Quantile(alpha),
		tail:     tail,
	}, nil
}

func (m *Monitor) OnReturn(_ context.Context, r common.Return) {
	sigma := m.state.Sigma()

	if err := m.router.Post(bus.VolatilityEvent, common.Volatility{
		Source:      monitorComponentName,
		Symbol:      r.Symbol,
		ExecutionID: utility.GetExecutionID(),
		TraceID:     utility.CreateTraceID(),
		TimeStamp:   r.TimeStamp,
		Sigma:       sigma,
	}); err != nil {
		m.logger.Warn("unable to post volatility event", zap.Error(err))
	}

	next := m.state.Advance(r.Value)

	if err := m.router.Post(bus.ForecastEvent, common.Forecast{
		Source:      monitorComponentName,
		Symbol:      r.Symbol,
		ExecutionID: utility.GetExecutionID(),
		TraceID:     utility.CreateTraceID(),
		TimeStamp:   r.TimeStamp,
		Horizon:     1,
		Sigma:       next,
		VaR:         m.quantile * next,
		ES:          m.tail * next,
		Confidence:  1 - m.alpha,
	}); err != nil {
		m.logger.Warn("unable to post forecast event", zap.Error(err))
	}
}
