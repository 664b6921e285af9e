package backtest

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/peter-kozarec/aphelion/pkg/bus"
	"github.com/peter-kozarec/aphelion/pkg/common"
	"github.com/peter-kozarec/aphelion/pkg/timeseries"
	"github.com/peter-kozarec/aphelion/pkg/utility"
)

const (
	auditComponentName = "backtest.audit"
)

// Audit pairs each realized return with the VaR forecast issued one step
// earlier and accumulates the coverage record of a streaming run. Returns
// arriving without a pending forecast are dropped, so a stream of n returns
// is audited over n-1 observations. Every breach is posted as an exceedance
// event the moment it is observed.
type Audit struct {
	logger *zap.Logger
	router *bus.Router

	series string
	alpha  float64

	pending    common.Forecast
	hasPending bool

	times       []time.Time
	returns     []float64
	thresholds  []float64
	exceedances []common.Exceedance
}

func NewAudit(logger *zap.Logger, router *bus.Router, series string, alpha float64) *Audit {
	return &Audit{
		logger: logger,
		router: router,
		series: series,
		alpha:  alpha,
	}
}

// OnForecast arms the audit for the next return. A later forecast replaces
// an unconsumed one.
func (a *Audit) OnForecast(_ context.Context, forecast common.Forecast) {
	a.pending = forecast
	a.hasPending = true
}

// OnReturn resolves the pending forecast against the realized return. Each
// forecast is consumed once.
func (a *Audit) OnReturn(_ context.Context, r common.Return) {
	if !a.hasPending {
		return
	}
	forecast := a.pending
	a.hasPending = false

	a.times = append(a.times, r.TimeStamp)
	a.returns = append(a.returns, r.Value)
	a.thresholds = append(a.thresholds, forecast.VaR)

	if r.Value >= forecast.VaR {
		return
	}

	exceedance := common.Exceedance{
		Source:      auditComponentName,
		Symbol:      r.Symbol,
		ExecutionID: utility.GetExecutionID(),
		TraceID:     utility.CreateTraceID(),
		TimeStamp:   r.TimeStamp,
		Return:      r.Value,
		VaR:         forecast.VaR,
		Confidence:  forecast.Confidence,
	}
	a.exceedances = append(a.exceedances, exceedance)

	if err := a.router.Post(bus.ExceedanceEvent, exceedance); err != nil {
		a.logger.Warn("unable to post exceedance event", zap.Error(err))
	}
}

// Observations is the number of audited return-forecast pairs so far.
func (a *Audit) Observations() int {
	return len(a.returns)
}

// Exceedances returns the recorded breaches. Callers must not modify the
// slice.
func (a *Audit) Exceedances() []common.Exceedance {
	return a.exceedances
}

// GenerateReport runs both coverage tests over the audited observations. The
// indicator sequence is rebuilt through the same path the batch tests use, so
// a streamed run and a batch run over identical data produce identical
// reports.
func (a *Audit) GenerateReport() (*Report, error) {
	returns, err := timeseries.New(a.series, a.times, a.returns)
	if err != nil {
		return nil, err
	}
	thresholds, err := returns.WithValues(a.series+" var", a.thresholds)
	if err != nil {
		return nil, err
	}
	seq, err := Exceedances(returns, thresholds)
	if err != nil {
		return nil, err
	}
	return NewReport(a.series, seq, a.alpha)
}
