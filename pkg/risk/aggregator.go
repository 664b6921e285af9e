package risk

import (
	"context"
	"math"

	"go.uber.org/zap"

	"github.com/peter-kozarec/aphelion/pkg/bus"
	"github.com/peter-kozarec/aphelion/pkg/common"
	"github.com/peter-kozarec/aphelion/pkg/utility"
)

const (
	aggregatorComponentName = "risk.aggregator"
)

// Aggregator derives log returns from consecutive bar closes and posts them
// as return events. The first bar only primes the previous close, so a stream
// of n bars yields n-1 returns, each stamped with the later bar's timestamp.
type Aggregator struct {
	logger *zap.Logger
	router *bus.Router

	lastClose float64
	primed    bool
}

func NewAggregator(logger *zap.Logger, router *bus.Router) *Aggregator {
	return &Aggregator{
		logger: logger,
		router: router,
	}
}

// OnBar consumes one bar. Bars with a non-positive close are skipped without
// touching the previous close, so the next valid bar resumes from the last
// valid one.
func (a *Aggregator) OnBar(_ context.Context, bar common.Bar) {
	closePrice, ok := bar.Close.Float64()
	if !ok || closePrice <= 0 {
		a.logger.Warn("skipping bar with invalid close",
			zap.String("symbol", bar.Symbol),
			zap.Time("ts", bar.TimeStamp),
			zap.String("close", bar.Close.String()))
		return
	}

	if !a.primed {
		a.lastClose = closePrice
		a.primed = true
		return
	}

	value := math.Log(closePrice / a.lastClose)
	a.lastClose = closePrice

	if err := a.router.Post(bus.ReturnEvent, common.Return{
		Source:      aggregatorComponentName,
		Symbol:      bar.Symbol,
		ExecutionID: utility.GetExecutionID(),
		TraceID:     utility.CreateTraceID(),
		TimeStamp:   bar.TimeStamp,
		Value:       value,
	}); err != nil {
		a.logger.Warn("unable to post return event", zap.Error(err))
	}
}

// Reset drops the previous close so the next bar primes again, used when the
// feed switches to a different series.
func (a *Aggregator) Reset() {
	a.lastClose = 0
	a.primed = false
}
