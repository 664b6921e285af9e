package middleware

import (
	"context"
	"time"

	"github.com/peter-kozarec/aphelion/pkg/bus"
	"github.com/peter-kozarec/aphelion/pkg/common"
	"go.uber.org/zap"
)

type Performance struct {
	logger *zap.Logger

	barEventCounter        int64
	returnEventCounter     int64
	volatilityEventCounter int64
	forecastEventCounter   int64
	exceedanceEventCounter int64

	totalBarHandlerDur        time.Duration
	totalReturnHandlerDur     time.Duration
	totalVolatilityHandlerDur time.Duration
	totalForecastHandlerDur   time.Duration
	totalExceedanceHandlerDur time.Duration
}

func NewPerformance(logger *zap.Logger) *Performance {
	return &Performance{
		logger: logger,
	}
}

func (p *Performance) WithBar(handler bus.BarEventHandler) bus.BarEventHandler {
	return func(ctx context.Context, bar common.Bar) {
		startTime := time.Now()
		handler(ctx, bar)
		p.totalBarHandlerDur += time.Since(startTime)
		p.barEventCounter++
	}
}

func (p *Performance) WithReturn(handler bus.ReturnEventHandler) bus.ReturnEventHandler {
	return func(ctx context.Context, ret common.Return) {
		startTime := time.Now()
		handler(ctx, ret)
		p.totalReturnHandlerDur += time.Since(startTime)
		p.returnEventCounter++
	}
}

func (p *Performance) WithVolatility(handler bus.VolatilityEventHandler) bus.VolatilityEventHandler {
	return func(ctx context.Context, vol common.Volatility) {
		startTime := time.Now()
		handler(ctx, vol)
		p.totalVolatilityHandlerDur += time.Since(startTime)
		p.volatilityEventCounter++
	}
}

func (p *Performance) WithForecast(handler bus.ForecastEventHandler) bus.ForecastEventHandler {
	return func(ctx context.Context, fc common.Forecast) {
		startTime := time.Now()
		handler(ctx, fc)
		p.totalForecastHandlerDur += time.Since(startTime)
		p.forecastEventCounter++
	}
}

func (p *Performance) WithExceedance(handler bus.ExceedanceEventHandler) bus.ExceedanceEventHandler {
	return func(ctx context.Context, exc common.Exceedance) {
		startTime := time.Now()
		handler(ctx, exc)
		p.totalExceedanceHandlerDur += time.Since(startTime)
		p.exceedanceEventCounter++
	}
}

func (p *Performance) PrintStatistics() {
	var fields []zap.Field

	if p.barEventCounter > 0 {
		fields = append(fields,
			zap.Int64("bar_events", p.barEventCounter),
			zap.Duration("bar_avg_duration", p.totalBarHandlerDur/time.Duration(p.barEventCounter)),
			zap.Duration("bar_total_duration", p.totalBarHandlerDur))
	}

	if p.returnEventCounter > 0 {
		fields = append(fields,
			zap.Int64("return_events", p.returnEventCounter),
			zap.Duration("return_avg_duration", p.totalReturnHandlerDur/time.Duration(p.returnEventCounter)),
			zap.Duration("return_total_duration", p.totalReturnHandlerDur))
	}

	if p.volatilityEventCounter > 0 {
		fields = append(fields,
			zap.Int64("volatility_events", p.volatilityEventCounter),
			zap.Duration("volatility_avg_duration", p.totalVolatilityHandlerDur/time.Duration(p.volatilityEventCounter)),
			zap.Duration("volatility_total_duration", p.totalVolatilityHandlerDur))
	}

	if p.forecastEventCounter > 0 {
		fields = append(fields,
			zap.Int64("forecast_events", p.forecastEventCounter),
			zap.Duration("forecast_avg_duration", p.totalForecastHandlerDur/time.Duration(p.forecastEventCounter)),
			zap.Duration("forecast_total_duration", p.totalForecastHandlerDur))
	}

	if p.exceedanceEventCounter > 0 {
		fields = append(fields,
			zap.Int64("exceedance_events", p.exceedanceEventCounter),
			zap.Duration("exceedance_avg_duration", p.totalExceedanceHandlerDur/time.Duration(p.exceedanceEventCounter)),
			zap.Duration("exceedance_total_duration", p.totalExceedanceHandlerDur))
	}

	p.logger.Info("performance statistics", fields...)
}
