package middleware

import (
	"context"

	"github.com/peter-kozarec/aphelion/pkg/bus"
	"github.com/peter-kozarec/aphelion/pkg/common"
	"go.uber.org/zap"
)

type MonitorFlags uint16

//goland:noinspection GoUnusedConst
const (
	MonitorNone MonitorFlags = 1 << iota
	MonitorAll
	MonitorBars
	MonitorReturns
	MonitorVolatility
	MonitorForecasts
	MonitorExceedances
)

type Monitor struct {
	logger *zap.Logger
	flags  MonitorFlags
}

func NewMonitor(logger *zap.Logger, flags MonitorFlags) *Monitor {
	return &Monitor{
		logger: logger,
		flags:  flags,
	}
}

func (m *Monitor) WithBar(handler bus.BarEventHandler) bus.BarEventHandler {
	return func(ctx context.Context, bar common.Bar) {
		if m.flags&MonitorBars != 0 || m.flags&MonitorAll != 0 {
			m.logger.Info("event", zap.Any("bar", bar))
		}
		handler(ctx, bar)
	}
}

func (m *Monitor) WithReturn(handler bus.ReturnEventHandler) bus.ReturnEventHandler {
	return func(ctx context.Context, ret common.Return) {
		if m.flags&MonitorReturns != 0 || m.flags&MonitorAll != 0 {
			m.logger.Info("event", zap.Any("return", ret))
		}
		handler(ctx, ret)
	}
}

func (m *Monitor) WithVolatility(handler bus.VolatilityEventHandler) bus.VolatilityEventHandler {
	return func(ctx context.Context, vol common.Volatility) {
		if m.flags&MonitorVolatility != 0 || m.flags&MonitorAll != 0 {
			m.logger.Info("event", zap.Any("volatility", vol))
		}
		handler(ctx, vol)
	}
}

func (m *Monitor) WithForecast(handler bus.ForecastEventHandler) bus.ForecastEventHandler {
	return func(ctx context.Context, fc common.Forecast) {
		if m.flags&MonitorForecasts != 0 || m.flags&MonitorAll != 0 {
			m.logger.Info("event", zap.Any("forecast", fc))
		}
		handler(ctx, fc)
	}
}

func (m *Monitor) WithExceedance(handler bus.ExceedanceEventHandler) bus.ExceedanceEventHandler {
	return func(ctx context.Context, exc common.Exceedance) {
		if m.flags&MonitorExceedances != 0 || m.flags&MonitorAll != 0 {
			m.logger.Info("event", zap.Any("exceedance", exc))
		}
		handler(ctx, exc)
	}
}
