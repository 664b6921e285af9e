package bus

import (
	"context"
	"errors"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/peter-kozarec/aphelion/pkg/common"
	"go.uber.org/zap"
)

type event struct {
	id   EventId
	data interface{}
}

type Router struct {
	logger *zap.Logger

	// Channels
	done   chan error
	events chan event

	// Handlers
	BarHandler        BarEventHandler
	ReturnHandler     ReturnEventHandler
	VolatilityHandler VolatilityEventHandler
	ForecastHandler   ForecastEventHandler
	ExceedanceHandler ExceedanceEventHandler

	// Statistics
	runTime       time.Duration
	postCount     atomic.Int64
	postFails     atomic.Int64
	dispatchCount atomic.Int64
	dispatchFails atomic.Int64
	loopCycles    atomic.Int64
}

func NewRouter(logger *zap.Logger, eventCapacity int) *Router {
	return &Router{
		logger: logger,
		done:   make(chan error),
		events: make(chan event, eventCapacity),
	}
}

func (router *Router) Post(id EventId, data interface{}) error {
	select {
	case router.events <- event{id, data}:
		router.postCount.Add(1)
		return nil
	default:
		router.postFails.Add(1)
		return errors.New("event capacity reached")
	}
}

func (router *Router) Exec(ctx context.Context) {
	router.resetStatistics()

	start := time.Now()
	defer func() {
		router.runTime += time.Since(start)
	}()

	for {
		select {
		case <-ctx.Done():
			router.done <- ctx.Err()
			return
		case ev := <-router.events:
			router.dispatchCount.Add(1)
			if err := router.dispatch(ctx, ev); err != nil {
				router.dispatchFails.Add(1)
				router.logger.Warn("dispatch failed",
					zap.Error(err),
					zap.Uint8("event_id", uint8(ev.id)))
			}
		}
	}
}

func (router *Router) ExecLoop(ctx context.Context, doOnce func(context.Context) error) {
	router.resetStatistics()

	start := time.Now()
	defer func() {
		router.runTime += time.Since(start)
	}()

	for {
		select {
		case <-ctx.Done():
			router.done <- ctx.Err()
			return
		case ev := <-router.events:
			router.dispatchCount.Add(1)
			if err := router.dispatch(ctx, ev); err != nil {
				router.dispatchFails.Add(1)
				router.logger.Warn("dispatch failed",
					zap.Error(err),
					zap.Uint8("event_id", uint8(ev.id)))
			}
		default:
			router.loopCycles.Add(1)
			if err := doOnce(ctx); err != nil {
				router.done <- err
				return
			}
		}
	}
}

func (router *Router) Done() <-chan error {
	return router.done
}

func (router *Router) PrintStatistics() {
	router.logger.Info("router statistics",
		zap.Duration("run_time", router.runTime),
		zap.Int64("post_count", router.postCount.Load()),
		zap.Int64("post_fails", router.postFails.Load()),
		zap.Int64("dispatch_count", router.dispatchCount.Load()),
		zap.Int64("dispatch_fails", router.dispatchFails.Load()),
		zap.Int64("loop_cycles", router.loopCycles.Load()))
}

func (router *Router) resetStatistics() {
	router.runTime = 0
	router.postCount.Store(0)
	router.postFails.Store(0)
	router.dispatchCount.Store(0)
	router.dispatchFails.Store(0)
	router.loopCycles.Store(0)
}

func (router *Router) dispatch(ctx context.Context, ev event) error {
	switch ev.id {
	case BarEvent:
		bar, ok := ev.data.(common.Bar)
		if !ok {
			return errors.New("invalid type assertion for bar event")
		}
		if router.BarHandler != nil {
			router.BarHandler(ctx, bar)
		} else {
			router.logger.Debug("bar handler is nil")
		}
	case ReturnEvent:
		ret, ok := ev.data.(common.Return)
		if !ok {
			return errors.New("invalid type assertion for return event")
		}
		if router.ReturnHandler != nil {
			router.ReturnHandler(ctx, ret)
		} else {
			router.logger.Debug("return handler is nil")
		}
	case VolatilityEvent:
		vol, ok := ev.data.(common.Volatility)
		if !ok {
			return errors.New("invalid type assertion for volatility event")
		}
		if router.VolatilityHandler != nil {
			router.VolatilityHandler(ctx, vol)
		} else {
			router.logger.Debug("volatility handler is nil")
		}
	case ForecastEvent:
		fc, ok := ev.data.(common.Forecast)
		if !ok {
			return errors.New("invalid type assertion for forecast event")
		}
		if router.ForecastHandler != nil {
			router.ForecastHandler(ctx, fc)
		} else {
			router.logger.Debug("forecast handler is nil")
		}
	case ExceedanceEvent:
		exc, ok := ev.data.(common.Exceedance)
		if !ok {
			return errors.New("invalid type assertion for exceedance event")
		}
		if router.ExceedanceHandler != nil {
			router.ExceedanceHandler(ctx, exc)
		} else {
			router.logger.Debug("exceedance handler is nil")
		}
	default:
		return fmt.Errorf("unsupported event id: %v", ev.id)
	}
	return nil
}
