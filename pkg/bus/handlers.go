package bus

import (
	"context"

	"github.com/peter-kozarec/aphelion/pkg/common"
)

type EventHandler[T any] = func(context.Context, T)

type BarEventHandler EventHandler[common.Bar]
type ReturnEventHandler EventHandler[common.Return]
type VolatilityEventHandler EventHandler[common.Volatility]
type ForecastEventHandler EventHandler[common.Forecast]
type ExceedanceEventHandler EventHandler[common.Exceedance]

func MergeHandlers[T any](handlers ...EventHandler[T]) EventHandler[T] {
	return func(ctx context.Context, event T) {
		for _, handler := range handlers {
			handler(ctx, event)
		}
	}
}
