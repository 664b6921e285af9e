package middleware

import (
	"context"

	"github.com/peter-kozarec/aphelion/pkg/common"
)

//goland:noinspection ALL
var (
	NoopBarHdl        = func(context.Context, common.Bar) {}
	NoopReturnHdl     = func(context.Context, common.Return) {}
	NoopVolatilityHdl = func(context.Context, common.Volatility) {}
	NoopForecastHdl   = func(context.Context, common.Forecast) {}
	NoopExceedanceHdl = func(context.Context, common.Exceedance) {}
)
