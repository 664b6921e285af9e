package indicators

import (
	"github.com/peter-kozarec/aphelion/pkg/common"
	"github.com/peter-kozarec/aphelion/pkg/utility/circular"
	"github.com/peter-kozarec/aphelion/pkg/utility/fixed"
)

// Volatility is the rolling sample deviation of log returns annualized by
// the square root of 252 trading days.
type Volatility struct {
	windowSize int

	lastClose fixed.Point
	returns   *circular.PointBuffer
}

func NewVolatility(windowSize int) *Volatility {
	return &Volatility{
		windowSize: windowSize,
		returns:    circular.NewPointBuffer(uint(windowSize)),
	}
}

func (v *Volatility) OnBar(b common.Bar) {
	defer func() {
		v.lastClose = b.Close
	}()

	if v.lastClose.IsZero() {
		return
	}

	v.returns.PushUpdate(b.Close.Div(v.lastClose).Log())
}

func (v *Volatility) Value() fixed.Point {
	if !v.IsReady() {
		return fixed.Zero
	}
	return v.returns.SampleStdDev().Mul(fixed.Sqrt252)
}

func (v *Volatility) IsReady() bool {
	return v.returns.IsFull()
}

func (v *Volatility) Reset() {
	v.lastClose = fixed.Zero
	v.returns.Clear()
}
