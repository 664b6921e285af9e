package indicators

import (
	"github.com/peter-kozarec/aphelion/pkg/utility/circular"
	"github.com/peter-kozarec/aphelion/pkg/utility/fixed"
)

// Rsi is the relative strength index over rolling mean gains and losses.
// Index 100 means the window saw no losses at all.
type Rsi struct {
	windowSize int

	primed    bool
	lastValue fixed.Point
	gains     *circular.PointBuffer
	losses    *circular.PointBuffer
}

func NewRsi(windowSize int) *Rsi {
	return &Rsi{
		windowSize: windowSize,
		gains:      circular.NewPointBuffer(uint(windowSize)),
		losses:     circular.NewPointBuffer(uint(windowSize)),
	}
}

func (r *Rsi) AddPoint(p fixed.Point) {
	defer func() {
		r.lastValue = p
	}()

	if !r.primed {
		r.primed = true
		return
	}

	delta := p.Sub(r.lastValue)

	gain, loss := fixed.Zero, fixed.Zero
	if delta.Gt(fixed.Zero) {
		gain = delta
	} else {
		loss = delta.Neg()
	}

	r.gains.PushUpdate(gain)
	r.losses.PushUpdate(loss)
}

func (r *Rsi) Value() fixed.Point {
	if !r.IsReady() {
		return fixed.Zero
	}

	avgLoss := r.losses.Mean()
	if avgLoss.IsZero() {
		return fixed.Hundred
	}

	rs := r.gains.Mean().Div(avgLoss)
	return fixed.Hundred.Sub(fixed.Hundred.Div(fixed.One.Add(rs)))
}

func (r *Rsi) IsReady() bool {
	return r.gains.IsFull()
}

func (r *Rsi) Reset() {
	r.primed = false
	r.lastValue = fixed.Zero
	r.gains.Clear()
	r.losses.Clear()
}
