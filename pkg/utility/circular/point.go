package circular

import (
	"github.com/peter-kozarec/aphelion/pkg/utility/fixed"
)

// PointBuffer is a fixed-capacity window over fixed.Point values that keeps
// running first and second moments, so Mean/StdDev/Variance are O(1) per push.
type PointBuffer struct {
	b *Buffer[fixed.Point]

	mean       fixed.Point
	stdDev     fixed.Point
	sum        fixed.Point
	sumSquares fixed.Point
	variance   fixed.Point
}

func NewPointBuffer(capacity uint) *PointBuffer {
	return &PointBuffer{
		b: NewBuffer[fixed.Point](capacity),
	}
}

func (p *PointBuffer) PushUpdate(v fixed.Point) {
	if p.b.IsEmpty() {
		p.b.Push(v)
		p.sum = v
		p.sumSquares = v.Mul(v)
	} else if !p.b.IsFull() {
		p.b.Push(v)
		p.sum = p.sum.Add(v)
		p.sumSquares = p.sumSquares.Add(v.Mul(v))
	} else {
		toBeRemoved := p.b.Last()
		p.b.Push(v)
		p.sum = p.sum.Sub(toBeRemoved).Add(v)
		p.sumSquares = p.sumSquares.Sub(toBeRemoved.Mul(toBeRemoved)).Add(v.Mul(v))
	}

	size := fixed.FromUint64(uint64(p.b.Size()), 0)
	p.mean = p.sum.Div(size)
	p.variance = p.sumSquares.Div(size).Sub(p.mean.Mul(p.mean))
	if p.variance.Gt(fixed.Zero) {
		p.stdDev = p.variance.Sqrt()
	} else {
		p.stdDev = fixed.Zero
	}
}

func (p *PointBuffer) Clear() {
	p.b.Clear()
	p.mean = fixed.Zero
	p.stdDev = fixed.Zero
	p.sum = fixed.Zero
	p.sumSquares = fixed.Zero
	p.variance = fixed.Zero
}

func (p *PointBuffer) Size() uint {
	return p.b.Size()
}

func (p *PointBuffer) IsFull() bool {
	return p.b.IsFull()
}

func (p *PointBuffer) Mean() fixed.Point {
	return p.mean
}

func (p *PointBuffer) Sum() fixed.Point {
	return p.sum
}

func (p *PointBuffer) StdDev() fixed.Point {
	return p.stdDev
}

func (p *PointBuffer) Variance() fixed.Point {
	return p.variance
}

func (p *PointBuffer) SampleVariance() fixed.Point {
	size := int(p.b.Size())
	if size < 2 {
		return fixed.Zero
	}
	return p.variance.MulInt(size).DivInt(size - 1)
}

func (p *PointBuffer) SampleStdDev() fixed.Point {
	sampleVariance := p.SampleVariance()
	if sampleVariance.Gt(fixed.Zero) {
		return sampleVariance.Sqrt()
	}
	return fixed.Zero
}
