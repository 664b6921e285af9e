package indicators

import (
	"github.com/peter-kozarec/aphelion/pkg/utility/circular"
	"github.com/peter-kozarec/aphelion/pkg/utility/fixed"
)

// Momentum is the difference between the current value and the value lag
// points back.
type Momentum struct {
	lag  uint
	data *circular.Buffer[fixed.Point]
}

func NewMomentum(lag int) *Momentum {
	return &Momentum{
		lag:  uint(lag),
		data: circular.NewBuffer[fixed.Point](uint(lag + 1)),
	}
}

func (m *Momentum) AddPoint(p fixed.Point) {
	m.data.Push(p)
}

func (m *Momentum) Value() fixed.Point {
	if !m.IsReady() {
		return fixed.Zero
	}
	return m.data.First().Sub(m.data.Get(m.lag))
}

func (m *Momentum) IsReady() bool {
	return m.data.IsFull()
}

func (m *Momentum) Reset() {
	m.data.Clear()
}
