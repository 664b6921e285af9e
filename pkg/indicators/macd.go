package indicators

import (
	"github.com/peter-kozarec/aphelion/pkg/utility/fixed"
)

// Macd tracks fast and slow exponential moving averages plus a signal line
// over their difference. Each ema seeds with the first point and then
// follows ema + (x - ema) * 2/(span+1).
type Macd struct {
	fastPeriod   int
	slowPeriod   int
	signalPeriod int

	fastAlpha   fixed.Point
	slowAlpha   fixed.Point
	signalAlpha fixed.Point

	ptCounter int
	fastEma   fixed.Point
	slowEma   fixed.Point
	signalEma fixed.Point
}

func NewMacd(fastPeriod, slowPeriod, signalPeriod int) *Macd {
	return &Macd{
		fastPeriod:   fastPeriod,
		slowPeriod:   slowPeriod,
		signalPeriod: signalPeriod,
		fastAlpha:    fixed.Two.DivInt(fastPeriod + 1),
		slowAlpha:    fixed.Two.DivInt(slowPeriod + 1),
		signalAlpha:  fixed.Two.DivInt(signalPeriod + 1),
	}
}

func (m *Macd) AddPoint(p fixed.Point) {
	if m.ptCounter == 0 {
		m.fastEma = p
		m.slowEma = p
		m.signalEma = fixed.Zero
		m.ptCounter++
		return
	}

	m.fastEma = m.fastEma.Add(p.Sub(m.fastEma).Mul(m.fastAlpha))
	m.slowEma = m.slowEma.Add(p.Sub(m.slowEma).Mul(m.slowAlpha))

	line := m.fastEma.Sub(m.slowEma)
	m.signalEma = m.signalEma.Add(line.Sub(m.signalEma).Mul(m.signalAlpha))
	m.ptCounter++
}

// Line is the fast minus slow ema difference.
func (m *Macd) Line() fixed.Point {
	return m.fastEma.Sub(m.slowEma)
}

func (m *Macd) Signal() fixed.Point {
	return m.signalEma
}

// Value is the histogram, line minus signal.
func (m *Macd) Value() fixed.Point {
	return m.Line().Sub(m.signalEma)
}

func (m *Macd) IsReady() bool {
	return m.ptCounter >= m.slowPeriod
}

func (m *Macd) Reset() {
	m.ptCounter = 0
	m.fastEma = fixed.Zero
	m.slowEma = fixed.Zero
	m.signalEma = fixed.Zero
}
