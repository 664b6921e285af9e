package synthetic

import (
	"errors"
	"math"
	"math/rand"
	"time"

	"github.com/peter-kozarec/aphelion/pkg/common"
	"github.com/peter-kozarec/aphelion/pkg/dist"
	"github.com/peter-kozarec/aphelion/pkg/models/egarch"
	"github.com/peter-kozarec/aphelion/pkg/utility"
	"github.com/peter-kozarec/aphelion/pkg/utility/fixed"
)

const (
	barGeneratorComponentName = "datasource.synthetic.generator"
)

var ErrEof = errors.New("EOF")

// BarGenerator synthesizes daily bars by sampling returns from an
// EGARCH(1,1) model. Prices compound the sampled log returns, so the
// generated series carries the volatility clustering and leverage effect
// of the parameter vector it was given.
type BarGenerator struct {
	symbol string
	rng    *rand.Rand

	params egarch.Params
	state  *egarch.State
	innov  dist.Innovation

	steps int64
	t     int64

	barPeriod     time.Duration
	rangeFraction float64

	avgVolume      fixed.Point
	volumeVariance float64

	lastTime  time.Time
	lastPrice float64

	normPriceDigits  int
	normVolumeDigits int
}

func NewBarGenerator(
	symbol string,
	rng *rand.Rand,
	startTime time.Time,
	startPrice float64,
	params egarch.Params,
	innov dist.Innovation,
	steps int64) *BarGenerator {

	return &BarGenerator{
		symbol: symbol,
		rng:    rng,

		params: params,
		state:  params.NewStationaryState(innov),
		innov:  innov,
		steps:  steps,

		barPeriod:     24 * time.Hour,
		rangeFraction: 0.6, // intraday range relative to the daily sigma

		avgVolume:      fixed.FromInt64(1_000_000, 0),
		volumeVariance: 0.5,

		lastTime:  startTime,
		lastPrice: startPrice,
	}
}

func (e *BarGenerator) SetBarPeriod(period time.Duration) {
	e.barPeriod = period
}

func (e *BarGenerator) SetRangeFraction(fraction float64) {
	e.rangeFraction = fraction
}

func (e *BarGenerator) SetVolumeParameters(avgVol fixed.Point, volVariance float64) {
	e.avgVolume = avgVol
	e.volumeVariance = volVariance
}

func (e *BarGenerator) SetPriceDigits(digits int) {
	e.normPriceDigits = digits
}

func (e *BarGenerator) SetVolumeDigits(digits int) {
	e.normVolumeDigits = digits
}

func (e *BarGenerator) GetNext() (common.Bar, error) {
	var bar common.Bar

	if e.t >= e.steps {
		return bar, ErrEof
	}

	sigma := e.state.Sigma()
	value := e.params.Mu + sigma*e.drawInnovation()

	openPrice := e.lastPrice
	closePrice := openPrice * math.Exp(value)

	highPrice := math.Max(openPrice, closePrice) * math.Exp(math.Abs(e.rng.NormFloat64())*sigma*e.rangeFraction)
	lowPrice := math.Min(openPrice, closePrice) * math.Exp(-math.Abs(e.rng.NormFloat64())*sigma*e.rangeFraction)

	e.state.Advance(value)
	e.lastPrice = closePrice
	e.lastTime = e.lastTime.Add(e.barPeriod)
	e.t++

	bar.Open = fixed.FromFloat64(openPrice).Rescale(e.normPriceDigits)
	bar.High = fixed.FromFloat64(highPrice).Rescale(e.normPriceDigits)
	bar.Low = fixed.FromFloat64(lowPrice).Rescale(e.normPriceDigits)
	bar.Close = fixed.FromFloat64(closePrice).Rescale(e.normPriceDigits)
	bar.Volume = e.generateVolume()
	bar.TimeStamp = e.lastTime
	bar.Period = e.barPeriod

	bar.Source = barGeneratorComponentName
	bar.Symbol = e.symbol
	bar.ExecutionID = utility.GetExecutionID()
	bar.TraceID = utility.CreateTraceID()

	return bar, nil
}

func (e *BarGenerator) drawInnovation() float64 {
	u := e.rng.Float64()
	for u == 0 {
		u = e.rng.Float64()
	}
	return e.innov.Quantile(u)
}

func (e *BarGenerator) generateVolume() fixed.Point {
	variation := e.rng.NormFloat64() * e.volumeVariance

	volume := e.avgVolume.Mul(fixed.FromFloat64(variation).Exp())
	volume = volume.Rescale(e.normVolumeDigits)

	// Rounding can hit zero for small average volumes
	if volume.Lte(fixed.Zero) {
		volume = fixed.One
	}
	return volume
}
