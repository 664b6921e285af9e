package synthetic

import (
	"math/rand"
	"time"

	"github.com/peter-kozarec/aphelion/pkg/dist"
	"github.com/peter-kozarec/aphelion/pkg/models/egarch"
	"github.com/peter-kozarec/aphelion/pkg/utility/fixed"
)

// NewIndexBarGenerator builds a daily bar generator parameterized like a
// developed market equity index, with Student-t innovations and EGARCH
// coefficients close to values fitted on real index returns.
func NewIndexBarGenerator(symbol string, rng *rand.Rand, startTime time.Time, steps int64) (*BarGenerator, error) {

	const (
		indexStartPrice = 10_000.0

		indexMu    = 0.0003
		indexOmega = -0.30
		indexAlpha = 0.15
		indexGamma = -0.09
		indexBeta  = 0.97
		indexDof   = 7.0

		rangeFraction = 0.6

		avgVolumeUnits    = 250_000_000
		volumeVariability = 0.45

		normPriceDigits  = 2
		normVolumeDigits = 0
	)

	params := egarch.Params{
		Mu:    indexMu,
		Omega: indexOmega,
		Alpha: indexAlpha,
		Gamma: indexGamma,
		Beta:  indexBeta,
	}

	innov, err := dist.NewStudentT(indexDof)
	if err != nil {
		return nil, err
	}

	barGenerator := NewBarGenerator(
		symbol,
		rng,
		startTime,
		indexStartPrice,
		params,
		innov,
		steps,
	)

	barGenerator.SetRangeFraction(rangeFraction)
	barGenerator.SetVolumeParameters(fixed.FromInt(avgVolumeUnits, 0), volumeVariability)
	barGenerator.SetPriceDigits(normPriceDigits)
	barGenerator.SetVolumeDigits(normVolumeDigits)

	return barGenerator, nil
}
