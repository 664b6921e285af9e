package backtest

import (
	"time"

	"github.com/peter-kozarec/aphelion/pkg/timeseries"
)

// Sequence is the binary exceedance indicator derived from a realized
// return series and a VaR series, one entry per shared timestamp. It is
// built by Exceedances and never mutated afterwards.
type Sequence struct {
	times      []time.Time
	indicators []int
}

// Exceedances marks every observation where the realized return falls
// below the VaR threshold. An exact tie is not an exceedance. Returns
// *timeseries.AlignmentError when the two series do not share an
// identical timestamp index.
func Exceedances(returns, varSeries *timeseries.Series) (*Sequence, error) {
	if err := returns.AlignedWith(varSeries); err != nil {
		return nil, err
	}
	indicators := make([]int, returns.Len())
	for i := range indicators {
		if returns.Value(i) < varSeries.Value(i) {
			indicators[i] = 1
		}
	}
	return &Sequence{times: returns.Times(), indicators: indicators}, nil
}

func (s *Sequence) Len() int {
	return len(s.indicators)
}

func (s *Sequence) Time(i int) time.Time {
	return s.times[i]
}

func (s *Sequence) Indicator(i int) int {
	return s.indicators[i]
}

// Indicators returns the backing indicator slice. Callers must not modify it.
func (s *Sequence) Indicators() []int {
	return s.indicators
}

func (s *Sequence) Violations() int {
	count := 0
	for _, ind := range s.indicators {
		count += ind
	}
	return count
}
