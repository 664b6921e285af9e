package timeseries

import (
	"fmt"
	"math"
	"time"
)

// Series is a date-indexed sequence of float64 observations. Timestamps are
// strictly increasing and unique; both invariants are checked once at
// construction. The backing slices are shared, not copied, and callers must
// treat a constructed Series as read-only.
type Series struct {
	name   string
	times  []time.Time
	values []float64
}

func New(name string, times []time.Time, values []float64) (*Series, error) {
	if len(times) != len(values) {
		return nil, fmt.Errorf("series %q: %d timestamps for %d values", name, len(times), len(values))
	}
	for i := 1; i < len(times); i++ {
		if !times[i].After(times[i-1]) {
			return nil, fmt.Errorf("series %q: timestamps not strictly increasing at index %d (%s >= %s)",
				name, i, times[i-1].Format(time.DateOnly), times[i].Format(time.DateOnly))
		}
	}
	return &Series{name: name, times: times, values: values}, nil
}

func (s *Series) Name() string {
	return s.name
}

func (s *Series) Len() int {
	return len(s.values)
}

func (s *Series) Time(i int) time.Time {
	return s.times[i]
}

func (s *Series) Value(i int) float64 {
	return s.values[i]
}

// Times returns the backing timestamp slice. Callers must not modify it.
func (s *Series) Times() []time.Time {
	return s.times
}

// Values returns the backing value slice. Callers must not modify it.
func (s *Series) Values() []float64 {
	return s.values
}

// Slice returns the sub-series [from, to). The result shares backing storage
// with the receiver.
func (s *Series) Slice(from, to int) *Series {
	return &Series{name: s.name, times: s.times[from:to], values: s.values[from:to]}
}

// WithValues pairs the receiver's timestamps with a new value column, used by
// model components that derive an aligned series (volatility, VaR, residuals).
func (s *Series) WithValues(name string, values []float64) (*Series, error) {
	if len(values) != len(s.times) {
		return nil, fmt.Errorf("series %q: %d values for %d timestamps", name, len(values), len(s.times))
	}
	return &Series{name: name, times: s.times, values: values}, nil
}

// AlignedWith reports whether two series share an identical timestamp index.
// The returned error is an *AlignmentError describing the first mismatch.
func (s *Series) AlignedWith(o *Series) error {
	if s.Len() != o.Len() {
		return &AlignmentError{
			Left:   s.name,
			Right:  o.name,
			Index:  -1,
			Reason: fmt.Sprintf("length mismatch: %d vs %d", s.Len(), o.Len()),
		}
	}
	for i := range s.times {
		if !s.times[i].Equal(o.times[i]) {
			return &AlignmentError{
				Left:  s.name,
				Right: o.name,
				Index: i,
				Reason: fmt.Sprintf("timestamp mismatch: %s vs %s",
					s.times[i].Format(time.DateOnly), o.times[i].Format(time.DateOnly)),
			}
		}
	}
	return nil
}

// LogReturns derives log returns from a strictly positive price series. The
// result is one observation shorter and indexed by the later of each pair of
// dates.
func LogReturns(prices *Series) (*Series, error) {
	if prices.Len() < 2 {
		return nil, &InsufficientDataError{Op: "log returns", Need: 2, Got: prices.Len()}
	}
	times := make([]time.Time, 0, prices.Len()-1)
	values := make([]float64, 0, prices.Len()-1)
	for i := 1; i < prices.Len(); i++ {
		prev, curr := prices.Value(i-1), prices.Value(i)
		if prev <= 0 || curr <= 0 {
			return nil, fmt.Errorf("series %q: non-positive price at index %d", prices.Name(), i)
		}
		times = append(times, prices.Time(i))
		values = append(values, math.Log(curr/prev))
	}
	return &Series{name: prices.name, times: times, values: values}, nil
}
