package arima

import (
	"fmt"
	"math"
	"sync"

	"go.uber.org/zap"

	"github.com/peter-kozarec/aphelion/pkg/timeseries"
)

// Criterion ranks candidate orders in a grid search.
type Criterion int

const (
	AIC Criterion = iota
	BIC
	AICC
)

func (c Criterion) String() string {
	switch c {
	case BIC:
		return "bic"
	case AICC:
		return "aicc"
	default:
		return "aic"
	}
}

func (c Criterion) score(d ModelDiagnostics) float64 {
	switch c {
	case BIC:
		return d.BIC
	case AICC:
		return d.AICC
	default:
		return d.AIC
	}
}

// Selection is the winner of a grid search, with its fitted model.
type Selection struct {
	P, D, Q   int
	Model     *Model
	Score     float64
	Criterion Criterion
	Evaluated int
	Failed    int
}

// Selector searches ARIMA orders on a series and keeps the one with the
// lowest information criterion.
type Selector struct {
	logger *zap.Logger

	criterion    Criterion
	workers      int
	modelOptions []ModelOption
}

func NewSelector(logger *zap.Logger, options ...SelectorOption) *Selector {
	s := &Selector{
		logger:    logger,
		criterion: AIC,
		workers:   1,
	}
	for _, option := range options {
		option(s)
	}
	return s
}

// Search fits every (p, q) order up to the caps on the series and returns
// the order with the lowest criterion. Candidates fold in grid order, so a
// tie goes to the lower p and then the lower q regardless of the worker
// count. Orders that fail to estimate are skipped; when every order fails
// the last error comes back wrapped in *NoConvergentModelError.
func (s *Selector) Search(series *timeseries.Series, maxP, maxQ, d int) (*Selection, error) {
	if maxP < 0 || maxQ < 0 || d < 0 {
		return nil, fmt.Errorf("arima search bounds (%d,%d,%d) must be non-negative", maxP, d, maxQ)
	}

	type order struct{ p, q int }
	grid := make([]order, 0, (maxP+1)*(maxQ+1))
	for p := 0; p <= maxP; p++ {
		for q := 0; q <= maxQ; q++ {
			grid = append(grid, order{p, q})
		}
	}

	values := series.Values()
	models := make([]*Model, len(grid))
	failures := make([]error, len(grid))

	fit := func(i int) {
		o := grid[i]
		model, err := NewModel(o.p, d, o.q, len(values), s.modelOptions...)
		if err != nil {
			failures[i] = err
			return
		}
		for _, v := range values {
			model.AddPoint(v)
		}
		if err := model.Estimate(); err != nil {
			failures[i] = err
			return
		}
		models[i] = model
	}

	if s.workers > 1 {
		var wg sync.WaitGroup
		sem := make(chan struct{}, s.workers)
		for i := range grid {
			wg.Add(1)
			sem <- struct{}{}
			go func(i int) {
				defer wg.Done()
				fit(i)
				<-sem
			}(i)
		}
		wg.Wait()
	} else {
		for i := range grid {
			fit(i)
		}
	}

	var best *Selection
	failed := 0
	var lastErr error
	for i, model := range models {
		o := grid[i]
		if model == nil {
			failed++
			lastErr = failures[i]
			s.logger.Debug("arima order skipped",
				zap.Int("p", o.p), zap.Int("d", d), zap.Int("q", o.q),
				zap.Error(failures[i]))
			continue
		}
		score := s.criterion.score(model.Diagnostics())
		if math.IsNaN(score) || math.IsInf(score, 0) {
			failed++
			lastErr = fmt.Errorf("arima(%d,%d,%d): degenerate %s", o.p, d, o.q, s.criterion)
			s.logger.Debug("arima order skipped",
				zap.Int("p", o.p), zap.Int("d", d), zap.Int("q", o.q),
				zap.Error(lastErr))
			continue
		}
		if best == nil || score < best.Score {
			best = &Selection{P: o.p, D: d, Q: o.q, Model: model, Score: score, Criterion: s.criterion}
		}
	}

	if best == nil {
		return nil, &NoConvergentModelError{Attempts: len(grid), LastErr: lastErr}
	}
	best.Evaluated = len(grid)
	best.Failed = failed

	s.logger.Info("arima order selected",
		zap.String("series", series.Name()),
		zap.Int("p", best.P), zap.Int("d", best.D), zap.Int("q", best.Q),
		zap.String("criterion", s.criterion.String()),
		zap.Float64("score", best.Score),
		zap.Int("evaluated", best.Evaluated),
		zap.Int("failed", best.Failed))
	return best, nil
}
