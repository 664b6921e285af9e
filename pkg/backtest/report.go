package backtest

import (
	"fmt"

	"go.uber.org/zap"
)

// Report bundles both coverage tests for one VaR series at one confidence
// level.
type Report struct {
	Series         string
	Alpha          float64
	Observations   int
	Violations     int
	ViolationRatio float64
	Kupiec         KupiecResult
	Christoffersen ChristoffersenResult
}

func NewReport(series string, seq *Sequence, alpha float64) (*Report, error) {
	kupiec, err := Kupiec(seq, alpha)
	if err != nil {
		return nil, err
	}
	christoffersen, err := Christoffersen(seq)
	if err != nil {
		return nil, err
	}
	return &Report{
		Series:         series,
		Alpha:          alpha,
		Observations:   kupiec.Observations,
		Violations:     kupiec.Violations,
		ViolationRatio: kupiec.ViolationRatio,
		Kupiec:         kupiec,
		Christoffersen: christoffersen,
	}, nil
}

func (report Report) Print(logger *zap.Logger) {
	logger.Info("coverage",
		zap.String("series", report.Series),
		zap.Float64("alpha", report.Alpha),
		zap.Int("observations", report.Observations),
		zap.Int("violations", report.Violations),
		zap.String("violation_ratio", fmt.Sprintf("%.4f", report.ViolationRatio)),
	)

	logger.Info("kupiec unconditional coverage",
		zap.Float64("lr_stat", report.Kupiec.LRStat),
		zap.Float64("p_value", report.Kupiec.PValue),
	)

	logger.Info("christoffersen independence",
		zap.Float64("lr_stat", report.Christoffersen.LRStat),
		zap.Float64("p_value", report.Christoffersen.PValue),
		zap.Int("n00", report.Christoffersen.N00),
		zap.Int("n01", report.Christoffersen.N01),
		zap.Int("n10", report.Christoffersen.N10),
		zap.Int("n11", report.Christoffersen.N11),
	)
}
