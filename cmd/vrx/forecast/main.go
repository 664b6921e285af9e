package main

import (
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/peter-kozarec/aphelion/cmd/vrx"
	"github.com/peter-kozarec/aphelion/internal/dbg"
	"github.com/peter-kozarec/aphelion/pkg/data/csvio"
	"github.com/peter-kozarec/aphelion/pkg/datasource/csv"
	"github.com/peter-kozarec/aphelion/pkg/models/arima"
)

func main() {
	logger := dbg.NewDevLogger()
	defer func() {
		_ = logger.Sync()
	}()

	logger.Info(fmt.Sprintf("vrx forecast %s", vrx.Version))
	defer logger.Info("done")

	indexes := []struct {
		name string
		path string
	}{
		{"ibex", IbexDataSource},
		{"spx", SpxDataSource},
	}

	for _, index := range indexes {
		if err := forecastIndex(logger, index.name, index.path); err != nil {
			logger.Error("forecast failed", zap.String("index", index.name), zap.Error(err))
		}
	}
}

func forecastIndex(logger *zap.Logger, name, path string) error {
	bars, err := csv.LoadBars(path, strings.ToUpper(name))
	if err != nil {
		return err
	}
	prices, err := csv.CloseSeries(name, bars)
	if err != nil {
		return err
	}
	logger.Info("series loaded",
		zap.String("index", name),
		zap.Int("observations", prices.Len()))

	selector := arima.NewSelector(logger, arima.WithWorkers(GridWorkers))
	selection, err := selector.Search(prices, MaxAROrder, MaxMAOrder, Differencing)
	if err != nil {
		return err
	}
	logger.Info("order selected",
		zap.String("index", name),
		zap.Int("p", selection.P),
		zap.Int("d", selection.D),
		zap.Int("q", selection.Q),
		zap.String("criterion", selection.Criterion.String()),
		zap.Float64("score", selection.Score),
		zap.Int("evaluated", selection.Evaluated),
		zap.Int("failed", selection.Failed))

	table, err := selection.Model.ForecastTable(ForecastHorizons)
	if err != nil {
		return err
	}
	for _, horizon := range ForecastHorizons {
		result := table[horizon]
		logger.Info("forecast",
			zap.String("index", name),
			zap.Int("horizon", horizon),
			zap.Float64("point", result.PointForecast),
			zap.Float64("se", result.StandardError),
			zap.Float64("lower95", result.ConfidenceInterval.Lower95),
			zap.Float64("upper95", result.ConfidenceInterval.Upper95))
	}

	exportPath := csvio.Path(ExportDir, name+"_forecast")
	if err := csvio.WriteForecastTable(exportPath, name, table); err != nil {
		return err
	}
	logger.Info("forecast exported", zap.String("path", exportPath))
	return nil
}
