package main

import (
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/peter-kozarec/aphelion/cmd/vrx"
	"github.com/peter-kozarec/aphelion/internal/dbg"
	"github.com/peter-kozarec/aphelion/pkg/data/csvio"
	"github.com/peter-kozarec/aphelion/pkg/datasource/csv"
	"github.com/peter-kozarec/aphelion/pkg/diagnostics"
	"github.com/peter-kozarec/aphelion/pkg/timeseries"
)

func main() {
	logger := dbg.NewDevLogger()
	defer func() {
		_ = logger.Sync()
	}()

	logger.Info(fmt.Sprintf("vrx diagnose %s", vrx.Version))
	defer logger.Info("done")

	indexes := []struct {
		name string
		path string
	}{
		{"ibex", IbexDataSource},
		{"spx", SpxDataSource},
	}

	var rows []csvio.BatteryRow
	for _, index := range indexes {
		indexRows, err := diagnoseIndex(logger, index.name, index.path)
		if err != nil {
			logger.Error("diagnosis failed", zap.String("index", index.name), zap.Error(err))
			continue
		}
		rows = append(rows, indexRows...)
	}
	if len(rows) == 0 {
		logger.Fatal("no series diagnosed")
	}

	exportPath := csvio.Path(ExportDir, "diagnostics")
	if err := csvio.WriteBattery(exportPath, rows); err != nil {
		logger.Fatal("error exporting diagnostics", zap.Error(err))
	}
	logger.Info("diagnostics exported", zap.String("path", exportPath))
}

func diagnoseIndex(logger *zap.Logger, name, path string) ([]csvio.BatteryRow, error) {
	bars, err := csv.LoadBars(path, strings.ToUpper(name))
	if err != nil {
		return nil, err
	}
	prices, err := csv.CloseSeries(name, bars)
	if err != nil {
		return nil, err
	}
	returns, err := timeseries.LogReturns(prices)
	if err != nil {
		return nil, err
	}

	values := returns.Values()
	squared := make([]float64, len(values))
	for i, v := range values {
		squared[i] = v * v
	}

	series := []struct {
		label  string
		values []float64
	}{
		{name + " returns", values},
		{name + " returns squared", squared},
	}

	rows := make([]csvio.BatteryRow, 0, len(series))
	for _, s := range series {
		battery, err := diagnostics.Battery(s.values)
		if err != nil {
			return nil, err
		}
		for _, entry := range battery {
			logger.Info("diagnostic",
				zap.String("series", s.label),
				zap.String("test", entry.Name),
				zap.Float64("statistic", entry.Statistic),
				zap.Float64("p_value", entry.PValue))
		}
		rows = append(rows, csvio.BatteryRow{Series: s.label, Entries: battery})
	}
	return rows, nil
}
