package csvio

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"

	"github.com/peter-kozarec/aphelion/pkg/backtest"
	"github.com/peter-kozarec/aphelion/pkg/diagnostics"
	"github.com/peter-kozarec/aphelion/pkg/models/arima"
	"github.com/peter-kozarec/aphelion/pkg/timeseries"
)

const dateLayout = "2006-01-02"

// Path places a table in the export directory, name plus the csv extension.
func Path(dir, name string) string {
	return filepath.Join(dir, name+".csv")
}

// BatteryRow is one diagnosed series with its full test battery.
type BatteryRow struct {
	Series  string
	Entries []diagnostics.BatteryEntry
}

// WriteVolatility exports a conditional volatility path as date,sigma rows.
func WriteVolatility(path string, sigma *timeseries.Series) error {
	return write(path, func(w *csv.Writer) error {
		if err := w.Write([]string{"date", "sigma"}); err != nil {
			return err
		}
		for i := 0; i < sigma.Len(); i++ {
			row := []string{sigma.Time(i).Format(dateLayout), formatFloat(sigma.Value(i))}
			if err := w.Write(row); err != nil {
				return err
			}
		}
		return nil
	})
}

// WriteForecastTable exports a multi horizon forecast table with confidence
// and prediction bounds, horizons ascending.
func WriteForecastTable(path, series string, table map[int]arima.ForecastResult) error {
	horizons := make([]int, 0, len(table))
	for horizon := range table {
		horizons = append(horizons, horizon)
	}
	sort.Ints(horizons)

	return write(path, func(w *csv.Writer) error {
		header := []string{
			"series", "horizon", "forecast", "se",
			"lower95", "upper95", "lower80", "upper80",
			"pred_lower95", "pred_upper95", "pred_lower80", "pred_upper80",
		}
		if err := w.Write(header); err != nil {
			return err
		}
		for _, horizon := range horizons {
			result := table[horizon]
			row := []string{
				series,
				strconv.Itoa(horizon),
				formatFloat(result.PointForecast),
				formatFloat(result.StandardError),
				formatFloat(result.ConfidenceInterval.Lower95),
				formatFloat(result.ConfidenceInterval.Upper95),
				formatFloat(result.ConfidenceInterval.Lower80),
				formatFloat(result.ConfidenceInterval.Upper80),
				formatFloat(result.PredictionInterval.Lower95),
				formatFloat(result.PredictionInterval.Upper95),
				formatFloat(result.PredictionInterval.Lower80),
				formatFloat(result.PredictionInterval.Upper80),
			}
			if err := w.Write(row); err != nil {
				return err
			}
		}
		return nil
	})
}

// WriteBattery exports diagnosed series as one row each, with a statistic
// and p value column pair per test. Every row must carry the same battery.
func WriteBattery(path string, rows []BatteryRow) error {
	if len(rows) == 0 {
		return fmt.Errorf("no battery rows to export")
	}

	header := []string{"series"}
	for _, entry := range rows[0].Entries {
		header = append(header, entry.Name, entry.Name+"_p")
	}

	return write(path, func(w *csv.Writer) error {
		if err := w.Write(header); err != nil {
			return err
		}
		for _, row := range rows {
			if len(row.Entries) != len(rows[0].Entries) {
				return fmt.Errorf("series %q carries a different battery", row.Series)
			}
			record := []string{row.Series}
			for i, entry := range row.Entries {
				if entry.Name != rows[0].Entries[i].Name {
					return fmt.Errorf("series %q carries a different battery", row.Series)
				}
				record = append(record, formatFloat(entry.Statistic), formatFloat(entry.PValue))
			}
			if err := w.Write(record); err != nil {
				return err
			}
		}
		return nil
	})
}

// WriteReports exports coverage backtest reports, one row per series.
func WriteReports(path string, reports []backtest.Report) error {
	return write(path, func(w *csv.Writer) error {
		header := []string{
			"series", "alpha", "observations", "violations", "violation_ratio",
			"kupiec_lr", "kupiec_p", "christoffersen_lr", "christoffersen_p",
			"n00", "n01", "n10", "n11",
		}
		if err := w.Write(header); err != nil {
			return err
		}
		for _, report := range reports {
			row := []string{
				report.Series,
				formatFloat(report.Alpha),
				strconv.Itoa(report.Observations),
				strconv.Itoa(report.Violations),
				formatFloat(report.ViolationRatio),
				formatFloat(report.Kupiec.LRStat),
				formatFloat(report.Kupiec.PValue),
				formatFloat(report.Christoffersen.LRStat),
				formatFloat(report.Christoffersen.PValue),
				strconv.Itoa(report.Christoffersen.N00),
				strconv.Itoa(report.Christoffersen.N01),
				strconv.Itoa(report.Christoffersen.N10),
				strconv.Itoa(report.Christoffersen.N11),
			}
			if err := w.Write(row); err != nil {
				return err
			}
		}
		return nil
	})
}

func write(path string, fill func(w *csv.Writer) error) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("unable to create export directory: %w", err)
	}

	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("unable to create %q: %w", path, err)
	}
	defer func() {
		_ = file.Close()
	}()

	writer := csv.NewWriter(file)
	if err := fill(writer); err != nil {
		return fmt.Errorf("unable to write %q: %w", path, err)
	}
	writer.Flush()
	if err := writer.Error(); err != nil {
		return fmt.Errorf("unable to flush %q: %w", path, err)
	}
	return nil
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}
