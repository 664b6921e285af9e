package csv

import (
	"encoding/csv"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/peter-kozarec/aphelion/pkg/common"
	"github.com/peter-kozarec/aphelion/pkg/timeseries"
	"github.com/peter-kozarec/aphelion/pkg/utility"
	"github.com/peter-kozarec/aphelion/pkg/utility/fixed"
)

const (
	loaderComponentName = "datasource.csv.loader"

	dateLayout     = "2006-01-02"
	dailyBarPeriod = 24 * time.Hour
)

// LoadBars reads a cleaned Date,Close export into daily bars. Columns are
// located by header name and the rest are ignored. Dates must be strictly
// increasing, so unsorted or duplicated rows fail the load.
func LoadBars(path, symbol string) ([]common.Bar, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("unable to open %q: %w", path, err)
	}
	defer func() {
		_ = file.Close()
	}()

	reader := csv.NewReader(file)
	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("unable to parse %q: %w", path, err)
	}
	if len(records) < 2 {
		return nil, fmt.Errorf("%q has no data rows", path)
	}

	dateIdx, closeIdx := -1, -1
	for i, column := range records[0] {
		switch column {
		case "Date":
			dateIdx = i
		case "Close":
			closeIdx = i
		}
	}
	if dateIdx == -1 || closeIdx == -1 {
		return nil, fmt.Errorf("%q is missing the Date or Close column", path)
	}

	bars := make([]common.Bar, 0, len(records)-1)
	var lastTime time.Time

	for i, record := range records[1:] {
		ts, err := time.Parse(dateLayout, record[dateIdx])
		if err != nil {
			return nil, fmt.Errorf("row %d: unable to parse date %q: %w", i+1, record[dateIdx], err)
		}
		if i > 0 && !ts.After(lastTime) {
			return nil, fmt.Errorf("row %d: date %s is not strictly increasing", i+1, record[dateIdx])
		}
		lastTime = ts

		closePrice, err := strconv.ParseFloat(record[closeIdx], 64)
		if err != nil {
			return nil, fmt.Errorf("row %d: unable to parse close %q: %w", i+1, record[closeIdx], err)
		}
		if closePrice <= 0 {
			return nil, fmt.Errorf("row %d: close %v is not positive", i+1, closePrice)
		}

		price := fixed.FromFloat64(closePrice)
		bars = append(bars, common.Bar{
			Source:      loaderComponentName,
			Symbol:      symbol,
			ExecutionID: utility.GetExecutionID(),
			TraceID:     utility.CreateTraceID(),
			TimeStamp:   ts,
			Period:      dailyBarPeriod,
			Open:        price,
			High:        price,
			Low:         price,
			Close:       price,
		})
	}

	return bars, nil
}

// CloseSeries extracts bar close prices into a series keyed by bar time.
func CloseSeries(name string, bars []common.Bar) (*timeseries.Series, error) {
	times := make([]time.Time, len(bars))
	values := make([]float64, len(bars))
	for i, bar := range bars {
		v, ok := bar.Close.Float64()
		if !ok {
			return nil, fmt.Errorf("bar %d: close %s is not representable", i, bar.Close)
		}
		times[i] = bar.TimeStamp
		values[i] = v
	}
	return timeseries.New(name, times, values)
}
