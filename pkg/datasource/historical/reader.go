package historical

import (
	"fmt"
	"time"

	"github.com/peter-kozarec/aphelion/pkg/common"
	"github.com/peter-kozarec/aphelion/pkg/data/mapper"
	"github.com/peter-kozarec/aphelion/pkg/utility"
)

const (
	invalidIndex           = -1
	barReaderComponentName = "datasource.historical.reader"

	dailyBarPeriod = 24 * time.Hour
)

type BarReader struct {
	source *mapper.Reader[mapper.BinaryBar]

	symbol string
	from   int64
	to     int64
	idx    int64
}

func NewBarReader(source *mapper.Reader[mapper.BinaryBar], symbol string, from, to time.Time) *BarReader {
	return &BarReader{
		source: source,
		symbol: symbol,
		from:   from.UnixNano(),
		to:     to.UnixNano(),
		idx:    invalidIndex,
	}
}

func (b *BarReader) GetNext() (common.Bar, error) {

	var bar common.Bar
	var binBar mapper.BinaryBar

	if b.idx == invalidIndex {
		if err := b.lookupStartIndex(); err != nil {
			return bar, err
		}
	}

	if err := b.source.Read(b.idx, &binBar); err != nil {
		return bar, fmt.Errorf("error reading entry at index %d: %w", b.idx, err)
	}
	b.idx++

	if binBar.TimeStamp < b.from {
		return bar, fmt.Errorf("timestamp is not from the proposed range")
	}

	if binBar.TimeStamp > b.to {
		return bar, mapper.ErrEof
	}

	binBar.ToModelBar(&bar)

	bar.Source = barReaderComponentName
	bar.Symbol = b.symbol
	bar.Period = dailyBarPeriod
	bar.ExecutionID = utility.GetExecutionID()
	bar.TraceID = utility.CreateTraceID()

	return bar, nil
}

func (b *BarReader) lookupStartIndex() error {
	entryCount, err := b.source.EntryCount()
	if err != nil {
		return fmt.Errorf("error getting entry count: %w", err)
	}

	if entryCount == 0 {
		return fmt.Errorf("entry count is zero")
	}

	var entry mapper.BinaryBar

	low := int64(0)
	high := entryCount - 1

	for low <= high {
		mid := (low + high) / 2

		if err := b.source.Read(mid, &entry); err != nil {
			return fmt.Errorf("error reading entry at index %d: %w", mid, err)
		}

		if entry.TimeStamp < b.from {
			low = mid + 1
		} else {
			high = mid - 1
		}
	}

	if low >= entryCount {
		return fmt.Errorf("no entry found with timestamp >= from")
	}

	b.idx = low
	return nil
}
