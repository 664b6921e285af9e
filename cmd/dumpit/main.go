package main

import (
	"encoding/binary"
	"flag"
	"fmt"
	"os"

	"go.uber.org/zap"

	"github.com/peter-kozarec/aphelion/internal/dbg"
	"github.com/peter-kozarec/aphelion/pkg/common"
	"github.com/peter-kozarec/aphelion/pkg/data/mapper"
	"github.com/peter-kozarec/aphelion/pkg/datasource/csv"
)

func toBinaryBar(bar common.Bar) (mapper.BinaryBar, error) {
	var binBar mapper.BinaryBar

	open, ok := bar.Open.Float64()
	if !ok {
		return binBar, fmt.Errorf("open %s is not representable", bar.Open)
	}
	high, ok := bar.High.Float64()
	if !ok {
		return binBar, fmt.Errorf("high %s is not representable", bar.High)
	}
	low, ok := bar.Low.Float64()
	if !ok {
		return binBar, fmt.Errorf("low %s is not representable", bar.Low)
	}
	closePrice, ok := bar.Close.Float64()
	if !ok {
		return binBar, fmt.Errorf("close %s is not representable", bar.Close)
	}
	volume, ok := bar.Volume.Float64()
	if !ok {
		return binBar, fmt.Errorf("volume %s is not representable", bar.Volume)
	}

	binBar.TimeStamp = bar.TimeStamp.UnixNano()
	binBar.Open = open
	binBar.High = high
	binBar.Low = low
	binBar.Close = closePrice
	binBar.Volume = volume
	return binBar, nil
}

func dump(bars []common.Bar, binFileName string) error {
	binFile, err := os.Create(binFileName)
	if err != nil {
		return fmt.Errorf("unable to create %q: %w", binFileName, err)
	}
	defer func() {
		_ = binFile.Close()
	}()

	for i, bar := range bars {
		binBar, err := toBinaryBar(bar)
		if err != nil {
			return fmt.Errorf("bar %d: %w", i, err)
		}
		if err := binary.Write(binFile, binary.LittleEndian, binBar); err != nil {
			return fmt.Errorf("bar %d: unable to write: %w", i, err)
		}
	}
	return nil
}

func main() {
	logger := dbg.NewDevLogger()
	defer func() {
		_ = logger.Sync()
	}()

	csvFileName := flag.String("csv", "", "cleaned Date,Close csv to convert")
	binFileName := flag.String("bin", "", "packed binary archive to create")
	symbol := flag.String("symbol", "", "symbol stamped on the converted bars")
	flag.Parse()

	if *csvFileName == "" || *binFileName == "" || *symbol == "" {
		flag.Usage()
		os.Exit(2)
	}

	bars, err := csv.LoadBars(*csvFileName, *symbol)
	if err != nil {
		logger.Fatal("unable to load bars", zap.Error(err))
	}
	logger.Info("bars loaded",
		zap.String("csv", *csvFileName),
		zap.Int("count", len(bars)))

	if err := dump(bars, *binFileName); err != nil {
		_ = os.Remove(*binFileName)
		logger.Fatal("unable to dump bars", zap.Error(err))
	}
	logger.Info("archive written",
		zap.String("bin", *binFileName),
		zap.Int("count", len(bars)))
}
