package risk

import (
	"context"
	"math"
	"sync"
	"testing"
	"time"

	"go.uber.org/zap/zaptest"

	"github.com/peter-kozarec/aphelion/pkg/bus"
	"github.com/peter-kozarec/aphelion/pkg/common"
	"github.com/peter-kozarec/aphelion/pkg/utility/fixed"
)

func testBar(symbol string, ts time.Time, closePrice float64) common.Bar {
	return common.Bar{
		Symbol:    symbol,
		TimeStamp: ts,
		Close:     fixed.FromFloat64(closePrice),
	}
}

func TestRisk_Aggregator(t *testing.T) {
	router := bus.NewRouter(zaptest.NewLogger(t), 10)

	var wg sync.WaitGroup
	wg.Add(2)

	var returns []common.Return
	router.ReturnHandler = func(ctx context.Context, r common.Return) {
		returns = append(returns, r)
		wg.Done()
	}

	runCtx, cancel := context.WithCancel(context.Background())
	go router.Exec(runCtx)

	aggregator := NewAggregator(zaptest.NewLogger(t), router)

	day := 24 * time.Hour
	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	closes := []float64{100, 102, 99}
	for i, c := range closes {
		aggregator.OnBar(runCtx, testBar("GSPC", start.Add(time.Duration(i)*day), c))
	}

	wg.Wait()
	cancel()
	<-router.Done()

	if len(returns) != 2 {
		t.Fatalf("Expected 2 returns from 3 bars, got %d", len(returns))
	}

	if got, want := returns[0].Value, math.Log(102.0/100.0); got != want {
		t.Errorf("Expected first return %v, got %v", want, got)
	}
	if got, want := returns[1].Value, math.Log(99.0/102.0); got != want {
		t.Errorf("Expected second return %v, got %v", want, got)
	}

	if !returns[0].TimeStamp.Equal(start.Add(day)) {
		t.Errorf("Expected first return stamped with the second bar's time, got %v", returns[0].TimeStamp)
	}
	if returns[0].Symbol != "GSPC" {
		t.Errorf("Expected symbol GSPC, got %q", returns[0].Symbol)
	}
	if returns[0].Source != aggregatorComponentName {
		t.Errorf("Expected source %q, got %q", aggregatorComponentName, returns[0].Source)
	}
	if returns[0].TraceID == 0 {
		t.Error("Expected trace id to be set")
	}
}

func TestRisk_AggregatorSkipsInvalidClose(t *testing.T) {
	router := bus.NewRouter(zaptest.NewLogger(t), 10)

	var wg sync.WaitGroup
	wg.Add(1)

	var returns []common.Return
	router.ReturnHandler = func(ctx context.Context, r common.Return) {
		returns = append(returns, r)
		wg.Done()
	}

	runCtx, cancel := context.WithCancel(context.Background())
	go router.Exec(runCtx)

	aggregator := NewAggregator(zaptest.NewLogger(t), router)

	ts := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	aggregator.OnBar(runCtx, testBar("GSPC", ts, 100))
	aggregator.OnBar(runCtx, common.Bar{Symbol: "GSPC", TimeStamp: ts.Add(24 * time.Hour), Close: fixed.Zero})
	aggregator.OnBar(runCtx, testBar("GSPC", ts.Add(48*time.Hour), 110))

	wg.Wait()
	cancel()
	<-router.Done()

	if len(returns) != 1 {
		t.Fatalf("Expected 1 return, got %d", len(returns))
	}
	if got, want := returns[0].Value, math.Log(110.0/100.0); got != want {
		t.Errorf("Expected return against the last valid close %v, got %v", want, got)
	}
}

func TestRisk_AggregatorReset(t *testing.T) {
	router := bus.NewRouter(zaptest.NewLogger(t), 10)

	var wg sync.WaitGroup
	wg.Add(2)

	var returns []common.Return
	router.ReturnHandler = func(ctx context.Context, r common.Return) {
		returns = append(returns, r)
		wg.Done()
	}

	runCtx, cancel := context.WithCancel(context.Background())
	go router.Exec(runCtx)

	aggregator := NewAggregator(zaptest.NewLogger(t), router)

	ts := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	aggregator.OnBar(runCtx, testBar("GSPC", ts, 100))
	aggregator.OnBar(runCtx, testBar("GSPC", ts.Add(24*time.Hour), 102))

	aggregator.Reset()

	aggregator.OnBar(runCtx, testBar("GDAXI", ts.Add(48*time.Hour), 200))
	aggregator.OnBar(runCtx, testBar("GDAXI", ts.Add(72*time.Hour), 210))

	wg.Wait()
	cancel()
	<-router.Done()

	if len(returns) != 2 {
		t.Fatalf("Expected 2 returns, got %d", len(returns))
	}
	if got, want := returns[1].Value, math.Log(210.0/200.0); got != want {
		t.Errorf("Expected post-reset return %v, got %v", want, got)
	}
	if returns[1].Symbol != "GDAXI" {
		t.Errorf("Expected post-reset symbol GDAXI, got %q", returns[1].Symbol)
	}
}
