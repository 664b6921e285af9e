package middleware

import (
	"context"
	"testing"

	"github.com/peter-kozarec/aphelion/pkg/bus"
	"github.com/peter-kozarec/aphelion/pkg/common"
)

func TestMiddleware_Chain(t *testing.T) {
	type handler func(int) int

	add10 := func(h handler) handler {
		return func(n int) int {
			return h(n) + 10
		}
	}

	multiply2 := func(h handler) handler {
		return func(n int) int {
			return h(n) * 2
		}
	}

	base := func(n int) int {
		return n
	}

	chained := Chain(add10, multiply2)(base)
	result := chained(5)

	if result != 20 {
		t.Errorf("Expected 20, got %d", result)
	}
}

func TestMiddleware_ChainEmpty(t *testing.T) {
	base := func(s string) string {
		return s
	}

	chained := Chain[func(string) string]()(base)
	result := chained("test")

	if result != "test" {
		t.Errorf("Expected 'test', got %s", result)
	}
}

func TestMiddleware_ChainOrder(t *testing.T) {
	var order []string

	mark := func(name string) func(bus.ReturnEventHandler) bus.ReturnEventHandler {
		return func(h bus.ReturnEventHandler) bus.ReturnEventHandler {
			return func(ctx context.Context, ret common.Return) {
				order = append(order, name)
				h(ctx, ret)
			}
		}
	}

	base := func(ctx context.Context, ret common.Return) {
		order = append(order, "base")
	}

	chained := Chain(mark("outer"), mark("inner"))(base)
	chained(context.Background(), common.Return{Value: 0.002})

	expected := []string{"outer", "inner", "base"}
	if len(order) != len(expected) {
		t.Fatalf("Expected %d calls, got %d", len(expected), len(order))
	}
	for i, v := range order {
		if v != expected[i] {
			t.Errorf("At index %d: expected %s, got %s", i, expected[i], v)
		}
	}
}

func TestMiddleware_ChainWithEventMiddleware(t *testing.T) {
	logger, logs := newObservedLogger()

	monitor := NewMonitor(logger, MonitorReturns)
	performance := NewPerformance(logger)

	var handled bool
	base := func(ctx context.Context, ret common.Return) {
		handled = true
	}

	chained := Chain(performance.WithReturn, monitor.WithReturn)(base)
	chained(context.Background(), common.Return{Value: -0.007})

	if !handled {
		t.Error("Base handler not called")
	}

	if performance.returnEventCounter != 1 {
		t.Errorf("Expected returnEventCounter=1, got %d", performance.returnEventCounter)
	}

	if logs.FilterMessage("event").Len() != 1 {
		t.Error("Monitor log entry not found")
	}
}
