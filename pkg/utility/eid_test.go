package utility

import (
	"sync"
	"testing"
)

func TestUtility_GetExecutionIDStable(t *testing.T) {
	id := GetExecutionID()

	if id.Version() != 7 {
		t.Errorf("expected UUID v7, got v%d", id.Version())
	}
	if GetExecutionID() != id {
		t.Error("repeated calls should return the same id")
	}
}

func TestUtility_ResetExecutionID(t *testing.T) {
	old := GetExecutionID()
	fresh := ResetExecutionID()

	if fresh == old {
		t.Error("reset should produce a new id")
	}
	if GetExecutionID() != fresh {
		t.Error("get after reset should return the reset id")
	}
}

func TestUtility_ExecutionIDConcurrent(t *testing.T) {
	const goroutines = 64

	ids := make([]ExecutionID, goroutines)
	var wg sync.WaitGroup
	wg.Add(goroutines)
	for i := range ids {
		go func(i int) {
			defer wg.Done()
			ids[i] = GetExecutionID()
		}(i)
	}
	wg.Wait()

	for i := 1; i < goroutines; i++ {
		if ids[i] != ids[0] {
			t.Fatalf("goroutine %d observed a different id", i)
		}
	}
}
