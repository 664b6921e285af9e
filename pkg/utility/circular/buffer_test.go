package circular

import (
	"slices"
	"testing"
)

func TestBuffer_GetNewestFirst(t *testing.T) {
	b := NewBuffer[int](4)
	for v := 1; v <= 6; v++ {
		b.Push(v)
	}

	// 1 and 2 were evicted, Get(0) is the newest survivor.
	for idx, want := range []int{6, 5, 4, 3} {
		if got := b.Get(uint(idx)); got != want {
			t.Errorf("Get(%d) = %d, want %d", idx, got, want)
		}
	}
	if b.First() != 6 {
		t.Errorf("First() = %d, want 6", b.First())
	}
	if b.Last() != 3 {
		t.Errorf("Last() = %d, want 3", b.Last())
	}
}

func TestBuffer_PartialFill(t *testing.T) {
	b := NewBuffer[string](8)

	if !b.IsEmpty() {
		t.Error("fresh buffer should be empty")
	}

	b.Push("a")
	b.Push("b")

	if b.Size() != 2 || b.Capacity() != 8 {
		t.Errorf("Size() = %d, Capacity() = %d, want 2 and 8", b.Size(), b.Capacity())
	}
	if b.IsFull() || b.IsEmpty() {
		t.Error("buffer with 2 of 8 entries should be neither full nor empty")
	}
	if b.Get(0) != "b" || b.Get(1) != "a" {
		t.Errorf("Get order wrong: got %q, %q", b.Get(0), b.Get(1))
	}
	if b.Last() != "a" {
		t.Errorf("Last() = %q, want a", b.Last())
	}
}

func TestBuffer_Data(t *testing.T) {
	b := NewBuffer[int](3)

	b.Push(10)
	if got := b.Data(); !slices.Equal(got, []int{10}) {
		t.Errorf("Data() = %v, want [10]", got)
	}

	b.Push(20)
	b.Push(30)
	b.Push(40)
	if got := b.Data(); !slices.Equal(got, []int{20, 30, 40}) {
		t.Errorf("Data() = %v, want [20 30 40]", got)
	}
}

func TestBuffer_Clear(t *testing.T) {
	b := NewBuffer[int](3)
	b.Push(1)
	b.Push(2)
	b.Push(3)
	b.Push(4)

	b.Clear()

	if !b.IsEmpty() || b.Size() != 0 {
		t.Errorf("Size() = %d after Clear, want 0", b.Size())
	}

	b.Push(7)
	if b.Get(0) != 7 || b.Size() != 1 {
		t.Errorf("Get(0) = %d, Size() = %d after refill, want 7 and 1", b.Get(0), b.Size())
	}
}

func TestBuffer_GetOutOfRangePanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("Get past the fill level should panic")
		}
	}()

	b := NewBuffer[int](4)
	b.Push(1)
	b.Get(1)
}

func TestBuffer_ZeroCapacityPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("NewBuffer(0) should panic")
		}
	}()
	NewBuffer[int](0)
}
