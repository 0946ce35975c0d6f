package queue

import (
	"testing"
)

// Interface compliance check
var _ Queue[string] = (*Ring[string])(nil)

// =============================================================================
// Constructor Tests
// =============================================================================

func TestNewRing(t *testing.T) {
	tests := []struct {
		name         string
		limit        int
		wantCapacity int
		wantBounded  bool
	}{
		{"unbounded_zero", 0, 0, false},
		{"unbounded_negative", -3, 0, false},
		{"bounded_small", 2, 2, true},
		{"bounded_non_power_of_two", 100, 100, true},
		{"bounded_one", 1, 1, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := NewRing[int](tt.limit)
			if got := r.Capacity(); got != tt.wantCapacity {
				t.Errorf("Capacity() = %d, want %d", got, tt.wantCapacity)
			}
			if got := r.Bounded(); got != tt.wantBounded {
				t.Errorf("Bounded() = %v, want %v", got, tt.wantBounded)
			}
			if !r.IsEmpty() {
				t.Error("new ring should be empty")
			}
		})
	}
}

// =============================================================================
// Enqueue / Dequeue Tests
// =============================================================================

func TestRing_BoundedLimit(t *testing.T) {
	tests := []struct {
		name   string
		limit  int
		items  []int
		wantOk []bool
	}{
		{"fill_to_limit", 3, []int{1, 2, 3}, []bool{true, true, true}},
		{"exceed_limit", 3, []int{1, 2, 3, 4}, []bool{true, true, true, false}},
		{"limit_one", 1, []int{1, 2}, []bool{true, false}},
		{"zero_values", 2, []int{0, 0, 0}, []bool{true, true, false}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := NewRing[int](tt.limit)
			for i, item := range tt.items {
				if got := r.Enqueue(item); got != tt.wantOk[i] {
					t.Errorf("Enqueue(%d) = %v, want %v", item, got, tt.wantOk[i])
				}
			}
			if r.Len() > tt.limit {
				t.Errorf("Len() = %d exceeds limit %d", r.Len(), tt.limit)
			}
		})
	}
}

func TestRing_FIFOOrderAcrossGrowth(t *testing.T) {
	r := NewRing[int](0)
	const n = 1000

	for i := 0; i < n; i++ {
		if !r.Enqueue(i) {
			t.Fatalf("unbounded Enqueue(%d) failed", i)
		}
	}
	if r.Len() != n {
		t.Fatalf("Len() = %d, want %d", r.Len(), n)
	}

	for i := 0; i < n; i++ {
		v, ok := r.Dequeue()
		if !ok || v != i {
			t.Fatalf("Dequeue() = (%d, %v), want (%d, true)", v, ok, i)
		}
	}

	if _, ok := r.Dequeue(); ok {
		t.Error("Dequeue on drained ring should return false")
	}
}

func TestRing_WrapAround(t *testing.T) {
	r := NewRing[int](4)

	// Move head forward so later writes wrap past the end of the buffer.
	for round := 0; round < 10; round++ {
		for i := 0; i < 3; i++ {
			r.Enqueue(round*10 + i)
		}
		for i := 0; i < 3; i++ {
			v, ok := r.Dequeue()
			if !ok || v != round*10+i {
				t.Fatalf("round %d: Dequeue() = (%d, %v), want %d", round, v, ok, round*10+i)
			}
		}
	}
}

func TestRing_InterleavedGrowAndShrink(t *testing.T) {
	r := NewRing[int](0)
	next, want := 0, 0

	for step := 0; step < 50; step++ {
		for i := 0; i < 40; i++ {
			r.Enqueue(next)
			next++
		}
		for i := 0; i < 35; i++ {
			v, ok := r.Dequeue()
			if !ok || v != want {
				t.Fatalf("Dequeue() = (%d, %v), want %d", v, ok, want)
			}
			want++
		}
	}

	for !r.IsEmpty() {
		v, _ := r.Dequeue()
		if v != want {
			t.Fatalf("tail drain got %d, want %d", v, want)
		}
		want++
	}
	if want != next {
		t.Errorf("drained %d items, enqueued %d", want, next)
	}
}

func TestRing_Peek(t *testing.T) {
	r := NewRing[string](2)

	if _, ok := r.Peek(); ok {
		t.Error("Peek on empty ring should return false")
	}

	r.Enqueue("a")
	r.Enqueue("b")

	v, ok := r.Peek()
	if !ok || v != "a" {
		t.Errorf("Peek() = (%q, %v), want (\"a\", true)", v, ok)
	}
	if r.Len() != 2 {
		t.Errorf("Peek must not remove items, Len() = %d", r.Len())
	}
}

func TestRing_Clear(t *testing.T) {
	r := NewRing[int](0)
	if got := r.Clear(); got != nil {
		t.Errorf("Clear() on empty ring = %v, want nil", got)
	}

	for i := 1; i <= 5; i++ {
		r.Enqueue(i)
	}

	got := r.Clear()
	want := []int{1, 2, 3, 4, 5}
	if len(got) != len(want) {
		t.Fatalf("Clear() returned %d items, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("Clear()[%d] = %d, want %d", i, got[i], want[i])
		}
	}
	if !r.IsEmpty() {
		t.Error("ring should be empty after Clear")
	}
}

func TestRing_IsFull(t *testing.T) {
	bounded := NewRing[int](2)
	bounded.Enqueue(1)
	if bounded.IsFull() {
		t.Error("ring with 1/2 items should not be full")
	}
	bounded.Enqueue(2)
	if !bounded.IsFull() {
		t.Error("ring with 2/2 items should be full")
	}

	unbounded := NewRing[int](0)
	for i := 0; i < 100; i++ {
		unbounded.Enqueue(i)
	}
	if unbounded.IsFull() {
		t.Error("unbounded ring should never be full")
	}
}
