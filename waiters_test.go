package jobcache

import "testing"

func TestWaiterListOrdersByThreshold(t *testing.T) {
	w := newWaiterList()
	w.register(Bounded(30))
	w.register(Bounded(10))
	w.register(AnyThreshold())
	w.register(Bounded(20))

	if w.len() != 4 {
		t.Fatalf("len = %d, want 4", w.len())
	}

	top, ok := w.highest()
	if !ok || !top.threshold.IsAny() {
		t.Fatalf("highest should be the any-threshold waiter, got %+v", top)
	}

	order := []int{}
	for {
		e, ok := w.removeHighest()
		if !ok {
			break
		}
		if e.threshold.IsAny() {
			order = append(order, -1)
			continue
		}
		order = append(order, e.threshold.Bound())
	}
	want := []int{-1, 30, 20, 10}
	if len(order) != len(want) {
		t.Fatalf("order = %v, want %v", order, want)
	}
	for i := range want {
		if order[i] != want[i] {
			t.Fatalf("order = %v, want %v", order, want)
		}
	}
}

func TestWaiterListCountAny(t *testing.T) {
	w := newWaiterList()
	w.register(Bounded(5))
	w.register(AnyThreshold())
	w.register(AnyThreshold())

	if got := w.countAny(); got != 2 {
		t.Fatalf("countAny = %d, want 2", got)
	}
}

func TestWaiterListRemove(t *testing.T) {
	w := newWaiterList()
	a := w.register(Bounded(5))
	b := w.register(Bounded(10))

	w.remove(a)
	if w.len() != 1 {
		t.Fatalf("len after remove = %d, want 1", w.len())
	}
	top, _ := w.highest()
	if top != b {
		t.Fatal("remaining waiter should be b")
	}

	// removing again is a no-op
	w.remove(a)
	if w.len() != 1 {
		t.Fatalf("len after redundant remove = %d, want 1", w.len())
	}
}
