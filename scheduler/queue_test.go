package scheduler

import "testing"

func TestPriorityQueue_PopOrder(t *testing.T) {
	pq := NewPriorityQueue(func(j *Job) int { return j.Priority })

	// Push jobs in random priority order
	jobs := []*Job{
		{ID: "low", Priority: 10},
		{ID: "high", Priority: 1},
		{ID: "mid", Priority: 5},
		{ID: "urgent", Priority: 0},
		{ID: "mid2", Priority: 5},
	}
	for _, j := range jobs {
		pq.Push(j)
	}

	if pq.Len() != 5 {
		t.Fatalf("expected len 5, got %d", pq.Len())
	}

	// Equal priorities come out in push order, so mid precedes mid2
	expected := []string{"urgent", "high", "mid", "mid2", "low"}
	for _, want := range expected {
		got := pq.Pop()
		if got == nil {
			t.Fatalf("expected %s, got nil", want)
		}
		if got.ID != want {
			t.Errorf("expected %s, got %s", want, got.ID)
		}
	}
}

func TestPriorityQueue_TiesKeepAdmissionOrder(t *testing.T) {
	pq := NewPriorityQueue(func(j *Job) int { return j.Burst })

	for _, id := range []string{"a", "b", "c", "d", "e", "f", "g"} {
		pq.Push(&Job{ID: id, Burst: 3})
	}
	pq.Push(&Job{ID: "short", Burst: 1})

	if got := pq.Pop(); got.ID != "short" {
		t.Fatalf("expected short first, got %s", got.ID)
	}
	for _, want := range []string{"a", "b", "c", "d", "e", "f", "g"} {
		if got := pq.Pop(); got.ID != want {
			t.Errorf("expected %s, got %s", want, got.ID)
		}
	}
}

func TestPriorityQueue_Empty(t *testing.T) {
	pq := NewPriorityQueue(func(j *Job) int { return j.Priority })

	if pq.Len() != 0 {
		t.Fatalf("expected empty queue, got len %d", pq.Len())
	}
	if got := pq.Pop(); got != nil {
		t.Fatalf("expected nil from empty queue, got %s", got.ID)
	}

	// Push one, pop one, verify empty again
	pq.Push(&Job{ID: "only", Priority: 3})
	got := pq.Pop()
	if got.ID != "only" {
		t.Errorf("expected 'only', got %s", got.ID)
	}
	if pq.Len() != 0 {
		t.Errorf("expected empty after pop, got len %d", pq.Len())
	}
}

func TestFIFOQueue_Order(t *testing.T) {
	q := &FIFOQueue{}
	if got := q.Pop(); got != nil {
		t.Fatalf("expected nil from empty queue, got %s", got.ID)
	}

	q.Push(&Job{ID: "first"})
	q.Push(&Job{ID: "second"})
	if got := q.Pop(); got.ID != "first" {
		t.Errorf("expected first, got %s", got.ID)
	}

	// A requeued job goes behind everything already waiting
	q.Push(&Job{ID: "first"})
	for _, want := range []string{"second", "first"} {
		if got := q.Pop(); got.ID != want {
			t.Errorf("expected %s, got %s", want, got.ID)
		}
	}
	if q.Len() != 0 {
		t.Errorf("expected empty queue, got len %d", q.Len())
	}
}
