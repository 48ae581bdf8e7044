package tasks

import (
	"math/rand/v2"
	"testing"
)

func priorities(list []*Task) []int {
	out := make([]int, len(list))
	for i, t := range list {
		out[i] = t.Priority
	}
	return out
}

func equalInts(a, b []int) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func TestNewTaskIsPending(t *testing.T) {
	task := New(1, "Fix Engine", "ABC123", 5)
	if task.Status() != StatusPending {
		t.Errorf("Status() = %v, want Pending", task.Status())
	}
	if task.IsCompleted() {
		t.Error("IsCompleted() = true for new task")
	}
	if task.CreatedAt.IsZero() {
		t.Error("CreatedAt not set")
	}
}

func TestCompleteIsOneWay(t *testing.T) {
	task := New(1, "Fix Engine", "ABC123", 5)
	task.Complete()
	if task.Status() != StatusCompleted {
		t.Fatalf("Status() = %v, want Completed", task.Status())
	}
	task.Complete()
	if task.Status() != StatusCompleted {
		t.Errorf("second Complete() changed status to %v", task.Status())
	}
}

func TestStatusString(t *testing.T) {
	tests := []struct {
		status Status
		want   string
	}{
		{StatusPending, "Pending"},
		{StatusCompleted, "Completed"},
		{Status(42), "Unknown"},
	}
	for _, tt := range tests {
		if got := tt.status.String(); got != tt.want {
			t.Errorf("Status(%d).String() = %q, want %q", tt.status, got, tt.want)
		}
	}
}

func TestQueueListOrdersByPriority(t *testing.T) {
	q := NewQueue()
	q.Add(New(1, "a", "V1", 5))
	q.Add(New(2, "b", "V2", 9))
	q.Add(New(3, "c", "V3", 1))

	got := priorities(q.List())
	want := []int{9, 5, 1}
	if !equalInts(got, want) {
		t.Errorf("List() priorities = %v, want %v", got, want)
	}
}

func TestQueueTiesAreFIFO(t *testing.T) {
	q := NewQueue()
	first := New(1, "first", "V1", 3)
	second := New(2, "second", "V2", 3)
	third := New(3, "third", "V3", 3)
	q.Add(first)
	q.Add(second)
	q.Add(third)

	list := q.List()
	if list[0] != first || list[1] != second || list[2] != third {
		t.Errorf("List() order = %v, want insertion order", list)
	}

	for _, want := range []*Task{first, second, third} {
		got, ok := q.Next()
		if !ok || got != want {
			t.Errorf("Next() = %v, want %v", got, want)
		}
	}
}

func TestQueueAcceptsAnyPriority(t *testing.T) {
	q := NewQueue()
	q.Add(New(1, "neg", "V", -4))
	q.Add(New(2, "zero", "V", 0))
	q.Add(New(3, "dup", "V", 0))
	q.Add(nil)

	if q.Len() != 3 {
		t.Fatalf("Len() = %d, want 3", q.Len())
	}
	got := priorities(q.List())
	if !equalInts(got, []int{0, 0, -4}) {
		t.Errorf("List() priorities = %v, want [0 0 -4]", got)
	}
}

func TestQueueNext(t *testing.T) {
	q := NewQueue()
	if task, ok := q.Next(); ok || task != nil {
		t.Fatalf("Next() on empty queue = %v, %v", task, ok)
	}

	q.Add(New(1, "low", "V", 1))
	q.Add(New(2, "high", "V", 7))

	task, ok := q.Next()
	if !ok || task.Description != "high" {
		t.Fatalf("Next() = %v, want high", task)
	}
	if q.Len() != 1 {
		t.Errorf("Len() = %d after Next, want 1", q.Len())
	}
}

func TestQueueRemove(t *testing.T) {
	q := NewQueue()
	a := New(1, "a", "V", 4)
	b := New(2, "b", "V", 8)
	c := New(3, "c", "V", 2)
	q.Add(a)
	q.Add(b)
	q.Add(c)

	if !q.Remove(a) {
		t.Fatal("Remove(a) = false, want true")
	}
	for _, queued := range q.List() {
		if queued == a {
			t.Error("queue still lists removed task")
		}
	}
	got := priorities(q.List())
	if !equalInts(got, []int{8, 2}) {
		t.Errorf("List() after Remove = %v, want [8 2]", got)
	}

	// Removing something not queued is a no-op.
	if q.Remove(a) {
		t.Error("second Remove(a) = true, want false")
	}
	if q.Remove(New(9, "stranger", "V", 8)) {
		t.Error("Remove(unknown) = true, want false")
	}
	if q.Len() != 2 {
		t.Errorf("Len() = %d, want 2", q.Len())
	}
}

func TestQueueObserversDoNotMutate(t *testing.T) {
	q := NewQueue()
	q.Add(New(1, "a", "V", 3))
	q.Add(New(2, "b", "V", 6))

	before := priorities(q.List())
	for i := 0; i < 3; i++ {
		_ = q.IsEmpty()
		list := q.List()
		list[0] = nil
	}
	after := priorities(q.List())
	if !equalInts(before, after) || q.Len() != 2 {
		t.Errorf("queue changed by observers: before %v, after %v", before, after)
	}
}

func TestQueueStaysSortedUnderRandomOps(t *testing.T) {
	r := rand.New(rand.NewPCG(1, 2))
	q := NewQueue()
	var added []*Task

	for i := 0; i < 200; i++ {
		switch r.IntN(4) {
		case 0:
			if len(added) > 0 {
				q.Remove(added[r.IntN(len(added))])
			}
		case 1:
			q.Next()
		default:
			task := New(i, "t", "V", r.IntN(10)-3)
			added = append(added, task)
			q.Add(task)
		}

		list := q.List()
		for j := 1; j < len(list); j++ {
			if list[j-1].Priority < list[j].Priority {
				t.Fatalf("step %d: list not sorted: %v", i, priorities(list))
			}
		}
		if q.IsEmpty() != (len(list) == 0) {
			t.Fatalf("step %d: IsEmpty() disagrees with List()", i)
		}
	}
}
