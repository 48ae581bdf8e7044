package tasks

import (
	"container/heap"
	"sort"
)

// Queue holds pending tasks ordered by priority, highest first.
// Tasks of equal priority come out in the order they were added.
type Queue struct {
	h       taskHeap
	nextSeq uint64
}

// NewQueue creates an empty task queue.
func NewQueue() *Queue {
	return &Queue{}
}

// Add queues a task. Any priority value is accepted.
func (q *Queue) Add(t *Task) {
	if t == nil {
		return
	}
	q.nextSeq++
	t.seq = q.nextSeq
	heap.Push(&q.h, t)
}

// Next removes and returns the highest priority task.
// Returns false if the queue is empty.
func (q *Queue) Next() (*Task, bool) {
	if len(q.h) == 0 {
		return nil, false
	}
	return heap.Pop(&q.h).(*Task), true
}

// Remove takes a specific task out of the queue, wherever it sits.
// Returns false if the task is not queued.
func (q *Queue) Remove(t *Task) bool {
	for i, queued := range q.h {
		if queued == t {
			heap.Remove(&q.h, i)
			return true
		}
	}
	return false
}

// IsEmpty reports whether no pending tasks remain.
func (q *Queue) IsEmpty() bool {
	return len(q.h) == 0
}

// Len returns the number of queued tasks.
func (q *Queue) Len() int {
	return len(q.h)
}

// List returns a snapshot of the queued tasks in priority order.
// Positions in this slice (1-based) are what callers use to pick a task.
func (q *Queue) List() []*Task {
	out := make([]*Task, len(q.h))
	copy(out, q.h)
	sort.Slice(out, func(i, j int) bool {
		return higher(out[i], out[j])
	})
	return out
}

// higher reports whether a should be served before b.
func higher(a, b *Task) bool {
	if a.Priority != b.Priority {
		return a.Priority > b.Priority
	}
	return a.seq < b.seq
}

// taskHeap implements heap.Interface as a max-heap on priority.
type taskHeap []*Task

func (h taskHeap) Len() int           { return len(h) }
func (h taskHeap) Less(i, j int) bool { return higher(h[i], h[j]) }
func (h taskHeap) Swap(i, j int)      { h[i], h[j] = h[j], h[i] }

func (h *taskHeap) Push(x any) {
	*h = append(*h, x.(*Task))
}

func (h *taskHeap) Pop() any {
	old := *h
	n := len(old)
	t := old[n-1]
	old[n-1] = nil
	*h = old[:n-1]
	return t
}
