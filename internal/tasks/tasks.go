// Package tasks defines repair tasks and the priority queue of pending work.
// A task is created Pending, waits in the Queue, and is then handed to
// exactly one mechanic who eventually marks it Completed.
package tasks

import (
	"fmt"
	"time"
)

// Status is the lifecycle state of a task.
type Status int

const (
	StatusPending Status = iota
	StatusCompleted
)

func (s Status) String() string {
	switch s {
	case StatusPending:
		return "Pending"
	case StatusCompleted:
		return "Completed"
	default:
		return "Unknown"
	}
}

// Task represents a unit of repair work on a customer's vehicle.
type Task struct {
	ID             int
	Description    string
	VehicleDetails string // copied from the customer at creation
	Priority       int    // higher is more urgent
	CreatedAt      time.Time

	status Status
	seq    uint64 // queue insertion order, used for tie-breaking
}

// New creates a pending task.
func New(id int, description, vehicleDetails string, priority int) *Task {
	return &Task{
		ID:             id,
		Description:    description,
		VehicleDetails: vehicleDetails,
		Priority:       priority,
		CreatedAt:      time.Now(),
		status:         StatusPending,
	}
}

// Status returns the current status.
func (t *Task) Status() Status {
	return t.status
}

// IsCompleted reports whether the task has been completed.
func (t *Task) IsCompleted() bool {
	return t.status == StatusCompleted
}

// Complete marks the task as completed. There is no way back to Pending.
func (t *Task) Complete() {
	t.status = StatusCompleted
}

func (t *Task) String() string {
	return fmt.Sprintf("Task{description=%q, vehicleDetails=%q, priority=%d, status=%s}",
		t.Description, t.VehicleDetails, t.Priority, t.status)
}
