package workshop

import (
	"context"

	"github.com/marcus/workshop/internal/journal"
	"github.com/marcus/workshop/internal/staff"
	"github.com/marcus/workshop/internal/tasks"
)

// CreateTask queues a new pending task for a customer's vehicle. The
// customer is looked up among registered customers first, then walk-ins.
func (s *Shop) CreateTask(ctx context.Context, customerID int, description string, priority int) (*tasks.Task, error) {
	c, ok := s.customers.FindByID(customerID)
	if !ok {
		return nil, ErrCustomerNotFound
	}

	t := tasks.New(s.nextTaskID, description, c.VehicleNumber, priority)
	s.nextTaskID++
	s.queue.Add(t)

	s.log.InfoCtx("task created", map[string]any{
		"task_id":     t.ID,
		"customer_id": c.ID,
		"priority":    priority,
	})
	s.record(ctx, journal.Event{
		Kind:       journal.KindTaskCreated,
		TaskID:     t.ID,
		CustomerID: c.ID,
		Priority:   priority,
		Detail:     description,
	})
	return t, nil
}

// PendingTasks returns the queue in priority order. A task's 1-based
// position in this slice is what AssignTask expects.
func (s *Shop) PendingTasks() []*tasks.Task {
	return s.queue.List()
}

// CanAssign reports whether an assignment is possible at all. Mechanics
// are checked before tasks.
func (s *Shop) CanAssign() error {
	if s.roster.IsEmpty() {
		return ErrNoMechanics
	}
	if s.queue.IsEmpty() {
		return ErrNoPendingTasks
	}
	return nil
}

// AssignTask moves the pending task at pos (1-based, priority order) to the
// mechanic's list. Any position may be picked, not only the head.
func (s *Shop) AssignTask(ctx context.Context, pos, mechanicID int) (*tasks.Task, *staff.Mechanic, error) {
	if err := s.CanAssign(); err != nil {
		return nil, nil, err
	}

	pending := s.queue.List()
	if pos < 1 || pos > len(pending) {
		return nil, nil, ErrInvalidPosition
	}
	m, ok := s.roster.FindByID(mechanicID)
	if !ok {
		return nil, nil, ErrMechanicNotFound
	}

	t := pending[pos-1]
	s.queue.Remove(t)
	m.Assign(t)
	s.assigned(ctx, t, m)
	return t, m, nil
}

// AssignNext gives the highest priority pending task to the mechanic.
func (s *Shop) AssignNext(ctx context.Context, mechanicID int) (*tasks.Task, *staff.Mechanic, error) {
	if err := s.CanAssign(); err != nil {
		return nil, nil, err
	}
	m, ok := s.roster.FindByID(mechanicID)
	if !ok {
		return nil, nil, ErrMechanicNotFound
	}

	t, _ := s.queue.Next()
	m.Assign(t)
	s.assigned(ctx, t, m)
	return t, m, nil
}

func (s *Shop) assigned(ctx context.Context, t *tasks.Task, m *staff.Mechanic) {
	s.log.InfoCtx("task assigned", map[string]any{
		"task_id":     t.ID,
		"mechanic_id": m.ID,
		"priority":    t.Priority,
		"pending":     s.queue.Len(),
	})
	s.record(ctx, journal.Event{
		Kind:       journal.KindTaskAssigned,
		TaskID:     t.ID,
		MechanicID: m.ID,
		Priority:   t.Priority,
		Detail:     t.Description,
	})
}

// AssignedTasks returns a mechanic's tasks in assignment order.
func (s *Shop) AssignedTasks(mechanicID int) ([]*tasks.Task, error) {
	m, ok := s.roster.FindByID(mechanicID)
	if !ok {
		return nil, ErrMechanicNotFound
	}
	return m.Tasks(), nil
}

// CompleteTask marks the mechanic's task at pos (1-based) as completed.
// The task stays in the mechanic's list. Completing it again is a no-op.
func (s *Shop) CompleteTask(ctx context.Context, mechanicID, pos int) (*tasks.Task, error) {
	m, ok := s.roster.FindByID(mechanicID)
	if !ok {
		return nil, ErrMechanicNotFound
	}
	if len(m.Tasks()) == 0 {
		return nil, ErrNoAssignedTasks
	}
	t, ok := m.TaskAt(pos)
	if !ok {
		return nil, ErrInvalidPosition
	}
	if t.IsCompleted() {
		return t, nil
	}

	t.Complete()
	s.log.InfoCtx("task completed", map[string]any{
		"task_id":     t.ID,
		"mechanic_id": m.ID,
	})
	s.record(ctx, journal.Event{
		Kind:       journal.KindTaskCompleted,
		TaskID:     t.ID,
		MechanicID: m.ID,
		Priority:   t.Priority,
		Detail:     t.Description,
	})
	return t, nil
}
