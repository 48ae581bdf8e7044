// Package staff holds the people who work in the shop: the manager and the
// mechanics who own assigned tasks.
package staff

import (
	"strings"

	"github.com/marcus/workshop/internal/tasks"
)

// Manager runs the front desk. It shares nothing structural with Mechanic.
type Manager struct {
	ID   int
	Name string
}

// Mechanic owns the tasks assigned to them.
type Mechanic struct {
	ID   int
	Name string

	assigned []*tasks.Task
}

// NewMechanic creates a mechanic with no assigned work.
func NewMechanic(id int, name string) *Mechanic {
	return &Mechanic{ID: id, Name: name}
}

// Assign takes ownership of a task.
func (m *Mechanic) Assign(t *tasks.Task) {
	m.assigned = append(m.assigned, t)
}

// Tasks returns a snapshot of assigned tasks in assignment order.
func (m *Mechanic) Tasks() []*tasks.Task {
	out := make([]*tasks.Task, len(m.assigned))
	copy(out, m.assigned)
	return out
}

// TaskAt returns the task at a 1-based position in the assigned list.
func (m *Mechanic) TaskAt(pos int) (*tasks.Task, bool) {
	if pos < 1 || pos > len(m.assigned) {
		return nil, false
	}
	return m.assigned[pos-1], true
}

// Pending returns the number of assigned tasks not yet completed.
func (m *Mechanic) Pending() int {
	n := 0
	for _, t := range m.assigned {
		if !t.IsCompleted() {
			n++
		}
	}
	return n
}

// Roster is the list of mechanics, in the order they were hired.
type Roster struct {
	mechanics []*Mechanic
}

// NewRoster creates an empty roster.
func NewRoster() *Roster {
	return &Roster{}
}

// Add hires a mechanic. Ids follow the roster size, starting at 1.
func (r *Roster) Add(name string) *Mechanic {
	m := NewMechanic(len(r.mechanics)+1, name)
	r.mechanics = append(r.mechanics, m)
	return m
}

// FindByID looks up a mechanic by id.
func (r *Roster) FindByID(id int) (*Mechanic, bool) {
	for _, m := range r.mechanics {
		if m.ID == id {
			return m, true
		}
	}
	return nil, false
}

// FindByName looks up a mechanic by name, ignoring case.
func (r *Roster) FindByName(name string) (*Mechanic, bool) {
	for _, m := range r.mechanics {
		if strings.EqualFold(m.Name, name) {
			return m, true
		}
	}
	return nil, false
}

// List returns a snapshot of all mechanics.
func (r *Roster) List() []*Mechanic {
	out := make([]*Mechanic, len(r.mechanics))
	copy(out, r.mechanics)
	return out
}

// IsEmpty reports whether nobody has been hired yet.
func (r *Roster) IsEmpty() bool {
	return len(r.mechanics) == 0
}

// Len returns the number of mechanics.
func (r *Roster) Len() int {
	return len(r.mechanics)
}
