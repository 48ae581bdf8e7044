// Package workshop holds the shop's in-memory state and the workflows the
// manager and mechanics run against it. A Shop is driven by one console
// session at a time and does no locking of its own.
package workshop

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/marcus/workshop/internal/customers"
	"github.com/marcus/workshop/internal/journal"
	"github.com/marcus/workshop/internal/logging"
	"github.com/marcus/workshop/internal/notify"
	"github.com/marcus/workshop/internal/staff"
	"github.com/marcus/workshop/internal/suppliers"
	"github.com/marcus/workshop/internal/tasks"
)

// Errors returned by workflow operations. None of them leave partial changes.
var (
	ErrCustomerNotFound        = errors.New("customer not found")
	ErrMechanicNotFound        = errors.New("mechanic not found")
	ErrInvalidPosition         = errors.New("invalid position")
	ErrNoPendingTasks          = errors.New("no tasks to assign")
	ErrNoMechanics             = errors.New("no mechanics available")
	ErrNoAssignedTasks         = errors.New("no tasks assigned")
	ErrNoUnregisteredCustomers = errors.New("no unregistered customers available to upgrade")
	ErrEmptyName               = errors.New("name must not be empty")
)

const activityLimit = 100

// Shop is the application state: customers, staff, suppliers and work.
type Shop struct {
	name      string
	manager   staff.Manager
	customers *customers.Registry
	roster    *staff.Roster
	queue     *tasks.Queue
	directory *suppliers.Directory
	notifier  *notify.Notifier
	journal   journal.Recorder
	log       *logging.Logger

	nextTaskID int
	activity   []journal.Event
}

// Option configures a Shop.
type Option func(*Shop)

// WithManager names the manager on duty.
func WithManager(name string) Option {
	return func(s *Shop) {
		s.manager = staff.Manager{ID: 1, Name: name}
	}
}

// WithJournal sends workflow events to r.
func WithJournal(r journal.Recorder) Option {
	return func(s *Shop) {
		if r != nil {
			s.journal = r
		}
	}
}

// WithNotifier replaces the default notifier.
func WithNotifier(n *notify.Notifier) Option {
	return func(s *Shop) {
		if n != nil {
			s.notifier = n
		}
	}
}

// WithLogger replaces the default component logger.
func WithLogger(l *logging.Logger) Option {
	return func(s *Shop) {
		if l != nil {
			s.log = l
		}
	}
}

// New creates an empty shop.
func New(name string, opts ...Option) *Shop {
	s := &Shop{
		name:       name,
		manager:    staff.Manager{ID: 1, Name: "Manager"},
		customers:  customers.NewRegistry(),
		roster:     staff.NewRoster(),
		queue:      tasks.NewQueue(),
		directory:  suppliers.NewDirectory(),
		notifier:   notify.New(nil),
		journal:    journal.Discard{},
		nextTaskID: 1,
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.log == nil {
		s.log = logging.Component("shop")
	}
	return s
}

// Name returns the shop's name.
func (s *Shop) Name() string {
	return s.name
}

// Manager returns the manager on duty.
func (s *Shop) Manager() staff.Manager {
	return s.manager
}

// Activity returns recent events in this session, oldest first.
func (s *Shop) Activity() []journal.Event {
	out := make([]journal.Event, len(s.activity))
	copy(out, s.activity)
	return out
}

// record keeps the event for the board and forwards it to the journal.
// Journal failures are logged and otherwise ignored.
func (s *Shop) record(ctx context.Context, e journal.Event) {
	if e.Time.IsZero() {
		e.Time = time.Now()
	}
	s.activity = append(s.activity, e)
	if len(s.activity) > activityLimit {
		s.activity = s.activity[len(s.activity)-activityLimit:]
	}
	if err := s.journal.Record(ctx, e); err != nil {
		s.log.WarnCtx("journal write failed", map[string]any{
			"kind":  string(e.Kind),
			"error": err.Error(),
		})
	}
}

func cleanName(name string) (string, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return "", ErrEmptyName
	}
	return name, nil
}
