package workshop

import (
	"context"
	"errors"

	"github.com/marcus/workshop/internal/customers"
	"github.com/marcus/workshop/internal/journal"
	"github.com/marcus/workshop/internal/notify"
	"github.com/marcus/workshop/internal/staff"
)

// RegisterCustomer adds a registered customer.
func (s *Shop) RegisterCustomer(ctx context.Context, d customers.Details) *customers.Customer {
	c := s.customers.Register(d)
	s.log.InfoCtx("customer registered", map[string]any{"customer_id": c.ID})
	s.record(ctx, journal.Event{Kind: journal.KindCustomerRegistered, CustomerID: c.ID, Detail: c.Name})
	return c
}

// AddWalkIn adds an unregistered walk-in customer.
func (s *Shop) AddWalkIn(ctx context.Context, d customers.Details) *customers.Customer {
	c := s.customers.AddWalkIn(d)
	s.log.InfoCtx("walk-in added", map[string]any{"customer_id": c.ID})
	s.record(ctx, journal.Event{Kind: journal.KindWalkInAdded, CustomerID: c.ID, Detail: c.Name})
	return c
}

// UpgradeCustomer registers the walk-in at pos (1-based) in the
// unregistered list. Id and details are unchanged.
func (s *Shop) UpgradeCustomer(ctx context.Context, pos int) (*customers.Customer, error) {
	c, err := s.customers.Upgrade(pos)
	switch {
	case errors.Is(err, customers.ErrNoUnregistered):
		return nil, ErrNoUnregisteredCustomers
	case errors.Is(err, customers.ErrInvalidPosition):
		return nil, ErrInvalidPosition
	case err != nil:
		return nil, err
	}
	s.log.InfoCtx("customer upgraded", map[string]any{"customer_id": c.ID})
	s.record(ctx, journal.Event{Kind: journal.KindCustomerUpgraded, CustomerID: c.ID, Detail: c.Name})
	return c, nil
}

// FindCustomer looks a customer up by id in either list.
func (s *Shop) FindCustomer(id int) (*customers.Customer, bool) {
	return s.customers.FindByID(id)
}

// RegisteredCustomers returns registered customers in the order added.
func (s *Shop) RegisteredCustomers() []*customers.Customer {
	return s.customers.Registered()
}

// UnregisteredCustomers returns walk-in customers in the order added.
func (s *Shop) UnregisteredCustomers() []*customers.Customer {
	return s.customers.Unregistered()
}

// Notify sends a message to every customer in the audience and returns
// what was sent.
func (s *Shop) Notify(ctx context.Context, audience notify.Audience, message string) []notify.Notification {
	list := s.customers.Registered()
	if audience == notify.Unregistered {
		list = s.customers.Unregistered()
	}
	sent := s.notifier.Send(audience, list, message)
	s.log.InfoCtx("notifications sent", map[string]any{
		"audience": audience.String(),
		"count":    len(sent),
	})
	for _, n := range sent {
		s.record(ctx, journal.Event{Kind: journal.KindNotificationSent, CustomerID: n.CustomerID, Detail: message})
	}
	return sent
}

// NextSlotLine returns the booking hint appended to notifications, if any.
func (s *Shop) NextSlotLine() string {
	return s.notifier.NextSlotLine()
}

// AddMechanic hires a mechanic. Ids are sequential from 1.
func (s *Shop) AddMechanic(ctx context.Context, name string) (*staff.Mechanic, error) {
	name, err := cleanName(name)
	if err != nil {
		return nil, err
	}
	m := s.roster.Add(name)
	s.log.InfoCtx("mechanic added", map[string]any{"mechanic_id": m.ID})
	s.record(ctx, journal.Event{Kind: journal.KindMechanicAdded, MechanicID: m.ID, Detail: m.Name})
	return m, nil
}

// Mechanics returns every mechanic in hiring order.
func (s *Shop) Mechanics() []*staff.Mechanic {
	return s.roster.List()
}

// HasMechanics reports whether anyone has been hired.
func (s *Shop) HasMechanics() bool {
	return !s.roster.IsEmpty()
}

// MechanicByID looks a mechanic up by id.
func (s *Shop) MechanicByID(id int) (*staff.Mechanic, error) {
	m, ok := s.roster.FindByID(id)
	if !ok {
		return nil, ErrMechanicNotFound
	}
	return m, nil
}

// MechanicByName looks a mechanic up by name, ignoring case.
func (s *Shop) MechanicByName(name string) (*staff.Mechanic, error) {
	m, ok := s.roster.FindByName(name)
	if !ok {
		return nil, ErrMechanicNotFound
	}
	return m, nil
}
