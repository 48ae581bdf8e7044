// Package notify renders the notifications the manager sends to customers.
package notify

import (
	"fmt"
	"time"

	"github.com/marcus/workshop/internal/customers"
	"github.com/marcus/workshop/internal/hours"
)

// Audience selects which customer partition receives a notification.
type Audience int

const (
	Registered Audience = iota
	Unregistered
)

func (a Audience) String() string {
	if a == Unregistered {
		return "unregistered"
	}
	return "registered"
}

// Notification is a message addressed to a single customer.
type Notification struct {
	CustomerID int
	Customer   string
	Audience   Audience
	Message    string
}

// Text is the line printed when the notification goes out.
func (n Notification) Text() string {
	return fmt.Sprintf("Notification sent to %s customer %s: %s", n.Audience, n.Customer, n.Message)
}

// Notifier fans a message out to a list of customers.
type Notifier struct {
	slots *hours.Slots
	now   func() time.Time
}

// New creates a Notifier. slots may be nil, in which case no booking
// hint is appended.
func New(slots *hours.Slots) *Notifier {
	return &Notifier{slots: slots, now: time.Now}
}

// Send builds one notification per customer. Customers are not contacted
// in any real sense; the returned values are what the console prints.
func (n *Notifier) Send(audience Audience, list []*customers.Customer, message string) []Notification {
	out := make([]Notification, 0, len(list))
	for _, c := range list {
		out = append(out, Notification{
			CustomerID: c.ID,
			Customer:   c.Name,
			Audience:   audience,
			Message:    message,
		})
	}
	return out
}

// NextSlotLine returns a booking hint such as
// "Next service slot: Mon Oct 19 09:00", or "" without a schedule.
func (n *Notifier) NextSlotLine() string {
	if n.slots == nil {
		return ""
	}
	next := n.slots.Next(n.now())
	if next.IsZero() {
		return ""
	}
	return "Next service slot: " + hours.Format(next)
}
