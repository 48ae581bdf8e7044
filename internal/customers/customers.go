// Package customers keeps the shop's customer records, split into
// registered customers and unregistered walk-ins.
package customers

import "errors"

var (
	ErrNoUnregistered  = errors.New("no unregistered customers")
	ErrInvalidPosition = errors.New("invalid customer position")
)

// Customer is a person whose vehicle the shop works on.
type Customer struct {
	ID            int
	Name          string
	ContactInfo   string
	VehicleNumber string
	VehicleModel  string
	Registered    bool
}

// Details holds the fields entered when adding a customer.
type Details struct {
	Name          string
	ContactInfo   string
	VehicleNumber string
	VehicleModel  string
}

// Registry holds both customer partitions. Ids come from a single counter
// so they are unique across partitions.
type Registry struct {
	registered   []*Customer
	unregistered []*Customer
	nextID       int
}

// NewRegistry creates an empty registry. The first id handed out is 1.
func NewRegistry() *Registry {
	return &Registry{nextID: 1}
}

func (r *Registry) newCustomer(d Details, registered bool) *Customer {
	c := &Customer{
		ID:            r.nextID,
		Name:          d.Name,
		ContactInfo:   d.ContactInfo,
		VehicleNumber: d.VehicleNumber,
		VehicleModel:  d.VehicleModel,
		Registered:    registered,
	}
	r.nextID++
	return c
}

// Register adds a registered customer.
func (r *Registry) Register(d Details) *Customer {
	c := r.newCustomer(d, true)
	r.registered = append(r.registered, c)
	return c
}

// AddWalkIn adds an unregistered walk-in customer.
func (r *Registry) AddWalkIn(d Details) *Customer {
	c := r.newCustomer(d, false)
	r.unregistered = append(r.unregistered, c)
	return c
}

// FindByID looks a customer up in the registered list first, then walk-ins.
func (r *Registry) FindByID(id int) (*Customer, bool) {
	for _, c := range r.registered {
		if c.ID == id {
			return c, true
		}
	}
	for _, c := range r.unregistered {
		if c.ID == id {
			return c, true
		}
	}
	return nil, false
}

// Upgrade moves the walk-in at the given 1-based position into the
// registered list. The same record moves, so id and details are kept.
func (r *Registry) Upgrade(pos int) (*Customer, error) {
	if len(r.unregistered) == 0 {
		return nil, ErrNoUnregistered
	}
	if pos < 1 || pos > len(r.unregistered) {
		return nil, ErrInvalidPosition
	}
	c := r.unregistered[pos-1]
	r.unregistered = append(r.unregistered[:pos-1], r.unregistered[pos:]...)
	c.Registered = true
	r.registered = append(r.registered, c)
	return c, nil
}

// Registered returns a snapshot of registered customers.
func (r *Registry) Registered() []*Customer {
	out := make([]*Customer, len(r.registered))
	copy(out, r.registered)
	return out
}

// Unregistered returns a snapshot of walk-in customers.
func (r *Registry) Unregistered() []*Customer {
	out := make([]*Customer, len(r.unregistered))
	copy(out, r.unregistered)
	return out
}
