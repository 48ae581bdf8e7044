// Package suppliers tracks vehicle manufacturers and the parts suppliers
// the shop orders from for each of them.
package suppliers

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrNoManufacturers     = errors.New("no manufacturers")
	ErrInvalidManufacturer = errors.New("invalid manufacturer number")
	ErrInvalidSupplier     = errors.New("invalid supplier number")
	ErrEmptyName           = errors.New("name is empty")
)

// PartsSupplier is a company that ships parts for a manufacturer.
type PartsSupplier struct {
	Name string
}

// Manufacturer is a vehicle maker with its known parts suppliers.
type Manufacturer struct {
	Name      string
	suppliers []*PartsSupplier
}

// AddSupplier registers a parts supplier for this manufacturer.
func (m *Manufacturer) AddSupplier(name string) *PartsSupplier {
	s := &PartsSupplier{Name: name}
	m.suppliers = append(m.suppliers, s)
	return s
}

// Suppliers returns a snapshot of the manufacturer's suppliers.
func (m *Manufacturer) Suppliers() []*PartsSupplier {
	out := make([]*PartsSupplier, len(m.suppliers))
	copy(out, m.suppliers)
	return out
}

// PartRequest records a request for a part sent to a supplier.
type PartRequest struct {
	Manufacturer string
	Supplier     string
	Part         string
}

// Message is the confirmation shown after the request is sent.
func (p PartRequest) Message() string {
	return fmt.Sprintf("Part request sent for '%s' to %s.", p.Part, p.Supplier)
}

// Directory is the list of known manufacturers.
type Directory struct {
	manufacturers []*Manufacturer
}

// NewDirectory creates an empty directory.
func NewDirectory() *Directory {
	return &Directory{}
}

// Find looks up a manufacturer by name, ignoring case.
func (d *Directory) Find(name string) (*Manufacturer, bool) {
	for _, m := range d.manufacturers {
		if strings.EqualFold(m.Name, name) {
			return m, true
		}
	}
	return nil, false
}

// Ensure returns the named manufacturer, adding it if it is new.
// The bool result is true when a manufacturer was created.
func (d *Directory) Ensure(name string) (*Manufacturer, bool, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, false, ErrEmptyName
	}
	if m, ok := d.Find(name); ok {
		return m, false, nil
	}
	m := &Manufacturer{Name: name}
	d.manufacturers = append(d.manufacturers, m)
	return m, true, nil
}

// List returns a snapshot of manufacturers in the order they were added.
func (d *Directory) List() []*Manufacturer {
	out := make([]*Manufacturer, len(d.manufacturers))
	copy(out, d.manufacturers)
	return out
}

// RequestPart builds a part request using 1-based positions into the
// manufacturer list and that manufacturer's supplier list.
func (d *Directory) RequestPart(manufacturerPos, supplierPos int, part string) (PartRequest, error) {
	if len(d.manufacturers) == 0 {
		return PartRequest{}, ErrNoManufacturers
	}
	if manufacturerPos < 1 || manufacturerPos > len(d.manufacturers) {
		return PartRequest{}, ErrInvalidManufacturer
	}
	m := d.manufacturers[manufacturerPos-1]
	if supplierPos < 1 || supplierPos > len(m.suppliers) {
		return PartRequest{}, ErrInvalidSupplier
	}
	return PartRequest{
		Manufacturer: m.Name,
		Supplier:     m.suppliers[supplierPos-1].Name,
		Part:         part,
	}, nil
}
