package workshop

import (
	"context"

	"github.com/marcus/workshop/internal/journal"
	"github.com/marcus/workshop/internal/suppliers"
)

// AddManufacturer returns the named manufacturer, creating it when it is
// not known yet. Names match ignoring case.
func (s *Shop) AddManufacturer(ctx context.Context, name string) (*suppliers.Manufacturer, bool, error) {
	m, created, err := s.directory.Ensure(name)
	if err != nil {
		return nil, false, ErrEmptyName
	}
	if created {
		s.log.InfoCtx("manufacturer added", map[string]any{"manufacturer": m.Name})
		s.record(ctx, journal.Event{Kind: journal.KindManufacturerAdded, Detail: m.Name})
	}
	return m, created, nil
}

// AddSupplier registers a parts supplier for a manufacturer.
func (s *Shop) AddSupplier(ctx context.Context, m *suppliers.Manufacturer, name string) (*suppliers.PartsSupplier, error) {
	name, err := cleanName(name)
	if err != nil {
		return nil, err
	}
	ps := m.AddSupplier(name)
	s.log.InfoCtx("supplier added", map[string]any{
		"manufacturer": m.Name,
		"supplier":     ps.Name,
	})
	s.record(ctx, journal.Event{Kind: journal.KindSupplierAdded, Detail: m.Name + ": " + ps.Name})
	return ps, nil
}

// Manufacturers returns known manufacturers in the order added.
func (s *Shop) Manufacturers() []*suppliers.Manufacturer {
	return s.directory.List()
}

// RequestPart sends a part request to a supplier picked by 1-based
// positions. Nothing is ordered for real; the request is only recorded.
func (s *Shop) RequestPart(ctx context.Context, manufacturerPos, supplierPos int, part string) (suppliers.PartRequest, error) {
	req, err := s.directory.RequestPart(manufacturerPos, supplierPos, part)
	if err != nil {
		return suppliers.PartRequest{}, err
	}
	s.log.InfoCtx("part requested", map[string]any{
		"manufacturer": req.Manufacturer,
		"supplier":     req.Supplier,
	})
	s.record(ctx, journal.Event{Kind: journal.KindPartRequested, Detail: req.Supplier + ": " + req.Part})
	return req, nil
}
