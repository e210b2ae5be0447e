// Package surface holds the ordered set of preview units currently on screen.
package surface

import (
	"sync"

	"github.com/alexisbeaulieu97/bookconnect/internal/infrastructure/events"
	"github.com/alexisbeaulieu97/bookconnect/internal/ports"
)

// Surface is an append-only container of units. Every unit appended is
// attached to the surface's publisher, so a single subscription observes
// selections from all of them.
type Surface struct {
	mu        sync.RWMutex
	units     []ports.Unit
	publisher *events.LoggingPublisher
}

var _ ports.Surface = (*Surface)(nil)

// New creates an empty surface. logger may be nil.
func New(logger ports.Logger) *Surface {
	return &Surface{publisher: events.NewLoggingPublisher(logger)}
}

// Clear detaches and drops every unit.
func (s *Surface) Clear() {
	s.mu.Lock()
	units := s.units
	s.units = nil
	s.mu.Unlock()

	for _, unit := range units {
		unit.Detach()
	}
}

// Append attaches unit and places it after the existing units.
func (s *Surface) Append(unit ports.Unit) {
	if unit == nil {
		return
	}
	unit.Attach(s.publisher)

	s.mu.Lock()
	s.units = append(s.units, unit)
	s.mu.Unlock()
}

// Len returns the number of units on the surface.
func (s *Surface) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.units)
}

// Units returns the units in display order.
func (s *Surface) Units() []ports.Unit {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]ports.Unit(nil), s.units...)
}

// At returns the unit at index.
func (s *Surface) At(index int) (ports.Unit, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if index < 0 || index >= len(s.units) {
		return nil, false
	}
	return s.units[index], true
}

// Subscribe registers handler for selection events raised by any unit.
func (s *Surface) Subscribe(handler ports.EventHandler) (ports.Subscription, error) {
	return s.publisher.Subscribe(ports.EventPreviewSelected, handler)
}
