package catalog

import (
	"context"
	"sync"
	"sync/atomic"

	"github.com/Domenick1991/skywings/internal/domain"
	"github.com/Domenick1991/skywings/internal/handoff"
	"github.com/Domenick1991/skywings/internal/nav"
)

type FlightAPI interface {
	SearchFlights(ctx context.Context, filter domain.FlightFilter) ([]domain.Flight, error)
	ListFlights(ctx context.Context) ([]domain.Flight, error)
}

// Service owns no inventory state beyond the current screen's result
// set. Filtering is entirely server-side.
type Service struct {
	api  FlightAPI
	slot *handoff.Slot
	nav  *nav.Controller

	gen     uint64
	mu      sync.Mutex
	flights []domain.Flight
}

func NewService(api FlightAPI, slot *handoff.Slot, navc *nav.Controller) *Service {
	return &Service{api: api, slot: slot, nav: navc}
}

// Load fetches flights for the current screen. An empty filter lists
// everything ("Show All"), otherwise the filter is passed to the server
// untouched. When loads overlap, only the latest one may update the
// result set: a response from a superseded load is discarded so a slow
// stale fetch can never overwrite a fresh one.
func (s *Service) Load(ctx context.Context, filter domain.FlightFilter) ([]domain.Flight, error) {
	gen := atomic.AddUint64(&s.gen, 1)

	var (
		flights []domain.Flight
		err     error
	)
	if filter.IsEmpty() {
		flights, err = s.api.ListFlights(ctx)
	} else {
		flights, err = s.api.SearchFlights(ctx, filter)
	}
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if gen != atomic.LoadUint64(&s.gen) {
		// superseded by a newer load
		return s.flights, nil
	}
	s.flights = flights
	return flights, nil
}

func (s *Service) Flights() []domain.Flight {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.flights
}

// Reset drops the result set when the screen is left; re-entering
// always re-fetches.
func (s *Service) Reset() {
	s.mu.Lock()
	s.flights = nil
	s.mu.Unlock()
}

// Select writes the handoff slot, forces the book sub-state and drops
// the result set: a select leaves the search screen, and the next visit
// must re-fetch. A sold out flight is rejected: the slot, the result
// set and navigation all stay untouched.
func (s *Service) Select(f domain.Flight) error {
	if f.SoldOut() {
		return domain.ErrSoldOut
	}
	s.slot.Set(f)
	if err := s.nav.ForceTab(nav.TabBook); err != nil {
		return err
	}
	s.Reset()
	return nil
}
