package handoff

import (
	"sync"

	"github.com/Domenick1991/skywings/internal/domain"
)

// Slot is the single-slot register carrying one chosen flight from the
// catalog screen into the booking screen. Set overwrites, Clear empties.
type Slot struct {
	mu     sync.Mutex
	flight *domain.Flight
}

func NewSlot() *Slot {
	return &Slot{}
}

func (s *Slot) Set(f domain.Flight) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.flight = &f
}

func (s *Slot) Get() (*domain.Flight, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.flight == nil {
		return nil, false
	}
	f := *s.flight
	return &f, true
}

func (s *Slot) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.flight = nil
}
