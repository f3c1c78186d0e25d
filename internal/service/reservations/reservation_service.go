package reservations

import (
	"context"

	"github.com/Domenick1991/skywings/internal/domain"
)

type ReservationAPI interface {
	MyReservations(ctx context.Context) ([]domain.Reservation, error)
	AllReservations(ctx context.Context) ([]domain.Reservation, error)
	UpdateStatus(ctx context.Context, reservationID string, status bool) error
	ReservationByReference(ctx context.Context, reference string) (*domain.Reservation, error)
}

type Service struct {
	api ReservationAPI
}

func NewService(api ReservationAPI) *Service {
	return &Service{api: api}
}

// List calls the role-dependent endpoint: all records for operators,
// self-scoped otherwise. The client never filters the result.
func (s *Service) List(ctx context.Context, user *domain.User) ([]domain.Reservation, error) {
	if user != nil && user.IsAdmin() {
		return s.api.AllReservations(ctx)
	}
	return s.api.MyReservations(ctx)
}

// ToggleStatus sends the logical negation of the current status, then
// re-fetches the whole list so the caller always displays server truth,
// never a client-optimistic guess.
func (s *Service) ToggleStatus(ctx context.Context, user *domain.User, reservationID string, current bool) ([]domain.Reservation, error) {
	if err := s.api.UpdateStatus(ctx, reservationID, !current); err != nil {
		return nil, err
	}
	return s.List(ctx, user)
}

// CanToggle reports whether the toggle control is offered: customers
// may only confirm a pending booking, operators toggle both ways.
func (s *Service) CanToggle(user *domain.User, r domain.Reservation) bool {
	if user != nil && user.IsAdmin() {
		return true
	}
	return !r.Status
}

// Find is the public lookup by booking reference, no credential needed.
func (s *Service) Find(ctx context.Context, reference string) (*domain.Reservation, error) {
	if reference == "" {
		return nil, domain.NewValidationError("bookingReference", "booking reference is required")
	}
	return s.api.ReservationByReference(ctx, reference)
}
