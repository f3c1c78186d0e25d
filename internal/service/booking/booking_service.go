package booking

import (
	"context"
	"time"

	"github.com/Domenick1991/skywings/internal/domain"
	"github.com/Domenick1991/skywings/internal/handoff"
	"github.com/Domenick1991/skywings/internal/nav"
	"github.com/Domenick1991/skywings/internal/remote"
)

type ReservationAPI interface {
	AddReservation(ctx context.Context, input remote.ReservationInput) (*domain.Reservation, error)
}

// Form carries the passenger details for one submission.
type Form struct {
	PassengerName  string
	Email          string
	Phone          string
	SeatNumber     string
	PassportNumber string
}

type Service struct {
	api             ReservationAPI
	slot            *handoff.Slot
	nav             *nav.Controller
	requirePassport bool
	redirectDelay   time.Duration
}

type Option func(*Service)

// WithPassportRequired enables the deployment variant that demands
// international travel documents at submission.
func WithPassportRequired() Option {
	return func(s *Service) {
		s.requirePassport = true
	}
}

// WithRedirectDelay enables the deployment variant that schedules a
// one-time delayed transition to the reservations sub-state after a
// successful booking. Zero keeps the confirmation banner in place.
func WithRedirectDelay(d time.Duration) Option {
	return func(s *Service) {
		s.redirectDelay = d
	}
}

func NewService(api ReservationAPI, slot *handoff.Slot, navc *nav.Controller, opts ...Option) *Service {
	service := &Service{api: api, slot: slot, nav: navc}
	for _, opt := range opts {
		opt(service)
	}
	return service
}

// NewForm returns the form defaults: the signed-in principal's contact
// details, never a residual seat or passport number.
func (s *Service) NewForm(user *domain.User) Form {
	if user == nil {
		return Form{}
	}
	return Form{
		PassengerName: user.Name,
		Email:         user.Email,
		Phone:         user.Phone,
	}
}

func (s *Service) Selected() (*domain.Flight, bool) {
	return s.slot.Get()
}

// ClearSelection empties the handoff slot, used on logout and when the
// user abandons the booking screen.
func (s *Service) ClearSelection() {
	s.slot.Clear()
}

// Submit validates locally, then sends the reservation. The server is
// the source of truth for seat availability and the only issuer of
// booking references. On success the handoff slot is cleared and, per
// deployment variant, the delayed reservations redirect is armed.
func (s *Service) Submit(ctx context.Context, form Form) (*domain.Reservation, error) {
	flight, ok := s.slot.Get()
	if !ok {
		return nil, domain.ErrNoFlightSelected
	}

	if form.PassengerName == "" {
		return nil, domain.NewValidationError("passengerName", "passenger name is required")
	}
	if form.Email == "" {
		return nil, domain.NewValidationError("email", "email is required")
	}
	if form.Phone == "" {
		return nil, domain.NewValidationError("phone", "phone is required")
	}
	if s.requirePassport && form.PassportNumber == "" {
		return nil, domain.NewValidationError("passportNumber", "passport number is required")
	}

	reservation, err := s.api.AddReservation(ctx, remote.ReservationInput{
		PassengerName:  form.PassengerName,
		Email:          form.Email,
		Phone:          form.Phone,
		SeatNumber:     form.SeatNumber,
		PassportNumber: form.PassportNumber,
		FlightID:       flight.ID,
	})
	if err != nil {
		return nil, err
	}

	s.slot.Clear()
	if s.redirectDelay > 0 {
		s.nav.ScheduleTab(nav.TabReservations, s.redirectDelay)
	}
	return reservation, nil
}
