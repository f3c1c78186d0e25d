package inventory

import (
	"context"
	"strconv"
	"sync"

	"github.com/Domenick1991/skywings/internal/domain"
	"github.com/Domenick1991/skywings/internal/remote"
)

type AdminAPI interface {
	AdminFlights(ctx context.Context) ([]domain.Flight, error)
	CreateFlight(ctx context.Context, payload remote.FlightPayload) error
	UpdateFlight(ctx context.Context, id string, payload remote.FlightPayload) error
	DeleteFlight(ctx context.Context, id string) error
	FlightPassengers(ctx context.Context, flightID string) ([]domain.ManifestEntry, error)
}

// FlightInput is operator-authored form data. Numeric fields arrive as
// raw text and are coerced before submission.
type FlightInput struct {
	FlightNumber   string
	Airline        string
	Departure      string
	Destination    string
	DepartureTime  string
	ArrivalTime    string
	FlightDate     string
	Price          string
	TotalSeats     string
	AvailableSeats string
}

func (in FlightInput) payload() (remote.FlightPayload, error) {
	price, err := strconv.ParseFloat(in.Price, 64)
	if err != nil {
		return remote.FlightPayload{}, domain.NewValidationError("price", "must be a number")
	}
	total, err := strconv.Atoi(in.TotalSeats)
	if err != nil {
		return remote.FlightPayload{}, domain.NewValidationError("totalSeats", "must be a number")
	}
	available, err := strconv.Atoi(in.AvailableSeats)
	if err != nil {
		return remote.FlightPayload{}, domain.NewValidationError("availableSeats", "must be a number")
	}

	return remote.FlightPayload{
		FlightNumber:   in.FlightNumber,
		Airline:        in.Airline,
		Departure:      in.Departure,
		Destination:    in.Destination,
		DepartureTime:  in.DepartureTime,
		ArrivalTime:    in.ArrivalTime,
		FlightDate:     in.FlightDate,
		Price:          price,
		TotalSeats:     total,
		AvailableSeats: available,
	}, nil
}

// Service is the operator-only inventory manager. Passenger manifests
// are fetched lazily per flight and cached for the session; collapsing
// and re-expanding a manifest does not refetch, ReloadPassengers does.
type Service struct {
	api AdminAPI

	mu        sync.Mutex
	manifests map[string][]domain.ManifestEntry
}

func NewService(api AdminAPI) *Service {
	return &Service{api: api, manifests: make(map[string][]domain.ManifestEntry)}
}

func (s *Service) Flights(ctx context.Context) ([]domain.Flight, error) {
	return s.api.AdminFlights(ctx)
}

func (s *Service) Create(ctx context.Context, input FlightInput) error {
	payload, err := input.payload()
	if err != nil {
		return err
	}
	return s.api.CreateFlight(ctx, payload)
}

func (s *Service) Update(ctx context.Context, id string, input FlightInput) error {
	payload, err := input.payload()
	if err != nil {
		return err
	}
	return s.api.UpdateFlight(ctx, id, payload)
}

// Delete never reaches the remote service without an explicit operator
// confirmation; from the client's perspective it is irreversible.
func (s *Service) Delete(ctx context.Context, id string, confirmed bool) error {
	if !confirmed {
		return domain.ErrNotConfirmed
	}
	return s.api.DeleteFlight(ctx, id)
}

func (s *Service) Passengers(ctx context.Context, flightID string) ([]domain.ManifestEntry, error) {
	s.mu.Lock()
	cached, ok := s.manifests[flightID]
	s.mu.Unlock()
	if ok {
		return cached, nil
	}
	return s.ReloadPassengers(ctx, flightID)
}

// ReloadPassengers forces a refetch, the only way to see bookings made
// after the manifest was first expanded.
func (s *Service) ReloadPassengers(ctx context.Context, flightID string) ([]domain.ManifestEntry, error) {
	entries, err := s.api.FlightPassengers(ctx, flightID)
	if err != nil {
		return nil, err
	}
	s.mu.Lock()
	s.manifests[flightID] = entries
	s.mu.Unlock()
	return entries, nil
}

// ClearCache drops all cached manifests, called on logout.
func (s *Service) ClearCache() {
	s.mu.Lock()
	s.manifests = make(map[string][]domain.ManifestEntry)
	s.mu.Unlock()
}
