package stub

import (
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/Domenick1991/skywings/internal/domain"
)

// In-memory implementation of the remote booking service contract,
// used by cmd/stub and by the integration tests. Every dataset starts
// empty and is seeded explicitly so tests are reproducible.

var (
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrEmailTaken         = errors.New("email is already registered")
	ErrFlightNotFound     = errors.New("flight not found")
	ErrReservationMissing = errors.New("reservation not found")
	ErrSoldOut            = errors.New("no seats available on this flight")
	ErrInvalidToken       = errors.New("invalid token")
)

type userRecord struct {
	user         domain.User
	passwordHash []byte
}

type reservationRecord struct {
	reservation domain.Reservation
	ownerID     string
	flightID    string
}

type Store struct {
	secret []byte

	mu           sync.Mutex
	usersByEmail map[string]*userRecord
	usersByID    map[string]*userRecord
	flights      map[string]*domain.Flight
	reservations map[string]*reservationRecord
}

func NewStore(jwtSecret string) *Store {
	return &Store{
		secret:       []byte(jwtSecret),
		usersByEmail: make(map[string]*userRecord),
		usersByID:    make(map[string]*userRecord),
		flights:      make(map[string]*domain.Flight),
		reservations: make(map[string]*reservationRecord),
	}
}

func (s *Store) Register(name, email, phone, password string, role domain.Role) (string, *domain.User, error) {
	if name == "" || email == "" || password == "" {
		return "", nil, errors.New("name, email and password are required")
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.usersByEmail[strings.ToLower(email)]; exists {
		return "", nil, ErrEmailTaken
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", nil, err
	}

	rec := &userRecord{
		user: domain.User{
			ID:    uuid.NewString(),
			Name:  name,
			Email: email,
			Phone: phone,
			Role:  role,
		},
		passwordHash: hash,
	}
	s.usersByEmail[strings.ToLower(email)] = rec
	s.usersByID[rec.user.ID] = rec

	token, err := s.issueToken(rec.user)
	if err != nil {
		return "", nil, err
	}
	u := rec.user
	return token, &u, nil
}

func (s *Store) Login(email, password string) (string, *domain.User, error) {
	s.mu.Lock()
	rec, ok := s.usersByEmail[strings.ToLower(email)]
	s.mu.Unlock()
	if !ok {
		return "", nil, ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword(rec.passwordHash, []byte(password)); err != nil {
		return "", nil, ErrInvalidCredentials
	}

	token, err := s.issueToken(rec.user)
	if err != nil {
		return "", nil, err
	}
	u := rec.user
	return token, &u, nil
}

func (s *Store) issueToken(u domain.User) (string, error) {
	claims := jwt.MapClaims{
		"sub":  u.ID,
		"role": string(u.Role),
		"exp":  time.Now().Add(24 * time.Hour).Unix(),
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
}

// VerifyToken resolves a bearer token back to its user.
func (s *Store) VerifyToken(token string) (*domain.User, error) {
	parsed, err := jwt.Parse(token, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return s.secret, nil
	})
	if err != nil || !parsed.Valid {
		return nil, ErrInvalidToken
	}

	claims, ok := parsed.Claims.(jwt.MapClaims)
	if !ok {
		return nil, ErrInvalidToken
	}
	sub, _ := claims["sub"].(string)

	s.mu.Lock()
	rec, ok := s.usersByID[sub]
	s.mu.Unlock()
	if !ok {
		return nil, ErrInvalidToken
	}
	u := rec.user
	return &u, nil
}

func (s *Store) ListFlights() []domain.Flight {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshotFlightsLocked(nil)
}

// SearchFlights filters by exact city match and flight date; empty
// fields match everything.
func (s *Store) SearchFlights(departure, destination, date string) []domain.Flight {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshotFlightsLocked(func(f *domain.Flight) bool {
		if departure != "" && !strings.EqualFold(f.Departure, departure) {
			return false
		}
		if destination != "" && !strings.EqualFold(f.Destination, destination) {
			return false
		}
		if date != "" && f.FlightDate != date {
			return false
		}
		return true
	})
}

func (s *Store) snapshotFlightsLocked(keep func(*domain.Flight) bool) []domain.Flight {
	out := make([]domain.Flight, 0, len(s.flights))
	for _, f := range s.flights {
		if keep != nil && !keep(f) {
			continue
		}
		snapshot := *f
		snapshot.BookedSeats = snapshot.TotalSeats - snapshot.AvailableSeats
		out = append(out, snapshot)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].FlightNumber < out[j].FlightNumber })
	return out
}

func (s *Store) CreateFlight(f domain.Flight) (*domain.Flight, error) {
	if f.TotalSeats <= 0 {
		return nil, errors.New("totalSeats must be positive")
	}
	if f.AvailableSeats < 0 || f.AvailableSeats > f.TotalSeats {
		return nil, errors.New("availableSeats must be between 0 and totalSeats")
	}
	if f.Price < 0 {
		return nil, errors.New("price must not be negative")
	}

	f.ID = uuid.NewString()
	s.mu.Lock()
	s.flights[f.ID] = &f
	s.mu.Unlock()
	snapshot := f
	return &snapshot, nil
}

func (s *Store) UpdateFlight(id string, f domain.Flight) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	current, ok := s.flights[id]
	if !ok {
		return ErrFlightNotFound
	}
	f.ID = current.ID
	if f.AvailableSeats < 0 || f.AvailableSeats > f.TotalSeats {
		return errors.New("availableSeats must be between 0 and totalSeats")
	}
	s.flights[id] = &f
	return nil
}

func (s *Store) DeleteFlight(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.flights[id]; !ok {
		return ErrFlightNotFound
	}
	delete(s.flights, id)
	return nil
}

type ReservationInput struct {
	PassengerName  string
	Email          string
	Phone          string
	SeatNumber     string
	PassportNumber string
	FlightID       string
}

// AddReservation assigns the booking reference and decrements the seat
// counter under the store lock; a sold out flight is rejected.
func (s *Store) AddReservation(owner *domain.User, input ReservationInput) (*domain.Reservation, error) {
	if input.PassengerName == "" || input.Email == "" || input.Phone == "" {
		return nil, errors.New("passengerName, email and phone are required")
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	flight, ok := s.flights[input.FlightID]
	if !ok {
		return nil, ErrFlightNotFound
	}
	if flight.AvailableSeats <= 0 {
		return nil, ErrSoldOut
	}
	flight.AvailableSeats--

	seat := input.SeatNumber
	if seat == "" {
		seat = "Not Assigned"
	}
	departureDate := flight.FlightDate
	if departureDate == "" {
		departureDate = flight.DepartureTime
	}

	rec := &reservationRecord{
		reservation: domain.Reservation{
			ID:               uuid.NewString(),
			BookingReference: newBookingReference(),
			PassengerName:    input.PassengerName,
			Email:            input.Email,
			Phone:            input.Phone,
			SeatNumber:       seat,
			PassportNumber:   input.PassportNumber,
			FlightNumber:     flight.FlightNumber,
			Departure:        flight.Departure,
			Destination:      flight.Destination,
			DepartureDate:    departureDate,
			Price:            flight.Price,
			Status:           false,
			CreatedAt:        time.Now().UTC(),
		},
		ownerID:  owner.ID,
		flightID: flight.ID,
	}
	s.reservations[rec.reservation.ID] = rec

	snapshot := rec.reservation
	return &snapshot, nil
}

func newBookingReference() string {
	raw := strings.ToUpper(strings.ReplaceAll(uuid.NewString(), "-", ""))
	return "SW" + raw[:8]
}

func (s *Store) ReservationsFor(userID string) []domain.Reservation {
	return s.listReservations(func(r *reservationRecord) bool { return r.ownerID == userID })
}

func (s *Store) AllReservations() []domain.Reservation {
	return s.listReservations(nil)
}

func (s *Store) listReservations(keep func(*reservationRecord) bool) []domain.Reservation {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]domain.Reservation, 0, len(s.reservations))
	for _, rec := range s.reservations {
		if keep != nil && !keep(rec) {
			continue
		}
		out = append(out, rec.reservation)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].ID < out[j].ID
		}
		return out[i].CreatedAt.Before(out[j].CreatedAt)
	})
	return out
}

func (s *Store) UpdateStatus(reservationID string, status bool) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	rec, ok := s.reservations[reservationID]
	if !ok {
		return ErrReservationMissing
	}
	rec.reservation.Status = status
	return nil
}

func (s *Store) ReservationByReference(reference string) (*domain.Reservation, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, rec := range s.reservations {
		if strings.EqualFold(rec.reservation.BookingReference, reference) {
			snapshot := rec.reservation
			return &snapshot, nil
		}
	}
	return nil, ErrReservationMissing
}

// Passengers is the operator manifest for one flight.
func (s *Store) Passengers(flightID string) ([]domain.ManifestEntry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.flights[flightID]; !ok {
		return nil, ErrFlightNotFound
	}

	entries := make([]domain.ManifestEntry, 0)
	for _, rec := range s.reservations {
		if rec.flightID != flightID {
			continue
		}
		entries = append(entries, domain.ManifestEntry{
			ID:               rec.reservation.ID,
			PassengerName:    rec.reservation.PassengerName,
			Email:            rec.reservation.Email,
			Phone:            rec.reservation.Phone,
			SeatNumber:       rec.reservation.SeatNumber,
			BookingReference: rec.reservation.BookingReference,
			Status:           rec.reservation.Status,
		})
	}
	sort.Slice(entries, func(i, j int) bool { return entries[i].BookingReference < entries[j].BookingReference })
	return entries, nil
}
