package remote

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/Domenick1991/skywings/internal/domain"
)

// TokenSource supplies the bearer credential. It is consulted on every
// dispatch so that a logout while a request is in flight never leaks a
// stale credential into a later call.
type TokenSource interface {
	Token() string
}

// TokenFunc adapts a function to the TokenSource interface.
type TokenFunc func() string

func (f TokenFunc) Token() string { return f() }

type Client struct {
	baseURL string
	http    *http.Client
	tokens  TokenSource
}

func NewClient(baseURL string, timeout time.Duration, tokens TokenSource) *Client {
	return &Client{
		baseURL: baseURL,
		http:    &http.Client{Timeout: timeout},
		tokens:  tokens,
	}
}

type envelope struct {
	Success bool            `json:"success"`
	Message string          `json:"message"`
	Token   string          `json:"token"`
	User    *domain.User    `json:"user"`
	Data    json.RawMessage `json:"data"`
}

type RegisterInput struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Phone    string `json:"phone"`
	Password string `json:"password"`
}

type ReservationInput struct {
	PassengerName  string `json:"passengerName"`
	Email          string `json:"email"`
	Phone          string `json:"phone"`
	SeatNumber     string `json:"seatNumber,omitempty"`
	PassportNumber string `json:"passportNumber,omitempty"`
	FlightID       string `json:"flightId"`
}

type FlightPayload struct {
	FlightNumber   string  `json:"flightNumber"`
	Airline        string  `json:"airline"`
	Departure      string  `json:"departure"`
	Destination    string  `json:"destination"`
	DepartureTime  string  `json:"departureTime"`
	ArrivalTime    string  `json:"arrivalTime"`
	FlightDate     string  `json:"flightDate,omitempty"`
	Price          float64 `json:"price"`
	TotalSeats     int     `json:"totalSeats"`
	AvailableSeats int     `json:"availableSeats"`
}

func (c *Client) Login(ctx context.Context, email, password string) (string, *domain.User, error) {
	body := map[string]string{"email": email, "password": password}
	env, err := c.do(ctx, http.MethodPost, "/login", false, body)
	if err != nil {
		return "", nil, err
	}
	if env.Token == "" || env.User == nil {
		return "", nil, &Error{Kind: KindRemote, Message: "malformed login response"}
	}
	return env.Token, env.User, nil
}

func (c *Client) Register(ctx context.Context, input RegisterInput) (string, *domain.User, error) {
	env, err := c.do(ctx, http.MethodPost, "/register", false, input)
	if err != nil {
		return "", nil, err
	}
	if env.Token == "" || env.User == nil {
		return "", nil, &Error{Kind: KindRemote, Message: "malformed register response"}
	}
	return env.Token, env.User, nil
}

func (c *Client) SearchFlights(ctx context.Context, filter domain.FlightFilter) ([]domain.Flight, error) {
	q := url.Values{}
	if filter.Departure != "" {
		q.Set("departure", filter.Departure)
	}
	if filter.Destination != "" {
		q.Set("destination", filter.Destination)
	}
	if filter.Date != "" {
		q.Set("date", filter.Date)
	}
	path := "/flights/search"
	if enc := q.Encode(); enc != "" {
		path += "?" + enc
	}

	env, err := c.do(ctx, http.MethodGet, path, false, nil)
	if err != nil {
		return nil, err
	}
	return decodeFlights(env)
}

func (c *Client) ListFlights(ctx context.Context) ([]domain.Flight, error) {
	env, err := c.do(ctx, http.MethodGet, "/flights", false, nil)
	if err != nil {
		return nil, err
	}
	return decodeFlights(env)
}

func (c *Client) CreateFlight(ctx context.Context, payload FlightPayload) error {
	_, err := c.do(ctx, http.MethodPost, "/flights", true, payload)
	return err
}

func (c *Client) UpdateFlight(ctx context.Context, id string, payload FlightPayload) error {
	_, err := c.do(ctx, http.MethodPut, "/flights/"+url.PathEscape(id), true, payload)
	return err
}

func (c *Client) DeleteFlight(ctx context.Context, id string) error {
	_, err := c.do(ctx, http.MethodDelete, "/flights/"+url.PathEscape(id), true, nil)
	return err
}

func (c *Client) AdminFlights(ctx context.Context) ([]domain.Flight, error) {
	env, err := c.do(ctx, http.MethodGet, "/admin/flights", true, nil)
	if err != nil {
		return nil, err
	}
	return decodeFlights(env)
}

func (c *Client) FlightPassengers(ctx context.Context, flightID string) ([]domain.ManifestEntry, error) {
	env, err := c.do(ctx, http.MethodGet, "/admin/flights/"+url.PathEscape(flightID)+"/passengers", true, nil)
	if err != nil {
		return nil, err
	}
	var entries []domain.ManifestEntry
	if err := json.Unmarshal(env.Data, &entries); err != nil {
		return nil, fmt.Errorf("decode passengers: %w", err)
	}
	return entries, nil
}

func (c *Client) AddReservation(ctx context.Context, input ReservationInput) (*domain.Reservation, error) {
	env, err := c.do(ctx, http.MethodPost, "/addReservation", true, input)
	if err != nil {
		return nil, err
	}
	var res domain.Reservation
	if err := json.Unmarshal(env.Data, &res); err != nil {
		return nil, fmt.Errorf("decode reservation: %w", err)
	}
	return &res, nil
}

func (c *Client) MyReservations(ctx context.Context) ([]domain.Reservation, error) {
	return c.reservations(ctx, "/myReservations")
}

func (c *Client) AllReservations(ctx context.Context) ([]domain.Reservation, error) {
	return c.reservations(ctx, "/getReservations")
}

func (c *Client) reservations(ctx context.Context, path string) ([]domain.Reservation, error) {
	env, err := c.do(ctx, http.MethodGet, path, true, nil)
	if err != nil {
		return nil, err
	}
	var list []domain.Reservation
	if err := json.Unmarshal(env.Data, &list); err != nil {
		return nil, fmt.Errorf("decode reservations: %w", err)
	}
	return list, nil
}

func (c *Client) UpdateStatus(ctx context.Context, reservationID string, status bool) error {
	body := map[string]bool{"status": status}
	_, err := c.do(ctx, http.MethodPut, "/updateStatus/"+url.PathEscape(reservationID), true, body)
	return err
}

// ReservationByReference is the public lookup, no credential required.
func (c *Client) ReservationByReference(ctx context.Context, reference string) (*domain.Reservation, error) {
	env, err := c.do(ctx, http.MethodGet, "/reservation/"+url.PathEscape(reference), false, nil)
	if err != nil {
		return nil, err
	}
	var res domain.Reservation
	if err := json.Unmarshal(env.Data, &res); err != nil {
		return nil, fmt.Errorf("decode reservation: %w", err)
	}
	return &res, nil
}

func decodeFlights(env *envelope) ([]domain.Flight, error) {
	var flights []domain.Flight
	if err := json.Unmarshal(env.Data, &flights); err != nil {
		return nil, fmt.Errorf("decode flights: %w", err)
	}
	return flights, nil
}

func (c *Client) do(ctx context.Context, method, path string, auth bool, body interface{}) (*envelope, error) {
	var reader *bytes.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("encode request: %w", err)
		}
		reader = bytes.NewReader(data)
	} else {
		reader = bytes.NewReader(nil)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if auth && c.tokens != nil {
		// Read the credential at dispatch time, never earlier.
		if token := c.tokens.Token(); token != "" {
			req.Header.Set("Authorization", "Bearer "+token)
		}
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, &Error{Kind: KindRemote, Message: err.Error()}
	}
	defer resp.Body.Close()

	var env envelope
	if decodeErr := json.NewDecoder(resp.Body).Decode(&env); decodeErr != nil && resp.StatusCode < 300 {
		return nil, &Error{Kind: KindRemote, StatusCode: resp.StatusCode, Message: "malformed server response"}
	}

	switch {
	case resp.StatusCode == http.StatusUnauthorized:
		return nil, &Error{Kind: KindAuth, StatusCode: resp.StatusCode, Message: env.Message}
	case resp.StatusCode == http.StatusNotFound:
		return nil, &Error{Kind: KindNotFound, StatusCode: resp.StatusCode, Message: env.Message}
	case resp.StatusCode >= 300:
		return nil, &Error{Kind: KindRemote, StatusCode: resp.StatusCode, Message: env.Message}
	}

	return &env, nil
}
