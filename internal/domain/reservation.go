package domain

import "time"

// Reservation is created by the remote service; the client never edits
// passenger or flight fields after creation and never fabricates
// BookingReference.
type Reservation struct {
	ID               string    `json:"_id"`
	BookingReference string    `json:"bookingReference"`
	PassengerName    string    `json:"passengerName"`
	Email            string    `json:"email"`
	Phone            string    `json:"phone"`
	SeatNumber       string    `json:"seatNumber,omitempty"`
	PassportNumber   string    `json:"passportNumber,omitempty"`
	FlightNumber     string    `json:"flightNumber"`
	Departure        string    `json:"departure"`
	Destination      string    `json:"destination"`
	DepartureDate    string    `json:"departureDate"`
	Price            float64   `json:"price"`
	Status           bool      `json:"status"`
	CreatedAt        time.Time `json:"createdAt"`
}

func (r Reservation) StatusLabel() string {
	if r.Status {
		return "Confirmed"
	}
	return "Pending"
}

// SeatAssigned reports whether the reservation carries a real seat.
// The remote service stores "Not Assigned" for unassigned seats.
func (r Reservation) SeatAssigned() bool {
	return r.SeatNumber != "" && r.SeatNumber != "Not Assigned"
}

// ManifestEntry is the per-flight passenger view exposed to operators.
type ManifestEntry struct {
	ID               string `json:"_id"`
	PassengerName    string `json:"passengerName"`
	Email            string `json:"email"`
	Phone            string `json:"phone"`
	SeatNumber       string `json:"seatNumber,omitempty"`
	BookingReference string `json:"bookingReference"`
	Status           bool   `json:"status"`
}

func (e ManifestEntry) StatusLabel() string {
	if e.Status {
		return "Confirmed"
	}
	return "Pending"
}
