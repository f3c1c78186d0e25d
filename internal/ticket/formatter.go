package ticket

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/Domenick1991/skywings/internal/domain"
)

// Layout only, no colors: output must be byte-identical for the same
// reservation regardless of the terminal it is rendered on.
var frame = lipgloss.NewStyle().
	Border(lipgloss.RoundedBorder()).
	Padding(1, 2)

// Format renders a reservation as a printable ticket document. Pure and
// deterministic: no clock, no network, no mutable state.
func Format(r domain.Reservation) string {
	var b strings.Builder

	b.WriteString("SKYWINGS E-TICKET\n")
	fmt.Fprintf(&b, "Booking Reference: %s\n", r.BookingReference)
	b.WriteString("\n")

	b.WriteString("Passenger\n")
	fmt.Fprintf(&b, "  Name:     %s\n", r.PassengerName)
	fmt.Fprintf(&b, "  Email:    %s\n", r.Email)
	fmt.Fprintf(&b, "  Phone:    %s\n", r.Phone)
	if r.PassportNumber != "" {
		fmt.Fprintf(&b, "  Passport: %s\n", r.PassportNumber)
	}
	b.WriteString("\n")

	b.WriteString("Flight\n")
	fmt.Fprintf(&b, "  Flight:   %s\n", r.FlightNumber)
	fmt.Fprintf(&b, "  Route:    %s → %s\n", r.Departure, r.Destination)
	fmt.Fprintf(&b, "  Date:     %s\n", r.DepartureDate)
	if r.SeatAssigned() {
		fmt.Fprintf(&b, "  Seat:     %s\n", r.SeatNumber)
	}
	fmt.Fprintf(&b, "  Price:    $%.2f\n", r.Price)
	b.WriteString("\n")

	fmt.Fprintf(&b, "Status: %s", r.StatusLabel())

	return frame.Render(b.String())
}
