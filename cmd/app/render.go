package main

import (
	"fmt"
	"os"
	"strconv"
	"text/tabwriter"

	"github.com/charmbracelet/lipgloss"

	"github.com/Domenick1991/skywings/internal/domain"
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Padding(0, 1).
			Border(lipgloss.NormalBorder(), false, false, true, false)

	alertStyle   = lipgloss.NewStyle().Bold(true).SetString("!")
	successStyle = lipgloss.NewStyle().Bold(true).SetString("*")
)

func printTitle(text string) {
	fmt.Println()
	fmt.Println(titleStyle.Render(text))
}

func printAlert(text string) {
	fmt.Println(alertStyle.String(), text)
}

func printSuccess(text string) {
	fmt.Println(successStyle.String(), text)
}

func printFlightTable(flights []domain.Flight) {
	if len(flights) == 0 {
		fmt.Println("No flights found for your search.")
		return
	}
	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "#\tFLIGHT\tAIRLINE\tROUTE\tDEPARTS\tARRIVES\tPRICE\tSEATS")
	for i, f := range flights {
		seats := strconv.Itoa(f.AvailableSeats)
		if f.SoldOut() {
			seats = "Sold Out"
		}
		fmt.Fprintf(w, "%d\t%s\t%s\t%s → %s\t%s\t%s\t$%.2f\t%s\n",
			i+1, f.FlightNumber, f.Airline,
			f.Departure, f.Destination,
			f.DepartureTime, f.ArrivalTime, f.Price, seats)
	}
	w.Flush()
}

func printReservationTable(list []domain.Reservation) {
	if len(list) == 0 {
		fmt.Println("No bookings yet.")
		return
	}
	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "#\tREFERENCE\tPASSENGER\tFLIGHT\tROUTE\tDATE\tSEAT\tSTATUS")
	for i, r := range list {
		seat := r.SeatNumber
		if !r.SeatAssigned() {
			seat = "-"
		}
		fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%s → %s\t%s\t%s\t%s\n",
			i+1, r.BookingReference, r.PassengerName, r.FlightNumber,
			r.Departure, r.Destination, r.DepartureDate, seat, r.StatusLabel())
	}
	w.Flush()
}

func printAdminFlightTable(flights []domain.Flight) {
	if len(flights) == 0 {
		fmt.Println("No flights in the inventory.")
		return
	}
	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "#\tFLIGHT\tAIRLINE\tROUTE\tDATE\tPRICE\tTOTAL\tAVAILABLE")
	for i, f := range flights {
		fmt.Fprintf(w, "%d\t%s\t%s\t%s → %s\t%s\t$%.2f\t%d\t%d\n",
			i+1, f.FlightNumber, f.Airline,
			f.Departure, f.Destination, f.FlightDate,
			f.Price, f.TotalSeats, f.AvailableSeats)
	}
	w.Flush()
}

func printOverviewTable(flights []domain.Flight) {
	if len(flights) == 0 {
		fmt.Println("No flights in the inventory.")
		return
	}
	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "#\tFLIGHT\tROUTE\tBOOKED\tAVAILABLE")
	for i, f := range flights {
		fmt.Fprintf(w, "%d\t%s\t%s → %s\t%d\t%d\n",
			i+1, f.FlightNumber, f.Departure, f.Destination,
			f.BookedSeats, f.AvailableSeats)
	}
	w.Flush()
}

func printManifest(flight domain.Flight, entries []domain.ManifestEntry) {
	fmt.Printf("\nPassengers on %s (%s → %s):\n", flight.FlightNumber, flight.Departure, flight.Destination)
	if len(entries) == 0 {
		fmt.Println("  no passengers booked yet")
		return
	}
	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "  PASSENGER\tEMAIL\tSEAT\tREFERENCE\tSTATUS")
	for _, e := range entries {
		fmt.Fprintf(w, "  %s\t%s\t%s\t%s\t%s\n",
			e.PassengerName, e.Email, e.SeatNumber, e.BookingReference, e.StatusLabel())
	}
	w.Flush()
}
