package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/Domenick1991/skywings/internal/domain"
	"github.com/Domenick1991/skywings/internal/nav"
	"github.com/Domenick1991/skywings/internal/remote"
	"github.com/Domenick1991/skywings/internal/service/booking"
	"github.com/Domenick1991/skywings/internal/service/catalog"
	"github.com/Domenick1991/skywings/internal/service/inventory"
	"github.com/Domenick1991/skywings/internal/service/reservations"
	"github.com/Domenick1991/skywings/internal/session"
	"github.com/Domenick1991/skywings/internal/ticket"
)

type app struct {
	session      *session.Store
	nav          *nav.Controller
	catalog      *catalog.Service
	booking      *booking.Service
	reservations *reservations.Service
	inventory    *inventory.Service

	in      io.Reader
	scanner *bufio.Scanner
}

func (a *app) run(ctx context.Context) {
	a.scanner = bufio.NewScanner(a.in)
	for {
		if ctx.Err() != nil {
			return
		}
		screen, tab := a.nav.Current()
		var done bool
		switch screen {
		case nav.ScreenHome:
			done = a.homeScreen()
		case nav.ScreenLogin:
			done = a.loginScreen(ctx)
		case nav.ScreenSignup:
			done = a.signupScreen(ctx)
		case nav.ScreenDashboard:
			done = a.dashboardScreen(ctx, tab)
		}
		if done {
			return
		}
	}
}

func (a *app) prompt(label string) (string, bool) {
	fmt.Print(label)
	if !a.scanner.Scan() {
		return "", false
	}
	return strings.TrimSpace(a.scanner.Text()), true
}

// fail turns every caught failure into a visible alert. An expired or
// rejected credential additionally forces the re-login path.
func (a *app) fail(err error) {
	printAlert(err.Error())
	if remote.IsAuth(err) {
		a.logout()
		_ = a.nav.Goto(nav.ScreenLogin)
	}
}

func (a *app) logout() {
	a.session.Logout()
	a.booking.ClearSelection()
	a.catalog.Reset()
	a.inventory.ClearCache()
	a.nav.Logout()
}

func (a *app) homeScreen() bool {
	printTitle("SkyWings — Your Flight Booking Platform")
	fmt.Println("  [1] Login")
	fmt.Println("  [2] Sign up")
	fmt.Println("  [q] Quit")

	choice, ok := a.prompt("> ")
	if !ok {
		return true
	}
	switch choice {
	case "1":
		_ = a.nav.Goto(nav.ScreenLogin)
	case "2":
		_ = a.nav.Goto(nav.ScreenSignup)
	case "q":
		return true
	}
	return false
}

func (a *app) loginScreen(ctx context.Context) bool {
	printTitle("Sign in to SkyWings")
	email, ok := a.prompt("Email (blank to go back): ")
	if !ok {
		return true
	}
	if email == "" {
		_ = a.nav.Goto(nav.ScreenHome)
		return false
	}
	password, ok := a.prompt("Password: ")
	if !ok {
		return true
	}

	user, err := a.session.Login(ctx, email, password)
	if err != nil {
		a.fail(err)
		return false
	}
	printSuccess("Welcome back, " + user.Name)
	a.nav.LoginSucceeded(user.Role)
	return false
}

func (a *app) signupScreen(ctx context.Context) bool {
	printTitle("Join SkyWings")
	name, ok := a.prompt("Full name (blank to go back): ")
	if !ok {
		return true
	}
	if name == "" {
		_ = a.nav.Goto(nav.ScreenHome)
		return false
	}

	form := session.RegistrationForm{Name: name}
	fields := []struct {
		label string
		dst   *string
	}{
		{"Email: ", &form.Email},
		{"Phone: ", &form.Phone},
		{"Password (min 6 characters): ", &form.Password},
		{"Confirm password: ", &form.ConfirmPassword},
	}
	for _, f := range fields {
		value, ok := a.prompt(f.label)
		if !ok {
			return true
		}
		*f.dst = value
	}

	user, err := a.session.Signup(ctx, form)
	if err != nil {
		a.fail(err)
		return false
	}
	printSuccess("Account created, welcome " + user.Name)
	a.nav.LoginSucceeded(user.Role)
	return false
}

func (a *app) dashboardScreen(ctx context.Context, tab nav.Tab) bool {
	user, ok := a.session.Current()
	if !ok {
		// dashboard without a principal is unrepresentable
		a.nav.Logout()
		return false
	}

	switch tab {
	case nav.TabSearch:
		return a.searchTab(ctx, user)
	case nav.TabBook:
		return a.bookTab(ctx, user)
	case nav.TabReservations:
		return a.reservationsTab(ctx, user)
	case nav.TabFindBooking:
		return a.findBookingTab(ctx, user)
	case nav.TabFlightManagement:
		return a.flightManagementTab(ctx, user)
	case nav.TabBookingOverview:
		return a.bookingOverviewTab(ctx, user)
	}
	return false
}

// handleCommon processes the commands shared by every dashboard tab.
// It reports whether the command was consumed and whether to quit.
func (a *app) handleCommon(cmd string, user *domain.User) (bool, bool) {
	tabs := map[string]nav.Tab{
		"search":   nav.TabSearch,
		"book":     nav.TabBook,
		"res":      nav.TabReservations,
		"find":     nav.TabFindBooking,
		"flights":  nav.TabFlightManagement,
		"overview": nav.TabBookingOverview,
	}
	if target, ok := tabs[cmd]; ok {
		if err := a.nav.SetTab(target); err != nil {
			printAlert("that screen is not available")
		}
		return true, false
	}
	switch cmd {
	case "logout":
		a.logout()
		return true, false
	case "quit":
		return true, true
	}
	return false, false
}

func tabHint(user *domain.User) string {
	if user.IsAdmin() {
		return "tabs: flights, overview | logout, quit"
	}
	return "tabs: search, book, res, find | logout, quit"
}

func (a *app) searchTab(ctx context.Context, user *domain.User) bool {
	printTitle("Search Flights")
	flights := a.catalog.Flights()
	if flights == nil {
		loaded, err := a.catalog.Load(ctx, domain.FlightFilter{})
		if err != nil {
			a.fail(err)
			return false
		}
		flights = loaded
	}
	printFlightTable(flights)
	fmt.Println("commands: s=search, a=show all, <n>=select flight |", tabHint(user))

	cmd, ok := a.prompt("> ")
	if !ok {
		return true
	}
	if consumed, quit := a.handleCommon(cmd, user); consumed {
		a.catalog.Reset()
		return quit
	}

	switch cmd {
	case "s":
		var filter domain.FlightFilter
		filter.Departure, ok = a.prompt("From: ")
		if !ok {
			return true
		}
		filter.Destination, ok = a.prompt("To: ")
		if !ok {
			return true
		}
		filter.Date, ok = a.prompt("Date (YYYY-MM-DD): ")
		if !ok {
			return true
		}
		if _, err := a.catalog.Load(ctx, filter); err != nil {
			a.fail(err)
		}
	case "a", "":
		if _, err := a.catalog.Load(ctx, domain.FlightFilter{}); err != nil {
			a.fail(err)
		}
	default:
		idx, err := strconv.Atoi(cmd)
		if err != nil || idx < 1 || idx > len(flights) {
			printAlert("unknown command")
			return false
		}
		if err := a.catalog.Select(flights[idx-1]); err != nil {
			printAlert(err.Error())
		}
	}
	return false
}

func (a *app) bookTab(ctx context.Context, user *domain.User) bool {
	printTitle("Complete Your Booking")
	flight, ok := a.booking.Selected()
	if !ok {
		fmt.Println("No flight selected yet. Pick one on the search screen first.")
		fmt.Println(tabHint(user))
		cmd, okIn := a.prompt("> ")
		if !okIn {
			return true
		}
		_, quit := a.handleCommon(cmd, user)
		return quit
	}

	fmt.Printf("%s — %s\n%s → %s\nDeparture: %s | Arrival: %s\nPrice: $%.2f\n\n",
		flight.FlightNumber, flight.Airline,
		flight.Departure, flight.Destination,
		flight.DepartureTime, flight.ArrivalTime, flight.Price)

	fmt.Println("press Enter to fill in passenger details, x=cancel selection |", tabHint(user))
	cmd, okIn := a.prompt("> ")
	if !okIn {
		return true
	}
	if consumed, quit := a.handleCommon(cmd, user); consumed {
		// navigating away abandons the selection
		a.booking.ClearSelection()
		return quit
	}
	switch cmd {
	case "":
	case "x":
		a.booking.ClearSelection()
		return false
	default:
		printAlert("unknown command")
		return false
	}

	form := a.booking.NewForm(user)
	if form.PassengerName, okIn = a.promptDefault("Passenger name", form.PassengerName); !okIn {
		return true
	}
	if form.Email, okIn = a.promptDefault("Email", form.Email); !okIn {
		return true
	}
	if form.Phone, okIn = a.promptDefault("Phone", form.Phone); !okIn {
		return true
	}
	if form.SeatNumber, okIn = a.promptDefault("Preferred seat (optional)", ""); !okIn {
		return true
	}
	if form.PassportNumber, okIn = a.promptDefault("Passport number (optional)", ""); !okIn {
		return true
	}

	reservation, err := a.booking.Submit(ctx, form)
	if err != nil {
		a.fail(err)
		return false
	}
	printSuccess("Booking confirmed! Reference: " + reservation.BookingReference)
	return false
}

func (a *app) promptDefault(label, def string) (string, bool) {
	text := label + ": "
	if def != "" {
		text = fmt.Sprintf("%s [%s]: ", label, def)
	}
	value, ok := a.prompt(text)
	if !ok {
		return "", false
	}
	if value == "" {
		return def, true
	}
	return value, true
}

func (a *app) reservationsTab(ctx context.Context, user *domain.User) bool {
	if user.IsAdmin() {
		printTitle("All Reservations")
	} else {
		printTitle("My Bookings")
	}

	list, err := a.reservations.List(ctx, user)
	if err != nil {
		a.fail(err)
		list = nil
	}
	printReservationTable(list)
	fmt.Println("commands: c <n>=toggle status, t <n>=print ticket, r=refresh |", tabHint(user))

	cmd, ok := a.prompt("> ")
	if !ok {
		return true
	}
	if consumed, quit := a.handleCommon(cmd, user); consumed {
		return quit
	}

	switch {
	case cmd == "r", cmd == "":
		// next loop iteration re-fetches
	case strings.HasPrefix(cmd, "c "):
		idx, err := strconv.Atoi(strings.TrimSpace(strings.TrimPrefix(cmd, "c ")))
		if err != nil || idx < 1 || idx > len(list) {
			printAlert("unknown reservation")
			return false
		}
		r := list[idx-1]
		if !a.reservations.CanToggle(user, r) {
			printAlert("this booking is already confirmed")
			return false
		}
		if _, err := a.reservations.ToggleStatus(ctx, user, r.ID, r.Status); err != nil {
			a.fail(err)
		}
	case strings.HasPrefix(cmd, "t "):
		idx, err := strconv.Atoi(strings.TrimSpace(strings.TrimPrefix(cmd, "t ")))
		if err != nil || idx < 1 || idx > len(list) {
			printAlert("unknown reservation")
			return false
		}
		fmt.Println(ticket.Format(list[idx-1]))
	default:
		printAlert("unknown command")
	}
	return false
}

func (a *app) findBookingTab(ctx context.Context, user *domain.User) bool {
	printTitle("Find Your Reservation")
	fmt.Println(tabHint(user))

	reference, ok := a.prompt("Booking reference (e.g. SW12345678): ")
	if !ok {
		return true
	}
	if consumed, quit := a.handleCommon(reference, user); consumed {
		return quit
	}

	reservation, err := a.reservations.Find(ctx, reference)
	if err != nil {
		if remote.IsNotFound(err) {
			printAlert("Reservation not found. Please check your booking reference.")
		} else {
			a.fail(err)
		}
		return false
	}
	fmt.Println(ticket.Format(*reservation))
	return false
}

func (a *app) flightManagementTab(ctx context.Context, user *domain.User) bool {
	printTitle("Flight Management")
	flights, err := a.inventory.Flights(ctx)
	if err != nil {
		a.fail(err)
		flights = nil
	}
	printAdminFlightTable(flights)
	fmt.Println("commands: a=add, e <n>=edit, d <n>=delete, r=refresh |", tabHint(user))

	cmd, ok := a.prompt("> ")
	if !ok {
		return true
	}
	if consumed, quit := a.handleCommon(cmd, user); consumed {
		return quit
	}

	switch {
	case cmd == "r", cmd == "":
	case cmd == "a":
		input, okIn := a.promptFlightInput(inventory.FlightInput{Airline: "SkyWings Airlines"})
		if !okIn {
			return true
		}
		if err := a.inventory.Create(ctx, input); err != nil {
			a.fail(err)
		} else {
			printSuccess("Flight added successfully")
		}
	case strings.HasPrefix(cmd, "e "):
		idx, err := strconv.Atoi(strings.TrimSpace(strings.TrimPrefix(cmd, "e ")))
		if err != nil || idx < 1 || idx > len(flights) {
			printAlert("unknown flight")
			return false
		}
		current := flights[idx-1]
		input, okIn := a.promptFlightInput(inventory.FlightInput{
			FlightNumber:   current.FlightNumber,
			Airline:        current.Airline,
			Departure:      current.Departure,
			Destination:    current.Destination,
			DepartureTime:  current.DepartureTime,
			ArrivalTime:    current.ArrivalTime,
			FlightDate:     current.FlightDate,
			Price:          strconv.FormatFloat(current.Price, 'f', -1, 64),
			TotalSeats:     strconv.Itoa(current.TotalSeats),
			AvailableSeats: strconv.Itoa(current.AvailableSeats),
		})
		if !okIn {
			return true
		}
		if err := a.inventory.Update(ctx, current.ID, input); err != nil {
			a.fail(err)
		} else {
			printSuccess("Flight updated successfully")
		}
	case strings.HasPrefix(cmd, "d "):
		idx, err := strconv.Atoi(strings.TrimSpace(strings.TrimPrefix(cmd, "d ")))
		if err != nil || idx < 1 || idx > len(flights) {
			printAlert("unknown flight")
			return false
		}
		answer, okIn := a.prompt("Are you sure you want to delete this flight? [y/N]: ")
		if !okIn {
			return true
		}
		confirmed := strings.EqualFold(answer, "y")
		if err := a.inventory.Delete(ctx, flights[idx-1].ID, confirmed); err != nil {
			if err != domain.ErrNotConfirmed {
				a.fail(err)
			}
		} else {
			printSuccess("Flight deleted successfully")
		}
	default:
		printAlert("unknown command")
	}
	return false
}

func (a *app) promptFlightInput(def inventory.FlightInput) (inventory.FlightInput, bool) {
	var ok bool
	if def.FlightNumber, ok = a.promptDefault("Flight number", def.FlightNumber); !ok {
		return def, false
	}
	if def.Airline, ok = a.promptDefault("Airline", def.Airline); !ok {
		return def, false
	}
	if def.Departure, ok = a.promptDefault("Departure city", def.Departure); !ok {
		return def, false
	}
	if def.Destination, ok = a.promptDefault("Destination city", def.Destination); !ok {
		return def, false
	}
	if def.DepartureTime, ok = a.promptDefault("Departure time (e.g. 10:30 AM)", def.DepartureTime); !ok {
		return def, false
	}
	if def.ArrivalTime, ok = a.promptDefault("Arrival time (e.g. 2:45 PM)", def.ArrivalTime); !ok {
		return def, false
	}
	if def.FlightDate, ok = a.promptDefault("Flight date (YYYY-MM-DD)", def.FlightDate); !ok {
		return def, false
	}
	if def.Price, ok = a.promptDefault("Price ($)", def.Price); !ok {
		return def, false
	}
	if def.TotalSeats, ok = a.promptDefault("Total seats", def.TotalSeats); !ok {
		return def, false
	}
	if def.AvailableSeats, ok = a.promptDefault("Available seats", def.AvailableSeats); !ok {
		return def, false
	}
	return def, true
}

func (a *app) bookingOverviewTab(ctx context.Context, user *domain.User) bool {
	printTitle("Flight Bookings Overview")
	flights, err := a.inventory.Flights(ctx)
	if err != nil {
		a.fail(err)
		flights = nil
	}
	printOverviewTable(flights)
	fmt.Println("commands: p <n>=show passengers, pr <n>=reload passengers |", tabHint(user))

	cmd, ok := a.prompt("> ")
	if !ok {
		return true
	}
	if consumed, quit := a.handleCommon(cmd, user); consumed {
		return quit
	}

	show := func(reload bool, arg string) {
		idx, err := strconv.Atoi(strings.TrimSpace(arg))
		if err != nil || idx < 1 || idx > len(flights) {
			printAlert("unknown flight")
			return
		}
		flight := flights[idx-1]
		var entries []domain.ManifestEntry
		if reload {
			entries, err = a.inventory.ReloadPassengers(ctx, flight.ID)
		} else {
			entries, err = a.inventory.Passengers(ctx, flight.ID)
		}
		if err != nil {
			a.fail(err)
			return
		}
		printManifest(flight, entries)
	}

	switch {
	case strings.HasPrefix(cmd, "pr "):
		show(true, strings.TrimPrefix(cmd, "pr "))
	case strings.HasPrefix(cmd, "p "):
		show(false, strings.TrimPrefix(cmd, "p "))
	case cmd == "":
	default:
		printAlert("unknown command")
	}
	return false
}
