package stub

import "github.com/Domenick1991/skywings/internal/domain"

// SeedAdmin registers the operator account from the configuration.
func (s *Store) SeedAdmin(email, password string) error {
	if email == "" || password == "" {
		return nil
	}
	_, _, err := s.Register("Administrator", email, "", password, domain.RoleAdmin)
	return err
}

// SeedFlights loads a small default inventory for local development.
func (s *Store) SeedFlights() error {
	flights := []domain.Flight{
		{
			FlightNumber:   "SW101",
			Airline:        "SkyWings Airlines",
			Departure:      "Delhi",
			Destination:    "Mumbai",
			DepartureTime:  "10:30 AM",
			ArrivalTime:    "12:45 PM",
			FlightDate:     "2024-05-01",
			Price:          120,
			TotalSeats:     150,
			AvailableSeats: 150,
		},
		{
			FlightNumber:   "SW202",
			Airline:        "SkyWings Airlines",
			Departure:      "Mumbai",
			Destination:    "Bengaluru",
			DepartureTime:  "2:15 PM",
			ArrivalTime:    "4:00 PM",
			FlightDate:     "2024-05-01",
			Price:          95,
			TotalSeats:     120,
			AvailableSeats: 120,
		},
		{
			FlightNumber:   "SW303",
			Airline:        "SkyWings Airlines",
			Departure:      "Delhi",
			Destination:    "Kolkata",
			DepartureTime:  "6:00 PM",
			ArrivalTime:    "8:20 PM",
			FlightDate:     "2024-05-02",
			Price:          110,
			TotalSeats:     100,
			AvailableSeats: 0,
		},
	}
	for _, f := range flights {
		if _, err := s.CreateFlight(f); err != nil {
			return err
		}
	}
	return nil
}
