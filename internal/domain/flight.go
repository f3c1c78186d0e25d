package domain

type Flight struct {
	ID             string  `json:"_id"`
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
	BookedSeats    int     `json:"bookedSeats,omitempty"`
}

func (f Flight) SoldOut() bool {
	return f.AvailableSeats <= 0
}

// FlightFilter is passed to the server as-is, the client never re-filters results.
type FlightFilter struct {
	Departure   string
	Destination string
	Date        string
}

func (f FlightFilter) IsEmpty() bool {
	return f.Departure == "" && f.Destination == "" && f.Date == ""
}
