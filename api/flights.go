package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Domenick1991/skywings/internal/domain"
	"github.com/Domenick1991/skywings/internal/stub"
)

type FlightHandler struct {
	store *stub.Store
}

type flightRequest struct {
	FlightNumber   string  `json:"flightNumber"`
	Airline        string  `json:"airline"`
	Departure      string  `json:"departure"`
	Destination    string  `json:"destination"`
	DepartureTime  string  `json:"departureTime"`
	ArrivalTime    string  `json:"arrivalTime"`
	FlightDate     string  `json:"flightDate"`
	Price          float64 `json:"price"`
	TotalSeats     int     `json:"totalSeats"`
	AvailableSeats int     `json:"availableSeats"`
}

func (r flightRequest) flight() domain.Flight {
	return domain.Flight{
		FlightNumber:   r.FlightNumber,
		Airline:        r.Airline,
		Departure:      r.Departure,
		Destination:    r.Destination,
		DepartureTime:  r.DepartureTime,
		ArrivalTime:    r.ArrivalTime,
		FlightDate:     r.FlightDate,
		Price:          r.Price,
		TotalSeats:     r.TotalSeats,
		AvailableSeats: r.AvailableSeats,
	}
}

func NewFlightHandler(store *stub.Store) *FlightHandler {
	return &FlightHandler{store: store}
}

func (h *FlightHandler) Register(router *gin.RouterGroup, auth, admin gin.HandlerFunc) {
	router.GET("/flights", h.list)
	router.GET("/flights/search", h.search)
	router.POST("/flights", auth, admin, h.create)
	router.PUT("/flights/:id", auth, admin, h.update)
	router.DELETE("/flights/:id", auth, admin, h.delete)
	router.GET("/admin/flights", auth, admin, h.adminList)
	router.GET("/admin/flights/:id/passengers", auth, admin, h.passengers)
}

func (h *FlightHandler) list(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"success": true, "data": h.store.ListFlights()})
}

func (h *FlightHandler) search(c *gin.Context) {
	flights := h.store.SearchFlights(c.Query("departure"), c.Query("destination"), c.Query("date"))
	c.JSON(http.StatusOK, gin.H{"success": true, "data": flights})
}

func (h *FlightHandler) create(c *gin.Context) {
	var req flightRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": err.Error()})
		return
	}

	flight, err := h.store.CreateFlight(req.flight())
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, gin.H{"success": true, "data": flight})
}

func (h *FlightHandler) update(c *gin.Context) {
	var req flightRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": err.Error()})
		return
	}

	if err := h.store.UpdateFlight(c.Param("id"), req.flight()); err != nil {
		status := http.StatusBadRequest
		if errors.Is(err, stub.ErrFlightNotFound) {
			status = http.StatusNotFound
		}
		c.JSON(status, gin.H{"success": false, "message": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}

func (h *FlightHandler) delete(c *gin.Context) {
	if err := h.store.DeleteFlight(c.Param("id")); err != nil {
		c.JSON(http.StatusNotFound, gin.H{"success": false, "message": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}

func (h *FlightHandler) adminList(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"success": true, "data": h.store.ListFlights()})
}

func (h *FlightHandler) passengers(c *gin.Context) {
	entries, err := h.store.Passengers(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"success": false, "message": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "data": entries})
}
