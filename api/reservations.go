package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Domenick1991/skywings/internal/stub"
)

type ReservationHandler struct {
	store *stub.Store
}

type addReservationRequest struct {
	PassengerName  string `json:"passengerName"`
	Email          string `json:"email"`
	Phone          string `json:"phone"`
	SeatNumber     string `json:"seatNumber"`
	PassportNumber string `json:"passportNumber"`
	FlightID       string `json:"flightId"`
}

type updateStatusRequest struct {
	Status bool `json:"status"`
}

func NewReservationHandler(store *stub.Store) *ReservationHandler {
	return &ReservationHandler{store: store}
}

func (h *ReservationHandler) Register(router *gin.RouterGroup, auth, admin gin.HandlerFunc) {
	router.POST("/addReservation", auth, h.add)
	router.GET("/myReservations", auth, h.mine)
	router.GET("/getReservations", auth, admin, h.all)
	router.PUT("/updateStatus/:id", auth, h.updateStatus)
	router.GET("/reservation/:bookingReference", h.byReference)
}

func (h *ReservationHandler) add(c *gin.Context) {
	var req addReservationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": err.Error()})
		return
	}

	reservation, err := h.store.AddReservation(CurrentUser(c), stub.ReservationInput{
		PassengerName:  req.PassengerName,
		Email:          req.Email,
		Phone:          req.Phone,
		SeatNumber:     req.SeatNumber,
		PassportNumber: req.PassportNumber,
		FlightID:       req.FlightID,
	})
	if err != nil {
		status := http.StatusBadRequest
		if errors.Is(err, stub.ErrFlightNotFound) {
			status = http.StatusNotFound
		}
		c.JSON(status, gin.H{"success": false, "message": err.Error()})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"success": true, "data": reservation})
}

func (h *ReservationHandler) mine(c *gin.Context) {
	user := CurrentUser(c)
	c.JSON(http.StatusOK, gin.H{"success": true, "data": h.store.ReservationsFor(user.ID)})
}

func (h *ReservationHandler) all(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"success": true, "data": h.store.AllReservations()})
}

func (h *ReservationHandler) updateStatus(c *gin.Context) {
	var req updateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": err.Error()})
		return
	}

	if err := h.store.UpdateStatus(c.Param("id"), req.Status); err != nil {
		c.JSON(http.StatusNotFound, gin.H{"success": false, "message": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}

func (h *ReservationHandler) byReference(c *gin.Context) {
	reservation, err := h.store.ReservationByReference(c.Param("bookingReference"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "reservation not found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "data": reservation})
}
