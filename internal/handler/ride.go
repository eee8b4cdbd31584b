package handler

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"carpool/internal/domain"
	"carpool/internal/middleware"
	"carpool/internal/repository"
	"carpool/internal/service"
)

// RideHandler handles HTTP requests for rides.
type RideHandler struct {
	rideService *service.RideService
}

// NewRideHandler creates a new RideHandler.
func NewRideHandler(rideService *service.RideService) *RideHandler {
	return &RideHandler{rideService: rideService}
}

// CreateRideRequest is the HTTP request body for offering a ride.
type CreateRideRequest struct {
	CarID          string  `json:"car_id"`
	StartLocation  string  `json:"start_location"`
	EndLocation    string  `json:"end_location"`
	DepartureTime  string  `json:"departure_time"` // RFC 3339
	PricePerSeat   float64 `json:"price_per_seat"`
	TotalSeats     int     `json:"total_seats"`
	InstantBooking bool    `json:"instant_booking"`
}

// RideResponse is the HTTP response for ride operations.
type RideResponse struct {
	ID             string  `json:"id"`
	DriverID       string  `json:"driver_id"`
	CarID          string  `json:"car_id"`
	StartLocation  string  `json:"start_location"`
	EndLocation    string  `json:"end_location"`
	DepartureTime  string  `json:"departure_time"`
	PricePerSeat   float64 `json:"price_per_seat"`
	TotalSeats     int     `json:"total_seats"`
	AvailableSeats int     `json:"available_seats"`
	InstantBooking bool    `json:"instant_booking"`
}

// CreateRide handles POST /v1/rides
func (h *RideHandler) CreateRide(c *gin.Context) {
	actor, ok := middleware.ActorFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "unauthenticated"})
		return
	}

	var req CreateRideRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request body"})
		return
	}

	departure, err := time.Parse(time.RFC3339, req.DepartureTime)
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "departure_time must be RFC 3339"})
		return
	}

	ride, err := h.rideService.CreateRide(c.Request.Context(), service.CreateRideRequest{
		DriverID:       actor.UserID,
		CarID:          req.CarID,
		StartLocation:  req.StartLocation,
		EndLocation:    req.EndLocation,
		DepartureTime:  departure,
		PricePerSeat:   req.PricePerSeat,
		TotalSeats:     req.TotalSeats,
		InstantBooking: req.InstantBooking,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	respondJSON(c, http.StatusCreated, toRideResponse(ride))
}

// GetRide handles GET /v1/rides/:id
func (h *RideHandler) GetRide(c *gin.Context) {
	ride, err := h.rideService.GetRide(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}

	respondJSON(c, http.StatusOK, toRideResponse(ride))
}

// SearchRides handles GET /v1/rides
//
// Query parameters: start, end, date (YYYY-MM-DD), seats. All optional;
// without any, all upcoming rides are listed.
func (h *RideHandler) SearchRides(c *gin.Context) {
	search := repository.RideSearch{
		StartLocation: c.Query("start"),
		EndLocation:   c.Query("end"),
	}

	if date := c.Query("date"); date != "" {
		day, err := time.Parse("2006-01-02", date)
		if err != nil {
			c.JSON(http.StatusBadRequest, ErrorResponse{Error: "date must be YYYY-MM-DD"})
			return
		}
		search.DepartureDate = day
	}

	if seats := c.Query("seats"); seats != "" {
		n, err := strconv.Atoi(seats)
		if err != nil || n < 1 {
			c.JSON(http.StatusBadRequest, ErrorResponse{Error: "seats must be a positive integer"})
			return
		}
		search.MinSeats = n
	}

	rides, err := h.rideService.SearchRides(c.Request.Context(), search)
	if err != nil {
		respondError(c, err)
		return
	}

	response := make([]RideResponse, 0, len(rides))
	for _, r := range rides {
		response = append(response, toRideResponse(r))
	}
	c.JSON(http.StatusOK, response)
}

// GetMyRides handles GET /v1/rides/mine
func (h *RideHandler) GetMyRides(c *gin.Context) {
	actor, ok := middleware.ActorFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "unauthenticated"})
		return
	}

	filter := repository.RideFilter{DriverID: actor.UserID}
	switch c.Query("when") {
	case "past":
		filter.Past = true
	case "upcoming":
		filter.Upcoming = true
	}

	rides, err := h.rideService.ListRides(c.Request.Context(), filter)
	if err != nil {
		respondError(c, err)
		return
	}

	response := make([]RideResponse, 0, len(rides))
	for _, r := range rides {
		response = append(response, toRideResponse(r))
	}
	c.JSON(http.StatusOK, response)
}

// DeleteRide handles DELETE /v1/rides/:id
func (h *RideHandler) DeleteRide(c *gin.Context) {
	actor, ok := middleware.ActorFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "unauthenticated"})
		return
	}

	if err := h.rideService.DeleteRide(c.Request.Context(), actor, c.Param("id")); err != nil {
		respondError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

func toRideResponse(r *domain.Ride) RideResponse {
	return RideResponse{
		ID:             r.ID,
		DriverID:       r.DriverID,
		CarID:          r.CarID,
		StartLocation:  r.StartLocation,
		EndLocation:    r.EndLocation,
		DepartureTime:  r.DepartureTime.Format("2006-01-02T15:04:05Z07:00"),
		PricePerSeat:   r.PricePerSeat,
		TotalSeats:     r.TotalSeats,
		AvailableSeats: r.AvailableSeats,
		InstantBooking: r.InstantBooking,
	}
}
