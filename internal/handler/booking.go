package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"carpool/internal/domain"
	"carpool/internal/middleware"
	"carpool/internal/service"
)

// BookingHandler handles HTTP requests for bookings.
type BookingHandler struct {
	bookingService *service.BookingService
	cancelService  *service.CancellationService
	rideService    *service.RideService
}

// NewBookingHandler creates a new BookingHandler.
func NewBookingHandler(
	bookingService *service.BookingService,
	cancelService *service.CancellationService,
	rideService *service.RideService,
) *BookingHandler {
	return &BookingHandler{
		bookingService: bookingService,
		cancelService:  cancelService,
		rideService:    rideService,
	}
}

// CreateBookingRequest is the HTTP request body for creating a booking.
type CreateBookingRequest struct {
	RideID        string `json:"ride_id"`
	Seats         int    `json:"seats"`
	PaymentMethod string `json:"payment_method,omitempty"` // WALLET, CREDIT_CARD, IDEAL, PAYPAL
	CardToken     string `json:"card_token,omitempty"`
}

// DecideBookingRequest is the HTTP request body for the driver's decision.
type DecideBookingRequest struct {
	Decision      string `json:"decision"` // CONFIRMED or REJECTED
	PaymentMethod string `json:"payment_method,omitempty"`
	CardToken     string `json:"card_token,omitempty"`
}

// UpdateSeatsRequest is the HTTP request body for changing a booking's seats.
type UpdateSeatsRequest struct {
	Seats int `json:"seats"`
}

// BookingResponse is the HTTP response for booking operations. Ride is only
// populated by listings that join in ride details.
type BookingResponse struct {
	ID           string        `json:"id"`
	RideID       string        `json:"ride_id"`
	PassengerID  string        `json:"passenger_id"`
	Seats        int           `json:"seats"`
	Status       string        `json:"status"`
	BookingTime  string        `json:"booking_time"`
	RefundAmount float64       `json:"refund_amount,omitempty"`
	CancelledAt  string        `json:"cancelled_at,omitempty"`
	Ride         *RideResponse `json:"ride,omitempty"`
}

// CreateBooking handles POST /v1/bookings
func (h *BookingHandler) CreateBooking(c *gin.Context) {
	actor, ok := middleware.ActorFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "unauthenticated"})
		return
	}

	var req CreateBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request body"})
		return
	}

	method, err := parseOptionalMethod(req.PaymentMethod)
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		return
	}

	booking, err := h.bookingService.Create(c.Request.Context(), service.CreateBookingRequest{
		RideID:      req.RideID,
		PassengerID: actor.UserID,
		Seats:       req.Seats,
		Method:      method,
		CardToken:   req.CardToken,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	respondJSON(c, http.StatusCreated, toBookingResponse(booking))
}

// DecideBooking handles POST /v1/bookings/:id/decision
func (h *BookingHandler) DecideBooking(c *gin.Context) {
	actor, ok := middleware.ActorFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "unauthenticated"})
		return
	}

	var req DecideBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request body"})
		return
	}

	decision, ok := domain.ParseBookingStatus(req.Decision)
	if !ok {
		respondError(c, service.ErrInvalidDecision)
		return
	}

	method, err := parseOptionalMethod(req.PaymentMethod)
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		return
	}

	booking, err := h.bookingService.Decide(c.Request.Context(), actor, service.DecideBookingRequest{
		BookingID: c.Param("id"),
		Decision:  decision,
		Method:    method,
		CardToken: req.CardToken,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	respondJSON(c, http.StatusOK, toBookingResponse(booking))
}

// UpdateSeats handles PATCH /v1/bookings/:id/seats
func (h *BookingHandler) UpdateSeats(c *gin.Context) {
	actor, ok := middleware.ActorFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "unauthenticated"})
		return
	}

	var req UpdateSeatsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request body"})
		return
	}

	booking, err := h.bookingService.UpdateSeats(c.Request.Context(), actor, c.Param("id"), req.Seats)
	if err != nil {
		respondError(c, err)
		return
	}

	respondJSON(c, http.StatusOK, toBookingResponse(booking))
}

// CancelBooking handles POST /v1/bookings/:id/cancel
func (h *BookingHandler) CancelBooking(c *gin.Context) {
	actor, ok := middleware.ActorFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "unauthenticated"})
		return
	}

	booking, err := h.cancelService.Cancel(c.Request.Context(), actor, c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}

	respondJSON(c, http.StatusOK, toBookingResponse(booking))
}

// GetBooking handles GET /v1/bookings/:id
func (h *BookingHandler) GetBooking(c *gin.Context) {
	actor, ok := middleware.ActorFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "unauthenticated"})
		return
	}

	booking, err := h.bookingService.GetBooking(c.Request.Context(), actor, c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}

	respondJSON(c, http.StatusOK, toBookingResponse(booking))
}

// GetMyBookings handles GET /v1/bookings
func (h *BookingHandler) GetMyBookings(c *gin.Context) {
	actor, ok := middleware.ActorFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "unauthenticated"})
		return
	}

	bookings, err := h.bookingService.ListMyBookings(c.Request.Context(), actor)
	if err != nil {
		respondError(c, err)
		return
	}

	rideIDs := make([]string, 0, len(bookings))
	for _, b := range bookings {
		rideIDs = append(rideIDs, b.RideID)
	}
	rides, err := h.rideService.GetRidesBulk(c.Request.Context(), rideIDs)
	if err != nil {
		respondError(c, err)
		return
	}

	response := make([]BookingResponse, 0, len(bookings))
	for _, b := range bookings {
		resp := toBookingResponse(b)
		if ride, ok := rides[b.RideID]; ok {
			rr := toRideResponse(ride)
			resp.Ride = &rr
		}
		response = append(response, resp)
	}
	c.JSON(http.StatusOK, response)
}

// GetRideBookings handles GET /v1/rides/:id/bookings
func (h *BookingHandler) GetRideBookings(c *gin.Context) {
	actor, ok := middleware.ActorFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "unauthenticated"})
		return
	}

	bookings, err := h.bookingService.ListRideBookings(c.Request.Context(), actor, c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}

	response := make([]BookingResponse, 0, len(bookings))
	for _, b := range bookings {
		response = append(response, toBookingResponse(b))
	}
	c.JSON(http.StatusOK, response)
}

func toBookingResponse(b *domain.Booking) BookingResponse {
	resp := BookingResponse{
		ID:           b.ID,
		RideID:       b.RideID,
		PassengerID:  b.PassengerID,
		Seats:        b.SeatsBooked,
		Status:       string(b.Status),
		BookingTime:  b.BookingTime.Format("2006-01-02T15:04:05Z07:00"),
		RefundAmount: b.RefundAmount,
	}
	if !b.CancelledAt.IsZero() {
		resp.CancelledAt = b.CancelledAt.Format("2006-01-02T15:04:05Z07:00")
	}
	return resp
}

// parseOptionalMethod validates an optional payment method string. An empty
// string is allowed; the service falls back to the wallet.
func parseOptionalMethod(s string) (domain.PaymentMethod, error) {
	if s == "" {
		return "", nil
	}
	method, ok := domain.ParsePaymentMethod(s)
	if !ok {
		return "", service.ErrInvalidPaymentMethod
	}
	return method, nil
}
