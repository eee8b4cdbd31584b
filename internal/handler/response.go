package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"carpool/internal/repository"
	"carpool/internal/service"
)

// ErrorResponse represents an error response.
type ErrorResponse struct {
	Error string `json:"error"`
}

// respondError sends an error response with the appropriate HTTP status code.
func respondError(c *gin.Context, err error) {
	code := mapErrorToHTTPStatus(err)
	c.JSON(code, ErrorResponse{Error: err.Error()})
}

// respondJSON sends a JSON response with the given status code.
func respondJSON(c *gin.Context, code int, data any) {
	c.JSON(code, data)
}

// mapErrorToHTTPStatus maps service/repository errors to HTTP status codes.
func mapErrorToHTTPStatus(err error) int {
	switch {
	// Not found errors
	case errors.Is(err, repository.ErrNotFound):
		return http.StatusNotFound

	// Validation errors - Bad Request
	case errors.Is(err, service.ErrInvalidSeatCount),
		errors.Is(err, service.ErrInvalidSeatRange),
		errors.Is(err, service.ErrInvalidPrice),
		errors.Is(err, service.ErrDepartureInPast),
		errors.Is(err, service.ErrInvalidAmount),
		errors.Is(err, service.ErrInvalidPaymentMethod),
		errors.Is(err, service.ErrMissingCardToken),
		errors.Is(err, service.ErrInvalidRating),
		errors.Is(err, service.ErrInvalidDecision),
		errors.Is(err, service.ErrCommentRejected):
		return http.StatusBadRequest

	// Payment required
	case errors.Is(err, service.ErrInsufficientBalance),
		errors.Is(err, service.ErrPaymentDeclined):
		return http.StatusPaymentRequired

	// Forbidden/Business rule errors
	case errors.Is(err, service.ErrForbidden),
		errors.Is(err, service.ErrSelfBooking),
		errors.Is(err, service.ErrCarNotOwned):
		return http.StatusForbidden

	// Conflict errors
	case errors.Is(err, service.ErrDuplicateBooking),
		errors.Is(err, service.ErrDuplicateRide),
		errors.Is(err, service.ErrInsufficientSeats),
		errors.Is(err, service.ErrBookingNotPending),
		errors.Is(err, service.ErrBookingAlreadyCancelled),
		errors.Is(err, service.ErrBookingTerminal),
		errors.Is(err, service.ErrAlreadyRefunded),
		errors.Is(err, service.ErrNotRefundable),
		errors.Is(err, service.ErrRideHasBookings),
		errors.Is(err, service.ErrRideHasReviews),
		errors.Is(err, service.ErrCancellationInProgress):
		return http.StatusConflict

	// Upstream processor failure
	case errors.Is(err, service.ErrRefundFailed):
		return http.StatusBadGateway

	// Default to internal server error
	default:
		return http.StatusInternalServerError
	}
}
