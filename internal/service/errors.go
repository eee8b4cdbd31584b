package service

import "errors"

var (
	// ErrInvalidSeatCount is returned when a booking requests fewer than one seat.
	ErrInvalidSeatCount = errors.New("seat count must be at least 1")

	// ErrInvalidSeatRange is returned when a ride's total seats fall outside 1-4.
	ErrInvalidSeatRange = errors.New("total seats must be between 1 and 4")

	// ErrInvalidPrice is returned when a ride's price per seat is not positive.
	ErrInvalidPrice = errors.New("price per seat must be greater than zero")

	// ErrDepartureInPast is returned when a ride's departure time has already passed.
	ErrDepartureInPast = errors.New("departure time cannot be in the past")

	// ErrInvalidAmount is returned when a payment amount is not positive.
	ErrInvalidAmount = errors.New("amount must be greater than zero")

	// ErrInvalidPaymentMethod is returned when the payment method is unknown.
	ErrInvalidPaymentMethod = errors.New("invalid payment method")

	// ErrMissingCardToken is returned when a card payment lacks a processor token.
	ErrMissingCardToken = errors.New("credit card payment requires a token")

	// ErrInvalidRating is returned when a review rating falls outside 1-5.
	ErrInvalidRating = errors.New("rating must be between 1 and 5")

	// ErrInvalidDecision is returned when a booking decision is neither
	// confirmed nor rejected.
	ErrInvalidDecision = errors.New("decision must be CONFIRMED or REJECTED")

	// ErrSelfBooking is returned when a driver tries to book their own ride.
	ErrSelfBooking = errors.New("cannot book your own ride")

	// ErrDuplicateBooking is returned when the passenger already holds an
	// active booking on the ride.
	ErrDuplicateBooking = errors.New("ride already booked")

	// ErrInsufficientSeats is returned when a ride cannot cover the
	// requested seats.
	ErrInsufficientSeats = errors.New("not enough available seats")

	// ErrBookingNotPending is returned when an operation requires a pending
	// booking.
	ErrBookingNotPending = errors.New("booking is not in a pending state")

	// ErrBookingAlreadyCancelled is returned when cancelling a cancelled booking.
	ErrBookingAlreadyCancelled = errors.New("booking is already cancelled")

	// ErrBookingTerminal is returned when a booking in a terminal state is
	// asked to transition again.
	ErrBookingTerminal = errors.New("booking is in a terminal state")

	// ErrAlreadyRefunded is returned when refunding a refunded payment.
	ErrAlreadyRefunded = errors.New("payment already refunded")

	// ErrRideHasBookings is returned when deleting a ride that bookings reference.
	ErrRideHasBookings = errors.New("ride has bookings and cannot be deleted")

	// ErrRideHasReviews is returned when deleting a ride that reviews reference.
	ErrRideHasReviews = errors.New("ride has reviews and cannot be deleted")

	// ErrDuplicateRide is returned when the driver already offers a ride at
	// the same departure time.
	ErrDuplicateRide = errors.New("a ride with the same departure already exists")

	// ErrCancellationInProgress is returned when another cancellation holds
	// the booking's lock.
	ErrCancellationInProgress = errors.New("cancellation already in progress")

	// ErrForbidden is returned when the actor lacks rights for the operation.
	ErrForbidden = errors.New("not authorized for this operation")

	// ErrCarNotOwned is returned when a ride references a car the driver
	// does not own.
	ErrCarNotOwned = errors.New("car does not belong to the driver")

	// ErrInsufficientBalance is returned when a wallet cannot cover a charge.
	ErrInsufficientBalance = errors.New("insufficient wallet balance")

	// ErrPaymentDeclined is returned when the card processor declines or
	// times out on a charge. The caller may retry; the service never does.
	ErrPaymentDeclined = errors.New("payment declined")

	// ErrRefundFailed is returned when the card processor fails a reversal.
	// The payment status is left unchanged so the caller can retry.
	ErrRefundFailed = errors.New("refund failed")

	// ErrNotRefundable is returned when refunding a payment that never completed.
	ErrNotRefundable = errors.New("payment is not refundable")

	// ErrCommentRejected is returned when moderation rejects review text.
	ErrCommentRejected = errors.New("review comment rejected by moderation")
)
