package domain

import "time"

// BookingStatus represents the current status of a booking.
type BookingStatus string

const (
	BookingStatusPending   BookingStatus = "PENDING"
	BookingStatusConfirmed BookingStatus = "CONFIRMED"
	BookingStatusCancelled BookingStatus = "CANCELLED"
	BookingStatusRejected  BookingStatus = "REJECTED"
)

// ParseBookingStatus validates a booking status string.
func ParseBookingStatus(s string) (BookingStatus, bool) {
	switch BookingStatus(s) {
	case BookingStatusPending, BookingStatusConfirmed, BookingStatusCancelled, BookingStatusRejected:
		return BookingStatus(s), true
	}
	return "", false
}

// Active reports whether the status holds a seat reservation.
func (s BookingStatus) Active() bool {
	return s == BookingStatusPending || s == BookingStatusConfirmed
}

// Terminal reports whether the status permits no further transitions.
func (s BookingStatus) Terminal() bool {
	return s == BookingStatusCancelled || s == BookingStatusRejected
}

// Booking represents a passenger's seat reservation on a ride.
type Booking struct {
	ID           string
	RideID       string
	PassengerID  string
	SeatsBooked  int
	Status       BookingStatus
	BookingTime  time.Time
	RefundAmount float64   // set on cancellation
	CancelledAt  time.Time // zero until cancelled
}
