package domain

import "time"

// Seat count limits for a ride. A car offered on the platform carries at
// most four passengers.
const (
	MinSeats = 1
	MaxSeats = 4
)

// Ride represents a ride offered by a driver.
type Ride struct {
	ID             string
	DriverID       string
	CarID          string
	StartLocation  string
	EndLocation    string
	DepartureTime  time.Time
	PricePerSeat   float64
	TotalSeats     int // fixed at creation
	AvailableSeats int // mutated only through seat ledger operations
	InstantBooking bool
	CreatedAt      time.Time
}

// Departed reports whether the ride's departure time has passed.
func (r *Ride) Departed(now time.Time) bool {
	return !r.DepartureTime.After(now)
}
