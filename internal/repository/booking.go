package repository

import (
	"context"

	"carpool/internal/domain"
)

// BookingRepository defines the persistence operations for bookings.
type BookingRepository interface {
	// Create persists a new booking. Returns ErrDuplicate if an active
	// booking already exists for the same (ride, passenger) pair.
	Create(ctx context.Context, booking *domain.Booking) error

	// GetByID retrieves a booking by ID.
	GetByID(ctx context.Context, id string) (*domain.Booking, error)

	// GetActiveByRideAndPassenger retrieves the pending or confirmed booking
	// for a (ride, passenger) pair. Returns nil, nil when none exists.
	GetActiveByRideAndPassenger(ctx context.Context, rideID, passengerID string) (*domain.Booking, error)

	// ListByRide retrieves all bookings for a ride.
	ListByRide(ctx context.Context, rideID string) ([]*domain.Booking, error)

	// ListByPassenger retrieves all bookings made by a passenger.
	ListByPassenger(ctx context.Context, passengerID string) ([]*domain.Booking, error)

	// CountByRide returns the number of bookings referencing a ride,
	// regardless of status.
	CountByRide(ctx context.Context, rideID string) (int, error)

	// Update updates an existing booking.
	Update(ctx context.Context, booking *domain.Booking) error
}
