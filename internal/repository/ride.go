package repository

import (
	"context"
	"time"

	"carpool/internal/domain"
)

// RideFilter narrows ride listings.
type RideFilter struct {
	DriverID string
	Past     bool // departure before now
	Upcoming bool // departure at or after now
	Now      time.Time
}

// RideSearch holds ride search criteria. Zero-value fields are ignored.
type RideSearch struct {
	StartLocation string
	EndLocation   string
	DepartureDate time.Time // matched by calendar day
	MinSeats      int
}

// RideRepository defines the persistence operations for rides.
type RideRepository interface {
	// Create persists a new ride.
	Create(ctx context.Context, ride *domain.Ride) error

	// GetByID retrieves a ride by ID.
	GetByID(ctx context.Context, id string) (*domain.Ride, error)

	// List retrieves rides matching the filter.
	List(ctx context.Context, filter RideFilter) ([]*domain.Ride, error)

	// Search retrieves rides matching the search criteria.
	Search(ctx context.Context, search RideSearch) ([]*domain.Ride, error)

	// ExistsByDriverAndDeparture reports whether the driver already offers a
	// ride at the given departure time.
	ExistsByDriverAndDeparture(ctx context.Context, driverID string, departure time.Time) (bool, error)

	// ReserveSeats atomically decrements available_seats by seats, provided
	// enough seats remain, and returns the updated ride. Returns
	// ErrNotEnoughSeats when the decrement would go negative.
	ReserveSeats(ctx context.Context, id string, seats int) (*domain.Ride, error)

	// ReleaseSeats atomically increments available_seats by seats, capped at
	// total_seats so a double release cannot overflow the inventory.
	ReleaseSeats(ctx context.Context, id string, seats int) error

	// Delete removes a ride. Callers must first verify no bookings or
	// reviews reference it.
	Delete(ctx context.Context, id string) error
}
