package service

import (
	"context"
	"errors"

	"carpool/internal/domain"
	"carpool/internal/repository"
)

// SeatLedger is the sole authority over a ride's seat inventory. It is
// constructed over a transaction-scoped ride repository so that seat
// movements commit or roll back together with the booking they belong to.
type SeatLedger struct {
	rides repository.RideRepository
}

// NewSeatLedger creates a SeatLedger over the given ride repository.
func NewSeatLedger(rides repository.RideRepository) *SeatLedger {
	return &SeatLedger{rides: rides}
}

// Reserve takes seats out of the ride's available inventory and returns the
// updated ride. The underlying decrement is conditional on enough seats
// remaining, so two reservations racing for the last seats cannot both win.
func (l *SeatLedger) Reserve(ctx context.Context, rideID string, seats int) (*domain.Ride, error) {
	if seats < domain.MinSeats {
		return nil, ErrInvalidSeatCount
	}

	ride, err := l.rides.ReserveSeats(ctx, rideID, seats)
	if err != nil {
		if errors.Is(err, repository.ErrNotEnoughSeats) {
			return nil, ErrInsufficientSeats
		}
		return nil, err
	}
	return ride, nil
}

// Release returns seats to the ride's available inventory. The increment is
// capped at total_seats, so releasing the same seats twice cannot inflate
// the inventory.
func (l *SeatLedger) Release(ctx context.Context, rideID string, seats int) error {
	if seats < domain.MinSeats {
		return ErrInvalidSeatCount
	}
	return l.rides.ReleaseSeats(ctx, rideID, seats)
}
