package repository

import (
	"context"

	"carpool/internal/domain"
)

// ReviewRepository defines the persistence operations for reviews.
type ReviewRepository interface {
	// Create persists a new review.
	Create(ctx context.Context, review *domain.Review) error

	// ListByRide retrieves all reviews for a ride.
	ListByRide(ctx context.Context, rideID string) ([]*domain.Review, error)

	// CountByRide returns the number of reviews referencing a ride.
	CountByRide(ctx context.Context, rideID string) (int, error)
}
