package repository

import (
	"context"

	"carpool/internal/domain"
)

// CarRepository defines the persistence operations for cars.
type CarRepository interface {
	// Create persists a new car.
	Create(ctx context.Context, car *domain.Car) error

	// GetByID retrieves a car by ID.
	GetByID(ctx context.Context, id string) (*domain.Car, error)

	// ListByOwner retrieves all cars owned by a user.
	ListByOwner(ctx context.Context, ownerID string) ([]*domain.Car, error)
}
