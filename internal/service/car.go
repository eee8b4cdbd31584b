package service

import (
	"context"

	"github.com/google/uuid"

	"carpool/internal/domain"
	"carpool/internal/repository"
)

// CarService manages the cars drivers register for their rides.
type CarService struct {
	cars repository.CarRepository
}

// NewCarService creates a new CarService.
func NewCarService(cars repository.CarRepository) *CarService {
	return &CarService{cars: cars}
}

// RegisterCarRequest contains the parameters for registering a car.
type RegisterCarRequest struct {
	OwnerID string
	Brand   string
	Model   string
	Color   string
}

// RegisterCar registers a car to its owner.
func (s *CarService) RegisterCar(ctx context.Context, req RegisterCarRequest) (*domain.Car, error) {
	car := &domain.Car{
		ID:      uuid.New().String(),
		OwnerID: req.OwnerID,
		Brand:   req.Brand,
		Model:   req.Model,
		Color:   req.Color,
	}
	if err := s.cars.Create(ctx, car); err != nil {
		return nil, err
	}
	return car, nil
}

// GetCar retrieves a car by ID.
func (s *CarService) GetCar(ctx context.Context, carID string) (*domain.Car, error) {
	return s.cars.GetByID(ctx, carID)
}

// ListOwnerCars retrieves all cars registered to an owner.
func (s *CarService) ListOwnerCars(ctx context.Context, ownerID string) ([]*domain.Car, error) {
	return s.cars.ListByOwner(ctx, ownerID)
}
