package postgres

import (
	"context"
	"database/sql"
	"errors"

	"carpool/internal/domain"
	"carpool/internal/repository"
)

// CarRepository is a PostgreSQL implementation of repository.CarRepository.
type CarRepository struct {
	q Querier
}

// NewCarRepository creates a new PostgreSQL car repository.
func NewCarRepository(db *sql.DB) *CarRepository {
	return &CarRepository{q: db}
}

// Create persists a new car.
func (r *CarRepository) Create(ctx context.Context, car *domain.Car) error {
	query := `INSERT INTO cars (id, owner_id, brand, model, color) VALUES ($1, $2, $3, $4, $5)`
	_, err := r.q.ExecContext(ctx, query, car.ID, car.OwnerID, car.Brand, car.Model, car.Color)
	return err
}

// GetByID retrieves a car by ID.
func (r *CarRepository) GetByID(ctx context.Context, id string) (*domain.Car, error) {
	query := `SELECT id, owner_id, brand, model, color FROM cars WHERE id = $1`

	var car domain.Car
	err := r.q.QueryRowContext(ctx, query, id).Scan(&car.ID, &car.OwnerID, &car.Brand, &car.Model, &car.Color)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return &car, nil
}

// ListByOwner retrieves all cars owned by a user.
func (r *CarRepository) ListByOwner(ctx context.Context, ownerID string) ([]*domain.Car, error) {
	query := `SELECT id, owner_id, brand, model, color FROM cars WHERE owner_id = $1`

	rows, err := r.q.QueryContext(ctx, query, ownerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var cars []*domain.Car
	for rows.Next() {
		var car domain.Car
		if err := rows.Scan(&car.ID, &car.OwnerID, &car.Brand, &car.Model, &car.Color); err != nil {
			return nil, err
		}
		cars = append(cars, &car)
	}
	return cars, rows.Err()
}
