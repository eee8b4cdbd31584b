package postgres

import (
	"context"
	"database/sql"
	"errors"
	"strconv"
	"time"

	"carpool/internal/domain"
	"carpool/internal/repository"
)

// RideRepository is a PostgreSQL implementation of repository.RideRepository.
type RideRepository struct {
	q Querier
}

// NewRideRepository creates a new PostgreSQL ride repository.
func NewRideRepository(db *sql.DB) *RideRepository {
	return &RideRepository{q: db}
}

// NewRideRepositoryWithTx creates a ride repository using a transaction.
func NewRideRepositoryWithTx(tx *sql.Tx) *RideRepository {
	return &RideRepository{q: tx}
}

const rideColumns = `id, driver_id, car_id, start_location, end_location, departure_time, price_per_seat, total_seats, available_seats, instant_booking, created_at`

func scanRide(row interface{ Scan(...any) error }) (*domain.Ride, error) {
	var ride domain.Ride
	err := row.Scan(
		&ride.ID,
		&ride.DriverID,
		&ride.CarID,
		&ride.StartLocation,
		&ride.EndLocation,
		&ride.DepartureTime,
		&ride.PricePerSeat,
		&ride.TotalSeats,
		&ride.AvailableSeats,
		&ride.InstantBooking,
		&ride.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &ride, nil
}

// Create persists a new ride.
func (r *RideRepository) Create(ctx context.Context, ride *domain.Ride) error {
	query := `
		INSERT INTO rides (id, driver_id, car_id, start_location, end_location, departure_time, price_per_seat, total_seats, available_seats, instant_booking, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
	`

	_, err := r.q.ExecContext(ctx, query,
		ride.ID,
		ride.DriverID,
		ride.CarID,
		ride.StartLocation,
		ride.EndLocation,
		ride.DepartureTime,
		ride.PricePerSeat,
		ride.TotalSeats,
		ride.AvailableSeats,
		ride.InstantBooking,
		ride.CreatedAt,
	)

	return err
}

// GetByID retrieves a ride by ID.
func (r *RideRepository) GetByID(ctx context.Context, id string) (*domain.Ride, error) {
	query := `SELECT ` + rideColumns + ` FROM rides WHERE id = $1`

	ride, err := scanRide(r.q.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return ride, nil
}

// List retrieves rides matching the filter.
func (r *RideRepository) List(ctx context.Context, filter repository.RideFilter) ([]*domain.Ride, error) {
	query := `SELECT ` + rideColumns + ` FROM rides WHERE 1=1`
	var args []any

	if filter.DriverID != "" {
		args = append(args, filter.DriverID)
		query += ` AND driver_id = $` + strconv.Itoa(len(args))
	}
	if filter.Past {
		args = append(args, filter.Now)
		query += ` AND departure_time < $` + strconv.Itoa(len(args))
	}
	if filter.Upcoming {
		args = append(args, filter.Now)
		query += ` AND departure_time >= $` + strconv.Itoa(len(args))
	}
	query += ` ORDER BY departure_time ASC LIMIT 100`

	return r.queryRides(ctx, query, args...)
}

// Search retrieves rides matching the search criteria.
func (r *RideRepository) Search(ctx context.Context, search repository.RideSearch) ([]*domain.Ride, error) {
	query := `SELECT ` + rideColumns + ` FROM rides WHERE 1=1`
	var args []any

	if search.StartLocation != "" {
		args = append(args, search.StartLocation)
		query += ` AND LOWER(start_location) = LOWER($` + strconv.Itoa(len(args)) + `)`
	}
	if search.EndLocation != "" {
		args = append(args, search.EndLocation)
		query += ` AND LOWER(end_location) = LOWER($` + strconv.Itoa(len(args)) + `)`
	}
	if !search.DepartureDate.IsZero() {
		args = append(args, search.DepartureDate)
		query += ` AND departure_time::date = $` + strconv.Itoa(len(args)) + `::date`
	}
	if search.MinSeats > 0 {
		args = append(args, search.MinSeats)
		query += ` AND available_seats >= $` + strconv.Itoa(len(args))
	}
	query += ` ORDER BY departure_time ASC LIMIT 100`

	return r.queryRides(ctx, query, args...)
}

// ExistsByDriverAndDeparture reports whether the driver already offers a ride
// at the given departure time.
func (r *RideRepository) ExistsByDriverAndDeparture(ctx context.Context, driverID string, departure time.Time) (bool, error) {
	query := `SELECT EXISTS (SELECT 1 FROM rides WHERE driver_id = $1 AND departure_time = $2)`

	var exists bool
	if err := r.q.QueryRowContext(ctx, query, driverID, departure).Scan(&exists); err != nil {
		return false, err
	}
	return exists, nil
}

// ReserveSeats atomically decrements available_seats, guarded against
// overselling: the conditional UPDATE only matches while enough seats remain,
// so two concurrent reservations for the last seats cannot both succeed.
func (r *RideRepository) ReserveSeats(ctx context.Context, id string, seats int) (*domain.Ride, error) {
	query := `
		UPDATE rides
		SET available_seats = available_seats - $1
		WHERE id = $2 AND available_seats >= $1
		RETURNING ` + rideColumns

	ride, err := scanRide(r.q.QueryRowContext(ctx, query, seats, id))
	if err == nil {
		return ride, nil
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return nil, err
	}

	// No row matched: either the ride is gone or the seats are.
	if _, err := r.GetByID(ctx, id); err != nil {
		return nil, err
	}
	return nil, repository.ErrNotEnoughSeats
}

// ReleaseSeats atomically increments available_seats, capped at total_seats.
func (r *RideRepository) ReleaseSeats(ctx context.Context, id string, seats int) error {
	query := `
		UPDATE rides
		SET available_seats = LEAST(available_seats + $1, total_seats)
		WHERE id = $2
	`

	result, err := r.q.ExecContext(ctx, query, seats, id)
	if err != nil {
		return err
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rowsAffected == 0 {
		return repository.ErrNotFound
	}
	return nil
}

// Delete removes a ride.
func (r *RideRepository) Delete(ctx context.Context, id string) error {
	result, err := r.q.ExecContext(ctx, `DELETE FROM rides WHERE id = $1`, id)
	if err != nil {
		return err
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rowsAffected == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func (r *RideRepository) queryRides(ctx context.Context, query string, args ...any) ([]*domain.Ride, error) {
	rows, err := r.q.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var rides []*domain.Ride
	for rows.Next() {
		ride, err := scanRide(rows)
		if err != nil {
			return nil, err
		}
		rides = append(rides, ride)
	}
	return rides, rows.Err()
}
