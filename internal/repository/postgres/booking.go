package postgres

import (
	"context"
	"database/sql"
	"errors"

	"github.com/lib/pq"

	"carpool/internal/domain"
	"carpool/internal/repository"
)

// BookingRepository is a PostgreSQL implementation of repository.BookingRepository.
//
// A partial unique index backs the one-active-booking-per-passenger invariant:
//
//	CREATE UNIQUE INDEX bookings_active_ride_passenger
//	ON bookings (ride_id, passenger_id)
//	WHERE status IN ('PENDING', 'CONFIRMED');
type BookingRepository struct {
	q Querier
}

// NewBookingRepository creates a new PostgreSQL booking repository.
func NewBookingRepository(db *sql.DB) *BookingRepository {
	return &BookingRepository{q: db}
}

// NewBookingRepositoryWithTx creates a booking repository using a transaction.
func NewBookingRepositoryWithTx(tx *sql.Tx) *BookingRepository {
	return &BookingRepository{q: tx}
}

const bookingColumns = `id, ride_id, passenger_id, seats_booked, status, booking_time, refund_amount, cancelled_at`

func scanBooking(row interface{ Scan(...any) error }) (*domain.Booking, error) {
	var booking domain.Booking
	var refundAmount sql.NullFloat64
	var cancelledAt sql.NullTime

	err := row.Scan(
		&booking.ID,
		&booking.RideID,
		&booking.PassengerID,
		&booking.SeatsBooked,
		&booking.Status,
		&booking.BookingTime,
		&refundAmount,
		&cancelledAt,
	)
	if err != nil {
		return nil, err
	}

	if refundAmount.Valid {
		booking.RefundAmount = refundAmount.Float64
	}
	if cancelledAt.Valid {
		booking.CancelledAt = cancelledAt.Time
	}
	return &booking, nil
}

// Create persists a new booking.
func (r *BookingRepository) Create(ctx context.Context, booking *domain.Booking) error {
	query := `
		INSERT INTO bookings (id, ride_id, passenger_id, seats_booked, status, booking_time)
		VALUES ($1, $2, $3, $4, $5, $6)
	`

	_, err := r.q.ExecContext(ctx, query,
		booking.ID,
		booking.RideID,
		booking.PassengerID,
		booking.SeatsBooked,
		booking.Status,
		booking.BookingTime,
	)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code.Name() == "unique_violation" {
			return repository.ErrDuplicate
		}
		return err
	}
	return nil
}

// GetByID retrieves a booking by ID.
func (r *BookingRepository) GetByID(ctx context.Context, id string) (*domain.Booking, error) {
	query := `SELECT ` + bookingColumns + ` FROM bookings WHERE id = $1`

	booking, err := scanBooking(r.q.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return booking, nil
}

// GetActiveByRideAndPassenger retrieves the pending or confirmed booking for
// a (ride, passenger) pair. Returns nil, nil when none exists.
func (r *BookingRepository) GetActiveByRideAndPassenger(ctx context.Context, rideID, passengerID string) (*domain.Booking, error) {
	query := `
		SELECT ` + bookingColumns + `
		FROM bookings
		WHERE ride_id = $1 AND passenger_id = $2 AND status IN ($3, $4)
	`

	booking, err := scanBooking(r.q.QueryRowContext(ctx, query, rideID, passengerID,
		domain.BookingStatusPending, domain.BookingStatusConfirmed))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return booking, nil
}

// ListByRide retrieves all bookings for a ride.
func (r *BookingRepository) ListByRide(ctx context.Context, rideID string) ([]*domain.Booking, error) {
	query := `SELECT ` + bookingColumns + ` FROM bookings WHERE ride_id = $1 ORDER BY booking_time ASC`
	return r.queryBookings(ctx, query, rideID)
}

// ListByPassenger retrieves all bookings made by a passenger.
func (r *BookingRepository) ListByPassenger(ctx context.Context, passengerID string) ([]*domain.Booking, error) {
	query := `SELECT ` + bookingColumns + ` FROM bookings WHERE passenger_id = $1 ORDER BY booking_time DESC`
	return r.queryBookings(ctx, query, passengerID)
}

// CountByRide returns the number of bookings referencing a ride.
func (r *BookingRepository) CountByRide(ctx context.Context, rideID string) (int, error) {
	var count int
	err := r.q.QueryRowContext(ctx, `SELECT COUNT(*) FROM bookings WHERE ride_id = $1`, rideID).Scan(&count)
	return count, err
}

// Update updates an existing booking.
func (r *BookingRepository) Update(ctx context.Context, booking *domain.Booking) error {
	query := `
		UPDATE bookings
		SET seats_booked = $1, status = $2, refund_amount = $3, cancelled_at = $4
		WHERE id = $5
	`

	var refundAmount sql.NullFloat64
	var cancelledAt sql.NullTime
	if !booking.CancelledAt.IsZero() {
		refundAmount = sql.NullFloat64{Float64: booking.RefundAmount, Valid: true}
		cancelledAt = sql.NullTime{Time: booking.CancelledAt, Valid: true}
	}

	result, err := r.q.ExecContext(ctx, query,
		booking.SeatsBooked,
		booking.Status,
		refundAmount,
		cancelledAt,
		booking.ID,
	)
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

func (r *BookingRepository) queryBookings(ctx context.Context, query string, args ...any) ([]*domain.Booking, error) {
	rows, err := r.q.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var bookings []*domain.Booking
	for rows.Next() {
		booking, err := scanBooking(rows)
		if err != nil {
			return nil, err
		}
		bookings = append(bookings, booking)
	}
	return bookings, rows.Err()
}
