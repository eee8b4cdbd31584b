package postgres

import (
	"context"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"carpool/internal/repository"
)

func rideRows(id string, available int) *sqlmock.Rows {
	return sqlmock.NewRows([]string{
		"id", "driver_id", "car_id", "start_location", "end_location",
		"departure_time", "price_per_seat", "total_seats", "available_seats",
		"instant_booking", "created_at",
	}).AddRow(id, "driver-1", "car-1", "Amsterdam", "Utrecht",
		time.Now().Add(24*time.Hour), 12.5, 4, available, false, time.Now())
}

func TestRideRepository_ReserveSeats(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewRideRepository(db)

	mock.ExpectQuery(regexp.QuoteMeta(`UPDATE rides`)).
		WithArgs(2, "ride-1").
		WillReturnRows(rideRows("ride-1", 2))

	ride, err := repo.ReserveSeats(context.Background(), "ride-1", 2)
	require.NoError(t, err)
	assert.Equal(t, "ride-1", ride.ID)
	assert.Equal(t, 2, ride.AvailableSeats)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRideRepository_ReserveSeatsInsufficient(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewRideRepository(db)

	// The conditional UPDATE matches no row, then the follow-up lookup
	// finds the ride, so the failure is a seat shortage.
	mock.ExpectQuery(regexp.QuoteMeta(`UPDATE rides`)).
		WithArgs(3, "ride-1").
		WillReturnRows(sqlmock.NewRows(nil))
	mock.ExpectQuery(regexp.QuoteMeta(`SELECT`)).
		WithArgs("ride-1").
		WillReturnRows(rideRows("ride-1", 2))

	_, err = repo.ReserveSeats(context.Background(), "ride-1", 3)
	assert.ErrorIs(t, err, repository.ErrNotEnoughSeats)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRideRepository_ReserveSeatsRideGone(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewRideRepository(db)

	mock.ExpectQuery(regexp.QuoteMeta(`UPDATE rides`)).
		WithArgs(1, "ride-1").
		WillReturnRows(sqlmock.NewRows(nil))
	mock.ExpectQuery(regexp.QuoteMeta(`SELECT`)).
		WithArgs("ride-1").
		WillReturnRows(sqlmock.NewRows(nil))

	_, err = repo.ReserveSeats(context.Background(), "ride-1", 1)
	assert.ErrorIs(t, err, repository.ErrNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRideRepository_ReleaseSeats(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewRideRepository(db)

	mock.ExpectExec(regexp.QuoteMeta(`UPDATE rides`)).
		WithArgs(2, "ride-1").
		WillReturnResult(sqlmock.NewResult(0, 1))

	err = repo.ReleaseSeats(context.Background(), "ride-1", 2)
	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRideRepository_ReleaseSeatsUnknownRide(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewRideRepository(db)

	mock.ExpectExec(regexp.QuoteMeta(`UPDATE rides`)).
		WithArgs(2, "no-such-ride").
		WillReturnResult(sqlmock.NewResult(0, 0))

	err = repo.ReleaseSeats(context.Background(), "no-such-ride", 2)
	assert.ErrorIs(t, err, repository.ErrNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}
