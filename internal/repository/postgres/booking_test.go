package postgres

import (
	"context"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"carpool/internal/domain"
	"carpool/internal/repository"
)

func testBooking() *domain.Booking {
	return &domain.Booking{
		ID:          "booking-1",
		RideID:      "ride-1",
		PassengerID: "passenger-1",
		SeatsBooked: 2,
		Status:      domain.BookingStatusPending,
		BookingTime: time.Now(),
	}
}

func TestBookingRepository_Create(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewBookingRepository(db)
	booking := testBooking()

	mock.ExpectExec(regexp.QuoteMeta(`INSERT INTO bookings`)).
		WithArgs(booking.ID, booking.RideID, booking.PassengerID,
			booking.SeatsBooked, booking.Status, booking.BookingTime).
		WillReturnResult(sqlmock.NewResult(0, 1))

	err = repo.Create(context.Background(), booking)
	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestBookingRepository_CreateDuplicateActive(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewBookingRepository(db)
	booking := testBooking()

	// 23505 is unique_violation, raised by the partial unique index on
	// active (ride_id, passenger_id) pairs.
	mock.ExpectExec(regexp.QuoteMeta(`INSERT INTO bookings`)).
		WithArgs(booking.ID, booking.RideID, booking.PassengerID,
			booking.SeatsBooked, booking.Status, booking.BookingTime).
		WillReturnError(&pq.Error{Code: "23505"})

	err = repo.Create(context.Background(), booking)
	assert.ErrorIs(t, err, repository.ErrDuplicate)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestBookingRepository_GetActiveByRideAndPassengerNone(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewBookingRepository(db)

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT`)).
		WithArgs("ride-1", "passenger-1", domain.BookingStatusPending, domain.BookingStatusConfirmed).
		WillReturnRows(sqlmock.NewRows(nil))

	booking, err := repo.GetActiveByRideAndPassenger(context.Background(), "ride-1", "passenger-1")
	assert.NoError(t, err)
	assert.Nil(t, booking)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestBookingRepository_UpdateUnknownBooking(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewBookingRepository(db)

	mock.ExpectExec(regexp.QuoteMeta(`UPDATE bookings`)).
		WillReturnResult(sqlmock.NewResult(0, 0))

	err = repo.Update(context.Background(), testBooking())
	assert.ErrorIs(t, err, repository.ErrNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}
