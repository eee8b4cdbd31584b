package service

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"carpool/internal/domain"
	"carpool/internal/repository"
)

// BookingService owns the booking lifecycle: creation, the driver's
// confirm/reject decision on requested bookings, seat adjustments and
// reads. Every state transition runs in a single transaction together
// with its seat movements and settlement.
type BookingService struct {
	txm      repository.TxManager
	bookings repository.BookingRepository
	rides    repository.RideRepository
	payments *PaymentService
	notifier *NotificationService
	logger   *logrus.Logger
}

// NewBookingService creates a new BookingService.
func NewBookingService(
	txm repository.TxManager,
	bookings repository.BookingRepository,
	rides repository.RideRepository,
	payments *PaymentService,
	notifier *NotificationService,
	logger *logrus.Logger,
) *BookingService {
	return &BookingService{
		txm:      txm,
		bookings: bookings,
		rides:    rides,
		payments: payments,
		notifier: notifier,
		logger:   logger,
	}
}

// CreateBookingRequest contains the parameters for booking seats on a ride.
// Method and CardToken are only consulted when the ride has instant booking
// enabled; requested bookings are charged when the driver confirms.
type CreateBookingRequest struct {
	RideID      string
	PassengerID string
	Seats       int
	Method      domain.PaymentMethod
	CardToken   string
}

// DecideBookingRequest contains the driver's decision on a pending booking.
type DecideBookingRequest struct {
	BookingID string
	Decision  domain.BookingStatus
	Method    domain.PaymentMethod
	CardToken string
}

// Create books seats on a ride. With instant booking the passenger is
// charged immediately and the booking is confirmed; otherwise it stays
// pending until the driver decides. Seats are reserved in both cases, so a
// pending request already holds its seats. Reservation, booking row and
// charge commit atomically.
func (s *BookingService) Create(ctx context.Context, req CreateBookingRequest) (*domain.Booking, error) {
	if req.Seats < domain.MinSeats {
		return nil, ErrInvalidSeatCount
	}

	var (
		booking *domain.Booking
		ride    *domain.Ride
		payment *domain.Payment
	)
	err := s.txm.WithinTx(ctx, func(repos repository.Repositories) error {
		var err error
		ride, err = repos.Rides.GetByID(ctx, req.RideID)
		if err != nil {
			return err
		}
		if ride.DriverID == req.PassengerID {
			return ErrSelfBooking
		}
		if ride.Departed(timeNow()) {
			return ErrDepartureInPast
		}

		existing, err := repos.Bookings.GetActiveByRideAndPassenger(ctx, req.RideID, req.PassengerID)
		if err != nil {
			return err
		}
		if existing != nil {
			return ErrDuplicateBooking
		}

		ledger := NewSeatLedger(repos.Rides)
		if ride, err = ledger.Reserve(ctx, req.RideID, req.Seats); err != nil {
			return err
		}

		booking = &domain.Booking{
			ID:          uuid.New().String(),
			RideID:      req.RideID,
			PassengerID: req.PassengerID,
			SeatsBooked: req.Seats,
			Status:      domain.BookingStatusPending,
			BookingTime: timeNow(),
		}
		if ride.InstantBooking {
			booking.Status = domain.BookingStatusConfirmed
		}

		// The booking row goes in before any settlement: a duplicate
		// losing the race on the active-booking index must fail the
		// transaction before the external processor is charged.
		if err = repos.Bookings.Create(ctx, booking); err != nil {
			if errors.Is(err, repository.ErrDuplicate) {
				return ErrDuplicateBooking
			}
			return err
		}

		if ride.InstantBooking {
			payment, err = s.payments.ChargeIn(ctx, repos, ChargeRequest{
				UserID:    req.PassengerID,
				RideID:    req.RideID,
				Amount:    ride.PricePerSeat * float64(req.Seats),
				Method:    defaultMethod(req.Method),
				CardToken: req.CardToken,
			})
			if err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	if s.notifier != nil {
		_ = s.notifier.NotifyBookingCreated(ctx, booking, ride)
	}
	if payment != nil {
		s.payments.notifyCharge(ctx, payment)
	}
	return booking, nil
}

// Decide applies the driver's decision to a pending booking. Confirming
// charges the passenger; rejecting releases the reserved seats. Only the
// ride's driver (or an admin) may decide, and only while the booking is
// still pending.
func (s *BookingService) Decide(ctx context.Context, actor domain.Actor, req DecideBookingRequest) (*domain.Booking, error) {
	if req.Decision != domain.BookingStatusConfirmed && req.Decision != domain.BookingStatusRejected {
		return nil, ErrInvalidDecision
	}

	var (
		booking *domain.Booking
		payment *domain.Payment
	)
	err := s.txm.WithinTx(ctx, func(repos repository.Repositories) error {
		var err error
		booking, err = repos.Bookings.GetByID(ctx, req.BookingID)
		if err != nil {
			return err
		}

		ride, err := repos.Rides.GetByID(ctx, booking.RideID)
		if err != nil {
			return err
		}
		if ride.DriverID != actor.UserID && !actor.IsAdmin {
			return ErrForbidden
		}
		if booking.Status != domain.BookingStatusPending {
			return ErrBookingNotPending
		}

		switch req.Decision {
		case domain.BookingStatusConfirmed:
			payment, err = s.payments.ChargeIn(ctx, repos, ChargeRequest{
				UserID:    booking.PassengerID,
				RideID:    booking.RideID,
				Amount:    ride.PricePerSeat * float64(booking.SeatsBooked),
				Method:    defaultMethod(req.Method),
				CardToken: req.CardToken,
			})
			if err != nil {
				return err
			}
			booking.Status = domain.BookingStatusConfirmed

		case domain.BookingStatusRejected:
			ledger := NewSeatLedger(repos.Rides)
			if err := ledger.Release(ctx, booking.RideID, booking.SeatsBooked); err != nil {
				return err
			}
			booking.Status = domain.BookingStatusRejected
		}

		return repos.Bookings.Update(ctx, booking)
	})
	if err != nil {
		return nil, err
	}

	if s.notifier != nil {
		_ = s.notifier.NotifyBookingDecided(ctx, booking)
	}
	if payment != nil {
		s.payments.notifyCharge(ctx, payment)
	}
	return booking, nil
}

// UpdateSeats changes the seat count of a pending booking. The difference
// is reserved from or released to the ride's inventory in the same
// transaction as the booking update. Confirmed bookings cannot be resized;
// the passenger cancels and rebooks instead.
func (s *BookingService) UpdateSeats(ctx context.Context, actor domain.Actor, bookingID string, seats int) (*domain.Booking, error) {
	if seats < domain.MinSeats {
		return nil, ErrInvalidSeatCount
	}

	var booking *domain.Booking
	err := s.txm.WithinTx(ctx, func(repos repository.Repositories) error {
		var err error
		booking, err = repos.Bookings.GetByID(ctx, bookingID)
		if err != nil {
			return err
		}
		if booking.PassengerID != actor.UserID && !actor.IsAdmin {
			return ErrForbidden
		}
		if booking.Status != domain.BookingStatusPending {
			return ErrBookingNotPending
		}
		if seats == booking.SeatsBooked {
			return nil
		}

		ledger := NewSeatLedger(repos.Rides)
		delta := seats - booking.SeatsBooked
		if delta > 0 {
			if _, err := ledger.Reserve(ctx, booking.RideID, delta); err != nil {
				return err
			}
		} else {
			if err := ledger.Release(ctx, booking.RideID, -delta); err != nil {
				return err
			}
		}

		booking.SeatsBooked = seats
		return repos.Bookings.Update(ctx, booking)
	})
	if err != nil {
		return nil, err
	}
	return booking, nil
}

// GetBooking retrieves a booking visible to the actor: its passenger, the
// ride's driver, or an admin.
func (s *BookingService) GetBooking(ctx context.Context, actor domain.Actor, bookingID string) (*domain.Booking, error) {
	booking, err := s.bookings.GetByID(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	if booking.PassengerID == actor.UserID || actor.IsAdmin {
		return booking, nil
	}
	ride, err := s.rides.GetByID(ctx, booking.RideID)
	if err != nil {
		return nil, err
	}
	if ride.DriverID != actor.UserID {
		return nil, ErrForbidden
	}
	return booking, nil
}

// ListRideBookings retrieves all bookings on a ride for its driver.
func (s *BookingService) ListRideBookings(ctx context.Context, actor domain.Actor, rideID string) ([]*domain.Booking, error) {
	ride, err := s.rides.GetByID(ctx, rideID)
	if err != nil {
		return nil, err
	}
	if ride.DriverID != actor.UserID && !actor.IsAdmin {
		return nil, ErrForbidden
	}
	return s.bookings.ListByRide(ctx, rideID)
}

// ListMyBookings retrieves the actor's own bookings.
func (s *BookingService) ListMyBookings(ctx context.Context, actor domain.Actor) ([]*domain.Booking, error) {
	return s.bookings.ListByPassenger(ctx, actor.UserID)
}

// defaultMethod falls back to wallet when the caller names no method.
func defaultMethod(m domain.PaymentMethod) domain.PaymentMethod {
	if m == "" {
		return domain.PaymentMethodWallet
	}
	return m
}
