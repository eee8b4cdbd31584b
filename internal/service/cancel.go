package service

import (
	"context"
	"math"
	"time"

	"github.com/sirupsen/logrus"

	"carpool/internal/domain"
	"carpool/internal/redis"
	"carpool/internal/repository"
)

// cancelLockTTL bounds how long a crashed cancellation can block retries.
const cancelLockTTL = 30 * time.Second

// CancellationService orchestrates booking cancellation: it releases the
// reserved seats, settles the policy refund and marks the booking cancelled
// in one transaction. A per-booking Redis lock serializes concurrent
// cancellation attempts so the refund settles at most once.
type CancellationService struct {
	txm      repository.TxManager
	locks    redis.LockStoreInterface
	payments *PaymentService
	notifier *NotificationService
	logger   *logrus.Logger
}

// NewCancellationService creates a new CancellationService.
func NewCancellationService(
	txm repository.TxManager,
	locks redis.LockStoreInterface,
	payments *PaymentService,
	notifier *NotificationService,
	logger *logrus.Logger,
) *CancellationService {
	return &CancellationService{
		txm:      txm,
		locks:    locks,
		payments: payments,
		notifier: notifier,
		logger:   logger,
	}
}

// Cancel cancels a pending or confirmed booking on behalf of its passenger.
// Confirmed bookings are refunded according to the time remaining before
// departure; pending bookings have nothing settled yet and refund zero. The
// seat release, refund and status change commit together, so a failed
// refund leaves the booking untouched and retryable.
func (s *CancellationService) Cancel(ctx context.Context, actor domain.Actor, bookingID string) (*domain.Booking, error) {
	if s.locks != nil {
		ok, err := s.locks.AcquireBookingLock(ctx, bookingID, cancelLockTTL)
		if err != nil {
			return nil, err
		}
		if !ok {
			return nil, ErrCancellationInProgress
		}
		defer func() {
			if err := s.locks.ReleaseBookingLock(ctx, bookingID); err != nil {
				s.logger.WithError(err).WithField("booking_id", bookingID).
					Warn("failed to release cancellation lock")
			}
		}()
	}

	var (
		booking *domain.Booking
		payment *domain.Payment
	)
	err := s.txm.WithinTx(ctx, func(repos repository.Repositories) error {
		var err error
		booking, err = repos.Bookings.GetByID(ctx, bookingID)
		if err != nil {
			return err
		}
		if booking.PassengerID != actor.UserID && !actor.IsAdmin {
			return ErrForbidden
		}
		switch {
		case booking.Status == domain.BookingStatusCancelled:
			return ErrBookingAlreadyCancelled
		case booking.Status.Terminal():
			return ErrBookingTerminal
		}

		ride, err := repos.Rides.GetByID(ctx, booking.RideID)
		if err != nil {
			return err
		}

		ledger := NewSeatLedger(repos.Rides)
		if err := ledger.Release(ctx, booking.RideID, booking.SeatsBooked); err != nil {
			return err
		}

		var refundAmount float64
		if booking.Status == domain.BookingStatusConfirmed {
			payment, err = repos.Payments.GetCompletedByRideAndPayer(ctx, booking.RideID, booking.PassengerID)
			if err != nil {
				return err
			}
			if payment != nil {
				fraction := RefundFraction(ride.DepartureTime, timeNow())
				if fraction > 0 {
					refundAmount = roundMoney(payment.Amount * fraction)
					if err := s.payments.RefundIn(ctx, repos, payment, refundAmount); err != nil {
						return err
					}
				}
			}
		}

		booking.Status = domain.BookingStatusCancelled
		booking.RefundAmount = refundAmount
		booking.CancelledAt = timeNow()
		return repos.Bookings.Update(ctx, booking)
	})
	if err != nil {
		return nil, err
	}

	if s.notifier != nil {
		_ = s.notifier.NotifyBookingCancelled(ctx, booking)
		if payment != nil && payment.Status == domain.PaymentStatusRefundPending {
			_ = s.notifier.NotifyRefundPending(ctx, payment)
		}
	}
	return booking, nil
}

// roundMoney rounds to cents so a half refund of an odd amount stays a
// representable balance.
func roundMoney(amount float64) float64 {
	return math.Round(amount*100) / 100
}
