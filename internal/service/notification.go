package service

import (
	"context"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"

	"carpool/internal/domain"
)

// NotificationType represents the type of notification.
type NotificationType string

const (
	NotificationBookingConfirmed NotificationType = "BOOKING_CONFIRMED"
	NotificationBookingRequested NotificationType = "BOOKING_REQUESTED"
	NotificationBookingDecided   NotificationType = "BOOKING_DECIDED"
	NotificationBookingCancelled NotificationType = "BOOKING_CANCELLED"
	NotificationPaymentReceipt   NotificationType = "PAYMENT_RECEIPT"
	NotificationPaymentPending   NotificationType = "PAYMENT_PENDING"
	NotificationRefundPending    NotificationType = "REFUND_PENDING"
)

// Notification represents a message to be delivered to a user.
type Notification struct {
	Type        NotificationType
	RecipientID string
	Title       string
	Message     string
	Data        map[string]interface{}
	CreatedAt   time.Time
}

// NotificationService delivers notifications on a best-effort basis.
// Delivery failures are logged, never surfaced to callers.
type NotificationService struct {
	// In a real system, this would have:
	// - Push notification client (FCM, APNS)
	// - Email client (SendGrid)
	// - SMS client (Twilio)
	logger *logrus.Logger
}

// NewNotificationService creates a new NotificationService.
func NewNotificationService(logger *logrus.Logger) *NotificationService {
	return &NotificationService{logger: logger}
}

// NotifyBookingCreated informs the passenger (instant booking) or the driver
// (booking request awaiting a decision).
func (s *NotificationService) NotifyBookingCreated(ctx context.Context, booking *domain.Booking, ride *domain.Ride) error {
	if booking.Status == domain.BookingStatusConfirmed {
		return s.send(ctx, Notification{
			Type:        NotificationBookingConfirmed,
			RecipientID: booking.PassengerID,
			Title:       "Booking Confirmed",
			Message:     fmt.Sprintf("Your booking for the ride from %s to %s is confirmed.", ride.StartLocation, ride.EndLocation),
			Data:        map[string]interface{}{"booking_id": booking.ID, "ride_id": ride.ID},
			CreatedAt:   time.Now(),
		})
	}
	return s.send(ctx, Notification{
		Type:        NotificationBookingRequested,
		RecipientID: ride.DriverID,
		Title:       "New Booking Request",
		Message:     fmt.Sprintf("You have a new booking request for your ride to %s. Please confirm or reject it.", ride.EndLocation),
		Data:        map[string]interface{}{"booking_id": booking.ID, "ride_id": ride.ID},
		CreatedAt:   time.Now(),
	})
}

// NotifyBookingDecided informs the passenger of the driver's decision.
func (s *NotificationService) NotifyBookingDecided(ctx context.Context, booking *domain.Booking) error {
	return s.send(ctx, Notification{
		Type:        NotificationBookingDecided,
		RecipientID: booking.PassengerID,
		Title:       "Booking " + string(booking.Status),
		Message:     fmt.Sprintf("Your booking request has been %s.", booking.Status),
		Data:        map[string]interface{}{"booking_id": booking.ID, "status": string(booking.Status)},
		CreatedAt:   time.Now(),
	})
}

// NotifyBookingCancelled informs the passenger of the cancellation outcome.
func (s *NotificationService) NotifyBookingCancelled(ctx context.Context, booking *domain.Booking) error {
	return s.send(ctx, Notification{
		Type:        NotificationBookingCancelled,
		RecipientID: booking.PassengerID,
		Title:       "Booking Cancelled",
		Message:     fmt.Sprintf("Your booking has been cancelled. Refund: %.2f", booking.RefundAmount),
		Data:        map[string]interface{}{"booking_id": booking.ID, "refund_amount": booking.RefundAmount},
		CreatedAt:   time.Now(),
	})
}

// NotifyPaymentReceipt sends a receipt for a completed payment.
func (s *NotificationService) NotifyPaymentReceipt(ctx context.Context, payment *domain.Payment) error {
	return s.send(ctx, Notification{
		Type:        NotificationPaymentReceipt,
		RecipientID: payment.UserID,
		Title:       "Payment Receipt",
		Message:     fmt.Sprintf("Your payment of %.2f via %s was successful.", payment.Amount, payment.Method),
		Data:        map[string]interface{}{"payment_id": payment.ID, "amount": payment.Amount},
		CreatedAt:   time.Now(),
	})
}

// NotifyPaymentPending informs the payer that an asynchronous payment is in
// flight (iDEAL, PayPal).
func (s *NotificationService) NotifyPaymentPending(ctx context.Context, payment *domain.Payment) error {
	return s.send(ctx, Notification{
		Type:        NotificationPaymentPending,
		RecipientID: payment.UserID,
		Title:       "Payment Processing",
		Message:     fmt.Sprintf("Your %s payment is being processed.", payment.Method),
		Data:        map[string]interface{}{"payment_id": payment.ID},
		CreatedAt:   time.Now(),
	})
}

// NotifyRefundPending informs the payer that a refund will settle
// asynchronously.
func (s *NotificationService) NotifyRefundPending(ctx context.Context, payment *domain.Payment) error {
	return s.send(ctx, Notification{
		Type:        NotificationRefundPending,
		RecipientID: payment.UserID,
		Title:       "Refund Processing",
		Message:     "Your refund is being processed.",
		Data:        map[string]interface{}{"payment_id": payment.ID},
		CreatedAt:   time.Now(),
	})
}

// send delivers the notification. Stubbed to structured logging; a real
// deployment would fan out to push/email/SMS providers.
func (s *NotificationService) send(ctx context.Context, n Notification) error {
	if s.logger != nil {
		s.logger.WithFields(logrus.Fields{
			"type":      n.Type,
			"recipient": n.RecipientID,
			"title":     n.Title,
		}).Info(n.Message)
	}
	return nil
}
