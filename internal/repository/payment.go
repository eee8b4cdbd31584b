package repository

import (
	"context"

	"carpool/internal/domain"
)

// PaymentRepository defines the persistence operations for payments.
type PaymentRepository interface {
	// Create persists a new payment.
	Create(ctx context.Context, payment *domain.Payment) error

	// GetByID retrieves a payment by ID.
	GetByID(ctx context.Context, id string) (*domain.Payment, error)

	// GetCompletedByRideAndPayer retrieves the completed payment for a
	// (ride, payer) pair. Returns nil, nil when none exists.
	GetCompletedByRideAndPayer(ctx context.Context, rideID, userID string) (*domain.Payment, error)

	// ListByUser retrieves a user's payment history.
	ListByUser(ctx context.Context, userID string) ([]*domain.Payment, error)

	// UpdateStatus updates the status of a payment.
	UpdateStatus(ctx context.Context, id string, status domain.PaymentStatus) error

	// MarkRefunded sets the payment status to REFUNDED and records the
	// refunded amount.
	MarkRefunded(ctx context.Context, id string, status domain.PaymentStatus, refundAmount float64) error
}
