package postgres

import (
	"context"
	"database/sql"
	"errors"

	"carpool/internal/domain"
	"carpool/internal/repository"
)

// PaymentRepository is a PostgreSQL implementation of repository.PaymentRepository.
type PaymentRepository struct {
	q Querier
}

// NewPaymentRepository creates a new PostgreSQL payment repository.
func NewPaymentRepository(db *sql.DB) *PaymentRepository {
	return &PaymentRepository{q: db}
}

// NewPaymentRepositoryWithTx creates a payment repository using a transaction.
func NewPaymentRepositoryWithTx(tx *sql.Tx) *PaymentRepository {
	return &PaymentRepository{q: tx}
}

const paymentColumns = `id, user_id, ride_id, amount, payment_method, payment_status, charge_ref, refund_amount, created_at`

func scanPayment(row interface{ Scan(...any) error }) (*domain.Payment, error) {
	var payment domain.Payment
	var chargeRef sql.NullString
	var refundAmount sql.NullFloat64

	err := row.Scan(
		&payment.ID,
		&payment.UserID,
		&payment.RideID,
		&payment.Amount,
		&payment.Method,
		&payment.Status,
		&chargeRef,
		&refundAmount,
		&payment.CreatedAt,
	)
	if err != nil {
		return nil, err
	}

	if chargeRef.Valid {
		payment.ChargeRef = chargeRef.String
	}
	if refundAmount.Valid {
		payment.RefundAmount = refundAmount.Float64
	}
	return &payment, nil
}

// Create persists a new payment.
func (r *PaymentRepository) Create(ctx context.Context, payment *domain.Payment) error {
	query := `
		INSERT INTO payments (id, user_id, ride_id, amount, payment_method, payment_status, charge_ref, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`

	var chargeRef sql.NullString
	if payment.ChargeRef != "" {
		chargeRef = sql.NullString{String: payment.ChargeRef, Valid: true}
	}

	_, err := r.q.ExecContext(ctx, query,
		payment.ID,
		payment.UserID,
		payment.RideID,
		payment.Amount,
		payment.Method,
		payment.Status,
		chargeRef,
		payment.CreatedAt,
	)
	return err
}

// GetByID retrieves a payment by ID.
func (r *PaymentRepository) GetByID(ctx context.Context, id string) (*domain.Payment, error) {
	query := `SELECT ` + paymentColumns + ` FROM payments WHERE id = $1`

	payment, err := scanPayment(r.q.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return payment, nil
}

// GetCompletedByRideAndPayer retrieves the completed payment for a
// (ride, payer) pair. Returns nil, nil when none exists.
func (r *PaymentRepository) GetCompletedByRideAndPayer(ctx context.Context, rideID, userID string) (*domain.Payment, error) {
	query := `
		SELECT ` + paymentColumns + `
		FROM payments
		WHERE ride_id = $1 AND user_id = $2 AND payment_status = $3
		ORDER BY created_at DESC
		LIMIT 1
	`

	payment, err := scanPayment(r.q.QueryRowContext(ctx, query, rideID, userID, domain.PaymentStatusCompleted))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return payment, nil
}

// ListByUser retrieves a user's payment history.
func (r *PaymentRepository) ListByUser(ctx context.Context, userID string) ([]*domain.Payment, error) {
	query := `SELECT ` + paymentColumns + ` FROM payments WHERE user_id = $1 ORDER BY created_at DESC`

	rows, err := r.q.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var payments []*domain.Payment
	for rows.Next() {
		payment, err := scanPayment(rows)
		if err != nil {
			return nil, err
		}
		payments = append(payments, payment)
	}
	return payments, rows.Err()
}

// UpdateStatus updates the status of a payment.
func (r *PaymentRepository) UpdateStatus(ctx context.Context, id string, status domain.PaymentStatus) error {
	query := `UPDATE payments SET payment_status = $1 WHERE id = $2`

	result, err := r.q.ExecContext(ctx, query, status, id)
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

// MarkRefunded sets the refund status and the refunded amount. The guard on
// the current status keeps a refunded payment immutable.
func (r *PaymentRepository) MarkRefunded(ctx context.Context, id string, status domain.PaymentStatus, refundAmount float64) error {
	query := `
		UPDATE payments
		SET payment_status = $1, refund_amount = $2
		WHERE id = $3 AND payment_status <> $4
	`

	result, err := r.q.ExecContext(ctx, query, status, refundAmount, id, domain.PaymentStatusRefunded)
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
