package service

import (
	"context"
	"errors"
	"fmt"
	"math"
	"sync"
	"sync/atomic"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"carpool/internal/domain"
	"carpool/internal/repository"
)

// chargeCurrency is the currency all processor charges settle in.
const chargeCurrency = "eur"

// CardProcessor is the interface for the external card processor.
// Reversals take the amount in minor units so a cancellation can return
// only the portion the refund policy grants.
type CardProcessor interface {
	Charge(ctx context.Context, amountMinor int64, currency, token string) (chargeID string, err error)
	Refund(ctx context.Context, chargeID string, amountMinor int64) error
}

// MockCardProcessor is a mock implementation of CardProcessor for testing
// and local development. Reversals are idempotent per charge reference,
// matching real processor semantics.
type MockCardProcessor struct {
	mu       sync.Mutex
	refunded map[string]bool

	// Counters for verification
	ChargeCallCount int32
	RefundCallCount int32

	// Error injection
	ChargeError error
	RefundError error
}

// NewMockCardProcessor creates a new mock card processor.
func NewMockCardProcessor() *MockCardProcessor {
	return &MockCardProcessor{refunded: make(map[string]bool)}
}

// Charge simulates a card charge.
func (p *MockCardProcessor) Charge(ctx context.Context, amountMinor int64, currency, token string) (string, error) {
	if p.ChargeError != nil {
		return "", p.ChargeError
	}
	atomic.AddInt32(&p.ChargeCallCount, 1)
	return "ch_" + uuid.New().String(), nil
}

// Refund simulates a card reversal. A repeat reversal of the same charge is
// a no-op success.
func (p *MockCardProcessor) Refund(ctx context.Context, chargeID string, amountMinor int64) error {
	if p.RefundError != nil {
		return p.RefundError
	}
	atomic.AddInt32(&p.RefundCallCount, 1)
	p.mu.Lock()
	defer p.mu.Unlock()
	p.refunded[chargeID] = true
	return nil
}

// PaymentService handles charge and refund settlement.
type PaymentService struct {
	txm       repository.TxManager
	payments  repository.PaymentRepository
	processor CardProcessor
	notifier  *NotificationService
	logger    *logrus.Logger
}

// NewPaymentService creates a new PaymentService.
func NewPaymentService(
	txm repository.TxManager,
	payments repository.PaymentRepository,
	processor CardProcessor,
	notifier *NotificationService,
	logger *logrus.Logger,
) *PaymentService {
	return &PaymentService{
		txm:       txm,
		payments:  payments,
		processor: processor,
		notifier:  notifier,
		logger:    logger,
	}
}

// ChargeRequest contains the parameters for charging a payer.
type ChargeRequest struct {
	UserID    string
	RideID    string
	Amount    float64
	Method    domain.PaymentMethod
	CardToken string
}

// Charge settles a charge in its own transaction.
func (s *PaymentService) Charge(ctx context.Context, req ChargeRequest) (*domain.Payment, error) {
	var payment *domain.Payment
	err := s.txm.WithinTx(ctx, func(repos repository.Repositories) error {
		var err error
		payment, err = s.ChargeIn(ctx, repos, req)
		return err
	})
	if err != nil {
		return nil, err
	}

	s.notifyCharge(ctx, payment)
	return payment, nil
}

// ChargeIn settles a charge inside the caller's transaction. Orchestrators
// use this to make a charge atomic with seat reservation and booking
// creation; any error rolls the whole transaction back.
func (s *PaymentService) ChargeIn(ctx context.Context, repos repository.Repositories, req ChargeRequest) (*domain.Payment, error) {
	if req.Amount <= 0 {
		return nil, ErrInvalidAmount
	}

	payment := &domain.Payment{
		ID:        uuid.New().String(),
		UserID:    req.UserID,
		RideID:    req.RideID,
		Amount:    req.Amount,
		Method:    req.Method,
		CreatedAt: timeNow(),
	}

	switch req.Method {
	case domain.PaymentMethodWallet:
		if err := repos.Users.DebitWallet(ctx, req.UserID, req.Amount); err != nil {
			if errors.Is(err, repository.ErrInsufficientFunds) {
				return nil, ErrInsufficientBalance
			}
			return nil, err
		}
		payment.Status = domain.PaymentStatusCompleted

	case domain.PaymentMethodCreditCard:
		if req.CardToken == "" {
			return nil, ErrMissingCardToken
		}
		chargeID, err := s.processor.Charge(ctx, minorUnits(req.Amount), chargeCurrency, req.CardToken)
		if err != nil {
			// Declines and timeouts alike surface as a retryable
			// payment error; no automatic retry, a duplicate charge
			// is worse than a failed one.
			return nil, fmt.Errorf("%w: %v", ErrPaymentDeclined, err)
		}
		payment.Status = domain.PaymentStatusCompleted
		payment.ChargeRef = chargeID

	case domain.PaymentMethodIdeal, domain.PaymentMethodPaypal:
		// Asynchronous settlement: a confirmation callback flips the
		// status to COMPLETED or FAILED later.
		payment.Status = domain.PaymentStatusPending

	default:
		return nil, ErrInvalidPaymentMethod
	}

	if err := repos.Payments.Create(ctx, payment); err != nil {
		return nil, err
	}
	return payment, nil
}

// Refund reverses a completed payment in full, in its own transaction.
func (s *PaymentService) Refund(ctx context.Context, paymentID string) (*domain.Payment, error) {
	payment, err := s.payments.GetByID(ctx, paymentID)
	if err != nil {
		return nil, err
	}

	err = s.txm.WithinTx(ctx, func(repos repository.Repositories) error {
		return s.RefundIn(ctx, repos, payment, payment.Amount)
	})
	if err != nil {
		return nil, err
	}

	if s.notifier != nil && payment.Status == domain.PaymentStatusRefundPending {
		_ = s.notifier.NotifyRefundPending(ctx, payment)
	}
	return payment, nil
}

// RefundIn reverses amount of the payment inside the caller's transaction
// and updates the passed payment in place. Refunding an already refunded
// payment is an error, never a double credit. A processor failure leaves
// the payment status unchanged so the caller can retry; the mock and real
// processors treat reversals as idempotent per charge reference, so a retry
// after a crashed commit cannot reverse twice.
func (s *PaymentService) RefundIn(ctx context.Context, repos repository.Repositories, payment *domain.Payment, amount float64) error {
	if payment.Status == domain.PaymentStatusRefunded {
		return ErrAlreadyRefunded
	}
	if payment.Status != domain.PaymentStatusCompleted {
		return ErrNotRefundable
	}
	if amount <= 0 || amount > payment.Amount {
		return ErrInvalidAmount
	}

	status := domain.PaymentStatusRefunded

	switch payment.Method {
	case domain.PaymentMethodWallet:
		if err := repos.Users.CreditWallet(ctx, payment.UserID, amount); err != nil {
			return err
		}

	case domain.PaymentMethodCreditCard:
		if err := s.processor.Refund(ctx, payment.ChargeRef, minorUnits(amount)); err != nil {
			return fmt.Errorf("%w: %v", ErrRefundFailed, err)
		}

	case domain.PaymentMethodIdeal, domain.PaymentMethodPaypal:
		// Settled asynchronously by a back-office process.
		status = domain.PaymentStatusRefundPending

	default:
		return ErrInvalidPaymentMethod
	}

	if err := repos.Payments.MarkRefunded(ctx, payment.ID, status, amount); err != nil {
		return err
	}

	payment.Status = status
	payment.RefundAmount = amount
	return nil
}

// GetPayment retrieves a payment by ID.
func (s *PaymentService) GetPayment(ctx context.Context, paymentID string) (*domain.Payment, error) {
	return s.payments.GetByID(ctx, paymentID)
}

// ListUserPayments retrieves a user's payment history.
func (s *PaymentService) ListUserPayments(ctx context.Context, userID string) ([]*domain.Payment, error) {
	return s.payments.ListByUser(ctx, userID)
}

func (s *PaymentService) notifyCharge(ctx context.Context, payment *domain.Payment) {
	if s.notifier == nil {
		return
	}
	switch payment.Status {
	case domain.PaymentStatusCompleted:
		_ = s.notifier.NotifyPaymentReceipt(ctx, payment)
	case domain.PaymentStatusPending:
		_ = s.notifier.NotifyPaymentPending(ctx, payment)
	}
}

// minorUnits converts a major-unit amount to the processor's minor units.
func minorUnits(amount float64) int64 {
	return int64(math.Round(amount * 100))
}
