package tests

import (
	"context"
	"errors"
	"testing"

	"carpool/internal/domain"
	"carpool/internal/repository"
	"carpool/internal/service"
)

// ──────────────────────────────────────────────
// CHARGES
// ──────────────────────────────────────────────

func TestPayment_WalletChargeDebitsBalance(t *testing.T) {
	t.Parallel()

	f := newFixture()
	f.addUser("passenger-1", 50)

	payment, err := f.paymentService.Charge(context.Background(), service.ChargeRequest{
		UserID: "passenger-1",
		RideID: "ride-1",
		Amount: 20,
		Method: domain.PaymentMethodWallet,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if payment.Status != domain.PaymentStatusCompleted {
		t.Errorf("expected COMPLETED, got %s", payment.Status)
	}
	if balance := f.users.Balance("passenger-1"); balance != 30 {
		t.Errorf("expected balance 30, got %.2f", balance)
	}
}

func TestPayment_WalletChargeInsufficientBalance(t *testing.T) {
	t.Parallel()

	f := newFixture()
	f.addUser("passenger-1", 5)

	_, err := f.paymentService.Charge(context.Background(), service.ChargeRequest{
		UserID: "passenger-1",
		RideID: "ride-1",
		Amount: 20,
		Method: domain.PaymentMethodWallet,
	})
	if !errors.Is(err, service.ErrInsufficientBalance) {
		t.Fatalf("expected ErrInsufficientBalance, got %v", err)
	}

	if f.payments.CountPayments() != 0 {
		t.Error("expected no payment record after a failed charge")
	}
	if balance := f.users.Balance("passenger-1"); balance != 5 {
		t.Errorf("expected balance untouched at 5, got %.2f", balance)
	}
}

func TestPayment_CardChargeRequiresToken(t *testing.T) {
	t.Parallel()

	f := newFixture()
	f.addUser("passenger-1", 0)

	_, err := f.paymentService.Charge(context.Background(), service.ChargeRequest{
		UserID: "passenger-1",
		RideID: "ride-1",
		Amount: 20,
		Method: domain.PaymentMethodCreditCard,
	})
	if !errors.Is(err, service.ErrMissingCardToken) {
		t.Fatalf("expected ErrMissingCardToken, got %v", err)
	}
}

func TestPayment_CardChargeRecordsProcessorReference(t *testing.T) {
	t.Parallel()

	f := newFixture()
	f.addUser("passenger-1", 0)

	payment, err := f.paymentService.Charge(context.Background(), service.ChargeRequest{
		UserID:    "passenger-1",
		RideID:    "ride-1",
		Amount:    20,
		Method:    domain.PaymentMethodCreditCard,
		CardToken: "tok_visa",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if payment.Status != domain.PaymentStatusCompleted {
		t.Errorf("expected COMPLETED, got %s", payment.Status)
	}
	if payment.ChargeRef == "" {
		t.Error("expected a processor charge reference")
	}
}

func TestPayment_AsyncMethodsStartPending(t *testing.T) {
	t.Parallel()

	for _, method := range []domain.PaymentMethod{domain.PaymentMethodIdeal, domain.PaymentMethodPaypal} {
		f := newFixture()
		f.addUser("passenger-1", 0)

		payment, err := f.paymentService.Charge(context.Background(), service.ChargeRequest{
			UserID: "passenger-1",
			RideID: "ride-1",
			Amount: 20,
			Method: method,
		})
		if err != nil {
			t.Fatalf("%s: unexpected error: %v", method, err)
		}
		if payment.Status != domain.PaymentStatusPending {
			t.Errorf("%s: expected PENDING, got %s", method, payment.Status)
		}
	}
}

func TestPayment_UnknownMethodRejected(t *testing.T) {
	t.Parallel()

	f := newFixture()
	f.addUser("passenger-1", 50)

	_, err := f.paymentService.Charge(context.Background(), service.ChargeRequest{
		UserID: "passenger-1",
		RideID: "ride-1",
		Amount: 20,
		Method: domain.PaymentMethod("bitcoin"),
	})
	if !errors.Is(err, service.ErrInvalidPaymentMethod) {
		t.Fatalf("expected ErrInvalidPaymentMethod, got %v", err)
	}
}

func TestPayment_NonPositiveAmountRejected(t *testing.T) {
	t.Parallel()

	f := newFixture()
	f.addUser("passenger-1", 50)

	_, err := f.paymentService.Charge(context.Background(), service.ChargeRequest{
		UserID: "passenger-1",
		RideID: "ride-1",
		Amount: 0,
		Method: domain.PaymentMethodWallet,
	})
	if !errors.Is(err, service.ErrInvalidAmount) {
		t.Fatalf("expected ErrInvalidAmount, got %v", err)
	}
}

// ──────────────────────────────────────────────
// REFUNDS
// ──────────────────────────────────────────────

func TestPayment_FullWalletRefundRestoresBalance(t *testing.T) {
	t.Parallel()

	f := newFixture()
	f.addUser("passenger-1", 30)
	f.addPayment("payment-1", "passenger-1", "ride-1", 20, domain.PaymentMethodWallet, domain.PaymentStatusCompleted)

	payment, err := f.paymentService.Refund(context.Background(), "payment-1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if payment.Status != domain.PaymentStatusRefunded {
		t.Errorf("expected REFUNDED, got %s", payment.Status)
	}
	if payment.RefundAmount != 20 {
		t.Errorf("expected refund amount 20, got %.2f", payment.RefundAmount)
	}
	if balance := f.users.Balance("passenger-1"); balance != 50 {
		t.Errorf("expected balance 50, got %.2f", balance)
	}
}

func TestPayment_RefundTwiceRejected(t *testing.T) {
	t.Parallel()

	f := newFixture()
	f.addUser("passenger-1", 30)
	f.addPayment("payment-1", "passenger-1", "ride-1", 20, domain.PaymentMethodWallet, domain.PaymentStatusCompleted)

	if _, err := f.paymentService.Refund(context.Background(), "payment-1"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := f.paymentService.Refund(context.Background(), "payment-1"); !errors.Is(err, service.ErrAlreadyRefunded) {
		t.Fatalf("expected ErrAlreadyRefunded, got %v", err)
	}

	// The first refund credited once; the second must not credit again.
	if balance := f.users.Balance("passenger-1"); balance != 50 {
		t.Errorf("expected balance 50, got %.2f", balance)
	}
}

func TestPayment_PendingPaymentNotRefundable(t *testing.T) {
	t.Parallel()

	f := newFixture()
	f.addUser("passenger-1", 30)
	f.addPayment("payment-1", "passenger-1", "ride-1", 20, domain.PaymentMethodIdeal, domain.PaymentStatusPending)

	if _, err := f.paymentService.Refund(context.Background(), "payment-1"); !errors.Is(err, service.ErrNotRefundable) {
		t.Fatalf("expected ErrNotRefundable, got %v", err)
	}
}

func TestPayment_RefundOfAsyncMethodStaysPending(t *testing.T) {
	t.Parallel()

	f := newFixture()
	f.addUser("passenger-1", 30)
	f.addPayment("payment-1", "passenger-1", "ride-1", 20, domain.PaymentMethodPaypal, domain.PaymentStatusCompleted)

	payment, err := f.paymentService.Refund(context.Background(), "payment-1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if payment.Status != domain.PaymentStatusRefundPending {
		t.Errorf("expected REFUND_PENDING, got %s", payment.Status)
	}
}

func TestPayment_RefundUnknownPaymentNotFound(t *testing.T) {
	t.Parallel()

	f := newFixture()

	if _, err := f.paymentService.Refund(context.Background(), "no-such-payment"); !errors.Is(err, repository.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}
