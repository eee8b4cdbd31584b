package domain

import "time"

// PaymentStatus represents the current status of a payment.
type PaymentStatus string

const (
	PaymentStatusPending       PaymentStatus = "PENDING"
	PaymentStatusCompleted     PaymentStatus = "COMPLETED"
	PaymentStatusFailed        PaymentStatus = "FAILED"
	PaymentStatusRefunded      PaymentStatus = "REFUNDED"
	PaymentStatusRefundPending PaymentStatus = "REFUND_PENDING"
)

// PaymentMethod represents how a payment is settled.
type PaymentMethod string

const (
	PaymentMethodWallet     PaymentMethod = "WALLET"
	PaymentMethodCreditCard PaymentMethod = "CREDIT_CARD"
	PaymentMethodIdeal      PaymentMethod = "IDEAL"
	PaymentMethodPaypal     PaymentMethod = "PAYPAL"
)

// ParsePaymentMethod validates a payment method string.
func ParsePaymentMethod(s string) (PaymentMethod, bool) {
	switch PaymentMethod(s) {
	case PaymentMethodWallet, PaymentMethodCreditCard, PaymentMethodIdeal, PaymentMethodPaypal:
		return PaymentMethod(s), true
	}
	return "", false
}

// Payment represents a settled or in-flight charge for a ride booking.
type Payment struct {
	ID           string
	UserID       string // payer
	RideID       string
	Amount       float64
	Method       PaymentMethod
	Status       PaymentStatus
	ChargeRef    string  // external processor charge reference, card payments only
	RefundAmount float64 // set when the payment is (partially) refunded
	CreatedAt    time.Time
}
