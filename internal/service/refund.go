package service

import "time"

// Refund policy tiers, measured as time remaining before departure.
const (
	fullRefundWindow = 24 * time.Hour
	halfRefundWindow = 12 * time.Hour
)

// RefundFraction returns the fraction of the original payment returned to
// the passenger when cancelling at the given instant:
//
//	>= 24h before departure: 1.0
//	>= 12h before departure: 0.5
//	<  12h before departure: 0.0
//
// Boundaries are inclusive on the higher tier: exactly 24h remaining yields
// a full refund, exactly 12h remaining yields half.
func RefundFraction(departure, now time.Time) float64 {
	remaining := departure.Sub(now)
	switch {
	case remaining >= fullRefundWindow:
		return 1.0
	case remaining >= halfRefundWindow:
		return 0.5
	default:
		return 0.0
	}
}
