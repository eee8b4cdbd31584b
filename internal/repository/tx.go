package repository

import "context"

// Repositories bundles the repositories participating in a transaction.
// Every field is scoped to the same transaction when handed out by a
// TxManager.
type Repositories struct {
	Users    UserRepository
	Rides    RideRepository
	Bookings BookingRepository
	Payments PaymentRepository
}

// TxManager runs a function within a single database transaction. The
// transaction commits when fn returns nil and rolls back otherwise, so
// multi-step operations (seat reservation + booking creation + charge)
// either apply together or not at all.
type TxManager interface {
	WithinTx(ctx context.Context, fn func(repos Repositories) error) error
}
