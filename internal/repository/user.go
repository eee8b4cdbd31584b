package repository

import (
	"context"

	"carpool/internal/domain"
)

// UserRepository defines the persistence operations for users.
type UserRepository interface {
	// GetByID retrieves a user by ID.
	GetByID(ctx context.Context, id string) (*domain.User, error)

	// GetAll retrieves all users.
	GetAll(ctx context.Context) ([]*domain.User, error)

	// DebitWallet atomically subtracts amount from the user's wallet
	// balance, provided the balance covers it. Returns
	// ErrInsufficientFunds when it does not.
	DebitWallet(ctx context.Context, id string, amount float64) error

	// CreditWallet atomically adds amount to the user's wallet balance.
	CreditWallet(ctx context.Context, id string, amount float64) error
}
