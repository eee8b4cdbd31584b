package repository

import "errors"

var (
	// ErrNotFound is returned when a requested entity does not exist.
	ErrNotFound = errors.New("entity not found")

	// ErrNotEnoughSeats is returned when a seat reservation would take
	// available_seats below zero.
	ErrNotEnoughSeats = errors.New("not enough available seats")

	// ErrInsufficientFunds is returned when a wallet debit would take the
	// balance below zero.
	ErrInsufficientFunds = errors.New("insufficient wallet balance")

	// ErrDuplicate is returned when a uniqueness constraint is violated,
	// e.g. a second active booking for the same ride and passenger.
	ErrDuplicate = errors.New("duplicate entity")
)
