package postgres

import (
	"context"
	"database/sql"

	"carpool/internal/repository"
)

// TxManager implements repository.TxManager over *sql.DB. Each WithinTx
// call opens one transaction and hands out repositories bound to it.
type TxManager struct {
	db *sql.DB
}

// NewTxManager creates a new TxManager.
func NewTxManager(db *sql.DB) *TxManager {
	return &TxManager{db: db}
}

// WithinTx runs fn inside a transaction, committing on success and rolling
// back on error or panic.
func (m *TxManager) WithinTx(ctx context.Context, fn func(repos repository.Repositories) error) (err error) {
	tx, err := m.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}

	defer func() {
		if p := recover(); p != nil {
			_ = tx.Rollback()
			panic(p)
		}
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	repos := repository.Repositories{
		Users:    NewUserRepositoryWithTx(tx),
		Rides:    NewRideRepositoryWithTx(tx),
		Bookings: NewBookingRepositoryWithTx(tx),
		Payments: NewPaymentRepositoryWithTx(tx),
	}

	if err = fn(repos); err != nil {
		return err
	}
	return tx.Commit()
}
