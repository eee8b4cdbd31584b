package postgres

import (
	"context"
	"database/sql"
	"errors"

	"carpool/internal/domain"
	"carpool/internal/repository"
)

// UserRepository is a PostgreSQL implementation of repository.UserRepository.
type UserRepository struct {
	q Querier
}

// NewUserRepository creates a new PostgreSQL user repository.
func NewUserRepository(db *sql.DB) *UserRepository {
	return &UserRepository{q: db}
}

// NewUserRepositoryWithTx creates a user repository using a transaction.
func NewUserRepositoryWithTx(tx *sql.Tx) *UserRepository {
	return &UserRepository{q: tx}
}

const userColumns = `id, username, email, full_name, wallet_balance, is_admin, member_since`

func scanUser(row interface{ Scan(...any) error }) (*domain.User, error) {
	var user domain.User
	err := row.Scan(
		&user.ID,
		&user.Username,
		&user.Email,
		&user.FullName,
		&user.WalletBalance,
		&user.IsAdmin,
		&user.MemberSince,
	)
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// GetByID retrieves a user by ID.
func (r *UserRepository) GetByID(ctx context.Context, id string) (*domain.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE id = $1`

	user, err := scanUser(r.q.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return user, nil
}

// GetAll retrieves all users.
func (r *UserRepository) GetAll(ctx context.Context) ([]*domain.User, error) {
	query := `SELECT ` + userColumns + ` FROM users ORDER BY member_since DESC`

	rows, err := r.q.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var users []*domain.User
	for rows.Next() {
		user, err := scanUser(rows)
		if err != nil {
			return nil, err
		}
		users = append(users, user)
	}
	return users, rows.Err()
}

// DebitWallet atomically subtracts amount from the wallet balance. The
// conditional UPDATE prevents two racing charges from both draining the
// same funds.
func (r *UserRepository) DebitWallet(ctx context.Context, id string, amount float64) error {
	query := `
		UPDATE users
		SET wallet_balance = wallet_balance - $1
		WHERE id = $2 AND wallet_balance >= $1
	`

	result, err := r.q.ExecContext(ctx, query, amount, id)
	if err != nil {
		return err
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rowsAffected == 0 {
		if _, err := r.GetByID(ctx, id); err != nil {
			return err
		}
		return repository.ErrInsufficientFunds
	}
	return nil
}

// CreditWallet atomically adds amount to the wallet balance.
func (r *UserRepository) CreditWallet(ctx context.Context, id string, amount float64) error {
	query := `UPDATE users SET wallet_balance = wallet_balance + $1 WHERE id = $2`

	result, err := r.q.ExecContext(ctx, query, amount, id)
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
