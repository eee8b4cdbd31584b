package postgres

import (
	"context"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"carpool/internal/repository"
)

func userRows(id string, balance float64) *sqlmock.Rows {
	return sqlmock.NewRows([]string{
		"id", "username", "email", "full_name", "wallet_balance", "is_admin", "member_since",
	}).AddRow(id, "alice", "alice@example.com", "Alice", balance, false, time.Now())
}

func TestUserRepository_DebitWallet(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewUserRepository(db)

	mock.ExpectExec(regexp.QuoteMeta(`UPDATE users`)).
		WithArgs(25.0, "user-1").
		WillReturnResult(sqlmock.NewResult(0, 1))

	err = repo.DebitWallet(context.Background(), "user-1", 25)
	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUserRepository_DebitWalletInsufficientFunds(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewUserRepository(db)

	// The conditional UPDATE matches no row, then the follow-up lookup
	// finds the user, so the failure is a balance shortfall.
	mock.ExpectExec(regexp.QuoteMeta(`UPDATE users`)).
		WithArgs(25.0, "user-1").
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectQuery(regexp.QuoteMeta(`SELECT`)).
		WithArgs("user-1").
		WillReturnRows(userRows("user-1", 10))

	err = repo.DebitWallet(context.Background(), "user-1", 25)
	assert.ErrorIs(t, err, repository.ErrInsufficientFunds)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUserRepository_DebitWalletUnknownUser(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewUserRepository(db)

	mock.ExpectExec(regexp.QuoteMeta(`UPDATE users`)).
		WithArgs(25.0, "no-such-user").
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectQuery(regexp.QuoteMeta(`SELECT`)).
		WithArgs("no-such-user").
		WillReturnRows(sqlmock.NewRows(nil))

	err = repo.DebitWallet(context.Background(), "no-such-user", 25)
	assert.ErrorIs(t, err, repository.ErrNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUserRepository_CreditWallet(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewUserRepository(db)

	mock.ExpectExec(regexp.QuoteMeta(`UPDATE users SET wallet_balance = wallet_balance + $1 WHERE id = $2`)).
		WithArgs(10.0, "user-1").
		WillReturnResult(sqlmock.NewResult(0, 1))

	err = repo.CreditWallet(context.Background(), "user-1", 10)
	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}
