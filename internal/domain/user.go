package domain

import "time"

// User represents a platform member. Registration and authentication are
// handled by the external identity service; this record backs wallet
// balances and profile lookups.
type User struct {
	ID            string
	Username      string
	Email         string
	FullName      string
	WalletBalance float64
	IsAdmin       bool
	MemberSince   time.Time
}

// Actor identifies the authenticated caller of an operation.
type Actor struct {
	UserID  string
	IsAdmin bool
}
