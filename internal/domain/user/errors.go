package user

import "errors"

var (
	// ErrAccountNotFound is returned when no account matches.
	ErrAccountNotFound = errors.New("account not found")

	// ErrEmailTaken is returned when creating an account with a registered email.
	ErrEmailTaken = errors.New("email already registered")
)
