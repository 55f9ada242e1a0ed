package services

import "errors"

var (
	// ErrEmailTaken means registration hit an email that already exists.
	ErrEmailTaken = errors.New("email already in use")
	// ErrInvalidCredentials covers both unknown email and wrong password so
	// login never reveals which one failed.
	ErrInvalidCredentials = errors.New("invalid credentials")
	// ErrInvalidToken covers missing, malformed, tampered and expired tokens.
	ErrInvalidToken = errors.New("invalid token")
	// ErrForbidden means a role or admin-secret check failed.
	ErrForbidden = errors.New("forbidden")
)
