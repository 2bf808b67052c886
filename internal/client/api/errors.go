package api

import "errors"

var (
	// ErrUnavailable covers network failures and unexpected server errors.
	ErrUnavailable = errors.New("server unavailable")

	// ErrInvalidCredentials is returned by Login on rejected credentials.
	ErrInvalidCredentials = errors.New("invalid credentials")

	// ErrAlreadyExists is returned by Register for a duplicate account.
	ErrAlreadyExists = errors.New("already exists")

	// ErrNotFound is returned when the requested resource does not exist.
	ErrNotFound = errors.New("not found")

	// ErrSessionExpired is returned when an authenticated call is rejected
	// for authorization reasons. The session token is no longer valid and
	// must be cleared by the caller.
	ErrSessionExpired = errors.New("session expired")
)
