package storage

import "errors"

// Common storage errors
var (
	// ErrUserNotFound indicates that the user was not found in storage
	ErrUserNotFound = errors.New("user not found")

	// ErrEmailExists indicates that an account with this email address already exists
	ErrEmailExists = errors.New("email address already in use")

	// ErrNoFields indicates that an update was requested with no fields to change
	ErrNoFields = errors.New("no fields to update")
)
