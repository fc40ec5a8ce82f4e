package storage

import (
	"context"

	"github.com/communityeye/auth-service/internal/models"
)

// UserUpdate carries the subset of account fields to change.
// Nil pointers mean "leave untouched". Password must already be hashed.
type UserUpdate struct {
	FirstName    *string
	LastName     *string
	EmailAddress *string
	MobileNumber *string
	City         *string
	PasswordHash *string
}

// Empty reports whether no field is set.
func (u UserUpdate) Empty() bool {
	return u.FirstName == nil && u.LastName == nil && u.EmailAddress == nil &&
		u.MobileNumber == nil && u.City == nil && u.PasswordHash == nil
}

// UserStorage defines the persistence interface for accounts.
type UserStorage interface {
	// CreateUser inserts a new account and returns the generated user id.
	// Returns ErrEmailExists if the email address is already taken.
	CreateUser(ctx context.Context, user *models.Account) (string, error)

	// GetUserByEmail retrieves an account by email address (case-sensitive).
	// Returns ErrUserNotFound if no account matches.
	GetUserByEmail(ctx context.Context, email string) (*models.Account, error)

	// GetUserByID retrieves an account by user id.
	// Returns ErrUserNotFound if no account matches.
	GetUserByID(ctx context.Context, userID string) (*models.Account, error)

	// EmailExists reports whether an account with this email address exists.
	EmailExists(ctx context.Context, email string) (bool, error)

	// UpdateUser applies the non-nil fields of update to the account.
	// Returns ErrNoFields if update is empty, ErrUserNotFound if no row
	// matched, ErrEmailExists if the new email collides with another account.
	UpdateUser(ctx context.Context, userID string, update UserUpdate) error

	// DeleteUser removes an account permanently.
	// Returns ErrUserNotFound if no row matched.
	DeleteUser(ctx context.Context, userID string) error
}
