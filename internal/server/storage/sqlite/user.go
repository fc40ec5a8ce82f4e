package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/communityeye/auth-service/internal/models"
	"github.com/communityeye/auth-service/internal/server/storage"
)

// CreateUser inserts a new account and returns the generated user id.
// The email uniqueness constraint is the correctness backstop for
// concurrent registrations racing past the existence check.
func (s *Storage) CreateUser(ctx context.Context, user *models.Account) (string, error) {
	userID := user.ID
	if userID == "" {
		userID = uuid.New().String()
	}

	query := `
		INSERT INTO users (user_id, first_name, last_name, email_address, mobile_number, city, password, admin, creation_time)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	`

	_, err := s.db.ExecContext(ctx, query,
		userID,
		user.FirstName,
		user.LastName,
		user.EmailAddress,
		user.MobileNumber,
		user.City,
		user.PasswordHash,
		user.IsAdmin,
		user.CreatedAt,
	)

	if err != nil {
		if isUniqueEmailViolation(err) {
			return "", storage.ErrEmailExists
		}
		return "", fmt.Errorf("failed to insert user: %w", err)
	}

	return userID, nil
}

// GetUserByEmail retrieves an account by email address
func (s *Storage) GetUserByEmail(ctx context.Context, email string) (*models.Account, error) {
	return s.getUser(ctx, "email_address = ?", email)
}

// GetUserByID retrieves an account by user id
func (s *Storage) GetUserByID(ctx context.Context, userID string) (*models.Account, error) {
	return s.getUser(ctx, "user_id = ?", userID)
}

func (s *Storage) getUser(ctx context.Context, where string, arg any) (*models.Account, error) {
	query := `
		SELECT user_id, first_name, last_name, email_address, mobile_number, city, password, admin, creation_time
		FROM users
		WHERE ` + where

	user := &models.Account{}

	err := s.db.QueryRowContext(ctx, query, arg).Scan(
		&user.ID,
		&user.FirstName,
		&user.LastName,
		&user.EmailAddress,
		&user.MobileNumber,
		&user.City,
		&user.PasswordHash,
		&user.IsAdmin,
		&user.CreatedAt,
	)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, storage.ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}

	return user, nil
}

// EmailExists reports whether an account with this email address exists
func (s *Storage) EmailExists(ctx context.Context, email string) (bool, error) {
	query := `SELECT 1 FROM users WHERE email_address = ? LIMIT 1`

	var one int
	err := s.db.QueryRowContext(ctx, query, email).Scan(&one)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return false, nil
		}
		return false, fmt.Errorf("failed to check email: %w", err)
	}

	return true, nil
}

// UpdateUser applies the non-nil fields of update to the account
func (s *Storage) UpdateUser(ctx context.Context, userID string, update storage.UserUpdate) error {
	var (
		clauses []string
		args    []any
	)

	add := func(column string, value *string) {
		if value != nil {
			clauses = append(clauses, column+" = ?")
			args = append(args, *value)
		}
	}

	add("first_name", update.FirstName)
	add("last_name", update.LastName)
	add("email_address", update.EmailAddress)
	add("mobile_number", update.MobileNumber)
	add("city", update.City)
	add("password", update.PasswordHash)

	if len(clauses) == 0 {
		return storage.ErrNoFields
	}

	query := `UPDATE users SET ` + strings.Join(clauses, ", ") + ` WHERE user_id = ?`
	args = append(args, userID)

	result, err := s.db.ExecContext(ctx, query, args...)
	if err != nil {
		if isUniqueEmailViolation(err) {
			return storage.ErrEmailExists
		}
		return fmt.Errorf("failed to update user: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}

	if rows == 0 {
		return storage.ErrUserNotFound
	}

	return nil
}

// DeleteUser removes an account permanently
func (s *Storage) DeleteUser(ctx context.Context, userID string) error {
	query := `DELETE FROM users WHERE user_id = ?`

	result, err := s.db.ExecContext(ctx, query, userID)
	if err != nil {
		return fmt.Errorf("failed to delete user: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}

	if rows == 0 {
		return storage.ErrUserNotFound
	}

	return nil
}

// isUniqueEmailViolation matches the driver's UNIQUE constraint error
// for the email column
func isUniqueEmailViolation(err error) bool {
	return err != nil && strings.Contains(err.Error(), "UNIQUE constraint failed: users.email_address")
}
