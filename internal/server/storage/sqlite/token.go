package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/communityeye/auth-service/internal/models"
)

// RevokeToken records a token as revoked. Plain INSERT on purpose:
// revoking the same token twice adds a duplicate row, and membership
// checks are existential so duplicates are harmless.
func (s *Storage) RevokeToken(ctx context.Context, token *models.RevokedToken) error {
	query := `
		INSERT INTO blacklisted_tokens (token, blacklisted_at)
		VALUES (?, ?)
	`

	_, err := s.db.ExecContext(ctx, query, token.Token, token.RevokedAt)
	if err != nil {
		return fmt.Errorf("failed to revoke token: %w", err)
	}

	return nil
}

// IsTokenRevoked reports whether the exact token string is denylisted
func (s *Storage) IsTokenRevoked(ctx context.Context, token string) (bool, error) {
	query := `SELECT 1 FROM blacklisted_tokens WHERE token = ? LIMIT 1`

	var one int
	err := s.db.QueryRowContext(ctx, query, token).Scan(&one)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return false, nil
		}
		return false, fmt.Errorf("failed to check token denylist: %w", err)
	}

	return true, nil
}
