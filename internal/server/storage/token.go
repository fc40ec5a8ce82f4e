package storage

import (
	"context"

	"github.com/communityeye/auth-service/internal/models"
)

// TokenStorage defines the persistence interface for the token denylist.
// The denylist is insert-only: revoked tokens stay revoked forever.
type TokenStorage interface {
	// RevokeToken records a token as revoked. Revoking the same token
	// string twice inserts a duplicate row, which is harmless because
	// membership checks are existential.
	RevokeToken(ctx context.Context, token *models.RevokedToken) error

	// IsTokenRevoked reports whether the exact token string is on the denylist.
	IsTokenRevoked(ctx context.Context, token string) (bool, error)
}
