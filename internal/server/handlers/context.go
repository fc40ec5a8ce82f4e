package handlers

import "context"

// contextKey is the type for request context keys
type contextKey string

const (
	// UserIDKey holds the authenticated user id in the request context
	UserIDKey contextKey = "user_id"
	// IsAdminKey holds the admin claim in the request context
	IsAdminKey contextKey = "is_admin"
)

// GetUserID extracts the authenticated user id from the request context
func GetUserID(ctx context.Context) (string, bool) {
	userID, ok := ctx.Value(UserIDKey).(string)
	return userID, ok
}

// GetIsAdmin extracts the admin claim from the request context
func GetIsAdmin(ctx context.Context) (bool, bool) {
	isAdmin, ok := ctx.Value(IsAdminKey).(bool)
	return isAdmin, ok
}
