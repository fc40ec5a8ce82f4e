package sqlite

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/communityeye/auth-service/internal/server/storage"
)

func TestUserStorage_CreateUser(t *testing.T) {
	ctx := context.Background()
	s, cleanup := setupTestStorage(t)
	defer cleanup()

	userID, err := s.CreateUser(ctx, testAccount("john@example.com"))
	require.NoError(t, err)
	require.NotEmpty(t, userID)

	retrieved, err := s.GetUserByID(ctx, userID)
	require.NoError(t, err)
	assert.Equal(t, userID, retrieved.ID)
	assert.Equal(t, "John", retrieved.FirstName)
	assert.Equal(t, "john@example.com", retrieved.EmailAddress)
	assert.False(t, retrieved.IsAdmin)
}

func TestUserStorage_CreateUser_DuplicateEmail(t *testing.T) {
	ctx := context.Background()
	s, cleanup := setupTestStorage(t)
	defer cleanup()

	_, err := s.CreateUser(ctx, testAccount("john@example.com"))
	require.NoError(t, err)

	// Unique constraint is the backstop when the existence check races
	_, err = s.CreateUser(ctx, testAccount("john@example.com"))
	assert.ErrorIs(t, err, storage.ErrEmailExists)
}

func TestUserStorage_GetUserByEmail(t *testing.T) {
	ctx := context.Background()
	s, cleanup := setupTestStorage(t)
	defer cleanup()

	userID, err := s.CreateUser(ctx, testAccount("john@example.com"))
	require.NoError(t, err)

	retrieved, err := s.GetUserByEmail(ctx, "john@example.com")
	require.NoError(t, err)
	assert.Equal(t, userID, retrieved.ID)

	// Lookup is case-sensitive
	_, err = s.GetUserByEmail(ctx, "John@Example.com")
	assert.ErrorIs(t, err, storage.ErrUserNotFound)

	_, err = s.GetUserByEmail(ctx, "ghost@example.com")
	assert.ErrorIs(t, err, storage.ErrUserNotFound)
}

func TestUserStorage_EmailExists(t *testing.T) {
	ctx := context.Background()
	s, cleanup := setupTestStorage(t)
	defer cleanup()

	exists, err := s.EmailExists(ctx, "john@example.com")
	require.NoError(t, err)
	assert.False(t, exists)

	_, err = s.CreateUser(ctx, testAccount("john@example.com"))
	require.NoError(t, err)

	exists, err = s.EmailExists(ctx, "john@example.com")
	require.NoError(t, err)
	assert.True(t, exists)
}

func TestUserStorage_UpdateUser(t *testing.T) {
	ctx := context.Background()
	s, cleanup := setupTestStorage(t)
	defer cleanup()

	strPtr := func(v string) *string { return &v }

	userID, err := s.CreateUser(ctx, testAccount("john@example.com"))
	require.NoError(t, err)

	t.Run("partial update touches only the given fields", func(t *testing.T) {
		err := s.UpdateUser(ctx, userID, storage.UserUpdate{
			City:      strPtr("Derry"),
			FirstName: strPtr("Jack"),
		})
		require.NoError(t, err)

		retrieved, err := s.GetUserByID(ctx, userID)
		require.NoError(t, err)
		assert.Equal(t, "Derry", retrieved.City)
		assert.Equal(t, "Jack", retrieved.FirstName)
		assert.Equal(t, "Doe", retrieved.LastName)
		assert.Equal(t, "john@example.com", retrieved.EmailAddress)
	})

	t.Run("empty update is rejected", func(t *testing.T) {
		err := s.UpdateUser(ctx, userID, storage.UserUpdate{})
		assert.ErrorIs(t, err, storage.ErrNoFields)
	})

	t.Run("unknown user yields not found", func(t *testing.T) {
		err := s.UpdateUser(ctx, "no-such-id", storage.UserUpdate{City: strPtr("Derry")})
		assert.ErrorIs(t, err, storage.ErrUserNotFound)
	})

	t.Run("email collision yields conflict", func(t *testing.T) {
		_, err := s.CreateUser(ctx, testAccount("jane@example.com"))
		require.NoError(t, err)

		err = s.UpdateUser(ctx, userID, storage.UserUpdate{EmailAddress: strPtr("jane@example.com")})
		assert.ErrorIs(t, err, storage.ErrEmailExists)
	})
}

func TestUserStorage_DeleteUser(t *testing.T) {
	ctx := context.Background()
	s, cleanup := setupTestStorage(t)
	defer cleanup()

	userID, err := s.CreateUser(ctx, testAccount("john@example.com"))
	require.NoError(t, err)

	require.NoError(t, s.DeleteUser(ctx, userID))

	_, err = s.GetUserByID(ctx, userID)
	assert.ErrorIs(t, err, storage.ErrUserNotFound)

	// Deletion is terminal, a second attempt finds nothing
	err = s.DeleteUser(ctx, userID)
	assert.ErrorIs(t, err, storage.ErrUserNotFound)
}
