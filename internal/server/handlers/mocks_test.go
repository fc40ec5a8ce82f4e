package handlers

import (
	"context"

	"github.com/google/uuid"

	"github.com/communityeye/auth-service/internal/models"
	"github.com/communityeye/auth-service/internal/server/storage"
)

// mockUserStorage is an in-memory UserStorage for testing
type mockUserStorage struct {
	users       map[string]*models.Account // user_id -> Account
	createError error
	getError    error
	updateError error
	deleteError error
}

func newMockUserStorage() *mockUserStorage {
	return &mockUserStorage{users: make(map[string]*models.Account)}
}

func (m *mockUserStorage) CreateUser(ctx context.Context, user *models.Account) (string, error) {
	if m.createError != nil {
		return "", m.createError
	}
	for _, u := range m.users {
		if u.EmailAddress == user.EmailAddress {
			return "", storage.ErrEmailExists
		}
	}
	id := uuid.New().String()
	stored := *user
	stored.ID = id
	m.users[id] = &stored
	return id, nil
}

func (m *mockUserStorage) GetUserByEmail(ctx context.Context, email string) (*models.Account, error) {
	if m.getError != nil {
		return nil, m.getError
	}
	for _, u := range m.users {
		if u.EmailAddress == email {
			return u, nil
		}
	}
	return nil, storage.ErrUserNotFound
}

func (m *mockUserStorage) GetUserByID(ctx context.Context, userID string) (*models.Account, error) {
	if m.getError != nil {
		return nil, m.getError
	}
	u, ok := m.users[userID]
	if !ok {
		return nil, storage.ErrUserNotFound
	}
	return u, nil
}

func (m *mockUserStorage) EmailExists(ctx context.Context, email string) (bool, error) {
	if m.getError != nil {
		return false, m.getError
	}
	for _, u := range m.users {
		if u.EmailAddress == email {
			return true, nil
		}
	}
	return false, nil
}

func (m *mockUserStorage) UpdateUser(ctx context.Context, userID string, update storage.UserUpdate) error {
	if m.updateError != nil {
		return m.updateError
	}
	if update.Empty() {
		return storage.ErrNoFields
	}
	u, ok := m.users[userID]
	if !ok {
		return storage.ErrUserNotFound
	}
	if update.EmailAddress != nil {
		for id, other := range m.users {
			if id != userID && other.EmailAddress == *update.EmailAddress {
				return storage.ErrEmailExists
			}
		}
		u.EmailAddress = *update.EmailAddress
	}
	if update.FirstName != nil {
		u.FirstName = *update.FirstName
	}
	if update.LastName != nil {
		u.LastName = *update.LastName
	}
	if update.MobileNumber != nil {
		u.MobileNumber = *update.MobileNumber
	}
	if update.City != nil {
		u.City = *update.City
	}
	if update.PasswordHash != nil {
		u.PasswordHash = *update.PasswordHash
	}
	return nil
}

func (m *mockUserStorage) DeleteUser(ctx context.Context, userID string) error {
	if m.deleteError != nil {
		return m.deleteError
	}
	if _, ok := m.users[userID]; !ok {
		return storage.ErrUserNotFound
	}
	delete(m.users, userID)
	return nil
}

// mockTokenStorage is an in-memory denylist for testing
type mockTokenStorage struct {
	revoked     map[string]int // token -> insert count
	revokeError error
	checkError  error
}

func newMockTokenStorage() *mockTokenStorage {
	return &mockTokenStorage{revoked: make(map[string]int)}
}

func (m *mockTokenStorage) RevokeToken(ctx context.Context, token *models.RevokedToken) error {
	if m.revokeError != nil {
		return m.revokeError
	}
	m.revoked[token.Token]++
	return nil
}

func (m *mockTokenStorage) IsTokenRevoked(ctx context.Context, token string) (bool, error) {
	if m.checkError != nil {
		return false, m.checkError
	}
	return m.revoked[token] > 0, nil
}
