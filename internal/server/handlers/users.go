package handlers

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/communityeye/auth-service/internal/crypto"
	"github.com/communityeye/auth-service/internal/server/storage"
	"github.com/communityeye/auth-service/internal/validation"
	"github.com/communityeye/auth-service/pkg/api"
)

// UsersHandler handles user profile requests.
// Note: any valid token can read or update any profile by id. There is
// no self-or-admin check; callers that need one must sit in front.
type UsersHandler struct {
	logger      *slog.Logger
	userStorage storage.UserStorage
}

// NewUsersHandler creates a new users handler
func NewUsersHandler(logger *slog.Logger, userStorage storage.UserStorage) *UsersHandler {
	return &UsersHandler{
		logger:      logger,
		userStorage: userStorage,
	}
}

// GetUser handles GET /api/v1/users/{id}
// Returns the profile without the password hash.
func (h *UsersHandler) GetUser(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	userID := r.PathValue("id")
	if userID == "" {
		h.sendError(w, "user id is required", http.StatusBadRequest)
		return
	}

	user, err := h.userStorage.GetUserByID(ctx, userID)
	if err != nil {
		if errors.Is(err, storage.ErrUserNotFound) {
			h.logger.WarnContext(ctx, "user not found", slog.String("user_id", userID))
			h.sendError(w, "user not found", http.StatusNotFound)
			return
		}
		h.logger.ErrorContext(ctx, "failed to get user", slog.Any("error", err))
		h.sendError(w, "internal server error", http.StatusInternalServerError)
		return
	}

	resp := api.UserResponse{
		UserID:       user.ID,
		FirstName:    user.FirstName,
		LastName:     user.LastName,
		EmailAddress: user.EmailAddress,
		MobileNumber: user.MobileNumber,
		City:         user.City,
		Admin:        user.IsAdmin,
		CreationTime: user.CreatedAt.Format(time.RFC3339),
	}

	h.sendJSON(w, resp, http.StatusOK)
}

// UpdateUser handles PUT /api/v1/users/{id}
// Applies any subset of profile fields. All validation happens before a
// single field is queued for write, so an invalid email or password
// never leaves a partial update behind.
func (h *UsersHandler) UpdateUser(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	userID := r.PathValue("id")
	if userID == "" {
		h.sendError(w, "user id is required", http.StatusBadRequest)
		return
	}

	var req api.UpdateUserRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.logger.ErrorContext(ctx, "failed to decode update request", slog.Any("error", err))
		h.sendError(w, "invalid request body", http.StatusBadRequest)
		return
	}

	if req == (api.UpdateUserRequest{}) {
		h.sendError(w, "empty request body", http.StatusBadRequest)
		return
	}

	if req.Password != nil {
		if err := validation.ValidatePassword(*req.Password); err != nil {
			h.logger.WarnContext(ctx, "invalid password format in update")
			h.sendError(w, err.Error(), http.StatusUnprocessableEntity)
			return
		}
	}

	if req.EmailAddress != nil && !validation.ValidEmail(*req.EmailAddress) {
		h.logger.WarnContext(ctx, "invalid email address format in update")
		h.sendError(w, "invalid email address", http.StatusUnprocessableEntity)
		return
	}

	update := storage.UserUpdate{
		FirstName:    req.FirstName,
		LastName:     req.LastName,
		EmailAddress: req.EmailAddress,
		MobileNumber: req.MobileNumber,
		City:         req.City,
	}

	if req.Password != nil {
		passwordHash, err := crypto.HashPassword(*req.Password)
		if err != nil {
			h.logger.ErrorContext(ctx, "failed to hash password", slog.Any("error", err))
			h.sendError(w, "internal server error", http.StatusInternalServerError)
			return
		}
		update.PasswordHash = &passwordHash
	}

	if update.Empty() {
		h.sendError(w, "no valid fields to update", http.StatusBadRequest)
		return
	}

	if err := h.userStorage.UpdateUser(ctx, userID, update); err != nil {
		switch {
		case errors.Is(err, storage.ErrNoFields):
			h.sendError(w, "no valid fields to update", http.StatusBadRequest)
		case errors.Is(err, storage.ErrUserNotFound):
			h.logger.WarnContext(ctx, "update failed: user not found", slog.String("user_id", userID))
			h.sendError(w, "user not found", http.StatusNotFound)
		case errors.Is(err, storage.ErrEmailExists):
			h.logger.WarnContext(ctx, "update failed: email already in use", slog.String("user_id", userID))
			h.sendError(w, "email address is already in use", http.StatusConflict)
		default:
			h.logger.ErrorContext(ctx, "failed to update user", slog.Any("error", err))
			h.sendError(w, "internal server error", http.StatusInternalServerError)
		}
		return
	}

	h.logger.InfoContext(ctx, "user updated successfully", slog.String("user_id", userID))

	h.sendJSON(w, api.MessageResponse{Message: "user updated"}, http.StatusOK)
}

// sendJSON writes a JSON response
func (h *UsersHandler) sendJSON(w http.ResponseWriter, data interface{}, statusCode int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		h.logger.Error("failed to encode JSON response", slog.Any("error", err))
	}
}

// sendError writes a JSON error response
func (h *UsersHandler) sendError(w http.ResponseWriter, message string, statusCode int) {
	h.sendJSON(w, api.ErrorResponse{
		Error:   http.StatusText(statusCode),
		Message: message,
	}, statusCode)
}
