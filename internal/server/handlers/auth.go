package handlers

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/communityeye/auth-service/internal/crypto"
	"github.com/communityeye/auth-service/internal/models"
	"github.com/communityeye/auth-service/internal/server/storage"
	"github.com/communityeye/auth-service/internal/validation"
	"github.com/communityeye/auth-service/pkg/api"
)

// requiredRegisterFields lists the register payload fields, in the order
// they are reported back when missing.
var requiredRegisterFields = []string{
	"first_name",
	"last_name",
	"email_address",
	"mobile_number",
	"city",
	"password",
}

// AuthHandler handles registration, login and token lifecycle requests
type AuthHandler struct {
	logger       *slog.Logger
	userStorage  storage.UserStorage
	tokenStorage storage.TokenStorage
	jwtConfig    JWTConfig
}

// NewAuthHandler creates a new auth handler
func NewAuthHandler(logger *slog.Logger, userStorage storage.UserStorage, tokenStorage storage.TokenStorage, jwtConfig JWTConfig) *AuthHandler {
	return &AuthHandler{
		logger:       logger,
		userStorage:  userStorage,
		tokenStorage: tokenStorage,
		jwtConfig:    jwtConfig,
	}
}

// Register handles POST /api/v1/register
// Creates an account and issues a token for the new user.
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	// Registering while already authenticated is disallowed, regardless
	// of whether the presented token is valid
	if r.Header.Get(TokenHeader) != "" {
		h.logger.WarnContext(ctx, "registration denied due to existing token")
		h.sendError(w, "can't register with an existing token", http.StatusUnauthorized)
		return
	}

	var req api.RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.logger.ErrorContext(ctx, "failed to decode register request", slog.Any("error", err))
		h.sendError(w, "invalid request body", http.StatusBadRequest)
		return
	}

	missing := validation.MissingFields(requiredRegisterFields, map[string]string{
		"first_name":    req.FirstName,
		"last_name":     req.LastName,
		"email_address": req.EmailAddress,
		"mobile_number": req.MobileNumber,
		"city":          req.City,
		"password":      req.Password,
	})
	if len(missing) > 0 {
		h.logger.WarnContext(ctx, "missing fields in registration data", slog.Any("missing_fields", missing))
		h.sendJSON(w, api.ErrorResponse{
			Error:         http.StatusText(http.StatusUnprocessableEntity),
			Message:       "missing fields in JSON data",
			MissingFields: missing,
		}, http.StatusUnprocessableEntity)
		return
	}

	if err := validation.ValidatePassword(req.Password); err != nil {
		h.logger.WarnContext(ctx, "invalid password format")
		h.sendError(w, err.Error(), http.StatusUnprocessableEntity)
		return
	}

	if !validation.ValidEmail(req.EmailAddress) {
		h.logger.WarnContext(ctx, "invalid email address format")
		h.sendError(w, "invalid email address", http.StatusUnprocessableEntity)
		return
	}

	exists, err := h.userStorage.EmailExists(ctx, req.EmailAddress)
	if err != nil {
		h.logger.ErrorContext(ctx, "failed to check email", slog.Any("error", err))
		h.sendError(w, "internal server error", http.StatusInternalServerError)
		return
	}
	if exists {
		h.logger.WarnContext(ctx, "email already registered", slog.String("email", req.EmailAddress))
		h.sendError(w, "email address is already in use", http.StatusConflict)
		return
	}

	passwordHash, err := crypto.HashPassword(req.Password)
	if err != nil {
		h.logger.ErrorContext(ctx, "failed to hash password", slog.Any("error", err))
		h.sendError(w, "internal server error", http.StatusInternalServerError)
		return
	}

	account := &models.Account{
		FirstName:    req.FirstName,
		LastName:     req.LastName,
		EmailAddress: req.EmailAddress,
		MobileNumber: req.MobileNumber,
		City:         req.City,
		PasswordHash: passwordHash,
		IsAdmin:      false,
		CreatedAt:    time.Now(),
	}

	userID, err := h.userStorage.CreateUser(ctx, account)
	if err != nil {
		// Two registrations can race past the existence check; the
		// unique constraint on email is the backstop
		if errors.Is(err, storage.ErrEmailExists) {
			h.logger.WarnContext(ctx, "email already registered", slog.String("email", req.EmailAddress))
			h.sendError(w, "email address is already in use", http.StatusConflict)
			return
		}
		h.logger.ErrorContext(ctx, "failed to create user", slog.Any("error", err))
		h.sendError(w, "internal server error", http.StatusInternalServerError)
		return
	}

	token, err := GenerateAccessToken(h.jwtConfig, userID, false, req.EmailAddress)
	if err != nil {
		h.logger.ErrorContext(ctx, "failed to generate access token", slog.Any("error", err))
		h.sendError(w, "internal server error", http.StatusInternalServerError)
		return
	}

	h.logger.InfoContext(ctx, "user registered successfully", slog.String("user_id", userID))

	h.sendJSON(w, api.TokenResponse{Token: token}, http.StatusCreated)
}

// Login handles POST /api/v1/login
// Verifies credentials and issues a token.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req api.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.logger.ErrorContext(ctx, "failed to decode login request", slog.Any("error", err))
		h.sendError(w, "invalid request body", http.StatusBadRequest)
		return
	}

	// Absent credentials get a challenge, distinct from a mismatch
	if req.Email == "" || req.Password == "" {
		h.logger.WarnContext(ctx, "could not verify login attempt")
		w.Header().Set("WWW-Authenticate", `Basic realm="Login required"`)
		h.sendError(w, "could not verify", http.StatusUnauthorized)
		return
	}

	if !validation.ValidEmail(req.Email) {
		h.logger.WarnContext(ctx, "invalid email address format during login")
		h.sendError(w, "invalid email address", http.StatusBadRequest)
		return
	}

	user, err := h.userStorage.GetUserByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, storage.ErrUserNotFound) {
			h.logger.WarnContext(ctx, "login failed: unknown email", slog.String("email", req.Email))
			h.sendError(w, "email address is incorrect", http.StatusUnauthorized)
			return
		}
		h.logger.ErrorContext(ctx, "failed to get user", slog.Any("error", err))
		h.sendError(w, "internal server error", http.StatusInternalServerError)
		return
	}

	if err := crypto.VerifyPassword(req.Password, user.PasswordHash); err != nil {
		h.logger.WarnContext(ctx, "login failed: wrong password", slog.String("email", req.Email))
		h.sendError(w, "password is incorrect", http.StatusUnauthorized)
		return
	}

	token, err := GenerateAccessToken(h.jwtConfig, user.ID, user.IsAdmin, user.EmailAddress)
	if err != nil {
		h.logger.ErrorContext(ctx, "failed to generate access token", slog.Any("error", err))
		h.sendError(w, "internal server error", http.StatusInternalServerError)
		return
	}

	h.logger.InfoContext(ctx, "user logged in successfully", slog.String("user_id", user.ID))

	h.sendJSON(w, api.TokenResponse{Token: token}, http.StatusOK)
}

// Logout handles GET /api/v1/logout
// Deny-lists the presented token. The guard has already validated it;
// the raw string is re-read from the header for revocation.
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	token := r.Header.Get(TokenHeader)
	if token == "" {
		h.logger.WarnContext(ctx, "logout attempt without token")
		h.sendError(w, "token is missing", http.StatusBadRequest)
		return
	}

	revoked := &models.RevokedToken{
		Token:     token,
		RevokedAt: time.Now(),
	}

	if err := h.tokenStorage.RevokeToken(ctx, revoked); err != nil {
		h.logger.ErrorContext(ctx, "failed to revoke token", slog.Any("error", err))
		h.sendError(w, "internal server error", http.StatusInternalServerError)
		return
	}

	h.logger.InfoContext(ctx, "token revoked successfully")

	h.sendJSON(w, api.MessageResponse{Message: "logged out"}, http.StatusOK)
}

// DeleteAccount handles DELETE /api/v1/delete_account
// Deletes the account identified by the verified token and deny-lists
// the token so it cannot outlive the account.
func (h *AuthHandler) DeleteAccount(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	token := r.Header.Get(TokenHeader)

	// The user id must come from the verified token, never from the
	// request body, so decode it here even though the guard already ran
	claims, err := ValidateAccessToken(h.jwtConfig, token)
	if err != nil || claims.UserID == "" {
		h.logger.WarnContext(ctx, "account deletion with invalid token")
		h.sendError(w, "invalid token", http.StatusUnauthorized)
		return
	}

	if _, err := h.userStorage.GetUserByID(ctx, claims.UserID); err != nil {
		if errors.Is(err, storage.ErrUserNotFound) {
			h.logger.WarnContext(ctx, "account deletion failed: user not found", slog.String("user_id", claims.UserID))
			h.sendError(w, "user not found", http.StatusNotFound)
			return
		}
		h.logger.ErrorContext(ctx, "failed to get user", slog.Any("error", err))
		h.sendError(w, "internal server error", http.StatusInternalServerError)
		return
	}

	if err := h.userStorage.DeleteUser(ctx, claims.UserID); err != nil {
		h.logger.ErrorContext(ctx, "failed to delete user", slog.Any("error", err))
		h.sendError(w, "internal server error", http.StatusInternalServerError)
		return
	}

	revoked := &models.RevokedToken{
		Token:     token,
		RevokedAt: time.Now(),
	}

	if err := h.tokenStorage.RevokeToken(ctx, revoked); err != nil {
		h.logger.ErrorContext(ctx, "failed to revoke token after deletion", slog.Any("error", err))
		h.sendError(w, "internal server error", http.StatusInternalServerError)
		return
	}

	h.logger.InfoContext(ctx, "account deleted successfully", slog.String("user_id", claims.UserID))

	w.WriteHeader(http.StatusNoContent)
}

// ValidateToken handles POST /api/v1/validate-token
// Introspection endpoint for other services: the token travels in the
// body, not the header. Only denylist membership is checked here, not
// signature or expiry, so an expired but unrevoked token still reports
// valid. That mirrors the historical behavior this service replaces.
func (h *AuthHandler) ValidateToken(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req api.ValidateTokenRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Token == "" {
		h.logger.WarnContext(ctx, "token validation without token")
		h.sendJSON(w, api.ValidateTokenResponse{Valid: false, Message: "token is missing"}, http.StatusUnauthorized)
		return
	}

	revoked, err := h.tokenStorage.IsTokenRevoked(ctx, req.Token)
	if err != nil {
		h.logger.ErrorContext(ctx, "failed to check token denylist", slog.Any("error", err))
		h.sendJSON(w, api.ValidateTokenResponse{Valid: false, Message: "internal server error"}, http.StatusInternalServerError)
		return
	}
	if revoked {
		h.logger.WarnContext(ctx, "token validation failed: token has been cancelled")
		h.sendJSON(w, api.ValidateTokenResponse{Valid: false, Message: "token has been cancelled"}, http.StatusUnauthorized)
		return
	}

	h.sendJSON(w, api.ValidateTokenResponse{Valid: true}, http.StatusOK)
}

// sendJSON writes a JSON response
func (h *AuthHandler) sendJSON(w http.ResponseWriter, data interface{}, statusCode int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		h.logger.Error("failed to encode JSON response", slog.Any("error", err))
	}
}

// sendError writes a JSON error response
func (h *AuthHandler) sendError(w http.ResponseWriter, message string, statusCode int) {
	h.sendJSON(w, api.ErrorResponse{
		Error:   http.StatusText(statusCode),
		Message: message,
	}, statusCode)
}
