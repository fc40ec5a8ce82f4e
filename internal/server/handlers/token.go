package handlers

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// TokenHeader is the request header carrying the access token.
// Header lookup is case-insensitive per standard HTTP semantics.
const TokenHeader = "x-access-token"

// AccessTokenTTL is the lifetime of an issued token.
const AccessTokenTTL = 30 * time.Minute

// CustomClaims represents the JWT claims issued by this service
type CustomClaims struct {
	UserID       string `json:"user_id"`
	Admin        bool   `json:"admin"`
	EmailAddress string `json:"email_address"`
	jwt.RegisteredClaims
}

// JWTConfig holds the token signing configuration.
// The secret is process-wide, set once at startup, read-only after.
type JWTConfig struct {
	Secret         []byte
	AccessTokenTTL time.Duration
}

// GenerateAccessToken creates a signed HS256 token with the identity claims
func GenerateAccessToken(cfg JWTConfig, userID string, admin bool, email string) (string, error) {
	now := time.Now()
	expiresAt := now.Add(cfg.AccessTokenTTL)

	claims := CustomClaims{
		UserID:       userID,
		Admin:        admin,
		EmailAddress: email,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(expiresAt),
			IssuedAt:  jwt.NewNumericDate(now),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString(cfg.Secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}

	return tokenString, nil
}

// ValidateAccessToken verifies the signature and expiry and returns the claims
func ValidateAccessToken(cfg JWTConfig, tokenString string) (*CustomClaims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &CustomClaims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return cfg.Secret, nil
	})

	if err != nil {
		return nil, fmt.Errorf("failed to parse token: %w", err)
	}

	if claims, ok := token.Claims.(*CustomClaims); ok && token.Valid {
		return claims, nil
	}

	return nil, fmt.Errorf("invalid token")
}
