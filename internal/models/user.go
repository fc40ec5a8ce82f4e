package models

import "time"

// Account represents a registered user record.
// PasswordHash holds the bcrypt hash of the password and is never serialized.
type Account struct {
	ID           string    `json:"user_id"`
	FirstName    string    `json:"first_name"`
	LastName     string    `json:"last_name"`
	EmailAddress string    `json:"email_address"`
	MobileNumber string    `json:"mobile_number"`
	City         string    `json:"city"`
	PasswordHash string    `json:"-"`
	IsAdmin      bool      `json:"admin"`
	CreatedAt    time.Time `json:"creation_time"`
}

// RevokedToken represents a token that was explicitly invalidated
// before its natural expiry. Rows are insert-only and never purged.
type RevokedToken struct {
	Token     string    `json:"token"`
	RevokedAt time.Time `json:"revoked_at"`
}
