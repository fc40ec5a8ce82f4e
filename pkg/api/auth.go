package api

// RegisterRequest is the payload for POST /api/v1/register.
// All fields are required.
type RegisterRequest struct {
	FirstName    string `json:"first_name"`
	LastName     string `json:"last_name"`
	EmailAddress string `json:"email_address"`
	MobileNumber string `json:"mobile_number"`
	City         string `json:"city"`
	Password     string `json:"password"`
}

// LoginRequest is the payload for POST /api/v1/login.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// TokenResponse carries a freshly issued access token.
type TokenResponse struct {
	Token string `json:"token"`
}

// ValidateTokenRequest is the payload for POST /api/v1/validate-token.
// The token travels in the body, not the header: the endpoint exists for
// other services to introspect tokens they received.
type ValidateTokenRequest struct {
	Token string `json:"token"`
}

// ValidateTokenResponse reports whether a token is still accepted.
type ValidateTokenResponse struct {
	Valid   bool   `json:"valid"`
	Message string `json:"message,omitempty"`
}

// MessageResponse is a generic confirmation body.
type MessageResponse struct {
	Message string `json:"message"`
}

// ErrorResponse is the uniform error body.
type ErrorResponse struct {
	Error         string   `json:"error"`
	Message       string   `json:"message,omitempty"`
	MissingFields []string `json:"missing_fields,omitempty"`
}
