package api

// UserResponse is the body for GET /api/v1/users/{id}.
// The password hash is never part of this contract.
type UserResponse struct {
	UserID       string `json:"user_id"`
	FirstName    string `json:"first_name"`
	LastName     string `json:"last_name"`
	EmailAddress string `json:"email_address"`
	MobileNumber string `json:"mobile_number"`
	City         string `json:"city"`
	Admin        bool   `json:"admin"`
	CreationTime string `json:"creation_time"` // ISO-8601
}

// UpdateUserRequest is the payload for PUT /api/v1/users/{id}.
// Every field is optional; absent fields are left untouched.
type UpdateUserRequest struct {
	FirstName    *string `json:"first_name"`
	LastName     *string `json:"last_name"`
	EmailAddress *string `json:"email_address"`
	MobileNumber *string `json:"mobile_number"`
	City         *string `json:"city"`
	Password     *string `json:"password"`
}
