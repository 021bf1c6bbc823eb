package api

// UserResponse describes a user on the wire. The password hash never leaves
// the store layer.
type UserResponse struct {
	ID        string `json:"id"`
	Email     string `json:"email"`
	CreatedAt string `json:"created_at,omitempty"`
}

// StatusResponse is returned from GET /status.
type StatusResponse struct {
	Status string `json:"status"`
}

// MessageResponse is returned from endpoints that report a plain outcome.
type MessageResponse struct {
	Message string `json:"message"`
}

// RegisterRequest is the JSON body for POST /users.
type RegisterRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// RegisterResponse is returned from POST /users.
type RegisterResponse struct {
	Email   string `json:"email"`
	Message string `json:"message"`
}

// LoginRequest is the JSON body for POST /sessions and
// POST /auth_session/login.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginResponse is returned from POST /sessions.
type LoginResponse struct {
	Email   string `json:"email"`
	Message string `json:"message"`
}

// ProfileResponse is returned from GET /profile.
type ProfileResponse struct {
	Email string `json:"email"`
}

// ResetTokenRequest is the JSON body for POST /reset_password.
type ResetTokenRequest struct {
	Email string `json:"email"`
}

// ResetTokenResponse is returned from POST /reset_password.
type ResetTokenResponse struct {
	Email      string `json:"email"`
	ResetToken string `json:"reset_token"`
}

// UpdatePasswordRequest is the JSON body for PUT /reset_password.
type UpdatePasswordRequest struct {
	Email       string `json:"email"`
	ResetToken  string `json:"reset_token"`
	NewPassword string `json:"new_password"`
}

// UpdatePasswordResponse is returned from PUT /reset_password.
type UpdatePasswordResponse struct {
	Email   string `json:"email"`
	Message string `json:"message"`
}

// ErrorResponse is returned for all error cases.
type ErrorResponse struct {
	Error string `json:"error"`
}
