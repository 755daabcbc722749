package usersdk

import "encoding/json"

// ============================================================================
// Users
// ============================================================================

// User is the public view of a user. The password hash is never returned.
type User struct {
	ID    string `json:"id"    example:"01J9ZX8Q6J4T0V6N3D7W2K5R1A"`
	Email string `json:"email" example:"john@example.com"`
	Name  string `json:"name"  example:"John Doe"`
}

// MarshalJSON writes an empty Name as null. The service never stores an
// empty name, so "" only ever stands for a user without one.
func (u User) MarshalJSON() ([]byte, error) {
	type wireUser struct {
		ID    string  `json:"id"`
		Email string  `json:"email"`
		Name  *string `json:"name"`
	}
	w := wireUser{ID: u.ID, Email: u.Email}
	if u.Name != "" {
		w.Name = &u.Name
	}
	return json.Marshal(w)
}

// CreateUserRequest is the body of POST /users.
type CreateUserRequest struct {
	Email    string `json:"email"    validate:"email"          example:"john@example.com"`
	Name     string `json:"name"     validate:"required"       example:"John Doe"`
	Password string `json:"password" validate:"min=8,max=72"   example:"s3cret-pass"`
}

// UpdateUserRequest is the body of PUT /users/{id}. Omitted fields are left
// unchanged.
type UpdateUserRequest struct {
	Email    *string `json:"email,omitempty"    validate:"omitnil,email"`
	Name     *string `json:"name,omitempty"     validate:"omitnil,nonempty"`
	Password *string `json:"password,omitempty" validate:"omitnil,min=8,max=72"`
}

// ListUsersParams selects a page of GET /users. Zero values use the server
// defaults (page 1, 10 per page).
type ListUsersParams struct {
	Page    int
	PerPage int
	Search  string
}

// PageMeta describes a page of results. Prev and Next are null at the edges.
type PageMeta struct {
	Total       int64 `json:"total"`
	LastPage    int   `json:"lastPage"`
	CurrentPage int   `json:"currentPage"`
	PerPage     int   `json:"perPage"`
	Prev        *int  `json:"prev"`
	Next        *int  `json:"next"`
}

// UsersPage is the response of GET /users.
type UsersPage struct {
	Meta PageMeta `json:"meta"`
	Data []User   `json:"data"`
}

// ============================================================================
// Auth
// ============================================================================

// SignupRequest is the body of POST /auth/signup.
type SignupRequest struct {
	Email    string `json:"email"    validate:"email"        example:"john@example.com"`
	Name     string `json:"name"     validate:"required"     example:"John Doe"`
	Password string `json:"password" validate:"min=8,max=72" example:"s3cret-pass"`
}

// LoginRequest is the body of POST /auth/login.
type LoginRequest struct {
	Email    string `json:"email"    example:"john@example.com"`
	Password string `json:"password" example:"s3cret-pass"`
}

// ForgotPasswordRequest is the body of POST /auth/forgot-password.
type ForgotPasswordRequest struct {
	Email string `json:"email" validate:"email" example:"john@example.com"`
}

// ResetPasswordRequest is the body of POST /auth/reset-password. ID and
// AccessToken come from the link in the reset email.
type ResetPasswordRequest struct {
	ID          string `json:"id"           validate:"required"`
	Password    string `json:"password"     validate:"min=8,max=72"`
	AccessToken string `json:"access_token" validate:"required"`
}

// SessionResponse is returned by signup, login and reset-password.
type SessionResponse struct {
	User        User   `json:"user"`
	AccessToken string `json:"access_token"`
}

// ProfileResponse is returned by GET /auth/profile.
type ProfileResponse struct {
	User User `json:"user"`
}

// MessageResponse carries a human-readable confirmation.
type MessageResponse struct {
	Message string `json:"message" example:"successfully sent password reset link to user email"`
}

// ============================================================================
// Health
// ============================================================================

// HealthResponse represents the health check response from /livez and /readyz endpoints.
type HealthResponse struct {
	Status   string        `json:"status"           example:"ok"`
	Uptime   string        `json:"uptime"           example:"1h2m3s"`
	Version  string        `json:"version"          example:"0.1.0"`
	Database string        `json:"database"         example:"sqlite"`
	Cache    string        `json:"cache"            example:"memory"`
	Checks   *HealthChecks `json:"checks,omitempty"`
}

// HealthChecks reports the state of each dependency. Only /readyz fills it.
type HealthChecks struct {
	Database string `json:"database" example:"ok"`
	Cache    string `json:"cache"    example:"ok"`
}
