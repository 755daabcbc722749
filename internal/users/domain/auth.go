package domain

// Session is returned by signup, login and password reset.
type Session struct {
	User        SerializedUser `json:"user"`
	AccessToken string         `json:"access_token"`
}

// CreateUserInput carries a plaintext password; the service hashes it.
type CreateUserInput struct {
	Email    string
	Name     string
	Password string
}

// UpdateUserInput is a partial update with a plaintext password.
type UpdateUserInput struct {
	Email    *string
	Name     *string
	Password *string
}
