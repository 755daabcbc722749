package domain

import "time"

// User is the full persisted record. It carries the password hash and must
// never be written to a client; use Serialize for that.
type User struct {
	ID           string
	Email        string
	Name         string
	PasswordHash string // bcrypt encoded
	CreatedAt    time.Time
	UpdatedAt    time.Time
	DeletedAt    *time.Time // soft delete marker (nullable)
}

// SerializedUser is the public projection of a User.
type SerializedUser struct {
	ID    string `json:"id"`
	Email string `json:"email"`
	Name  string `json:"name"`
}

// Serialize drops the password hash and bookkeeping timestamps.
func (u User) Serialize() SerializedUser {
	return SerializedUser{
		ID:    u.ID,
		Email: u.Email,
		Name:  u.Name,
	}
}

// UserUpdate is a partial update. Nil fields are left untouched.
// PasswordHash must already be hashed by the caller.
type UserUpdate struct {
	Email        *string
	Name         *string
	PasswordHash *string
}

// IsEmpty reports whether the update changes nothing.
func (u UserUpdate) IsEmpty() bool {
	return u.Email == nil && u.Name == nil && u.PasswordHash == nil
}

// UserFilter narrows a paginated listing. The zero value matches every live user.
type UserFilter struct {
	// Search is a case-insensitive substring matched against email and name.
	Search string
}
