package user

import (
	"time"
)

// Roles form a closed set. Every authorization check in the clinic matches
// exhaustively against these three values.
const (
	RoleAdmin     = "admin"
	RoleDoctor    = "doctor"
	RoleAssistant = "assistant"
)

var validRoles = map[string]bool{
	RoleAdmin:     true,
	RoleDoctor:    true,
	RoleAssistant: true,
}

// User maps to the users table. The password hash is never serialized.
type User struct {
	ID           int64     `db:"id" json:"id"`
	FullName     string    `db:"full_name" json:"fullName"`
	Username     string    `db:"username" json:"username"`
	Email        string    `db:"email" json:"email"`
	PhoneNumber  string    `db:"phone_number" json:"phoneNumber"`
	PasswordHash string    `db:"password_hash" json:"-"`
	Role         string    `db:"role" json:"role"`
	Active       bool      `db:"active" json:"active"`
	CreatedAt    time.Time `db:"created_at" json:"createdAt"`
	UpdatedAt    time.Time `db:"updated_at" json:"updatedAt"`
}

// UpdateInput is a patch applied over an existing user. Nil fields are left
// untouched. Role and Active may only be set by an admin.
type UpdateInput struct {
	FullName    *string `json:"fullName"`
	Email       *string `json:"email"`
	PhoneNumber *string `json:"phoneNumber"`
	Role        *string `json:"role"`
	Active      *bool   `json:"active"`
}

// Filter narrows user list queries.
type Filter struct {
	Role        string
	Active      *bool
	Search      string
	CreatedFrom *time.Time
	CreatedTo   *time.Time
}
