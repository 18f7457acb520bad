// Package models defines data structures used across the application.
// File: models/user.go
package models

import "time"

// ----------------------- user model -----------------------

// Role decides which parts of the site a user may reach.
type Role string

const (
	RoleAdmin Role = "admin"
	RoleUser  Role = "user"
)

// Valid reports whether r is a known role.
func (r Role) Valid() bool {
	return r == RoleAdmin || r == RoleUser
}

// Preferences are per-user display settings.
type Preferences struct {
	Newsletter    bool   `bson:"newsletter" json:"newsletter"`
	Notifications bool   `bson:"notifications" json:"notifications"`
	Currency      string `bson:"currency" json:"currency"`
	Language      string `bson:"language" json:"language"`
}

// DefaultPreferences are applied to users created without explicit preferences.
func DefaultPreferences() Preferences {
	return Preferences{
		Newsletter:    false,
		Notifications: true,
		Currency:      "USD",
		Language:      "en",
	}
}

// User is an account managed from the admin dashboard.
// PasswordHash holds a bcrypt hash and is never rendered as JSON.
type User struct {
	ID           string      `bson:"_id" json:"id"`
	Name         string      `bson:"name" json:"name"`
	Email        string      `bson:"email" json:"email"`
	Username     string      `bson:"username" json:"username"`
	PasswordHash string      `bson:"passwordHash" json:"-"`
	Role         Role        `bson:"role" json:"role"`
	Bio          string      `bson:"bio,omitempty" json:"bio,omitempty"`
	Avatar       string      `bson:"avatar,omitempty" json:"avatar,omitempty"`
	Preferences  Preferences `bson:"preferences" json:"preferences"`
	CreatedAt    time.Time   `bson:"createdAt" json:"createdAt"`
	UpdatedAt    time.Time   `bson:"updatedAt" json:"updatedAt"`
}

// GetID returns the record id.
func (u User) GetID() string { return u.ID }

// IsAdmin reports whether the user may use the admin dashboard.
func (u User) IsAdmin() bool { return u.Role == RoleAdmin }
