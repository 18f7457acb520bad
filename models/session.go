// File: models/session.go
package models

// Session is the pair of client-visible indicators the pages use to decide what to render.
// They are never trusted for access decisions; Identity is.
type Session struct {
	LoggedIn bool   `json:"loggedIn"`
	Username string `json:"username"`
}

// Identity is the verified caller, taken from the signed session or a bearer token.
type Identity struct {
	Username string `json:"username"`
	Role     Role   `json:"role"`
}

// IsAdmin reports whether the identity carries the admin role.
func (i Identity) IsAdmin() bool { return i.Role == RoleAdmin }
