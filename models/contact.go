// File: models/contact.go
package models

// ContactRequest is a message sent from the public contact form.
type ContactRequest struct {
	Name    string `json:"name" form:"name"`
	Email   string `json:"email" form:"email"`
	Message string `json:"message" form:"message"`
}

// Complete reports whether every field is filled in.
func (r ContactRequest) Complete() bool {
	return r.Name != "" && r.Email != "" && r.Message != ""
}
