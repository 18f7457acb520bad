// Package services holds the application logic behind the HTTP controllers.
// File: services/errors.go
package services

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidCredentials is the AuthError: the username is unknown or the password is wrong.
	ErrInvalidCredentials = errors.New("invalid username or password")
	// ErrStoreClosed is returned by admin store operations after Close.
	ErrStoreClosed = errors.New("admin store closed")
)

// ValidationError reports a missing or malformed field.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return e.Message
	}
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// TransportError wraps a failure to reach the backing store. Callers may retry.
type TransportError struct {
	Op  string
	Err error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("%s: backing service unavailable: %v", e.Op, e.Err)
}

func (e *TransportError) Unwrap() error { return e.Err }

// NotFoundError reports an operation on an id that does not exist.
type NotFoundError struct {
	Collection string
	ID         string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s %q not found", e.Collection, e.ID)
}

// ConflictError reports a uniqueness violation, such as a taken username.
type ConflictError struct {
	Collection string
	Message    string
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("%s: %s", e.Collection, e.Message)
}

// IsRetryable reports whether err came from the backing store being unreachable.
func IsRetryable(err error) bool {
	var te *TransportError
	return errors.As(err, &te)
}
