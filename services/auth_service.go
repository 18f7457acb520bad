// File: services/auth_service.go
package services

import (
	"context"
	"errors"

	"wanderlust/logger"
	"wanderlust/metrics"
	"wanderlust/models"
	"wanderlust/repository"
)

// messages shown to the user for each failure mode
const (
	MsgMissingFields      = "Please fill in all fields."
	MsgInvalidCredentials = "Invalid username or password."
	MsgTryAgain           = "Something went wrong. Please try again."
	MsgLoginSuccessful    = "Login successful"
)

// AuthResult is the outcome of a credential exchange.
type AuthResult struct {
	Success bool         `json:"success"`
	Message string       `json:"message,omitempty"`
	User    *models.User `json:"-"`
}

type AuthServiceInterface interface {
	Authenticate(ctx context.Context, username, password string) (AuthResult, error)
}

// AuthService checks credentials against the user repository. It stores nothing itself;
// persisting the session is the caller's job.
type AuthService struct {
	users   repository.UserRepository
	metrics metrics.Publisher
}

// NewAuthService creates an AuthService. A nil publisher disables metrics.
func NewAuthService(users repository.UserRepository, publisher metrics.Publisher) *AuthService {
	if publisher == nil {
		publisher = metrics.Noop{}
	}
	return &AuthService{users: users, metrics: publisher}
}

// Authenticate returns a failed result together with a ValidationError, ErrInvalidCredentials
// or a TransportError, so callers can tell retryable failures from rejected credentials.
func (s *AuthService) Authenticate(ctx context.Context, username, password string) (AuthResult, error) {
	if username == "" || password == "" {
		return AuthResult{Message: MsgMissingFields}, &ValidationError{Message: "username and password are required"}
	}

	user, err := s.users.FindByUsername(ctx, username)
	switch {
	case errors.Is(err, repository.ErrNotFound):
		logger.Warn.Printf("Authenticate: unknown user %s", username)
		s.metrics.Count(ctx, "LoginFailures", nil)
		return AuthResult{Message: MsgInvalidCredentials}, ErrInvalidCredentials
	case err != nil:
		logger.Error.Printf("Authenticate: user lookup for %s failed: %v", username, err)
		return AuthResult{Message: MsgTryAgain}, &TransportError{Op: "authenticate", Err: err}
	}

	if !ComparePasswords(user.PasswordHash, password) {
		logger.Warn.Printf("Authenticate: wrong password for user %s", username)
		s.metrics.Count(ctx, "LoginFailures", nil)
		return AuthResult{Message: MsgInvalidCredentials}, ErrInvalidCredentials
	}

	logger.Info.Printf("Authenticate: user %s authenticated (role=%s)", username, user.Role)
	return AuthResult{Success: true, Message: MsgLoginSuccessful, User: &user}, nil
}
