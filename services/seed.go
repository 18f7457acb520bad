// File: services/seed.go
package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"wanderlust/logger"
	"wanderlust/models"
	"wanderlust/repository"
)

// SeedAdmin makes sure exactly one user called username exists with the admin role and the
// given password. An existing record keeps its id and profile but gets a fresh password hash,
// the admin role and a new updatedAt.
func SeedAdmin(ctx context.Context, users repository.UserRepository, username, password string) error {
	if username == "" || password == "" {
		return &ValidationError{Message: "admin username and password are required"}
	}
	hash, err := HashPassword(password)
	if err != nil {
		return fmt.Errorf("hash admin password: %w", err)
	}
	now := time.Now().UTC()

	existing, err := users.FindByUsername(ctx, username)
	switch {
	case errors.Is(err, repository.ErrNotFound):
		admin := models.User{
			ID:           uuid.NewString(),
			Name:         "Administrator",
			Email:        username + "@localhost",
			Username:     username,
			PasswordHash: hash,
			Role:         models.RoleAdmin,
			Preferences:  models.DefaultPreferences(),
			CreatedAt:    now,
			UpdatedAt:    now,
		}
		if err := users.Create(ctx, admin); err != nil {
			return fmt.Errorf("create admin %s: %w", username, err)
		}
		logger.Info.Printf("SeedAdmin: created admin user %s", username)
		return nil
	case err != nil:
		return fmt.Errorf("look up admin %s: %w", username, err)
	}

	existing.PasswordHash = hash
	existing.Role = models.RoleAdmin
	existing.UpdatedAt = now
	if err := users.Update(ctx, existing); err != nil {
		return fmt.Errorf("update admin %s: %w", username, err)
	}
	logger.Info.Printf("SeedAdmin: reset admin user %s", username)
	return nil
}
