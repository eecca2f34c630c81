package userRepo

import (
	"context"
	"errors"

	"matrimonial/models"
)

// ErrUserNotFound is returned when no user matches the lookup.
var ErrUserNotFound = errors.New("user not found")

// UserRepository defines methods for user data access. Accounts are created by
// the account service; this service only reads them and flips the profile flag.
type UserRepository interface {
	// GetByID retrieves a user by their unique ID.
	GetByID(ctx context.Context, id string) (*models.User, error)
	// SetHasProfile flips the profile flag once a profile is created.
	SetHasProfile(ctx context.Context, id string, hasProfile bool) error
}
