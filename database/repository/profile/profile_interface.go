package profileRepo

import (
	"context"
	"errors"

	"matrimonial/models"
)

var (
	// ErrProfileExists is returned when a user already owns a profile.
	ErrProfileExists = errors.New("a profile already exists for this account")
	// ErrProfileNotFound is returned when the user has no profile to change.
	ErrProfileNotFound = errors.New("profile not found")
)

// ProfileRepository defines methods for profile data access. Every lookup is keyed
// by the owning user.
type ProfileRepository interface {
	// GetByUserID returns the user's profile, or nil when none exists.
	GetByUserID(ctx context.Context, userID string) (*models.Profile, error)
	// ExistsForUser reports whether the user has a profile.
	ExistsForUser(ctx context.Context, userID string) (bool, error)
	// Create inserts a new profile.
	Create(ctx context.Context, profile *models.Profile) error
	// Replace overwrites the user's profile document.
	Replace(ctx context.Context, profile *models.Profile) error
	// SetPhotos replaces the user's photo list.
	SetPhotos(ctx context.Context, userID string, photos []models.StoredPhoto) error
}
