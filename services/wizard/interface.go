package wizard

import (
	"context"

	"matrimonial/models"
)

// ProfileStore persists profiles on behalf of the signed-in user.
type ProfileStore interface {
	// FetchMine returns the caller's stored profile, or nil when none exists.
	FetchMine(ctx context.Context) (*models.Profile, error)
	Create(ctx context.Context, payload models.ProfilePayload) error
	Update(ctx context.Context, payload models.ProfilePayload) error
	// UploadPhotos makes the stored photo list kept followed by uploads. Stored
	// photos missing from kept are removed.
	UploadPhotos(ctx context.Context, kept []models.PhotoRef, uploads []models.PhotoUpload) error
}

// SessionContext exposes the signed-in user.
type SessionContext interface {
	CurrentUser() models.SessionUser
	RefreshSession(ctx context.Context) error
}

// Notifier receives the UI side effects the wizard triggers.
type Notifier interface {
	ScrollToTop()
	Alert(message string)
	Progress(status string)
}
