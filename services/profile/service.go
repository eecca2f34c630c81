package profile

import (
	"context"
	"errors"
	"fmt"

	profileRepo "matrimonial/database/repository/profile"
	userRepo "matrimonial/database/repository/user"
	"matrimonial/models"
	"matrimonial/services/storage"
	"matrimonial/services/wizard"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"
)

// Service owns profile persistence for signed-in users.
type Service struct {
	profiles profileRepo.ProfileRepository
	users    userRepo.UserRepository
	images   storage.ImageStorage
	folder   string
	logger   *zap.Logger
	validate *validator.Validate
}

// NewService builds the service. images may be nil when no image storage is
// configured; photo uploads then fail with ErrImagesUnavailable.
func NewService(profiles profileRepo.ProfileRepository, users userRepo.UserRepository, images storage.ImageStorage, folder string, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{
		profiles: profiles,
		users:    users,
		images:   images,
		folder:   folder,
		logger:   logger,
		validate: newValidator(),
	}
}

// Get returns the user's profile, or nil when none exists.
func (s *Service) Get(ctx context.Context, userID string) (*models.Profile, error) {
	return s.profiles.GetByUserID(ctx, userID)
}

// Create validates and stores a first profile for userID.
func (s *Service) Create(ctx context.Context, userID string, payload models.ProfilePayload) error {
	if err := s.validatePayload(payload); err != nil {
		return err
	}
	doc, err := toDocument(userID, nil, payload)
	if err != nil {
		return err
	}
	if err := s.profiles.Create(ctx, doc); err != nil {
		return err
	}
	if err := s.users.SetHasProfile(ctx, userID, true); err != nil {
		s.logger.Warn("profile created but user flag not updated", zap.String("userID", userID), zap.Error(err))
	}
	s.logger.Info("profile created", zap.String("userID", userID), zap.String("profileID", doc.ID))
	return nil
}

// Update validates and replaces the user's profile. Photos are left to
// UploadPhotos.
func (s *Service) Update(ctx context.Context, userID string, payload models.ProfilePayload) error {
	if err := s.validatePayload(payload); err != nil {
		return err
	}
	existing, err := s.profiles.GetByUserID(ctx, userID)
	if err != nil {
		return err
	}
	if existing == nil {
		return profileRepo.ErrProfileNotFound
	}
	doc, err := toDocument(userID, existing, payload)
	if err != nil {
		return err
	}
	if err := s.profiles.Replace(ctx, doc); err != nil {
		return err
	}
	s.logger.Info("profile updated", zap.String("userID", userID), zap.String("profileID", doc.ID))
	return nil
}

// ForUser binds the service to one user for the wizard.
func (s *Service) ForUser(userID string) wizard.ProfileStore {
	return &userStore{svc: s, userID: userID}
}

type userStore struct {
	svc    *Service
	userID string
}

func (u *userStore) FetchMine(ctx context.Context) (*models.Profile, error) {
	p, err := u.svc.Get(ctx, u.userID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch profile: %w", err)
	}
	return p, nil
}

func (u *userStore) Create(ctx context.Context, payload models.ProfilePayload) error {
	return u.userFacing(u.svc.Create(ctx, u.userID, payload))
}

func (u *userStore) Update(ctx context.Context, payload models.ProfilePayload) error {
	return u.userFacing(u.svc.Update(ctx, u.userID, payload))
}

func (u *userStore) UploadPhotos(ctx context.Context, kept []models.PhotoRef, uploads []models.PhotoUpload) error {
	return u.svc.UploadPhotos(ctx, u.userID, kept, uploads)
}

// SaveError hides infrastructure detail from the message the wizard shows.
type SaveError struct {
	Err error
}

func (e *SaveError) Error() string {
	return "We could not save your profile. Please try again."
}

func (e *SaveError) Unwrap() error {
	return e.Err
}

func (u *userStore) userFacing(err error) error {
	var invalid *InvalidPayloadError
	switch {
	case err == nil:
		return nil
	case errors.As(err, &invalid),
		errors.Is(err, profileRepo.ErrProfileExists),
		errors.Is(err, profileRepo.ErrProfileNotFound):
		return err
	default:
		u.svc.logger.Error("failed to save profile", zap.String("userID", u.userID), zap.Error(err))
		return &SaveError{Err: err}
	}
}
