package profile

import (
	"context"
	"errors"
	"fmt"
	"path"
	"time"

	profileRepo "matrimonial/database/repository/profile"
	"matrimonial/models"
	"matrimonial/services/photos"

	"go.uber.org/zap"
)

// ErrImagesUnavailable is returned when no image storage is configured.
var ErrImagesUnavailable = errors.New("photo storage is not configured")

// UploadPhotos makes the user's photo list the kept stored photos followed by
// uploads. Stored photos left out of kept are removed, and the capacity check
// counts what remains. Either every upload is attached or none is.
func (s *Service) UploadPhotos(ctx context.Context, userID string, kept []models.PhotoRef, uploads []models.PhotoUpload) error {
	if len(uploads) > 0 && s.images == nil {
		return ErrImagesUnavailable
	}
	existing, err := s.profiles.GetByUserID(ctx, userID)
	if err != nil {
		return err
	}
	if existing == nil {
		return profileRepo.ErrProfileNotFound
	}

	retained, removed := retainPhotos(existing.Photos, kept)
	if len(retained)+len(uploads) > photos.MaxPhotos {
		return &photos.CapacityError{Max: photos.MaxPhotos}
	}

	folder := path.Join(s.folder, userID)
	added := make([]models.StoredPhoto, 0, len(uploads))
	for _, u := range uploads {
		img, err := s.images.UploadImage(ctx, u.Data, folder, u.Filename)
		if err != nil {
			s.discard(ctx, added)
			return fmt.Errorf("failed to upload %s: %w", u.Filename, err)
		}
		added = append(added, models.StoredPhoto{
			URL:        img.URL,
			PublicID:   img.PublicID,
			IsPrimary:  u.IsPrimary,
			UploadedAt: time.Now().UTC(),
		})
	}

	if err := s.profiles.SetPhotos(ctx, userID, mergePhotos(retained, added)); err != nil {
		s.discard(ctx, added)
		return err
	}
	if s.images != nil {
		s.discard(ctx, removed)
	}
	s.logger.Info("profile photos saved", zap.String("userID", userID),
		zap.Int("uploaded", len(added)), zap.Int("kept", len(retained)), zap.Int("removed", len(removed)))
	return nil
}

// retainPhotos picks the stored photos named by kept, in kept's order and with
// its primary flags. Everything else stored is returned as removed. Refs that
// match no stored photo are ignored.
func retainPhotos(stored []models.StoredPhoto, kept []models.PhotoRef) (retained, removed []models.StoredPhoto) {
	used := make([]bool, len(stored))
	for _, ref := range kept {
		for i, p := range stored {
			if used[i] || !refersTo(ref, p) {
				continue
			}
			used[i] = true
			p.IsPrimary = ref.IsPrimary
			retained = append(retained, p)
			break
		}
	}
	for i, p := range stored {
		if !used[i] && p.PublicID != "" {
			removed = append(removed, p)
		}
	}
	return retained, removed
}

func refersTo(ref models.PhotoRef, p models.StoredPhoto) bool {
	if ref.PublicID != "" {
		return ref.PublicID == p.PublicID
	}
	return ref.URL != "" && ref.URL == p.URL
}

// discard deletes images that are no longer referenced by the profile.
func (s *Service) discard(ctx context.Context, uploaded []models.StoredPhoto) {
	for _, p := range uploaded {
		if err := s.images.DeleteImage(ctx, p.PublicID); err != nil {
			s.logger.Warn("failed to delete image", zap.String("publicID", p.PublicID), zap.Error(err))
		}
	}
}

// mergePhotos appends added to existing. A primary among the new photos takes
// over; otherwise the first existing primary stays, falling back to index 0.
func mergePhotos(existing, added []models.StoredPhoto) []models.StoredPhoto {
	out := make([]models.StoredPhoto, 0, len(existing)+len(added))
	out = append(out, existing...)
	out = append(out, added...)
	if len(out) == 0 {
		return out
	}

	primary := -1
	for i, p := range added {
		if p.IsPrimary {
			primary = len(existing) + i
			break
		}
	}
	if primary < 0 {
		for i, p := range existing {
			if p.IsPrimary {
				primary = i
				break
			}
		}
	}
	if primary < 0 {
		primary = 0
	}
	for i := range out {
		out[i].IsPrimary = i == primary
	}
	return out
}
