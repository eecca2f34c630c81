package wizard

import (
	"context"
	"fmt"
	"slices"

	"matrimonial/models"
	"matrimonial/services/photos"

	"go.uber.org/zap"
)

const (
	statusPreparing  = "Preparing your profile..."
	statusCreating   = "Creating your profile..."
	statusUpdating   = "Updating your profile..."
	statusPhotos     = "Saving your photos..."
	statusFinalizing = "Finalizing..."

	uploadFailedAlert = "Your profile was saved, but your photos could not be uploaded. You can add them again from your profile."
	photosFailedAlert = "Your profile was saved, but your photo changes could not be saved. Please try again from your profile."
)

// SubmitResult describes a successful submission. UploadErr is set when the
// profile was saved but the photo upload failed.
type SubmitResult struct {
	Created        bool         `json:"created"`
	PhotosUploaded int          `json:"photosUploaded"`
	UploadErr      *UploadError `json:"-"`
}

// Submit validates steps 1 and 3, persists the profile, uploads staged photos and
// refreshes the session, in that order. Photo upload is best effort once the
// profile is saved.
func (c *Controller) Submit(ctx context.Context) (*SubmitResult, error) {
	if c.submitting {
		return nil, ErrSubmitInProgress
	}
	if c.submitted {
		return nil, ErrAlreadySubmitted
	}
	for _, index := range []int{1, 3} {
		if verr := c.checkStep(index); verr != nil {
			c.step = index
			c.notifier.ScrollToTop()
			return nil, verr
		}
	}

	c.submitting = true
	defer func() {
		c.submitting = false
		c.setStatus(false, "")
	}()

	c.setStatus(true, statusPreparing)
	payload := c.Serialize()
	pending := c.photos.Pending()
	kept := keptPhotos(c.photos.Entries())
	photosChanged := len(pending) > 0 || !slices.Equal(kept, c.storedPhotos)
	logger := c.logger.With(zap.String("userID", c.session.CurrentUser().ID), zap.Bool("editMode", c.editMode))

	var err error
	if c.editMode {
		c.setStatus(true, statusUpdating)
		err = c.store.Update(ctx, payload)
	} else {
		c.setStatus(true, statusCreating)
		err = c.store.Create(ctx, payload)
	}
	if err != nil {
		logger.Error("failed to save profile", zap.Error(err))
		perr := &PersistenceError{Err: err}
		c.errMsg = perr.Error()
		c.notifier.ScrollToTop()
		return nil, perr
	}

	res := &SubmitResult{Created: !c.editMode}
	if photosChanged {
		if len(pending) > 0 {
			c.setStatus(true, fmt.Sprintf("Uploading %d photo(s)...", len(pending)))
		} else {
			c.setStatus(true, statusPhotos)
		}
		if err := c.store.UploadPhotos(ctx, kept, toUploads(pending)); err != nil {
			res.UploadErr = &UploadError{Count: len(pending), Err: err}
			logger.Warn("profile saved but photos were not updated",
				zap.Int("uploads", len(pending)), zap.Int("kept", len(kept)), zap.Error(err))
			if len(pending) > 0 {
				c.notifier.Alert(uploadFailedAlert)
			} else {
				c.notifier.Alert(photosFailedAlert)
			}
		} else {
			res.PhotosUploaded = len(pending)
			c.storedPhotos = kept
		}
	}

	c.setStatus(true, statusFinalizing)
	if err := c.session.RefreshSession(ctx); err != nil {
		logger.Warn("failed to refresh session after submit", zap.Error(err))
	}

	c.submitted = true
	c.editMode = true
	logger.Info("profile submitted", zap.Bool("created", res.Created), zap.Int("photosUploaded", res.PhotosUploaded))
	return res, nil
}

func toUploads(entries []photos.Entry) []models.PhotoUpload {
	out := make([]models.PhotoUpload, 0, len(entries))
	for _, e := range entries {
		out = append(out, models.PhotoUpload{
			Filename:    e.File.Name,
			ContentType: e.File.ContentType,
			Data:        e.File.Data,
			IsPrimary:   e.IsPrimary,
		})
	}
	return out
}

// keptPhotos lists the already stored entries in display order.
func keptPhotos(entries []photos.Entry) []models.PhotoRef {
	var out []models.PhotoRef
	for _, e := range entries {
		if e.Pending() {
			continue
		}
		out = append(out, models.PhotoRef{PublicID: e.PublicID, URL: e.DisplayURL, IsPrimary: e.IsPrimary})
	}
	return out
}
