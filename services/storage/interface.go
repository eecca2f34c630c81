package storage

import (
	"context"
)

// UploadedImage identifies a stored image.
type UploadedImage struct {
	PublicID string
	URL      string
}

// ImageStorage stores profile photos.
type ImageStorage interface {
	// UploadImage stores data under folder and returns its permanent identifier and URL.
	UploadImage(ctx context.Context, data []byte, folder, filename string) (*UploadedImage, error)
	// DeleteImage removes a stored image by public ID.
	DeleteImage(ctx context.Context, publicID string) error
}
