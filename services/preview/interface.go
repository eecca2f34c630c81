package preview

import (
	"context"
	"errors"
)

// PathPrefix is the route the preview handler is mounted on.
const PathPrefix = "/api/previews/"

// ErrUnknownHandle is returned for handles that were never acquired or are already released.
var ErrUnknownHandle = errors.New("preview: unknown handle")

// Handle references staged bytes that have not been uploaded yet.
type Handle string

// URL is the display URL a client renders the preview from.
func (h Handle) URL() string {
	return PathPrefix + string(h)
}

// Blob is the staged content behind a handle.
type Blob struct {
	Data        []byte
	ContentType string
}

// Store allocates and releases transient preview handles. Every Acquire must be
// matched by exactly one Release.
type Store interface {
	Acquire(ctx context.Context, data []byte, contentType string) (Handle, error)
	Release(ctx context.Context, h Handle) error
	Open(ctx context.Context, h Handle) (*Blob, error)
}
