package preview

import (
	"bytes"
	"fmt"
	"image"
	"net/http"
	"strings"

	"github.com/chai2010/webp"
	"github.com/disintegration/imaging"
)

// ThumbnailSide is the default bounding box for rendered thumbnails.
const ThumbnailSide = 320

// Thumbnail renders a JPEG that fits inside a side x side box, keeping aspect ratio.
func Thumbnail(b *Blob, side int) ([]byte, error) {
	img, err := decodeImage(b)
	if err != nil {
		return nil, err
	}
	if side <= 0 {
		side = ThumbnailSide
	}
	img = imaging.Fit(img, side, side, imaging.Lanczos)

	var buf bytes.Buffer
	if err := imaging.Encode(&buf, img, imaging.JPEG, imaging.JPEGQuality(80)); err != nil {
		return nil, fmt.Errorf("preview: failed to encode thumbnail: %w", err)
	}
	return buf.Bytes(), nil
}

func decodeImage(b *Blob) (image.Image, error) {
	if b == nil || len(b.Data) == 0 {
		return nil, fmt.Errorf("preview: empty image")
	}
	ct := b.ContentType
	if ct == "" {
		ct = http.DetectContentType(b.Data)
	}
	if strings.Contains(ct, "webp") {
		img, err := webp.Decode(bytes.NewReader(b.Data))
		if err != nil {
			return nil, fmt.Errorf("preview: failed to decode webp: %w", err)
		}
		return img, nil
	}
	img, err := imaging.Decode(bytes.NewReader(b.Data), imaging.AutoOrientation(true))
	if err != nil {
		return nil, fmt.Errorf("preview: failed to decode image: %w", err)
	}
	return img, nil
}
