package photos

import (
	"errors"
	"fmt"
)

var (
	ErrIndexOutOfRange = errors.New("photo index out of range")
	ErrClosed          = errors.New("photo staging is closed")
)

// CapacityError rejects a whole batch because no slots are left.
type CapacityError struct {
	Max int
}

func (e *CapacityError) Error() string {
	return fmt.Sprintf("you can upload a maximum of %d photos", e.Max)
}

// ReasonNotImage rejects a file whose content is not an image.
const ReasonNotImage = "not an image"

// TooLargeReason rejects a file above the per-file limit of max bytes.
func TooLargeReason(max int64) string {
	switch {
	case max >= 1<<20 && max%(1<<20) == 0:
		return fmt.Sprintf("larger than %dMB", max>>20)
	case max >= 1<<10 && max%(1<<10) == 0:
		return fmt.Sprintf("larger than %dKB", max>>10)
	default:
		return fmt.Sprintf("larger than %d bytes", max)
	}
}

// FileRejection reports one file that was skipped; the rest of the batch still applies.
type FileRejection struct {
	Name   string
	Reason string
}

func (e FileRejection) Error() string {
	return fmt.Sprintf("%s: %s", e.Name, e.Reason)
}
