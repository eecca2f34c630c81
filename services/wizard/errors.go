package wizard

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrNotApplicable    = errors.New("profile wizard is not available for this account")
	ErrUnknownField     = errors.New("unknown profile field")
	ErrNotASetField     = errors.New("field does not hold a set of values")
	ErrSubmitInProgress = errors.New("submission already in progress")
	ErrAlreadySubmitted = errors.New("profile already submitted")
	ErrSessionNotFound  = errors.New("wizard session not found")
)

// ValidationError names every required field missing at a step boundary.
type ValidationError struct {
	Step    int
	Missing []string
}

func (e *ValidationError) Error() string {
	return "Please fill in the required fields: " + strings.Join(e.Missing, ", ")
}

// PersistenceError wraps a failed create/update. Its message is shown to the user as-is.
type PersistenceError struct {
	Err error
}

func (e *PersistenceError) Error() string {
	return e.Err.Error()
}

func (e *PersistenceError) Unwrap() error {
	return e.Err
}

// UploadError reports photos that could not be uploaded after the profile was saved.
type UploadError struct {
	Count int
	Err   error
}

func (e *UploadError) Error() string {
	return fmt.Sprintf("failed to upload %d photo(s): %v", e.Count, e.Err)
}

func (e *UploadError) Unwrap() error {
	return e.Err
}
