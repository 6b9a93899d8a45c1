package entity

import "errors"

// Validation errors surfaced to clients as HTTP 400. The messages are part
// of the API contract, so they read exactly as clients see them.
var (
	ErrEmptyText   = errors.New("Text is empty")
	ErrEmptyPrompt = errors.New("Prompt is empty")
	ErrMissingFile = errors.New("Upload image with form-data key: file")
	ErrNoFilename  = errors.New("No selected file")
)

// IsInvalidInput reports whether err is a recoverable validation error
// rather than a collaborator fault.
func IsInvalidInput(err error) bool {
	return errors.Is(err, ErrEmptyText) ||
		errors.Is(err, ErrEmptyPrompt) ||
		errors.Is(err, ErrMissingFile) ||
		errors.Is(err, ErrNoFilename)
}
