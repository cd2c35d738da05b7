package domain

import "errors"

var (
	// ErrInvalidRequest is returned when request parameters are invalid
	ErrInvalidRequest = errors.New("invalid request parameters")

	// ErrProviderNotConfigured is returned when a provider credential is missing
	ErrProviderNotConfigured = errors.New("provider not configured")

	// ErrImageRejected is returned when the vision model judges the image unusable
	ErrImageRejected = errors.New("image rejected")

	// ErrContentBlocked is returned when the vision provider blocks the content
	ErrContentBlocked = errors.New("content blocked by provider safety policy")

	// ErrMalformedResponse is returned when a provider response cannot be parsed
	ErrMalformedResponse = errors.New("could not parse provider response")

	// ErrSearchProviderFailure is returned when the search API request fails
	ErrSearchProviderFailure = errors.New("search provider request failed")

	// ErrVisionProviderFailure is returned when the vision API request fails
	ErrVisionProviderFailure = errors.New("vision provider request failed")
)

// ImageValidationError carries the human-readable reason an image failed validation.
// It matches ErrImageRejected and, when set, the underlying cause.
type ImageValidationError struct {
	Reason string
	Err    error
}

func (e *ImageValidationError) Error() string {
	if e.Err != nil {
		return "image validation failed: " + e.Reason + ": " + e.Err.Error()
	}
	return "image validation failed: " + e.Reason
}

func (e *ImageValidationError) Unwrap() []error {
	if e.Err == nil {
		return []error{ErrImageRejected}
	}
	return []error{ErrImageRejected, e.Err}
}
