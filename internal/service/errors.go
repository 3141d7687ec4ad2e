package service

import "errors"

// Sentinel errors for the request-level failure taxonomy. Handlers map these
// to HTTP statuses; anything not in this list is an internal error.
var (
	ErrInvalidMedia       = errors.New("unsupported image type")
	ErrInvalidEmail       = errors.New("a valid email is required")
	ErrWeakPassword       = errors.New("password must be at least 4 characters")
	ErrPayloadTooLarge    = errors.New("image exceeds the maximum allowed size")
	ErrEmptySelection     = errors.New("at least one ingredient is required")
	ErrUpstreamParse      = errors.New("model returned an unusable response")
	ErrUpstreamTimeout    = errors.New("model request timed out")
	ErrDuplicateEmail     = errors.New("email is already registered")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrNotAuthenticated   = errors.New("authentication required")
	ErrNotFound           = errors.New("recipe not found")
	ErrInvalidRating      = errors.New("rating must be between 1 and 5")
)
