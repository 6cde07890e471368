package domain

import "errors"

var (
	// ErrNotFound indicates the requested entry does not exist.
	ErrNotFound = errors.New("entry not found")

	// ErrExpired indicates the entry exists but is past its expiry.
	ErrExpired = errors.New("entry expired")

	// Validation failures, surfaced to the caller with their reason.
	ErrInvalidURL        = errors.New("invalid url")
	ErrUnsupportedScheme = errors.New("unsupported url scheme")
	ErrCodeLength        = errors.New("short code length out of range")
	ErrCodeCharset       = errors.New("short code contains invalid characters")
	ErrCodeTaken         = errors.New("short code already taken")

	// Internal-consistency failures from the entry store. These should never
	// surface given prior validation.
	ErrDuplicateID   = errors.New("duplicate entry id")
	ErrDuplicateCode = errors.New("duplicate short code")

	// ErrGenerationExhausted indicates the generator could not find a free
	// code within its attempt bound.
	ErrGenerationExhausted = errors.New("short code space exhausted")
)

// IsNotFound reports whether err is a not-found condition.
func IsNotFound(err error) bool { return errors.Is(err, ErrNotFound) }

// IsExpired reports whether err indicates an expired entry.
func IsExpired(err error) bool { return errors.Is(err, ErrExpired) }

// IsValidation reports whether err is a validation failure the caller can fix.
func IsValidation(err error) bool {
	return errors.Is(err, ErrInvalidURL) ||
		errors.Is(err, ErrUnsupportedScheme) ||
		errors.Is(err, ErrCodeLength) ||
		errors.Is(err, ErrCodeCharset) ||
		errors.Is(err, ErrCodeTaken)
}
