package services

import (
	"net/url"
	"regexp"
	"strings"

	"shortlink/pkg/core/domain"
)

const (
	minCodeLength = 3
	maxCodeLength = 20
)

var codeRe = regexp.MustCompile(`^[A-Za-z0-9]+$`)

// validateLongURL checks that the destination is a well-formed absolute
// http or https URL.
func validateLongURL(raw string) error {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return domain.ErrInvalidURL
	}
	parsed, err := url.Parse(raw)
	if err != nil || !parsed.IsAbs() {
		return domain.ErrInvalidURL
	}
	if parsed.Scheme != "http" && parsed.Scheme != "https" {
		return domain.ErrUnsupportedScheme
	}
	if parsed.Host == "" {
		return domain.ErrInvalidURL
	}
	return nil
}

// validateCodeSyntax checks length and alphabet of a candidate short code.
// Uniqueness is checked separately against the live index.
func validateCodeSyntax(code string) error {
	if len(code) < minCodeLength || len(code) > maxCodeLength {
		return domain.ErrCodeLength
	}
	if !codeRe.MatchString(code) {
		return domain.ErrCodeCharset
	}
	return nil
}
