package errors

import (
	"strings"
	"unicode"
)

// maxCaptionLength bounds captions accepted from outside the process
// (HTTP API, card scripts). Real captions are a few dozen characters.
const maxCaptionLength = 1024

// ValidateName validates a preset or command name for safety.
//
// The validation rules are intentionally conservative:
//   - No empty names
//   - Maximum length of 64 characters
//   - Only lowercase ASCII letters, digits, dashes and underscores
func ValidateName(name string) error {
	if name == "" {
		return New(ErrCodeInvalidInput, "name cannot be empty")
	}

	if len(name) > 64 {
		return New(ErrCodeInvalidInput, "name too long (max 64 characters)")
	}

	for _, r := range name {
		if !(r >= 'a' && r <= 'z' || r >= '0' && r <= '9' || r == '-' || r == '_') {
			return New(ErrCodeInvalidInput, "name contains invalid character %q", r)
		}
	}

	return nil
}

// ValidateCaption validates caption text received from an untrusted source.
// Newlines and tabs are allowed; other control characters and null bytes
// are rejected.
func ValidateCaption(caption string) error {
	if len(caption) > maxCaptionLength {
		return New(ErrCodeInvalidInput, "caption too long (max %d bytes)", maxCaptionLength)
	}

	for _, r := range caption {
		if r == '\n' || r == '\t' {
			continue
		}
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidInput, "caption contains invalid control characters")
		}
	}

	return nil
}

// ValidateURL validates a URL string for safety.
// It ensures the URL has a safe scheme (http or https).
func ValidateURL(rawURL string) error {
	if rawURL == "" {
		return New(ErrCodeInvalidInput, "URL cannot be empty")
	}

	// Simple scheme validation without full URL parsing
	if !strings.HasPrefix(rawURL, "http://") && !strings.HasPrefix(rawURL, "https://") {
		return New(ErrCodeInvalidInput, "URL must use http or https scheme")
	}

	return nil
}
