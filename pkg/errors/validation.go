package errors

import (
	"unicode"
	"unicode/utf8"
)

// MaxPayloadBytes is the byte-mode capacity of a version 40 symbol at the
// lowest recovery level. Longer payloads can never be encoded.
const MaxPayloadBytes = 2953

// ValidatePayload checks that a payload is non-empty and fits into the
// largest QR symbol. Higher recovery levels have less capacity; the encoder
// reports those failures with ErrCodeEncode.
func ValidatePayload(payload []byte) error {
	if len(payload) == 0 {
		return New(ErrCodeInvalidInput, "payload cannot be empty")
	}
	if len(payload) > MaxPayloadBytes {
		return New(ErrCodeInvalidInput, "payload too long (%d bytes, max %d)", len(payload), MaxPayloadBytes)
	}
	return nil
}

// ValidatePath validates a user-supplied file path (overlay images, output files).
//
// Validation rules:
//   - Path cannot be empty
//   - Maximum length of 500 characters
//   - No null bytes or control characters
//   - Must be valid UTF-8
func ValidatePath(path string) error {
	if path == "" {
		return New(ErrCodeInvalidPath, "path cannot be empty")
	}

	const maxPathLength = 500
	if len(path) > maxPathLength {
		return New(ErrCodeInvalidPath, "path too long (max %d characters)", maxPathLength)
	}

	if !utf8.ValidString(path) {
		return New(ErrCodeInvalidPath, "path is not valid UTF-8")
	}

	for _, r := range path {
		if r == '\x00' || unicode.IsControl(r) {
			return New(ErrCodeInvalidPath, "path contains invalid characters")
		}
	}

	return nil
}
