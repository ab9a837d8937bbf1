package errors

import (
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"
)

// maxKeyLength is the longest accepted identifier, in characters.
const maxKeyLength = 128

// hexColorRegex matches a 6-digit hex color with an optional leading '#'.
var hexColorRegex = regexp.MustCompile(`^#?[0-9A-Fa-f]{6}$`)

// ValidateHexColor checks that color is a 6-digit hex value such as "4472C4"
// or "#4472c4".
func ValidateHexColor(color string) error {
	if !hexColorRegex.MatchString(color) {
		return New(ErrCodeInvalidInput, "invalid hex color: %q", color)
	}
	return nil
}

// SanitizeHex normalizes color to upper-case hex without '#'. Invalid or
// empty input yields fallback.
func SanitizeHex(color, fallback string) string {
	if color == "" || ValidateHexColor(color) != nil {
		return fallback
	}
	return strings.ToUpper(strings.TrimPrefix(color, "#"))
}

// ValidateKey validates an author-supplied identifier (shape id, lane id).
//
// The rules are conservative:
//   - No empty keys
//   - No control characters
//   - Maximum length of 128 characters (runes, not bytes)
func ValidateKey(key string) error {
	if strings.TrimSpace(key) == "" {
		return New(ErrCodeInvalidDefinition, "id cannot be empty")
	}
	if utf8.RuneCountInString(key) > maxKeyLength {
		return New(ErrCodeInvalidDefinition, "id too long (max %d characters)", maxKeyLength).WithSubjects(string([]rune(key)[:32]) + "...")
	}
	for _, r := range key {
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidDefinition, "id contains control characters").WithSubjects(key)
		}
	}
	return nil
}

// ValidatePath validates a definition or output path for safety.
//
// Validation rules:
//   - Path cannot be empty
//   - Maximum length of 500 characters
//   - No null bytes or control characters
func ValidatePath(path string) error {
	if path == "" {
		return New(ErrCodeInvalidPath, "path cannot be empty")
	}

	const maxPathLength = 500
	if len(path) > maxPathLength {
		return New(ErrCodeInvalidPath, "path too long (max %d characters)", maxPathLength)
	}

	for _, r := range path {
		if r == '\x00' || unicode.IsControl(r) {
			return New(ErrCodeInvalidPath, "path contains invalid characters")
		}
	}

	return nil
}
