package errors

import (
	"strings"
	"unicode"
)

// ValidateBoardName validates a board name used as a storage key.
// It rejects names that could be used for path traversal when the file
// backend maps names to files, or that would make awkward redis/mongo keys.
//
// The validation rules are intentionally conservative:
//   - No empty names
//   - No control characters
//   - No path separators or traversal sequences
//   - Maximum length of 128 characters
func ValidateBoardName(name string) error {
	if name == "" {
		return New(ErrCodeInvalidBoard, "board name cannot be empty")
	}

	if len(name) > 128 {
		return New(ErrCodeInvalidBoard, "board name too long (max 128 characters)")
	}

	for _, r := range name {
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidBoard, "board name contains control characters")
		}
	}

	dangerousPatterns := []string{
		"..",   // Parent directory
		"/",    // Path separator
		"\\",   // Backslash (Windows path)
		"\x00", // Null byte
	}

	for _, pattern := range dangerousPatterns {
		if strings.Contains(name, pattern) {
			return New(ErrCodeInvalidBoard, "board name contains invalid characters: %q", pattern)
		}
	}

	return nil
}

// ValidateWidgetID validates a widget identifier.
// IDs are caller-chosen opaque strings; only emptiness, control characters
// and excessive length are rejected.
func ValidateWidgetID(id string) error {
	if id == "" {
		return New(ErrCodeInvalidWidget, "widget id cannot be empty")
	}

	if len(id) > 256 {
		return New(ErrCodeInvalidWidget, "widget id too long (max 256 characters)")
	}

	for _, r := range id {
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidWidget, "widget id contains control characters")
		}
	}

	return nil
}

// ValidateConfig validates a grid configuration for operations that place
// widgets. Columns must be positive; gap must not be negative.
func ValidateConfig(columns, gap int) error {
	if columns <= 0 {
		return New(ErrCodeInvalidConfig, "columns must be positive, got %d", columns)
	}
	if gap < 0 {
		return New(ErrCodeInvalidConfig, "gap cannot be negative, got %d", gap)
	}
	return nil
}
