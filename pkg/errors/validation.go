package errors

import (
	"regexp"
	"strings"
	"unicode"
)

// classNameRegex matches class names accepted by the cascade: a CSS-style
// identifier without the leading dot.
var classNameRegex = regexp.MustCompile(`^-?[A-Za-z_][A-Za-z0-9_-]*$`)

// ValidateClassName validates a style class name.
//
// The validation rules are intentionally conservative:
//   - No empty names
//   - Maximum length of 128 characters
//   - Identifier characters only (letters, digits, '_' and '-')
//   - Must not start with a digit
func ValidateClassName(name string) error {
	if name == "" {
		return New(ErrCodeInvalidInput, "class name cannot be empty")
	}

	if len(name) > 128 {
		return New(ErrCodeInvalidInput, "class name too long (max 128 characters)")
	}

	if !classNameRegex.MatchString(name) {
		return New(ErrCodeInvalidInput, "invalid class name: %q", name)
	}

	return nil
}

// ValidateNodePath validates a path-like node name before it is hashed into
// an id. Paths are dot-separated segments such as "app.div[2]".
//
// Validation rules:
//   - Path cannot be empty
//   - Maximum length of 1024 characters
//   - No control characters or null bytes
//   - No empty segments ("a..b", leading or trailing dots)
func ValidateNodePath(path string) error {
	if path == "" {
		return New(ErrCodeInvalidInput, "node path cannot be empty")
	}

	const maxPathLength = 1024
	if len(path) > maxPathLength {
		return New(ErrCodeInvalidInput, "node path too long (max %d characters)", maxPathLength)
	}

	for _, r := range path {
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidInput, "node path contains invalid control characters")
		}
	}

	for _, seg := range strings.Split(path, ".") {
		if seg == "" {
			return New(ErrCodeInvalidInput, "node path has an empty segment: %q", path)
		}
	}

	return nil
}
