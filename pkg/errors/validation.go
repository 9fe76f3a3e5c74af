package errors

import (
	"strings"
	"unicode"
)

// maxIDLength bounds node identifiers. Backends key nodes by repository
// relative path, so anything longer is almost certainly corrupt input.
const maxIDLength = 4096

// ValidateNodeID checks that a node identifier is usable as a graph key.
//
// The rules are deliberately loose because ids are opaque paths:
//   - No empty ids
//   - No control characters (they break terminal and SVG output)
//   - Maximum length of 4096 bytes
func ValidateNodeID(id string) error {
	if strings.TrimSpace(id) == "" {
		return New(ErrCodeInvalidGraph, "node id cannot be empty")
	}
	if len(id) > maxIDLength {
		return New(ErrCodeInvalidGraph, "node id too long (max %d bytes)", maxIDLength)
	}
	for _, r := range id {
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidGraph, "node id %q contains control characters", id)
		}
	}
	return nil
}

// ValidateFormat checks that an output format name is one of allowed.
// Comparison is case-sensitive, matching the CLI flag values.
func ValidateFormat(format string, allowed []string) error {
	for _, a := range allowed {
		if format == a {
			return nil
		}
	}
	return New(ErrCodeInvalidFormat, "invalid format: %q (must be one of %s)", format, strings.Join(allowed, ", "))
}
