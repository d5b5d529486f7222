package permissions

import "strings"

// Command identifiers are dotted paths, e.g. "config.levels.set". A segment
// inherits the required level of its parent when it has no entry of its own.

// Normalize lowercases an identifier and strips stray whitespace and dots.
func Normalize(identifier string) string {
	return strings.Trim(strings.ToLower(strings.TrimSpace(identifier)), ".")
}

// ParentOf returns the identifier with its last segment removed, or the empty
// string when the identifier has no parent.
func ParentOf(identifier string) string {
	i := strings.LastIndex(identifier, ".")
	if i < 0 {
		return ""
	}
	return identifier[:i]
}
