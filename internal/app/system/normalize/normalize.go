// Package normalize trims and case-folds caller-supplied strings before
// they are stored or compared.
package normalize

import "strings"

// Email lowercases and trims an email address. Both sides of every
// email comparison in the platform go through this first.
func Email(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// Name trims a display name, preserving case.
func Name(s string) string {
	return strings.TrimSpace(s)
}

// QueryParam trims a raw query parameter value.
func QueryParam(s string) string {
	return strings.TrimSpace(s)
}
