// internal/app/system/normalize/normalize.go

// Package normalize canonicalizes user-supplied identity fields before
// they are validated or stored. Every handler that writes one of these
// fields goes through here so lookups never miss on case or whitespace.
package normalize

import "strings"

// Email lowercases and trims an email address.
func Email(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// Name trims a display name. Case is preserved; case-insensitive
// matching uses the folded companion field on the document.
func Name(s string) string {
	return strings.TrimSpace(s)
}

// Role lowercases and trims a role value.
func Role(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// Status lowercases and trims a status value.
func Status(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}
