// Package normalize provides canonical forms for user-supplied identity
// fields so lookups and unique indexes behave consistently.
package normalize

import "strings"

// Email lowercases and trims an email address. Emails are the identity key
// for students, so every read and write must pass through this.
func Email(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// Name trims surrounding whitespace but preserves case.
func Name(s string) string {
	return strings.TrimSpace(s)
}

// Section trims a section label. Sections are matched exactly (case kept)
// because they come from a fixed picker, not free text.
func Section(s string) string {
	return strings.TrimSpace(s)
}
