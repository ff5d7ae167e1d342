// Package allowlist decides whether a signed-in email belongs to a member.
package allowlist

import "strings"

// NormalizeEmail trims and lower-cases an email. Empty input stays empty.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// SanitizeEmail turns a normalised email into a document ID by replacing
// every '.' with ','.
func SanitizeEmail(email string) string {
	return strings.ReplaceAll(NormalizeEmail(email), ".", ",")
}

// Kinds of allowlist document keys.
const (
	KeySanitized = "sanitized"
	KeyRaw       = "raw"
)

// Key is one allowlist document ID for an email.
type Key struct {
	ID   string
	Kind string
}

// Keys returns the canonical lookup keys for email: the sanitized form first,
// then the raw normalised form. Both are accepted because older projects
// were seeded with raw keys only.
func Keys(email string) []Key {
	normalized := NormalizeEmail(email)
	if normalized == "" {
		return nil
	}
	return []Key{
		{ID: SanitizeEmail(normalized), Kind: KeySanitized},
		{ID: normalized, Kind: KeyRaw},
	}
}
