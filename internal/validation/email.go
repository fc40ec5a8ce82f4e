package validation

import "regexp"

// EmailPattern defines the accepted local@domain.tld shape.
// Comparison elsewhere is case-sensitive; the pattern only checks shape.
var EmailPattern = regexp.MustCompile(`^[a-zA-Z0-9_.+-]+@[a-zA-Z0-9-]+\.[a-zA-Z0-9-.]+$`)

// ValidEmail reports whether email matches the basic address shape.
func ValidEmail(email string) bool {
	return EmailPattern.MatchString(email)
}
