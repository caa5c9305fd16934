package utils

import "regexp"

// Syntactic shape check only: local part, "@", domain, ".", tld. Anything
// stricter belongs to a mail system, not an inventory server.
var emailPattern = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s.]+$`)

// ValidEmail reports whether email has the shape local@domain.tld.
func ValidEmail(email string) bool {
	return emailPattern.MatchString(email)
}
