package domain

import (
	"regexp"
	"strings"
)

// studentIDPattern accepts 1–64 characters of letters, digits, dot,
// underscore and hyphen after normalization.
var studentIDPattern = regexp.MustCompile(`^[A-Z0-9._-]{1,64}$`)

// NormalizeStudentID trims surrounding whitespace and uppercases the
// identifier. Matching against existing enrollments and the in-batch
// duplicate set always uses the normalized form.
func NormalizeStudentID(id string) string {
	return strings.ToUpper(strings.TrimSpace(id))
}

// ValidStudentID reports whether a normalized student identifier is
// well-formed.
func ValidStudentID(id string) bool {
	return studentIDPattern.MatchString(id)
}
