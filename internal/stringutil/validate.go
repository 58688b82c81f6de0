package stringutil

import "regexp"

var (
	statusCodeRegex = regexp.MustCompile(`^(\d{3}|\dXX|default)$`)
	componentKey    = regexp.MustCompile(`^[a-zA-Z0-9._-]+$`)
)

// IsValidStatusKey reports whether s is a valid responses-map key: a concrete
// three-digit status code, a wildcard range like "2XX", or "default".
func IsValidStatusKey(s string) bool {
	return statusCodeRegex.MatchString(s)
}

// IsValidComponentKey reports whether s is a legal component map key.
func IsValidComponentKey(s string) bool {
	return componentKey.MatchString(s)
}
