// Package redact removes credentials from strings before they are logged.
// Backend and Redis errors routinely embed request URLs, and those URLs may
// carry user info or tokens.
package redact

import (
	"net/url"
	"regexp"
)

// Placeholders substituted for matched secrets.
const (
	RedactedCredentialPlaceholder = "[REDACTED_CREDENTIAL]"
	RedactedKeyPlaceholder        = "[REDACTED_KEY]"
	RedactedJWTPlaceholder        = "[REDACTED_JWT]"
)

type rule struct {
	pattern     *regexp.Regexp
	replacement string
}

// Rules run in order. The JWT rule comes first so that a bearer token is
// reported as a JWT rather than a generic key.
var rules = []rule{
	{
		// Three base64url segments, the first two starting with an encoded '{"'.
		pattern:     regexp.MustCompile(`eyJ[a-zA-Z0-9_-]+\.eyJ[a-zA-Z0-9_-]+\.[a-zA-Z0-9_-]+`),
		replacement: RedactedJWTPlaceholder,
	},
	{
		// user:password@ in any URL.
		pattern:     regexp.MustCompile(`(?i)\b([a-z][a-z0-9+.-]*://)[^/\s@]+@`),
		replacement: "${1}" + RedactedCredentialPlaceholder + "@",
	},
	{
		pattern:     regexp.MustCompile(`(?i)\b(password|passwd|pwd)([=:]\s*['"]?)[^'"&\s]{3,}`),
		replacement: "${1}${2}" + RedactedCredentialPlaceholder,
	},
	{
		pattern:     regexp.MustCompile(`(?i)\b(api[_-]?key|token|secret|access_token|jwt_secret)(['"]?\s*[:=]\s*['"]?)[A-Za-z0-9_\-.~+/]{8,}`),
		replacement: "${1}${2}" + RedactedKeyPlaceholder,
	},
	{
		pattern:     regexp.MustCompile(`(?i)\b(bearer\s+)[A-Za-z0-9_\-.~+/]{8,}=*`),
		replacement: "${1}" + RedactedKeyPlaceholder,
	},
}

// String redacts credentials from input.
func String(input string) string {
	if input == "" {
		return input
	}
	result := input
	for _, r := range rules {
		result = r.pattern.ReplaceAllString(result, r.replacement)
	}
	return result
}

// Error redacts credentials from an error's Error() output.
func Error(err error) string {
	if err == nil {
		return ""
	}
	return String(err.Error())
}

// URL returns raw with its user info replaced, for logging configured
// endpoints. Unparseable input is redacted as a plain string.
func URL(raw string) string {
	u, err := url.Parse(raw)
	if err != nil {
		return String(raw)
	}
	return String(u.Redacted())
}
