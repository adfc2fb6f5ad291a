// Package auth resolves bearer tokens issued by the identity provider to the
// identity that owns detection records.
package auth

import "strings"

// BearerToken extracts the token from an Authorization header value.
// It returns "" when the header is missing or not a bearer credential.
func BearerToken(header string) string {
	scheme, token, ok := strings.Cut(strings.TrimSpace(header), " ")
	if !ok || !strings.EqualFold(scheme, "Bearer") {
		return ""
	}
	return strings.TrimSpace(token)
}
