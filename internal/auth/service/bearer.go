package service

import (
	"strings"

	authDomain "github.com/allisson/tenantguard/internal/auth/domain"
)

// bearerPrefix is the expected Authorization header scheme.
const bearerPrefix = "Bearer "

// ParseBearer extracts the credential from an "Authorization: Bearer <token>"
// header value.
//
// A missing header, a different scheme, or an empty token all return
// ErrNoBearerToken: the caller presented no credential, which is a distinct
// signal from presenting one that gets rejected.
func ParseBearer(header string) (string, error) {
	token, ok := strings.CutPrefix(header, bearerPrefix)
	if !ok {
		return "", authDomain.ErrNoBearerToken
	}
	token = strings.TrimSpace(token)
	if token == "" {
		return "", authDomain.ErrNoBearerToken
	}
	return token, nil
}
