// Package tokeninfo reads display-only details out of an access token.
//
// Claims are decoded without verifying the signature: the client never holds
// the signing key and never uses the result to decide whether a session is valid.
package tokeninfo

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// ErrOpaqueToken is returned when the token is not a JWT.
var ErrOpaqueToken = errors.New("token is not a JWT")

// Info is what a token says about itself.
// Fields are ordered to minimize memory padding.
type Info struct {
	ExpiresAt time.Time // zero when the token has no exp claim
	IssuedAt  time.Time
	Subject   string
}

// Inspect decodes the registered claims of token.
func Inspect(token string) (Info, error) {
	var claims jwt.RegisteredClaims
	if _, _, err := jwt.NewParser().ParseUnverified(token, &claims); err != nil {
		return Info{}, ErrOpaqueToken
	}

	info := Info{Subject: claims.Subject}
	if claims.ExpiresAt != nil {
		info.ExpiresAt = claims.ExpiresAt.Time
	}
	if claims.IssuedAt != nil {
		info.IssuedAt = claims.IssuedAt.Time
	}
	return info, nil
}

// Expired reports whether the token claims to have expired at now.
func (i Info) Expired(now time.Time) bool {
	return !i.ExpiresAt.IsZero() && !now.Before(i.ExpiresAt)
}

// Remaining returns the time left before expiry, or 0.
func (i Info) Remaining(now time.Time) time.Duration {
	if i.ExpiresAt.IsZero() || i.Expired(now) {
		return 0
	}
	return i.ExpiresAt.Sub(now)
}
