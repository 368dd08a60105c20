// Package security inspects auth tokens issued by the Klubraum API.
package security

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

var (
	// ErrNotJWT is returned when a token is not a parseable JWT. Klubraum tokens are
	// opaque to the client, so this is an expected outcome, not a failure.
	ErrNotJWT = errors.New("token is not a JWT")
)

// TokenClaims is the subset of registered claims the client reads.
type TokenClaims struct {
	Subject   string
	IssuedAt  time.Time
	ExpiresAt time.Time
}

// InspectToken decodes the registered claims of token without verifying its signature.
// The client holds no key for the server's tokens; the result is informational only
// and must never be used to make an authorization decision.
func InspectToken(token string) (*TokenClaims, error) {
	var claims jwt.RegisteredClaims
	if _, _, err := jwt.NewParser().ParseUnverified(token, &claims); err != nil {
		return nil, ErrNotJWT
	}
	out := &TokenClaims{Subject: claims.Subject}
	if claims.IssuedAt != nil {
		out.IssuedAt = claims.IssuedAt.Time.UTC()
	}
	if claims.ExpiresAt != nil {
		out.ExpiresAt = claims.ExpiresAt.Time.UTC()
	}
	return out, nil
}

// TokenExpiry returns the exp claim of token, or false when the token is not a JWT or carries no exp.
func TokenExpiry(token string) (time.Time, bool) {
	claims, err := InspectToken(token)
	if err != nil || claims.ExpiresAt.IsZero() {
		return time.Time{}, false
	}
	return claims.ExpiresAt, true
}
