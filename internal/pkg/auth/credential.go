// Package auth provides client-side inspection of the bearer credential.
//
// The credential is opaque to the client: it is obtained from the backend's
// OAuth redirect and replayed verbatim. The backend happens to issue JWTs,
// which lets the client peek at the exp claim and discard a credential that
// is already expired without spending a network round trip on it. The
// signature is never verified here; only the server can do that, and the
// server remains the authority on whether a credential is accepted.
package auth

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Expired reports whether the credential is a JWT whose expiry has passed.
// A credential that does not parse as a JWT, or carries no exp claim, is
// reported as not expired: the client cannot conclude anything about an
// opaque token and must let the server decide.
func Expired(credential string, now time.Time) bool {
	parser := jwt.NewParser()

	claims := jwt.MapClaims{}
	if _, _, err := parser.ParseUnverified(credential, claims); err != nil {
		return false
	}

	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return false
	}

	return exp.Before(now)
}
