package session

import (
	"errors"
	"time"

	jwt "github.com/golang-jwt/jwt/v5"
)

// tokenParser decodes claims without verifying the signature. The portal is
// not the token issuer; it only needs the embedded expiry to know whether a
// stored session is worth keeping. The backend re-verifies every request.
var tokenParser = jwt.NewParser()

// TokenExpiry extracts the exp claim from an access token.
func TokenExpiry(token string) (time.Time, error) {
	parsed, _, err := tokenParser.ParseUnverified(token, jwt.MapClaims{})
	if err != nil {
		return time.Time{}, err
	}
	exp, err := parsed.Claims.GetExpirationTime()
	if err != nil {
		return time.Time{}, err
	}
	if exp == nil {
		return time.Time{}, errors.New("token has no expiry claim")
	}
	return exp.Time, nil
}

// TokenValid reports whether the token's expiry lies in the future. Malformed
// tokens are invalid, never an error: the check fails closed.
func TokenValid(token string, now time.Time) bool {
	exp, err := TokenExpiry(token)
	if err != nil {
		return false
	}
	return exp.After(now)
}
