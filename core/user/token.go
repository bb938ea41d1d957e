package user

import (
	"time"

	"github.com/dgrijalva/jwt-go"
)

// TokenExpired reports whether tok is a JWT whose exp claim has already
// passed. The signature is not verified: the check only decides whether a
// persisted token is worth presenting to the backend at all. Opaque or
// claim-less tokens are never reported expired.
func TokenExpired(tok string) bool {
	var claims jwt.StandardClaims
	if _, _, err := new(jwt.Parser).ParseUnverified(tok, &claims); err != nil {
		return false
	}
	return claims.ExpiresAt > 0 && time.Now().Unix() >= claims.ExpiresAt
}
