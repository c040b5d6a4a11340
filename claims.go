package shippin

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// TokenClaims is the subset of backend token claims the client surfaces for
// display. The token itself stays opaque: the client has no signing key, so
// claims are decoded without verification and must never be used to grant
// anything locally.
type TokenClaims struct {
	Subject   string
	ExpiresAt *time.Time
	IssuedAt  *time.Time
}

// PeekClaims decodes the claims carried by a backend-issued token.
func PeekClaims(token string) (*TokenClaims, error) {
	claims := jwt.MapClaims{}
	parser := jwt.NewParser()

	if _, _, err := parser.ParseUnverified(token, claims); err != nil {
		return nil, ErrUnableToDecodeToken
	}

	out := &TokenClaims{}

	if sub, err := claims.GetSubject(); err == nil {
		out.Subject = sub
	}

	if exp, err := claims.GetExpirationTime(); err == nil && exp != nil {
		t := exp.Time
		out.ExpiresAt = &t
	}

	if iat, err := claims.GetIssuedAt(); err == nil && iat != nil {
		t := iat.Time
		out.IssuedAt = &t
	}

	return out, nil
}

// TokenExpired reports whether the token's exp claim is in the past. Tokens
// without a decodable exp claim are treated as live; the server is the final
// authority either way.
func TokenExpired(token string, now time.Time) bool {
	claims, err := PeekClaims(token)
	if err != nil || claims.ExpiresAt == nil {
		return false
	}
	return claims.ExpiresAt.Before(now)
}
