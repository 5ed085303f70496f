// Package auth inspects bearer credentials issued by the storefront API.
package auth

import (
	"time"

	"storefront/internal/domain/service"

	"github.com/golang-jwt/jwt/v5"
)

// jwtInspector reads claims without verifying signatures; the API remains the authority.
type jwtInspector struct {
	parser *jwt.Parser
	now    func() time.Time
	leeway time.Duration
}

// NewJWTInspector is the constructor for the token inspector.
func NewJWTInspector() service.TokenInspector {
	return &jwtInspector{
		parser: jwt.NewParser(),
		now:    time.Now,
		leeway: 30 * time.Second,
	}
}

// Expired reports whether token is a JWT whose exp claim lies in the past.
// Opaque tokens and tokens without exp are never considered expired.
func (i *jwtInspector) Expired(token string) bool {
	claims := jwt.MapClaims{}
	if _, _, err := i.parser.ParseUnverified(token, claims); err != nil {
		return false
	}

	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return false
	}

	return i.now().After(exp.Add(i.leeway))
}
