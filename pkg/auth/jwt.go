package auth

import (
	"net/http"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/rs/zerolog"
)

// JWT wraps a pre-obtained bearer token as a static Authorization header.
// No network negotiation takes place.
type JWT struct {
	token     string
	expiresAt *time.Time
	logger    zerolog.Logger
}

// NewJWT returns a bearer-token authenticator. When the token parses as a
// JWT, its expiry claim is inspected and an already-expired token is warned
// about once at construction; opaque tokens are passed through untouched.
func NewJWT(token string, logger *zerolog.Logger) *JWT {
	l := zerolog.Nop()
	if logger != nil {
		l = *logger
	}
	j := &JWT{token: token, logger: l}

	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err == nil {
		if exp, err := claims.GetExpirationTime(); err == nil && exp != nil {
			t := exp.Time
			j.expiresAt = &t
			if time.Now().After(t) {
				l.Warn().Time("expiredAt", t).Msg("bearer token is already expired")
			}
		}
	}
	return j
}

// ExpiresAt returns the token's expiry claim, or nil when the token is
// opaque or carries no expiry.
func (j *JWT) ExpiresAt() *time.Time {
	return j.expiresAt
}

func (j *JWT) Authenticate(req *http.Request) error {
	req.Header.Set("Authorization", "Bearer "+j.token)
	return nil
}
