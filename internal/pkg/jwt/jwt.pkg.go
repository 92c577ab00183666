package jwt

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

var ErrTokenExpired = errors.New("token expired")

// TokenClaims is what the terminal needs from a backend-issued token.
type TokenClaims struct {
	Subject   string
	Role      string
	ExpiresAt *time.Time
}

// Inspect reads the claims of a billing backend token. With a secret the
// HMAC signature is verified; without one the backend stays the authority
// and the token is only decoded.
func Inspect(token string, secret string) (*TokenClaims, error) {
	claims := jwt.MapClaims{}

	if secret != "" {
		parsed, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (interface{}, error) {
			if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
			}
			return []byte(secret), nil
		})
		if err != nil {
			if errors.Is(err, jwt.ErrTokenExpired) {
				return nil, ErrTokenExpired
			}
			return nil, err
		}
		if !parsed.Valid {
			return nil, fmt.Errorf("invalid token")
		}
	} else {
		if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
			return nil, err
		}
	}

	out := &TokenClaims{}
	out.Subject, _ = claims.GetSubject()
	if role, ok := claims["role"].(string); ok {
		out.Role = role
	}
	exp, err := claims.GetExpirationTime()
	if err != nil {
		return nil, err
	}
	if exp != nil {
		t := exp.Time
		out.ExpiresAt = &t
		if secret == "" && t.Before(time.Now()) {
			return nil, ErrTokenExpired
		}
	}

	return out, nil
}

// Sign issues an HMAC token; used by tests and local tooling that stand in
// for the billing backend.
func Sign(subject, role, secret string, ttl time.Duration) (string, error) {
	claims := jwt.MapClaims{
		"sub":  subject,
		"role": role,
		"exp":  time.Now().Add(ttl).Unix(),
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
}
