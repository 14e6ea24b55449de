package token

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"haramaya.com/pharmatrack/pkg/apperror"
)

// Issuer signs and verifies the bearer tokens handed out at login. The secret
// and lifetime are fixed at construction; there is no per-call override and
// no revocation list, expiry is the only cancellation mechanism.
type Issuer struct {
	secret []byte
	ttl    time.Duration
}

func NewIssuer(secret string, ttl time.Duration) *Issuer {
	return &Issuer{
		secret: []byte(secret),
		ttl:    ttl,
	}
}

func (i *Issuer) TTL() time.Duration {
	return i.ttl
}

// Issue produces a signed HS256 token with the user ID as subject.
func (i *Issuer) Issue(userID string) (string, time.Time, error) {
	expiresAt := time.Now().Add(i.ttl)

	claims := jwt.RegisteredClaims{
		Subject:   userID,
		IssuedAt:  jwt.NewNumericDate(time.Now()),
		ExpiresAt: jwt.NewNumericDate(expiresAt),
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(i.secret)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("failed to sign token: %w", err)
	}

	return signed, expiresAt, nil
}

// Verify parses and validates a token, returning the embedded user ID.
// Malformed, mis-signed and expired tokens all surface as ErrUnauthenticated.
func (i *Issuer) Verify(tokenString string) (string, error) {
	parsed, err := jwt.ParseWithClaims(tokenString, &jwt.RegisteredClaims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return i.secret, nil
	})
	if err != nil || !parsed.Valid {
		return "", apperror.ErrUnauthenticated
	}

	claims, ok := parsed.Claims.(*jwt.RegisteredClaims)
	if !ok || claims.Subject == "" {
		return "", apperror.ErrUnauthenticated
	}

	return claims.Subject, nil
}
