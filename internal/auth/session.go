package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Sessions exchanges a verified PIN for a short-lived HMAC-signed token and
// validates tokens on later requests.
type Sessions struct {
	verifier Verifier
	secret   []byte
	ttl      time.Duration
	now      func() time.Time
}

// ErrBadPIN is returned when the presented PIN does not verify.
var ErrBadPIN = errors.New("incorrect PIN")

// NewSessions creates a session issuer.
func NewSessions(verifier Verifier, secret string, ttl time.Duration) *Sessions {
	if ttl <= 0 {
		ttl = 8 * time.Hour
	}
	return &Sessions{verifier: verifier, secret: []byte(secret), ttl: ttl, now: time.Now}
}

// WithNow overrides the clock, for tests.
func (s *Sessions) WithNow(now func() time.Time) *Sessions {
	s.now = now
	return s
}

// Login verifies the PIN and issues a session token.
func (s *Sessions) Login(pin string) (string, error) {
	if !s.verifier.Verify(pin) {
		return "", ErrBadPIN
	}
	now := s.now()
	claims := jwt.RegisteredClaims{
		Subject:   "dashboard",
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("auth: sign session token: %w", err)
	}
	return token, nil
}

// Validate parses and checks a session token.
func (s *Sessions) Validate(tokenString string) error {
	claims := jwt.RegisteredClaims{}
	token, err := jwt.ParseWithClaims(tokenString, &claims, func(token *jwt.Token) (any, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}
		return s.secret, nil
	}, jwt.WithTimeFunc(s.now))
	if err != nil {
		return fmt.Errorf("auth: invalid session token: %w", err)
	}
	if !token.Valid {
		return errors.New("auth: invalid session token")
	}
	return nil
}
