// Package auth gates the receptionist dashboard.
package auth

import (
	"crypto/subtle"
	"strings"
)

// Verifier checks a dashboard access credential. The comparison value is
// injected configuration so stronger schemes (hashed PIN, lockout) can be
// substituted without touching call sites.
type Verifier interface {
	Verify(pin string) bool
}

// StaticPIN verifies against a single configured PIN in constant time.
type StaticPIN struct {
	pin string
}

// NewStaticPIN creates a verifier for the given PIN. An empty PIN never
// verifies, which disables the dashboard rather than leaving it open.
func NewStaticPIN(pin string) *StaticPIN {
	return &StaticPIN{pin: strings.TrimSpace(pin)}
}

// Verify compares the candidate against the configured PIN.
func (v *StaticPIN) Verify(pin string) bool {
	if v.pin == "" {
		return false
	}
	return subtle.ConstantTimeCompare([]byte(v.pin), []byte(strings.TrimSpace(pin))) == 1
}
