// Package session holds the pure helpers around onboarding session
// lifetimes: token generation, expiry checks and the configurable duration.
package session

import (
	"time"

	"github.com/google/uuid"
)

// DefaultDuration is the nominal session lifetime when no override is set.
const DefaultDuration = 24 * time.Hour

// GenerateToken returns an opaque unique session token.
func GenerateToken() string {
	return uuid.New().String()
}

// IsExpired reports whether expiresAt is strictly in the past, evaluated
// against wall-clock time at call time.
func IsExpired(expiresAt time.Time) bool {
	return time.Now().After(expiresAt)
}

// DurationFromHours converts the numeric override into a duration, falling
// back to DefaultDuration for zero or negative values.
func DurationFromHours(hours int) time.Duration {
	if hours <= 0 {
		return DefaultDuration
	}
	return time.Duration(hours) * time.Hour
}

// ExpiryFrom returns the expiry timestamp for a session created at now.
func ExpiryFrom(now time.Time, d time.Duration) time.Time {
	return now.Add(d)
}
