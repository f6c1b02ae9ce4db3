package ghclient

import (
	"errors"
	"sync"
	"time"
)

// ErrRateLimited is returned when the GitHub API rate limit is exhausted.
var ErrRateLimited = errors.New("github API rate limit exceeded")

// RateLimitLowWatermark is the remaining-request count below which a
// warning is logged.
const RateLimitLowWatermark = 50

// rateLimitState tracks the API rate limit across requests.
type rateLimitState struct {
	mu        sync.Mutex
	limited   bool
	resetAt   time.Time
	remaining int
	limit     int
}

var globalRateLimitState = &rateLimitState{remaining: -1, limit: -1}

// IsLimited reports whether the limit is currently exhausted. The state
// clears itself once the reset time passes.
func (s *rateLimitState) IsLimited() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.limited && time.Now().After(s.resetAt) {
		s.limited = false
	}
	return s.limited
}

// SetLimited marks the limit exhausted until resetAt.
func (s *rateLimitState) SetLimited(limited bool, resetAt time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.limited = limited
	s.resetAt = resetAt
}

// Update records the latest remaining/limit values from response headers.
func (s *rateLimitState) Update(remaining, limit int, resetAt time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.remaining = remaining
	s.limit = limit
	s.resetAt = resetAt
}
