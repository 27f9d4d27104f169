package service

import (
	"sync"
	"time"

	"golang.org/x/time/rate"

	authDomain "github.com/allisson/tenantguard/internal/auth/domain"
)

// UsageLimiter enforces the max_requests_per_hour usage limit carried by
// matched capabilities.
//
// Each subject gets an independent token bucket sized from its capability's
// hourly allowance, so a subject can burst up to the full allowance and then
// refills at allowance/hour. The limiter holds no reference to capabilities;
// callers pass the limits of the capability that matched.
type UsageLimiter struct {
	limiters sync.Map // map[string]*usageLimiterEntry keyed by subject
}

// usageLimiterEntry holds a rate limiter and last access time for cleanup.
type usageLimiterEntry struct {
	limiter    *rate.Limiter
	lastAccess time.Time
	mu         sync.Mutex
}

// NewUsageLimiter creates an empty UsageLimiter.
func NewUsageLimiter() *UsageLimiter {
	return &UsageLimiter{}
}

// Allow reports whether subject may perform another request under limits.
// A nil limits or a non-positive MaxRequestsPerHour means unlimited.
func (u *UsageLimiter) Allow(subject string, limits *authDomain.UsageLimits) bool {
	if limits == nil || limits.MaxRequestsPerHour <= 0 {
		return true
	}

	perHour := limits.MaxRequestsPerHour
	value, _ := u.limiters.LoadOrStore(subject, &usageLimiterEntry{
		limiter: rate.NewLimiter(rate.Limit(float64(perHour)/3600.0), perHour),
	})
	entry := value.(*usageLimiterEntry)

	entry.mu.Lock()
	entry.lastAccess = time.Now()
	entry.mu.Unlock()

	return entry.limiter.Allow()
}

// AllowTokens reports whether a request consuming tokenCount tokens fits the
// capability's per-request token budget. A nil limits or non-positive
// MaxTokensPerRequest means unlimited.
func (u *UsageLimiter) AllowTokens(limits *authDomain.UsageLimits, tokenCount int) bool {
	if limits == nil || limits.MaxTokensPerRequest <= 0 {
		return true
	}
	return tokenCount <= limits.MaxTokensPerRequest
}

// CleanupStale removes limiter entries idle for longer than maxAge. Callers
// that keep a limiter alive for many subjects should run this periodically.
func (u *UsageLimiter) CleanupStale(maxAge time.Duration) {
	cutoff := time.Now().Add(-maxAge)
	u.limiters.Range(func(key, value any) bool {
		entry := value.(*usageLimiterEntry)
		entry.mu.Lock()
		stale := entry.lastAccess.Before(cutoff)
		entry.mu.Unlock()
		if stale {
			u.limiters.Delete(key)
		}
		return true
	})
}
