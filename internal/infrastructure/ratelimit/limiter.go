package ratelimit

import (
	"sync"
	"time"

	"golang.org/x/time/rate"
)

const limiterTTL = 2 * time.Hour

type limiterEntry struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// GuardianLimiter bounds shard/vote submissions per guardian over a
// rolling hour. It is in-memory and best-effort: the persistence
// uniqueness constraint remains the correctness mechanism.
type GuardianLimiter struct {
	mu       sync.Mutex
	limiters map[string]*limiterEntry
	limit    rate.Limit
	burst    int
	now      func() time.Time
}

func NewGuardianLimiter(submissionsPerHour int) *GuardianLimiter {
	if submissionsPerHour < 1 {
		submissionsPerHour = 1
	}
	return &GuardianLimiter{
		limiters: make(map[string]*limiterEntry),
		limit:    rate.Every(time.Hour / time.Duration(submissionsPerHour)),
		burst:    submissionsPerHour,
		now:      time.Now,
	}
}

func (l *GuardianLimiter) Allow(guardianID string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()

	entry, ok := l.limiters[guardianID]
	if !ok {
		entry = &limiterEntry{limiter: rate.NewLimiter(l.limit, l.burst), lastSeen: now}
		l.limiters[guardianID] = entry
		l.cleanupLocked(now)
	}
	entry.lastSeen = now

	return entry.limiter.AllowN(now, 1)
}

// cleanupLocked drops limiters idle longer than the TTL. Called while
// holding the mutex, on the insert path so the map stays bounded.
func (l *GuardianLimiter) cleanupLocked(now time.Time) {
	for id, entry := range l.limiters {
		if now.Sub(entry.lastSeen) > limiterTTL {
			delete(l.limiters, id)
		}
	}
}

// SetTimeNowFunc overrides the clock, for tests.
func (l *GuardianLimiter) SetTimeNowFunc(now func() time.Time) {
	l.now = now
}
