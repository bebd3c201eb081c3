package ratelimit

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestGuardianLimiterBurst(t *testing.T) {
	limiter := NewGuardianLimiter(10)
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	limiter.SetTimeNowFunc(func() time.Time { return now })

	for i := 0; i < 10; i++ {
		assert.True(t, limiter.Allow("guardian-1"), "submission %d within the hourly budget", i+1)
	}
	assert.False(t, limiter.Allow("guardian-1"), "the 11th submission in the hour is rejected")

	// another guardian has an independent budget
	assert.True(t, limiter.Allow("guardian-2"))
}

func TestGuardianLimiterRefills(t *testing.T) {
	limiter := NewGuardianLimiter(10)
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	limiter.SetTimeNowFunc(func() time.Time { return now })

	for i := 0; i < 10; i++ {
		limiter.Allow("guardian-1")
	}
	assert.False(t, limiter.Allow("guardian-1"))

	// one token refills every 6 minutes at 10 per hour
	now = now.Add(7 * time.Minute)
	assert.True(t, limiter.Allow("guardian-1"))
	assert.False(t, limiter.Allow("guardian-1"))
}

func TestGuardianLimiterCleanup(t *testing.T) {
	limiter := NewGuardianLimiter(10)
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	limiter.SetTimeNowFunc(func() time.Time { return now })

	limiter.Allow("guardian-1")
	assert.Len(t, limiter.limiters, 1)

	// idle entries are dropped when a new guardian arrives past the TTL
	now = now.Add(3 * time.Hour)
	limiter.Allow("guardian-2")
	assert.Len(t, limiter.limiters, 1)
	_, ok := limiter.limiters["guardian-2"]
	assert.True(t, ok)
}
