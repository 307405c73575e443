package master

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestBreaker_StaysClosedBelowThreshold(t *testing.T) {
	b := newBreaker(3, time.Second)
	assert.True(t, b.Allow())
	b.RecordFailure()
	assert.True(t, b.Allow())
	b.RecordFailure()
	assert.True(t, b.Allow())
}

func TestBreaker_OpensAtThreshold(t *testing.T) {
	b := newBreaker(3, time.Second)
	b.RecordFailure()
	b.RecordFailure()
	opened := b.RecordFailure()
	assert.True(t, opened)
	assert.False(t, b.Allow())
}

func TestBreaker_SuccessResetsCount(t *testing.T) {
	b := newBreaker(3, time.Second)
	b.RecordFailure()
	b.RecordFailure()
	b.RecordSuccess()
	b.RecordFailure()
	b.RecordFailure()
	assert.True(t, b.Allow(), "two failures after a reset must not reach threshold 3")
}

func TestBreaker_ReopensClosedAfterWindowElapses(t *testing.T) {
	now := time.Unix(0, 0)
	b := newBreaker(1, time.Second)
	b.now = func() time.Time { return now }

	b.RecordFailure()
	assert.False(t, b.Allow())

	now = now.Add(500 * time.Millisecond)
	assert.False(t, b.Allow(), "window has not elapsed yet")

	now = now.Add(600 * time.Millisecond)
	assert.True(t, b.Allow(), "window elapsed, breaker should probe-close")

	// Allow's transition to CLOSED(0) must stick.
	assert.True(t, b.Allow())
}

func TestBreaker_RecordFailureWhileOpenIsNoop(t *testing.T) {
	b := newBreaker(1, time.Hour)
	b.RecordFailure()
	opened := b.RecordFailure()
	assert.False(t, opened, "already-open breaker reports no new transition")
}
