package master

import (
	"sync"
	"time"
)

// breaker is the per-minion circuit breaker state machine. It has exactly
// two states:
//
//	CLOSED(failCount) - requests are allowed; failCount tracks consecutive
//	                    failures since the last success or last OPEN.
//	OPEN(until)       - requests are refused until wall-clock time reaches
//	                    until, at which point the breaker lazily reopens
//	                    to CLOSED(0) on the next Allow call.
//
// State is evaluated lazily, only when Allow, RecordSuccess, or
// RecordFailure is called; there is no background goroutine ticking the
// breaker closed again the way a periodic health monitor would. A
// breaker that is never probed again simply stays OPEN in memory; only
// Allow clears openUntil once the window has elapsed, and RecordFailure
// keeps treating the breaker as OPEN until then.
//
// Thread safety: every method takes the breaker's own mutex; breaker
// instances are never copied after construction (Registry holds them by
// pointer), so mutex copying is not a concern.
type breaker struct {
	mu        sync.Mutex
	failCount int
	openUntil time.Time // zero value means CLOSED

	threshold  int
	openWindow time.Duration
	now        func() time.Time // injectable for tests; time.Now in production
}

// newBreaker returns a CLOSED breaker that opens after threshold
// consecutive failures and stays OPEN for openWindow before the next
// Allow call is permitted to probe again.
func newBreaker(threshold int, openWindow time.Duration) *breaker {
	return &breaker{threshold: threshold, openWindow: openWindow, now: time.Now}
}

// Allow reports whether a request may be dispatched right now.
//
// Returns:
//   - true if the breaker is CLOSED, or OPEN with its window elapsed
//     (in which case this call also resets it to CLOSED(0), so it takes
//     threshold further consecutive failures to open it again)
//   - false if the breaker is OPEN and still within its window
func (b *breaker) Allow() bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.openUntil.IsZero() {
		return true
	}
	if b.now().Before(b.openUntil) {
		return false
	}
	b.openUntil = time.Time{}
	b.failCount = 0
	return true
}

// RecordSuccess resets the failure count and closes the breaker. Called
// by Registry.RecordSuccess after any non-error chunk outcome, including
// NOT_FOUND and CANCELLED: a minion that answers promptly is healthy
// regardless of whether it found the password.
func (b *breaker) RecordSuccess() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.failCount = 0
	b.openUntil = time.Time{}
}

// RecordFailure increments the failure count, opening the breaker once
// it reaches threshold.
//
// Returns true exactly when this call is the one that transitions the
// breaker from CLOSED to OPEN; all other calls (including every call
// while already OPEN) return false. Callers that want a "breaker just
// opened" event, such as a metric increment, must act on that returned
// bool rather than re-deriving it from isOpen, since the transition is
// only observable at the instant it happens.
func (b *breaker) RecordFailure() bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	if !b.openUntil.IsZero() {
		return false // already open
	}
	b.failCount++
	if b.failCount >= b.threshold {
		b.openUntil = b.now().Add(b.openWindow)
		return true
	}
	return false
}

// isOpen reports the breaker's current view without mutating or probing
// it. Neither Registry nor the scheduler calls it; admission decisions
// go through Allow.
func (b *breaker) isOpen() bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	return !b.openUntil.IsZero() && b.now().Before(b.openUntil)
}
