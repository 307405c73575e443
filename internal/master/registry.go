package master

import (
	"sync"
	"time"

	"golang.org/x/exp/slices"
)

// Endpoint pairs a minion's URL with its circuit breaker.
type Endpoint struct {
	URL string

	breaker *breaker
}

// Registry wraps a static list of minion endpoints, each with its own
// breaker, and hands out the next available one in stable round-robin
// order. There is no dynamic discovery: the endpoint set is fixed at
// construction.
type Registry struct {
	mu        sync.Mutex
	endpoints []*Endpoint
	cursor    int
}

// NewRegistry builds a registry over urls, each starting with a closed
// breaker gated by failureThreshold consecutive failures and an open
// window of openWindow.
func NewRegistry(urls []string, failureThreshold int, openWindow time.Duration) *Registry {
	endpoints := make([]*Endpoint, len(urls))
	for i, u := range urls {
		endpoints[i] = &Endpoint{URL: u, breaker: newBreaker(failureThreshold, openWindow)}
	}
	return &Registry{endpoints: endpoints}
}

// NextAvailable returns the next endpoint whose breaker allows a
// request, advancing the round-robin cursor by one call regardless of
// outcome. It returns nil only when every endpoint is OPEN.
func (r *Registry) NextAvailable() *Endpoint {
	r.mu.Lock()
	defer r.mu.Unlock()

	n := len(r.endpoints)
	if n == 0 {
		return nil
	}
	for i := 0; i < n; i++ {
		idx := (r.cursor + i) % n
		ep := r.endpoints[idx]
		if ep.breaker.Allow() {
			r.cursor = (idx + 1) % n
			return ep
		}
	}
	r.cursor = (r.cursor + 1) % n
	return nil
}

// RecordSuccess reports a successful call against ep's breaker.
func (r *Registry) RecordSuccess(ep *Endpoint) {
	ep.breaker.RecordSuccess()
}

// RecordFailure reports a failed call against ep's breaker. It returns
// true exactly when this call is the one that tripped ep's breaker from
// CLOSED to OPEN, so callers can observe the transition (e.g. a metric
// increment) without polling breaker state separately.
func (r *Registry) RecordFailure(ep *Endpoint) (opened bool) {
	return ep.breaker.RecordFailure()
}

// All returns a copy of the endpoint list, for broadcast operations such
// as cancel.
func (r *Registry) All() []*Endpoint {
	r.mu.Lock()
	defer r.mu.Unlock()
	return slices.Clone(r.endpoints)
}
