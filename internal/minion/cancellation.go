package minion

import (
	"sync"
	"sync/atomic"
)

// Registry is an arena of per-job cancellation flags, keyed by job id.
// A flag transitions false -> true exactly once and is shared between the
// HTTP handlers (which set it) and worker goroutines (which poll it).
//
// Flags are never removed proactively: entries are allowed to leak until
// process exit given the minion's in-memory-only lifecycle.
type Registry struct {
	flags sync.Map // job id (string) -> *atomic.Bool
}

// NewRegistry returns an empty cancellation registry.
func NewRegistry() *Registry {
	return &Registry{}
}

func (r *Registry) flagFor(jobID string) *atomic.Bool {
	flag, _ := r.flags.LoadOrStore(jobID, new(atomic.Bool))
	return flag.(*atomic.Bool)
}

// Cancel sets the flag for jobID. Idempotent: it succeeds even if no
// worker has ever looked up this job id.
func (r *Registry) Cancel(jobID string) {
	r.flagFor(jobID).Store(true)
}

// IsCancelled reports the current state of jobID's flag.
func (r *Registry) IsCancelled(jobID string) bool {
	return r.flagFor(jobID).Load()
}
