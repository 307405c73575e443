package wire

// ChunkStatus is the outcome of a single chunk dispatch, reported by a
// minion and consumed by the master's chunk manager and job manager.
//
// Precedence when a chunk's range is split across worker goroutines and
// their individual outcomes must collapse to one status:
//
//	FOUND > ERROR > CANCELLED > NOT_FOUND
//
// A single FOUND anywhere in the range wins outright; otherwise any ERROR
// makes the whole chunk an ERROR (it gets retried, budget permitting);
// otherwise any CANCELLED makes it CANCELLED; only a clean sweep with no
// match anywhere yields NOT_FOUND.
type ChunkStatus string

const (
	// StatusFound means the minion located a candidate whose MD5 digest
	// matches the target hash within the requested range. The matching
	// plaintext is carried back in CrackResponse.Password.
	StatusFound ChunkStatus = "FOUND"

	// StatusNotFound means the minion exhausted the requested range
	// without a match. The chunk is resolved; it is never retried.
	StatusNotFound ChunkStatus = "NOT_FOUND"

	// StatusCancelled means the minion observed the job's cancellation
	// flag before finishing the requested range, because some other
	// chunk already reported FOUND. A cancelled chunk does not count
	// against the chunk's retry budget and is never requeued.
	StatusCancelled ChunkStatus = "CANCELLED"

	// StatusError means the minion failed to complete the request
	// (panic, internal fault) in a way distinct from a bad request.
	// Errored chunks are requeued up to the job's max-attempts budget.
	StatusError ChunkStatus = "ERROR"

	// StatusInvalidInput means the request itself was malformed: unknown
	// scheme name, or an [Lo, Hi] range outside the scheme's keyspace.
	// Invalid-input chunks are not retried; they fail the job outright.
	StatusInvalidInput ChunkStatus = "INVALID_INPUT"
)

// CrackRequest is the POST /crack request body sent by the master's
// scheduler to a single minion for a single chunk. The range [Lo, Hi] is
// inclusive on both ends and is always wholly contained in the scheme's
// keyspace; the minion revalidates this and returns INVALID_INPUT if not.
//
// One CrackRequest corresponds to exactly one Chunk in the master's
// ChunkManager; JobID lets the minion's cancellation registry associate
// the in-progress enumeration with a later POST /cancel for the same job.
type CrackRequest struct {
	// JobID identifies the parent job this chunk belongs to. It is the
	// key the minion's cancellation registry is keyed on.
	JobID string `json:"job_id"`

	// Hash is the lowercase hex-encoded MD5 digest being searched for.
	Hash string `json:"hash"`

	// SchemeName selects the keyspace enumeration scheme (see
	// internal/scheme) the minion should use to generate candidates for
	// indices in [Lo, Hi].
	SchemeName string `json:"scheme_name"`

	// Lo is the first candidate index, inclusive.
	Lo uint64 `json:"lo"`

	// Hi is the last candidate index, inclusive.
	Hi uint64 `json:"hi"`
}

// CrackResponse is the POST /crack response body. Status is always set;
// Password is set only when Status is StatusFound, and omitted from the
// wire encoding otherwise.
type CrackResponse struct {
	// Status is the chunk-level outcome; see ChunkStatus for precedence
	// rules when the chunk's range was split across worker goroutines.
	Status ChunkStatus `json:"status"`

	// Password is the matching plaintext candidate. Populated only when
	// Status is StatusFound; zero value otherwise.
	Password string `json:"password,omitempty"`

	// JobID echoes the request's JobID. The master does not read it:
	// each dispatch goroutine already knows which chunk it sent.
	JobID string `json:"job_id"`

	// SchemeName echoes the request's SchemeName.
	SchemeName string `json:"scheme_name"`
}

// CancelRequest is the POST /cancel request body. It carries no range
// information: cancellation is job-scoped, not chunk-scoped, so a single
// call stops every in-flight chunk of the job on that minion.
type CancelRequest struct {
	// JobID identifies the job whose cancellation flag should be set.
	JobID string `json:"job_id"`
}

// CancelResponse is the POST /cancel response body. Cancel is idempotent
// and reports OK for every well-formed request (a body that does not
// decode gets 400 with OK false), even if the job was never seen by this
// minion:
// the cancellation flag registry creates the flag on first lookup, so
// "never seen" and "already cancelled" are indistinguishable and both
// succeed.
type CancelResponse struct {
	OK bool `json:"ok"`
}

// HealthResponse is the GET /health response body, used by the master's
// client for liveness probing outside of the breaker's failure tracking.
type HealthResponse struct {
	Status string `json:"status"`
}

// StatusResponse is the GET /status/{job_id} response body: a debug view
// of whether this minion has a cancellation flag recorded for the job.
// It is diagnostic only; the scheduler never branches on it.
type StatusResponse struct {
	// JobID echoes the path parameter the request was made with.
	JobID string `json:"job_id"`

	// Cancelled reports the current value of the job's cancellation
	// flag on this minion, or false if no flag has ever been recorded.
	Cancelled bool `json:"cancelled"`
}
