package master

import (
	"sync"

	"github.com/google/uuid"
)

// JobStatus is a job's lifecycle state.
//
//	PENDING -> RUNNING -> DONE
//	                   \-> FAILED
//
// PENDING is the state a Job is constructed in, before the scheduler has
// dispatched its first chunk. RUNNING covers the whole time chunks are
// being dispatched and reported on. DONE and FAILED are terminal: once
// reached, the Job never changes state again (see ApplyTerminal).
type JobStatus string

const (
	JobPending JobStatus = "PENDING"
	JobRunning JobStatus = "RUNNING"
	JobDone    JobStatus = "DONE"
	JobFailed  JobStatus = "FAILED"
)

// JobResult is the terminal classification recorded on a job. It is
// distinct from JobStatus: ResultFound, ResultNotFound, and
// ResultInvalidInput all land on JobDone, while ResultFailed lands on
// JobFailed. ResultNone is the zero value, held only before a terminal
// transition has happened.
type JobResult string

const (
	ResultNone         JobResult = ""
	ResultFound        JobResult = "FOUND"
	ResultNotFound     JobResult = "NOT_FOUND"
	ResultFailed       JobResult = "FAILED"
	ResultInvalidInput JobResult = "INVALID_INPUT"
)

// Job is one target hash under the master's coordination. The
// orchestrator creates one Job per input hash not already served by the
// cache, and the scheduler drives it to a terminal state against a
// ChunkManager holding its chunk plan.
//
// Thread safety: the scheduler mutates and reads a Job only from its
// single driving goroutine (Start, ApplyTerminal, IsTerminal), while the
// orchestrator reads it afterwards via Snapshot; every accessor takes mu
// so the Job is safe for concurrent use regardless. Job is
// never copied by value after construction; callers needing a
// point-in-time copy use Snapshot, which returns a mutex-free
// JobSnapshot instead of the Job itself.
type Job struct {
	mu sync.Mutex

	ID         string
	Hash       string
	SchemeName string
	TotalSize  uint64
	Status     JobStatus
	Result     JobResult
	Password   string
}

// NewJob creates a PENDING job with a fresh uuid for the given hash and
// scheme. totalSize is the scheme's keyspace size, used by the chunk
// manager to plan the chunk count; it is stored on the job only for
// Snapshot's benefit (console/output reporting never needs it directly).
func NewJob(hash, schemeName string, totalSize uint64) *Job {
	return &Job{
		ID:         uuid.NewString(),
		Hash:       hash,
		SchemeName: schemeName,
		TotalSize:  totalSize,
		Status:     JobPending,
	}
}

// Start transitions PENDING -> RUNNING. A no-op if already past PENDING,
// so it is safe to call exactly once at the top of Scheduler.Run without
// the caller needing to check current status first.
func (j *Job) Start() {
	j.mu.Lock()
	defer j.mu.Unlock()
	if j.Status == JobPending {
		j.Status = JobRunning
	}
}

// IsTerminal reports whether the job has reached DONE or FAILED. Called
// from the scheduler's main loop on every iteration to decide whether to
// keep dispatching new chunks or only drain in-flight ones.
func (j *Job) IsTerminal() bool {
	j.mu.Lock()
	defer j.mu.Unlock()
	return j.Status == JobDone || j.Status == JobFailed
}

// ApplyTerminal transitions the job to its terminal state exactly once.
// Once DONE or FAILED, subsequent calls are no-ops that return false:
// late results arriving after a terminal transition (e.g. a NOT_FOUND
// chunk report landing after another chunk already reported FOUND) are
// discarded rather than clobbering the already-recorded outcome.
//
// Returns true exactly on the call that performs the transition, so
// callers (the scheduler) can gate one-time side effects — broadcasting
// a cancel, incrementing a completion metric — on the return value
// instead of re-checking status afterward.
func (j *Job) ApplyTerminal(result JobResult, password string) (applied bool) {
	j.mu.Lock()
	defer j.mu.Unlock()
	if j.Status == JobDone || j.Status == JobFailed {
		return false
	}
	j.Result = result
	j.Password = password
	switch result {
	case ResultFound, ResultNotFound, ResultInvalidInput:
		j.Status = JobDone
	case ResultFailed:
		j.Status = JobFailed
	}
	return true
}

// JobSnapshot is a lock-free copy of a Job's fields, safe to pass around
// and read after the Job itself may have moved on. It exists because Job
// embeds a sync.Mutex: returning a Job by value would copy the lock,
// which is both incorrect and a go vet violation, so Snapshot returns
// this separate, mutex-free type instead.
type JobSnapshot struct {
	ID         string
	Hash       string
	SchemeName string
	TotalSize  uint64
	Status     JobStatus
	Result     JobResult
	Password   string
}

// Snapshot returns a copy of the job's current state, for callers (the
// orchestrator, building its output record) that need to read a Job's
// fields once without holding a reference to the Job itself.
func (j *Job) Snapshot() JobSnapshot {
	j.mu.Lock()
	defer j.mu.Unlock()
	return JobSnapshot{
		ID:         j.ID,
		Hash:       j.Hash,
		SchemeName: j.SchemeName,
		TotalSize:  j.TotalSize,
		Status:     j.Status,
		Result:     j.Result,
		Password:   j.Password,
	}
}
