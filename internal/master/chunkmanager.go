package master

import (
	"sync"

	"github.com/google/uuid"

	"github.com/dreamware/crucible/internal/wire"
)

// ChunkStatus is a chunk's lifecycle state. It reuses the FOUND,
// NOT_FOUND, CANCELLED and ERROR names of wire.ChunkStatus and adds three
// master-only states (READY, IN_FLIGHT, EXHAUSTED):
//
//	READY      - planned but not yet dispatched to any minion
//	IN_FLIGHT  - dispatched to a minion, awaiting its response
//	NOT_FOUND  - the minion searched the whole range, no match
//	FOUND      - the minion found the matching candidate
//	CANCELLED  - the minion stopped early because some other chunk found it
//	ERROR      - the dispatch failed (transport error or minion-side fault)
//	EXHAUSTED  - ERROR with the retry budget used up, or INVALID_INPUT
//
// A chunk only ever moves forward through READY -> IN_FLIGHT -> one of
// the five terminal-for-the-chunk states, except ERROR, which moves back
// to READY for another attempt until EXHAUSTED.
type ChunkStatus string

const (
	ChunkReady     ChunkStatus = "READY"
	ChunkInFlight  ChunkStatus = "IN_FLIGHT"
	ChunkNotFound  ChunkStatus = "NOT_FOUND"
	ChunkFound     ChunkStatus = "FOUND"
	ChunkCancelled ChunkStatus = "CANCELLED"
	ChunkError     ChunkStatus = "ERROR"
	ChunkExhausted ChunkStatus = "EXHAUSTED"
)

// Chunk is an inclusive index range [Lo, Hi] on a job: one unit of work
// dispatched to exactly one minion at a time. ChunkID is a uuid assigned
// at plan time and is stable for the chunk's lifetime, including across
// retries.
type Chunk struct {
	ChunkID  string
	Lo, Hi   uint64
	Attempts int
	Status   ChunkStatus
}

// JobTerminal is the terminal result a chunk manager can cascade to the
// job manager, derived purely from the aggregate of its chunks' states:
//
//	NotTerminal      - at least one chunk is still READY or IN_FLIGHT
//	TerminalFound    - one chunk reported FOUND
//	TerminalFailed   - one chunk exhausted its retry budget
//	TerminalNotFound - every chunk resolved to NOT_FOUND or CANCELLED
//	                   with none pending and none FOUND or EXHAUSTED
type JobTerminal int

const (
	NotTerminal JobTerminal = iota
	TerminalFound
	TerminalFailed
	TerminalNotFound
)

// ChunkManager plans and tracks the chunks of a single job. One
// ChunkManager belongs to exactly one job; it is not reused across jobs
// and holds no reference back to the Job it serves (the scheduler passes
// both explicitly).
//
// Thread safety: every method takes mu, so all chunk-state transitions
// are serialized through the same lock. The scheduler itself calls
// TakeReady, Report, and Requeue only from Run's goroutine.
type ChunkManager struct {
	mu          sync.Mutex
	chunks      []*Chunk
	maxAttempts int
	foundChunk  *Chunk
	foundPwd    string
}

// NewChunkManager plans totalSize into ceil(totalSize/chunkSize) chunks,
// each READY and unattempted, with ChunkIDs assigned up front so the
// scheduler's dispatch and report paths never need to mint one.
//
// A totalSize of zero produces a ChunkManager with no chunks at all;
// JobTerminalState on it resolves immediately to TerminalNotFound, since
// there is nothing pending and nothing unresolved.
func NewChunkManager(totalSize, chunkSize uint64, maxAttempts int) *ChunkManager {
	cm := &ChunkManager{maxAttempts: maxAttempts}
	if totalSize == 0 {
		return cm
	}
	n := (totalSize + chunkSize - 1) / chunkSize
	cm.chunks = make([]*Chunk, 0, n)
	for k := uint64(0); k < n; k++ {
		lo := k * chunkSize
		hi := (k+1)*chunkSize - 1
		if hi >= totalSize {
			hi = totalSize - 1
		}
		cm.chunks = append(cm.chunks, &Chunk{
			ChunkID: uuid.NewString(),
			Lo:      lo,
			Hi:      hi,
			Status:  ChunkReady,
		})
	}
	return cm
}

// TakeReady returns the next READY chunk, marking it IN_FLIGHT, or nil
// if none is ready. Scan order follows plan order, so the lowest-index
// READY chunk is always taken first, including chunks that cycled back
// to READY via Report or Requeue.
func (cm *ChunkManager) TakeReady() *Chunk {
	cm.mu.Lock()
	defer cm.mu.Unlock()
	for _, c := range cm.chunks {
		if c.Status == ChunkReady {
			c.Status = ChunkInFlight
			return c
		}
	}
	return nil
}

// AnyInFlight reports whether at least one chunk is currently dispatched.
func (cm *ChunkManager) AnyInFlight() bool {
	cm.mu.Lock()
	defer cm.mu.Unlock()
	for _, c := range cm.chunks {
		if c.Status == ChunkInFlight {
			return true
		}
	}
	return false
}

// Requeue marks chunk READY again, used when no minion was available to
// dispatch it (every breaker OPEN) rather than because a dispatch
// failed; it does not count against maxAttempts.
func (cm *ChunkManager) Requeue(chunkID string) {
	cm.mu.Lock()
	defer cm.mu.Unlock()
	for _, c := range cm.chunks {
		if c.ChunkID == chunkID {
			c.Status = ChunkReady
			return
		}
	}
}

// Report applies outcome to chunkID's state machine and returns the
// job-level terminal state this report cascades to, if any, plus the
// chunk ID responsible for it (the winning or exhausted chunk).
//
// FOUND is sticky: once cm.foundChunk is set, later FOUND reports for
// other chunks (a race is possible if two minions both find a match
// before either cancel reaches them) are recorded on the chunk but do
// not overwrite the already-recorded password. An ERROR report
// increments Attempts and either requeues the chunk to READY or, past
// maxAttempts, marks it EXHAUSTED, which fails the whole job. An
// INVALID_INPUT report is not retried: it marks the chunk EXHAUSTED
// at once.
func (cm *ChunkManager) Report(chunkID string, outcome wire.ChunkStatus, password string) (JobTerminal, string) {
	cm.mu.Lock()
	defer cm.mu.Unlock()

	var target *Chunk
	for _, c := range cm.chunks {
		if c.ChunkID == chunkID {
			target = c
			break
		}
	}
	if target == nil {
		return NotTerminal, ""
	}

	switch outcome {
	case wire.StatusFound:
		target.Status = ChunkFound
		if cm.foundChunk == nil {
			cm.foundChunk = target
			cm.foundPwd = password
		}
	case wire.StatusNotFound:
		target.Status = ChunkNotFound
	case wire.StatusCancelled:
		target.Status = ChunkCancelled
	case wire.StatusError:
		target.Attempts++
		if target.Attempts < cm.maxAttempts {
			target.Status = ChunkReady
		} else {
			target.Status = ChunkExhausted
		}
	case wire.StatusInvalidInput:
		target.Status = ChunkExhausted
	}

	return cm.terminalStateLocked()
}

// JobTerminalState recomputes the job-level terminal state from current
// chunk states without applying any report. Used by the scheduler to
// settle a job once nothing is left to dispatch or drain.
func (cm *ChunkManager) JobTerminalState() JobTerminal {
	cm.mu.Lock()
	defer cm.mu.Unlock()
	t, _ := cm.terminalStateLocked()
	return t
}

// FoundPassword returns the password recorded by the winning chunk, and
// true, if any report has produced a FOUND chunk yet; ("", false)
// otherwise.
func (cm *ChunkManager) FoundPassword() (string, bool) {
	cm.mu.Lock()
	defer cm.mu.Unlock()
	if cm.foundChunk == nil {
		return "", false
	}
	return cm.foundPwd, true
}

// terminalStateLocked is the single source of truth for job-level
// terminality; both Report and JobTerminalState funnel through it so the
// rules never drift between the two callers. Callers must hold cm.mu.
func (cm *ChunkManager) terminalStateLocked() (JobTerminal, string) {
	if cm.foundChunk != nil {
		return TerminalFound, cm.foundChunk.ChunkID
	}

	anyPending := false
	allResolved := true
	for _, c := range cm.chunks {
		switch c.Status {
		case ChunkExhausted:
			return TerminalFailed, c.ChunkID
		case ChunkReady, ChunkInFlight:
			anyPending = true
			allResolved = false
		case ChunkNotFound, ChunkCancelled:
			// resolved, benign
		}
	}
	if !anyPending && allResolved {
		return TerminalNotFound, ""
	}
	return NotTerminal, ""
}
