package master

import (
	"context"
	"sync"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/rs/zerolog"

	"github.com/dreamware/crucible/internal/metrics"
	"github.com/dreamware/crucible/internal/wire"
)

// Scheduler drives one job's chunks to completion against a shared
// Registry and Client. The orchestrator builds a fresh Scheduler for
// each job; it holds no per-job state of its own beyond the arguments
// passed to Run.
//
// Dispatch model: Run's loop is the only goroutine that reads chunk
// state and decides what to dispatch next. Each dispatch spawns its own
// short-lived goroutine that performs the HTTP call and reports back on
// a shared completions channel; Run is the only reader of that channel.
// This keeps all chunk-plan and job-state mutation on one goroutine
// without a loop-wide lock, at the cost of one channel round-trip per
// completion.
type Scheduler struct {
	registry       *Registry
	client         *Client
	noMinionWait   time.Duration
	requestTimeout time.Duration
	log            zerolog.Logger
}

// NewScheduler builds a Scheduler. noMinionWait is the fixed delay
// applied, via a constant backoff policy, whenever every registered
// minion's breaker is OPEN.
func NewScheduler(registry *Registry, client *Client, noMinionWait, requestTimeout time.Duration, log zerolog.Logger) *Scheduler {
	return &Scheduler{
		registry:       registry,
		client:         client,
		noMinionWait:   noMinionWait,
		requestTimeout: requestTimeout,
		log:            log,
	}
}

// completion is one dispatch goroutine's report back to Run's loop:
// which chunk it was, what the minion said, and which endpoint served
// it (needed to record success/failure against the right breaker).
type completion struct {
	chunkID string
	outcome ChunkOutcome
	ep      *Endpoint
}

// Run drives job to completion using cm's chunk plan. It returns once
// the chunk manager reports a job-level terminal state and every
// dispatched chunk has reported back, or once no chunk remains
// unresolved at all.
//
// Loop shape, each iteration:
//  1. If job is terminal, drain completions only; never dispatch.
//  2. Otherwise take the next READY chunk. None ready and nothing
//     in flight ends Run; a job that is still not terminal at that
//     point (the zero-chunk case from an empty keyspace) is settled
//     as NOT_FOUND from cm.JobTerminalState.
//  3. Pick the next available endpoint. None available (every
//     breaker OPEN) requeues the chunk and sleeps noMinionWait before
//     retrying the loop; no completions are drained during that sleep.
//  4. Dispatch in a new goroutine and keep looping; completions are
//     only drained in steps 1 and 2, when the loop has nothing left
//     to dispatch.
func (s *Scheduler) Run(job *Job, cm *ChunkManager) {
	job.Start()

	completions := make(chan completion)
	inFlight := 0
	waitPolicy := backoff.NewConstantBackOff(s.noMinionWait)

	for {
		if job.IsTerminal() {
			// Drain in-flight chunks without dispatching new ones once
			// the job has reached a terminal state.
			if inFlight == 0 {
				return
			}
			c := <-completions
			inFlight--
			s.applyCompletion(job, cm, c)
			continue
		}

		chunk := cm.TakeReady()
		if chunk == nil {
			if inFlight == 0 {
				if cm.JobTerminalState() == TerminalNotFound {
					job.ApplyTerminal(ResultNotFound, "")
				}
				return
			}
			c := <-completions
			inFlight--
			s.applyCompletion(job, cm, c)
			continue
		}

		ep := s.registry.NextAvailable()
		if ep == nil {
			cm.Requeue(chunk.ChunkID)
			time.Sleep(waitPolicy.NextBackOff())
			continue
		}

		inFlight++
		go s.dispatch(job.ID, job.Hash, job.SchemeName, chunk, ep, completions)
	}
}

// dispatch runs in its own goroutine for the lifetime of one chunk
// request: it builds a per-call deadline, issues the crack, tallies the
// dispatch metric, and reports the result back on completions. It never
// touches job or chunk-manager state directly; applyCompletion does
// that, back on Run's goroutine, once it reads this off the channel.
func (s *Scheduler) dispatch(jobID, hash, schemeName string, chunk *Chunk, ep *Endpoint, completions chan<- completion) {
	ctx, cancel := context.WithTimeout(context.Background(), s.requestTimeout)
	defer cancel()

	outcome := s.client.Crack(ctx, ep.URL, wire.CrackRequest{
		JobID:      jobID,
		Hash:       hash,
		SchemeName: schemeName,
		Lo:         chunk.Lo,
		Hi:         chunk.Hi,
	})
	metrics.ChunksDispatchedTotal.WithLabelValues(string(outcome.Status)).Inc()
	completions <- completion{chunkID: chunk.ChunkID, outcome: outcome, ep: ep}
}

// applyCompletion folds one dispatch's outcome into breaker, chunk, and
// job state, in that order: the breaker update never depends on what
// the chunk manager decides, but the job's terminal transition does
// depend on what Report cascades back. A FOUND cascade only triggers
// broadcastCancel on the call that actually wins ApplyTerminal's
// exactly-once transition, so a second, slower chunk also reporting
// FOUND after the job is already DONE never fires a redundant cancel
// broadcast.
func (s *Scheduler) applyCompletion(job *Job, cm *ChunkManager, c completion) {
	switch c.outcome.Status {
	case wire.StatusError, wire.StatusInvalidInput:
		if s.registry.RecordFailure(c.ep) {
			metrics.BreakerOpensTotal.WithLabelValues(c.ep.URL).Inc()
		}
	default:
		s.registry.RecordSuccess(c.ep)
	}

	terminal, _ := cm.Report(c.chunkID, c.outcome.Status, c.outcome.Password)
	switch terminal {
	case TerminalFound:
		if job.ApplyTerminal(ResultFound, c.outcome.Password) {
			s.broadcastCancel(job.ID)
		}
	case TerminalFailed:
		job.ApplyTerminal(ResultFailed, "")
	case TerminalNotFound:
		job.ApplyTerminal(ResultNotFound, "")
	}
}

// broadcastCancel issues client.Cancel to every registered endpoint in
// parallel, best-effort. Failures are logged only; the breaker is never
// charged for a cancel failure.
func (s *Scheduler) broadcastCancel(jobID string) {
	var wg sync.WaitGroup
	for _, ep := range s.registry.All() {
		wg.Add(1)
		go func(ep *Endpoint) {
			defer wg.Done()
			ctx, cancel := context.WithTimeout(context.Background(), s.requestTimeout)
			defer cancel()
			if err := s.client.Cancel(ctx, ep.URL, jobID); err != nil {
				s.log.Debug().Err(err).Str("endpoint", ep.URL).Msg("broadcast cancel failed")
			}
		}(ep)
	}
	wg.Wait()
}
