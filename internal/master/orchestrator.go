package master

import (
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/dreamware/crucible/internal/metrics"
	"github.com/dreamware/crucible/internal/recordio"
	"github.com/dreamware/crucible/internal/scheme"
)

// OrchestratorConfig bundles the tuning knobs an Orchestrator needs.
type OrchestratorConfig struct {
	ChunkSize         uint64
	MaxAttempts       int
	MaxConcurrentJobs int
	SchemeName        string
	NoMinionWait      time.Duration
	RequestTimeout    time.Duration
}

// Orchestrator is the top-level composition: for each input hash, either
// serve from cache or run a job to completion, bounded to
// MaxConcurrentJobs jobs active at once.
type Orchestrator struct {
	cfg      OrchestratorConfig
	cache    *Cache
	registry *Registry
	client   *Client
	log      zerolog.Logger
}

// NewOrchestrator wires an Orchestrator from its collaborators.
func NewOrchestrator(cfg OrchestratorConfig, cache *Cache, registry *Registry, client *Client, log zerolog.Logger) *Orchestrator {
	return &Orchestrator{cfg: cfg, cache: cache, registry: registry, client: client, log: log}
}

// Run processes every hash in hashes concurrently, bounded by
// MaxConcurrentJobs, and returns one output record per hash.
func (o *Orchestrator) Run(hashes []string) map[string]recordio.Record {
	results := make(map[string]recordio.Record, len(hashes))
	var mu sync.Mutex

	sem := make(chan struct{}, maxInt(o.cfg.MaxConcurrentJobs, 1))
	var wg sync.WaitGroup

	for _, raw := range hashes {
		hash := recordio.NormalizeHash(raw)
		wg.Add(1)
		sem <- struct{}{}
		go func(hash string) {
			defer wg.Done()
			defer func() { <-sem }()

			rec := o.processHash(hash)
			mu.Lock()
			results[hash] = rec
			mu.Unlock()
		}(hash)
	}
	wg.Wait()

	return results
}

func (o *Orchestrator) processHash(hash string) recordio.Record {
	if !recordio.IsValidHash(hash) {
		return recordio.Record{Status: "INVALID_INPUT"}
	}

	if entry, ok := o.cache.Get(hash); ok {
		password := entry.Password
		job := NewJob(hash, entry.SchemeName, 0)
		job.ApplyTerminal(ResultFound, password)
		metrics.JobsCompletedTotal.WithLabelValues(string(ResultFound)).Inc()
		return recordio.Record{
			CrackedPassword: &password,
			Status:          string(ResultFound),
			JobID:           job.ID,
		}
	}

	sch, err := scheme.Lookup(o.cfg.SchemeName)
	if err != nil {
		return recordio.Record{Status: "INVALID_INPUT"}
	}

	job := NewJob(hash, o.cfg.SchemeName, sch.Size())
	cm := NewChunkManager(sch.Size(), o.cfg.ChunkSize, o.cfg.MaxAttempts)
	sched := NewScheduler(o.registry, o.client, o.cfg.NoMinionWait, o.cfg.RequestTimeout, o.log)
	sched.Run(job, cm)

	snap := job.Snapshot()
	metrics.JobsCompletedTotal.WithLabelValues(string(snap.Result)).Inc()

	if snap.Result == ResultFound {
		if err := o.cache.Put(hash, snap.Password, snap.SchemeName); err != nil {
			o.log.Warn().Err(err).Str("hash", hash).Msg("cache monotonicity violation")
		}
		password := snap.Password
		return recordio.Record{CrackedPassword: &password, Status: string(snap.Result), JobID: snap.ID}
	}
	return recordio.Record{Status: string(snap.Result), JobID: snap.ID}
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}
