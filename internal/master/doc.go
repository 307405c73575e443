// Package master implements the coordinator side of Crucible: the cache,
// per-minion circuit breakers and registry, the HTTP client to minions,
// the chunk and job managers, the per-job scheduler, and the top-level
// orchestrator that ties them together.
//
// Ownership follows a single composition root (cmd/master): the
// orchestrator owns Jobs and the Cache, the job manager owns Job
// transitions, the chunk manager owns Chunks, and the registry owns
// Breakers. Nothing in this package is a process-wide mutable static;
// every piece of shared state is an explicit field passed in by its
// caller.
package master
