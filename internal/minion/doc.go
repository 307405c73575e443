// Package minion implements the worker node side of Crucible: a
// cancellable, parallel MD5 enumeration engine (worker.go), a per-job
// cancellation flag registry shared between the HTTP surface and the
// worker goroutines (cancellation.go), and the thin HTTP surface over
// both (server.go).
//
// A minion is stateless across jobs: it holds no durable state, and its
// only per-job memory is the cancellation flag, which may be left to leak
// until process exit.
package minion
