// Package metrics exposes the Prometheus counters shared by the master
// and minion processes, and the /metrics HTTP handler that serves them.
package metrics
