// Package scheme defines the candidate-password enumeration contract used
// by both the master's job sizing and the minion's worker, plus the
// built-in scheme registered under the name "prefix10".
//
// A scheme is a pure, reentrant, finite, indexable sequence: Size reports
// how many candidates exist and At maps an index in [0, Size) to the
// candidate string at that position. Schemes never perform I/O and never
// block, so the same instance may be shared across every worker goroutine
// without synchronization.
package scheme
