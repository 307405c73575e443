package minion

import (
	"crypto/md5"
	"encoding/hex"
	"sync"

	"github.com/dreamware/crucible/internal/scheme"
)

// Outcome is the terminal status of a crack attempt, independent of
// transport. It maps directly onto wire.ChunkStatus; Crack returns it
// and server.go's handleCrack converts it to a wire.CrackResponse.
type Outcome struct {
	Status   string
	Password string // only meaningful when Status == "FOUND"
}

const (
	StatusFound        = "FOUND"
	StatusNotFound     = "NOT_FOUND"
	StatusCancelled    = "CANCELLED"
	StatusError        = "ERROR"
	StatusInvalidInput = "INVALID_INPUT"
)

// subrangeResult is what one worker goroutine reports for its slice of
// the index range. It is intentionally a smaller, unexported twin of
// Outcome: aggregate folds a slice of these into a single Outcome, and
// the two diverge slightly going forward (subrangeResult never carries
// INVALID_INPUT, since validation happens once in Crack before any
// goroutine is spawned).
type subrangeResult struct {
	status   string
	password string
}

// Crack enumerates the inclusive index range [lo, hi] of schemeName
// looking for a candidate whose MD5 digest equals hash, splitting the
// range across up to workerThreads goroutines and polling cancel every
// cancelEvery iterations.
//
// Parameters:
//   - jobID: unused by Crack itself; isCancelled already closes over the
//     registry lookup for this job. Kept as a parameter so call sites
//     read naturally and so a future per-job-aware aggregation strategy
//     has somewhere to hang without changing the signature again.
//   - lo, hi: inclusive bounds, validated against schemeName's keyspace
//     size before any goroutine is spawned.
//   - workerThreads: the upper bound on concurrent goroutines; partition
//     may use fewer if the range is too small to fill them all at
//     subrangeMinSize each.
//   - cancelEvery: how many candidate indices each worker checks between
//     polls of isCancelled; see crackSubrange.
//
// Returns an Outcome whose Status is INVALID_INPUT if schemeName is
// unknown or the range falls outside its keyspace, without spawning any
// goroutine; otherwise the aggregate of every subrange's result.
func Crack(
	jobID, hash, schemeName string,
	lo, hi uint64,
	workerThreads int, subrangeMinSize uint64,
	cancelEvery uint64,
	isCancelled func() bool,
) Outcome {
	sch, err := scheme.Lookup(schemeName)
	if err != nil {
		return Outcome{Status: StatusInvalidInput}
	}
	if hi >= sch.Size() || lo > hi {
		return Outcome{Status: StatusInvalidInput}
	}

	bounds := partition(lo, hi, workerThreads, subrangeMinSize)

	results := make([]subrangeResult, len(bounds))
	var wg sync.WaitGroup
	for i, b := range bounds {
		wg.Add(1)
		go func(i int, b [2]uint64) {
			defer wg.Done()
			results[i] = crackSubrange(sch, hash, b[0], b[1], cancelEvery, isCancelled)
		}(i, b)
	}
	wg.Wait()

	return aggregate(results)
}

// partition splits [lo, hi] into at most workerThreads contiguous,
// non-empty subranges each of size >= minSize, unless the whole range is
// shorter than minSize, in which case one subrange covers it. The
// remainder of total/n is spread one index each over the first
// subranges. workerThreads and minSize are
// both clamped to 1 if given as less, so partition always returns at
// least one subrange covering the whole range.
//
// Example: partition(0, 999, 4, 100) with total=1000 splits evenly into
// four subranges of 250 each. partition(0, 149, 4, 100) instead returns
// a single subrange of 150, since only one worker's worth of minSize
// fits in the range.
func partition(lo, hi uint64, workerThreads int, minSize uint64) [][2]uint64 {
	total := hi - lo + 1
	if workerThreads < 1 {
		workerThreads = 1
	}
	if minSize < 1 {
		minSize = 1
	}

	n := uint64(workerThreads)
	if max := total / minSize; max < n {
		n = max
	}
	if n < 1 {
		n = 1
	}

	base := total / n
	rem := total % n

	bounds := make([][2]uint64, 0, n)
	cur := lo
	for i := uint64(0); i < n; i++ {
		size := base
		if i < rem {
			size++
		}
		if size == 0 {
			continue
		}
		end := cur + size - 1
		bounds = append(bounds, [2]uint64{cur, end})
		cur = end + 1
	}
	return bounds
}

// crackSubrange is the tight per-goroutine MD5 loop. It never performs
// I/O: scheme.At is a pure function over the index, and isCancelled
// reads an in-memory atomic flag.
//
// The cancellation check runs every cancelEvery iterations rather than
// every iteration, since a function call and an atomic load on the hot
// path of a multi-million-candidate loop is measurable overhead; a
// cancelEvery of zero is treated as 1 (check every iteration) rather
// than causing a divide by zero.
func crackSubrange(sch scheme.Scheme, hash string, lo, hi uint64, cancelEvery uint64, isCancelled func() bool) subrangeResult {
	if cancelEvery == 0 {
		cancelEvery = 1
	}
	for i := lo; i <= hi; i++ {
		if (i-lo)%cancelEvery == 0 && isCancelled() {
			return subrangeResult{status: StatusCancelled}
		}
		candidate, err := sch.At(i)
		if err != nil {
			return subrangeResult{status: StatusError}
		}
		sum := md5.Sum([]byte(candidate))
		if hex.EncodeToString(sum[:]) == hash {
			return subrangeResult{status: StatusFound, password: candidate}
		}
	}
	return subrangeResult{status: StatusNotFound}
}

// aggregate applies the precedence FOUND > ERROR > CANCELLED > NOT_FOUND
// across every subrange's outcome:
//
//   - any subrange FOUND wins immediately, short-circuiting the scan
//   - otherwise any ERROR makes the whole chunk ERROR (eligible for
//     retry by the master)
//   - otherwise any CANCELLED makes the whole chunk CANCELLED
//   - only if every subrange came back NOT_FOUND does the chunk resolve
//     to NOT_FOUND
//
// This mirrors the per-chunk precedence the master's chunk manager
// applies across chunks of the same job, one level down.
func aggregate(results []subrangeResult) Outcome {
	var sawError, sawCancelled bool
	for _, r := range results {
		switch r.status {
		case StatusFound:
			return Outcome{Status: StatusFound, Password: r.password}
		case StatusError:
			sawError = true
		case StatusCancelled:
			sawCancelled = true
		}
	}
	if sawError {
		return Outcome{Status: StatusError}
	}
	if sawCancelled {
		return Outcome{Status: StatusCancelled}
	}
	return Outcome{Status: StatusNotFound}
}
