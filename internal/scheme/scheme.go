package scheme

import "fmt"

// ErrInvalidIndex is returned by Scheme.At when the requested index falls
// outside [0, Size()).
var ErrInvalidIndex = fmt.Errorf("index out of range")

// Scheme is an immutable, named, finite, indexable candidate sequence.
//
// Implementations must be pure functions of the index: At(i) must always
// return the same string for the same i, with no side effects, so that a
// single Scheme value can be shared across concurrent worker goroutines
// without locking.
type Scheme interface {
	// Size reports the total number of candidates in the sequence.
	Size() uint64

	// At returns the candidate at index i. It returns ErrInvalidIndex if
	// i is not in [0, Size()).
	At(i uint64) (string, error)
}
