package scheme

import "fmt"

const (
	prefixModulus = 10_000_000 // 10^7: width of the numeric suffix
	prefixSize    = 1_000 * prefixModulus
)

// prefixScheme is the illustrative scheme from the design: candidates have
// the form "NNN-DDDDDDD", a 3-digit numeric prefix followed by a dash and
// a 7-digit number, yielding 10^10 candidates total.
type prefixScheme struct{}

// PrefixScheme is the built-in "prefix10" scheme.
var PrefixScheme Scheme = prefixScheme{}

func (prefixScheme) Size() uint64 {
	return prefixSize
}

func (prefixScheme) At(i uint64) (string, error) {
	if i >= prefixSize {
		return "", ErrInvalidIndex
	}
	prefix := i / prefixModulus
	suffix := i % prefixModulus
	return fmt.Sprintf("%03d-%07d", prefix, suffix), nil
}
