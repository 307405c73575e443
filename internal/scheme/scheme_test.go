package scheme

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPrefixScheme_Size(t *testing.T) {
	assert.Equal(t, uint64(10_000_000_000), PrefixScheme.Size())
}

func TestPrefixScheme_At(t *testing.T) {
	tests := []struct {
		name  string
		index uint64
		want  string
	}{
		{"first candidate", 0, "000-0000000"},
		{"suffix rollover", 10_000_000, "001-0000000"},
		{"mid range", 150_000, "000-0150000"},
		{"last candidate", 10_000_000_000 - 1, "999-9999999"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := PrefixScheme.At(tt.index)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestPrefixScheme_AtOutOfRange(t *testing.T) {
	_, err := PrefixScheme.At(PrefixScheme.Size())
	assert.ErrorIs(t, err, ErrInvalidIndex)
}

func TestLookup(t *testing.T) {
	s, err := Lookup(DefaultSchemeName)
	require.NoError(t, err)
	assert.Equal(t, PrefixScheme, s)

	_, err = Lookup("does-not-exist")
	assert.Error(t, err)
}
