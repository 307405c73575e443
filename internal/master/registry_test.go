package master

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegistry_RoundRobin(t *testing.T) {
	r := NewRegistry([]string{"a", "b", "c"}, 3, time.Second)

	seen := make([]string, 3)
	for i := range seen {
		ep := r.NextAvailable()
		require.NotNil(t, ep)
		seen[i] = ep.URL
	}
	assert.Equal(t, []string{"a", "b", "c"}, seen)

	// cursor wraps
	ep := r.NextAvailable()
	require.NotNil(t, ep)
	assert.Equal(t, "a", ep.URL)
}

func TestRegistry_SkipsOpenBreakers(t *testing.T) {
	r := NewRegistry([]string{"a", "b"}, 1, time.Hour)

	epA := r.NextAvailable()
	require.Equal(t, "a", epA.URL)
	r.RecordFailure(epA) // opens a's breaker

	// next call should skip a (now open) and return b
	ep := r.NextAvailable()
	require.NotNil(t, ep)
	assert.Equal(t, "b", ep.URL)
}

func TestRegistry_NilWhenAllOpen(t *testing.T) {
	r := NewRegistry([]string{"a", "b"}, 1, time.Hour)
	for _, ep := range r.All() {
		r.RecordFailure(ep)
	}
	assert.Nil(t, r.NextAvailable())
}

func TestRegistry_EmptyReturnsNil(t *testing.T) {
	r := NewRegistry(nil, 3, time.Second)
	assert.Nil(t, r.NextAvailable())
}
