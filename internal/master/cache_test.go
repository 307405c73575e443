package master

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCache_MissThenHit(t *testing.T) {
	c := NewCache()
	_, ok := c.Get("5f4dcc3b5aa765d61d8327deb882cf99")
	assert.False(t, ok)

	require.NoError(t, c.Put("5f4dcc3b5aa765d61d8327deb882cf99", "password", "prefix10"))
	e, ok := c.Get("5f4dcc3b5aa765d61d8327deb882cf99")
	require.True(t, ok)
	assert.Equal(t, "password", e.Password)
	assert.Equal(t, "prefix10", e.SchemeName)
}

func TestCache_PutSamePasswordIsIdempotent(t *testing.T) {
	c := NewCache()
	require.NoError(t, c.Put("h", "p", "s"))
	require.NoError(t, c.Put("h", "p", "s"))
}

func TestCache_MonotonicityViolationRejected(t *testing.T) {
	c := NewCache()
	require.NoError(t, c.Put("h", "p1", "s"))
	err := c.Put("h", "p2", "s")
	assert.Error(t, err)

	e, ok := c.Get("h")
	require.True(t, ok)
	assert.Equal(t, "p1", e.Password, "original entry must survive a rejected overwrite")
}

func TestCache_ConcurrentAccess(t *testing.T) {
	c := NewCache()
	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_ = c.Put("h", "p", "s")
			c.Get("h")
		}(i)
	}
	wg.Wait()

	e, ok := c.Get("h")
	require.True(t, ok)
	assert.Equal(t, "p", e.Password)
}
