package master

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dreamware/crucible/internal/wire"
)

func testOrchestrator(t *testing.T, handle func(wire.CrackRequest) wire.CrackResponse) (*Orchestrator, *Cache) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/crack":
			var req wire.CrackRequest
			json.NewDecoder(r.Body).Decode(&req)
			json.NewEncoder(w).Encode(handle(req))
		case "/cancel":
			json.NewEncoder(w).Encode(wire.CancelResponse{OK: true})
		}
	}))
	t.Cleanup(srv.Close)

	cache := NewCache()
	registry := NewRegistry([]string{srv.URL}, 3, time.Second)
	client := NewClient(2 * time.Second)
	cfg := OrchestratorConfig{
		ChunkSize: 1_000_000_000, MaxAttempts: 3, MaxConcurrentJobs: 3,
		SchemeName: "prefix10", NoMinionWait: 5 * time.Millisecond, RequestTimeout: 2 * time.Second,
	}
	return NewOrchestrator(cfg, cache, registry, client, zerolog.Nop()), cache
}

func TestOrchestrator_CacheHitSkipsDispatch(t *testing.T) {
	var dispatches int
	orch, cache := testOrchestrator(t, func(req wire.CrackRequest) wire.CrackResponse {
		dispatches++
		return wire.CrackResponse{Status: wire.StatusNotFound}
	})
	require.NoError(t, cache.Put("5f4dcc3b5aa765d61d8327deb882cf99", "password", "prefix10"))

	results := orch.Run([]string{"5f4dcc3b5aa765d61d8327deb882cf99"})
	rec := results["5f4dcc3b5aa765d61d8327deb882cf99"]
	assert.Equal(t, "FOUND", rec.Status)
	require.NotNil(t, rec.CrackedPassword)
	assert.Equal(t, "password", *rec.CrackedPassword)
	assert.Equal(t, 0, dispatches)
}

func TestOrchestrator_InvalidHash(t *testing.T) {
	orch, _ := testOrchestrator(t, func(req wire.CrackRequest) wire.CrackResponse {
		return wire.CrackResponse{Status: wire.StatusNotFound}
	})

	results := orch.Run([]string{"zznothex"})
	rec := results["zznothex"]
	assert.Equal(t, "INVALID_INPUT", rec.Status)
	assert.Nil(t, rec.CrackedPassword)
}

func TestOrchestrator_NotFoundDispatchesAndPopulatesNothing(t *testing.T) {
	orch, cache := testOrchestrator(t, func(req wire.CrackRequest) wire.CrackResponse {
		return wire.CrackResponse{Status: wire.StatusNotFound}
	})

	results := orch.Run([]string{"5f4dcc3b5aa765d61d8327deb882cf99"})
	rec := results["5f4dcc3b5aa765d61d8327deb882cf99"]
	assert.Equal(t, "NOT_FOUND", rec.Status)
	_, ok := cache.Get("5f4dcc3b5aa765d61d8327deb882cf99")
	assert.False(t, ok)
}
