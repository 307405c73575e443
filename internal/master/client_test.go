package master

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dreamware/crucible/internal/wire"
)

func TestClient_CrackSuccess(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/crack", r.URL.Path)
		json.NewEncoder(w).Encode(wire.CrackResponse{Status: wire.StatusFound, Password: "password", JobID: "j1"})
	}))
	defer srv.Close()

	c := NewClient(time.Second)
	out := c.Crack(context.Background(), srv.URL, wire.CrackRequest{JobID: "j1"})
	assert.Equal(t, wire.StatusFound, out.Status)
	assert.Equal(t, "password", out.Password)
}

func TestClient_CrackNon2xxIsError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	c := NewClient(time.Second)
	out := c.Crack(context.Background(), srv.URL, wire.CrackRequest{JobID: "j1"})
	assert.Equal(t, wire.StatusError, out.Status)
}

func TestClient_CrackUnreachableIsError(t *testing.T) {
	c := NewClient(50 * time.Millisecond)
	out := c.Crack(context.Background(), "http://127.0.0.1:1", wire.CrackRequest{JobID: "j1"})
	assert.Equal(t, wire.StatusError, out.Status)
}

func TestClient_CancelOK(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/cancel", r.URL.Path)
		json.NewEncoder(w).Encode(wire.CancelResponse{OK: true})
	}))
	defer srv.Close()

	c := NewClient(time.Second)
	require.NoError(t, c.Cancel(context.Background(), srv.URL, "j1"))
}

func TestClient_Health(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(wire.HealthResponse{Status: "ok"})
	}))
	defer srv.Close()

	c := NewClient(time.Second)
	require.NoError(t, c.Health(context.Background(), srv.URL))
}
