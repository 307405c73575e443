package minion

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/rs/zerolog"

	"github.com/dreamware/crucible/internal/metrics"
	"github.com/dreamware/crucible/internal/wire"
)

// Config holds the worker tuning knobs a Server needs to run Crack.
type Config struct {
	WorkerThreads          int
	SubrangeMinSize        uint64
	CancellationCheckEvery uint64
}

// Server is the thin HTTP adapter over the crack worker and the
// cancellation registry. It owns no job state of its own beyond that
// registry.
type Server struct {
	cfg      Config
	registry *Registry
	log      zerolog.Logger
}

// NewServer wires cfg and a fresh cancellation registry into a router.
func NewServer(cfg Config, log zerolog.Logger) *Server {
	return &Server{cfg: cfg, registry: NewRegistry(), log: log}
}

// Router builds the mux.Router exposing health, crack, cancel, status,
// and metrics endpoints.
func (s *Server) Router() *mux.Router {
	r := mux.NewRouter()
	r.HandleFunc("/health", s.handleHealth).Methods(http.MethodGet)
	r.HandleFunc("/crack", s.handleCrack).Methods(http.MethodPost)
	r.HandleFunc("/cancel", s.handleCancel).Methods(http.MethodPost)
	r.HandleFunc("/status/{job_id}", s.handleStatus).Methods(http.MethodGet)
	r.Handle("/metrics", metrics.Handler()).Methods(http.MethodGet)
	return r
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, wire.HealthResponse{Status: "ok"})
}

func (s *Server) handleCrack(w http.ResponseWriter, r *http.Request) {
	var req wire.CrackRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusOK, wire.CrackResponse{
			Status:     wire.StatusInvalidInput,
			JobID:      req.JobID,
			SchemeName: req.SchemeName,
		})
		return
	}

	out := Crack(
		req.JobID, req.Hash, req.SchemeName, req.Lo, req.Hi,
		s.cfg.WorkerThreads, s.cfg.SubrangeMinSize, s.cfg.CancellationCheckEvery,
		func() bool { return s.registry.IsCancelled(req.JobID) },
	)
	metrics.MinionChunksProcessedTotal.WithLabelValues(out.Status).Inc()

	resp := wire.CrackResponse{
		Status:     wire.ChunkStatus(out.Status),
		JobID:      req.JobID,
		SchemeName: req.SchemeName,
	}
	if out.Status == StatusFound {
		resp.Password = out.Password
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleCancel(w http.ResponseWriter, r *http.Request) {
	var req wire.CancelRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, wire.CancelResponse{OK: false})
		return
	}
	s.registry.Cancel(req.JobID)
	s.log.Debug().Str("job_id", req.JobID).Msg("cancellation flag set")
	writeJSON(w, http.StatusOK, wire.CancelResponse{OK: true})
}

func (s *Server) handleStatus(w http.ResponseWriter, r *http.Request) {
	jobID := mux.Vars(r)["job_id"]
	writeJSON(w, http.StatusOK, wire.StatusResponse{
		JobID:     jobID,
		Cancelled: s.registry.IsCancelled(jobID),
	})
}

func writeJSON(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}
