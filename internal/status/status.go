// Package status tracks cycle outcomes and exposes them over a local
// liveness endpoint. It serves counters only, never metric payloads.
package status

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// Status accumulates cycle outcomes. All mutators are nil-safe so callers do
// not need to care whether the endpoint is enabled.
type Status struct {
	mu            sync.Mutex
	startedAt     time.Time
	cycles        uint64
	failedCycles  uint64
	historyWrites uint64
	lastSuccess   time.Time
	lastError     string
}

// New creates a Status anchored at the current time.
func New() *Status {
	return &Status{startedAt: time.Now()}
}

// CycleOK records a successfully published cycle.
func (s *Status) CycleOK() {
	if s == nil {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cycles++
	s.lastSuccess = time.Now()
	s.lastError = ""
}

// CycleFailed records a failed cycle and keeps its error for /status.
func (s *Status) CycleFailed(err error) {
	if s == nil {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cycles++
	s.failedCycles++
	s.lastError = err.Error()
}

// HistoryWritten records one successful history upload.
func (s *Status) HistoryWritten() {
	if s == nil {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.historyWrites++
}

type report struct {
	StartedAt     string `json:"started_at"`
	Cycles        uint64 `json:"cycles"`
	FailedCycles  uint64 `json:"failed_cycles"`
	HistoryWrites uint64 `json:"history_writes"`
	LastSuccess   string `json:"last_success"`
	LastError     string `json:"last_error"`
}

func (s *Status) snapshot() report {
	s.mu.Lock()
	defer s.mu.Unlock()
	r := report{
		StartedAt:     s.startedAt.UTC().Format(time.RFC3339),
		Cycles:        s.cycles,
		FailedCycles:  s.failedCycles,
		HistoryWrites: s.historyWrites,
		LastError:     s.lastError,
	}
	if !s.lastSuccess.IsZero() {
		r.LastSuccess = s.lastSuccess.UTC().Format(time.RFC3339)
	}
	return r
}

// Router builds the HTTP surface: GET /healthz and GET /status.
func (s *Status) Router(logger *zap.SugaredLogger) chi.Router {
	r := chi.NewRouter()
	r.Use(logMiddleware(logger))
	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	r.Get("/status", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(s.snapshot())
	})
	return r
}

// Serve runs the endpoint until ctx is cancelled.
func (s *Status) Serve(ctx context.Context, addr string, logger *zap.SugaredLogger) error {
	srv := &http.Server{Addr: addr, Handler: s.Router(logger)}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	}()

	logger.Infof("status endpoint listening on %s", addr)
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
