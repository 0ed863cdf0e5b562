package bridgesim

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/bridgectl/bridgectl/internal/api"
	"github.com/bridgectl/bridgectl/internal/constants"
	apperrors "github.com/bridgectl/bridgectl/internal/errors"
	"github.com/bridgectl/bridgectl/internal/logger"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
)

// Router exposes the bridge HTTP and WebSocket surface over a Simulator.
type Router struct {
	router    *chi.Mux
	sim       *Simulator
	hub       *Hub
	recorder  *recorder
	apiKey    string
	keyHeader string
	logger    *slog.Logger
}

// NewRouter creates a router serving the bridge API for the given simulator.
// Every request must carry apiKey in the keyHeader header. State changes in
// the simulator are pushed to WebSocket subscribers.
func NewRouter(sim *Simulator, apiKey, keyHeader string, log *slog.Logger) *Router {
	if keyHeader == "" {
		keyHeader = constants.DefaultKeyHeader
	}

	router := &Router{
		router:    chi.NewRouter(),
		sim:       sim,
		hub:       NewHub(log),
		recorder:  newRecorder(),
		apiKey:    apiKey,
		keyHeader: keyHeader,
		logger:    log,
	}

	sim.OnStateChange(router.hub.BroadcastStateChange)

	r := router.router
	r.Use(router.recordRequestMiddleware)
	r.Use(router.authenticateRequestMiddleware)

	r.Get("/state", router.handleState)
	r.Post("/command", router.handleCommand)
	r.Post("/batch", router.handleBatch)
	r.Get("/errors", router.handleErrors)
	r.Get("/output/{pane}", router.handleOutput)
	r.Get("/logs", router.handleLogs)
	r.Get("/metrics", router.handleMetrics)
	r.Get("/ws", router.hub.ServeWS)

	return router
}

// ServeHTTP implements http.Handler.
func (r *Router) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	r.router.ServeHTTP(w, req)
}

// Hub returns the WebSocket hub, used by the server for shutdown.
func (r *Router) Hub() *Hub {
	return r.hub
}

// statusRecorder captures the status code written by a handler.
type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (w *statusRecorder) WriteHeader(status int) {
	w.status = status
	w.ResponseWriter.WriteHeader(status)
}

// recordRequestMiddleware appends a request-log entry for every HTTP request.
// WebSocket upgrades are excluded; a hijacked connection has no meaningful
// duration or status.
func (r *Router) recordRequestMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		if req.URL.Path == "/ws" {
			next.ServeHTTP(w, req)
			return
		}

		start := time.Now()
		ctx := logger.WithRequestID(req.Context(), uuid.NewString())
		recorder := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(recorder, req.WithContext(ctx))

		duration := time.Since(start)
		r.recorder.record(req.Method, req.URL.Path, recorder.status, duration)
		logger.DeriveRequestLogger(ctx, r.logger).Debug("request handled",
			"method", req.Method,
			"path", req.URL.Path,
			"status", recorder.status,
			"duration", duration,
		)
	})
}

// authenticateRequestMiddleware rejects requests missing the configured API
// key header.
func (r *Router) authenticateRequestMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		key := req.Header.Get(r.keyHeader)
		if key == "" {
			writeError(w, apperrors.ErrUnauthorized("API key is required", nil))
			return
		}
		if key != r.apiKey {
			writeError(w, apperrors.ErrUnauthorized("invalid API key", nil))
			return
		}
		next.ServeHTTP(w, req)
	})
}

func (r *Router) handleState(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, api.StateResponse{Snapshot: r.sim.Snapshot()})
}

func (r *Router) handleCommand(w http.ResponseWriter, req *http.Request) {
	var cmd api.Command
	if err := json.NewDecoder(req.Body).Decode(&cmd); err != nil {
		writeError(w, apperrors.ErrBadRequest("invalid request body", err))
		return
	}
	if cmd.Action == "" {
		writeError(w, apperrors.ErrBadRequest("action is required", nil))
		return
	}

	writeJSON(w, http.StatusOK, r.sim.Apply(cmd))
}

func (r *Router) handleBatch(w http.ResponseWriter, req *http.Request) {
	var batch api.BatchRequest
	if err := json.NewDecoder(req.Body).Decode(&batch); err != nil {
		writeError(w, apperrors.ErrBadRequest("invalid request body", err))
		return
	}
	if len(batch.Commands) == 0 {
		writeError(w, apperrors.ErrBadRequest("commands must not be empty", nil))
		return
	}

	writeJSON(w, http.StatusOK, r.sim.ApplyBatch(batch))
}

func (r *Router) handleErrors(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, r.sim.Errors())
}

// handleOutput returns an output pane as plain text, 404 when the pane does
// not exist.
func (r *Router) handleOutput(w http.ResponseWriter, req *http.Request) {
	pane := chi.URLParam(req, "pane")
	content, err := r.sim.Pane(pane)
	if err != nil {
		writeError(w, err)
		return
	}

	w.Header().Set(constants.ContentTypeHeader, "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(content))
}

func (r *Router) handleLogs(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, r.recorder.Logs())
}

func (r *Router) handleMetrics(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, r.recorder.Metrics(r.hub.ConnectionCount()))
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set(constants.ContentTypeHeader, "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, err error) {
	writeJSON(w, apperrors.GetStatusCode(err), api.ErrorResponse{
		Error:   apperrors.GetErrorMessage(err),
		Details: apperrors.GetErrorDetails(err),
	})
}
