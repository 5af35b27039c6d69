// Package http exposes the release controller to a ground station over HTTP.
package http

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/promistrio/albatros-chute"
	"github.com/promistrio/albatros-chute/pkg/domain"
	"github.com/promistrio/albatros-chute/pkg/ports"
)

// Engine defines what the API needs from the release controller.
type Engine interface {
	ManualRelease(ctx context.Context, t domain.Telemetry) (bool, []domain.Notification)
	State() domain.ReleaseState
	AutoReady() bool
	FlightID() string
	Config() domain.Config
}

// TelemetryStore holds the latest snapshot received from the vehicle link.
type TelemetryStore interface {
	Set(t domain.Telemetry)
	Telemetry() domain.Telemetry
}

// Server holds the API dependencies.
type Server struct {
	Engine    Engine
	Telemetry TelemetryStore
	Recorder  ports.FlightRecorder
	Streams   *StreamManager
	Auth      *Authenticator
	metrics   http.Handler
	logger    *slog.Logger
}

// Option configures the Server.
type Option func(*Server)

// WithTelemetry sets where POST /telemetry stores snapshots.
func WithTelemetry(store TelemetryStore) Option {
	return func(s *Server) {
		s.Telemetry = store
	}
}

// WithRecorder enables the /flights endpoints.
func WithRecorder(rec ports.FlightRecorder) Option {
	return func(s *Server) {
		s.Recorder = rec
	}
}

// WithStreams shares a StreamManager whose Hooks are registered on the engine.
func WithStreams(sm *StreamManager) Option {
	return func(s *Server) {
		s.Streams = sm
	}
}

// WithAuth requires bearer tokens on every route except /health.
func WithAuth(a *Authenticator) Option {
	return func(s *Server) {
		s.Auth = a
	}
}

// WithMetricsHandler mounts h on GET /metrics.
func WithMetricsHandler(h http.Handler) Option {
	return func(s *Server) {
		s.metrics = h
	}
}

// WithLogger sets the request logger.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Server) {
		s.logger = logger
	}
}

// NewHandler creates the HTTP handler for the engine.
func NewHandler(engine Engine, opts ...Option) http.Handler {
	s := &Server{
		Engine:    engine,
		Telemetry: &chute.LatestTelemetry{},
		Streams:   NewStreamManager(),
		logger:    slog.New(slog.NewJSONHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(s)
	}

	r := chi.NewRouter()
	r.Get("/health", s.GetHealth)

	read := r.With(s.require(RoleViewer, RoleLink, RolePilot))
	read.Get("/info", s.GetInfo)
	read.Get("/status", s.GetStatus)
	read.Get("/events", s.SubscribeEvents)
	if s.Recorder != nil {
		read.Get("/flights", s.ListFlights)
		read.Get("/flights/{id}/events", s.FlightEvents)
	}
	if s.metrics != nil {
		read.Method(http.MethodGet, "/metrics", s.metrics)
	}

	r.With(s.require(RoleLink, RolePilot)).Post("/telemetry", s.PostTelemetry)
	r.With(s.require(RolePilot)).Post("/release", s.PostRelease)
	return enableCORS(r)
}

// require is a no-op when auth is not configured.
func (s *Server) require(roles ...Role) func(http.Handler) http.Handler {
	if s.Auth == nil {
		return func(next http.Handler) http.Handler { return next }
	}
	return s.Auth.Require(roles...)
}

func enableCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")
		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusOK)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// StatusResponse is the body of GET /status.
type StatusResponse struct {
	FlightID    string        `json:"flight_id"`
	Phase       domain.Phase  `json:"phase"`
	Released    bool          `json:"released"`
	Initiated   bool          `json:"initiated"`
	InProgress  bool          `json:"in_progress"`
	ReleaseTime *time.Time    `json:"release_time,omitempty"`
	AutoReady   bool          `json:"auto_ready"`
	Config      domain.Config `json:"config"`
}

// ReleaseResponse is the body of POST /release.
type ReleaseResponse struct {
	Accepted      bool                  `json:"accepted"`
	Notifications []domain.Notification `json:"notifications"`
}

// GetHealth handles the GET /health request.
func (s *Server) GetHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// GetInfo handles the GET /info request.
func (s *Server) GetInfo(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{
		"app":     "chute-http",
		"version": strings.TrimSpace(chute.Version),
	})
}

// GetStatus handles the GET /status request.
func (s *Server) GetStatus(w http.ResponseWriter, r *http.Request) {
	st := s.Engine.State()
	writeJSON(w, http.StatusOK, StatusResponse{
		FlightID:    s.Engine.FlightID(),
		Phase:       st.Phase(),
		Released:    st.Released,
		Initiated:   st.Initiated,
		InProgress:  st.InProgress,
		ReleaseTime: st.ReleaseTime,
		AutoReady:   s.Engine.AutoReady(),
		Config:      s.Engine.Config(),
	})
}

// PostTelemetry handles the POST /telemetry request.
func (s *Server) PostTelemetry(w http.ResponseWriter, r *http.Request) {
	var t domain.Telemetry
	if err := json.NewDecoder(r.Body).Decode(&t); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		s.logger.Warn("PostTelemetry: invalid request body", "err", err)
		return
	}
	s.Telemetry.Set(t)
	w.WriteHeader(http.StatusNoContent)
}

// PostRelease handles the POST /release request: a pilot release command evaluated
// against the latest telemetry. Rejected commands answer 409.
func (s *Server) PostRelease(w http.ResponseWriter, r *http.Request) {
	ok, notes := s.Engine.ManualRelease(r.Context(), s.Telemetry.Telemetry())
	if notes == nil {
		notes = []domain.Notification{}
	}

	status := http.StatusOK
	if !ok {
		status = http.StatusConflict
	}
	pilot := "anonymous"
	if c, found := ClaimsFromContext(r.Context()); found {
		pilot = c.Subject
	}
	s.logger.Info("manual release command", "accepted", ok, "flight", s.Engine.FlightID(), "pilot", pilot)
	writeJSON(w, status, ReleaseResponse{Accepted: ok, Notifications: notes})
}

// ListFlights handles the GET /flights request.
func (s *Server) ListFlights(w http.ResponseWriter, r *http.Request) {
	flights, err := s.Recorder.Flights(r.Context())
	if err != nil {
		http.Error(w, fmt.Sprintf("List error: %v", err), http.StatusInternalServerError)
		s.logger.Error("ListFlights failed", "err", err)
		return
	}
	if flights == nil {
		flights = []string{}
	}
	writeJSON(w, http.StatusOK, flights)
}

// FlightEvents handles the GET /flights/{id}/events request.
func (s *Server) FlightEvents(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	events, err := s.Recorder.Events(r.Context(), id)
	if err != nil {
		if errors.Is(err, domain.ErrFlightNotFound) {
			http.Error(w, fmt.Sprintf("Flight %q not found", id), http.StatusNotFound)
			return
		}
		http.Error(w, fmt.Sprintf("Events error: %v", err), http.StatusInternalServerError)
		s.logger.Error("FlightEvents failed", "flight", id, "err", err)
		return
	}
	writeJSON(w, http.StatusOK, events)
}

// SubscribeEvents handles the GET /events request (SSE), streaming every
// notification as it is sent to the operator.
func (s *Server) SubscribeEvents(w http.ResponseWriter, r *http.Request) {
	flusher, ok := w.(http.Flusher)
	if !ok {
		http.Error(w, "Streaming not supported", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")

	ch, cancel := s.Streams.Subscribe()
	defer cancel()

	fmt.Fprintf(w, "event: ping\ndata: connected\n\n")
	flusher.Flush()

	for {
		select {
		case <-r.Context().Done():
			return
		case msg, ok := <-ch:
			if !ok {
				return
			}
			fmt.Fprintf(w, "event: notification\ndata: %s\n\n", msg)
			flusher.Flush()
		}
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
