// Package http exposes the interpreter over a JSON API: parsing and
// validation, the canonical encoding, the built-in catalog, and persisted
// execution sessions.
package http

import (
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/turlang/tur/internal/session"
	"github.com/turlang/tur/pkg/codec"
	"github.com/turlang/tur/pkg/domain"
	"github.com/turlang/tur/pkg/dsl"
	"github.com/turlang/tur/pkg/machine"
	"github.com/turlang/tur/pkg/ports"
)

// Server handles the JSON API.
type Server struct {
	catalog  ports.Catalog
	sessions *session.Manager
	logger   *slog.Logger
	metrics  *metrics
}

// NewHandler wires the API routes, health endpoint and Prometheus metrics
// into a single handler.
func NewHandler(catalog ports.Catalog, sessions *session.Manager, logger *slog.Logger) http.Handler {
	reg := prometheus.NewRegistry()
	s := &Server{
		catalog:  catalog,
		sessions: sessions,
		logger:   logger,
		metrics:  newMetrics(reg),
	}

	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(s.observe)

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	r.Handle("/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{}))

	r.Route("/api", func(r chi.Router) {
		r.Post("/parse", s.handleParse)
		r.Post("/encode", s.handleEncode)
		r.Post("/decode", s.handleDecode)

		r.Get("/programs", s.handleListPrograms)
		r.Get("/programs/{name}", s.handleGetProgram)

		r.Post("/sessions", s.handleCreateSession)
		r.Get("/sessions", s.handleListSessions)
		r.Route("/sessions/{id}", func(r chi.Router) {
			r.Get("/", s.handleGetSession)
			r.Delete("/", s.handleDeleteSession)
			r.Post("/step", s.handleStep)
			r.Post("/run", s.handleRun)
			r.Post("/reset", s.handleReset)
			r.Put("/tapes", s.handleSetTapes)
		})
	})

	return r
}

// observe records per-route request durations.
func (s *Server) observe(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		next.ServeHTTP(w, r)

		route := chi.RouteContext(r.Context()).RoutePattern()
		if route == "" {
			route = r.URL.Path
		}
		s.metrics.requestDuration.WithLabelValues(route).Observe(time.Since(start).Seconds())
	})
}

type parseRequest struct {
	Source string `json:"source"`
}

type encodeResponse struct {
	Encoded string `json:"encoded"`
}

type decodeRequest struct {
	Encoded string `json:"encoded"`
}

type createSessionRequest struct {
	ID      string `json:"id,omitempty"`
	Program string `json:"program,omitempty"`
	Source  string `json:"source,omitempty"`
}

type stepRequest struct {
	Count int `json:"count"`
}

type setTapesRequest struct {
	Tapes []string `json:"tapes"`
}

// sessionResponse pairs a session with the outcome of the operation that
// produced it. A strict-mode halt surfaces as halt_reason, not as an HTTP
// error: the run ended, the API call succeeded.
type sessionResponse struct {
	Session    *domain.Session `json:"session"`
	Outcome    string          `json:"outcome,omitempty"`
	HaltReason string          `json:"halt_reason,omitempty"`
}

func (s *Server) handleParse(w http.ResponseWriter, r *http.Request) {
	var req parseRequest
	if !s.decode(w, r, &req) {
		return
	}

	program, err := dsl.Parse(req.Source)
	if err != nil {
		s.metrics.programsParsed.WithLabelValues("error").Inc()
		s.writeError(w, err)
		return
	}
	s.metrics.programsParsed.WithLabelValues("ok").Inc()
	s.writeJSON(w, http.StatusOK, program)
}

func (s *Server) handleEncode(w http.ResponseWriter, r *http.Request) {
	var req parseRequest
	if !s.decode(w, r, &req) {
		return
	}

	program, err := dsl.Parse(req.Source)
	if err != nil {
		s.writeError(w, err)
		return
	}
	encoded, err := codec.Encode(program)
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, encodeResponse{Encoded: encoded})
}

func (s *Server) handleDecode(w http.ResponseWriter, r *http.Request) {
	var req decodeRequest
	if !s.decode(w, r, &req) {
		return
	}

	program, err := codec.Decode(req.Encoded)
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, program)
}

func (s *Server) handleListPrograms(w http.ResponseWriter, _ *http.Request) {
	s.writeJSON(w, http.StatusOK, s.catalog.List())
}

func (s *Server) handleGetProgram(w http.ResponseWriter, r *http.Request) {
	program, err := s.catalog.Get(chi.URLParam(r, "name"))
	if err != nil {
		s.writeJSON(w, http.StatusNotFound, map[string]string{"error": err.Error()})
		return
	}
	s.writeJSON(w, http.StatusOK, program)
}

func (s *Server) handleCreateSession(w http.ResponseWriter, r *http.Request) {
	var req createSessionRequest
	if !s.decode(w, r, &req) {
		return
	}

	var program *domain.Program
	var err error
	switch {
	case req.Source != "":
		program, err = dsl.Parse(req.Source)
	case req.Program != "":
		program, err = s.catalog.Get(req.Program)
	default:
		err = domain.Validationf("either 'program' or 'source' is required")
	}
	if err != nil {
		s.writeError(w, err)
		return
	}

	created, err := s.sessions.Create(r.Context(), req.ID, program)
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.metrics.sessionsCreated.Inc()
	s.writeJSON(w, http.StatusCreated, sessionResponse{Session: created})
}

func (s *Server) handleListSessions(w http.ResponseWriter, r *http.Request) {
	ids, err := s.sessions.List(r.Context())
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, ids)
}

func (s *Server) handleGetSession(w http.ResponseWriter, r *http.Request) {
	found, err := s.sessions.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, sessionResponse{Session: found})
}

func (s *Server) handleDeleteSession(w http.ResponseWriter, r *http.Request) {
	if err := s.sessions.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		s.writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleStep(w http.ResponseWriter, r *http.Request) {
	var req stepRequest
	if !s.decode(w, r, &req) {
		return
	}
	if req.Count == 0 {
		req.Count = 1
	}

	before := 0
	if current, err := s.sessions.Get(r.Context(), chi.URLParam(r, "id")); err == nil {
		before = current.Snapshot.Steps
	}

	updated, outcome, err := s.sessions.Step(r.Context(), chi.URLParam(r, "id"), req.Count)
	s.writeAdvance(w, updated, outcome, err, before)
}

func (s *Server) handleRun(w http.ResponseWriter, r *http.Request) {
	before := 0
	if current, err := s.sessions.Get(r.Context(), chi.URLParam(r, "id")); err == nil {
		before = current.Snapshot.Steps
	}

	updated, outcome, err := s.sessions.Run(r.Context(), chi.URLParam(r, "id"))
	s.writeAdvance(w, updated, outcome, err, before)
}

// writeAdvance renders the result of a step or run. Strict-mode halts come
// back as a halt reason on a 200 response.
func (s *Server) writeAdvance(w http.ResponseWriter, updated *domain.Session, outcome machine.Outcome, err error, before int) {
	var uerr *domain.UndefinedTransitionError
	if err != nil && !errors.As(err, &uerr) {
		s.writeError(w, err)
		return
	}

	resp := sessionResponse{Session: updated, Outcome: outcome.String()}
	if uerr != nil {
		resp.HaltReason = uerr.Error()
	}
	s.metrics.stepsExecuted.Add(float64(updated.Snapshot.Steps - before))
	s.writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleReset(w http.ResponseWriter, r *http.Request) {
	updated, err := s.sessions.Reset(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, sessionResponse{Session: updated})
}

func (s *Server) handleSetTapes(w http.ResponseWriter, r *http.Request) {
	var req setTapesRequest
	if !s.decode(w, r, &req) {
		return
	}

	updated, err := s.sessions.SetTapes(r.Context(), chi.URLParam(r, "id"), req.Tapes)
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, sessionResponse{Session: updated})
}

// decode reads a JSON body into v. An empty body leaves v at its zero
// value, so operations with all-optional parameters work without one.
func (s *Server) decode(w http.ResponseWriter, r *http.Request, v any) bool {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil && !errors.Is(err, io.EOF) {
		s.writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
		return false
	}
	return true
}

// writeError maps domain errors onto HTTP statuses: user mistakes are 400,
// missing sessions are 404, anything else is a 500.
func (s *Server) writeError(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError

	var perr *domain.ParseError
	var verr *domain.ValidationError
	switch {
	case errors.Is(err, domain.ErrSessionNotFound):
		status = http.StatusNotFound
	case errors.As(err, &perr), errors.As(err, &verr):
		status = http.StatusBadRequest
	}

	if status == http.StatusInternalServerError {
		s.logger.Error("request failed", "error", err)
	}
	s.writeJSON(w, status, map[string]string{"error": err.Error()})
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.logger.Error("response encode failed", "error", err)
	}
}
