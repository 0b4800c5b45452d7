// Package http exposes machines over a JSON HTTP API.
package http

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"

	"github.com/aretw0/turing"
	"github.com/aretw0/turing/internal/presentation/graph"
	"github.com/aretw0/turing/pkg/domain"
	"github.com/go-chi/chi/v5"
)

// MaxBodyBytes bounds request bodies.
const MaxBodyBytes = 1 << 20

// Machines is the lookup the server needs; *registry.Registry satisfies it.
type Machines interface {
	List() ([]string, error)
	Get(name string) (*turing.Engine, error)
}

// Server serves the machines known to a registry.
type Server struct {
	Machines    Machines
	Streams     *StreamManager
	Logger      *slog.Logger
	Concurrency int
}

// Option configures the Server.
type Option func(*Server)

// WithStreams enables GET /machines/{name}/events. The manager's hooks
// must be attached to the engines for events to flow.
func WithStreams(sm *StreamManager) Option {
	return func(s *Server) {
		s.Streams = sm
	}
}

// WithLogger sets the request logger.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Server) {
		s.Logger = logger
	}
}

// WithConcurrency bounds batch requests.
func WithConcurrency(n int) Option {
	return func(s *Server) {
		s.Concurrency = n
	}
}

// NewHandler creates a new HTTP handler for the machines.
func NewHandler(machines Machines, opts ...Option) http.Handler {
	server := &Server{
		Machines:    machines,
		Concurrency: turing.DefaultConcurrency,
	}
	for _, opt := range opts {
		opt(server)
	}
	if server.Logger == nil {
		server.Logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	r := chi.NewRouter()
	r.Get("/health", server.GetHealth)
	r.Get("/info", server.GetInfo)
	r.Route("/machines", func(r chi.Router) {
		r.Get("/", server.ListMachines)
		r.Route("/{name}", func(r chi.Router) {
			r.Get("/", server.GetMachine)
			r.Get("/graph", server.GetGraph)
			r.Post("/execute", server.Execute)
			r.Post("/batch", server.Batch)
			if server.Streams != nil {
				r.Get("/events", server.SubscribeEvents)
			}
		})
	})
	return enableCORS(r)
}

func enableCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusOK)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// ExecuteRequest is the body of POST /machines/{name}/execute.
type ExecuteRequest struct {
	Input string `json:"input"`
	// Raw skips sentinel framing.
	Raw bool `json:"raw,omitempty"`
	// Trace returns every applied transition.
	Trace bool `json:"trace,omitempty"`
}

// ExecuteResponse wraps the run. Trace is only set when requested.
type ExecuteResponse struct {
	Run   *domain.Run        `json:"run"`
	Trace []domain.StepEvent `json:"trace,omitempty"`
}

// BatchRequest is the body of POST /machines/{name}/batch.
type BatchRequest struct {
	Inputs []string `json:"inputs"`
}

// BatchResponse lists one run per input, in order.
type BatchResponse struct {
	Runs []*domain.Run `json:"runs"`
}

// MachineResponse describes one machine.
type MachineResponse struct {
	Definition *domain.Definition `json:"definition"`
	Digest     string             `json:"digest"`
	Capacity   int                `json:"capacity"`
}

// ErrorResponse is written for every non-2xx status.
type ErrorResponse struct {
	Error string `json:"error"`
	Kind  string `json:"kind,omitempty"`
}

// GetHealth handles the GET /health request.
func (s *Server) GetHealth(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// GetInfo handles the GET /info request.
func (s *Server) GetInfo(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, map[string]string{
		"app":     "turing-http",
		"version": strings.TrimSpace(turing.Version),
	})
}

// ListMachines handles the GET /machines request.
func (s *Server) ListMachines(w http.ResponseWriter, r *http.Request) {
	names, err := s.Machines.List()
	if err != nil {
		s.fail(w, http.StatusInternalServerError, err)
		return
	}
	s.writeJSON(w, http.StatusOK, map[string][]string{"machines": names})
}

// GetMachine handles the GET /machines/{name} request.
func (s *Server) GetMachine(w http.ResponseWriter, r *http.Request) {
	eng, ok := s.engine(w, r)
	if !ok {
		return
	}
	s.writeJSON(w, http.StatusOK, MachineResponse{
		Definition: eng.Definition(),
		Digest:     eng.Digest(),
		Capacity:   eng.Capacity(),
	})
}

// GetGraph handles the GET /machines/{name}/graph request.
func (s *Server) GetGraph(w http.ResponseWriter, r *http.Request) {
	eng, ok := s.engine(w, r)
	if !ok {
		return
	}
	chart, err := graph.GenerateMermaid(eng.Definition(), nil)
	if err != nil {
		s.fail(w, http.StatusInternalServerError, err)
		return
	}
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	_, _ = io.WriteString(w, chart)
}

// Execute handles the POST /machines/{name}/execute request.
// Execution failures return 422 with the failed run as the body.
func (s *Server) Execute(w http.ResponseWriter, r *http.Request) {
	eng, ok := s.engine(w, r)
	if !ok {
		return
	}
	var body ExecuteRequest
	if !s.decode(w, r, &body) {
		return
	}

	resp := ExecuteResponse{}
	var err error
	switch {
	case body.Trace:
		resp.Trace = make([]domain.StepEvent, 0)
		resp.Run, err = eng.Trace(r.Context(), body.Input, body.Raw, func(ev domain.StepEvent) {
			resp.Trace = append(resp.Trace, ev)
		})
	case body.Raw:
		resp.Run, err = eng.ExecuteRaw(r.Context(), body.Input)
	default:
		resp.Run, err = eng.Execute(r.Context(), body.Input)
	}

	if resp.Run == nil {
		s.fail(w, http.StatusInternalServerError, err)
		return
	}
	status := http.StatusOK
	if resp.Run.Failed() {
		status = http.StatusUnprocessableEntity
	}
	s.writeJSON(w, status, resp)
}

// Batch handles the POST /machines/{name}/batch request.
func (s *Server) Batch(w http.ResponseWriter, r *http.Request) {
	eng, ok := s.engine(w, r)
	if !ok {
		return
	}
	var body BatchRequest
	if !s.decode(w, r, &body) {
		return
	}

	runs, err := eng.Batch(r.Context(), body.Inputs, s.Concurrency)
	if err != nil {
		s.fail(w, http.StatusInternalServerError, err)
		return
	}
	s.writeJSON(w, http.StatusOK, BatchResponse{Runs: runs})
}

// engine resolves {name} or writes the error response.
func (s *Server) engine(w http.ResponseWriter, r *http.Request) (*turing.Engine, bool) {
	name := chi.URLParam(r, "name")
	eng, err := s.Machines.Get(name)
	switch {
	case err == nil:
		return eng, true
	case errors.Is(err, domain.ErrMachineNotFound):
		s.fail(w, http.StatusNotFound, err)
	default:
		s.Logger.Error("machine load failed", "machine", name, "err", err)
		s.fail(w, http.StatusInternalServerError, err)
	}
	return nil, false
}

func (s *Server) decode(w http.ResponseWriter, r *http.Request, target any) bool {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, MaxBodyBytes))
	dec.DisallowUnknownFields()
	if err := dec.Decode(target); err != nil {
		s.Logger.Warn("invalid request body", "path", r.URL.Path, "err", err)
		s.fail(w, http.StatusBadRequest, fmt.Errorf("invalid request body: %w", err))
		return false
	}
	return true
}

func (s *Server) fail(w http.ResponseWriter, status int, err error) {
	s.writeJSON(w, status, ErrorResponse{Error: err.Error(), Kind: domain.ErrorKind(err)})
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.Logger.Error("response encode failed", "err", err)
	}
}
