// Package server implements the cliquekit HTTP API.
//
// The API exposes the search pipeline over HTTP so experiments can be run
// remotely and their history browsed:
//
//	POST /api/search        run a search on a submitted or generated graph
//	GET  /api/runs          list recorded runs, newest first
//	GET  /api/runs/{id}     fetch one recorded run
//	GET  /healthz           liveness check
package server

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/cliquekit/cliquekit/pkg/clique"
	apperrors "github.com/cliquekit/cliquekit/pkg/errors"
	"github.com/cliquekit/cliquekit/pkg/graph"
	"github.com/cliquekit/cliquekit/pkg/history"
	"github.com/cliquekit/cliquekit/pkg/observability"
	"github.com/cliquekit/cliquekit/pkg/pipeline"
)

// maxSearchTime bounds a single API search so a huge trial count cannot
// hold a connection open indefinitely.
const maxSearchTime = 5 * time.Minute

// Server handles HTTP API requests.
type Server struct {
	runner *pipeline.Runner
	logger *log.Logger
}

// New creates a server around a pipeline runner. Runs are recorded through
// the runner's history store.
func New(runner *pipeline.Runner, logger *log.Logger) *Server {
	if logger == nil {
		logger = log.Default()
	}
	return &Server{runner: runner, logger: logger}
}

// Handler builds the chi route tree.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(s.observe)

	r.Get("/healthz", s.handleHealth)
	r.Route("/api", func(r chi.Router) {
		r.Post("/search", s.handleSearch)
		r.Get("/runs", s.handleListRuns)
		r.Get("/runs/{id}", s.handleGetRun)
	})

	return r
}

// observe reports request and response events to the observability hooks.
func (s *Server) observe(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		start := time.Now()
		observability.HTTP().OnRequest(req.Context(), req.Method, req.URL.Path)

		ww := middleware.NewWrapResponseWriter(w, req.ProtoMajor)
		next.ServeHTTP(ww, req)

		observability.HTTP().OnResponse(req.Context(), req.Method, req.URL.Path, ww.Status(), time.Since(start))
		s.logger.Debug("Request",
			"method", req.Method,
			"path", req.URL.Path,
			"status", ww.Status(),
			"duration", time.Since(start).Round(time.Millisecond))
	})
}

// =============================================================================
// Request / Response Types
// =============================================================================

// graphPayload is a submitted graph in the JSON interchange format.
type graphPayload struct {
	Vertices int      `json:"vertices"`
	Edges    [][2]int `json:"edges"`
}

// generatePayload asks the server to generate a G(n, p) graph.
type generatePayload struct {
	Vertices    int     `json:"vertices"`
	Probability float64 `json:"probability"`
	Seed        uint64  `json:"seed"`
}

// searchRequest is the body of POST /api/search. Exactly one of Graph and
// Generate must be set.
type searchRequest struct {
	Graph    *graphPayload    `json:"graph,omitempty"`
	Generate *generatePayload `json:"generate,omitempty"`

	Dataset string  `json:"dataset,omitempty"`
	Trials  int     `json:"trials,omitempty"`
	Workers int     `json:"workers,omitempty"`
	Noise   float64 `json:"noise,omitempty"`
	Seed    uint64  `json:"seed,omitempty"`

	Weights *struct {
		Random       int `json:"random"`
		Noise        int `json:"noise"`
		Neighborhood int `json:"neighborhood"`
	} `json:"weights,omitempty"`
}

// searchResponse is the body returned by POST /api/search.
type searchResponse struct {
	RunID    string `json:"run_id,omitempty"`
	Clique   []int  `json:"clique"`
	Size     int    `json:"size"`
	Trials   int    `json:"trials"`
	Vertices int    `json:"vertices"`
	Edges    int    `json:"edges"`
	Elapsed  string `json:"elapsed"`
}

type errorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code,omitempty"`
}

// =============================================================================
// Handlers
// =============================================================================

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleSearch(w http.ResponseWriter, r *http.Request) {
	var req searchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeError(w, apperrors.New(apperrors.ErrCodeInvalidInput, "invalid request body: %v", err))
		return
	}

	g, err := buildGraph(req)
	if err != nil {
		s.writeError(w, err)
		return
	}

	opts := pipeline.Options{
		Graph:      g,
		Dataset:    req.Dataset,
		Trials:     req.Trials,
		Workers:    req.Workers,
		NoiseWidth: req.Noise,
		Seed:       req.Seed,
		Timeout:    maxSearchTime,
		Record:     true,
		Logger:     s.logger,
	}
	if req.Weights != nil {
		opts.Weights = clique.Weights{
			Random:       req.Weights.Random,
			Noise:        req.Weights.Noise,
			Neighborhood: req.Weights.Neighborhood,
		}
	}

	res, err := s.runner.Execute(r.Context(), opts)
	if err != nil {
		s.writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, searchResponse{
		RunID:    res.RunID,
		Clique:   res.Search.Clique,
		Size:     res.Search.Size,
		Trials:   res.Search.Trials,
		Vertices: res.Stats.Vertices,
		Edges:    res.Stats.Edges,
		Elapsed:  res.Search.Elapsed.String(),
	})
}

func (s *Server) handleListRuns(w http.ResponseWriter, r *http.Request) {
	store := s.runner.History()
	if store == nil {
		s.writeError(w, apperrors.New(apperrors.ErrCodeUnsupported, "run history is not configured"))
		return
	}

	limit := pipeline.DefaultHistoryLimit
	if raw := r.URL.Query().Get("limit"); raw != "" {
		v, err := strconv.Atoi(raw)
		if err != nil || v < 0 {
			s.writeError(w, apperrors.New(apperrors.ErrCodeInvalidInput, "invalid limit %q", raw))
			return
		}
		limit = v
	}

	runs, err := store.List(r.Context(), limit)
	if err != nil {
		s.writeError(w, err)
		return
	}
	if runs == nil {
		runs = []history.Run{}
	}
	writeJSON(w, http.StatusOK, runs)
}

func (s *Server) handleGetRun(w http.ResponseWriter, r *http.Request) {
	store := s.runner.History()
	if store == nil {
		s.writeError(w, apperrors.New(apperrors.ErrCodeUnsupported, "run history is not configured"))
		return
	}

	run, err := store.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		if errors.Is(err, history.ErrNotFound) {
			err = apperrors.New(apperrors.ErrCodeRunNotFound, "no run with id %q", chi.URLParam(r, "id"))
		}
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, run)
}

// =============================================================================
// Helpers
// =============================================================================

// buildGraph materializes the request's graph, either from submitted edges
// or by generating a random one.
func buildGraph(req searchRequest) (*graph.Graph, error) {
	switch {
	case req.Graph != nil && req.Generate != nil:
		return nil, apperrors.New(apperrors.ErrCodeInvalidInput, "graph and generate are mutually exclusive")
	case req.Graph != nil:
		if req.Graph.Vertices < 0 {
			return nil, apperrors.New(apperrors.ErrCodeInvalidGraph, "negative vertex count %d", req.Graph.Vertices)
		}
		g := graph.New(req.Graph.Vertices)
		for _, e := range req.Graph.Edges {
			if !g.AddEdge(e[0], e[1]) && !g.Adjacent(e[0], e[1]) {
				return nil, apperrors.New(apperrors.ErrCodeInvalidGraph, "invalid edge (%d, %d)", e[0], e[1])
			}
		}
		return g, nil
	case req.Generate != nil:
		gen := req.Generate
		if gen.Vertices < 0 || gen.Probability < 0 || gen.Probability > 1 {
			return nil, apperrors.New(apperrors.ErrCodeInvalidInput, "generate requires vertices >= 0 and probability in [0, 1]")
		}
		return graph.Random(gen.Vertices, gen.Probability, gen.Seed), nil
	default:
		return nil, apperrors.New(apperrors.ErrCodeInvalidInput, "either graph or generate is required")
	}
}

// statusForCode maps error codes to HTTP status codes.
func statusForCode(code apperrors.Code) int {
	switch code {
	case apperrors.ErrCodeInvalidInput, apperrors.ErrCodeInvalidGraph,
		apperrors.ErrCodeInvalidFormat, apperrors.ErrCodeInvalidStrategy,
		apperrors.ErrCodeInvalidConfig:
		return http.StatusBadRequest
	case apperrors.ErrCodeNotFound, apperrors.ErrCodeFileNotFound, apperrors.ErrCodeRunNotFound:
		return http.StatusNotFound
	case apperrors.ErrCodeTimeout:
		return http.StatusGatewayTimeout
	case apperrors.ErrCodeUnsupported:
		return http.StatusNotImplemented
	default:
		return http.StatusInternalServerError
	}
}

func (s *Server) writeError(w http.ResponseWriter, err error) {
	code := apperrors.GetCode(err)
	status := statusForCode(code)
	if status >= http.StatusInternalServerError {
		s.logger.Error("Request failed", "error", err)
	}
	writeJSON(w, status, errorResponse{Error: apperrors.UserMessage(err), Code: string(code)})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
