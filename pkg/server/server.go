// Package server exposes a solved engine over HTTP for hit testing and
// inspection.
//
// Routes:
//
//	GET  /healthz                      engine id, generation and build info
//	GET  /nodes                        the full snapshot
//	GET  /nodes/{id}                   one node of the snapshot
//	GET  /hit?x=&y=                    ids under a point, deepest first
//	GET  /within?x0=&y0=&x1=&y1=       ids intersecting a rectangle
//	POST /resize?width=&height=        resize the viewport and run a pass
//	GET  /render/{format}              the scene in one pipeline format
//	GET  /metrics                      Prometheus metrics, when configured
//
// Errors are JSON objects with "code" and "error" fields.
package server

import (
	"context"
	"encoding/json"
	"math"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/matzehuels/xui/pkg/buildinfo"
	"github.com/matzehuels/xui/pkg/errors"
	"github.com/matzehuels/xui/pkg/layout"
	"github.com/matzehuels/xui/pkg/observability"
	"github.com/matzehuels/xui/pkg/pipeline"
	"github.com/matzehuels/xui/pkg/spatial"
	"github.com/matzehuels/xui/pkg/tree"
	"github.com/matzehuels/xui/pkg/ui"
)

// Server serves queries against one engine.
type Server struct {
	engine  *ui.Engine
	logger  *log.Logger
	metrics http.Handler
	render  pipeline.Options
}

// Option configures a Server.
type Option func(*Server)

// WithLogger sets the request logger.
func WithLogger(l *log.Logger) Option {
	return func(s *Server) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithMetrics mounts h at /metrics.
func WithMetrics(h http.Handler) Option {
	return func(s *Server) { s.metrics = h }
}

// WithRenderOptions sets the render settings used by /render.
func WithRenderOptions(opts pipeline.Options) Option {
	return func(s *Server) { s.render = opts }
}

// New creates a server for e. The engine should have run its first pass.
func New(e *ui.Engine, opts ...Option) *Server {
	s := &Server{engine: e, logger: log.Default()}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Handler returns the router.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(s.instrument)

	r.Get("/healthz", s.health)
	r.Get("/nodes", s.nodes)
	r.Get("/nodes/{id}", s.node)
	r.Get("/hit", s.hit)
	r.Get("/within", s.within)
	r.Post("/resize", s.resize)
	r.Get("/render/{format}", s.renderFormat)
	if s.metrics != nil {
		r.Method(http.MethodGet, "/metrics", s.metrics)
	}
	return r
}

// ListenAndServe serves on addr until ctx is cancelled, then shuts down
// gracefully.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	errc := make(chan error, 1)
	go func() { errc <- srv.ListenAndServe() }()
	s.logger.Info("serving", "addr", addr, "engine", s.engine.ID())

	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return err
		}
		return ctx.Err()
	}
}

// instrument reports every request to the server hooks with its route
// pattern, so /nodes/{id} is one series regardless of id.
func (s *Server) instrument(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)

		route := r.URL.Path
		if rc := chi.RouteContext(r.Context()); rc != nil && rc.RoutePattern() != "" {
			route = rc.RoutePattern()
		}
		status := ww.Status()
		if status == 0 {
			status = http.StatusOK
		}
		d := time.Since(start)
		observability.Server().OnRequest(r.Context(), r.Method, route, status, d)
		s.logger.Debug("request", "method", r.Method, "route", route, "status", status, "duration", d,
			"request_id", middleware.GetReqID(r.Context()))
	})
}

// =============================================================================
// Handlers
// =============================================================================

type healthResponse struct {
	Status     string         `json:"status"`
	Engine     string         `json:"engine"`
	Generation uint64         `json:"generation"`
	Nodes      int            `json:"nodes"`
	Build      buildinfo.Info `json:"build"`
}

func (s *Server) health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, healthResponse{
		Status:     "ok",
		Engine:     s.engine.ID().String(),
		Generation: s.engine.Generation(),
		Nodes:      s.engine.Len(),
		Build:      buildinfo.Get(),
	})
}

func (s *Server) nodes(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.engine.Snapshot())
}

func (s *Server) node(w http.ResponseWriter, r *http.Request) {
	raw, err := url.PathUnescape(chi.URLParam(r, "id"))
	if err != nil {
		s.fail(w, errors.New(errors.ErrCodeInvalidInput, "invalid node id: %v", err))
		return
	}
	snap := s.engine.Snapshot()
	n, ok := snap.Node(tree.ID(raw))
	if !ok {
		s.fail(w, errors.New(errors.ErrCodeUnknownNode, "node %q does not exist", raw))
		return
	}
	writeJSON(w, http.StatusOK, n)
}

type idsResponse struct {
	Generation uint64    `json:"generation"`
	IDs        []tree.ID `json:"ids"`
}

func (s *Server) hit(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	x, err := floatParam(q, "x")
	if err != nil {
		s.fail(w, err)
		return
	}
	y, err := floatParam(q, "y")
	if err != nil {
		s.fail(w, err)
		return
	}
	writeJSON(w, http.StatusOK, idsResponse{Generation: s.engine.Generation(), IDs: nonNil(s.engine.At(x, y))})
}

func (s *Server) within(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	var v [4]float64
	for i, name := range []string{"x0", "y0", "x1", "y1"} {
		f, err := floatParam(q, name)
		if err != nil {
			s.fail(w, err)
			return
		}
		v[i] = f
	}
	rect := spatial.Rect{
		Min: layout.Vec2{X: min(v[0], v[2]), Y: min(v[1], v[3])},
		Max: layout.Vec2{X: max(v[0], v[2]), Y: max(v[1], v[3])},
	}
	writeJSON(w, http.StatusOK, idsResponse{Generation: s.engine.Generation(), IDs: nonNil(s.engine.Within(rect))})
}

type resizeResponse struct {
	Generation uint64    `json:"generation"`
	Skipped    bool      `json:"skipped"`
	Changed    []tree.ID `json:"changed"`
	Removed    []tree.ID `json:"removed"`
}

func (s *Server) resize(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	width, err := floatParam(q, "width")
	if err != nil {
		s.fail(w, err)
		return
	}
	height, err := floatParam(q, "height")
	if err != nil {
		s.fail(w, err)
		return
	}
	if err := s.engine.Resize(width, height); err != nil {
		s.fail(w, err)
		return
	}
	res, err := s.engine.Layout(r.Context())
	if err != nil {
		s.fail(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resizeResponse{
		Generation: res.Generation,
		Skipped:    res.Skipped,
		Changed:    nonNil(res.Changed),
		Removed:    nonNil(res.Removed),
	})
}

var contentTypes = map[string]string{
	pipeline.FormatSVG:  "image/svg+xml",
	pipeline.FormatPNG:  "image/png",
	pipeline.FormatPDF:  "application/pdf",
	pipeline.FormatJSON: "application/json",
	pipeline.FormatYAML: "application/yaml",
	pipeline.FormatDOT:  "text/vnd.graphviz",
}

func (s *Server) renderFormat(w http.ResponseWriter, r *http.Request) {
	format := chi.URLParam(r, "format")
	if err := pipeline.ValidateFormat(format); err != nil {
		s.fail(w, err)
		return
	}
	opts := s.render
	opts.Formats = []string{format}
	snap := s.engine.Snapshot()
	artifacts, err := pipeline.Render(r.Context(), &snap, opts)
	if err != nil {
		s.fail(w, err)
		return
	}
	w.Header().Set("Content-Type", contentTypes[format])
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(artifacts[format])
}

// =============================================================================
// Helpers
// =============================================================================

type errorResponse struct {
	Code  errors.Code `json:"code"`
	Error string      `json:"error"`
}

func (s *Server) fail(w http.ResponseWriter, err error) {
	code := errors.GetCode(err)
	status := statusOf(code)
	if status >= http.StatusInternalServerError {
		s.logger.Error("request failed", "error", err)
	}
	writeJSON(w, status, errorResponse{Code: code, Error: errors.UserMessage(err)})
}

func statusOf(code errors.Code) int {
	switch code {
	case errors.ErrCodeUnknownNode, errors.ErrCodeFileNotFound:
		return http.StatusNotFound
	case errors.ErrCodeInvalidInput, errors.ErrCodeInvalidFormat, errors.ErrCodeMalformedStyleUnit:
		return http.StatusBadRequest
	case errors.ErrCodeUnsupported:
		return http.StatusNotImplemented
	}
	return http.StatusInternalServerError
}

func floatParam(q url.Values, name string) (float64, error) {
	raw := q.Get(name)
	if raw == "" {
		return 0, errors.New(errors.ErrCodeInvalidInput, "query parameter %q is required", name)
	}
	f, err := strconv.ParseFloat(raw, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, errors.New(errors.ErrCodeInvalidInput, "query parameter %q: %q is not a finite number", name, raw)
	}
	return f, nil
}

func nonNil(ids []tree.ID) []tree.ID {
	if ids == nil {
		return []tree.ID{}
	}
	return ids
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
