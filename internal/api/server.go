// Package api serves the extraction, normalization and merge operations over
// HTTP.
package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"go.uber.org/zap"

	"github.com/sells-group/contact-cli/internal/dedupe"
	"github.com/sells-group/contact-cli/internal/extract"
	"github.com/sells-group/contact-cli/internal/fetcher"
	"github.com/sells-group/contact-cli/internal/metrics"
	"github.com/sells-group/contact-cli/internal/model"
	"github.com/sells-group/contact-cli/internal/normalize"
	"github.com/sells-group/contact-cli/internal/scrape"
)

// DefaultMaxBodyBytes caps request bodies when Options.MaxBodyBytes is unset.
const DefaultMaxBodyBytes = 10 << 20

// Options configure a Server.
type Options struct {
	CORSOrigins  []string
	MaxBodyBytes int64
}

// Server wires the engine components to HTTP handlers.
type Server struct {
	extractor  *extract.Extractor
	normalizer *normalize.Normalizer
	merger     *dedupe.Merger
	metrics    *metrics.Recorder
	opts       Options
}

// New returns a Server. rec may be nil to disable metrics.
func New(ex *extract.Extractor, n *normalize.Normalizer, m *dedupe.Merger, rec *metrics.Recorder, opts Options) *Server {
	if opts.MaxBodyBytes <= 0 {
		opts.MaxBodyBytes = DefaultMaxBodyBytes
	}
	if len(opts.CORSOrigins) == 0 {
		opts.CORSOrigins = []string{"*"}
	}
	return &Server{extractor: ex, normalizer: n, merger: m, metrics: rec, opts: opts}
}

// Routes returns the HTTP handler.
func (s *Server) Routes() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(s.observe)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: s.opts.CORSOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders: []string{"Accept", "Content-Type"},
		MaxAge:         300,
	}))

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})
	if s.metrics != nil {
		r.Method(http.MethodGet, "/metrics", s.metrics.Handler())
	}

	r.Route("/v1", func(r chi.Router) {
		r.Post("/extract", s.handleExtract)
		r.Post("/normalize", s.handleNormalize)
		r.Post("/merge", s.handleMerge)
	})
	return r
}

// observe logs each request and records its latency under the route pattern.
func (s *Server) observe(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)

		route := r.URL.Path
		if rctx := chi.RouteContext(r.Context()); rctx != nil && rctx.RoutePattern() != "" {
			route = rctx.RoutePattern()
		}
		status := ww.Status()
		if status == 0 {
			status = http.StatusOK
		}
		elapsed := time.Since(start)
		if s.metrics != nil {
			s.metrics.ObserveRequest(route, r.Method, status, elapsed)
		}
		zap.L().Debug("api: request",
			zap.String("method", r.Method),
			zap.String("route", route),
			zap.Int("status", status),
			zap.Duration("elapsed", elapsed),
			zap.String("request_id", middleware.GetReqID(r.Context())),
		)
	})
}

// ExtractRequest is the body of POST /v1/extract. HTML takes precedence over
// Text when both are set.
type ExtractRequest struct {
	Name     string            `json:"name"`
	Text     string            `json:"text"`
	HTML     string            `json:"html"`
	Metadata map[string]string `json:"metadata"`
}

// ExtractResponse carries every value found and, when a name was supplied,
// the normalized record built from the first values.
type ExtractResponse struct {
	Fields map[model.Field][]string `json:"fields"`
	Record *model.ContactRecord     `json:"record,omitempty"`
}

func (s *Server) handleExtract(w http.ResponseWriter, r *http.Request) {
	var req ExtractRequest
	if !s.decode(w, r, &req) {
		return
	}

	page := scrape.Page{Text: req.Text}
	if req.HTML != "" {
		var err error
		if page, err = scrape.Convert(req.HTML); err != nil {
			writeError(w, http.StatusUnprocessableEntity, err.Error())
			return
		}
	}

	resp := ExtractResponse{Fields: s.extractor.ExtractAll(page.Text)}

	row := s.extractor.ExtractRow(page.Text)
	if page.Title != "" {
		row[scrape.MetaPageTitle] = page.Title
	}
	for k, v := range req.Metadata {
		if _, taken := row[k]; !taken {
			row[k] = v
		}
	}
	row[string(model.FieldName)] = req.Name
	if rec, ok := s.normalizer.Normalize(row); ok {
		resp.Record = &rec
	}
	writeJSON(w, http.StatusOK, resp)
}

// NormalizeRequest is the body of POST /v1/normalize. Row keys may use any
// known header synonym.
type NormalizeRequest struct {
	Rows []model.Row `json:"rows"`
}

// NormalizeResponse returns the accepted records in input order.
type NormalizeResponse struct {
	Records []model.ContactRecord `json:"records"`
	Stats   model.NormalizeStats  `json:"stats"`
}

func (s *Server) handleNormalize(w http.ResponseWriter, r *http.Request) {
	var req NormalizeRequest
	if !s.decode(w, r, &req) {
		return
	}

	rows := make([]model.Row, len(req.Rows))
	for i, row := range req.Rows {
		rows[i] = fetcher.CanonicalRow(row)
	}
	recs, stats := s.normalizer.NormalizeAll(rows)
	if s.metrics != nil {
		s.metrics.ObserveNormalize(stats)
	}
	writeJSON(w, http.StatusOK, NormalizeResponse{Records: recs, Stats: stats})
}

// MergeRequest is the body of POST /v1/merge. A and B are merged first, then
// any further Sources in order.
type MergeRequest struct {
	A       []model.ContactRecord   `json:"a"`
	B       []model.ContactRecord   `json:"b"`
	Sources [][]model.ContactRecord `json:"sources"`
}

// MergeResponse is the merged collection and its audit stats.
type MergeResponse struct {
	Records []model.ContactRecord `json:"records"`
	Stats   model.MergeStats      `json:"stats"`
}

func (s *Server) handleMerge(w http.ResponseWriter, r *http.Request) {
	var req MergeRequest
	if !s.decode(w, r, &req) {
		return
	}

	sources := append([][]model.ContactRecord{req.A, req.B}, req.Sources...)
	recs, stats := s.merger.MergeAll(sources...)
	if recs == nil {
		recs = []model.ContactRecord{}
	}
	if s.metrics != nil {
		s.metrics.ObserveMerge(stats)
	}
	writeJSON(w, http.StatusOK, MergeResponse{Records: recs, Stats: stats})
}

func (s *Server) decode(w http.ResponseWriter, r *http.Request, v any) bool {
	body := http.MaxBytesReader(w, r.Body, s.opts.MaxBodyBytes)
	dec := json.NewDecoder(body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			writeError(w, http.StatusRequestEntityTooLarge, "request body too large")
			return false
		}
		writeError(w, http.StatusBadRequest, "invalid request body: "+err.Error())
		return false
	}
	return true
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		zap.L().Warn("api: encode response", zap.Error(err))
	}
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
