// Package server exposes the preset catalog and scripted card runs over
// HTTP.
//
// Routes:
//
//	GET  /health                 liveness and build version
//	GET  /presets                preset names and descriptions
//	GET  /presets/{name}/card    today's card for one preset
//	POST /cards                  run an intent script against a preset
//
// Every response is JSON. Errors carry the tilecard error code:
//
//	{"error": "INVALID_PRESET", "message": "unknown preset \"chess\" ..."}
package server

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"github.com/matzehuels/tilecard/pkg/buildinfo"
	errs "github.com/matzehuels/tilecard/pkg/errors"
	"github.com/matzehuels/tilecard/pkg/preset"
)

// DefaultRequestTimeout bounds handler time, including provider fetches.
const DefaultRequestTimeout = 30 * time.Second

// Catalog is the preset source the server reads from.
type Catalog interface {
	Presets() []preset.Preset
	Load(ctx context.Context, name string) (preset.Card, error)
}

// Server bundles the router and the catalog.
type Server struct {
	r           *chi.Mux
	catalog     Catalog
	logger      *log.Logger
	placeholder string
	timeout     time.Duration
}

// Option configures a Server.
type Option func(*Server)

// WithLogger sets the request logger. The default is log.Default().
func WithLogger(l *log.Logger) Option {
	return func(s *Server) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithPlaceholder sets the caption shown while a script switches presets.
func WithPlaceholder(text string) Option {
	return func(s *Server) {
		if text != "" {
			s.placeholder = text
		}
	}
}

// WithRequestTimeout overrides DefaultRequestTimeout.
func WithRequestTimeout(d time.Duration) Option {
	return func(s *Server) {
		if d > 0 {
			s.timeout = d
		}
	}
}

// New constructs a Server, installs middleware, and registers routes.
func New(catalog Catalog, opts ...Option) *Server {
	s := &Server{
		r:           chi.NewRouter(),
		catalog:     catalog,
		logger:      log.Default(),
		placeholder: "Loading...",
		timeout:     DefaultRequestTimeout,
	}
	for _, opt := range opts {
		opt(s)
	}
	s.logger = s.logger.WithPrefix("http")

	s.r.Use(chimw.RequestID)
	s.r.Use(chimw.RealIP)
	s.r.Use(s.logRequests)
	s.r.Use(chimw.Recoverer)
	s.r.Use(chimw.Timeout(s.timeout))
	s.r.Use(jsonContentType)

	s.r.Get("/health", s.handleHealth)
	s.r.Get("/presets", s.handlePresets)
	s.r.Get("/presets/{name}/card", s.handlePresetCard)
	s.r.Post("/cards", s.handleCards)

	s.r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		writeError(w, errs.New(errs.ErrCodeNotFound, "no route for %s %s", r.Method, r.URL.Path))
	})
	s.r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusMethodNotAllowed, errorResponse{
			Error:   string(errs.ErrCodeInvalidInput),
			Message: r.Method + " not allowed on " + r.URL.Path,
		})
	})

	return s
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) { s.r.ServeHTTP(w, r) }

// ----------------------------- middleware ----------------------------------

func jsonContentType(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		next.ServeHTTP(w, r)
	})
}

func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := chimw.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()
		next.ServeHTTP(ww, r)
		s.logger.Info(r.Method+" "+r.URL.Path,
			"status", ww.Status(),
			"bytes", ww.BytesWritten(),
			"took", time.Since(start).Round(time.Microsecond),
			"req", chimw.GetReqID(r.Context()),
		)
	})
}

// ------------------------------ handlers -----------------------------------

type healthResponse struct {
	OK      bool   `json:"ok"`
	Version string `json:"version"`
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, healthResponse{OK: true, Version: buildinfo.Version})
}

type presetResponse struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Remote      bool   `json:"remote"`
}

func (s *Server) handlePresets(w http.ResponseWriter, r *http.Request) {
	presets := s.catalog.Presets()
	out := make([]presetResponse, len(presets))
	for i, p := range presets {
		out[i] = presetResponse{Name: p.Name, Description: p.Description, Remote: p.Remote}
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) handlePresetCard(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")
	if err := errs.ValidateName(name); err != nil {
		writeError(w, errs.Wrap(errs.ErrCodeInvalidPreset, err, "bad preset name"))
		return
	}
	card, err := s.catalog.Load(r.Context(), name)
	if err != nil {
		s.logger.Warn("preset load failed", "preset", name, "err", err)
		writeError(w, err)
		return
	}
	res, err := newCardResponse(name, card.Caption, card.State)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, res)
}

// ------------------------------ responses ----------------------------------

type errorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, err error) {
	code := errs.GetCode(err)
	if code == "" {
		code = errs.ErrCodeInternal
	}
	writeJSON(w, statusFor(code), errorResponse{Error: string(code), Message: errs.UserMessage(err)})
}

// statusFor maps error codes to HTTP statuses.
func statusFor(code errs.Code) int {
	switch code {
	case errs.ErrCodeInvalidInput, errs.ErrCodeInvalidIntent, errs.ErrCodeInvalidGlyph:
		return http.StatusBadRequest
	case errs.ErrCodeInvalidPreset, errs.ErrCodeNotFound:
		return http.StatusNotFound
	case errs.ErrCodeIndexOutOfRange, errs.ErrCodeInvalidState:
		return http.StatusUnprocessableEntity
	case errs.ErrCodeNetwork:
		return http.StatusBadGateway
	case errs.ErrCodeTimeout:
		return http.StatusGatewayTimeout
	case errs.ErrCodeUnsupported:
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}
