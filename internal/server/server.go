// Package server exposes the placement operations over HTTP.
//
// Stateless layout operations live under /v1/layout and operate on the JSON
// the client sends; stored boards live under /v1/boards, backed by a
// pkg/store backend. All responses are JSON; errors carry the structured
// code from pkg/errors so clients can branch without parsing messages.
package server

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/tessella/gridlock/pkg/errors"
	"github.com/tessella/gridlock/pkg/store"
)

// maxBodyBytes caps request bodies; boards are small.
const maxBodyBytes = 1 << 20

// New builds the HTTP handler with all routes registered.
func New(st store.Store, logger *log.Logger) http.Handler {
	s := &server{store: st, logger: logger}

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(s.logRequests)
	r.Use(middleware.Recoverer)

	r.Get("/healthz", s.handleHealth)

	r.Route("/v1", func(r chi.Router) {
		r.Route("/layout", func(r chi.Router) {
			r.Post("/optimize", s.handleOptimize)
			r.Post("/resolve", s.handleResolve)
			r.Post("/position", s.handlePosition)
		})
		r.Route("/boards", func(r chi.Router) {
			r.Get("/", s.handleListBoards)
			r.Get("/{name}", s.handleGetBoard)
			r.Put("/{name}", s.handlePutBoard)
			r.Delete("/{name}", s.handleDeleteBoard)
		})
	})

	return r
}

type server struct {
	store  store.Store
	logger *log.Logger
}

// logRequests logs one line per request with method, path, status and timing.
func (s *server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)

		next.ServeHTTP(ww, r)

		s.logger.Info("request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", ww.Status(),
			"bytes", ww.BytesWritten(),
			"duration", time.Since(start).Round(time.Microsecond),
		)
	})
}

func (s *server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// =============================================================================
// Responses
// =============================================================================

// errorPayload is the wire shape of every error response.
type errorPayload struct {
	Code  errors.Code `json:"code"`
	Error string      `json:"error"`
}

// writeJSON writes v as a JSON response with the given status.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

// writeError maps an error to its HTTP status and writes the error payload.
func (s *server) writeError(w http.ResponseWriter, err error) {
	code := errors.GetCode(err)
	if code == "" {
		code = errors.ErrCodeInternal
	}
	status := statusForCode(code)
	if status >= http.StatusInternalServerError {
		s.logger.Error("request failed", "code", code, "err", err)
	}
	writeJSON(w, status, errorPayload{Code: code, Error: errors.UserMessage(err)})
}

// statusForCode maps structured error codes to HTTP statuses.
func statusForCode(code errors.Code) int {
	switch code {
	case errors.ErrCodeInvalidInput,
		errors.ErrCodeInvalidConfig,
		errors.ErrCodeInvalidWidget,
		errors.ErrCodeInvalidBoard,
		errors.ErrCodeDecode:
		return http.StatusBadRequest
	case errors.ErrCodeNotFound,
		errors.ErrCodeBoardNotFound,
		errors.ErrCodeWidgetNotFound:
		return http.StatusNotFound
	case errors.ErrCodeUnsupported:
		return http.StatusNotImplemented
	case errors.ErrCodeStore, errors.ErrCodeStoreClosed:
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}
