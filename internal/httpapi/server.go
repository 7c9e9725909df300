// Package httpapi exposes lineardoc.Process as an HTTP service: a
// POST /v1/translate-prep JSON endpoint and a GET /healthz check. It
// restores the shape of the original Flask app (app.py's /textp and
// /health routes) in Go idiom, using chi as the router.
package httpapi

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/bytedance/sonic"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"

	"github.com/wikicx/lineardoc"
	"github.com/wikicx/lineardoc/internal/debug"
)

// Server wires lineardoc.Process behind chi, with a fixed removability
// config and segmenter shared across requests.
type Server struct {
	Removable       lineardoc.RemovableConfig
	Segmenter       lineardoc.Segmenter
	IsolateSegments bool
}

// Router builds the chi.Router this server answers requests on.
func (s *Server) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(correlationID)
	r.Use(requestLogger)
	r.Get("/healthz", s.handleHealth)
	r.Post("/v1/translate-prep", s.handleTranslatePrep)
	return r
}

// correlationID stamps every request with a UUID, stored under chi's
// RequestIDKey so middleware.GetReqID keeps working, and echoed back as
// X-Request-Id.
func correlationID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := uuid.NewString()
		w.Header().Set("X-Request-Id", id)
		ctx := context.WithValue(r.Context(), middleware.RequestIDKey, id)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		reqID := middleware.GetReqID(r.Context())
		next.ServeHTTP(w, r)
		debug.DebugLogTiming("httpapi", r.URL.Path, "request "+reqID, time.Since(start).Milliseconds())
	})
}

type translateRequest struct {
	HTML     string `json:"html"`
	Language string `json:"language"`
}

type translateResponse struct {
	HTML  string `json:"html,omitempty"`
	Error string `json:"error,omitempty"`
}

func (s *Server) handleTranslatePrep(w http.ResponseWriter, r *http.Request) {
	var req translateRequest
	if err := sonic.ConfigDefault.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, translateResponse{Error: "invalid JSON body"})
		return
	}

	if req.HTML == "" {
		writeJSON(w, http.StatusInternalServerError, translateResponse{
			Error: "Content for translate is not given or is empty",
		})
		return
	}

	result, err := lineardoc.Process(req.HTML, lineardoc.ProcessOptions{
		Language:        req.Language,
		Removable:       s.Removable,
		Segmenter:       s.Segmenter,
		IsolateSegments: s.IsolateSegments,
	})
	if err != nil {
		reqID := middleware.GetReqID(r.Context())
		debug.DebugLogError("httpapi", "translate-prep", "pipeline failed for request "+reqID, err)
		writeJSON(w, http.StatusInternalServerError, translateResponse{Error: err.Error()})
		return
	}

	writeJSON(w, http.StatusOK, translateResponse{HTML: result})
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func writeJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if body, err := sonic.Marshal(payload); err == nil {
		w.Write(body)
		return
	}
	json.NewEncoder(w).Encode(payload)
}
