// Package api is the thin HTTP shell over the analyzer. It does request
// decoding, input validation, CORS, and error-kind-to-status mapping;
// every decision that matters lives below it.
package api

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/sells-group/termlens/internal/analyzer"
)

// Server routes analyze/ask requests to the analyzer.
type Server struct {
	router   chi.Router
	analyzer *analyzer.Analyzer
}

// NewServer builds the router. allowedOrigins feeds CORS; the original
// service ran wide open ("*") and that stays the default.
func NewServer(a *analyzer.Analyzer, allowedOrigins []string) *Server {
	if len(allowedOrigins) == 0 {
		allowedOrigins = []string{"*"}
	}

	router := chi.NewRouter()
	router.Use(middleware.Recoverer)
	router.Use(cors.Handler(cors.Options{
		AllowedOrigins: allowedOrigins,
		AllowedMethods: []string{"GET", "POST", "PUT", "DELETE", "OPTIONS", "PATCH"},
		AllowedHeaders: []string{"Accept", "Content-Type"},
	}))

	s := &Server{router: router, analyzer: a}

	router.Get("/health", s.health)
	router.Get("/sessions", s.sessions)
	router.Post("/analyze", s.analyze)
	router.Post("/ask", s.ask)

	return s
}

// Handler exposes the router for http.Server and tests.
func (s *Server) Handler() http.Handler {
	return s.router
}

func (s *Server) health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) sessions(w http.ResponseWriter, r *http.Request) {
	type sessionInfo struct {
		Identifier string `json:"identifier"`
		Questions  int    `json:"questions"`
	}
	infos := make([]sessionInfo, 0)
	for id, n := range s.analyzer.Sessions() {
		infos = append(infos, sessionInfo{Identifier: id, Questions: n})
	}
	writeJSON(w, http.StatusOK, map[string]any{"sessions": infos})
}

func (s *Server) analyze(w http.ResponseWriter, r *http.Request) {
	reqID := uuid.NewString()

	var req struct {
		URL string `json:"url"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, analyzer.KindMissingInput, "invalid request body")
		return
	}
	if req.URL == "" {
		writeError(w, http.StatusBadRequest, analyzer.KindMissingInput, "url is required")
		return
	}

	doc, err := s.analyzer.Summarize(r.Context(), req.URL)
	if err != nil {
		zap.L().Error("analyze failed",
			zap.String("request_id", reqID),
			zap.String("url", req.URL),
			zap.Error(err),
		)
		kind := analyzer.KindOf(err)
		writeError(w, statusForKind(kind), kind, err.Error())
		return
	}

	zap.L().Info("analyze ok",
		zap.String("request_id", reqID),
		zap.String("url", req.URL),
	)
	writeJSON(w, http.StatusOK, doc)
}

func (s *Server) ask(w http.ResponseWriter, r *http.Request) {
	reqID := uuid.NewString()

	var req struct {
		URL      string `json:"url"`
		Question string `json:"question"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, analyzer.KindMissingInput, "invalid request body")
		return
	}
	if req.URL == "" || req.Question == "" {
		writeError(w, http.StatusBadRequest, analyzer.KindMissingInput, "url and question are required")
		return
	}

	answer, err := s.analyzer.Ask(r.Context(), req.URL, req.Question)
	if err != nil {
		zap.L().Error("ask failed",
			zap.String("request_id", reqID),
			zap.String("url", req.URL),
			zap.Error(err),
		)
		kind := analyzer.KindOf(err)
		writeError(w, statusForKind(kind), kind, err.Error())
		return
	}

	zap.L().Info("ask ok",
		zap.String("request_id", reqID),
		zap.String("url", req.URL),
	)
	writeJSON(w, http.StatusOK, map[string]string{"answer": answer})
}

// statusForKind maps analyzer error kinds to HTTP statuses.
func statusForKind(kind analyzer.Kind) int {
	switch kind {
	case analyzer.KindMissingInput:
		return http.StatusBadRequest
	case analyzer.KindUnknownSource:
		return http.StatusNotFound
	case analyzer.KindFetchFailed, analyzer.KindLLMFailed, analyzer.KindMalformedSummary:
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, kind analyzer.Kind, msg string) {
	writeJSON(w, status, map[string]string{
		"error": msg,
		"kind":  string(kind),
	})
}
