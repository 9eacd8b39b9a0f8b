// Package api serves the live session status over HTTP, plus a
// go-echarts debug chart of the pipeline channels.
package api

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/banshee-data/repcount/internal/db"
	"github.com/banshee-data/repcount/internal/monitoring"
	"github.com/banshee-data/repcount/internal/rep"
)

// SessionStatus is the live counting state exposed to clients.
type SessionStatus struct {
	Count     int               `json:"count"`
	Ticks     int               `json:"ticks"`
	StartedAt time.Time         `json:"started_at"`
	Stats     rep.IntervalStats `json:"stats"`
}

// SessionSource provides read access to the live session. The pipeline
// itself has a single writer; implementations guard snapshot reads so
// the HTTP handlers can run concurrently with the update loop.
type SessionSource interface {
	Status() SessionStatus
	ChartData() (header []string, rows [][]float64)
}

type Server struct {
	session SessionSource
	db      *db.DB
}

// NewServer creates the API server. db may be nil when persistence is
// disabled; the /api/sessions route then reports an error.
func NewServer(session SessionSource, database *db.DB) *Server {
	return &Server{session: session, db: database}
}

type loggingResponseWriter struct {
	http.ResponseWriter
	statusCode int
}

func (lrw *loggingResponseWriter) WriteHeader(code int) {
	lrw.statusCode = code
	lrw.ResponseWriter.WriteHeader(code)
}

func logRequest(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		lrw := &loggingResponseWriter{ResponseWriter: w, statusCode: http.StatusOK}
		start := time.Now()
		next(lrw, r)
		monitoring.Debugf("%s %s %d %s", r.Method, r.URL.Path, lrw.statusCode, time.Since(start))
	}
}

// Routes registers the API handlers on a new mux.
func (s *Server) Routes() *http.ServeMux {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/session", logRequest(s.handleSession))
	mux.HandleFunc("GET /api/sessions", logRequest(s.handleSessions))
	mux.HandleFunc("GET /debug/chart", logRequest(s.handleChart))
	return mux
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		monitoring.Logf("failed to encode response: %v", err)
	}
}

func (s *Server) writeJSONError(w http.ResponseWriter, status int, msg string) {
	s.writeJSON(w, status, map[string]string{"error": msg})
}

// handleSession reports the live count, queryable after every tick.
func (s *Server) handleSession(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, s.session.Status())
}

// handleSessions lists persisted sessions, most recent first.
func (s *Server) handleSessions(w http.ResponseWriter, r *http.Request) {
	if s.db == nil {
		s.writeJSONError(w, http.StatusServiceUnavailable, "session persistence is disabled")
		return
	}

	limit := 50
	if l := r.URL.Query().Get("limit"); l != "" {
		if v, err := strconv.Atoi(l); err == nil && v > 0 && v <= 1000 {
			limit = v
		}
	}

	sessions, err := s.db.ListSessions(limit)
	if err != nil {
		s.writeJSONError(w, http.StatusInternalServerError, err.Error())
		return
	}
	if sessions == nil {
		sessions = []db.SessionRecord{}
	}
	s.writeJSON(w, http.StatusOK, sessions)
}
