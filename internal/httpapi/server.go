// Package httpapi is the configuration web UI: a small form over
// courses.json so course codes can be edited without touching the terminal
// the watcher runs in.
package httpapi

import (
	_ "embed"
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	"go.uber.org/zap"

	"github.com/coursewatch/coursewatch/internal/store"
)

//go:embed index.html
var indexHTML []byte

type Server struct {
	Logger *zap.Logger
	Store  *store.Store
}

func NewServer(l *zap.Logger, s *store.Store) *Server {
	return &Server{Logger: l, Store: s}
}

func (s *Server) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(cors.AllowAll().Handler)

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("ok"))
	})

	r.Get("/", s.handleIndex)
	r.Get("/api/courses", s.handleGetCourses)
	r.Post("/api/courses", s.handleUpdateCourses)
	r.Get("/api/status", s.handleStatus)

	return r
}

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Write(indexHTML)
}

func (s *Server) handleGetCourses(w http.ResponseWriter, r *http.Request) {
	f, err := s.Store.Load()
	if err != nil {
		// no saved config yet is a normal state for the UI
		f = store.File{Semester: "", Courses: []string{}}
	}
	writeJSON(w, http.StatusOK, f)
}

type updatePayload struct {
	Semester string   `json:"semester"`
	Courses  []string `json:"courses"`
}

func (s *Server) handleUpdateCourses(w http.ResponseWriter, r *http.Request) {
	var p updatePayload
	if err := json.NewDecoder(r.Body).Decode(&p); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "bad payload"})
		return
	}

	courses := make([]string, 0, len(p.Courses))
	for _, c := range p.Courses {
		if c != "" {
			courses = append(courses, c)
		}
	}

	f, err := s.Store.Save(p.Semester, courses)
	if err != nil {
		s.Logger.Warn("course_config_rejected", zap.Error(err))
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}

	s.Logger.Info("course_config_saved",
		zap.String("semester", f.Semester),
		zap.Int("courses", len(f.Courses)),
	)
	writeJSON(w, http.StatusOK, map[string]any{"success": true, "config": f})
}

// handleStatus reports whether a monitoring run could start from the saved
// config. The watcher itself runs in a separate process and keeps no shared
// state with the UI.
func (s *Server) handleStatus(w http.ResponseWriter, r *http.Request) {
	f, err := s.Store.Load()
	if err != nil {
		writeJSON(w, http.StatusOK, map[string]any{
			"configured": false,
			"courses":    []string{},
		})
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"configured":   true,
		"semester":     f.Semester,
		"courses":      f.Courses,
		"last_updated": f.LastUpdated,
	})
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}
