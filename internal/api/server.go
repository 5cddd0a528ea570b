package api

import (
	"encoding/json"
	"fmt"
	"html"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/dgallion1/vivamark/internal/extract"
	"github.com/dgallion1/vivamark/internal/report"
)

// Server is the local review server. It renders the generated report
// files as HTML so examiners can browse them without a markdown viewer.
type Server struct {
	router chi.Router
	log    *slog.Logger
	dir    string
	stats  extract.StatsSnapshot
}

var reports = []struct {
	Slug, File, Title string
}{
	{"comments", report.AllFile, "All Comments"},
	{"student", report.StudentFile, "Student Corrections"},
	{"examiner", report.ExaminerFile, "Examiner Questions"},
}

// NewServer serves the reports under dir.
func NewServer(dir string, stats extract.StatsSnapshot, log *slog.Logger) *Server {
	s := &Server{log: log, dir: dir, stats: stats}
	s.setupRoutes()
	return s
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

func (s *Server) setupRoutes() {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(middleware.RequestID)
	r.Use(RequestLogger(s.log))

	r.Get("/health", s.handleHealth)
	r.Get("/", s.handleIndex)
	r.Get("/reports/{slug}", s.handleReport)
	r.Get("/api/stats", s.handleStats)

	s.router = r
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.Write([]byte(`{"status":"ok"}`))
}

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	fmt.Fprint(w, "<html><head><title>vivamark</title></head><body><h1>Annotation Reports</h1><ul>")
	for _, rep := range reports {
		fmt.Fprintf(w, `<li><a href="/reports/%s">%s</a></li>`, rep.Slug, html.EscapeString(rep.Title))
	}
	fmt.Fprint(w, "</ul></body></html>")
}

func (s *Server) handleReport(w http.ResponseWriter, r *http.Request) {
	slug := chi.URLParam(r, "slug")

	var file string
	for _, rep := range reports {
		if rep.Slug == slug {
			file = rep.File
			break
		}
	}
	if file == "" {
		http.Error(w, "unknown report", http.StatusNotFound)
		return
	}

	data, err := os.ReadFile(filepath.Join(s.dir, file))
	if err != nil {
		s.log.Error("read report", "file", file, "error", err)
		http.Error(w, "report not generated", http.StatusNotFound)
		return
	}

	body, err := report.RenderHTML(string(data))
	if err != nil {
		s.log.Error("render report", "file", file, "error", err)
		http.Error(w, "render failed", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	fmt.Fprintf(w, "<html><head><title>vivamark</title></head><body>%s</body></html>", body)
}

func (s *Server) handleStats(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(s.stats)
}
