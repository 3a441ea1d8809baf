package monitor

import (
	"context"
	"log/slog"
	"net/http"
	"time"
)

// Server is the HTTP front-end for the JobManager: it accepts new render
// requests, serves job status/HTML pages, and streams progress over SSE.
type Server struct {
	jobs   *JobManager
	addr   string
	server *http.Server
}

// NewServer builds a Server bound to addr. It does not start listening
// until Start is called.
func NewServer(addr string) *Server {
	return &Server{jobs: NewJobManager(), addr: addr}
}

// Start runs the HTTP server; it blocks until the server stops.
func (s *Server) Start() error {
	mux := http.NewServeMux()

	mux.HandleFunc("/", s.handleIndex)
	mux.HandleFunc("/jobs/", s.handleJobDetailPage)

	mux.HandleFunc("/api/v1/jobs", s.handleJobs)
	mux.HandleFunc("/api/v1/jobs/", s.handleJobsWithID)

	handler := s.loggingMiddleware(s.corsMiddleware(mux))

	s.server = &http.Server{Addr: s.addr, Handler: handler}
	slog.Info("monitor: starting HTTP server", "addr", s.addr)
	return s.server.ListenAndServe()
}

// Shutdown gracefully stops the HTTP server.
func (s *Server) Shutdown(ctx context.Context) error {
	slog.Info("monitor: shutting down HTTP server")
	if s.server != nil {
		return s.server.Shutdown(ctx)
	}
	return nil
}

func (s *Server) corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (s *Server) loggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		next.ServeHTTP(w, r)
		slog.Debug("monitor: http request", "method", r.Method, "path", r.URL.Path, "duration", time.Since(start))
	})
}
