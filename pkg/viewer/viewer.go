// Package viewer serves the timetable as a local web application.
package viewer

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"os"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/pyhub-apps/classschedule-golang/pkg/config"
	"github.com/pyhub-apps/classschedule-golang/pkg/schedule"
	"github.com/pyhub-apps/classschedule-golang/pkg/timetable"
)

// ExtractFailedMessage is shown when a PDF yields no schedule
const ExtractFailedMessage = "Could not extract data from this PDF file. Please make sure it's a valid Schedule PDF."

const shutdownTimeout = 5 * time.Second

// Server holds the currently loaded schedule and its grid
type Server struct {
	mu       sync.RWMutex
	schedule *schedule.Schedule
	grid     *timetable.Grid

	extractor *schedule.Extractor
	store     *config.Store
	logger    *slog.Logger
	icon      string
	uploadDir string
	router    chi.Router
}

// Option configures a Server
type Option func(*Server)

// WithLogger sets the logger; slog.Default() otherwise
func WithLogger(logger *slog.Logger) Option {
	return func(s *Server) {
		s.logger = logger
	}
}

// WithIcon serves path as /favicon.ico
func WithIcon(path string) Option {
	return func(s *Server) {
		s.icon = path
	}
}

// WithUploadDir sets where uploaded PDFs are kept. Defaults to the OS
// temporary directory.
func WithUploadDir(dir string) Option {
	return func(s *Server) {
		s.uploadDir = dir
	}
}

// New creates a viewer. store may be nil, in which case nothing is persisted.
func New(extractor *schedule.Extractor, store *config.Store, opts ...Option) *Server {
	s := &Server{
		extractor: extractor,
		store:     store,
		logger:    slog.Default(),
		grid:      &timetable.Grid{},
	}
	for _, opt := range opts {
		opt(s)
	}

	if s.icon == "" {
		s.logger.Warn("Could not find calendar icon file, running without an icon")
	}

	s.router = s.routes()
	return s
}

func (s *Server) routes() chi.Router {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(s.logRequest)
	r.Use(middleware.Recoverer)

	r.Get("/", s.handleTimetable)
	r.Post("/open", s.handleOpen)
	r.Get("/courses/{index}", s.handleCourse)
	r.Get("/about", s.handleAbout)
	r.Get("/favicon.ico", s.handleFavicon)
	return r
}

// Handler returns the HTTP handler of the viewer
func (s *Server) Handler() http.Handler {
	return s.router
}

// Current returns the loaded schedule and grid; the schedule is nil when
// nothing has been loaded yet
func (s *Server) Current() (*schedule.Schedule, *timetable.Grid) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.schedule, s.grid
}

// Load extracts the schedule at path and makes it current. On failure the
// previous schedule stays in place.
func (s *Server) Load(ctx context.Context, path string) error {
	sched, err := s.extractor.Extract(ctx, path)
	if err != nil {
		s.logger.Error("Failed to load schedule", "path", path, "error", err)
		return err
	}
	s.populate(sched)
	return nil
}

// loadUpload extracts a staged upload and moves it over its final name only
// when extraction succeeded. A failed upload leaves the previous file intact.
func (s *Server) loadUpload(ctx context.Context, upload *stagedUpload) error {
	sched, err := s.extractor.Extract(ctx, upload.temp)
	if err != nil {
		os.Remove(upload.temp)
		s.logger.Error("Failed to load schedule", "path", upload.final, "error", err)
		return err
	}
	if err := os.Rename(upload.temp, upload.final); err != nil {
		os.Remove(upload.temp)
		s.logger.Error("Failed to keep upload", "path", upload.final, "error", err)
		return err
	}
	sched.Source = upload.final
	s.populate(sched)
	return nil
}

// populate swaps in sched and remembers where it came from
func (s *Server) populate(sched *schedule.Schedule) {
	grid := timetable.Build(sched)

	s.mu.Lock()
	s.schedule = sched
	s.grid = grid
	s.mu.Unlock()

	s.logger.Info("Schedule populated successfully", "path", sched.Source, "courses", len(sched.Courses))

	if s.store != nil {
		if err := s.store.SaveLastPDFPath(sched.Source); err != nil {
			s.logger.Warn("Could not remember last PDF", "error", err)
		}
	}
}

// LoadLast loads the last used PDF when the store remembers one that still
// exists. It reports whether a schedule was loaded.
func (s *Server) LoadLast(ctx context.Context) bool {
	if s.store == nil {
		return false
	}
	path := s.store.LoadLastPDFPath()
	if path == "" {
		return false
	}

	s.logger.Info("Loading last used PDF file", "path", path)
	return s.Load(ctx, path) == nil
}

// ListenAndServe serves on addr until ctx is cancelled, then shuts down
// gracefully
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	server := &http.Server{
		Addr:              addr,
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
		BaseContext: func(_ net.Listener) context.Context {
			return ctx
		},
	}

	serverErr := make(chan error, 1)
	go func() {
		s.logger.Info("Viewer listening...", "address", "http://"+addr)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- fmt.Errorf("listen and serve: %w", err)
			return
		}
		serverErr <- nil
	}()

	select {
	case err := <-serverErr:
		return err
	case <-ctx.Done():
		s.logger.Info("Shutting down viewer...")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown server: %w", err)
	}
	return nil
}
