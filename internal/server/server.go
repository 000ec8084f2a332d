// Package server exposes the identifier generator over HTTP: login issues
// tokens and posted chat messages are stamped with message ids.
package server

import (
	"context"
	"errors"
	"log/slog"
	"net"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/flarebyte/speakset-native/internal/ident"
	"github.com/flarebyte/speakset-native/internal/store"
)

// Options configures a Server.
type Options struct {
	Addr      string
	StaticDir string
	Generator *ident.Generator
	Store     *store.Store
	Logger    *slog.Logger
	// Now defaults to time.Now.
	Now func() time.Time
}

// Server holds the HTTP server state.
type Server struct {
	httpServer *http.Server
	router     *chi.Mux
	gen        *ident.Generator
	store      *store.Store
	logger     *slog.Logger
	now        func() time.Time
	staticDir  string
}

// New constructs the HTTP server and registers its routes.
func New(opts Options) *Server {
	if opts.Generator == nil {
		opts.Generator = ident.New()
	}
	if opts.Store == nil {
		opts.Store = store.New()
	}
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}

	router := chi.NewRouter()
	router.Use(middleware.RequestID)
	router.Use(middleware.RealIP)
	router.Use(requestLogger(opts.Logger))
	router.Use(middleware.Recoverer)

	s := &Server{
		router:    router,
		gen:       opts.Generator,
		store:     opts.Store,
		logger:    opts.Logger,
		now:       opts.Now,
		staticDir: opts.StaticDir,
	}
	s.registerRoutes()

	s.httpServer = &http.Server{
		Addr:              opts.Addr,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      15 * time.Second,
		IdleTimeout:       60 * time.Second,
	}
	return s
}

// Handler returns the root handler, for tests and embedding.
func (s *Server) Handler() http.Handler { return s.router }

// Serve accepts connections on ln until ctx is cancelled, then shuts down
// gracefully within grace.
func (s *Server) Serve(ctx context.Context, ln net.Listener, grace time.Duration) error {
	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("http server listening", "addr", ln.Addr().String(), "hash", s.gen.HashName())
		errCh <- s.httpServer.Serve(ln)
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	s.logger.Info("shutting down", "grace", grace)
	shutdownCtx, cancel := context.WithTimeout(context.Background(), grace)
	defer cancel()
	if err := s.httpServer.Shutdown(shutdownCtx); err != nil {
		return err
	}
	if err := <-errCh; err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// ListenAndServe listens on the configured address and calls Serve.
func (s *Server) ListenAndServe(ctx context.Context, grace time.Duration) error {
	ln, err := net.Listen("tcp", s.httpServer.Addr)
	if err != nil {
		return err
	}
	return s.Serve(ctx, ln, grace)
}

func (s *Server) registerRoutes() {
	s.router.Route("/api", func(r chi.Router) {
		r.Get("/health", s.handleHealth)
		r.Post("/login", s.handleLogin)
		r.Get("/messages", s.handleListMessages)
		r.Post("/messages", s.handleCreateMessage)
		r.NotFound(s.handleUnknown)
		r.MethodNotAllowed(s.handleUnknown)
	})

	if s.staticDir != "" {
		s.router.Handle("/*", http.FileServer(http.Dir(s.staticDir)))
	}
}
