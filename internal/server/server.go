package server

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/yukikurage/taskboard-api/internal/config"
	"github.com/yukikurage/taskboard-api/internal/repository"
	"github.com/yukikurage/taskboard-api/internal/seed"
	"github.com/yukikurage/taskboard-api/internal/services"
)

// Server owns the store and the HTTP server for one process lifetime
type Server struct {
	cfg        *config.Config
	log        zerolog.Logger
	store      repository.Store
	closeStore func() error
	httpServer *http.Server
}

// New opens the store, seeds the categories and builds the HTTP server
func New(ctx context.Context, cfg *config.Config, log zerolog.Logger) (*Server, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	gin.SetMode(cfg.GinMode)

	categories, err := seed.Categories(cfg.SeedFile)
	if err != nil {
		return nil, err
	}

	store, closeStore, err := OpenStore(cfg, log)
	if err != nil {
		return nil, err
	}

	if err := seed.Apply(ctx, services.NewCategoryService(store), categories); err != nil {
		_ = closeStore()
		return nil, err
	}
	log.Info().
		Str("storage", cfg.StorageDriver).
		Int("categories", len(categories)).
		Msg("store seeded")

	return &Server{
		cfg:        cfg,
		log:        log,
		store:      store,
		closeStore: closeStore,
		httpServer: &http.Server{
			Addr:         net.JoinHostPort("", cfg.Port),
			Handler:      NewRouter(cfg, store, log),
			ReadTimeout:  cfg.ReadTimeout,
			WriteTimeout: cfg.WriteTimeout,
		},
	}, nil
}

// Handler returns the root HTTP handler
func (s *Server) Handler() http.Handler {
	return s.httpServer.Handler
}

// Run serves until ctx is cancelled, then shuts down gracefully and releases the store
func (s *Server) Run(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		s.log.Info().Str("addr", s.httpServer.Addr).Msg("server starting")
		if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err, ok := <-errCh:
		if ok {
			_ = s.Close()
			return fmt.Errorf("server failed: %w", err)
		}
	case <-ctx.Done():
		s.log.Info().Msg("shutting down")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), s.cfg.ShutdownTimeout)
	defer cancel()

	if err := s.httpServer.Shutdown(shutdownCtx); err != nil {
		_ = s.Close()
		return fmt.Errorf("graceful shutdown failed: %w", err)
	}

	if err := s.Close(); err != nil {
		return err
	}
	s.log.Info().Msg("server stopped")
	return nil
}

// Close releases the store
func (s *Server) Close() error {
	if err := s.closeStore(); err != nil {
		return fmt.Errorf("failed to close store: %w", err)
	}
	return nil
}
