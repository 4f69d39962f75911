// Package server exposes the room file list command over HTTP.
package server

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/aleister1102/figmabot/internal/common"
	"github.com/aleister1102/figmabot/internal/config"
	"github.com/aleister1102/figmabot/internal/files"
	"github.com/aleister1102/figmabot/internal/metrics"
	"github.com/aleister1102/figmabot/internal/models"
	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"
)

// RoomFileLister runs the file list pipeline for one command.
type RoomFileLister interface {
	ListRoomFiles(ctx context.Context, room models.Room, user models.User) files.Report
}

// Server is the command HTTP server.
type Server struct {
	httpServer *http.Server
	lister     RoomFileLister
	cfg        config.ServerConfig
	validate   *validator.Validate
	logger     zerolog.Logger
}

// New builds the router and the underlying http.Server.
func New(cfg config.ServerConfig, lister RoomFileLister, logger zerolog.Logger) *Server {
	s := &Server{
		lister:   lister,
		cfg:      cfg,
		validate: validator.New(),
		logger:   logger.With().Str("module", "Server").Logger(),
	}

	s.httpServer = &http.Server{
		Addr:         cfg.ListenAddress,
		Handler:      s.Routes(),
		ReadTimeout:  secs(cfg.ReadTimeoutSecs),
		WriteTimeout: secs(cfg.WriteTimeoutSecs),
		IdleTimeout:  secs(cfg.IdleTimeoutSecs),
	}
	return s
}

// Routes returns the HTTP handler tree.
func (s *Server) Routes() http.Handler {
	r := chi.NewRouter()
	r.Use(requestID, requestLogger(s.logger), metrics.Middleware)

	r.Get("/health/live", s.handleLive)
	r.Method(http.MethodGet, "/metrics", promhttp.Handler())
	r.Post("/api/v1/rooms/{roomID}/files", s.handleListRoomFiles)
	return r
}

// Run serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		s.logger.Info().Str("addr", s.httpServer.Addr).Msg("HTTP server started")
		if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case <-ctx.Done():
		s.logger.Info().Msg("Shutdown requested")
	case err := <-errCh:
		if err != nil {
			return common.WrapError(err, "HTTP server failed")
		}
		return nil
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), secs(s.cfg.ShutdownTimeoutSecs))
	defer cancel()
	if err := s.httpServer.Shutdown(shutdownCtx); err != nil {
		return common.WrapError(err, "graceful shutdown failed")
	}

	s.logger.Info().Msg("HTTP server stopped")
	return nil
}

func secs(n int) time.Duration {
	return time.Duration(n) * time.Second
}
