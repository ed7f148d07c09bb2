package server

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/MKhiriev/travel-journal-sync/internal/config"
	"github.com/MKhiriev/travel-journal-sync/internal/logger"
)

const shutdownTimeout = 5 * time.Second

type server struct {
	httpServer *http.Server
	logger     *logger.Logger
}

// NewServer builds the loopback API server over the given handler.
func NewServer(handler http.Handler, cfg config.API, logger *logger.Logger) (Server, error) {
	logger.Info().Msg("creating new server...")

	if cfg.Address == "" {
		return nil, errNoAddressConfigured
	}

	return &server{
		httpServer: &http.Server{
			Addr:    cfg.Address,
			Handler: handler,
		},
		logger: logger,
	}, nil
}

func (s *server) RunServer() {
	s.logger.Info().Str("address", s.httpServer.Addr).Msg("launching HTTP server")

	if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		s.logger.Error().Err(err).Msg("HTTP server ListenAndServe")
	}
}

func (s *server) Shutdown() {
	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := s.httpServer.Shutdown(ctx); err != nil {
		s.logger.Error().Err(err).Msg("HTTP server Shutdown")
	}
}
