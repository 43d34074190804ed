package rest

import (
	"context"
	"errors"
	"net"
	"net/http"
	"time"

	"github.com/dmitrijs2005/userdirectory/internal/logging"
)

// Server wraps http.Server with context-driven graceful shutdown.
type Server struct {
	address         string
	server          *http.Server
	shutdownTimeout time.Duration
	logger          logging.Logger
}

// Timeouts groups the http.Server limits taken from config.
type Timeouts struct {
	Read     time.Duration
	Write    time.Duration
	Shutdown time.Duration
}

func NewServer(address string, l logging.Logger, users UserDirectory, t Timeouts) *Server {
	logger := l.With("module", "http_server")
	return &Server{
		address: address,
		server: &http.Server{
			Handler:      NewRouter(users, logger),
			ReadTimeout:  t.Read,
			WriteTimeout: t.Write,
		},
		shutdownTimeout: t.Shutdown,
		logger:          logger,
	}
}

// Run serves until ctx is cancelled, then drains in-flight requests for at
// most the shutdown timeout.
func (s *Server) Run(ctx context.Context) error {
	listen, err := net.Listen("tcp", s.address)
	if err != nil {
		return err
	}

	stopped := make(chan struct{})
	go func() {
		defer close(stopped)
		<-ctx.Done()
		s.logger.Info(ctx, "Stopping HTTP server...")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), s.shutdownTimeout)
		defer cancel()
		if err := s.server.Shutdown(shutdownCtx); err != nil {
			s.logger.Error(ctx, "HTTP shutdown error", "error", err)
		}
	}()

	s.logger.Info(ctx, "Starting HTTP server", "address", listen.Addr().String())

	if err := s.server.Serve(listen); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}

	<-stopped
	return nil
}
