package server

import (
	"context"
	"os/signal"
	"syscall"

	myHTTP "github.com/mfedotov/credvault/internal/handler/http"

	"github.com/mfedotov/credvault/internal/config"
	"github.com/mfedotov/credvault/internal/logger"
)

// Server defines the lifecycle contract for the transport server managed by
// this package.
//
// Implementations are expected to block in [RunServer] until shutdown is
// requested and to release resources before returning.
type Server interface {
	// RunServer starts serving requests and blocks until the server stops.
	RunServer()
}

type server struct {
	httpServer *httpServer
	cfg        config.Server
	logger     *logger.Logger
}

// NewServer builds the HTTP server around the handler's router.
func NewServer(handler *myHTTP.Handler, cfg config.Server, logger *logger.Logger) (Server, error) {
	logger.Info().Msg("creating new server...")

	if cfg.HTTPAddress == "" {
		return nil, errNoServersAreCreated
	}

	return &server{
		httpServer: newHTTPServer(handler.Init(), cfg, logger),
		cfg:        cfg,
		logger:     logger,
	}, nil
}

// RunServer launches the HTTP server and blocks until a termination signal
// arrives, then drains in-flight requests within the configured shutdown
// timeout.
func (s *server) RunServer() {
	idleConnectionsClosed := make(chan struct{})
	ctx, stop := signal.NotifyContext(
		context.Background(),
		syscall.SIGTERM,
		syscall.SIGINT,
		syscall.SIGQUIT,
	)
	defer stop()

	// listen for stop signals
	go func() {
		<-ctx.Done()

		shutdownCtx, cancel := context.WithTimeout(context.Background(), s.cfg.ShutdownTimeout)
		defer cancel()
		s.httpServer.Shutdown(shutdownCtx)

		close(idleConnectionsClosed)
	}()

	s.logger.Info().Msg("launching HTTP server")
	go s.httpServer.RunServer()

	<-idleConnectionsClosed
	s.logger.Info().Msg("server shutdown gracefully")
}
