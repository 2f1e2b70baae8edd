package server

import (
	"context"
	"errors"
	"os/signal"
	"syscall"
	"time"

	"github.com/MKhiriev/go-gateway/internal/config"
	"github.com/MKhiriev/go-gateway/internal/handler"
	"github.com/MKhiriev/go-gateway/internal/logger"
)

// DefaultShutdownTimeout bounds the graceful shutdown when none is configured.
const DefaultShutdownTimeout = 10 * time.Second

type server struct {
	httpServer *httpServer
	gRPCServer *grpcServer

	hooks           []func(ctx context.Context)
	shutdownTimeout time.Duration

	logger *logger.Logger
}

func NewServer(handlers *handler.Handlers, cfg config.Server, logger *logger.Logger) (Server, error) {
	logger.Info().Msg("creating new server...")
	servers := &server{
		shutdownTimeout: cfg.ShutdownTimeout,
		logger:          logger,
	}
	if servers.shutdownTimeout <= 0 {
		servers.shutdownTimeout = DefaultShutdownTimeout
	}

	var err error
	if handlers.HTTP != nil {
		if servers.httpServer, err = newHTTPServer(handlers.HTTP.Init(), cfg, logger); err != nil {
			return nil, err
		}
	}
	if handlers.GRPC != nil {
		if servers.gRPCServer, err = newGRPCServer(handlers.GRPC, cfg, logger); err != nil {
			if servers.httpServer != nil {
				_ = servers.httpServer.listener.Close()
			}
			return nil, err
		}
	}

	if servers.httpServer == nil && servers.gRPCServer == nil {
		return nil, errNoServersAreCreated
	}

	return servers, nil
}

func (s *server) OnShutdown(hook func(ctx context.Context)) {
	s.hooks = append(s.hooks, hook)
}

func (s *server) RunServer(ctx context.Context) error {
	// check if any server was created
	if s.httpServer == nil && s.gRPCServer == nil {
		return errors.New("no servers to run")
	}

	ctx, stop := signal.NotifyContext(ctx,
		syscall.SIGTERM,
		syscall.SIGINT,
		syscall.SIGQUIT,
	)
	defer stop()

	errs := make(chan error, 2)
	running := 0

	// launch all created servers
	if s.httpServer != nil {
		running++
		go func() { errs <- s.httpServer.RunServer() }()
	}
	if s.gRPCServer != nil {
		running++
		go func() { errs <- s.gRPCServer.RunServer() }()
	}

	var runErr error
	select {
	case <-ctx.Done():
		s.logger.Info().Msg("termination requested, shutting down")
	case runErr = <-errs:
		running--
		s.logger.Err(runErr).Msg("server stopped unexpectedly, shutting down")
	}

	s.shutdown()

	for ; running > 0; running-- {
		if err := <-errs; err != nil && runErr == nil {
			runErr = err
		}
	}

	s.logger.Info().Msg("server Shutdown gracefully")
	return runErr
}

// shutdown runs the hooks and then stops the transports within the shutdown
// timeout.
func (s *server) shutdown() {
	ctx, cancel := context.WithTimeout(context.Background(), s.shutdownTimeout)
	defer cancel()

	for _, hook := range s.hooks {
		hook(ctx)
	}

	// finish HTTP server
	if s.httpServer != nil {
		s.httpServer.Shutdown(ctx)
	}

	// finish gRPC server
	if s.gRPCServer != nil {
		s.gRPCServer.Shutdown(ctx)
	}
}
