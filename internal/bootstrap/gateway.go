package bootstrap

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/MKhiriev/go-gateway/internal/adapter"
	"github.com/MKhiriev/go-gateway/internal/auth"
	"github.com/MKhiriev/go-gateway/internal/config"
	"github.com/MKhiriev/go-gateway/internal/crypto"
	"github.com/MKhiriev/go-gateway/internal/handler"
	"github.com/MKhiriev/go-gateway/internal/logger"
	"github.com/MKhiriev/go-gateway/internal/registry"
	"github.com/MKhiriev/go-gateway/internal/server"
	"github.com/MKhiriev/go-gateway/internal/service"
	"github.com/MKhiriev/go-gateway/internal/session"
	"github.com/MKhiriev/go-gateway/internal/store"
	"github.com/MKhiriev/go-gateway/internal/tracing"
	"github.com/MKhiriev/go-gateway/internal/tunnel"
	"github.com/MKhiriev/go-gateway/internal/workers"
	"github.com/MKhiriev/go-gateway/models"
)

const closeTimeout = 5 * time.Second

// Gateway is an assembled gateway instance. Listeners are bound by New;
// requests are served by Run.
type Gateway struct {
	cfg *config.StructuredConfig

	storages        *store.Storages
	server          server.Server
	workers         *workers.Workers
	registrar       *registry.Registrar
	tunnel          *tunnel.Tunnel
	shutdownTracing tracing.ShutdownFunc

	hostname string
	logger   *logger.Logger
}

// Run loads the configuration from args, prints the startup banner,
// assembles the gateway and serves until ctx is cancelled or a termination
// signal arrives.
func Run(ctx context.Context, args []string, buildInfo models.AppBuildInfo, log *logger.Logger) error {
	cfg, err := LoadConfig(ctx, args, log)
	if err != nil {
		return err
	}

	PrintBuildInfo(os.Stdout, buildInfo, cfg)
	log.Debug().Any("config", cfg).Msg("received configs")

	gw, err := New(ctx, cfg, buildInfo, log)
	if err != nil {
		return err
	}

	return gw.Run(ctx)
}

// New opens storage and builds every component of the gateway from cfg.
// Optional integrations that cannot be set up are logged and left out.
func New(ctx context.Context, cfg *config.StructuredConfig, buildInfo models.AppBuildInfo, log *logger.Logger) (*Gateway, error) {
	shutdownTracing, err := tracing.Init(ctx, cfg.Tracing, log.WithComponent("tracing"))
	if err != nil {
		return nil, fmt.Errorf("error initializing tracing: %w", err)
	}

	storages, err := store.NewStorages(ctx, cfg.Storage, cfg.Security.Session.Store, log.WithComponent("store"))
	if err != nil {
		_ = shutdownTracing(ctx)
		return nil, fmt.Errorf("error creating storages: %w", err)
	}

	gw := &Gateway{
		cfg:             cfg,
		storages:        storages,
		shutdownTracing: shutdownTracing,
		registrar:       newRegistrar(cfg.Consul, log.WithComponent("registry")),
		hostname:        hostname(log),
		logger:          log,
	}

	services := service.NewServices(storages, cfg, buildInfo, log.WithComponent("service"))
	sessions := session.NewManager(sessionStore(storages.SessionRepository, cfg, log), cfg.Security.Session, log.WithComponent("session"))
	flow := newAuthFlow(cfg.Security.OIDC, services.AccountService, log.WithComponent("auth"))

	handlers, err := handler.NewHandlers(services, sessions, flow, cfg, log.WithComponent("handler"))
	if err != nil {
		gw.close()
		return nil, fmt.Errorf("error creating handlers: %w", err)
	}

	gw.server, err = server.NewServer(handlers, cfg.Server, log.WithComponent("server"))
	if err != nil {
		gw.close()
		return nil, fmt.Errorf("error creating server: %w", err)
	}

	background := []workers.Worker{
		workers.NewSessionJanitor(storages.SessionRepository, workers.DefaultJanitorInterval, log.WithComponent("workers")),
	}
	if handlers.GRPC != nil {
		background = append(background, handlers.GRPC)
	}
	gw.workers = workers.NewWorkers(background...)

	return gw, nil
}

// Run opens the tunnel, registers the instance, starts the background
// workers and serves. On shutdown the instance is deregistered, the workers
// and the tunnel are stopped, and storage and tracing are closed.
func (g *Gateway) Run(ctx context.Context) error {
	defer g.close()

	g.openTunnel(ctx)

	var tun registry.Tunnel
	if g.tunnel != nil {
		tun = g.tunnel
	}
	g.registrar.Register(ctx, registry.Describe(g.cfg, g.hostname, tun))

	workersCtx, cancelWorkers := context.WithCancel(ctx)
	defer cancelWorkers()
	g.workers.Run(workersCtx)

	g.server.OnShutdown(g.registrar.Deregister)
	g.server.OnShutdown(func(context.Context) {
		cancelWorkers()
		g.workers.Wait()
	})
	g.server.OnShutdown(func(context.Context) {
		g.closeTunnel()
	})

	return g.server.RunServer(ctx)
}

func (g *Gateway) openTunnel(ctx context.Context) {
	if !tunnel.Enabled(g.cfg.SSHTunnel, g.cfg.Profile) {
		return
	}

	tun, err := tunnel.Open(ctx, g.cfg.SSHTunnel, g.logger.WithComponent("tunnel"))
	if err != nil {
		g.logger.Err(err).Msg("error opening ssh tunnel, continuing without it")
		return
	}
	g.tunnel = tun
}

func (g *Gateway) closeTunnel() {
	if g.tunnel == nil {
		return
	}
	if err := g.tunnel.Close(); err != nil {
		g.logger.Err(err).Msg("error closing ssh tunnel")
	}
}

func (g *Gateway) close() {
	if err := g.storages.Close(); err != nil {
		g.logger.Err(err).Msg("error closing storages")
	}

	ctx, cancel := context.WithTimeout(context.Background(), closeTimeout)
	defer cancel()
	if err := g.shutdownTracing(ctx); err != nil {
		g.logger.Err(err).Msg("error shutting down tracing")
	}
}

// sessionStore seals stored sessions when a session secret is configured.
func sessionStore(sessions store.SessionRepository, cfg *config.StructuredConfig, log *logger.Logger) store.SessionRepository {
	sealer, err := crypto.NewSealer(cfg.Security.Session.Secret, cfg.AppName)
	if err != nil {
		log.Warn().Err(err).Msg("session secret not set, sessions are stored unencrypted")
		return sessions
	}
	return session.NewSealedStore(sessions, sealer)
}

func newRegistrar(cfg config.Consul, log *logger.Logger) *registry.Registrar {
	if !cfg.Enabled {
		return registry.NewRegistrar(nil, false, log)
	}

	consul, err := adapter.NewConsulRegistry(cfg, log)
	if err != nil {
		log.Err(err).Msg("error creating consul client, registration disabled")
		return registry.NewRegistrar(nil, false, log)
	}

	return registry.NewRegistrar(consul, true, log)
}

// newAuthFlow returns nil when no issuer is configured; the login routes
// then answer 503.
func newAuthFlow(cfg config.OIDC, accounts service.AccountService, log *logger.Logger) *auth.Flow {
	if cfg.IssuerURI == "" {
		log.Info().Msg("oidc issuer not configured, login disabled")
		return nil
	}

	provider, err := adapter.NewOIDCProvider(cfg, log)
	if err != nil {
		log.Err(err).Msg("error creating oidc client, login disabled")
		return nil
	}

	return auth.NewFlow(provider, accounts, cfg, log)
}

func hostname(log *logger.Logger) string {
	name, err := os.Hostname()
	if err != nil {
		log.Err(err).Msg("error reading hostname")
		return "localhost"
	}
	return name
}
