// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package registry announces the gateway to the service registry at startup
// and withdraws it on shutdown.
package registry

import (
	"context"
	"net"
	"strconv"
	"sync"

	"github.com/MKhiriev/go-gateway/internal/adapter"
	"github.com/MKhiriev/go-gateway/internal/config"
	"github.com/MKhiriev/go-gateway/internal/logger"
	"github.com/MKhiriev/go-gateway/internal/validators"
	"github.com/MKhiriev/go-gateway/models"
)

// HealthPath is the HTTP path probed by the registry health check.
const HealthPath = "/management/health"

// Tunnel is the reverse tunnel the gateway is reachable through, if any.
type Tunnel interface {
	RemoteHost() string
	RemotePort() int
}

// Describe builds the registration of this gateway instance.
//
// The address is the tunnel host when tun is non-nil, otherwise the host IP
// address when consul.prefer-ip-address is set, otherwise hostname. With a
// tunnel the port is the remote tunnel port and the service name carries the
// dev suffix.
func Describe(cfg *config.StructuredConfig, hostname string, tun Tunnel) models.ServiceRegistration {
	address := hostname
	if cfg.Consul.PreferIPAddress && cfg.IPAddress != "" {
		address = cfg.IPAddress
	}
	port := cfg.Server.Port
	name := cfg.Consul.ServiceName

	if tun != nil {
		address = tun.RemoteHost()
		port = tun.RemotePort()
		name += cfg.SSHTunnel.DevSuffix
	}

	reg := models.ServiceRegistration{
		ID:      cfg.Consul.ServiceID,
		Name:    name,
		Address: address,
		Port:    port,
		Meta:    cfg.Consul.Metadata,
		Checks: []models.HealthCheck{{
			HTTP:                           "http://" + net.JoinHostPort(address, strconv.Itoa(port)) + HealthPath,
			Interval:                       cfg.Consul.HealthCheckInterval,
			Timeout:                        cfg.Consul.HealthCheckTimeout,
			DeregisterCriticalServiceAfter: cfg.Consul.DeregisterCriticalServiceAfter,
		}},
	}
	if cfg.Profile != "" {
		reg.Tags = []string{"profile=" + cfg.Profile}
	}

	if grpcPort := grpcPort(cfg.Server.GRPCAddress); grpcPort != "" && tun == nil {
		reg.Checks = append(reg.Checks, models.HealthCheck{
			GRPC:                           net.JoinHostPort(address, grpcPort),
			Interval:                       cfg.Consul.HealthCheckInterval,
			Timeout:                        cfg.Consul.HealthCheckTimeout,
			DeregisterCriticalServiceAfter: cfg.Consul.DeregisterCriticalServiceAfter,
		})
	}

	return reg
}

func grpcPort(address string) string {
	if address == "" {
		return ""
	}
	_, port, err := net.SplitHostPort(address)
	if err != nil {
		return ""
	}
	return port
}

// Registrar registers one service instance and remembers its id so that the
// same id is withdrawn on shutdown.
type Registrar struct {
	registry  adapter.ServiceRegistry
	enabled   bool
	validator validators.Validator

	mu           sync.Mutex
	registeredID string

	logger *logger.Logger
}

// NewRegistrar returns a Registrar. When enabled is false every call is a
// no-op.
func NewRegistrar(registry adapter.ServiceRegistry, enabled bool, log *logger.Logger) *Registrar {
	return &Registrar{
		registry:  registry,
		enabled:   enabled,
		validator: validators.NewRegistrationValidator(),
		logger:    log,
	}
}

// Register announces reg. An invalid descriptor is not sent. Failures are
// logged and reported as false; the gateway keeps running unregistered.
func (r *Registrar) Register(ctx context.Context, reg models.ServiceRegistration) bool {
	if !r.enabled {
		r.logger.Info().Msg("consul registration disabled")
		return false
	}

	if err := r.validator.Validate(ctx, reg); err != nil {
		r.logger.Err(err).Str("service_id", reg.ID).Msg("invalid service registration, not registering")
		return false
	}

	if err := r.registry.Register(ctx, reg); err != nil {
		r.logger.Err(err).Str("service_id", reg.ID).Msg("error registering service with consul")
		return false
	}

	r.mu.Lock()
	r.registeredID = reg.ID
	r.mu.Unlock()

	r.logger.Info().
		Str("service_id", reg.ID).
		Str("service_name", reg.Name).
		Str("address", net.JoinHostPort(reg.Address, strconv.Itoa(reg.Port))).
		Msg("service registered with consul")
	return true
}

// Deregister withdraws the registered instance, if any. Failures are logged.
func (r *Registrar) Deregister(ctx context.Context) {
	r.mu.Lock()
	id := r.registeredID
	r.registeredID = ""
	r.mu.Unlock()

	if id == "" {
		return
	}

	if err := r.registry.Deregister(ctx, id); err != nil {
		r.logger.Err(err).Str("service_id", id).Msg("error deregistering service from consul")
		return
	}
	r.logger.Info().Str("service_id", id).Msg("service deregistered from consul")
}
