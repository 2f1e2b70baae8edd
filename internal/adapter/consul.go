package adapter

import (
	"context"
	"fmt"
	"net/url"

	"github.com/MKhiriev/go-gateway/internal/config"
	"github.com/MKhiriev/go-gateway/internal/logger"
	"github.com/MKhiriev/go-gateway/internal/utils"
	"github.com/MKhiriev/go-gateway/models"
)

const consulTokenHeader = "X-Consul-Token"

type consulAdapter struct {
	client *utils.HTTPClient
	logger *logger.Logger
}

// NewConsulRegistry constructs a [ServiceRegistry] backed by the Consul agent
// HTTP API at <scheme>://<host>:<port>. consulCfg.Token, when set, is sent
// in the X-Consul-Token header.
func NewConsulRegistry(consulCfg config.Consul, log *logger.Logger) (ServiceRegistry, error) {
	address := consulCfg.Host
	if consulCfg.Port > 0 {
		address = fmt.Sprintf("%s:%d", consulCfg.Host, consulCfg.Port)
	}

	baseURL, err := normalizeBaseURL(address, consulCfg.Scheme)
	if err != nil {
		return nil, fmt.Errorf("invalid consul address: %w", err)
	}

	client := utils.NewHTTPClient(baseURL, utils.WithHeader(consulTokenHeader, consulCfg.Token))
	return &consulAdapter{client: client, logger: log}, nil
}

// agentServiceRegistration is the JSON body of PUT /v1/agent/service/register.
type agentServiceRegistration struct {
	ID      string              `json:"ID"`
	Name    string              `json:"Name"`
	Tags    []string            `json:"Tags,omitempty"`
	Address string              `json:"Address"`
	Port    int                 `json:"Port"`
	Meta    map[string]string   `json:"Meta,omitempty"`
	Checks  []agentServiceCheck `json:"Checks,omitempty"`
}

type agentServiceCheck struct {
	HTTP                           string `json:"HTTP,omitempty"`
	GRPC                           string `json:"GRPC,omitempty"`
	Interval                       string `json:"Interval,omitempty"`
	Timeout                        string `json:"Timeout,omitempty"`
	DeregisterCriticalServiceAfter string `json:"DeregisterCriticalServiceAfter,omitempty"`
}

// Register implements [ServiceRegistry] with PUT /v1/agent/service/register.
func (c *consulAdapter) Register(ctx context.Context, reg models.ServiceRegistration) error {
	body := agentServiceRegistration{
		ID:      reg.ID,
		Name:    reg.Name,
		Tags:    reg.Tags,
		Address: reg.Address,
		Port:    reg.Port,
		Meta:    reg.Meta,
	}
	for _, check := range reg.Checks {
		body.Checks = append(body.Checks, agentServiceCheck{
			HTTP:                           check.HTTP,
			GRPC:                           check.GRPC,
			Interval:                       formatDuration(check.Interval),
			Timeout:                        formatDuration(check.Timeout),
			DeregisterCriticalServiceAfter: formatDuration(check.DeregisterCriticalServiceAfter),
		})
	}

	resp, err := c.client.R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(body).
		Put("/v1/agent/service/register")
	if err != nil {
		return fmt.Errorf("consul register %s: %w", reg.ID, err)
	}
	if err = mapHTTPError(resp); err != nil {
		return fmt.Errorf("consul register %s: %w", reg.ID, err)
	}

	c.logger.Debug().Str("service_id", reg.ID).Msg("service registered in consul")
	return nil
}

// Deregister implements [ServiceRegistry] with
// PUT /v1/agent/service/deregister/<id>.
func (c *consulAdapter) Deregister(ctx context.Context, id string) error {
	resp, err := c.client.R().
		SetContext(ctx).
		Put("/v1/agent/service/deregister/" + url.PathEscape(id))
	if err != nil {
		return fmt.Errorf("consul deregister %s: %w", id, err)
	}
	if err = mapHTTPError(resp); err != nil {
		return fmt.Errorf("consul deregister %s: %w", id, err)
	}

	c.logger.Debug().Str("service_id", id).Msg("service deregistered from consul")
	return nil
}
