package config

import (
	"fmt"

	"github.com/knadh/koanf/v2"
)

// propertiesProvider exposes a flat property map as a koanf provider.
type propertiesProvider struct {
	values map[string]any
}

// ReadBytes is not supported; the provider only returns parsed maps.
func (p propertiesProvider) ReadBytes() ([]byte, error) {
	return nil, fmt.Errorf("%w: properties provider does not support ReadBytes", ErrBindConfig)
}

// Read returns the nested form of the property map.
func (p propertiesProvider) Read() (map[string]any, error) {
	return unflatten(p.values), nil
}

// bind decodes props into a new [StructuredConfig] group by group.
func bind(props *Properties) (*StructuredConfig, error) {
	k := koanf.New(".")
	if err := k.Load(propertiesProvider{values: props.All()}, nil); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrBindConfig, err)
	}

	cfg := &StructuredConfig{
		AppName:   props.GetString("jhipster.clientApp.name"),
		IPAddress: props.GetString(KeyIPAddress),
	}

	groups := []struct {
		path   string
		target any
	}{
		{"server", &cfg.Server},
		{"jhipster.security", &cfg.Security},
		{"jhipster.security.oauth2.client.provider.oidc", &cfg.Security.OIDC},
		{"jhipster.security.oauth2.client.registration.oidc", &cfg.Security.OIDC},
		{"jhipster.swagger", &cfg.Swagger},
		{"consul", &cfg.Consul},
		{"vault", &cfg.Vault},
		{"sshTunnel", &cfg.SSHTunnel},
		{"storage", &cfg.Storage},
		{"logging", &cfg.Logging},
		{"tracing", &cfg.Tracing},
	}
	for _, g := range groups {
		if !k.Exists(g.path) {
			continue
		}
		if err := k.UnmarshalWithConf(g.path, g.target, koanf.UnmarshalConf{Tag: "koanf"}); err != nil {
			return nil, fmt.Errorf("%w: %s: %w", ErrBindConfig, g.path, err)
		}
	}

	cfg.Server.CORS.AllowedOrigins = props.GetStrings("server.cors.allowed-origins")
	cfg.Security.OIDC.Scopes = props.GetStrings("jhipster.security.oauth2.client.registration.oidc.scope")
	cfg.Consul.Metadata = props.WithPrefix(KeyConsulMetadata)

	return cfg, nil
}
