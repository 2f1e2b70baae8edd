package adapter

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/MKhiriev/go-gateway/internal/config"
	"github.com/MKhiriev/go-gateway/internal/logger"
	"github.com/MKhiriev/go-gateway/internal/utils"
)

const vaultTokenHeader = "X-Vault-Token"

type vaultAdapter struct {
	client *utils.HTTPClient
	logger *logger.Logger
}

// NewVaultSecretStore constructs a [SecretStore] backed by the Vault HTTP API.
// The base URL is vaultCfg.URI; vaultCfg.Scheme is used when the URI has
// none. Every request carries vaultCfg.Token in the X-Vault-Token header.
//
// Returns an error if the URI cannot be parsed.
func NewVaultSecretStore(vaultCfg config.Vault, log *logger.Logger) (SecretStore, error) {
	baseURL, err := normalizeBaseURL(vaultCfg.URI, vaultCfg.Scheme)
	if err != nil {
		return nil, fmt.Errorf("invalid vault uri: %w", err)
	}

	client := utils.NewHTTPClient(baseURL, utils.WithHeader(vaultTokenHeader, vaultCfg.Token))
	return &vaultAdapter{client: client, logger: log}, nil
}

// vaultResponse is the envelope shared by the KV v1 and v2 read endpoints.
type vaultResponse struct {
	Data map[string]any `json:"data"`
}

// Read implements [SecretStore]. It issues GET /v1/<path> and unwraps the
// secret from either the KV v2 shape {"data":{"data":{...},"metadata":{...}}}
// or the KV v1 shape {"data":{...}}.
func (v *vaultAdapter) Read(ctx context.Context, path string) (map[string]any, error) {
	path = strings.Trim(path, "/")

	resp, err := v.client.R().
		SetContext(ctx).
		SetHeader("Accept", "application/json").
		Get("/v1/" + path)
	if err != nil {
		return nil, fmt.Errorf("vault read %s: %w", path, err)
	}
	if err = mapHTTPError(resp); err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, fmt.Errorf("vault read %s: %w: %w", path, ErrSecretNotFound, err)
		}
		return nil, fmt.Errorf("vault read %s: %w", path, err)
	}

	var envelope vaultResponse
	if err = decodeJSON(resp.Body(), &envelope); err != nil {
		return nil, fmt.Errorf("vault read %s: %w: %w", path, ErrMalformedResponse, err)
	}
	if envelope.Data == nil {
		return nil, fmt.Errorf("vault read %s: %w: no data", path, ErrMalformedResponse)
	}

	secret := unwrapKVv2(envelope.Data)
	normalizeNumbers(secret)
	v.logger.Debug().Str("path", path).Int("keys", len(secret)).Msg("secret read from vault")
	return secret, nil
}

func unwrapKVv2(data map[string]any) map[string]any {
	inner, hasData := data["data"].(map[string]any)
	_, hasMetadata := data["metadata"]
	if hasData && hasMetadata {
		return inner
	}
	return data
}

// decodeJSON decodes body with numbers kept as [json.Number] so that large
// integers survive without a float64 round trip.
func decodeJSON(body []byte, v any) error {
	dec := json.NewDecoder(bytes.NewReader(body))
	dec.UseNumber()
	return dec.Decode(v)
}

// normalizeNumbers replaces every json.Number in value, in place, with an
// int64 when it is integral and in range, or a float64 otherwise.
func normalizeNumbers(value any) any {
	switch v := value.(type) {
	case json.Number:
		if i, err := v.Int64(); err == nil {
			return i
		}
		if f, err := v.Float64(); err == nil {
			return f
		}
		return v.String()
	case map[string]any:
		for key, child := range v {
			v[key] = normalizeNumbers(child)
		}
	case []any:
		for i, child := range v {
			v[i] = normalizeNumbers(child)
		}
	}
	return value
}
