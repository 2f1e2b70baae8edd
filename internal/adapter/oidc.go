package adapter

import (
	"context"
	"fmt"

	"github.com/MKhiriev/go-gateway/internal/config"
	"github.com/MKhiriev/go-gateway/internal/logger"
	"github.com/MKhiriev/go-gateway/internal/utils"
	"github.com/MKhiriev/go-gateway/models"
)

const discoveryPath = "/.well-known/openid-configuration"

type oidcAdapter struct {
	client       *utils.HTTPClient
	clientID     string
	clientSecret string
	logger       *logger.Logger
}

// NewOIDCProvider constructs an [IdentityProvider] for oidcCfg.IssuerURI.
// The client authenticates at the token endpoint with client_secret_post.
func NewOIDCProvider(oidcCfg config.OIDC, log *logger.Logger) (IdentityProvider, error) {
	baseURL, err := normalizeBaseURL(oidcCfg.IssuerURI, "https")
	if err != nil {
		return nil, fmt.Errorf("invalid issuer uri: %w", err)
	}

	return &oidcAdapter{
		client:       utils.NewHTTPClient(baseURL),
		clientID:     oidcCfg.ClientID,
		clientSecret: oidcCfg.ClientSecret,
		logger:       log,
	}, nil
}

// Discover implements [IdentityProvider].
func (o *oidcAdapter) Discover(ctx context.Context) (models.ProviderMetadata, error) {
	var metadata models.ProviderMetadata

	resp, err := o.client.R().
		SetContext(ctx).
		SetHeader("Accept", "application/json").
		SetResult(&metadata).
		Get(discoveryPath)
	if err != nil {
		return models.ProviderMetadata{}, fmt.Errorf("oidc discovery: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return models.ProviderMetadata{}, fmt.Errorf("oidc discovery: %w", err)
	}
	if metadata.AuthorizationEndpoint == "" || metadata.TokenEndpoint == "" {
		return models.ProviderMetadata{}, fmt.Errorf("oidc discovery: %w: missing endpoints", ErrMalformedResponse)
	}

	o.logger.Debug().Str("issuer", metadata.Issuer).Msg("oidc provider discovered")
	return metadata, nil
}

// Exchange implements [IdentityProvider] with the authorization_code grant.
func (o *oidcAdapter) Exchange(ctx context.Context, tokenEndpoint, code, redirectURI string) (models.TokenResponse, error) {
	var tokens models.TokenResponse

	resp, err := o.client.R().
		SetContext(ctx).
		SetHeader("Accept", "application/json").
		SetFormData(map[string]string{
			"grant_type":    "authorization_code",
			"code":          code,
			"redirect_uri":  redirectURI,
			"client_id":     o.clientID,
			"client_secret": o.clientSecret,
		}).
		SetResult(&tokens).
		Post(tokenEndpoint)
	if err != nil {
		return models.TokenResponse{}, fmt.Errorf("oidc token exchange: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return models.TokenResponse{}, fmt.Errorf("oidc token exchange: %w", err)
	}
	if tokens.IDToken == "" {
		return models.TokenResponse{}, fmt.Errorf("oidc token exchange: %w: no id_token", ErrMalformedResponse)
	}

	return tokens, nil
}
