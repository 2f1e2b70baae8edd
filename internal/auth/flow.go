// Package auth implements the OpenID Connect authorization-code login of
// the gateway on top of the server-side session.
package auth

import (
	"context"
	"fmt"
	"net/url"
	"strings"
	"sync"

	"github.com/MKhiriev/go-gateway/internal/adapter"
	"github.com/MKhiriev/go-gateway/internal/config"
	"github.com/MKhiriev/go-gateway/internal/logger"
	"github.com/MKhiriev/go-gateway/internal/service"
	"github.com/MKhiriev/go-gateway/internal/utils"
	"github.com/MKhiriev/go-gateway/models"
)

const (
	// LoginPath starts the login.
	LoginPath = "/oauth2/authorization/oidc"
	// CallbackPath receives the authorization response.
	CallbackPath = "/login/oauth2/code/oidc"
)

// stateKey is the session value holding the pending OAuth2 state.
const stateKey = "oauth2_state"

// Session is the request session the flow keeps its state in.
type Session interface {
	Put(ctx context.Context, key string, value any)
	PopString(ctx context.Context, key string) string
	// Login binds user to the session.
	Login(ctx context.Context, user models.User) error
}

// Flow drives the authorization-code login. Provider metadata is discovered
// on first use and cached once discovery succeeds.
type Flow struct {
	provider adapter.IdentityProvider
	accounts service.AccountService
	cfg      config.OIDC
	ids      *utils.UUIDGenerator

	mu       sync.Mutex
	metadata *models.ProviderMetadata

	logger *logger.Logger
}

// NewFlow returns a Flow for the configured OIDC client registration.
func NewFlow(provider adapter.IdentityProvider, accounts service.AccountService, cfg config.OIDC, log *logger.Logger) *Flow {
	return &Flow{
		provider: provider,
		accounts: accounts,
		cfg:      cfg,
		ids:      utils.NewUUIDGenerator(),
		logger:   log,
	}
}

func (f *Flow) providerMetadata(ctx context.Context) (models.ProviderMetadata, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.metadata != nil {
		return *f.metadata, nil
	}

	metadata, err := f.provider.Discover(ctx)
	if err != nil {
		return models.ProviderMetadata{}, err
	}
	f.metadata = &metadata
	return metadata, nil
}

// Begin stores a fresh state in the session and returns the provider's
// authorization URL to redirect the browser to.
func (f *Flow) Begin(ctx context.Context, s Session) (string, error) {
	metadata, err := f.providerMetadata(ctx)
	if err != nil {
		return "", err
	}

	authURL, err := url.Parse(metadata.AuthorizationEndpoint)
	if err != nil {
		return "", fmt.Errorf("%w: authorization endpoint: %w", adapter.ErrMalformedResponse, err)
	}

	state := f.ids.GenerateRandom()
	s.Put(ctx, stateKey, state)

	q := authURL.Query()
	q.Set("response_type", "code")
	q.Set("client_id", f.cfg.ClientID)
	q.Set("redirect_uri", f.cfg.RedirectURI)
	q.Set("scope", strings.Join(f.cfg.Scopes, " "))
	q.Set("state", state)
	authURL.RawQuery = q.Encode()

	return authURL.String(), nil
}

// Complete validates the authorization response in query against the
// session, redeems the code, synchronizes the account from the ID token
// claims and binds the user to the session.
func (f *Flow) Complete(ctx context.Context, s Session, query url.Values) (models.User, error) {
	log := logger.FromContext(ctx)

	expected := s.PopString(ctx, stateKey)

	if e := query.Get("error"); e != "" {
		return models.User{}, fmt.Errorf("%w: %s: %s", ErrProviderError, e, query.Get("error_description"))
	}
	if expected == "" || query.Get("state") != expected {
		return models.User{}, ErrStateMismatch
	}
	code := query.Get("code")
	if code == "" {
		return models.User{}, ErrMissingCode
	}

	metadata, err := f.providerMetadata(ctx)
	if err != nil {
		return models.User{}, err
	}

	tokens, err := f.provider.Exchange(ctx, metadata.TokenEndpoint, code, f.cfg.RedirectURI)
	if err != nil {
		log.Err(err).Str("func", "*Flow.Complete").Msg("error exchanging authorization code")
		return models.User{}, err
	}

	issuer := metadata.Issuer
	if issuer == "" {
		issuer = f.cfg.IssuerURI
	}
	claims, err := utils.ParseIDTokenClaims(tokens.IDToken, issuer, f.cfg.ClientID)
	if err != nil {
		log.Err(err).Str("func", "*Flow.Complete").Msg("invalid id token")
		return models.User{}, err
	}

	user, err := f.accounts.UpsertFromClaims(ctx, claims)
	if err != nil {
		return models.User{}, err
	}

	if err = s.Login(ctx, user); err != nil {
		log.Err(err).Str("func", "*Flow.Complete").Msg("error binding user to session")
		return models.User{}, err
	}
	log.Info().Str("login", user.Login).Msg("user logged in")
	return user, nil
}
