package bootstrap

import (
	"context"
	"fmt"

	"github.com/MKhiriev/go-gateway/internal/adapter"
	"github.com/MKhiriev/go-gateway/internal/config"
	"github.com/MKhiriev/go-gateway/internal/logger"
	"github.com/MKhiriev/go-gateway/internal/secrets"
)

// LoadConfig runs the configuration steps of startup and returns the
// validated configuration.
//
// Secrets are read from vault after the YAML files are merged and before the
// typed configuration is bound, so a secret overrides a file value and env
// variables exported by the secret loader are seen by the env layer.
func LoadConfig(ctx context.Context, args []string, log *logger.Logger) (*config.StructuredConfig, error) {
	boot, err := config.GetBootstrapConfig(args)
	if err != nil {
		return nil, fmt.Errorf("error reading bootstrap settings: %w", err)
	}

	if err = config.LoadDotEnv(boot.EnvFile); err != nil {
		return nil, err
	}

	// the .env file may select the profile or the config directory
	boot, err = config.GetBootstrapConfig(args)
	if err != nil {
		return nil, fmt.Errorf("error reading bootstrap settings: %w", err)
	}

	props, err := config.LoadProperties(config.LoadOptions{
		Dir:     boot.ConfigDir,
		Profile: boot.Profile,
	}, log.WithComponent("config"))
	if err != nil {
		return nil, fmt.Errorf("error loading configuration files: %w", err)
	}

	vaultCfg, err := config.GetVaultConfig(props)
	if err != nil {
		return nil, err
	}
	loadSecrets(ctx, props, vaultCfg, log.WithComponent("secrets"))

	cfg, err := config.GetStructuredConfig(props, args)
	if err != nil {
		return nil, err
	}
	cfg.Profile = boot.Profile
	cfg.ConfigDir = boot.ConfigDir
	cfg.EnvFile = boot.EnvFile

	if err = logger.SetLevel(cfg.Logging.Level); err != nil {
		return nil, err
	}

	return cfg, nil
}

func loadSecrets(ctx context.Context, props *config.Properties, vaultCfg config.Vault, log *logger.Logger) {
	if !vaultCfg.Enabled {
		log.Info().Msg("vault disabled, using local configuration only")
		return
	}

	store, err := adapter.NewVaultSecretStore(vaultCfg, log)
	if err != nil {
		log.Err(err).Msg("error creating vault client, using local configuration only")
		return
	}

	secrets.NewLoader(store, log).Load(ctx, props, vaultCfg)
}
