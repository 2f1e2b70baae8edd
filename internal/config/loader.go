// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"

	"github.com/MKhiriev/go-gateway/internal/logger"
)

const (
	baseConfigName = "application.yml"
	defaultProfile = "dev"
)

// LoadOptions selects the YAML files read by [LoadProperties].
type LoadOptions struct {
	// Dir is the directory holding application.yml and its profile variants.
	Dir string

	// Profile selects application-<Profile>.yml. Empty means "dev".
	Profile string

	// IPAddress overrides host address detection when non-empty.
	IPAddress string

	// LookupEnv replaces os.LookupEnv during placeholder resolution.
	LookupEnv func(string) (string, bool)
}

// LoadProperties builds the property map from the built-in defaults,
// application.yml and application-<profile>.yml.
//
// The profile file overrides the base file for equal dotted keys. A missing
// profile file is logged and then reported as an error wrapping
// [os.ErrNotExist].
func LoadProperties(opts LoadOptions, log *logger.Logger) (*Properties, error) {
	profile := opts.Profile
	if profile == "" {
		profile = defaultProfile
	}

	basePath := filepath.Join(opts.Dir, baseConfigName)
	profilePath := filepath.Join(opts.Dir, profileConfigName(profile))

	base, err := readYAML(basePath)
	if err != nil {
		return nil, err
	}

	log.Info().Str("profile", profile).Msg("actual BACKEND_ENV value")
	log.Info().Msg("standard allowed values are: dev, test or prod")
	log.Info().Msgf("if you run with a non standard BACKEND_ENV value, remember to add your %s file", profileConfigName(profile))
	if _, statErr := os.Stat(profilePath); errors.Is(statErr, os.ErrNotExist) {
		log.Error().Str("path", profilePath).
			Msg("a profile configuration file for the selected BACKEND_ENV value does not exist under the config folder")
	}

	overlay, err := readYAML(profilePath)
	if err != nil {
		return nil, err
	}

	ip := opts.IPAddress
	if ip == "" {
		ip = FirstIPv4()
	}

	merged := Flatten(base)
	for k, v := range Flatten(overlay) {
		merged[k] = v
	}
	merged[KeyIPAddress] = ip

	defaults := DefaultProperties()
	defaults[KeyRandomValue] = randomValue()

	var propsOpts []PropertiesOption
	if opts.LookupEnv != nil {
		propsOpts = append(propsOpts, WithLookupEnv(opts.LookupEnv))
	}

	props := NewProperties(defaults, propsOpts...)
	props.AddAll(merged)

	log.Debug().Int("keys", len(props.Keys())).Msg("configuration properties loaded")
	return props, nil
}

func profileConfigName(profile string) string {
	return "application-" + profile + ".yml"
}

// readYAML parses one YAML file into a nested map.
func readYAML(path string) (map[string]any, error) {
	k := koanf.New(".")
	if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrReadConfigFile, path, err)
	}
	return k.Raw(), nil
}
