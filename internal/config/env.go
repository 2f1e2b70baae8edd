// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"fmt"

	"github.com/caarlos0/env/v11"
)

// parseEnv populates cfg from environment variables using the caarlos0/env
// library. Only fields carrying an `env` tag are read, so the gateway keeps
// the original variable names (NODE_SERVER_PORT, BACKEND_ENV) next to the
// STORAGE_* group.
//
// Returns a wrapped error if env.Parse fails (e.g. NODE_SERVER_PORT is not a
// number).
func parseEnv(cfg *StructuredConfig) error {
	err := env.Parse(cfg)
	if err != nil {
		return fmt.Errorf("error getting env configs: %w", err)
	}

	return nil
}
