package config

import (
	"errors"
	"fmt"
	"os"

	"github.com/joho/godotenv"
)

const defaultEnvFile = ".env"

// LoadDotEnv loads variables from path into the process environment when the
// file exists. Variables that are already set are left untouched.
func LoadDotEnv(path string) error {
	if path == "" {
		path = defaultEnvFile
	}

	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		return nil
	}

	if err := godotenv.Load(path); err != nil {
		return fmt.Errorf("error loading env file %s: %w", path, err)
	}

	return nil
}
