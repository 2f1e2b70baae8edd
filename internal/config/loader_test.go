package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/MKhiriev/go-gateway/internal/logger"
)

// ── helpers ───────────────────────────────────────────────────────────────────

func writeYAML(t *testing.T, dir, name string, v any) {
	t.Helper()
	data, err := yaml.Marshal(v)
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), data, 0o600))
}

func loadFixture(t *testing.T, base, profile map[string]any, env map[string]string) *Properties {
	t.Helper()
	dir := t.TempDir()
	writeYAML(t, dir, "application.yml", base)
	writeYAML(t, dir, "application-test.yml", profile)

	props, err := LoadProperties(LoadOptions{
		Dir:       dir,
		Profile:   "test",
		IPAddress: "10.0.0.5",
		LookupEnv: envOf(env),
	}, logger.Nop())
	require.NoError(t, err)
	return props
}

// ── LoadProperties ────────────────────────────────────────────────────────────

// TestLoadProperties_ProfileOverridesBase verifies the layering of defaults,
// base YAML and profile YAML for equal dotted keys.
func TestLoadProperties_ProfileOverridesBase(t *testing.T) {
	props := loadFixture(t,
		map[string]any{
			"consul": map[string]any{"host": "base-host", "port": 8500},
			"server": map[string]any{"port": 9000},
		},
		map[string]any{
			"consul": map[string]any{"host": "profile-host"},
		},
		nil,
	)

	assert.Equal(t, "profile-host", props.GetString("consul.host"))
	assert.Equal(t, 8500, props.GetInt("consul.port"))
	assert.Equal(t, 9000, props.GetInt("server.port"))
	assert.Equal(t, "https", props.GetString("consul.scheme"), "built-in default kept")
}

// TestLoadProperties_ResolvesAgainstMergedConfig verifies that defaults
// referencing ${server.port} see the port from the YAML files.
func TestLoadProperties_ResolvesAgainstMergedConfig(t *testing.T) {
	props := loadFixture(t,
		map[string]any{"server": map[string]any{"port": 9000}},
		map[string]any{"app": map[string]any{"url": "${jhipster.mail.base-url}"}},
		nil,
	)

	assert.Equal(t, "http://127.0.0.1:9000", props.GetString("jhipster.mail.base-url"))
	// single pass: the referenced value was still a template in the snapshot
	assert.Equal(t, "http://127.0.0.1:${server.port}", props.GetString("app.url"))
}

// TestLoadProperties_EnvironmentWins verifies that the process environment
// takes precedence over both YAML files during placeholder resolution.
func TestLoadProperties_EnvironmentWins(t *testing.T) {
	props := loadFixture(t,
		map[string]any{"db": map[string]any{"host": "base"}, "dsn": "postgres://${db.host}/app"},
		map[string]any{"db": map[string]any{"host": "profile"}},
		map[string]string{"db.host": "env"},
	)

	assert.Equal(t, "postgres://env/app", props.GetString("dsn"))
}

// TestLoadProperties_BuiltIns verifies ipAddress and random.value handling.
func TestLoadProperties_BuiltIns(t *testing.T) {
	props := loadFixture(t, map[string]any{}, map[string]any{}, nil)

	assert.Equal(t, "10.0.0.5", props.GetString(KeyIPAddress))

	random := props.GetString(KeyRandomValue)
	assert.Len(t, random, 32)
	assert.Equal(t, "gateway:"+random, props.GetString("consul.service-id"))
	assert.Equal(t, "", props.GetString("consul.metadata-map.git-branch"))
	assert.Equal(t, "primary", props.GetString("consul.metadata-map.zone"))
}

// TestLoadProperties_MissingProfileFile verifies that a missing profile file
// fails with an error wrapping os.ErrNotExist.
func TestLoadProperties_MissingProfileFile(t *testing.T) {
	dir := t.TempDir()
	writeYAML(t, dir, "application.yml", map[string]any{"a": 1})

	props, err := LoadProperties(LoadOptions{Dir: dir, Profile: "staging"}, logger.Nop())

	assert.Nil(t, props)
	require.Error(t, err)
	assert.ErrorIs(t, err, os.ErrNotExist)
	assert.ErrorIs(t, err, ErrReadConfigFile)
	assert.Contains(t, err.Error(), "application-staging.yml")
}

// TestLoadProperties_MissingBaseFile verifies that the base file is required.
func TestLoadProperties_MissingBaseFile(t *testing.T) {
	_, err := LoadProperties(LoadOptions{Dir: t.TempDir(), Profile: "dev"}, logger.Nop())

	require.Error(t, err)
	assert.ErrorIs(t, err, os.ErrNotExist)
}

// TestLoadProperties_InvalidYAML verifies that parse errors are reported.
func TestLoadProperties_InvalidYAML(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "application.yml"), []byte("a: [unclosed"), 0o600))
	writeYAML(t, dir, "application-dev.yml", map[string]any{})

	_, err := LoadProperties(LoadOptions{Dir: dir}, logger.Nop())

	require.Error(t, err)
	assert.ErrorIs(t, err, ErrReadConfigFile)
}

// TestLoadProperties_DefaultProfileIsDev verifies the fallback profile.
func TestLoadProperties_DefaultProfileIsDev(t *testing.T) {
	dir := t.TempDir()
	writeYAML(t, dir, "application.yml", map[string]any{})
	writeYAML(t, dir, "application-dev.yml", map[string]any{"server": map[string]any{"port": 8081}})

	props, err := LoadProperties(LoadOptions{Dir: dir, LookupEnv: noEnv()}, logger.Nop())

	require.NoError(t, err)
	assert.Equal(t, 8081, props.GetInt(KeyServerPort))
}

// ── LoadDotEnv ────────────────────────────────────────────────────────────────

func TestLoadDotEnv(t *testing.T) {
	t.Run("missing file is ignored", func(t *testing.T) {
		assert.NoError(t, LoadDotEnv(filepath.Join(t.TempDir(), ".env")))
	})

	t.Run("existing variables are not overridden", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), ".env")
		require.NoError(t, os.WriteFile(path, []byte("GW_DOTENV_NEW=from-file\nGW_DOTENV_SET=from-file\n"), 0o600))
		t.Setenv("GW_DOTENV_SET", "from-env")
		t.Setenv("GW_DOTENV_NEW", "")
		require.NoError(t, os.Unsetenv("GW_DOTENV_NEW"))

		require.NoError(t, LoadDotEnv(path))

		assert.Equal(t, "from-file", os.Getenv("GW_DOTENV_NEW"))
		assert.Equal(t, "from-env", os.Getenv("GW_DOTENV_SET"))
	})
}
