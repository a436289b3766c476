package config_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/storefront/pkg/config"
)

type apiConfig struct {
	BaseURL string        `env:"API_BASE_URL" envDefault:"http://localhost:8080"`
	Timeout time.Duration `env:"API_TIMEOUT" envDefault:"15s"`
	Debug   bool          `env:"DEBUG" envDefault:"false"`
}

type requiredConfig struct {
	Token string `env:"TOKEN,required"`
}

func TestLoad_Defaults(t *testing.T) {
	cfg, err := config.Load[apiConfig](config.WithEnviron(map[string]string{}))
	require.NoError(t, err)
	assert.Equal(t, "http://localhost:8080", cfg.BaseURL)
	assert.Equal(t, 15*time.Second, cfg.Timeout)
	assert.False(t, cfg.Debug)
}

func TestLoad_Prefix(t *testing.T) {
	cfg, err := config.Load[apiConfig](
		config.WithPrefix("STOREFRONT_"),
		config.WithEnviron(map[string]string{
			"STOREFRONT_API_BASE_URL": "https://shop.example.com",
			"API_TIMEOUT":             "1s",
			"STOREFRONT_DEBUG":        "true",
		}),
	)
	require.NoError(t, err)
	assert.Equal(t, "https://shop.example.com", cfg.BaseURL)
	assert.Equal(t, 15*time.Second, cfg.Timeout, "unprefixed variable must be ignored")
	assert.True(t, cfg.Debug)
}

func TestLoad_ProcessEnvironment(t *testing.T) {
	t.Setenv("CFGTEST_API_TIMEOUT", "3s")

	cfg, err := config.Load[apiConfig](config.WithPrefix("CFGTEST_"))
	require.NoError(t, err)
	assert.Equal(t, 3*time.Second, cfg.Timeout)
}

func TestLoad_DotEnv(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, ".env")
	require.NoError(t, os.WriteFile(file, []byte("API_BASE_URL=http://from-file\nDEBUG=true\n"), 0o600))

	cfg, err := config.Load[apiConfig](
		config.WithEnviron(map[string]string{"DEBUG": "false"}),
		config.WithDotEnv(file),
	)
	require.NoError(t, err)
	assert.Equal(t, "http://from-file", cfg.BaseURL)
	assert.False(t, cfg.Debug, "environment must win over file values")

	_, err = config.Load[apiConfig](config.WithDotEnv(filepath.Join(dir, "missing.env")))
	assert.ErrorIs(t, err, config.ErrReadingEnvFile)

	_, err = config.Load[apiConfig](
		config.WithDotEnv(filepath.Join(dir, "missing.env")),
		config.WithOptionalFiles(),
	)
	assert.NoError(t, err)
}

func TestLoad_MissingRequired(t *testing.T) {
	_, err := config.Load[requiredConfig](config.WithEnviron(map[string]string{}))
	assert.ErrorIs(t, err, config.ErrParsingConfig)

	assert.Panics(t, func() {
		config.MustLoad[requiredConfig](config.WithEnviron(map[string]string{}))
	})
}
