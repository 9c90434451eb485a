package config_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zkcargopass/cargopass/pkg/config"
)

type nested struct {
	TTL time.Duration `env:"TEST_TTL" envDefault:"24h"`
}

type testConfig struct {
	Name     string `env:"TEST_NAME" envDefault:"default_value"`
	Count    int    `env:"TEST_COUNT" envDefault:"42"`
	Enabled  bool   `env:"TEST_ENABLED" envDefault:"true"`
	Required string `env:"TEST_REQUIRED,required"`
	Nested   nested
}

func TestLoad(t *testing.T) {
	t.Setenv("TEST_REQUIRED", "present")
	t.Setenv("TEST_COUNT", "7")
	t.Setenv("TEST_TTL", "1h")

	var cfg testConfig
	require.NoError(t, config.Load(&cfg, "does-not-exist.env"))

	assert.Equal(t, "default_value", cfg.Name)
	assert.Equal(t, 7, cfg.Count)
	assert.True(t, cfg.Enabled)
	assert.Equal(t, "present", cfg.Required)
	assert.Equal(t, time.Hour, cfg.Nested.TTL)
}

func TestLoad_NilPointer(t *testing.T) {
	var cfg *testConfig
	assert.ErrorIs(t, config.Load(cfg), config.ErrNilPointer)
}

func TestParse(t *testing.T) {
	t.Parallel()

	t.Run("defaults", func(t *testing.T) {
		t.Parallel()
		cfg, err := config.Parse[testConfig](map[string]string{"TEST_REQUIRED": "x"})
		require.NoError(t, err)
		assert.Equal(t, 42, cfg.Count)
		assert.Equal(t, 24*time.Hour, cfg.Nested.TTL)
	})

	t.Run("missing required", func(t *testing.T) {
		t.Parallel()
		_, err := config.Parse[testConfig](map[string]string{})
		assert.ErrorIs(t, err, config.ErrParsingConfig)
	})

	t.Run("invalid value", func(t *testing.T) {
		t.Parallel()
		_, err := config.Parse[testConfig](map[string]string{"TEST_REQUIRED": "x", "TEST_COUNT": "many"})
		assert.ErrorIs(t, err, config.ErrParsingConfig)
	})
}

func TestMustLoad_Panics(t *testing.T) {
	assert.Panics(t, func() {
		var cfg struct {
			Value string `env:"TEST_MUST_LOAD_MISSING,required"`
		}
		config.MustLoad(&cfg)
	})
}
