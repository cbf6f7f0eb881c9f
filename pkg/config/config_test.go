package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type serverConfig struct {
	Port     int      `env:"RO_CFG_PORT" envDefault:"8080"`
	LogLevel string   `env:"RO_CFG_LOG_LEVEL" envDefault:"info"`
	Brokers  []string `env:"RO_CFG_BROKERS" envDefault:"localhost:9092" envSeparator:","`
	Enabled  bool     `env:"RO_CFG_ENABLED" envDefault:"false"`
}

func TestLoad_Defaults(t *testing.T) {
	var cfg serverConfig
	require.NoError(t, Load(&cfg))

	assert.Equal(t, 8080, cfg.Port)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, []string{"localhost:9092"}, cfg.Brokers)
	assert.False(t, cfg.Enabled)
}

func TestLoad_FromEnvVars(t *testing.T) {
	t.Setenv("RO_CFG_PORT", "9191")
	t.Setenv("RO_CFG_BROKERS", "k1:9092,k2:9092")
	t.Setenv("RO_CFG_ENABLED", "true")

	var cfg serverConfig
	require.NoError(t, Load(&cfg))

	assert.Equal(t, 9191, cfg.Port)
	assert.Equal(t, []string{"k1:9092", "k2:9092"}, cfg.Brokers)
	assert.True(t, cfg.Enabled)
}

func TestLoad_InvalidValue(t *testing.T) {
	t.Setenv("RO_CFG_PORT", "not-a-number")

	var cfg serverConfig
	err := Load(&cfg)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "parse config")
}

type secretConfig struct {
	KeyID string `env:"RAZORPAY_KEY_ID,required"`
}

func TestLoadWithPrefix_RequiredPresent(t *testing.T) {
	t.Setenv("STOREFRONT_RAZORPAY_KEY_ID", "rzp_test_123")

	var cfg secretConfig
	require.NoError(t, LoadWithPrefix(&cfg, "STOREFRONT_"))
	assert.Equal(t, "rzp_test_123", cfg.KeyID)
}

func TestLoadWithPrefix_RequiredMissing(t *testing.T) {
	var cfg secretConfig
	err := LoadWithPrefix(&cfg, "NOPE_")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "parse config")
}
