package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setEnvs(t *testing.T, envs map[string]string) {
	t.Helper()
	for k, v := range envs {
		t.Setenv(k, v)
	}
}

func TestLoad_Defaults(t *testing.T) {
	setEnvs(t, map[string]string{"ENVIRONMENT": "development"})

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 5000, cfg.HTTPPort)
	assert.Equal(t, WishlistPostgres, cfg.WishlistBackend)
	assert.Equal(t, BannerLocal, cfg.BannerStorage)
	assert.Equal(t, DeviceRedis, cfg.DeviceStore)
	assert.Equal(t, PaymentMock, cfg.PaymentProvider)
	assert.False(t, cfg.KafkaEnabled)
	assert.Equal(t, []string{"localhost:9092"}, cfg.KafkaBrokers)
	assert.False(t, cfg.UsesSupabase())
}

func TestLoad_SupabaseRequiresCredentials(t *testing.T) {
	setEnvs(t, map[string]string{
		"ENVIRONMENT":      "development",
		"WISHLIST_BACKEND": "supabase",
	})

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "SUPABASE_URL")
}

func TestLoad_SupabaseConfigured(t *testing.T) {
	setEnvs(t, map[string]string{
		"ENVIRONMENT":      "development",
		"WISHLIST_BACKEND": "supabase",
		"BANNER_STORAGE":   "supabase",
		"SUPABASE_URL":     "https://proj.supabase.co",
		"SUPABASE_KEY":     "service-role-key",
	})

	cfg, err := Load()
	require.NoError(t, err)
	assert.True(t, cfg.UsesSupabase())
}

func TestLoad_RejectsUnknownBackend(t *testing.T) {
	setEnvs(t, map[string]string{
		"ENVIRONMENT":  "development",
		"DEVICE_STORE": "sqlite",
	})

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "DEVICE_STORE")
}

func TestLoad_RazorpayRequiresKeys(t *testing.T) {
	setEnvs(t, map[string]string{
		"ENVIRONMENT":      "development",
		"PAYMENT_PROVIDER": "razorpay",
		"RAZORPAY_KEY_ID":  "rzp_test_x",
	})

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "RAZORPAY_KEY_SECRET")
}

func TestLoad_Production_RejectsDevelopmentBackends(t *testing.T) {
	setEnvs(t, map[string]string{
		"ENVIRONMENT":      "production",
		"PAYMENT_PROVIDER": "mock",
	})
	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "PAYMENT_PROVIDER=mock")

	setEnvs(t, map[string]string{
		"PAYMENT_PROVIDER":    "razorpay",
		"RAZORPAY_KEY_ID":     "rzp_live_x",
		"RAZORPAY_KEY_SECRET": "s",
		"DEVICE_STORE":        "memory",
	})
	_, err = Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "DEVICE_STORE=memory")
}

func TestLoad_InvalidPort(t *testing.T) {
	setEnvs(t, map[string]string{"STOREFRONT_HTTP_PORT": "70000"})

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid HTTP port")
}

func TestLoad_InvalidSampleRate(t *testing.T) {
	setEnvs(t, map[string]string{"OTEL_SAMPLE_RATE": "1.5"})

	_, err := Load()
	require.Error(t, err)
}
