package config

import (
	"fmt"
	"slices"

	pkgconfig "github.com/Shaikhsanakausar/Rev-Orbit-sub001/pkg/config"
)

// Backend selectors.
const (
	WishlistPostgres = "postgres"
	WishlistSupabase = "supabase"

	BannerLocal    = "local"
	BannerSupabase = "supabase"

	DeviceRedis  = "redis"
	DeviceMemory = "memory"

	PaymentRazorpay = "razorpay"
	PaymentMock     = "mock"
)

// Config holds all configuration for the storefront service.
type Config struct {
	Environment string `env:"ENVIRONMENT" envDefault:"development"`
	LogLevel    string `env:"LOG_LEVEL" envDefault:"info"`

	// HTTP server
	HTTPPort int `env:"STOREFRONT_HTTP_PORT" envDefault:"5000"`

	// Backends
	WishlistBackend string `env:"WISHLIST_BACKEND" envDefault:"postgres"`
	BannerStorage   string `env:"BANNER_STORAGE" envDefault:"local"`
	DeviceStore     string `env:"DEVICE_STORE" envDefault:"redis"`
	PaymentProvider string `env:"PAYMENT_PROVIDER" envDefault:"mock"`

	// PostgreSQL
	PostgresHost          string `env:"POSTGRES_HOST" envDefault:"localhost"`
	PostgresPort          int    `env:"POSTGRES_PORT" envDefault:"5432"`
	PostgresUser          string `env:"POSTGRES_USER" envDefault:"revorbit"`
	PostgresPass          string `env:"POSTGRES_PASSWORD" envDefault:"revorbit_secret"`
	PostgresDB            string `env:"POSTGRES_DB" envDefault:"storefront"`
	PostgresSSL           string `env:"POSTGRES_SSL_MODE" envDefault:"disable"`
	DBMaxConns            int32  `env:"DB_MAX_CONNS" envDefault:"10"`
	DBMinConns            int32  `env:"DB_MIN_CONNS" envDefault:"1"`
	DBMaxConnLifetimeMins int    `env:"DB_MAX_CONN_LIFETIME_MINS" envDefault:"30"`
	DBMaxConnIdleTimeMins int    `env:"DB_MAX_CONN_IDLE_TIME_MINS" envDefault:"5"`

	// Redis
	RedisAddr           string `env:"REDIS_ADDR" envDefault:"localhost:6379"`
	RedisPass           string `env:"REDIS_PASSWORD" envDefault:""`
	RedisDB             int    `env:"REDIS_DB" envDefault:"0"`
	DeviceStoreTTLHours int    `env:"DEVICE_STORE_TTL_HOURS" envDefault:"0"`

	// Supabase
	SupabaseURL string `env:"SUPABASE_URL"`
	SupabaseKey string `env:"SUPABASE_KEY"`

	// Razorpay
	RazorpayBaseURL   string `env:"RAZORPAY_BASE_URL" envDefault:"https://api.razorpay.com"`
	RazorpayKeyID     string `env:"RAZORPAY_KEY_ID"`
	RazorpayKeySecret string `env:"RAZORPAY_KEY_SECRET"`

	// Local banner storage, served by the gateway under /images
	ImagesDir     string `env:"IMAGES_DIR" envDefault:"./public/images"`
	PublicBaseURL string `env:"PUBLIC_BASE_URL" envDefault:"http://localhost:3000"`

	// Kafka
	KafkaEnabled bool     `env:"KAFKA_ENABLED" envDefault:"false"`
	KafkaBrokers []string `env:"KAFKA_BROKERS" envDefault:"localhost:9092" envSeparator:","`

	// OpenTelemetry
	OTELEnabled    bool    `env:"OTEL_ENABLED" envDefault:"false"`
	OTELEndpoint   string  `env:"OTEL_EXPORTER_OTLP_ENDPOINT" envDefault:"localhost:4318"`
	OTELSampleRate float64 `env:"OTEL_SAMPLE_RATE" envDefault:"1.0"`

	// CORS
	CORSAllowedOrigins []string `env:"CORS_ALLOWED_ORIGINS" envDefault:"*" envSeparator:","`
}

// Load reads configuration from environment variables.
func Load() (*Config, error) {
	cfg := &Config{}
	if err := pkgconfig.Load(cfg); err != nil {
		return nil, fmt.Errorf("load storefront config: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// validate checks configuration invariants.
func (c *Config) validate() error {
	if c.HTTPPort < 1 || c.HTTPPort > 65535 {
		return fmt.Errorf("invalid HTTP port: %d", c.HTTPPort)
	}

	if err := oneOf("WISHLIST_BACKEND", c.WishlistBackend, WishlistPostgres, WishlistSupabase); err != nil {
		return err
	}
	if err := oneOf("BANNER_STORAGE", c.BannerStorage, BannerLocal, BannerSupabase); err != nil {
		return err
	}
	if err := oneOf("DEVICE_STORE", c.DeviceStore, DeviceRedis, DeviceMemory); err != nil {
		return err
	}
	if err := oneOf("PAYMENT_PROVIDER", c.PaymentProvider, PaymentRazorpay, PaymentMock); err != nil {
		return err
	}

	if c.UsesSupabase() && (c.SupabaseURL == "" || c.SupabaseKey == "") {
		return fmt.Errorf("SUPABASE_URL and SUPABASE_KEY are required when a supabase backend is selected")
	}
	if c.PaymentProvider == PaymentRazorpay && (c.RazorpayKeyID == "" || c.RazorpayKeySecret == "") {
		return fmt.Errorf("RAZORPAY_KEY_ID and RAZORPAY_KEY_SECRET are required for the razorpay provider")
	}

	if c.Environment != "development" {
		if c.PaymentProvider == PaymentMock {
			return fmt.Errorf("PAYMENT_PROVIDER=mock is not allowed in %q mode", c.Environment)
		}
		if c.DeviceStore == DeviceMemory {
			return fmt.Errorf("DEVICE_STORE=memory is not allowed in %q mode", c.Environment)
		}
	}

	if c.OTELSampleRate < 0 || c.OTELSampleRate > 1 {
		return fmt.Errorf("OTEL_SAMPLE_RATE must be between 0 and 1, got %v", c.OTELSampleRate)
	}
	if c.DeviceStoreTTLHours < 0 {
		return fmt.Errorf("DEVICE_STORE_TTL_HOURS must not be negative")
	}
	return nil
}

// UsesSupabase reports whether any backend talks to Supabase.
func (c *Config) UsesSupabase() bool {
	return c.WishlistBackend == WishlistSupabase || c.BannerStorage == BannerSupabase
}

func oneOf(name, value string, allowed ...string) error {
	if slices.Contains(allowed, value) {
		return nil
	}
	return fmt.Errorf("invalid %s %q (want one of %v)", name, value, allowed)
}
