package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"

	"github.com/Shaikhsanakausar/Rev-Orbit-sub001/internal/config"
	"github.com/Shaikhsanakausar/Rev-Orbit-sub001/internal/event"
	handler "github.com/Shaikhsanakausar/Rev-Orbit-sub001/internal/handler/http"
	"github.com/Shaikhsanakausar/Rev-Orbit-sub001/internal/kv"
	kvmemory "github.com/Shaikhsanakausar/Rev-Orbit-sub001/internal/kv/memory"
	kvredis "github.com/Shaikhsanakausar/Rev-Orbit-sub001/internal/kv/redis"
	"github.com/Shaikhsanakausar/Rev-Orbit-sub001/internal/payment"
	paymentmock "github.com/Shaikhsanakausar/Rev-Orbit-sub001/internal/payment/mock"
	"github.com/Shaikhsanakausar/Rev-Orbit-sub001/internal/payment/razorpay"
	"github.com/Shaikhsanakausar/Rev-Orbit-sub001/internal/repository"
	"github.com/Shaikhsanakausar/Rev-Orbit-sub001/internal/repository/postgres"
	"github.com/Shaikhsanakausar/Rev-Orbit-sub001/internal/service"
	"github.com/Shaikhsanakausar/Rev-Orbit-sub001/internal/storage"
	"github.com/Shaikhsanakausar/Rev-Orbit-sub001/internal/storage/local"
	"github.com/Shaikhsanakausar/Rev-Orbit-sub001/internal/supabase"
	"github.com/Shaikhsanakausar/Rev-Orbit-sub001/migrations"
	"github.com/Shaikhsanakausar/Rev-Orbit-sub001/pkg/database"
	"github.com/Shaikhsanakausar/Rev-Orbit-sub001/pkg/health"
	"github.com/Shaikhsanakausar/Rev-Orbit-sub001/pkg/httpclient"
	pkgkafka "github.com/Shaikhsanakausar/Rev-Orbit-sub001/pkg/kafka"
	"github.com/Shaikhsanakausar/Rev-Orbit-sub001/pkg/tracing"
)

// App wires together all dependencies and runs the storefront service.
type App struct {
	cfg            *config.Config
	logger         *slog.Logger
	pool           *pgxpool.Pool
	redis          *redis.Client
	producer       *pkgkafka.Producer
	httpServer     *http.Server
	tracerShutdown tracing.ShutdownFunc
}

// NewApp creates a new application instance, initializing every backend the
// configuration selects.
func NewApp(cfg *config.Config, logger *slog.Logger) (*App, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	a := &App{cfg: cfg, logger: logger}

	tracerShutdown, err := tracing.InitTracer(ctx, tracing.Config{
		ServiceName:    "storefront",
		ServiceVersion: "0.1.0",
		Environment:    cfg.Environment,
		OTLPEndpoint:   cfg.OTELEndpoint,
		SampleRate:     cfg.OTELSampleRate,
		Enabled:        cfg.OTELEnabled,
	})
	if err != nil {
		return nil, fmt.Errorf("init tracer: %w", err)
	}
	a.tracerShutdown = tracerShutdown

	healthHandler := health.NewHandler()

	var sb *supabase.Client
	if cfg.UsesSupabase() {
		sb = newSupabaseClient(cfg, logger)
	}

	remote, err := a.wishlistStore(ctx, sb, healthHandler)
	if err != nil {
		a.closeBackends()
		return nil, err
	}

	device, err := a.deviceStore(ctx, healthHandler)
	if err != nil {
		a.closeBackends()
		return nil, err
	}

	banners := bannerStore(cfg, sb)
	provider := paymentProvider(cfg, logger)

	// An untyped nil keeps event publishing a no-op when Kafka is off.
	var publisher event.Publisher
	if cfg.KafkaEnabled {
		a.producer = pkgkafka.NewProducer(pkgkafka.DefaultProducerConfig(cfg.KafkaBrokers), logger)
		publisher = a.producer
		healthHandler.RegisterNonCritical("kafka", a.producer.Ping)
		logger.Info("kafka producer initialized", slog.Any("brokers", cfg.KafkaBrokers))
	}
	events := event.NewProducer(publisher, logger)

	wishlistService := service.NewWishlistService(remote, device, events, logger)
	bannerService := service.NewBannerService(banners, logger)
	orderService := service.NewOrderService(provider, events, logger)

	router := handler.NewRouter(handler.Handlers{
		Wishlist: handler.NewWishlistHandler(wishlistService, logger),
		Banner:   handler.NewBannerHandler(bannerService, logger),
		Order:    handler.NewOrderHandler(orderService, logger),
	}, healthHandler, logger, cfg.CORSAllowedOrigins)

	a.httpServer = &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.HTTPPort),
		Handler:           router,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      35 * time.Second,
		IdleTimeout:       60 * time.Second,
		ReadHeaderTimeout: 10 * time.Second,
	}

	logger.Info("storefront backends selected",
		slog.String("wishlist", cfg.WishlistBackend),
		slog.String("device_store", cfg.DeviceStore),
		slog.String("banner_storage", cfg.BannerStorage),
		slog.String("payment", provider.Name()),
	)
	return a, nil
}

func newSupabaseClient(cfg *config.Config, logger *slog.Logger) *supabase.Client {
	return supabase.NewClient(cfg.SupabaseURL, cfg.SupabaseKey, newOutboundClient("supabase", logger))
}

// newOutboundClient builds the client for a hosted collaborator. Remote
// failures are reported to the caller as-is, so requests are never retried;
// the breaker still sheds load from an unhealthy upstream.
func newOutboundClient(name string, logger *slog.Logger) *httpclient.CircuitBreakerClient {
	clientCfg := httpclient.DefaultConfig()
	clientCfg.MaxRetries = 0
	return httpclient.NewCircuitBreakerClient(
		httpclient.New(clientCfg),
		httpclient.DefaultCircuitBreakerConfig(name),
		logger,
	)
}

func (a *App) wishlistStore(ctx context.Context, sb *supabase.Client, h *health.Handler) (repository.WishlistRepository, error) {
	if a.cfg.WishlistBackend == config.WishlistSupabase {
		return supabase.NewWishlistStore(sb), nil
	}

	pool, err := database.NewPostgresPool(ctx, &database.PostgresConfig{
		Host:            a.cfg.PostgresHost,
		Port:            a.cfg.PostgresPort,
		User:            a.cfg.PostgresUser,
		Password:        a.cfg.PostgresPass,
		DBName:          a.cfg.PostgresDB,
		SSLMode:         a.cfg.PostgresSSL,
		MaxConns:        a.cfg.DBMaxConns,
		MinConns:        a.cfg.DBMinConns,
		MaxConnLifetime: time.Duration(a.cfg.DBMaxConnLifetimeMins) * time.Minute,
		MaxConnIdleTime: time.Duration(a.cfg.DBMaxConnIdleTimeMins) * time.Minute,
	}, a.logger)
	if err != nil {
		return nil, fmt.Errorf("connect to postgres: %w", err)
	}
	a.pool = pool
	a.logger.Info("connected to PostgreSQL",
		slog.String("host", a.cfg.PostgresHost),
		slog.Int("port", a.cfg.PostgresPort),
		slog.String("database", a.cfg.PostgresDB),
	)

	if err := database.RegisterPoolMetrics(pool, "storefront"); err != nil {
		a.logger.Warn("failed to register pool metrics", slog.String("error", err.Error()))
	}

	if err := database.RunMigrations(ctx, pool, migrations.FS, a.logger); err != nil {
		return nil, fmt.Errorf("run migrations: %w", err)
	}

	h.Register("postgres", pool.Ping)
	return postgres.NewWishlistRepository(pool), nil
}

func (a *App) deviceStore(ctx context.Context, h *health.Handler) (kv.Store, error) {
	if a.cfg.DeviceStore == config.DeviceMemory {
		a.logger.Warn("device wishlists are kept in memory and lost on restart")
		return kvmemory.New(), nil
	}

	client, err := database.NewRedisClient(ctx, database.RedisConfig{
		Addr:     a.cfg.RedisAddr,
		Password: a.cfg.RedisPass,
		DB:       a.cfg.RedisDB,
	})
	if err != nil {
		return nil, fmt.Errorf("connect to redis: %w", err)
	}
	a.redis = client
	a.logger.Info("connected to Redis", slog.String("addr", a.cfg.RedisAddr))

	h.Register("redis", func(ctx context.Context) error {
		return client.Ping(ctx).Err()
	})
	return kvredis.New(client, time.Duration(a.cfg.DeviceStoreTTLHours)*time.Hour), nil
}

func bannerStore(cfg *config.Config, sb *supabase.Client) storage.ObjectStore {
	if cfg.BannerStorage == config.BannerSupabase {
		return supabase.NewObjectStore(sb)
	}
	// The gateway serves IMAGES_DIR under /images, so bucket b maps to
	// /images/b/<name>.
	return local.New(cfg.ImagesDir, cfg.PublicBaseURL+"/images")
}

func paymentProvider(cfg *config.Config, logger *slog.Logger) payment.Provider {
	if cfg.PaymentProvider == config.PaymentMock {
		logger.Warn("using mock payment provider; orders are not sent to a payment gateway")
		return paymentmock.NewProvider()
	}

	return razorpay.NewProvider(cfg.RazorpayBaseURL, cfg.RazorpayKeyID, cfg.RazorpayKeySecret, newOutboundClient("razorpay", logger))
}

// Run starts the HTTP server and blocks until the context is canceled.
func (a *App) Run(ctx context.Context) error {
	errCh := make(chan error, 1)

	go func() {
		a.logger.Info("starting HTTP server", slog.String("addr", a.httpServer.Addr))
		if err := a.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- fmt.Errorf("http server: %w", err)
		}
	}()

	select {
	case <-ctx.Done():
		a.logger.Info("shutdown signal received")
	case err := <-errCh:
		return err
	}

	return a.Shutdown()
}

// Shutdown drains HTTP traffic, flushes spans, then closes the backends.
func (a *App) Shutdown() error {
	a.logger.Info("shutting down application...")

	var errs []error

	httpCtx, httpCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer httpCancel()
	if err := a.httpServer.Shutdown(httpCtx); err != nil {
		a.logger.Error("http server shutdown error", slog.String("error", err.Error()))
		errs = append(errs, err)
	}

	if a.tracerShutdown != nil {
		tracerCtx, tracerCancel := context.WithTimeout(context.Background(), 3*time.Second)
		defer tracerCancel()
		if err := a.tracerShutdown(tracerCtx); err != nil {
			a.logger.Error("tracer shutdown error", slog.String("error", err.Error()))
			errs = append(errs, err)
		}
	}

	errs = append(errs, a.closeBackends())

	a.logger.Info("application shutdown complete")
	return errors.Join(errs...)
}

func (a *App) closeBackends() error {
	var errs []error
	if a.producer != nil {
		if err := a.producer.Close(); err != nil {
			a.logger.Error("kafka producer close error", slog.String("error", err.Error()))
			errs = append(errs, err)
		}
	}
	if a.redis != nil {
		if err := a.redis.Close(); err != nil {
			a.logger.Error("redis close error", slog.String("error", err.Error()))
			errs = append(errs, err)
		}
	}
	if a.pool != nil {
		a.pool.Close()
	}
	return errors.Join(errs...)
}
