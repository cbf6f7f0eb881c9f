package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"time"

	"github.com/Shaikhsanakausar/Rev-Orbit-sub001/internal/gateway/config"
	"github.com/Shaikhsanakausar/Rev-Orbit-sub001/internal/gateway/handler"
	gwmiddleware "github.com/Shaikhsanakausar/Rev-Orbit-sub001/internal/gateway/middleware"
	"github.com/Shaikhsanakausar/Rev-Orbit-sub001/internal/gateway/proxy"
	"github.com/Shaikhsanakausar/Rev-Orbit-sub001/pkg/health"
	"github.com/Shaikhsanakausar/Rev-Orbit-sub001/pkg/tracing"
)

// App wires together all dependencies and runs the API gateway.
type App struct {
	cfg            *config.Config
	logger         *slog.Logger
	limiter        *gwmiddleware.RateLimiter
	httpServer     *http.Server
	tracerShutdown tracing.ShutdownFunc
}

// NewApp creates the gateway. It holds no state beyond the rate limiter; the
// storefront and cart services own all data.
func NewApp(cfg *config.Config, logger *slog.Logger) (*App, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	tracerShutdown, err := tracing.InitTracer(ctx, tracing.Config{
		ServiceName:    "gateway",
		ServiceVersion: "0.1.0",
		Environment:    cfg.Environment,
		OTLPEndpoint:   cfg.OTELEndpoint,
		SampleRate:     cfg.OTELSampleRate,
		Enabled:        cfg.OTELEnabled,
	})
	if err != nil {
		return nil, fmt.Errorf("init tracer: %w", err)
	}

	sp, err := proxy.NewServiceProxy(cfg, logger)
	if err != nil {
		return nil, fmt.Errorf("init service proxy: %w", err)
	}

	// The storefront is required for every page; the cart is not.
	healthHandler := health.NewHandler()
	healthHandler.Register("storefront", dialCheck(sp, proxy.Storefront))
	healthHandler.RegisterNonCritical("cart", dialCheck(sp, proxy.Cart))

	limiter := gwmiddleware.NewRateLimiter(cfg.RateLimitRPS, cfg.RateLimitBurst, logger)
	router := handler.NewRouter(cfg, sp, limiter, healthHandler, logger)

	httpServer := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.HTTPPort),
		Handler:           router,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      35 * time.Second,
		IdleTimeout:       60 * time.Second,
		ReadHeaderTimeout: 10 * time.Second,
	}

	return &App{
		cfg:            cfg,
		logger:         logger,
		limiter:        limiter,
		httpServer:     httpServer,
		tracerShutdown: tracerShutdown,
	}, nil
}

// dialCheck reports whether a TCP connection to the service can be opened.
func dialCheck(sp *proxy.ServiceProxy, service string) health.Checker {
	return func(ctx context.Context) error {
		target, ok := sp.Target(service)
		if !ok {
			return fmt.Errorf("%s service not configured", service)
		}
		d := net.Dialer{Timeout: 2 * time.Second}
		conn, err := d.DialContext(ctx, "tcp", hostPort(target.Scheme, target.Host))
		if err != nil {
			return fmt.Errorf("%s unreachable: %w", service, err)
		}
		_ = conn.Close()
		return nil
	}
}

func hostPort(scheme, host string) string {
	if _, _, err := net.SplitHostPort(host); err == nil {
		return host
	}
	if scheme == "https" {
		return net.JoinHostPort(host, "443")
	}
	return net.JoinHostPort(host, "80")
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

// Shutdown drains in-flight requests, then flushes pending spans.
func (a *App) Shutdown() error {
	a.logger.Info("shutting down application...")

	var errs []error

	httpCtx, httpCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer httpCancel()
	if err := a.httpServer.Shutdown(httpCtx); err != nil {
		a.logger.Error("http server shutdown error", slog.String("error", err.Error()))
		errs = append(errs, err)
	}
	a.limiter.Stop()

	if a.tracerShutdown != nil {
		tracerCtx, tracerCancel := context.WithTimeout(context.Background(), 3*time.Second)
		defer tracerCancel()
		if err := a.tracerShutdown(tracerCtx); err != nil {
			a.logger.Error("tracer shutdown error", slog.String("error", err.Error()))
			errs = append(errs, err)
		}
	}

	a.logger.Info("application shutdown complete")
	return errors.Join(errs...)
}
