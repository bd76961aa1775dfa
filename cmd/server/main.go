package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/getsentry/sentry-go"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/DukeRupert/skipwizard/internal"
	"github.com/DukeRupert/skipwizard/internal/csrf"
	"github.com/DukeRupert/skipwizard/internal/handler"
	"github.com/DukeRupert/skipwizard/internal/metrics"
	"github.com/DukeRupert/skipwizard/internal/middleware"
	"github.com/DukeRupert/skipwizard/internal/skipapi"
	"github.com/DukeRupert/skipwizard/internal/skipapi/mock"
	"github.com/DukeRupert/skipwizard/internal/wizard"
	"github.com/DukeRupert/skipwizard/web"
)

func run() error {
	// Load configuration
	cfg, err := internal.NewConfig()
	if err != nil {
		return fmt.Errorf("config initialization failed: %w", err)
	}

	// Configure logger
	logger := internal.NewLogger(os.Stdout, cfg.Env, cfg.LogLevel)

	// Error reporting is optional
	if cfg.SentryDSN != "" {
		err := sentry.Init(sentry.ClientOptions{
			Dsn:              cfg.SentryDSN,
			Environment:      cfg.SentryEnvironment,
			Release:          cfg.AppVersion,
			AttachStacktrace: true,
		})
		if err != nil {
			logger.Warn("Sentry initialization failed", "error", err)
		} else {
			logger.Info("Sentry initialized", "environment", cfg.SentryEnvironment, "release", cfg.AppVersion)
			defer sentry.Flush(2 * time.Second)
		}
	}

	// Wizard steps
	steps := wizard.DefaultSteps()
	if cfg.WizardStepsFile != "" {
		steps, err = wizard.LoadSteps(cfg.WizardStepsFile)
		if err != nil {
			return fmt.Errorf("wizard steps: %w", err)
		}
	}
	if wizard.IndexOf(steps, wizard.StepSelectSkip) < 0 {
		return fmt.Errorf("wizard steps must include %q", wizard.StepSelectSkip)
	}
	if len(cfg.TrustedProxies) == 0 {
		logger.Info("No trusted proxies; forwarding headers are ignored")
	}
	logger.Info("Wizard steps loaded", "count", len(steps))

	// Skip listing provider
	lister, err := newLister(cfg, logger)
	if err != nil {
		return fmt.Errorf("skip provider initialization failed: %w", err)
	}

	// Initialize handlers
	isSecure := !cfg.IsDevelopment()
	skipHandler := handler.NewSkipHandler(lister, steps, csrf.New(isSecure), logger)
	wizardHandler := handler.NewWizardHandler(steps, logger)

	// ==========================================================================
	// Create router and register routes
	// ==========================================================================

	mux := http.NewServeMux()

	// Static files
	mux.Handle("GET /static/", http.StripPrefix("/static/", http.FileServerFS(web.Static())))

	// Health check
	mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	// Prometheus scrape endpoint
	metricsAuth := middleware.BasicAuth(cfg.MetricsUsername, cfg.MetricsPassword, "metrics")
	mux.Handle("GET /metrics", metricsAuth(promhttp.Handler()))
	if cfg.MetricsUsername == "" {
		logger.Warn("/metrics is not protected; set METRICS_USERNAME and METRICS_PASSWORD")
	}

	skipHandler.RegisterRoutes(mux)
	wizardHandler.RegisterRoutes(mux)

	rateLimiter := middleware.NewRateLimiter(middleware.RateLimitConfig{
		RequestsPerSecond: cfg.RateLimitRPS,
		Burst:             cfg.RateLimitBurst,
		OnLimit:           handler.ErrorWriter(logger),
	}, logger)

	stack := middleware.Stack(
		middleware.RequestID,
		middleware.RealIP(cfg.TrustedProxies),
		middleware.Logging(logger),
		metrics.Middleware,
		middleware.SecurityHeaders(isSecure),
		rateLimiter.Limit,
	)

	// ==========================================================================
	// Start server
	// ==========================================================================

	server := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Port),
		Handler:           stack(mux),
		ReadHeaderTimeout: 10 * time.Second,
		WriteTimeout:      cfg.SkipsAPITimeout + 10*time.Second,
		IdleTimeout:       2 * time.Minute,
	}

	// Channel to listen for interrupt signals
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	serverErr := make(chan error, 1)
	go func() {
		logger.Info("Server started", "address", server.Addr, "env", cfg.Env, "provider", cfg.SkipsProvider)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	select {
	case err := <-serverErr:
		return fmt.Errorf("server failed: %w", err)
	case <-sigChan:
	}
	logger.Info("Shutdown signal received, initiating graceful shutdown...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("Server shutdown error", "error", err)
		return err
	}

	logger.Info("Server stopped")
	return nil
}

// newLister picks the skip listing provider named by SKIPS_PROVIDER.
func newLister(cfg *internal.Config, logger *slog.Logger) (skipapi.Lister, error) {
	switch cfg.SkipsProvider {
	case internal.ProviderMock:
		logger.Info("Using mock skip provider")
		return mock.New(logger), nil
	default:
		client, err := skipapi.New(cfg.SkipAPIConfig(), logger)
		if err != nil {
			return nil, err
		}
		logger.Info("Using skip API", "url", cfg.SkipsAPIURL, "postcode", cfg.SkipsPostcode, "area", cfg.SkipsArea)
		return client, nil
	}
}

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}
