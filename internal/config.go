package internal

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"github.com/DukeRupert/skipwizard/internal/middleware"
	"github.com/DukeRupert/skipwizard/internal/skipapi"
)

// Skip provider names accepted by SKIPS_PROVIDER.
const (
	ProviderHTTP = "http"
	ProviderMock = "mock"
)

type Config struct {
	Env      string
	Port     int
	LogLevel string

	// Skip listing upstream
	SkipsProvider   string // "http" or "mock"
	SkipsAPIURL     string
	SkipsPostcode   string
	SkipsArea       string
	SkipsAPITimeout time.Duration

	// Optional YAML file overriding the built-in wizard steps
	WizardStepsFile string

	// Per-client token bucket; zero disables limiting
	RateLimitRPS   float64
	RateLimitBurst int

	// Networks allowed to set X-Forwarded-For and X-Real-IP. Empty trusts
	// nobody and the peer address is the client.
	TrustedProxies middleware.TrustedProxies

	// Error reporting, disabled when the DSN is empty
	SentryDSN         string
	SentryEnvironment string
	AppVersion        string

	// Metrics endpoint authentication
	// If both are empty, the /metrics endpoint will be unprotected
	MetricsUsername string
	MetricsPassword string
}

// IsDevelopment reports whether the app runs in the development environment.
func (c *Config) IsDevelopment() bool {
	return c.Env == "development"
}

// SkipAPIConfig returns the upstream client configuration.
func (c *Config) SkipAPIConfig() skipapi.Config {
	return skipapi.Config{
		BaseURL:  c.SkipsAPIURL,
		Postcode: c.SkipsPostcode,
		Area:     c.SkipsArea,
		Timeout:  c.SkipsAPITimeout,
	}
}

// NewConfig reads the configuration from the environment, loading a .env
// file first when one exists. Every malformed value is reported.
func NewConfig() (*Config, error) {
	// Load .env file if it exists (ignored in production)
	_ = godotenv.Load()
	return loadConfig(os.Getenv)
}

func loadConfig(getenv func(string) string) (*Config, error) {
	env := envReader{getenv: getenv}

	cfg := &Config{
		Env:      env.str("ENV", "development"),
		Port:     env.int("PORT", 8080),
		LogLevel: env.str("LOG_LEVEL", "debug"),

		SkipsProvider:   strings.ToLower(env.str("SKIPS_PROVIDER", ProviderHTTP)),
		SkipsAPIURL:     env.str("SKIPS_API_URL", skipapi.DefaultBaseURL),
		SkipsPostcode:   env.str("SKIPS_POSTCODE", "NR32"),
		SkipsArea:       env.str("SKIPS_AREA", "Lowestoft"),
		SkipsAPITimeout: env.duration("SKIPS_API_TIMEOUT", skipapi.DefaultTimeout),

		WizardStepsFile: env.str("WIZARD_STEPS_FILE", ""),

		RateLimitRPS:   env.float("RATE_LIMIT_RPS", 5),
		RateLimitBurst: env.int("RATE_LIMIT_BURST", 20),

		SentryDSN:         env.str("SENTRY_DSN", ""),
		SentryEnvironment: env.str("SENTRY_ENVIRONMENT", ""),
		AppVersion:        env.str("APP_VERSION", "dev"),

		MetricsUsername: env.str("METRICS_USERNAME", ""),
		MetricsPassword: env.str("METRICS_PASSWORD", ""),
	}
	if cfg.SentryEnvironment == "" {
		cfg.SentryEnvironment = cfg.Env
	}

	errs := env.errs

	proxies, err := middleware.ParseTrustedProxies(env.str("TRUSTED_PROXIES", ""))
	if err != nil {
		errs = append(errs, fmt.Errorf("TRUSTED_PROXIES: %w", err))
	}
	cfg.TrustedProxies = proxies

	if cfg.Port <= 0 || cfg.Port > 65535 {
		errs = append(errs, fmt.Errorf("PORT must be between 1 and 65535, got: %d", cfg.Port))
	}

	switch cfg.LogLevel {
	case "debug", "info", "warn", "error":
	default:
		errs = append(errs, fmt.Errorf("LOG_LEVEL must be one of debug, info, warn, error, got: %s", cfg.LogLevel))
	}

	switch cfg.SkipsProvider {
	case ProviderHTTP:
		if u, err := url.Parse(cfg.SkipsAPIURL); err != nil || u.Scheme == "" || u.Host == "" {
			errs = append(errs, fmt.Errorf("SKIPS_API_URL must be an absolute URL, got: %s", cfg.SkipsAPIURL))
		}
		if strings.TrimSpace(cfg.SkipsPostcode) == "" {
			errs = append(errs, errors.New("SKIPS_POSTCODE is required when SKIPS_PROVIDER is 'http'"))
		}
	case ProviderMock:
	default:
		errs = append(errs, fmt.Errorf("SKIPS_PROVIDER must be either 'http' or 'mock', got: %s", cfg.SkipsProvider))
	}

	if cfg.SkipsAPITimeout <= 0 {
		errs = append(errs, fmt.Errorf("SKIPS_API_TIMEOUT must be positive, got: %s", cfg.SkipsAPITimeout))
	}
	if cfg.RateLimitRPS < 0 || cfg.RateLimitBurst < 0 {
		errs = append(errs, errors.New("RATE_LIMIT_RPS and RATE_LIMIT_BURST must not be negative"))
	}
	if (cfg.MetricsUsername == "") != (cfg.MetricsPassword == "") {
		errs = append(errs, errors.New("METRICS_USERNAME and METRICS_PASSWORD must be set together"))
	}

	if len(errs) > 0 {
		return nil, errors.Join(errs...)
	}
	return cfg, nil
}

// envReader reads typed values and remembers every parse failure.
type envReader struct {
	getenv func(string) string
	errs   []error
}

func (e *envReader) str(key, fallback string) string {
	if value := strings.TrimSpace(e.getenv(key)); value != "" {
		return value
	}
	return fallback
}

func (e *envReader) int(key string, fallback int) int {
	value := e.str(key, "")
	if value == "" {
		return fallback
	}
	i, err := strconv.Atoi(value)
	if err != nil {
		e.errs = append(e.errs, fmt.Errorf("%s must be an integer, got: %s", key, value))
		return fallback
	}
	return i
}

func (e *envReader) float(key string, fallback float64) float64 {
	value := e.str(key, "")
	if value == "" {
		return fallback
	}
	f, err := strconv.ParseFloat(value, 64)
	if err != nil {
		e.errs = append(e.errs, fmt.Errorf("%s must be a number, got: %s", key, value))
		return fallback
	}
	return f
}

func (e *envReader) duration(key string, fallback time.Duration) time.Duration {
	value := e.str(key, "")
	if value == "" {
		return fallback
	}
	d, err := time.ParseDuration(value)
	if err != nil {
		e.errs = append(e.errs, fmt.Errorf("%s must be a duration such as 10s, got: %s", key, value))
		return fallback
	}
	return d
}
