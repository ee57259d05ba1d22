package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"
	_ "time/tzdata"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const (
	defaultJWTSecret   = "change-me-jwt-secret"
	defaultDatabaseURL = "file:vales.db?_pragma=busy_timeout(5000)"
	defaultBusinessTZ  = "America/Santiago"
)

type Config struct {
	AppEnv               string
	HTTPAddr             string
	DatabaseURL          string
	JWTSecret            string
	JWTAccessTTL         time.Duration
	BusinessTZ           *time.Location
	CORSAllowedOrigins   []string
	LoginRatePerMin      int
	RoleCacheTTL         time.Duration
	DashboardCacheTTL    time.Duration
	KafkaBrokers         string
	KafkaTopic           string
	SentryDSN            string
	CounterRetentionDays int
}

func (c *Config) IsDevelopment() bool {
	return !isProdLike(c.AppEnv)
}

// Load reads .env (when present) and the process environment.
func Load() (*Config, error) {
	if _, err := os.Stat(".env"); err == nil {
		if err := godotenv.Load(); err != nil {
			return nil, fmt.Errorf("load .env: %w", err)
		}
	}
	return FromViper(newViper())
}

func newViper() *viper.Viper {
	v := viper.New()
	v.AutomaticEnv()

	v.SetDefault("APP_ENV", "dev")
	v.SetDefault("HTTP_ADDR", ":8080")
	v.SetDefault("DATABASE_URL", defaultDatabaseURL)
	v.SetDefault("JWT_SECRET", defaultJWTSecret)
	v.SetDefault("JWT_ACCESS_TTL", "12h")
	v.SetDefault("BUSINESS_TZ", defaultBusinessTZ)
	v.SetDefault("CORS_ALLOWED_ORIGINS", "http://localhost:5173")
	v.SetDefault("LOGIN_RATE_PER_MIN", 10)
	v.SetDefault("ROLE_CACHE_TTL", "5m")
	v.SetDefault("DASHBOARD_CACHE_TTL", "2m")
	v.SetDefault("KAFKA_BROKERS", "")
	v.SetDefault("KAFKA_TOPIC", "vales.lifecycle")
	v.SetDefault("SENTRY_DSN", "")
	v.SetDefault("COUNTER_RETENTION_DAYS", 400)
	return v
}

func FromViper(v *viper.Viper) (*Config, error) {
	cfg := &Config{
		AppEnv:               strings.ToLower(strings.TrimSpace(v.GetString("APP_ENV"))),
		HTTPAddr:             strings.TrimSpace(v.GetString("HTTP_ADDR")),
		DatabaseURL:          strings.TrimSpace(v.GetString("DATABASE_URL")),
		JWTSecret:            strings.TrimSpace(v.GetString("JWT_SECRET")),
		CORSAllowedOrigins:   splitList(v.GetString("CORS_ALLOWED_ORIGINS")),
		LoginRatePerMin:      v.GetInt("LOGIN_RATE_PER_MIN"),
		KafkaBrokers:         strings.TrimSpace(v.GetString("KAFKA_BROKERS")),
		KafkaTopic:           strings.TrimSpace(v.GetString("KAFKA_TOPIC")),
		SentryDSN:            strings.TrimSpace(v.GetString("SENTRY_DSN")),
		CounterRetentionDays: v.GetInt("COUNTER_RETENTION_DAYS"),
	}

	var err error
	if cfg.JWTAccessTTL, err = parseDuration(v, "JWT_ACCESS_TTL"); err != nil {
		return nil, err
	}
	if cfg.RoleCacheTTL, err = parseDuration(v, "ROLE_CACHE_TTL"); err != nil {
		return nil, err
	}
	if cfg.DashboardCacheTTL, err = parseDuration(v, "DASHBOARD_CACHE_TTL"); err != nil {
		return nil, err
	}

	tz := strings.TrimSpace(v.GetString("BUSINESS_TZ"))
	if cfg.BusinessTZ, err = time.LoadLocation(tz); err != nil {
		return nil, fmt.Errorf("invalid BUSINESS_TZ value %q: %w", tz, err)
	}

	if err := validate(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func validate(cfg *Config) error {
	if cfg.DatabaseURL == "" {
		return errors.New("DATABASE_URL must not be empty")
	}
	if cfg.JWTAccessTTL <= 0 {
		return errors.New("JWT_ACCESS_TTL must be > 0")
	}
	if cfg.RoleCacheTTL <= 0 {
		return errors.New("ROLE_CACHE_TTL must be > 0")
	}
	if cfg.DashboardCacheTTL <= 0 {
		return errors.New("DASHBOARD_CACHE_TTL must be > 0")
	}
	if cfg.LoginRatePerMin <= 0 {
		return errors.New("LOGIN_RATE_PER_MIN must be > 0")
	}
	if cfg.CounterRetentionDays < 1 {
		return errors.New("COUNTER_RETENTION_DAYS must be >= 1")
	}

	if isProdLike(cfg.AppEnv) {
		if isEmptyOrDefault(cfg.JWTSecret, defaultJWTSecret) {
			return errors.New("in prod/release JWT_SECRET must be set and not default")
		}
		if len(cfg.CORSAllowedOrigins) == 0 {
			return errors.New("in prod/release CORS_ALLOWED_ORIGINS must be set")
		}
	} else if cfg.JWTSecret == "" {
		cfg.JWTSecret = defaultJWTSecret
	}

	return nil
}

func isProdLike(env string) bool {
	env = strings.ToLower(strings.TrimSpace(env))
	return env == "prod" || env == "production" || env == "release"
}

func isEmptyOrDefault(v, def string) bool {
	trimmed := strings.TrimSpace(v)
	return trimmed == "" || trimmed == def
}

func parseDuration(v *viper.Viper, name string) (time.Duration, error) {
	value := strings.TrimSpace(v.GetString(name))
	d, err := time.ParseDuration(value)
	if err != nil {
		return 0, fmt.Errorf("invalid %s value %q: %w", name, value, err)
	}
	return d, nil
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
