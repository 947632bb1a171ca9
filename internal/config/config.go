package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"github.com/Cri010101/toelettatura-system/internal/timezone"
)

type Config struct {
	DBUrl      string
	JWTSecret  string
	ServerPort string
	AppEnv     string

	RedisURL        string
	CatalogCacheTTL time.Duration

	DBTimeout time.Duration

	LoginRatePerSec float64
	LoginBurst      int

	SeedAdminEmail    string
	SeedAdminPassword string

	// Proxies whose X-Forwarded-For is believed. Empty trusts none and the
	// client IP is the socket peer.
	TrustedProxies []string

	LogLevel string
	TZName   string
}

// Load reads .env when present, then the process environment.
func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{
		DBUrl:      os.Getenv("DATABASE_URL"),
		JWTSecret:  os.Getenv("JWT_SECRET"),
		ServerPort: getEnv("PORT", "3000"),
		AppEnv:     getEnv("APP_ENV", "development"),

		RedisURL: os.Getenv("REDIS_URL"),

		SeedAdminEmail:    getEnv("SEED_ADMIN_EMAIL", "admin@toelettatura.com"),
		SeedAdminPassword: getEnv("SEED_ADMIN_PASSWORD", "admin123"),

		LogLevel: getEnv("LOG_LEVEL", "info"),
		TZName:   getEnv("TZ_NAME", "Europe/Rome"),

		TrustedProxies: getList("TRUSTED_PROXIES"),
	}

	if cfg.DBUrl == "" {
		return nil, errors.New("DATABASE_URL is required")
	}
	if cfg.JWTSecret == "" {
		return nil, errors.New("JWT_SECRET is required")
	}
	if !timezone.IsValid(cfg.TZName) {
		return nil, fmt.Errorf("invalid TZ_NAME %q", cfg.TZName)
	}

	var err error
	if cfg.CatalogCacheTTL, err = getDuration("CATALOG_CACHE_TTL", 5*time.Minute); err != nil {
		return nil, err
	}
	if cfg.DBTimeout, err = getDuration("DB_TIMEOUT", 5*time.Second); err != nil {
		return nil, err
	}
	if cfg.LoginRatePerSec, err = getFloat("LOGIN_RATE_PER_SEC", 1); err != nil {
		return nil, err
	}
	if cfg.LoginBurst, err = getInt("LOGIN_BURST", 5); err != nil {
		return nil, err
	}

	return cfg, nil
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getList(key string) []string {
	var out []string
	for _, v := range strings.Split(os.Getenv(key), ",") {
		if v = strings.TrimSpace(v); v != "" {
			out = append(out, v)
		}
	}
	return out
}

func getDuration(key string, def time.Duration) (time.Duration, error) {
	v := os.Getenv(key)
	if v == "" {
		return def, nil
	}
	d, err := time.ParseDuration(v)
	if err != nil || d <= 0 {
		return 0, fmt.Errorf("invalid %s %q", key, v)
	}
	return d, nil
}

func getFloat(key string, def float64) (float64, error) {
	v := os.Getenv(key)
	if v == "" {
		return def, nil
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil || f <= 0 {
		return 0, fmt.Errorf("invalid %s %q", key, v)
	}
	return f, nil
}

func getInt(key string, def int) (int, error) {
	v := os.Getenv(key)
	if v == "" {
		return def, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil || n <= 0 {
		return 0, fmt.Errorf("invalid %s %q", key, v)
	}
	return n, nil
}

func (c *Config) Addr() string {
	return fmt.Sprintf(":%s", c.ServerPort)
}

func (c *Config) IsProduction() bool {
	return c.AppEnv == "production"
}
