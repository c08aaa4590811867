package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all configuration for the application
// ⭐ SSOT: 모든 환경변수는 여기서만 읽음
type Config struct {
	// Server
	Port string
	Env  string // development, staging, production

	// Database (optional: scan history and stats persistence)
	Database DatabaseConfig

	// Redis (optional: snapshot cache and outbound rate limit)
	Redis RedisConfig

	// Market data
	DexScreener DexScreenerConfig

	// Inbound HTTP policy
	HTTP HTTPConfig

	// Watchlist rescans
	Watchlist WatchlistConfig

	// Logging
	LogLevel  string
	LogFormat string

	// Monitoring
	MetricsEnabled bool
}

// RedisConfig holds Redis configuration
type RedisConfig struct {
	Host     string
	Port     string
	Password string
	DB       int
	Enabled  bool
}

// DatabaseConfig holds PostgreSQL configuration
type DatabaseConfig struct {
	URL string

	// Connection Pool
	MaxConns        int
	MinConns        int
	MaxConnLifetime time.Duration
	MaxConnIdleTime time.Duration
}

// Enabled reports whether a database is configured
func (d DatabaseConfig) Enabled() bool {
	return d.URL != ""
}

// DexScreenerConfig holds market data provider configuration
type DexScreenerConfig struct {
	BaseURL   string
	Chain     string // preferred chainId when a token trades on several chains
	Timeout   time.Duration
	CacheTTL  time.Duration
	RateLimit int // requests per minute, shared across instances via Redis
}

// HTTPConfig holds inbound request policy
type HTTPConfig struct {
	AllowedOrigin     string
	RateLimitWindow   time.Duration
	RateLimitMax      int // scan endpoints, per client per window
	StatsRateLimitMax int // stats endpoint, per client per window
}

// WatchlistConfig holds scheduled rescan configuration
type WatchlistConfig struct {
	Mints    []string
	Schedule string // cron with seconds
}

// Load reads configuration from environment variables
// ⭐ SSOT: 이 함수만 os.Getenv()를 호출함
func Load() (*Config, error) {
	// Try multiple paths for .env file
	loadEnvFile()

	cfg := &Config{
		// Server
		Port: getEnv("PORT", "8089"),
		Env:  getEnv("ENV", "development"),

		// Database
		Database: DatabaseConfig{
			URL:             getEnv("DATABASE_URL", ""),
			MaxConns:        getEnvAsInt("DB_MAX_CONNS", 10),
			MinConns:        getEnvAsInt("DB_MIN_CONNS", 2),
			MaxConnLifetime: getEnvAsDuration("DB_MAX_CONN_LIFETIME", "1h"),
			MaxConnIdleTime: getEnvAsDuration("DB_MAX_CONN_IDLE_TIME", "30m"),
		},

		// Redis
		Redis: RedisConfig{
			Host:     getEnv("REDIS_HOST", "localhost"),
			Port:     getEnv("REDIS_PORT", "6379"),
			Password: getEnv("REDIS_PASSWORD", ""),
			DB:       getEnvAsInt("REDIS_DB", 0),
			Enabled:  getEnvAsBool("REDIS_ENABLED", false),
		},

		DexScreener: DexScreenerConfig{
			BaseURL:   strings.TrimRight(getEnv("DEXSCREENER_BASE_URL", "https://api.dexscreener.com"), "/"),
			Chain:     getEnv("DEXSCREENER_CHAIN", "solana"),
			Timeout:   getEnvAsDuration("DEXSCREENER_TIMEOUT", "8s"),
			CacheTTL:  getEnvAsDuration("SNAPSHOT_CACHE_TTL", "30s"),
			RateLimit: getEnvAsInt("DEXSCREENER_RATE_LIMIT", 300),
		},

		HTTP: HTTPConfig{
			AllowedOrigin:     getEnv("ALLOWED_ORIGIN", "*"),
			RateLimitWindow:   getEnvAsDuration("RATE_LIMIT_WINDOW", "10s"),
			RateLimitMax:      getEnvAsInt("RATE_LIMIT_MAX", 40),
			StatsRateLimitMax: getEnvAsInt("STATS_RATE_LIMIT_MAX", 20),
		},

		Watchlist: WatchlistConfig{
			Mints:    getEnvAsList("WATCHLIST"),
			Schedule: getEnv("WATCHLIST_SCHEDULE", "0 */5 * * * *"),
		},

		// Logging
		LogLevel:  getEnv("LOG_LEVEL", "info"),
		LogFormat: getEnv("LOG_FORMAT", "json"),

		// Monitoring
		MetricsEnabled: getEnvAsBool("METRICS_ENABLED", true),
	}

	// Validate configuration
	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return cfg, nil
}

// LoadFile loads an explicit env file before reading the environment.
// Variables already set in the process environment take precedence.
func LoadFile(path string) (*Config, error) {
	if path != "" {
		if err := godotenv.Load(path); err != nil {
			return nil, fmt.Errorf("failed to load %s: %w", path, err)
		}
	}
	return Load()
}

// validate checks if configuration values are usable
func (c *Config) validate() error {
	// Validate environment
	if c.Env != "development" && c.Env != "staging" && c.Env != "production" {
		return fmt.Errorf("ENV must be one of: development, staging, production")
	}

	if c.HTTP.RateLimitWindow <= 0 {
		return fmt.Errorf("RATE_LIMIT_WINDOW must be positive")
	}
	if c.HTTP.RateLimitMax <= 0 || c.HTTP.StatsRateLimitMax <= 0 {
		return fmt.Errorf("RATE_LIMIT_MAX and STATS_RATE_LIMIT_MAX must be positive")
	}

	if c.DexScreener.BaseURL == "" {
		return fmt.Errorf("DEXSCREENER_BASE_URL is required")
	}

	return nil
}

// Helper functions (private, only used within this file)

// loadEnvFile tries to load .env from multiple locations
func loadEnvFile() {
	// Try paths in order of priority
	paths := []string{
		".env", // Current directory
	}

	// Also try relative to executable
	if exe, err := os.Executable(); err == nil {
		exeDir := filepath.Dir(exe)
		paths = append(paths,
			filepath.Join(exeDir, ".env"),
			filepath.Join(exeDir, "..", ".env"),
		)
	}

	for _, path := range paths {
		if _, err := os.Stat(path); err == nil {
			_ = godotenv.Load(path)
			return
		}
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}

	value, err := strconv.Atoi(valueStr)
	if err != nil {
		return defaultValue
	}

	return value
}

func getEnvAsBool(key string, defaultValue bool) bool {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}

	value, err := strconv.ParseBool(valueStr)
	if err != nil {
		return defaultValue
	}

	return value
}

func getEnvAsDuration(key string, defaultValue string) time.Duration {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		valueStr = defaultValue
	}

	duration, err := time.ParseDuration(valueStr)
	if err != nil {
		// Fallback to default
		duration, _ = time.ParseDuration(defaultValue)
	}

	return duration
}

// getEnvAsList splits a comma separated value, dropping blanks
func getEnvAsList(key string) []string {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return nil
	}

	var out []string
	for _, part := range strings.Split(valueStr, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
