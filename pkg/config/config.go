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

// Market data sources accepted by MARKET_DATA_SOURCE
const (
	SourceNaver    = "naver"
	SourcePostgres = "postgres"
	SourceFixture  = "fixture"
)

// Config holds all configuration for the application
// ⭐ SSOT: 모든 환경변수는 여기서만 읽음
type Config struct {
	// Server
	Port string
	Env  string // development, staging, production

	// Market data
	Source  string // naver, postgres, fixture
	Fixture string // path to YAML fixture (source=fixture)

	Database DatabaseConfig
	Redis    RedisConfig
	Naver    NaverConfig
	Scoring  ScoringConfig

	// Logging
	LogLevel  string
	LogFormat string
}

// DatabaseConfig holds PostgreSQL configuration
type DatabaseConfig struct {
	URL             string
	MaxConns        int
	MinConns        int
	MaxConnLifetime time.Duration
	MaxConnIdleTime time.Duration
}

// RedisConfig holds Redis configuration
type RedisConfig struct {
	Host     string
	Port     string
	Password string
	DB       int
	Enabled  bool
	TTL      time.Duration // provider response cache TTL
}

// NaverConfig holds Naver Finance configuration
type NaverConfig struct {
	BaseURL      string
	ChartURL     string
	MarketURL    string
	Timeout      time.Duration
	RatePerSec   int
	InvestorPage int // frgn.naver pages to read per stock
}

// ScoringConfig holds run-level scoring settings
type ScoringConfig struct {
	StrategyFile string        // optional YAML overriding weights and universe
	Codes        []string      // default identifiers for rank / serve
	ReportDir    string        // radar chart output directory
	Schedule     string        // cron expression for serve mode
	JobTimeout   time.Duration // bound on one scheduled ranking run
}

// Load reads configuration from environment variables
// ⭐ SSOT: 이 함수만 os.Getenv()를 호출함
func Load() (*Config, error) {
	loadEnvFile()

	cfg := &Config{
		Port: getEnv("PORT", "8089"),
		Env:  getEnv("ENV", "development"),

		Source:  strings.ToLower(getEnv("MARKET_DATA_SOURCE", SourceFixture)),
		Fixture: getEnv("FIXTURE_FILE", "testdata/fixture.yaml"),

		Database: DatabaseConfig{
			URL:             getEnv("DATABASE_URL", ""),
			MaxConns:        getEnvAsInt("DB_MAX_CONNS", 10),
			MinConns:        getEnvAsInt("DB_MIN_CONNS", 1),
			MaxConnLifetime: getEnvAsDuration("DB_MAX_CONN_LIFETIME", "1h"),
			MaxConnIdleTime: getEnvAsDuration("DB_MAX_CONN_IDLE_TIME", "30m"),
		},

		Redis: RedisConfig{
			Host:     getEnv("REDIS_HOST", "localhost"),
			Port:     getEnv("REDIS_PORT", "6379"),
			Password: getEnv("REDIS_PASSWORD", ""),
			DB:       getEnvAsInt("REDIS_DB", 0),
			Enabled:  getEnvAsBool("REDIS_ENABLED", false),
			TTL:      getEnvAsDuration("REDIS_CACHE_TTL", "10m"),
		},

		Naver: NaverConfig{
			BaseURL:      getEnv("NAVER_BASE_URL", "https://finance.naver.com"),
			ChartURL:     getEnv("NAVER_CHART_URL", "https://fchart.stock.naver.com"),
			MarketURL:    getEnv("NAVER_MARKET_URL", "https://m.stock.naver.com"),
			Timeout:      getEnvAsDuration("NAVER_TIMEOUT", "15s"),
			RatePerSec:   getEnvAsInt("NAVER_RATE_PER_SEC", 10),
			InvestorPage: getEnvAsInt("NAVER_INVESTOR_PAGES", 1),
		},

		Scoring: ScoringConfig{
			StrategyFile: getEnv("STRATEGY_FILE", ""),
			Codes:        getEnvAsList("RANKING_CODES", nil),
			ReportDir:    getEnv("REPORT_DIR", "reports"),
			Schedule:     getEnv("RANKING_SCHEDULE", "0 0 16 * * 1-5"),
			JobTimeout:   getEnvAsDuration("RANKING_JOB_TIMEOUT", "10m"),
		},

		LogLevel:  getEnv("LOG_LEVEL", "info"),
		LogFormat: getEnv("LOG_FORMAT", "console"),
	}

	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return cfg, nil
}

// OverrideSource switches the market data source (CLI flag) and revalidates
func (c *Config) OverrideSource(source string) error {
	c.Source = strings.ToLower(strings.TrimSpace(source))
	return c.validate()
}

// validate checks if required configuration values are set
func (c *Config) validate() error {
	if c.Env != "development" && c.Env != "staging" && c.Env != "production" {
		return fmt.Errorf("ENV must be one of: development, staging, production")
	}

	switch c.Source {
	case SourceNaver, SourceFixture:
	case SourcePostgres:
		if c.Database.URL == "" {
			return fmt.Errorf("DATABASE_URL is required when MARKET_DATA_SOURCE=postgres")
		}
	default:
		return fmt.Errorf("MARKET_DATA_SOURCE must be one of: naver, postgres, fixture")
	}

	if c.Naver.RatePerSec <= 0 {
		return fmt.Errorf("NAVER_RATE_PER_SEC must be > 0")
	}

	return nil
}

// loadEnvFile tries to load .env from multiple locations
func loadEnvFile() {
	paths := []string{".env"}

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
		duration, _ = time.ParseDuration(defaultValue)
	}

	return duration
}

// getEnvAsList splits a comma separated value, dropping blanks
func getEnvAsList(key string, defaultValue []string) []string {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}

	var out []string
	for _, part := range strings.Split(valueStr, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
