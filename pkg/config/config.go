package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all configuration for the application
// ⭐ SSOT: 모든 환경변수는 여기서만 읽음
type Config struct {
	// Server
	Port string
	Env  string // development, staging, production

	// Database
	Database DatabaseConfig

	// Redis
	Redis RedisConfig

	// External APIs
	MetalsAPI MetalsAPIConfig
	WorldNews WorldNewsConfig
	FRED      FREDConfig

	// Reports
	Reports ReportsConfig

	// Logging
	LogLevel  string
	LogFormat string
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
	Host     string
	Port     string
	Name     string
	User     string
	Password string
	URL      string

	// Connection Pool
	MaxConns        int
	MinConns        int
	MaxConnLifetime time.Duration
	MaxConnIdleTime time.Duration
}

// MetalsAPIConfig holds metalpriceapi.com configuration
type MetalsAPIConfig struct {
	APIKey  string
	BaseURL string
}

// WorldNewsConfig holds worldnewsapi.com configuration
type WorldNewsConfig struct {
	APIKey      string
	BaseURL     string
	DaysBack    int // 뉴스 조회 기간 (기본: 7일)
	MaxArticles int // 최대 기사 수 (기본: 20)
}

// FREDConfig holds FRED (St. Louis Fed) API configuration
// 과거 금 시세 폴백 조회용
type FREDConfig struct {
	APIKey  string
	BaseURL string
}

// ReportsConfig holds report store configuration
type ReportsConfig struct {
	HistoryLimit  int // 추세 분석에 로드할 과거 리포트 수 (기본: 30)
	RetentionDays int // 리포트 보관 기간 (기본: 90일)
}

// Load reads configuration from environment variables
// ⭐ SSOT: 이 함수만 os.Getenv()를 호출함
func Load() (*Config, error) {
	// Try multiple paths for .env file
	loadEnvFile()

	cfg := &Config{
		// Server
		Port: getEnv("PORT", "8090"),
		Env:  getEnv("ENV", "development"),

		// Database
		Database: DatabaseConfig{
			Host:            getEnv("DB_HOST", "localhost"),
			Port:            getEnv("DB_PORT", "5432"),
			Name:            getEnv("DB_NAME", "midas"),
			User:            getEnv("DB_USER", "midas"),
			Password:        getEnv("DB_PASSWORD", ""),
			URL:             getEnv("DATABASE_URL", ""),
			MaxConns:        getEnvAsInt("DB_MAX_CONNS", 25),
			MinConns:        getEnvAsInt("DB_MIN_CONNS", 5),
			MaxConnLifetime: getEnvAsDuration("DB_MAX_CONN_LIFETIME", "1h"),
			MaxConnIdleTime: getEnvAsDuration("DB_MAX_CONN_IDLE_TIME", "30m"),
		},

		// Redis
		Redis: RedisConfig{
			Host:     getEnv("REDIS_HOST", "localhost"),
			Port:     getEnv("REDIS_PORT", "6379"),
			Password: getEnv("REDIS_PASSWORD", ""),
			DB:       getEnvAsInt("REDIS_DB", 0),
			Enabled:  getEnvAsBool("REDIS_ENABLED", true),
		},

		// External APIs
		MetalsAPI: MetalsAPIConfig{
			APIKey:  getEnv("METAL_LIVE_API_KEY", ""),
			BaseURL: getEnv("METALS_API_BASE_URL", "https://api.metalpriceapi.com/v1"),
		},

		WorldNews: WorldNewsConfig{
			APIKey:      getEnv("WORLD_NEWS_API_KEY", ""),
			BaseURL:     getEnv("WORLD_NEWS_BASE_URL", "https://api.worldnewsapi.com"),
			DaysBack:    getEnvAsInt("WORLD_NEWS_DAYS_BACK", 7),
			MaxArticles: getEnvAsInt("WORLD_NEWS_MAX_ARTICLES", 20),
		},

		FRED: FREDConfig{
			APIKey:  getEnv("FRED_API_KEY", ""),
			BaseURL: getEnv("FRED_BASE_URL", "https://api.stlouisfed.org/fred/series/observations"),
		},

		// Reports
		Reports: ReportsConfig{
			HistoryLimit:  getEnvAsInt("REPORTS_HISTORY_LIMIT", 30),
			RetentionDays: getEnvAsInt("REPORTS_RETENTION_DAYS", 90),
		},

		// Logging
		LogLevel:  getEnv("LOG_LEVEL", "debug"),
		LogFormat: getEnv("LOG_FORMAT", "json"),
	}

	// Validate configuration
	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return cfg, nil
}

// validate checks if required configuration values are set
func (c *Config) validate() error {
	// Database URL is required
	if c.Database.URL == "" {
		return fmt.Errorf("DATABASE_URL is required")
	}

	// Validate environment
	if c.Env != "development" && c.Env != "staging" && c.Env != "production" {
		return fmt.Errorf("ENV must be one of: development, staging, production")
	}

	if c.Reports.HistoryLimit <= 0 {
		return fmt.Errorf("REPORTS_HISTORY_LIMIT must be positive")
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
			filepath.Join(exeDir, "..", "..", ".env"),
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
