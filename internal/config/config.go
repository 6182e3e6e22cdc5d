package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all configuration values
type Config struct {
	// Server configuration
	Port               int      `json:"port"`
	Environment        string   `json:"environment"`
	APIPrefix          string   `json:"api_prefix"`
	CORSAllowedOrigins []string `json:"cors_allowed_origins"`

	// PostgreSQL configuration
	DatabaseURL       string        `json:"database_url"`
	DBMaxOpenConns    int           `json:"db_max_open_conns"`
	DBMaxIdleConns    int           `json:"db_max_idle_conns"`
	DBConnMaxLifetime time.Duration `json:"db_conn_max_lifetime"`
	DBQueryTimeout    time.Duration `json:"db_query_timeout"`
	DBSlowQuery       time.Duration `json:"db_slow_query"`
	MigrateOnStart    bool          `json:"migrate_on_start"`

	// Redis configuration
	RedisURI      string `json:"redis_uri"`
	RedisPassword string `json:"redis_password"`
	RedisDB       int    `json:"redis_db"`

	// Rate limiting
	RateLimitEnabled bool          `json:"rate_limit_enabled"`
	RateLimitRPS     float64       `json:"rate_limit_rps"`
	RateLimitBurst   int           `json:"rate_limit_burst"`
	RateLimitWindow  time.Duration `json:"rate_limit_window"`

	// Tracing
	TracingEnabled  bool   `json:"tracing_enabled"`
	TracingEndpoint string `json:"tracing_endpoint"`
}

var (
	AppConfig *Config
)

// LoadConfig loads configuration from environment variables. A .env file in
// the working directory is read first when present; real environment values
// take precedence over it.
func LoadConfig() error {
	_ = godotenv.Load()

	port, err := getEnvAsIntOrDefault("PORT", 8080)
	if err != nil {
		return err
	}
	redisDB, err := getEnvAsIntOrDefault("REDIS_DB", 0)
	if err != nil {
		return err
	}
	maxOpen, err := getEnvAsIntOrDefault("DB_MAX_OPEN_CONNS", 25)
	if err != nil {
		return err
	}
	maxIdle, err := getEnvAsIntOrDefault("DB_MAX_IDLE_CONNS", 5)
	if err != nil {
		return err
	}
	connLifetime, err := getEnvAsDurationOrDefault("DB_CONN_MAX_LIFETIME", 30*time.Minute)
	if err != nil {
		return err
	}
	queryTimeout, err := getEnvAsDurationOrDefault("DB_QUERY_TIMEOUT", 10*time.Second)
	if err != nil {
		return err
	}
	slowQuery, err := getEnvAsDurationOrDefault("DB_SLOW_QUERY", 500*time.Millisecond)
	if err != nil {
		return err
	}
	migrateOnStart, err := getEnvAsBoolOrDefault("MIGRATE_ON_START", false)
	if err != nil {
		return err
	}
	rateLimitEnabled, err := getEnvAsBoolOrDefault("RATE_LIMIT_ENABLED", true)
	if err != nil {
		return err
	}
	rateLimitRPS, err := getEnvAsFloatOrDefault("RATE_LIMIT_RPS", 20)
	if err != nil {
		return err
	}
	rateLimitBurst, err := getEnvAsIntOrDefault("RATE_LIMIT_BURST", 40)
	if err != nil {
		return err
	}
	rateLimitWindow, err := getEnvAsDurationOrDefault("RATE_LIMIT_WINDOW", time.Minute)
	if err != nil {
		return err
	}
	tracingEnabled, err := getEnvAsBoolOrDefault("TRACING_ENABLED", false)
	if err != nil {
		return err
	}

	cfg := &Config{
		Port:               port,
		Environment:        getEnvOrDefault("ENVIRONMENT", "development"),
		APIPrefix:          getEnvOrDefault("API_PREFIX", "/api"),
		CORSAllowedOrigins: splitAndTrim(getEnvOrDefault("CORS_ALLOWED_ORIGINS", "*")),

		DatabaseURL:       os.Getenv("DATABASE_URL"),
		DBMaxOpenConns:    maxOpen,
		DBMaxIdleConns:    maxIdle,
		DBConnMaxLifetime: connLifetime,
		DBQueryTimeout:    queryTimeout,
		DBSlowQuery:       slowQuery,
		MigrateOnStart:    migrateOnStart,

		RedisURI:      getEnvOrDefault("REDIS_URI", "localhost:6379"),
		RedisPassword: getEnvOrDefault("REDIS_PASSWORD", ""),
		RedisDB:       redisDB,

		RateLimitEnabled: rateLimitEnabled,
		RateLimitRPS:     rateLimitRPS,
		RateLimitBurst:   rateLimitBurst,
		RateLimitWindow:  rateLimitWindow,

		TracingEnabled:  tracingEnabled,
		TracingEndpoint: getEnvOrDefault("TRACING_ENDPOINT", "localhost:4317"),
	}

	if err := cfg.Validate(); err != nil {
		return err
	}

	AppConfig = cfg
	return nil
}

// Validate reports every invalid setting at once.
func (c *Config) Validate() error {
	var problems []string

	if c.Port < 1 || c.Port > 65535 {
		problems = append(problems, fmt.Sprintf("invalid PORT %d: must be between 1 and 65535", c.Port))
	}
	if c.DatabaseURL == "" {
		problems = append(problems, "DATABASE_URL environment variable is required")
	}
	if !strings.HasPrefix(c.APIPrefix, "/") {
		problems = append(problems, fmt.Sprintf("invalid API_PREFIX %q: must start with /", c.APIPrefix))
	}
	if c.DBMaxOpenConns < 1 {
		problems = append(problems, "DB_MAX_OPEN_CONNS must be positive")
	}
	if c.DBMaxIdleConns < 0 || c.DBMaxIdleConns > c.DBMaxOpenConns {
		problems = append(problems, "DB_MAX_IDLE_CONNS must be between 0 and DB_MAX_OPEN_CONNS")
	}
	if c.DBQueryTimeout <= 0 {
		problems = append(problems, "DB_QUERY_TIMEOUT must be positive")
	}
	if c.RateLimitEnabled {
		if c.RateLimitRPS <= 0 {
			problems = append(problems, "RATE_LIMIT_RPS must be positive")
		}
		if c.RateLimitBurst < 1 {
			problems = append(problems, "RATE_LIMIT_BURST must be at least 1")
		}
		if c.RateLimitWindow <= 0 {
			problems = append(problems, "RATE_LIMIT_WINDOW must be positive")
		}
	}

	if len(problems) > 0 {
		return errors.New("configuration validation failed: " + strings.Join(problems, "; "))
	}
	return nil
}

// IsProduction reports whether the service runs in production mode
func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}

// getEnvOrDefault returns environment variable value or default if not set
func getEnvOrDefault(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

func getEnvAsIntOrDefault(key string, defaultValue int) (int, error) {
	value, exists := os.LookupEnv(key)
	if !exists || value == "" {
		return defaultValue, nil
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return n, nil
}

func getEnvAsFloatOrDefault(key string, defaultValue float64) (float64, error) {
	value, exists := os.LookupEnv(key)
	if !exists || value == "" {
		return defaultValue, nil
	}
	f, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return f, nil
}

func getEnvAsBoolOrDefault(key string, defaultValue bool) (bool, error) {
	value, exists := os.LookupEnv(key)
	if !exists || value == "" {
		return defaultValue, nil
	}
	b, err := strconv.ParseBool(value)
	if err != nil {
		return false, fmt.Errorf("invalid %s: %w", key, err)
	}
	return b, nil
}

func getEnvAsDurationOrDefault(key string, defaultValue time.Duration) (time.Duration, error) {
	value, exists := os.LookupEnv(key)
	if !exists || value == "" {
		return defaultValue, nil
	}
	d, err := time.ParseDuration(value)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return d, nil
}

func splitAndTrim(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
