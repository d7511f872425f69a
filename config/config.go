package config

import (
	"errors"
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

type Config struct {
	Port string
	Env  string
	// Database
	DBUrl          string
	DBMaxOpenConns int
	DBMaxIdleConns int
	DBAutoMigrate  bool
	// Identity provider tokens
	AuthJWTSecret string
	AuthJWKSURL   string
	// Redis (page cache + rate limiting)
	RedisURL        string
	RedisPassword   string
	CacheTTLSeconds int
	// Rate Limiting Configuration
	RateLimitWindowSeconds     int
	RateLimitMutationThreshold int
	RateLimitGlobalThreshold   int
	AllowedOrigins             []string
}

func LoadConfig() (*Config, error) {
	// .env is only expected locally
	_ = godotenv.Load()

	env := getEnv("APP_ENV", "development")
	cfg := &Config{
		Port:           getEnv("PORT", "8080"),
		Env:            env,
		DBUrl:          getEnv("DATABASE_URL", ""),
		DBMaxOpenConns: getEnvInt("DB_MAX_OPEN_CONNS", 25),
		DBMaxIdleConns: getEnvInt("DB_MAX_IDLE_CONNS", 5),
		DBAutoMigrate:  getEnvBool("DB_AUTO_MIGRATE", !isProduction(env)),
		AuthJWTSecret:  getEnv("AUTH_JWT_SECRET", ""),
		// Trailing slash would produce a double slash when joined
		AuthJWKSURL:                strings.TrimRight(getEnv("AUTH_JWKS_URL", ""), "/"),
		RedisURL:                   getEnv("REDIS_URL", ""),
		RedisPassword:              getEnv("REDIS_PASSWORD", ""),
		CacheTTLSeconds:            getEnvInt("CACHE_TTL_SECONDS", 60),
		RateLimitWindowSeconds:     getEnvInt("RATE_LIMIT_WINDOW_SECONDS", 60),
		RateLimitMutationThreshold: getEnvInt("RATE_LIMIT_MUTATION_THRESHOLD", 30),
		RateLimitGlobalThreshold:   getEnvInt("RATE_LIMIT_GLOBAL_THRESHOLD", 300),
		AllowedOrigins:             splitList(getEnv("ALLOWED_ORIGINS", "http://localhost:3000")),
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	if cfg.RedisURL == "" {
		log.Println("WARNING: REDIS_URL not configured. Page cache disabled, rate limiting uses in-memory fallback.")
	}

	return cfg, nil
}

// Validate checks the settings the service cannot start without.
func (c *Config) Validate() error {
	if c.DBUrl == "" {
		return errors.New("DATABASE_URL is required")
	}
	if c.AuthJWTSecret == "" && c.AuthJWKSURL == "" {
		return errors.New("either AUTH_JWT_SECRET or AUTH_JWKS_URL must be configured")
	}
	if c.AuthJWTSecret != "" && len(c.AuthJWTSecret) < 32 {
		if c.IsProduction() {
			return errors.New("AUTH_JWT_SECRET must be at least 32 characters in production")
		}
		log.Println("WARNING: AUTH_JWT_SECRET is shorter than 32 characters.")
	}
	return nil
}

func (c *Config) IsProduction() bool {
	return isProduction(c.Env)
}

func isProduction(env string) bool {
	return env == "production" || env == "prod"
}

func splitList(value string) []string {
	var out []string
	for _, part := range strings.Split(value, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}

// getEnvInt returns an integer environment variable or fallback if not set/invalid
func getEnvInt(key string, fallback int) int {
	if value, exists := os.LookupEnv(key); exists {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return fallback
}

// getEnvBool returns a boolean environment variable or fallback if not set/invalid
func getEnvBool(key string, fallback bool) bool {
	if value, exists := os.LookupEnv(key); exists {
		if boolVal, err := strconv.ParseBool(value); err == nil {
			return boolVal
		}
	}
	return fallback
}
