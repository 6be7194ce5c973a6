package config

import (
	"os"      // For environment variables
	"strconv" // For string to int conversion
	"time"    // For token lifetimes

	"github.com/joho/godotenv" // For loading .env files
)

// Config holds the application configuration
type Config struct {
	AppPort         string        // Application port
	DBUser          string        // Database user
	DBPassword      string        // Database password
	DBHost          string        // Database host
	DBPort          string        // Database port
	DBName          string        // Database name
	JWTSecret       string        // JWT signing key
	AccessTokenTTL  time.Duration // Access token lifetime
	RefreshTokenTTL time.Duration // Refresh token lifetime
	RedisAddr       string        // Redis server address
	RedisPass       string        // Redis password
	RedisDB         int           // Redis database number
	Currency        string        // Default wallet currency code
	IsProd          bool          // Is production environment
}

// LoadConfig loads configuration from environment variables
func LoadConfig() *Config {
	_ = godotenv.Load() // Load .env file if present
	redisDB, _ := strconv.Atoi(os.Getenv("REDIS_DB"))
	return &Config{
		AppPort:         os.Getenv("APP_PORT"),                  // Application port
		DBUser:          os.Getenv("DB_USER"),                   // Database user
		DBPassword:      os.Getenv("DB_PASSWORD"),               // Database password
		DBHost:          os.Getenv("DB_HOST"),                   // Database host
		DBPort:          os.Getenv("DB_PORT"),                   // Database port
		DBName:          os.Getenv("DB_NAME"),                   // Database name
		JWTSecret:       os.Getenv("JWT_SECRET"),                // JWT signing key
		AccessTokenTTL:  envMinutes("JWT_ACCESS_TTL_MIN", 30),   // Access token lifetime
		RefreshTokenTTL: envHours("JWT_REFRESH_TTL_HOURS", 168), // Refresh token lifetime (7 days)
		RedisAddr:       os.Getenv("REDIS_ADDR"),                // Redis server address
		RedisPass:       os.Getenv("REDIS_PASS"),                // Redis password
		RedisDB:         redisDB,                                // Redis database number
		Currency:        envDefault("DEFAULT_CURRENCY", "NGN"),  // Default wallet currency
		IsProd:          os.Getenv("IS_PROD") == "true",         // Is production environment
	}
}

// envDefault returns the environment value or a fallback when unset
func envDefault(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// envMinutes reads an integer number of minutes from the environment
func envMinutes(key string, fallback int) time.Duration {
	if v, err := strconv.Atoi(os.Getenv(key)); err == nil && v > 0 {
		return time.Duration(v) * time.Minute
	}
	return time.Duration(fallback) * time.Minute
}

// envHours reads an integer number of hours from the environment
func envHours(key string, fallback int) time.Duration {
	if v, err := strconv.Atoi(os.Getenv(key)); err == nil && v > 0 {
		return time.Duration(v) * time.Hour
	}
	return time.Duration(fallback) * time.Hour
}
