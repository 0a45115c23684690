package config

import (
	"os"      // For environment variables
	"strconv" // For string to int conversion
	"time"    // For timeout durations

	"github.com/joho/godotenv" // For loading .env files
)

// Config holds the application configuration
type Config struct {
	AppPort     string        // Application port
	APIBaseURL  string        // Base URL of the upstream CloudKitchen REST API
	HTTPTimeout time.Duration // Timeout for upstream HTTP calls
	RedisAddr   string        // Redis server address
	RedisPass   string        // Redis password
	RedisDB     int           // Redis database number
	CacheTTL    time.Duration // TTL for cached catalog responses
	IsProd      bool          // Is production environment
}

// LoadConfig loads configuration from environment variables
func LoadConfig() *Config {
	_ = godotenv.Load() // Load .env file if present
	redisDB, _ := strconv.Atoi(os.Getenv("REDIS_DB"))
	return &Config{
		AppPort:     getEnv("APP_PORT", "8080"),                            // Application port
		APIBaseURL:  getEnv("API_BASE_URL", "http://localhost:5000/api"),   // Upstream API base URL
		HTTPTimeout: getSeconds("HTTP_TIMEOUT_SECONDS", 15) * time.Second,  // Upstream call timeout
		RedisAddr:   getEnv("REDIS_ADDR", "localhost:6379"),                // Redis server address
		RedisPass:   os.Getenv("REDIS_PASS"),                               // Redis password
		RedisDB:     redisDB,                                               // Redis database number
		CacheTTL:    getSeconds("CACHE_TTL_SECONDS", 60) * time.Second,     // Catalog cache TTL
		IsProd:      os.Getenv("IS_PROD") == "true",                        // Is production environment
	}
}

// getEnv returns the value of an environment variable or a fallback
func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v // Return value if set
	}
	return fallback // Return fallback otherwise
}

// getSeconds returns an integer environment variable as a second count
func getSeconds(key string, fallback int) time.Duration {
	if v, err := strconv.Atoi(os.Getenv(key)); err == nil && v > 0 {
		return time.Duration(v) // Return parsed value if valid
	}
	return time.Duration(fallback) // Return fallback otherwise
}
