package config

import (
	"os"      // For environment variables
	"strconv" // For string to int conversion

	"github.com/joho/godotenv" // For loading .env files
)

// DefaultCutoffHour is the order cutoff used when CUTOFF_HOUR is unset: 11 PM.
const DefaultCutoffHour = 23

// Config holds the application configuration
type Config struct {
	AppPort    string // Application port
	DBUser     string // Database user
	DBPassword string // Database password
	DBHost     string // Database host
	DBPort     string // Database port
	DBName     string // Database name
	JWTSecret  string // JWT secret key
	RedisAddr  string // Redis server address
	RedisPass  string // Redis password
	RedisDB    int    // Redis database number
	CutoffHour int    // Daily order cutoff hour, 0-23
	IsProd     bool   // Is production environment
}

// LoadConfig loads configuration from environment variables
func LoadConfig() *Config {
	_ = godotenv.Load() // Load .env file if present
	redisDB, _ := strconv.Atoi(os.Getenv("REDIS_DB"))
	return &Config{
		AppPort:    os.Getenv("APP_PORT"),
		DBUser:     os.Getenv("DB_USER"),
		DBPassword: os.Getenv("DB_PASSWORD"),
		DBHost:     os.Getenv("DB_HOST"),
		DBPort:     os.Getenv("DB_PORT"),
		DBName:     os.Getenv("DB_NAME"),
		JWTSecret:  os.Getenv("JWT_SECRET"),
		RedisAddr:  os.Getenv("REDIS_ADDR"),
		RedisPass:  os.Getenv("REDIS_PASS"),
		RedisDB:    redisDB,
		CutoffHour: cutoffHour(),
		IsProd:     os.Getenv("IS_PROD") == "true",
	}
}

// cutoffHour reads CUTOFF_HOUR, falling back to the default when unset or
// outside the valid 0-23 range.
func cutoffHour() int {
	raw := os.Getenv("CUTOFF_HOUR")
	if raw == "" {
		return DefaultCutoffHour
	}
	h, err := strconv.Atoi(raw)
	if err != nil || h < 0 || h > 23 {
		return DefaultCutoffHour
	}
	return h
}
