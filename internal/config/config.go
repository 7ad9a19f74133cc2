package config

import (
	"log"
	"os"
	"time"

	"github.com/joho/godotenv"
)

// AggregationMode selects whether list aggregation filters expenses to the
// current recurrence window server-side or returns them all.
type AggregationMode string

const (
	AggregationFiltered   AggregationMode = "filtered"
	AggregationUnfiltered AggregationMode = "unfiltered"
)

// Config holds application configuration
type Config struct {
	// Server
	Port string

	// Database
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	DBSSLMode  string

	// JWT
	JWTSecret        string
	JWTExpirationDur time.Duration

	// Aggregation behavior
	ExpenseAggregation AggregationMode
	// How the window calculator treats unrecognized recurrence periods:
	// "all" (no filtering) or "day" (today only).
	RecurrenceUnknownPeriod string
}

var appConfig *Config

// Load loads configuration from environment variables
func Load() (*Config, error) {
	// Load .env file if not already loaded
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: .env file not found")
	}

	config := &Config{
		// Server
		Port: getEnv("PORT", "8080"),

		// Database
		DBHost:     getEnv("DB_HOST", "localhost"),
		DBPort:     getEnv("DB_PORT", "5432"),
		DBUser:     getEnv("DB_USER", "splitlist"),
		DBPassword: getEnv("DB_PASSWORD", "splitlist"),
		DBName:     getEnv("DB_NAME", "splitlist"),
		DBSSLMode:  getEnv("DB_SSLMODE", "disable"),

		// JWT
		JWTSecret: getEnv("JWT_SECRET", "fallback-secret-key-for-dev-only"),

		RecurrenceUnknownPeriod: getEnv("RECURRENCE_UNKNOWN_PERIOD", "all"),
	}

	// Parse JWT expiration duration
	expStr := getEnv("JWT_EXPIRES_IN", "10h")
	expDur, err := time.ParseDuration(expStr)
	if err != nil {
		log.Printf("Warning: invalid JWT_EXPIRES_IN value '%s', falling back to 10h\n", expStr)
		expDur = 10 * time.Hour
	}
	config.JWTExpirationDur = expDur

	// Aggregation mode, defaulting to server-side filtering
	switch mode := AggregationMode(getEnv("EXPENSE_AGGREGATION", "filtered")); mode {
	case AggregationFiltered, AggregationUnfiltered:
		config.ExpenseAggregation = mode
	default:
		log.Printf("Warning: invalid EXPENSE_AGGREGATION value '%s', falling back to filtered\n", mode)
		config.ExpenseAggregation = AggregationFiltered
	}

	appConfig = config
	return config, nil
}

// Get returns the application configuration
func Get() *Config {
	if appConfig == nil {
		var err error
		appConfig, err = Load()
		if err != nil {
			log.Fatalf("Failed to load configuration: %v", err)
		}
	}
	return appConfig
}

// getEnv retrieves an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
