package config

import (
	"os"

	"github.com/joho/godotenv"
)

const (
	defaultPort    = "8080"
	defaultBaseURL = "http://localhost:8080"
	defaultDBDSN   = "seolnk.db"
)

// Config holds server configuration read from the environment.
// Redis, ClickHouse, and GeoIP settings are optional; empty values
// leave the corresponding feature disabled.
type Config struct {
	Port    string
	BaseURL string
	DBDSN   string

	RedisAddr     string
	RedisPassword string

	ClickHouseAddr     string
	ClickHouseUser     string
	ClickHousePassword string
	ClickHouseDB       string

	GeoIPDBPath string
	LogLevel    string
}

// Load reads configuration from a .env file (if present) and the
// environment.
func Load() *Config {
	// Missing .env is fine; the environment still applies.
	_ = godotenv.Load()

	return &Config{
		Port:               envOr("PORT", defaultPort),
		BaseURL:            envOr("SEOLNK_BASE_URL", defaultBaseURL),
		DBDSN:              envOr("SEOLNK_DB_DSN", defaultDBDSN),
		RedisAddr:          os.Getenv("REDIS_ADDR"),
		RedisPassword:      os.Getenv("REDIS_PASSWORD"),
		ClickHouseAddr:     os.Getenv("CLICKHOUSE_ADDR"),
		ClickHouseUser:     envOr("CLICKHOUSE_USER", "default"),
		ClickHousePassword: os.Getenv("CLICKHOUSE_PASSWORD"),
		ClickHouseDB:       envOr("CLICKHOUSE_DB", "seolnk"),
		GeoIPDBPath:        os.Getenv("GEOIP_DB_PATH"),
		LogLevel:           envOr("LOG_LEVEL", "info"),
	}
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
