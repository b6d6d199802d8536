package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
)

// Config holds the application configuration, loaded from the
// environment (an optional .env file is read first).
type Config struct {
	Port      string
	DBPath    string
	JWTSecret string
	LogLevel  string

	// Hotspot detection
	Granularity    int           // decimal digits of the bin key
	MinCount       int           // incidents per bin to raise an alert
	DetectInterval time.Duration // background pass period
	SnapshotLimit  int           // incidents pulled per pass

	// Realtime sessions
	WSIdleTimeout  time.Duration // close a session silent for this long
	WSWriteTimeout time.Duration // per-send deadline during broadcast

	// Notification channels (JSON file, notify_config.json layout)
	NotifyConfigPath string
}

// Load builds the configuration from the environment.
func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Debug().Msg("No .env file found, using environment only")
	}

	return &Config{
		Port:      getEnv("PORT", ":8080"),
		DBPath:    getEnv("DB_PATH", "./data/alerts.db"),
		JWTSecret: getEnv("JWT_SECRET", "your-secret-key-change-in-production"),
		LogLevel:  getEnv("LOG_LEVEL", "info"),

		Granularity:    getEnvInt("HOTSPOT_GRANULARITY", 3),
		MinCount:       getEnvInt("HOTSPOT_MIN_COUNT", 5),
		DetectInterval: getEnvDuration("DETECT_INTERVAL", 60*time.Second),
		SnapshotLimit:  getEnvInt("DETECT_SNAPSHOT_LIMIT", 5000),

		WSIdleTimeout:  getEnvDuration("WS_IDLE_TIMEOUT", 60*time.Second),
		WSWriteTimeout: getEnvDuration("WS_WRITE_TIMEOUT", 10*time.Second),

		NotifyConfigPath: getEnv("NOTIFY_CONFIG_PATH", "notify_config.json"),
	}
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		log.Warn().Str("key", key).Str("value", v).Msg("Invalid integer in environment, using default")
		return fallback
	}
	return n
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		log.Warn().Str("key", key).Str("value", v).Msg("Invalid duration in environment, using default")
		return fallback
	}
	return d
}
