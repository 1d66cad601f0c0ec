package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
)

type Config struct {
	DBPath          string
	ServerPort      string
	LogLevel        string
	GarminAPIToken  string
	GarminBaseURL   string
	GarminRateLimit float64 // requests per second
	CORSOrigins     []string
}

func Load(logger zerolog.Logger) (*Config, error) {
	if err := godotenv.Load(); err != nil {
		logger.Debug().Msg(".env file not found, using environment variables or defaults")
	}

	cfg := &Config{
		DBPath:         getEnv("DB_PATH", "golf.db"),
		ServerPort:     getEnv("SERVER_PORT", "8080"),
		LogLevel:       getEnv("LOG_LEVEL", "info"),
		GarminAPIToken: getEnv("GARMIN_API_TOKEN", ""),
		GarminBaseURL:  getEnv("GARMIN_BASE_URL", "https://connect.garmin.com/modern/proxy"),
	}

	if _, err := zerolog.ParseLevel(cfg.LogLevel); err != nil {
		return nil, fmt.Errorf("invalid LOG_LEVEL %q: %w", cfg.LogLevel, err)
	}

	rateLimit, err := strconv.ParseFloat(getEnv("GARMIN_RATE_LIMIT", "2"), 64)
	if err != nil || rateLimit <= 0 {
		return nil, fmt.Errorf("GARMIN_RATE_LIMIT must be a positive number")
	}
	cfg.GarminRateLimit = rateLimit

	for _, origin := range strings.Split(getEnv("CORS_ORIGINS", "*"), ",") {
		if origin = strings.TrimSpace(origin); origin != "" {
			cfg.CORSOrigins = append(cfg.CORSOrigins, origin)
		}
	}

	logger.Info().
		Str("db_path", cfg.DBPath).
		Str("server_port", cfg.ServerPort).
		Str("log_level", cfg.LogLevel).
		Str("garmin_base_url", cfg.GarminBaseURL).
		Bool("garmin_token_set", cfg.GarminAPIToken != "").
		Float64("garmin_rate_limit", cfg.GarminRateLimit).
		Strs("cors_origins", cfg.CORSOrigins).
		Msg("configuration loaded")

	return cfg, nil
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
