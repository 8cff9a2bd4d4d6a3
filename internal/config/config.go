package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"time"

	sharedcfg "github.com/couchcryptid/storm-data-shared/config"
	"github.com/joho/godotenv"

	"github.com/couchcryptid/air-quality-comparison/internal/domain"
)

// Config holds all job settings, populated from environment variables.
type Config struct {
	// OpenWeatherMap air pollution API.
	APIKey     string
	APIBaseURL string
	APITimeout time.Duration

	Locations     []domain.Location
	LocationsFile string

	OutputPath      string
	FailurePolicy   domain.FailurePolicy
	MetricsTextfile string

	// Kafka publication is disabled when KafkaBrokers is empty.
	KafkaBrokers []string
	KafkaTopic   string

	// ServeAddr enables the chart/health/metrics server after the run.
	ServeAddr       string
	ShutdownTimeout time.Duration

	LogLevel  string
	LogFormat string
}

// Load reads configuration from environment variables, applying defaults where
// unset. Variables in a .env file in the working directory are loaded first
// without overriding the real environment.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("load .env: %w", err)
	}

	shutdownTimeout, err := sharedcfg.ParseShutdownTimeout()
	if err != nil {
		return nil, err
	}

	apiTimeout, err := time.ParseDuration(sharedcfg.EnvOrDefault("OPENWEATHER_TIMEOUT", "10s"))
	if err != nil || apiTimeout <= 0 {
		return nil, errors.New("invalid OPENWEATHER_TIMEOUT")
	}

	policy, err := domain.ParseFailurePolicy(sharedcfg.EnvOrDefault("FAILED_ROWS", string(domain.ExcludeFailed)))
	if err != nil {
		return nil, fmt.Errorf("invalid FAILED_ROWS: %w", err)
	}

	cfg := &Config{
		APIKey:          os.Getenv("OPENWEATHER_API_KEY"),
		APIBaseURL:      sharedcfg.EnvOrDefault("OPENWEATHER_BASE_URL", "http://api.openweathermap.org"),
		APITimeout:      apiTimeout,
		LocationsFile:   os.Getenv("LOCATIONS_FILE"),
		OutputPath:      sharedcfg.EnvOrDefault("OUTPUT_PATH", "air_quality_comparison.png"),
		FailurePolicy:   policy,
		MetricsTextfile: os.Getenv("METRICS_TEXTFILE"),
		KafkaTopic:      sharedcfg.EnvOrDefault("KAFKA_TOPIC", "air-quality-measurements"),
		ServeAddr:       os.Getenv("SERVE_ADDR"),
		ShutdownTimeout: shutdownTimeout,
		LogLevel:        sharedcfg.EnvOrDefault("LOG_LEVEL", "info"),
		LogFormat:       sharedcfg.EnvOrDefault("LOG_FORMAT", "json"),
	}

	if brokers := os.Getenv("KAFKA_BROKERS"); brokers != "" {
		cfg.KafkaBrokers = sharedcfg.ParseBrokers(brokers)
	}

	if cfg.APIKey == "" {
		return nil, errors.New("OPENWEATHER_API_KEY is required")
	}
	if cfg.OutputPath == "" {
		return nil, errors.New("OUTPUT_PATH is required")
	}
	if len(cfg.KafkaBrokers) > 0 && cfg.KafkaTopic == "" {
		return nil, errors.New("KAFKA_TOPIC is required when KAFKA_BROKERS is set")
	}

	if cfg.LocationsFile == "" {
		cfg.Locations = domain.DefaultLocations()
	} else {
		locs, err := LoadLocations(cfg.LocationsFile)
		if err != nil {
			return nil, fmt.Errorf("LOCATIONS_FILE: %w", err)
		}
		cfg.Locations = locs
	}

	return cfg, nil
}
