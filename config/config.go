package config

import (
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"github.com/flavorquiz/backend/internal/domain"
)

// Config holds all configuration for the application
type Config struct {
	Server    ServerConfig             `mapstructure:"server"`
	Matching  domain.ComparisonOptions `mapstructure:"matching"`
	Taxonomy  TaxonomyConfig           `mapstructure:"taxonomy"`
	RateLimit RateLimitConfig          `mapstructure:"ratelimit"`
}

// ServerConfig holds server-related configuration
type ServerConfig struct {
	Port           string   `mapstructure:"port"`
	Environment    string   `mapstructure:"environment"`
	AllowedOrigins []string `mapstructure:"allowed_origins"`
	LogLevel       string   `mapstructure:"log_level"`
}

// TaxonomyConfig points at the product taxonomy file. An empty path disables
// the category fallback.
type TaxonomyConfig struct {
	Path string        `mapstructure:"path"`
	TTL  time.Duration `mapstructure:"ttl"`
}

// RateLimitConfig holds per-client rate limiting configuration
type RateLimitConfig struct {
	PerIP int `mapstructure:"per_ip"` // requests per minute
	Burst int `mapstructure:"burst"`
}

// Load loads configuration from environment variables and config files
func Load() (*Config, error) {
	if err := loadEnvFile(); err != nil {
		return nil, fmt.Errorf("error reading .env file: %w", err)
	}

	v := viper.New()

	// Set config name and paths
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")
	v.AddConfigPath("/etc/flavorquiz/")

	// FLAVORQUIZ_MATCHING_CLOSE_THRESHOLD -> matching.close_threshold
	v.SetEnvPrefix("FLAVORQUIZ")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	setDefaults(v)

	// Read config file (optional - will use env vars if file doesn't exist)
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("unable to decode config: %w", err)
	}

	if err := validate(&config); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &config, nil
}

// loadEnvFile loads .env from the working directory when present.
// Variables already set in the environment win.
func loadEnvFile() error {
	err := godotenv.Load()
	if err != nil && errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	return err
}

// setDefaults sets default configuration values
func setDefaults(v *viper.Viper) {
	// Server defaults
	v.SetDefault("server.port", "8080")
	v.SetDefault("server.environment", "development")
	v.SetDefault("server.allowed_origins", []string{"http://localhost:*"})
	v.SetDefault("server.log_level", "")

	// Matching defaults
	defaults := domain.DefaultComparisonOptions()
	v.SetDefault("matching.perfect_threshold", defaults.PerfectThreshold)
	v.SetDefault("matching.close_threshold", defaults.CloseThreshold)
	v.SetDefault("matching.accept_threshold", defaults.AcceptThreshold)
	v.SetDefault("matching.strict_flavors", defaults.StrictFlavors)
	v.SetDefault("matching.log_details", defaults.LogDetails)

	// Taxonomy defaults
	v.SetDefault("taxonomy.path", "")
	v.SetDefault("taxonomy.ttl", "5m")

	// Rate limit defaults
	v.SetDefault("ratelimit.per_ip", 120)
	v.SetDefault("ratelimit.burst", 20)
}

// validate validates the configuration
func validate(config *Config) error {
	m := config.Matching
	for name, t := range map[string]float64{
		"perfect_threshold": m.PerfectThreshold,
		"close_threshold":   m.CloseThreshold,
		"accept_threshold":  m.AcceptThreshold,
	} {
		if t <= 0 || t > 1 {
			return fmt.Errorf("matching.%s must be in (0, 1], got: %v", name, t)
		}
	}

	if m.AcceptThreshold > m.CloseThreshold {
		return fmt.Errorf("matching.accept_threshold (%v) must not exceed close_threshold (%v)",
			m.AcceptThreshold, m.CloseThreshold)
	}
	if m.CloseThreshold > m.PerfectThreshold {
		return fmt.Errorf("matching.close_threshold (%v) must not exceed perfect_threshold (%v)",
			m.CloseThreshold, m.PerfectThreshold)
	}

	if path := config.Taxonomy.Path; path != "" {
		switch strings.ToLower(filepath.Ext(path)) {
		case ".csv", ".yaml", ".yml":
		default:
			return fmt.Errorf("taxonomy.path must be a .csv, .yaml or .yml file, got: %s", path)
		}
	}
	if config.Taxonomy.TTL < 0 {
		return fmt.Errorf("taxonomy.ttl must not be negative, got: %s", config.Taxonomy.TTL)
	}

	if config.RateLimit.PerIP <= 0 {
		return fmt.Errorf("ratelimit.per_ip must be positive, got: %d", config.RateLimit.PerIP)
	}
	if config.RateLimit.Burst <= 0 {
		return fmt.Errorf("ratelimit.burst must be positive, got: %d", config.RateLimit.Burst)
	}

	return nil
}
