package config

import (
	"os"
	"strings"
	"testing"
	"time"

	"github.com/flavorquiz/backend/internal/domain"
)

func TestLoad(t *testing.T) {
	t.Run("loads with defaults when no env vars set", func(t *testing.T) {
		chdirForTest(t, t.TempDir())

		cfg, err := Load()
		if err != nil {
			t.Fatalf("Load() error = %v, want nil", err)
		}

		if cfg.Server.Port != "8080" {
			t.Errorf("Server.Port = %s, want 8080", cfg.Server.Port)
		}
		if cfg.Server.Environment != "development" {
			t.Errorf("Server.Environment = %s, want development", cfg.Server.Environment)
		}
		if cfg.Matching != domain.DefaultComparisonOptions() {
			t.Errorf("Matching = %+v, want defaults", cfg.Matching)
		}
		if cfg.Taxonomy.Path != "" {
			t.Errorf("Taxonomy.Path = %q, want empty", cfg.Taxonomy.Path)
		}
		if cfg.Taxonomy.TTL != 5*time.Minute {
			t.Errorf("Taxonomy.TTL = %v, want 5m", cfg.Taxonomy.TTL)
		}
		if cfg.RateLimit.PerIP != 120 || cfg.RateLimit.Burst != 20 {
			t.Errorf("RateLimit = %+v, want 120/20", cfg.RateLimit)
		}
	})

	t.Run("loads custom values from environment variables", func(t *testing.T) {
		chdirForTest(t, t.TempDir())
		t.Setenv("FLAVORQUIZ_SERVER_PORT", "9090")
		t.Setenv("FLAVORQUIZ_SERVER_ENVIRONMENT", "production")
		t.Setenv("FLAVORQUIZ_MATCHING_CLOSE_THRESHOLD", "0.9")
		t.Setenv("FLAVORQUIZ_MATCHING_STRICT_FLAVORS", "false")
		t.Setenv("FLAVORQUIZ_TAXONOMY_PATH", "data/flavors.csv")
		t.Setenv("FLAVORQUIZ_TAXONOMY_TTL", "1h")
		t.Setenv("FLAVORQUIZ_RATELIMIT_PER_IP", "200")

		cfg, err := Load()
		if err != nil {
			t.Fatalf("Load() error = %v, want nil", err)
		}

		if cfg.Server.Port != "9090" {
			t.Errorf("Server.Port = %s, want 9090", cfg.Server.Port)
		}
		if cfg.Server.Environment != "production" {
			t.Errorf("Server.Environment = %s, want production", cfg.Server.Environment)
		}
		if cfg.Matching.CloseThreshold != 0.9 {
			t.Errorf("Matching.CloseThreshold = %v, want 0.9", cfg.Matching.CloseThreshold)
		}
		if cfg.Matching.StrictFlavors {
			t.Error("Matching.StrictFlavors = true, want false")
		}
		if cfg.Taxonomy.Path != "data/flavors.csv" {
			t.Errorf("Taxonomy.Path = %s, want data/flavors.csv", cfg.Taxonomy.Path)
		}
		if cfg.Taxonomy.TTL != time.Hour {
			t.Errorf("Taxonomy.TTL = %v, want 1h", cfg.Taxonomy.TTL)
		}
		if cfg.RateLimit.PerIP != 200 {
			t.Errorf("RateLimit.PerIP = %d, want 200", cfg.RateLimit.PerIP)
		}
	})

	t.Run("reads config file", func(t *testing.T) {
		dir := t.TempDir()
		chdirForTest(t, dir)
		content := "server:\n  port: \"7070\"\nmatching:\n  accept_threshold: 0.75\n"
		if err := os.WriteFile("config.yaml", []byte(content), 0644); err != nil {
			t.Fatalf("Failed to create config file: %v", err)
		}

		cfg, err := Load()
		if err != nil {
			t.Fatalf("Load() error = %v, want nil", err)
		}
		if cfg.Server.Port != "7070" {
			t.Errorf("Server.Port = %s, want 7070", cfg.Server.Port)
		}
		if cfg.Matching.AcceptThreshold != 0.75 {
			t.Errorf("Matching.AcceptThreshold = %v, want 0.75", cfg.Matching.AcceptThreshold)
		}
	})

	t.Run("values from .env file", func(t *testing.T) {
		chdirForTest(t, t.TempDir())
		if err := os.WriteFile(".env", []byte("FLAVORQUIZ_SERVER_PORT=6060\n"), 0644); err != nil {
			t.Fatalf("Failed to create test .env file: %v", err)
		}
		// registered so the variable is restored after the test
		t.Setenv("FLAVORQUIZ_SERVER_PORT", "")
		os.Unsetenv("FLAVORQUIZ_SERVER_PORT")

		cfg, err := Load()
		if err != nil {
			t.Fatalf("Load() error = %v, want nil", err)
		}
		if cfg.Server.Port != "6060" {
			t.Errorf("Server.Port = %s, want 6060", cfg.Server.Port)
		}
	})

	t.Run("fails validation for unknown taxonomy format", func(t *testing.T) {
		chdirForTest(t, t.TempDir())
		t.Setenv("FLAVORQUIZ_TAXONOMY_PATH", "flavors.json")

		_, err := Load()
		if err == nil {
			t.Fatal("Load() error = nil, want error for json taxonomy")
		}
		if !strings.HasPrefix(err.Error(), "invalid configuration:") {
			t.Errorf("Load() error = %v, want invalid configuration", err)
		}
	})
}

func TestLoadEnvFile(t *testing.T) {
	t.Run("returns nil when .env file doesn't exist", func(t *testing.T) {
		chdirForTest(t, t.TempDir())

		if err := loadEnvFile(); err != nil {
			t.Errorf("loadEnvFile() error = %v, want nil when file doesn't exist", err)
		}
	})

	t.Run("skips comments and blank lines", func(t *testing.T) {
		chdirForTest(t, t.TempDir())

		envContent := `
# Comment line
TEST_VAR_1=value1

TEST_VAR_2=value2
# TEST_COMMENTED=should_not_load
`
		if err := os.WriteFile(".env", []byte(envContent), 0644); err != nil {
			t.Fatalf("Failed to create test .env file: %v", err)
		}
		for _, key := range []string{"TEST_VAR_1", "TEST_VAR_2", "TEST_COMMENTED"} {
			t.Setenv(key, "")
			os.Unsetenv(key)
		}

		if err := loadEnvFile(); err != nil {
			t.Fatalf("loadEnvFile() error = %v, want nil", err)
		}

		if os.Getenv("TEST_VAR_1") != "value1" {
			t.Errorf("TEST_VAR_1 = %s, want value1", os.Getenv("TEST_VAR_1"))
		}
		if os.Getenv("TEST_VAR_2") != "value2" {
			t.Errorf("TEST_VAR_2 = %s, want value2", os.Getenv("TEST_VAR_2"))
		}
		if _, ok := os.LookupEnv("TEST_COMMENTED"); ok {
			t.Error("TEST_COMMENTED should not be loaded from comment")
		}
	})

	t.Run("doesn't override existing environment variables", func(t *testing.T) {
		chdirForTest(t, t.TempDir())
		t.Setenv("TEST_OVERRIDE", "existing-value")

		if err := os.WriteFile(".env", []byte("TEST_OVERRIDE=new-value"), 0644); err != nil {
			t.Fatalf("Failed to create test .env file: %v", err)
		}

		if err := loadEnvFile(); err != nil {
			t.Fatalf("loadEnvFile() error = %v, want nil", err)
		}

		if os.Getenv("TEST_OVERRIDE") != "existing-value" {
			t.Errorf("TEST_OVERRIDE = %s, want existing-value", os.Getenv("TEST_OVERRIDE"))
		}
	})
}

func validConfig() *Config {
	return &Config{
		Matching:  domain.DefaultComparisonOptions(),
		RateLimit: RateLimitConfig{PerIP: 60, Burst: 10},
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{"defaults", func(*Config) {}, false},
		{"yaml taxonomy", func(c *Config) { c.Taxonomy.Path = "flavors.YML" }, false},
		{"csv taxonomy", func(c *Config) { c.Taxonomy.Path = "/data/flavors.csv" }, false},
		{"unknown taxonomy extension", func(c *Config) { c.Taxonomy.Path = "flavors.txt" }, true},
		{"negative ttl", func(c *Config) { c.Taxonomy.TTL = -time.Second }, true},
		{"zero threshold", func(c *Config) { c.Matching.AcceptThreshold = 0 }, true},
		{"threshold above one", func(c *Config) { c.Matching.PerfectThreshold = 1.2 }, true},
		{"accept above close", func(c *Config) { c.Matching.AcceptThreshold = 0.9 }, true},
		{"close above perfect", func(c *Config) {
			c.Matching.PerfectThreshold = 0.8
			c.Matching.AcceptThreshold = 0.5
		}, true},
		{"zero rate", func(c *Config) { c.RateLimit.PerIP = 0 }, true},
		{"zero burst", func(c *Config) { c.RateLimit.Burst = 0 }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			tt.mutate(cfg)

			err := validate(cfg)
			if (err != nil) != tt.wantErr {
				t.Errorf("validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

// chdirForTest mirrors testing.T.Chdir (Go 1.24+) for older toolchains:
// it changes the working directory and restores it when the test ends.
func chdirForTest(t *testing.T, dir string) {
	t.Helper()
	prev, err := os.Getwd()
	if err != nil {
		t.Fatalf("os.Getwd() error = %v", err)
	}
	if err := os.Chdir(dir); err != nil {
		t.Fatalf("os.Chdir(%q) error = %v", dir, err)
	}
	t.Cleanup(func() {
		if err := os.Chdir(prev); err != nil {
			t.Fatalf("restoring working directory: %v", err)
		}
	})
}
