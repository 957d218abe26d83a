package config

import (
	"os"
	"testing"
	"time"
)

// chdirTemp runs the test from an empty directory so no config.yaml or .env is picked up
func chdirTemp(t *testing.T) {
	t.Helper()
	originalDir, _ := os.Getwd()
	t.Cleanup(func() { os.Chdir(originalDir) })
	os.Chdir(t.TempDir())
}

func TestLoad(t *testing.T) {
	t.Run("loads with defaults when no env vars set", func(t *testing.T) {
		chdirTemp(t)

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
		if cfg.Database.Driver != "memory" {
			t.Errorf("Database.Driver = %s, want memory", cfg.Database.Driver)
		}
		if cfg.Session.Type != "memory" {
			t.Errorf("Session.Type = %s, want memory", cfg.Session.Type)
		}
		if cfg.Session.TTL != 720*time.Hour {
			t.Errorf("Session.TTL = %v, want 720h", cfg.Session.TTL)
		}
		if cfg.Catalog.Source != "embedded" {
			t.Errorf("Catalog.Source = %s, want embedded", cfg.Catalog.Source)
		}
		if cfg.Cache.TTL != time.Hour {
			t.Errorf("Cache.TTL = %v, want 1h", cfg.Cache.TTL)
		}
		if cfg.RateLimit.PerIP != 120 {
			t.Errorf("RateLimit.PerIP = %d, want 120", cfg.RateLimit.PerIP)
		}
		if cfg.Recommend.TopFlavors != 8 || cfg.Recommend.MaxResults != 12 || cfg.Recommend.TopRatedMax != 8 {
			t.Errorf("Recommend = %+v, want 8/12/8", cfg.Recommend)
		}
		if cfg.Recommend.TopRatedMinRating != 4 {
			t.Errorf("Recommend.TopRatedMinRating = %v, want 4", cfg.Recommend.TopRatedMinRating)
		}
		if cfg.Log.Level != "info" {
			t.Errorf("Log.Level = %s, want info", cfg.Log.Level)
		}
	})

	t.Run("loads custom values from environment variables", func(t *testing.T) {
		chdirTemp(t)
		t.Setenv("BOURBONVAULT_SERVER_PORT", "9090")
		t.Setenv("BOURBONVAULT_SERVER_ENVIRONMENT", "production")
		t.Setenv("BOURBONVAULT_DATABASE_DRIVER", "postgres")
		t.Setenv("BOURBONVAULT_DATABASE_DSN", "postgres://vault@localhost/vault?sslmode=disable")
		t.Setenv("BOURBONVAULT_SESSION_TYPE", "redis")
		t.Setenv("BOURBONVAULT_SESSION_REDIS_ADDR", "redis:6379")
		t.Setenv("BOURBONVAULT_AUTH_JWT_SECRET", "s3cret")
		t.Setenv("BOURBONVAULT_AUTH_REQUIRED", "true")
		t.Setenv("BOURBONVAULT_CACHE_TTL", "24h")
		t.Setenv("BOURBONVAULT_RATELIMIT_PER_IP", "200")
		t.Setenv("BOURBONVAULT_RECOMMEND_MAX_RESULTS", "20")

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
		if cfg.Database.Driver != "postgres" {
			t.Errorf("Database.Driver = %s, want postgres", cfg.Database.Driver)
		}
		if cfg.Session.RedisAddr != "redis:6379" {
			t.Errorf("Session.RedisAddr = %s, want redis:6379", cfg.Session.RedisAddr)
		}
		if !cfg.Auth.Required || cfg.Auth.JWTSecret != "s3cret" {
			t.Errorf("Auth = %+v, want required with secret", cfg.Auth)
		}
		if cfg.Cache.TTL != 24*time.Hour {
			t.Errorf("Cache.TTL = %v, want 24h", cfg.Cache.TTL)
		}
		if cfg.RateLimit.PerIP != 200 {
			t.Errorf("RateLimit.PerIP = %d, want 200", cfg.RateLimit.PerIP)
		}
		if cfg.Recommend.MaxResults != 20 {
			t.Errorf("Recommend.MaxResults = %d, want 20", cfg.Recommend.MaxResults)
		}
	})

	t.Run("reads config.yaml from the working directory", func(t *testing.T) {
		chdirTemp(t)
		yaml := "server:\n  port: \"7070\"\ncatalog:\n  source: file\n  path: /tmp/catalog.json\n"
		if err := os.WriteFile("config.yaml", []byte(yaml), 0644); err != nil {
			t.Fatalf("Failed to write config.yaml: %v", err)
		}

		cfg, err := Load()
		if err != nil {
			t.Fatalf("Load() error = %v, want nil", err)
		}
		if cfg.Server.Port != "7070" {
			t.Errorf("Server.Port = %s, want 7070", cfg.Server.Port)
		}
		if cfg.Catalog.Path != "/tmp/catalog.json" {
			t.Errorf("Catalog.Path = %s, want /tmp/catalog.json", cfg.Catalog.Path)
		}
	})

	t.Run("fails validation when DSN missing for postgres", func(t *testing.T) {
		chdirTemp(t)
		t.Setenv("BOURBONVAULT_DATABASE_DRIVER", "postgres")

		_, err := Load()
		if err == nil {
			t.Error("Load() error = nil, want error for missing DSN")
		}
	})

	t.Run("fails validation for invalid session type", func(t *testing.T) {
		chdirTemp(t)
		t.Setenv("BOURBONVAULT_SESSION_TYPE", "invalid")

		_, err := Load()
		if err == nil {
			t.Error("Load() error = nil, want error for invalid session type")
		}
	})

	t.Run("fails validation when auth required without secret", func(t *testing.T) {
		chdirTemp(t)
		t.Setenv("BOURBONVAULT_AUTH_REQUIRED", "true")

		_, err := Load()
		if err == nil {
			t.Error("Load() error = nil, want error for missing JWT secret")
		}
		if err != nil && err.Error() != "invalid configuration: JWT secret is required when auth is required (set BOURBONVAULT_AUTH_JWT_SECRET)" {
			t.Errorf("Load() error = %v, want 'JWT secret is required'", err)
		}
	})
}

func TestLoadEnvFile(t *testing.T) {
	t.Run("returns nil when .env file doesn't exist", func(t *testing.T) {
		chdirTemp(t)

		err := loadEnvFile()
		if err != nil {
			t.Errorf("loadEnvFile() error = %v, want nil when file doesn't exist", err)
		}
	})

	t.Run("loads variables from .env file", func(t *testing.T) {
		chdirTemp(t)

		envContent := `
# Comment line
TEST_VAR_1=value1
TEST_VAR_2=value2

# Another comment
TEST_VAR_3=value3
`
		if err := os.WriteFile(".env", []byte(envContent), 0644); err != nil {
			t.Fatalf("Failed to create test .env file: %v", err)
		}
		t.Cleanup(func() {
			os.Unsetenv("TEST_VAR_1")
			os.Unsetenv("TEST_VAR_2")
			os.Unsetenv("TEST_VAR_3")
		})

		if err := loadEnvFile(); err != nil {
			t.Fatalf("loadEnvFile() error = %v, want nil", err)
		}

		if os.Getenv("TEST_VAR_1") != "value1" {
			t.Errorf("TEST_VAR_1 = %s, want value1", os.Getenv("TEST_VAR_1"))
		}
		if os.Getenv("TEST_VAR_2") != "value2" {
			t.Errorf("TEST_VAR_2 = %s, want value2", os.Getenv("TEST_VAR_2"))
		}
		if os.Getenv("TEST_VAR_3") != "value3" {
			t.Errorf("TEST_VAR_3 = %s, want value3", os.Getenv("TEST_VAR_3"))
		}
	})

	t.Run("doesn't override existing environment variables", func(t *testing.T) {
		chdirTemp(t)
		t.Setenv("TEST_OVERRIDE", "existing-value")

		if err := os.WriteFile(".env", []byte("TEST_OVERRIDE=new-value"), 0644); err != nil {
			t.Fatalf("Failed to create test .env file: %v", err)
		}

		if err := loadEnvFile(); err != nil {
			t.Fatalf("loadEnvFile() error = %v, want nil", err)
		}

		if os.Getenv("TEST_OVERRIDE") != "existing-value" {
			t.Errorf("TEST_OVERRIDE = %s, want existing-value (should not override)", os.Getenv("TEST_OVERRIDE"))
		}
	})

	t.Run("settings in .env reach Load", func(t *testing.T) {
		chdirTemp(t)
		if err := os.WriteFile(".env", []byte("BOURBONVAULT_LOG_LEVEL=debug\n"), 0644); err != nil {
			t.Fatalf("Failed to create test .env file: %v", err)
		}
		t.Cleanup(func() { os.Unsetenv("BOURBONVAULT_LOG_LEVEL") })

		cfg, err := Load()
		if err != nil {
			t.Fatalf("Load() error = %v, want nil", err)
		}
		if cfg.Log.Level != "debug" {
			t.Errorf("Log.Level = %s, want debug", cfg.Log.Level)
		}
	})
}

func TestValidate(t *testing.T) {
	valid := func() *Config {
		return &Config{
			Database: DatabaseConfig{Driver: "memory"},
			Session:  SessionConfig{Type: "memory"},
			Cache:    CacheConfig{Type: "memory"},
			Catalog:  CatalogConfig{Source: "embedded"},
		}
	}

	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{"minimal config", func(*Config) {}, false},
		{"postgres with DSN", func(c *Config) { c.Database = DatabaseConfig{Driver: "postgres", DSN: "postgres://x"} }, false},
		{"postgres without DSN", func(c *Config) { c.Database.Driver = "postgres" }, true},
		{"unknown database driver", func(c *Config) { c.Database.Driver = "sqlite" }, true},
		{"redis session with address", func(c *Config) { c.Session = SessionConfig{Type: "redis", RedisAddr: "localhost:6379"} }, false},
		{"redis session without address", func(c *Config) { c.Session.Type = "redis" }, true},
		{"redis cache without address", func(c *Config) { c.Cache.Type = "redis" }, true},
		{"invalid cache type", func(c *Config) { c.Cache.Type = "invalid-type" }, true},
		{"file catalog without path", func(c *Config) { c.Catalog.Source = "file" }, true},
		{"remote catalog with URL", func(c *Config) { c.Catalog = CatalogConfig{Source: "remote", BaseURL: "http://catalog"} }, false},
		{"remote catalog without URL", func(c *Config) { c.Catalog.Source = "remote" }, true},
		{"unknown catalog source", func(c *Config) { c.Catalog.Source = "ftp" }, true},
		{"auth required without secret", func(c *Config) { c.Auth.Required = true }, true},
		{"auth required with secret", func(c *Config) { c.Auth = AuthConfig{Required: true, JWTSecret: "x"} }, false},
		{"negative rate limit", func(c *Config) { c.RateLimit.PerIP = -1 }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid()
			tt.mutate(cfg)

			err := validate(cfg)
			if (err != nil) != tt.wantErr {
				t.Errorf("validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}
