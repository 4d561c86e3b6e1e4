package config

import (
	"testing"
	"time"

	env "github.com/caarlos0/env/v11"
)

func TestAppConfig_Defaults(t *testing.T) {
	var cfg AppConfig
	if err := env.ParseWithOptions(&cfg, env.Options{Environment: map[string]string{}}); err != nil {
		t.Fatalf("parse config: %v", err)
	}
	cfg.Sanitize()

	if cfg.IsDev {
		t.Errorf("expected IsDev=false by default")
	}
	if cfg.API.BaseURL != "http://localhost:2222/api" {
		t.Errorf("unexpected default base URL: %q", cfg.API.BaseURL)
	}
	if cfg.API.RequestTimeout != 30*time.Second {
		t.Errorf("unexpected default timeout: %s", cfg.API.RequestTimeout)
	}
	if cfg.Storage.Backend != StorageBackendFile {
		t.Errorf("unexpected default backend: %q", cfg.Storage.Backend)
	}
	if cfg.Storage.Dir == "" {
		t.Errorf("Sanitize should resolve a default credential dir")
	}
}

func TestAppConfig_FromEnvironment(t *testing.T) {
	environment := map[string]string{
		"DEV":                    "true",
		"API_BASE_URL":           "http://192.168.0.101:2222/api",
		"API_REQUEST_TIMEOUT":    "5s",
		"STORAGE_BACKEND":        "redis",
		"STORAGE_REDIS_ADDR":     "redis.local:6379",
		"STORAGE_REDIS_PASSWORD": "secret",
		"STORAGE_REDIS_DB":       "2",
	}

	var cfg AppConfig
	if err := env.ParseWithOptions(&cfg, env.Options{Environment: environment}); err != nil {
		t.Fatalf("parse config: %v", err)
	}
	cfg.Sanitize()

	if !cfg.IsDev {
		t.Errorf("expected IsDev=true")
	}
	if cfg.API.BaseURL != "http://192.168.0.101:2222/api" {
		t.Errorf("unexpected base URL: %q", cfg.API.BaseURL)
	}
	if cfg.API.RequestTimeout != 5*time.Second {
		t.Errorf("unexpected timeout: %s", cfg.API.RequestTimeout)
	}
	if cfg.Storage.Backend != StorageBackendRedis {
		t.Errorf("unexpected backend: %q", cfg.Storage.Backend)
	}
	if cfg.Storage.Redis.Addr != "redis.local:6379" || cfg.Storage.Redis.DB != 2 {
		t.Errorf("unexpected redis config: %+v", cfg.Storage.Redis)
	}
}

func TestStorageBackend_UnmarshalText(t *testing.T) {
	tests := []struct {
		input       string
		expected    StorageBackend
		expectError bool
	}{
		{"file", StorageBackendFile, false},
		{"FILE", StorageBackendFile, false},
		{"redis", StorageBackendRedis, false},
		{"Redis", StorageBackendRedis, false},
		{"postgres", "", true},
		{"", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			var b StorageBackend
			err := b.UnmarshalText([]byte(tt.input))
			if tt.expectError {
				if err == nil {
					t.Fatalf("expected error for %q", tt.input)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if b != tt.expected {
				t.Errorf("got %q, want %q", b, tt.expected)
			}
		})
	}
}

func TestAPIConfig_SanitizeClampsTimeout(t *testing.T) {
	cfg := APIConfig{BaseURL: "http://localhost:2222/api", RequestTimeout: -1}
	cfg.Sanitize()
	if cfg.RequestTimeout != 30*time.Second {
		t.Errorf("expected timeout clamp to 30s, got %s", cfg.RequestTimeout)
	}
}
