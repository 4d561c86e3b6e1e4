package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// StorageBackend represents the credential storage backend.
type StorageBackend string

const (
	// StorageBackendFile stores credentials in files on the local device.
	StorageBackendFile StorageBackend = "file"
	// StorageBackendRedis stores credentials in Redis (shared/dev setups).
	StorageBackendRedis StorageBackend = "redis"
)

// UnmarshalText implements encoding.TextUnmarshaler for StorageBackend.
func (b *StorageBackend) UnmarshalText(text []byte) error {
	v := strings.ToLower(string(text))
	switch v {
	case "file", "redis":
		*b = StorageBackend(v)
		return nil
	default:
		return fmt.Errorf("invalid StorageBackend: %q (valid options: file, redis)", v)
	}
}

// RedisStorageConfig contains Redis connection settings for the redis backend.
type RedisStorageConfig struct {
	Addr     string `env:"ADDR"     envDefault:"localhost:6379"`
	Password string `env:"PASSWORD" envDefault:""`
	DB       int    `env:"DB"       envDefault:"0"`
}

// StorageConfig groups credential storage configuration.
type StorageConfig struct {
	// Backend determines where credentials are persisted.
	Backend StorageBackend `env:"BACKEND" envDefault:"file"`

	// Dir is the directory for the file backend. Empty means a
	// per-user default under the OS config directory.
	Dir string `env:"DIR"`

	// Redis connection settings (used when Backend=redis).
	Redis RedisStorageConfig `envPrefix:"REDIS_"`
}

// Sanitize applies guardrails to storage configuration values.
func (c *StorageConfig) Sanitize() {
	if c.Backend == "" {
		c.Backend = StorageBackendFile
	}
	if c.Dir == "" {
		c.Dir = defaultCredentialDir()
	}
}

func defaultCredentialDir() string {
	base, err := os.UserConfigDir()
	if err != nil {
		return ".account-client"
	}
	return filepath.Join(base, "account-client")
}
