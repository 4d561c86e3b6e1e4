package config

import "time"

// APIConfig contains the remote account service configuration.
type APIConfig struct {
	// BaseURL is the account service's network address including the API
	// path prefix.
	BaseURL string `env:"BASE_URL" envDefault:"http://localhost:2222/api"`

	// RequestTimeout bounds the full request/response round trip.
	RequestTimeout time.Duration `env:"REQUEST_TIMEOUT" envDefault:"30s"`
}

// Sanitize applies guardrails to API configuration values.
func (c *APIConfig) Sanitize() {
	if c.RequestTimeout <= 0 {
		c.RequestTimeout = 30 * time.Second
	}
}
