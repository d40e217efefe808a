// Package config provides environment-driven configuration for caseflow.
package config

import (
	"fmt"
	"os"
	"strings"
)

// Secret wraps a sensitive string to prevent accidental logging or marshalling.
type Secret string

// String implements fmt.Stringer, returning a redacted placeholder.
func (s Secret) String() string { return "[REDACTED]" }

// GoString implements fmt.GoStringer, returning a redacted placeholder.
func (s Secret) GoString() string { return "[REDACTED]" }

// MarshalText implements encoding.TextMarshaler, returning a redacted placeholder.
func (s Secret) MarshalText() ([]byte, error) { return []byte("[REDACTED]"), nil }

// Value returns the underlying secret string.
func (s Secret) Value() string { return string(s) }

// Config holds all application configuration values.
type Config struct {
	DatabaseURL Secret
	Port        string
	ListenHost  string
	CORSOrigins []string
	LogLevel    string

	// Blob storage. When BlobEndpoint is empty the blob store is disabled
	// and document deletion skips file cleanup.
	BlobEndpoint  string
	BlobAccessKey Secret
	BlobSecretKey Secret
	BlobBucket    string
	BlobUseSSL    bool

	// WebhookSecret authenticates inbound chat webhook deliveries.
	WebhookSecret Secret
}

// Load reads configuration from environment variables with sensible defaults.
func Load() (*Config, error) {
	cfg := &Config{
		DatabaseURL:   Secret(envOrDefault("DATABASE_URL", "")),
		Port:          envOrDefault("PORT", "8080"),
		ListenHost:    envOrDefault("LISTEN_HOST", "127.0.0.1"),
		LogLevel:      envOrDefault("LOG_LEVEL", "info"),
		BlobEndpoint:  envOrDefault("BLOB_ENDPOINT", ""),
		BlobAccessKey: Secret(envOrDefault("BLOB_ACCESS_KEY", "")),
		BlobSecretKey: Secret(envOrDefault("BLOB_SECRET_KEY", "")),
		BlobBucket:    envOrDefault("BLOB_BUCKET", "caseflow-documents"),
		BlobUseSSL:    envOrDefault("BLOB_USE_SSL", "false") == "true",
		WebhookSecret: Secret(envOrDefault("WEBHOOK_SECRET", "")),
	}

	origins := envOrDefault("CORS_ORIGINS", "http://localhost:3000")
	cfg.CORSOrigins = strings.Split(origins, ",")

	for i, o := range cfg.CORSOrigins {
		cfg.CORSOrigins[i] = strings.TrimSpace(o)
	}

	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("config validation: %w", err)
	}

	return cfg, nil
}

// Addr returns the listen address in host:port format.
func (c *Config) Addr() string {
	return c.ListenHost + ":" + c.Port
}

// BlobEnabled reports whether a blob store endpoint is configured.
func (c *Config) BlobEnabled() bool {
	return c.BlobEndpoint != ""
}

func envOrDefault(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}

	return fallback
}
