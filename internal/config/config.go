// Package config loads and validates client config from env and an optional .env file using Viper.
package config

import (
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/spf13/viper"
)

const defaultHTTPTimeout = 30 * time.Second

// Config holds client configuration loaded from the environment.
type Config struct {
	// BaseURL is the Klubraum API host without the /api-v{n} prefix.
	BaseURL string `mapstructure:"KLUBRAUM_BASE_URL"`
	// APIVersion is sent as X-Api-Version and used in the /api-v{n} path segment.
	APIVersion string `mapstructure:"KLUBRAUM_API_VERSION"`
	// HTTPTimeoutRaw is the transport timeout as a duration string (e.g. "30s"); see HTTPTimeout.
	HTTPTimeoutRaw string `mapstructure:"KLUBRAUM_HTTP_TIMEOUT"`
	// InviteLanguage is the BatchInvite language used when the caller passes none.
	InviteLanguage string `mapstructure:"KLUBRAUM_INVITE_LANGUAGE"`

	// OTLPEndpoint is the OTLP gRPC collector; empty disables export.
	OTLPEndpoint string `mapstructure:"OTEL_EXPORTER_OTLP_ENDPOINT"`
	// OTLPInsecure forces plaintext export even for https endpoints.
	OTLPInsecure bool `mapstructure:"OTEL_EXPORTER_OTLP_INSECURE"`
	// ServiceName is the OTel resource service.name.
	ServiceName string `mapstructure:"OTEL_SERVICE_NAME"`
}

// Load reads .env (if present), then builds and validates Config from the environment via Viper.
// Missing .env is ignored. Env vars override .env.
func Load() (*Config, error) {
	v := viper.New()

	v.SetConfigFile(".env")
	v.SetConfigType("env")
	_ = v.ReadInConfig() // ignore ErrConfigFileNotFound

	v.AutomaticEnv()

	v.SetDefault("KLUBRAUM_BASE_URL", "https://api.klubraum.com")
	v.SetDefault("KLUBRAUM_API_VERSION", "1")
	v.SetDefault("KLUBRAUM_HTTP_TIMEOUT", "30s")
	v.SetDefault("KLUBRAUM_INVITE_LANGUAGE", "de")
	v.SetDefault("OTEL_EXPORTER_OTLP_ENDPOINT", "")
	v.SetDefault("OTEL_EXPORTER_OTLP_INSECURE", false)
	v.SetDefault("OTEL_SERVICE_NAME", "klubraum-api-client")

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks the fields Load cannot default.
func (c *Config) Validate() error {
	u, err := url.Parse(c.BaseURL)
	if err != nil {
		return fmt.Errorf("config: KLUBRAUM_BASE_URL: %w", err)
	}
	if (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return errors.New("config: KLUBRAUM_BASE_URL must be an http or https URL with a host")
	}
	if strings.TrimSpace(c.APIVersion) == "" {
		return errors.New("config: KLUBRAUM_API_VERSION must be set")
	}
	return nil
}

// HTTPTimeout parses HTTPTimeoutRaw. Returns 30s if unset or invalid.
func (c *Config) HTTPTimeout() time.Duration {
	d, err := time.ParseDuration(c.HTTPTimeoutRaw)
	if err != nil || d <= 0 {
		return defaultHTTPTimeout
	}
	return d
}
