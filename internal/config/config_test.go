package config

import (
	"os"
	"testing"
	"time"
)

func TestLoad_Defaults(t *testing.T) {
	os.Clearenv()

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.BaseURL != "https://api.klubraum.com" {
		t.Errorf("BaseURL = %q, want %q", cfg.BaseURL, "https://api.klubraum.com")
	}
	if cfg.APIVersion != "1" {
		t.Errorf("APIVersion = %q, want %q", cfg.APIVersion, "1")
	}
	if cfg.HTTPTimeout() != 30*time.Second {
		t.Errorf("HTTPTimeout = %v, want 30s", cfg.HTTPTimeout())
	}
	if cfg.InviteLanguage != "de" {
		t.Errorf("InviteLanguage = %q, want %q", cfg.InviteLanguage, "de")
	}
	if cfg.OTLPEndpoint != "" {
		t.Errorf("OTLPEndpoint = %q, want empty", cfg.OTLPEndpoint)
	}
	if cfg.OTLPInsecure {
		t.Error("OTLPInsecure should default to false")
	}
	if cfg.ServiceName != "klubraum-api-client" {
		t.Errorf("ServiceName = %q, want %q", cfg.ServiceName, "klubraum-api-client")
	}
}

func TestLoad_EnvVarOverride(t *testing.T) {
	os.Clearenv()
	os.Setenv("KLUBRAUM_BASE_URL", "http://localhost:8081")
	os.Setenv("KLUBRAUM_API_VERSION", "2")
	os.Setenv("KLUBRAUM_HTTP_TIMEOUT", "5s")
	os.Setenv("KLUBRAUM_INVITE_LANGUAGE", "en")
	os.Setenv("OTEL_EXPORTER_OTLP_ENDPOINT", "localhost:4317")
	os.Setenv("OTEL_EXPORTER_OTLP_INSECURE", "true")
	defer os.Clearenv()

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.BaseURL != "http://localhost:8081" {
		t.Errorf("BaseURL = %q, want %q", cfg.BaseURL, "http://localhost:8081")
	}
	if cfg.APIVersion != "2" {
		t.Errorf("APIVersion = %q, want %q", cfg.APIVersion, "2")
	}
	if cfg.HTTPTimeout() != 5*time.Second {
		t.Errorf("HTTPTimeout = %v, want 5s", cfg.HTTPTimeout())
	}
	if cfg.InviteLanguage != "en" {
		t.Errorf("InviteLanguage = %q, want %q", cfg.InviteLanguage, "en")
	}
	if cfg.OTLPEndpoint != "localhost:4317" {
		t.Errorf("OTLPEndpoint = %q, want %q", cfg.OTLPEndpoint, "localhost:4317")
	}
	if !cfg.OTLPInsecure {
		t.Error("OTLPInsecure should be true")
	}
}

func TestLoad_InvalidBaseURL(t *testing.T) {
	testCases := []struct {
		name  string
		value string
	}{
		{"no scheme", "api.klubraum.com"},
		{"ftp scheme", "ftp://api.klubraum.com"},
		{"no host", "https://"},
		{"unparseable", "http://[::1"},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			os.Clearenv()
			os.Setenv("KLUBRAUM_BASE_URL", tc.value)
			defer os.Clearenv()

			cfg, err := Load()
			if err == nil {
				t.Fatalf("Load should reject KLUBRAUM_BASE_URL=%q", tc.value)
			}
			if cfg != nil {
				t.Error("Load should return nil config on error")
			}
		})
	}
}

func TestLoad_BlankAPIVersion(t *testing.T) {
	os.Clearenv()
	os.Setenv("KLUBRAUM_API_VERSION", " ")
	defer os.Clearenv()

	if _, err := Load(); err == nil {
		t.Fatal("Load should reject a blank KLUBRAUM_API_VERSION")
	}
}

func TestHTTPTimeout_Fallback(t *testing.T) {
	testCases := []struct {
		raw  string
		want time.Duration
	}{
		{"", 30 * time.Second},
		{"invalid", 30 * time.Second},
		{"-1s", 30 * time.Second},
		{"0s", 30 * time.Second},
		{"1m", time.Minute},
	}
	for _, tc := range testCases {
		cfg := &Config{HTTPTimeoutRaw: tc.raw}
		if got := cfg.HTTPTimeout(); got != tc.want {
			t.Errorf("HTTPTimeout(%q) = %v, want %v", tc.raw, got, tc.want)
		}
	}
}
