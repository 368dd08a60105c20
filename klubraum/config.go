package klubraum

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/cygnusb/klubraum-api/internal/apierror"
	"github.com/cygnusb/klubraum-api/internal/telemetry"
	telemetryotel "github.com/cygnusb/klubraum-api/internal/telemetry/otel"
)

// NewFromConfig builds a Client from cfg, including OTLP telemetry when cfg names a
// collector. opts are applied after the config-derived options. Call Close when done.
func NewFromConfig(ctx context.Context, cfg *Config, opts ...Option) (*Client, error) {
	if cfg == nil {
		return nil, apierror.PreconditionFailed("config required")
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	providers, err := telemetryotel.NewProviders(ctx, cfg.OTLPEndpoint, cfg.ServiceName, cfg.OTLPInsecure)
	if err != nil {
		return nil, err
	}
	base := []Option{
		WithBaseURL(cfg.BaseURL),
		WithAPIVersion(cfg.APIVersion),
		WithHTTPClient(&http.Client{Timeout: cfg.HTTPTimeout()}),
		WithDefaultLanguage(cfg.InviteLanguage),
		WithTracerProvider(providers.TracerProvider),
		WithMeterProvider(providers.MeterProvider),
		WithEventEmitter(telemetryotel.NewEventEmitter(providers.LoggerProvider)),
	}
	c, err := New(append(base, opts...)...)
	if err != nil {
		_ = providers.Shutdown(ctx)
		return nil, err
	}
	c.shutdown = providers.Shutdown
	if strings.TrimSpace(cfg.OTLPEndpoint) != "" {
		c.drain = telemetry.ShutdownDrainDuration
	}
	return c, nil
}

// Close flushes and stops the telemetry providers created by NewFromConfig. When exporting,
// it first waits for in-flight async events or until ctx is done. Close does not log out.
func (c *Client) Close(ctx context.Context) error {
	if c.shutdown == nil {
		return nil
	}
	if c.drain > 0 {
		t := time.NewTimer(c.drain)
		select {
		case <-t.C:
		case <-ctx.Done():
		}
		t.Stop()
	}
	shutdown := c.shutdown
	c.shutdown = nil
	return shutdown(ctx)
}
