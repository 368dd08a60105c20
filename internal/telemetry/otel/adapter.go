package otel

import (
	"context"
	"time"

	otellog "go.opentelemetry.io/otel/log"
	sdklog "go.opentelemetry.io/otel/sdk/log"

	"github.com/cygnusb/klubraum-api/internal/telemetry"
)

// LoggerName is the instrumentation scope of emitted event records.
const LoggerName = "klubraum.telemetry"

// NewEventEmitter returns an EventEmitter that sends events as OTel log records via the given LoggerProvider.
// If provider is nil, returns a no-op emitter.
func NewEventEmitter(provider *sdklog.LoggerProvider) telemetry.EventEmitter {
	if provider == nil {
		return noopEmitter{}
	}
	return NewEventEmitterWithLogger(provider.Logger(LoggerName))
}

// NewEventEmitterWithLogger wraps an existing OTel logger.
func NewEventEmitterWithLogger(logger otellog.Logger) telemetry.EventEmitter {
	if logger == nil {
		return noopEmitter{}
	}
	return &otelEmitter{logger: logger}
}

type noopEmitter struct{}

func (noopEmitter) Emit(context.Context, *telemetry.Event) error { return nil }

type otelEmitter struct {
	logger otellog.Logger
}

// Emit converts the event to an OTel log record. Empty fields are not added as attributes.
func (e *otelEmitter) Emit(ctx context.Context, event *telemetry.Event) error {
	if event == nil {
		return nil
	}
	rec := otellog.Record{}
	if !event.CreatedAt.IsZero() {
		rec.SetTimestamp(event.CreatedAt)
	} else {
		rec.SetTimestamp(time.Now().UTC())
	}
	if len(event.Metadata) > 0 {
		rec.SetBody(otellog.BytesValue(event.Metadata))
	}
	addString(&rec, "event_id", event.ID)
	addString(&rec, "tenant_id", event.TenantID)
	addString(&rec, "user_id", event.UserID)
	addString(&rec, "event_type", event.EventType)
	addString(&rec, "source", event.Source)
	e.logger.Emit(ctx, rec)
	return nil
}

func addString(rec *otellog.Record, key, value string) {
	if value != "" {
		rec.AddAttributes(otellog.String(key, value))
	}
}
