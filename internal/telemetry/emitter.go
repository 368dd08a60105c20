package telemetry

import (
	"context"
	"encoding/json"
	"log"
	"time"

	"github.com/google/uuid"
)

// Event types emitted by the client.
const (
	EventLogin            = "login"
	EventLogout           = "logout"
	EventSummaryRefreshed = "summary_refreshed"
	EventBatchInvite      = "batch_invite"
)

// SourceClient is the Source of every event emitted by the Klubraum client.
const SourceClient = "klubraum-client"

// Event is a single client-side telemetry event. TenantID and UserID are optional.
type Event struct {
	ID        string
	TenantID  string
	UserID    string
	EventType string
	Source    string
	Metadata  []byte // JSON
	CreatedAt time.Time
}

// NewEvent builds an Event with a fresh ID and the current time. metadata is JSON-encoded;
// nil metadata leaves the body empty.
func NewEvent(eventType, tenantID, userID string, metadata any) *Event {
	e := &Event{
		ID:        uuid.NewString(),
		TenantID:  tenantID,
		UserID:    userID,
		EventType: eventType,
		Source:    SourceClient,
		CreatedAt: time.Now().UTC(),
	}
	if metadata != nil {
		b, err := json.Marshal(metadata)
		if err != nil {
			log.Printf("telemetry: encode %s metadata: %v", eventType, err)
		} else {
			e.Metadata = b
		}
	}
	return e
}

// EventEmitter emits telemetry events (e.g. to OTel Logs). Best-effort; callers log and ignore errors.
type EventEmitter interface {
	Emit(ctx context.Context, event *Event) error
}
