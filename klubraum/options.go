package klubraum

import (
	"net/http"
	"time"

	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"

	"github.com/cygnusb/klubraum-api/internal/apiclient"
)

// DefaultInviteLanguage is the BatchInvite language used when none is given.
const DefaultInviteLanguage = "de"

type options struct {
	api           apiclient.Config
	decoder       StreamDecoder
	emitter       EventEmitter
	language      string
	policyModules []string
}

// Option configures a Client.
type Option func(*options)

// WithBaseURL overrides the API host (default https://api.klubraum.com).
func WithBaseURL(u string) Option {
	return func(o *options) { o.api.BaseURL = u }
}

// WithAPIVersion overrides the API version (default "1").
func WithAPIVersion(v string) Option {
	return func(o *options) { o.api.APIVersion = v }
}

// WithHTTPClient sets the HTTP client. The default has a 30s timeout.
func WithHTTPClient(c *http.Client) Option {
	return func(o *options) { o.api.HTTPClient = c }
}

// WithDecoder replaces the BatchInvite body decoder.
func WithDecoder(d StreamDecoder) Option {
	return func(o *options) { o.decoder = d }
}

// WithEventEmitter receives login, logout, summary and invite events.
func WithEventEmitter(e EventEmitter) Option {
	return func(o *options) { o.emitter = e }
}

func WithTracerProvider(tp trace.TracerProvider) Option {
	return func(o *options) { o.api.TracerProvider = tp }
}

func WithMeterProvider(mp metric.MeterProvider) Option {
	return func(o *options) { o.api.MeterProvider = mp }
}

// WithDefaultLanguage sets the language BatchInvite uses when called with "".
func WithDefaultLanguage(lang string) Option {
	return func(o *options) { o.language = lang }
}

// WithPolicyModules adds Rego modules (package klubraum.authz) whose deny rules
// are checked in addition to the built-in tenant and role preconditions.
func WithPolicyModules(modules ...string) Option {
	return func(o *options) { o.policyModules = append(o.policyModules, modules...) }
}

// ProfileOption narrows ListUserProfiles.
type ProfileOption func(*profileQuery)

type profileQuery struct {
	updatedSince time.Time
}

// profileTimeLayout matches the server's updateDateTime values, e.g. 2023-01-05T15:25:30.494Z.
const profileTimeLayout = "2006-01-02T15:04:05.000Z"

// WithUpdatedSince returns only profiles updated at or after t.
func WithUpdatedSince(t time.Time) ProfileOption {
	return func(q *profileQuery) { q.updatedSince = t }
}
