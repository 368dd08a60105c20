// Package apiclient issues requests against the Klubraum HTTP API: it builds
// versioned URLs, attaches protocol headers, and maps non-200 responses to
// typed errors. It never retries.
package apiclient

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"

	"github.com/cygnusb/klubraum-api/internal/apierror"
)

const (
	HeaderAPIVersion = "X-Api-Version"
	HeaderAuthToken  = "X-Auth-Token"

	DefaultBaseURL    = "https://api.klubraum.com"
	DefaultAPIVersion = "1"
	defaultTimeout    = 30 * time.Second

	apiPrefix           = "/api-v"
	instrumentationName = "github.com/cygnusb/klubraum-api/internal/apiclient"
)

// Config configures a Client. Zero values take defaults; nil providers use the otel globals.
type Config struct {
	BaseURL        string
	APIVersion     string
	HTTPClient     *http.Client
	TracerProvider trace.TracerProvider
	MeterProvider  metric.MeterProvider
}

// Client sends requests to one Klubraum API base URL.
type Client struct {
	baseURL    string
	apiVersion string
	httpClient *http.Client
	tracer     trace.Tracer
	metrics    *clientMetrics
}

// Request describes one API call. Path is relative to the versioned prefix (e.g. "/user/list").
// Body, when non-nil, is sent as JSON. AuthToken, when non-empty, is sent as X-Auth-Token.
type Request struct {
	Method    string
	Path      string
	Query     url.Values
	Body      any
	AuthToken string
}

// New returns a Client for cfg.
func New(cfg Config) *Client {
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultBaseURL
	}
	if cfg.APIVersion == "" {
		cfg.APIVersion = DefaultAPIVersion
	}
	if cfg.HTTPClient == nil {
		cfg.HTTPClient = &http.Client{Timeout: defaultTimeout}
	}
	if cfg.TracerProvider == nil {
		cfg.TracerProvider = otel.GetTracerProvider()
	}
	if cfg.MeterProvider == nil {
		cfg.MeterProvider = otel.GetMeterProvider()
	}
	return &Client{
		baseURL:    strings.TrimSuffix(cfg.BaseURL, "/"),
		apiVersion: cfg.APIVersion,
		httpClient: cfg.HTTPClient,
		tracer:     cfg.TracerProvider.Tracer(instrumentationName),
		metrics:    newClientMetrics(cfg.MeterProvider.Meter(instrumentationName)),
	}
}

// APIVersion returns the version sent in X-Api-Version.
func (c *Client) APIVersion() string { return c.apiVersion }

// URL returns the absolute URL for path and query.
func (c *Client) URL(path string, query url.Values) string {
	u := c.baseURL + apiPrefix + c.apiVersion + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}
	return u
}

// Send performs req and returns the response when the status is 200. The caller must close the body.
// Any other status is returned as an *apierror.Error and the body is closed.
func (c *Client) Send(ctx context.Context, req Request) (*http.Response, error) {
	ctx, span := c.tracer.Start(ctx, req.Method+" "+req.Path,
		trace.WithSpanKind(trace.SpanKindClient),
		trace.WithAttributes(
			attribute.String("http.request.method", req.Method),
			attribute.String("url.path", req.Path),
		),
	)
	defer span.End()

	var body io.Reader
	if req.Body != nil {
		raw, err := json.Marshal(req.Body)
		if err != nil {
			span.SetStatus(codes.Error, "encode request body")
			return nil, err
		}
		body = bytes.NewReader(raw)
	}
	httpReq, err := http.NewRequestWithContext(ctx, req.Method, c.URL(req.Path, req.Query), body)
	if err != nil {
		span.SetStatus(codes.Error, "build request")
		return nil, err
	}
	httpReq.Header.Set(HeaderAPIVersion, c.apiVersion)
	if req.AuthToken != "" {
		httpReq.Header.Set(HeaderAuthToken, req.AuthToken)
	}
	if req.Body != nil {
		httpReq.Header.Set("Content-Type", "application/json")
	}

	start := time.Now()
	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		c.metrics.record(ctx, req.Method, req.Path, 0, time.Since(start))
		span.RecordError(err)
		span.SetStatus(codes.Error, "transport error")
		return nil, apierror.HTTPFailure(0, err)
	}
	c.metrics.record(ctx, req.Method, req.Path, resp.StatusCode, time.Since(start))
	span.SetAttributes(attribute.Int("http.response.status_code", resp.StatusCode))

	if err := checkStatus(resp); err != nil {
		resp.Body.Close()
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}
	return resp, nil
}

// SendJSON performs req and decodes the single JSON document in the response into out.
// A nil out discards the body.
func (c *Client) SendJSON(ctx context.Context, req Request, out any) error {
	resp, err := c.Send(ctx, req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if out == nil {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return apierror.DecodeFailure(req.Method+" "+req.Path, err)
	}
	return nil
}
