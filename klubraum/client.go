// Package klubraum is a session-oriented client for the Klubraum club-management API.
//
// A Client logs a user in, caches the auth token and the user's club memberships,
// and lists members, invites members in bulk, and requests public memberships.
// Tenant and role preconditions are checked locally before any request is sent.
// A Client is meant to be used by one goroutine at a time.
package klubraum

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"net/url"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/metric/noop"

	"github.com/cygnusb/klubraum-api/internal/apiclient"
	"github.com/cygnusb/klubraum-api/internal/apierror"
	"github.com/cygnusb/klubraum-api/internal/invite"
	"github.com/cygnusb/klubraum-api/internal/organization/resolver"
	"github.com/cygnusb/klubraum-api/internal/platform/rbac"
	"github.com/cygnusb/klubraum-api/internal/policy/engine"
	"github.com/cygnusb/klubraum-api/internal/security"
	sessiondomain "github.com/cygnusb/klubraum-api/internal/session/domain"
	"github.com/cygnusb/klubraum-api/internal/telemetry"
	userdomain "github.com/cygnusb/klubraum-api/internal/user/domain"
)

const (
	pathLogin            = "/user/password/login"
	pathSummary          = "/user/current/summary"
	pathUserList         = "/user/list"
	pathProfileList      = "/user/profile/list"
	pathPublicMembership = "/user/membershipRequest/public"
	pathBatchInvite      = "/user/batchInvite"

	instrumentationName = "github.com/cygnusb/klubraum-api/klubraum"
)

// Client talks to one Klubraum API on behalf of one user session.
type Client struct {
	api      *apiclient.Client
	session  sessiondomain.Session
	policy   engine.Evaluator
	decoder  StreamDecoder
	emitter  EventEmitter
	language string

	inviteResults metric.Int64Counter

	// set by NewFromConfig
	shutdown func(context.Context) error
	drain    time.Duration
}

// New returns a logged-out Client. It fails only when a module passed via WithPolicyModules does not compile.
func New(opts ...Option) (*Client, error) {
	o := options{language: DefaultInviteLanguage}
	for _, opt := range opts {
		opt(&o)
	}
	if o.decoder == nil {
		o.decoder = invite.BoundaryDecoder{}
	}
	if o.language == "" {
		o.language = DefaultInviteLanguage
	}
	policy, err := engine.NewOPAEvaluator(context.Background(), o.policyModules...)
	if err != nil {
		return nil, fmt.Errorf("klubraum: %w", err)
	}
	mp := o.api.MeterProvider
	if mp == nil {
		mp = otel.GetMeterProvider()
	}
	inviteResults, err := mp.Meter(instrumentationName).Int64Counter("klubraum.invite.results",
		metric.WithDescription("Batch invite results by status code"),
		metric.WithUnit("{recipient}"),
	)
	if err != nil {
		log.Printf("klubraum: invite results counter: %v", err)
		inviteResults, _ = noop.NewMeterProvider().Meter(instrumentationName).Int64Counter("klubraum.invite.results")
	}
	return &Client{
		api:           apiclient.New(o.api),
		policy:        policy,
		decoder:       o.decoder,
		emitter:       o.emitter,
		language:      o.language,
		inviteResults: inviteResults,
	}, nil
}

type loginRequest struct {
	LoginID  string `json:"loginId"`
	Password string `json:"password"`
}

type loginResponse struct {
	AuthToken string `json:"authToken"`
}

// Login authenticates and then fetches the user summary. If the summary fetch fails its
// error is returned and the session stays authenticated but summary-less: tenant-bearing
// calls fail with PreconditionFailed until FetchCurrentUserSummary succeeds.
// A failed login leaves the previous session untouched.
func (c *Client) Login(ctx context.Context, loginID, password string) error {
	var resp loginResponse
	err := c.api.SendJSON(ctx, apiclient.Request{
		Method: http.MethodPost,
		Path:   pathLogin,
		Body:   loginRequest{LoginID: loginID, Password: password},
	}, &resp)
	if err != nil {
		return err
	}
	if resp.AuthToken == "" {
		return apierror.DecodeFailure("login response has no authToken", nil)
	}
	c.session.Begin(resp.AuthToken)
	telemetry.EmitAsync(c.emitter, ctx, telemetry.NewEvent(telemetry.EventLogin, "", "", nil))

	if _, err := c.FetchCurrentUserSummary(ctx); err != nil {
		log.Printf("klubraum: login succeeded but summary refresh failed: %v", err)
		return err
	}
	return nil
}

// FetchCurrentUserSummary reloads and caches the user summary. A summary whose memberships
// reference tenants it does not list fails with DecodeFailure and the cached one is kept.
// The returned summary belongs to the caller; the client caches its own copy.
func (c *Client) FetchCurrentUserSummary(ctx context.Context) (*UserSummary, error) {
	token, err := c.session.RequireLogin()
	if err != nil {
		return nil, err
	}
	var summary userdomain.Summary
	err = c.api.SendJSON(ctx, apiclient.Request{Method: http.MethodGet, Path: pathSummary, AuthToken: token}, &summary)
	if err != nil {
		return nil, err
	}
	if err := summary.Validate(); err != nil {
		return nil, apierror.DecodeFailure("user summary", err)
	}
	c.session.SetSummary(&summary)
	telemetry.EmitAsync(c.emitter, ctx, telemetry.NewEvent(telemetry.EventSummaryRefreshed, "", summary.User.UserID,
		map[string]int{"tenants": summary.Tenants.Len()}))
	return &summary, nil
}

// ListUsers returns the members of tenantID. An empty tenantID selects the user's only club.
func (c *Client) ListUsers(ctx context.Context, tenantID string) ([]UserRecord, error) {
	token, tenantID, err := c.authorizeTenant(ctx, engine.ActionListUsers, tenantID)
	if err != nil {
		return nil, err
	}
	users := []UserRecord{}
	err = c.api.SendJSON(ctx, apiclient.Request{
		Method:    http.MethodGet,
		Path:      pathUserList,
		Query:     url.Values{"tenantId": {tenantID}},
		AuthToken: token,
	}, &users)
	if err != nil {
		return nil, err
	}
	return users, nil
}

// ListUserProfiles returns the member profiles of tenantID. An empty tenantID selects the user's only club.
func (c *Client) ListUserProfiles(ctx context.Context, tenantID string, opts ...ProfileOption) ([]UserProfile, error) {
	var q profileQuery
	for _, opt := range opts {
		opt(&q)
	}
	token, tenantID, err := c.authorizeTenant(ctx, engine.ActionListUserProfiles, tenantID)
	if err != nil {
		return nil, err
	}
	query := url.Values{"tenantId": {tenantID}}
	if !q.updatedSince.IsZero() {
		query.Set("updateDateTime", q.updatedSince.UTC().Format(profileTimeLayout))
	}
	profiles := []UserProfile{}
	err = c.api.SendJSON(ctx, apiclient.Request{
		Method:    http.MethodGet,
		Path:      pathProfileList,
		Query:     query,
		AuthToken: token,
	}, &profiles)
	if err != nil {
		return nil, err
	}
	return profiles, nil
}

type publicMembershipRequest struct {
	LoginID string `json:"loginId"`
}

type publicMembershipResponse struct {
	Success bool `json:"success"`
}

// RequestPublicMembership asks to join the club identified by publicToken. It does not
// use the session; publicToken is sent as the auth token.
func (c *Client) RequestPublicMembership(ctx context.Context, email, publicToken string) (bool, error) {
	if publicToken == "" {
		return false, apierror.PreconditionFailed("public token required")
	}
	var resp publicMembershipResponse
	err := c.api.SendJSON(ctx, apiclient.Request{
		Method:    http.MethodPost,
		Path:      pathPublicMembership,
		Body:      publicMembershipRequest{LoginID: email},
		AuthToken: publicToken,
	}, &resp)
	if err != nil {
		return false, err
	}
	return resp.Success, nil
}

// BatchInvite invites emails into tenantID and returns one result per recipient in the
// order the server sent them. The caller must hold the Administrator role in the tenant;
// otherwise it fails with PreconditionFailed before any request. An empty language uses
// the client default; an empty tenantID selects the user's only club.
func (c *Client) BatchInvite(ctx context.Context, tenantID string, emails []string, language string) ([]InviteResult, error) {
	token, tenantID, err := c.authorizeTenant(ctx, engine.ActionBatchInvite, tenantID)
	if err != nil {
		return nil, err
	}
	if language == "" {
		language = c.language
	}
	if emails == nil {
		emails = []string{}
	}
	resp, err := c.api.Send(ctx, apiclient.Request{
		Method:    http.MethodPost,
		Path:      pathBatchInvite,
		Query:     url.Values{"tenantId": {tenantID}},
		Body:      invite.Request{LoginIDs: emails, Language: language},
		AuthToken: token,
	})
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	results, err := c.decoder.Decode(resp.Body)
	if err != nil {
		return nil, err
	}
	for _, r := range results {
		c.inviteResults.Add(ctx, 1, metric.WithAttributes(
			attribute.String("tenant.id", tenantID),
			attribute.Int("invite.status", r.Status),
		))
	}
	telemetry.EmitAsync(c.emitter, ctx, telemetry.NewEvent(telemetry.EventBatchInvite, tenantID, c.userID(), map[string]any{
		"requested": len(emails),
		"results":   len(results),
		"language":  language,
	}))
	return results, nil
}

// Logout forgets the token and summary. It never fails and may be called repeatedly.
func (c *Client) Logout() {
	_, had := c.session.AuthToken()
	userID := c.userID()
	c.session.Clear()
	if had {
		telemetry.EmitAsync(c.emitter, context.Background(), telemetry.NewEvent(telemetry.EventLogout, "", userID, nil))
	}
}

// authorizeTenant resolves tenantID (implicitly when empty) and checks the policy for action.
// It returns the session token and the resolved id.
func (c *Client) authorizeTenant(ctx context.Context, action, tenantID string) (string, string, error) {
	token, err := c.session.RequireLogin()
	if err != nil {
		return "", "", err
	}
	summary, err := c.session.Summary()
	if err != nil {
		return "", "", err
	}
	if tenantID == "" {
		if tenantID, err = resolver.Single(summary.Tenants); err != nil {
			return "", "", err
		}
	}
	if action == engine.ActionBatchInvite {
		err = rbac.RequireTenantAdmin(ctx, c.policy, summary, tenantID)
	} else {
		err = rbac.RequireTenant(ctx, c.policy, summary, action, tenantID)
	}
	if err != nil {
		return "", "", err
	}
	return token, tenantID, nil
}

func (c *Client) userID() string {
	summary, err := c.session.Summary()
	if err != nil {
		return ""
	}
	return summary.User.UserID
}

// TenantIDFromName returns the id of the first club, in server order, named exactly name.
func (c *Client) TenantIDFromName(name string) (string, bool, error) {
	tenants, err := c.session.Tenants()
	if err != nil {
		return "", false, err
	}
	id, ok := resolver.ByName(tenants, name)
	return id, ok, nil
}

// TenantID returns the user's club id when there is exactly one; otherwise AmbiguousTenant.
func (c *Client) TenantID() (string, error) {
	tenants, err := c.session.Tenants()
	if err != nil {
		return "", err
	}
	return resolver.Single(tenants)
}

// AuthToken returns the session token, or false when logged out.
func (c *Client) AuthToken() (string, bool) { return c.session.AuthToken() }

// LoginComplete reports whether the password login succeeded and has not been
// logged out. It stays true when the summary fetch after login failed; Summary
// then returns PreconditionFailed until FetchCurrentUserSummary succeeds.
func (c *Client) LoginComplete() bool { return c.session.LoginComplete() }

// Summary returns a copy of the cached user summary.
func (c *Client) Summary() (*UserSummary, error) { return c.session.Summary() }

// Tenants returns the user's clubs (id → name) in server order.
func (c *Client) Tenants() (Tenants, error) { return c.session.Tenants() }

// Memberships returns a copy of the caller's membership details per tenant.
func (c *Client) Memberships() (map[string]TenantMembership, error) {
	return c.session.Memberships()
}

// UserMemberships returns a copy of the caller's roles per tenant. Changing it
// does not affect authorization.
func (c *Client) UserMemberships() (TenantRoles, error) { return c.session.UserMemberships() }

// TokenExpiry returns the token's exp claim when the server issued a JWT. The value is
// read without verifying the signature and is informational only.
func (c *Client) TokenExpiry() (time.Time, bool) {
	token, ok := c.session.AuthToken()
	if !ok {
		return time.Time{}, false
	}
	return security.TokenExpiry(token)
}
