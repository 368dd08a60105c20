package klubraum

import (
	"github.com/cygnusb/klubraum-api/internal/config"
	"github.com/cygnusb/klubraum-api/internal/invite"
	membershipdomain "github.com/cygnusb/klubraum-api/internal/membership/domain"
	orgdomain "github.com/cygnusb/klubraum-api/internal/organization/domain"
	"github.com/cygnusb/klubraum-api/internal/telemetry"
	userdomain "github.com/cygnusb/klubraum-api/internal/user/domain"
)

type (
	// UserSummary is the cached response of GET /user/current/summary.
	UserSummary = userdomain.Summary
	// UserRecord is one entry of ListUsers.
	UserRecord = userdomain.Record
	// UserProfile is one entry of ListUserProfiles.
	UserProfile = userdomain.Profile

	// Tenants maps tenant id to club name in server order.
	Tenants          = orgdomain.Tenants
	TenantMembership = orgdomain.TenantMembership
	Role             = membershipdomain.Role
	Roles            = membershipdomain.Roles
	TenantRoles      = membershipdomain.TenantRoles

	// InviteResult is the server's status for one invited login id.
	InviteResult = invite.Result
	// StreamDecoder decodes a BatchInvite response body. BoundaryDecoder is the default.
	StreamDecoder   = invite.StreamDecoder
	BoundaryDecoder = invite.BoundaryDecoder

	// Event and EventEmitter let callers receive client telemetry events.
	Event        = telemetry.Event
	EventEmitter = telemetry.EventEmitter

	// Config is the environment-driven client configuration; see LoadConfig.
	Config = config.Config
)

const RoleAdministrator = membershipdomain.RoleAdministrator

// StatusByLoginID indexes BatchInvite results by login id.
func StatusByLoginID(results []InviteResult) map[string]int {
	return invite.StatusByLoginID(results)
}

// LoadConfig reads KLUBRAUM_* and OTEL_* settings from the environment and an optional .env file.
func LoadConfig() (*Config, error) {
	return config.Load()
}
