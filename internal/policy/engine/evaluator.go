package engine

import "context"

// Actions the client authorizes before calling the API.
const (
	ActionListUsers        = "list_users"
	ActionListUserProfiles = "list_user_profiles"
	ActionBatchInvite      = "batch_invite"
)

// Input is what the policy sees about the caller and the target tenant.
type Input struct {
	Action      string
	TenantID    string
	TenantKnown bool     // tenant is a key of the summary's tenants
	Member      bool     // tenant is a key of the summary's memberships
	Roles       []string // caller's roles in the tenant
}

// Decision is the policy outcome. Reasons lists every denial, sorted.
type Decision struct {
	Allowed bool
	Reasons []string
}

// Evaluator decides whether an action on a tenant is allowed.
type Evaluator interface {
	Evaluate(ctx context.Context, in Input) (Decision, error)
}
