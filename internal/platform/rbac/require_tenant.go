// Package rbac checks tenant access and roles against the cached user summary before any request is sent.
package rbac

import (
	"context"
	"strings"

	"github.com/cygnusb/klubraum-api/internal/apierror"
	"github.com/cygnusb/klubraum-api/internal/policy/engine"
	userdomain "github.com/cygnusb/klubraum-api/internal/user/domain"
)

// RequireTenant ensures tenantID is one of the user's clubs for action.
// Returns PreconditionFailed on denial or when the policy cannot be evaluated.
func RequireTenant(ctx context.Context, eval engine.Evaluator, summary *userdomain.Summary, action, tenantID string) error {
	return authorize(ctx, eval, buildInput(summary, action, tenantID))
}

func buildInput(summary *userdomain.Summary, action, tenantID string) engine.Input {
	in := engine.Input{Action: action, TenantID: tenantID}
	if summary == nil {
		return in
	}
	in.TenantKnown = summary.Tenants.Has(tenantID)
	_, in.Member = summary.Memberships[tenantID]
	in.Roles = summary.User.Memberships[tenantID].Strings()
	return in
}

func authorize(ctx context.Context, eval engine.Evaluator, in engine.Input) error {
	d, err := eval.Evaluate(ctx, in)
	if err != nil {
		return apierror.PreconditionFailed("authorization policy: %v", err)
	}
	if !d.Allowed {
		return apierror.PreconditionFailed("%s: %s", in.Action, strings.Join(d.Reasons, "; "))
	}
	return nil
}
