package rbac

import (
	"context"

	"github.com/cygnusb/klubraum-api/internal/policy/engine"
	userdomain "github.com/cygnusb/klubraum-api/internal/user/domain"
)

// RequireTenantAdmin ensures the user may batch-invite into tenantID: the tenant is
// listed in tenants and memberships, and the user holds the Administrator role there.
func RequireTenantAdmin(ctx context.Context, eval engine.Evaluator, summary *userdomain.Summary, tenantID string) error {
	return authorize(ctx, eval, buildInput(summary, engine.ActionBatchInvite, tenantID))
}
