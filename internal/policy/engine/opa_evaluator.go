package engine

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"github.com/open-policy-agent/opa/v1/ast"
	"github.com/open-policy-agent/opa/v1/rego"
)

const denyQuery = "data.klubraum.authz.deny"

// defaultRegoPolicy encodes the client-side preconditions: the tenant must be one
// of the user's clubs, and batch invites additionally need a membership entry and
// the Administrator role.
const defaultRegoPolicy = `package klubraum.authz

deny contains msg if {
	not input.tenant.known
	msg := sprintf("tenant %q is not one of the user's clubs", [input.tenant.id])
}

deny contains msg if {
	input.action == "batch_invite"
	input.tenant.known
	not input.tenant.member
	msg := sprintf("no membership entry for tenant %q", [input.tenant.id])
}

deny contains msg if {
	input.action == "batch_invite"
	input.tenant.member
	not is_admin
	msg := sprintf("Administrator role required in tenant %q", [input.tenant.id])
}

is_admin if {
	input.tenant.roles[_] == "Administrator"
}
`

// OPAEvaluator evaluates the klubraum.authz Rego policy in-process.
type OPAEvaluator struct {
	query rego.PreparedEvalQuery
}

// NewOPAEvaluator compiles the default policy plus any extra modules. Extra modules
// must declare package klubraum.authz; their deny rules add to the defaults.
func NewOPAEvaluator(ctx context.Context, extraModules ...string) (*OPAEvaluator, error) {
	modules := map[string]string{"policy_0.rego": defaultRegoPolicy}
	for i, m := range extraModules {
		modules[fmt.Sprintf("policy_%d.rego", i+1)] = m
	}
	compiler, err := ast.CompileModules(modules)
	if err != nil {
		return nil, fmt.Errorf("compile policies: %w", err)
	}
	query, err := rego.New(
		rego.Query(denyQuery),
		rego.Compiler(compiler),
	).PrepareForEval(ctx)
	if err != nil {
		return nil, fmt.Errorf("prepare policy query: %w", err)
	}
	return &OPAEvaluator{query: query}, nil
}

// Evaluate runs the policy for in. An evaluation error or an empty result is returned as an error;
// callers treat that as a denial.
func (e *OPAEvaluator) Evaluate(ctx context.Context, in Input) (Decision, error) {
	roles := make([]interface{}, len(in.Roles))
	for i, r := range in.Roles {
		roles[i] = r
	}
	input := map[string]interface{}{
		"action": in.Action,
		"tenant": map[string]interface{}{
			"id":     in.TenantID,
			"known":  in.TenantKnown,
			"member": in.Member,
			"roles":  roles,
		},
	}
	rs, err := e.query.Eval(ctx, rego.EvalInput(input))
	if err != nil {
		return Decision{}, fmt.Errorf("eval policy: %w", err)
	}
	if len(rs) == 0 || len(rs[0].Expressions) == 0 {
		return Decision{}, errors.New("policy query returned no result")
	}
	set, ok := rs[0].Expressions[0].Value.([]interface{})
	if !ok {
		return Decision{}, fmt.Errorf("policy deny has unexpected type %T", rs[0].Expressions[0].Value)
	}
	reasons := make([]string, 0, len(set))
	for _, v := range set {
		s, ok := v.(string)
		if !ok {
			return Decision{}, fmt.Errorf("policy deny reason has unexpected type %T", v)
		}
		reasons = append(reasons, s)
	}
	sort.Strings(reasons)
	return Decision{Allowed: len(reasons) == 0, Reasons: reasons}, nil
}
