package domain

// Role is a role string the server assigns to a user within a club.
type Role string

const (
	RoleAdministrator Role = "Administrator"
	RoleMember        Role = "Member"
)

// Roles is the set of roles a user holds in one club, as the server lists them.
type Roles []Role

// Has reports whether role is in the set. Comparison is exact.
func (r Roles) Has(role Role) bool {
	for _, x := range r {
		if x == role {
			return true
		}
	}
	return false
}

// Strings returns the roles as plain strings.
func (r Roles) Strings() []string {
	out := make([]string, len(r))
	for i, x := range r {
		out[i] = string(x)
	}
	return out
}

// TenantRoles maps tenantId to the roles a user holds there.
type TenantRoles map[string]Roles

// IsAdministrator reports whether the roles for tenantID include RoleAdministrator.
func (m TenantRoles) IsAdministrator(tenantID string) bool {
	roles, ok := m[tenantID]
	return ok && roles.Has(RoleAdministrator)
}

// Clone returns a copy of r that shares no backing array with it.
func (r Roles) Clone() Roles {
	if r == nil {
		return nil
	}
	out := make(Roles, len(r))
	copy(out, r)
	return out
}

// Clone returns a deep copy of m.
func (m TenantRoles) Clone() TenantRoles {
	if m == nil {
		return nil
	}
	out := make(TenantRoles, len(m))
	for id, roles := range m {
		out[id] = roles.Clone()
	}
	return out
}
