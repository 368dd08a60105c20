// Package resolver picks the tenant (club) an operation runs against.
package resolver

import (
	"github.com/cygnusb/klubraum-api/internal/apierror"
	orgdomain "github.com/cygnusb/klubraum-api/internal/organization/domain"
)

// ByName returns the first tenant id, in server order, whose name equals name exactly.
func ByName(tenants orgdomain.Tenants, name string) (string, bool) {
	for _, id := range tenants.IDs() {
		if n, _ := tenants.Name(id); n == name {
			return id, true
		}
	}
	return "", false
}

// Single returns the only tenant id when the user belongs to exactly one club.
// Zero or several tenants yield AmbiguousTenant; the caller must pick one by name.
func Single(tenants orgdomain.Tenants) (string, error) {
	if tenants.Len() != 1 {
		return "", apierror.AmbiguousTenant(tenants.Len())
	}
	return tenants.IDs()[0], nil
}
