package resolver

import (
	"errors"
	"testing"

	"github.com/cygnusb/klubraum-api/internal/apierror"
	orgdomain "github.com/cygnusb/klubraum-api/internal/organization/domain"
)

func TestByName(t *testing.T) {
	tenants := orgdomain.NewTenants(
		"t-1", "Ruderclub Nord",
		"t-2", "Ruderclub",
		"t-3", "Ruderclub",
	)
	testCases := []struct {
		name   string
		query  string
		wantID string
		wantOK bool
	}{
		{"exact match", "Ruderclub Nord", "t-1", true},
		{"first of duplicates", "Ruderclub", "t-2", true},
		{"no partial match", "Ruder", "", false},
		{"no case folding", "ruderclub", "", false},
		{"no match", "Tennisclub", "", false},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			id, ok := ByName(tenants, tc.query)
			if id != tc.wantID || ok != tc.wantOK {
				t.Errorf("ByName(%q) = %q, %v; want %q, %v", tc.query, id, ok, tc.wantID, tc.wantOK)
			}
		})
	}
}

func TestSingle(t *testing.T) {
	t.Run("one tenant", func(t *testing.T) {
		id, err := Single(orgdomain.NewTenants("t-1", "Ruderclub"))
		if err != nil {
			t.Fatalf("Single: %v", err)
		}
		if id != "t-1" {
			t.Errorf("id = %q, want t-1", id)
		}
	})

	testCases := []struct {
		name    string
		tenants orgdomain.Tenants
	}{
		{"zero tenants", orgdomain.Tenants{}},
		{"two tenants", orgdomain.NewTenants("t-1", "A", "t-2", "B")},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := Single(tc.tenants)
			if !errors.Is(err, apierror.ErrAmbiguousTenant) {
				t.Errorf("err = %v, want AmbiguousTenant", err)
			}
		})
	}
}
