package domain

import (
	"encoding/json"
	"fmt"

	membershipdomain "github.com/cygnusb/klubraum-api/internal/membership/domain"
	orgdomain "github.com/cygnusb/klubraum-api/internal/organization/domain"
)

type UserStatus string

const (
	UserStatusActive UserStatus = "Active"
)

// Name is a person's name as the API returns it.
type Name struct {
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
}

// User is the authenticated user as described in the current-user summary.
type User struct {
	UserID      string                       `json:"userId"`
	Email       string                       `json:"email"`
	Name        Name                         `json:"name"`
	Memberships membershipdomain.TenantRoles `json:"memberships"`
	Status      UserStatus                   `json:"userStatus"`
	AuthSeq     int                          `json:"authSeq"`
}

// Summary is the response of GET /user/current/summary. It is replaced wholesale on refresh.
type Summary struct {
	User               User                                  `json:"user"`
	Tenants            orgdomain.Tenants                     `json:"tenants"`
	Memberships        map[string]orgdomain.TenantMembership `json:"memberships"`
	Invitations        []json.RawMessage                     `json:"invitations"`
	MembershipRequests []json.RawMessage                     `json:"membershipRequests"`
}

// Clone returns a deep copy of s. Cached summaries are handed out as clones
// so callers cannot change the roles the client authorizes against.
func (s *Summary) Clone() *Summary {
	if s == nil {
		return nil
	}
	out := *s
	out.User.Memberships = s.User.Memberships.Clone()
	out.Tenants = s.Tenants.Clone()
	if s.Memberships != nil {
		out.Memberships = make(map[string]orgdomain.TenantMembership, len(s.Memberships))
		for id, m := range s.Memberships {
			out.Memberships[id] = m
		}
	}
	out.Invitations = cloneRaw(s.Invitations)
	out.MembershipRequests = cloneRaw(s.MembershipRequests)
	return &out
}

func cloneRaw(in []json.RawMessage) []json.RawMessage {
	if in == nil {
		return nil
	}
	out := make([]json.RawMessage, len(in))
	for i, msg := range in {
		out[i] = append(json.RawMessage(nil), msg...)
	}
	return out
}

// Validate checks that every tenant referenced by Memberships or User.Memberships is listed in Tenants.
func (s *Summary) Validate() error {
	for id := range s.Memberships {
		if !s.Tenants.Has(id) {
			return fmt.Errorf("membership references unknown tenant %q", id)
		}
	}
	for id := range s.User.Memberships {
		if !s.Tenants.Has(id) {
			return fmt.Errorf("user roles reference unknown tenant %q", id)
		}
	}
	return nil
}

// Record is one entry of GET /user/list.
type Record struct {
	UserID                       string     `json:"userId"`
	Email                        string     `json:"email"`
	Name                         Name       `json:"name"`
	Status                       UserStatus `json:"userStatus"`
	IsAdmin                      bool       `json:"isAdmin"`
	InvitationAcceptanceDateTime string     `json:"invitationAcceptanceDateTime,omitempty"`
	ProfileImageURL              string     `json:"profileImageUrl,omitempty"`
}

// Profile is one entry of GET /user/profile/list. Nested collections whose shape
// the client does not interpret are kept as raw JSON.
type Profile struct {
	UserID              string            `json:"userId"`
	TenantID            string            `json:"tenantId"`
	Email               string            `json:"email"`
	Gender              string            `json:"gender,omitempty"`
	NickName            string            `json:"nickName,omitempty"`
	Birthdate           string            `json:"birthdate,omitempty"`
	Roles               []json.RawMessage `json:"roles"`
	Children            []json.RawMessage `json:"children"`
	SocialMediaProfiles []json.RawMessage `json:"socialMediaProfiles"`
	UpdateDateTime      string            `json:"updateDateTime,omitempty"`
}
