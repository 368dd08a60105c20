package domain

import (
	"sync"

	"github.com/cygnusb/klubraum-api/internal/apierror"
	membershipdomain "github.com/cygnusb/klubraum-api/internal/membership/domain"
	orgdomain "github.com/cygnusb/klubraum-api/internal/organization/domain"
	userdomain "github.com/cygnusb/klubraum-api/internal/user/domain"
)

// Session is the client's authentication state: the auth token, whether login
// completed, and the cached user summary. Only Begin, SetSummary, and Clear mutate it.
type Session struct {
	mu            sync.RWMutex
	authToken     string
	hasToken      bool
	loginComplete bool
	summary       *userdomain.Summary
}

// Begin records a successful password login. From here LoginComplete reports
// true whether or not the summary fetch that follows succeeds. Any previous
// summary is dropped; the caller fetches a fresh one next.
func (s *Session) Begin(authToken string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.authToken = authToken
	s.hasToken = true
	s.loginComplete = true
	s.summary = nil
}

// SetSummary replaces the cached summary with a copy of summary.
func (s *Session) SetSummary(summary *userdomain.Summary) {
	cp := summary.Clone()
	s.mu.Lock()
	defer s.mu.Unlock()
	s.summary = cp
}

// Clear wipes all session state. Safe to call repeatedly.
func (s *Session) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.authToken = ""
	s.hasToken = false
	s.loginComplete = false
	s.summary = nil
}

// AuthToken returns the current token, or false if none is held.
func (s *Session) AuthToken() (string, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.authToken, s.hasToken
}

// LoginComplete reports whether a password login succeeded and has not been
// cleared. It says nothing about the summary; use Summary for that.
func (s *Session) LoginComplete() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.loginComplete
}

// RequireLogin returns the auth token or PreconditionFailed when not logged in.
func (s *Session) RequireLogin() (string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if !s.loginComplete || !s.hasToken {
		return "", apierror.PreconditionFailed("login required")
	}
	return s.authToken, nil
}

// Summary returns a copy of the cached summary or PreconditionFailed if none has been fetched.
func (s *Session) Summary() (*userdomain.Summary, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.summary == nil {
		return nil, apierror.PreconditionFailed("user summary not fetched")
	}
	return s.summary.Clone(), nil
}

// Tenants returns tenantId → name from the cached summary.
func (s *Session) Tenants() (orgdomain.Tenants, error) {
	summary, err := s.Summary()
	if err != nil {
		return orgdomain.Tenants{}, err
	}
	return summary.Tenants, nil
}

// Memberships returns tenantId → membership details from the cached summary.
func (s *Session) Memberships() (map[string]orgdomain.TenantMembership, error) {
	summary, err := s.Summary()
	if err != nil {
		return nil, err
	}
	return summary.Memberships, nil
}

// UserMemberships returns the caller's own tenantId → roles mapping.
// Like the other accessors it reads a copy, so changes do not reach the session.
func (s *Session) UserMemberships() (membershipdomain.TenantRoles, error) {
	summary, err := s.Summary()
	if err != nil {
		return nil, err
	}
	return summary.User.Memberships, nil
}
