package auth

import "github.com/jafarshop/storefront/internal/domain"

// Session exposes the authenticated customer to the checkout flow. A nil
// user means the visitor is anonymous and must log in before checking out.
type Session interface {
	CurrentUser() *domain.User
}

// Static is a Session backed by a fixed user, used by the server wiring and
// tests.
type Static struct {
	user *domain.User
}

// NewStatic creates a session for the given user; pass nil for an
// anonymous visitor.
func NewStatic(user *domain.User) *Static {
	return &Static{user: user}
}

// CurrentUser returns the session's user, or nil when anonymous
func (s *Static) CurrentUser() *domain.User {
	return s.user
}
