package domain

import "errors"

var ErrUnauthenticated = errors.New("authentication required")
var ErrForbidden = errors.New("access forbidden")

// Claims is the identity carried by a verified bearer token. It is threaded
// explicitly as a parameter into every service call; nothing reads identity
// from shared or global state.
type Claims struct {
	UserID string
	Role   string
	// Active mirrors the account status at verification time. A token issued
	// before an admin deactivated the account carries Active=false here.
	Active bool
}

// IsAdmin reports whether the caller holds the admin role.
func (c *Claims) IsAdmin() bool {
	return c != nil && c.Role == RoleAdmin
}
