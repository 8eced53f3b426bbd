// Package access holds the pure authorization decision for the platform.
// It takes an explicit claims value and answers allow/deny; it performs no
// lookups and has no side effects.
package access

import "github.com/ucspstream/streaming-api/internal/core/domain"

// Operation names a guarded action.
type Operation int

const (
	// OpReadContent is listing or reading approved content.
	OpReadContent Operation = iota
	// OpCreateContent is creating a content record (JSON or upload).
	OpCreateContent
	// OpModerateContent is approving/rejecting content or listing pending.
	OpModerateContent
	// OpListOwnContent is reading a catalogue including unapproved items.
	// The owner id must match the caller unless the caller is admin.
	OpListOwnContent
	// OpReadProfile and OpUpdateProfile act on a user record owned by ownerID.
	OpReadProfile
	OpUpdateProfile
	// OpManageUsers is listing all users or toggling account status.
	OpManageUsers
)

// Decide evaluates the access rules in priority order and returns nil when
// the operation may proceed.
//
//  1. No claims → unauthenticated (registration and login never reach here).
//  2. Inactive account → denied everything.
//  3. Reading approved content → any authenticated role.
//  4. Creating content → artist or admin.
//  5. Moderation and user administration → admin only.
//  6. Own profile / own catalogue → resource owner or admin.
//  7. Default deny.
func Decide(claims *domain.Claims, op Operation, ownerID string) error {
	if claims == nil || claims.UserID == "" {
		return domain.ErrUnauthenticated
	}
	if !claims.Active {
		return domain.ErrAccountInactive
	}

	switch op {
	case OpReadContent:
		return nil
	case OpCreateContent:
		if domain.UploaderRole(claims.Role) {
			return nil
		}
	case OpModerateContent, OpManageUsers:
		if claims.IsAdmin() {
			return nil
		}
	case OpListOwnContent, OpReadProfile, OpUpdateProfile:
		if claims.UserID == ownerID || claims.IsAdmin() {
			return nil
		}
	}

	return domain.ErrForbidden
}
