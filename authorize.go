package session

import "github.com/google/uuid"

type capabilityKind int

const (
	capPublic capabilityKind = iota
	capAuthenticatedAny
	capAdminOnly
	capOwnerOrAdmin
)

// Capability is a required authorization level checked by Authorize. The
// set is closed: construct values with Public, AuthenticatedAny, AdminOnly,
// or OwnerOrAdmin.
type Capability struct {
	kind    capabilityKind
	ownerID string
}

// Public always allows, authenticated or not.
func Public() Capability {
	return Capability{kind: capPublic}
}

// AuthenticatedAny requires any resolved principal, regardless of role.
func AuthenticatedAny() Capability {
	return Capability{kind: capAuthenticatedAny}
}

// AdminOnly requires a resolved principal with the admin role.
func AdminOnly() Capability {
	return Capability{kind: capAdminOnly}
}

// OwnerOrAdmin requires the resolved principal to be an admin or the owner
// of the target resource. Callers look the resource up first and supply its
// owner id; the gate never fetches anything.
func OwnerOrAdmin(ownerID uuid.UUID) Capability {
	return Capability{kind: capOwnerOrAdmin, ownerID: ownerID.String()}
}

// Authorize checks a resolved session (nil for unauthenticated requests)
// against a required capability. It returns nil, ErrUnauthorized (no usable
// credential), or ErrForbidden (valid credential, insufficient capability).
// The two denials carry distinct status semantics but identical anonymized
// message shapes, so responses never reveal which check failed. No side
// effects, no store access.
func Authorize(s *SessionObject, capability Capability) error {
	switch capability.kind {
	case capPublic:
		return nil

	case capAuthenticatedAny:
		if s == nil {
			return ErrUnauthorized
		}
		return nil

	case capAdminOnly:
		if s == nil {
			return ErrUnauthorized
		}
		if !s.IsAdmin() {
			return ErrForbidden
		}
		return nil

	case capOwnerOrAdmin:
		if s == nil {
			return ErrUnauthorized
		}
		if s.IsAdmin() || s.GetUserID() == capability.ownerID {
			return nil
		}
		return ErrForbidden

	default:
		return ErrForbidden
	}
}
