package session

import "strings"

// CarrierName identifies a credential carrier: the named cookie slot that
// transports an encoded session token.
type CarrierName = string

const (
	// CarrierAdmin is the role-scoped carrier set for admin logins
	CarrierAdmin CarrierName = "bh_admin_session"
	// CarrierMember is the role-scoped carrier set for member logins
	CarrierMember CarrierName = "bh_member_session"
	// CarrierLegacy predates role separation; still honored on inbound
	// requests, never written by new logins
	CarrierLegacy CarrierName = "bh_session"
)

// CarrierPrecedence returns the carrier slots in authoritative order. The
// first present carrier wins; the order prevents a stale legacy cookie from
// overriding a fresher role-scoped one.
func CarrierPrecedence() []CarrierName {
	return []CarrierName{
		CarrierAdmin,
		CarrierMember,
		CarrierLegacy,
	}
}

// CarrierForRole maps a principal's role to the carrier its session token
// is written to at login.
func CarrierForRole(role UserRole) CarrierName {
	if role == RoleAdmin {
		return CarrierAdmin
	}
	return CarrierMember
}

// CarrierTokenLookup renders the precedence list as a jwtware token lookup
// expression ("cookie:a,cookie:b,...").
func CarrierTokenLookup() string {
	names := CarrierPrecedence()
	parts := make([]string, 0, len(names))
	for _, name := range names {
		parts = append(parts, "cookie:"+name)
	}
	return strings.Join(parts, ",")
}

// CarrierLookup reads the raw value of a named carrier off a request.
// Implementations return "" for absent carriers.
type CarrierLookup func(name CarrierName) string

// ExtractCarrierToken walks the precedence list and returns the first
// present carrier and its raw value. It does not validate the value.
func ExtractCarrierToken(lookup CarrierLookup) (CarrierName, string, bool) {
	if lookup == nil {
		return "", "", false
	}

	for _, name := range CarrierPrecedence() {
		if raw := lookup(name); raw != "" {
			return name, raw, true
		}
	}

	return "", "", false
}

// ResolveSession resolves the request's credential carriers into a session.
// Exactly one carrier is authoritative: the first present one in precedence
// order. If its token fails validation the request is unauthenticated —
// resolution never falls through to a lower-precedence carrier, so a
// present-but-invalid admin cookie masks a valid member cookie.
// Resolution is read-only; it performs no store access.
func ResolveSession(lookup CarrierLookup, validator TokenValidator) (*SessionObject, error) {
	_, raw, ok := ExtractCarrierToken(lookup)
	if !ok {
		return nil, ErrUnableToFindSession
	}

	if validator == nil {
		return nil, ErrUnableToDecodeSession
	}

	claims, err := validator.Validate(raw)
	if err != nil {
		return nil, err
	}

	return sessionFromAuthClaims(claims)
}
