// Package session provides the session and authorization layer for the
// Beanhaus platform: stateless JWT session tokens, cookie carrier
// resolution with fixed precedence, a capability based authorization gate,
// and the password reset credential flow.
//
// Tokens are HS256 signed JWTs carrying the user id, display name, email
// and role. They expire on an absolute schedule, there is no sliding
// renewal and no server-side revocation; see TokenService.
//
// Requests present tokens through one of three cookies, checked in order:
// bh_admin_session, bh_member_session, bh_session. Only the first cookie
// present is consulted. See ResolveSession and the jwtware middleware.
//
// Authorization is expressed as capabilities (Public, AuthenticatedAny,
// AdminOnly, OwnerOrAdmin) evaluated by Authorize, which keeps the
// unauthenticated and insufficient-role outcomes distinct.
package session
