// Package portal maps role-scoped sessions to portal surfaces and gates
// access to them. Routing is a pure function of the session; gating re-checks
// liveness on every navigation because sessions expire or are revoked out of
// band.
package portal

import (
	"time"

	"opsportal/internal/auth"
	pkgerrors "opsportal/pkg/errors"
)

// Destination identifies a portal surface or its login entry point. These are
// the only destinations this service produces.
type Destination string

const (
	DestAdminDashboard  Destination = "admin-dashboard"
	DestClientDashboard Destination = "client-dashboard"
	DestAdminLogin      Destination = "admin-login"
	DestClientLogin     Destination = "client-login"
)

// ErrUnknownRole covers sessions carrying a role outside the known set.
// Unreachable given the authenticator's contract, but callers must reject the
// session and force re-authentication rather than crash.
var ErrUnknownRole = pkgerrors.New(pkgerrors.CodeForbidden, "unknown session role")

// Route maps a session's role to its dashboard. Pure and total: every input
// yields either a destination or ErrUnknownRole.
func Route(session auth.Session) (Destination, error) {
	switch session.Role {
	case auth.RoleAdmin:
		return DestAdminDashboard, nil
	case auth.RoleClient:
		return DestClientDashboard, nil
	default:
		return "", ErrUnknownRole
	}
}

// LoginFor returns the login entry point guarding surfaces of the given role.
func LoginFor(role auth.Role) Destination {
	if role == auth.RoleAdmin {
		return DestAdminLogin
	}
	return DestClientLogin
}

// RoleFor returns the role required to reach a gated surface.
func RoleFor(surface Destination) (auth.Role, bool) {
	switch surface {
	case DestAdminDashboard:
		return auth.RoleAdmin, true
	case DestClientDashboard:
		return auth.RoleClient, true
	default:
		return "", false
	}
}

// Gate decides where a navigation to a gated surface lands. A live session of
// the matching role passes through; anything else (no session, expired
// session, role mismatch) redirects to that surface's login entry point.
func Gate(session *auth.Session, surface Destination, now time.Time) Destination {
	required, ok := RoleFor(surface)
	if !ok {
		return surface
	}
	if session == nil || session.Expired(now) || session.Role != required {
		return LoginFor(required)
	}
	return surface
}
