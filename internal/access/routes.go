package access

import "tourshield/internal/auth/models"

// Route is a navigation target. The set is closed: the guard only ever emits
// one of these values, never a caller-supplied string, so a compromised or
// buggy caller cannot turn a redirect into an open redirect.
type Route string

const (
	RouteLogin              Route = "/login"
	RouteTouristDashboard   Route = "/tourist-dashboard"
	RouteAuthorityDashboard Route = "/authority-dashboard"
)

func (r Route) String() string { return string(r) }

// HomeRouteFor maps a role to its dashboard route. Unknown roles land on
// login rather than a dashboard.
func HomeRouteFor(role models.Role) Route {
	switch role {
	case models.RoleTourist:
		return RouteTouristDashboard
	case models.RoleAuthority:
		return RouteAuthorityDashboard
	default:
		return RouteLogin
	}
}
