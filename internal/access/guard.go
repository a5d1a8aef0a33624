// Package access decides whether the current viewer may see a protected
// view and where to send them otherwise. The decision logic is a pure
// function; navigation and transport concerns live at the edges (Watcher,
// Middleware) so the core stays deterministic and directly testable.
package access

import (
	"tourshield/internal/auth/models"
	id "tourshield/pkg/domain"
)

// Session is the guard's read-only view of identity resolution.
// Resolved=false means the identity backend has not answered yet; a nil
// ViewerID after Resolved=true means unauthenticated.
type Session struct {
	ViewerID *id.UserID
	Resolved bool
}

// Authenticated reports whether the session carries a viewer identity.
func (s Session) Authenticated() bool {
	return s.Resolved && s.ViewerID != nil
}

// Profile is the viewer's account projection. One profile per authenticated
// viewer; the role is immutable after account creation.
type Profile struct {
	ViewerID    id.UserID
	Role        models.Role
	DisplayName string
	Email       string
}

// DecisionKind enumerates guard outcomes.
type DecisionKind string

const (
	DecisionWait     DecisionKind = "wait"
	DecisionRender   DecisionKind = "render"
	DecisionRedirect DecisionKind = "redirect"
)

// Decision is the guard's verdict for one (session, profile, requiredRole)
// input. Decisions are comparable values: callers deduplicate navigation by
// comparing against the previously acted-on decision.
type Decision struct {
	Kind   DecisionKind
	Target Route
}

func Wait() Decision   { return Decision{Kind: DecisionWait} }
func Render() Decision { return Decision{Kind: DecisionRender} }

func RedirectTo(r Route) Decision { return Decision{Kind: DecisionRedirect, Target: r} }

// Evaluate decides whether the viewer may see a view gated by requiredRole.
// A zero requiredRole means the view only needs authentication.
//
// Evaluate is pure: no side effects, no hidden state, identical inputs yield
// identical decisions. Whenever identity data is incomplete it degrades to
// Wait, never to Render, so protected content is never disclosed on a
// half-resolved session.
func Evaluate(session Session, profile *Profile, requiredRole models.Role) Decision {
	if !session.Resolved {
		return Wait()
	}
	if session.ViewerID == nil {
		return RedirectTo(RouteLogin)
	}
	if profile == nil {
		// Authenticated but the profile has not loaded: inconsistent,
		// treated as transient.
		return Wait()
	}
	if requiredRole != "" && profile.Role != requiredRole {
		return RedirectTo(HomeRouteFor(profile.Role))
	}
	return Render()
}
