package access

import (
	"context"
	"log/slog"
	"net/http"
	"strconv"

	"tourshield/internal/auth/models"
	"tourshield/internal/platform/metrics"
	"tourshield/internal/platform/middleware"
	id "tourshield/pkg/domain"
	dErrors "tourshield/pkg/domain-errors"
	"tourshield/pkg/platform/httputil"
)

// ProfileResolver loads the viewer's profile for an authenticated session.
// Error Contract: returns a CodeUnauthorized domain error when the session is
// no longer valid; any other error means the identity backend is unavailable.
type ProfileResolver interface {
	ResolveProfile(ctx context.Context, sessionID id.SessionID) (*Profile, error)
}

// waitRetryAfterSeconds is the Retry-After hint sent with a Wait decision.
const waitRetryAfterSeconds = 2

// Middleware gates HTTP routes on guard decisions. The decision mapping is:
// Wait -> 202 Accepted with Retry-After, RedirectTo -> 302 Found with the
// target route as Location, Render -> the wrapped handler runs.
type Middleware struct {
	resolver ProfileResolver
	logger   *slog.Logger
	metrics  *metrics.Metrics
}

type MiddlewareOption func(*Middleware)

func WithMiddlewareLogger(logger *slog.Logger) MiddlewareOption {
	return func(m *Middleware) {
		if logger != nil {
			m.logger = logger
		}
	}
}

func WithMiddlewareMetrics(met *metrics.Metrics) MiddlewareOption {
	return func(m *Middleware) {
		m.metrics = met
	}
}

func NewMiddleware(resolver ProfileResolver, opts ...MiddlewareOption) *Middleware {
	m := &Middleware{
		resolver: resolver,
		logger:   slog.Default(),
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// RequireRole gates the wrapped handler on the given role. A zero role gates
// on authentication only.
func (m *Middleware) RequireRole(requiredRole models.Role) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			session, profile := m.snapshot(r)
			decision := Evaluate(session, profile, requiredRole)

			if m.metrics != nil {
				m.metrics.IncrementGuardDecision(string(decision.Kind))
			}

			switch decision.Kind {
			case DecisionRender:
				next.ServeHTTP(w, r)
			case DecisionRedirect:
				http.Redirect(w, r, decision.Target.String(), http.StatusFound)
			default:
				w.Header().Set("Retry-After", strconv.Itoa(waitRetryAfterSeconds))
				httputil.WriteJSON(w, http.StatusAccepted, map[string]string{"status": "pending"})
			}
		})
	}
}

// snapshot builds the guard inputs from the request. Token validation has
// already happened upstream; here the session is checked for liveness and the
// profile loaded, degrading to an unresolved session when the backend cannot
// answer.
func (m *Middleware) snapshot(r *http.Request) (Session, *Profile) {
	ctx := r.Context()

	sessionIDStr := middleware.GetSessionID(ctx)
	if sessionIDStr == "" {
		// No token, or an invalid one: the viewer is anonymous.
		return Session{Resolved: true}, nil
	}

	sessionID, err := id.ParseSessionID(sessionIDStr)
	if err != nil {
		return Session{Resolved: true}, nil
	}

	profile, err := m.resolver.ResolveProfile(ctx, sessionID)
	if err != nil {
		if dErrors.HasCode(err, dErrors.CodeUnauthorized) {
			// Valid token, dead session: treat as signed out.
			return Session{Resolved: true}, nil
		}
		m.logger.WarnContext(ctx, "identity resolution unavailable", "error", err)
		return Session{Resolved: false}, nil
	}

	viewerID := profile.ViewerID
	return Session{ViewerID: &viewerID, Resolved: true}, profile
}
