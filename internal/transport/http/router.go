// Package httptransport is the thin HTTP layer. Handlers delegate to domain
// services without embedding business logic so transport concerns remain
// isolated.
package httptransport

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"tourshield/internal/access"
	authmodels "tourshield/internal/auth/models"
	"tourshield/internal/platform/health"
	"tourshield/internal/platform/metrics"
	"tourshield/internal/platform/middleware"
	dErrors "tourshield/pkg/domain-errors"
	"tourshield/pkg/platform/httputil"
)

// Deps carries everything the router needs. Handlers are constructed here so
// main only assembles services.
type Deps struct {
	Auth     AuthService
	Tourists TouristService
	Alerts   AlertService
	Guard    *access.Middleware
	Token    middleware.TokenValidator
	Health   *health.Handler
	Metrics  *metrics.Metrics
	Logger   *slog.Logger
}

// NewRouter wires all public endpoints with the middleware stack.
func NewRouter(deps Deps) http.Handler {
	logger := deps.Logger
	if logger == nil {
		logger = slog.Default()
	}

	authHandler := newAuthHandler(deps.Auth, logger)
	touristHandler := newTouristHandler(deps.Tourists, logger)
	alertHandler := newAlertHandler(deps.Alerts, logger)

	r := chi.NewRouter()

	r.Use(middleware.Recovery(logger))
	r.Use(middleware.RequestID)
	r.Use(middleware.Logger(logger))
	r.Use(middleware.Latency(deps.Metrics))
	r.Use(middleware.Timeout(30 * time.Second))
	r.Use(middleware.ContentTypeJSON)

	if deps.Health != nil {
		deps.Health.Register(r)
	}
	r.Method(http.MethodGet, "/metrics", promhttp.Handler())

	// Account endpoints; sign-up and sign-in are the only anonymous writes.
	r.Post("/auth/sign-up", authHandler.HandleSignUp)
	r.Post("/auth/sign-in", authHandler.HandleSignIn)

	// Data endpoints. RequireAuth rejects with 401; a redirect makes no
	// sense on an API call.
	r.Group(func(r chi.Router) {
		r.Use(middleware.RequireAuth(deps.Token, logger))

		r.Post("/auth/sign-out", authHandler.HandleSignOut)
		r.Post("/auth/sign-out-all", authHandler.HandleSignOutAll)
		r.Get("/auth/me", authHandler.HandleProfile)

		r.Post("/tourists/register", requireRole(authmodels.RoleTourist, touristHandler.HandleRegister))
		r.Get("/tourists/me", requireRole(authmodels.RoleTourist, touristHandler.HandleGetOwn))
		r.Post("/tourists/documents/{kind}", requireRole(authmodels.RoleTourist, touristHandler.HandleSubmitDocument))
		r.Post("/tourists/activity", requireRole(authmodels.RoleTourist, touristHandler.HandleActivity))

		r.Get("/tourists", requireRole(authmodels.RoleAuthority, touristHandler.HandleList))
		r.Get("/tourists/stats", requireRole(authmodels.RoleAuthority, touristHandler.HandleStats))
		r.Get("/tourists/{user_id}", requireRole(authmodels.RoleAuthority, touristHandler.HandleGet))
		r.Post("/tourists/{user_id}/documents/{kind}/review", requireRole(authmodels.RoleAuthority, touristHandler.HandleReviewDocument))
		r.Post("/tourists/{user_id}/safety", requireRole(authmodels.RoleAuthority, touristHandler.HandleSetSafety))

		r.Post("/alerts/report", requireRole(authmodels.RoleTourist, alertHandler.HandleReport))
		r.Post("/alerts/sos", requireRole(authmodels.RoleTourist, alertHandler.HandleSOS))
		r.Get("/alerts", requireRole(authmodels.RoleAuthority, alertHandler.HandleListRecent))
		r.Get("/alerts/me", requireRole(authmodels.RoleTourist, alertHandler.HandleListOwn))
	})

	// Dashboard pages are gated by guard decisions: the wrong viewer is
	// redirected to where they belong instead of shown an error.
	r.Group(func(r chi.Router) {
		r.Use(middleware.Authenticate(deps.Token, logger))

		r.Get(access.RouteLogin.String(), pageHandler("login"))
		r.With(deps.Guard.RequireRole(authmodels.RoleTourist)).
			Get(access.RouteTouristDashboard.String(), pageHandler("tourist-dashboard"))
		r.With(deps.Guard.RequireRole(authmodels.RoleAuthority)).
			Get(access.RouteAuthorityDashboard.String(), pageHandler("authority-dashboard"))
	})

	return r
}

// requireRole is the role check for data endpoints: a mismatched role is a
// plain 403, not a redirect.
func requireRole(role authmodels.Role, next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if middleware.GetRole(r.Context()) != string(role) {
			httputil.WriteError(w, dErrors.New(dErrors.CodeForbidden, "insufficient role"))
			return
		}
		next(w, r)
	}
}

// pageHandler stands in for the dashboard shell. The interesting behavior is
// the gate in front of it.
func pageHandler(page string) http.HandlerFunc {
	return func(w http.ResponseWriter, _ *http.Request) {
		httputil.WriteJSON(w, http.StatusOK, map[string]string{"page": page})
	}
}
