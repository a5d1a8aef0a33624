package httptransport

import (
	"context"
	"log/slog"
	"net/http"

	"tourshield/internal/auth/models"
	"tourshield/internal/platform/middleware"
	id "tourshield/pkg/domain"
	dErrors "tourshield/pkg/domain-errors"
	"tourshield/pkg/platform/httputil"
)

// AuthService defines the interface for account and session operations.
type AuthService interface {
	SignUp(ctx context.Context, req *models.SignUpRequest, userAgent string) (*models.SignInResult, error)
	SignIn(ctx context.Context, req *models.SignInRequest, userAgent string) (*models.SignInResult, error)
	SignOut(ctx context.Context, sessionID id.SessionID) error
	SignOutAll(ctx context.Context, userID id.UserID) error
	Profile(ctx context.Context, userID id.UserID) (*models.ProfileResult, error)
}

type authHandler struct {
	auth   AuthService
	logger *slog.Logger
}

func newAuthHandler(auth AuthService, logger *slog.Logger) *authHandler {
	return &authHandler{auth: auth, logger: logger}
}

// HandleSignUp creates an account and signs the viewer in.
//
// Input: { "email": "...", "password": "...", "role": "tourist", "display_name": "..." }
// Output: { "token": "...", "user_id": "...", "role": "...", "expires_at": "..." }
func (h *authHandler) HandleSignUp(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := middleware.GetRequestID(ctx)

	req, ok := httputil.DecodeJSON[models.SignUpRequest](w, r, h.logger, ctx, requestID)
	if !ok {
		return
	}

	res, err := h.auth.SignUp(ctx, req, r.UserAgent())
	if err != nil {
		h.logger.WarnContext(ctx, "sign-up failed",
			"error", err,
			"request_id", requestID,
		)
		httputil.WriteError(w, err)
		return
	}

	httputil.WriteJSON(w, http.StatusCreated, res)
}

// HandleSignIn authenticates an existing account.
func (h *authHandler) HandleSignIn(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := middleware.GetRequestID(ctx)

	req, ok := httputil.DecodeJSON[models.SignInRequest](w, r, h.logger, ctx, requestID)
	if !ok {
		return
	}

	res, err := h.auth.SignIn(ctx, req, r.UserAgent())
	if err != nil {
		h.logger.WarnContext(ctx, "sign-in failed",
			"error", err,
			"request_id", requestID,
		)
		httputil.WriteError(w, err)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, res)
}

// HandleSignOut revokes the viewer's current session.
func (h *authHandler) HandleSignOut(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	sessionID, err := id.ParseSessionID(middleware.GetSessionID(ctx))
	if err != nil {
		httputil.WriteError(w, dErrors.New(dErrors.CodeUnauthorized, "invalid session"))
		return
	}

	if err := h.auth.SignOut(ctx, sessionID); err != nil {
		httputil.WriteError(w, err)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, map[string]string{"status": "signed_out"})
}

// HandleSignOutAll revokes every session belonging to the viewer.
func (h *authHandler) HandleSignOutAll(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	userID, err := id.ParseUserID(middleware.GetUserID(ctx))
	if err != nil {
		httputil.WriteError(w, dErrors.New(dErrors.CodeUnauthorized, "invalid session"))
		return
	}

	if err := h.auth.SignOutAll(ctx, userID); err != nil {
		httputil.WriteError(w, err)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, map[string]string{"status": "signed_out"})
}

// HandleProfile returns the viewer's own profile.
func (h *authHandler) HandleProfile(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	userID, err := id.ParseUserID(middleware.GetUserID(ctx))
	if err != nil {
		httputil.WriteError(w, dErrors.New(dErrors.CodeUnauthorized, "invalid session"))
		return
	}

	res, err := h.auth.Profile(ctx, userID)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, res)
}
