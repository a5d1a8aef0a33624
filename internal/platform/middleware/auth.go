package middleware

import (
	"context"
	"log/slog"
	"net/http"
	"strings"
)

// TokenValidator defines the interface for validating bearer tokens.
type TokenValidator interface {
	ValidateToken(tokenString string) (*TokenClaims, error)
}

// TokenClaims represents the claims we expect from the token validator.
type TokenClaims struct {
	UserID    string
	SessionID string
	Role      string
}

// Context keys for storing authenticated viewer information.
type contextKeyUserID struct{}
type contextKeySessionID struct{}
type contextKeyRole struct{}

// GetUserID retrieves the authenticated user ID from the context.
func GetUserID(ctx context.Context) string {
	userID, ok := ctx.Value(contextKeyUserID{}).(string)
	if !ok {
		return ""
	}
	return userID
}

// GetSessionID retrieves the session ID from the context.
func GetSessionID(ctx context.Context) string {
	sessionID, ok := ctx.Value(contextKeySessionID{}).(string)
	if !ok {
		return ""
	}
	return sessionID
}

// GetRole retrieves the viewer role from the context.
func GetRole(ctx context.Context) string {
	role, ok := ctx.Value(contextKeyRole{}).(string)
	if !ok {
		return ""
	}
	return role
}

// WithViewer stores viewer identity on the context. Exported for tests and
// for the view-gating layer, which resolves identity itself.
func WithViewer(ctx context.Context, userID, sessionID, role string) context.Context {
	ctx = context.WithValue(ctx, contextKeyUserID{}, userID)
	ctx = context.WithValue(ctx, contextKeySessionID{}, sessionID)
	return context.WithValue(ctx, contextKeyRole{}, role)
}

// Authenticate parses the Authorization header if present and stores viewer
// identity on the context. It never rejects the request: routes that must not
// be reachable anonymously are gated downstream. An invalid token is treated
// the same as no token.
func Authenticate(validator TokenValidator, logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			claims := bearerClaims(r, validator, logger)
			if claims != nil {
				r = r.WithContext(WithViewer(r.Context(), claims.UserID, claims.SessionID, claims.Role))
			}
			next.ServeHTTP(w, r)
		})
	}
}

// RequireAuth validates the bearer token and rejects unauthenticated requests
// with 401. Used on data endpoints where a redirect makes no sense.
func RequireAuth(validator TokenValidator, logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			claims := bearerClaims(r, validator, logger)
			if claims == nil {
				ctx := r.Context()
				logger.WarnContext(ctx, "unauthorized access - missing or invalid token",
					"request_id", GetRequestID(ctx),
					"path", r.URL.Path,
				)
				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(http.StatusUnauthorized)
				_, _ = w.Write([]byte(`{"error":"unauthorized","error_description":"Missing or invalid Authorization header"}`))
				return
			}

			next.ServeHTTP(w, r.WithContext(WithViewer(r.Context(), claims.UserID, claims.SessionID, claims.Role)))
		})
	}
}

func bearerClaims(r *http.Request, validator TokenValidator, logger *slog.Logger) *TokenClaims {
	authHeader := r.Header.Get("Authorization")
	token, ok := strings.CutPrefix(authHeader, "Bearer ")
	if !ok || token == "" {
		return nil
	}
	claims, err := validator.ValidateToken(token)
	if err != nil {
		ctx := r.Context()
		logger.WarnContext(ctx, "invalid bearer token",
			"error", err,
			"request_id", GetRequestID(ctx),
		)
		return nil
	}
	return claims
}
