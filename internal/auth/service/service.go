package service

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"golang.org/x/crypto/bcrypt"

	"tourshield/internal/audit"
	"tourshield/internal/auth/device"
	"tourshield/internal/auth/models"
	"tourshield/internal/platform/metrics"
	"tourshield/internal/platform/middleware"
	"tourshield/internal/sentinel"
	"tourshield/pkg/attrs"
	id "tourshield/pkg/domain"
	dErrors "tourshield/pkg/domain-errors"
)

// UserStore defines the persistence interface for user data.
// Error Contract: All Find methods return sentinel.ErrNotFound (wrapped) when
// the entity doesn't exist; Create returns sentinel.ErrAlreadyUsed on a
// duplicate email.
type UserStore interface {
	Create(ctx context.Context, user *models.User) error
	FindByID(ctx context.Context, userID id.UserID) (*models.User, error)
	FindByEmail(ctx context.Context, email string) (*models.User, error)
	Delete(ctx context.Context, userID id.UserID) error
}

// SessionStore defines the persistence interface for session data.
// Error Contract: All Find methods return sentinel.ErrNotFound (wrapped) when
// the entity doesn't exist.
type SessionStore interface {
	Create(ctx context.Context, session *models.Session) error
	FindByID(ctx context.Context, sessionID id.SessionID) (*models.Session, error)
	Update(ctx context.Context, session *models.Session) error
	DeleteSessionsByUser(ctx context.Context, userID id.UserID) error
}

type TokenGenerator interface {
	GenerateSessionToken(userID id.UserID, sessionID id.SessionID, role string) (string, error)
}

type AuditPublisher interface {
	Emit(ctx context.Context, base audit.Event) error
}

const defaultSessionTTL = 24 * time.Hour

type Service struct {
	users          UserStore
	sessions       SessionStore
	jwt            TokenGenerator
	sessionTTL     time.Duration
	logger         *slog.Logger
	auditPublisher AuditPublisher
	metrics        *metrics.Metrics
	now            func() time.Time
}

type Option func(*Service)

func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) {
		s.logger = logger
	}
}

func WithAuditPublisher(publisher AuditPublisher) Option {
	return func(s *Service) {
		s.auditPublisher = publisher
	}
}

func WithMetrics(m *metrics.Metrics) Option {
	return func(s *Service) {
		s.metrics = m
	}
}

// WithSessionTTL configures the time-to-live duration for sessions.
// If not set or set to zero/negative, defaults to 24 hours.
func WithSessionTTL(ttl time.Duration) Option {
	return func(s *Service) {
		if ttl > 0 {
			s.sessionTTL = ttl
		}
	}
}

// WithClock overrides the time source. Intended for tests.
func WithClock(now func() time.Time) Option {
	return func(s *Service) {
		s.now = now
	}
}

func NewService(users UserStore, sessions SessionStore, jwt TokenGenerator, opts ...Option) *Service {
	svc := &Service{
		users:      users,
		sessions:   sessions,
		jwt:        jwt,
		sessionTTL: defaultSessionTTL,
		now:        time.Now,
	}
	for _, opt := range opts {
		opt(svc)
	}
	if svc.logger == nil {
		svc.logger = slog.Default()
	}
	if svc.sessionTTL <= 0 {
		svc.sessionTTL = defaultSessionTTL
	}
	return svc
}

// SignUp creates an account and signs the new user in. Registration and the
// first session are one step: the dashboard never shows a "now log in" screen
// after sign-up.
func (s *Service) SignUp(ctx context.Context, req *models.SignUpRequest, userAgent string) (*models.SignInResult, error) {
	req.Normalize()
	if err := req.Validate(); err != nil {
		return nil, err
	}
	role, err := models.ParseRole(req.Role)
	if err != nil {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to hash password")
	}

	user := &models.User{
		ID:           id.NewUserID(),
		Email:        req.Email,
		DisplayName:  req.DisplayName,
		Role:         role,
		PasswordHash: string(hash),
		CreatedAt:    s.now(),
	}

	if err := s.users.Create(ctx, user); err != nil {
		if errors.Is(err, sentinel.ErrAlreadyUsed) {
			return nil, dErrors.New(dErrors.CodeConflict, "email already registered")
		}
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to create user")
	}

	s.logAudit(ctx, string(audit.EventUserCreated),
		"user_id", user.ID.String(),
		"role", user.Role.String(),
	)
	s.incrementUserCreated()

	return s.startSession(ctx, user, userAgent)
}

// SignIn authenticates by email and password and opens a new session.
func (s *Service) SignIn(ctx context.Context, req *models.SignInRequest, userAgent string) (*models.SignInResult, error) {
	req.Normalize()
	if err := req.Validate(); err != nil {
		return nil, err
	}

	user, err := s.users.FindByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			s.logAuthFailure(ctx, "unknown_email", false, "email", req.Email)
			s.incrementAuthFailure()
			return nil, dErrors.New(dErrors.CodeUnauthorized, "invalid email or password")
		}
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to find user")
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		s.logAuthFailure(ctx, "password_mismatch", false, "user_id", user.ID.String())
		s.incrementAuthFailure()
		return nil, dErrors.New(dErrors.CodeUnauthorized, "invalid email or password")
	}

	return s.startSession(ctx, user, userAgent)
}

func (s *Service) startSession(ctx context.Context, user *models.User, userAgent string) (*models.SignInResult, error) {
	now := s.now()
	session := &models.Session{
		ID:                id.NewSessionID(),
		UserID:            user.ID,
		Status:            models.SessionStatusActive,
		DeviceDisplayName: device.DisplayName(userAgent),
		CreatedAt:         now,
		ExpiresAt:         now.Add(s.sessionTTL),
		LastSeenAt:        now,
	}

	if err := s.sessions.Create(ctx, session); err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to create session")
	}

	token, err := s.jwt.GenerateSessionToken(user.ID, session.ID, user.Role.String())
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to generate session token")
	}

	s.logAudit(ctx, string(audit.EventSessionCreated),
		"user_id", user.ID.String(),
		"session_id", session.ID.String(),
		"device", session.DeviceDisplayName,
	)
	s.incrementActiveSession()

	return &models.SignInResult{
		Token:     token,
		UserID:    user.ID.String(),
		Role:      user.Role.String(),
		ExpiresAt: session.ExpiresAt,
	}, nil
}

// SignOut revokes the session. Revoking an already-revoked session is a no-op.
func (s *Service) SignOut(ctx context.Context, sessionID id.SessionID) error {
	session, err := s.sessions.FindByID(ctx, sessionID)
	if err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return dErrors.New(dErrors.CodeNotFound, "session not found")
		}
		return dErrors.Wrap(err, dErrors.CodeInternal, "failed to find session")
	}

	if !session.Revoke(s.now()) {
		return nil
	}
	if err := s.sessions.Update(ctx, session); err != nil {
		return dErrors.Wrap(err, dErrors.CodeInternal, "failed to update session")
	}

	s.logAudit(ctx, string(audit.EventSessionRevoked),
		"user_id", session.UserID.String(),
		"session_id", session.ID.String(),
	)
	s.decrementActiveSession()
	return nil
}

// SignOutAll revokes every session belonging to the user, across devices.
func (s *Service) SignOutAll(ctx context.Context, userID id.UserID) error {
	if err := s.sessions.DeleteSessionsByUser(ctx, userID); err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return nil
		}
		return dErrors.Wrap(err, dErrors.CodeInternal, "failed to delete user sessions")
	}

	s.logAudit(ctx, string(audit.EventSessionRevoked),
		"user_id", userID.String(),
		"scope", "all_devices",
	)
	return nil
}

// Profile returns the viewer's profile projection.
func (s *Service) Profile(ctx context.Context, userID id.UserID) (*models.ProfileResult, error) {
	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return nil, dErrors.New(dErrors.CodeNotFound, "user not found")
		}
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to find user")
	}
	return &models.ProfileResult{
		UserID:      user.ID.String(),
		Email:       user.Email,
		DisplayName: user.DisplayName,
		Role:        user.Role.String(),
	}, nil
}

// Resolve validates session liveness and returns the owning user. A valid
// token whose session has since been revoked or expired resolves to an
// unauthorized error, so token validity alone never grants access. Resolution
// also touches the session's last seen time.
func (s *Service) Resolve(ctx context.Context, sessionID id.SessionID) (*models.User, error) {
	session, err := s.sessions.FindByID(ctx, sessionID)
	if err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			s.logAuthFailure(ctx, "session_not_found", false, "session_id", sessionID.String())
			s.incrementAuthFailure()
			return nil, dErrors.New(dErrors.CodeUnauthorized, "session not found")
		}
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to find session")
	}

	now := s.now()
	if !session.IsActive() || session.IsExpired(now) {
		s.logAuthFailure(ctx, "session_not_active", false,
			"session_id", session.ID.String(),
			"status", string(session.Status),
		)
		s.incrementAuthFailure()
		return nil, dErrors.New(dErrors.CodeUnauthorized, "session not active")
	}

	user, err := s.users.FindByID(ctx, session.UserID)
	if err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			s.logAuthFailure(ctx, "user_not_found", false,
				"session_id", session.ID.String(),
				"user_id", session.UserID.String(),
			)
			s.incrementAuthFailure()
			return nil, dErrors.New(dErrors.CodeUnauthorized, "user not found")
		}
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to find user")
	}

	session.RecordActivity(now)
	if err := s.sessions.Update(ctx, session); err != nil {
		// Activity tracking is best effort; the viewer is still resolved.
		s.logger.WarnContext(ctx, "failed to record session activity",
			"session_id", session.ID.String(),
			"error", err,
		)
	}

	return user, nil
}

func (s *Service) logAudit(ctx context.Context, event string, attributes ...any) {
	if requestID := middleware.GetRequestID(ctx); requestID != "" {
		attributes = append(attributes, "request_id", requestID)
	}
	args := append(attributes, "event", event, "log_type", "audit")
	if s.logger != nil {
		s.logger.InfoContext(ctx, event, args...)
	}
	if s.auditPublisher == nil {
		return
	}
	userID := attrs.ExtractString(attributes, "user_id")
	_ = s.auditPublisher.Emit(ctx, audit.Event{
		UserID:  userID,
		Subject: userID,
		Action:  event,
	})
}

func (s *Service) logAuthFailure(ctx context.Context, reason string, isError bool, attributes ...any) {
	if requestID := middleware.GetRequestID(ctx); requestID != "" {
		attributes = append(attributes, "request_id", requestID)
	}
	args := append(attributes, "event", audit.EventAuthFailed, "reason", reason, "log_type", "standard")
	if s.logger == nil {
		return
	}
	if isError {
		s.logger.ErrorContext(ctx, string(audit.EventAuthFailed), args...)
		return
	}
	s.logger.WarnContext(ctx, string(audit.EventAuthFailed), args...)
}

// incrementUserCreated increments the users created metric if metrics are enabled
func (s *Service) incrementUserCreated() {
	if s.metrics != nil {
		s.metrics.IncrementUsersCreated()
	}
}

// incrementActiveSession increments the active sessions metric if metrics are enabled
func (s *Service) incrementActiveSession() {
	if s.metrics != nil {
		s.metrics.IncrementActiveSessions(1)
	}
}

// decrementActiveSession decrements the active sessions metric if metrics are enabled
func (s *Service) decrementActiveSession() {
	if s.metrics != nil {
		s.metrics.IncrementActiveSessions(-1)
	}
}

// incrementAuthFailure increments the auth failures metric if metrics are enabled
func (s *Service) incrementAuthFailure() {
	if s.metrics != nil {
		s.metrics.IncrementAuthFailures()
	}
}
