// Package service implements alert intake. Tourists report incidents or raise
// an SOS; authorities read the resulting feed. Every alert is mirrored into
// the tourist's safety status so the dashboard map and the alert feed agree.
package service

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"tourshield/internal/alert/models"
	"tourshield/internal/audit"
	"tourshield/internal/platform/metrics"
	"tourshield/internal/platform/middleware"
	touristmodels "tourshield/internal/tourist/models"
	"tourshield/pkg/attrs"
	id "tourshield/pkg/domain"
	dErrors "tourshield/pkg/domain-errors"
)

// AlertStore defines the persistence interface for alerts.
type AlertStore interface {
	Create(ctx context.Context, alert *models.Alert) error
	ListRecent(ctx context.Context, limit int) ([]*models.Alert, error)
	ListByTourist(ctx context.Context, touristID id.UserID) ([]*models.Alert, error)
}

// SafetyMarker pushes the escalated safety status onto the tourist's record.
// Implementations must never lower an existing status; downgrades are an
// authority action.
type SafetyMarker interface {
	MarkSafety(ctx context.Context, touristID id.UserID, safety touristmodels.SafetyStatus) error
}

type AuditPublisher interface {
	Emit(ctx context.Context, base audit.Event) error
}

const (
	defaultRecentLimit = 50
	maxMessageLength   = 1000
)

// ReportRequest describes an incident a tourist is reporting.
type ReportRequest struct {
	Severity  string  `json:"severity"`
	Message   string  `json:"message"`
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

func (r *ReportRequest) Normalize() {
	r.Message = strings.TrimSpace(r.Message)
}

func (r *ReportRequest) Validate() error {
	if r.Message == "" {
		return dErrors.New(dErrors.CodeValidation, "message is required")
	}
	if len(r.Message) > maxMessageLength {
		return dErrors.New(dErrors.CodeValidation, "message is too long")
	}
	return nil
}

type Service struct {
	alerts         AlertStore
	safety         SafetyMarker
	logger         *slog.Logger
	metrics        *metrics.Metrics
	auditPublisher AuditPublisher
	now            func() time.Time
}

type Option func(*Service)

func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) {
		s.logger = logger
	}
}

func WithMetrics(m *metrics.Metrics) Option {
	return func(s *Service) {
		s.metrics = m
	}
}

func WithAuditPublisher(publisher AuditPublisher) Option {
	return func(s *Service) {
		s.auditPublisher = publisher
	}
}

// WithClock overrides the time source. Intended for tests.
func WithClock(now func() time.Time) Option {
	return func(s *Service) {
		s.now = now
	}
}

func NewService(alerts AlertStore, safety SafetyMarker, opts ...Option) *Service {
	svc := &Service{
		alerts: alerts,
		safety: safety,
		logger: slog.Default(),
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(svc)
	}
	return svc
}

// Report records an incident reported by the tourist and escalates their
// safety status to match the severity.
func (s *Service) Report(ctx context.Context, touristID id.UserID, req *ReportRequest) (*models.Alert, error) {
	req.Normalize()
	if err := req.Validate(); err != nil {
		return nil, err
	}
	severity, err := models.ParseSeverity(req.Severity)
	if err != nil {
		return nil, err
	}
	return s.raise(ctx, &models.Alert{
		ID:        id.NewAlertID(),
		TouristID: touristID,
		Kind:      models.KindIncident,
		Severity:  severity,
		Message:   req.Message,
		Latitude:  req.Latitude,
		Longitude: req.Longitude,
		CreatedAt: s.now(),
	}, audit.EventIncidentReported)
}

// SOS raises a critical distress alert at the tourist's position. The message
// is fixed so an SOS can be sent with a single tap.
func (s *Service) SOS(ctx context.Context, touristID id.UserID, latitude, longitude float64) (*models.Alert, error) {
	return s.raise(ctx, &models.Alert{
		ID:        id.NewAlertID(),
		TouristID: touristID,
		Kind:      models.KindSOS,
		Severity:  models.SeverityCritical,
		Message:   "SOS distress signal",
		Latitude:  latitude,
		Longitude: longitude,
		CreatedAt: s.now(),
	}, audit.EventSOSRaised)
}

func (s *Service) raise(ctx context.Context, alert *models.Alert, event audit.AuditEvent) (*models.Alert, error) {
	if err := s.alerts.Create(ctx, alert); err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to create alert")
	}

	// The alert is already durable; a failed status push is logged and the
	// next alert or an authority correction will converge it.
	if safety := safetyFor(alert.Severity); safety != "" {
		if err := s.safety.MarkSafety(ctx, alert.TouristID, safety); err != nil {
			s.logger.WarnContext(ctx, "failed to escalate safety status",
				"tourist_id", alert.TouristID.String(),
				"error", err,
			)
		}
	}

	s.logAudit(ctx, string(event),
		"user_id", alert.TouristID.String(),
		"alert_id", alert.ID.String(),
		"severity", string(alert.Severity),
	)
	if s.metrics != nil {
		s.metrics.IncrementAlertsRaised(string(alert.Severity))
	}
	return alert, nil
}

// ListRecent returns the newest alerts for the authority feed.
func (s *Service) ListRecent(ctx context.Context, limit int) ([]*models.Alert, error) {
	if limit <= 0 {
		limit = defaultRecentLimit
	}
	alerts, err := s.alerts.ListRecent(ctx, limit)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to list alerts")
	}
	return alerts, nil
}

// ListByTourist returns one tourist's alert history, newest first.
func (s *Service) ListByTourist(ctx context.Context, touristID id.UserID) ([]*models.Alert, error) {
	alerts, err := s.alerts.ListByTourist(ctx, touristID)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to list tourist alerts")
	}
	return alerts, nil
}

// safetyFor maps alert severity onto the record's safety status. Info alerts
// leave the status alone.
func safetyFor(severity models.Severity) touristmodels.SafetyStatus {
	switch severity {
	case models.SeverityCritical:
		return touristmodels.SafetyDanger
	case models.SeverityWarning:
		return touristmodels.SafetyWarning
	default:
		return ""
	}
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
