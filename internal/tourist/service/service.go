package service

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"golang.org/x/sync/errgroup"

	"tourshield/internal/audit"
	"tourshield/internal/platform/metrics"
	"tourshield/internal/platform/middleware"
	"tourshield/internal/sentinel"
	"tourshield/internal/tourist/models"
	"tourshield/internal/tourist/presence"
	"tourshield/internal/tourist/status"
	"tourshield/internal/tourist/store/record"
	"tourshield/internal/tourist/tracer"
	"tourshield/pkg/attrs"
	id "tourshield/pkg/domain"
	dErrors "tourshield/pkg/domain-errors"
)

// RecordStore defines the persistence interface for tourist records.
// Error Contract: Find methods return sentinel.ErrNotFound (wrapped) when the
// record doesn't exist; Create returns sentinel.ErrAlreadyUsed (wrapped) when
// the tourist already has a record.
type RecordStore interface {
	Create(ctx context.Context, rec *models.TouristRecord) error
	FindByUserID(ctx context.Context, userID id.UserID) (*models.TouristRecord, error)
	Update(ctx context.Context, rec *models.TouristRecord) error
	List(ctx context.Context, filter record.ListFilter) ([]*models.TouristRecord, error)
}

// ActivityStore defines the persistence interface for last-activity
// timestamps.
// Error Contract: LastActive returns sentinel.ErrNotFound (wrapped) when no
// activity has been recorded for the tourist.
type ActivityStore interface {
	Touch(ctx context.Context, userID id.UserID, at time.Time) error
	LastActive(ctx context.Context, userID id.UserID) (time.Time, error)
	ListLastActive(ctx context.Context) (map[id.UserID]time.Time, error)
}

type AuditPublisher interface {
	Emit(ctx context.Context, base audit.Event) error
}

// ReviewOutcome is an authority's verdict on a submitted document.
type ReviewOutcome string

const (
	OutcomeApprove ReviewOutcome = "approve"
	OutcomeReject  ReviewOutcome = "reject"
)

// ParseReviewOutcome validates an outcome string at trust boundaries.
func ParseReviewOutcome(s string) (ReviewOutcome, error) {
	o := ReviewOutcome(s)
	if o != OutcomeApprove && o != OutcomeReject {
		return "", dErrors.New(dErrors.CodeInvalidInput, "outcome must be approve or reject")
	}
	return o, nil
}

// RegisterRequest creates a tourist's registration record.
type RegisterRequest struct {
	FullName  string  `json:"full_name"`
	Country   string  `json:"country"`
	City      string  `json:"city"`
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

func (r *RegisterRequest) Validate() error {
	if r.FullName == "" {
		return dErrors.New(dErrors.CodeValidation, "full name is required")
	}
	if r.Country == "" {
		return dErrors.New(dErrors.CodeValidation, "country is required")
	}
	return nil
}

// TouristView is a record projection with the derived fields attached. The
// derived fields are recomputed on every read, never persisted.
type TouristView struct {
	UserID             string                   `json:"user_id"`
	FullName           string                   `json:"full_name"`
	Country            string                   `json:"country"`
	City               string                   `json:"city"`
	Latitude           float64                  `json:"latitude"`
	Longitude          float64                  `json:"longitude"`
	SafetyStatus       models.SafetyStatus      `json:"safety_status"`
	PassportStatus     models.DocumentStatus    `json:"passport_status"`
	FlightTicketStatus models.DocumentStatus    `json:"flight_ticket_status"`
	Verification       models.VerificationState `json:"verification"`
	Online             bool                     `json:"online"`
	RegistrationDate   time.Time                `json:"registration_date"`
	VerificationDate   *time.Time               `json:"verification_date,omitempty"`
}

// Stats is the authority dashboard's aggregate view.
type Stats struct {
	Total       int `json:"total"`
	Verified    int `json:"verified"`
	UnderReview int `json:"under_review"`
	Pending     int `json:"pending"`
	Online      int `json:"online"`
	Safe        int `json:"safe"`
	Warning     int `json:"warning"`
	Danger      int `json:"danger"`
}

type Service struct {
	records        RecordStore
	activity       ActivityStore
	threshold      time.Duration
	logger         *slog.Logger
	metrics        *metrics.Metrics
	auditPublisher AuditPublisher
	tracer         tracer.Tracer
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

func WithTracer(t tracer.Tracer) Option {
	return func(s *Service) {
		if t != nil {
			s.tracer = t
		}
	}
}

// WithPresenceThreshold overrides how recent activity must be to count as
// online. Zero or negative values are ignored.
func WithPresenceThreshold(d time.Duration) Option {
	return func(s *Service) {
		if d > 0 {
			s.threshold = d
		}
	}
}

// WithClock overrides the time source. Intended for tests.
func WithClock(now func() time.Time) Option {
	return func(s *Service) {
		s.now = now
	}
}

func NewService(records RecordStore, activity ActivityStore, opts ...Option) *Service {
	svc := &Service{
		records:   records,
		activity:  activity,
		threshold: presence.DefaultThreshold,
		logger:    slog.Default(),
		tracer:    tracer.NewNoop(),
		now:       time.Now,
	}
	for _, opt := range opts {
		opt(svc)
	}
	return svc
}

// Register creates the tourist's registration record with both documents not
// yet submitted and a safe status.
func (s *Service) Register(ctx context.Context, touristID id.UserID, req *RegisterRequest) (*TouristView, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	now := s.now()
	rec := &models.TouristRecord{
		UserID:             touristID,
		FullName:           req.FullName,
		Country:            req.Country,
		City:               req.City,
		Latitude:           req.Latitude,
		Longitude:          req.Longitude,
		SafetyStatus:       models.SafetySafe,
		PassportStatus:     models.DocumentNotSubmitted,
		FlightTicketStatus: models.DocumentNotSubmitted,
		RegistrationDate:   now,
	}

	if err := s.records.Create(ctx, rec); err != nil {
		if errors.Is(err, sentinel.ErrAlreadyUsed) {
			return nil, dErrors.New(dErrors.CodeConflict, "tourist already registered")
		}
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to create tourist record")
	}

	if err := s.activity.Touch(ctx, touristID, now); err != nil {
		s.logger.WarnContext(ctx, "failed to record registration activity", "error", err)
	}

	return s.view(rec, true), nil
}

// SubmitDocument marks the document as submitted. Submitting again while a
// review is pending is a no-op; a verified document cannot be resubmitted.
func (s *Service) SubmitDocument(ctx context.Context, touristID id.UserID, kind models.DocumentKind) (*TouristView, error) {
	ctx, span := s.tracer.Start(ctx, tracer.SpanSubmitDocument,
		tracer.String(tracer.AttrDocumentKind, string(kind)),
	)
	var err error
	defer func() { span.End(err) }()

	if !kind.Valid() {
		err = dErrors.New(dErrors.CodeInvalidInput, "unknown document kind")
		return nil, err
	}

	rec, err := s.findRecord(ctx, touristID)
	if err != nil {
		return nil, err
	}

	switch rec.DocumentStatusFor(kind) {
	case models.DocumentVerified:
		err = dErrors.New(dErrors.CodeConflict, "document already verified")
		return nil, err
	case models.DocumentSubmitted:
		// Repeat upload while under review: keep the submitted state.
	default:
		rec.SetDocumentStatus(kind, models.DocumentSubmitted)
		if updateErr := s.records.Update(ctx, rec); updateErr != nil {
			err = dErrors.Wrap(updateErr, dErrors.CodeInternal, "failed to update tourist record")
			return nil, err
		}
		s.logAudit(ctx, string(audit.EventDocumentSubmitted),
			"user_id", touristID.String(),
			"kind", string(kind),
		)
		if s.metrics != nil {
			s.metrics.IncrementDocumentsSubmitted(string(kind))
		}
	}

	if touchErr := s.activity.Touch(ctx, touristID, s.now()); touchErr != nil {
		s.logger.WarnContext(ctx, "failed to record upload activity", "error", touchErr)
	}

	return s.view(rec, s.online(ctx, touristID)), nil
}

// ReviewDocument applies an authority verdict to a submitted document.
// Approval moves it to verified; when the second document is approved the
// record gets its verification date. Rejection sends the document back to
// not submitted so the tourist can upload a replacement.
func (s *Service) ReviewDocument(ctx context.Context, touristID id.UserID, kind models.DocumentKind, outcome ReviewOutcome) (*TouristView, error) {
	ctx, span := s.tracer.Start(ctx, tracer.SpanReviewDocument,
		tracer.String(tracer.AttrDocumentKind, string(kind)),
		tracer.String(tracer.AttrReviewOutcome, string(outcome)),
	)
	var err error
	defer func() { span.End(err) }()

	if !kind.Valid() {
		err = dErrors.New(dErrors.CodeInvalidInput, "unknown document kind")
		return nil, err
	}

	rec, err := s.findRecord(ctx, touristID)
	if err != nil {
		return nil, err
	}

	if rec.DocumentStatusFor(kind) != models.DocumentSubmitted {
		err = dErrors.New(dErrors.CodeConflict, "document is not awaiting review")
		return nil, err
	}

	event := audit.EventDocumentVerified
	switch outcome {
	case OutcomeApprove:
		rec.SetDocumentStatus(kind, models.DocumentVerified)
		if status.DeriveForRecord(rec) == models.VerificationVerified {
			now := s.now()
			rec.VerificationDate = &now
		}
	case OutcomeReject:
		rec.SetDocumentStatus(kind, models.DocumentNotSubmitted)
		event = audit.EventDocumentRejected
	default:
		err = dErrors.New(dErrors.CodeInvalidInput, "outcome must be approve or reject")
		return nil, err
	}

	if updateErr := s.records.Update(ctx, rec); updateErr != nil {
		err = dErrors.Wrap(updateErr, dErrors.CodeInternal, "failed to update tourist record")
		return nil, err
	}

	s.logAudit(ctx, string(event),
		"user_id", touristID.String(),
		"kind", string(kind),
		"outcome", string(outcome),
	)
	if s.metrics != nil {
		s.metrics.IncrementDocumentsReviewed(string(kind), string(outcome))
	}

	return s.view(rec, s.online(ctx, touristID)), nil
}

// SetSafetyStatus records an externally-determined safety classification.
func (s *Service) SetSafetyStatus(ctx context.Context, touristID id.UserID, safety models.SafetyStatus) (*TouristView, error) {
	if !safety.Valid() {
		return nil, dErrors.New(dErrors.CodeInvalidInput, "unknown safety status")
	}

	rec, err := s.findRecord(ctx, touristID)
	if err != nil {
		return nil, err
	}

	rec.SafetyStatus = safety
	if err := s.records.Update(ctx, rec); err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to update tourist record")
	}

	return s.view(rec, s.online(ctx, touristID)), nil
}

// EscalateSafety raises the safety status when the new classification
// outranks the current one. A lower-ranked classification is ignored:
// SetSafetyStatus is the only downgrade path.
func (s *Service) EscalateSafety(ctx context.Context, touristID id.UserID, safety models.SafetyStatus) (*TouristView, error) {
	if !safety.Valid() {
		return nil, dErrors.New(dErrors.CodeInvalidInput, "unknown safety status")
	}

	rec, err := s.findRecord(ctx, touristID)
	if err != nil {
		return nil, err
	}

	if !safety.Outranks(rec.SafetyStatus) {
		return s.view(rec, s.online(ctx, touristID)), nil
	}

	rec.SafetyStatus = safety
	if err := s.records.Update(ctx, rec); err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to update tourist record")
	}

	return s.view(rec, s.online(ctx, touristID)), nil
}

// Get returns one tourist's record with derived verification and presence.
func (s *Service) Get(ctx context.Context, touristID id.UserID) (*TouristView, error) {
	rec, err := s.findRecord(ctx, touristID)
	if err != nil {
		return nil, err
	}
	return s.view(rec, s.online(ctx, touristID)), nil
}

// List returns matching records, newest first, with derived fields attached.
func (s *Service) List(ctx context.Context, filter record.ListFilter) ([]*TouristView, error) {
	ctx, span := s.tracer.Start(ctx, tracer.SpanListTourists,
		tracer.String(tracer.AttrSearch, filter.Search),
	)
	var err error
	defer func() { span.End(err) }()

	recs, err := s.records.List(ctx, filter)
	if err != nil {
		err = dErrors.Wrap(err, dErrors.CodeInternal, "failed to list tourist records")
		return nil, err
	}

	lastActive, err := s.activity.ListLastActive(ctx)
	if err != nil {
		err = dErrors.Wrap(err, dErrors.CodeInternal, "failed to list activity")
		return nil, err
	}

	now := s.now()
	views := make([]*TouristView, len(recs))
	for i, rec := range recs {
		at, ok := lastActive[rec.UserID]
		views[i] = s.view(rec, ok && presence.IsOnline(now, at, s.threshold))
	}
	span.SetAttributes(tracer.Int64(tracer.AttrTouristCount, int64(len(views))))
	return views, nil
}

// RecordActivity notes that the tourist was just active.
func (s *Service) RecordActivity(ctx context.Context, touristID id.UserID) error {
	if err := s.activity.Touch(ctx, touristID, s.now()); err != nil {
		return dErrors.Wrap(err, dErrors.CodeInternal, "failed to record activity")
	}
	return nil
}

// Stats aggregates the dashboard counters. Record and activity reads fan out
// concurrently; both must succeed for a coherent snapshot.
func (s *Service) Stats(ctx context.Context) (*Stats, error) {
	ctx, span := s.tracer.Start(ctx, tracer.SpanStats)
	var err error
	defer func() { span.End(err) }()

	var (
		recs       []*models.TouristRecord
		lastActive map[id.UserID]time.Time
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var listErr error
		recs, listErr = s.records.List(gctx, record.ListFilter{})
		return listErr
	})
	g.Go(func() error {
		var actErr error
		lastActive, actErr = s.activity.ListLastActive(gctx)
		return actErr
	})
	if err = g.Wait(); err != nil {
		err = dErrors.Wrap(err, dErrors.CodeInternal, "failed to aggregate stats")
		return nil, err
	}

	now := s.now()
	stats := &Stats{Total: len(recs)}
	for _, rec := range recs {
		switch status.DeriveForRecord(rec) {
		case models.VerificationVerified:
			stats.Verified++
		case models.VerificationUnderReview:
			stats.UnderReview++
		default:
			stats.Pending++
		}
		switch rec.SafetyStatus {
		case models.SafetyWarning:
			stats.Warning++
		case models.SafetyDanger:
			stats.Danger++
		default:
			stats.Safe++
		}
		if at, ok := lastActive[rec.UserID]; ok && presence.IsOnline(now, at, s.threshold) {
			stats.Online++
		}
	}
	return stats, nil
}

func (s *Service) findRecord(ctx context.Context, touristID id.UserID) (*models.TouristRecord, error) {
	rec, err := s.records.FindByUserID(ctx, touristID)
	if err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return nil, dErrors.New(dErrors.CodeNotFound, "tourist record not found")
		}
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to find tourist record")
	}
	return rec, nil
}

// online classifies presence for a single record read, best effort: a missing
// or unreadable timestamp means offline, never an error on the read path.
func (s *Service) online(ctx context.Context, touristID id.UserID) bool {
	at, err := s.activity.LastActive(ctx, touristID)
	if err != nil {
		return false
	}
	return presence.IsOnline(s.now(), at, s.threshold)
}

func (s *Service) view(rec *models.TouristRecord, online bool) *TouristView {
	return &TouristView{
		UserID:             rec.UserID.String(),
		FullName:           rec.FullName,
		Country:            rec.Country,
		City:               rec.City,
		Latitude:           rec.Latitude,
		Longitude:          rec.Longitude,
		SafetyStatus:       rec.SafetyStatus,
		PassportStatus:     rec.PassportStatus,
		FlightTicketStatus: rec.FlightTicketStatus,
		Verification:       status.DeriveForRecord(rec),
		Online:             online,
		RegistrationDate:   rec.RegistrationDate,
		VerificationDate:   rec.VerificationDate,
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
