package httptransport

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"tourshield/internal/platform/middleware"
	"tourshield/internal/tourist/models"
	"tourshield/internal/tourist/service"
	"tourshield/internal/tourist/store/record"
	id "tourshield/pkg/domain"
	dErrors "tourshield/pkg/domain-errors"
	"tourshield/pkg/platform/httputil"
)

// TouristService defines the interface for tourist record operations.
type TouristService interface {
	Register(ctx context.Context, touristID id.UserID, req *service.RegisterRequest) (*service.TouristView, error)
	SubmitDocument(ctx context.Context, touristID id.UserID, kind models.DocumentKind) (*service.TouristView, error)
	ReviewDocument(ctx context.Context, touristID id.UserID, kind models.DocumentKind, outcome service.ReviewOutcome) (*service.TouristView, error)
	SetSafetyStatus(ctx context.Context, touristID id.UserID, safety models.SafetyStatus) (*service.TouristView, error)
	Get(ctx context.Context, touristID id.UserID) (*service.TouristView, error)
	List(ctx context.Context, filter record.ListFilter) ([]*service.TouristView, error)
	Stats(ctx context.Context) (*service.Stats, error)
	RecordActivity(ctx context.Context, touristID id.UserID) error
}

type touristHandler struct {
	tourists TouristService
	logger   *slog.Logger
}

func newTouristHandler(tourists TouristService, logger *slog.Logger) *touristHandler {
	return &touristHandler{tourists: tourists, logger: logger}
}

// HandleRegister creates the viewer's registration record.
//
// Input: { "full_name": "...", "country": "...", "city": "...", "latitude": 0, "longitude": 0 }
func (h *touristHandler) HandleRegister(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := middleware.GetRequestID(ctx)

	touristID, ok := viewerID(w, r)
	if !ok {
		return
	}
	req, ok := httputil.DecodeJSON[service.RegisterRequest](w, r, h.logger, ctx, requestID)
	if !ok {
		return
	}

	view, err := h.tourists.Register(ctx, touristID, req)
	if err != nil {
		h.logger.WarnContext(ctx, "tourist registration failed",
			"error", err,
			"request_id", requestID,
		)
		httputil.WriteError(w, err)
		return
	}

	httputil.WriteJSON(w, http.StatusCreated, view)
}

// HandleSubmitDocument marks the viewer's document as submitted for review.
func (h *touristHandler) HandleSubmitDocument(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	touristID, ok := viewerID(w, r)
	if !ok {
		return
	}
	kind, err := models.ParseDocumentKind(chi.URLParam(r, "kind"))
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	view, err := h.tourists.SubmitDocument(ctx, touristID, kind)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, view)
}

type reviewRequest struct {
	Outcome string `json:"outcome"`
}

// HandleReviewDocument applies an authority verdict to a tourist's document.
//
// Input: { "outcome": "approve" } or { "outcome": "reject" }
func (h *touristHandler) HandleReviewDocument(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := middleware.GetRequestID(ctx)

	touristID, err := id.ParseUserID(chi.URLParam(r, "user_id"))
	if err != nil {
		httputil.WriteError(w, dErrors.New(dErrors.CodeInvalidInput, "invalid tourist id"))
		return
	}
	kind, err := models.ParseDocumentKind(chi.URLParam(r, "kind"))
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	req, ok := httputil.DecodeJSON[reviewRequest](w, r, h.logger, ctx, requestID)
	if !ok {
		return
	}
	outcome, err := service.ParseReviewOutcome(req.Outcome)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	view, err := h.tourists.ReviewDocument(ctx, touristID, kind, outcome)
	if err != nil {
		h.logger.WarnContext(ctx, "document review failed",
			"error", err,
			"request_id", requestID,
			"tourist_id", touristID.String(),
		)
		httputil.WriteError(w, err)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, view)
}

type safetyRequest struct {
	Status string `json:"status"`
}

// HandleSetSafety records an authority's safety classification for a tourist.
func (h *touristHandler) HandleSetSafety(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := middleware.GetRequestID(ctx)

	touristID, err := id.ParseUserID(chi.URLParam(r, "user_id"))
	if err != nil {
		httputil.WriteError(w, dErrors.New(dErrors.CodeInvalidInput, "invalid tourist id"))
		return
	}
	req, ok := httputil.DecodeJSON[safetyRequest](w, r, h.logger, ctx, requestID)
	if !ok {
		return
	}

	view, err := h.tourists.SetSafetyStatus(ctx, touristID, models.SafetyStatus(req.Status))
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, view)
}

// HandleGetOwn returns the viewer's own record with derived fields.
func (h *touristHandler) HandleGetOwn(w http.ResponseWriter, r *http.Request) {
	touristID, ok := viewerID(w, r)
	if !ok {
		return
	}

	view, err := h.tourists.Get(r.Context(), touristID)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, view)
}

// HandleGet returns one tourist's record for the authority dashboard.
func (h *touristHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	touristID, err := id.ParseUserID(chi.URLParam(r, "user_id"))
	if err != nil {
		httputil.WriteError(w, dErrors.New(dErrors.CodeInvalidInput, "invalid tourist id"))
		return
	}

	view, err := h.tourists.Get(r.Context(), touristID)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, view)
}

// HandleList returns tourists matching the query filters, newest first.
//
// Query params: search, safety_status, country.
func (h *touristHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	filter := record.ListFilter{
		Search:       r.URL.Query().Get("search"),
		SafetyStatus: models.SafetyStatus(r.URL.Query().Get("safety_status")),
		Country:      r.URL.Query().Get("country"),
	}
	if filter.SafetyStatus != "" && !filter.SafetyStatus.Valid() {
		httputil.WriteError(w, dErrors.New(dErrors.CodeInvalidInput, "unknown safety status"))
		return
	}

	views, err := h.tourists.List(r.Context(), filter)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, map[string]any{"tourists": views})
}

// HandleStats returns the authority dashboard aggregates.
func (h *touristHandler) HandleStats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.tourists.Stats(r.Context())
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, stats)
}

// HandleActivity is the presence heartbeat.
func (h *touristHandler) HandleActivity(w http.ResponseWriter, r *http.Request) {
	touristID, ok := viewerID(w, r)
	if !ok {
		return
	}

	if err := h.tourists.RecordActivity(r.Context(), touristID); err != nil {
		httputil.WriteError(w, err)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, map[string]string{"status": "recorded"})
}

// viewerID extracts the authenticated viewer's user ID. RequireAuth runs
// upstream, so a missing or malformed ID means a bug in the token layer.
func viewerID(w http.ResponseWriter, r *http.Request) (id.UserID, bool) {
	userID, err := id.ParseUserID(middleware.GetUserID(r.Context()))
	if err != nil {
		httputil.WriteError(w, dErrors.New(dErrors.CodeUnauthorized, "invalid session"))
		return id.UserID{}, false
	}
	return userID, true
}
