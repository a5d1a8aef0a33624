package httptransport

import (
	"context"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"tourshield/internal/alert/models"
	alertservice "tourshield/internal/alert/service"
	"tourshield/internal/platform/middleware"
	id "tourshield/pkg/domain"
	"tourshield/pkg/platform/httputil"
)

// AlertService defines the interface for alert intake and feeds.
type AlertService interface {
	Report(ctx context.Context, touristID id.UserID, req *alertservice.ReportRequest) (*models.Alert, error)
	SOS(ctx context.Context, touristID id.UserID, latitude, longitude float64) (*models.Alert, error)
	ListRecent(ctx context.Context, limit int) ([]*models.Alert, error)
	ListByTourist(ctx context.Context, touristID id.UserID) ([]*models.Alert, error)
}

type alertHandler struct {
	alerts AlertService
	logger *slog.Logger
}

func newAlertHandler(alerts AlertService, logger *slog.Logger) *alertHandler {
	return &alertHandler{alerts: alerts, logger: logger}
}

// alertResponse is the JSON projection of an alert.
type alertResponse struct {
	ID        string    `json:"id"`
	TouristID string    `json:"tourist_id"`
	Kind      string    `json:"kind"`
	Severity  string    `json:"severity"`
	Message   string    `json:"message"`
	Latitude  float64   `json:"latitude"`
	Longitude float64   `json:"longitude"`
	CreatedAt time.Time `json:"created_at"`
}

func toAlertResponse(alert *models.Alert) alertResponse {
	return alertResponse{
		ID:        alert.ID.String(),
		TouristID: alert.TouristID.String(),
		Kind:      string(alert.Kind),
		Severity:  string(alert.Severity),
		Message:   alert.Message,
		Latitude:  alert.Latitude,
		Longitude: alert.Longitude,
		CreatedAt: alert.CreatedAt,
	}
}

func toAlertResponses(alerts []*models.Alert) []alertResponse {
	responses := make([]alertResponse, len(alerts))
	for i, alert := range alerts {
		responses[i] = toAlertResponse(alert)
	}
	return responses
}

// HandleReport records an incident reported by the viewer.
//
// Input: { "severity": "warning", "message": "...", "latitude": 0, "longitude": 0 }
func (h *alertHandler) HandleReport(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := middleware.GetRequestID(ctx)

	touristID, ok := viewerID(w, r)
	if !ok {
		return
	}
	req, ok := httputil.DecodeJSON[alertservice.ReportRequest](w, r, h.logger, ctx, requestID)
	if !ok {
		return
	}

	alert, err := h.alerts.Report(ctx, touristID, req)
	if err != nil {
		h.logger.WarnContext(ctx, "incident report failed",
			"error", err,
			"request_id", requestID,
		)
		httputil.WriteError(w, err)
		return
	}

	httputil.WriteJSON(w, http.StatusCreated, toAlertResponse(alert))
}

type sosRequest struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// HandleSOS raises a critical distress alert at the viewer's position.
func (h *alertHandler) HandleSOS(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := middleware.GetRequestID(ctx)

	touristID, ok := viewerID(w, r)
	if !ok {
		return
	}
	req, ok := httputil.DecodeJSON[sosRequest](w, r, h.logger, ctx, requestID)
	if !ok {
		return
	}

	alert, err := h.alerts.SOS(ctx, touristID, req.Latitude, req.Longitude)
	if err != nil {
		h.logger.ErrorContext(ctx, "sos failed",
			"error", err,
			"request_id", requestID,
		)
		httputil.WriteError(w, err)
		return
	}

	httputil.WriteJSON(w, http.StatusCreated, toAlertResponse(alert))
}

// HandleListRecent returns the newest alerts for the authority feed.
//
// Query params: limit.
func (h *alertHandler) HandleListRecent(w http.ResponseWriter, r *http.Request) {
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))

	alerts, err := h.alerts.ListRecent(r.Context(), limit)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, map[string]any{"alerts": toAlertResponses(alerts)})
}

// HandleListOwn returns the viewer's own alert history.
func (h *alertHandler) HandleListOwn(w http.ResponseWriter, r *http.Request) {
	touristID, ok := viewerID(w, r)
	if !ok {
		return
	}

	alerts, err := h.alerts.ListByTourist(r.Context(), touristID)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, map[string]any{"alerts": toAlertResponses(alerts)})
}
