package httptransport

import (
	"encoding/json"
	"net/http"
	"time"

	"go.uber.org/mock/gomock"

	alertmodels "tourshield/internal/alert/models"
	alertservice "tourshield/internal/alert/service"
	authmodels "tourshield/internal/auth/models"
	id "tourshield/pkg/domain"
)

func (s *RouterSuite) newAlert(touristID id.UserID) *alertmodels.Alert {
	return &alertmodels.Alert{
		ID:        id.NewAlertID(),
		TouristID: touristID,
		Kind:      alertmodels.KindIncident,
		Severity:  alertmodels.SeverityWarning,
		Message:   "lost passport near the station",
		CreatedAt: time.Now().UTC(),
	}
}

func (s *RouterSuite) TestReportIncidentCreated() {
	userID, _, token := s.newViewer(authmodels.RoleTourist)
	s.alerts.EXPECT().
		Report(gomock.Any(), userID, gomock.Any()).
		DoAndReturn(func(_ any, _ id.UserID, req *alertservice.ReportRequest) (*alertmodels.Alert, error) {
			s.Equal("warning", req.Severity)
			return s.newAlert(userID), nil
		})

	rec := s.do(http.MethodPost, "/alerts/report", token,
		`{"severity":"warning","message":"lost passport near the station"}`)

	s.Equal(http.StatusCreated, rec.Code)
	var got alertResponse
	s.Require().NoError(json.Unmarshal(rec.Body.Bytes(), &got))
	s.Equal(userID.String(), got.TouristID)
}

func (s *RouterSuite) TestSOSCreated() {
	userID, _, token := s.newViewer(authmodels.RoleTourist)
	alert := s.newAlert(userID)
	alert.Kind = alertmodels.KindSOS
	alert.Severity = alertmodels.SeverityCritical
	s.alerts.EXPECT().
		SOS(gomock.Any(), userID, 41.0082, 28.9784).
		Return(alert, nil)

	rec := s.do(http.MethodPost, "/alerts/sos", token,
		`{"latitude":41.0082,"longitude":28.9784}`)

	s.Equal(http.StatusCreated, rec.Code)
	var got alertResponse
	s.Require().NoError(json.Unmarshal(rec.Body.Bytes(), &got))
	s.Equal("sos", got.Kind)
	s.Equal("critical", got.Severity)
}

func (s *RouterSuite) TestAlertFeedRequiresAuthority() {
	_, _, token := s.newViewer(authmodels.RoleTourist)
	s.alerts.EXPECT().ListRecent(gomock.Any(), gomock.Any()).Times(0)

	rec := s.do(http.MethodGet, "/alerts", token, "")

	s.Equal(http.StatusForbidden, rec.Code)
}

func (s *RouterSuite) TestAlertFeedPassesLimit() {
	userID, _, token := s.newViewer(authmodels.RoleAuthority)
	s.alerts.EXPECT().
		ListRecent(gomock.Any(), 5).
		Return([]*alertmodels.Alert{s.newAlert(userID)}, nil)

	rec := s.do(http.MethodGet, "/alerts?limit=5", token, "")

	s.Equal(http.StatusOK, rec.Code)
	var got map[string][]alertResponse
	s.Require().NoError(json.Unmarshal(rec.Body.Bytes(), &got))
	s.Len(got["alerts"], 1)
}

func (s *RouterSuite) TestOwnAlertHistory() {
	userID, _, token := s.newViewer(authmodels.RoleTourist)
	s.alerts.EXPECT().
		ListByTourist(gomock.Any(), userID).
		Return([]*alertmodels.Alert{s.newAlert(userID)}, nil)

	rec := s.do(http.MethodGet, "/alerts/me", token, "")

	s.Equal(http.StatusOK, rec.Code)
}
