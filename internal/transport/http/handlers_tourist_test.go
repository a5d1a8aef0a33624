package httptransport

import (
	"encoding/json"
	"net/http"

	"go.uber.org/mock/gomock"

	authmodels "tourshield/internal/auth/models"
	"tourshield/internal/tourist/models"
	"tourshield/internal/tourist/service"
	"tourshield/internal/tourist/store/record"
	id "tourshield/pkg/domain"
)

func (s *RouterSuite) TestRegisterCreated() {
	userID, _, token := s.newViewer(authmodels.RoleTourist)
	s.tourists.EXPECT().
		Register(gomock.Any(), userID, gomock.Any()).
		DoAndReturn(func(_ any, _ id.UserID, req *service.RegisterRequest) (*service.TouristView, error) {
			s.Equal("Asha Rao", req.FullName)
			return &service.TouristView{UserID: userID.String(), FullName: req.FullName}, nil
		})

	rec := s.do(http.MethodPost, "/tourists/register", token,
		`{"full_name":"Asha Rao","country":"India","city":"Mumbai"}`)

	s.Equal(http.StatusCreated, rec.Code)
}

func (s *RouterSuite) TestRegisterForbiddenForAuthority() {
	_, _, token := s.newViewer(authmodels.RoleAuthority)
	s.tourists.EXPECT().Register(gomock.Any(), gomock.Any(), gomock.Any()).Times(0)

	rec := s.do(http.MethodPost, "/tourists/register", token,
		`{"full_name":"Asha Rao","country":"India"}`)

	s.Equal(http.StatusForbidden, rec.Code)
}

func (s *RouterSuite) TestSubmitDocumentByKind() {
	userID, _, token := s.newViewer(authmodels.RoleTourist)
	s.tourists.EXPECT().
		SubmitDocument(gomock.Any(), userID, models.KindPassport).
		Return(&service.TouristView{
			UserID:         userID.String(),
			PassportStatus: models.DocumentSubmitted,
			Verification:   models.VerificationUnderReview,
		}, nil)

	rec := s.do(http.MethodPost, "/tourists/documents/passport", token, "")

	s.Equal(http.StatusOK, rec.Code)
	var got service.TouristView
	s.Require().NoError(json.Unmarshal(rec.Body.Bytes(), &got))
	s.Equal(models.VerificationUnderReview, got.Verification)
}

func (s *RouterSuite) TestSubmitUnknownKindRejected() {
	_, _, token := s.newViewer(authmodels.RoleTourist)
	s.tourists.EXPECT().SubmitDocument(gomock.Any(), gomock.Any(), gomock.Any()).Times(0)

	rec := s.do(http.MethodPost, "/tourists/documents/visa", token, "")

	s.Equal(http.StatusBadRequest, rec.Code)
}

func (s *RouterSuite) TestReviewDocumentApprove() {
	_, _, token := s.newViewer(authmodels.RoleAuthority)
	touristID := id.NewUserID()
	s.tourists.EXPECT().
		ReviewDocument(gomock.Any(), touristID, models.KindFlightTicket, service.OutcomeApprove).
		Return(&service.TouristView{UserID: touristID.String()}, nil)

	rec := s.do(http.MethodPost,
		"/tourists/"+touristID.String()+"/documents/flight_ticket/review", token,
		`{"outcome":"approve"}`)

	s.Equal(http.StatusOK, rec.Code)
}

func (s *RouterSuite) TestReviewRequiresAuthorityRole() {
	_, _, token := s.newViewer(authmodels.RoleTourist)
	s.tourists.EXPECT().ReviewDocument(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Times(0)

	rec := s.do(http.MethodPost,
		"/tourists/"+id.NewUserID().String()+"/documents/passport/review", token,
		`{"outcome":"approve"}`)

	s.Equal(http.StatusForbidden, rec.Code)
}

func (s *RouterSuite) TestReviewRejectsUnknownOutcome() {
	_, _, token := s.newViewer(authmodels.RoleAuthority)
	s.tourists.EXPECT().ReviewDocument(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Times(0)

	rec := s.do(http.MethodPost,
		"/tourists/"+id.NewUserID().String()+"/documents/passport/review", token,
		`{"outcome":"maybe"}`)

	s.Equal(http.StatusBadRequest, rec.Code)
}

func (s *RouterSuite) TestSetSafetyStatus() {
	_, _, token := s.newViewer(authmodels.RoleAuthority)
	touristID := id.NewUserID()
	s.tourists.EXPECT().
		SetSafetyStatus(gomock.Any(), touristID, models.SafetyWarning).
		Return(&service.TouristView{UserID: touristID.String(), SafetyStatus: models.SafetyWarning}, nil)

	rec := s.do(http.MethodPost, "/tourists/"+touristID.String()+"/safety", token,
		`{"status":"warning"}`)

	s.Equal(http.StatusOK, rec.Code)
}

func (s *RouterSuite) TestListPassesQueryFilters() {
	_, _, token := s.newViewer(authmodels.RoleAuthority)
	s.tourists.EXPECT().
		List(gomock.Any(), record.ListFilter{
			Search:       "asha",
			SafetyStatus: models.SafetyDanger,
			Country:      "india",
		}).
		Return([]*service.TouristView{}, nil)

	rec := s.do(http.MethodGet,
		"/tourists?search=asha&safety_status=danger&country=india", token, "")

	s.Equal(http.StatusOK, rec.Code)
}

func (s *RouterSuite) TestListRejectsUnknownSafetyFilter() {
	_, _, token := s.newViewer(authmodels.RoleAuthority)
	s.tourists.EXPECT().List(gomock.Any(), gomock.Any()).Times(0)

	rec := s.do(http.MethodGet, "/tourists?safety_status=doomed", token, "")

	s.Equal(http.StatusBadRequest, rec.Code)
}

func (s *RouterSuite) TestStats() {
	_, _, token := s.newViewer(authmodels.RoleAuthority)
	s.tourists.EXPECT().Stats(gomock.Any()).Return(&service.Stats{Total: 3, Online: 1}, nil)

	rec := s.do(http.MethodGet, "/tourists/stats", token, "")

	s.Equal(http.StatusOK, rec.Code)
	var got service.Stats
	s.Require().NoError(json.Unmarshal(rec.Body.Bytes(), &got))
	s.Equal(3, got.Total)
	s.Equal(1, got.Online)
}

func (s *RouterSuite) TestActivityHeartbeat() {
	userID, _, token := s.newViewer(authmodels.RoleTourist)
	s.tourists.EXPECT().RecordActivity(gomock.Any(), userID).Return(nil)

	rec := s.do(http.MethodPost, "/tourists/activity", token, "")

	s.Equal(http.StatusOK, rec.Code)
}

func (s *RouterSuite) TestGetOwnRecord() {
	userID, _, token := s.newViewer(authmodels.RoleTourist)
	s.tourists.EXPECT().
		Get(gomock.Any(), userID).
		Return(&service.TouristView{UserID: userID.String(), Online: true}, nil)

	rec := s.do(http.MethodGet, "/tourists/me", token, "")

	s.Equal(http.StatusOK, rec.Code)
	var got service.TouristView
	s.Require().NoError(json.Unmarshal(rec.Body.Bytes(), &got))
	s.True(got.Online)
}
