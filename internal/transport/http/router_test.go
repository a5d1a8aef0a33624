package httptransport

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"

	"go.uber.org/mock/gomock"

	authmodels "tourshield/internal/auth/models"
	id "tourshield/pkg/domain"
	dErrors "tourshield/pkg/domain-errors"
)

func (s *RouterSuite) resolveAs(userID id.UserID, role authmodels.Role) {
	s.resolver.EXPECT().
		Resolve(gomock.Any(), gomock.Any()).
		Return(&authmodels.User{
			ID:          userID,
			Email:       "viewer@example.com",
			DisplayName: "Viewer",
			Role:        role,
		}, nil)
}

func (s *RouterSuite) TestLoginPageIsPublic() {
	rec := s.do(http.MethodGet, "/login", "", "")

	s.Equal(http.StatusOK, rec.Code)
}

func (s *RouterSuite) TestDashboardRedirectsAnonymousToLogin() {
	rec := s.do(http.MethodGet, "/tourist-dashboard", "", "")

	s.Equal(http.StatusFound, rec.Code)
	s.Equal("/login", rec.Header().Get("Location"))
}

func (s *RouterSuite) TestDashboardRendersForMatchingRole() {
	userID, _, token := s.newViewer(authmodels.RoleTourist)
	s.resolveAs(userID, authmodels.RoleTourist)

	rec := s.do(http.MethodGet, "/tourist-dashboard", token, "")

	s.Equal(http.StatusOK, rec.Code)
	s.Contains(rec.Body.String(), "tourist-dashboard")
}

func (s *RouterSuite) TestDashboardRedirectsWrongRoleHome() {
	userID, _, token := s.newViewer(authmodels.RoleAuthority)
	s.resolveAs(userID, authmodels.RoleAuthority)

	rec := s.do(http.MethodGet, "/tourist-dashboard", token, "")

	s.Equal(http.StatusFound, rec.Code)
	s.Equal("/authority-dashboard", rec.Header().Get("Location"))
}

func (s *RouterSuite) TestDashboardWaitsWhenIdentityBackendIsDown() {
	_, _, token := s.newViewer(authmodels.RoleTourist)
	s.resolver.EXPECT().
		Resolve(gomock.Any(), gomock.Any()).
		Return(nil, errors.New("connection refused"))

	rec := s.do(http.MethodGet, "/authority-dashboard", token, "")

	s.Equal(http.StatusAccepted, rec.Code)
	s.NotEmpty(rec.Header().Get("Retry-After"))
}

func (s *RouterSuite) TestDashboardTreatsDeadSessionAsSignedOut() {
	_, _, token := s.newViewer(authmodels.RoleTourist)
	s.resolver.EXPECT().
		Resolve(gomock.Any(), gomock.Any()).
		Return(nil, dErrors.New(dErrors.CodeUnauthorized, "session revoked"))

	rec := s.do(http.MethodGet, "/tourist-dashboard", token, "")

	s.Equal(http.StatusFound, rec.Code)
	s.Equal("/login", rec.Header().Get("Location"))
}

func (s *RouterSuite) TestHealthEndpoints() {
	rec := s.do(http.MethodGet, "/health/live", "", "")
	s.Equal(http.StatusOK, rec.Code)

	rec = s.do(http.MethodGet, "/health/ready", "", "")
	s.Equal(http.StatusOK, rec.Code)
}

func (s *RouterSuite) TestUnsupportedContentTypeRejected() {
	req := httptest.NewRequest(http.MethodPost, "/auth/sign-in", strings.NewReader("email=x"))
	req.Header.Set("Content-Type", "text/plain")
	rec := httptest.NewRecorder()
	s.router.ServeHTTP(rec, req)

	s.Equal(http.StatusUnsupportedMediaType, rec.Code)
}
