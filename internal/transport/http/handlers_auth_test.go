package httptransport

import (
	"encoding/json"
	"net/http"
	"time"

	"go.uber.org/mock/gomock"

	authmodels "tourshield/internal/auth/models"
	jwttoken "tourshield/internal/jwt_token"
	id "tourshield/pkg/domain"
	dErrors "tourshield/pkg/domain-errors"
)

func (s *RouterSuite) TestSignUpCreated() {
	result := &authmodels.SignInResult{
		Token:     "signed-token",
		UserID:    "user-1",
		Role:      "tourist",
		ExpiresAt: time.Now().Add(time.Hour),
	}
	s.auth.EXPECT().
		SignUp(gomock.Any(), gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ any, req *authmodels.SignUpRequest, _ string) (*authmodels.SignInResult, error) {
			s.Equal("asha@example.com", req.Email)
			return result, nil
		})

	rec := s.do(http.MethodPost, "/auth/sign-up", "",
		`{"email":"asha@example.com","password":"correct-horse","role":"tourist","display_name":"Asha"}`)

	s.Equal(http.StatusCreated, rec.Code)
	var got authmodels.SignInResult
	s.Require().NoError(json.Unmarshal(rec.Body.Bytes(), &got))
	s.Equal(result.Token, got.Token)
}

func (s *RouterSuite) TestSignUpBadJSON() {
	s.auth.EXPECT().SignUp(gomock.Any(), gomock.Any(), gomock.Any()).Times(0)

	rec := s.do(http.MethodPost, "/auth/sign-up", "", "{bad-json")

	s.Equal(http.StatusBadRequest, rec.Code)
}

func (s *RouterSuite) TestSignInWrongPassword() {
	s.auth.EXPECT().
		SignIn(gomock.Any(), gomock.Any(), gomock.Any()).
		Return(nil, dErrors.New(dErrors.CodeUnauthorized, "invalid email or password"))

	rec := s.do(http.MethodPost, "/auth/sign-in", "",
		`{"email":"asha@example.com","password":"wrong"}`)

	s.Equal(http.StatusUnauthorized, rec.Code)
	var body map[string]string
	s.Require().NoError(json.Unmarshal(rec.Body.Bytes(), &body))
	s.Equal("unauthorized", body["error"])
}

func (s *RouterSuite) TestSignOutRequiresToken() {
	rec := s.do(http.MethodPost, "/auth/sign-out", "", "")

	s.Equal(http.StatusUnauthorized, rec.Code)
}

func (s *RouterSuite) TestSignOutRevokesCurrentSession() {
	_, sessionID, token := s.newViewer(authmodels.RoleTourist)
	s.auth.EXPECT().SignOut(gomock.Any(), sessionID).Return(nil)

	rec := s.do(http.MethodPost, "/auth/sign-out", token, "")

	s.Equal(http.StatusOK, rec.Code)
}

func (s *RouterSuite) TestSignOutAll() {
	userID, _, token := s.newViewer(authmodels.RoleTourist)
	s.auth.EXPECT().SignOutAll(gomock.Any(), userID).Return(nil)

	rec := s.do(http.MethodPost, "/auth/sign-out-all", token, "")

	s.Equal(http.StatusOK, rec.Code)
}

func (s *RouterSuite) TestProfileReturnsViewer() {
	userID, _, token := s.newViewer(authmodels.RoleAuthority)
	s.auth.EXPECT().Profile(gomock.Any(), userID).Return(&authmodels.ProfileResult{
		UserID:      userID.String(),
		Email:       "officer@example.com",
		DisplayName: "Officer",
		Role:        "authority",
	}, nil)

	rec := s.do(http.MethodGet, "/auth/me", token, "")

	s.Equal(http.StatusOK, rec.Code)
	var got authmodels.ProfileResult
	s.Require().NoError(json.Unmarshal(rec.Body.Bytes(), &got))
	s.Equal("authority", got.Role)
}

func (s *RouterSuite) TestExpiredTokenRejected() {
	expiredJWT := jwttoken.NewJWTService("test-signing-key", "tourshield-test", -time.Minute)
	token, err := expiredJWT.GenerateSessionToken(id.NewUserID(), id.NewSessionID(), "tourist")
	s.Require().NoError(err)

	rec := s.do(http.MethodGet, "/auth/me", token, "")

	s.Equal(http.StatusUnauthorized, rec.Code)
}
