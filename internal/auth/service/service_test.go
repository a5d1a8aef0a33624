package service

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/mock/gomock"
	"golang.org/x/crypto/bcrypt"

	"tourshield/internal/auth/models"
	"tourshield/internal/sentinel"
	id "tourshield/pkg/domain"
	dErrors "tourshield/pkg/domain-errors"
)

const testUserAgent = "Mozilla/5.0 (X11; Linux x86_64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0 Safari/537.36"

func (s *ServiceSuite) TestSignUpCreatesAndSignsIn() {
	var createdUser *models.User
	s.mockUserStore.EXPECT().
		Create(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, u *models.User) error {
			createdUser = u
			return nil
		})
	s.mockSessionStore.EXPECT().
		Create(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, sess *models.Session) error {
			s.Equal(createdUser.ID, sess.UserID)
			s.Equal(models.SessionStatusActive, sess.Status)
			s.Equal(s.now.Add(2*time.Hour), sess.ExpiresAt)
			return nil
		})
	s.mockJWT.EXPECT().
		GenerateSessionToken(gomock.Any(), gomock.Any(), "tourist").
		Return("signed-token", nil)

	result, err := s.service.SignUp(context.Background(), &models.SignUpRequest{
		Email:       "  New@Example.COM ",
		Password:    testPassword,
		Role:        "tourist",
		DisplayName: "New Tourist",
	}, testUserAgent)

	s.Require().NoError(err)
	s.Equal("signed-token", result.Token)
	s.Equal("tourist", result.Role)
	s.Equal(s.now.Add(2*time.Hour), result.ExpiresAt)

	s.Require().NotNil(createdUser)
	s.Equal("new@example.com", createdUser.Email)
	s.Equal(models.RoleTourist, createdUser.Role)
	s.NoError(bcrypt.CompareHashAndPassword([]byte(createdUser.PasswordHash), []byte(testPassword)))
}

func (s *ServiceSuite) TestSignUpDuplicateEmail() {
	s.mockUserStore.EXPECT().
		Create(gomock.Any(), gomock.Any()).
		Return(fmt.Errorf("email taken: %w", sentinel.ErrAlreadyUsed))

	_, err := s.service.SignUp(context.Background(), &models.SignUpRequest{
		Email:       "taken@example.com",
		Password:    testPassword,
		Role:        "authority",
		DisplayName: "Officer",
	}, testUserAgent)

	s.True(dErrors.HasCode(err, dErrors.CodeConflict))
}

func (s *ServiceSuite) TestSignUpRejectsUnknownRole() {
	_, err := s.service.SignUp(context.Background(), &models.SignUpRequest{
		Email:       "who@example.com",
		Password:    testPassword,
		Role:        "admin",
		DisplayName: "Nobody",
	}, testUserAgent)

	s.True(dErrors.HasCode(err, dErrors.CodeInvalidInput))
}

func (s *ServiceSuite) TestSignInSuccess() {
	user := s.newTestUser(models.RoleAuthority)
	s.mockUserStore.EXPECT().
		FindByEmail(gomock.Any(), "user@test.com").
		Return(user, nil)

	var created *models.Session
	s.mockSessionStore.EXPECT().
		Create(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, sess *models.Session) error {
			created = sess
			return nil
		})
	s.mockJWT.EXPECT().
		GenerateSessionToken(user.ID, gomock.Any(), "authority").
		Return("signed-token", nil)

	result, err := s.service.SignIn(context.Background(), &models.SignInRequest{
		Email:    "User@Test.com",
		Password: testPassword,
	}, testUserAgent)

	s.Require().NoError(err)
	s.Equal("signed-token", result.Token)
	s.Equal("authority", result.Role)
	s.Equal(user.ID.String(), result.UserID)

	s.Require().NotNil(created)
	s.Contains(created.DeviceDisplayName, "Chrome")
}

func (s *ServiceSuite) TestSignInWrongPassword() {
	user := s.newTestUser(models.RoleTourist)
	s.mockUserStore.EXPECT().
		FindByEmail(gomock.Any(), user.Email).
		Return(user, nil)

	_, err := s.service.SignIn(context.Background(), &models.SignInRequest{
		Email:    user.Email,
		Password: "not-the-password",
	}, testUserAgent)

	s.True(dErrors.HasCode(err, dErrors.CodeUnauthorized))
}

func (s *ServiceSuite) TestSignInUnknownEmail() {
	s.mockUserStore.EXPECT().
		FindByEmail(gomock.Any(), "ghost@test.com").
		Return(nil, fmt.Errorf("user not found: %w", sentinel.ErrNotFound))

	_, err := s.service.SignIn(context.Background(), &models.SignInRequest{
		Email:    "ghost@test.com",
		Password: testPassword,
	}, testUserAgent)

	s.True(dErrors.HasCode(err, dErrors.CodeUnauthorized))
}

func (s *ServiceSuite) TestSignOutRevokesSession() {
	session := s.newTestSession(id.NewUserID())
	s.mockSessionStore.EXPECT().
		FindByID(gomock.Any(), session.ID).
		Return(session, nil)
	s.mockSessionStore.EXPECT().
		Update(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, sess *models.Session) error {
			s.Equal(models.SessionStatusRevoked, sess.Status)
			s.Require().NotNil(sess.RevokedAt)
			s.Equal(s.now, *sess.RevokedAt)
			return nil
		})

	s.Require().NoError(s.service.SignOut(context.Background(), session.ID))
}

func (s *ServiceSuite) TestSignOutAlreadyRevoked() {
	session := s.newTestSession(id.NewUserID())
	session.Revoke(s.now.Add(-time.Minute))
	s.mockSessionStore.EXPECT().
		FindByID(gomock.Any(), session.ID).
		Return(session, nil)

	// No Update expected: revocation is idempotent.
	s.Require().NoError(s.service.SignOut(context.Background(), session.ID))
}

func (s *ServiceSuite) TestSignOutUnknownSession() {
	sessionID := id.NewSessionID()
	s.mockSessionStore.EXPECT().
		FindByID(gomock.Any(), sessionID).
		Return(nil, fmt.Errorf("session not found: %w", sentinel.ErrNotFound))

	err := s.service.SignOut(context.Background(), sessionID)
	s.True(dErrors.HasCode(err, dErrors.CodeNotFound))
}

func (s *ServiceSuite) TestSignOutAllToleratesNoSessions() {
	userID := id.NewUserID()
	s.mockSessionStore.EXPECT().
		DeleteSessionsByUser(gomock.Any(), userID).
		Return(fmt.Errorf("no sessions for user: %w", sentinel.ErrNotFound))

	s.Require().NoError(s.service.SignOutAll(context.Background(), userID))
}

func (s *ServiceSuite) TestProfile() {
	user := s.newTestUser(models.RoleTourist)
	s.mockUserStore.EXPECT().
		FindByID(gomock.Any(), user.ID).
		Return(user, nil)

	profile, err := s.service.Profile(context.Background(), user.ID)
	s.Require().NoError(err)
	s.Equal(user.ID.String(), profile.UserID)
	s.Equal(user.Email, profile.Email)
	s.Equal("tourist", profile.Role)
}

func (s *ServiceSuite) TestResolveActiveSession() {
	user := s.newTestUser(models.RoleTourist)
	session := s.newTestSession(user.ID)
	s.mockSessionStore.EXPECT().
		FindByID(gomock.Any(), session.ID).
		Return(session, nil)
	s.mockUserStore.EXPECT().
		FindByID(gomock.Any(), user.ID).
		Return(user, nil)
	s.mockSessionStore.EXPECT().
		Update(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, sess *models.Session) error {
			s.Equal(s.now, sess.LastSeenAt)
			return nil
		})

	resolved, err := s.service.Resolve(context.Background(), session.ID)
	s.Require().NoError(err)
	s.Equal(user.ID, resolved.ID)
}

func (s *ServiceSuite) TestResolveRevokedSession() {
	session := s.newTestSession(id.NewUserID())
	session.Revoke(s.now.Add(-time.Minute))
	s.mockSessionStore.EXPECT().
		FindByID(gomock.Any(), session.ID).
		Return(session, nil)

	_, err := s.service.Resolve(context.Background(), session.ID)
	s.True(dErrors.HasCode(err, dErrors.CodeUnauthorized))
}

func (s *ServiceSuite) TestResolveExpiredSession() {
	session := s.newTestSession(id.NewUserID())
	session.ExpiresAt = s.now.Add(-time.Second)
	s.mockSessionStore.EXPECT().
		FindByID(gomock.Any(), session.ID).
		Return(session, nil)

	_, err := s.service.Resolve(context.Background(), session.ID)
	s.True(dErrors.HasCode(err, dErrors.CodeUnauthorized))
}

func (s *ServiceSuite) TestResolveSurvivesActivityWriteFailure() {
	user := s.newTestUser(models.RoleAuthority)
	session := s.newTestSession(user.ID)
	s.mockSessionStore.EXPECT().
		FindByID(gomock.Any(), session.ID).
		Return(session, nil)
	s.mockUserStore.EXPECT().
		FindByID(gomock.Any(), user.ID).
		Return(user, nil)
	s.mockSessionStore.EXPECT().
		Update(gomock.Any(), gomock.Any()).
		Return(fmt.Errorf("redis unavailable: %w", sentinel.ErrUnavailable))

	resolved, err := s.service.Resolve(context.Background(), session.ID)
	s.Require().NoError(err)
	s.Equal(user.ID, resolved.ID)
}
