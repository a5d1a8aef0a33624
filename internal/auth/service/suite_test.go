package service

//go:generate mockgen -source=service.go -destination=mocks/mocks.go -package=mocks UserStore,SessionStore,TokenGenerator,AuditPublisher

import (
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"
	"golang.org/x/crypto/bcrypt"

	"tourshield/internal/auth/models"
	"tourshield/internal/auth/service/mocks"
	id "tourshield/pkg/domain"
)

const testPassword = "correct-horse-battery"

type ServiceSuite struct {
	suite.Suite
	ctrl               *gomock.Controller
	mockUserStore      *mocks.MockUserStore
	mockSessionStore   *mocks.MockSessionStore
	mockJWT            *mocks.MockTokenGenerator
	mockAuditPublisher *mocks.MockAuditPublisher
	now                time.Time
	service            *Service
}

func (s *ServiceSuite) SetupTest() {
	s.ctrl = gomock.NewController(s.T())
	s.mockUserStore = mocks.NewMockUserStore(s.ctrl)
	s.mockSessionStore = mocks.NewMockSessionStore(s.ctrl)
	s.mockJWT = mocks.NewMockTokenGenerator(s.ctrl)
	s.mockAuditPublisher = mocks.NewMockAuditPublisher(s.ctrl)
	s.now = time.Date(2026, time.March, 14, 9, 30, 0, 0, time.UTC)

	// Audit delivery has its own dedicated assertions; elsewhere it is noise.
	s.mockAuditPublisher.EXPECT().Emit(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	s.service = NewService(
		s.mockUserStore,
		s.mockSessionStore,
		s.mockJWT,
		WithLogger(logger),
		WithAuditPublisher(s.mockAuditPublisher),
		WithSessionTTL(2*time.Hour),
		WithClock(func() time.Time { return s.now }),
	)
}

func (s *ServiceSuite) TearDownTest() {
	s.ctrl.Finish()
}

func TestServiceSuite(t *testing.T) {
	suite.Run(t, new(ServiceSuite))
}

// Shared test fixture builders - used across multiple test files

func (s *ServiceSuite) newTestUser(role models.Role) *models.User {
	hash, err := bcrypt.GenerateFromPassword([]byte(testPassword), bcrypt.MinCost)
	s.Require().NoError(err)
	return &models.User{
		ID:           id.NewUserID(),
		Email:        "user@test.com",
		DisplayName:  "Test User",
		Role:         role,
		PasswordHash: string(hash),
		CreatedAt:    s.now.Add(-24 * time.Hour),
	}
}

func (s *ServiceSuite) newTestSession(userID id.UserID) *models.Session {
	return &models.Session{
		ID:                id.NewSessionID(),
		UserID:            userID,
		Status:            models.SessionStatusActive,
		DeviceDisplayName: "Chrome on Linux",
		CreatedAt:         s.now.Add(-time.Hour),
		ExpiresAt:         s.now.Add(time.Hour),
		LastSeenAt:        s.now.Add(-time.Hour),
	}
}
