package service

//go:generate mockgen -source=service.go -destination=mocks/mocks.go -package=mocks RecordStore,ActivityStore,AuditPublisher

import (
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"

	"tourshield/internal/tourist/models"
	"tourshield/internal/tourist/service/mocks"
	id "tourshield/pkg/domain"
)

type ServiceSuite struct {
	suite.Suite
	ctrl               *gomock.Controller
	mockRecordStore    *mocks.MockRecordStore
	mockActivityStore  *mocks.MockActivityStore
	mockAuditPublisher *mocks.MockAuditPublisher
	now                time.Time
	service            *Service
}

func (s *ServiceSuite) SetupTest() {
	s.ctrl = gomock.NewController(s.T())
	s.mockRecordStore = mocks.NewMockRecordStore(s.ctrl)
	s.mockActivityStore = mocks.NewMockActivityStore(s.ctrl)
	s.mockAuditPublisher = mocks.NewMockAuditPublisher(s.ctrl)
	s.now = time.Date(2026, time.March, 14, 9, 30, 0, 0, time.UTC)

	// Audit delivery has its own dedicated assertions; elsewhere it is noise.
	s.mockAuditPublisher.EXPECT().Emit(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	s.service = NewService(
		s.mockRecordStore,
		s.mockActivityStore,
		WithLogger(logger),
		WithAuditPublisher(s.mockAuditPublisher),
		WithPresenceThreshold(30*time.Minute),
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

func (s *ServiceSuite) newTestRecord(touristID id.UserID) *models.TouristRecord {
	return &models.TouristRecord{
		UserID:             touristID,
		FullName:           "Asha Rao",
		Country:            "India",
		City:               "Mumbai",
		Latitude:           19.076,
		Longitude:          72.8777,
		SafetyStatus:       models.SafetySafe,
		PassportStatus:     models.DocumentNotSubmitted,
		FlightTicketStatus: models.DocumentNotSubmitted,
		RegistrationDate:   s.now.Add(-48 * time.Hour),
	}
}

// expectOffline satisfies the presence lookup a single-record read performs.
func (s *ServiceSuite) expectOffline(touristID id.UserID) {
	s.mockActivityStore.EXPECT().
		LastActive(gomock.Any(), touristID).
		Return(time.Time{}, errNoActivity).
		AnyTimes()
}
