package service

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/mock/gomock"

	"tourshield/internal/sentinel"
	"tourshield/internal/tourist/models"
	"tourshield/internal/tourist/store/record"
	id "tourshield/pkg/domain"
	dErrors "tourshield/pkg/domain-errors"
)

var errNoActivity = fmt.Errorf("activity for tourist: %w", sentinel.ErrNotFound)

func (s *ServiceSuite) TestRegisterCreatesRecord() {
	touristID := id.NewUserID()

	var created *models.TouristRecord
	s.mockRecordStore.EXPECT().
		Create(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, rec *models.TouristRecord) error {
			created = rec
			return nil
		})
	s.mockActivityStore.EXPECT().Touch(gomock.Any(), touristID, s.now).Return(nil)

	view, err := s.service.Register(context.Background(), touristID, &RegisterRequest{
		FullName: "Asha Rao",
		Country:  "India",
		City:     "Mumbai",
	})

	s.Require().NoError(err)
	s.Require().NotNil(created)
	s.Equal(models.SafetySafe, created.SafetyStatus)
	s.Equal(models.DocumentNotSubmitted, created.PassportStatus)
	s.Equal(models.DocumentNotSubmitted, created.FlightTicketStatus)
	s.Equal(s.now, created.RegistrationDate)
	s.Equal(models.VerificationPending, view.Verification)
	s.True(view.Online)
}

func (s *ServiceSuite) TestRegisterDuplicate() {
	touristID := id.NewUserID()
	s.mockRecordStore.EXPECT().
		Create(gomock.Any(), gomock.Any()).
		Return(fmt.Errorf("tourist record: %w", sentinel.ErrAlreadyUsed))

	_, err := s.service.Register(context.Background(), touristID, &RegisterRequest{
		FullName: "Asha Rao",
		Country:  "India",
	})

	s.Require().Error(err)
	s.True(dErrors.HasCode(err, dErrors.CodeConflict))
}

func (s *ServiceSuite) TestRegisterRequiresFullName() {
	_, err := s.service.Register(context.Background(), id.NewUserID(), &RegisterRequest{
		Country: "India",
	})

	s.Require().Error(err)
	s.True(dErrors.HasCode(err, dErrors.CodeValidation))
}

func (s *ServiceSuite) TestSubmitDocumentMarksSubmitted() {
	touristID := id.NewUserID()
	rec := s.newTestRecord(touristID)

	s.mockRecordStore.EXPECT().FindByUserID(gomock.Any(), touristID).Return(rec, nil)
	s.mockRecordStore.EXPECT().
		Update(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, updated *models.TouristRecord) error {
			s.Equal(models.DocumentSubmitted, updated.PassportStatus)
			return nil
		})
	s.mockActivityStore.EXPECT().Touch(gomock.Any(), touristID, s.now).Return(nil)
	s.expectOffline(touristID)

	view, err := s.service.SubmitDocument(context.Background(), touristID, models.KindPassport)

	s.Require().NoError(err)
	s.Equal(models.DocumentSubmitted, view.PassportStatus)
	s.Equal(models.VerificationUnderReview, view.Verification)
}

func (s *ServiceSuite) TestSubmitDocumentRepeatUploadIsNoOp() {
	touristID := id.NewUserID()
	rec := s.newTestRecord(touristID)
	rec.FlightTicketStatus = models.DocumentSubmitted

	s.mockRecordStore.EXPECT().FindByUserID(gomock.Any(), touristID).Return(rec, nil)
	s.mockActivityStore.EXPECT().Touch(gomock.Any(), touristID, s.now).Return(nil)
	s.expectOffline(touristID)

	view, err := s.service.SubmitDocument(context.Background(), touristID, models.KindFlightTicket)

	s.Require().NoError(err)
	s.Equal(models.DocumentSubmitted, view.FlightTicketStatus)
}

func (s *ServiceSuite) TestSubmitVerifiedDocumentConflicts() {
	touristID := id.NewUserID()
	rec := s.newTestRecord(touristID)
	rec.PassportStatus = models.DocumentVerified

	s.mockRecordStore.EXPECT().FindByUserID(gomock.Any(), touristID).Return(rec, nil)

	_, err := s.service.SubmitDocument(context.Background(), touristID, models.KindPassport)

	s.Require().Error(err)
	s.True(dErrors.HasCode(err, dErrors.CodeConflict))
}

func (s *ServiceSuite) TestSubmitUnknownDocumentKind() {
	_, err := s.service.SubmitDocument(context.Background(), id.NewUserID(), models.DocumentKind("visa"))

	s.Require().Error(err)
	s.True(dErrors.HasCode(err, dErrors.CodeInvalidInput))
}

func (s *ServiceSuite) TestReviewApproveVerifiesDocument() {
	touristID := id.NewUserID()
	rec := s.newTestRecord(touristID)
	rec.PassportStatus = models.DocumentSubmitted

	s.mockRecordStore.EXPECT().FindByUserID(gomock.Any(), touristID).Return(rec, nil)
	s.mockRecordStore.EXPECT().Update(gomock.Any(), gomock.Any()).Return(nil)
	s.expectOffline(touristID)

	view, err := s.service.ReviewDocument(context.Background(), touristID, models.KindPassport, OutcomeApprove)

	s.Require().NoError(err)
	s.Equal(models.DocumentVerified, view.PassportStatus)
	s.Equal(models.VerificationPending, view.Verification)
	s.Nil(view.VerificationDate)
}

func (s *ServiceSuite) TestReviewApprovingSecondDocumentSetsVerificationDate() {
	touristID := id.NewUserID()
	rec := s.newTestRecord(touristID)
	rec.PassportStatus = models.DocumentVerified
	rec.FlightTicketStatus = models.DocumentSubmitted

	s.mockRecordStore.EXPECT().FindByUserID(gomock.Any(), touristID).Return(rec, nil)
	s.mockRecordStore.EXPECT().Update(gomock.Any(), gomock.Any()).Return(nil)
	s.expectOffline(touristID)

	view, err := s.service.ReviewDocument(context.Background(), touristID, models.KindFlightTicket, OutcomeApprove)

	s.Require().NoError(err)
	s.Equal(models.VerificationVerified, view.Verification)
	s.Require().NotNil(view.VerificationDate)
	s.Equal(s.now, *view.VerificationDate)
}

func (s *ServiceSuite) TestReviewRejectResetsDocument() {
	touristID := id.NewUserID()
	rec := s.newTestRecord(touristID)
	rec.PassportStatus = models.DocumentSubmitted

	s.mockRecordStore.EXPECT().FindByUserID(gomock.Any(), touristID).Return(rec, nil)
	s.mockRecordStore.EXPECT().
		Update(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, updated *models.TouristRecord) error {
			s.Equal(models.DocumentNotSubmitted, updated.PassportStatus)
			return nil
		})
	s.expectOffline(touristID)

	view, err := s.service.ReviewDocument(context.Background(), touristID, models.KindPassport, OutcomeReject)

	s.Require().NoError(err)
	s.Equal(models.DocumentNotSubmitted, view.PassportStatus)
	s.Equal(models.VerificationPending, view.Verification)
}

func (s *ServiceSuite) TestReviewDocumentNotAwaitingReview() {
	touristID := id.NewUserID()
	rec := s.newTestRecord(touristID)

	s.mockRecordStore.EXPECT().FindByUserID(gomock.Any(), touristID).Return(rec, nil)

	_, err := s.service.ReviewDocument(context.Background(), touristID, models.KindPassport, OutcomeApprove)

	s.Require().Error(err)
	s.True(dErrors.HasCode(err, dErrors.CodeConflict))
}

func (s *ServiceSuite) TestReviewUnknownTourist() {
	touristID := id.NewUserID()
	s.mockRecordStore.EXPECT().
		FindByUserID(gomock.Any(), touristID).
		Return(nil, fmt.Errorf("tourist record: %w", sentinel.ErrNotFound))

	_, err := s.service.ReviewDocument(context.Background(), touristID, models.KindPassport, OutcomeApprove)

	s.Require().Error(err)
	s.True(dErrors.HasCode(err, dErrors.CodeNotFound))
}

func (s *ServiceSuite) TestSetSafetyStatus() {
	touristID := id.NewUserID()
	rec := s.newTestRecord(touristID)

	s.mockRecordStore.EXPECT().FindByUserID(gomock.Any(), touristID).Return(rec, nil)
	s.mockRecordStore.EXPECT().Update(gomock.Any(), gomock.Any()).Return(nil)
	s.expectOffline(touristID)

	view, err := s.service.SetSafetyStatus(context.Background(), touristID, models.SafetyDanger)

	s.Require().NoError(err)
	s.Equal(models.SafetyDanger, view.SafetyStatus)
}

func (s *ServiceSuite) TestEscalateSafetyRaisesStatus() {
	touristID := id.NewUserID()
	rec := s.newTestRecord(touristID)
	rec.SafetyStatus = models.SafetySafe

	s.mockRecordStore.EXPECT().FindByUserID(gomock.Any(), touristID).Return(rec, nil)
	s.mockRecordStore.EXPECT().Update(gomock.Any(), gomock.Any()).Return(nil)
	s.expectOffline(touristID)

	view, err := s.service.EscalateSafety(context.Background(), touristID, models.SafetyWarning)

	s.Require().NoError(err)
	s.Equal(models.SafetyWarning, view.SafetyStatus)
}

func (s *ServiceSuite) TestEscalateSafetyNeverDowngrades() {
	touristID := id.NewUserID()
	rec := s.newTestRecord(touristID)
	rec.SafetyStatus = models.SafetyDanger

	s.mockRecordStore.EXPECT().FindByUserID(gomock.Any(), touristID).Return(rec, nil)
	s.mockRecordStore.EXPECT().Update(gomock.Any(), gomock.Any()).Times(0)
	s.expectOffline(touristID)

	view, err := s.service.EscalateSafety(context.Background(), touristID, models.SafetyWarning)

	s.Require().NoError(err)
	s.Equal(models.SafetyDanger, view.SafetyStatus)
}

func (s *ServiceSuite) TestEscalateSafetyEqualRankIsNoOp() {
	touristID := id.NewUserID()
	rec := s.newTestRecord(touristID)
	rec.SafetyStatus = models.SafetyWarning

	s.mockRecordStore.EXPECT().FindByUserID(gomock.Any(), touristID).Return(rec, nil)
	s.mockRecordStore.EXPECT().Update(gomock.Any(), gomock.Any()).Times(0)
	s.expectOffline(touristID)

	view, err := s.service.EscalateSafety(context.Background(), touristID, models.SafetyWarning)

	s.Require().NoError(err)
	s.Equal(models.SafetyWarning, view.SafetyStatus)
}

func (s *ServiceSuite) TestGetAttachesPresence() {
	touristID := id.NewUserID()
	rec := s.newTestRecord(touristID)
	rec.PassportStatus = models.DocumentVerified
	rec.FlightTicketStatus = models.DocumentVerified

	s.mockRecordStore.EXPECT().FindByUserID(gomock.Any(), touristID).Return(rec, nil)
	s.mockActivityStore.EXPECT().
		LastActive(gomock.Any(), touristID).
		Return(s.now.Add(-5*time.Minute), nil)

	view, err := s.service.Get(context.Background(), touristID)

	s.Require().NoError(err)
	s.Equal(models.VerificationVerified, view.Verification)
	s.True(view.Online)
}

func (s *ServiceSuite) TestGetWithStaleActivityIsOffline() {
	touristID := id.NewUserID()
	rec := s.newTestRecord(touristID)

	s.mockRecordStore.EXPECT().FindByUserID(gomock.Any(), touristID).Return(rec, nil)
	s.mockActivityStore.EXPECT().
		LastActive(gomock.Any(), touristID).
		Return(s.now.Add(-45*time.Minute), nil)

	view, err := s.service.Get(context.Background(), touristID)

	s.Require().NoError(err)
	s.False(view.Online)
}

func (s *ServiceSuite) TestListDerivesPerTourist() {
	online := s.newTestRecord(id.NewUserID())
	online.PassportStatus = models.DocumentSubmitted
	offline := s.newTestRecord(id.NewUserID())
	offline.FullName = "Ben Okoye"

	filter := record.ListFilter{Search: "o"}
	s.mockRecordStore.EXPECT().
		List(gomock.Any(), filter).
		Return([]*models.TouristRecord{online, offline}, nil)
	s.mockActivityStore.EXPECT().
		ListLastActive(gomock.Any()).
		Return(map[id.UserID]time.Time{online.UserID: s.now.Add(-time.Minute)}, nil)

	views, err := s.service.List(context.Background(), filter)

	s.Require().NoError(err)
	s.Require().Len(views, 2)
	s.True(views[0].Online)
	s.Equal(models.VerificationUnderReview, views[0].Verification)
	s.False(views[1].Online)
	s.Equal(models.VerificationPending, views[1].Verification)
}

func (s *ServiceSuite) TestStatsAggregates() {
	verified := s.newTestRecord(id.NewUserID())
	verified.PassportStatus = models.DocumentVerified
	verified.FlightTicketStatus = models.DocumentVerified
	underReview := s.newTestRecord(id.NewUserID())
	underReview.PassportStatus = models.DocumentSubmitted
	underReview.SafetyStatus = models.SafetyWarning
	pending := s.newTestRecord(id.NewUserID())
	pending.SafetyStatus = models.SafetyDanger

	s.mockRecordStore.EXPECT().
		List(gomock.Any(), record.ListFilter{}).
		Return([]*models.TouristRecord{verified, underReview, pending}, nil)
	s.mockActivityStore.EXPECT().
		ListLastActive(gomock.Any()).
		Return(map[id.UserID]time.Time{
			verified.UserID:    s.now.Add(-2 * time.Minute),
			underReview.UserID: s.now.Add(-2 * time.Hour),
		}, nil)

	stats, err := s.service.Stats(context.Background())

	s.Require().NoError(err)
	s.Equal(3, stats.Total)
	s.Equal(1, stats.Verified)
	s.Equal(1, stats.UnderReview)
	s.Equal(1, stats.Pending)
	s.Equal(1, stats.Online)
	s.Equal(1, stats.Safe)
	s.Equal(1, stats.Warning)
	s.Equal(1, stats.Danger)
}

func (s *ServiceSuite) TestStatsPropagatesStoreFailure() {
	s.mockRecordStore.EXPECT().
		List(gomock.Any(), record.ListFilter{}).
		Return(nil, fmt.Errorf("records unavailable: %w", sentinel.ErrUnavailable))
	s.mockActivityStore.EXPECT().
		ListLastActive(gomock.Any()).
		Return(nil, nil).
		AnyTimes()

	_, err := s.service.Stats(context.Background())

	s.Require().Error(err)
	s.True(dErrors.HasCode(err, dErrors.CodeInternal))
}

func (s *ServiceSuite) TestRecordActivityTouches() {
	touristID := id.NewUserID()
	s.mockActivityStore.EXPECT().Touch(gomock.Any(), touristID, s.now).Return(nil)

	s.Require().NoError(s.service.RecordActivity(context.Background(), touristID))
}

func (s *ServiceSuite) TestParseReviewOutcome() {
	outcome, err := ParseReviewOutcome("approve")
	s.Require().NoError(err)
	s.Equal(OutcomeApprove, outcome)

	_, err = ParseReviewOutcome("maybe")
	s.Require().Error(err)
	s.True(dErrors.HasCode(err, dErrors.CodeInvalidInput))
}
