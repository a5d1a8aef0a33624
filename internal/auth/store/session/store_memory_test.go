package session

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"

	"tourshield/internal/auth/models"
	"tourshield/internal/sentinel"
	id "tourshield/pkg/domain"
)

type InMemorySessionStoreSuite struct {
	suite.Suite
	store *InMemorySessionStore
}

func (s *InMemorySessionStoreSuite) SetupTest() {
	s.store = New()
}

func (s *InMemorySessionStoreSuite) newSession(userID id.UserID, expiresAt time.Time) *models.Session {
	return &models.Session{
		ID:                id.NewSessionID(),
		UserID:            userID,
		Status:            models.SessionStatusActive,
		DeviceDisplayName: "Chrome on Linux",
		CreatedAt:         time.Now(),
		ExpiresAt:         expiresAt,
		LastSeenAt:        time.Now(),
	}
}

func (s *InMemorySessionStoreSuite) TestCreateAndFind() {
	session := s.newSession(id.NewUserID(), time.Now().Add(time.Hour))

	err := s.store.Create(context.Background(), session)
	require.NoError(s.T(), err)

	found, err := s.store.FindByID(context.Background(), session.ID)
	require.NoError(s.T(), err)
	assert.Equal(s.T(), session, found)
}

func (s *InMemorySessionStoreSuite) TestFindNotFound() {
	_, err := s.store.FindByID(context.Background(), id.NewSessionID())
	assert.ErrorIs(s.T(), err, sentinel.ErrNotFound)
}

func (s *InMemorySessionStoreSuite) TestUpdate() {
	session := s.newSession(id.NewUserID(), time.Now().Add(time.Hour))
	require.NoError(s.T(), s.store.Create(context.Background(), session))

	session.Revoke(time.Now())
	err := s.store.Update(context.Background(), session)
	require.NoError(s.T(), err)

	found, err := s.store.FindByID(context.Background(), session.ID)
	require.NoError(s.T(), err)
	assert.Equal(s.T(), models.SessionStatusRevoked, found.Status)
	assert.NotNil(s.T(), found.RevokedAt)
}

func (s *InMemorySessionStoreSuite) TestUpdateNotFound() {
	session := s.newSession(id.NewUserID(), time.Now().Add(time.Hour))
	err := s.store.Update(context.Background(), session)
	assert.ErrorIs(s.T(), err, sentinel.ErrNotFound)
}

func (s *InMemorySessionStoreSuite) TestDeleteSessionsByUser() {
	userID := id.NewUserID()
	first := s.newSession(userID, time.Now().Add(time.Hour))
	second := s.newSession(userID, time.Now().Add(time.Hour))
	other := s.newSession(id.NewUserID(), time.Now().Add(time.Hour))

	require.NoError(s.T(), s.store.Create(context.Background(), first))
	require.NoError(s.T(), s.store.Create(context.Background(), second))
	require.NoError(s.T(), s.store.Create(context.Background(), other))

	err := s.store.DeleteSessionsByUser(context.Background(), userID)
	require.NoError(s.T(), err)

	_, err = s.store.FindByID(context.Background(), first.ID)
	assert.ErrorIs(s.T(), err, sentinel.ErrNotFound)
	_, err = s.store.FindByID(context.Background(), second.ID)
	assert.ErrorIs(s.T(), err, sentinel.ErrNotFound)

	found, err := s.store.FindByID(context.Background(), other.ID)
	require.NoError(s.T(), err)
	assert.Equal(s.T(), other, found)
}

func (s *InMemorySessionStoreSuite) TestDeleteSessionsByUserNone() {
	err := s.store.DeleteSessionsByUser(context.Background(), id.NewUserID())
	assert.ErrorIs(s.T(), err, sentinel.ErrNotFound)
}

func (s *InMemorySessionStoreSuite) TestDeleteExpiredSessions() {
	now := time.Now()
	expired := s.newSession(id.NewUserID(), now.Add(-time.Minute))
	live := s.newSession(id.NewUserID(), now.Add(time.Hour))

	require.NoError(s.T(), s.store.Create(context.Background(), expired))
	require.NoError(s.T(), s.store.Create(context.Background(), live))

	deleted, err := s.store.DeleteExpiredSessions(context.Background(), now)
	require.NoError(s.T(), err)
	assert.Equal(s.T(), 1, deleted)

	_, err = s.store.FindByID(context.Background(), expired.ID)
	assert.ErrorIs(s.T(), err, sentinel.ErrNotFound)

	found, err := s.store.FindByID(context.Background(), live.ID)
	require.NoError(s.T(), err)
	assert.Equal(s.T(), live, found)
}

func TestInMemorySessionStoreSuite(t *testing.T) {
	suite.Run(t, new(InMemorySessionStoreSuite))
}
