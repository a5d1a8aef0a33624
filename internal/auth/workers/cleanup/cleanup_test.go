package cleanup

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"tourshield/internal/auth/models"
	sessionStore "tourshield/internal/auth/store/session"
	"tourshield/internal/sentinel"
	id "tourshield/pkg/domain"
)

func TestCleanupService_RunOnce(t *testing.T) {
	ctx := context.Background()

	sessions := sessionStore.New()

	expired := &models.Session{
		ID:         id.NewSessionID(),
		UserID:     id.NewUserID(),
		Status:     models.SessionStatusActive,
		CreatedAt:  time.Now().Add(-48 * time.Hour),
		ExpiresAt:  time.Now().Add(-1 * time.Hour),
		LastSeenAt: time.Now(),
	}
	require.NoError(t, sessions.Create(ctx, expired))

	live := &models.Session{
		ID:         id.NewSessionID(),
		UserID:     id.NewUserID(),
		Status:     models.SessionStatusActive,
		CreatedAt:  time.Now(),
		ExpiresAt:  time.Now().Add(24 * time.Hour),
		LastSeenAt: time.Now(),
	}
	require.NoError(t, sessions.Create(ctx, live))

	svc, err := New(sessions, WithCleanupInterval(10*time.Second))
	require.NoError(t, err)

	res, err := svc.RunOnce(ctx)
	require.NoError(t, err)
	require.Equal(t, 1, res.DeletedSessions)

	_, err = sessions.FindByID(ctx, expired.ID)
	require.ErrorIs(t, err, sentinel.ErrNotFound)

	found, err := sessions.FindByID(ctx, live.ID)
	require.NoError(t, err)
	require.Equal(t, live.ID, found.ID)
}

func TestCleanupService_RequiresStore(t *testing.T) {
	_, err := New(nil)
	require.Error(t, err)
}

func TestCleanupService_StartStopsOnCancel(t *testing.T) {
	sessions := sessionStore.New()
	svc, err := New(sessions, WithCleanupInterval(time.Millisecond))
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- svc.Start(ctx) }()

	time.Sleep(10 * time.Millisecond)
	cancel()

	select {
	case err := <-done:
		require.ErrorIs(t, err, context.Canceled)
	case <-time.After(time.Second):
		t.Fatal("cleanup worker did not stop after cancel")
	}
}
