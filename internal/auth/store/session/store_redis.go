package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"tourshield/internal/auth/models"
	"tourshield/internal/sentinel"
	id "tourshield/pkg/domain"
)

const (
	// Redis key prefixes for session data
	sessionKeyPrefix     = "session:"
	userSessionKeyPrefix = "user_sessions:"

	// defaultSessionTTL is the fallback TTL when session expiry cannot be determined.
	defaultSessionTTL = 30 * 24 * time.Hour
)

// sessionJSON is the JSON-serializable representation of a Session.
// We use explicit JSON tags to control serialization format.
type sessionJSON struct {
	ID                string `json:"id"`
	UserID            string `json:"user_id"`
	Status            string `json:"status"`
	DeviceDisplayName string `json:"device_display_name"`
	CreatedAt         int64  `json:"created_at"`           // Unix nano
	ExpiresAt         int64  `json:"expires_at"`           // Unix nano
	LastSeenAt        int64  `json:"last_seen_at"`         // Unix nano
	RevokedAt         *int64 `json:"revoked_at,omitempty"` // Unix nano
}

func sessionToJSON(s *models.Session) *sessionJSON {
	j := &sessionJSON{
		ID:                uuid.UUID(s.ID).String(),
		UserID:            uuid.UUID(s.UserID).String(),
		Status:            string(s.Status),
		DeviceDisplayName: s.DeviceDisplayName,
		CreatedAt:         s.CreatedAt.UnixNano(),
		ExpiresAt:         s.ExpiresAt.UnixNano(),
		LastSeenAt:        s.LastSeenAt.UnixNano(),
	}
	if s.RevokedAt != nil {
		ts := s.RevokedAt.UnixNano()
		j.RevokedAt = &ts
	}
	return j
}

func sessionFromJSON(j *sessionJSON) (*models.Session, error) {
	sessionID, err := uuid.Parse(j.ID)
	if err != nil {
		return nil, fmt.Errorf("parse session id: %w", err)
	}
	userID, err := uuid.Parse(j.UserID)
	if err != nil {
		return nil, fmt.Errorf("parse user id: %w", err)
	}

	s := &models.Session{
		ID:                id.SessionID(sessionID),
		UserID:            id.UserID(userID),
		Status:            models.SessionStatus(j.Status),
		DeviceDisplayName: j.DeviceDisplayName,
		CreatedAt:         time.Unix(0, j.CreatedAt),
		ExpiresAt:         time.Unix(0, j.ExpiresAt),
		LastSeenAt:        time.Unix(0, j.LastSeenAt),
	}
	if j.RevokedAt != nil {
		t := time.Unix(0, *j.RevokedAt)
		s.RevokedAt = &t
	}
	return s, nil
}

// RedisStore persists sessions in Redis.
// This is the production-recommended implementation for distributed deployments
// where multiple instances need to share session state.
type RedisStore struct {
	client *redis.Client
}

// NewRedis constructs a Redis-backed session store.
func NewRedis(client *redis.Client) *RedisStore {
	return &RedisStore{client: client}
}

func (s *RedisStore) sessionKey(sessionID id.SessionID) string {
	return sessionKeyPrefix + uuid.UUID(sessionID).String()
}

func (s *RedisStore) userSessionsKey(userID id.UserID) string {
	return userSessionKeyPrefix + uuid.UUID(userID).String()
}

// getOrComputeTTL retrieves the existing TTL for a key, falling back to computing
// from session expiry or using the default TTL.
func getOrComputeTTL(ctx context.Context, getter redis.Cmdable, key string, session *models.Session) time.Duration {
	ttl, err := getter.TTL(ctx, key).Result()
	if err == nil && ttl > 0 {
		return ttl
	}
	if remaining := time.Until(session.ExpiresAt); remaining > 0 {
		return remaining
	}
	return defaultSessionTTL
}

func (s *RedisStore) Create(ctx context.Context, session *models.Session) error {
	if session == nil {
		return fmt.Errorf("session is required")
	}

	data, err := json.Marshal(sessionToJSON(session))
	if err != nil {
		return fmt.Errorf("marshal session: %w", err)
	}

	key := s.sessionKey(session.ID)
	userKey := s.userSessionsKey(session.UserID)
	sessionIDStr := uuid.UUID(session.ID).String()

	// Calculate TTL from session expiry
	ttl := time.Until(session.ExpiresAt)
	if ttl <= 0 {
		ttl = defaultSessionTTL
	}

	// Use pipeline for atomic operations
	pipe := s.client.Pipeline()
	pipe.Set(ctx, key, data, ttl)
	pipe.SAdd(ctx, userKey, sessionIDStr)
	// Set expiry on the user sessions set too, slightly longer to allow for cleanup
	pipe.Expire(ctx, userKey, ttl+time.Hour)

	_, err = pipe.Exec(ctx)
	if err != nil {
		return fmt.Errorf("create session: %w", err)
	}
	return nil
}

func (s *RedisStore) FindByID(ctx context.Context, sessionID id.SessionID) (*models.Session, error) {
	key := s.sessionKey(sessionID)
	data, err := s.client.Get(ctx, key).Result()
	if errors.Is(err, redis.Nil) {
		return nil, fmt.Errorf("session not found: %w", sentinel.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("find session by id: %w", err)
	}

	var j sessionJSON
	if err := json.Unmarshal([]byte(data), &j); err != nil {
		return nil, fmt.Errorf("unmarshal session: %w", err)
	}

	return sessionFromJSON(&j)
}

func (s *RedisStore) Update(ctx context.Context, session *models.Session) error {
	if session == nil {
		return fmt.Errorf("session is required")
	}

	key := s.sessionKey(session.ID)

	exists, err := s.client.Exists(ctx, key).Result()
	if err != nil {
		return fmt.Errorf("check session exists: %w", err)
	}
	if exists == 0 {
		return fmt.Errorf("session not found: %w", sentinel.ErrNotFound)
	}

	data, err := json.Marshal(sessionToJSON(session))
	if err != nil {
		return fmt.Errorf("marshal session: %w", err)
	}

	ttl := getOrComputeTTL(ctx, s.client, key, session)
	err = s.client.Set(ctx, key, data, ttl).Err()
	if err != nil {
		return fmt.Errorf("update session: %w", err)
	}
	return nil
}

func (s *RedisStore) DeleteSessionsByUser(ctx context.Context, userID id.UserID) error {
	userKey := s.userSessionsKey(userID)

	sessionIDs, err := s.client.SMembers(ctx, userKey).Result()
	if err != nil {
		return fmt.Errorf("list session ids for delete: %w", err)
	}

	if len(sessionIDs) == 0 {
		return fmt.Errorf("no sessions for user: %w", sentinel.ErrNotFound)
	}

	pipe := s.client.Pipeline()
	for _, sidStr := range sessionIDs {
		pipe.Del(ctx, sessionKeyPrefix+sidStr)
	}
	pipe.Del(ctx, userKey)

	_, err = pipe.Exec(ctx)
	if err != nil {
		return fmt.Errorf("delete sessions by user: %w", err)
	}
	return nil
}

// DeleteExpiredSessions is a no-op for Redis: keys carry a TTL derived from
// session expiry, so Redis reclaims expired sessions on its own. The method
// exists so the cleanup worker can run against any store implementation.
func (s *RedisStore) DeleteExpiredSessions(ctx context.Context, now time.Time) (int, error) {
	return 0, nil
}
