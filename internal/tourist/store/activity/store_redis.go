package activity

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"tourshield/internal/sentinel"
	id "tourshield/pkg/domain"
)

// lastActiveKey is a single hash of tourist id -> Unix-nano timestamp. One
// key keeps ListLastActive a single HGETALL instead of a SCAN.
const lastActiveKey = "presence:last_active"

// RedisStore persists activity timestamps in Redis. This is the
// production-recommended implementation for distributed deployments where
// multiple instances record activity.
type RedisStore struct {
	client *redis.Client
}

// NewRedis constructs a Redis-backed activity store.
func NewRedis(client *redis.Client) *RedisStore {
	return &RedisStore{client: client}
}

// Touch records activity at the given time. Later timestamps win; the
// compare-and-set runs in a Lua script so concurrent touches from several
// instances cannot move the clock backwards.
var touchScript = redis.NewScript(`
local current = redis.call('HGET', KEYS[1], ARGV[1])
if current and tonumber(current) >= tonumber(ARGV[2]) then
	return 0
end
redis.call('HSET', KEYS[1], ARGV[1], ARGV[2])
return 1
`)

func (s *RedisStore) Touch(ctx context.Context, userID id.UserID, at time.Time) error {
	err := touchScript.Run(ctx, s.client,
		[]string{lastActiveKey},
		uuid.UUID(userID).String(),
		strconv.FormatInt(at.UnixNano(), 10),
	).Err()
	if err != nil {
		return fmt.Errorf("record activity: %w", err)
	}
	return nil
}

func (s *RedisStore) LastActive(ctx context.Context, userID id.UserID) (time.Time, error) {
	val, err := s.client.HGet(ctx, lastActiveKey, uuid.UUID(userID).String()).Result()
	if errors.Is(err, redis.Nil) {
		return time.Time{}, fmt.Errorf("no activity recorded: %w", sentinel.ErrNotFound)
	}
	if err != nil {
		return time.Time{}, fmt.Errorf("get last activity: %w", err)
	}
	nanos, err := strconv.ParseInt(val, 10, 64)
	if err != nil {
		return time.Time{}, fmt.Errorf("parse last activity: %w", err)
	}
	return time.Unix(0, nanos), nil
}

func (s *RedisStore) ListLastActive(ctx context.Context) (map[id.UserID]time.Time, error) {
	entries, err := s.client.HGetAll(ctx, lastActiveKey).Result()
	if err != nil {
		return nil, fmt.Errorf("list last activity: %w", err)
	}

	result := make(map[id.UserID]time.Time, len(entries))
	for field, val := range entries {
		userUUID, err := uuid.Parse(field)
		if err != nil {
			continue
		}
		nanos, err := strconv.ParseInt(val, 10, 64)
		if err != nil {
			continue
		}
		result[id.UserID(userUUID)] = time.Unix(0, nanos)
	}
	return result, nil
}
